package sql

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/picklr-io/azmgmt/pkg/fluent"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
)

// Database is a database hosted on a SQL server.
type Database struct {
	manager *Manager
	server  serverRef
	name    string
	inner   inner.DatabaseInner

	// owner and batch are set while the database is queued in a server batch.
	owner *Server
	batch *taskgroup.TaskGroup
	// pool is an elastic pool defined together with a standalone database.
	pool *ElasticPool
}

func newDatabase(m *Manager, server serverRef, name string, in inner.DatabaseInner) *Database {
	return &Database{manager: m, server: server, name: name, inner: in}
}

func (d *Database) Name() string { return d.name }

// ID returns the resource ID. It is empty until the database has been written or read.
func (d *Database) ID() string { return deref(d.inner.ID) }

func (d *Database) ResourceGroupName() string { return d.server.resourceGroup }

func (d *Database) ServerName() string { return d.server.name }

func (d *Database) RegionName() string { return deref(d.inner.Location) }

func (d *Database) Tags() map[string]string { return stringMap(d.inner.Tags) }

func (d *Database) Inner() inner.DatabaseInner { return d.inner }

func (d *Database) props() inner.DatabaseProperties {
	if d.inner.Properties == nil {
		return inner.DatabaseProperties{}
	}
	return *d.inner.Properties
}

func (d *Database) Collation() string { return deref(d.props().Collation) }

func (d *Database) CreationDate() time.Time { return derefTime(d.props().CreationDate) }

func (d *Database) EarliestRestoreDate() time.Time { return derefTime(d.props().EarliestRestoreDate) }

// DatabaseID returns the server-assigned database GUID.
func (d *Database) DatabaseID() string { return deref(d.props().DatabaseID) }

func (d *Database) Edition() inner.DatabaseEdition { return deref(d.props().Edition) }

// MaxSizeBytes returns the size limit in bytes, or 0 when the service did not report one.
func (d *Database) MaxSizeBytes() int64 {
	n, err := strconv.ParseInt(deref(d.props().MaxSizeBytes), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ElasticPoolName returns the pool the database belongs to, or "".
func (d *Database) ElasticPoolName() string { return deref(d.props().ElasticPoolName) }

func (d *Database) RequestedServiceObjectiveName() inner.ServiceObjectiveName {
	return deref(d.props().RequestedServiceObjectiveName)
}

func (d *Database) ServiceLevelObjective() inner.ServiceObjectiveName {
	return deref(d.props().ServiceLevelObjective)
}

func (d *Database) Status() string { return deref(d.props().Status) }

func (d *Database) DefaultSecondaryLocation() string {
	return deref(d.props().DefaultSecondaryLocation)
}

// IsDataWarehouse reports whether the database is a data warehouse.
func (d *Database) IsDataWarehouse() bool {
	return strings.EqualFold(string(d.Edition()), string(inner.DatabaseEditionDataWarehouse))
}

// Refresh reloads the database.
func (d *Database) Refresh(ctx context.Context) error {
	in, err := d.manager.client.Databases().Get(ctx, d.server.resourceGroup, d.server.name, d.name)
	if err != nil {
		return err
	}
	d.inner = in
	return nil
}

// Delete removes the database.
func (d *Database) Delete(ctx context.Context) error {
	return d.DeleteResource(ctx)
}

// Rename moves the database to newName on the same server and returns it
// under the new name.
func (d *Database) Rename(ctx context.Context, newName string) (*Database, error) {
	target := d.manager.childID(d.server, kindDatabases, newName)
	if err := d.manager.client.Databases().Rename(ctx, d.server.resourceGroup, d.server.name, d.name, target); err != nil {
		return nil, err
	}
	return d.manager.databases.GetBySQLServer(ctx, d.server.resourceGroup, d.server.name, newName)
}

// BacpacOptions locates a bacpac in blob storage and the credentials used to
// read or write the database.
type BacpacOptions struct {
	StorageURI     string
	StorageKeyType inner.StorageKeyType
	StorageKey     string
	// AdministratorLogin and AdministratorPassword authenticate against the server.
	AdministratorLogin    string
	AdministratorPassword string
	// AuthenticationType defaults to SQL.
	AuthenticationType inner.AuthenticationType
}

func (o BacpacOptions) authenticationType() inner.AuthenticationType {
	if o.AuthenticationType == "" {
		return inner.AuthenticationTypeSQL
	}
	return o.AuthenticationType
}

// ImportBacpac loads a bacpac from blob storage into the database.
func (d *Database) ImportBacpac(ctx context.Context, options BacpacOptions) (inner.ImportExportResponseInner, error) {
	req := inner.ImportExtensionRequest{
		Name: to.Ptr("import"),
		Type: to.Ptr("import"),
		Properties: &inner.ImportExtensionRequestProperties{
			OperationMode:              to.Ptr("Import"),
			StorageKeyType:             to.Ptr(options.StorageKeyType),
			StorageKey:                 to.Ptr(options.StorageKey),
			StorageURI:                 to.Ptr(options.StorageURI),
			AdministratorLogin:         to.Ptr(options.AdministratorLogin),
			AdministratorLoginPassword: to.Ptr(options.AdministratorPassword),
			AuthenticationType:         to.Ptr(options.authenticationType()),
		},
	}
	return d.manager.client.Databases().CreateImportOperation(ctx, d.server.resourceGroup, d.server.name, d.name, req)
}

// ExportTo writes the database to a bacpac at options.StorageURI.
func (d *Database) ExportTo(ctx context.Context, options BacpacOptions) (inner.ImportExportResponseInner, error) {
	req := inner.ExportRequest{
		StorageKeyType:             to.Ptr(options.StorageKeyType),
		StorageKey:                 to.Ptr(options.StorageKey),
		StorageURI:                 to.Ptr(options.StorageURI),
		AdministratorLogin:         to.Ptr(options.AdministratorLogin),
		AdministratorLoginPassword: to.Ptr(options.AdministratorPassword),
		AuthenticationType:         to.Ptr(options.authenticationType()),
	}
	return d.manager.client.Databases().Export(ctx, d.server.resourceGroup, d.server.name, d.name, req)
}

// Update starts an update of the database.
func (d *Database) Update() DatabaseUpdate {
	return &databaseUpdate{db: d}
}

func (d *Database) properties() *inner.DatabaseProperties {
	if d.inner.Properties == nil {
		d.inner.Properties = &inner.DatabaseProperties{}
	}
	return d.inner.Properties
}

// setElasticPool places the database in a pool. The pool decides the
// performance level, so any requested edition or objective is dropped.
func (d *Database) setElasticPool(name string) {
	p := d.properties()
	p.Edition = nil
	p.RequestedServiceObjectiveID = nil
	p.RequestedServiceObjectiveName = nil
	p.ElasticPoolName = to.Ptr(name)
}

func (d *Database) clearElasticPool() {
	d.properties().ElasticPoolName = nil
}

func (d *Database) setEdition(edition inner.DatabaseEdition) {
	d.properties().Edition = to.Ptr(edition)
}

func (d *Database) setServiceObjective(objective inner.ServiceObjectiveName) {
	d.properties().RequestedServiceObjectiveName = to.Ptr(objective)
}

func (d *Database) setCollation(collation string) {
	d.properties().Collation = to.Ptr(collation)
}

func (d *Database) setMaxSizeBytes(size int64) {
	d.properties().MaxSizeBytes = to.Ptr(strconv.FormatInt(size, 10))
}

func (d *Database) setSource(sourceID string) {
	d.properties().SourceDatabaseID = to.Ptr(sourceID)
}

func (d *Database) setMode(mode inner.CreateMode) {
	d.properties().CreateMode = to.Ptr(mode)
}

// definePool starts an elastic pool that must exist before the database is
// written, and places the database in it.
func (d *Database) definePool(name string) *ElasticPool {
	pool := newElasticPool(d.manager, d.server, name, inner.ElasticPoolInner{})
	if d.owner != nil {
		pool.owner = d.owner
		g := d.owner.elasticPools.PrepareDefine(pool)
		d.batch.AddDependency(g)
	} else {
		d.pool = pool
	}
	d.setElasticPool(name)
	return pool
}

// commit writes the database, after its pending pool when one was defined.
func (d *Database) commit(ctx context.Context) (*Database, error) {
	g := taskgroup.New(&resourceItem{
		key:   d.server.childKey(kindDatabases, d.name),
		run:   d.CreateResource,
		after: func(bool) { d.pool = nil },
	})
	if d.pool != nil {
		g.AddDependency(d.pool.ownGroup())
	}
	if err := d.manager.commit(ctx, g); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) ChildName() string { return d.name }

func (d *Database) CreateResource(ctx context.Context) error {
	if d.inner.Location == nil {
		loc, err := d.manager.resolveLocation(ctx, &d.server)
		if err != nil {
			return err
		}
		d.inner.Location = to.Ptr(loc)
	}
	in, err := d.manager.client.Databases().CreateOrUpdate(ctx, d.server.resourceGroup, d.server.name, d.name, d.inner)
	if err != nil {
		return err
	}
	d.inner = in
	return nil
}

// UpdateResource moves an existing database into or out of the pool queued
// on it. The database is read first, so a missing one fails instead of
// being created.
func (d *Database) UpdateResource(ctx context.Context) error {
	pool := d.ElasticPoolName()
	in, err := d.manager.client.Databases().Get(ctx, d.server.resourceGroup, d.server.name, d.name)
	if err != nil {
		return err
	}
	d.inner = in
	if pool != "" {
		d.setElasticPool(pool)
	} else {
		d.clearElasticPool()
	}
	return d.CreateResource(ctx)
}

func (d *Database) DeleteResource(ctx context.Context) error {
	return d.manager.client.Databases().Delete(ctx, d.server.resourceGroup, d.server.name, d.name)
}

// DatabaseAttach sets optional database settings inside a parent definition.
type DatabaseAttach[P any] interface {
	WithEdition(edition inner.DatabaseEdition) DatabaseAttach[P]
	WithServiceObjective(objective inner.ServiceObjectiveName) DatabaseAttach[P]
	WithCollation(collation string) DatabaseAttach[P]
	WithMaxSizeBytes(size int64) DatabaseAttach[P]
	WithTag(key, value string) DatabaseAttach[P]
	Attach() P
}

// DatabaseDefinition is the first stage of a database defined inside a
// server definition or update.
type DatabaseDefinition[P any] interface {
	DatabaseAttach[P]
	WithExistingElasticPool(name string) DatabaseAttach[P]
	// DefineElasticPool creates a pool in the same batch and places the
	// database in it. The pool is written first.
	DefineElasticPool(name string) ElasticPoolDefinition[DatabaseAttach[P]]
	WithSourceDatabase(sourceID string) DatabaseWithCreateMode[P]
}

// DatabaseWithCreateMode selects how a database is created from its source.
type DatabaseWithCreateMode[P any] interface {
	WithMode(mode inner.CreateMode) DatabaseAttach[P]
}

type nestedDatabase[P any] struct {
	db     *Database
	parent P
}

func (s *nestedDatabase[P]) WithEdition(edition inner.DatabaseEdition) DatabaseAttach[P] {
	s.db.setEdition(edition)
	return s
}

func (s *nestedDatabase[P]) WithServiceObjective(objective inner.ServiceObjectiveName) DatabaseAttach[P] {
	s.db.setServiceObjective(objective)
	return s
}

func (s *nestedDatabase[P]) WithCollation(collation string) DatabaseAttach[P] {
	s.db.setCollation(collation)
	return s
}

func (s *nestedDatabase[P]) WithMaxSizeBytes(size int64) DatabaseAttach[P] {
	s.db.setMaxSizeBytes(size)
	return s
}

func (s *nestedDatabase[P]) WithTag(key, value string) DatabaseAttach[P] {
	setTag(&s.db.inner.Tags, key, value)
	return s
}

func (s *nestedDatabase[P]) WithExistingElasticPool(name string) DatabaseAttach[P] {
	s.db.setElasticPool(name)
	return s
}

func (s *nestedDatabase[P]) DefineElasticPool(name string) ElasticPoolDefinition[DatabaseAttach[P]] {
	pool := s.db.definePool(name)
	return &nestedElasticPool[DatabaseAttach[P]]{pool: pool, parent: s}
}

func (s *nestedDatabase[P]) WithSourceDatabase(sourceID string) DatabaseWithCreateMode[P] {
	s.db.setSource(sourceID)
	return s
}

func (s *nestedDatabase[P]) WithMode(mode inner.CreateMode) DatabaseAttach[P] {
	s.db.setMode(mode)
	return s
}

func (s *nestedDatabase[P]) Attach() P { return s.parent }

// DatabaseDefinitionWithServer selects the server of a standalone database definition.
type DatabaseDefinitionWithServer interface {
	WithExistingSQLServer(resourceGroupName, serverName string) DatabaseDefinitionWithOptions
	// WithSQLServerID takes the server's resource ID. A malformed ID is
	// reported by Create.
	WithSQLServerID(serverID string) DatabaseDefinitionWithOptions
	WithSQLServer(server *Server) DatabaseDefinitionWithOptions
}

// DatabaseDefinitionWithOptions chooses between a pooled, copied or
// standalone database.
type DatabaseDefinitionWithOptions interface {
	DatabaseDefinitionWithCreate
	WithExistingElasticPool(name string) DatabaseDefinitionWithCreate
	// DefineElasticPool creates a pool before the database and places the
	// database in it.
	DefineElasticPool(name string) ElasticPoolDefinition[DatabaseDefinitionWithCreate]
	WithSourceDatabase(sourceID string) DatabaseDefinitionWithCreateMode
}

// DatabaseDefinitionWithCreateMode selects how a database is created from its source.
type DatabaseDefinitionWithCreateMode interface {
	WithMode(mode inner.CreateMode) DatabaseDefinitionWithCreate
}

// DatabaseDefinitionWithCreate sets optional settings and creates the database.
type DatabaseDefinitionWithCreate interface {
	WithEdition(edition inner.DatabaseEdition) DatabaseDefinitionWithCreate
	WithServiceObjective(objective inner.ServiceObjectiveName) DatabaseDefinitionWithCreate
	WithCollation(collation string) DatabaseDefinitionWithCreate
	WithMaxSizeBytes(size int64) DatabaseDefinitionWithCreate
	WithTag(key, value string) DatabaseDefinitionWithCreate
	Create(ctx context.Context) (*Database, error)
	CreateAsync(ctx context.Context) *fluent.Future[*Database]
}

type databaseDefinition struct {
	db  *Database
	err error
}

func (d *databaseDefinition) WithExistingSQLServer(resourceGroupName, serverName string) DatabaseDefinitionWithOptions {
	d.db.server = serverRef{resourceGroup: resourceGroupName, name: serverName}
	return d
}

func (d *databaseDefinition) WithSQLServerID(serverID string) DatabaseDefinitionWithOptions {
	ref, err := parseServerID(serverID)
	if err != nil {
		d.err = err
	}
	d.db.server = ref
	return d
}

func (d *databaseDefinition) WithSQLServer(server *Server) DatabaseDefinitionWithOptions {
	d.db.server = server.ref()
	return d
}

func (d *databaseDefinition) WithExistingElasticPool(name string) DatabaseDefinitionWithCreate {
	d.db.setElasticPool(name)
	return d
}

func (d *databaseDefinition) DefineElasticPool(name string) ElasticPoolDefinition[DatabaseDefinitionWithCreate] {
	pool := d.db.definePool(name)
	return &nestedElasticPool[DatabaseDefinitionWithCreate]{pool: pool, parent: d}
}

func (d *databaseDefinition) WithSourceDatabase(sourceID string) DatabaseDefinitionWithCreateMode {
	d.db.setSource(sourceID)
	return d
}

func (d *databaseDefinition) WithMode(mode inner.CreateMode) DatabaseDefinitionWithCreate {
	d.db.setMode(mode)
	return d
}

func (d *databaseDefinition) WithEdition(edition inner.DatabaseEdition) DatabaseDefinitionWithCreate {
	d.db.setEdition(edition)
	return d
}

func (d *databaseDefinition) WithServiceObjective(objective inner.ServiceObjectiveName) DatabaseDefinitionWithCreate {
	d.db.setServiceObjective(objective)
	return d
}

func (d *databaseDefinition) WithCollation(collation string) DatabaseDefinitionWithCreate {
	d.db.setCollation(collation)
	return d
}

func (d *databaseDefinition) WithMaxSizeBytes(size int64) DatabaseDefinitionWithCreate {
	d.db.setMaxSizeBytes(size)
	return d
}

func (d *databaseDefinition) WithTag(key, value string) DatabaseDefinitionWithCreate {
	setTag(&d.db.inner.Tags, key, value)
	return d
}

func (d *databaseDefinition) Create(ctx context.Context) (*Database, error) {
	return d.CreateAsync(ctx).Await()
}

func (d *databaseDefinition) CreateAsync(ctx context.Context) *fluent.Future[*Database] {
	return fluent.Async(ctx, func(ctx context.Context) (*Database, error) {
		if d.err != nil {
			return nil, d.err
		}
		return d.db.commit(ctx)
	})
}

// DatabaseUpdate accumulates changes to an existing database.
type DatabaseUpdate interface {
	WithEdition(edition inner.DatabaseEdition) DatabaseUpdate
	WithServiceObjective(objective inner.ServiceObjectiveName) DatabaseUpdate
	WithMaxSizeBytes(size int64) DatabaseUpdate
	WithExistingElasticPool(name string) DatabaseUpdate
	// WithNewElasticPool creates a pool of the given edition before the
	// database is written and moves the database into it.
	WithNewElasticPool(name string, edition inner.ElasticPoolEdition) DatabaseUpdate
	// DefineElasticPool is WithNewElasticPool with the full pool definition.
	DefineElasticPool(name string) ElasticPoolDefinition[DatabaseUpdate]
	// WithoutElasticPool takes the database out of its pool. Unless another
	// objective is requested it lands in Standard S0.
	WithoutElasticPool() DatabaseUpdate
	WithTag(key, value string) DatabaseUpdate
	Apply(ctx context.Context) (*Database, error)
	ApplyAsync(ctx context.Context) *fluent.Future[*Database]
}

type databaseUpdate struct {
	db *Database
}

func (u *databaseUpdate) WithEdition(edition inner.DatabaseEdition) DatabaseUpdate {
	u.db.setEdition(edition)
	return u
}

func (u *databaseUpdate) WithServiceObjective(objective inner.ServiceObjectiveName) DatabaseUpdate {
	u.db.setServiceObjective(objective)
	return u
}

func (u *databaseUpdate) WithMaxSizeBytes(size int64) DatabaseUpdate {
	u.db.setMaxSizeBytes(size)
	return u
}

func (u *databaseUpdate) WithExistingElasticPool(name string) DatabaseUpdate {
	u.db.setElasticPool(name)
	return u
}

func (u *databaseUpdate) WithNewElasticPool(name string, edition inner.ElasticPoolEdition) DatabaseUpdate {
	u.db.definePool(name).setEdition(edition)
	return u
}

func (u *databaseUpdate) DefineElasticPool(name string) ElasticPoolDefinition[DatabaseUpdate] {
	pool := u.db.definePool(name)
	return &nestedElasticPool[DatabaseUpdate]{pool: pool, parent: u}
}

func (u *databaseUpdate) WithoutElasticPool() DatabaseUpdate {
	u.db.clearElasticPool()
	p := u.db.properties()
	if p.RequestedServiceObjectiveName == nil || *p.RequestedServiceObjectiveName == inner.ServiceObjectiveNameElasticPool {
		u.db.setEdition(inner.DatabaseEditionStandard)
		u.db.setServiceObjective(inner.ServiceObjectiveNameS0)
	}
	return u
}

func (u *databaseUpdate) WithTag(key, value string) DatabaseUpdate {
	setTag(&u.db.inner.Tags, key, value)
	return u
}

func (u *databaseUpdate) Apply(ctx context.Context) (*Database, error) {
	return u.ApplyAsync(ctx).Await()
}

func (u *databaseUpdate) ApplyAsync(ctx context.Context) *fluent.Future[*Database] {
	return fluent.Async(ctx, u.db.commit)
}
