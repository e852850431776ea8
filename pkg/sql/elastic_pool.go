package sql

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/picklr-io/azmgmt/pkg/fluent"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
)

// ElasticPool is a pool of resources shared by the databases placed in it.
type ElasticPool struct {
	manager *Manager
	server  serverRef
	name    string
	inner   inner.ElasticPoolInner

	// owner is set while the pool is queued in a server batch; databases
	// added to the pool are then queued in the same batch.
	owner *Server
	// group and databases are used when the pool is committed on its own.
	group     *taskgroup.TaskGroup
	databases *fluent.ExternalChildResources[*Database]
}

func newElasticPool(m *Manager, server serverRef, name string, in inner.ElasticPoolInner) *ElasticPool {
	return &ElasticPool{manager: m, server: server, name: name, inner: in}
}

// Name returns the pool name.
func (p *ElasticPool) Name() string { return p.name }

// ID returns the resource ID. It is empty until the pool has been written or read.
func (p *ElasticPool) ID() string { return deref(p.inner.ID) }

// ResourceGroupName returns the resource group of the parent server.
func (p *ElasticPool) ResourceGroupName() string { return p.server.resourceGroup }

// ServerName returns the parent server name.
func (p *ElasticPool) ServerName() string { return p.server.name }

// RegionName returns the pool location.
func (p *ElasticPool) RegionName() string { return deref(p.inner.Location) }

// Tags returns the pool tags.
func (p *ElasticPool) Tags() map[string]string { return stringMap(p.inner.Tags) }

// CreationDate returns when the pool was created.
func (p *ElasticPool) CreationDate() time.Time {
	if p.inner.Properties == nil {
		return time.Time{}
	}
	return derefTime(p.inner.Properties.CreationDate)
}

// State returns the pool state.
func (p *ElasticPool) State() inner.ElasticPoolState {
	if p.inner.Properties == nil {
		return ""
	}
	return deref(p.inner.Properties.State)
}

// Edition returns the pool edition.
func (p *ElasticPool) Edition() inner.ElasticPoolEdition {
	if p.inner.Properties == nil {
		return ""
	}
	return deref(p.inner.Properties.Edition)
}

// Dtu returns the total shared eDTUs of the pool.
func (p *ElasticPool) Dtu() int32 {
	if p.inner.Properties == nil {
		return 0
	}
	return deref(p.inner.Properties.Dtu)
}

// DatabaseDtuMax returns the most eDTUs one database can consume.
func (p *ElasticPool) DatabaseDtuMax() int32 {
	if p.inner.Properties == nil {
		return 0
	}
	return deref(p.inner.Properties.DatabaseDtuMax)
}

// DatabaseDtuMin returns the eDTUs guaranteed to every database.
func (p *ElasticPool) DatabaseDtuMin() int32 {
	if p.inner.Properties == nil {
		return 0
	}
	return deref(p.inner.Properties.DatabaseDtuMin)
}

// StorageMB returns the storage limit of the pool in megabytes.
func (p *ElasticPool) StorageMB() int32 {
	if p.inner.Properties == nil {
		return 0
	}
	return deref(p.inner.Properties.StorageMB)
}

// Inner returns the wire model.
func (p *ElasticPool) Inner() inner.ElasticPoolInner { return p.inner }

// Refresh reloads the pool.
func (p *ElasticPool) Refresh(ctx context.Context) error {
	in, err := p.manager.client.ElasticPools().Get(ctx, p.server.resourceGroup, p.server.name, p.name)
	if err != nil {
		return err
	}
	p.inner = in
	return nil
}

// Delete removes the pool.
func (p *ElasticPool) Delete(ctx context.Context) error {
	return p.DeleteResource(ctx)
}

// Update starts an update of the pool.
func (p *ElasticPool) Update() ElasticPoolUpdate {
	return &elasticPoolUpdate{pool: p}
}

// ListDatabases returns the databases in the pool.
func (p *ElasticPool) ListDatabases(ctx context.Context) ([]*Database, error) {
	list, err := p.manager.client.ElasticPools().ListDatabases(ctx, p.server.resourceGroup, p.server.name, p.name)
	if err != nil {
		return nil, err
	}
	out := make([]*Database, 0, len(list))
	for _, in := range list {
		out = append(out, newDatabase(p.manager, p.server, deref(in.Name), *in))
	}
	return out, nil
}

// ListDatabaseMetrics returns the database usage metrics of the pool. filter
// is an OData expression such as
// "name/value eq 'dtu_consumption_percent' and startTime eq '2017-01-01T00:00:00Z'";
// it is omitted when empty.
func (p *ElasticPool) ListDatabaseMetrics(ctx context.Context, filter string) ([]*DatabaseMetric, error) {
	list, err := p.manager.client.ElasticPools().ListMetrics(ctx, p.server.resourceGroup, p.server.name, p.name, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*DatabaseMetric, 0, len(list))
	for _, in := range list {
		out = append(out, &DatabaseMetric{inner: *in})
	}
	return out, nil
}

// ListDatabaseMetricDefinitions returns the metrics the pool can report.
func (p *ElasticPool) ListDatabaseMetricDefinitions(ctx context.Context) ([]*DatabaseMetricDefinition, error) {
	list, err := p.manager.client.ElasticPools().ListMetricDefinitions(ctx, p.server.resourceGroup, p.server.name, p.name)
	if err != nil {
		return nil, err
	}
	out := make([]*DatabaseMetricDefinition, 0, len(list))
	for _, in := range list {
		out = append(out, &DatabaseMetricDefinition{inner: *in})
	}
	return out, nil
}

// GetDatabase returns a database of the parent server.
func (p *ElasticPool) GetDatabase(ctx context.Context, name string) (*Database, error) {
	return p.manager.databases.GetBySQLServer(ctx, p.server.resourceGroup, p.server.name, name)
}

// AddNewDatabase creates a database in the pool.
func (p *ElasticPool) AddNewDatabase(ctx context.Context, name string) (*Database, error) {
	db := newDatabase(p.manager, p.poolServer(), name, inner.DatabaseInner{})
	db.setElasticPool(p.name)
	return db.commit(ctx)
}

// AddExistingDatabase moves a database of the parent server into the pool.
func (p *ElasticPool) AddExistingDatabase(ctx context.Context, name string) (*Database, error) {
	db, err := p.GetDatabase(ctx, name)
	if err != nil {
		return nil, err
	}
	db.setElasticPool(p.name)
	return db.commit(ctx)
}

// RemoveDatabase moves a database out of the pool into a Standard S0 tier.
func (p *ElasticPool) RemoveDatabase(ctx context.Context, name string) (*Database, error) {
	db, err := p.GetDatabase(ctx, name)
	if err != nil {
		return nil, err
	}
	db.clearElasticPool()
	db.setEdition(inner.DatabaseEditionStandard)
	db.setServiceObjective(inner.ServiceObjectiveNameS0)
	return db.commit(ctx)
}

func (p *ElasticPool) poolServer() serverRef {
	ref := p.server
	if ref.location == "" {
		ref.location = deref(p.inner.Location)
	}
	return ref
}

func (p *ElasticPool) properties() *inner.ElasticPoolProperties {
	if p.inner.Properties == nil {
		p.inner.Properties = &inner.ElasticPoolProperties{}
	}
	return p.inner.Properties
}

func (p *ElasticPool) setEdition(edition inner.ElasticPoolEdition) {
	p.properties().Edition = to.Ptr(edition)
}

func (p *ElasticPool) setDtu(dtu int32)            { p.properties().Dtu = to.Ptr(dtu) }
func (p *ElasticPool) setDatabaseDtuMin(dtu int32) { p.properties().DatabaseDtuMin = to.Ptr(dtu) }
func (p *ElasticPool) setDatabaseDtuMax(dtu int32) { p.properties().DatabaseDtuMax = to.Ptr(dtu) }
func (p *ElasticPool) setStorageMB(mb int32)       { p.properties().StorageMB = to.Ptr(mb) }

// queueDatabase places a database in the pool as part of the pending batch.
func (p *ElasticPool) queueDatabase(name string, op fluent.PendingOperation) {
	db := newDatabase(p.manager, p.poolServer(), name, inner.DatabaseInner{})
	db.setElasticPool(p.name)
	var target *fluent.ExternalChildResources[*Database]
	if p.owner != nil {
		db.owner = p.owner
		target = p.owner.databases
	} else {
		p.ownGroup()
		target = p.databases
	}
	var g *taskgroup.TaskGroup
	if op == fluent.ToBeUpdated {
		g = target.PrepareUpdate(db)
	} else {
		g = target.PrepareDefine(db)
	}
	db.batch = g
}

// ownGroup returns the task group used when the pool is committed outside a
// server batch.
func (p *ElasticPool) ownGroup() *taskgroup.TaskGroup {
	if p.group == nil {
		p.group = taskgroup.New(&resourceItem{
			key:   p.server.childKey(kindElasticPools, p.name),
			run:   p.CreateResource,
			after: func(bool) { p.databases.Clear() },
		})
		p.databases = fluent.NewExternalChildResources[*Database](kindDatabases, p.group)
	}
	return p.group
}

func (p *ElasticPool) commit(ctx context.Context) (*ElasticPool, error) {
	g := p.ownGroup()
	if err := p.databases.Err(); err != nil {
		p.databases.Clear()
		return nil, err
	}
	if err := p.manager.commit(ctx, g); err != nil {
		return nil, err
	}
	return p, nil
}

// ChildName implements fluent.Child.
func (p *ElasticPool) ChildName() string { return p.name }

// CreateResource implements fluent.Child.
func (p *ElasticPool) CreateResource(ctx context.Context) error {
	if p.inner.Location == nil {
		loc, err := p.manager.resolveLocation(ctx, &p.server)
		if err != nil {
			return err
		}
		p.inner.Location = to.Ptr(loc)
	}
	in, err := p.manager.client.ElasticPools().CreateOrUpdate(ctx, p.server.resourceGroup, p.server.name, p.name, p.inner)
	if err != nil {
		return err
	}
	p.inner = in
	return nil
}

// UpdateResource implements fluent.Child.
func (p *ElasticPool) UpdateResource(ctx context.Context) error {
	return p.CreateResource(ctx)
}

// DeleteResource implements fluent.Child.
func (p *ElasticPool) DeleteResource(ctx context.Context) error {
	return p.manager.client.ElasticPools().Delete(ctx, p.server.resourceGroup, p.server.name, p.name)
}

// ElasticPoolDefinition is the first stage of an elastic pool defined inside
// another definition.
type ElasticPoolDefinition[P any] interface {
	WithEdition(edition inner.ElasticPoolEdition) ElasticPoolAttach[P]
	WithBasicPool() ElasticPoolWithBasicEdition[P]
	WithStandardPool() ElasticPoolWithStandardEdition[P]
	WithPremiumPool() ElasticPoolWithPremiumEdition[P]
}

// ElasticPoolAttach sets untyped pool options and returns to the parent.
type ElasticPoolAttach[P any] interface {
	WithDtu(dtu int32) ElasticPoolAttach[P]
	WithDatabaseDtuMin(dtu int32) ElasticPoolAttach[P]
	WithDatabaseDtuMax(dtu int32) ElasticPoolAttach[P]
	WithStorageCapacity(storageMB int32) ElasticPoolAttach[P]
	WithNewDatabase(name string) ElasticPoolAttach[P]
	WithExistingDatabase(name string) ElasticPoolAttach[P]
	WithTag(key, value string) ElasticPoolAttach[P]
	Attach() P
}

// ElasticPoolWithBasicEdition sets the options valid for a Basic pool.
type ElasticPoolWithBasicEdition[P any] interface {
	WithReservedDtu(dtu ElasticPoolBasicEDTUs) ElasticPoolWithBasicEdition[P]
	WithDatabaseDtuMax(dtu ElasticPoolBasicMaxEDTUs) ElasticPoolWithBasicEdition[P]
	WithDatabaseDtuMin(dtu ElasticPoolBasicMinEDTUs) ElasticPoolWithBasicEdition[P]
	WithNewDatabase(name string) ElasticPoolWithBasicEdition[P]
	WithExistingDatabase(name string) ElasticPoolWithBasicEdition[P]
	Attach() P
}

// ElasticPoolWithStandardEdition sets the options valid for a Standard pool.
type ElasticPoolWithStandardEdition[P any] interface {
	WithReservedDtu(dtu ElasticPoolStandardEDTUs) ElasticPoolWithStandardEdition[P]
	WithDatabaseDtuMax(dtu ElasticPoolStandardMaxEDTUs) ElasticPoolWithStandardEdition[P]
	WithDatabaseDtuMin(dtu ElasticPoolStandardMinEDTUs) ElasticPoolWithStandardEdition[P]
	WithStorageCapacity(storage ElasticPoolStandardStorage) ElasticPoolWithStandardEdition[P]
	WithNewDatabase(name string) ElasticPoolWithStandardEdition[P]
	WithExistingDatabase(name string) ElasticPoolWithStandardEdition[P]
	Attach() P
}

// ElasticPoolWithPremiumEdition sets the options valid for a Premium pool.
type ElasticPoolWithPremiumEdition[P any] interface {
	WithReservedDtu(dtu ElasticPoolPremiumEDTUs) ElasticPoolWithPremiumEdition[P]
	WithDatabaseDtuMax(dtu ElasticPoolPremiumMaxEDTUs) ElasticPoolWithPremiumEdition[P]
	WithDatabaseDtuMin(dtu ElasticPoolPremiumMinEDTUs) ElasticPoolWithPremiumEdition[P]
	WithStorageCapacity(storage ElasticPoolPremiumStorage) ElasticPoolWithPremiumEdition[P]
	WithNewDatabase(name string) ElasticPoolWithPremiumEdition[P]
	WithExistingDatabase(name string) ElasticPoolWithPremiumEdition[P]
	Attach() P
}

type nestedElasticPool[P any] struct {
	pool   *ElasticPool
	parent P
}

func (s *nestedElasticPool[P]) WithEdition(edition inner.ElasticPoolEdition) ElasticPoolAttach[P] {
	s.pool.setEdition(edition)
	return s
}

func (s *nestedElasticPool[P]) WithBasicPool() ElasticPoolWithBasicEdition[P] {
	s.pool.setEdition(inner.ElasticPoolEditionBasic)
	return &basicElasticPool[P]{s}
}

func (s *nestedElasticPool[P]) WithStandardPool() ElasticPoolWithStandardEdition[P] {
	s.pool.setEdition(inner.ElasticPoolEditionStandard)
	return &standardElasticPool[P]{s}
}

func (s *nestedElasticPool[P]) WithPremiumPool() ElasticPoolWithPremiumEdition[P] {
	s.pool.setEdition(inner.ElasticPoolEditionPremium)
	return &premiumElasticPool[P]{s}
}

func (s *nestedElasticPool[P]) WithDtu(dtu int32) ElasticPoolAttach[P] {
	s.pool.setDtu(dtu)
	return s
}

func (s *nestedElasticPool[P]) WithDatabaseDtuMin(dtu int32) ElasticPoolAttach[P] {
	s.pool.setDatabaseDtuMin(dtu)
	return s
}

func (s *nestedElasticPool[P]) WithDatabaseDtuMax(dtu int32) ElasticPoolAttach[P] {
	s.pool.setDatabaseDtuMax(dtu)
	return s
}

func (s *nestedElasticPool[P]) WithStorageCapacity(storageMB int32) ElasticPoolAttach[P] {
	s.pool.setStorageMB(storageMB)
	return s
}

func (s *nestedElasticPool[P]) WithNewDatabase(name string) ElasticPoolAttach[P] {
	s.pool.queueDatabase(name, fluent.ToBeCreated)
	return s
}

func (s *nestedElasticPool[P]) WithExistingDatabase(name string) ElasticPoolAttach[P] {
	s.pool.queueDatabase(name, fluent.ToBeUpdated)
	return s
}

func (s *nestedElasticPool[P]) WithTag(key, value string) ElasticPoolAttach[P] {
	setTag(&s.pool.inner.Tags, key, value)
	return s
}

func (s *nestedElasticPool[P]) Attach() P { return s.parent }

type basicElasticPool[P any] struct{ n *nestedElasticPool[P] }

func (s *basicElasticPool[P]) WithReservedDtu(dtu ElasticPoolBasicEDTUs) ElasticPoolWithBasicEdition[P] {
	s.n.pool.setDtu(int32(dtu))
	return s
}

func (s *basicElasticPool[P]) WithDatabaseDtuMax(dtu ElasticPoolBasicMaxEDTUs) ElasticPoolWithBasicEdition[P] {
	s.n.pool.setDatabaseDtuMax(int32(dtu))
	return s
}

func (s *basicElasticPool[P]) WithDatabaseDtuMin(dtu ElasticPoolBasicMinEDTUs) ElasticPoolWithBasicEdition[P] {
	s.n.pool.setDatabaseDtuMin(int32(dtu))
	return s
}

func (s *basicElasticPool[P]) WithNewDatabase(name string) ElasticPoolWithBasicEdition[P] {
	s.n.WithNewDatabase(name)
	return s
}

func (s *basicElasticPool[P]) WithExistingDatabase(name string) ElasticPoolWithBasicEdition[P] {
	s.n.WithExistingDatabase(name)
	return s
}

func (s *basicElasticPool[P]) Attach() P { return s.n.parent }

type standardElasticPool[P any] struct{ n *nestedElasticPool[P] }

func (s *standardElasticPool[P]) WithReservedDtu(dtu ElasticPoolStandardEDTUs) ElasticPoolWithStandardEdition[P] {
	s.n.pool.setDtu(int32(dtu))
	return s
}

func (s *standardElasticPool[P]) WithDatabaseDtuMax(dtu ElasticPoolStandardMaxEDTUs) ElasticPoolWithStandardEdition[P] {
	s.n.pool.setDatabaseDtuMax(int32(dtu))
	return s
}

func (s *standardElasticPool[P]) WithDatabaseDtuMin(dtu ElasticPoolStandardMinEDTUs) ElasticPoolWithStandardEdition[P] {
	s.n.pool.setDatabaseDtuMin(int32(dtu))
	return s
}

func (s *standardElasticPool[P]) WithStorageCapacity(storage ElasticPoolStandardStorage) ElasticPoolWithStandardEdition[P] {
	s.n.pool.setStorageMB(int32(storage))
	return s
}

func (s *standardElasticPool[P]) WithNewDatabase(name string) ElasticPoolWithStandardEdition[P] {
	s.n.WithNewDatabase(name)
	return s
}

func (s *standardElasticPool[P]) WithExistingDatabase(name string) ElasticPoolWithStandardEdition[P] {
	s.n.WithExistingDatabase(name)
	return s
}

func (s *standardElasticPool[P]) Attach() P { return s.n.parent }

type premiumElasticPool[P any] struct{ n *nestedElasticPool[P] }

func (s *premiumElasticPool[P]) WithReservedDtu(dtu ElasticPoolPremiumEDTUs) ElasticPoolWithPremiumEdition[P] {
	s.n.pool.setDtu(int32(dtu))
	return s
}

func (s *premiumElasticPool[P]) WithDatabaseDtuMax(dtu ElasticPoolPremiumMaxEDTUs) ElasticPoolWithPremiumEdition[P] {
	s.n.pool.setDatabaseDtuMax(int32(dtu))
	return s
}

func (s *premiumElasticPool[P]) WithDatabaseDtuMin(dtu ElasticPoolPremiumMinEDTUs) ElasticPoolWithPremiumEdition[P] {
	s.n.pool.setDatabaseDtuMin(int32(dtu))
	return s
}

func (s *premiumElasticPool[P]) WithStorageCapacity(storage ElasticPoolPremiumStorage) ElasticPoolWithPremiumEdition[P] {
	s.n.pool.setStorageMB(int32(storage))
	return s
}

func (s *premiumElasticPool[P]) WithNewDatabase(name string) ElasticPoolWithPremiumEdition[P] {
	s.n.WithNewDatabase(name)
	return s
}

func (s *premiumElasticPool[P]) WithExistingDatabase(name string) ElasticPoolWithPremiumEdition[P] {
	s.n.WithExistingDatabase(name)
	return s
}

func (s *premiumElasticPool[P]) Attach() P { return s.n.parent }

// ElasticPoolDefinitionWithServer selects the server of a standalone pool definition.
type ElasticPoolDefinitionWithServer interface {
	WithExistingSQLServer(resourceGroupName, serverName string) ElasticPoolDefinitionWithEdition
	// WithSQLServerID takes the server's resource ID. A malformed ID is
	// reported by Create.
	WithSQLServerID(serverID string) ElasticPoolDefinitionWithEdition
	WithSQLServer(server *Server) ElasticPoolDefinitionWithEdition
}

// ElasticPoolDefinitionWithEdition selects the edition of a standalone pool.
type ElasticPoolDefinitionWithEdition interface {
	WithEdition(edition inner.ElasticPoolEdition) ElasticPoolDefinitionWithCreate
	WithBasicPool() ElasticPoolDefinitionWithCreate
	WithStandardPool() ElasticPoolDefinitionWithCreate
	WithPremiumPool() ElasticPoolDefinitionWithCreate
}

// ElasticPoolDefinitionWithCreate sets optional settings and creates the pool.
type ElasticPoolDefinitionWithCreate interface {
	WithDtu(dtu int32) ElasticPoolDefinitionWithCreate
	WithDatabaseDtuMin(dtu int32) ElasticPoolDefinitionWithCreate
	WithDatabaseDtuMax(dtu int32) ElasticPoolDefinitionWithCreate
	WithStorageCapacity(storageMB int32) ElasticPoolDefinitionWithCreate
	WithNewDatabase(name string) ElasticPoolDefinitionWithCreate
	WithExistingDatabase(name string) ElasticPoolDefinitionWithCreate
	WithTag(key, value string) ElasticPoolDefinitionWithCreate
	Create(ctx context.Context) (*ElasticPool, error)
	CreateAsync(ctx context.Context) *fluent.Future[*ElasticPool]
}

type elasticPoolDefinition struct {
	pool *ElasticPool
	err  error
}

func (d *elasticPoolDefinition) WithExistingSQLServer(resourceGroupName, serverName string) ElasticPoolDefinitionWithEdition {
	d.pool.server = serverRef{resourceGroup: resourceGroupName, name: serverName}
	return d
}

func (d *elasticPoolDefinition) WithSQLServerID(serverID string) ElasticPoolDefinitionWithEdition {
	ref, err := parseServerID(serverID)
	if err != nil {
		d.err = err
	}
	d.pool.server = ref
	return d
}

func (d *elasticPoolDefinition) WithSQLServer(server *Server) ElasticPoolDefinitionWithEdition {
	d.pool.server = server.ref()
	return d
}

func (d *elasticPoolDefinition) WithEdition(edition inner.ElasticPoolEdition) ElasticPoolDefinitionWithCreate {
	d.pool.setEdition(edition)
	return d
}

func (d *elasticPoolDefinition) WithBasicPool() ElasticPoolDefinitionWithCreate {
	return d.WithEdition(inner.ElasticPoolEditionBasic)
}

func (d *elasticPoolDefinition) WithStandardPool() ElasticPoolDefinitionWithCreate {
	return d.WithEdition(inner.ElasticPoolEditionStandard)
}

func (d *elasticPoolDefinition) WithPremiumPool() ElasticPoolDefinitionWithCreate {
	return d.WithEdition(inner.ElasticPoolEditionPremium)
}

func (d *elasticPoolDefinition) WithDtu(dtu int32) ElasticPoolDefinitionWithCreate {
	d.pool.setDtu(dtu)
	return d
}

func (d *elasticPoolDefinition) WithDatabaseDtuMin(dtu int32) ElasticPoolDefinitionWithCreate {
	d.pool.setDatabaseDtuMin(dtu)
	return d
}

func (d *elasticPoolDefinition) WithDatabaseDtuMax(dtu int32) ElasticPoolDefinitionWithCreate {
	d.pool.setDatabaseDtuMax(dtu)
	return d
}

func (d *elasticPoolDefinition) WithStorageCapacity(storageMB int32) ElasticPoolDefinitionWithCreate {
	d.pool.setStorageMB(storageMB)
	return d
}

func (d *elasticPoolDefinition) WithNewDatabase(name string) ElasticPoolDefinitionWithCreate {
	d.pool.queueDatabase(name, fluent.ToBeCreated)
	return d
}

func (d *elasticPoolDefinition) WithExistingDatabase(name string) ElasticPoolDefinitionWithCreate {
	d.pool.queueDatabase(name, fluent.ToBeUpdated)
	return d
}

func (d *elasticPoolDefinition) WithTag(key, value string) ElasticPoolDefinitionWithCreate {
	setTag(&d.pool.inner.Tags, key, value)
	return d
}

func (d *elasticPoolDefinition) Create(ctx context.Context) (*ElasticPool, error) {
	return d.CreateAsync(ctx).Await()
}

func (d *elasticPoolDefinition) CreateAsync(ctx context.Context) *fluent.Future[*ElasticPool] {
	return fluent.Async(ctx, func(ctx context.Context) (*ElasticPool, error) {
		if d.err != nil {
			return nil, d.err
		}
		return d.pool.commit(ctx)
	})
}

// ElasticPoolUpdate accumulates changes to an existing pool.
type ElasticPoolUpdate interface {
	WithDtu(dtu int32) ElasticPoolUpdate
	WithDatabaseDtuMin(dtu int32) ElasticPoolUpdate
	WithDatabaseDtuMax(dtu int32) ElasticPoolUpdate
	WithStorageCapacity(storageMB int32) ElasticPoolUpdate
	WithNewDatabase(name string) ElasticPoolUpdate
	WithExistingDatabase(name string) ElasticPoolUpdate
	WithTag(key, value string) ElasticPoolUpdate
	Apply(ctx context.Context) (*ElasticPool, error)
	ApplyAsync(ctx context.Context) *fluent.Future[*ElasticPool]
}

type elasticPoolUpdate struct {
	pool *ElasticPool
}

func (u *elasticPoolUpdate) WithDtu(dtu int32) ElasticPoolUpdate {
	u.pool.setDtu(dtu)
	return u
}

func (u *elasticPoolUpdate) WithDatabaseDtuMin(dtu int32) ElasticPoolUpdate {
	u.pool.setDatabaseDtuMin(dtu)
	return u
}

func (u *elasticPoolUpdate) WithDatabaseDtuMax(dtu int32) ElasticPoolUpdate {
	u.pool.setDatabaseDtuMax(dtu)
	return u
}

func (u *elasticPoolUpdate) WithStorageCapacity(storageMB int32) ElasticPoolUpdate {
	u.pool.setStorageMB(storageMB)
	return u
}

func (u *elasticPoolUpdate) WithNewDatabase(name string) ElasticPoolUpdate {
	u.pool.queueDatabase(name, fluent.ToBeCreated)
	return u
}

func (u *elasticPoolUpdate) WithExistingDatabase(name string) ElasticPoolUpdate {
	u.pool.queueDatabase(name, fluent.ToBeUpdated)
	return u
}

func (u *elasticPoolUpdate) WithTag(key, value string) ElasticPoolUpdate {
	setTag(&u.pool.inner.Tags, key, value)
	return u
}

func (u *elasticPoolUpdate) Apply(ctx context.Context) (*ElasticPool, error) {
	return u.ApplyAsync(ctx).Await()
}

func (u *elasticPoolUpdate) ApplyAsync(ctx context.Context) *fluent.Future[*ElasticPool] {
	return fluent.Async(ctx, u.pool.commit)
}
