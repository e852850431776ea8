package sql

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/picklr-io/azmgmt/pkg/fluent"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
)

const firewallRuleNamePrefix = "firewall_"

// ServerDefinitionBlank is the first stage of a server definition.
type ServerDefinitionBlank interface {
	WithRegion(region string) ServerDefinitionWithGroup
}

// ServerDefinitionWithGroup selects the resource group of a new server.
type ServerDefinitionWithGroup interface {
	WithExistingResourceGroup(resourceGroupName string) ServerDefinitionWithAdministratorLogin
}

// ServerDefinitionWithAdministratorLogin sets the server administrator login.
type ServerDefinitionWithAdministratorLogin interface {
	WithAdministratorLogin(login string) ServerDefinitionWithAdministratorPassword
}

// ServerDefinitionWithAdministratorPassword sets the server administrator password.
type ServerDefinitionWithAdministratorPassword interface {
	WithAdministratorPassword(password string) ServerDefinitionWithCreate
}

// ServerDefinitionWithCreate holds every optional setting of a new server
// and the children created with it.
type ServerDefinitionWithCreate interface {
	// WithoutAccessFromAzureServices skips the AllowAllWindowsAzureIps rule
	// that is otherwise created with the server.
	WithoutAccessFromAzureServices() ServerDefinitionWithCreate
	WithActiveDirectoryAdministrator(login, objectID string) ServerDefinitionWithCreate

	WithNewFirewallRule(ipAddress string) ServerDefinitionWithCreate
	WithNewFirewallRuleRange(startIPAddress, endIPAddress string) ServerDefinitionWithCreate
	WithNewNamedFirewallRule(startIPAddress, endIPAddress, name string) ServerDefinitionWithCreate
	DefineFirewallRule(name string) FirewallRuleDefinition[ServerDefinitionWithCreate]

	WithNewElasticPool(name string, edition inner.ElasticPoolEdition, databaseNames ...string) ServerDefinitionWithCreate
	DefineElasticPool(name string) ElasticPoolDefinition[ServerDefinitionWithCreate]

	WithNewDatabase(name string) ServerDefinitionWithCreate
	DefineDatabase(name string) DatabaseDefinition[ServerDefinitionWithCreate]

	WithTag(key, value string) ServerDefinitionWithCreate
	WithTags(tags map[string]string) ServerDefinitionWithCreate

	Graph() (*taskgroup.Graph, error)
	Create(ctx context.Context) (*Server, error)
	CreateAsync(ctx context.Context) *fluent.Future[*Server]
}

// ServerUpdate accumulates changes to an existing server and its children.
type ServerUpdate interface {
	WithAdministratorPassword(password string) ServerUpdate
	WithActiveDirectoryAdministrator(login, objectID string) ServerUpdate

	WithNewFirewallRule(ipAddress string) ServerUpdate
	WithNewFirewallRuleRange(startIPAddress, endIPAddress string) ServerUpdate
	WithNewNamedFirewallRule(startIPAddress, endIPAddress, name string) ServerUpdate
	DefineFirewallRule(name string) FirewallRuleDefinition[ServerUpdate]
	WithoutFirewallRule(name string) ServerUpdate

	WithNewElasticPool(name string, edition inner.ElasticPoolEdition, databaseNames ...string) ServerUpdate
	DefineElasticPool(name string) ElasticPoolDefinition[ServerUpdate]
	WithoutElasticPool(name string) ServerUpdate

	WithNewDatabase(name string) ServerUpdate
	DefineDatabase(name string) DatabaseDefinition[ServerUpdate]
	WithoutDatabase(name string) ServerUpdate

	WithTag(key, value string) ServerUpdate
	WithTags(tags map[string]string) ServerUpdate
	WithoutTag(key string) ServerUpdate

	Graph() (*taskgroup.Graph, error)
	Apply(ctx context.Context) (*Server, error)
	ApplyAsync(ctx context.Context) *fluent.Future[*Server]
}

func (s *Server) defineFirewallRule(name string) *FirewallRule {
	rule := newFirewallRule(s.manager, s.ref(), name, emptyFirewallRule())
	s.firewallRules.PrepareDefine(rule)
	return rule
}

func (s *Server) addFirewallRule(name, startIPAddress, endIPAddress string) {
	s.defineFirewallRule(name).setRange(startIPAddress, endIPAddress)
}

func (s *Server) removeFirewallRule(name string) {
	s.firewallRules.PrepareRemove(newFirewallRule(s.manager, s.ref(), name, emptyFirewallRule()))
}

func (s *Server) defineElasticPool(name string) *ElasticPool {
	pool := newElasticPool(s.manager, s.ref(), name, inner.ElasticPoolInner{})
	pool.owner = s
	s.elasticPools.PrepareDefine(pool)
	return pool
}

func (s *Server) addElasticPool(name string, edition inner.ElasticPoolEdition, databaseNames []string) {
	pool := s.defineElasticPool(name)
	pool.setEdition(edition)
	for _, db := range databaseNames {
		pool.queueDatabase(db, fluent.ToBeCreated)
	}
}

func (s *Server) removeElasticPool(name string) {
	s.elasticPools.PrepareRemove(newElasticPool(s.manager, s.ref(), name, inner.ElasticPoolInner{}))
}

func (s *Server) defineDatabase(name string) *Database {
	db := newDatabase(s.manager, s.ref(), name, inner.DatabaseInner{})
	db.owner = s
	db.batch = s.databases.PrepareDefine(db)
	return db
}

func (s *Server) removeDatabase(name string) {
	s.databases.PrepareRemove(newDatabase(s.manager, s.ref(), name, inner.DatabaseInner{}))
}

func (s *Server) setTags(tags map[string]string) {
	for k, v := range tags {
		setTag(&s.inner.Tags, k, v)
	}
}

type serverDefinition struct {
	s *Server
}

func (d *serverDefinition) WithRegion(region string) ServerDefinitionWithGroup {
	d.s.inner.Location = to.Ptr(region)
	return d
}

func (d *serverDefinition) WithExistingResourceGroup(resourceGroupName string) ServerDefinitionWithAdministratorLogin {
	d.s.resourceGroup = resourceGroupName
	return d
}

func (d *serverDefinition) WithAdministratorLogin(login string) ServerDefinitionWithAdministratorPassword {
	d.s.properties().AdministratorLogin = to.Ptr(login)
	return d
}

func (d *serverDefinition) WithAdministratorPassword(password string) ServerDefinitionWithCreate {
	d.s.properties().AdministratorLoginPassword = to.Ptr(password)
	return d
}

func (d *serverDefinition) WithoutAccessFromAzureServices() ServerDefinitionWithCreate {
	d.s.allowAzureServices = false
	return d
}

func (d *serverDefinition) WithActiveDirectoryAdministrator(login, objectID string) ServerDefinitionWithCreate {
	d.s.queueADAdministrator(login, objectID)
	return d
}

func (d *serverDefinition) WithNewFirewallRule(ipAddress string) ServerDefinitionWithCreate {
	return d.WithNewNamedFirewallRule(ipAddress, ipAddress, randomName(firewallRuleNamePrefix))
}

func (d *serverDefinition) WithNewFirewallRuleRange(startIPAddress, endIPAddress string) ServerDefinitionWithCreate {
	return d.WithNewNamedFirewallRule(startIPAddress, endIPAddress, randomName(firewallRuleNamePrefix))
}

func (d *serverDefinition) WithNewNamedFirewallRule(startIPAddress, endIPAddress, name string) ServerDefinitionWithCreate {
	d.s.addFirewallRule(name, startIPAddress, endIPAddress)
	return d
}

func (d *serverDefinition) DefineFirewallRule(name string) FirewallRuleDefinition[ServerDefinitionWithCreate] {
	return &nestedFirewallRule[ServerDefinitionWithCreate]{rule: d.s.defineFirewallRule(name), parent: d}
}

func (d *serverDefinition) WithNewElasticPool(name string, edition inner.ElasticPoolEdition, databaseNames ...string) ServerDefinitionWithCreate {
	d.s.addElasticPool(name, edition, databaseNames)
	return d
}

func (d *serverDefinition) DefineElasticPool(name string) ElasticPoolDefinition[ServerDefinitionWithCreate] {
	return &nestedElasticPool[ServerDefinitionWithCreate]{pool: d.s.defineElasticPool(name), parent: d}
}

func (d *serverDefinition) WithNewDatabase(name string) ServerDefinitionWithCreate {
	d.s.defineDatabase(name)
	return d
}

func (d *serverDefinition) DefineDatabase(name string) DatabaseDefinition[ServerDefinitionWithCreate] {
	return &nestedDatabase[ServerDefinitionWithCreate]{db: d.s.defineDatabase(name), parent: d}
}

func (d *serverDefinition) WithTag(key, value string) ServerDefinitionWithCreate {
	setTag(&d.s.inner.Tags, key, value)
	return d
}

func (d *serverDefinition) WithTags(tags map[string]string) ServerDefinitionWithCreate {
	d.s.setTags(tags)
	return d
}

func (d *serverDefinition) Graph() (*taskgroup.Graph, error) { return d.s.Graph() }

func (d *serverDefinition) Create(ctx context.Context) (*Server, error) {
	return d.CreateAsync(ctx).Await()
}

func (d *serverDefinition) CreateAsync(ctx context.Context) *fluent.Future[*Server] {
	return fluent.Async(ctx, d.s.commit)
}

type serverUpdate struct {
	s *Server
}

func (u *serverUpdate) WithAdministratorPassword(password string) ServerUpdate {
	u.s.properties().AdministratorLoginPassword = to.Ptr(password)
	return u
}

func (u *serverUpdate) WithActiveDirectoryAdministrator(login, objectID string) ServerUpdate {
	u.s.queueADAdministrator(login, objectID)
	return u
}

func (u *serverUpdate) WithNewFirewallRule(ipAddress string) ServerUpdate {
	return u.WithNewNamedFirewallRule(ipAddress, ipAddress, randomName(firewallRuleNamePrefix))
}

func (u *serverUpdate) WithNewFirewallRuleRange(startIPAddress, endIPAddress string) ServerUpdate {
	return u.WithNewNamedFirewallRule(startIPAddress, endIPAddress, randomName(firewallRuleNamePrefix))
}

func (u *serverUpdate) WithNewNamedFirewallRule(startIPAddress, endIPAddress, name string) ServerUpdate {
	u.s.addFirewallRule(name, startIPAddress, endIPAddress)
	return u
}

func (u *serverUpdate) DefineFirewallRule(name string) FirewallRuleDefinition[ServerUpdate] {
	return &nestedFirewallRule[ServerUpdate]{rule: u.s.defineFirewallRule(name), parent: u}
}

func (u *serverUpdate) WithoutFirewallRule(name string) ServerUpdate {
	u.s.removeFirewallRule(name)
	return u
}

func (u *serverUpdate) WithNewElasticPool(name string, edition inner.ElasticPoolEdition, databaseNames ...string) ServerUpdate {
	u.s.addElasticPool(name, edition, databaseNames)
	return u
}

func (u *serverUpdate) DefineElasticPool(name string) ElasticPoolDefinition[ServerUpdate] {
	return &nestedElasticPool[ServerUpdate]{pool: u.s.defineElasticPool(name), parent: u}
}

func (u *serverUpdate) WithoutElasticPool(name string) ServerUpdate {
	u.s.removeElasticPool(name)
	return u
}

func (u *serverUpdate) WithNewDatabase(name string) ServerUpdate {
	u.s.defineDatabase(name)
	return u
}

func (u *serverUpdate) DefineDatabase(name string) DatabaseDefinition[ServerUpdate] {
	return &nestedDatabase[ServerUpdate]{db: u.s.defineDatabase(name), parent: u}
}

func (u *serverUpdate) WithoutDatabase(name string) ServerUpdate {
	u.s.removeDatabase(name)
	return u
}

func (u *serverUpdate) WithTag(key, value string) ServerUpdate {
	setTag(&u.s.inner.Tags, key, value)
	return u
}

func (u *serverUpdate) WithTags(tags map[string]string) ServerUpdate {
	u.s.setTags(tags)
	return u
}

func (u *serverUpdate) WithoutTag(key string) ServerUpdate {
	delete(u.s.inner.Tags, key)
	return u
}

func (u *serverUpdate) Graph() (*taskgroup.Graph, error) { return u.s.Graph() }

func (u *serverUpdate) Apply(ctx context.Context) (*Server, error) {
	return u.ApplyAsync(ctx).Await()
}

func (u *serverUpdate) ApplyAsync(ctx context.Context) *fluent.Future[*Server] {
	return fluent.Async(ctx, u.s.commit)
}
