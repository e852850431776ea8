package sql

import (
	"context"
	"errors"

	"github.com/picklr-io/azmgmt/pkg/arm"
	"github.com/picklr-io/azmgmt/pkg/fluent"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
)

// Server is an Azure SQL server together with the child mutations queued
// by its current definition or update.
type Server struct {
	manager       *Manager
	resourceGroup string
	name          string
	inner         inner.ServerInner

	group         *taskgroup.TaskGroup
	firewallRules *fluent.ExternalChildResources[*FirewallRule]
	elasticPools  *fluent.ExternalChildResources[*ElasticPool]
	databases     *fluent.ExternalChildResources[*Database]
	adAdmin       *taskgroup.TaskGroup

	creating           bool
	allowAzureServices bool
}

func newServer(m *Manager, resourceGroup, name string, in inner.ServerInner) *Server {
	s := &Server{
		manager:       m,
		resourceGroup: resourceGroup,
		name:          name,
		inner:         in,
	}
	s.group = taskgroup.New(&serverTask{s: s})
	s.firewallRules = fluent.NewExternalChildResources[*FirewallRule](kindFirewallRules, s.group)
	s.elasticPools = fluent.NewExternalChildResources[*ElasticPool](kindElasticPools, s.group)
	s.databases = fluent.NewExternalChildResources[*Database](kindDatabases, s.group)
	return s
}

func (s *Server) Name() string { return s.name }

// ID returns the resource ID. It is empty until the server has been written or read.
func (s *Server) ID() string { return deref(s.inner.ID) }

func (s *Server) ResourceGroupName() string { return s.resourceGroup }

func (s *Server) RegionName() string { return deref(s.inner.Location) }

func (s *Server) Tags() map[string]string { return stringMap(s.inner.Tags) }

// Kind returns the server kind, such as "v12.0".
func (s *Server) Kind() string { return deref(s.inner.Kind) }

func (s *Server) props() inner.ServerProperties {
	if s.inner.Properties == nil {
		return inner.ServerProperties{}
	}
	return *s.inner.Properties
}

func (s *Server) Version() inner.ServerVersion { return deref(s.props().Version) }

func (s *Server) FullyQualifiedDomainName() string {
	return deref(s.props().FullyQualifiedDomainName)
}

func (s *Server) AdministratorLogin() string { return deref(s.props().AdministratorLogin) }

func (s *Server) State() string { return deref(s.props().State) }

func (s *Server) Inner() inner.ServerInner { return s.inner }

// FirewallRules returns the firewall rule operations of the server.
func (s *Server) FirewallRules() *ServerFirewallRules { return &ServerFirewallRules{server: s} }

// ElasticPools returns the elastic pool operations of the server.
func (s *Server) ElasticPools() *ServerElasticPools { return &ServerElasticPools{server: s} }

// Databases returns the database operations of the server.
func (s *Server) Databases() *ServerDatabases { return &ServerDatabases{server: s} }

// Refresh reloads the server.
func (s *Server) Refresh(ctx context.Context) error {
	in, err := s.manager.client.Servers().Get(ctx, s.resourceGroup, s.name)
	if err != nil {
		return err
	}
	s.inner = in
	return nil
}

// Delete removes the server and everything on it.
func (s *Server) Delete(ctx context.Context) error {
	return s.manager.client.Servers().Delete(ctx, s.resourceGroup, s.name)
}

// Update starts an update of the server.
func (s *Server) Update() ServerUpdate {
	s.creating = false
	return &serverUpdate{s: s}
}

// Graph returns the task graph the pending batch would run.
func (s *Server) Graph() (*taskgroup.Graph, error) {
	return s.group.Graph()
}

// SetAccessFromAzureServices makes sure the rule admitting Azure services exists.
func (s *Server) SetAccessFromAzureServices(ctx context.Context) (*FirewallRule, error) {
	rule, err := s.FirewallRules().Get(ctx, AllowAllAzureIPsRuleName)
	if err == nil {
		return rule, nil
	}
	if !arm.IsNotFound(err) {
		return nil, err
	}
	return s.allowAllRule().commit(ctx)
}

// RemoveAccessFromAzureServices deletes the rule admitting Azure services, if present.
func (s *Server) RemoveAccessFromAzureServices(ctx context.Context) error {
	return s.FirewallRules().Delete(ctx, AllowAllAzureIPsRuleName)
}

// SetActiveDirectoryAdministrator makes the Azure AD principal objectID,
// signing in as login, the server administrator.
func (s *Server) SetActiveDirectoryAdministrator(ctx context.Context, login, objectID string) (*ActiveDirectoryAdministrator, error) {
	return s.manager.setADAdministrator(ctx, s.ref(), login, objectID)
}

// GetActiveDirectoryAdministrator returns the administrator, or nil when none is set.
func (s *Server) GetActiveDirectoryAdministrator(ctx context.Context) (*ActiveDirectoryAdministrator, error) {
	in, err := s.manager.client.ServerAzureADAdministrators().Get(ctx, s.resourceGroup, s.name)
	if arm.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ActiveDirectoryAdministrator{inner: in}, nil
}

// RemoveActiveDirectoryAdministrator removes the administrator.
func (s *Server) RemoveActiveDirectoryAdministrator(ctx context.Context) error {
	return s.manager.client.ServerAzureADAdministrators().Delete(ctx, s.resourceGroup, s.name)
}

func (s *Server) key() string { return serverKey(s.resourceGroup, s.name) }

func (s *Server) ref() serverRef {
	return serverRef{resourceGroup: s.resourceGroup, name: s.name, location: deref(s.inner.Location)}
}

func (s *Server) properties() *inner.ServerProperties {
	if s.inner.Properties == nil {
		s.inner.Properties = &inner.ServerProperties{}
	}
	return s.inner.Properties
}

func (s *Server) allowAllRule() *FirewallRule {
	return newFirewallRule(s.manager, s.ref(), AllowAllAzureIPsRuleName, emptyFirewallRule()).
		setRange(allowAllAzureIPsAddress, allowAllAzureIPsAddress)
}

// queueADAdministrator replaces any administrator queued in the batch.
func (s *Server) queueADAdministrator(login, objectID string) {
	if s.adAdmin != nil {
		s.group.RemovePostRunDependent(s.adAdmin)
	}
	s.adAdmin = taskgroup.New(&resourceItem{
		key: s.key() + "/administrators/activeDirectory",
		run: func(ctx context.Context) error {
			_, err := s.manager.setADAdministrator(ctx, s.ref(), login, objectID)
			return err
		},
	})
	s.group.AddPostRunDependent(s.adAdmin)
}

func (s *Server) clearPending() {
	s.firewallRules.Clear()
	s.elasticPools.Clear()
	s.databases.Clear()
	if s.adAdmin != nil {
		s.group.RemovePostRunDependent(s.adAdmin)
		s.adAdmin = nil
	}
}

// commit writes the server and every queued child. Conflicting child
// actions fail the batch before anything is sent.
func (s *Server) commit(ctx context.Context) (*Server, error) {
	if err := errors.Join(s.firewallRules.Err(), s.elasticPools.Err(), s.databases.Err()); err != nil {
		s.clearPending()
		return nil, err
	}
	if err := s.manager.commit(ctx, s.group); err != nil {
		return nil, err
	}
	return s, nil
}

// serverTask is the root item of a server batch.
type serverTask struct {
	s       *Server
	written bool
	// autoRule is set while the Azure services rule in the batch was queued
	// by BeforeGroupInvoke rather than by the caller.
	autoRule bool
}

func (t *serverTask) Key() string { return t.s.key() }

func (t *serverTask) Invoke(ctx context.Context) error {
	s := t.s
	in, err := s.manager.client.Servers().CreateOrUpdate(ctx, s.resourceGroup, s.name, s.inner)
	if err != nil {
		return err
	}
	s.inner = in
	t.written = true
	return nil
}

// BeforeGroupInvoke queues the Azure services rule for a new server and
// orders pooled databases after pools defined in the same batch. The rule
// follows the builder state at each call, so a Graph taken before
// WithoutAccessFromAzureServices does not leave it queued.
func (t *serverTask) BeforeGroupInvoke(g *taskgroup.TaskGroup) {
	s := t.s
	_, _, queued := s.firewallRules.Pending(AllowAllAzureIPsRuleName)
	switch want := s.creating && s.allowAzureServices; {
	case want && !queued:
		s.firewallRules.PrepareDefine(s.allowAllRule())
		t.autoRule = true
	case !want && t.autoRule:
		s.firewallRules.Discard(AllowAllAzureIPsRuleName)
		t.autoRule = false
	}
	for _, name := range s.databases.Names() {
		db, op, _ := s.databases.Pending(name)
		poolName := db.ElasticPoolName()
		if op == fluent.ToBeRemoved || poolName == "" {
			continue
		}
		if _, poolOp, ok := s.elasticPools.Pending(poolName); !ok || poolOp == fluent.ToBeRemoved {
			continue
		}
		dbGroup, _ := s.databases.Group(name)
		poolGroup, _ := s.elasticPools.Group(poolName)
		dbGroup.AddDependency(poolGroup)
	}
}

func (t *serverTask) AfterPostRun(ctx context.Context, isGroupFaulted bool) error {
	s := t.s
	if t.written {
		s.creating = false
		if s.inner.Properties != nil {
			s.inner.Properties.AdministratorLoginPassword = nil
		}
	}
	t.written = false
	t.autoRule = false
	s.clearPending()
	return nil
}

// parseServerID returns the server addressed by a server resource ID.
func parseServerID(id string) (serverRef, error) {
	rg, name, err := arm.ParseTopLevelID(id)
	if err != nil {
		return serverRef{}, err
	}
	return serverRef{resourceGroup: rg, name: name}, nil
}

// parseChildID returns the server and child name addressed by a child resource ID.
func parseChildID(id string) (serverRef, string, error) {
	cid, err := arm.ParseChildID(id)
	if err != nil {
		return serverRef{}, "", err
	}
	return serverRef{resourceGroup: cid.ResourceGroup, name: cid.ParentName}, cid.Name, nil
}
