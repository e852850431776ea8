package sql

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/picklr-io/azmgmt/pkg/arm"
	"github.com/picklr-io/azmgmt/pkg/arm/armtest"
	"github.com/picklr-io/azmgmt/pkg/fluent"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, tenantID string) (*Manager, *armtest.Server) {
	t.Helper()
	srv := armtest.NewServer(t)
	cl, err := arm.NewClient(armtest.Credential{}, srv.ClientOptions())
	require.NoError(t, err)
	return NewManagerFromClient(armtest.SubscriptionID, cl, &ManagerOptions{TenantID: tenantID}), srv
}

func defineServer(m *Manager, rg, name string) ServerDefinitionWithCreate {
	return m.Servers().Define(name).
		WithRegion("eastus").
		WithExistingResourceGroup(rg).
		WithAdministratorLogin("admin1").
		WithAdministratorPassword("P@ssw0rd!")
}

func createServer(t *testing.T, m *Manager, rg, name string) *Server {
	t.Helper()
	s, err := defineServer(m, rg, name).WithoutAccessFromAzureServices().Create(context.Background())
	require.NoError(t, err)
	return s
}

func put(path string) string { return http.MethodPut + " " + path }

func indexOf(slice []string, s string) int {
	for i, v := range slice {
		if v == s {
			return i
		}
	}
	return -1
}

func TestServer_DefineRoundTrip(t *testing.T) {
	m, srv := newTestManager(t, armtest.TenantID)

	s, err := defineServer(m, "rg1", "sql1").
		WithTag("env", "test").
		Create(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sql1", s.Name())
	assert.Equal(t, "rg1", s.ResourceGroupName())
	assert.Equal(t, armtest.ServerPath("rg1", "sql1"), s.ID())
	assert.Equal(t, "admin1", s.AdministratorLogin())
	assert.Equal(t, "eastus", s.RegionName())
	assert.Equal(t, "v12.0", s.Kind())
	assert.Equal(t, inner.ServerVersionOneTwoFullStopZero, s.Version())
	assert.Equal(t, "sql1.database.windows.net", s.FullyQualifiedDomainName())
	assert.Equal(t, map[string]string{"env": "test"}, s.Tags())

	writes := srv.Writes()
	require.NotEmpty(t, writes)
	assert.Equal(t, put(armtest.ServerPath("rg1", "sql1")), writes[0])

	body := srv.Requests()[0].Body["properties"].(map[string]any)
	assert.Equal(t, "P@ssw0rd!", body["administratorLoginPassword"])
}

func TestServer_AllowsAzureServicesByDefault(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()

	s, err := defineServer(m, "rg1", "sql1").Create(ctx)
	require.NoError(t, err)

	rules, err := s.FirewallRules().List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, AllowAllAzureIPsRuleName, rules[0].Name())
	assert.Equal(t, "0.0.0.0", rules[0].StartIPAddress())
	assert.Equal(t, "0.0.0.0", rules[0].EndIPAddress())

	writes := srv.Writes()
	ruleWrite := indexOf(writes, put(armtest.ChildPath("rg1", "sql1", "firewallRules", AllowAllAzureIPsRuleName)))
	assert.Greater(t, ruleWrite, indexOf(writes, put(armtest.ServerPath("rg1", "sql1"))))
}

func TestServer_WithoutAccessFromAzureServices(t *testing.T) {
	m, _ := newTestManager(t, "")
	ctx := context.Background()

	s, err := defineServer(m, "rg1", "sql1").
		DefineFirewallRule("fr1").WithIPAddress("0.0.0.1").Attach().
		WithoutAccessFromAzureServices().
		Create(ctx)
	require.NoError(t, err)

	rules, err := s.FirewallRules().List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "fr1", rules[0].Name())
	assert.Equal(t, "0.0.0.1", rules[0].StartIPAddress())
	assert.Equal(t, "0.0.0.1", rules[0].EndIPAddress())
	assert.Equal(t, "v12.0", rules[0].Kind())
	assert.Equal(t, "eastus", rules[0].RegionName())
}

func TestServer_GraphThenWithoutAccessFromAzureServices(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()

	def := defineServer(m, "rg1", "sql1")
	g, err := def.Graph()
	require.NoError(t, err)
	assert.Contains(t, g.TopoOrder, "rg1/servers/sql1/firewallRules/"+AllowAllAzureIPsRuleName)

	s, err := def.WithoutAccessFromAzureServices().Create(ctx)
	require.NoError(t, err)

	rules, err := s.FirewallRules().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)
	assert.Equal(t, -1, indexOf(srv.Writes(), put(armtest.ChildPath("rg1", "sql1", "firewallRules", AllowAllAzureIPsRuleName))))
}

func TestServer_GraphTwiceQueuesOneAzureServicesRule(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()

	def := defineServer(m, "rg1", "sql1")
	_, err := def.Graph()
	require.NoError(t, err)
	_, err = def.Graph()
	require.NoError(t, err)

	s, err := def.Create(ctx)
	require.NoError(t, err)

	rules, err := s.FirewallRules().List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, AllowAllAzureIPsRuleName, rules[0].Name())

	rulePut := put(armtest.ChildPath("rg1", "sql1", "firewallRules", AllowAllAzureIPsRuleName))
	n := 0
	for _, w := range srv.Writes() {
		if w == rulePut {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestServer_ChildrenWrittenAfterParent(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()

	s, err := defineServer(m, "rg1", "sql1").
		WithoutAccessFromAzureServices().
		WithNewNamedFirewallRule("10.0.0.1", "10.0.0.9", "office").
		WithNewFirewallRule("10.1.0.1").
		WithNewElasticPool("ep1", inner.ElasticPoolEditionStandard, "db2").
		WithNewDatabase("db1").
		Create(ctx)
	require.NoError(t, err)

	writes := srv.Writes()
	require.Len(t, writes, 6)
	assert.Equal(t, put(armtest.ServerPath("rg1", "sql1")), writes[0])

	pool := indexOf(writes, put(armtest.ChildPath("rg1", "sql1", "elasticPools", "ep1")))
	pooled := indexOf(writes, put(armtest.ChildPath("rg1", "sql1", "databases", "db2")))
	require.NotEqual(t, -1, pool)
	require.NotEqual(t, -1, pooled)
	assert.Less(t, pool, pooled)
	assert.NotEqual(t, -1, indexOf(writes, put(armtest.ChildPath("rg1", "sql1", "databases", "db1"))))

	rules, err := s.FirewallRules().List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	var generated string
	for _, r := range rules {
		if r.Name() != "office" {
			generated = r.Name()
		}
	}
	assert.True(t, strings.HasPrefix(generated, firewallRuleNamePrefix), generated)

	db2, err := s.Databases().Get(ctx, "db2")
	require.NoError(t, err)
	assert.Equal(t, "ep1", db2.ElasticPoolName())
}

func TestServer_NestedDatabasePoolOrdering(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()

	def := defineServer(m, "rg1", "sql1").
		WithoutAccessFromAzureServices().
		DefineDatabase("db1").
		DefineElasticPool("ep1").WithPremiumPool().WithReservedDtu(ElasticPoolPremiumEDTUs250).Attach().
		Attach()

	g, err := def.Graph()
	require.NoError(t, err)
	deps := g.Dependencies("rg1/servers/sql1/databases/db1")
	assert.ElementsMatch(t, []string{"rg1/servers/sql1", "rg1/servers/sql1/elasticPools/ep1"}, deps)

	_, err = def.Create(ctx)
	require.NoError(t, err)

	writes := srv.Writes()
	pool := indexOf(writes, put(armtest.ChildPath("rg1", "sql1", "elasticPools", "ep1")))
	db := indexOf(writes, put(armtest.ChildPath("rg1", "sql1", "databases", "db1")))
	require.NotEqual(t, -1, pool)
	assert.Less(t, pool, db)

	ep, err := m.ElasticPools().GetBySQLServer(ctx, "rg1", "sql1", "ep1")
	require.NoError(t, err)
	assert.Equal(t, inner.ElasticPoolEditionPremium, ep.Edition())
	assert.Equal(t, int32(250), ep.Dtu())
}

func TestServer_FailedServerSkipsChildren(t *testing.T) {
	srv := armtest.NewServer(t)
	cl, err := arm.NewClient(armtest.Credential{}, srv.ClientOptions())
	require.NoError(t, err)
	var events []taskgroup.Event
	m := NewManagerFromClient(armtest.SubscriptionID, cl, &ManagerOptions{
		Parallelism: 2,
		Callback:    func(e taskgroup.Event) { events = append(events, e) },
	})
	srv.FailOn(http.MethodPut, "/servers/sql1", http.StatusConflict, "ServerNameAlreadyExists")

	def := defineServer(m, "rg1", "sql1").
		WithNewNamedFirewallRule("10.0.0.1", "10.0.0.1", "fr1").
		WithNewDatabase("db1")

	_, err = def.Create(context.Background())
	require.Error(t, err)

	var respErr *azcore.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "ServerNameAlreadyExists", respErr.ErrorCode)

	var taskErr *taskgroup.TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "rg1/servers/sql1", taskErr.Key)

	assert.Equal(t, []string{put(armtest.ServerPath("rg1", "sql1"))}, srv.Writes())
	assert.False(t, srv.Has(armtest.ChildPath("rg1", "sql1", "databases", "db1")))
	statuses := make(map[string]string)
	for _, e := range events {
		statuses[e.Key] = e.Status
	}
	assert.Equal(t, taskgroup.StatusFailed, statuses["rg1/servers/sql1"])
	assert.Equal(t, taskgroup.StatusSkipped, statuses["rg1/servers/sql1/databases/db1"])
	assert.Equal(t, taskgroup.StatusSkipped, statuses["rg1/servers/sql1/firewallRules/fr1"])

	// Pending children were cleared by the faulted batch.
	g, err := def.Graph()
	require.NoError(t, err)
	for _, n := range g.Nodes {
		assert.NotContains(t, n.Key, "db1")
		assert.NotContains(t, n.Key, "fr1")
	}
}

func TestServer_ConflictingChildActions(t *testing.T) {
	m, srv := newTestManager(t, "")

	_, err := defineServer(m, "rg1", "sql1").
		WithNewNamedFirewallRule("10.0.0.1", "10.0.0.1", "fr1").
		WithNewNamedFirewallRule("10.0.0.2", "10.0.0.2", "FR1").
		Create(context.Background())

	var conflict *fluent.PendingActionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, kindFirewallRules, conflict.Kind)
	assert.Empty(t, srv.Requests())
}

func TestServer_UpdateChildren(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()

	s, err := defineServer(m, "rg1", "sql1").
		WithoutAccessFromAzureServices().
		WithNewNamedFirewallRule("10.0.0.1", "10.0.0.1", "fr1").
		WithNewDatabase("db1").
		Create(ctx)
	require.NoError(t, err)

	_, err = s.Update().
		WithoutFirewallRule("fr1").
		WithNewNamedFirewallRule("10.0.0.5", "10.0.0.6", "fr2").
		WithoutDatabase("db1").
		WithTag("team", "data").
		Apply(ctx)
	require.NoError(t, err)

	rules, err := s.FirewallRules().List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "fr2", rules[0].Name())
	assert.Equal(t, "10.0.0.6", rules[0].EndIPAddress())

	assert.False(t, srv.Has(armtest.ChildPath("rg1", "sql1", "databases", "db1")))
	assert.False(t, srv.Has(armtest.ChildPath("rg1", "sql1", "firewallRules", AllowAllAzureIPsRuleName)))
	assert.Equal(t, "data", s.Tags()["team"])

	// A second apply re-issues only the server write.
	before := len(srv.Writes())
	_, err = s.Update().Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{put(armtest.ServerPath("rg1", "sql1"))}, srv.Writes()[before:])
}

func TestServer_AccessFromAzureServices(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()
	s := createServer(t, m, "rg1", "sql1")

	rule, err := s.SetAccessFromAzureServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, AllowAllAzureIPsRuleName, rule.Name())
	assert.Equal(t, "0.0.0.0", rule.StartIPAddress())

	before := len(srv.Writes())
	_, err = s.SetAccessFromAzureServices(ctx)
	require.NoError(t, err)
	assert.Len(t, srv.Writes(), before)

	require.NoError(t, s.RemoveAccessFromAzureServices(ctx))
	assert.False(t, srv.Has(armtest.ChildPath("rg1", "sql1", "firewallRules", AllowAllAzureIPsRuleName)))
}

func TestServer_ActiveDirectoryAdministrator(t *testing.T) {
	m, srv := newTestManager(t, armtest.TenantID)
	ctx := context.Background()

	s, err := defineServer(m, "rg1", "sql1").
		WithoutAccessFromAzureServices().
		WithActiveDirectoryAdministrator("dba@contoso.com", "object-1").
		Create(ctx)
	require.NoError(t, err)

	writes := srv.Writes()
	adminPath := armtest.ServerPath("rg1", "sql1") + "/administrators/activeDirectory"
	assert.Greater(t, indexOf(writes, put(adminPath)), indexOf(writes, put(armtest.ServerPath("rg1", "sql1"))))

	admin, err := s.GetActiveDirectoryAdministrator(ctx)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "dba@contoso.com", admin.SignInName())
	assert.Equal(t, "object-1", admin.ID())
	assert.Equal(t, armtest.TenantID, admin.TenantID())
	assert.Equal(t, inner.ActiveDirectoryAdministratorType, admin.AdministratorType())

	admin, err = s.SetActiveDirectoryAdministrator(ctx, "ops@contoso.com", "object-2")
	require.NoError(t, err)
	assert.Equal(t, "object-2", admin.ID())

	require.NoError(t, s.RemoveActiveDirectoryAdministrator(ctx))
	admin, err = s.GetActiveDirectoryAdministrator(ctx)
	require.NoError(t, err)
	assert.Nil(t, admin)
}

func TestServer_ActiveDirectoryAdministratorNeedsTenant(t *testing.T) {
	m, _ := newTestManager(t, "")
	s := createServer(t, m, "rg1", "sql1")

	_, err := s.SetActiveDirectoryAdministrator(context.Background(), "dba@contoso.com", "object-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tenant")
}

func TestServers_GetListDelete(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()

	s1 := createServer(t, m, "rg1", "sql1")
	createServer(t, m, "rg2", "sql2")

	got, err := m.Servers().GetByID(ctx, s1.ID())
	require.NoError(t, err)
	assert.Equal(t, "sql1", got.Name())
	assert.Equal(t, "rg1", got.ResourceGroupName())

	all, err := m.Servers().ListAsync(ctx).Await()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byGroup, err := m.Servers().ListByResourceGroup(ctx, "rg2")
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	assert.Equal(t, "rg2", byGroup[0].ResourceGroupName())

	_, err = m.Servers().GetByResourceGroup(ctx, "rg1", "missing")
	assert.True(t, IsNotFound(err))

	_, err = m.Servers().GetByID(ctx, "not-an-id")
	assert.Error(t, err)

	_, err = m.Servers().DeleteByIDAsync(ctx, s1.ID()).Await()
	require.NoError(t, err)
	assert.False(t, srv.Has(armtest.ServerPath("rg1", "sql1")))

	require.NoError(t, m.Servers().DeleteByResourceGroup(ctx, "rg2", "sql2"))
	all, err = m.Servers().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestServer_CreateAsync(t *testing.T) {
	m, _ := newTestManager(t, "")
	ctx := context.Background()

	f := defineServer(m, "rg1", "sql1").WithoutAccessFromAzureServices().CreateAsync(ctx)
	<-f.Done()
	s, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "Ready", s.State())

	require.NoError(t, s.Refresh(ctx))
	assert.Equal(t, "admin1", s.AdministratorLogin())
}

func TestNewManager_RequiresSubscription(t *testing.T) {
	_, err := NewManager("", armtest.Credential{}, nil)
	assert.Error(t, err)
}
