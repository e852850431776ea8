// Package sql is the fluent management surface for Azure SQL servers and
// their firewall rules, elastic pools and databases.
//
// Definitions and updates are accumulated in memory by staged builders and
// committed with Create or Apply. A commit runs the server and every queued
// child mutation as one task group, so children are written only after their
// parent exists and a failed write keeps its dependents from running.
package sql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/picklr-io/azmgmt/pkg/arm"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
)

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	// ClientOptions configures the ARM pipeline.
	ClientOptions *arm.ClientOptions
	// TenantID is recorded on Active Directory administrators.
	TenantID string
	Logger   *slog.Logger
	// Parallelism bounds concurrent writes within one commit.
	Parallelism int
	// Callback receives per-task events of every commit.
	Callback taskgroup.Callback
}

// Manager is the entry point to the SQL resources of one subscription.
type Manager struct {
	subscriptionID string
	tenantID       string
	client         *inner.Client
	logger         *slog.Logger
	invokeOpts     []taskgroup.Option

	servers       *Servers
	firewallRules *FirewallRules
	elasticPools  *ElasticPools
	databases     *Databases
}

// NewManager returns a manager authenticating with cred.
func NewManager(subscriptionID string, cred azcore.TokenCredential, options *ManagerOptions) (*Manager, error) {
	if subscriptionID == "" {
		return nil, errors.New("sql: subscription ID is required")
	}
	if options == nil {
		options = &ManagerOptions{}
	}
	cl, err := arm.NewClient(cred, options.ClientOptions)
	if err != nil {
		return nil, err
	}
	return NewManagerFromClient(subscriptionID, cl, options), nil
}

// NewManagerFromClient returns a manager sending through an existing ARM client.
func NewManagerFromClient(subscriptionID string, cl *arm.Client, options *ManagerOptions) *Manager {
	if options == nil {
		options = &ManagerOptions{}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		subscriptionID: subscriptionID,
		tenantID:       options.TenantID,
		client:         inner.NewClient(subscriptionID, cl),
		logger:         logger.With("component", "sql"),
	}
	m.invokeOpts = []taskgroup.Option{taskgroup.WithLogger(m.logger)}
	if options.Parallelism > 0 {
		m.invokeOpts = append(m.invokeOpts, taskgroup.WithParallelism(options.Parallelism))
	}
	if options.Callback != nil {
		m.invokeOpts = append(m.invokeOpts, taskgroup.WithCallback(options.Callback))
	}
	m.servers = &Servers{manager: m}
	m.firewallRules = &FirewallRules{manager: m}
	m.elasticPools = &ElasticPools{manager: m}
	m.databases = &Databases{manager: m}
	return m
}

// SubscriptionID returns the managed subscription.
func (m *Manager) SubscriptionID() string { return m.subscriptionID }

// TenantID returns the tenant recorded on Active Directory administrators.
func (m *Manager) TenantID() string { return m.tenantID }

// Inner returns the underlying REST clients.
func (m *Manager) Inner() *inner.Client { return m.client }

// Servers returns the SQL server collection.
func (m *Manager) Servers() *Servers { return m.servers }

// FirewallRules returns the firewall rule operations across all servers.
func (m *Manager) FirewallRules() *FirewallRules { return m.firewallRules }

// ElasticPools returns the elastic pool operations across all servers.
func (m *Manager) ElasticPools() *ElasticPools { return m.elasticPools }

// Databases returns the database operations across all servers.
func (m *Manager) Databases() *Databases { return m.databases }

// IsNotFound reports whether err is a 404 from Resource Manager.
func IsNotFound(err error) bool {
	return arm.IsNotFound(err)
}

func (m *Manager) commit(ctx context.Context, g *taskgroup.TaskGroup) error {
	return g.Invoke(ctx, m.invokeOpts...)
}
