package sql

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/picklr-io/azmgmt/pkg/fluent"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
)

// FirewallRule is a server-level firewall rule.
type FirewallRule struct {
	manager *Manager
	server  serverRef
	name    string
	inner   inner.FirewallRuleInner
}

func newFirewallRule(m *Manager, server serverRef, name string, in inner.FirewallRuleInner) *FirewallRule {
	return &FirewallRule{manager: m, server: server, name: name, inner: in}
}

// Name returns the rule name.
func (r *FirewallRule) Name() string { return r.name }

// ID returns the resource ID. It is empty until the rule has been written or read.
func (r *FirewallRule) ID() string { return deref(r.inner.ID) }

// ResourceGroupName returns the resource group of the parent server.
func (r *FirewallRule) ResourceGroupName() string { return r.server.resourceGroup }

// ServerName returns the parent server name.
func (r *FirewallRule) ServerName() string { return r.server.name }

// Kind returns the kind of the server that contains the rule.
func (r *FirewallRule) Kind() string { return deref(r.inner.Kind) }

// RegionName returns the location of the server that contains the rule.
func (r *FirewallRule) RegionName() string { return deref(r.inner.Location) }

// StartIPAddress returns the first address admitted by the rule.
func (r *FirewallRule) StartIPAddress() string {
	if r.inner.Properties == nil {
		return ""
	}
	return deref(r.inner.Properties.StartIPAddress)
}

// EndIPAddress returns the last address admitted by the rule.
func (r *FirewallRule) EndIPAddress() string {
	if r.inner.Properties == nil {
		return ""
	}
	return deref(r.inner.Properties.EndIPAddress)
}

// Inner returns the wire model.
func (r *FirewallRule) Inner() inner.FirewallRuleInner { return r.inner }

// Refresh reloads the rule.
func (r *FirewallRule) Refresh(ctx context.Context) error {
	in, err := r.manager.client.FirewallRules().Get(ctx, r.server.resourceGroup, r.server.name, r.name)
	if err != nil {
		return err
	}
	r.inner = in
	return nil
}

// Delete removes the rule.
func (r *FirewallRule) Delete(ctx context.Context) error {
	return r.DeleteResource(ctx)
}

// Update starts an update of the rule.
func (r *FirewallRule) Update() FirewallRuleUpdate {
	return &firewallRuleUpdate{rule: r}
}

func (r *FirewallRule) setStart(ip string) {
	r.properties().StartIPAddress = to.Ptr(ip)
}

func (r *FirewallRule) setEnd(ip string) {
	r.properties().EndIPAddress = to.Ptr(ip)
}

func (r *FirewallRule) setRange(start, end string) *FirewallRule {
	r.setStart(start)
	r.setEnd(end)
	return r
}

func (r *FirewallRule) properties() *inner.FirewallRuleProperties {
	if r.inner.Properties == nil {
		r.inner.Properties = &inner.FirewallRuleProperties{}
	}
	return r.inner.Properties
}

// ChildName implements fluent.Child.
func (r *FirewallRule) ChildName() string { return r.name }

// CreateResource implements fluent.Child.
func (r *FirewallRule) CreateResource(ctx context.Context) error {
	in, err := r.manager.client.FirewallRules().CreateOrUpdate(ctx, r.server.resourceGroup, r.server.name, r.name, r.inner)
	if err != nil {
		return err
	}
	r.inner = in
	return nil
}

// UpdateResource implements fluent.Child.
func (r *FirewallRule) UpdateResource(ctx context.Context) error {
	return r.CreateResource(ctx)
}

// DeleteResource implements fluent.Child.
func (r *FirewallRule) DeleteResource(ctx context.Context) error {
	return r.manager.client.FirewallRules().Delete(ctx, r.server.resourceGroup, r.server.name, r.name)
}

// commit writes the rule as a single-node task group.
func (r *FirewallRule) commit(ctx context.Context) (*FirewallRule, error) {
	g := taskgroup.New(&resourceItem{
		key: r.server.childKey(kindFirewallRules, r.name),
		run: r.CreateResource,
	})
	if err := r.manager.commit(ctx, g); err != nil {
		return nil, err
	}
	return r, nil
}

// FirewallRuleDefinition is the first stage of a firewall rule defined
// inside a server definition or update.
type FirewallRuleDefinition[P any] interface {
	// WithIPAddress admits a single address.
	WithIPAddress(ipAddress string) FirewallRuleAttach[P]
	// WithIPAddressRange admits the inclusive range start..end.
	WithIPAddressRange(startIPAddress, endIPAddress string) FirewallRuleAttach[P]
}

// FirewallRuleAttach is the final stage of a nested firewall rule definition.
type FirewallRuleAttach[P any] interface {
	// Attach returns to the parent definition.
	Attach() P
}

type nestedFirewallRule[P any] struct {
	rule   *FirewallRule
	parent P
}

func (s *nestedFirewallRule[P]) WithIPAddress(ipAddress string) FirewallRuleAttach[P] {
	s.rule.setRange(ipAddress, ipAddress)
	return s
}

func (s *nestedFirewallRule[P]) WithIPAddressRange(startIPAddress, endIPAddress string) FirewallRuleAttach[P] {
	s.rule.setRange(startIPAddress, endIPAddress)
	return s
}

func (s *nestedFirewallRule[P]) Attach() P { return s.parent }

// FirewallRuleDefinitionWithServer selects the server of a standalone rule definition.
type FirewallRuleDefinitionWithServer interface {
	WithExistingSQLServer(resourceGroupName, serverName string) FirewallRuleDefinitionWithIPAddress
	// WithSQLServerID takes the server's resource ID. A malformed ID is
	// reported by Create.
	WithSQLServerID(serverID string) FirewallRuleDefinitionWithIPAddress
	WithSQLServer(server *Server) FirewallRuleDefinitionWithIPAddress
}

// FirewallRuleDefinitionWithIPAddress sets the admitted addresses of a standalone rule.
type FirewallRuleDefinitionWithIPAddress interface {
	WithIPAddress(ipAddress string) FirewallRuleDefinitionWithCreate
	WithIPAddressRange(startIPAddress, endIPAddress string) FirewallRuleDefinitionWithCreate
}

// FirewallRuleDefinitionWithCreate is the final stage of a standalone rule definition.
type FirewallRuleDefinitionWithCreate interface {
	Create(ctx context.Context) (*FirewallRule, error)
	CreateAsync(ctx context.Context) *fluent.Future[*FirewallRule]
}

type firewallRuleDefinition struct {
	rule *FirewallRule
	err  error
}

func (d *firewallRuleDefinition) WithExistingSQLServer(resourceGroupName, serverName string) FirewallRuleDefinitionWithIPAddress {
	d.rule.server = serverRef{resourceGroup: resourceGroupName, name: serverName}
	return d
}

func (d *firewallRuleDefinition) WithSQLServerID(serverID string) FirewallRuleDefinitionWithIPAddress {
	ref, err := parseServerID(serverID)
	if err != nil {
		d.err = err
	}
	d.rule.server = ref
	return d
}

func (d *firewallRuleDefinition) WithSQLServer(server *Server) FirewallRuleDefinitionWithIPAddress {
	d.rule.server = server.ref()
	return d
}

func (d *firewallRuleDefinition) WithIPAddress(ipAddress string) FirewallRuleDefinitionWithCreate {
	d.rule.setRange(ipAddress, ipAddress)
	return d
}

func (d *firewallRuleDefinition) WithIPAddressRange(startIPAddress, endIPAddress string) FirewallRuleDefinitionWithCreate {
	d.rule.setRange(startIPAddress, endIPAddress)
	return d
}

func (d *firewallRuleDefinition) Create(ctx context.Context) (*FirewallRule, error) {
	return d.CreateAsync(ctx).Await()
}

func (d *firewallRuleDefinition) CreateAsync(ctx context.Context) *fluent.Future[*FirewallRule] {
	return fluent.Async(ctx, func(ctx context.Context) (*FirewallRule, error) {
		if d.err != nil {
			return nil, d.err
		}
		return d.rule.commit(ctx)
	})
}

// FirewallRuleUpdate accumulates changes to an existing rule.
type FirewallRuleUpdate interface {
	WithStartIPAddress(ipAddress string) FirewallRuleUpdate
	WithEndIPAddress(ipAddress string) FirewallRuleUpdate
	Apply(ctx context.Context) (*FirewallRule, error)
	ApplyAsync(ctx context.Context) *fluent.Future[*FirewallRule]
}

type firewallRuleUpdate struct {
	rule *FirewallRule
}

func (u *firewallRuleUpdate) WithStartIPAddress(ipAddress string) FirewallRuleUpdate {
	u.rule.setStart(ipAddress)
	return u
}

func (u *firewallRuleUpdate) WithEndIPAddress(ipAddress string) FirewallRuleUpdate {
	u.rule.setEnd(ipAddress)
	return u
}

func (u *firewallRuleUpdate) Apply(ctx context.Context) (*FirewallRule, error) {
	return u.ApplyAsync(ctx).Await()
}

func (u *firewallRuleUpdate) ApplyAsync(ctx context.Context) *fluent.Future[*FirewallRule] {
	return fluent.Async(ctx, u.rule.commit)
}
