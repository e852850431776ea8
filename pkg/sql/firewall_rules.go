package sql

import (
	"context"

	"github.com/picklr-io/azmgmt/pkg/fluent"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
)

// FirewallRules are the firewall rule operations across every server of
// the subscription.
type FirewallRules struct {
	manager *Manager
}

// Define starts a standalone firewall rule definition.
func (c *FirewallRules) Define(name string) FirewallRuleDefinitionWithServer {
	return &firewallRuleDefinition{rule: newFirewallRule(c.manager, serverRef{}, name, emptyFirewallRule())}
}

// GetBySQLServer returns a rule of the named server.
func (c *FirewallRules) GetBySQLServer(ctx context.Context, resourceGroupName, serverName, name string) (*FirewallRule, error) {
	in, err := c.manager.client.FirewallRules().Get(ctx, resourceGroupName, serverName, name)
	if err != nil {
		return nil, err
	}
	return newFirewallRule(c.manager, serverRef{resourceGroup: resourceGroupName, name: serverName}, name, in), nil
}

// GetByID returns the rule with the given resource ID.
func (c *FirewallRules) GetByID(ctx context.Context, id string) (*FirewallRule, error) {
	ref, name, err := parseChildID(id)
	if err != nil {
		return nil, err
	}
	return c.GetBySQLServer(ctx, ref.resourceGroup, ref.name, name)
}

// ListBySQLServer returns every rule of the named server.
func (c *FirewallRules) ListBySQLServer(ctx context.Context, resourceGroupName, serverName string) ([]*FirewallRule, error) {
	list, err := c.manager.client.FirewallRules().ListByServer(ctx, resourceGroupName, serverName)
	if err != nil {
		return nil, err
	}
	ref := serverRef{resourceGroup: resourceGroupName, name: serverName}
	out := make([]*FirewallRule, 0, len(list))
	for _, in := range list {
		out = append(out, newFirewallRule(c.manager, ref, deref(in.Name), *in))
	}
	return out, nil
}

// DeleteBySQLServer removes a rule of the named server.
func (c *FirewallRules) DeleteBySQLServer(ctx context.Context, resourceGroupName, serverName, name string) error {
	return c.manager.client.FirewallRules().Delete(ctx, resourceGroupName, serverName, name)
}

// DeleteByID removes the rule with the given resource ID.
func (c *FirewallRules) DeleteByID(ctx context.Context, id string) error {
	ref, name, err := parseChildID(id)
	if err != nil {
		return err
	}
	return c.DeleteBySQLServer(ctx, ref.resourceGroup, ref.name, name)
}

// GetBySQLServerAsync is the asynchronous form of GetBySQLServer.
func (c *FirewallRules) GetBySQLServerAsync(ctx context.Context, resourceGroupName, serverName, name string) *fluent.Future[*FirewallRule] {
	return fluent.Async(ctx, func(ctx context.Context) (*FirewallRule, error) {
		return c.GetBySQLServer(ctx, resourceGroupName, serverName, name)
	})
}

// GetByIDAsync is the asynchronous form of GetByID.
func (c *FirewallRules) GetByIDAsync(ctx context.Context, id string) *fluent.Future[*FirewallRule] {
	return fluent.Async(ctx, func(ctx context.Context) (*FirewallRule, error) {
		return c.GetByID(ctx, id)
	})
}

// ListBySQLServerAsync is the asynchronous form of ListBySQLServer.
func (c *FirewallRules) ListBySQLServerAsync(ctx context.Context, resourceGroupName, serverName string) *fluent.Future[[]*FirewallRule] {
	return fluent.Async(ctx, func(ctx context.Context) ([]*FirewallRule, error) {
		return c.ListBySQLServer(ctx, resourceGroupName, serverName)
	})
}

// DeleteBySQLServerAsync is the asynchronous form of DeleteBySQLServer.
func (c *FirewallRules) DeleteBySQLServerAsync(ctx context.Context, resourceGroupName, serverName, name string) *fluent.Future[struct{}] {
	return asyncErr(ctx, func(ctx context.Context) error {
		return c.DeleteBySQLServer(ctx, resourceGroupName, serverName, name)
	})
}

// DeleteByIDAsync is the asynchronous form of DeleteByID.
func (c *FirewallRules) DeleteByIDAsync(ctx context.Context, id string) *fluent.Future[struct{}] {
	return asyncErr(ctx, func(ctx context.Context) error {
		return c.DeleteByID(ctx, id)
	})
}

// ServerFirewallRules are the firewall rule operations of one server.
type ServerFirewallRules struct {
	server *Server
}

// Get returns the named rule.
func (c *ServerFirewallRules) Get(ctx context.Context, name string) (*FirewallRule, error) {
	return c.server.manager.firewallRules.GetBySQLServer(ctx, c.server.resourceGroup, c.server.name, name)
}

// List returns every rule of the server.
func (c *ServerFirewallRules) List(ctx context.Context) ([]*FirewallRule, error) {
	return c.server.manager.firewallRules.ListBySQLServer(ctx, c.server.resourceGroup, c.server.name)
}

// Delete removes the named rule.
func (c *ServerFirewallRules) Delete(ctx context.Context, name string) error {
	return c.server.manager.firewallRules.DeleteBySQLServer(ctx, c.server.resourceGroup, c.server.name, name)
}

// Define starts a rule definition already bound to the server.
func (c *ServerFirewallRules) Define(name string) FirewallRuleDefinitionWithIPAddress {
	return &firewallRuleDefinition{rule: newFirewallRule(c.server.manager, c.server.ref(), name, emptyFirewallRule())}
}

func emptyFirewallRule() inner.FirewallRuleInner {
	return inner.FirewallRuleInner{Properties: &inner.FirewallRuleProperties{}}
}

func asyncErr(ctx context.Context, fn func(ctx context.Context) error) *fluent.Future[struct{}] {
	return fluent.Async(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
}
