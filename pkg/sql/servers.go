package sql

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/picklr-io/azmgmt/pkg/fluent"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
)

// Servers is the SQL server collection of a subscription.
type Servers struct {
	manager *Manager
}

// Define starts the definition of a new server. Unless
// WithoutAccessFromAzureServices is called, the server is created with a
// firewall rule admitting Azure services.
func (c *Servers) Define(name string) ServerDefinitionBlank {
	s := newServer(c.manager, "", name, inner.ServerInner{
		Properties: &inner.ServerProperties{
			Version: to.Ptr(inner.ServerVersionOneTwoFullStopZero),
		},
	})
	s.creating = true
	s.allowAzureServices = true
	return &serverDefinition{s: s}
}

// GetByResourceGroup returns the named server.
func (c *Servers) GetByResourceGroup(ctx context.Context, resourceGroupName, name string) (*Server, error) {
	in, err := c.manager.client.Servers().Get(ctx, resourceGroupName, name)
	if err != nil {
		return nil, err
	}
	return newServer(c.manager, resourceGroupName, name, in), nil
}

// GetByID returns the server with the given resource ID.
func (c *Servers) GetByID(ctx context.Context, id string) (*Server, error) {
	ref, err := parseServerID(id)
	if err != nil {
		return nil, err
	}
	return c.GetByResourceGroup(ctx, ref.resourceGroup, ref.name)
}

// List returns every server in the subscription.
func (c *Servers) List(ctx context.Context) ([]*Server, error) {
	list, err := c.manager.client.Servers().List(ctx)
	if err != nil {
		return nil, err
	}
	return c.wrap(list)
}

// ListByResourceGroup returns the servers of one resource group.
func (c *Servers) ListByResourceGroup(ctx context.Context, resourceGroupName string) ([]*Server, error) {
	list, err := c.manager.client.Servers().ListByResourceGroup(ctx, resourceGroupName)
	if err != nil {
		return nil, err
	}
	return c.wrap(list)
}

// DeleteByResourceGroup removes the named server.
func (c *Servers) DeleteByResourceGroup(ctx context.Context, resourceGroupName, name string) error {
	return c.manager.client.Servers().Delete(ctx, resourceGroupName, name)
}

// DeleteByID removes the server with the given resource ID.
func (c *Servers) DeleteByID(ctx context.Context, id string) error {
	ref, err := parseServerID(id)
	if err != nil {
		return err
	}
	return c.DeleteByResourceGroup(ctx, ref.resourceGroup, ref.name)
}

func (c *Servers) GetByResourceGroupAsync(ctx context.Context, resourceGroupName, name string) *fluent.Future[*Server] {
	return fluent.Async(ctx, func(ctx context.Context) (*Server, error) {
		return c.GetByResourceGroup(ctx, resourceGroupName, name)
	})
}

func (c *Servers) GetByIDAsync(ctx context.Context, id string) *fluent.Future[*Server] {
	return fluent.Async(ctx, func(ctx context.Context) (*Server, error) {
		return c.GetByID(ctx, id)
	})
}

func (c *Servers) ListAsync(ctx context.Context) *fluent.Future[[]*Server] {
	return fluent.Async(ctx, c.List)
}

func (c *Servers) ListByResourceGroupAsync(ctx context.Context, resourceGroupName string) *fluent.Future[[]*Server] {
	return fluent.Async(ctx, func(ctx context.Context) ([]*Server, error) {
		return c.ListByResourceGroup(ctx, resourceGroupName)
	})
}

func (c *Servers) DeleteByResourceGroupAsync(ctx context.Context, resourceGroupName, name string) *fluent.Future[struct{}] {
	return asyncErr(ctx, func(ctx context.Context) error {
		return c.DeleteByResourceGroup(ctx, resourceGroupName, name)
	})
}

func (c *Servers) DeleteByIDAsync(ctx context.Context, id string) *fluent.Future[struct{}] {
	return asyncErr(ctx, func(ctx context.Context) error {
		return c.DeleteByID(ctx, id)
	})
}

// FirewallRules returns the firewall rule operations across all servers.
func (c *Servers) FirewallRules() *FirewallRules { return c.manager.firewallRules }

// ElasticPools returns the elastic pool operations across all servers.
func (c *Servers) ElasticPools() *ElasticPools { return c.manager.elasticPools }

// Databases returns the database operations across all servers.
func (c *Servers) Databases() *Databases { return c.manager.databases }

func (c *Servers) wrap(list []*inner.ServerInner) ([]*Server, error) {
	out := make([]*Server, 0, len(list))
	for _, in := range list {
		ref, err := parseServerID(deref(in.ID))
		if err != nil {
			return nil, err
		}
		out = append(out, newServer(c.manager, ref.resourceGroup, ref.name, *in))
	}
	return out, nil
}
