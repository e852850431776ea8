package sql

import (
	"context"

	"github.com/picklr-io/azmgmt/pkg/fluent"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
)

// ElasticPools are the elastic pool operations across every server of the
// subscription.
type ElasticPools struct {
	manager *Manager
}

// Define starts a standalone pool definition.
func (c *ElasticPools) Define(name string) ElasticPoolDefinitionWithServer {
	return &elasticPoolDefinition{pool: newElasticPool(c.manager, serverRef{}, name, inner.ElasticPoolInner{})}
}

// GetBySQLServer returns a pool of the named server.
func (c *ElasticPools) GetBySQLServer(ctx context.Context, resourceGroupName, serverName, name string) (*ElasticPool, error) {
	in, err := c.manager.client.ElasticPools().Get(ctx, resourceGroupName, serverName, name)
	if err != nil {
		return nil, err
	}
	return newElasticPool(c.manager, serverRef{resourceGroup: resourceGroupName, name: serverName}, name, in), nil
}

// GetByID returns the pool with the given resource ID.
func (c *ElasticPools) GetByID(ctx context.Context, id string) (*ElasticPool, error) {
	ref, name, err := parseChildID(id)
	if err != nil {
		return nil, err
	}
	return c.GetBySQLServer(ctx, ref.resourceGroup, ref.name, name)
}

// ListBySQLServer returns every pool of the named server.
func (c *ElasticPools) ListBySQLServer(ctx context.Context, resourceGroupName, serverName string) ([]*ElasticPool, error) {
	list, err := c.manager.client.ElasticPools().ListByServer(ctx, resourceGroupName, serverName)
	if err != nil {
		return nil, err
	}
	ref := serverRef{resourceGroup: resourceGroupName, name: serverName}
	out := make([]*ElasticPool, 0, len(list))
	for _, in := range list {
		out = append(out, newElasticPool(c.manager, ref, deref(in.Name), *in))
	}
	return out, nil
}

// DeleteBySQLServer removes a pool of the named server.
func (c *ElasticPools) DeleteBySQLServer(ctx context.Context, resourceGroupName, serverName, name string) error {
	return c.manager.client.ElasticPools().Delete(ctx, resourceGroupName, serverName, name)
}

// DeleteByID removes the pool with the given resource ID.
func (c *ElasticPools) DeleteByID(ctx context.Context, id string) error {
	ref, name, err := parseChildID(id)
	if err != nil {
		return err
	}
	return c.DeleteBySQLServer(ctx, ref.resourceGroup, ref.name, name)
}

func (c *ElasticPools) GetBySQLServerAsync(ctx context.Context, resourceGroupName, serverName, name string) *fluent.Future[*ElasticPool] {
	return fluent.Async(ctx, func(ctx context.Context) (*ElasticPool, error) {
		return c.GetBySQLServer(ctx, resourceGroupName, serverName, name)
	})
}

func (c *ElasticPools) GetByIDAsync(ctx context.Context, id string) *fluent.Future[*ElasticPool] {
	return fluent.Async(ctx, func(ctx context.Context) (*ElasticPool, error) {
		return c.GetByID(ctx, id)
	})
}

func (c *ElasticPools) ListBySQLServerAsync(ctx context.Context, resourceGroupName, serverName string) *fluent.Future[[]*ElasticPool] {
	return fluent.Async(ctx, func(ctx context.Context) ([]*ElasticPool, error) {
		return c.ListBySQLServer(ctx, resourceGroupName, serverName)
	})
}

func (c *ElasticPools) DeleteBySQLServerAsync(ctx context.Context, resourceGroupName, serverName, name string) *fluent.Future[struct{}] {
	return asyncErr(ctx, func(ctx context.Context) error {
		return c.DeleteBySQLServer(ctx, resourceGroupName, serverName, name)
	})
}

func (c *ElasticPools) DeleteByIDAsync(ctx context.Context, id string) *fluent.Future[struct{}] {
	return asyncErr(ctx, func(ctx context.Context) error {
		return c.DeleteByID(ctx, id)
	})
}

// ServerElasticPools are the elastic pool operations of one server.
type ServerElasticPools struct {
	server *Server
}

func (c *ServerElasticPools) Get(ctx context.Context, name string) (*ElasticPool, error) {
	return c.server.manager.elasticPools.GetBySQLServer(ctx, c.server.resourceGroup, c.server.name, name)
}

func (c *ServerElasticPools) List(ctx context.Context) ([]*ElasticPool, error) {
	return c.server.manager.elasticPools.ListBySQLServer(ctx, c.server.resourceGroup, c.server.name)
}

func (c *ServerElasticPools) Delete(ctx context.Context, name string) error {
	return c.server.manager.elasticPools.DeleteBySQLServer(ctx, c.server.resourceGroup, c.server.name, name)
}

// Define starts a pool definition already bound to the server.
func (c *ServerElasticPools) Define(name string) ElasticPoolDefinitionWithEdition {
	return &elasticPoolDefinition{pool: newElasticPool(c.server.manager, c.server.ref(), name, inner.ElasticPoolInner{})}
}
