package sql

import (
	"context"

	"github.com/picklr-io/azmgmt/pkg/fluent"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
)

// Databases are the database operations across every server of the subscription.
type Databases struct {
	manager *Manager
}

// Define starts a standalone database definition.
func (c *Databases) Define(name string) DatabaseDefinitionWithServer {
	return &databaseDefinition{db: newDatabase(c.manager, serverRef{}, name, inner.DatabaseInner{})}
}

// GetBySQLServer returns a database of the named server.
func (c *Databases) GetBySQLServer(ctx context.Context, resourceGroupName, serverName, name string) (*Database, error) {
	in, err := c.manager.client.Databases().Get(ctx, resourceGroupName, serverName, name)
	if err != nil {
		return nil, err
	}
	return newDatabase(c.manager, serverRef{resourceGroup: resourceGroupName, name: serverName}, name, in), nil
}

// GetByID returns the database with the given resource ID.
func (c *Databases) GetByID(ctx context.Context, id string) (*Database, error) {
	ref, name, err := parseChildID(id)
	if err != nil {
		return nil, err
	}
	return c.GetBySQLServer(ctx, ref.resourceGroup, ref.name, name)
}

// ListBySQLServer returns every database of the named server.
func (c *Databases) ListBySQLServer(ctx context.Context, resourceGroupName, serverName string) ([]*Database, error) {
	list, err := c.manager.client.Databases().ListByServer(ctx, resourceGroupName, serverName)
	if err != nil {
		return nil, err
	}
	ref := serverRef{resourceGroup: resourceGroupName, name: serverName}
	out := make([]*Database, 0, len(list))
	for _, in := range list {
		out = append(out, newDatabase(c.manager, ref, deref(in.Name), *in))
	}
	return out, nil
}

// DeleteBySQLServer removes a database of the named server.
func (c *Databases) DeleteBySQLServer(ctx context.Context, resourceGroupName, serverName, name string) error {
	return c.manager.client.Databases().Delete(ctx, resourceGroupName, serverName, name)
}

// DeleteByID removes the database with the given resource ID.
func (c *Databases) DeleteByID(ctx context.Context, id string) error {
	ref, name, err := parseChildID(id)
	if err != nil {
		return err
	}
	return c.DeleteBySQLServer(ctx, ref.resourceGroup, ref.name, name)
}

func (c *Databases) GetBySQLServerAsync(ctx context.Context, resourceGroupName, serverName, name string) *fluent.Future[*Database] {
	return fluent.Async(ctx, func(ctx context.Context) (*Database, error) {
		return c.GetBySQLServer(ctx, resourceGroupName, serverName, name)
	})
}

func (c *Databases) GetByIDAsync(ctx context.Context, id string) *fluent.Future[*Database] {
	return fluent.Async(ctx, func(ctx context.Context) (*Database, error) {
		return c.GetByID(ctx, id)
	})
}

func (c *Databases) ListBySQLServerAsync(ctx context.Context, resourceGroupName, serverName string) *fluent.Future[[]*Database] {
	return fluent.Async(ctx, func(ctx context.Context) ([]*Database, error) {
		return c.ListBySQLServer(ctx, resourceGroupName, serverName)
	})
}

func (c *Databases) DeleteBySQLServerAsync(ctx context.Context, resourceGroupName, serverName, name string) *fluent.Future[struct{}] {
	return asyncErr(ctx, func(ctx context.Context) error {
		return c.DeleteBySQLServer(ctx, resourceGroupName, serverName, name)
	})
}

func (c *Databases) DeleteByIDAsync(ctx context.Context, id string) *fluent.Future[struct{}] {
	return asyncErr(ctx, func(ctx context.Context) error {
		return c.DeleteByID(ctx, id)
	})
}

// ServerDatabases are the database operations of one server.
type ServerDatabases struct {
	server *Server
}

func (c *ServerDatabases) Get(ctx context.Context, name string) (*Database, error) {
	return c.server.manager.databases.GetBySQLServer(ctx, c.server.resourceGroup, c.server.name, name)
}

func (c *ServerDatabases) List(ctx context.Context) ([]*Database, error) {
	return c.server.manager.databases.ListBySQLServer(ctx, c.server.resourceGroup, c.server.name)
}

func (c *ServerDatabases) Delete(ctx context.Context, name string) error {
	return c.server.manager.databases.DeleteBySQLServer(ctx, c.server.resourceGroup, c.server.name, name)
}

// Define starts a database definition already bound to the server.
func (c *ServerDatabases) Define(name string) DatabaseDefinitionWithOptions {
	return &databaseDefinition{db: newDatabase(c.server.manager, c.server.ref(), name, inner.DatabaseInner{})}
}
