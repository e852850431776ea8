package cli

import (
	"context"

	"github.com/picklr-io/azmgmt/internal/ir"
	"github.com/picklr-io/azmgmt/pkg/sql"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
)

// serverBatch is the pending write of one topology server.
type serverBatch interface {
	Graph() (*taskgroup.Graph, error)
	commit(ctx context.Context) (*sql.Server, error)
}

type definitionBatch struct {
	sql.ServerDefinitionWithCreate
}

func (b definitionBatch) commit(ctx context.Context) (*sql.Server, error) {
	return b.Create(ctx)
}

type updateBatch struct {
	sql.ServerUpdate
	allowAzureServices bool
}

func (b updateBatch) commit(ctx context.Context) (*sql.Server, error) {
	s, err := b.Apply(ctx)
	if err != nil {
		return nil, err
	}
	if b.allowAzureServices {
		_, err = s.SetAccessFromAzureServices(ctx)
	} else {
		err = s.RemoveAccessFromAzureServices(ctx)
	}
	return s, err
}

// defineBatch builds the batch that creates spec from scratch.
func defineBatch(m *sql.Manager, spec *ir.Server) serverBatch {
	def := m.Servers().Define(spec.Name).
		WithRegion(spec.Region).
		WithExistingResourceGroup(spec.ResourceGroup).
		WithAdministratorLogin(spec.AdministratorLogin).
		WithAdministratorPassword(spec.AdministratorPassword)
	if !spec.AllowsAzureServices() {
		def = def.WithoutAccessFromAzureServices()
	}
	if a := spec.ActiveDirectoryAdmin; a != nil {
		def = def.WithActiveDirectoryAdministrator(a.Login, a.ObjectID)
	}
	if len(spec.Tags) > 0 {
		def = def.WithTags(spec.Tags)
	}
	return definitionBatch{addChildren(def, spec)}
}

// planBatch updates the server when it exists and defines it otherwise.
func planBatch(ctx context.Context, m *sql.Manager, spec *ir.Server) (serverBatch, error) {
	s, err := m.Servers().GetByResourceGroup(ctx, spec.ResourceGroup, spec.Name)
	if sql.IsNotFound(err) {
		return defineBatch(m, spec), nil
	}
	if err != nil {
		return nil, err
	}

	u := s.Update()
	if spec.AdministratorPassword != "" {
		u = u.WithAdministratorPassword(spec.AdministratorPassword)
	}
	if a := spec.ActiveDirectoryAdmin; a != nil {
		u = u.WithActiveDirectoryAdministrator(a.Login, a.ObjectID)
	}
	if len(spec.Tags) > 0 {
		u = u.WithTags(spec.Tags)
	}
	return updateBatch{ServerUpdate: addChildren(u, spec), allowAzureServices: spec.AllowsAzureServices()}, nil
}

// childBuilder is satisfied by both server definitions and server updates.
type childBuilder[P any] interface {
	WithNewNamedFirewallRule(startIPAddress, endIPAddress, name string) P
	DefineElasticPool(name string) sql.ElasticPoolDefinition[P]
	DefineDatabase(name string) sql.DatabaseDefinition[P]
}

func addChildren[P childBuilder[P]](b P, spec *ir.Server) P {
	for _, r := range spec.FirewallRules {
		b = b.WithNewNamedFirewallRule(r.StartIP, r.End(), r.Name)
	}

	for _, p := range spec.ElasticPools {
		pool := b.DefineElasticPool(p.Name).WithEdition(inner.ElasticPoolEdition(p.Edition))
		if p.Dtu > 0 {
			pool = pool.WithDtu(int32(p.Dtu))
		}
		if p.DatabaseDtuMin > 0 {
			pool = pool.WithDatabaseDtuMin(int32(p.DatabaseDtuMin))
		}
		if p.DatabaseDtuMax > 0 {
			pool = pool.WithDatabaseDtuMax(int32(p.DatabaseDtuMax))
		}
		if p.StorageMB > 0 {
			pool = pool.WithStorageCapacity(int32(p.StorageMB))
		}
		b = pool.Attach()
	}

	for _, d := range spec.Databases {
		def := b.DefineDatabase(d.Name)
		var db sql.DatabaseAttach[P] = def
		if d.ElasticPool != "" {
			db = def.WithExistingElasticPool(d.ElasticPool)
		}
		if d.Edition != "" {
			db = db.WithEdition(inner.DatabaseEdition(d.Edition))
		}
		if d.ServiceObjective != "" {
			db = db.WithServiceObjective(inner.ServiceObjectiveName(d.ServiceObjective))
		}
		if d.Collation != "" {
			db = db.WithCollation(d.Collation)
		}
		if d.MaxSizeBytes > 0 {
			db = db.WithMaxSizeBytes(d.MaxSizeBytes)
		}
		for k, v := range d.Tags {
			db = db.WithTag(k, v)
		}
		b = db.Attach()
	}
	return b
}
