package sql

import (
	"context"
	"net/http"
	"testing"

	"github.com/picklr-io/azmgmt/pkg/arm/armtest"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabase_StandaloneDefinition(t *testing.T) {
	m, _ := newTestManager(t, "")
	ctx := context.Background()
	createServer(t, m, "rg1", "sql1")

	db, err := m.Databases().Define("db1").
		WithExistingSQLServer("rg1", "sql1").
		WithEdition(inner.DatabaseEditionStandard).
		WithServiceObjective(inner.ServiceObjectiveNameS1).
		WithMaxSizeBytes(268435456000).
		WithTag("app", "orders").
		Create(ctx)
	require.NoError(t, err)

	assert.Equal(t, "db1", db.Name())
	assert.Equal(t, "sql1", db.ServerName())
	assert.Equal(t, "eastus", db.RegionName())
	assert.Equal(t, inner.DatabaseEditionStandard, db.Edition())
	assert.Equal(t, inner.ServiceObjectiveNameS1, db.ServiceLevelObjective())
	assert.Equal(t, int64(268435456000), db.MaxSizeBytes())
	assert.Equal(t, "SQL_Latin1_General_CP1_CI_AS", db.Collation())
	assert.Equal(t, "Online", db.Status())
	assert.NotEmpty(t, db.DatabaseID())
	assert.False(t, db.CreationDate().IsZero())
	assert.False(t, db.IsDataWarehouse())
	assert.Equal(t, "orders", db.Tags()["app"])
}

func TestDatabase_DefineElasticPoolWritesPoolFirst(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()
	createServer(t, m, "rg1", "sql1")
	before := len(srv.Writes())

	db, err := m.Databases().Define("db1").
		WithExistingSQLServer("rg1", "sql1").
		DefineElasticPool("ep1").WithStandardPool().WithReservedDtu(ElasticPoolStandardEDTUs100).Attach().
		Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ep1", db.ElasticPoolName())

	assert.Equal(t, []string{
		put(armtest.ChildPath("rg1", "sql1", "elasticPools", "ep1")),
		put(armtest.ChildPath("rg1", "sql1", "databases", "db1")),
	}, srv.Writes()[before:])
}

func TestDatabase_MissingPoolFails(t *testing.T) {
	m, _ := newTestManager(t, "")
	createServer(t, m, "rg1", "sql1")

	_, err := m.Databases().Define("db1").
		WithExistingSQLServer("rg1", "sql1").
		WithExistingElasticPool("nopool").
		Create(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ElasticPoolNotFound")
}

func TestDatabase_ServerScopedDefinition(t *testing.T) {
	m, _ := newTestManager(t, "")
	ctx := context.Background()
	s := createServer(t, m, "rg1", "sql1")

	_, err := s.Databases().Define("dw1").
		WithEdition(inner.DatabaseEditionDataWarehouse).
		Create(ctx)
	require.NoError(t, err)

	got, err := m.Databases().GetByID(ctx, armtest.ChildPath("rg1", "sql1", "databases", "dw1"))
	require.NoError(t, err)
	assert.True(t, got.IsDataWarehouse())

	list, err := s.Databases().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dw1", list[0].Name())
}

func TestDatabase_CopyFromSource(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()
	s := createServer(t, m, "rg1", "sql1")

	src, err := s.Databases().Define("db1").Create(ctx)
	require.NoError(t, err)

	_, err = s.Databases().Define("db1copy").
		WithSourceDatabase(src.ID()).
		WithMode(inner.CreateModeCopy).
		Create(ctx)
	require.NoError(t, err)

	reqs := srv.Requests()
	props := reqs[len(reqs)-1].Body["properties"].(map[string]any)
	assert.Equal(t, src.ID(), props["sourceDatabaseId"])
	assert.Equal(t, "Copy", props["createMode"])
}

func TestDatabase_UpdateWithoutElasticPool(t *testing.T) {
	m, _ := newTestManager(t, "")
	ctx := context.Background()
	s, err := defineServer(m, "rg1", "sql1").
		WithoutAccessFromAzureServices().
		WithNewElasticPool("ep1", inner.ElasticPoolEditionStandard, "db1").
		Create(ctx)
	require.NoError(t, err)

	db, err := s.Databases().Get(ctx, "db1")
	require.NoError(t, err)
	require.Equal(t, "ep1", db.ElasticPoolName())

	db, err = db.Update().WithoutElasticPool().Apply(ctx)
	require.NoError(t, err)
	assert.Empty(t, db.ElasticPoolName())
	assert.Equal(t, inner.DatabaseEditionStandard, db.Edition())
	assert.Equal(t, inner.ServiceObjectiveNameS0, db.ServiceLevelObjective())

	db, err = db.Update().WithExistingElasticPool("ep1").Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ep1", db.ElasticPoolName())
}

func TestDatabase_RenameAndImport(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()
	s := createServer(t, m, "rg1", "sql1")

	db, err := s.Databases().Define("db1").Create(ctx)
	require.NoError(t, err)

	renamed, err := db.Rename(ctx, "db2")
	require.NoError(t, err)
	assert.Equal(t, "db2", renamed.Name())
	assert.False(t, srv.Has(armtest.ChildPath("rg1", "sql1", "databases", "db1")))

	resp, err := renamed.ImportBacpac(ctx, BacpacOptions{
		StorageURI:            "https://acct.blob.core.windows.net/bacpacs/db.bacpac",
		StorageKeyType:        inner.StorageKeyTypeStorageAccessKey,
		StorageKey:            "key",
		AdministratorLogin:    "admin1",
		AdministratorPassword: "P@ssw0rd!",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Properties)
	assert.Equal(t, "Completed", *resp.Properties.Status)

	reqs := srv.Requests()
	props := reqs[len(reqs)-1].Body["properties"].(map[string]any)
	assert.Equal(t, "SQL", props["authenticationType"])
}

func TestDatabase_ExportTo(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()
	s := createServer(t, m, "rg1", "sql1")

	db, err := s.Databases().Define("db1").Create(ctx)
	require.NoError(t, err)

	const uri = "https://acct.blob.core.windows.net/bacpacs/db1.bacpac"
	resp, err := db.ExportTo(ctx, BacpacOptions{
		StorageURI:            uri,
		StorageKeyType:        inner.StorageKeyTypeSharedAccessKey,
		StorageKey:            "?sv=2017",
		AdministratorLogin:    "admin1",
		AdministratorPassword: "P@ssw0rd!",
		AuthenticationType:    inner.AuthenticationTypeADPassword,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Properties)
	assert.Equal(t, "Export", *resp.Properties.RequestType)
	assert.Equal(t, "Completed", *resp.Properties.Status)
	assert.Equal(t, "sql1", *resp.Properties.ServerName)
	assert.Equal(t, "db1", *resp.Properties.DatabaseName)
	assert.Equal(t, uri, *resp.Properties.BlobURI)

	reqs := srv.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, armtest.ChildPath("rg1", "sql1", "databases", "db1")+"/export", last.Path)
	assert.Equal(t, "SharedAccessKey", last.Body["storageKeyType"])
	assert.Equal(t, "ADPassword", last.Body["authenticationType"])
}

func TestDatabase_ExportToRequiresStorage(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()
	s := createServer(t, m, "rg1", "sql1")

	db, err := s.Databases().Define("db1").Create(ctx)
	require.NoError(t, err)
	before := len(srv.Requests())

	// An empty URI reaches the service, which rejects it.
	_, err = db.ExportTo(ctx, BacpacOptions{
		StorageKeyType:        inner.StorageKeyTypeStorageAccessKey,
		StorageKey:            "key",
		AdministratorLogin:    "admin1",
		AdministratorPassword: "P@ssw0rd!",
	})
	require.Error(t, err)
	assert.Len(t, srv.Requests(), before+1)

	missing := newDatabase(m, s.ref(), "nope", inner.DatabaseInner{})
	_, err = missing.ExportTo(ctx, BacpacOptions{
		StorageURI:            "https://acct.blob.core.windows.net/bacpacs/nope.bacpac",
		StorageKeyType:        inner.StorageKeyTypeStorageAccessKey,
		StorageKey:            "key",
		AdministratorLogin:    "admin1",
		AdministratorPassword: "P@ssw0rd!",
	})
	assert.True(t, IsNotFound(err))
}

func TestDatabase_UpdateWithNewElasticPool(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()
	s := createServer(t, m, "rg1", "sql1")

	db, err := s.Databases().Define("db1").
		WithEdition(inner.DatabaseEditionStandard).
		WithServiceObjective(inner.ServiceObjectiveNameS1).
		Create(ctx)
	require.NoError(t, err)
	before := len(srv.Writes())

	db, err = db.Update().
		WithNewElasticPool("ep1", inner.ElasticPoolEditionStandard).
		Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ep1", db.ElasticPoolName())

	writes := srv.Writes()[before:]
	require.Len(t, writes, 2)
	assert.Equal(t, put(armtest.ChildPath("rg1", "sql1", "elasticPools", "ep1")), writes[0])
	assert.Equal(t, put(armtest.ChildPath("rg1", "sql1", "databases", "db1")), writes[1])

	pool, err := s.ElasticPools().Get(ctx, "ep1")
	require.NoError(t, err)
	assert.Equal(t, inner.ElasticPoolEditionStandard, pool.Edition())

	// A nested definition, then an update that writes only the database.
	db, err = db.Update().
		DefineElasticPool("ep2").WithPremiumPool().WithReservedDtu(ElasticPoolPremiumEDTUs125).Attach().
		Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ep2", db.ElasticPoolName())

	before = len(srv.Writes())
	_, err = db.Update().WithTag("env", "test").Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{put(armtest.ChildPath("rg1", "sql1", "databases", "db1"))}, srv.Writes()[before:])
}

func TestDatabase_UpdateWithNewElasticPoolFailure(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()
	s := createServer(t, m, "rg1", "sql1")

	db, err := s.Databases().Define("db1").Create(ctx)
	require.NoError(t, err)
	srv.FailOn(http.MethodPut, "/elasticPools/ep1", http.StatusBadRequest, "InvalidPoolSettings")

	_, err = db.Update().WithNewElasticPool("ep1", inner.ElasticPoolEditionBasic).Apply(ctx)
	require.Error(t, err)

	got, err := s.Databases().Get(ctx, "db1")
	require.NoError(t, err)
	assert.Empty(t, got.ElasticPoolName())
}

func TestDatabases_DeleteByID(t *testing.T) {
	m, srv := newTestManager(t, "")
	ctx := context.Background()
	s := createServer(t, m, "rg1", "sql1")

	db, err := s.Databases().Define("db1").Create(ctx)
	require.NoError(t, err)

	_, err = m.Databases().DeleteByIDAsync(ctx, db.ID()).Await()
	require.NoError(t, err)
	assert.False(t, srv.Has(armtest.ChildPath("rg1", "sql1", "databases", "db1")))

	_, err = m.Databases().GetBySQLServer(ctx, "rg1", "sql1", "db1")
	assert.True(t, IsNotFound(err))
}
