package cli

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/picklr-io/azmgmt/pkg/arm/armtest"
	"github.com/picklr-io/azmgmt/pkg/taskgroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopology = `subscription: 00000000-0000-0000-0000-000000000001
servers:
  - name: sql1
    resourceGroup: rg1
    region: eastus
    administratorLogin: admin1
    administratorPassword: ${password}
    firewallRules:
      - name: office
        startIp: 10.0.0.1
        endIp: 10.0.0.9
    elasticPools:
      - name: pool1
        edition: Standard
        dtu: 100
    databases:
      - name: app
        elasticPool: pool1
      - name: reports
        edition: Standard
        serviceObjective: S1
`

func resetFlags() {
	flagSubscription, flagTenant, flagEndpoint = "", "", ""
	flagCloud = "AzurePublic"
	flagLogLevel, flagLogFormat = "warn", "text"
	flagParallelism, flagMaxRetries = 0, 0
	applyTimeout = defaultServerTimeout
	noColor = false
	serverResourceGroup, serverJSON = "", false
	firewallStart, firewallEnd, firewallJSON = "", "", false
	elasticPoolJSON = false
	databaseElasticPool, databaseJSON = "", false
	graphFormat = "dot"
	// Repeated -D flags merge into the existing map.
	applyProperties = map[string]string{}
	validateProperties = map[string]string{}
	graphProperties = map[string]string{}
	fmtCheck, fmtWrite = false, true
}

// withFakeARM points every command at an in-process ARM endpoint.
func withFakeARM(t *testing.T) *armtest.Server {
	t.Helper()
	srv := armtest.NewServer(t)
	prevCred, prevTransport := newCredential, transport
	newCredential = func(string) (azcore.TokenCredential, error) { return armtest.Credential{}, nil }
	transport = srv.ClientOptions().Transport
	t.Cleanup(func() {
		newCredential, transport = prevCred, prevTransport
		resetFlags()
	})
	return srv
}

func execute(t *testing.T, srv *armtest.Server, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	full := []string{"--no-color"}
	if srv != nil {
		full = append(full, "--subscription", armtest.SubscriptionID, "--endpoint", srv.URL())
	}
	rootCmd.SetArgs(append(full, args...))
	t.Cleanup(resetFlags)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFormatPkl(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trailing whitespace",
			input:    "name = \"test\"   \nregion = \"eastus\"  \n",
			expected: "name = \"test\"\nregion = \"eastus\"\n",
		},
		{
			name:     "ensure trailing newline",
			input:    "name = \"test\"",
			expected: "name = \"test\"\n",
		},
		{
			name:     "collapse blank lines",
			input:    "a = 1\n\n\n\nb = 2\n",
			expected: "a = 1\n\nb = 2\n",
		},
		{
			name:     "already formatted",
			input:    "a = 1\nb = 2\n",
			expected: "a = 1\nb = 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatPkl(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatYAML(t *testing.T) {
	out, err := formatYAML("servers:\n    - name: sql1\n      region: eastus\n")
	require.NoError(t, err)
	assert.Equal(t, "servers:\n  - name: sql1\n    region: eastus\n", out)

	again, err := formatYAML(out)
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = formatYAML("servers: [")
	assert.Error(t, err)
}

func TestFindTopologyFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pkl", "b.yaml", "c.yml", "notes.txt", ".hidden/d.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}

	files, err := findTopologyFiles(dir)
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	assert.ElementsMatch(t, []string{"a.pkl", "b.yaml", "c.yml"}, names)
}

func TestFmtCommand(t *testing.T) {
	path := writeFile(t, "topology.yaml", "servers:\n    - name: sql1\n")

	_, err := execute(t, nil, "fmt", "--check", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 file(s) not formatted")

	out, err := execute(t, nil, "fmt", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Formatted 1 file(s).")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "servers:\n  - name: sql1\n", string(data))
}

func TestColorize(t *testing.T) {
	noColor = false
	assert.Equal(t, "\033[31m", colorize("\033[31m"))

	noColor = true
	assert.Equal(t, "", colorize("\033[31m"))

	noColor = false
}

func TestEventPrinter(t *testing.T) {
	noColor = true
	defer func() { noColor = false }()

	var buf bytes.Buffer
	emit := eventPrinter(&buf)
	emit(taskgroup.Event{Key: "rg1/servers/sql1", Status: taskgroup.StatusStarted})
	emit(taskgroup.Event{Key: "rg1/servers/sql1", Status: taskgroup.StatusCompleted, Duration: 1500 * time.Microsecond})
	emit(taskgroup.Event{Key: "rg1/servers/sql1/databases/db1", Status: taskgroup.StatusFailed, Error: errors.New("boom")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "rg1/servers/sql1 (2ms)")
	assert.Contains(t, lines[1], "rg1/servers/sql1/databases/db1: boom")
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []string{"NAME", "REGION"}, [][]string{{"sql1", "eastus"}})
	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "sql1")
	assert.Contains(t, out, "(1 row)")
}

func TestValidateCommand(t *testing.T) {
	path := writeFile(t, "topology.yaml", testTopology)

	out, err := execute(t, nil, "validate", path, "-D", "password=secret")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "Servers: 1, firewall rules: 1, elastic pools: 1, databases: 2")

	_, err = execute(t, nil, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined properties: password")
}

func TestGraphCommand(t *testing.T) {
	path := writeFile(t, "topology.yaml", testTopology)

	out, err := execute(t, nil, "graph", path, "-D", "password=secret", "--format", "mermaid")
	require.NoError(t, err)
	assert.Contains(t, out, "graph BT")
	assert.Contains(t, out, `["rg1/servers/sql1"]`)
	assert.Contains(t, out, `["rg1/servers/sql1/elasticPools/pool1"]`)

	out, err = execute(t, nil, "graph", path, "-D", "password=secret")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph taskgroup {")
	assert.Contains(t, out, `[label="rg1/servers/sql1/databases/app"];`)

	_, err = execute(t, nil, "graph", path, "-D", "password=secret", "--format", "svg")
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topology.yaml")

	out, err := execute(t, nil, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path)

	out, err = execute(t, nil, "validate", path, "-D", "adminPassword=x")
	require.NoError(t, err, out)

	out, err = execute(t, nil, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestApplyCommand(t *testing.T) {
	srv := withFakeARM(t)
	path := writeFile(t, "topology.yaml", testTopology)

	out, err := execute(t, srv, "apply", path, "-D", "password=secret")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Apply complete! Servers: 1.")

	assert.True(t, srv.Has(armtest.ServerPath("rg1", "sql1")))
	assert.True(t, srv.Has(armtest.ChildPath("rg1", "sql1", "firewallRules", "office")))
	assert.True(t, srv.Has(armtest.ChildPath("rg1", "sql1", "firewallRules", "AllowAllWindowsAzureIps")))
	assert.True(t, srv.Has(armtest.ChildPath("rg1", "sql1", "elasticPools", "pool1")))
	app := srv.Resource(armtest.ChildPath("rg1", "sql1", "databases", "app"))
	require.NotNil(t, app)
	assert.Equal(t, "pool1", app["properties"].(map[string]any)["elasticPoolName"])

	writes := srv.Writes()
	pool := indexOf(writes, http.MethodPut+" "+armtest.ChildPath("rg1", "sql1", "elasticPools", "pool1"))
	db := indexOf(writes, http.MethodPut+" "+armtest.ChildPath("rg1", "sql1", "databases", "app"))
	require.GreaterOrEqual(t, pool, 0)
	assert.Less(t, pool, db)
	assert.NoFileExists(t, path+".lock")

	// A second apply updates the existing server in place.
	out, err = execute(t, srv, "apply", path, "-D", "password=secret")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Apply complete! Servers: 1.")
}

func TestApplyCommand_ReportsFailures(t *testing.T) {
	srv := withFakeARM(t)
	path := writeFile(t, "topology.yaml", testTopology)
	srv.FailOn(http.MethodPut, "/servers/sql1", http.StatusConflict, "ServerNameAlreadyExists")

	out, err := execute(t, srv, "apply", path, "-D", "password=secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply failed")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "skipped")
	assert.False(t, srv.Has(armtest.ChildPath("rg1", "sql1", "databases", "app")))
	assert.NoFileExists(t, path+".lock")
}

func TestResourceCommands(t *testing.T) {
	srv := withFakeARM(t)
	path := writeFile(t, "topology.yaml", testTopology)
	_, err := execute(t, srv, "apply", path, "-D", "password=secret")
	require.NoError(t, err)

	out, err := execute(t, srv, "server", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sql1")
	assert.Contains(t, out, "(1 row)")

	out, err = execute(t, srv, "server", "show", "rg1", "sql1")
	require.NoError(t, err)
	assert.Contains(t, out, "# "+armtest.ServerPath("rg1", "sql1"))

	out, err = execute(t, srv, "firewall", "create", "rg1", "sql1", "vpn", "--start", "192.168.0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "Created firewall rule vpn (192.168.0.1 - 192.168.0.1)")

	out, err = execute(t, srv, "firewall", "list", "rg1", "sql1")
	require.NoError(t, err)
	assert.Contains(t, out, "vpn")
	assert.Contains(t, out, "office")

	out, err = execute(t, srv, "elasticpool", "show", "rg1", "sql1", "pool1")
	require.NoError(t, err)
	assert.Contains(t, out, "database         = app")

	out, err = execute(t, srv, "database", "list", "rg1", "sql1", "--elastic-pool", "pool1")
	require.NoError(t, err)
	assert.Contains(t, out, "app")
	assert.NotContains(t, out, "reports")

	out, err = execute(t, srv, "database", "list", "rg1", "sql1", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "reports"`)

	_, err = execute(t, srv, "database", "delete", "rg1", "sql1", "reports")
	require.NoError(t, err)
	assert.False(t, srv.Has(armtest.ChildPath("rg1", "sql1", "databases", "reports")))

	_, err = execute(t, srv, "server", "delete", "rg1", "sql1")
	require.NoError(t, err)
	assert.False(t, srv.Has(armtest.ServerPath("rg1", "sql1")))
}

func TestLockTopology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topology.yaml")

	unlock, err := lockTopology(path)
	require.NoError(t, err)
	assert.FileExists(t, path+".lock")

	_, err = lockTopology(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked by another apply")

	require.NoError(t, unlock())
	assert.NoFileExists(t, path+".lock")

	// A stale lock is taken over.
	require.NoError(t, os.WriteFile(path+".lock", nil, 0644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path+".lock", old, old))
	unlock, err = lockTopology(path)
	require.NoError(t, err)
	require.NoError(t, unlock())
}

func TestApplyCommand_LockedTopology(t *testing.T) {
	srv := withFakeARM(t)
	path := writeFile(t, "topology.yaml", testTopology)
	require.NoError(t, os.WriteFile(path+".lock", nil, 0644))

	_, err := execute(t, srv, "apply", path, "-D", "password=secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
	assert.Empty(t, srv.Writes())
}

func TestNewManager_RequiresSubscription(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "")
	_, err := newManager("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no subscription")
}

func indexOf(slice []string, s string) int {
	for i, v := range slice {
		if v == s {
			return i
		}
	}
	return -1
}
