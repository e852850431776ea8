package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validServer() *Server {
	return &Server{
		Name:               "sql1",
		ResourceGroup:      "rg1",
		Region:             "eastus",
		AdministratorLogin: "admin1",
		FirewallRules:      []*FirewallRule{{Name: "office", StartIP: "10.0.0.1", EndIP: "10.0.0.9"}},
		ElasticPools:       []*ElasticPool{{Name: "ep1", Edition: "Standard"}},
		Databases:          []*Database{{Name: "db1", ElasticPool: "ep1"}},
	}
}

func TestTopology_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Server)
		wantErr string
	}{
		{"valid", func(s *Server) {}, ""},
		{"missing region", func(s *Server) { s.Region = "" }, "region is required"},
		{"bad address", func(s *Server) { s.FirewallRules[0].StartIP = "10.0.0" }, "firewall rule office"},
		{"reversed range", func(s *Server) { s.FirewallRules[0].EndIP = "10.0.0.0" }, "is before start"},
		{"duplicate rule", func(s *Server) {
			s.FirewallRules = append(s.FirewallRules, &FirewallRule{Name: "OFFICE", StartIP: "10.0.0.1"})
		}, "declared twice"},
		{"pool without edition", func(s *Server) { s.ElasticPools[0].Edition = "" }, "edition is required"},
		{"pooled objective", func(s *Server) { s.Databases[0].ServiceObjective = "S1" }, "cannot be combined"},
		{"partial admin", func(s *Server) { s.ActiveDirectoryAdmin = &ADAdmin{Login: "dba"} }, "needs login and objectId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validServer()
			tt.mutate(s)
			err := (&Topology{Servers: []*Server{s}}).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTopology_ValidateDuplicateServers(t *testing.T) {
	topo := &Topology{Servers: []*Server{validServer(), validServer()}}
	err := topo.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server rg1/sql1: declared twice")
}

func TestDefaults(t *testing.T) {
	r := &FirewallRule{StartIP: "10.0.0.1"}
	assert.Equal(t, "10.0.0.1", r.End())

	s := &Server{}
	assert.True(t, s.AllowsAzureServices())
	off := false
	s.AllowAzureServices = &off
	assert.False(t, s.AllowsAzureServices())
}
