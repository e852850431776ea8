package ir

// Topology is the desired set of SQL servers and their children, decoded from
// a .pkl or .yaml file.
type Topology struct {
	Subscription string    `pkl:"subscription" yaml:"subscription"`
	Servers      []*Server `pkl:"servers" yaml:"servers"`
}

// Server describes one SQL server.
type Server struct {
	Name                  string            `pkl:"name" yaml:"name"`
	ResourceGroup         string            `pkl:"resourceGroup" yaml:"resourceGroup"`
	Region                string            `pkl:"region" yaml:"region"`
	AdministratorLogin    string            `pkl:"administratorLogin" yaml:"administratorLogin"`
	AdministratorPassword string            `pkl:"administratorPassword" yaml:"administratorPassword"`
	AllowAzureServices    *bool             `pkl:"allowAzureServices" yaml:"allowAzureServices"`
	ActiveDirectoryAdmin  *ADAdmin          `pkl:"activeDirectoryAdmin" yaml:"activeDirectoryAdmin"`
	Tags                  map[string]string `pkl:"tags" yaml:"tags"`

	FirewallRules []*FirewallRule `pkl:"firewallRules" yaml:"firewallRules"`
	ElasticPools  []*ElasticPool  `pkl:"elasticPools" yaml:"elasticPools"`
	Databases     []*Database     `pkl:"databases" yaml:"databases"`
}

// ADAdmin is the Active Directory administrator of a server.
type ADAdmin struct {
	Login    string `pkl:"login" yaml:"login"`
	ObjectID string `pkl:"objectId" yaml:"objectId"`
}

// FirewallRule admits StartIP..EndIP. EndIP defaults to StartIP.
type FirewallRule struct {
	Name    string `pkl:"name" yaml:"name"`
	StartIP string `pkl:"startIp" yaml:"startIp"`
	EndIP   string `pkl:"endIp" yaml:"endIp"`
}

type ElasticPool struct {
	Name           string `pkl:"name" yaml:"name"`
	Edition        string `pkl:"edition" yaml:"edition"`
	Dtu            int    `pkl:"dtu" yaml:"dtu"`
	DatabaseDtuMin int    `pkl:"databaseDtuMin" yaml:"databaseDtuMin"`
	DatabaseDtuMax int    `pkl:"databaseDtuMax" yaml:"databaseDtuMax"`
	StorageMB      int    `pkl:"storageMB" yaml:"storageMB"`
}

type Database struct {
	Name             string            `pkl:"name" yaml:"name"`
	ElasticPool      string            `pkl:"elasticPool" yaml:"elasticPool"`
	Edition          string            `pkl:"edition" yaml:"edition"`
	ServiceObjective string            `pkl:"serviceObjective" yaml:"serviceObjective"`
	Collation        string            `pkl:"collation" yaml:"collation"`
	MaxSizeBytes     int64             `pkl:"maxSizeBytes" yaml:"maxSizeBytes"`
	Tags             map[string]string `pkl:"tags" yaml:"tags"`
}

// End returns the last admitted address.
func (r *FirewallRule) End() string {
	if r.EndIP == "" {
		return r.StartIP
	}
	return r.EndIP
}

// AllowsAzureServices reports whether the server admits Azure services. It
// defaults to true.
func (s *Server) AllowsAzureServices() bool {
	return s.AllowAzureServices == nil || *s.AllowAzureServices
}
