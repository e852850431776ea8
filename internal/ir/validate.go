package ir

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

// Validate reports every structural problem in t.
func (t *Topology) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for i, s := range t.Servers {
		if s == nil {
			errs = append(errs, fmt.Errorf("servers[%d]: empty entry", i))
			continue
		}
		key := strings.ToLower(s.ResourceGroup + "/" + s.Name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("server %s/%s: declared twice", s.ResourceGroup, s.Name))
		}
		seen[key] = true
		errs = append(errs, s.validate()...)
	}
	return errors.Join(errs...)
}

func (s *Server) validate() []error {
	var errs []error
	where := "server " + s.Name
	if s.Name == "" {
		errs = append(errs, errors.New("server: name is required"))
	}
	if s.ResourceGroup == "" {
		errs = append(errs, fmt.Errorf("%s: resourceGroup is required", where))
	}
	if s.Region == "" {
		errs = append(errs, fmt.Errorf("%s: region is required", where))
	}
	if s.AdministratorLogin == "" {
		errs = append(errs, fmt.Errorf("%s: administratorLogin is required", where))
	}
	if a := s.ActiveDirectoryAdmin; a != nil && (a.Login == "" || a.ObjectID == "") {
		errs = append(errs, fmt.Errorf("%s: activeDirectoryAdmin needs login and objectId", where))
	}

	names := make(map[string]bool)
	for _, r := range s.FirewallRules {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("%s: firewall rule name is required", where))
		} else if names[strings.ToLower(r.Name)] {
			errs = append(errs, fmt.Errorf("%s: firewall rule %s declared twice", where, r.Name))
		}
		names[strings.ToLower(r.Name)] = true
		start, err := netip.ParseAddr(r.StartIP)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: firewall rule %s: %w", where, r.Name, err))
			continue
		}
		end, err := netip.ParseAddr(r.End())
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: firewall rule %s: %w", where, r.Name, err))
			continue
		}
		if end.Less(start) {
			errs = append(errs, fmt.Errorf("%s: firewall rule %s: end %s is before start %s", where, r.Name, end, start))
		}
	}

	pools := make(map[string]bool)
	for _, p := range s.ElasticPools {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s: elastic pool name is required", where))
		} else if pools[strings.ToLower(p.Name)] {
			errs = append(errs, fmt.Errorf("%s: elastic pool %s declared twice", where, p.Name))
		}
		pools[strings.ToLower(p.Name)] = true
		if p.Edition == "" {
			errs = append(errs, fmt.Errorf("%s: elastic pool %s: edition is required", where, p.Name))
		}
	}

	dbs := make(map[string]bool)
	for _, d := range s.Databases {
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("%s: database name is required", where))
		} else if dbs[strings.ToLower(d.Name)] {
			errs = append(errs, fmt.Errorf("%s: database %s declared twice", where, d.Name))
		}
		dbs[strings.ToLower(d.Name)] = true
		if d.ElasticPool != "" && d.ServiceObjective != "" {
			errs = append(errs, fmt.Errorf("%s: database %s: serviceObjective cannot be combined with elasticPool", where, d.Name))
		}
	}
	return errs
}
