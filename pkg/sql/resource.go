package sql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/google/uuid"
)

const (
	kindFirewallRules = "firewallRules"
	kindElasticPools  = "elasticPools"
	kindDatabases     = "databases"
)

// serverRef identifies the server a child resource lives under.
type serverRef struct {
	resourceGroup string
	name          string
	location      string
}

func serverKey(resourceGroup, name string) string {
	return resourceGroup + "/servers/" + name
}

func (r serverRef) key() string {
	return serverKey(r.resourceGroup, r.name)
}

func (r serverRef) childKey(kind, name string) string {
	return r.key() + "/" + kind + "/" + name
}

// childID returns the resource ID of a server child.
func (m *Manager) childID(ref serverRef, kind, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Sql/servers/%s/%s/%s",
		m.subscriptionID, ref.resourceGroup, ref.name, kind, name)
}

// resolveLocation fills ref.location from the server when the caller did not
// supply it.
func (m *Manager) resolveLocation(ctx context.Context, ref *serverRef) (string, error) {
	if ref.location != "" {
		return ref.location, nil
	}
	s, err := m.client.Servers().Get(ctx, ref.resourceGroup, ref.name)
	if err != nil {
		return "", fmt.Errorf("failed to resolve location of server %s: %w", ref.name, err)
	}
	ref.location = deref(s.Location)
	return ref.location, nil
}

// resourceItem is a task group item backed by closures.
type resourceItem struct {
	key   string
	run   func(ctx context.Context) error
	after func(faulted bool)
}

func (i *resourceItem) Key() string { return i.key }

func (i *resourceItem) Invoke(ctx context.Context) error { return i.run(ctx) }

func (i *resourceItem) AfterPostRun(ctx context.Context, isGroupFaulted bool) error {
	if i.after != nil {
		i.after(isGroupFaulted)
	}
	return nil
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func derefTime(t *date.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.Time
}

func stringMap(tags map[string]*string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = deref(v)
	}
	return out
}

func setTag(tags *map[string]*string, key, value string) {
	if *tags == nil {
		*tags = make(map[string]*string)
	}
	v := value
	(*tags)[key] = &v
}

// randomName returns prefix followed by eight random hex characters.
func randomName(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
