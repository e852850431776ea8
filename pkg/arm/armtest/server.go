// Package armtest provides an in-memory Resource Manager endpoint for tests.
//
// The server stores resources by path, enforces that a parent exists before a
// child is written, and records every request so tests can assert ordering.
package armtest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	azarm "github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/google/uuid"
)

// SubscriptionID is the subscription every test resource lives in.
const SubscriptionID = "00000000-0000-0000-0000-000000000001"

// TenantID is reported by Credential.
const TenantID = "00000000-0000-0000-0000-0000000000aa"

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

type failure struct {
	method string
	suffix string
	status int
	code   string
}

// Server is a fake ARM endpoint backed by a map.
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	resources map[string]map[string]any // lower-cased path -> resource body
	requests  []Request
	failures  []failure
}

// NewServer starts a TLS fake ARM endpoint. It is closed when the test ends.
func NewServer(t interface {
	Cleanup(func())
}) *Server {
	s := &Server{resources: make(map[string]map[string]any)}
	s.srv = httptest.NewTLSServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the endpoint base URL.
func (s *Server) URL() string {
	return s.srv.URL
}

// ClientOptions returns options pointing an ARM client at s.
func (s *Server) ClientOptions() *azarm.ClientOptions {
	return &azarm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Cloud: cloud.Configuration{
				ActiveDirectoryAuthorityHost: s.srv.URL + "/",
				Services: map[cloud.ServiceName]cloud.ServiceConfiguration{
					cloud.ResourceManager: {
						Audience: "https://management.core.windows.net/",
						Endpoint: s.srv.URL,
					},
				},
			},
			Transport: s.srv.Client(),
			Retry:     policy.RetryOptions{MaxRetries: -1},
		},
		DisableRPRegistration: true,
	}
}

// FailOn makes the next matching request fail with status and code. A request
// matches when its method equals method and its path ends with suffix.
func (s *Server) FailOn(method, suffix string, status int, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, suffix: strings.ToLower(suffix), status: status, code: code})
}

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Writes returns "METHOD path" for every PUT, POST and DELETE, in order.
func (s *Server) Writes() []string {
	var out []string
	for _, r := range s.Requests() {
		if r.Method != http.MethodGet {
			out = append(out, r.Method+" "+r.Path)
		}
	}
	return out
}

// Seed stores a resource directly, bypassing parent checks.
func (s *Server) Seed(path string, body map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[strings.ToLower(path)] = s.decorate(path, body, nil)
}

// Resource returns the stored body at path, or nil.
func (s *Server) Resource(path string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resources[strings.ToLower(path)]
}

// Has reports whether a resource exists at path.
func (s *Server) Has(path string) bool {
	return s.Resource(path) != nil
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		writeError(w, http.StatusUnauthorized, "AuthenticationFailed", "missing bearer token")
		return
	}
	if r.URL.Query().Get("api-version") == "" {
		writeError(w, http.StatusBadRequest, "MissingApiVersionParameter", "api-version is required")
		return
	}

	var body map[string]any
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				writeError(w, http.StatusBadRequest, "InvalidRequestContent", err.Error())
				return
			}
		}
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	key := strings.ToLower(path)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{Method: r.Method, Path: path, Query: r.URL.Query(), Body: body})

	for i, f := range s.failures {
		if f.method == r.Method && strings.HasSuffix(key, f.suffix) {
			s.failures = append(s.failures[:i], s.failures[i+1:]...)
			writeError(w, f.status, f.code, "injected failure")
			return
		}
	}

	switch r.Method {
	case http.MethodGet:
		if s.poolMetrics(w, key, r.URL.Query().Get("$filter")) {
			return
		}
		if isCollection(path) {
			if pool, ok := s.poolDatabases(key); ok {
				writeJSON(w, http.StatusOK, map[string]any{"value": pool})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"value": s.list(key)})
			return
		}
		res, ok := s.resources[key]
		if !ok {
			writeError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("resource %s not found", path))
			return
		}
		writeJSON(w, http.StatusOK, res)

	case http.MethodPut:
		parent := parentPath(key)
		var parentRes map[string]any
		if parent != "" {
			p, ok := s.resources[parent]
			if !ok {
				writeError(w, http.StatusNotFound, "ParentResourceNotFound", fmt.Sprintf("parent of %s not found", path))
				return
			}
			parentRes = p
		}
		if code, msg := s.checkReferences(key, body); code != "" {
			writeError(w, http.StatusNotFound, code, msg)
			return
		}
		prior, existed := s.resources[key]
		if existed && leavesPool(key, body) {
			if props, ok := prior["properties"].(map[string]any); ok {
				delete(props, "elasticPoolName")
			}
		}
		res := s.decorate(path, mergeBodies(prior, body), parentRes)
		s.resources[key] = res
		status := http.StatusCreated
		if existed {
			status = http.StatusOK
		}
		writeJSON(w, status, res)

	case http.MethodDelete:
		if _, ok := s.resources[key]; !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		for k := range s.resources {
			if k == key || strings.HasPrefix(k, key+"/") {
				delete(s.resources, k)
			}
		}
		w.WriteHeader(http.StatusOK)

	case http.MethodPost:
		if strings.HasSuffix(key, "/move") {
			s.move(w, strings.TrimSuffix(key, "/move"), body)
			return
		}
		if strings.HasSuffix(key, "/export") && collectionType(strings.TrimSuffix(key, "/export")) == "databases" {
			s.export(w, strings.TrimSuffix(key, "/export"), body)
			return
		}
		writeError(w, http.StatusBadRequest, "UnsupportedOperation", "unsupported POST "+path)

	default:
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}

// checkReferences rejects a database that names an elastic pool the server does not have.
func (s *Server) checkReferences(key string, body map[string]any) (string, string) {
	if collectionType(key) != "databases" {
		return "", ""
	}
	props, _ := body["properties"].(map[string]any)
	pool, _ := props["elasticPoolName"].(string)
	if pool == "" {
		return "", ""
	}
	server := parentPath(key)
	if _, ok := s.resources[server+"/elasticpools/"+strings.ToLower(pool)]; !ok {
		return "ElasticPoolNotFound", fmt.Sprintf("elastic pool %s does not exist", pool)
	}
	return "", ""
}

// leavesPool reports whether a database PUT sets a standalone service
// objective without naming a pool, which takes the database out of its pool.
func leavesPool(key string, body map[string]any) bool {
	if collectionType(key) != "databases" {
		return false
	}
	props, _ := body["properties"].(map[string]any)
	obj, _ := props["requestedServiceObjectiveName"].(string)
	_, named := props["elasticPoolName"]
	return obj != "" && obj != "ElasticPool" && !named
}

func (s *Server) move(w http.ResponseWriter, key string, body map[string]any) {
	res, ok := s.resources[key]
	if !ok {
		writeError(w, http.StatusNotFound, "ResourceNotFound", "resource not found")
		return
	}
	target, _ := body["id"].(string)
	if target == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequestContent", "id is required")
		return
	}
	targetKey := strings.ToLower(target)
	if parentPath(targetKey) != parentPath(key) {
		writeError(w, http.StatusBadRequest, "InvalidMoveTarget", "move must stay under the same parent")
		return
	}
	delete(s.resources, key)
	s.resources[targetKey] = s.decorate(target, res, nil)
	w.WriteHeader(http.StatusOK)
}

// export answers a database export with a completed operation whose blob
// URI is the requested storage URI.
func (s *Server) export(w http.ResponseWriter, key string, body map[string]any) {
	res, ok := s.resources[key]
	if !ok {
		writeError(w, http.StatusNotFound, "ResourceNotFound", "resource not found")
		return
	}
	for _, field := range []string{"storageKeyType", "storageKey", "storageUri", "administratorLogin", "administratorLoginPassword"} {
		if v, _ := body[field].(string); v == "" {
			writeError(w, http.StatusBadRequest, "InvalidRequestContent", field+" is required")
			return
		}
	}
	server := parentPath(key)
	now := time.Now().UTC().Format(time.RFC3339)
	requestID := uuid.NewString()
	writeJSON(w, http.StatusOK, map[string]any{
		"id":   server + "/importExportOperationResults/" + requestID,
		"name": requestID,
		"type": "Microsoft.Sql/servers/importExportOperationResults",
		"properties": map[string]any{
			"requestType":      "Export",
			"requestId":        requestID,
			"serverName":       server[strings.LastIndex(server, "/")+1:],
			"databaseName":     res["name"],
			"status":           "Completed",
			"blobUri":          body["storageUri"],
			"queuedTime":       now,
			"lastModifiedTime": now,
		},
	})
}

// poolMetrics answers .../elasticPools/{pool}/metrics and
// .../elasticPools/{pool}/metricDefinitions with a fixed set of series. A
// filter of the form "name/value eq 'x'" narrows the metrics to x.
func (s *Server) poolMetrics(w http.ResponseWriter, key, filter string) bool {
	var kind string
	switch {
	case strings.HasSuffix(key, "/metrics"):
		kind = "metrics"
	case strings.HasSuffix(key, "/metricdefinitions"):
		kind = "metricdefinitions"
	default:
		return false
	}
	poolKey := strings.TrimSuffix(key, "/"+kind)
	if collectionType(poolKey) != "elasticpools" {
		return false
	}
	pool, ok := s.resources[poolKey]
	if !ok {
		writeError(w, http.StatusNotFound, "ResourceNotFound", "resource not found")
		return true
	}

	want := ""
	if i := strings.Index(filter, "name/value eq '"); i >= 0 {
		rest := filter[i+len("name/value eq '"):]
		if j := strings.Index(rest, "'"); j >= 0 {
			want = rest[:j]
		}
	}
	end := time.Now().UTC().Truncate(time.Minute)
	out := []map[string]any{}
	for _, m := range poolMetricSeries {
		if want != "" && !strings.EqualFold(want, m.name) {
			continue
		}
		name := map[string]any{"value": m.name, "localizedValue": m.display}
		if kind == "metricdefinitions" {
			out = append(out, map[string]any{
				"name":                   name,
				"primaryAggregationType": "Average",
				"resourceUri":            pool["id"],
				"unit":                   m.definitionUnit,
				"metricAvailabilities": []map[string]any{
					{"retention": "P14D", "timeGrain": "PT5M"},
					{"retention": "P35D", "timeGrain": "PT1H"},
				},
			})
			continue
		}
		out = append(out, map[string]any{
			"name":      name,
			"unit":      m.unit,
			"timeGrain": "PT5M",
			"startTime": end.Add(-10 * time.Minute).Format(time.RFC3339),
			"endTime":   end.Format(time.RFC3339),
			"metricValues": []map[string]any{
				{"timestamp": end.Add(-10 * time.Minute).Format(time.RFC3339), "average": m.average, "maximum": m.average, "minimum": m.average, "count": 1, "total": m.average},
				{"timestamp": end.Add(-5 * time.Minute).Format(time.RFC3339), "average": m.average, "maximum": m.average, "minimum": m.average, "count": 1, "total": m.average},
			},
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"value": out})
	return true
}

var poolMetricSeries = []struct {
	name, display        string
	unit, definitionUnit string
	average              float64
}{
	{"dtu_consumption_percent", "DTU percentage", "percent", "Percent", 12.5},
	{"storage_percent", "Storage percentage", "percent", "Percent", 3},
}

// poolDatabases answers .../elasticPools/{pool}/databases from the server's
// databases whose elasticPoolName names the pool.
func (s *Server) poolDatabases(collection string) ([]map[string]any, bool) {
	if !strings.HasSuffix(collection, "/databases") || collectionType(strings.TrimSuffix(collection, "/databases")) != "elasticpools" {
		return nil, false
	}
	poolKey := strings.TrimSuffix(collection, "/databases")
	pool := poolKey[strings.LastIndex(poolKey, "/")+1:]
	out := []map[string]any{}
	for _, db := range s.list(parentPath(poolKey) + "/databases") {
		props, _ := db["properties"].(map[string]any)
		if name, _ := props["elasticPoolName"].(string); strings.EqualFold(name, pool) {
			out = append(out, db)
		}
	}
	return out, true
}

func (s *Server) list(collection string) []map[string]any {
	var keys []string
	for k := range s.resources {
		c := collectionOf(k)
		if c == collection || (!strings.Contains(collection, "/resourcegroups/") && stripResourceGroup(c) == collection) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.resources[k])
	}
	return out
}

// decorate fills id, name, type and the read-only properties ARM would compute.
func (s *Server) decorate(path string, body, parent map[string]any) map[string]any {
	if body == nil {
		body = make(map[string]any)
	}
	segs := strings.Split(strings.Trim(path, "/"), "/")
	name := segs[len(segs)-1]
	body["id"] = path
	body["name"] = name
	body["type"] = resourceType(path)
	if _, ok := body["location"]; !ok && parent != nil {
		if loc, ok := parent["location"]; ok {
			body["location"] = loc
		}
	}

	props, _ := body["properties"].(map[string]any)
	if props == nil {
		props = make(map[string]any)
	}
	now := time.Now().UTC().Format(time.RFC3339)

	switch collectionType(strings.ToLower(path)) {
	case "servers":
		body["kind"] = "v12.0"
		if _, ok := props["version"]; !ok {
			props["version"] = "12.0"
		}
		props["fullyQualifiedDomainName"] = name + ".database.windows.net"
		props["state"] = "Ready"
		delete(props, "administratorLoginPassword")
	case "firewallrules":
		body["kind"] = "v12.0"
	case "elasticpools":
		body["kind"] = "pool"
		props["state"] = "Ready"
		if _, ok := props["creationDate"]; !ok {
			props["creationDate"] = now
		}
	case "databases":
		body["kind"] = "v12.0,user"
		props["status"] = "Online"
		if _, ok := props["creationDate"]; !ok {
			props["creationDate"] = now
		}
		if _, ok := props["databaseId"]; !ok {
			props["databaseId"] = uuid.NewString()
		}
		if _, ok := props["collation"]; !ok {
			props["collation"] = "SQL_Latin1_General_CP1_CI_AS"
		}
		if obj, ok := props["requestedServiceObjectiveName"]; ok {
			props["serviceLevelObjective"] = obj
		}
		props["earliestRestoreDate"] = now
	case "extensions":
		props["status"] = "Completed"
		props["requestId"] = uuid.NewString()
	case "administrators":
		if _, ok := props["administratorType"]; !ok {
			props["administratorType"] = "ActiveDirectory"
		}
	}
	body["properties"] = props
	return body
}

func mergeBodies(prior, body map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range prior {
		out[k] = v
	}
	for k, v := range body {
		if k == "properties" {
			props := make(map[string]any)
			if pp, ok := out["properties"].(map[string]any); ok {
				for pk, pv := range pp {
					props[pk] = pv
				}
			}
			if np, ok := v.(map[string]any); ok {
				for pk, pv := range np {
					props[pk] = pv
				}
			}
			out[k] = props
			continue
		}
		out[k] = v
	}
	return out
}

// providerSegments returns the path segments after providers/{namespace}.
func providerSegments(path string) []string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segs) - 1; i >= 0; i-- {
		if strings.EqualFold(segs[i], "providers") && i+1 < len(segs) {
			return segs[i+2:]
		}
	}
	return nil
}

func isCollection(path string) bool {
	return len(providerSegments(path))%2 == 1
}

// collectionType returns the lower-cased type segment of a resource path.
func collectionType(key string) string {
	segs := providerSegments(key)
	if len(segs) < 2 {
		return ""
	}
	return strings.ToLower(segs[len(segs)-2])
}

func resourceType(path string) string {
	segs := providerSegments(path)
	var types []string
	for i := 0; i < len(segs); i += 2 {
		types = append(types, segs[i])
	}
	return "Microsoft.Sql/" + strings.Join(types, "/")
}

func collectionOf(key string) string {
	return key[:strings.LastIndex(key, "/")]
}

// parentPath returns the containing resource path, or "" for a top-level resource.
func parentPath(key string) string {
	if len(providerSegments(key)) <= 2 {
		return ""
	}
	c := collectionOf(key)
	return c[:strings.LastIndex(c, "/")]
}

func stripResourceGroup(key string) string {
	idx := strings.Index(key, "/resourcegroups/")
	if idx < 0 {
		return key
	}
	rest := key[idx+len("/resourcegroups/"):]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return key[:idx]
	}
	return key[:idx] + rest[slash:]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"code": code, "message": msg},
	})
}

// Credential is a static token credential.
type Credential struct{}

// GetToken implements azcore.TokenCredential.
func (Credential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "fake-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

// ServerPath returns the path of a SQL server in the test subscription.
func ServerPath(resourceGroup, server string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Sql/servers/%s", SubscriptionID, resourceGroup, server)
}

// ChildPath returns the path of a server child such as firewallRules/name.
func ChildPath(resourceGroup, server, kind, name string) string {
	return ServerPath(resourceGroup, server) + "/" + kind + "/" + name
}
