// Package inner holds the wire models and REST clients for the
// Microsoft.Sql resource provider. Each client maps one-to-one onto the
// provider's operations and returns the raw resource bodies.
package inner

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

const (
	apiVersion       = "2014-04-01"
	renameAPIVersion = "2017-10-01-preview"
)

// Client groups the per-resource clients of one subscription.
type Client struct {
	subscriptionID string
	internal       *arm.Client

	servers          *ServersClient
	firewallRules    *FirewallRulesClient
	elasticPools     *ElasticPoolsClient
	databases        *DatabasesClient
	adAdministrators *ServerAzureADAdministratorsClient
}

// NewClient returns the Microsoft.Sql clients for subscriptionID that send
// through the given ARM pipeline.
func NewClient(subscriptionID string, internal *arm.Client) *Client {
	b := base{subscriptionID: subscriptionID, internal: internal}
	return &Client{
		subscriptionID:   subscriptionID,
		internal:         internal,
		servers:          &ServersClient{b},
		firewallRules:    &FirewallRulesClient{b},
		elasticPools:     &ElasticPoolsClient{b},
		databases:        &DatabasesClient{b},
		adAdministrators: &ServerAzureADAdministratorsClient{b},
	}
}

// SubscriptionID returns the subscription the clients address.
func (c *Client) SubscriptionID() string { return c.subscriptionID }

// Servers returns the servers client.
func (c *Client) Servers() *ServersClient { return c.servers }

// FirewallRules returns the firewall rules client.
func (c *Client) FirewallRules() *FirewallRulesClient { return c.firewallRules }

// ElasticPools returns the elastic pools client.
func (c *Client) ElasticPools() *ElasticPoolsClient { return c.elasticPools }

// Databases returns the databases client.
func (c *Client) Databases() *DatabasesClient { return c.databases }

// ServerAzureADAdministrators returns the Active Directory administrators client.
func (c *Client) ServerAzureADAdministrators() *ServerAzureADAdministratorsClient {
	return c.adAdministrators
}

type base struct {
	subscriptionID string
	internal       *arm.Client
}

// call sends one request and decodes the body into result when result is
// non-nil. Any status outside accepted becomes an *azcore.ResponseError.
func (b base) call(ctx context.Context, method, urlPath, version string, body, result any, accepted ...int) error {
	return b.callWithQuery(ctx, method, urlPath, version, nil, body, result, accepted...)
}

// callWithQuery is call with extra query parameters such as $filter.
func (b base) callWithQuery(ctx context.Context, method, urlPath, version string, query url.Values, body, result any, accepted ...int) error {
	req, err := runtime.NewRequest(ctx, method, runtime.JoinPaths(b.internal.Endpoint(), urlPath))
	if err != nil {
		return err
	}
	reqQP := req.Raw().URL.Query()
	for k, vs := range query {
		for _, v := range vs {
			reqQP.Add(k, v)
		}
	}
	reqQP.Set("api-version", version)
	req.Raw().URL.RawQuery = reqQP.Encode()
	req.Raw().Header["Accept"] = []string{"application/json"}
	if body != nil {
		if err := runtime.MarshalAsJSON(req, body); err != nil {
			return err
		}
	}
	resp, err := b.internal.Pipeline().Do(req)
	if err != nil {
		return err
	}
	if !runtime.HasStatusCode(resp, accepted...) {
		return runtime.NewResponseError(resp)
	}
	if result == nil {
		return nil
	}
	return runtime.UnmarshalAsJSON(resp, result)
}

// resourcePath expands a path template. Every placeholder must be non-empty.
func (b base) resourcePath(template string, params ...string) (string, error) {
	if b.subscriptionID == "" {
		return "", errors.New("parameter subscriptionID cannot be empty")
	}
	path := strings.ReplaceAll(template, "{subscriptionId}", url.PathEscape(b.subscriptionID))
	for i := 0; i+1 < len(params); i += 2 {
		if params[i+1] == "" {
			return "", fmt.Errorf("parameter %s cannot be empty", params[i])
		}
		path = strings.ReplaceAll(path, "{"+params[i]+"}", url.PathEscape(params[i+1]))
	}
	return path, nil
}

const (
	serversPathTemplate       = "/subscriptions/{subscriptionId}/providers/Microsoft.Sql/servers"
	serversByGroupTemplate    = "/subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/Microsoft.Sql/servers"
	serverPathTemplate        = serversByGroupTemplate + "/{serverName}"
	firewallRulesTemplate     = serverPathTemplate + "/firewallRules"
	elasticPoolsTemplate      = serverPathTemplate + "/elasticPools"
	databasesTemplate         = serverPathTemplate + "/databases"
	adAdministratorTemplate   = serverPathTemplate + "/administrators/activeDirectory"
	databaseExtensionTemplate = databasesTemplate + "/{databaseName}/extensions/{extensionName}"
)
