package inner

import (
	"context"
	"net/http"

	"github.com/Azure/go-autorest/autorest/validation"
)

// FirewallRulesClient manages server firewall rules.
type FirewallRulesClient struct {
	base
}

// CreateOrUpdate creates or updates a firewall rule.
func (client *FirewallRulesClient) CreateOrUpdate(ctx context.Context, resourceGroupName, serverName, firewallRuleName string, parameters FirewallRuleInner) (FirewallRuleInner, error) {
	if err := validation.Validate([]validation.Validation{
		{TargetValue: parameters.Properties,
			Constraints: []validation.Constraint{{Target: "parameters.Properties", Name: validation.Null, Rule: true,
				Chain: []validation.Constraint{
					{Target: "parameters.Properties.StartIPAddress", Name: validation.Null, Rule: true, Chain: nil},
					{Target: "parameters.Properties.EndIPAddress", Name: validation.Null, Rule: true, Chain: nil},
				}}}},
	}); err != nil {
		return FirewallRuleInner{}, validation.NewError("inner.FirewallRulesClient", "CreateOrUpdate", "%s", err.Error())
	}
	urlPath, err := client.resourcePath(firewallRulesTemplate+"/{firewallRuleName}",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "firewallRuleName", firewallRuleName)
	if err != nil {
		return FirewallRuleInner{}, err
	}
	var result FirewallRuleInner
	if err := client.call(ctx, http.MethodPut, urlPath, apiVersion, parameters, &result, http.StatusOK, http.StatusCreated); err != nil {
		return FirewallRuleInner{}, err
	}
	return result, nil
}

// Get returns a firewall rule.
func (client *FirewallRulesClient) Get(ctx context.Context, resourceGroupName, serverName, firewallRuleName string) (FirewallRuleInner, error) {
	urlPath, err := client.resourcePath(firewallRulesTemplate+"/{firewallRuleName}",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "firewallRuleName", firewallRuleName)
	if err != nil {
		return FirewallRuleInner{}, err
	}
	var result FirewallRuleInner
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return FirewallRuleInner{}, err
	}
	return result, nil
}

// ListByServer returns the firewall rules of a server.
func (client *FirewallRulesClient) ListByServer(ctx context.Context, resourceGroupName, serverName string) ([]*FirewallRuleInner, error) {
	urlPath, err := client.resourcePath(firewallRulesTemplate, "resourceGroupName", resourceGroupName, "serverName", serverName)
	if err != nil {
		return nil, err
	}
	var result FirewallRuleListResult
	if err := client.call(ctx, http.MethodGet, urlPath, apiVersion, nil, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// Delete deletes a firewall rule.
func (client *FirewallRulesClient) Delete(ctx context.Context, resourceGroupName, serverName, firewallRuleName string) error {
	urlPath, err := client.resourcePath(firewallRulesTemplate+"/{firewallRuleName}",
		"resourceGroupName", resourceGroupName, "serverName", serverName, "firewallRuleName", firewallRuleName)
	if err != nil {
		return err
	}
	return client.call(ctx, http.MethodDelete, urlPath, apiVersion, nil, nil, http.StatusOK, http.StatusNoContent)
}
