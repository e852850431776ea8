package arm

import (
	"fmt"

	azarm "github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
)

// ChildID is a parsed nested resource ID such as
// /subscriptions/s/resourceGroups/rg/providers/Microsoft.Sql/servers/srv/firewallRules/fr.
type ChildID struct {
	SubscriptionID string
	ResourceGroup  string
	ParentName     string
	Name           string
}

// ParseChildID splits a nested resource ID into its group, parent name and child name.
func ParseChildID(id string) (ChildID, error) {
	rid, err := azarm.ParseResourceID(id)
	if err != nil {
		return ChildID{}, fmt.Errorf("invalid resource id %q: %w", id, err)
	}
	if len(rid.ResourceType.Types) < 2 || rid.Parent == nil || rid.ResourceGroupName == "" {
		return ChildID{}, fmt.Errorf("resource id %q is not a nested resource id", id)
	}
	return ChildID{
		SubscriptionID: rid.SubscriptionID,
		ResourceGroup:  rid.ResourceGroupName,
		ParentName:     rid.Parent.Name,
		Name:           rid.Name,
	}, nil
}

// ParseTopLevelID returns the resource group and name of a top-level resource ID.
func ParseTopLevelID(id string) (resourceGroup, name string, err error) {
	rid, err := azarm.ParseResourceID(id)
	if err != nil {
		return "", "", fmt.Errorf("invalid resource id %q: %w", id, err)
	}
	if len(rid.ResourceType.Types) != 1 || rid.ResourceGroupName == "" || rid.Name == "" {
		return "", "", fmt.Errorf("resource id %q is not a top-level resource id", id)
	}
	return rid.ResourceGroupName, rid.Name, nil
}

// ParentID returns the ID of the resource that contains id.
func ParentID(id string) (string, error) {
	rid, err := azarm.ParseResourceID(id)
	if err != nil {
		return "", fmt.Errorf("invalid resource id %q: %w", id, err)
	}
	if rid.Parent == nil {
		return "", fmt.Errorf("resource id %q has no parent", id)
	}
	return rid.Parent.String(), nil
}
