package arm

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ruleID = "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Sql/servers/sql1/firewallRules/fr1"

func TestParseChildID(t *testing.T) {
	id, err := ParseChildID(ruleID)
	require.NoError(t, err)
	assert.Equal(t, ChildID{
		SubscriptionID: "sub1",
		ResourceGroup:  "rg1",
		ParentName:     "sql1",
		Name:           "fr1",
	}, id)
}

func TestParseChildID_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"garbage", "not-an-id"},
		{"top level", "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Sql/servers/sql1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseChildID(tt.id)
			assert.Error(t, err)
		})
	}
}

func TestParseTopLevelID(t *testing.T) {
	rg, name, err := ParseTopLevelID("/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Sql/servers/sql1")
	require.NoError(t, err)
	assert.Equal(t, "rg1", rg)
	assert.Equal(t, "sql1", name)

	_, _, err = ParseTopLevelID(ruleID)
	assert.Error(t, err)
}

func TestParentID(t *testing.T) {
	parent, err := ParentID(ruleID)
	require.NoError(t, err)
	assert.Equal(t, "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Sql/servers/sql1", parent)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&azcore.ResponseError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsNotFound(&azcore.ResponseError{StatusCode: http.StatusConflict}))
	assert.True(t, IsConflict(&azcore.ResponseError{StatusCode: http.StatusConflict}))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestCloudWithEndpoint(t *testing.T) {
	c := CloudWithEndpoint(cloud.AzurePublic, "https://localhost:8443")
	rm := c.Services[cloud.ResourceManager]
	assert.Equal(t, "https://localhost:8443", rm.Endpoint)
	assert.NotEmpty(t, rm.Audience)
	assert.NotEqual(t, "https://localhost:8443", cloud.AzurePublic.Services[cloud.ResourceManager].Endpoint)
}

func TestNewClient_RequiresCredential(t *testing.T) {
	_, err := NewClient(nil, nil)
	assert.Error(t, err)
}
