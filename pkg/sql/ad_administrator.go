package sql

import (
	"context"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/picklr-io/azmgmt/pkg/sql/inner"
)

// ActiveDirectoryAdministrator is the Azure AD principal administering a server.
type ActiveDirectoryAdministrator struct {
	inner inner.ServerAzureADAdministratorInner
}

func (a *ActiveDirectoryAdministrator) props() inner.ServerAzureADAdministratorProperties {
	if a.inner.Properties == nil {
		return inner.ServerAzureADAdministratorProperties{}
	}
	return *a.inner.Properties
}

// SignInName returns the login of the administrator.
func (a *ActiveDirectoryAdministrator) SignInName() string { return deref(a.props().Login) }

// ID returns the object ID of the administrator.
func (a *ActiveDirectoryAdministrator) ID() string { return deref(a.props().Sid) }

func (a *ActiveDirectoryAdministrator) TenantID() string { return deref(a.props().TenantID) }

func (a *ActiveDirectoryAdministrator) AdministratorType() string {
	return deref(a.props().AdministratorType)
}

func (a *ActiveDirectoryAdministrator) Inner() inner.ServerAzureADAdministratorInner { return a.inner }

func (m *Manager) setADAdministrator(ctx context.Context, ref serverRef, login, objectID string) (*ActiveDirectoryAdministrator, error) {
	if m.tenantID == "" {
		return nil, errors.New("sql: a tenant ID is required to set an Active Directory administrator")
	}
	in, err := m.client.ServerAzureADAdministrators().CreateOrUpdate(ctx, ref.resourceGroup, ref.name, inner.ServerAzureADAdministratorInner{
		Properties: &inner.ServerAzureADAdministratorProperties{
			AdministratorType: to.Ptr(inner.ActiveDirectoryAdministratorType),
			Login:             to.Ptr(login),
			Sid:               to.Ptr(objectID),
			TenantID:          to.Ptr(m.tenantID),
		},
	})
	if err != nil {
		return nil, err
	}
	return &ActiveDirectoryAdministrator{inner: in}, nil
}
