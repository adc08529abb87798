package adminapi

import (
	"context"
	"net/http"
	"net/url"
)

// RealmRoles returns all roles defined at realm level.
func (c *Client) RealmRoles(ctx context.Context, realm string) ([]RoleRepresentation, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, realmPath(realm, "/roles"), nil)
	if err != nil {
		return nil, err
	}

	var roles []RoleRepresentation
	if err := decodeJSON(resp, &roles, http.StatusOK); err != nil {
		return nil, err
	}
	return roles, nil
}

// CreateRealmRole creates a realm-level role. The create endpoint returns no
// body, so callers that need the assigned ID must re-read the role list.
func (c *Client) CreateRealmRole(ctx context.Context, realm string, role RoleRepresentation) error {
	resp, err := c.doJSON(ctx, http.MethodPost, realmPath(realm, "/roles"), role)
	if err != nil {
		return err
	}
	defer drain(resp)

	return EnsureCreated("role "+role.Name, resp)
}

// ClientRoles returns all roles defined by the client with the given UUID.
func (c *Client) ClientRoles(ctx context.Context, realm, clientUUID string) ([]RoleRepresentation, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, realmPath(realm, "/clients/%s/roles", url.PathEscape(clientUUID)), nil)
	if err != nil {
		return nil, err
	}

	var roles []RoleRepresentation
	if err := decodeJSON(resp, &roles, http.StatusOK); err != nil {
		return nil, err
	}
	return roles, nil
}

// CreateClientRole creates a role owned by the client with the given UUID.
func (c *Client) CreateClientRole(ctx context.Context, realm, clientUUID string, role RoleRepresentation) error {
	resp, err := c.doJSON(ctx, http.MethodPost, realmPath(realm, "/clients/%s/roles", url.PathEscape(clientUUID)), role)
	if err != nil {
		return err
	}
	defer drain(resp)

	return EnsureCreated("client role "+role.Name, resp)
}
