package adminapi

import (
	"context"
	"net/http"
	"net/url"
)

// Groups returns all top-level groups of a realm.
func (c *Client) Groups(ctx context.Context, realm string) ([]GroupRepresentation, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, realmPath(realm, "/groups"), nil)
	if err != nil {
		return nil, err
	}

	var groups []GroupRepresentation
	if err := decodeJSON(resp, &groups, http.StatusOK); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateGroup creates a group and returns the identifier the server assigned,
// taken from the Location header of the 201 response.
func (c *Client) CreateGroup(ctx context.Context, realm string, group GroupRepresentation) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, realmPath(realm, "/groups"), group)
	if err != nil {
		return "", err
	}
	defer drain(resp)

	if err := EnsureCreated("group "+group.Name, resp); err != nil {
		return "", err
	}
	return ExtractID(resp), nil
}

// GroupRealmRoleMappings returns the realm-level roles assigned to a group.
func (c *Client) GroupRealmRoleMappings(ctx context.Context, realm, groupID string) ([]RoleRepresentation, error) {
	return c.listRoleMappings(ctx, realmPath(realm, "/groups/%s/role-mappings/realm", url.PathEscape(groupID)))
}

// AddGroupRealmRoleMappings assigns realm-level roles to a group.
func (c *Client) AddGroupRealmRoleMappings(ctx context.Context, realm, groupID string, roles []RoleRepresentation) error {
	return c.addRoleMappings(ctx, realmPath(realm, "/groups/%s/role-mappings/realm", url.PathEscape(groupID)), roles)
}

// GroupClientRoleMappings returns the client-level roles assigned to a group
// for the client with the given UUID.
func (c *Client) GroupClientRoleMappings(ctx context.Context, realm, groupID, clientUUID string) ([]RoleRepresentation, error) {
	return c.listRoleMappings(ctx,
		realmPath(realm, "/groups/%s/role-mappings/clients/%s", url.PathEscape(groupID), url.PathEscape(clientUUID)))
}

// AddGroupClientRoleMappings assigns client-level roles to a group.
func (c *Client) AddGroupClientRoleMappings(ctx context.Context, realm, groupID, clientUUID string, roles []RoleRepresentation) error {
	return c.addRoleMappings(ctx,
		realmPath(realm, "/groups/%s/role-mappings/clients/%s", url.PathEscape(groupID), url.PathEscape(clientUUID)), roles)
}
