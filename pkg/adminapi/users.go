package adminapi

import (
	"context"
	"net/http"
	"net/url"
)

// Users returns all users of a realm.
func (c *Client) Users(ctx context.Context, realm string) ([]UserRepresentation, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, realmPath(realm, "/users"), nil)
	if err != nil {
		return nil, err
	}

	var users []UserRepresentation
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a user and returns the identifier the server assigned,
// taken from the Location header of the 201 response.
func (c *Client) CreateUser(ctx context.Context, realm string, user UserRepresentation) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, realmPath(realm, "/users"), user)
	if err != nil {
		return "", err
	}
	defer drain(resp)

	if err := EnsureCreated("user "+user.Username, resp); err != nil {
		return "", err
	}
	return ExtractID(resp), nil
}

// UserRealmRoleMappings returns the realm-level roles assigned to a user.
func (c *Client) UserRealmRoleMappings(ctx context.Context, realm, userID string) ([]RoleRepresentation, error) {
	return c.listRoleMappings(ctx, realmPath(realm, "/users/%s/role-mappings/realm", url.PathEscape(userID)))
}

// AddUserRealmRoleMappings assigns realm-level roles to a user.
func (c *Client) AddUserRealmRoleMappings(ctx context.Context, realm, userID string, roles []RoleRepresentation) error {
	return c.addRoleMappings(ctx, realmPath(realm, "/users/%s/role-mappings/realm", url.PathEscape(userID)), roles)
}

// UserClientRoleMappings returns the client-level roles assigned to a user
// for the client with the given UUID.
func (c *Client) UserClientRoleMappings(ctx context.Context, realm, userID, clientUUID string) ([]RoleRepresentation, error) {
	return c.listRoleMappings(ctx,
		realmPath(realm, "/users/%s/role-mappings/clients/%s", url.PathEscape(userID), url.PathEscape(clientUUID)))
}

// AddUserClientRoleMappings assigns client-level roles to a user.
func (c *Client) AddUserClientRoleMappings(ctx context.Context, realm, userID, clientUUID string, roles []RoleRepresentation) error {
	return c.addRoleMappings(ctx,
		realmPath(realm, "/users/%s/role-mappings/clients/%s", url.PathEscape(userID), url.PathEscape(clientUUID)), roles)
}

// JoinGroup adds a user to a group.
func (c *Client) JoinGroup(ctx context.Context, realm, userID, groupID string) error {
	path := realmPath(realm, "/users/%s/groups/%s", url.PathEscape(userID), url.PathEscape(groupID))
	resp, err := c.doJSON(ctx, http.MethodPut, path, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) listRoleMappings(ctx context.Context, path string) ([]RoleRepresentation, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var roles []RoleRepresentation
	if err := decodeJSON(resp, &roles, http.StatusOK); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) addRoleMappings(ctx context.Context, path string, roles []RoleRepresentation) error {
	resp, err := c.doJSON(ctx, http.MethodPost, path, roles)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
