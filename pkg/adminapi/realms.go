package adminapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Realms returns all realms the authenticated session can see.
func (c *Client) Realms(ctx context.Context) ([]RealmRepresentation, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/admin/realms", nil)
	if err != nil {
		return nil, err
	}

	var realms []RealmRepresentation
	if err := decodeJSON(resp, &realms, http.StatusOK); err != nil {
		return nil, err
	}
	return realms, nil
}

// CreateRealm creates a new realm from the given representation.
func (c *Client) CreateRealm(ctx context.Context, realm RealmRepresentation) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/admin/realms", realm)
	if err != nil {
		return err
	}
	defer drain(resp)

	return EnsureCreated("realm "+realm.Realm, resp)
}

// DeleteRealm removes a realm and all objects within it.
func (c *Client) DeleteRealm(ctx context.Context, realm string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/admin/realms/"+url.PathEscape(realm), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// realmPath builds an admin path below a realm.
func realmPath(realm, format string, args ...any) string {
	return "/admin/realms/" + url.PathEscape(realm) + fmt.Sprintf(format, args...)
}
