package adminapi

import (
	"context"
	"net/http"
	"net/url"
)

// Clients returns all clients of a realm.
func (c *Client) Clients(ctx context.Context, realm string) ([]ClientRepresentation, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, realmPath(realm, "/clients"), nil)
	if err != nil {
		return nil, err
	}

	var clients []ClientRepresentation
	if err := decodeJSON(resp, &clients, http.StatusOK); err != nil {
		return nil, err
	}
	return clients, nil
}

// CreateClient creates a client and returns the identifier the server
// assigned, taken from the Location header of the 201 response.
func (c *Client) CreateClient(ctx context.Context, realm string, client ClientRepresentation) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, realmPath(realm, "/clients"), client)
	if err != nil {
		return "", err
	}
	defer drain(resp)

	if err := EnsureCreated("client "+client.ClientID, resp); err != nil {
		return "", err
	}
	return ExtractID(resp), nil
}

// ServiceAccountUser returns the service account user of the client with the
// given UUID. The client must have service accounts enabled.
func (c *Client) ServiceAccountUser(ctx context.Context, realm, clientUUID string) (*UserRepresentation, error) {
	path := realmPath(realm, "/clients/%s/service-account-user", url.PathEscape(clientUUID))
	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var user UserRepresentation
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}
