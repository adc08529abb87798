package realmkit

import (
	"context"

	"github.com/realmkit/realmkit/pkg/adminapi"
)

// Client wraps OAuth2/OIDC client related admin operations. Not to be
// confused with adminapi.Client, the underlying REST client.
type Client struct {
	realm    *Realm
	uuid     string
	clientID string
}

// Realm returns the realm the client belongs to.
func (c *Client) Realm() *Realm {
	return c.realm
}

// UUID returns the identifier the server assigned to the client. This is
// the ID used for GET operations, distinct from the OAuth2 client ID.
func (c *Client) UUID() string {
	return c.uuid
}

// ClientID returns the OAuth2 client identifier.
func (c *Client) ClientID() string {
	return c.clientID
}

// Roles returns the roles defined by the client.
func (c *Client) Roles(ctx context.Context) (Roles, error) {
	list, err := c.realm.admin.ClientRoles(ctx, c.realm.name, c.uuid)
	if err != nil {
		return Roles{}, err
	}
	return NewRoles(list), nil
}

// ServiceAccountUser returns the user that represents the client. The
// client must have service accounts enabled.
func (c *Client) ServiceAccountUser(ctx context.Context) (*User, error) {
	rep, err := c.realm.admin.ServiceAccountUser(ctx, c.realm.name, c.uuid)
	if err != nil {
		return nil, err
	}
	return &User{realm: c.realm, uuid: rep.ID, name: rep.Username}, nil
}

// CreateClient creates a client from the given representation.
func CreateClient(ctx context.Context, realm *Realm, clientID string, rep adminapi.ClientRepresentation) (*Client, error) {
	if realm == nil {
		return nil, errNil("realm")
	}
	if clientID == "" {
		return nil, errEmpty("clientID")
	}

	id, err := realm.admin.CreateClient(ctx, realm.name, rep)
	if err != nil {
		return nil, err
	}

	realm.logger().DebugContext(ctx, "created client", "realm", realm.name, "client", clientID)
	return &Client{realm: realm, uuid: id, clientID: clientID}, nil
}

// CreateOIDCClientWithSecret creates a confidential OIDC client with a
// shared secret and a redirect URI. The standardFlow flag enables the
// Authorization Code flow, directAccessGrants the Resource Owner Password
// Credentials flow.
func CreateOIDCClientWithSecret(ctx context.Context, realm *Realm, clientID, secret, redirectURI string,
	standardFlow, directAccessGrants bool) (*Client, error) {
	if secret == "" {
		return nil, errEmpty("secret")
	}
	if redirectURI == "" {
		return nil, errEmpty("redirectURI")
	}

	rep := adminapi.ClientRepresentation{
		ClientID:                  clientID,
		Protocol:                  adminapi.ProtocolOpenIDConnect,
		PublicClient:              false,
		Secret:                    secret,
		ClientAuthenticatorType:   adminapi.AuthenticatorClientSecret,
		RedirectURIs:              []string{redirectURI},
		StandardFlowEnabled:       standardFlow,
		DirectAccessGrantsEnabled: directAccessGrants,
	}
	return CreateClient(ctx, realm, clientID, rep)
}

// CreateOIDCClientImplicit creates a public OIDC client using the implicit
// flow with a redirect URI.
func CreateOIDCClientImplicit(ctx context.Context, realm *Realm, clientID, redirectURI string) (*Client, error) {
	if redirectURI == "" {
		return nil, errEmpty("redirectURI")
	}

	rep := adminapi.ClientRepresentation{
		ClientID:            clientID,
		Protocol:            adminapi.ProtocolOpenIDConnect,
		PublicClient:        true,
		RedirectURIs:        []string{redirectURI},
		ImplicitFlowEnabled: true,
	}
	return CreateClient(ctx, realm, clientID, rep)
}

// CreateOIDCClientCredentials creates a confidential OIDC client for the
// client credentials grant, with service accounts enabled.
func CreateOIDCClientCredentials(ctx context.Context, realm *Realm, clientID, secret string) (*Client, error) {
	if secret == "" {
		return nil, errEmpty("secret")
	}

	rep := adminapi.ClientRepresentation{
		ClientID:                clientID,
		Protocol:                adminapi.ProtocolOpenIDConnect,
		PublicClient:            false,
		Secret:                  secret,
		ClientAuthenticatorType: adminapi.AuthenticatorClientSecret,
		ServiceAccountsEnabled:  true,
	}
	return CreateClient(ctx, realm, clientID, rep)
}

// FindClient locates a client by its OAuth2 client identifier. Returns
// nil, nil when no client with that identifier exists.
func FindClient(ctx context.Context, realm *Realm, clientID string) (*Client, error) {
	if realm == nil {
		return nil, errNil("realm")
	}
	if clientID == "" {
		return nil, errEmpty("clientID")
	}

	clients, err := realm.admin.Clients(ctx, realm.name)
	if err != nil {
		return nil, err
	}
	for _, rep := range clients {
		if rep.ClientID == clientID {
			realm.logger().DebugContext(ctx, "found client", "realm", realm.name, "client", clientID)
			return &Client{realm: realm, uuid: rep.ID, clientID: clientID}, nil
		}
	}
	return nil, nil
}

// FindClientOrFail locates a client by its OAuth2 client identifier or
// fails with a *NotFoundError.
func FindClientOrFail(ctx context.Context, realm *Realm, clientID string) (*Client, error) {
	client, err := FindClient(ctx, realm, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, &NotFoundError{Kind: "Client", Name: clientID}
	}
	return client, nil
}

// FindClientOrCreate locates a client by its OAuth2 client identifier,
// creating it from the representation when it does not exist yet.
func FindClientOrCreate(ctx context.Context, realm *Realm, clientID string, rep adminapi.ClientRepresentation) (*Client, error) {
	client, err := FindClient(ctx, realm, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return CreateClient(ctx, realm, clientID, rep)
	}
	return client, nil
}

// FindClientOrCreateOIDCWithSecret locates a client by its OAuth2 client
// identifier, creating a confidential OIDC client with a shared secret when
// it does not exist yet.
func FindClientOrCreateOIDCWithSecret(ctx context.Context, realm *Realm, clientID, secret, redirectURI string,
	standardFlow, directAccessGrants bool) (*Client, error) {
	client, err := FindClient(ctx, realm, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return CreateOIDCClientWithSecret(ctx, realm, clientID, secret, redirectURI, standardFlow, directAccessGrants)
	}
	return client, nil
}

// FindClientOrCreateOIDCImplicit locates a client by its OAuth2 client
// identifier, creating a public implicit-flow OIDC client when it does not
// exist yet.
func FindClientOrCreateOIDCImplicit(ctx context.Context, realm *Realm, clientID, redirectURI string) (*Client, error) {
	client, err := FindClient(ctx, realm, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return CreateOIDCClientImplicit(ctx, realm, clientID, redirectURI)
	}
	return client, nil
}

// FindClientOrCreateOIDCCredentials locates a client by its OAuth2 client
// identifier, creating a client-credentials OIDC client when it does not
// exist yet.
func FindClientOrCreateOIDCCredentials(ctx context.Context, realm *Realm, clientID, secret string) (*Client, error) {
	client, err := FindClient(ctx, realm, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return CreateOIDCClientCredentials(ctx, realm, clientID, secret)
	}
	return client, nil
}
