package adminapi

// Representations of admin API entities, following the Keycloak admin REST
// wire format. Fields the library never touches are omitted.

// RealmRepresentation describes a realm.
type RealmRepresentation struct {
	ID          string `json:"id,omitempty"`
	Realm       string `json:"realm"`
	DisplayName string `json:"displayName,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// RoleRepresentation describes a realm-level or client-level role.
type RoleRepresentation struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Composite   bool   `json:"composite,omitempty"`
	ClientRole  bool   `json:"clientRole,omitempty"`
	ContainerID string `json:"containerId,omitempty"`
}

// CredentialRepresentation describes a user credential.
type CredentialRepresentation struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// CredentialTypePassword is the credential type for plain passwords.
const CredentialTypePassword = "password"

// UserRepresentation describes a user.
type UserRepresentation struct {
	ID          string                     `json:"id,omitempty"`
	Username    string                     `json:"username"`
	Email       string                     `json:"email,omitempty"`
	FirstName   string                     `json:"firstName,omitempty"`
	LastName    string                     `json:"lastName,omitempty"`
	Enabled     bool                       `json:"enabled"`
	Credentials []CredentialRepresentation `json:"credentials,omitempty"`
}

// GroupRepresentation describes a group.
type GroupRepresentation struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
}

// ClientRepresentation describes an OAuth2/OIDC client.
type ClientRepresentation struct {
	ID                        string   `json:"id,omitempty"`
	ClientID                  string   `json:"clientId"`
	Protocol                  string   `json:"protocol,omitempty"`
	PublicClient              bool     `json:"publicClient"`
	Secret                    string   `json:"secret,omitempty"`
	ClientAuthenticatorType   string   `json:"clientAuthenticatorType,omitempty"`
	RedirectURIs              []string `json:"redirectUris,omitempty"`
	StandardFlowEnabled       bool     `json:"standardFlowEnabled"`
	ImplicitFlowEnabled       bool     `json:"implicitFlowEnabled"`
	DirectAccessGrantsEnabled bool     `json:"directAccessGrantsEnabled"`
	ServiceAccountsEnabled    bool     `json:"serviceAccountsEnabled"`
}

// ProtocolOpenIDConnect is the client protocol for OIDC clients.
const ProtocolOpenIDConnect = "openid-connect"

// AuthenticatorClientSecret is the client authenticator for shared secrets.
const AuthenticatorClientSecret = "client-secret"
