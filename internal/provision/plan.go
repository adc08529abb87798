package provision

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Client presets. A preset selects one of the standard OIDC client shapes;
// clients without a preset are created with default settings.
const (
	PresetSecret      = "secret"      // authorization code flow, confidential
	PresetImplicit    = "implicit"    // implicit flow, public
	PresetCredentials = "credentials" // client credentials grant, service account
)

// Plan is the declarative description of a realm and its contents.
type Plan struct {
	Realm   RealmPlan    `yaml:"realm"`
	Roles   []RolePlan   `yaml:"roles"`
	Clients []ClientPlan `yaml:"clients"`
	Groups  []GroupPlan  `yaml:"groups"`
	Users   []UserPlan   `yaml:"users"`
}

type RealmPlan struct {
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"` // defaults to true
}

type RolePlan struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type ClientPlan struct {
	ClientID    string     `yaml:"clientId"`
	Preset      string     `yaml:"preset"`
	Secret      string     `yaml:"secret"`
	RedirectURI string     `yaml:"redirectUri"`
	Roles       []RolePlan `yaml:"roles"`
}

type GroupPlan struct {
	Name       string   `yaml:"name"`
	RealmRoles []string `yaml:"realmRoles"`
}

type UserPlan struct {
	Username   string   `yaml:"username"`
	Password   string   `yaml:"password"`
	Enabled    *bool    `yaml:"enabled"` // defaults to true
	Groups     []string `yaml:"groups"`
	RealmRoles []string `yaml:"realmRoles"`
	// ClientRoles maps a client ID to the role names the user should hold
	// for that client.
	ClientRoles map[string][]string `yaml:"clientRoles"`
}

// Load parses and validates a plan document.
func Load(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var plan Plan
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// LoadFile reads and validates a plan from a file on disk.
func LoadFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the plan for structural problems before anything is
// applied.
func (p *Plan) Validate() error {
	if p.Realm.Name == "" {
		return fmt.Errorf("plan: realm.name is required")
	}

	roles := map[string]bool{}
	for i, role := range p.Roles {
		if role.Name == "" {
			return fmt.Errorf("plan: roles[%d].name is required", i)
		}
		if roles[role.Name] {
			return fmt.Errorf("plan: duplicate role %q", role.Name)
		}
		roles[role.Name] = true
	}

	clients := map[string]bool{}
	for i, client := range p.Clients {
		if client.ClientID == "" {
			return fmt.Errorf("plan: clients[%d].clientId is required", i)
		}
		if clients[client.ClientID] {
			return fmt.Errorf("plan: duplicate client %q", client.ClientID)
		}
		clients[client.ClientID] = true

		switch client.Preset {
		case "":
		case PresetSecret:
			if client.Secret == "" || client.RedirectURI == "" {
				return fmt.Errorf("plan: client %q: preset %q requires secret and redirectUri", client.ClientID, client.Preset)
			}
		case PresetImplicit:
			if client.RedirectURI == "" {
				return fmt.Errorf("plan: client %q: preset %q requires redirectUri", client.ClientID, client.Preset)
			}
		case PresetCredentials:
			if client.Secret == "" {
				return fmt.Errorf("plan: client %q: preset %q requires secret", client.ClientID, client.Preset)
			}
		default:
			return fmt.Errorf("plan: client %q: unknown preset %q", client.ClientID, client.Preset)
		}

		clientRoles := map[string]bool{}
		for j, role := range client.Roles {
			if role.Name == "" {
				return fmt.Errorf("plan: client %q: roles[%d].name is required", client.ClientID, j)
			}
			if clientRoles[role.Name] {
				return fmt.Errorf("plan: client %q: duplicate role %q", client.ClientID, role.Name)
			}
			clientRoles[role.Name] = true
		}
	}

	groups := map[string]bool{}
	for i, group := range p.Groups {
		if group.Name == "" {
			return fmt.Errorf("plan: groups[%d].name is required", i)
		}
		if groups[group.Name] {
			return fmt.Errorf("plan: duplicate group %q", group.Name)
		}
		groups[group.Name] = true
	}

	users := map[string]bool{}
	for i, user := range p.Users {
		if user.Username == "" {
			return fmt.Errorf("plan: users[%d].username is required", i)
		}
		if users[user.Username] {
			return fmt.Errorf("plan: duplicate user %q", user.Username)
		}
		users[user.Username] = true

		for _, name := range user.Groups {
			if !groups[name] {
				return fmt.Errorf("plan: user %q references unknown group %q", user.Username, name)
			}
		}
		for clientID := range user.ClientRoles {
			if !clients[clientID] {
				return fmt.Errorf("plan: user %q references unknown client %q", user.Username, clientID)
			}
		}
	}

	return nil
}

func enabled(v *bool) bool {
	return v == nil || *v
}
