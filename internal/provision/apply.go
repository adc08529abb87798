package provision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/realmkit/realmkit"
	"github.com/realmkit/realmkit/pkg/adminapi"
)

// Applier drives a plan against an admin API.
type Applier struct {
	Admin  *adminapi.Client
	Logger *slog.Logger
}

func (a *Applier) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// Apply brings the target realm in line with the plan. Entities that already
// exist are reused, role grants only add missing roles, and the walk stops
// on the first error.
func (a *Applier) Apply(ctx context.Context, plan *Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	log := a.logger().With("realm", plan.Realm.Name)

	realm, err := realmkit.FindRealmOrCreate(ctx, a.Admin, plan.Realm.Name, enabled(plan.Realm.Enabled))
	if err != nil {
		return fmt.Errorf("failed to ensure realm %q: %w", plan.Realm.Name, err)
	}
	log.Info("realm ensured")

	for _, spec := range plan.Roles {
		if _, err := realmkit.FindRoleOrCreate(ctx, realm, spec.Name, spec.Description); err != nil {
			return fmt.Errorf("failed to ensure role %q: %w", spec.Name, err)
		}
		log.Info("role ensured", "role", spec.Name)
	}

	clients := make(map[string]*realmkit.Client, len(plan.Clients))
	for _, spec := range plan.Clients {
		client, err := a.ensureClient(ctx, realm, spec)
		if err != nil {
			return fmt.Errorf("failed to ensure client %q: %w", spec.ClientID, err)
		}
		clients[spec.ClientID] = client
		log.Info("client ensured", "client", spec.ClientID)
	}

	groups := make(map[string]*realmkit.Group, len(plan.Groups))
	for _, spec := range plan.Groups {
		group, err := realmkit.FindGroupOrCreate(ctx, realm, spec.Name)
		if err != nil {
			return fmt.Errorf("failed to ensure group %q: %w", spec.Name, err)
		}
		if len(spec.RealmRoles) > 0 {
			if err := group.AddRealmRoles(ctx, spec.RealmRoles...); err != nil {
				return fmt.Errorf("failed to grant realm roles to group %q: %w", spec.Name, err)
			}
		}
		groups[spec.Name] = group
		log.Info("group ensured", "group", spec.Name, "realm_roles", len(spec.RealmRoles))
	}

	for _, spec := range plan.Users {
		if err := a.ensureUser(ctx, realm, spec, clients, groups); err != nil {
			return err
		}
		log.Info("user ensured", "user", spec.Username)
	}

	return nil
}

func (a *Applier) ensureClient(ctx context.Context, realm *realmkit.Realm, spec ClientPlan) (*realmkit.Client, error) {
	var (
		client *realmkit.Client
		err    error
	)
	switch spec.Preset {
	case PresetSecret:
		// Authorization code flow only, no direct access grants.
		client, err = realmkit.FindClientOrCreateOIDCWithSecret(ctx, realm, spec.ClientID, spec.Secret, spec.RedirectURI, true, false)
	case PresetImplicit:
		client, err = realmkit.FindClientOrCreateOIDCImplicit(ctx, realm, spec.ClientID, spec.RedirectURI)
	case PresetCredentials:
		client, err = realmkit.FindClientOrCreateOIDCCredentials(ctx, realm, spec.ClientID, spec.Secret)
	default:
		client, err = realmkit.FindClientOrCreate(ctx, realm, spec.ClientID, adminapi.ClientRepresentation{})
	}
	if err != nil {
		return nil, err
	}

	if len(spec.Roles) > 0 {
		if err := a.ensureClientRoles(ctx, realm, client, spec.Roles); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func (a *Applier) ensureClientRoles(ctx context.Context, realm *realmkit.Realm, client *realmkit.Client, specs []RolePlan) error {
	defined, err := client.Roles(ctx)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if _, ok := defined.FindByName(spec.Name); ok {
			continue
		}
		role := adminapi.RoleRepresentation{Name: spec.Name, Description: spec.Description}
		if err := a.Admin.CreateClientRole(ctx, realm.Name(), client.UUID(), role); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) ensureUser(ctx context.Context, realm *realmkit.Realm, spec UserPlan,
	clients map[string]*realmkit.Client, groups map[string]*realmkit.Group,
) error {
	user, err := realmkit.FindUserOrCreate(ctx, realm, spec.Username, spec.Password, enabled(spec.Enabled))
	if err != nil {
		return fmt.Errorf("failed to ensure user %q: %w", spec.Username, err)
	}

	if len(spec.RealmRoles) > 0 {
		if err := user.AddRealmRoles(ctx, spec.RealmRoles...); err != nil {
			return fmt.Errorf("failed to grant realm roles to user %q: %w", spec.Username, err)
		}
	}

	for clientID, roleNames := range spec.ClientRoles {
		client := clients[clientID]
		if err := user.AddClientRoles(ctx, client, roleNames...); err != nil {
			return fmt.Errorf("failed to grant client %q roles to user %q: %w", clientID, spec.Username, err)
		}
	}

	if len(spec.Groups) > 0 {
		joined := make([]*realmkit.Group, 0, len(spec.Groups))
		for _, name := range spec.Groups {
			joined = append(joined, groups[name])
		}
		if err := user.JoinGroups(ctx, joined...); err != nil {
			return fmt.Errorf("failed to join user %q to groups: %w", spec.Username, err)
		}
	}

	return nil
}
