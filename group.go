package realmkit

import (
	"context"

	"github.com/realmkit/realmkit/pkg/adminapi"
)

// Group wraps group related admin operations.
type Group struct {
	realm *Realm
	uuid  string
	name  string
}

// Realm returns the realm the group belongs to.
func (g *Group) Realm() *Realm {
	return g.realm
}

// UUID returns the identifier the server assigned to the group.
func (g *Group) UUID() string {
	return g.uuid
}

// Name returns the unique group name.
func (g *Group) Name() string {
	return g.name
}

// RealmRoles returns the realm-level roles assigned to the group.
func (g *Group) RealmRoles(ctx context.Context) (Roles, error) {
	list, err := g.realm.admin.GroupRealmRoleMappings(ctx, g.realm.name, g.uuid)
	if err != nil {
		return Roles{}, err
	}
	return NewRoles(list), nil
}

// GrantRealmRoles assigns the given realm-level roles to the group without
// checking whether they are already assigned.
func (g *Group) GrantRealmRoles(ctx context.Context, roles Roles) error {
	return g.realm.admin.AddGroupRealmRoleMappings(ctx, g.realm.name, g.uuid, roles.AsList())
}

// AddRealmRoles assigns the named realm-level roles to the group, skipping
// roles that are already assigned. Fails with a *NotFoundError when any of
// the names does not exist in the realm; in that case nothing is granted.
func (g *Group) AddRealmRoles(ctx context.Context, roleNames ...string) error {
	if len(roleNames) == 0 {
		return errEmpty("roleNames")
	}

	current, err := g.RealmRoles(ctx)
	if err != nil {
		return err
	}
	realmRoles, err := g.realm.Roles(ctx)
	if err != nil {
		return err
	}
	expected, err := realmRoles.FindByNamesOrFail(roleNames...)
	if err != nil {
		return err
	}

	missing := current.Missing(expected)
	if missing.IsEmpty() {
		return nil
	}
	return g.GrantRealmRoles(ctx, missing)
}

// ClientRoles returns the client-level roles assigned to the group for the
// given client.
func (g *Group) ClientRoles(ctx context.Context, client *Client) (Roles, error) {
	if client == nil {
		return Roles{}, errNil("client")
	}

	list, err := g.realm.admin.GroupClientRoleMappings(ctx, g.realm.name, g.uuid, client.uuid)
	if err != nil {
		return Roles{}, err
	}
	return NewRoles(list), nil
}

// GrantClientRoles assigns the given client-level roles to the group without
// checking whether they are already assigned.
func (g *Group) GrantClientRoles(ctx context.Context, client *Client, roles Roles) error {
	if client == nil {
		return errNil("client")
	}
	return g.realm.admin.AddGroupClientRoleMappings(ctx, g.realm.name, g.uuid, client.uuid, roles.AsList())
}

// AddClientRoles assigns the named client-level roles to the group, skipping
// roles that are already assigned. Fails with a *NotFoundError when any of
// the names does not exist in the client; in that case nothing is granted.
func (g *Group) AddClientRoles(ctx context.Context, client *Client, roleNames ...string) error {
	if client == nil {
		return errNil("client")
	}
	if len(roleNames) == 0 {
		return errEmpty("roleNames")
	}

	current, err := g.ClientRoles(ctx, client)
	if err != nil {
		return err
	}
	clientRoles, err := client.Roles(ctx)
	if err != nil {
		return err
	}
	expected, err := clientRoles.FindByNamesOrFail(roleNames...)
	if err != nil {
		return err
	}

	missing := current.Missing(expected)
	if missing.IsEmpty() {
		return nil
	}
	return g.GrantClientRoles(ctx, client, missing)
}

// CreateGroup creates a group.
func CreateGroup(ctx context.Context, realm *Realm, name string) (*Group, error) {
	if realm == nil {
		return nil, errNil("realm")
	}
	if name == "" {
		return nil, errEmpty("name")
	}

	id, err := realm.admin.CreateGroup(ctx, realm.name, adminapi.GroupRepresentation{Name: name})
	if err != nil {
		return nil, err
	}

	realm.logger().DebugContext(ctx, "created group", "realm", realm.name, "group", name)
	return &Group{realm: realm, uuid: id, name: name}, nil
}

// FindGroup locates a group by its name. Returns nil, nil when no group with
// that name exists.
func FindGroup(ctx context.Context, realm *Realm, name string) (*Group, error) {
	if realm == nil {
		return nil, errNil("realm")
	}
	if name == "" {
		return nil, errEmpty("name")
	}

	groups, err := realm.admin.Groups(ctx, realm.name)
	if err != nil {
		return nil, err
	}
	for _, rep := range groups {
		if rep.Name == name {
			realm.logger().DebugContext(ctx, "found group", "realm", realm.name, "group", name)
			return &Group{realm: realm, uuid: rep.ID, name: name}, nil
		}
	}
	return nil, nil
}

// FindGroupOrCreate locates a group by its name, creating it when it does
// not exist yet.
func FindGroupOrCreate(ctx context.Context, realm *Realm, name string) (*Group, error) {
	group, err := FindGroup(ctx, realm, name)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return CreateGroup(ctx, realm, name)
	}
	return group, nil
}

// FindGroupOrFail locates a group by its name or fails with a
// *NotFoundError.
func FindGroupOrFail(ctx context.Context, realm *Realm, name string) (*Group, error) {
	group, err := FindGroup(ctx, realm, name)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, &NotFoundError{Kind: "Group", Name: name}
	}
	return group, nil
}
