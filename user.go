package realmkit

import (
	"context"

	"github.com/realmkit/realmkit/pkg/adminapi"
)

// User wraps user related admin operations.
type User struct {
	realm *Realm
	uuid  string
	name  string
}

// Realm returns the realm the user belongs to.
func (u *User) Realm() *Realm {
	return u.realm
}

// UUID returns the identifier the server assigned to the user.
func (u *User) UUID() string {
	return u.uuid
}

// Name returns the unique username.
func (u *User) Name() string {
	return u.name
}

// RealmRoles returns the realm-level roles assigned to the user.
func (u *User) RealmRoles(ctx context.Context) (Roles, error) {
	list, err := u.realm.admin.UserRealmRoleMappings(ctx, u.realm.name, u.uuid)
	if err != nil {
		return Roles{}, err
	}
	return NewRoles(list), nil
}

// GrantRealmRoles assigns the given realm-level roles to the user without
// checking whether they are already assigned.
func (u *User) GrantRealmRoles(ctx context.Context, roles Roles) error {
	return u.realm.admin.AddUserRealmRoleMappings(ctx, u.realm.name, u.uuid, roles.AsList())
}

// AddRealmRoles assigns the named realm-level roles to the user, skipping
// roles that are already assigned. Fails with a *NotFoundError when any of
// the names does not exist in the realm; in that case nothing is granted.
func (u *User) AddRealmRoles(ctx context.Context, roleNames ...string) error {
	if len(roleNames) == 0 {
		return errEmpty("roleNames")
	}

	current, err := u.RealmRoles(ctx)
	if err != nil {
		return err
	}
	realmRoles, err := u.realm.Roles(ctx)
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
	return u.GrantRealmRoles(ctx, missing)
}

// ClientRoles returns the client-level roles assigned to the user for the
// given client.
func (u *User) ClientRoles(ctx context.Context, client *Client) (Roles, error) {
	if client == nil {
		return Roles{}, errNil("client")
	}

	list, err := u.realm.admin.UserClientRoleMappings(ctx, u.realm.name, u.uuid, client.uuid)
	if err != nil {
		return Roles{}, err
	}
	return NewRoles(list), nil
}

// GrantClientRoles assigns the given client-level roles to the user without
// checking whether they are already assigned.
func (u *User) GrantClientRoles(ctx context.Context, client *Client, roles Roles) error {
	if client == nil {
		return errNil("client")
	}
	return u.realm.admin.AddUserClientRoleMappings(ctx, u.realm.name, u.uuid, client.uuid, roles.AsList())
}

// AddClientRoles assigns the named client-level roles to the user, skipping
// roles that are already assigned. Fails with a *NotFoundError when any of
// the names does not exist in the client; in that case nothing is granted.
func (u *User) AddClientRoles(ctx context.Context, client *Client, roleNames ...string) error {
	if client == nil {
		return errNil("client")
	}
	if len(roleNames) == 0 {
		return errEmpty("roleNames")
	}

	current, err := u.ClientRoles(ctx, client)
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
	return u.GrantClientRoles(ctx, client, missing)
}

// JoinGroups makes the user join the given groups.
func (u *User) JoinGroups(ctx context.Context, groups ...*Group) error {
	if len(groups) == 0 {
		return errEmpty("groups")
	}
	for _, group := range groups {
		if group == nil {
			return &InvalidArgumentError{Argument: "groups", Reason: "must not contain nil elements"}
		}
	}

	for _, group := range groups {
		if err := u.realm.admin.JoinGroup(ctx, u.realm.name, u.uuid, group.uuid); err != nil {
			return err
		}
		u.realm.logger().DebugContext(ctx, "user joined group",
			"realm", u.realm.name, "user", u.name, "group", group.name)
	}
	return nil
}

// CreateUser creates a user with a non-temporary password credential.
func CreateUser(ctx context.Context, realm *Realm, name, password string, enabled bool) (*User, error) {
	if realm == nil {
		return nil, errNil("realm")
	}
	if name == "" {
		return nil, errEmpty("name")
	}
	if password == "" {
		return nil, errEmpty("password")
	}

	rep := adminapi.UserRepresentation{
		Username: name,
		Enabled:  enabled,
		Credentials: []adminapi.CredentialRepresentation{{
			Type:      adminapi.CredentialTypePassword,
			Value:     password,
			Temporary: false,
		}},
	}

	id, err := realm.admin.CreateUser(ctx, realm.name, rep)
	if err != nil {
		return nil, err
	}

	realm.logger().DebugContext(ctx, "created user", "realm", realm.name, "user", name)
	return &User{realm: realm, uuid: id, name: name}, nil
}

// FindUser locates a user by its username. Returns nil, nil when no user
// with that name exists.
func FindUser(ctx context.Context, realm *Realm, name string) (*User, error) {
	if realm == nil {
		return nil, errNil("realm")
	}
	if name == "" {
		return nil, errEmpty("name")
	}

	users, err := realm.admin.Users(ctx, realm.name)
	if err != nil {
		return nil, err
	}
	for _, rep := range users {
		if rep.Username == name {
			realm.logger().DebugContext(ctx, "found user", "realm", realm.name, "user", name)
			return &User{realm: realm, uuid: rep.ID, name: name}, nil
		}
	}
	return nil, nil
}

// FindUserOrCreate locates a user by its username, creating it when it does
// not exist yet.
func FindUserOrCreate(ctx context.Context, realm *Realm, name, password string, enabled bool) (*User, error) {
	user, err := FindUser(ctx, realm, name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return CreateUser(ctx, realm, name, password, enabled)
	}
	return user, nil
}

// FindUserOrFail locates a user by its username or fails with a
// *NotFoundError.
func FindUserOrFail(ctx context.Context, realm *Realm, name string) (*User, error) {
	user, err := FindUser(ctx, realm, name)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &NotFoundError{Kind: "User", Name: name}
	}
	return user, nil
}
