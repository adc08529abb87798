package realmkit

import (
	"context"

	"github.com/realmkit/realmkit/pkg/adminapi"
)

// Role wraps a single realm-level role.
type Role struct {
	realm *Realm
	uuid  string
	name  string
}

// Realm returns the realm the role belongs to.
func (r *Role) Realm() *Realm {
	return r.realm
}

// UUID returns the identifier the server assigned to the role.
func (r *Role) UUID() string {
	return r.uuid
}

// Name returns the unique role name.
func (r *Role) Name() string {
	return r.name
}

// Representation returns the role as a representation suitable for role
// mapping calls.
func (r *Role) Representation() adminapi.RoleRepresentation {
	return adminapi.RoleRepresentation{ID: r.uuid, Name: r.name}
}

// CreateRole creates a realm-level role. The create endpoint returns no
// body, so the realm's role list is re-read to learn the assigned ID.
func CreateRole(ctx context.Context, realm *Realm, name, description string) (*Role, error) {
	if realm == nil {
		return nil, errNil("realm")
	}
	if name == "" {
		return nil, errEmpty("name")
	}

	rep := adminapi.RoleRepresentation{Name: name, Description: description}
	if err := realm.admin.CreateRealmRole(ctx, realm.name, rep); err != nil {
		return nil, err
	}
	realm.logger().DebugContext(ctx, "created role", "realm", realm.name, "role", name)

	roles, err := realm.Roles(ctx)
	if err != nil {
		return nil, err
	}
	created, err := roles.FindByNameOrFail(name)
	if err != nil {
		return nil, err
	}

	return &Role{realm: realm, uuid: created.ID, name: name}, nil
}

// FindRole locates a realm-level role by its name. Returns nil, nil when no
// role with that name exists.
func FindRole(ctx context.Context, realm *Realm, name string) (*Role, error) {
	if realm == nil {
		return nil, errNil("realm")
	}
	if name == "" {
		return nil, errEmpty("name")
	}

	roles, err := realm.Roles(ctx)
	if err != nil {
		return nil, err
	}
	rep, ok := roles.FindByName(name)
	if !ok {
		return nil, nil
	}

	realm.logger().DebugContext(ctx, "found role", "realm", realm.name, "role", name)
	return &Role{realm: realm, uuid: rep.ID, name: name}, nil
}

// FindRoleOrFail locates a realm-level role by its name or fails with a
// *NotFoundError.
func FindRoleOrFail(ctx context.Context, realm *Realm, name string) (*Role, error) {
	role, err := FindRole(ctx, realm, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, &NotFoundError{Kind: "Role", Name: name}
	}
	return role, nil
}

// FindRoleOrCreate locates a realm-level role by its name, creating it with
// the given description when it does not exist yet.
func FindRoleOrCreate(ctx context.Context, realm *Realm, name, description string) (*Role, error) {
	role, err := FindRole(ctx, realm, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return CreateRole(ctx, realm, name, description)
	}
	return role, nil
}
