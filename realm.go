package realmkit

import (
	"context"
	"log/slog"

	"github.com/realmkit/realmkit/pkg/adminapi"
)

// Realm wraps realm related admin operations. Obtain one via CreateRealm,
// FindRealm or FindRealmOrCreate.
type Realm struct {
	admin *adminapi.Client
	name  string
}

// Admin returns the admin API client the realm belongs to.
func (r *Realm) Admin() *adminapi.Client {
	return r.admin
}

// Name returns the unique realm name.
func (r *Realm) Name() string {
	return r.name
}

// Remove deletes the realm and all objects within it.
func (r *Realm) Remove(ctx context.Context) error {
	return r.admin.DeleteRealm(ctx, r.name)
}

// Roles returns the roles defined at realm level.
func (r *Realm) Roles(ctx context.Context) (Roles, error) {
	list, err := r.admin.RealmRoles(ctx, r.name)
	if err != nil {
		return Roles{}, err
	}
	return NewRoles(list), nil
}

func (r *Realm) logger() *slog.Logger {
	if r.admin.Logger != nil {
		return r.admin.Logger
	}
	return slog.Default()
}

// CreateRealm creates a realm with the given name.
func CreateRealm(ctx context.Context, admin *adminapi.Client, name string, enabled bool) (*Realm, error) {
	if name == "" {
		return nil, errEmpty("name")
	}

	return CreateRealmFrom(ctx, admin, adminapi.RealmRepresentation{
		Realm:   name,
		Enabled: enabled,
	})
}

// CreateRealmFrom creates a realm from a full representation.
func CreateRealmFrom(ctx context.Context, admin *adminapi.Client, rep adminapi.RealmRepresentation) (*Realm, error) {
	if admin == nil {
		return nil, errNil("admin")
	}
	if rep.Realm == "" {
		return nil, errEmpty("rep.Realm")
	}

	if err := admin.CreateRealm(ctx, rep); err != nil {
		return nil, err
	}

	realm := &Realm{admin: admin, name: rep.Realm}
	realm.logger().DebugContext(ctx, "created realm", "realm", rep.Realm)
	return realm, nil
}

// FindRealm locates a realm by its name. Returns nil, nil when no realm with
// that name exists.
func FindRealm(ctx context.Context, admin *adminapi.Client, name string) (*Realm, error) {
	if admin == nil {
		return nil, errNil("admin")
	}
	if name == "" {
		return nil, errEmpty("name")
	}

	realms, err := admin.Realms(ctx)
	if err != nil {
		return nil, err
	}
	for _, rep := range realms {
		if rep.Realm == name {
			realm := &Realm{admin: admin, name: name}
			realm.logger().DebugContext(ctx, "found realm", "realm", name)
			return realm, nil
		}
	}
	return nil, nil
}

// FindRealmOrFail locates a realm by its name or fails with a
// *NotFoundError.
func FindRealmOrFail(ctx context.Context, admin *adminapi.Client, name string) (*Realm, error) {
	realm, err := FindRealm(ctx, admin, name)
	if err != nil {
		return nil, err
	}
	if realm == nil {
		return nil, &NotFoundError{Kind: "Realm", Name: name}
	}
	return realm, nil
}

// FindRealmOrCreate locates a realm by its name, creating it (with the given
// enabled flag) when it does not exist yet.
func FindRealmOrCreate(ctx context.Context, admin *adminapi.Client, name string, enabled bool) (*Realm, error) {
	realm, err := FindRealm(ctx, admin, name)
	if err != nil {
		return nil, err
	}
	if realm == nil {
		return CreateRealm(ctx, admin, name, enabled)
	}
	return realm, nil
}

// FindRealmOrCreateFrom locates a realm by the representation's name,
// creating it from the representation when it does not exist yet.
func FindRealmOrCreateFrom(ctx context.Context, admin *adminapi.Client, rep adminapi.RealmRepresentation) (*Realm, error) {
	if rep.Realm == "" {
		return nil, errEmpty("rep.Realm")
	}

	realm, err := FindRealm(ctx, admin, rep.Realm)
	if err != nil {
		return nil, err
	}
	if realm == nil {
		return CreateRealmFrom(ctx, admin, rep)
	}
	return realm, nil
}
