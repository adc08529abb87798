package realmkit

import (
	"iter"

	"github.com/realmkit/realmkit/pkg/adminapi"
)

// Roles is an order-preserving collection of role representations with
// name-based lookup and reconciliation helpers. It is a snapshot: the
// constructor copies its input and every accessor returns copies, so a Roles
// value never changes after construction and is safe for concurrent readers.
//
// Role names within one set are expected to be unique (the server enforces
// this per scope); when duplicates do occur, lookups return the first match.
// All roles in one set belong to the same scope, either realm level or one
// client's roles. Callers must not mix scopes in a Missing computation.
type Roles struct {
	list []adminapi.RoleRepresentation
}

// NewRoles creates a role set from the given representations. A nil slice
// yields an empty set. The input is copied, so later mutation of the slice
// does not affect the set.
func NewRoles(roles []adminapi.RoleRepresentation) Roles {
	list := make([]adminapi.RoleRepresentation, len(roles))
	copy(list, roles)
	return Roles{list: list}
}

// AsList returns a copy of the contained roles in insertion order.
func (r Roles) AsList() []adminapi.RoleRepresentation {
	list := make([]adminapi.RoleRepresentation, len(r.list))
	copy(list, r.list)
	return list
}

// FindByName locates a role by its exact, case-sensitive name. The second
// return value reports whether a role was found. An empty name never
// matches, since role names are non-empty.
func (r Roles) FindByName(name string) (adminapi.RoleRepresentation, bool) {
	for _, role := range r.list {
		if role.Name == name {
			return role, true
		}
	}
	return adminapi.RoleRepresentation{}, false
}

// FindByNameOrFail locates a role by its name or returns a *NotFoundError
// listing the names currently in the set.
func (r Roles) FindByNameOrFail(name string) (adminapi.RoleRepresentation, error) {
	if name == "" {
		return adminapi.RoleRepresentation{}, errEmpty("name")
	}

	role, ok := r.FindByName(name)
	if !ok {
		return adminapi.RoleRepresentation{}, &NotFoundError{Kind: "Role", Name: name, Available: r.AsNames()}
	}
	return role, nil
}

// FindByNamesOrFail locates multiple roles by name. On success the returned
// set contains the matched roles in the order the names were given. The
// lookup is fail-fast: the first name without a match produces the same
// *NotFoundError as FindByNameOrFail and any roles matched before it are
// discarded. An empty names list, or an empty element in it, is an
// *InvalidArgumentError raised before any lookup.
func (r Roles) FindByNamesOrFail(names ...string) (Roles, error) {
	if len(names) == 0 {
		return Roles{}, errEmpty("names")
	}
	for _, name := range names {
		if name == "" {
			return Roles{}, &InvalidArgumentError{Argument: "names", Reason: "must not contain empty elements"}
		}
	}

	result := make([]adminapi.RoleRepresentation, 0, len(names))
	for _, name := range names {
		role, err := r.FindByNameOrFail(name)
		if err != nil {
			return Roles{}, err
		}
		result = append(result, role)
	}
	return Roles{list: result}, nil
}

// AsNames returns the role names in insertion order.
func (r Roles) AsNames() []string {
	names := make([]string, 0, len(r.list))
	for _, role := range r.list {
		names = append(names, role.Name)
	}
	return names
}

// Missing compares the receiver against the expected set and returns the
// roles from expected whose name does not occur in the receiver, in
// expected's order. An empty receiver short-circuits and returns expected
// unchanged. This is the reconciliation primitive: holding "currently
// assigned" and "should be assigned", Missing yields exactly the delta to
// grant.
func (r Roles) Missing(expected Roles) Roles {
	if len(r.list) == 0 {
		return expected
	}

	var missing []adminapi.RoleRepresentation
	for _, role := range expected.list {
		if _, ok := r.FindByName(role.Name); !ok {
			missing = append(missing, role)
		}
	}
	return NewRoles(missing)
}

// IsEmpty reports whether the set contains no roles.
func (r Roles) IsEmpty() bool {
	return len(r.list) == 0
}

// All returns an iterator over the contained roles in insertion order. The
// sequence is restartable and yields copies, so the set cannot be mutated
// through it.
func (r Roles) All() iter.Seq[adminapi.RoleRepresentation] {
	return func(yield func(adminapi.RoleRepresentation) bool) {
		for _, role := range r.list {
			if !yield(role) {
				return
			}
		}
	}
}
