/*
Package realmkit is a convenience layer over a Keycloak-compatible identity
administration API. It wraps the raw admin REST client
(github.com/realmkit/realmkit/pkg/adminapi) with find / create /
find-or-create helpers for realms, users, groups, clients and roles, and a
role set type for reconciling role assignments.

# Getting Started

Authenticate an admin client, then work through the entity helpers:

	admin := adminapi.New("https://id.example.com")
	if err := admin.LoginAdmin(ctx, "master", "admin", password); err != nil {
		log.Fatal(err)
	}

	realm, err := realmkit.FindRealmOrCreate(ctx, admin, "shop", true)
	if err != nil {
		log.Fatal(err)
	}

	user, err := realmkit.FindUserOrCreate(ctx, realm, "jane", "secret", true)
	if err != nil {
		log.Fatal(err)
	}

	// Grants only the roles jane does not have yet; fails if any of the
	// names does not exist in the realm.
	if err := user.AddRealmRoles(ctx, "buyer", "reviewer"); err != nil {
		log.Fatal(err)
	}

# Lookup Semantics

Every entity has three lookup flavors:

  - Find*: returns nil, nil when the entity does not exist; absence is a
    valid outcome, not an error
  - Find*OrFail: absence is a *NotFoundError
    ("User 'jane' should exist, but was not found")
  - Find*OrCreate: creates the entity on absence

# Role Reconciliation

The Roles type is an immutable snapshot of a role list with name lookups and
set difference. AddRealmRoles and AddClientRoles on User and Group use it to
compute exactly the missing grants:

	current, _ := user.RealmRoles(ctx)
	expected, err := realmRoles.FindByNamesOrFail("buyer", "reviewer")
	if err != nil {
		// Role 'reviewer' not found: [buyer, admin]
	}
	delta := current.Missing(expected)

Lookups that must succeed return a *NotFoundError carrying the attempted
name and the names that were available. The OrFail variants are fail-fast:
three of four names matching still grants nothing.
*/
package realmkit
