package realmkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupLifecycle(t *testing.T) {
	t.Parallel()

	admin, _ := newTestAdmin(t)
	ctx := t.Context()
	realm := newTestRealm(t, admin, "grp-realm")

	t.Run("create extracts the id from the location header", func(t *testing.T) {
		group, err := CreateGroup(ctx, realm, "staff")
		require.NoError(t, err)
		require.Equal(t, "staff", group.Name())
		require.NotEmpty(t, group.UUID())
	})

	t.Run("find returns nil for unknown group", func(t *testing.T) {
		group, err := FindGroup(ctx, realm, "ghost")
		require.NoError(t, err)
		require.Nil(t, group)
	})

	t.Run("find or fail", func(t *testing.T) {
		_, err := FindGroupOrFail(ctx, realm, "ghost")
		require.EqualError(t, err, "Group 'ghost' should exist, but was not found")
	})

	t.Run("find or create is idempotent", func(t *testing.T) {
		first, err := FindGroupOrCreate(ctx, realm, "admins")
		require.NoError(t, err)
		second, err := FindGroupOrCreate(ctx, realm, "admins")
		require.NoError(t, err)
		require.Equal(t, first.UUID(), second.UUID())
	})
}

func TestGroupRealmRoleReconciliation(t *testing.T) {
	t.Parallel()

	admin, _ := newTestAdmin(t)
	ctx := t.Context()
	realm := newTestRealm(t, admin, "grp-grant-realm")

	for _, name := range []string{"one", "two", "three"} {
		_, err := CreateRole(ctx, realm, name, name+" role")
		require.NoError(t, err)
	}
	group, err := CreateGroup(ctx, realm, "staff")
	require.NoError(t, err)

	t.Run("grants only the missing roles", func(t *testing.T) {
		require.NoError(t, group.AddRealmRoles(ctx, "one"))
		require.NoError(t, group.AddRealmRoles(ctx, "one", "two"))

		current, err := group.RealmRoles(ctx)
		require.NoError(t, err)
		require.Equal(t, []string{"one", "two"}, current.AsNames())
	})

	t.Run("unknown role name fails with the realm's names", func(t *testing.T) {
		err := group.AddRealmRoles(ctx, "four")
		require.EqualError(t, err, "Role 'four' not found: [one, two, three]")
	})
}

func TestGroupClientRoleReconciliation(t *testing.T) {
	t.Parallel()

	admin, fake := newTestAdmin(t)
	ctx := t.Context()
	realm := newTestRealm(t, admin, "grp-client-realm")

	client, err := CreateOIDCClientCredentials(ctx, realm, "backend", "s3cr3t")
	require.NoError(t, err)

	fake.SetClientRoles(client.UUID(), rolesNamed("reader", "writer").AsList())

	group, err := CreateGroup(ctx, realm, "staff")
	require.NoError(t, err)

	require.NoError(t, group.AddClientRoles(ctx, client, "writer"))

	current, err := group.ClientRoles(ctx, client)
	require.NoError(t, err)
	require.Equal(t, []string{"writer"}, current.AsNames())

	err = group.AddClientRoles(ctx, client, "admin")
	require.EqualError(t, err, "Role 'admin' not found: [reader, writer]")
}
