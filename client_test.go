package realmkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/realmkit/realmkit/pkg/adminapi"
)

func TestClientLifecycle(t *testing.T) {
	t.Parallel()

	admin, fake := newTestAdmin(t)
	ctx := t.Context()
	realm := newTestRealm(t, admin, "cl-realm")

	t.Run("create with secret sets the confidential flags", func(t *testing.T) {
		client, err := CreateOIDCClientWithSecret(ctx, realm, "webapp", "s3cr3t", "https://app.example.com/cb", true, false)
		require.NoError(t, err)
		require.Equal(t, "webapp", client.ClientID())
		require.NotEmpty(t, client.UUID())

		rep := fake.ClientRepresentation(t, "cl-realm", "webapp")
		require.Equal(t, adminapi.ProtocolOpenIDConnect, rep.Protocol)
		require.False(t, rep.PublicClient)
		require.Equal(t, "s3cr3t", rep.Secret)
		require.Equal(t, adminapi.AuthenticatorClientSecret, rep.ClientAuthenticatorType)
		require.Equal(t, []string{"https://app.example.com/cb"}, rep.RedirectURIs)
		require.True(t, rep.StandardFlowEnabled)
		require.False(t, rep.DirectAccessGrantsEnabled)
	})

	t.Run("implicit preset creates a public client", func(t *testing.T) {
		_, err := CreateOIDCClientImplicit(ctx, realm, "spa", "https://spa.example.com/cb")
		require.NoError(t, err)

		rep := fake.ClientRepresentation(t, "cl-realm", "spa")
		require.True(t, rep.PublicClient)
		require.True(t, rep.ImplicitFlowEnabled)
		require.False(t, rep.StandardFlowEnabled)
		require.Empty(t, rep.Secret)
	})

	t.Run("client credentials preset enables service accounts", func(t *testing.T) {
		_, err := CreateOIDCClientCredentials(ctx, realm, "batch", "s3cr3t")
		require.NoError(t, err)

		rep := fake.ClientRepresentation(t, "cl-realm", "batch")
		require.True(t, rep.ServiceAccountsEnabled)
		require.False(t, rep.PublicClient)
		require.False(t, rep.StandardFlowEnabled)
	})

	t.Run("find returns nil for unknown client", func(t *testing.T) {
		client, err := FindClient(ctx, realm, "ghost")
		require.NoError(t, err)
		require.Nil(t, client)
	})

	t.Run("find or fail", func(t *testing.T) {
		_, err := FindClientOrFail(ctx, realm, "ghost")
		require.EqualError(t, err, "Client 'ghost' should exist, but was not found")
	})

	t.Run("find or create is idempotent", func(t *testing.T) {
		first, err := FindClientOrCreateOIDCCredentials(ctx, realm, "worker", "s3cr3t")
		require.NoError(t, err)
		second, err := FindClientOrCreateOIDCCredentials(ctx, realm, "worker", "other")
		require.NoError(t, err)
		require.Equal(t, first.UUID(), second.UUID())
	})

	t.Run("empty secret is invalid", func(t *testing.T) {
		_, err := CreateOIDCClientCredentials(ctx, realm, "nosecret", "")
		var invalid *InvalidArgumentError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestClientRolesAndServiceAccount(t *testing.T) {
	t.Parallel()

	admin, fake := newTestAdmin(t)
	ctx := t.Context()
	realm := newTestRealm(t, admin, "svc-realm")

	client, err := CreateOIDCClientCredentials(ctx, realm, "backend", "s3cr3t")
	require.NoError(t, err)

	fake.SetClientRoles(client.UUID(), rolesNamed("reader").AsList())

	roles, err := client.Roles(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"reader"}, roles.AsNames())

	sa, err := client.ServiceAccountUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "service-account-backend", sa.Name())
	require.NotEmpty(t, sa.UUID())
}
