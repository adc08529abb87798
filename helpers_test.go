package realmkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/realmkit/realmkit/internal/admintest"
	"github.com/realmkit/realmkit/pkg/adminapi"
)

// newTestAdmin starts a fake admin server and returns an authenticated
// client pointed at it plus the backing state.
func newTestAdmin(t *testing.T) (*adminapi.Client, *admintest.Fake) {
	t.Helper()
	return admintest.New(t)
}

// newTestRealm creates a realm through the API for tests that need one.
func newTestRealm(t *testing.T, admin *adminapi.Client, name string) *Realm {
	t.Helper()

	realm, err := CreateRealm(t.Context(), admin, name, true)
	require.NoError(t, err)
	return realm
}
