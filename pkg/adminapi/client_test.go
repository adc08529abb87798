package adminapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// newLoggedInClient wires a client to a mux that already serves the token
// endpoint, and authenticates it.
func newLoggedInClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	mux.HandleFunc("POST /realms/master/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok","refresh_token":"ref","token_type":"Bearer","expires_in":300}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	admin := New(server.URL)
	require.NoError(t, admin.LoginAdmin(t.Context(), "master", "admin", "pw"))
	return admin
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	var firstID, secondID atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/realms", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		if firstID.Load() == nil {
			firstID.Store(r.Header.Get("X-Request-ID"))
		} else {
			secondID.Store(r.Header.Get("X-Request-ID"))
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})
	admin := newLoggedInClient(t, mux)

	_, err := admin.Realms(t.Context())
	require.NoError(t, err)
	_, err = admin.Realms(t.Context())
	require.NoError(t, err)

	require.NotEqual(t, firstID.Load(), secondID.Load(), "every request gets a fresh correlation id")
}

func TestCreateSendsJSONBody(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/realms", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	})
	admin := newLoggedInClient(t, mux)

	err := admin.CreateRealm(t.Context(), RealmRepresentation{Realm: "shop", Enabled: true})
	require.NoError(t, err)
}

func TestCreateRealmNon201(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/realms", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	admin := newLoggedInClient(t, mux)

	err := admin.CreateRealm(t.Context(), RealmRepresentation{Realm: "shop"})
	require.EqualError(t, err, "Creating realm shop failed with: #409 / Conflict")
}

func TestLimiterGatesRequests(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/realms", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})
	admin := newLoggedInClient(t, mux)
	admin.Limiter = rate.NewLimiter(rate.Every(30*time.Millisecond), 1)

	start := time.Now()
	for range 3 {
		_, err := admin.Realms(t.Context())
		require.NoError(t, err)
	}

	require.EqualValues(t, 3, calls.Load())
	require.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond,
		"burst of one must space out subsequent requests")
}
