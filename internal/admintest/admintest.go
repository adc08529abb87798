// Package admintest provides an in-memory stand-in for the admin REST API,
// covering the endpoints the library talks to. It exists so package tests
// can run hermetically against a real HTTP round trip.
package admintest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/realmkit/realmkit/pkg/adminapi"
)

// Fake holds the in-memory state behind the fake admin server. All exported
// accessors take the internal lock and are safe to call while requests are
// in flight.
type Fake struct {
	mu sync.Mutex

	realms     []adminapi.RealmRepresentation
	realmRoles map[string][]adminapi.RoleRepresentation // realm -> defined roles
	users      map[string][]adminapi.UserRepresentation // realm -> users
	groups     map[string][]adminapi.GroupRepresentation
	clients    map[string][]adminapi.ClientRepresentation

	clientRoles      map[string][]adminapi.RoleRepresentation            // client uuid -> defined roles
	userRealmRoles   map[string][]adminapi.RoleRepresentation            // user uuid -> assigned
	userClientRoles  map[string]map[string][]adminapi.RoleRepresentation // user uuid -> client uuid -> assigned
	groupRealmRoles  map[string][]adminapi.RoleRepresentation
	groupClientRoles map[string]map[string][]adminapi.RoleRepresentation
	userGroups       map[string][]string // user uuid -> group uuids

	nextID int
}

// New starts a fake admin server and returns an authenticated client
// pointed at it plus the backing state. The server is shut down when the
// test finishes.
func New(t *testing.T) (*adminapi.Client, *Fake) {
	t.Helper()

	fake := newFake()
	server := httptest.NewServer(fake.Handler())
	t.Cleanup(server.Close)

	admin := adminapi.New(server.URL)
	if err := admin.LoginAdmin(t.Context(), "master", "admin", "admin"); err != nil {
		t.Fatalf("login against fake admin server: %v", err)
	}
	return admin, fake
}

func newFake() *Fake {
	return &Fake{
		realmRoles:       map[string][]adminapi.RoleRepresentation{},
		users:            map[string][]adminapi.UserRepresentation{},
		groups:           map[string][]adminapi.GroupRepresentation{},
		clients:          map[string][]adminapi.ClientRepresentation{},
		clientRoles:      map[string][]adminapi.RoleRepresentation{},
		userRealmRoles:   map[string][]adminapi.RoleRepresentation{},
		userClientRoles:  map[string]map[string][]adminapi.RoleRepresentation{},
		groupRealmRoles:  map[string][]adminapi.RoleRepresentation{},
		groupClientRoles: map[string]map[string][]adminapi.RoleRepresentation{},
		userGroups:       map[string][]string{},
	}
}

func (f *Fake) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%04d", prefix, f.nextID)
}

// SetRealmRoles replaces the roles defined at realm level.
func (f *Fake) SetRealmRoles(realm string, roles []adminapi.RoleRepresentation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.realmRoles[realm] = roles
}

// SetClientRoles replaces the roles defined by the client with the given
// UUID.
func (f *Fake) SetClientRoles(clientUUID string, roles []adminapi.RoleRepresentation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clientRoles[clientUUID] = roles
}

// AssignedRealmRoles returns the names of the realm roles currently granted
// to a user.
func (f *Fake) AssignedRealmRoles(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return roleNames(f.userRealmRoles[userID])
}

// AssignedClientRoles returns the names of the client roles currently
// granted to a user for one client.
func (f *Fake) AssignedClientRoles(userID, clientUUID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return roleNames(f.userClientRoles[userID][clientUUID])
}

// GroupRealmRoles returns the names of the realm roles currently granted to
// a group.
func (f *Fake) GroupRealmRoles(groupID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return roleNames(f.groupRealmRoles[groupID])
}

// JoinedGroups returns the group IDs a user has joined, in join order.
func (f *Fake) JoinedGroups(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, len(f.userGroups[userID]))
	copy(ids, f.userGroups[userID])
	return ids
}

// ClientRepresentation returns the stored representation of a client.
// Fails the test when the client does not exist.
func (f *Fake) ClientRepresentation(t *testing.T, realm, clientID string) adminapi.ClientRepresentation {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rep := range f.clients[realm] {
		if rep.ClientID == clientID {
			return rep
		}
	}
	t.Fatalf("client %q not found in realm %q", clientID, realm)
	return adminapi.ClientRepresentation{}
}

// UserRepresentation returns the stored representation of a user. Fails the
// test when the user does not exist.
func (f *Fake) UserRepresentation(t *testing.T, realm, username string) adminapi.UserRepresentation {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rep := range f.users[realm] {
		if rep.Username == username {
			return rep
		}
	}
	t.Fatalf("user %q not found in realm %q", username, realm)
	return adminapi.UserRepresentation{}
}

func roleNames(roles []adminapi.RoleRepresentation) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return names
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON[T any](r *http.Request) (T, error) {
	var v T
	err := json.NewDecoder(r.Body).Decode(&v)
	return v, err
}

// Handler returns the HTTP handler serving the fake admin API.
func (f *Fake) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /realms/{realm}/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "test-access-token",
			"refresh_token": "test-refresh-token",
			"token_type":    "Bearer",
			"expires_in":    300,
		})
	})

	mux.HandleFunc("GET /admin/realms", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.realms)
	})

	mux.HandleFunc("POST /admin/realms", func(w http.ResponseWriter, r *http.Request) {
		rep, err := readJSON[adminapi.RealmRepresentation](r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		rep.ID = f.id("realm")
		f.realms = append(f.realms, rep)
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("DELETE /admin/realms/{realm}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("realm")
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, rep := range f.realms {
			if rep.Realm == name {
				f.realms = append(f.realms[:i], f.realms[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("GET /admin/realms/{realm}/roles", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, orEmpty(f.realmRoles[r.PathValue("realm")]))
	})

	mux.HandleFunc("POST /admin/realms/{realm}/roles", func(w http.ResponseWriter, r *http.Request) {
		rep, err := readJSON[adminapi.RoleRepresentation](r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		realm := r.PathValue("realm")
		rep.ID = f.id("role")
		f.realmRoles[realm] = append(f.realmRoles[realm], rep)
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("GET /admin/realms/{realm}/users", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, orEmpty(f.users[r.PathValue("realm")]))
	})

	mux.HandleFunc("POST /admin/realms/{realm}/users", func(w http.ResponseWriter, r *http.Request) {
		rep, err := readJSON[adminapi.UserRepresentation](r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		realm := r.PathValue("realm")
		rep.ID = f.id("user")
		f.users[realm] = append(f.users[realm], rep)
		w.Header().Set("Location", r.URL.Path+"/"+rep.ID)
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("GET /admin/realms/{realm}/users/{user}/role-mappings/realm", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, orEmpty(f.userRealmRoles[r.PathValue("user")]))
	})

	mux.HandleFunc("POST /admin/realms/{realm}/users/{user}/role-mappings/realm", func(w http.ResponseWriter, r *http.Request) {
		roles, err := readJSON[[]adminapi.RoleRepresentation](r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		user := r.PathValue("user")
		f.userRealmRoles[user] = append(f.userRealmRoles[user], roles...)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /admin/realms/{realm}/users/{user}/role-mappings/clients/{client}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, orEmpty(f.userClientRoles[r.PathValue("user")][r.PathValue("client")]))
	})

	mux.HandleFunc("POST /admin/realms/{realm}/users/{user}/role-mappings/clients/{client}", func(w http.ResponseWriter, r *http.Request) {
		roles, err := readJSON[[]adminapi.RoleRepresentation](r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		user, client := r.PathValue("user"), r.PathValue("client")
		if f.userClientRoles[user] == nil {
			f.userClientRoles[user] = map[string][]adminapi.RoleRepresentation{}
		}
		f.userClientRoles[user][client] = append(f.userClientRoles[user][client], roles...)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("PUT /admin/realms/{realm}/users/{user}/groups/{group}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		user, group := r.PathValue("user"), r.PathValue("group")
		for _, joined := range f.userGroups[user] {
			if joined == group {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		f.userGroups[user] = append(f.userGroups[user], group)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /admin/realms/{realm}/groups", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, orEmpty(f.groups[r.PathValue("realm")]))
	})

	mux.HandleFunc("POST /admin/realms/{realm}/groups", func(w http.ResponseWriter, r *http.Request) {
		rep, err := readJSON[adminapi.GroupRepresentation](r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		realm := r.PathValue("realm")
		rep.ID = f.id("group")
		f.groups[realm] = append(f.groups[realm], rep)
		w.Header().Set("Location", r.URL.Path+"/"+rep.ID)
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("GET /admin/realms/{realm}/groups/{group}/role-mappings/realm", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, orEmpty(f.groupRealmRoles[r.PathValue("group")]))
	})

	mux.HandleFunc("POST /admin/realms/{realm}/groups/{group}/role-mappings/realm", func(w http.ResponseWriter, r *http.Request) {
		roles, err := readJSON[[]adminapi.RoleRepresentation](r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		group := r.PathValue("group")
		f.groupRealmRoles[group] = append(f.groupRealmRoles[group], roles...)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /admin/realms/{realm}/groups/{group}/role-mappings/clients/{client}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, orEmpty(f.groupClientRoles[r.PathValue("group")][r.PathValue("client")]))
	})

	mux.HandleFunc("POST /admin/realms/{realm}/groups/{group}/role-mappings/clients/{client}", func(w http.ResponseWriter, r *http.Request) {
		roles, err := readJSON[[]adminapi.RoleRepresentation](r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		group, client := r.PathValue("group"), r.PathValue("client")
		if f.groupClientRoles[group] == nil {
			f.groupClientRoles[group] = map[string][]adminapi.RoleRepresentation{}
		}
		f.groupClientRoles[group][client] = append(f.groupClientRoles[group][client], roles...)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /admin/realms/{realm}/clients", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, orEmpty(f.clients[r.PathValue("realm")]))
	})

	mux.HandleFunc("POST /admin/realms/{realm}/clients", func(w http.ResponseWriter, r *http.Request) {
		rep, err := readJSON[adminapi.ClientRepresentation](r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		realm := r.PathValue("realm")
		rep.ID = f.id("client")
		f.clients[realm] = append(f.clients[realm], rep)
		w.Header().Set("Location", r.URL.Path+"/"+rep.ID)
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("GET /admin/realms/{realm}/clients/{client}/roles", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, orEmpty(f.clientRoles[r.PathValue("client")]))
	})

	mux.HandleFunc("POST /admin/realms/{realm}/clients/{client}/roles", func(w http.ResponseWriter, r *http.Request) {
		rep, err := readJSON[adminapi.RoleRepresentation](r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		clientUUID := r.PathValue("client")
		rep.ID = f.id("role")
		rep.ClientRole = true
		rep.ContainerID = clientUUID
		f.clientRoles[clientUUID] = append(f.clientRoles[clientUUID], rep)
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("GET /admin/realms/{realm}/clients/{client}/service-account-user", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		clientUUID := r.PathValue("client")
		for _, clients := range f.clients {
			for _, rep := range clients {
				if rep.ID == clientUUID {
					writeJSON(w, http.StatusOK, adminapi.UserRepresentation{
						ID:       "sa-" + clientUUID,
						Username: "service-account-" + rep.ClientID,
						Enabled:  true,
					})
					return
				}
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})

	return mux
}

// orEmpty replaces a nil slice with an empty one so the JSON encoder
// produces [] instead of null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
