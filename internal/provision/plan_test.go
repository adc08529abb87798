package provision

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePlan = `
realm:
  name: staging
roles:
  - name: reader
    description: read only access
  - name: writer
clients:
  - clientId: webapp
    preset: secret
    secret: s3cret
    redirectUri: https://app.example.com/callback
    roles:
      - name: uploader
  - clientId: batch
    preset: credentials
    secret: b4tch
groups:
  - name: staff
    realmRoles: [reader]
users:
  - username: jane
    password: pw
    realmRoles: [reader, writer]
    groups: [staff]
    clientRoles:
      webapp: [uploader]
`

func TestLoad(t *testing.T) {
	t.Parallel()

	plan, err := Load(strings.NewReader(samplePlan))
	require.NoError(t, err)

	require.Equal(t, "staging", plan.Realm.Name)
	require.True(t, enabled(plan.Realm.Enabled))
	require.Len(t, plan.Roles, 2)
	require.Len(t, plan.Clients, 2)
	require.Equal(t, PresetSecret, plan.Clients[0].Preset)
	require.Len(t, plan.Users, 1)
	require.Equal(t, []string{"uploader"}, plan.Users[0].ClientRoles["webapp"])
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("realm:\n  name: x\n  colour: blue\n"))
	require.ErrorContains(t, err, "failed to parse plan")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Plan)
		wantErr string
	}{
		{
			name:    "missing realm name",
			mutate:  func(p *Plan) { p.Realm.Name = "" },
			wantErr: "realm.name is required",
		},
		{
			name:    "duplicate role",
			mutate:  func(p *Plan) { p.Roles = append(p.Roles, RolePlan{Name: "reader"}) },
			wantErr: `duplicate role "reader"`,
		},
		{
			name:    "unknown preset",
			mutate:  func(p *Plan) { p.Clients[0].Preset = "saml" },
			wantErr: `unknown preset "saml"`,
		},
		{
			name:    "secret preset without redirect",
			mutate:  func(p *Plan) { p.Clients[0].RedirectURI = "" },
			wantErr: "requires secret and redirectUri",
		},
		{
			name:    "credentials preset without secret",
			mutate:  func(p *Plan) { p.Clients[1].Secret = "" },
			wantErr: "requires secret",
		},
		{
			name:    "user references unknown group",
			mutate:  func(p *Plan) { p.Users[0].Groups = []string{"nobody"} },
			wantErr: `references unknown group "nobody"`,
		},
		{
			name:    "user references unknown client",
			mutate:  func(p *Plan) { p.Users[0].ClientRoles = map[string][]string{"ghost": {"x"}} },
			wantErr: `references unknown client "ghost"`,
		},
		{
			name:    "duplicate client role",
			mutate:  func(p *Plan) { p.Clients[0].Roles = append(p.Clients[0].Roles, RolePlan{Name: "uploader"}) },
			wantErr: `duplicate role "uploader"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			plan, err := Load(strings.NewReader(samplePlan))
			require.NoError(t, err)

			tc.mutate(plan)
			require.ErrorContains(t, plan.Validate(), tc.wantErr)
		})
	}
}
