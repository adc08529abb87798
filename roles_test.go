package realmkit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/realmkit/realmkit/pkg/adminapi"
)

func rolesNamed(names ...string) Roles {
	list := make([]adminapi.RoleRepresentation, 0, len(names))
	for _, name := range names {
		list = append(list, adminapi.RoleRepresentation{ID: "id-" + name, Name: name})
	}
	return NewRoles(list)
}

func TestNewRoles(t *testing.T) {
	t.Parallel()

	t.Run("nil input yields empty set", func(t *testing.T) {
		roles := NewRoles(nil)
		require.True(t, roles.IsEmpty())
		require.Empty(t, roles.AsList())
		require.Empty(t, roles.AsNames())
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		roles := rolesNamed("one", "two", "three")
		require.Equal(t, []string{"one", "two", "three"}, roles.AsNames())
		require.False(t, roles.IsEmpty())
	})

	t.Run("copies the input slice", func(t *testing.T) {
		input := []adminapi.RoleRepresentation{{Name: "one"}, {Name: "two"}}
		roles := NewRoles(input)

		input[0].Name = "mutated"
		require.Equal(t, []string{"one", "two"}, roles.AsNames())
	})

	t.Run("AsList returns a copy", func(t *testing.T) {
		roles := rolesNamed("one", "two")

		list := roles.AsList()
		list[0].Name = "mutated"
		require.Equal(t, []string{"one", "two"}, roles.AsNames())
	})
}

func TestRolesFindByName(t *testing.T) {
	t.Parallel()

	roles := rolesNamed("one", "two", "three")

	t.Run("finds existing role", func(t *testing.T) {
		role, ok := roles.FindByName("two")
		require.True(t, ok)
		require.Equal(t, "two", role.Name)
		require.Equal(t, "id-two", role.ID)
	})

	t.Run("absent name is not an error", func(t *testing.T) {
		_, ok := roles.FindByName("four")
		require.False(t, ok)
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		_, ok := roles.FindByName("Two")
		require.False(t, ok)
	})

	t.Run("first match wins on duplicate names", func(t *testing.T) {
		dup := NewRoles([]adminapi.RoleRepresentation{
			{ID: "a", Name: "one"},
			{ID: "b", Name: "one"},
		})
		role, ok := dup.FindByName("one")
		require.True(t, ok)
		require.Equal(t, "a", role.ID)
	})
}

func TestRolesFindByNameOrFail(t *testing.T) {
	t.Parallel()

	roles := rolesNamed("one", "two", "three")

	t.Run("returns existing role", func(t *testing.T) {
		role, err := roles.FindByNameOrFail("three")
		require.NoError(t, err)
		require.Equal(t, "three", role.Name)
	})

	t.Run("fails with exact message", func(t *testing.T) {
		_, err := roles.FindByNameOrFail("four")
		require.Error(t, err)
		require.EqualError(t, err, "Role 'four' not found: [one, two, three]")

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, "Role", notFound.Kind)
		require.Equal(t, "four", notFound.Name)
		require.Equal(t, []string{"one", "two", "three"}, notFound.Available)
	})

	t.Run("empty set message", func(t *testing.T) {
		_, err := NewRoles(nil).FindByNameOrFail("any")
		require.EqualError(t, err, "Role 'any' not found: []")
	})

	t.Run("empty name is invalid", func(t *testing.T) {
		_, err := roles.FindByNameOrFail("")
		var invalid *InvalidArgumentError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestRolesFindByNamesOrFail(t *testing.T) {
	t.Parallel()

	roles := rolesNamed("one", "two", "three")

	t.Run("result follows argument order", func(t *testing.T) {
		result, err := roles.FindByNamesOrFail("three", "one")
		require.NoError(t, err)
		require.Equal(t, []string{"three", "one"}, result.AsNames())
	})

	t.Run("fails fast on first missing name", func(t *testing.T) {
		result, err := roles.FindByNamesOrFail("one", "two", "three", "four")
		require.EqualError(t, err, "Role 'four' not found: [one, two, three]")
		require.True(t, result.IsEmpty(), "partial matches must be discarded")
	})

	t.Run("no names is invalid", func(t *testing.T) {
		_, err := roles.FindByNamesOrFail()
		var invalid *InvalidArgumentError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, "names", invalid.Argument)
	})

	t.Run("empty element is invalid before any lookup", func(t *testing.T) {
		_, err := roles.FindByNamesOrFail("one", "")
		var invalid *InvalidArgumentError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestRolesMissing(t *testing.T) {
	t.Parallel()

	t.Run("computes the delta in expected order", func(t *testing.T) {
		current := rolesNamed("one", "two", "three")
		expected := rolesNamed("one", "two", "three", "four")

		missing := current.Missing(expected)
		require.Equal(t, []string{"four"}, missing.AsNames())
	})

	t.Run("empty receiver returns expected as-is", func(t *testing.T) {
		expected := rolesNamed("one", "two")
		missing := NewRoles(nil).Missing(expected)
		require.Equal(t, expected.AsNames(), missing.AsNames())
	})

	t.Run("nothing missing relative to itself", func(t *testing.T) {
		roles := rolesNamed("one", "two", "three")
		require.True(t, roles.Missing(roles).IsEmpty())
	})

	t.Run("result is a subset of expected", func(t *testing.T) {
		current := rolesNamed("two")
		expected := rolesNamed("one", "two", "three")

		missing := current.Missing(expected)
		require.Equal(t, []string{"one", "three"}, missing.AsNames())
		for _, name := range missing.AsNames() {
			require.Contains(t, expected.AsNames(), name)
		}
	})

	t.Run("empty expected yields empty result", func(t *testing.T) {
		current := rolesNamed("one")
		require.True(t, current.Missing(NewRoles(nil)).IsEmpty())
	})
}

func TestRolesIteration(t *testing.T) {
	t.Parallel()

	roles := rolesNamed("one", "two", "three")

	t.Run("yields roles in insertion order", func(t *testing.T) {
		var names []string
		for role := range roles.All() {
			names = append(names, role.Name)
		}
		require.Equal(t, []string{"one", "two", "three"}, names)
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		seq := roles.All()
		for range 2 {
			count := 0
			for range seq {
				count++
			}
			require.Equal(t, 3, count)
		}
	})

	t.Run("early break stops iteration", func(t *testing.T) {
		count := 0
		for range roles.All() {
			count++
			break
		}
		require.Equal(t, 1, count)
	})
}
