package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_ContainsClosedSet(t *testing.T) {
	reg := DefaultRegistry()
	for _, id := range []RoleID{RoleSubject, RoleVerb, RoleObject, RoleComplement,
		RoleModifier, RoleAdverbial, RolePrepPhrase, RoleRelClause} {
		assert.True(t, reg.Known(id), "expected %q in registry", id)
	}
	assert.Equal(t, 8, reg.Len())
	assert.False(t, reg.Known(RoleID("np")))
}

func TestRegistry_Lookup(t *testing.T) {
	reg := DefaultRegistry()
	def, ok := reg.Lookup(RoleSubject)
	require.True(t, ok)
	assert.Equal(t, "Subject", def.Label)
	assert.True(t, def.EmitsLabel)

	_, ok = reg.Lookup(RoleID("bogus"))
	assert.False(t, ok)
}

func TestRegistry_ClausesAreOuter(t *testing.T) {
	reg := DefaultRegistry()
	assert.Less(t, reg.Priority(RoleRelClause), reg.Priority(RoleSubject))
	assert.Less(t, reg.Priority(RolePrepPhrase), reg.Priority(RoleVerb))
	assert.Less(t, reg.Priority(RoleSubject), reg.Priority(RoleVerb))
}

func TestRegistry_RolesOrderedByPriority(t *testing.T) {
	reg := DefaultRegistry()
	roles := reg.Roles()
	require.Equal(t, reg.Len(), len(roles))
	assert.Equal(t, RoleRelClause, roles[0])
	for i := 1; i < len(roles); i++ {
		assert.LessOrEqual(t, reg.Priority(roles[i-1]), reg.Priority(roles[i]))
	}
}

func TestRegistry_UnknownRolePriorityIsInnermost(t *testing.T) {
	reg := DefaultRegistry()
	assert.Greater(t, reg.Priority(RoleID("bogus")), reg.Priority(RoleComplement))
}

func TestNewRegistry_DuplicateIDsLastWins(t *testing.T) {
	reg := NewRegistry([]RoleDefinition{
		{ID: "x", NestingPriority: 1, Label: "first"},
		{ID: "x", NestingPriority: 2, Label: "second"},
	})
	def, ok := reg.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "second", def.Label)
	assert.Equal(t, 1, reg.Len())
}
