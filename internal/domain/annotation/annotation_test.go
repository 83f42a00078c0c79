package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_KeepsValidRecords(t *testing.T) {
	reg := DefaultRegistry()
	raw := []Annotation{
		{Start: 0, End: 5, Role: RoleSubject},
		{Start: 5, End: 10, Role: RoleVerb},
	}
	clean, report := Normalize(raw, 10, reg)
	assert.Equal(t, raw, clean)
	assert.Equal(t, NormalizeReport{Input: 2, Kept: 2}, report)
	assert.True(t, report.Clean())
}

func TestNormalize_DropsMalformedOffsets(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		name string
		ann  Annotation
	}{
		{"negative start", Annotation{Start: -1, End: 3, Role: RoleSubject}},
		{"empty span", Annotation{Start: 3, End: 3, Role: RoleSubject}},
		{"inverted span", Annotation{Start: 5, End: 2, Role: RoleSubject}},
		{"end past text", Annotation{Start: 0, End: 11, Role: RoleSubject}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clean, report := Normalize([]Annotation{tc.ann}, 10, reg)
			assert.Empty(t, clean)
			assert.Equal(t, 1, report.BadOffsets)
			assert.Equal(t, 1, report.Dropped())
		})
	}
}

func TestNormalize_DropsUnknownRole(t *testing.T) {
	reg := DefaultRegistry()
	clean, report := Normalize([]Annotation{{Start: 0, End: 4, Role: "np"}}, 10, reg)
	assert.Empty(t, clean)
	assert.Equal(t, 1, report.UnknownRoles)
	assert.Zero(t, report.BadOffsets)
	assert.False(t, report.Clean())
}

func TestNormalize_NoRepair(t *testing.T) {
	// A record reaching one unit past the end is dropped whole, not clamped.
	reg := DefaultRegistry()
	clean, _ := Normalize([]Annotation{{Start: 8, End: 11, Role: RoleVerb}}, 10, reg)
	assert.Empty(t, clean)
}

func TestNormalize_PreservesOrder(t *testing.T) {
	reg := DefaultRegistry()
	raw := []Annotation{
		{Start: 6, End: 9, Role: RoleObject},
		{Start: 0, End: 20, Role: RoleRelClause}, // dropped: end past text
		{Start: 0, End: 3, Role: RoleSubject},
	}
	clean, report := Normalize(raw, 10, reg)
	require.Len(t, clean, 2)
	assert.Equal(t, raw[0], clean[0])
	assert.Equal(t, raw[2], clean[1])
	assert.Equal(t, 1, report.BadOffsets)
}

func TestSortForNesting(t *testing.T) {
	anns := []Annotation{
		{Start: 5, End: 10, Role: RoleVerb},
		{Start: 0, End: 5, Role: RoleSubject},
		{Start: 0, End: 10, Role: RoleRelClause},
	}
	sorted := SortForNesting(anns)
	assert.Equal(t, Annotation{Start: 0, End: 10, Role: RoleRelClause}, sorted[0])
	assert.Equal(t, Annotation{Start: 0, End: 5, Role: RoleSubject}, sorted[1])
	assert.Equal(t, Annotation{Start: 5, End: 10, Role: RoleVerb}, sorted[2])
}

func TestSortForNesting_StableForTies(t *testing.T) {
	anns := []Annotation{
		{Start: 0, End: 5, Role: RoleSubject},
		{Start: 0, End: 5, Role: RoleModifier},
	}
	sorted := SortForNesting(anns)
	assert.Equal(t, RoleSubject, sorted[0].Role)
	assert.Equal(t, RoleModifier, sorted[1].Role)
}

func TestAnnotation_Covers(t *testing.T) {
	a := Annotation{Start: 2, End: 8, Role: RoleVerb}
	assert.True(t, a.Covers(2, 8))
	assert.True(t, a.Covers(3, 5))
	assert.False(t, a.Covers(1, 5))
	assert.False(t, a.Covers(5, 9))
	assert.Equal(t, 6, a.Length())
}

func TestAnnotation_ContainedIn(t *testing.T) {
	a := Annotation{Start: 2, End: 8, Role: RoleVerb}
	assert.True(t, a.ContainedIn(0, 10))
	assert.True(t, a.ContainedIn(2, 8))
	assert.False(t, a.ContainedIn(3, 10))
	assert.False(t, a.ContainedIn(0, 7))
}
