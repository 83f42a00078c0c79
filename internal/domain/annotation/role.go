// Package annotation defines the input data model of the rendering engine:
// the grammatical-role taxonomy, character-offset annotations produced by the
// generation pipeline, sentence boundaries, and vocabulary match
// configurations.  All offsets are UTF-16 code units, matching the offsets
// emitted by the upstream pipeline.
package annotation

import "sort"

// RoleID identifies a grammatical role in the closed taxonomy.
type RoleID string

// The closed set of annotation roles.  The upstream pipeline may only emit
// these ids; records carrying anything else are dropped at normalization.
const (
	RoleSubject    RoleID = "s"
	RoleVerb       RoleID = "v"
	RoleObject     RoleID = "o"
	RoleComplement RoleID = "c"
	RoleModifier   RoleID = "m"
	RoleAdverbial  RoleID = "adv"
	RolePrepPhrase RoleID = "pp"
	RoleRelClause  RoleID = "rc"
)

func (r RoleID) String() string { return string(r) }

// RoleDefinition carries the nesting priority and presentation metadata of a
// single role.  Lower NestingPriority means the role sits further out when
// two annotations of identical extent compete for the same frame.
type RoleDefinition struct {
	ID              RoleID
	NestingPriority int
	Label           string
	EmitsLabel      bool
}

// Registry is the immutable role taxonomy.  It is built once at process start
// and never mutated afterwards, so lookups are safe from any goroutine.
type Registry struct {
	byID  map[RoleID]RoleDefinition
	order []RoleID
}

// NewRegistry builds a Registry from the given definitions.  Later duplicates
// of the same id silently win; callers are expected to pass a well-formed set.
func NewRegistry(defs []RoleDefinition) *Registry {
	byID := make(map[RoleID]RoleDefinition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	order := make([]RoleID, 0, len(byID))
	for id := range byID {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		return byID[order[i]].NestingPriority < byID[order[j]].NestingPriority
	})
	return &Registry{byID: byID, order: order}
}

// DefaultRegistry returns the platform's standard grammatical-role taxonomy.
// Clause-level spans carry low priorities (outer); phrase-level constituents
// carry high priorities (inner).
func DefaultRegistry() *Registry {
	return NewRegistry([]RoleDefinition{
		{ID: RoleRelClause, NestingPriority: 10, Label: "Relative clause", EmitsLabel: false},
		{ID: RolePrepPhrase, NestingPriority: 20, Label: "Prepositional phrase", EmitsLabel: false},
		{ID: RoleAdverbial, NestingPriority: 30, Label: "Adverbial", EmitsLabel: false},
		{ID: RoleModifier, NestingPriority: 40, Label: "Modifier", EmitsLabel: false},
		{ID: RoleSubject, NestingPriority: 50, Label: "Subject", EmitsLabel: true},
		{ID: RoleVerb, NestingPriority: 51, Label: "Verb", EmitsLabel: true},
		{ID: RoleObject, NestingPriority: 52, Label: "Object", EmitsLabel: true},
		{ID: RoleComplement, NestingPriority: 53, Label: "Complement", EmitsLabel: true},
	})
}

// Lookup returns the definition for id, if present.
func (r *Registry) Lookup(id RoleID) (RoleDefinition, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Known reports whether id belongs to the taxonomy.
func (r *Registry) Known(id RoleID) bool {
	_, ok := r.byID[id]
	return ok
}

// Priority returns the nesting priority for id.  Unknown ids sort innermost;
// they never survive normalization, so this is a defensive default only
// reachable from tests.
func (r *Registry) Priority(id RoleID) int {
	if d, ok := r.byID[id]; ok {
		return d.NestingPriority
	}
	return int(^uint(0) >> 1)
}

// Roles returns all role ids ordered by ascending nesting priority.
func (r *Registry) Roles() []RoleID {
	out := make([]RoleID, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of roles in the taxonomy.
func (r *Registry) Len() int { return len(r.byID) }
