package parser

import (
	"maps"
	"slices"
	"sort"
)

// TypeContext tracks which identifiers currently name types. The parser consults it on
// every identifier it reads; its state is captured and restored together with the token
// cursor by the backtracking engine.
type TypeContext struct {
	names     map[string]struct{}
	compounds map[string]struct{}
	// scopes holds the name sets saved by OpenScope. Saved sets are never mutated.
	scopes []map[string]struct{}
}

type typeSnapshot struct {
	names     map[string]struct{}
	compounds map[string]struct{}
	scopes    []map[string]struct{}
}

func NewTypeContext(predeclared ...string) *TypeContext {
	tc := &TypeContext{
		names:     make(map[string]struct{}),
		compounds: make(map[string]struct{}),
	}
	for _, name := range predeclared {
		tc.DeclareType(name)
	}
	return tc
}

func (tc *TypeContext) IsTypeName(name string) bool {
	_, ok := tc.names[name]
	return ok
}

func (tc *TypeContext) IsCompoundName(name string) bool {
	_, ok := tc.compounds[name]
	return ok
}

func (tc *TypeContext) DeclareType(name string) {
	tc.names[name] = struct{}{}
}

func (tc *TypeContext) DeclareCompound(name string) {
	tc.compounds[name] = struct{}{}
}

// OpenScope saves the current set of type names. Names declared until the matching
// CloseScope disappear when it runs.
func (tc *TypeContext) OpenScope() {
	tc.scopes = append(tc.scopes, maps.Clone(tc.names))
}

func (tc *TypeContext) CloseScope() {
	if len(tc.scopes) == 0 {
		return
	}
	saved := tc.scopes[len(tc.scopes)-1]
	tc.scopes = tc.scopes[:len(tc.scopes)-1]
	tc.names = maps.Clone(saved)
}

// Depth returns the number of open scopes.
func (tc *TypeContext) Depth() int {
	return len(tc.scopes)
}

func (tc *TypeContext) Names() []string {
	return sortedKeys(tc.names)
}

func (tc *TypeContext) Compounds() []string {
	return sortedKeys(tc.compounds)
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (tc *TypeContext) snapshot() typeSnapshot {
	return typeSnapshot{
		names:     maps.Clone(tc.names),
		compounds: maps.Clone(tc.compounds),
		scopes:    slices.Clone(tc.scopes),
	}
}

func (tc *TypeContext) restore(s typeSnapshot) {
	tc.names = maps.Clone(s.names)
	tc.compounds = maps.Clone(s.compounds)
	tc.scopes = slices.Clone(s.scopes)
}
