/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package expr

import "sort"

// SymbolTable maps symbol names to their last bound value. It has a single
// scope and is owned by one Session; it is not safe for concurrent use.
type SymbolTable struct {
	values map[string]Value
}

// NewSymbolTable creates an empty symbol table
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{values: make(map[string]Value)}
}

// Bind sets name to value, replacing any previous binding
func (s *SymbolTable) Bind(name string, value Value) {
	s.values[name] = value
}

// Lookup returns the value bound to name
func (s *SymbolTable) Lookup(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Len returns the number of bound symbols
func (s *SymbolTable) Len() int {
	return len(s.values)
}

// Names returns the bound symbol names in sorted order
func (s *SymbolTable) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
