/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package views

import (
	"testing"

	"github.com/google/lispy/core/expr"
)

func TestBuildTranscriptViewModel(t *testing.T) {
	session := expr.NewSession()
	var entries []Entry
	for _, line := range []string{"(let x 5)", "(+ x 1 @)", "(/ x 0)"} {
		res, err := session.ParseAndEvaluate(line)
		entries = append(entries, Entry{Input: line, Result: res, Err: err})
	}

	vm := BuildTranscriptViewModel("session", entries, session.Symbols())

	if vm.Title != "session" {
		t.Errorf("expected title %q, got %q", "session", vm.Title)
	}
	if len(vm.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(vm.Entries))
	}
	if vm.ErrorCount != 1 {
		t.Errorf("expected 1 error, got %d", vm.ErrorCount)
	}

	first := vm.Entries[0]
	if first.Number != 1 || first.Output != "5" || first.Kind != "int" || first.Failed {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if first.Anchor.String() != "entry-1" {
		t.Errorf("expected anchor entry-1, got %q", first.Anchor.String())
	}
	if first.Link.String() != "#entry-1" {
		t.Errorf("expected link #entry-1, got %q", first.Link.String())
	}

	second := vm.Entries[1]
	if second.Output != "6" || len(second.Diagnostics) != 1 {
		t.Errorf("unexpected second entry: %+v", second)
	}

	third := vm.Entries[2]
	if !third.Failed || third.Output != "" || third.Error != "Operator '/' at position 1: division by zero" {
		t.Errorf("unexpected third entry: %+v", third)
	}

	if len(vm.Symbols) != 1 || vm.Symbols[0].Name != "x" || vm.Symbols[0].Value != "5" {
		t.Errorf("unexpected symbols: %+v", vm.Symbols)
	}
}

func TestBuildTranscriptViewModelWithoutSymbols(t *testing.T) {
	vm := BuildTranscriptViewModel("empty", nil, nil)
	if len(vm.Entries) != 0 || len(vm.Symbols) != 0 || vm.ErrorCount != 0 {
		t.Errorf("expected an empty view model, got %+v", vm)
	}
}
