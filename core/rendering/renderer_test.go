/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/lispy/core/expr"
	"github.com/google/lispy/core/views"
)

func TestRenderTranscript(t *testing.T) {
	renderer, err := NewTranscriptRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	session := expr.NewSession()
	var entries []views.Entry
	for _, line := range []string{"(let x 5)", "(< 1 x)", "(+ y 1)"} {
		res, err := session.ParseAndEvaluate(line)
		entries = append(entries, views.Entry{Input: line, Result: res, Err: err})
	}
	vm := views.BuildTranscriptViewModel("Lispy transcript", entries, session.Symbols())

	var buf bytes.Buffer
	if err := renderer.Render(&buf, vm); err != nil {
		t.Fatalf("render error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>Lispy transcript</title>",
		"3 lines evaluated, 1 failed.",
		`id="entry-2"`,
		`href="#entry-2"`,
		"True",
		"Unknown symbol",
		"at position 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(out, "(< 1 x)") {
		t.Errorf("expected input to be HTML escaped")
	}
}

func TestRenderEmptyTranscript(t *testing.T) {
	renderer, err := NewTranscriptRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, views.BuildTranscriptViewModel("empty", nil, expr.NewSymbolTable())); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.Contains(buf.String(), "No symbols bound.") {
		t.Errorf("expected the empty symbol message")
	}
}
