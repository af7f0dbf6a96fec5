/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package repl

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/lispy/core/config"
	"github.com/google/lispy/core/expr"
	"github.com/peterh/liner"
)

// fakeReader replays scripted lines; a nil error with an empty queue is EOF
type fakeReader struct {
	lines   []string
	errs    map[int]error
	calls   int
	history []string
	prompts []string
}

func (f *fakeReader) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	i := f.calls
	f.calls++
	if err, ok := f.errs[i]; ok {
		return "", err
	}
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeReader) AppendHistory(item string) {
	f.history = append(f.history, item)
}

func plainConfig() *config.Config {
	cfg := config.Default()
	cfg.Color = false
	return cfg
}

func runLines(t *testing.T, lines ...string) (string, *REPL) {
	t.Helper()
	var out bytes.Buffer
	r := New(expr.NewSession(), &fakeReader{lines: lines}, &out, plainConfig())
	if err := r.Run(); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return out.String(), r
}

func TestRunEvaluatesLines(t *testing.T) {
	out, _ := runLines(t, "(let x 5)", "(+ x 1)", "(let x 10)", "(+ x 1)")
	expected := "5\n6\n10\n11\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestRunContinuesAfterErrors(t *testing.T) {
	out, r := runLines(t, "(/ 4 0)", "(+ 1)", "(+ y 1)", "(+ 1 2", "(* 2 3)")
	expected := strings.Join([]string{
		"Operator '/' at position 1: division by zero",
		"Operator '+' at position 1 requires at least 2 operands",
		"Unknown symbol 'y' at position 3",
		"Malformed expression (missing closing parenthesis?)",
		"6",
	}, "\n") + "\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
	if len(r.Transcript()) != 5 {
		t.Errorf("expected 5 transcript entries, got %d", len(r.Transcript()))
	}
}

func TestRunControlLines(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected string
	}{
		{"quit stops", []string{"(+ 1 1)", "quit", "(+ 2 2)"}, "2\n"},
		{"exit stops", []string{"  exit  ", "(+ 2 2)"}, ""},
		{"blank lines are skipped", []string{"", "   ", "\t", "(+ 3 3)"}, "6\n"},
		{"end of input stops", nil, ""},
		{"quit must match exactly", []string{"(quit)"}, "Syntax error at 'quit' (position 1)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := runLines(t, tt.lines...)
			if out != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, out)
			}
		})
	}
}

func TestRunPrintsDiagnosticsBeforeResult(t *testing.T) {
	out, _ := runLines(t, "(+ 1 @ 2)")
	expected := "Illegal character '@' at position 5\n3\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestRunPromptAndHistory(t *testing.T) {
	var out bytes.Buffer
	in := &fakeReader{lines: []string{"(+ 1 1)", "", ":help"}}
	cfg := plainConfig()
	cfg.Prompt = "lispy> "
	if err := New(expr.NewSession(), in, &out, cfg).Run(); err != nil {
		t.Fatalf("run error: %v", err)
	}
	for _, p := range in.prompts {
		if p != "lispy> " {
			t.Errorf("expected prompt %q, got %q", "lispy> ", p)
		}
	}
	if len(in.history) != 2 || in.history[0] != "(+ 1 1)" || in.history[1] != ":help" {
		t.Errorf("unexpected history %v", in.history)
	}
}

func TestRunAbortedPromptContinues(t *testing.T) {
	var out bytes.Buffer
	in := &fakeReader{lines: []string{"(+ 1 1)"}, errs: map[int]error{0: liner.ErrPromptAborted}}
	if err := New(expr.NewSession(), in, &out, plainConfig()).Run(); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out.String() != "2\n" {
		t.Errorf("expected %q, got %q", "2\n", out.String())
	}
}

func TestRunReadError(t *testing.T) {
	in := &fakeReader{errs: map[int]error{0: errors.New("tty gone")}}
	err := New(expr.NewSession(), in, io.Discard, plainConfig()).Run()
	if err == nil || !strings.Contains(err.Error(), "tty gone") {
		t.Errorf("expected the read error, got %v", err)
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected string
	}{
		{"vars empty", []string{":vars"}, "no symbols bound\n"},
		{
			"vars",
			[]string{"(let x 5)", "(let ratio 2.5)", ":vars"},
			"5\n2.5\n" +
				"+-------+-------+-------+\n" +
				"| name  | value | kind  |\n" +
				"+-------+-------+-------+\n" +
				"| ratio | 2.5   | float |\n" +
				"| x     | 5     | int   |\n" +
				"+-------+-------+-------+\n",
		},
		{"type", []string{":type (+ 1 2.0)"}, "float\n"},
		{"type does not bind", []string{":type (let z 1)", ":vars"}, "int\nno symbols bound\n"},
		{"type error", []string{":type (+ 1)"}, "type check: Operator '+' at position 1 requires at least 2 operands\n"},
		{"type usage", []string{":type"}, "usage: :type <statement>\n"},
		{"tokens", []string{":tokens (<= a 1)"}, "( <= SYM(a) NUM(1) ) EOF\n"},
		{"tokens diagnostics", []string{":tokens (+ @)"}, "Illegal character '@' at position 3\n( + ) EOF\n"},
		{"unknown", []string{":nope"}, "unknown command :nope. Type :help for a list of commands.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := runLines(t, tt.lines...)
			if out != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, out)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	out, _ := runLines(t, ":help")
	if !strings.Contains(out, ":vars") || !strings.Contains(out, "quit, exit") {
		t.Errorf("unexpected help text %q", out)
	}
}

func TestColorOutput(t *testing.T) {
	var out bytes.Buffer
	in := &fakeReader{lines: []string{"(+ 1 1)", "(+ 1)"}}
	if err := New(expr.NewSession(), in, &out, config.Default()).Run(); err != nil {
		t.Fatalf("run error: %v", err)
	}
	expected := "\x1b[94m2\x1b[0m\n\x1b[31mOperator '+' at position 1 requires at least 2 operands\x1b[0m\n"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

func TestComplete(t *testing.T) {
	session := expr.NewSession()
	session.Symbols().Bind("limit", expr.NewInt(1))
	session.Symbols().Bind("level", expr.NewInt(2))
	r := New(session, &fakeReader{}, io.Discard, nil)

	tests := []struct {
		line     string
		expected []string
	}{
		{"(+ l", []string{"(+ let", "(+ level", "(+ limit"}},
		{"(le", []string{"(let", "(level"}},
		{":t", []string{":tokens", ":type"}},
		{"(+ ", nil},
		{"(+ zz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := r.Complete(tt.line)
			if strings.Join(got, ",") != strings.Join(tt.expected, ",") {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPreload(t *testing.T) {
	session := expr.NewSession()
	if err := Preload(session, []string{"(let pi 3.14159)", "(let tau (* 2 pi))"}); err != nil {
		t.Fatalf("preload error: %v", err)
	}
	if v, ok := session.Symbols().Lookup("tau"); !ok || v.String() != "6.28318" {
		t.Errorf("expected tau to be 6.28318, got %v", v)
	}

	err := Preload(session, []string{"(let a 1)", "(+ missing 1)"})
	if err == nil || !expr.IsKind(err, expr.UnknownSymbol) {
		t.Fatalf("expected UnknownSymbol, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "preload line 2: ") {
		t.Errorf("expected the line number in %q", err.Error())
	}
}

func TestScanReader(t *testing.T) {
	var out bytes.Buffer
	in := NewScanReader(strings.NewReader("(let x 2)\n\n(* x 21)\nexit\n(+ 1 1)\n"))
	r := New(expr.NewSession(), in, &out, plainConfig())
	if err := r.Run(); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out.String() != "2\n42\n" {
		t.Errorf("expected %q, got %q", "2\n42\n", out.String())
	}
	if len(r.Transcript()) != 2 {
		t.Errorf("expected 2 transcript entries, got %d", len(r.Transcript()))
	}
}
