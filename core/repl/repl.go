/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package repl implements the read-eval-print loop around an expr.Session.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/lispy/core/config"
	"github.com/google/lispy/core/expr"
	"github.com/google/lispy/core/views"
	"github.com/peterh/liner"
)

const helpText = `Enter one parenthesized statement per line, e.g. (+ 1 2) or (let x 5).
Commands:
  :vars             List bound symbols
  :type <stmt>      Show the inferred kind of a statement without evaluating it
  :tokens <line>    Show how a line is tokenized
  :help             Show this help
  quit, exit        Leave the REPL`

// LineReader reads input lines. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// REPL reads lines, evaluates them in a session and prints the results
type REPL struct {
	session    *expr.Session
	in         LineReader
	out        io.Writer
	cfg        *config.Config
	transcript []views.Entry
}

// New creates a REPL. A nil cfg uses config.Default().
func New(session *expr.Session, in LineReader, out io.Writer, cfg *config.Config) *REPL {
	if cfg == nil {
		cfg = config.Default()
	}
	return &REPL{session: session, in: in, out: out, cfg: cfg}
}

// Run reads and handles lines until quit, exit or end of input
func (r *REPL) Run() error {
	for {
		line, err := r.in.Prompt(r.cfg.Prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if stop := r.Handle(line); stop {
			return nil
		}
	}
}

// Handle processes one input line and reports whether the loop should stop
func (r *REPL) Handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if line == "quit" || line == "exit" {
		return true
	}

	r.in.AppendHistory(line)

	if strings.HasPrefix(line, ":") {
		r.command(line)
		return false
	}

	res, err := r.session.ParseAndEvaluate(line)
	r.transcript = append(r.transcript, views.Entry{Input: line, Result: res, Err: err})

	for _, d := range res.Diagnostics {
		fmt.Fprintln(r.out, d.Error())
	}
	if err != nil {
		fmt.Fprintln(r.out, r.red(expr.FormatError(err)))
		return false
	}
	fmt.Fprintln(r.out, r.blue(res.Value.String()))
	return false
}

// Transcript returns every evaluated line with its outcome, in input order
func (r *REPL) Transcript() []views.Entry {
	return r.transcript
}

func (r *REPL) command(line string) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":vars":
		fmt.Fprint(r.out, SymbolTableASCII(r.session.Symbols()))
	case ":type":
		if arg == "" {
			fmt.Fprintln(r.out, "usage: :type <statement>")
			return
		}
		k, err := r.session.KindOf(arg)
		if err != nil {
			fmt.Fprintln(r.out, r.red(expr.FormatError(err)))
			return
		}
		fmt.Fprintln(r.out, k)
	case ":tokens":
		tokens, diagnostics := expr.Tokenize(arg)
		for _, d := range diagnostics {
			fmt.Fprintln(r.out, d.Error())
		}
		fmt.Fprintln(r.out, expr.DescribeTokens(tokens))
	case ":help":
		fmt.Fprintln(r.out, helpText)
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for a list of commands.\n", name)
	}
}

var completionWords = []string{"let", "and", "or", ":vars", ":type", ":tokens", ":help", "quit", "exit"}

// Complete returns completions for the last word of line, drawn from the
// keywords, the REPL commands and the bound symbols. It has the signature of
// liner.Completer.
func (r *REPL) Complete(line string) []string {
	start := strings.LastIndexAny(line, " \t(") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	candidates := append(append([]string{}, completionWords...), r.session.Symbols().Names()...)
	sort.Strings(candidates)

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, word) && c != word {
			out = append(out, prefix+c)
		}
	}
	return out
}

func (r *REPL) red(s string) string {
	if !r.cfg.Color {
		return s
	}
	return "\x1b[31m" + s + "\x1b[0m"
}

func (r *REPL) blue(s string) string {
	if !r.cfg.Color {
		return s
	}
	return "\x1b[94m" + s + "\x1b[0m"
}

// Preload evaluates lines in order, stopping at the first failure
func Preload(session *expr.Session, lines []string) error {
	for i, line := range lines {
		if _, err := session.ParseAndEvaluate(line); err != nil {
			return fmt.Errorf("preload line %d: %w", i+1, err)
		}
	}
	return nil
}

// scanReader reads lines from a non-interactive source
type scanReader struct {
	scanner *bufio.Scanner
}

// NewScanReader returns a LineReader over r that ignores prompts and history
func NewScanReader(r io.Reader) LineReader {
	return &scanReader{scanner: bufio.NewScanner(r)}
}

func (s *scanReader) Prompt(string) (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *scanReader) AppendHistory(string) {}
