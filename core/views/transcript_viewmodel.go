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

package views

import (
	"strconv"

	"github.com/google/lispy/core/expr"
	"github.com/google/safehtml"
)

// Entry records one evaluated input line
type Entry struct {
	Input  string
	Result expr.Result
	Err    error
}

// TranscriptViewModel contains a session transcript formatted for template consumption
type TranscriptViewModel struct {
	Title      string
	Entries    []EntryView
	Symbols    []SymbolView // Final symbol table, sorted by name
	ErrorCount int          // Number of lines that failed
}

// EntryView is one row of the transcript
type EntryView struct {
	Number      int
	Anchor      safehtml.Identifier // Element id of the row
	Link        safehtml.URL        // Fragment link to the row
	Input       string
	Output      string   // Rendered value, empty when the line failed
	Kind        string   // Kind of the value
	Error       string   // Rendered error, empty on success
	Diagnostics []string // Non-fatal lexical diagnostics
	Failed      bool
}

// SymbolView is one binding of the final symbol table
type SymbolView struct {
	Name  string
	Value string
	Kind  string
}

// BuildTranscriptViewModel builds a view model from evaluated entries and the
// session's symbol table
func BuildTranscriptViewModel(title string, entries []Entry, symbols *expr.SymbolTable) TranscriptViewModel {
	vm := TranscriptViewModel{Title: title}

	for i, entry := range entries {
		number := strconv.Itoa(i + 1)
		view := EntryView{
			Number: i + 1,
			Anchor: safehtml.IdentifierFromConstantPrefix("entry", number),
			Link:   safehtml.URLSanitized("#entry-" + number),
			Input:  entry.Input,
		}
		for _, d := range entry.Result.Diagnostics {
			view.Diagnostics = append(view.Diagnostics, d.Error())
		}
		if entry.Err != nil {
			view.Failed = true
			view.Error = expr.FormatError(entry.Err)
			vm.ErrorCount++
		} else {
			view.Output = entry.Result.Value.String()
			view.Kind = entry.Result.Value.Kind().String()
		}
		vm.Entries = append(vm.Entries, view)
	}

	if symbols != nil {
		for _, name := range symbols.Names() {
			val, _ := symbols.Lookup(name)
			vm.Symbols = append(vm.Symbols, SymbolView{
				Name:  name,
				Value: val.String(),
				Kind:  val.Kind().String(),
			})
		}
	}

	return vm
}
