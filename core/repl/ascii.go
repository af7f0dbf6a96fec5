/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package repl

import (
	"fmt"
	"strings"

	"github.com/google/lispy/core/expr"
)

// SymbolTableASCII returns the bound symbols as a table with ASCII borders
func SymbolTableASCII(symbols *expr.SymbolTable) string {
	if symbols.Len() == 0 {
		return "no symbols bound\n"
	}

	headers := []string{"name", "value", "kind"}
	var rows [][]string
	for _, name := range symbols.Names() {
		val, _ := symbols.Lookup(name)
		rows = append(rows, []string{name, val.String(), val.Kind().String()})
	}

	// Calculate column widths
	colWidths := make([]int, len(headers))
	for col, h := range headers {
		colWidths[col] = len(h)
	}
	for _, row := range rows {
		for col, cell := range row {
			if len(cell) > colWidths[col] {
				colWidths[col] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeBorder(&sb, colWidths)
	writeRow(&sb, colWidths, headers)
	writeBorder(&sb, colWidths)
	for _, row := range rows {
		writeRow(&sb, colWidths, row)
	}
	writeBorder(&sb, colWidths)
	return sb.String()
}

func writeBorder(sb *strings.Builder, colWidths []int) {
	for _, w := range colWidths {
		sb.WriteString("+")
		sb.WriteString(strings.Repeat("-", w+2))
	}
	sb.WriteString("+\n")
}

func writeRow(sb *strings.Builder, colWidths []int, cells []string) {
	for col, cell := range cells {
		sb.WriteString(fmt.Sprintf("| %-*s ", colWidths[col], cell))
	}
	sb.WriteString("|\n")
}
