/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Lispy Authors
*/

package expr

import (
	"math"
	"strconv"
	"strings"
)

// Value represents a runtime value
type Value struct {
	kind    Kind
	intVal  int64
	numVal  float64
	boolVal bool
}

// NewInt creates an integer value
func NewInt(n int64) Value {
	return Value{kind: KindInt, intVal: n}
}

// NewFloat creates a floating-point value
func NewFloat(n float64) Value {
	return Value{kind: KindFloat, numVal: n}
}

// NewBool creates a boolean value
func NewBool(b bool) Value {
	return Value{kind: KindBool, boolVal: b}
}

// Kind returns the runtime kind of the value
func (v Value) Kind() Kind { return v.kind }

// IsInt checks if value is an integer
func (v Value) IsInt() bool { return v.kind == KindInt }

// IsFloat checks if value is a floating-point number
func (v Value) IsFloat() bool { return v.kind == KindFloat }

// IsBool checks if value is a boolean
func (v Value) IsBool() bool { return v.kind == KindBool }

// AsInt returns the value as an integer. Booleans count as 0 and 1, floats
// are truncated.
func (v Value) AsInt() int64 {
	switch v.kind {
	case KindInt:
		return v.intVal
	case KindFloat:
		return int64(v.numVal)
	case KindBool:
		if v.boolVal {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// AsFloat returns the value as a floating-point number
func (v Value) AsFloat() float64 {
	switch v.kind {
	case KindFloat:
		return v.numVal
	case KindInt, KindBool:
		return float64(v.AsInt())
	default:
		return 0
	}
}

// AsBool returns the truthiness of the value
func (v Value) AsBool() bool {
	switch v.kind {
	case KindBool:
		return v.boolVal
	case KindInt:
		return v.intVal != 0
	case KindFloat:
		return v.numVal != 0
	default:
		return false
	}
}

// Equal reports whether two values are numerically equal. Booleans compare
// as 0 and 1; NaN equals nothing.
func (v Value) Equal(other Value) bool {
	c, ok := compare(v, other)
	return ok && c == 0
}

// String renders the value the way the REPL prints it: integers without a
// decimal point, floats always with one, booleans as True/False.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindFloat:
		return formatFloat(v.numVal)
	case KindBool:
		if v.boolVal {
			return "True"
		}
		return "False"
	default:
		return "?"
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
