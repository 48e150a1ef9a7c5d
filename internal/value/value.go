package value

import (
	"strings"
)

type ValueType string

const (
	NUMBER_VAL  ValueType = "NUMBER"
	TEXT_VAL    ValueType = "TEXT"
	COMPLEX_VAL ValueType = "COMPLEX"
	UNIT_VAL    ValueType = "UNIT_NUMBER"
	ARRAY_VAL   ValueType = "ARRAY"
	MATRIX_VAL  ValueType = "MATRIX"
)

// Value is the runtime representation of every MADOLA datum. Values are
// treated as immutable: operations allocate fresh values and assignment
// rebinds, which is what makes environment snapshots behave as full copies.
type Value interface {
	Type() ValueType
	Inspect() string
}

type Number struct {
	Value float64
}

func (n *Number) Type() ValueType { return NUMBER_VAL }
func (n *Number) Inspect() string { return FormatFloat(n.Value) }

type Text struct {
	Value string
}

func (t *Text) Type() ValueType { return TEXT_VAL }
func (t *Text) Inspect() string { return t.Value }

type Complex struct {
	Re float64
	Im float64
}

func (c *Complex) Type() ValueType { return COMPLEX_VAL }
func (c *Complex) Inspect() string { return FormatComplex(c.Re, c.Im) }

// UnitNumber pairs a magnitude with a unit expression such as "kip/in^2".
// A blank unit never reaches storage; operations that cancel all units
// return a plain Number instead.
type UnitNumber struct {
	Value float64
	Unit  string
}

func (u *UnitNumber) Type() ValueType { return UNIT_VAL }
func (u *UnitNumber) Inspect() string { return FormatFloat(u.Value) + " " + u.Unit }

// Array is a one-dimensional numeric vector with row/column orientation.
type Array struct {
	Elements []float64
	Column   bool
}

func (a *Array) Type() ValueType { return ARRAY_VAL }
func (a *Array) Inspect() string {
	sep := ","
	if a.Column {
		sep = ";"
	}
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = FormatFloat(el)
	}
	return "[" + strings.Join(parts, sep) + "]"
}

func (a *Array) Copy() *Array {
	elements := make([]float64, len(a.Elements))
	copy(elements, a.Elements)
	return &Array{Elements: elements, Column: a.Column}
}

// Matrix is a rectangular two-dimensional block of numbers.
type Matrix struct {
	Rows [][]float64
}

func (m *Matrix) Type() ValueType { return MATRIX_VAL }
func (m *Matrix) Inspect() string {
	rows := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		parts := make([]string, len(row))
		for j, el := range row {
			parts[j] = FormatFloat(el)
		}
		rows[i] = strings.Join(parts, ",")
	}
	return "[" + strings.Join(rows, ";") + "]"
}

func (m *Matrix) Copy() *Matrix {
	rows := make([][]float64, len(m.Rows))
	for i, row := range m.Rows {
		rows[i] = make([]float64, len(row))
		copy(rows[i], row)
	}
	return &Matrix{Rows: rows}
}

// NewMatrix validates rectangularity; every row must have the same width.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) != len(rows[0]) {
			return nil, Errorf(ErrShape, "matrix rows must have equal length, row %d has %d elements, expected %d",
				i+1, len(rows[i]), len(rows[0]))
		}
	}
	return &Matrix{Rows: rows}, nil
}

// Truthy implements condition semantics: a non-zero Number, a non-empty
// Text or a non-zero UnitNumber is true; everything else is false.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case *Number:
		return v.Value != 0
	case *Text:
		return v.Value != ""
	case *UnitNumber:
		return v.Value != 0
	default:
		return false
	}
}

// Bool converts a Go bool into the Number 1/0 the language uses for
// comparison results.
func Bool(b bool) *Number {
	if b {
		return &Number{Value: 1}
	}
	return &Number{Value: 0}
}
