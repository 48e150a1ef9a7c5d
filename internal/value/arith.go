package value

import (
	"math"
	"strings"

	"madola/internal/units"
)

// scalarArith applies a binary arithmetic operator to two floats. Division
// and modulo by zero abort evaluation.
func scalarArith(op string, x, y float64) (float64, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return 0, Errorf(ErrArithmetic, "division by zero")
		}
		return x / y, nil
	case "%":
		if y == 0 {
			return 0, Errorf(ErrArithmetic, "modulo by zero")
		}
		return math.Mod(x, y), nil
	case "^":
		return math.Pow(x, y), nil
	default:
		return 0, Errorf(ErrType, "operator %q not supported for numbers", op)
	}
}

// NumberBinary handles two plain Numbers, comparisons included.
func NumberBinary(op string, a, b *Number) (Value, error) {
	switch op {
	case "==":
		return Bool(a.Value == b.Value), nil
	case "!=":
		return Bool(a.Value != b.Value), nil
	case "<":
		return Bool(a.Value < b.Value), nil
	case "<=":
		return Bool(a.Value <= b.Value), nil
	case ">":
		return Bool(a.Value > b.Value), nil
	case ">=":
		return Bool(a.Value >= b.Value), nil
	case "&&":
		return Bool(a.Value != 0 && b.Value != 0), nil
	case "||":
		return Bool(a.Value != 0 || b.Value != 0), nil
	}
	f, err := scalarArith(op, a.Value, b.Value)
	if err != nil {
		return nil, err
	}
	return &Number{Value: f}, nil
}

// AsComplex promotes a Number or Complex operand.
func AsComplex(v Value) (*Complex, bool) {
	switch v := v.(type) {
	case *Complex:
		return v, true
	case *Number:
		return &Complex{Re: v.Value}, true
	default:
		return nil, false
	}
}

// ComplexBinary implements the closed +,-,*,/ complex algebra; every other
// operator is a type error.
func ComplexBinary(op string, a, b *Complex) (Value, error) {
	switch op {
	case "+":
		return &Complex{Re: a.Re + b.Re, Im: a.Im + b.Im}, nil
	case "-":
		return &Complex{Re: a.Re - b.Re, Im: a.Im - b.Im}, nil
	case "*":
		return &Complex{
			Re: a.Re*b.Re - a.Im*b.Im,
			Im: a.Re*b.Im + a.Im*b.Re,
		}, nil
	case "/":
		den := b.Re*b.Re + b.Im*b.Im
		if den == 0 {
			return nil, Errorf(ErrArithmetic, "complex division by zero")
		}
		return &Complex{
			Re: (a.Re*b.Re + a.Im*b.Im) / den,
			Im: (a.Im*b.Re - a.Re*b.Im) / den,
		}, nil
	default:
		return nil, Errorf(ErrType, "operator %q not supported for complex numbers", op)
	}
}

// AsUnitNumber promotes plain Numbers to dimensionless unit values for the
// fallback dispatch rule.
func AsUnitNumber(v Value) (*UnitNumber, bool) {
	switch v := v.(type) {
	case *UnitNumber:
		return v, true
	case *Number:
		return &UnitNumber{Value: v.Value}, true
	default:
		return nil, false
	}
}

// unitOrNumber collapses a fully cancelled unit back into a plain Number.
func unitOrNumber(v float64, unit string) Value {
	if unit == "" {
		return &Number{Value: v}
	}
	return &UnitNumber{Value: v, Unit: unit}
}

// UnitBinary applies dimensional arithmetic. Addition converts the right
// operand into the left operand's unit; multiplication and division
// concatenate and simplify unit expressions; comparisons look at the numeric
// component only.
func UnitBinary(op string, a, b *UnitNumber) (Value, error) {
	switch op {
	case "+", "-":
		if !units.AreCompatible(a.Unit, b.Unit) {
			return nil, Errorf(ErrDimensional, "incompatible units: cannot combine %q and %q", displayUnit(a.Unit), displayUnit(b.Unit))
		}
		rhs, ok := units.Convert(b.Value, b.Unit, a.Unit)
		if !ok {
			return nil, Errorf(ErrDimensional, "cannot convert %q into %q", displayUnit(b.Unit), displayUnit(a.Unit))
		}
		f, err := scalarArith(op, a.Value, rhs)
		if err != nil {
			return nil, err
		}
		return unitOrNumber(f, units.Simplify(a.Unit)), nil
	case "*":
		return unitOrNumber(a.Value*b.Value, units.Simplify(joinUnits(a.Unit, b.Unit, "*"))), nil
	case "/":
		if b.Value == 0 {
			return nil, Errorf(ErrArithmetic, "division by zero")
		}
		return unitOrNumber(a.Value/b.Value, units.Simplify(joinUnits(a.Unit, b.Unit, "/"))), nil
	case "^":
		return unitPower(a, b)
	case "==":
		return Bool(a.Value == b.Value), nil
	case "!=":
		return Bool(a.Value != b.Value), nil
	case "<":
		return Bool(a.Value < b.Value), nil
	case "<=":
		return Bool(a.Value <= b.Value), nil
	case ">":
		return Bool(a.Value > b.Value), nil
	case ">=":
		return Bool(a.Value >= b.Value), nil
	default:
		return nil, Errorf(ErrType, "operator %q not supported for unit values", op)
	}
}

func displayUnit(u string) string {
	if u == "" {
		return "dimensionless"
	}
	return u
}

func joinUnits(a, b, op string) string {
	switch {
	case a == "" && b == "":
		return ""
	case b == "":
		return a
	case a == "" && op == "/":
		return "1/(" + b + ")"
	case a == "":
		return b
	default:
		return "(" + a + ")" + op + "(" + b + ")"
	}
}

func unitPower(a, b *UnitNumber) (Value, error) {
	if b.Unit != "" {
		return nil, Errorf(ErrDimensional, "exponent must be dimensionless, got %q", b.Unit)
	}
	if a.Unit == "" {
		return &Number{Value: math.Pow(a.Value, b.Value)}, nil
	}
	n := int(b.Value)
	if float64(n) != b.Value {
		return nil, Errorf(ErrDimensional, "cannot raise united value to non-integer power %s", FormatFloat(b.Value))
	}
	unit := ""
	switch {
	case n > 0:
		parts := make([]string, n)
		for i := range parts {
			parts[i] = "(" + a.Unit + ")"
		}
		unit = strings.Join(parts, "*")
	case n < 0:
		parts := make([]string, -n)
		for i := range parts {
			parts[i] = "(" + a.Unit + ")"
		}
		unit = "1/(" + strings.Join(parts, "*") + ")"
	}
	return unitOrNumber(math.Pow(a.Value, float64(n)), units.Simplify(unit)), nil
}

// Elementwise applies + - * / ^ pairwise over two vectors of identical
// element count. Orientation follows the left operand.
func Elementwise(op string, a, b *Array) (*Array, error) {
	if len(a.Elements) != len(b.Elements) {
		return nil, Errorf(ErrShape, "element count mismatch: %d vs %d", len(a.Elements), len(b.Elements))
	}
	out := make([]float64, len(a.Elements))
	for i := range a.Elements {
		f, err := scalarArith(op, a.Elements[i], b.Elements[i])
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return &Array{Elements: out, Column: a.Column}, nil
}

// BroadcastArray applies op between every element and a scalar, preserving
// operand order (scalarLeft distinguishes 2/x from x/2).
func BroadcastArray(op string, a *Array, scalar float64, scalarLeft bool) (*Array, error) {
	out := make([]float64, len(a.Elements))
	for i, el := range a.Elements {
		x, y := el, scalar
		if scalarLeft {
			x, y = scalar, el
		}
		f, err := scalarArith(op, x, y)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return &Array{Elements: out, Column: a.Column}, nil
}

// BroadcastMatrix is the two-dimensional counterpart of BroadcastArray.
func BroadcastMatrix(op string, m *Matrix, scalar float64, scalarLeft bool) (*Matrix, error) {
	rows := make([][]float64, len(m.Rows))
	for i, row := range m.Rows {
		rows[i] = make([]float64, len(row))
		for j, el := range row {
			x, y := el, scalar
			if scalarLeft {
				x, y = scalar, el
			}
			f, err := scalarArith(op, x, y)
			if err != nil {
				return nil, err
			}
			rows[i][j] = f
		}
	}
	return &Matrix{Rows: rows}, nil
}

// MulMatrices is the standard inner product; widths and heights must agree.
func MulMatrices(a, b *Matrix) (*Matrix, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, Errorf(ErrShape, "cannot multiply %dx%d matrix by %dx%d matrix", ar, ac, br, bc)
	}
	rows := make([][]float64, ar)
	for i := 0; i < ar; i++ {
		rows[i] = make([]float64, bc)
		for j := 0; j < bc; j++ {
			sum := 0.0
			for k := 0; k < ac; k++ {
				sum += a.Rows[i][k] * b.Rows[k][j]
			}
			rows[i][j] = sum
		}
	}
	return &Matrix{Rows: rows}, nil
}

// MulMatrixVector multiplies a matrix by a column vector, yielding a column.
func MulMatrixVector(m *Matrix, v *Array) (*Array, error) {
	rows, cols := m.Dims()
	if cols != len(v.Elements) {
		return nil, Errorf(ErrShape, "cannot multiply %dx%d matrix by column of length %d", rows, cols, len(v.Elements))
	}
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum += m.Rows[i][j] * v.Elements[j]
		}
		out[i] = sum
	}
	return &Array{Elements: out, Column: true}, nil
}

// MulVectorMatrix multiplies a row vector by a matrix, yielding a row.
func MulVectorMatrix(v *Array, m *Matrix) (*Array, error) {
	rows, cols := m.Dims()
	if len(v.Elements) != rows {
		return nil, Errorf(ErrShape, "cannot multiply row of length %d by %dx%d matrix", len(v.Elements), rows, cols)
	}
	out := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += v.Elements[i] * m.Rows[i][j]
		}
		out[j] = sum
	}
	return &Array{Elements: out, Column: false}, nil
}

// Dot is the row·column inner product.
func Dot(a, b *Array) (*Number, error) {
	if len(a.Elements) != len(b.Elements) {
		return nil, Errorf(ErrShape, "element count mismatch: %d vs %d", len(a.Elements), len(b.Elements))
	}
	sum := 0.0
	for i := range a.Elements {
		sum += a.Elements[i] * b.Elements[i]
	}
	return &Number{Value: sum}, nil
}

// Dims returns (rows, cols); an empty matrix is 0x0.
func (m *Matrix) Dims() (int, int) {
	if len(m.Rows) == 0 {
		return 0, 0
	}
	return len(m.Rows), len(m.Rows[0])
}
