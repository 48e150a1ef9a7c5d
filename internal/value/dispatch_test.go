package value

import (
	"testing"
)

func num(f float64) *Number {
	return &Number{Value: f}
}

func text(s string) *Text {
	return &Text{Value: s}
}

func unit(f float64, u string) *UnitNumber {
	return &UnitNumber{Value: f, Unit: u}
}

func row(els ...float64) *Array {
	return &Array{Elements: els}
}

func col(els ...float64) *Array {
	return &Array{Elements: els, Column: true}
}

func TestBinaryDispatch(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		left     Value
		right    Value
		expected string
	}{
		{"text concat", "+", text("x = "), num(4), "x = 4"},
		{"text concat right", "+", num(2.5), text(" kN"), "2.5 kN"},
		{"text concat both", "+", text("beam "), text("AB"), "beam AB"},
		{"text concat unit", "+", text("v = "), unit(10, "m"), "v = 10 m"},
		{"complex product", "*", &Complex{Re: 3, Im: 2}, &Complex{Re: 3, Im: 2}, "5+12i"},
		{"complex promotes number", "+", &Complex{Re: 1, Im: 1}, num(1), "2+1i"},
		{"complex quotient", "/", &Complex{Re: 4, Im: 2}, &Complex{Re: 2}, "2+1i"},
		{"broadcast scalar right", "*", row(1, 2, 3), num(2), "[2,4,6]"},
		{"broadcast scalar left", "/", num(12), row(2, 3, 4), "[6,4,3]"},
		{"broadcast power", "^", row(1, 2, 3), num(2), "[1,4,9]"},
		{"broadcast matrix", "*", &Matrix{Rows: [][]float64{{1, 2}, {3, 4}}}, num(10), "[10,20;30,40]"},
		{"elementwise rows", "+", row(1, 2), row(10, 20), "[11,22]"},
		{"elementwise columns", "+", col(1, 2), col(10, 20), "[11;22]"},
		{"elementwise product", "*", row(1, 2), row(3, 4), "[3,8]"},
		{"dot product", "*", row(1, 2, 3), col(1, 2, 3), "14"},
		{"matrix product", "*", &Matrix{Rows: [][]float64{{1, 0}, {0, 1}}}, &Matrix{Rows: [][]float64{{2, 3}, {4, 5}}}, "[2,3;4,5]"},
		{"matrix times column", "*", &Matrix{Rows: [][]float64{{1, 2}, {3, 4}}}, col(5, 6), "[17;39]"},
		{"row times matrix", "*", row(5, 6), &Matrix{Rows: [][]float64{{1, 2}, {3, 4}}}, "[23,34]"},
		{"number sum", "+", num(5), num(23), "28"},
		{"number power", "^", num(2), num(10), "1024"},
		{"number modulo", "%", num(7), num(3), "1"},
		{"number comparison", ">", num(3), num(2), "1"},
		{"number equality", "==", num(3), num(2), "0"},
		{"logical and", "&&", num(1), num(0), "0"},
		{"logical or", "||", num(0), num(7), "1"},
		{"unit sum converts", "+", unit(10, "m"), unit(5, "cm"), "10.05 m"},
		{"unit difference", "-", unit(3, "m"), unit(50, "cm"), "2.5 m"},
		{"unit product simplifies", "*", unit(2, "in"), unit(3, "kip"), "6 kip-in"},
		{"unit quotient", "/", unit(10, "m"), unit(2, "s"), "5 m/s"},
		{"unit cancellation", "/", unit(10, "m"), unit(2, "m"), "5"},
		{"unit power", "^", unit(3, "m"), num(2), "9 m^2"},
		{"number times unit", "*", num(2), unit(3, "m"), "6 m"},
		{"unit comparison", ">", unit(10, "m"), unit(5, "m"), "1"},
	}

	for i, tt := range tests {
		got, err := Binary(tt.op, tt.left, tt.right)
		if err != nil {
			t.Fatalf("tests[%d] - %s: unexpected error: %v", i, tt.name, err)
		}
		if got.Inspect() != tt.expected {
			t.Fatalf("tests[%d] - %s: got %s, want %s", i, tt.name, got.Inspect(), tt.expected)
		}
	}
}

func TestBinaryErrors(t *testing.T) {
	tests := []struct {
		name  string
		op    string
		left  Value
		right Value
		kind  ErrorKind
	}{
		{"division by zero", "/", num(1), num(0), ErrArithmetic},
		{"modulo by zero", "%", num(7), num(0), ErrArithmetic},
		{"complex division by zero", "/", &Complex{Re: 1, Im: 1}, &Complex{}, ErrArithmetic},
		{"complex comparison", "==", &Complex{Re: 1}, &Complex{Re: 1}, ErrType},
		{"text subtraction", "-", text("a"), text("b"), ErrType},
		{"array comparison", ">", row(1, 2), num(1), ErrType},
		{"element count mismatch", "+", row(1, 2), row(1, 2, 3), ErrShape},
		{"matrix sum unsupported", "+", &Matrix{Rows: [][]float64{{1}}}, &Matrix{Rows: [][]float64{{2}}}, ErrType},
		{"matrix times row", "*", &Matrix{Rows: [][]float64{{1, 2}, {3, 4}}}, row(5, 6), ErrShape},
		{"column times matrix", "*", col(5, 6), &Matrix{Rows: [][]float64{{1, 2}, {3, 4}}}, ErrShape},
		{"inner dimension mismatch", "*", &Matrix{Rows: [][]float64{{1, 2}}}, &Matrix{Rows: [][]float64{{1, 2}}}, ErrShape},
		{"incompatible units", "+", unit(10, "m"), unit(5, "s"), ErrDimensional},
		{"united exponent", "^", unit(2, "m"), unit(2, "s"), ErrDimensional},
		{"united division by zero", "/", unit(1, "m"), unit(0, "s"), ErrArithmetic},
	}

	for i, tt := range tests {
		_, err := Binary(tt.op, tt.left, tt.right)
		if err == nil {
			t.Fatalf("tests[%d] - %s: expected an error", i, tt.name)
		}
		wantKind(t, err, tt.kind)
	}
}

func TestUnary(t *testing.T) {
	tests := []struct {
		op       string
		v        Value
		expected string
	}{
		{"-", num(5), "-5"},
		{"-", unit(5, "m"), "-5 m"},
		{"-", &Complex{Re: 2, Im: 3}, "-2-3i"},
		{"-", row(1, 2), "[-1,-2]"},
		{"-", &Matrix{Rows: [][]float64{{1, 2}, {3, 4}}}, "[-1,-2;-3,-4]"},
		{"+", num(5), "5"},
		{"+", row(1, 2), "[1,2]"},
		{"!", num(0), "1"},
		{"!", num(3), "0"},
	}

	for i, tt := range tests {
		got, err := Unary(tt.op, tt.v)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if got.Inspect() != tt.expected {
			t.Fatalf("tests[%d] - %s%s = %s, want %s", i, tt.op, tt.v.Inspect(), got.Inspect(), tt.expected)
		}
	}
}

func TestUnaryDoesNotMutate(t *testing.T) {
	a := row(1, 2)
	if _, err := Unary("-", a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Elements[0] != 1 {
		t.Fatalf("negation mutated its operand: %s", a.Inspect())
	}
}

func TestUnaryErrors(t *testing.T) {
	if _, err := Unary("!", text("x")); err == nil {
		t.Fatalf("expected an error negating text")
	} else {
		wantKind(t, err, ErrType)
	}
	if _, err := Unary("-", text("x")); err == nil {
		t.Fatalf("expected an error for unary minus on text")
	} else {
		wantKind(t, err, ErrType)
	}
}
