package value

// Binary resolves a binary operator over two values using a fixed priority
// order; the first rule whose operand pattern matches wins.
//
//  1. + with a Text operand concatenates, stringifying the other side.
//  2. a Complex operand promotes the other from Number and uses the complex
//     algebra.
//  3. an Array/Matrix paired with a Number broadcasts element-wise.
//  4. Array paired with Array under + - / ^ is element-wise.
//  5. Array/Matrix pairs under * take matrix semantics by shape: matrix
//     product, matrix-vector, vector-matrix, row·column dot product, or
//     element-wise for plain vectors.
//  6. two Numbers use IEEE-754 arithmetic, comparisons and boolean ops.
//  7. everything else promotes to UnitNumber and applies dimensional
//     arithmetic; comparisons there look only at the numeric component.
func Binary(op string, left, right Value) (Value, error) {
	// rule 1: text concatenation
	if op == "+" {
		_, lText := left.(*Text)
		_, rText := right.(*Text)
		if lText || rText {
			return &Text{Value: left.Inspect() + right.Inspect()}, nil
		}
	}

	// rule 2: complex algebra
	_, lComplex := left.(*Complex)
	_, rComplex := right.(*Complex)
	if lComplex || rComplex {
		a, aok := AsComplex(left)
		b, bok := AsComplex(right)
		if !aok || !bok {
			return nil, typeMismatch(op, left, right)
		}
		return ComplexBinary(op, a, b)
	}

	// rules 3-5: arrays and matrices
	switch l := left.(type) {
	case *Array:
		switch r := right.(type) {
		case *Number:
			if !broadcastable(op) {
				return nil, typeMismatch(op, left, right)
			}
			return BroadcastArray(op, l, r.Value, false)
		case *Array:
			return arrayPair(op, l, r)
		case *Matrix:
			if op == "*" {
				if l.Column {
					return nil, Errorf(ErrShape, "cannot multiply a column vector by a matrix")
				}
				return MulVectorMatrix(l, r)
			}
			return nil, typeMismatch(op, left, right)
		}
		return nil, typeMismatch(op, left, right)
	case *Matrix:
		switch r := right.(type) {
		case *Number:
			if !broadcastable(op) {
				return nil, typeMismatch(op, left, right)
			}
			return BroadcastMatrix(op, l, r.Value, false)
		case *Matrix:
			if op == "*" {
				return MulMatrices(l, r)
			}
			return nil, typeMismatch(op, left, right)
		case *Array:
			if op == "*" {
				if !r.Column {
					return nil, Errorf(ErrShape, "cannot multiply a matrix by a row vector")
				}
				return MulMatrixVector(l, r)
			}
			return nil, typeMismatch(op, left, right)
		}
		return nil, typeMismatch(op, left, right)
	case *Number:
		switch r := right.(type) {
		case *Array:
			if !broadcastable(op) {
				return nil, typeMismatch(op, left, right)
			}
			return BroadcastArray(op, r, l.Value, true)
		case *Matrix:
			if !broadcastable(op) {
				return nil, typeMismatch(op, left, right)
			}
			return BroadcastMatrix(op, r, l.Value, true)
		case *Number:
			// rule 6
			return NumberBinary(op, l, r)
		}
	}

	// rule 7: dimensional fallback
	a, aok := AsUnitNumber(left)
	b, bok := AsUnitNumber(right)
	if !aok || !bok {
		return nil, typeMismatch(op, left, right)
	}
	return UnitBinary(op, a, b)
}

// broadcastable limits scalar broadcasting to the operators the element-wise
// rules define.
func broadcastable(op string) bool {
	switch op {
	case "+", "-", "*", "/", "^":
		return true
	}
	return false
}

func arrayPair(op string, l, r *Array) (Value, error) {
	switch op {
	case "+", "-", "/", "^":
		return Elementwise(op, l, r)
	case "*":
		// rule 5: row by column is the dot product, any other pairing is
		// an element-wise product
		if !l.Column && r.Column {
			return Dot(l, r)
		}
		return Elementwise(op, l, r)
	default:
		return nil, Errorf(ErrType, "operator %q not supported between arrays", op)
	}
}

// Unary applies - + ! to a single value; - and + act per element on arrays
// and matrices, ! negates a Number only.
func Unary(op string, v Value) (Value, error) {
	switch op {
	case "-":
		switch v := v.(type) {
		case *Number:
			return &Number{Value: -v.Value}, nil
		case *UnitNumber:
			return &UnitNumber{Value: -v.Value, Unit: v.Unit}, nil
		case *Complex:
			return &Complex{Re: -v.Re, Im: -v.Im}, nil
		case *Array:
			out := v.Copy()
			for i := range out.Elements {
				out.Elements[i] = -out.Elements[i]
			}
			return out, nil
		case *Matrix:
			out := v.Copy()
			for i := range out.Rows {
				for j := range out.Rows[i] {
					out.Rows[i][j] = -out.Rows[i][j]
				}
			}
			return out, nil
		}
	case "+":
		switch v := v.(type) {
		case *Number, *UnitNumber, *Complex:
			return v, nil
		case *Array:
			return v.Copy(), nil
		case *Matrix:
			return v.Copy(), nil
		}
	case "!":
		if n, ok := v.(*Number); ok {
			return Bool(n.Value == 0), nil
		}
		return nil, Errorf(ErrType, "operator %q requires a number, got %s", op, v.Type())
	}
	return nil, Errorf(ErrType, "operator %q not supported for %s", op, v.Type())
}

func typeMismatch(op string, left, right Value) *Error {
	return Errorf(ErrType, "operator %q not supported between %s and %s", op, left.Type(), right.Type())
}
