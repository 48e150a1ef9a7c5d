package evaluator

import (
	"madola/internal/ast"
	"madola/internal/value"
)

func (e *Evaluator) evalExpression(expr ast.Expression) (value.Value, error) {
	switch ex := expr.(type) {
	case *ast.NumberLiteral:
		return &value.Number{Value: ex.Value}, nil

	case *ast.StringLiteral:
		return &value.Text{Value: ex.Value}, nil

	case *ast.ImaginaryLiteral:
		return &value.Complex{Im: ex.Value}, nil

	case *ast.UnitLiteral:
		return &value.UnitNumber{Value: ex.Value, Unit: ex.Unit}, nil

	case *ast.Identifier:
		v, ok := e.env.Get(ex.Value)
		if !ok {
			return nil, value.Errorf(value.ErrUndefinedName, "undefined name %s", ex.Value)
		}
		return v, nil

	case *ast.PrefixExpression:
		operand, err := e.evalExpression(ex.Right)
		if err != nil {
			return nil, err
		}
		return value.Unary(ex.Operator, operand)

	case *ast.InfixExpression:
		left, err := e.evalExpression(ex.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.evalExpression(ex.Right)
		if err != nil {
			return nil, err
		}
		return value.Binary(ex.Operator, left, right)

	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(ex)

	case *ast.IndexExpression:
		return e.evalIndexRead(ex)

	case *ast.CallExpression:
		return e.evalCall(ex)

	case *ast.MethodCallExpression:
		return e.evalMethodCall(ex)

	default:
		return nil, value.Errorf(value.ErrType, "unsupported expression %q", expr.String())
	}
}

// evalArrayLiteral builds a row vector, column vector, or matrix from a
// bracket literal. A literal whose rows each hold a single vector value
// stacks those vectors into a matrix.
func (e *Evaluator) evalArrayLiteral(lit *ast.ArrayLiteral) (value.Value, error) {
	if len(lit.Rows) == 0 {
		return &value.Array{Elements: []float64{}}, nil
	}

	grid := make([][]value.Value, len(lit.Rows))
	numeric := true
	stacked := true
	for i, row := range lit.Rows {
		grid[i] = make([]value.Value, len(row))
		if len(row) != 1 {
			stacked = false
		}
		for j, el := range row {
			v, err := e.evalExpression(el)
			if err != nil {
				return nil, err
			}
			grid[i][j] = v
			switch v.(type) {
			case *value.Number:
				stacked = false
			case *value.Array:
				numeric = false
			default:
				numeric = false
				stacked = false
			}
		}
	}

	if numeric {
		rows := make([][]float64, len(grid))
		for i, row := range grid {
			rows[i] = make([]float64, len(row))
			for j, v := range row {
				rows[i][j] = v.(*value.Number).Value
			}
		}
		switch {
		case len(rows) == 1:
			return &value.Array{Elements: rows[0]}, nil
		case allSingle(rows):
			col := make([]float64, len(rows))
			for i, row := range rows {
				col[i] = row[0]
			}
			return &value.Array{Elements: col, Column: true}, nil
		default:
			return value.NewMatrix(rows)
		}
	}

	if stacked {
		rows := make([][]float64, len(grid))
		for i, row := range grid {
			arr := row[0].(*value.Array)
			rows[i] = append([]float64(nil), arr.Elements...)
		}
		return value.NewMatrix(rows)
	}

	return nil, value.Errorf(value.ErrType, "array elements must be numbers")
}

func allSingle(rows [][]float64) bool {
	for _, row := range rows {
		if len(row) != 1 {
			return false
		}
	}
	return true
}

// evalIndexRead reads arr[i] or m[i]; matrix indexing yields the row as a
// row vector.
func (e *Evaluator) evalIndexRead(ex *ast.IndexExpression) (value.Value, error) {
	target, err := e.evalExpression(ex.Left)
	if err != nil {
		return nil, err
	}
	idx, err := e.evalIndexValue(ex.Index)
	if err != nil {
		return nil, err
	}

	switch t := target.(type) {
	case *value.Array:
		if idx >= len(t.Elements) {
			return nil, value.Errorf(value.ErrShape, "index %d out of range for array of length %d", idx, len(t.Elements))
		}
		return &value.Number{Value: t.Elements[idx]}, nil
	case *value.Matrix:
		if idx >= len(t.Rows) {
			return nil, value.Errorf(value.ErrShape, "index %d out of range for matrix with %d rows", idx, len(t.Rows))
		}
		return &value.Array{Elements: append([]float64(nil), t.Rows[idx]...)}, nil
	default:
		return nil, value.Errorf(value.ErrType, "cannot index into %s", target.Type())
	}
}
