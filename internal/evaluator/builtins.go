package evaluator

import (
	"fmt"
	"math"
	"time"

	"madola/internal/ast"
	"madola/internal/units"
	"madola/internal/value"
)

type builtinFn func(name string, args []value.Value) (value.Value, error)

var freeBuiltins = map[string]builtinFn{
	"sqrt": builtinSqrt,
	"sin":  builtinTrig(math.Sin),
	"cos":  builtinTrig(math.Cos),
	"tan":  builtinTrig(math.Tan),
	"time": builtinTime,
	"type": builtinType,
}

// numericArg coerces a scalar argument to a float. United values must be
// dimensionless; angles convert through their radian factor, so sin(90 deg)
// is sin(pi/2).
func numericArg(name string, v value.Value) (float64, error) {
	switch v := v.(type) {
	case *value.Number:
		return v.Value, nil
	case *value.UnitNumber:
		f, ok := units.Convert(v.Value, v.Unit, "")
		if !ok {
			return 0, value.Errorf(value.ErrDimensional, "%s requires a dimensionless argument, got %q", name, v.Unit)
		}
		return f, nil
	default:
		return 0, value.Errorf(value.ErrType, "%s requires a number, got %s", name, v.Type())
	}
}

func oneNumeric(name string, args []value.Value) (float64, error) {
	if len(args) != 1 {
		return 0, value.Errorf(value.ErrArity, "%s expects 1 argument, got %d", name, len(args))
	}
	return numericArg(name, args[0])
}

func builtinSqrt(name string, args []value.Value) (value.Value, error) {
	f, err := oneNumeric(name, args)
	if err != nil {
		return nil, err
	}
	if f < 0 {
		return nil, value.Errorf(value.ErrArithmetic, "square root of negative number %s", value.FormatFloat(f))
	}
	return &value.Number{Value: math.Sqrt(f)}, nil
}

func builtinTrig(fn func(float64) float64) builtinFn {
	return func(name string, args []value.Value) (value.Value, error) {
		f, err := oneNumeric(name, args)
		if err != nil {
			return nil, err
		}
		return &value.Number{Value: fn(f)}, nil
	}
}

func builtinTime(name string, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, value.Errorf(value.ErrArity, "%s expects no arguments, got %d", name, len(args))
	}
	return &value.Number{Value: float64(time.Now().UnixNano()) / 1e9}, nil
}

func builtinType(name string, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, value.Errorf(value.ErrArity, "%s expects 1 argument, got %d", name, len(args))
	}
	return &value.Text{Value: string(args[0].Type())}, nil
}

// evalMathCall dispatches the math namespace. summation and diff are special
// forms over the unevaluated argument list; everything else evaluates its
// arguments first.
func (e *Evaluator) evalMathCall(call *ast.MethodCallExpression) (value.Value, error) {
	name := "math." + call.Method

	switch call.Method {
	case "summation":
		return e.evalSumForm(call.Arguments, name)
	case "diff":
		return e.evalDiff(call.Arguments)
	}

	args, err := e.evalArgs(call.Arguments)
	if err != nil {
		return nil, err
	}

	switch call.Method {
	case "sin":
		return builtinTrig(math.Sin)(name, args)
	case "cos":
		return builtinTrig(math.Cos)(name, args)
	case "tan":
		return builtinTrig(math.Tan)(name, args)
	case "sqrt":
		return builtinSqrt(name, args)
	case "exp":
		return builtinTrig(math.Exp)(name, args)
	case "sqr":
		f, err := oneNumeric(name, args)
		if err != nil {
			return nil, err
		}
		return &value.Number{Value: f * f}, nil
	case "abs":
		f, err := oneNumeric(name, args)
		if err != nil {
			return nil, err
		}
		return &value.Number{Value: math.Abs(f)}, nil
	case "mod":
		if len(args) != 2 {
			return nil, value.Errorf(value.ErrArity, "%s expects 2 arguments, got %d", name, len(args))
		}
		x, err := numericArg(name, args[0])
		if err != nil {
			return nil, err
		}
		y, err := numericArg(name, args[1])
		if err != nil {
			return nil, err
		}
		if y == 0 {
			return nil, value.Errorf(value.ErrArithmetic, "modulo by zero")
		}
		return &value.Number{Value: math.Mod(x, y)}, nil
	case "max":
		return mathExtreme(name, args, math.Max)
	case "min":
		return mathExtreme(name, args, math.Min)
	case "sum":
		return mathSum(name, args)
	default:
		return nil, value.Errorf(value.ErrUndefinedName, "undefined function %s", name)
	}
}

// mathExtreme folds max or min over one array or two-plus scalars.
func mathExtreme(name string, args []value.Value, fold func(float64, float64) float64) (value.Value, error) {
	if len(args) == 1 {
		arr, ok := args[0].(*value.Array)
		if !ok {
			return nil, value.Errorf(value.ErrType, "%s expects an array or at least 2 numbers", name)
		}
		if len(arr.Elements) == 0 {
			return nil, value.Errorf(value.ErrShape, "%s of an empty array", name)
		}
		acc := arr.Elements[0]
		for _, f := range arr.Elements[1:] {
			acc = fold(acc, f)
		}
		return &value.Number{Value: acc}, nil
	}
	if len(args) < 2 {
		return nil, value.Errorf(value.ErrArity, "%s expects an array or at least 2 numbers, got %d arguments", name, len(args))
	}
	acc, err := numericArg(name, args[0])
	if err != nil {
		return nil, err
	}
	for _, a := range args[1:] {
		f, err := numericArg(name, a)
		if err != nil {
			return nil, err
		}
		acc = fold(acc, f)
	}
	return &value.Number{Value: acc}, nil
}

func mathSum(name string, args []value.Value) (value.Value, error) {
	if len(args) == 1 {
		if arr, ok := args[0].(*value.Array); ok {
			total := 0.0
			for _, f := range arr.Elements {
				total += f
			}
			return &value.Number{Value: total}, nil
		}
	}
	if len(args) == 0 {
		return nil, value.Errorf(value.ErrArity, "%s expects an array or numbers, got no arguments", name)
	}
	total := 0.0
	for _, a := range args {
		f, err := numericArg(name, a)
		if err != nil {
			return nil, err
		}
		total += f
	}
	return &value.Number{Value: total}, nil
}

// evalSumForm implements sum(expr, var, lower, upper): expr is re-evaluated
// for each integer value of var over the inclusive range. The bound variable
// is restored afterwards, also when a step fails.
func (e *Evaluator) evalSumForm(args []ast.Expression, name string) (value.Value, error) {
	if len(args) != 4 {
		return nil, value.Errorf(value.ErrArity, "%s expects 4 arguments, got %d", name, len(args))
	}
	ident, ok := args[1].(*ast.Identifier)
	if !ok {
		return nil, value.Errorf(value.ErrType, "%s summation variable must be a name", name)
	}
	lo, err := e.evalIntBound(args[2], "summation start")
	if err != nil {
		return nil, err
	}
	hi, err := e.evalIntBound(args[3], "summation end")
	if err != nil {
		return nil, err
	}

	varName := ident.Value
	saved, had := e.env.Get(varName)
	defer func() {
		if had {
			e.env.Set(varName, saved)
		} else {
			e.env.Delete(varName)
		}
	}()

	total := 0.0
	for i := lo; i <= hi; i++ {
		e.env.Set(varName, &value.Number{Value: float64(i)})
		v, err := e.evalExpression(args[0])
		if err != nil {
			return nil, err
		}
		switch t := v.(type) {
		case *value.Number:
			total += t.Value
		case *value.UnitNumber:
			total += t.Value
		default:
			return nil, value.Errorf(value.ErrType, "%s term must be a number, got %s", name, v.Type())
		}
	}
	return &value.Number{Value: total}, nil
}

// evalDiff approximates d(expr)/d(var) at a point by central difference.
func (e *Evaluator) evalDiff(args []ast.Expression) (value.Value, error) {
	const name = "math.diff"
	if len(args) != 3 {
		return nil, value.Errorf(value.ErrArity, "%s expects 3 arguments, got %d", name, len(args))
	}
	ident, ok := args[1].(*ast.Identifier)
	if !ok {
		return nil, value.Errorf(value.ErrType, "%s variable must be a name", name)
	}
	atVal, err := e.evalExpression(args[2])
	if err != nil {
		return nil, err
	}
	at, err := numericArg(name, atVal)
	if err != nil {
		return nil, err
	}

	varName := ident.Value
	saved, had := e.env.Get(varName)
	defer func() {
		if had {
			e.env.Set(varName, saved)
		} else {
			e.env.Delete(varName)
		}
	}()

	h := 1e-6 * (1 + math.Abs(at))
	sample := func(x float64) (float64, error) {
		e.env.Set(varName, &value.Number{Value: x})
		v, err := e.evalExpression(args[0])
		if err != nil {
			return 0, err
		}
		return numericArg(name, v)
	}
	above, err := sample(at + h)
	if err != nil {
		return nil, err
	}
	below, err := sample(at - h)
	if err != nil {
		return nil, err
	}
	return &value.Number{Value: (above - below) / (2 * h)}, nil
}

// evalGraph collects a 2d series and returns its confirmation message.
func (e *Evaluator) evalGraph(exprs []ast.Expression) (value.Value, error) {
	args, err := e.evalArgs(exprs)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 && len(args) != 3 {
		return nil, value.Errorf(value.ErrArity, "graph expects 2 or 3 arguments, got %d", len(args))
	}
	x, ok := args[0].(*value.Array)
	if !ok {
		return nil, value.Errorf(value.ErrType, "graph x series must be an array, got %s", args[0].Type())
	}
	y, ok := args[1].(*value.Array)
	if !ok {
		return nil, value.Errorf(value.ErrType, "graph y series must be an array, got %s", args[1].Type())
	}
	if len(x.Elements) != len(y.Elements) {
		return nil, value.Errorf(value.ErrShape, "graph series must have equal length: %d vs %d", len(x.Elements), len(y.Elements))
	}
	title := ""
	if len(args) == 3 {
		t, ok := args[2].(*value.Text)
		if !ok {
			return nil, value.Errorf(value.ErrType, "graph title must be text, got %s", args[2].Type())
		}
		title = t.Value
	}

	e.result.Graphs = append(e.result.Graphs, GraphDescriptor{
		X:     append([]float64(nil), x.Elements...),
		Y:     append([]float64(nil), y.Elements...),
		Title: title,
	})

	if title != "" {
		return &value.Text{Value: fmt.Sprintf("graph generated: %s (%d points)", title, len(x.Elements))}, nil
	}
	return &value.Text{Value: fmt.Sprintf("graph generated (%d points)", len(x.Elements))}, nil
}

func (e *Evaluator) evalGraph3D(exprs []ast.Expression) (value.Value, error) {
	args, err := e.evalArgs(exprs)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, value.Errorf(value.ErrArity, "graph_3d expects a title and at least 1 series, got %d arguments", len(args))
	}
	t, ok := args[0].(*value.Text)
	if !ok {
		return nil, value.Errorf(value.ErrType, "graph_3d title must be text, got %s", args[0].Type())
	}
	dims := make([][]float64, 0, len(args)-1)
	for _, a := range args[1:] {
		arr, ok := a.(*value.Array)
		if !ok {
			return nil, value.Errorf(value.ErrType, "graph_3d series must be arrays, got %s", a.Type())
		}
		dims = append(dims, append([]float64(nil), arr.Elements...))
	}

	e.result.Graphs3D = append(e.result.Graphs3D, Graph3D{Title: t.Value, Dims: dims})
	return &value.Text{Value: "3d graph generated: " + t.Value}, nil
}

// evalTable builds a table artifact. Headers are resolved at the syntax
// level so that bare column names need no quoting: table([f, M], f, M).
func (e *Evaluator) evalTable(exprs []ast.Expression) (value.Value, error) {
	if len(exprs) < 2 {
		return nil, value.Errorf(value.ErrArity, "table expects headers and at least 1 column, got %d arguments", len(exprs))
	}
	headerLit, ok := exprs[0].(*ast.ArrayLiteral)
	if !ok {
		return nil, value.Errorf(value.ErrType, "table headers must be an array of names")
	}
	var headers []string
	for _, row := range headerLit.Rows {
		for _, el := range row {
			switch h := el.(type) {
			case *ast.StringLiteral:
				headers = append(headers, h.Value)
			case *ast.Identifier:
				headers = append(headers, h.Value)
			default:
				return nil, value.Errorf(value.ErrType, "table header must be a string or identifier")
			}
		}
	}
	if len(headers) != len(exprs)-1 {
		return nil, value.Errorf(value.ErrShape, "table has %d headers but %d columns", len(headers), len(exprs)-1)
	}

	cols := make([]Column, 0, len(exprs)-1)
	for _, colExpr := range exprs[1:] {
		v, err := e.evalExpression(colExpr)
		if err != nil {
			return nil, err
		}
		switch c := v.(type) {
		case *value.Array:
			cols = append(cols, Column{Numbers: append([]float64(nil), c.Elements...)})
		case *value.Text:
			cols = append(cols, Column{Text: c.Value, IsText: true})
		default:
			return nil, value.Errorf(value.ErrType, "table column must be an array or text, got %s", v.Type())
		}
	}

	e.result.Tables = append(e.result.Tables, Table{Headers: headers, Columns: cols})
	return &value.Text{Value: fmt.Sprintf("table generated (%d columns)", len(cols))}, nil
}
