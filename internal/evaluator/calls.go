package evaluator

import (
	"errors"
	"strings"

	"madola/internal/ast"
	"madola/internal/linalg"
	"madola/internal/native"
	"madola/internal/value"
)

// evalCall resolves a bare name call. User declarations win over builtins;
// sum, graph, graph_3d and table receive their argument list unevaluated.
func (e *Evaluator) evalCall(call *ast.CallExpression) (value.Value, error) {
	name := call.Function.Value

	if fn, ok := e.env.Function(name); ok {
		args, err := e.evalArgs(call.Arguments)
		if err != nil {
			return nil, err
		}
		return e.callFunction(fn, args)
	}
	if pw, ok := e.env.Piecewise(name); ok {
		args, err := e.evalArgs(call.Arguments)
		if err != nil {
			return nil, err
		}
		return e.callPiecewise(pw, args)
	}

	switch name {
	case "sum":
		return e.evalSumForm(call.Arguments, "sum")
	case "graph":
		return e.evalGraph(call.Arguments)
	case "graph_3d":
		return e.evalGraph3D(call.Arguments)
	case "table":
		return e.evalTable(call.Arguments)
	}

	if fn, ok := freeBuiltins[name]; ok {
		args, err := e.evalArgs(call.Arguments)
		if err != nil {
			return nil, err
		}
		return fn(name, args)
	}

	return nil, value.Errorf(value.ErrUndefinedName, "undefined function %s", name)
}

func (e *Evaluator) evalArgs(exprs []ast.Expression) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))
	for i, a := range exprs {
		v, err := e.evalExpression(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// callFunction runs a user function against a copy of the current
// environment. The caller's control-flow state is saved around the call so
// the callee cannot leak a return or observe an enclosing loop.
func (e *Evaluator) callFunction(fn *ast.FunctionDeclaration, args []value.Value) (value.Value, error) {
	return e.invoke(fn, args, "")
}

// callModuleFunction additionally exposes the module's own declarations
// under their bare names inside the call frame, so the body's sibling calls
// resolve the way they did in the module source.
func (e *Evaluator) callModuleFunction(module string, fn *ast.FunctionDeclaration, args []value.Value) (value.Value, error) {
	return e.invoke(fn, args, module)
}

func (e *Evaluator) invoke(fn *ast.FunctionDeclaration, args []value.Value, module string) (value.Value, error) {
	if len(args) != len(fn.Parameters) {
		return nil, value.Errorf(value.ErrArity,
			"function %s expects %d arguments, got %d", fn.Name.Value, len(fn.Parameters), len(args))
	}

	savedEnv, savedSig, savedLoop := e.env, e.sig, e.loopDepth
	e.env = savedEnv.Snapshot()
	e.sig = signal{}
	e.loopDepth = 0
	e.funcDepth++
	defer func() {
		e.env = savedEnv
		e.sig = savedSig
		e.loopDepth = savedLoop
		e.funcDepth--
	}()

	if module != "" {
		e.unqualify(module)
	}
	for i, p := range fn.Parameters {
		e.env.Set(p.Value, args[i])
	}

	if err := e.evalBlock(fn.Body); err != nil {
		return nil, err
	}
	if e.sig.kind == signalReturn && e.sig.value != nil {
		return e.sig.value, nil
	}
	// a function that falls off the end returns 0.0
	return &value.Number{Value: 0}, nil
}

// callPiecewise evaluates the first case whose condition is truthy; the
// otherwise arm has a nil condition. With no matching case the result is 0.0.
func (e *Evaluator) callPiecewise(pw *ast.PiecewiseFunctionDeclaration, args []value.Value) (value.Value, error) {
	return e.invokePiecewise(pw, args, "")
}

func (e *Evaluator) callModulePiecewise(module string, pw *ast.PiecewiseFunctionDeclaration, args []value.Value) (value.Value, error) {
	return e.invokePiecewise(pw, args, module)
}

func (e *Evaluator) invokePiecewise(pw *ast.PiecewiseFunctionDeclaration, args []value.Value, module string) (value.Value, error) {
	if len(args) != len(pw.Parameters) {
		return nil, value.Errorf(value.ErrArity,
			"piecewise function %s expects %d arguments, got %d", pw.Name.Value, len(pw.Parameters), len(args))
	}

	savedEnv := e.env
	e.env = savedEnv.Snapshot()
	defer func() { e.env = savedEnv }()

	if module != "" {
		e.unqualify(module)
	}
	for i, p := range pw.Parameters {
		e.env.Set(p.Value, args[i])
	}

	for _, c := range pw.Cases {
		if c.Condition == nil {
			return e.evalExpression(c.Result)
		}
		cond, err := e.evalExpression(c.Condition)
		if err != nil {
			return nil, err
		}
		if value.Truthy(cond) {
			return e.evalExpression(c.Result)
		}
	}
	return &value.Number{Value: 0}, nil
}

// unqualify registers every declaration and binding of the given module
// under its bare name in the current call-local environment.
func (e *Evaluator) unqualify(module string) {
	prefix := module + "."

	type namedVar struct {
		name string
		v    value.Value
	}
	var vars []namedVar
	for vname, v := range e.env.Vars() {
		if strings.HasPrefix(vname, prefix) {
			vars = append(vars, namedVar{name: strings.TrimPrefix(vname, prefix), v: v})
		}
	}
	for _, nv := range vars {
		e.env.Set(nv.name, nv.v)
	}

	type namedFn struct {
		name string
		fn   *ast.FunctionDeclaration
	}
	var fns []namedFn
	for fname, f := range e.env.Functions() {
		if strings.HasPrefix(fname, prefix) {
			fns = append(fns, namedFn{name: strings.TrimPrefix(fname, prefix), fn: f})
		}
	}
	for _, nf := range fns {
		e.env.SetFunction(nf.name, nf.fn)
	}

	type namedPw struct {
		name string
		pw   *ast.PiecewiseFunctionDeclaration
	}
	var pws []namedPw
	for fname, p := range e.env.PiecewiseFunctions() {
		if strings.HasPrefix(fname, prefix) {
			pws = append(pws, namedPw{name: strings.TrimPrefix(fname, prefix), pw: p})
		}
	}
	for _, np := range pws {
		e.env.SetPiecewise(np.name, np.pw)
	}
}

// evalMethodCall resolves receiver.method(...). An identifier receiver is
// first treated as a module namespace (imports, then natives, then math);
// otherwise the receiver is evaluated and the method applies to its value.
func (e *Evaluator) evalMethodCall(call *ast.MethodCallExpression) (value.Value, error) {
	if recv, ok := call.Receiver.(*ast.Identifier); ok {
		name := e.env.ResolveAlias(recv.Value)
		qualified := name + "." + call.Method

		if fn, ok := e.env.Function(qualified); ok {
			args, err := e.evalArgs(call.Arguments)
			if err != nil {
				return nil, err
			}
			return e.callModuleFunction(name, fn, args)
		}
		if pw, ok := e.env.Piecewise(qualified); ok {
			args, err := e.evalArgs(call.Arguments)
			if err != nil {
				return nil, err
			}
			return e.callModulePiecewise(name, pw, args)
		}

		if e.env.IsImported(name) {
			if mod, ok := native.Lookup(name); ok {
				fn, ok := mod.Fn(call.Method)
				if !ok {
					return nil, value.Errorf(value.ErrImport, "module %s has no function %s", name, call.Method)
				}
				args, err := e.evalArgs(call.Arguments)
				if err != nil {
					return nil, err
				}
				return fn(args)
			}
			return nil, value.Errorf(value.ErrImport, "module %s has no function %s", name, call.Method)
		}

		if name == "math" {
			return e.evalMathCall(call)
		}
	}

	recv, err := e.evalExpression(call.Receiver)
	if err != nil {
		return nil, err
	}
	args, err := e.evalArgs(call.Arguments)
	if err != nil {
		return nil, err
	}
	return callValueMethod(recv, call.Method, args)
}

// callValueMethod applies matrix and vector methods.
func callValueMethod(recv value.Value, method string, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, value.Errorf(value.ErrArity, "%s expects no arguments, got %d", method, len(args))
	}

	if method == "T" {
		switch t := recv.(type) {
		case *value.Matrix:
			return &value.Matrix{Rows: linalg.Transpose(t.Rows)}, nil
		case *value.Array:
			out := t.Copy()
			out.Column = !out.Column
			return out, nil
		default:
			return nil, value.Errorf(value.ErrType, "T is not defined for %s", recv.Type())
		}
	}

	m, ok := recv.(*value.Matrix)
	if !ok {
		return nil, value.Errorf(value.ErrType, "%s is not defined for %s", method, recv.Type())
	}

	switch method {
	case "det":
		f, err := linalg.Det(m.Rows)
		if err != nil {
			return nil, mapLinalgErr(err)
		}
		return &value.Number{Value: f}, nil
	case "inv":
		rows, err := linalg.Inverse(m.Rows)
		if err != nil {
			return nil, mapLinalgErr(err)
		}
		return &value.Matrix{Rows: rows}, nil
	case "tr":
		f, err := linalg.Trace(m.Rows)
		if err != nil {
			return nil, mapLinalgErr(err)
		}
		return &value.Number{Value: f}, nil
	case "eigenvalues":
		vals, err := linalg.Eigenvalues(m.Rows)
		if err != nil {
			return nil, mapLinalgErr(err)
		}
		return &value.Array{Elements: vals}, nil
	case "eigenvectors":
		rows, err := linalg.Eigenvectors(m.Rows)
		if err != nil {
			return nil, mapLinalgErr(err)
		}
		return &value.Matrix{Rows: rows}, nil
	default:
		return nil, value.Errorf(value.ErrType, "unknown method %s for %s", method, recv.Type())
	}
}

func mapLinalgErr(err error) error {
	kind := value.ErrArithmetic
	if errors.Is(err, linalg.ErrEmpty) || errors.Is(err, linalg.ErrNotSquare) {
		kind = value.ErrShape
	}
	return value.Errorf(kind, "%s", err.Error())
}
