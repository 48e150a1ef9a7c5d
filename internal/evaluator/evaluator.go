// Package evaluator walks a parsed program, manages the environment and
// control-flow signals, and collects console output and presentation
// artifacts into a Result.
package evaluator

import (
	"log/slog"

	"madola/internal/ast"
	"madola/internal/value"
)

// Version is the language version this interpreter accepts; @version
// declarations must match it exactly.
const Version = "0.01"

type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
	signalBreak
)

// signal is the explicit control-flow state threaded through statement
// execution. It is saved and restored around every function call so a
// callee's return or break can never leak into the caller.
type signal struct {
	kind  signalKind
	value value.Value
}

type Evaluator struct {
	env      *value.Environment
	result   *Result
	sig      signal
	rootPath string

	funcDepth int
	loopDepth int

	// imported programs are kept alive because the environment holds
	// non-owning references into their declaration subtrees
	modules []*ast.Program
}

// New creates an evaluator with an empty environment. rootPath is the
// directory searched for imported source modules.
func New(rootPath string) *Evaluator {
	return &Evaluator{
		env:      value.NewEnvironment(),
		rootPath: rootPath,
	}
}

// Env exposes the environment for the REPL and tests.
func (e *Evaluator) Env() *value.Environment {
	return e.env
}

// Evaluate runs a complete program. The first statement other than comments
// must be a matching @version declaration; evaluation stops at the first
// error.
func (e *Evaluator) Evaluate(program *ast.Program) *Result {
	e.result = &Result{Success: true}
	e.sig = signal{}

	if err := checkVersion(program); err != nil {
		return e.fail(err)
	}

	for _, stmt := range program.Statements {
		if err := e.evalStatement(stmt); err != nil {
			return e.fail(err)
		}
	}
	return e.result
}

// EvaluateStatements runs statements against the persistent environment
// without requiring a version declaration. The REPL uses it.
func (e *Evaluator) EvaluateStatements(statements []ast.Statement) *Result {
	e.result = &Result{Success: true}
	e.sig = signal{}

	for _, stmt := range statements {
		if err := e.evalStatement(stmt); err != nil {
			return e.fail(err)
		}
	}
	return e.result
}

func (e *Evaluator) fail(err error) *Result {
	slog.Debug("evaluation failed", "error", err)
	e.result.Success = false
	e.result.Error = err.Error()
	e.sig = signal{}
	return e.result
}

func checkVersion(program *ast.Program) error {
	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.CommentStatement:
			continue
		case *ast.VersionStatement:
			if s.Version != Version {
				return value.Errorf(value.ErrParseVersion,
					"unsupported version %s, this interpreter supports %s", s.Version, Version)
			}
			return nil
		default:
			return value.Errorf(value.ErrParseVersion,
				"the program must declare @version %s before any other statement", Version)
		}
	}
	return value.Errorf(value.ErrParseVersion,
		"the program must declare @version %s", Version)
}

func (e *Evaluator) evalStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VersionStatement, *ast.CommentStatement, *ast.SkipStatement,
		*ast.HeadingStatement, *ast.ParagraphStatement:
		// presentation statements; renderers consume them from the AST
		return nil

	case *ast.DecoratedStatement:
		return e.evalStatement(s.Statement)

	case *ast.AssignmentStatement:
		v, err := e.evalExpression(s.Value)
		if err != nil {
			return err
		}
		e.env.Set(s.Name.Value, v)
		return nil

	case *ast.ArrayAssignmentStatement:
		return e.evalArrayAssignment(s)

	case *ast.PrintStatement:
		v, err := e.evalExpression(s.Value)
		if err != nil {
			return err
		}
		e.result.Outputs = append(e.result.Outputs, v.Inspect())
		return nil

	case *ast.ExpressionStatement:
		v, err := e.evalExpression(s.Expression)
		if err != nil {
			return err
		}
		// only string-valued bare expressions are surfaced
		if t, ok := v.(*value.Text); ok {
			e.result.Outputs = append(e.result.Outputs, t.Value)
		}
		return nil

	case *ast.FunctionDeclaration:
		e.env.SetFunction(s.Name.Value, s)
		return nil

	case *ast.PiecewiseFunctionDeclaration:
		e.env.SetPiecewise(s.Name.Value, s)
		return nil

	case *ast.ReturnStatement:
		if e.funcDepth == 0 {
			return value.Errorf(value.ErrControlFlow, "return outside of function")
		}
		var v value.Value = &value.Number{Value: 0}
		if s.ReturnValue != nil {
			var err error
			v, err = e.evalExpression(s.ReturnValue)
			if err != nil {
				return err
			}
		}
		e.sig = signal{kind: signalReturn, value: v}
		return nil

	case *ast.BreakStatement:
		if e.loopDepth == 0 {
			return value.Errorf(value.ErrControlFlow, "break outside of loop")
		}
		e.sig = signal{kind: signalBreak}
		return nil

	case *ast.IfStatement:
		return e.evalIfStatement(s)

	case *ast.ForStatement:
		return e.evalForStatement(s)

	case *ast.WhileStatement:
		return e.evalWhileStatement(s)

	case *ast.ImportStatement:
		return e.evalImportStatement(s)

	case *ast.BlockStatement:
		return e.evalBlock(s)

	default:
		return value.Errorf(value.ErrType, "unsupported statement %q", stmt.TokenLiteral())
	}
}

// evalBlock runs statements until the end, an error, or a raised signal.
func (e *Evaluator) evalBlock(block *ast.BlockStatement) error {
	for _, stmt := range block.Statements {
		if err := e.evalStatement(stmt); err != nil {
			return err
		}
		if e.sig.kind != signalNone {
			return nil
		}
	}
	return nil
}

func (e *Evaluator) evalIfStatement(s *ast.IfStatement) error {
	cond, err := e.evalExpression(s.Condition)
	if err != nil {
		return err
	}
	if value.Truthy(cond) {
		return e.evalBlock(s.Consequence)
	}
	if s.Alternative != nil {
		return e.evalBlock(s.Alternative)
	}
	return nil
}

func (e *Evaluator) evalForStatement(s *ast.ForStatement) error {
	from, err := e.evalIntBound(s.From, "loop start")
	if err != nil {
		return err
	}
	to, err := e.evalIntBound(s.To, "loop end")
	if err != nil {
		return err
	}

	name := s.Var.Value
	saved, had := e.env.Get(name)
	e.loopDepth++
	defer func() {
		e.loopDepth--
		if had {
			e.env.Set(name, saved)
		} else {
			e.env.Delete(name)
		}
	}()

	for i := from; i <= to; i++ {
		e.env.Set(name, &value.Number{Value: float64(i)})
		if err := e.evalBlock(s.Body); err != nil {
			return err
		}
		if e.sig.kind == signalBreak {
			e.sig = signal{}
			break
		}
		if e.sig.kind == signalReturn {
			break
		}
	}
	return nil
}

func (e *Evaluator) evalWhileStatement(s *ast.WhileStatement) error {
	e.loopDepth++
	defer func() { e.loopDepth-- }()

	for {
		cond, err := e.evalExpression(s.Condition)
		if err != nil {
			return err
		}
		if !value.Truthy(cond) {
			return nil
		}
		if err := e.evalBlock(s.Body); err != nil {
			return err
		}
		if e.sig.kind == signalBreak {
			e.sig = signal{}
			return nil
		}
		if e.sig.kind == signalReturn {
			return nil
		}
	}
}

func (e *Evaluator) evalArrayAssignment(s *ast.ArrayAssignmentStatement) error {
	idx, err := e.evalIndexValue(s.Index)
	if err != nil {
		return err
	}

	v, err := e.evalExpression(s.Value)
	if err != nil {
		return err
	}
	n, ok := v.(*value.Number)
	if !ok {
		return value.Errorf(value.ErrType, "array elements must be numbers, got %s", v.Type())
	}

	var arr *value.Array
	if existing, bound := e.env.Get(s.Name.Value); bound {
		prev, isArray := existing.(*value.Array)
		if !isArray {
			return value.Errorf(value.ErrType, "cannot assign by index into %s", existing.Type())
		}
		arr = prev.Copy()
	} else {
		// fresh arrays created by indexed assignment are column vectors
		arr = &value.Array{Column: true}
	}

	for len(arr.Elements) <= idx {
		arr.Elements = append(arr.Elements, 0)
	}
	arr.Elements[idx] = n.Value
	e.env.Set(s.Name.Value, arr)
	return nil
}

// evalIntBound evaluates a range endpoint, requiring an integer-valued
// Number.
func (e *Evaluator) evalIntBound(expr ast.Expression, what string) (int, error) {
	v, err := e.evalExpression(expr)
	if err != nil {
		return 0, err
	}
	n, ok := v.(*value.Number)
	if !ok {
		return 0, value.Errorf(value.ErrType, "%s must be a number, got %s", what, v.Type())
	}
	i := int(n.Value)
	if float64(i) != n.Value {
		return 0, value.Errorf(value.ErrType, "%s must be an integer, got %s", what, value.FormatFloat(n.Value))
	}
	return i, nil
}

// evalIndexValue evaluates an index expression, requiring a non-negative
// integer-valued Number.
func (e *Evaluator) evalIndexValue(expr ast.Expression) (int, error) {
	v, err := e.evalExpression(expr)
	if err != nil {
		return 0, err
	}
	n, ok := v.(*value.Number)
	if !ok {
		return 0, value.Errorf(value.ErrType, "array index must be a number, got %s", v.Type())
	}
	i := int(n.Value)
	if float64(i) != n.Value {
		return 0, value.Errorf(value.ErrType, "array index must be an integer, got %s", value.FormatFloat(n.Value))
	}
	if i < 0 {
		return 0, value.Errorf(value.ErrType, "array index must not be negative, got %d", i)
	}
	return i, nil
}
