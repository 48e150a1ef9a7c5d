package value

import (
	"madola/internal/ast"
)

// Environment is the single flat scope a program runs in: variable bindings,
// declared functions (non-owning references into the AST), piecewise
// functions, import aliases and the set of imported modules. Function calls
// snapshot it and restore the snapshot on exit, so callee bindings never
// leak back into the caller.
type Environment struct {
	vars      map[string]Value
	funcs     map[string]*ast.FunctionDeclaration
	piecewise map[string]*ast.PiecewiseFunctionDeclaration
	aliases   map[string]string
	imported  map[string]bool
}

func NewEnvironment() *Environment {
	return &Environment{
		vars:      map[string]Value{},
		funcs:     map[string]*ast.FunctionDeclaration{},
		piecewise: map[string]*ast.PiecewiseFunctionDeclaration{},
		aliases:   map[string]string{},
		imported:  map[string]bool{},
	}
}

func (e *Environment) Get(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *Environment) Set(name string, v Value) {
	e.vars[name] = v
}

func (e *Environment) Delete(name string) {
	delete(e.vars, name)
}

// Vars returns the variable bindings, for import copying.
func (e *Environment) Vars() map[string]Value {
	return e.vars
}

func (e *Environment) Function(name string) (*ast.FunctionDeclaration, bool) {
	fn, ok := e.funcs[name]
	return fn, ok
}

func (e *Environment) SetFunction(name string, fn *ast.FunctionDeclaration) {
	e.funcs[name] = fn
}

// Functions returns the declared function names, for import copying.
func (e *Environment) Functions() map[string]*ast.FunctionDeclaration {
	return e.funcs
}

func (e *Environment) Piecewise(name string) (*ast.PiecewiseFunctionDeclaration, bool) {
	fn, ok := e.piecewise[name]
	return fn, ok
}

func (e *Environment) SetPiecewise(name string, fn *ast.PiecewiseFunctionDeclaration) {
	e.piecewise[name] = fn
}

func (e *Environment) PiecewiseFunctions() map[string]*ast.PiecewiseFunctionDeclaration {
	return e.piecewise
}

func (e *Environment) SetAlias(alias, target string) {
	e.aliases[alias] = target
}

// Aliases returns the alias table, for import merging.
func (e *Environment) Aliases() map[string]string {
	return e.aliases
}

// ResolveAlias maps an import alias to the module it names; unknown names
// map to themselves.
func (e *Environment) ResolveAlias(name string) string {
	if target, ok := e.aliases[name]; ok {
		return target
	}
	return name
}

func (e *Environment) MarkImported(module string) {
	e.imported[module] = true
}

// ImportedModules lists every module marked imported, for import merging.
func (e *Environment) ImportedModules() []string {
	out := make([]string, 0, len(e.imported))
	for m := range e.imported {
		out = append(out, m)
	}
	return out
}

func (e *Environment) IsImported(module string) bool {
	return e.imported[module]
}

// Snapshot copies every map. Values are immutable, so copying the bindings
// is observably a full value-copy of the environment.
func (e *Environment) Snapshot() *Environment {
	snap := &Environment{
		vars:      make(map[string]Value, len(e.vars)),
		funcs:     make(map[string]*ast.FunctionDeclaration, len(e.funcs)),
		piecewise: make(map[string]*ast.PiecewiseFunctionDeclaration, len(e.piecewise)),
		aliases:   make(map[string]string, len(e.aliases)),
		imported:  make(map[string]bool, len(e.imported)),
	}
	for k, v := range e.vars {
		snap.vars[k] = v
	}
	for k, v := range e.funcs {
		snap.funcs[k] = v
	}
	for k, v := range e.piecewise {
		snap.piecewise[k] = v
	}
	for k, v := range e.aliases {
		snap.aliases[k] = v
	}
	for k, v := range e.imported {
		snap.imported[k] = v
	}
	return snap
}
