package evaluator

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"madola/internal/ast"
	"madola/internal/lexer"
	"madola/internal/native"
	"madola/internal/parser"
	"madola/internal/value"
)

// evalImportStatement loads a module once; re-imports are no-ops. A source
// file under the root path wins over a native module of the same name.
func (e *Evaluator) evalImportStatement(s *ast.ImportStatement) error {
	name := s.Module.Value
	if s.Alias != nil {
		e.env.SetAlias(s.Alias.Value, name)
	}
	if e.env.IsImported(name) {
		return nil
	}

	path := filepath.Join(e.rootPath, name+".mad")
	src, err := os.ReadFile(path)
	if err == nil {
		return e.importSource(name, path, string(src))
	}
	if !os.IsNotExist(err) {
		return value.Errorf(value.ErrImport, "cannot read module %s: %v", name, err)
	}

	if _, ok := native.Lookup(name); ok {
		e.env.MarkImported(name)
		slog.Debug("imported native module", "module", name)
		return nil
	}
	return value.Errorf(value.ErrImport, "module %s not found", name)
}

// importSource parses and evaluates a module in an isolated sub-evaluator,
// then copies its declarations into the importer under qualified names. The
// module program outlives the call because the environment keeps references
// into its subtrees.
func (e *Evaluator) importSource(name, path, src string) error {
	l := lexer.New(src)
	p := parser.New(l, src)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return value.Errorf(value.ErrImport, "module %s has %d parse errors, first: %s", name, len(errs), errs[0])
	}

	sub := New(e.rootPath)
	res := sub.Evaluate(program)
	if !res.Success {
		return value.Errorf(value.ErrImport, "module %s failed to load: %s", name, res.Error)
	}

	// the module's own declarations are exported under its name; entries that
	// are already qualified came from the module's imports and keep their
	// original prefix, so its function bodies still resolve them at call time
	for fname, fn := range sub.env.Functions() {
		if strings.Contains(fname, ".") {
			e.env.SetFunction(fname, fn)
			continue
		}
		e.env.SetFunction(name+"."+fname, fn)
	}
	// module-level bindings travel the same way; a qualified name cannot be
	// written as an identifier, so they are only reachable through unqualify
	// inside the module's own calls
	for vname, v := range sub.env.Vars() {
		if strings.Contains(vname, ".") {
			e.env.Set(vname, v)
			continue
		}
		e.env.Set(name+"."+vname, v)
	}
	for fname, pw := range sub.env.PiecewiseFunctions() {
		if strings.Contains(fname, ".") {
			e.env.SetPiecewise(fname, pw)
			continue
		}
		e.env.SetPiecewise(name+"."+fname, pw)
	}
	for _, mod := range sub.env.ImportedModules() {
		e.env.MarkImported(mod)
	}
	for alias, target := range sub.env.Aliases() {
		e.env.SetAlias(alias, target)
	}
	e.modules = append(e.modules, program)
	e.env.MarkImported(name)
	slog.Debug("imported source module", "module", name, "path", path)
	return nil
}
