// Package native hosts the precompiled modules the import system falls back
// to when no source module of the same name exists. Modules are assembled
// once at init; the registry is read-only during evaluation.
package native

import (
	"sort"

	"madola/internal/value"
)

// Fn is one native function. Arguments arrive fully evaluated; failures
// must be *value.Error so the interpreter's error taxonomy stays closed.
type Fn func(args []value.Value) (value.Value, error)

type Module struct {
	Name string
	fns  map[string]Fn
}

func (m *Module) Fn(name string) (Fn, bool) {
	fn, ok := m.fns[name]
	return fn, ok
}

// Functions returns the module's function names, sorted.
func (m *Module) Functions() []string {
	names := make([]string, 0, len(m.fns))
	for name := range m.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var registry = map[string]*Module{}

func register(m *Module) {
	registry[m.Name] = m
}

func Lookup(name string) (*Module, bool) {
	m, ok := registry[name]
	return m, ok
}

// Modules returns the registered module names, sorted.
func Modules() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	register(dataModule())
	register(statsModule())
}
