package solver

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownSolver = errors.New("solver: unknown solver")

type Registry struct {
	solvers map[string]func() FieldSolver
}

func NewRegistry() *Registry {
	r := &Registry{
		solvers: make(map[string]func() FieldSolver),
	}

	r.solvers["none"] = func() FieldSolver { return NewNone() }
	r.solvers["ideal"] = func() FieldSolver { return NewIdeal() }

	return r
}

func (r *Registry) Register(name string, fn func() FieldSolver) {
	r.solvers[name] = fn
}

func (r *Registry) Get(name string) (FieldSolver, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownSolver, name, r.List())
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
