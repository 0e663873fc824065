package minexp

import (
	"io"
	"os"
	"sort"
)

// Env is one scope frame. A child borrows its parent for lookups only.
// Frames must be created with NewEnv; the zero value is not usable.
type Env struct {
	vars map[string]int64
	fncs map[string]*Func
	env  *Env
	out  io.Writer
}

// NewEnv returns a new frame under env. A root frame (env == nil) prints to
// os.Stdout, children inherit the parent's output.
func NewEnv(env *Env) *Env {
	var out io.Writer = os.Stdout
	if env != nil {
		out = env.out
	}
	return &Env{
		vars: make(map[string]int64),
		fncs: make(map[string]*Func),
		env:  env,
		out:  out,
	}
}

// SetOutput sets where Print nodes evaluated in this frame write. Frames
// created afterwards under e inherit it.
func (e *Env) SetOutput(w io.Writer) {
	e.out = w
}

func (e *Env) Parent() *Env {
	return e.env
}

// Declare binds name in this frame only.
func (e *Env) Declare(name string, v int64) error {
	if _, ok := e.vars[name]; ok {
		return &NameError{Err: ErrDuplicateDeclaration, Name: name}
	}
	e.vars[name] = v
	return nil
}

// Assign updates the nearest frame that binds name.
func (e *Env) Assign(name string, v int64) error {
	for s := e; s != nil; s = s.env {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return nil
		}
	}
	return &NameError{Err: ErrUndefinedVariable, Name: name}
}

func (e *Env) Lookup(name string) (int64, error) {
	for s := e; s != nil; s = s.env {
		if v, ok := s.vars[name]; ok {
			return v, nil
		}
	}
	return 0, &NameError{Err: ErrUndefinedVariable, Name: name}
}

// DeclareFunc replaces the nearest existing definition of name, or adds it
// to this frame when no frame in the chain defines it. f must not be
// modified afterwards.
func (e *Env) DeclareFunc(name string, f *Func) {
	for s := e; s != nil; s = s.env {
		if _, ok := s.fncs[name]; ok {
			s.fncs[name] = f
			return
		}
	}
	e.fncs[name] = f
}

// LookupFunc returns a copy of the nearest definition of name.
func (e *Env) LookupFunc(name string) (*Func, error) {
	f, err := e.lookupFunc(name)
	if err != nil {
		return nil, err
	}
	return &Func{
		Name:   f.Name,
		Params: append([]string(nil), f.Params...),
		Body:   f.Body,
	}, nil
}

func (e *Env) lookupFunc(name string) (*Func, error) {
	for s := e; s != nil; s = s.env {
		if f, ok := s.fncs[name]; ok {
			return f, nil
		}
	}
	return nil, &NameError{Err: ErrUndefinedFunction, Name: name}
}

// Vars returns the names of variables bound in this frame, sorted.
func (e *Env) Vars() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Funcs returns the names of functions defined in this frame, sorted.
func (e *Env) Funcs() []string {
	names := make([]string, 0, len(e.fncs))
	for name := range e.fncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
