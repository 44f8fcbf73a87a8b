/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package lyra

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/store"
)

var (
	// ErrNilReducer is raised when a module is declared without a reducer.
	ErrNilReducer = errors.New("lyra: nil reducer")
	// ErrNilFactory is raised when a module is declared without an observer factory.
	ErrNilFactory = errors.New("lyra: nil observer factory")
	// ErrObserverNotPointer is raised when a module's observer type is not a
	// pointer. Stores match observers with ==, which only pointers make safe.
	ErrObserverNotPointer = errors.New("lyra: observer type must be a pointer")
	// ErrNilObserver is raised when an observer factory returns nil.
	ErrNilObserver = errors.New("lyra: observer factory returned nil")
	// ErrNoIdentity is raised when no identity can be derived for a module key.
	ErrNoIdentity = errors.New("lyra: cannot derive module identity")
	// ErrNilModule is raised when a facade is requested for a nil module.
	ErrNilModule = errors.New("lyra: nil module")
)

// Observer is the constraint on module observers: the registry contract
// (usually through an embedded observer.Base) plus the typed state callback.
type Observer[S any] interface {
	apis.Observer
	apis.Listener[S]
}

// Module describes one module: its identity, reducer, actions namespace and
// observer factory. It implements apis.Module and is safe to share.
type Module[S, A, X any, O Observer[S]] struct {
	id          apis.ModuleID
	reducer     store.Reducer[S, A]
	actions     X
	newObserver func() O
}

// Ensure *Module implements apis.Module.
var _ apis.Module = (*Module[int, int, struct{}, Observer[int]])(nil)

// ModuleOption configures NewModule.
type ModuleOption func(*moduleOptions)

type moduleOptions struct {
	name apis.ModuleID
}

// WithName claims name for the module key type in the global catalog before
// the identity is resolved. A key that implements apis.Namer must agree.
func WithName(name apis.ModuleID) ModuleOption {
	return func(o *moduleOptions) {
		o.name = name
	}
}

// NewModule declares a module keyed by K. The identity is resolved from K
// with the global resolver and claimed in the global catalog, so two
// distinct key types never share an identity.
//
// O must be a pointer type. A nil reducer, a nil factory, a non-pointer
// observer type, an unresolvable identity or an identity owned by another
// type panics.
//
//	type Counter struct{}
//
//	var CounterModule = lyra.NewModule[Counter](reduce, CounterActions{}, NewCounterObserver)
func NewModule[K any, S, A, X any, O Observer[S]](reducer store.Reducer[S, A], actions X, newObserver func() O, opts ...ModuleOption) *Module[S, A, X, O] {
	if reducer == nil {
		panic(ErrNilReducer)
	}
	if newObserver == nil {
		panic(ErrNilFactory)
	}
	if reflect.TypeFor[O]().Kind() != reflect.Pointer {
		panic(ErrObserverNotPointer)
	}
	var o moduleOptions
	for _, opt := range opts {
		opt(&o)
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	s := st.Load()
	t := reflect.TypeFor[K]()
	if o.name != "" {
		if err := s.cat.Claim(t, o.name); err != nil {
			panic(fmt.Errorf("lyra: module %v: %w", t, err))
		}
	}
	id := s.res.ResolveType(t, s.cfg)
	if id == "" {
		panic(fmt.Errorf("%w: %v", ErrNoIdentity, t))
	}
	if err := s.cat.Claim(t, id); err != nil {
		panic(fmt.Errorf("lyra: module %v: %w", t, err))
	}

	return &Module[S, A, X, O]{
		id:          id,
		reducer:     reducer,
		actions:     actions,
		newObserver: newObserver,
	}
}

// ID returns the module identity.
func (m *Module[S, A, X, O]) ID() apis.ModuleID {
	return m.id
}

// NewStore creates a fresh store with the module reducer and absent state.
func (m *Module[S, A, X, O]) NewStore() apis.Store {
	return store.NewHandle(m.reducer)
}

// Actions returns the actions namespace.
func (m *Module[S, A, X, O]) Actions() X {
	return m.actions
}

// String returns the module identity.
func (m *Module[S, A, X, O]) String() string {
	return string(m.id)
}

// observer builds a fresh, unbound observer.
func (m *Module[S, A, X, O]) observer() O {
	o := m.newObserver()
	if v := reflect.ValueOf(o); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		panic(ErrNilObserver)
	}
	return o
}
