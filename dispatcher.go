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

	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/store"
	"dirpx.dev/lyra/subscriber"
)

var (
	// ErrForeignStore is raised when a registry hands back a store that was
	// not created by the module.
	ErrForeignStore = errors.New("lyra: store does not belong to module")
	// ErrNoRegistry is raised when a facade is requested on a nil registry.
	ErrNoRegistry = errors.New("lyra: nil registry")
)

// Dispatcher is the typed facade of one module. It holds the module
// descriptor and, when built by LookupIn, the injected registry; copies are
// cheap.
type Dispatcher[S, A, X any, O Observer[S]] struct {
	// reg is nil for facades on the process-default registry.
	reg apis.Registry
	m   *Module[S, A, X, O]
}

// Lookup returns the facade of m on the process-default registry. The
// registry is loaded on every call, so a facade kept in a variable follows
// SetRegistry and reconfiguration.
func Lookup[S, A, X any, O Observer[S]](m *Module[S, A, X, O]) Dispatcher[S, A, X, O] {
	if m == nil {
		panic(ErrNilModule)
	}
	return Dispatcher[S, A, X, O]{m: m}
}

// LookupIn returns the facade of m on reg.
func LookupIn[S, A, X any, O Observer[S]](reg apis.Registry, m *Module[S, A, X, O]) Dispatcher[S, A, X, O] {
	if reg == nil {
		panic(ErrNoRegistry)
	}
	if m == nil {
		panic(ErrNilModule)
	}
	return Dispatcher[S, A, X, O]{reg: reg, m: m}
}

// Ref returns a weak subscriber handle for p. It does not keep p alive.
func Ref[T any](p *T) apis.Subscriber {
	return subscriber.Of(p)
}

// Module returns the module identity.
func (d Dispatcher[S, A, X, O]) Module() apis.ModuleID {
	return d.m.id
}

// Action dispatches the action built by fn from the module's actions
// namespace. The store is created if needed. Every registered observer is
// notified before Action returns.
func (d Dispatcher[S, A, X, O]) Action(fn func(X) A) {
	d.store().Dispatch(fn(d.m.actions))
}

// Subscribe subscribes sub and returns an accessor to its observer. An
// existing subscription is kept. Concurrent calls for the same subscriber
// agree on one observer; a losing call's observer is discarded unbound.
func (d Dispatcher[S, A, X, O]) Subscribe(sub apis.Subscriber) Accessor[O] {
	reg := d.registry()
	if !reg.ContainsSubscriber(d.m.id, sub.ID()) {
		reg.SubscribeIfAbsent(d.m, sub, d.m.observer())
	}
	return Accessor[O]{reg: d.reg, module: d.m.id, sub: sub}
}

// Unsubscribe removes the subscription of sub. Absent subscriptions are ignored.
func (d Dispatcher[S, A, X, O]) Unsubscribe(sub apis.Subscriber) {
	d.registry().Unsubscribe(d.m, sub)
}

// ForEach calls fn with the observer of every live subscriber, in
// subscription order, and removes the subscriptions of subscribers that are
// gone. fn may subscribe or unsubscribe.
func (d Dispatcher[S, A, X, O]) ForEach(fn func(O)) {
	reg := d.registry()
	for _, p := range reg.Observers(d.m.id) {
		if !p.Subscriber.Alive() {
			reg.Remove(d.m.id, p.Subscriber.ID())
			continue
		}
		if o, ok := p.Observer.(O); ok {
			fn(o)
		}
	}
}

// Observe returns the observer subscribed for sub.
func (d Dispatcher[S, A, X, O]) Observe(sub apis.Subscriber) (O, bool) {
	var zero O
	o, ok := d.registry().Observer(d.m.id, sub.ID())
	if !ok {
		return zero, false
	}
	t, ok := o.(O)
	return t, ok
}

// Contains reports whether sub is subscribed.
func (d Dispatcher[S, A, X, O]) Contains(sub apis.Subscriber) bool {
	return d.registry().ContainsSubscriber(d.m.id, sub.ID())
}

// Subscribed reports whether the module has at least one subscription.
func (d Dispatcher[S, A, X, O]) Subscribed() bool {
	return d.registry().Contains(d.m.id)
}

// State returns the current state. It reports false while no store exists
// or no action has been dispatched; it never creates a store.
func (d Dispatcher[S, A, X, O]) State() (S, bool) {
	st, ok := d.registry().LookupStore(d.m.id)
	if !ok {
		var zero S
		return zero, false
	}
	return handle[S, A](st, d.m.id).Store().State()
}

// registry returns the injected registry or the current default one.
func (d Dispatcher[S, A, X, O]) registry() apis.Registry {
	if d.reg != nil {
		return d.reg
	}
	return Registry()
}

func (d Dispatcher[S, A, X, O]) store() *store.Store[S, A] {
	return handle[S, A](d.registry().Store(d.m), d.m.id).Store()
}

func handle[S, A any](st apis.Store, id apis.ModuleID) *store.Handle[S, A] {
	h, ok := st.(*store.Handle[S, A])
	if !ok {
		panic(fmt.Errorf("%w: %s got %T", ErrForeignStore, id, st))
	}
	return h
}
