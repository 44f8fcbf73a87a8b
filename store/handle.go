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

package store

import (
	"dirpx.dev/lyra/apis"
)

// Handle adapts a Store to the type-erased apis.Store kept by the registry.
type Handle[S, A any] struct {
	store *Store[S, A]
}

// Ensure Handle implements apis.Store.
var _ apis.Store = (*Handle[int, int])(nil)

// NewHandle creates a store with an absent initial state, wrapped in a Handle.
func NewHandle[S, A any](reducer Reducer[S, A]) *Handle[S, A] {
	return &Handle[S, A]{store: New(reducer, nil)}
}

// Store returns the typed store.
func (h *Handle[S, A]) Store() *Store[S, A] {
	return h.store
}

// Subscribe registers o. The observer must also be an apis.Listener[S];
// anything else is a programming error and panics.
func (h *Handle[S, A]) Subscribe(o apis.Observer) {
	h.store.Subscribe(guard[S](o))
}

// Unsubscribe revokes the registration of o.
func (h *Handle[S, A]) Unsubscribe(o apis.Observer) {
	h.store.Unsubscribe(guard[S](o))
}

// Close closes the underlying store.
func (h *Handle[S, A]) Close() error {
	return h.store.Close()
}

// guard wraps o so that its auto-clean check runs before every delivery.
func guard[S any](o apis.Observer) apis.Listener[S] {
	l, ok := o.(apis.Listener[S])
	if !ok {
		panic(ErrNotListener)
	}
	return guarded[S]{o: o, l: l}
}

// guarded is comparable: two guards over the same observer are equal, which
// is what Unsubscribe relies on.
type guarded[S any] struct {
	o apis.Observer
	l apis.Listener[S]
}

// NewState forwards state unless the observer's subscriber is gone.
func (g guarded[S]) NewState(state S) {
	if g.o.AutoClean() {
		g.l.NewState(state)
	}
}
