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

// Package store is a small Redux-style state container.
//
// A Store owns one state value and one reducer. Dispatch runs the reducer
// under the store lock, then notifies a snapshot of the listeners outside
// it, in registration order. A listener may therefore unsubscribe itself
// (or others) or dispatch again from inside NewState. Reducers must not
// dispatch.
//
// The state starts absent (nil) unless an initial value is given; the
// reducer is responsible for producing a valid state from nil.
package store

import (
	"errors"
	"slices"
	"sync"

	"dirpx.dev/lyra/apis"
)

var (
	// ErrNilReducer is raised when a store is created without a reducer.
	ErrNilReducer = errors.New("lyra(store): nil reducer")
	// ErrNotListener is raised when an observer cannot receive the store's state type.
	ErrNotListener = errors.New("lyra(store): observer does not accept this state type")
)

// Reducer maps an action and the previous state (nil if absent) to the next state.
type Reducer[S, A any] func(action A, state *S) S

// Store holds the state of one module.
type Store[S, A any] struct {
	mu        sync.Mutex
	reducer   Reducer[S, A]
	state     *S
	listeners []apis.Listener[S]
	closed    bool
}

// New creates a store. initial may be nil.
func New[S, A any](reducer Reducer[S, A], initial *S) *Store[S, A] {
	if reducer == nil {
		panic(ErrNilReducer)
	}
	s := &Store[S, A]{reducer: reducer}
	if initial != nil {
		v := *initial
		s.state = &v
	}
	return s
}

// Dispatch reduces action into the next state and notifies every listener
// registered at the time of the call that is still registered when its turn
// comes. Dispatch on a closed store is dropped.
func (s *Store[S, A]) Dispatch(action A) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	next := s.reducer(action, s.state)
	s.state = &next
	snapshot := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range snapshot {
		if s.subscribed(l) {
			l.NewState(next)
		}
	}
}

// Subscribe registers l. Registering the same listener twice keeps one
// registration. Listeners are compared with ==, so they must be comparable
// (typically pointers).
func (s *Store[S, A]) Subscribe(l apis.Listener[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || slices.Contains(s.listeners, l) {
		return
	}
	s.listeners = append(s.listeners, l)
}

// Unsubscribe revokes l. Unknown listeners are ignored.
func (s *Store[S, A]) Unsubscribe(l apis.Listener[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.listeners, l); i >= 0 {
		s.listeners = slices.Delete(s.listeners, i, i+1)
	}
}

// State returns the current state, or false while it is absent.
func (s *Store[S, A]) State() (S, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		var zero S
		return zero, false
	}
	return *s.state, true
}

// Len returns the number of registered listeners.
func (s *Store[S, A]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Close drops all listeners; later dispatches are ignored.
func (s *Store[S, A]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = nil
	return nil
}

// subscribed reports whether l is still registered.
func (s *Store[S, A]) subscribed(l apis.Listener[S]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.listeners, l)
}
