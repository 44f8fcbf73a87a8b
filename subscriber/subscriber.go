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

// Package subscriber provides non-owning subscriber handles.
//
// A handle holds a weak.Pointer to the subscriber object, so registering it
// anywhere in lyra never extends the object's lifetime. Identity is the
// identity of the pointer, not the value it points to.
package subscriber

import (
	"errors"
	"fmt"
	"weak"

	"dirpx.dev/lyra/apis"
)

// ErrNilSubscriber is raised when a nil pointer is used as a subscriber.
var ErrNilSubscriber = errors.New("lyra(subscriber): nil subscriber")

// Of returns a weak handle to p. Handles built from the same pointer have
// equal IDs. Of panics if p is nil.
func Of[T any](p *T) apis.Subscriber {
	if p == nil {
		panic(ErrNilSubscriber)
	}
	return ref[T]{
		wp:    weak.Make(p),
		label: fmt.Sprintf("%T(%p)", p, p),
	}
}

// Get recovers the subscriber object behind s. It returns false once the
// object has been collected, or if s does not point to a T.
func Get[T any](s apis.Subscriber) (*T, bool) {
	r, ok := s.(ref[T])
	if !ok {
		return nil, false
	}
	p := r.wp.Value()
	return p, p != nil
}

// ref is a weak subscriber handle.
type ref[T any] struct {
	wp    weak.Pointer[T]
	label string
}

// Ensure ref implements apis.Subscriber.
var _ apis.Subscriber = ref[struct{}]{}

// ID returns the weak pointer itself as the identity key: weak pointers made
// from the same object compare equal, even after it is gone.
func (r ref[T]) ID() apis.SubscriberID {
	return apis.NewSubscriberID(r.wp)
}

// Alive reports whether the object is still reachable.
func (r ref[T]) Alive() bool {
	return r.wp.Value() != nil
}

// String returns the type and the address the handle was created from.
func (r ref[T]) String() string {
	return r.label
}
