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

package apis

// ModuleID is the stable identity of a module type. It is the sole key of
// both registry maps.
type ModuleID string

// String implements fmt.Stringer.
func (id ModuleID) String() string { return string(id) }

// Namer lets a module key type choose its own identity instead of the
// reflect-derived one.
//
//	type counterKey struct{}
//
//	func (counterKey) ModuleName() string { return "app.counter" }
type Namer interface {
	ModuleName() string
}

// SubscriberID is a comparable token for the reference identity of a
// subscriber. Two tokens are equal iff they were derived from the same object.
// The zero value identifies no subscriber.
type SubscriberID struct {
	key any
}

// NewSubscriberID wraps a comparable identity key. Keys derived from
// different objects must compare unequal.
func NewSubscriberID(key any) SubscriberID {
	return SubscriberID{key: key}
}

// IsZero reports whether id identifies no subscriber.
func (id SubscriberID) IsZero() bool { return id.key == nil }

// Subscriber is a non-owning handle to a subscriber object.
// Holding a Subscriber never keeps the underlying object alive.
type Subscriber interface {
	// ID returns the reference identity of the subscriber. It stays stable
	// (and unique) even after the object has been collected.
	ID() SubscriberID
	// Alive reports whether the subscriber is still reachable.
	Alive() bool
	// String returns a label for diagnostics.
	String() string
}
