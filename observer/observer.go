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

// Package observer provides the base every module observer embeds.
//
// An observer starts unbound. The registry binds it once, stamping the
// owning module, the weak subscriber and itself as the remover. Binding is
// terminal: a revoked observer is discarded, never reset and reused.
//
//	type CounterObserver struct {
//	    observer.Base
//	    onCount func(int)
//	}
//
//	func (o *CounterObserver) NewState(n int) {
//	    if o.onCount != nil {
//	        o.onCount(n)
//	    }
//	}
package observer

import (
	"errors"
	"sync"

	"dirpx.dev/lyra/apis"
)

var (
	// ErrAlreadyBound is raised when a bound observer is bound again.
	ErrAlreadyBound = errors.New("lyra(observer): observer is already bound")
	// ErrIncompleteBinding is raised when a binding lacks its module or subscriber.
	ErrIncompleteBinding = errors.New("lyra(observer): binding needs a module and a subscriber")
)

// Base implements apis.Observer. Embed it by value in a struct and use the
// struct through a pointer.
type Base struct {
	mu    sync.RWMutex
	b     apis.Binding
	bound bool
}

// Ensure *Base implements apis.Observer.
var _ apis.Observer = (*Base)(nil)

// Bind stamps the binding. It panics if the observer is already bound.
func (o *Base) Bind(b apis.Binding) {
	if b.Module == "" || b.Subscriber == nil {
		panic(ErrIncompleteBinding)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.bound {
		panic(ErrAlreadyBound)
	}
	o.b = b
	o.bound = true
}

// Binding returns the stamped binding, or false while unbound.
func (o *Base) Binding() (apis.Binding, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.b, o.bound
}

// Module returns the identity of the owning module ("" while unbound).
func (o *Base) Module() apis.ModuleID {
	b, _ := o.Binding()
	return b.Module
}

// Subscriber returns the weak subscriber handle (nil while unbound).
func (o *Base) Subscriber() apis.Subscriber {
	b, _ := o.Binding()
	return b.Subscriber
}

// Alive reports whether the observer is bound to a reachable subscriber.
func (o *Base) Alive() bool {
	b, ok := o.Binding()
	return ok && b.Subscriber.Alive()
}

// AutoClean is run before every state delivery. When auto-clean is enabled
// and the subscriber is gone, it asks the registry to remove this
// subscription and returns false. Unbound observers are always deliverable.
func (o *Base) AutoClean() bool {
	b, ok := o.Binding()
	if !ok || !b.AutoClean || b.Subscriber.Alive() {
		return true
	}
	if b.Remover != nil {
		b.Remover.Remove(b.Module, b.Subscriber.ID())
	}
	return false
}
