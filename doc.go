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

// Package lyra is a module-scoped subscription registry.
//
// A module is a unit that owns one state type, one action type, one actions
// namespace and one observer type. Independent modules are declared once,
// looked up through a typed facade, subscribed to and dispatched into. For
// each module identity the registry keeps a store, created on first use and
// released with the last subscription, and a set of subscriptions that tie a
// weakly held subscriber to its observer.
//
// # Declaring a module
//
//	type Counter struct{}
//
//	type CounterAction int
//
//	const Increment CounterAction = 1
//
//	type CounterActions struct{}
//
//	func (CounterActions) Increment() CounterAction { return Increment }
//
//	type CounterObserver struct {
//	    observer.Base
//	    OnCount func(int)
//	}
//
//	func (o *CounterObserver) NewState(n int) {
//	    if o.OnCount != nil {
//	        o.OnCount(n)
//	    }
//	}
//
//	func reduce(a CounterAction, n *int) int {
//	    v := 0
//	    if n != nil {
//	        v = *n
//	    }
//	    if a == Increment {
//	        v++
//	    }
//	    return v
//	}
//
//	var CounterModule = lyra.NewModule[Counter](reduce, CounterActions{},
//	    func() *CounterObserver { return &CounterObserver{} })
//
// The identity of a module comes from its key type K:
//
//  1. If K implements apis.Namer, K.ModuleName() is used.
//  2. If the catalog holds an explicit name for K (see WithName), that is used.
//  3. Otherwise the fully qualified type name, with type arguments, is used.
//
// NewModule claims the identity in the global catalog, so two distinct key
// types never share one.
//
// # Using a module
//
//	counter := lyra.Lookup(CounterModule)
//
//	acc := counter.Subscribe(lyra.Ref(view))
//	if o, ok := acc.Observer(); ok {
//	    o.OnCount = view.Render
//	}
//	counter.Action(CounterActions.Increment)
//
// Subscribers are held weakly: the registry never keeps a view alive. A
// subscription whose subscriber was collected is reclaimed the next time
// ForEach runs over the module, or, with auto-clean enabled (the default),
// on the next state delivery. Unsubscribing the last subscriber releases the
// store, so a later subscription starts from a fresh state.
//
// # Global state
//
// Lookup uses the process-default registry. Like the configuration, builder,
// catalog and resolver it lives in an immutable snapshot behind an atomic
// pointer: readers load it without locking, writers (SetConfig, SetBuilder,
// SetRegistry, SetAll) build a new snapshot under a mutex and swap it in.
// SetRegistry pins the registry so reconfiguration does not replace it.
//
// Programs that prefer explicit wiring construct a registry themselves
// (registry.New, or the lyrafx module) and use LookupIn.
//
// # Concurrency
//
// The registry and the reference store are safe for concurrent use, but the
// model is the one of a UI thread: notification is synchronous, observers
// run on the dispatching goroutine and reducers must not dispatch.
package lyra
