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

// Store is the type-erased handle of the state container backing one module.
// Typed dispatch happens at the facade, where the concrete store type is known.
type Store interface {
	// Subscribe registers o as a listener.
	Subscribe(o Observer)
	// Unsubscribe revokes the registration of o. Unknown observers are ignored.
	Unsubscribe(o Observer)
}

// Module is the type-erased descriptor of a module: its identity and the
// factory for its store.
type Module interface {
	// ID returns the identity of the module.
	ID() ModuleID
	// NewStore creates a fresh store with the module reducer and an absent
	// initial state.
	NewStore() Store
}

// Registry maps module identities to subscription sets and store handles.
// Absence is reported with false/nil results, never with an error.
type Registry interface {
	Remover

	// Contains reports whether the module has at least one subscription.
	Contains(module ModuleID) bool
	// ContainsSubscriber reports whether the pair has a live subscription.
	ContainsSubscriber(module ModuleID, subscriber SubscriberID) bool
	// Subscribe binds o to (m, sub), replacing any previous subscription for
	// the pair, and registers o with the module store (created on demand).
	Subscribe(m Module, sub Subscriber, o Observer)
	// SubscribeIfAbsent subscribes o only if the pair has no subscription,
	// atomically. It returns the subscribed observer and whether it is o.
	SubscribeIfAbsent(m Module, sub Subscriber, o Observer) (Observer, bool)
	// Unsubscribe removes the subscription for (m, sub). Removing the last
	// subscription releases the module store.
	Unsubscribe(m Module, sub Subscriber)
	// Observer returns the observer subscribed for the pair.
	Observer(module ModuleID, subscriber SubscriberID) (Observer, bool)
	// Store returns the module store, creating it if absent.
	Store(m Module) Store
	// LookupStore returns the module store without creating it.
	LookupStore(module ModuleID) (Store, bool)
	// Observers returns a snapshot of the module's (subscriber, observer) pairs.
	Observers(module ModuleID) []Pair
	// Len returns the number of modules with at least one subscription.
	Len() int
	// Close tears every module down and releases all stores.
	Close() error
}

// Pair is one (subscriber, observer) association in a Registry snapshot.
type Pair struct {
	Subscriber Subscriber
	Observer   Observer
}
