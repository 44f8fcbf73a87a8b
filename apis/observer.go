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

// Listener receives state-change notifications from a store.
type Listener[S any] interface {
	NewState(state S)
}

// Remover removes a single subscription by its identities. The registry hands
// itself to observers as a Remover so they can request their own removal.
type Remover interface {
	Remove(module ModuleID, subscriber SubscriberID)
}

// Binding is what the registry stamps on an observer at registration time.
type Binding struct {
	// Module is the identity of the owning module.
	Module ModuleID
	// Subscriber is the weak back-reference to the subscriber.
	Subscriber Subscriber
	// Remover is the registry that owns the subscription.
	Remover Remover
	// AutoClean enables the per-notification liveness check.
	AutoClean bool
}

// Observer is the type-erased view of a module observer. Concrete observers
// get these methods by embedding observer.Base.
type Observer interface {
	// Bind stamps identities on an unbound observer. Binding twice panics.
	Bind(b Binding)
	// Binding returns the stamped identities, or false while unbound.
	Binding() (Binding, bool)
	// AutoClean runs the liveness check. It returns false (after requesting
	// removal) when the subscriber is gone and the observer should not be
	// notified.
	AutoClean() bool
}
