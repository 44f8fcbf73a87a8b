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
	"dirpx.dev/lyra/apis"
)

// Accessor is a non-owning handle to the observer of one subscriber. It
// asks the registry on every call, so it never returns an observer that was
// unsubscribed. Dropping it has no effect on the registry.
type Accessor[O apis.Observer] struct {
	// reg is nil for accessors on the process-default registry.
	reg    apis.Registry
	module apis.ModuleID
	sub    apis.Subscriber
}

// Observer returns the current observer, or false once the subscriber is
// gone or unsubscribed.
func (a Accessor[O]) Observer() (O, bool) {
	var zero O
	if a.sub == nil || !a.sub.Alive() {
		return zero, false
	}
	reg := a.reg
	if reg == nil {
		reg = Registry()
	}
	o, ok := reg.Observer(a.module, a.sub.ID())
	if !ok {
		return zero, false
	}
	t, ok := o.(O)
	return t, ok
}

// Subscriber returns the weak subscriber handle.
func (a Accessor[O]) Subscriber() apis.Subscriber {
	return a.sub
}

// Module returns the module identity.
func (a Accessor[O]) Module() apis.ModuleID {
	return a.module
}
