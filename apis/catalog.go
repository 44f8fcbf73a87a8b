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

import "reflect"

// Catalog records which module type owns which identity.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Catalog interface {
	// Claim associates a (nearest named) reflect.Type with a fixed identity.
	// Claiming the same pair twice is a no-op. Claiming an identity that is
	// owned by another type, or re-claiming a type under another identity,
	// fails.
	Claim(t reflect.Type, id ModuleID) error
	// Lookup returns the identity claimed for a type, if any.
	Lookup(t reflect.Type) (id ModuleID, ok bool)
	// Owner returns the type that claimed id, if any.
	Owner(id ModuleID) (t reflect.Type, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of claimed identities.
	Count() int
	// Reset clears all claims.
	Reset()
}

// Entry is a single (type, identity) association in a Catalog snapshot.
type Entry struct {
	// Type is the claiming reflect.Type.
	Type reflect.Type
	// ID is the claimed identity.
	ID ModuleID
}
