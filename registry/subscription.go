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

package registry

import (
	"time"

	"github.com/google/uuid"

	"dirpx.dev/lyra/apis"
)

// Subscription binds one subscriber to its observer within one module.
// The registry owns the observer; the store only holds a registration that
// is revoked when the subscription goes away.
type Subscription struct {
	// ID labels the subscription in logs. A replaced subscription gets a new ID.
	ID uuid.UUID
	// Module is the owning module.
	Module apis.ModuleID
	// Subscriber is the weak subscriber handle.
	Subscriber apis.Subscriber
	// Observer receives the module's state changes.
	Observer apis.Observer
	// Created is when the subscription was made.
	Created time.Time

	// seq orders snapshots by subscription order.
	seq uint64
}

// Stale reports whether the subscriber is gone.
func (s Subscription) Stale() bool {
	return !s.Subscriber.Alive()
}
