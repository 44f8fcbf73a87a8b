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

package catalog

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/config"
	uref "dirpx.dev/lyra/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("lyra(catalog): nil reflect.Type provided")
	// ErrEmptyID is returned when an empty identity is provided.
	ErrEmptyID = errors.New("lyra(catalog): empty module identity provided")
	// ErrConflictingClaim indicates an attempt to re-claim a type under a
	// different identity.
	ErrConflictingClaim = errors.New("lyra(catalog): type already claimed under another identity")
	// ErrIdentityTaken indicates that the identity is already owned by a
	// different module type.
	ErrIdentityTaken = errors.New("lyra(catalog): identity already claimed by another type")
)

// New constructs a Catalog that normalizes types according to cfg.
// Only MaxUnwrap and MapPreferElem are used here.
func New(cfg apis.Config) apis.Catalog {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &catalog{cfg: cfg}
}

// catalog is a simple Catalog implementation backed by sync.Map.
type catalog struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// byType maps reflect.Type to its claimed identity.
	byType sync.Map // map[reflect.Type]apis.ModuleID
	// byID maps an identity back to its owning type.
	byID sync.Map // map[apis.ModuleID]reflect.Type
	// count tracks the number of claims.
	count int
}

// Claim associates the nearest named type of t with id.
// It is idempotent for the same (type,id) pair.
func (c *catalog) Claim(t reflect.Type, id apis.ModuleID) error {
	if t == nil {
		return ErrNilType
	}
	if id == "" {
		return ErrEmptyID
	}

	b, err := uref.Normalize(t, c.cfg)
	if err != nil {
		return err
	}

	// Fast read path: idempotency / conflict check without locking.
	if done, err := c.check(b, id); done {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if done, err := c.check(b, id); done {
		return err
	}

	c.byType.Store(b, id)
	c.byID.Store(id, b)
	c.count++
	return nil
}

// check reports whether the claim of (b, id) is already decided, and how.
func (c *catalog) check(b reflect.Type, id apis.ModuleID) (bool, error) {
	if old, ok := c.byType.Load(b); ok {
		if old.(apis.ModuleID) == id {
			return true, nil
		}
		return true, ErrConflictingClaim
	}
	if _, ok := c.byID.Load(id); ok {
		return true, ErrIdentityTaken
	}
	return false, nil
}

// Lookup returns the identity claimed for a type, if any.
func (c *catalog) Lookup(t reflect.Type) (apis.ModuleID, bool) {
	if t == nil {
		return "", false
	}
	nt, err := uref.Normalize(t, c.cfg)
	if err != nil {
		return "", false
	}
	if v, ok := c.byType.Load(nt); ok {
		return v.(apis.ModuleID), true
	}
	return "", false
}

// Owner returns the type that claimed id, if any.
func (c *catalog) Owner(id apis.ModuleID) (reflect.Type, bool) {
	if v, ok := c.byID.Load(id); ok {
		return v.(reflect.Type), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (c *catalog) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, c.Count())
	c.byType.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type: key.(reflect.Type),
			ID:   value.(apis.ModuleID),
		})
		return true
	})
	return entries
}

// Count returns the number of claims.
func (c *catalog) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Reset clears all claims.
func (c *catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byType.Range(func(k, _ any) bool {
		c.byType.Delete(k)
		return true
	})
	c.byID.Range(func(k, _ any) bool {
		c.byID.Delete(k)
		return true
	})
	c.count = 0
}
