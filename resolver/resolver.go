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

// Package resolver turns module key types into module identities.
//
// A resolver is an ordered chain of strategies. The first strategy that
// claims a key decides its identity, even when that identity is empty: the
// reflect fallback claims every type and reports "" for keys that cannot
// name a module (builtins, anonymous types), which NewModule rejects.
package resolver

import (
	"reflect"

	"dirpx.dev/lyra/apis"
)

// New chains strategies in priority order, usually
// Namer -> Catalog -> Reflect. Nil strategies are dropped. The chain is
// immutable and safe for concurrent use when its strategies are.
func New(strategies ...apis.Strategy) apis.Resolver {
	c := chain{strats: make([]apis.Strategy, 0, len(strategies))}
	for _, s := range strategies {
		if s != nil {
			c.strats = append(c.strats, s)
		}
	}
	return c
}

type chain struct {
	strats []apis.Strategy
}

// Resolve returns the module identity of v's dynamic type.
func (c chain) Resolve(v any, cfg apis.Config) apis.ModuleID {
	return c.first(func(s apis.Strategy) (apis.ModuleID, bool) {
		return s.TryResolve(v, cfg)
	})
}

// ResolveType returns the module identity of the key type t.
func (c chain) ResolveType(t reflect.Type, cfg apis.Config) apis.ModuleID {
	return c.first(func(s apis.Strategy) (apis.ModuleID, bool) {
		return s.TryResolveType(t, cfg)
	})
}

// first returns the identity from the first strategy that claims the key,
// or "" when none does.
func (c chain) first(try func(apis.Strategy) (apis.ModuleID, bool)) apis.ModuleID {
	for _, s := range c.strats {
		if id, ok := try(s); ok {
			return id
		}
	}
	return ""
}
