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

package strategy

import (
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"

	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/config"
	uref "dirpx.dev/lyra/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives identities via
// reflection using utils/reflect.Normalize. Results are memoized in an LRU
// of at most size entries (config.DefaultCacheSize if size <= 0).
func NewReflectStrategy(size int) apis.Strategy {
	if size <= 0 {
		size = config.DefaultCacheSize
	}
	cache, _ := lru.New[cacheKey, apis.ModuleID](size)
	return &reflectStrategy{cache: cache}
}

// reflectStrategy is the universal fallback that computes "pkg.Type".
// It unwraps containers (ptr/slice/array/chan/map) via Normalize, keeps generic
// instantiation arguments and can hide builtin/no-package names.
type reflectStrategy struct {
	cache *lru.Cache[cacheKey, apis.ModuleID]
}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect resolution.
type cacheKey struct {
	t              reflect.Type
	includeBuiltin bool
	qualified      bool
	maxUnwrap      int16
	mapPreferElem  bool
}

// TryResolve derives the identity of v's type.
func (s *reflectStrategy) TryResolve(v any, cfg apis.Config) (apis.ModuleID, bool) {
	if v == nil {
		return "", false
	}
	return s.byType(reflect.TypeOf(v), cfg), true
}

// TryResolveType derives the identity of t.
func (s *reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (apis.ModuleID, bool) {
	if t == nil {
		return "", false
	}
	return s.byType(t, cfg), true
}

// byType resolves the identity for t with memoization.
func (s *reflectStrategy) byType(t reflect.Type, cfg apis.Config) apis.ModuleID {
	key := cacheKey{
		t:              t,
		includeBuiltin: cfg.IncludeBuiltins,
		qualified:      cfg.QualifiedNames,
		maxUnwrap:      int16(cfg.MaxUnwrap),
		mapPreferElem:  cfg.MapPreferElem,
	}
	if id, ok := s.cache.Get(key); ok {
		return id
	}

	var id apis.ModuleID
	if base, err := uref.Normalize(t, cfg); err == nil {
		if base.PkgPath() != "" || cfg.IncludeBuiltins {
			id = apis.ModuleID(uref.Name(base, cfg.QualifiedNames))
		}
	}

	s.cache.Add(key, id)
	return id
}

// Len returns the number of memoized identities.
func (s *reflectStrategy) Len() int {
	return s.cache.Len()
}
