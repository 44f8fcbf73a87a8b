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

	"dirpx.dev/lyra/apis"
)

// NewCatalogStrategy creates an apis.Strategy that consults an apis.Catalog.
func NewCatalogStrategy(cat apis.Catalog) apis.Strategy {
	return &catalogStrategy{cat: cat}
}

// catalogStrategy returns identities claimed earlier (reflection-free lookup).
type catalogStrategy struct {
	cat apis.Catalog
}

// Ensure catalogStrategy implements apis.Strategy.
var _ apis.Strategy = (*catalogStrategy)(nil)

// TryResolve looks up v's type in the catalog.
func (s *catalogStrategy) TryResolve(v any, _ apis.Config) (apis.ModuleID, bool) {
	if v == nil || s.cat == nil {
		return "", false
	}
	return s.cat.Lookup(reflect.TypeOf(v))
}

// TryResolveType looks up t in the catalog.
func (s *catalogStrategy) TryResolveType(t reflect.Type, _ apis.Config) (apis.ModuleID, bool) {
	if t == nil || s.cat == nil {
		return "", false
	}
	return s.cat.Lookup(t)
}
