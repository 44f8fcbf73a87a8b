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

// namerType is the reflect.Type of apis.Namer.
var namerType = reflect.TypeFor[apis.Namer]()

// NewNamerStrategy creates an apis.Strategy that uses apis.Namer.
func NewNamerStrategy() apis.Strategy {
	return &namerStrategy{}
}

// namerStrategy is the zero-cost fast path: if the key type implements
// apis.Namer, its ModuleName() wins and the chain stops.
type namerStrategy struct{}

// Ensure namerStrategy implements apis.Strategy.
var _ apis.Strategy = (*namerStrategy)(nil)

// TryResolve checks if v implements apis.Namer and returns its ModuleName().
func (*namerStrategy) TryResolve(v any, _ apis.Config) (apis.ModuleID, bool) {
	if v == nil {
		return "", false
	}
	if n, ok := v.(apis.Namer); ok {
		return named(n)
	}
	return "", false
}

// TryResolveType builds a zero instance of t (or *t, for pointer receivers)
// and asks it for its name.
func (*namerStrategy) TryResolveType(t reflect.Type, _ apis.Config) (apis.ModuleID, bool) {
	if t == nil || t.Kind() == reflect.Interface {
		return "", false
	}
	var v reflect.Value
	switch {
	case t.Kind() == reflect.Ptr && t.Implements(namerType):
		v = reflect.New(t.Elem())
	case t.Implements(namerType):
		v = reflect.Zero(t)
	case reflect.PointerTo(t).Implements(namerType):
		v = reflect.New(t)
	default:
		return "", false
	}
	return named(v.Interface().(apis.Namer))
}

// named falls through on an empty name.
func named(n apis.Namer) (apis.ModuleID, bool) {
	if name := n.ModuleName(); name != "" {
		return apis.ModuleID(name), true
	}
	return "", false
}
