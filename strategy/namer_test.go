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

package strategy_test

import (
	"reflect"
	"testing"

	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/strategy"
)

type namedKey struct{}

func (namedKey) ModuleName() string { return "app.counter" }

type ptrNamedKey struct{ _ int }

func (*ptrNamedKey) ModuleName() string { return "app.search" }

type blankNamedKey struct{}

func (blankNamedKey) ModuleName() string { return "" }

func TestNamerStrategy_TryResolve(t *testing.T) {
	s := strategy.NewNamerStrategy()
	conf := apis.Config{} // config is irrelevant for the namer strategy

	got, ok := s.TryResolve(namedKey{}, conf)
	if !ok || got != "app.counter" {
		t.Fatalf("TryResolve: got (%q,%v), want (app.counter,true)", got, ok)
	}

	got, ok = s.TryResolve(struct{}{}, conf)
	if ok || got != "" {
		t.Fatalf("TryResolve(non-namer): got (%q,%v), want ('',false)", got, ok)
	}

	// An empty name falls through to the next strategy.
	if got, ok = s.TryResolve(blankNamedKey{}, conf); ok {
		t.Fatalf("TryResolve(blank): got (%q,%v), want ('',false)", got, ok)
	}
}

func TestNamerStrategy_TryResolveType(t *testing.T) {
	s := strategy.NewNamerStrategy()
	conf := apis.Config{}

	cases := []struct {
		name string
		typ  reflect.Type
		want apis.ModuleID
		ok   bool
	}{
		{"value receiver", reflect.TypeFor[namedKey](), "app.counter", true},
		{"value receiver via ptr", reflect.TypeFor[*namedKey](), "app.counter", true},
		{"pointer receiver", reflect.TypeFor[ptrNamedKey](), "app.search", true},
		{"pointer receiver via ptr", reflect.TypeFor[*ptrNamedKey](), "app.search", true},
		{"interface", reflect.TypeFor[apis.Namer](), "", false},
		{"plain", reflect.TypeFor[struct{}](), "", false},
		{"nil", nil, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolveType(tc.typ, conf)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("TryResolveType(%v) = (%q,%v), want (%q,%v)", tc.typ, got, ok, tc.want, tc.ok)
			}
		})
	}
}

// Ensure the local types actually satisfy apis.Namer (compile-time).
var (
	_ apis.Namer = namedKey{}
	_ apis.Namer = (*ptrNamedKey)(nil)
)
