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
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/strategy"
)

const pkg = "dirpx.dev/lyra/strategy_test"

// Local test types.
type A struct{}
type G[T any] struct{}
type W[T any] struct{ V T }

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{
		IncludeBuiltins: false,
		MaxUnwrap:       8,
		MapPreferElem:   true,
		QualifiedNames:  true,
		CacheSize:       64,
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func short(c *apis.Config)    { c.QualifiedNames = false }
func builtins(c *apis.Config) { c.IncludeBuiltins = true }

func TestReflectStrategy_ByValue(t *testing.T) {
	s := strategy.NewReflectStrategy(0)

	cases := []struct {
		name     string
		val      any
		cfg      apis.Config
		expected apis.ModuleID
	}{
		{"plain struct", A{}, cfg(), pkg + ".A"},
		{"ptr", &A{}, cfg(), pkg + ".A"},
		{"slice", []A{}, cfg(), pkg + ".A"},
		{"chan", make(chan A), cfg(), pkg + ".A"},
		{"short name", A{}, cfg(short), "strategy_test.A"},
		{"map prefer key (builtin hidden)", map[string]A{}, cfg(func(c *apis.Config) { c.MapPreferElem = false }), ""},
		{"map prefer key (builtin visible)", map[string]A{}, cfg(builtins, func(c *apis.Config) { c.MapPreferElem = false }), "string"},
		{"builtin hidden", 42, cfg(), ""},
		{"builtin visible", 42, cfg(builtins), "int"},
		{"generic keeps args", G[int]{}, cfg(short), "strategy_test.G[int]"},
		{"wrapped generic", []W[int]{}, cfg(short), "strategy_test.W[int]"},
		{"anonymous", struct{}{}, cfg(), ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(tc.val, tc.cfg)
			if !ok {
				t.Fatalf("expected ok=true for %T", tc.val)
			}
			if got != tc.expected {
				t.Fatalf("got %q, want %q", got, tc.expected)
			}
		})
	}

	if got, ok := s.TryResolve(nil, cfg()); ok || got != "" {
		t.Fatalf("nil value: got (%q,%v), want ('',false)", got, ok)
	}
}

func TestReflectStrategy_ByType(t *testing.T) {
	s := strategy.NewReflectStrategy(0)

	if got, ok := s.TryResolveType(reflect.TypeFor[*A](), cfg()); !ok || got != pkg+".A" {
		t.Fatalf("TryResolveType(*A) = (%q,%v)", got, ok)
	}
	if got, ok := s.TryResolveType(nil, cfg()); ok || got != "" {
		t.Fatalf("TryResolveType(nil) = (%q,%v), want ('',false)", got, ok)
	}

	gi, _ := s.TryResolveType(reflect.TypeFor[G[int]](), cfg())
	gs, _ := s.TryResolveType(reflect.TypeFor[G[string]](), cfg())
	if gi == gs {
		t.Fatalf("distinct instantiations share identity %q", gi)
	}
}

// The memo cache is keyed by the config knobs, so flipping one yields a
// fresh result rather than a stale cached one.
func TestReflectStrategy_CacheRespectsConfig(t *testing.T) {
	s := strategy.NewReflectStrategy(2)

	long, _ := s.TryResolve(A{}, cfg())
	brief, _ := s.TryResolve(A{}, cfg(short))
	if long == brief {
		t.Fatalf("cache ignored QualifiedNames: %q", long)
	}

	// Evictions beyond the bound must not change results.
	for i := 0; i < 10; i++ {
		_, _ = s.TryResolve(G[int]{}, cfg())
		_, _ = s.TryResolve(W[int]{}, cfg())
		if got, _ := s.TryResolve(A{}, cfg()); got != long {
			t.Fatalf("after eviction got %q, want %q", got, long)
		}
	}
}

// TestReflectStrategy_Concurrent verifies that resolution is race-free and
// stable under concurrency.
func TestReflectStrategy_Concurrent(t *testing.T) {
	s := strategy.NewReflectStrategy(4)
	conf := cfg()
	vals := []any{A{}, &A{}, []A{}, G[int]{}, &G[string]{}, W[A]{}}

	want := make([]apis.ModuleID, len(vals))
	for i, v := range vals {
		want[i], _ = s.TryResolve(v, conf)
	}

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				j := (i + id) % len(vals)
				if got, _ := s.TryResolve(vals[j], conf); got != want[j] {
					t.Errorf("TryResolve(%T) = %q, want %q", vals[j], got, want[j])
					return
				}
			}
		}(w)
	}
	wg.Wait()
}
