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
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/builder"
	"dirpx.dev/lyra/config"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.cat = s.bld.BuildCatalog(s.cfg, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.cat, nil)
	s.reg = s.bld.BuildRegistry(s.cfg, nil)
	st.Store(s)
}

var (
	// ErrNilCatalog is raised when a builder returns a nil catalog.
	ErrNilCatalog = errors.New("lyra: builder returned nil catalog")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("lyra: builder returned nil resolver")
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("lyra: builder returned nil registry")
)

// ModuleIdentity resolves the identity of t with the global resolver.
// It returns "" when no identity can be derived.
func ModuleIdentity(t reflect.Type) apis.ModuleID {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// ModuleIdentityOf resolves the identity of v's dynamic type.
func ModuleIdentityOf(v any) apis.ModuleID {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// ModuleIdentityFor resolves the identity of the key type K.
func ModuleIdentityFor[K any]() apis.ModuleID {
	return ModuleIdentity(reflect.TypeFor[K]())
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// Catalog returns the global catalog of claimed module identities.
func Catalog() apis.Catalog {
	return st.Load().cat
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// Registry returns the process-default registry used by Lookup.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetConfig sets the global configuration to cfg and rebuilds the catalog,
// the resolver and, unless it is pinned, the registry.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(old, cfg, old.bld, nil))
}

// SetBuilder replaces the global builder and rebuilds every layer with it.
// A pinned registry is kept.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(old, old.cfg, b, nil))
}

// SetRegistry sets the process-default registry to reg and pins it.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.reg = reg
	next.preg = true
	st.Store(&next)
}

// SetAll replaces the global state in one step. Nil arguments keep the
// current config or builder; a nil registry is rebuilt and unpinned, a
// non-nil one is pinned.
//
// This is mainly for tests that need a clean, deterministic state.
func SetAll(cfg *apis.Config, reg apis.Registry, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	base := *old
	base.preg = false
	st.Store(rebuild(&base, ncfg, nbld, reg))
}

// IsRegistryPinned reports whether the default registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops reconfiguration from rebuilding the default registry.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.preg = true
	st.Store(&next)
}

// UnpinRegistry lets reconfiguration rebuild the default registry again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.preg = false
	st.Store(&next)
}

// rebuild derives the next snapshot from old. reg, if not nil, replaces the
// registry and pins it. Must be called with buildMu held.
func rebuild(old *state, cfg apis.Config, b apis.Builder, reg apis.Registry) *state {
	ncat := b.BuildCatalog(cfg, old.cat)
	if ncat == nil {
		panic(ErrNilCatalog)
	}
	nres := b.BuildResolver(cfg, ncat, old.res)
	if nres == nil {
		panic(ErrNilResolver)
	}

	nreg, npreg := old.reg, old.preg
	switch {
	case reg != nil:
		nreg, npreg = reg, true
	case !old.preg:
		nreg = b.BuildRegistry(cfg, old.reg)
	}
	if nreg == nil {
		panic(ErrNilRegistry)
	}

	return &state{
		cfg:  cfg,
		bld:  b,
		cat:  ncat,
		res:  nres,
		reg:  nreg,
		preg: npreg,
	}
}

// buildMu serializes writers so partially-built snapshots are never
// published.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable once published via st.Store; writers build a new state and swap
// it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// bld builds the other layers.
	bld apis.Builder
	// cat records claimed module identities.
	cat apis.Catalog
	// res resolves module key types to identities.
	res apis.Resolver
	// reg is the process-default registry.
	reg apis.Registry
	// preg indicates whether reg is pinned.
	preg bool
}
