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

package builder

import (
	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/catalog"
	"dirpx.dev/lyra/registry"
	"dirpx.dev/lyra/resolver"
	"dirpx.dev/lyra/strategy"
)

// New creates and returns a new instance of an apis.Builder.
// The options are applied to every registry the builder constructs.
func New(opts ...registry.Option) apis.Builder {
	return &builder{opts: opts}
}

// builder builds the default catalog, resolver and registry.
type builder struct {
	opts []registry.Option
}

// BuildCatalog builds and returns a new apis.Catalog based on the provided
// configuration. If a previous catalog is provided, its claims are copied
// into the new one; claims that no longer normalize are dropped.
func (b *builder) BuildCatalog(cfg apis.Config, prev apis.Catalog) apis.Catalog {
	ncat := catalog.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = ncat.Claim(e.Type, e.ID)
		}
	}
	return ncat
}

// BuildResolver builds the Namer -> Catalog -> Reflect chain. The previous
// resolver is not reused: the reflect memo is keyed by configuration and
// would only hold entries for the old one.
func (b *builder) BuildResolver(cfg apis.Config, cat apis.Catalog, _ apis.Resolver) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewCatalogStrategy(cat),
		strategy.NewReflectStrategy(cfg.CacheSize),
	)
}

// BuildRegistry builds a new registry for cfg. A previous registry that
// still holds subscriptions is live state and is returned unchanged. An idle
// one is closed, releasing stores created by dispatches nobody listens to.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	if prev != nil {
		if prev.Len() > 0 {
			return prev
		}
		_ = prev.Close()
	}
	return registry.New(cfg, b.opts...)
}
