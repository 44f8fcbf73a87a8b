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

// Package lyrafx wires a lyra registry into an fx application.
//
// Module provides the default apis.Config, a *registry.Registry and the same
// registry as apis.Registry, and closes the registry when the app stops.
// A *zap.Logger and a metric.MeterProvider are used when present in the
// graph. Replace the config with fx.Decorate.
//
//	app := fx.New(
//	    lyrafx.Module,
//	    lyrafx.PublishDefault,
//	    fx.Supply(logger),
//	)
package lyrafx

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"dirpx.dev/lyra"
	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/config"
	"dirpx.dev/lyra/registry"
)

// Module provides the config and the registry and closes the registry on stop.
var Module = fx.Module("lyra",
	fx.Provide(config.DefaultConfig),
	fx.Provide(NewRegistry),
	fx.Provide(func(r *registry.Registry) apis.Registry { return r }),
	fx.Invoke(func(lc fx.Lifecycle, reg *registry.Registry) {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return reg.Close()
			},
		})
	}),
)

// PublishDefault makes the provided registry the process-default one used
// by lyra.Lookup, and pins it.
var PublishDefault = fx.Invoke(func(reg apis.Registry) {
	lyra.SetRegistry(reg)
})

// RegistryParams are the dependencies of NewRegistry. Logger and
// MeterProvider are optional.
type RegistryParams struct {
	fx.In

	Config        apis.Config
	Logger        *zap.Logger          `optional:"true"`
	MeterProvider metric.MeterProvider `optional:"true"`
}

// NewRegistry builds the registry with the logger and meter provider from
// the graph, falling back to the registry defaults.
func NewRegistry(params RegistryParams) *registry.Registry {
	var opts []registry.Option
	if params.Logger != nil {
		opts = append(opts, registry.WithLogger(params.Logger))
	}
	if params.MeterProvider != nil {
		opts = append(opts, registry.WithMeterProvider(params.MeterProvider))
	}
	return registry.New(params.Config, opts...)
}
