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

package registry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"dirpx.dev/lyra/apis"
)

const meterName = "dirpx.dev/lyra/registry"

// Instrument names.
const (
	MetricSubscriptions = "lyra.registry.subscriptions"
	MetricStores        = "lyra.registry.stores"
	MetricReclaimed     = "lyra.registry.reclaimed"
)

type metrics struct {
	subscriptions metric.Int64UpDownCounter
	stores        metric.Int64UpDownCounter
	reclaimed     metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) *metrics {
	meter := mp.Meter(meterName)
	// Instrument errors only arise from invalid names; the returned
	// instruments are usable either way.
	subs, _ := meter.Int64UpDownCounter(MetricSubscriptions,
		metric.WithDescription("Live subscriptions per module."),
		metric.WithUnit("{subscription}"))
	stores, _ := meter.Int64UpDownCounter(MetricStores,
		metric.WithDescription("Live store handles per module."),
		metric.WithUnit("{store}"))
	reclaimed, _ := meter.Int64Counter(MetricReclaimed,
		metric.WithDescription("Subscriptions removed because their subscriber was gone."),
		metric.WithUnit("{subscription}"))
	return &metrics{subscriptions: subs, stores: stores, reclaimed: reclaimed}
}

func moduleAttr(id apis.ModuleID) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("module", string(id)))
}

func (m *metrics) subscribed(id apis.ModuleID, n int64) {
	m.subscriptions.Add(context.Background(), n, moduleAttr(id))
}

func (m *metrics) stored(id apis.ModuleID, n int64) {
	m.stores.Add(context.Background(), n, moduleAttr(id))
}

func (m *metrics) reclaim(id apis.ModuleID) {
	m.reclaimed.Add(context.Background(), 1, moduleAttr(id))
}
