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
	"cmp"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dirpx.dev/lyra/apis"
)

// Registry maps module identities to subscription sets and store handles.
//
// A store is created on first use and released as soon as its module has
// no subscription left. A single mutex guards both maps; store registration
// calls run under it, observer callbacks never do.
type Registry struct {
	cfg     apis.Config
	log     *zap.Logger
	metrics *metrics
	now     func() time.Time

	mu     sync.Mutex
	seq    uint64
	subs   map[apis.ModuleID]map[apis.SubscriberID]*Subscription
	stores map[apis.ModuleID]apis.Store
}

// Ensure *Registry implements apis.Registry.
var _ apis.Registry = (*Registry)(nil)

// New constructs an empty Registry. Only cfg.AutoClean is used here.
func New(cfg apis.Config, opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		cfg:     cfg,
		log:     o.logger.Named("lyra"),
		metrics: newMetrics(o.meter),
		now:     o.now,
		subs:    make(map[apis.ModuleID]map[apis.SubscriberID]*Subscription),
		stores:  make(map[apis.ModuleID]apis.Store),
	}
}

// Contains reports whether the module has at least one subscription.
func (r *Registry) Contains(id apis.ModuleID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs[id]) > 0
}

// ContainsSubscriber reports whether the pair has a subscription.
func (r *Registry) ContainsSubscriber(id apis.ModuleID, sid apis.SubscriberID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.subs[id][sid]
	return ok
}

// Subscribe binds o to (m, sub) and registers it with the module store,
// creating the store if needed. A previous subscription for the same pair is
// replaced and its observer unregistered from the store.
//
// o must be unbound; binding an observer twice panics.
func (r *Registry) Subscribe(m apis.Module, sub apis.Subscriber, o apis.Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribeLocked(m, sub, o)
}

// SubscribeIfAbsent subscribes o only if (m, sub) has no subscription yet.
// It returns the observer that ends up subscribed and whether it is o. When
// the pair is already present, o is left unbound.
func (r *Registry) SubscribeIfAbsent(m apis.Module, sub apis.Subscriber, o apis.Observer) (apis.Observer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.subs[m.ID()][sub.ID()]; ok {
		return s.Observer, false
	}
	r.subscribeLocked(m, sub, o)
	return o, true
}

// subscribeLocked binds o and registers it with the store before recording
// the subscription, so a store that rejects o leaves no record behind.
func (r *Registry) subscribeLocked(m apis.Module, sub apis.Subscriber, o apis.Observer) {
	id, sid := m.ID(), sub.ID()
	o.Bind(apis.Binding{
		Module:     id,
		Subscriber: sub,
		Remover:    r,
		AutoClean:  r.cfg.AutoClean,
	})

	st := r.storeLocked(m)
	st.Subscribe(o)

	set, ok := r.subs[id]
	if !ok {
		set = make(map[apis.SubscriberID]*Subscription)
		r.subs[id] = set
	}
	s := &Subscription{
		ID:         uuid.New(),
		Module:     id,
		Subscriber: sub,
		Observer:   o,
		Created:    r.now(),
		seq:        r.seq,
	}
	r.seq++
	prev, replaced := set[sid]
	set[sid] = s

	if replaced {
		st.Unsubscribe(prev.Observer)
		r.log.Debug("subscription replaced",
			zap.String("module", string(id)),
			zap.Stringer("subscriber", sub),
			zap.Stringer("subscription_id", s.ID),
			zap.Stringer("replaced_id", prev.ID))
		return
	}
	r.metrics.subscribed(id, 1)
	r.log.Debug("subscription added",
		zap.String("module", string(id)),
		zap.Stringer("subscriber", sub),
		zap.Stringer("subscription_id", s.ID))
}

// Unsubscribe removes the subscription for (m, sub).
func (r *Registry) Unsubscribe(m apis.Module, sub apis.Subscriber) {
	r.Remove(m.ID(), sub.ID())
}

// Remove deletes the subscription for the pair and unregisters its observer.
// When the module is left without subscriptions, the subscription set and the
// store are released. Removing an absent pair does nothing else.
func (r *Registry) Remove(id apis.ModuleID, sid apis.SubscriberID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.subs[id]
	if s, ok := set[sid]; ok {
		delete(set, sid)
		if st, ok := r.stores[id]; ok {
			st.Unsubscribe(s.Observer)
		}
		r.metrics.subscribed(id, -1)
		fields := []zap.Field{
			zap.String("module", string(id)),
			zap.Stringer("subscriber", s.Subscriber),
			zap.Stringer("subscription_id", s.ID),
		}
		if s.Stale() {
			r.metrics.reclaim(id)
			r.log.Debug("stale subscription reclaimed", fields...)
		} else {
			r.log.Debug("subscription removed", fields...)
		}
	}
	if len(set) == 0 {
		_ = r.releaseLocked(id)
	}
}

// Observer returns the observer subscribed for the pair.
func (r *Registry) Observer(id apis.ModuleID, sid apis.SubscriberID) (apis.Observer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id][sid]
	if !ok {
		return nil, false
	}
	return s.Observer, true
}

// Subscription returns a copy of the subscription for the pair.
func (r *Registry) Subscription(id apis.ModuleID, sid apis.SubscriberID) (Subscription, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id][sid]
	if !ok {
		return Subscription{}, false
	}
	return *s, true
}

// Store returns the module store, creating it if absent.
func (r *Registry) Store(m apis.Module) apis.Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.storeLocked(m)
}

// LookupStore returns the module store without creating it.
func (r *Registry) LookupStore(id apis.ModuleID) (apis.Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stores[id]
	return st, ok
}

// Subscriptions returns a snapshot of the module's subscriptions in
// subscription order. The registry may be mutated while iterating it.
func (r *Registry) Subscriptions(id apis.ModuleID) []Subscription {
	r.mu.Lock()
	out := lo.Map(lo.Values(r.subs[id]), func(s *Subscription, _ int) Subscription {
		return *s
	})
	r.mu.Unlock()

	slices.SortFunc(out, func(a, b Subscription) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return out
}

// Observers returns a snapshot of the module's (subscriber, observer) pairs.
func (r *Registry) Observers(id apis.ModuleID) []apis.Pair {
	return lo.Map(r.Subscriptions(id), func(s Subscription, _ int) apis.Pair {
		return apis.Pair{Subscriber: s.Subscriber, Observer: s.Observer}
	})
}

// Modules returns the identities of modules with subscriptions, sorted.
func (r *Registry) Modules() []apis.ModuleID {
	r.mu.Lock()
	ids := lo.Keys(r.subs)
	r.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// Len returns the number of modules with at least one subscription.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Close removes every subscription and releases every store. The registry
// stays usable afterwards.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for _, id := range lo.Union(lo.Keys(r.subs), lo.Keys(r.stores)) {
		st := r.stores[id]
		for _, s := range r.subs[id] {
			if st != nil {
				st.Unsubscribe(s.Observer)
			}
			r.metrics.subscribed(id, -1)
		}
		err = multierr.Append(err, r.releaseLocked(id))
	}
	return err
}

// storeLocked returns the module store, creating it if absent.
func (r *Registry) storeLocked(m apis.Module) apis.Store {
	id := m.ID()
	if st, ok := r.stores[id]; ok {
		return st
	}
	st := m.NewStore()
	r.stores[id] = st
	r.metrics.stored(id, 1)
	r.log.Debug("store created", zap.String("module", string(id)))
	return st
}

// releaseLocked drops the module's subscription set and store. Stores that
// implement io.Closer are closed.
func (r *Registry) releaseLocked(id apis.ModuleID) error {
	delete(r.subs, id)
	st, ok := r.stores[id]
	if !ok {
		return nil
	}
	delete(r.stores, id)
	r.metrics.stored(id, -1)
	r.log.Debug("store released", zap.String("module", string(id)))

	c, ok := st.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		r.log.Warn("store close failed", zap.String("module", string(id)), zap.Error(err))
		return err
	}
	return nil
}
