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

package registry_test

import (
	"errors"
	"runtime"

	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/config"
	"dirpx.dev/lyra/observer"
	"dirpx.dev/lyra/registry"
	"dirpx.dev/lyra/store"
)

type action int

const increment action = 1

func reduce(a action, state *int) int {
	n := 0
	if state != nil {
		n = *state
	}
	if a == increment {
		n++
	}
	return n
}

// module is a hand-rolled apis.Module that counts the stores it creates.
type module struct {
	id       apis.ModuleID
	created  int
	closeErr error
}

func (m *module) ID() apis.ModuleID { return m.id }

func (m *module) NewStore() apis.Store {
	m.created++
	h := store.NewHandle(reduce)
	if m.closeErr != nil {
		return failingClose{Handle: h, err: m.closeErr}
	}
	return h
}

type failingClose struct {
	*store.Handle[int, action]
	err error
}

func (f failingClose) Close() error {
	_ = f.Handle.Close()
	return f.err
}

// counterObserver records the states it is notified with.
type counterObserver struct {
	observer.Base
	got []int
}

func (o *counterObserver) NewState(n int) { o.got = append(o.got, n) }

// view stands in for a UI object; it is large enough and holds a pointer,
// so it is never tiny-allocated and weak pointers to it clear on GC.
type view struct {
	name string
	pad  [64]byte
}

func newRegistry(opts ...registry.Option) *registry.Registry {
	return registry.New(config.DefaultConfig(), opts...)
}

func dispatch(reg *registry.Registry, m apis.Module, a action) {
	typed(reg.Store(m)).Store().Dispatch(a)
}

func typed(st apis.Store) *store.Handle[int, action] {
	switch h := st.(type) {
	case *store.Handle[int, action]:
		return h
	case failingClose:
		return h.Handle
	}
	panic(errors.New("unexpected store type"))
}

func collect() {
	runtime.GC()
	runtime.GC()
}
