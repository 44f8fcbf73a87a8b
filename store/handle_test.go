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

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/lyra/apis"
	"dirpx.dev/lyra/store"
)

// fakeObserver is an apis.Observer with a scripted liveness answer.
type fakeObserver struct {
	recorder
	deliverable bool
	checks      int
}

func (o *fakeObserver) Bind(apis.Binding) {}
func (o *fakeObserver) Binding() (apis.Binding, bool) { return apis.Binding{}, false }
func (o *fakeObserver) AutoClean() bool { o.checks++; return o.deliverable }

// mute is an observer that is not a listener of int.
type mute struct{ fakeObserver }

func (mute) NewState(string) {}

func TestHandle_GuardsDelivery(t *testing.T) {
	h := store.NewHandle(counter)
	live := &fakeObserver{deliverable: true}
	dead := &fakeObserver{deliverable: false}
	h.Subscribe(live)
	h.Subscribe(dead)

	h.Store().Dispatch(increment)

	assert.Equal(t, []int{1}, live.got)
	assert.Empty(t, dead.got)
	assert.Equal(t, 1, dead.checks)
}

func TestHandle_UnsubscribeMatchesSubscribe(t *testing.T) {
	h := store.NewHandle(counter)
	o := &fakeObserver{deliverable: true}
	h.Subscribe(o)
	h.Subscribe(o)
	assert.Equal(t, 1, h.Store().Len())

	h.Unsubscribe(o)
	assert.Zero(t, h.Store().Len())
}

func TestHandle_WrongStateTypePanics(t *testing.T) {
	h := store.NewHandle(counter)
	assert.PanicsWithValue(t, store.ErrNotListener, func() {
		h.Subscribe(&mute{})
	})
}

func TestHandle_Close(t *testing.T) {
	h := store.NewHandle(counter)
	h.Subscribe(&fakeObserver{deliverable: true})
	assert.NoError(t, h.Close())
	assert.Zero(t, h.Store().Len())
}
