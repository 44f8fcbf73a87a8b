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

package lyra_test

import (
	"fmt"
	"runtime"

	"dirpx.dev/lyra"
	"dirpx.dev/lyra/config"
	"dirpx.dev/lyra/observer"
	"dirpx.dev/lyra/registry"
)

type counterKey struct{}

type counterAction int

const (
	increment counterAction = iota + 1
	reset
)

type counterActions struct{}

func (counterActions) Increment() counterAction { return increment }
func (counterActions) Reset() counterAction     { return reset }

func reduceCounter(a counterAction, n *int) int {
	v := 0
	if n != nil {
		v = *n
	}
	switch a {
	case increment:
		v++
	case reset:
		v = 0
	}
	return v
}

type counterObserver struct {
	observer.Base
	got []int
}

func (o *counterObserver) NewState(n int) { o.got = append(o.got, n) }

var built int

func newCounterObserver() *counterObserver {
	built++
	return &counterObserver{}
}

var counterModule = lyra.NewModule[counterKey](reduceCounter, counterActions{}, newCounterObserver)

// view stands in for a UI object holding a subscription. It carries a
// pointer and padding so it is never tiny-allocated.
type view struct {
	name string
	pad  [64]byte
}

func (v *view) String() string { return fmt.Sprintf("view(%s)", v.name) }

func newRegistry(autoClean bool) *registry.Registry {
	return registry.New(config.NewConfig(config.WithAutoClean(autoClean)))
}

func collect() {
	runtime.GC()
	runtime.GC()
}

// panicErr runs fn and returns the error it panicked with, if any.
func panicErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}
