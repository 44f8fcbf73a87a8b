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

package config

import (
	"dirpx.dev/lyra/apis"
)

const (
	// DefaultIncludeBuiltins represents the default for IncludeBuiltins.
	// Builtin types make poor module keys, so they are rejected unless enabled.
	DefaultIncludeBuiltins = false
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem represents the default for MapPreferElem.
	// When true, map value types are preferred when searching for named inner types.
	DefaultMapPreferElem = true
	// DefaultQualifiedNames represents the default for QualifiedNames.
	// Full import paths keep identities unique across same-named packages.
	DefaultQualifiedNames = true
	// DefaultAutoClean represents the default for AutoClean.
	DefaultAutoClean = true
	// DefaultCacheSize represents the default for CacheSize.
	DefaultCacheSize = 1024
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap and CacheSize are valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
		QualifiedNames:  DefaultQualifiedNames,
		AutoClean:       DefaultAutoClean,
		CacheSize:       DefaultCacheSize,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithIncludeBuiltins sets the IncludeBuiltins option.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeBuiltins = include
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMapPreferElem sets the MapPreferElem option.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) {
		c.MapPreferElem = prefer
	}
}

// WithQualifiedNames sets the QualifiedNames option.
func WithQualifiedNames(qualified bool) Option {
	return func(c *apis.Config) {
		c.QualifiedNames = qualified
	}
}

// WithAutoClean sets the AutoClean option.
func WithAutoClean(enabled bool) Option {
	return func(c *apis.Config) {
		c.AutoClean = enabled
	}
}

// WithCacheSize sets the CacheSize option.
// A non-positive value resets to the default.
func WithCacheSize(size int) Option {
	return func(c *apis.Config) {
		if size <= 0 {
			c.CacheSize = DefaultCacheSize
			return
		}
		c.CacheSize = size
	}
}
