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

package config_test

import (
	"testing"

	"dirpx.dev/lyra/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.IncludeBuiltins != config.DefaultIncludeBuiltins {
		t.Fatalf("IncludeBuiltins = %v, want %v", got.IncludeBuiltins, config.DefaultIncludeBuiltins)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.MapPreferElem != config.DefaultMapPreferElem {
		t.Fatalf("MapPreferElem = %v, want %v", got.MapPreferElem, config.DefaultMapPreferElem)
	}
	if got.QualifiedNames != config.DefaultQualifiedNames {
		t.Fatalf("QualifiedNames = %v, want %v", got.QualifiedNames, config.DefaultQualifiedNames)
	}
	if got.AutoClean != config.DefaultAutoClean {
		t.Fatalf("AutoClean = %v, want %v", got.AutoClean, config.DefaultAutoClean)
	}
	if got.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want %d", got.CacheSize, config.DefaultCacheSize)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithAutoClean(t *testing.T) {
	if c := config.NewConfig(config.WithAutoClean(false)); c.AutoClean {
		t.Fatalf("AutoClean = %v, want false", c.AutoClean)
	}
	if c := config.NewConfig(config.WithAutoClean(true)); !c.AutoClean {
		t.Fatalf("AutoClean = %v, want true", c.AutoClean)
	}
}

func TestWithQualifiedNames(t *testing.T) {
	if c := config.NewConfig(config.WithQualifiedNames(false)); c.QualifiedNames {
		t.Fatalf("QualifiedNames = %v, want false", c.QualifiedNames)
	}
}

func TestWithMaxUnwrap_Negative_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(-1))
	if c.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want default %d", c.MaxUnwrap, config.DefaultMaxUnwrap)
	}
}

func TestWithCacheSize(t *testing.T) {
	if c := config.NewConfig(config.WithCacheSize(16)); c.CacheSize != 16 {
		t.Fatalf("CacheSize = %d, want 16", c.CacheSize)
	}
	if c := config.NewConfig(config.WithCacheSize(0)); c.CacheSize != config.DefaultCacheSize {
		t.Fatalf("CacheSize = %d, want default %d", c.CacheSize, config.DefaultCacheSize)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithIncludeBuiltins(false),
		config.WithIncludeBuiltins(true),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
		config.WithAutoClean(true),
		config.WithAutoClean(false),
	)

	if !c.IncludeBuiltins {
		t.Errorf("IncludeBuiltins = %v, want true (last option wins)", c.IncludeBuiltins)
	}
	if c.MaxUnwrap != 5 {
		t.Errorf("MaxUnwrap = %d, want 5 (last option wins)", c.MaxUnwrap)
	}
	if c.AutoClean {
		t.Errorf("AutoClean = %v, want false (last option wins)", c.AutoClean)
	}
}

func TestNewConfig_MaxUnwrapZeroAllowed(t *testing.T) {
	// Only negative values are reset; consumers treat zero as "use the default".
	c := config.NewConfig(config.WithMaxUnwrap(0))
	if c.MaxUnwrap != 0 {
		t.Fatalf("MaxUnwrap = %d, want 0", c.MaxUnwrap)
	}
}
