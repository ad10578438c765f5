// Copyright 2021 - 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the TOML parameters that applications use to
// size the memory pool and set up logging.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/movec/pkg/common/moerr"
	"github.com/matrixorigin/movec/pkg/common/mpool"
	"github.com/matrixorigin/movec/pkg/logutil"
)

// Parameters is the root of the TOML file.
type Parameters struct {
	Pool PoolParameters    `toml:"pool"`
	Log  logutil.LogConfig `toml:"log"`
}

// PoolParameters sizes an mpool.
type PoolParameters struct {
	Name string `toml:"name"`
	// MaxSize is the byte budget of the pool, 0 for unlimited.
	MaxSize int64 `toml:"max-size"`
}

// NewDefaultParameters returns the parameters used when no file is
// supplied.
func NewDefaultParameters() *Parameters {
	return &Parameters{
		Pool: PoolParameters{Name: "movec", MaxSize: 0},
		Log:  logutil.LogConfig{Level: "info", Format: "console"},
	}
}

// ParseTomlFile reads parameters from a TOML file, filling absent
// fields with defaults.
func ParseTomlFile(path string) (*Parameters, error) {
	params := NewDefaultParameters()
	if _, err := toml.DecodeFile(path, params); err != nil {
		return nil, moerr.NewInternalError("parse config %s: %s", path, err)
	}
	return params, nil
}

// NewMPool builds the pool the parameters describe.
func (p *Parameters) NewMPool() (*mpool.MPool, error) {
	return mpool.NewMPool(p.Pool.Name, p.Pool.MaxSize)
}

// SetupLogger installs the logger the parameters describe.
func (p *Parameters) SetupLogger() {
	logutil.SetupLogger(&p.Log)
}
