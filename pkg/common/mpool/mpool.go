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

// Package mpool provides the raw storage layer of the container.  A
// pool hands out typed, zeroed slot blocks and accounts for every byte
// against an optional budget.  The pool never constructs or destroys
// element values; a freshly allocated block is raw storage and becomes
// live only through the lifecycle primitives.
package mpool

import (
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/matrixorigin/movec/pkg/common/moerr"
	"github.com/matrixorigin/movec/pkg/logutil"
)

// MPool tracks memory usage of blocks it handed out.  Cap is the byte
// budget; zero means unlimited.  A pool may be shared by many vectors.
type MPool struct {
	name string
	cap  int64

	inuseBytes atomic.Int64
	peakBytes  atomic.Int64
	allocBytes atomic.Int64
	allocCnt   atomic.Int64
	freeCnt    atomic.Int64
}

// NewMPool creates a pool with the given byte budget, 0 for unlimited.
func NewMPool(name string, cap int64) (*MPool, error) {
	if cap < 0 {
		return nil, moerr.NewInvalidArg("mpool cap", cap)
	}
	return &MPool{name: name, cap: cap}, nil
}

func MustNewMPool(name string, cap int64) *MPool {
	m, err := NewMPool(name, cap)
	if err != nil {
		panic(err)
	}
	return m
}

var defaultPool = MustNewMPool("movec-default", 0)

// Default returns the process-wide unlimited pool.
func Default() *MPool {
	return defaultPool
}

func (m *MPool) Name() string {
	return m.name
}

func (m *MPool) Cap() int64 {
	return m.cap
}

// InUse returns the bytes currently held by live blocks.
func (m *MPool) InUse() int64 {
	return m.inuseBytes.Load()
}

func (m *MPool) Peak() int64 {
	return m.peakBytes.Load()
}

func (m *MPool) AllocCount() int64 {
	return m.allocCnt.Load()
}

func (m *MPool) FreeCount() int64 {
	return m.freeCnt.Load()
}

// Report logs the pool counters.
func (m *MPool) Report() {
	logutil.Info("mpool stats",
		zap.String("name", m.name),
		zap.Int64("cap", m.cap),
		zap.Int64("inuse", m.inuseBytes.Load()),
		zap.Int64("peak", m.peakBytes.Load()),
		zap.Int64("allocs", m.allocCnt.Load()),
		zap.Int64("frees", m.freeCnt.Load()),
	)
}

func sizeOf[T any]() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}

// Alloc returns a zeroed block of exactly n slots of T, or an OOM
// error when the pool's budget cannot cover it.  It never returns a
// short block.  The slots are raw storage, not live elements.
func Alloc[T any](m *MPool, n int) ([]T, error) {
	if n <= 0 {
		return nil, moerr.NewInvalidArg("alloc count", n)
	}
	nb := int64(n) * sizeOf[T]()
	if err := m.charge(nb); err != nil {
		return nil, err
	}
	m.allocCnt.Add(1)
	return make([]T, n), nil
}

// Free returns a block obtained from Alloc on the same pool.  Freeing
// nil is a no-op.  A block must be freed exactly once; the pool relies
// on caller discipline, it keeps no per-block header.
func Free[T any](m *MPool, slots []T) {
	if cap(slots) == 0 {
		return
	}
	nb := int64(cap(slots)) * sizeOf[T]()
	m.inuseBytes.Add(-nb)
	m.freeCnt.Add(1)
}

func (m *MPool) charge(nb int64) error {
	used := m.inuseBytes.Add(nb)
	if m.cap > 0 && used > m.cap {
		m.inuseBytes.Add(-nb)
		return moerr.NewOOM(m.name, used-nb, nb, m.cap)
	}
	m.allocBytes.Add(nb)
	for {
		peak := m.peakBytes.Load()
		if used <= peak || m.peakBytes.CompareAndSwap(peak, used) {
			return nil
		}
	}
}
