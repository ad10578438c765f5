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

package vector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/movec/pkg/common/moerr"
	"github.com/matrixorigin/movec/pkg/common/mpool"
	"github.com/matrixorigin/movec/pkg/testutil"
)

// mustFromSlice builds a counting-ops vector for the rollback tests.
func mustFromSlice(t *testing.T, ops *testutil.CountingOps[int], vals []int) *Vector[int] {
	t.Helper()
	v, err := NewFromSlice(vals, WithOps[int](ops))
	require.NoError(t, err)
	return v
}

func TestAppendGrowthStrongGuarantee(t *testing.T) {
	ops := &testutil.CountingOps[int]{}
	v := mustFromSlice(t, ops, []int{1, 2, 3, 4})
	defer v.Free()
	require.Equal(t, 4, v.Capacity())

	// the next copy construction fails: that is the 5th element being
	// built into the already-allocated bigger buffer
	ops.FailCopyAt = ops.Copies + 1
	err := v.Append(5)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))

	// strong guarantee: nothing changed, including capacity
	require.Equal(t, 4, v.Length())
	require.Equal(t, 4, v.Capacity())
	require.Equal(t, []int{1, 2, 3, 4}, ToSlice(v))

	ops.FailCopyAt = 0
	require.NoError(t, v.Append(5))
	require.Equal(t, []int{1, 2, 3, 4, 5}, ToSlice(v))
	require.Equal(t, 8, v.Capacity())
}

func TestAppendInPlaceStrongGuarantee(t *testing.T) {
	ops := &testutil.CountingOps[int]{}
	v := mustFromSlice(t, ops, []int{1, 2, 3})
	defer v.Free()
	require.Equal(t, 4, v.Capacity())

	ops.FailCopyAt = ops.Copies + 1
	err := v.Append(4)
	require.Error(t, err)
	require.Equal(t, 3, v.Length())
	require.Equal(t, []int{1, 2, 3}, ToSlice(v))
	require.Equal(t, 0, ops.Live()-3)
}

func TestInsertGrowthStrongGuarantee(t *testing.T) {
	ops := &testutil.CountingOps[int]{}
	v := mustFromSlice(t, ops, []int{1, 2, 3, 4})
	defer v.Free()

	// fail the 2nd of 3 fill constructions in the new buffer
	ops.FailCopyAt = ops.Copies + 2
	_, err := v.InsertN(v.Begin().Add(2), 3, 9)
	require.Error(t, err)

	require.Equal(t, []int{1, 2, 3, 4}, ToSlice(v))
	require.Equal(t, 4, v.Capacity())
	require.Equal(t, 4, ops.Live())

	// cursors from before the failed call still resolve
	p, err := v.Begin().Add(3).Value()
	require.NoError(t, err)
	require.Equal(t, 4, *p)
}

func TestInsertInPlaceConstructionRollback(t *testing.T) {
	ops := &testutil.CountingOps[int]{}
	v := mustFromSlice(t, ops, []int{1, 2, 3})
	defer v.Free()
	require.NoError(t, v.Reserve(16))

	// k >= tail: three of the five 9s land on raw slots past the old
	// size; fail the second raw construction and everything unwinds
	ops.ResetCounters()
	ops.FailCopyAt = 2
	_, err := v.InsertN(v.Begin().Add(1), 5, 9)
	require.Error(t, err)
	require.Equal(t, []int{1, 2, 3}, ToSlice(v))
	require.Equal(t, 3, v.Length())
	require.Equal(t, 0, ops.Live())
}

func TestInsertInPlaceAssignBasicGuarantee(t *testing.T) {
	ops := &testutil.CountingOps[int]{}
	v := mustFromSlice(t, ops, []int{1, 2, 3, 4, 5})
	defer v.Free()
	require.Equal(t, 8, v.Capacity())

	// k < tail: the shift is pure assignment; failing it leaves the
	// vector valid but partially shifted
	ops.ResetCounters()
	ops.FailAssignAt = 2
	_, err := v.Insert(v.Begin(), 9)
	require.Error(t, err)

	// count and capacity invariants still hold
	require.Equal(t, 6, v.Length())
	require.Equal(t, 8, v.Capacity())
	require.Equal(t, 6, len(ToSlice(v)))
}

func TestEraseAssignBasicGuarantee(t *testing.T) {
	ops := &testutil.CountingOps[int]{}
	v := mustFromSlice(t, ops, []int{1, 2, 3, 4, 5})
	defer v.Free()

	ops.ResetCounters()
	ops.FailAssignAt = 3
	_, err := v.Erase(v.Begin())
	require.Error(t, err)

	// nothing was destroyed, the count is unchanged
	require.Equal(t, 5, v.Length())
	require.Equal(t, 0, ops.Destroys)
}

func TestResizeGrowRollback(t *testing.T) {
	ops := &testutil.CountingOps[int]{}
	v := mustFromSlice(t, ops, []int{1, 2})
	defer v.Free()

	// grow within slack capacity: cap 2 -> resize to 2 more than cap
	require.NoError(t, v.Reserve(8))
	ops.ResetCounters()
	ops.FailMakeAt = 3
	err := v.Resize(6)
	require.Error(t, err)
	require.Equal(t, []int{1, 2}, ToSlice(v))
	require.Equal(t, 0, ops.Live())

	// grow through relocation
	ops.ResetCounters()
	ops.FailMakeAt = 2
	err = v.Resize(100)
	require.Error(t, err)
	require.Equal(t, []int{1, 2}, ToSlice(v))
	require.Equal(t, 8, v.Capacity())
	require.Equal(t, 0, ops.Live())
}

func TestAssignReallocStrongGuarantee(t *testing.T) {
	ops := &testutil.CountingOps[int]{}
	v := mustFromSlice(t, ops, []int{1, 2})
	defer v.Free()
	require.Equal(t, 2, v.Capacity())

	ops.ResetCounters()
	ops.FailCopyAt = 3
	err := v.AssignSlice([]int{7, 8, 9, 10})
	require.Error(t, err)
	require.Equal(t, []int{1, 2}, ToSlice(v))
	require.Equal(t, 2, v.Capacity())
	require.Equal(t, 0, ops.Live())
}

func TestDupRollback(t *testing.T) {
	ops := &testutil.CountingOps[int]{}
	pool := mpool.MustNewMPool("dup", 0)
	v, err := NewFromSlice([]int{1, 2, 3}, WithOps[int](ops), WithPool[int](pool))
	require.NoError(t, err)
	defer v.Free()
	inuse := pool.InUse()

	ops.FailCopyAt = ops.Copies + 2
	_, err = v.Dup()
	require.Error(t, err)
	// the partially built copy was unwound and its block freed
	require.Equal(t, inuse, pool.InUse())
	require.Equal(t, []int{1, 2, 3}, ToSlice(v))
}

func TestConstructorRollback(t *testing.T) {
	ops := &testutil.CountingOps[int]{FailCopyAt: 3}
	pool := mpool.MustNewMPool("ctor", 0)

	_, err := NewFromSlice([]int{1, 2, 3, 4}, WithOps[int](ops), WithPool[int](pool))
	require.Error(t, err)
	require.Equal(t, int64(0), pool.InUse())
	require.Equal(t, 0, ops.Live())

	fill := &testutil.CountingOps[int]{FailCopyAt: 2}
	_, err = NewWithFill(5, 7, WithOps[int](fill), WithPool[int](pool))
	require.Error(t, err)
	require.Equal(t, int64(0), pool.InUse())
	require.Equal(t, 0, fill.Live())
}

func TestReserveOOMLeavesUnchanged(t *testing.T) {
	pool := mpool.MustNewMPool("reserve", 64)
	v, err := NewFromSlice([]int64{1, 2}, WithPool[int64](pool))
	require.NoError(t, err)
	defer v.Free()

	err = v.Reserve(1024)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOOM))
	require.Equal(t, 2, v.Capacity())
	require.Equal(t, []int64{1, 2}, ToSlice(v))

	cur := v.Begin() // still valid, no reallocation happened
	p, err := cur.Value()
	require.NoError(t, err)
	require.Equal(t, int64(1), *p)
}
