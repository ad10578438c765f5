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
	"github.com/matrixorigin/movec/pkg/common/moerr"
	"github.com/matrixorigin/movec/pkg/container/lifecycle"
)

// checkCursor validates that cur is a live anchor into v.  allowEnd
// permits the one-past-last position, which is a valid insert anchor
// but not a valid erase target.
func (v *Vector[T]) checkCursor(cur Cursor[T], allowEnd bool) (int, error) {
	if cur.vec != v {
		return 0, moerr.NewInvalidArg("cursor", "not drawn from this vector")
	}
	if cur.gen != v.gen {
		return 0, moerr.NewStaleCursor(cur.gen, v.gen)
	}
	limit := v.length
	if !allowEnd {
		limit--
	}
	if cur.idx < 0 || cur.idx > limit {
		return 0, moerr.NewInvalidArg("cursor position", cur.idx)
	}
	return cur.idx, nil
}

// Insert places a copy of val before cur and returns a cursor to it.
func (v *Vector[T]) Insert(cur Cursor[T], val T) (Cursor[T], error) {
	return v.insert(cur, 1,
		func(dst []T, _ int) error { return lifecycle.FillConstructRange(v.ops, dst, val) },
		func(dst *T, _ int) error { return v.ops.Assign(dst, val) },
	)
}

// InsertN places n copies of val before cur; n must be positive.
func (v *Vector[T]) InsertN(cur Cursor[T], n int, val T) (Cursor[T], error) {
	if n <= 0 {
		return Cursor[T]{}, moerr.NewInvalidArg("insert count", n)
	}
	return v.insert(cur, n,
		func(dst []T, _ int) error { return lifecycle.FillConstructRange(v.ops, dst, val) },
		func(dst *T, _ int) error { return v.ops.Assign(dst, val) },
	)
}

// InsertSlice places copies of vals before cur, in order.  An empty
// slice inserts nothing and returns cur itself.
func (v *Vector[T]) InsertSlice(cur Cursor[T], vals []T) (Cursor[T], error) {
	if len(vals) == 0 {
		if _, err := v.checkCursor(cur, true); err != nil {
			return Cursor[T]{}, err
		}
		return cur, nil
	}
	return v.insert(cur, len(vals),
		func(dst []T, from int) error {
			return lifecycle.CopyConstructRange(v.ops, dst, vals[from:from+len(dst)])
		},
		func(dst *T, j int) error { return v.ops.Assign(dst, vals[j]) },
	)
}

// Emplace constructs a single new element before cur.  When the
// element lands on a raw slot (growth path or insertion at the end)
// build writes directly into the vector's storage; otherwise it
// builds a temporary that is assigned over the shifted slot.
func (v *Vector[T]) Emplace(cur Cursor[T], build func(*T) error) (Cursor[T], error) {
	if build == nil {
		return Cursor[T]{}, moerr.NewInvalidArg("emplace build", nil)
	}
	return v.insert(cur, 1,
		func(dst []T, _ int) error { return build(&dst[0]) },
		func(dst *T, _ int) error {
			var tmp T
			if err := build(&tmp); err != nil {
				return err
			}
			if err := v.ops.Assign(dst, tmp); err != nil {
				v.ops.Destroy(&tmp)
				return err
			}
			v.ops.Destroy(&tmp)
			return nil
		},
	)
}

// insert opens a gap of k slots at the cursor position and fills it.
// construct builds new elements js [from, from+len(dst)) into raw
// slots and must undo its own partial batch on failure; assignAt
// assigns the j-th new element over an already-live slot.
func (v *Vector[T]) insert(cur Cursor[T], k int,
	construct func(dst []T, from int) error, assignAt func(dst *T, j int) error) (Cursor[T], error) {

	pos, err := v.checkCursor(cur, true)
	if err != nil {
		return Cursor[T]{}, err
	}
	if v.length+k > v.capacity {
		if err := v.relocate(NextCapacity(v.length+k), pos, k, func(dst []T) error {
			return construct(dst, 0)
		}); err != nil {
			return Cursor[T]{}, err
		}
		return Cursor[T]{vec: v, idx: pos, gen: v.gen}, nil
	}
	if err := v.shiftInsert(pos, k, construct, assignAt); err != nil {
		return Cursor[T]{}, err
	}
	return Cursor[T]{vec: v, idx: pos, gen: v.gen}, nil
}

// shiftInsert opens the gap inside existing storage.  The part of the
// tail that lands beyond the old size is move-constructed into raw
// slots; the part that stays inside the live range is shifted with
// backward assignment.  Construction failures are fully unwound, but
// once the assignment phase has begun a failure leaves the vector
// valid with partially shifted contents - the documented trade-off of
// the in-place path.
func (v *Vector[T]) shiftInsert(pos, k int,
	construct func(dst []T, from int) error, assignAt func(dst *T, j int) error) error {

	n := v.length
	tail := n - pos
	if k >= tail {
		// the whole tail moves past the old size; new elements fill
		// positions [pos, n) by assignment and [n, pos+k) by
		// construction
		lifecycle.MoveConstructRange(v.ops, v.col[pos+k:pos+k+tail], v.col[pos:n])
		if err := construct(v.col[n:pos+k], tail); err != nil {
			// move the tail back and the vector is untouched
			lifecycle.DestroyRange(v.ops, v.col[pos:n])
			lifecycle.MoveConstructRange(v.ops, v.col[pos:n], v.col[pos+k:pos+k+tail])
			lifecycle.DestroyRange(v.ops, v.col[pos+k:pos+k+tail])
			return err
		}
		v.length = n + k
		for j := 0; j < tail; j++ {
			if err := assignAt(&v.col[pos+j], j); err != nil {
				return err
			}
		}
		return nil
	}
	// k < tail: spill the last k elements into raw slots, shift the
	// rest right by assignment, then place the new elements
	lifecycle.MoveConstructRange(v.ops, v.col[n:n+k], v.col[n-k:n])
	v.length = n + k
	if err := lifecycle.AssignRangeBackward(v.ops, v.col[pos+k:n], v.col[pos:n-k]); err != nil {
		return err
	}
	for j := 0; j < k; j++ {
		if err := assignAt(&v.col[pos+j], j); err != nil {
			return err
		}
	}
	return nil
}

// Erase removes the element at cur and returns a cursor to its
// successor, or End when the tail was removed.
func (v *Vector[T]) Erase(cur Cursor[T]) (Cursor[T], error) {
	pos, err := v.checkCursor(cur, false)
	if err != nil {
		return Cursor[T]{}, err
	}
	return v.eraseRange(pos, pos+1)
}

// EraseRange removes the elements in [first, last).  The range must
// be non-empty and in order.
func (v *Vector[T]) EraseRange(first, last Cursor[T]) (Cursor[T], error) {
	f, err := v.checkCursor(first, true)
	if err != nil {
		return Cursor[T]{}, err
	}
	l, err := v.checkCursor(last, true)
	if err != nil {
		return Cursor[T]{}, err
	}
	if f == l {
		return Cursor[T]{}, moerr.NewEmptyRange("erase")
	}
	if f > l {
		return Cursor[T]{}, moerr.NewInvalidArg("erase range", "reversed").WithDetail("first follows last")
	}
	return v.eraseRange(f, l)
}

// eraseRange shifts the tail left over [f, l) and destroys the
// surplus.  A failed element assignment mid-shift leaves the vector
// valid with partially shifted contents.
func (v *Vector[T]) eraseRange(f, l int) (Cursor[T], error) {
	n := v.length
	k := l - f
	if err := lifecycle.AssignRangeForward(v.ops, v.col[f:f+(n-l)], v.col[l:n]); err != nil {
		return Cursor[T]{}, err
	}
	lifecycle.DestroyRange(v.ops, v.col[n-k:n])
	v.length = n - k
	return Cursor[T]{vec: v, idx: f, gen: v.gen}, nil
}
