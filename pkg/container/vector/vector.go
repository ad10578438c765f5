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

// Package vector implements a growable contiguous container over
// pool-allocated storage.  Slots [0, length) hold live elements,
// slots [length, capacity) are raw; all element construction and
// destruction goes through a lifecycle.Ops policy so that aborted
// batch operations can be unwound precisely.
//
// The container is not safe for concurrent use.  Callers mutating a
// vector from multiple goroutines must serialize access themselves.
package vector

import (
	"fmt"

	"github.com/matrixorigin/movec/pkg/common/moerr"
	"github.com/matrixorigin/movec/pkg/common/mpool"
	"github.com/matrixorigin/movec/pkg/container/lifecycle"
)

// Vector is a contiguous, index-addressed sequence of T.  The zero
// Vector is not usable; construct with New and friends.
type Vector[T any] struct {
	col      []T
	length   int
	capacity int

	// gen increments whenever storage is reallocated, stale cursors
	// are detected against it.
	gen uint64

	mp  *mpool.MPool
	ops lifecycle.Ops[T]
}

// Option configures a vector at construction time.
type Option[T any] func(*Vector[T])

// WithPool makes the vector draw storage from mp instead of the
// default pool.
func WithPool[T any](mp *mpool.MPool) Option[T] {
	return func(v *Vector[T]) {
		if mp != nil {
			v.mp = mp
		}
	}
}

// WithOps installs the element lifecycle policy; the default is
// lifecycle.Trivial.
func WithOps[T any](ops lifecycle.Ops[T]) Option[T] {
	return func(v *Vector[T]) {
		if ops != nil {
			v.ops = ops
		}
	}
}

// New returns an empty vector with no storage.
func New[T any](opts ...Option[T]) *Vector[T] {
	v := &Vector[T]{
		mp:  mpool.Default(),
		ops: lifecycle.Trivial[T]{},
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// NewWithSize returns a vector of n default-constructed elements.
func NewWithSize[T any](n int, opts ...Option[T]) (*Vector[T], error) {
	if n < 0 {
		return nil, moerr.NewInvalidArg("size", n)
	}
	v := New(opts...)
	if n == 0 {
		return v, nil
	}
	if err := v.construct(n, func(dst []T) error {
		return lifecycle.MakeRange(v.ops, dst)
	}); err != nil {
		return nil, err
	}
	return v, nil
}

// NewWithFill returns a vector of n copies of fill.
func NewWithFill[T any](n int, fill T, opts ...Option[T]) (*Vector[T], error) {
	if n < 0 {
		return nil, moerr.NewInvalidArg("size", n)
	}
	v := New(opts...)
	if n == 0 {
		return v, nil
	}
	if err := v.construct(n, func(dst []T) error {
		return lifecycle.FillConstructRange(v.ops, dst, fill)
	}); err != nil {
		return nil, err
	}
	return v, nil
}

// NewFromSlice returns a vector holding copies of vals, in order.
func NewFromSlice[T any](vals []T, opts ...Option[T]) (*Vector[T], error) {
	v := New(opts...)
	if len(vals) == 0 {
		return v, nil
	}
	if err := v.construct(len(vals), func(dst []T) error {
		return lifecycle.CopyConstructRange(v.ops, dst, vals)
	}); err != nil {
		return nil, err
	}
	return v, nil
}

// construct populates an empty vector with n elements via build.
func (v *Vector[T]) construct(n int, build func(dst []T) error) error {
	slots, err := mpool.Alloc[T](v.mp, NextCapacity(n))
	if err != nil {
		return err
	}
	if err := build(slots[:n]); err != nil {
		mpool.Free(v.mp, slots)
		return err
	}
	v.col = slots
	v.capacity = cap(slots)
	v.length = n
	return nil
}

// Move steals src's storage, leaving src an empty, usable vector with
// its allocator untouched.
func Move[T any](src *Vector[T]) *Vector[T] {
	v := &Vector[T]{
		col:      src.col,
		length:   src.length,
		capacity: src.capacity,
		gen:      src.gen,
		mp:       src.mp,
		ops:      src.ops,
	}
	src.col = nil
	src.length = 0
	src.capacity = 0
	src.gen++
	return v
}

// MoveFrom releases v's current contents and steals w's storage,
// allocator included; w is left empty and usable.
func (v *Vector[T]) MoveFrom(w *Vector[T]) {
	if v == w {
		return
	}
	v.release()
	v.col, v.length, v.capacity = w.col, w.length, w.capacity
	v.mp, v.ops = w.mp, w.ops
	v.gen++
	w.col = nil
	w.length = 0
	w.capacity = 0
	w.gen++
}

// Dup returns a deep copy.  The copy draws from the same pool and
// uses the same lifecycle policy; its capacity matches the source.
func (v *Vector[T]) Dup() (*Vector[T], error) {
	w := &Vector[T]{mp: v.mp, ops: v.ops}
	if v.capacity == 0 {
		return w, nil
	}
	slots, err := mpool.Alloc[T](v.mp, v.capacity)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CopyConstructRange(v.ops, slots[:v.length], v.col[:v.length]); err != nil {
		mpool.Free(v.mp, slots)
		return nil, err
	}
	w.col = slots
	w.capacity = v.capacity
	w.length = v.length
	return w, nil
}

// Free destroys all live elements and returns the storage to the
// pool.  The vector stays usable as a fresh empty vector.
func (v *Vector[T]) Free() {
	v.release()
	v.gen++
}

func (v *Vector[T]) release() {
	if v.col == nil {
		return
	}
	lifecycle.DestroyRange(v.ops, v.col[:v.length])
	mpool.Free(v.mp, v.col)
	v.col = nil
	v.length = 0
	v.capacity = 0
}

func (v *Vector[T]) Length() int {
	return v.length
}

func (v *Vector[T]) Capacity() int {
	return v.capacity
}

func (v *Vector[T]) IsEmpty() bool {
	return v.length == 0
}

// At returns the live element at index i.
func (v *Vector[T]) At(i int) (*T, error) {
	if i < 0 || i >= v.length {
		return nil, moerr.NewOutOfRange(i, v.length)
	}
	return &v.col[i], nil
}

// MustAt is the unchecked access: the caller guarantees i < Length().
func (v *Vector[T]) MustAt(i int) *T {
	return &v.col[i]
}

func (v *Vector[T]) Front() (*T, error) {
	if v.length == 0 {
		return nil, moerr.NewEmptyVector()
	}
	return &v.col[0], nil
}

func (v *Vector[T]) Back() (*T, error) {
	if v.length == 0 {
		return nil, moerr.NewEmptyVector()
	}
	return &v.col[v.length-1], nil
}

// Begin returns a cursor to the first element.
func (v *Vector[T]) Begin() Cursor[T] {
	return Cursor[T]{vec: v, idx: 0, gen: v.gen}
}

// End returns the one-past-last cursor.
func (v *Vector[T]) End() Cursor[T] {
	return Cursor[T]{vec: v, idx: v.length, gen: v.gen}
}

// Append adds a copy of val at the back, growing if needed.  If the
// element's construction fails the vector is unchanged, including its
// capacity: on the growth path the new element is built into the new
// buffer before the old one is touched, and a failed build discards
// the new buffer.
func (v *Vector[T]) Append(val T) error {
	if v.length == v.capacity {
		return v.relocate(NextCapacity(v.length+1), v.length, 1, func(dst []T) error {
			return lifecycle.ConstructAt(v.ops, &dst[0], val)
		})
	}
	if err := lifecycle.ConstructAt(v.ops, &v.col[v.length], val); err != nil {
		return err
	}
	v.length++
	return nil
}

// EmplaceBack constructs a new element directly in the raw slot at
// the back.  On error, build must leave the slot untouched.
func (v *Vector[T]) EmplaceBack(build func(*T) error) error {
	if build == nil {
		return moerr.NewInvalidArg("emplace build", nil)
	}
	if v.length == v.capacity {
		return v.relocate(NextCapacity(v.length+1), v.length, 1, func(dst []T) error {
			return build(&dst[0])
		})
	}
	if err := build(&v.col[v.length]); err != nil {
		return err
	}
	v.length++
	return nil
}

// PopBack removes the last element; no-op on an empty vector.
func (v *Vector[T]) PopBack() {
	if v.length == 0 {
		return
	}
	v.length--
	lifecycle.DestroyAt(v.ops, &v.col[v.length])
}

// Clear destroys all elements, keeping capacity.
func (v *Vector[T]) Clear() {
	lifecycle.DestroyRange(v.ops, v.col[:v.length])
	v.length = 0
}

// Swap exchanges the two vectors' storage in O(1).  No element is
// constructed or destroyed; cursors of either vector go stale.
func (v *Vector[T]) Swap(w *Vector[T]) {
	if v == w {
		return
	}
	v.col, w.col = w.col, v.col
	v.length, w.length = w.length, v.length
	v.capacity, w.capacity = w.capacity, v.capacity
	v.mp, w.mp = w.mp, v.mp
	v.ops, w.ops = w.ops, v.ops
	v.gen++
	w.gen++
}

// Reserve raises the capacity floor; no-op when current capacity
// already suffices.
func (v *Vector[T]) Reserve(n int) error {
	if n < 0 {
		return moerr.NewInvalidArg("reserve size", n)
	}
	if n <= v.capacity {
		return nil
	}
	return v.relocate(NextCapacity(n), v.length, 0, nil)
}

// ShrinkToFit drops capacity to the exact element count, releasing
// all storage when the vector is empty.  This is the one path that
// may leave a non-power-of-two capacity.
func (v *Vector[T]) ShrinkToFit() error {
	if v.length == v.capacity {
		return nil
	}
	if v.length == 0 {
		v.release()
		v.gen++
		return nil
	}
	return v.relocate(v.length, v.length, 0, nil)
}

// Resize grows with default-constructed elements or shrinks by
// destroying the tail.
func (v *Vector[T]) Resize(n int) error {
	return v.resize(n, func(dst []T) error {
		return lifecycle.MakeRange(v.ops, dst)
	})
}

// ResizeFill grows with copies of fill or shrinks by destroying the
// tail.
func (v *Vector[T]) ResizeFill(n int, fill T) error {
	return v.resize(n, func(dst []T) error {
		return lifecycle.FillConstructRange(v.ops, dst, fill)
	})
}

func (v *Vector[T]) resize(n int, build func(dst []T) error) error {
	switch {
	case n < 0:
		return moerr.NewInvalidArg("resize size", n)
	case n == v.length:
		return nil
	case n < v.length:
		lifecycle.DestroyRange(v.ops, v.col[n:v.length])
		v.length = n
		return nil
	case n <= v.capacity:
		if err := build(v.col[v.length:n]); err != nil {
			return err
		}
		v.length = n
		return nil
	default:
		return v.relocate(NextCapacity(n), v.length, n-v.length, build)
	}
}

// AssignFill replaces the contents with n copies of val.  The counted
// form requires at least one element.
func (v *Vector[T]) AssignFill(n int, val T) error {
	if n <= 0 {
		return moerr.NewInvalidArg("assign count", n)
	}
	return v.assign(n,
		func(dst []T, _ int) error { return lifecycle.FillConstructRange(v.ops, dst, val) },
		func(dst *T, _ int) error { return v.ops.Assign(dst, val) },
	)
}

// AssignSlice replaces the contents with copies of vals; an empty
// slice empties the vector.
func (v *Vector[T]) AssignSlice(vals []T) error {
	if len(vals) == 0 {
		v.Clear()
		return nil
	}
	return v.assign(len(vals),
		func(dst []T, from int) error {
			return lifecycle.CopyConstructRange(v.ops, dst, vals[from:from+len(dst)])
		},
		func(dst *T, i int) error { return v.ops.Assign(dst, vals[i]) },
	)
}

// CopyFrom replaces the contents with a copy of w's elements.  The
// vector keeps its own allocator.
func (v *Vector[T]) CopyFrom(w *Vector[T]) error {
	if v == w {
		return nil
	}
	if w.length == 0 {
		v.Clear()
		return nil
	}
	return v.assign(w.length,
		func(dst []T, from int) error {
			return lifecycle.CopyConstructRange(v.ops, dst, w.col[from:from+len(dst)])
		},
		func(dst *T, i int) error { return v.ops.Assign(dst, w.col[i]) },
	)
}

// assign implements the two content-replacement paths.  When n fits
// the current capacity, the live overlap is updated by assignment and
// the remainder constructed or destroyed in place; a failed element
// assignment leaves a valid but partially updated vector.  When n
// exceeds capacity, the new buffer is fully populated before the old
// one is released, so failures leave the vector unchanged.
func (v *Vector[T]) assign(n int, construct func(dst []T, from int) error, assignAt func(dst *T, i int) error) error {
	if n > v.capacity {
		slots, err := mpool.Alloc[T](v.mp, NextCapacity(n))
		if err != nil {
			return err
		}
		if err := construct(slots[:n], 0); err != nil {
			mpool.Free(v.mp, slots)
			return err
		}
		v.release()
		v.col = slots
		v.capacity = cap(slots)
		v.length = n
		v.gen++
		return nil
	}
	overlap := v.length
	if n < overlap {
		overlap = n
	}
	for i := 0; i < overlap; i++ {
		if err := assignAt(&v.col[i], i); err != nil {
			return err
		}
	}
	if n > v.length {
		if err := construct(v.col[v.length:n], v.length); err != nil {
			return err
		}
	} else if n < v.length {
		lifecycle.DestroyRange(v.ops, v.col[n:v.length])
	}
	v.length = n
	return nil
}

// relocate is the single-pass grow/shrink path: it allocates a buffer
// of newCap slots, constructs extra new elements into the gap slots
// [gap, gap+extra) of the new buffer via build, then moves the old
// elements around the gap, destroys the old slots and installs the
// new buffer.  Because the new elements are built before the old
// buffer is touched, a failed build discards the new buffer and
// leaves the vector exactly as it was.
func (v *Vector[T]) relocate(newCap, gap, extra int, build func(dst []T) error) error {
	slots, err := mpool.Alloc[T](v.mp, newCap)
	if err != nil {
		return err
	}
	if extra > 0 {
		if err := build(slots[gap : gap+extra]); err != nil {
			mpool.Free(v.mp, slots)
			return err
		}
	}
	lifecycle.MoveConstructRange(v.ops, slots[:gap], v.col[:gap])
	lifecycle.MoveConstructRange(v.ops, slots[gap+extra:gap+extra+(v.length-gap)], v.col[gap:v.length])
	if v.col != nil {
		lifecycle.DestroyRange(v.ops, v.col[:v.length])
		mpool.Free(v.mp, v.col)
	}
	v.col = slots
	v.capacity = cap(slots)
	v.length += extra
	v.gen++
	return nil
}

// Slice returns the live elements as a window over the vector's own
// storage.  The window is invalidated by any mutating operation and
// must not be written through.
func (v *Vector[T]) Slice() []T {
	return v.col[:v.length:v.length]
}

func (v *Vector[T]) String() string {
	return fmt.Sprintf("%v", v.col[:v.length])
}
