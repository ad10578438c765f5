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
)

// Cursor marks a position inside one vector's storage.  It captures
// the vector's generation at creation time; once the vector
// reallocates, the cursor is stale and Value fails fast instead of
// resolving against storage that no longer backs the position.
// In-place shifts do not change the generation: positions strictly
// before an insert or erase point keep addressing the same elements.
type Cursor[T any] struct {
	vec *Vector[T]
	idx int
	gen uint64
}

// Value resolves the cursor to the live element it addresses.
func (c Cursor[T]) Value() (*T, error) {
	if c.vec == nil {
		return nil, moerr.NewInvalidArg("cursor vector", nil)
	}
	if c.gen != c.vec.gen {
		return nil, moerr.NewStaleCursor(c.gen, c.vec.gen)
	}
	if c.idx < 0 || c.idx >= c.vec.length {
		return nil, moerr.NewOutOfRange(c.idx, c.vec.length)
	}
	return &c.vec.col[c.idx], nil
}

// Index returns the position the cursor addresses.
func (c Cursor[T]) Index() int {
	return c.idx
}

func (c Cursor[T]) Next() Cursor[T] {
	c.idx++
	return c
}

func (c Cursor[T]) Prev() Cursor[T] {
	c.idx--
	return c
}

// Add advances the cursor by n slots, n may be negative.
func (c Cursor[T]) Add(n int) Cursor[T] {
	c.idx += n
	return c
}

// Sub returns the distance c - o in slots.  Both cursors must address
// the same vector generation.
func (c Cursor[T]) Sub(o Cursor[T]) (int, error) {
	if c.vec != o.vec {
		return 0, moerr.NewInvalidArg("cursor pair", "different vectors")
	}
	if c.gen != o.gen {
		return 0, moerr.NewInvalidArg("cursor pair", "different generations")
	}
	return c.idx - o.idx, nil
}

// Eq reports whether both cursors address the same slot of the same
// vector generation.
func (c Cursor[T]) Eq(o Cursor[T]) bool {
	return c.vec == o.vec && c.gen == o.gen && c.idx == o.idx
}
