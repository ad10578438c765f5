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
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/movec/pkg/common/moerr"
)

// Equal reports element-wise equality; vectors of different lengths
// are unequal.
func Equal[T comparable](a, b *Vector[T]) bool {
	if a.length != b.length {
		return false
	}
	for i := 0; i < a.length; i++ {
		if a.col[i] != b.col[i] {
			return false
		}
	}
	return true
}

// ForEach visits the live elements in order until fn returns false.
func ForEach[T any](v *Vector[T], fn func(i int, t *T) bool) {
	for i := 0; i < v.length; i++ {
		if !fn(i, &v.col[i]) {
			return
		}
	}
}

// Find returns a cursor to the first element equal to val.
func Find[T comparable](v *Vector[T], val T) (Cursor[T], bool) {
	for i := 0; i < v.length; i++ {
		if v.col[i] == val {
			return Cursor[T]{vec: v, idx: i, gen: v.gen}, true
		}
	}
	return v.End(), false
}

// Min returns the smallest element.
func Min[T constraints.Ordered](v *Vector[T]) (T, error) {
	if v.length == 0 {
		var zero T
		return zero, moerr.NewEmptyVector()
	}
	m := v.col[0]
	for i := 1; i < v.length; i++ {
		if v.col[i] < m {
			m = v.col[i]
		}
	}
	return m, nil
}

// Max returns the largest element.
func Max[T constraints.Ordered](v *Vector[T]) (T, error) {
	if v.length == 0 {
		var zero T
		return zero, moerr.NewEmptyVector()
	}
	m := v.col[0]
	for i := 1; i < v.length; i++ {
		if v.col[i] > m {
			m = v.col[i]
		}
	}
	return m, nil
}

// ToSlice returns an owned copy of the live elements.
func ToSlice[T any](v *Vector[T]) []T {
	out := make([]T, v.length)
	copy(out, v.col[:v.length])
	return out
}
