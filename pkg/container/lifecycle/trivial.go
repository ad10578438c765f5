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

package lifecycle

// Trivial is the Ops policy for plain value types: construction is
// assignment, destruction resets the slot to the zero value so the
// storage drops any references it held.  No Trivial operation fails.
type Trivial[T any] struct{}

func (Trivial[T]) Make() (T, error) {
	var zero T
	return zero, nil
}

func (Trivial[T]) Copy(src T) (T, error) {
	return src, nil
}

func (Trivial[T]) Move(src *T) T {
	v := *src
	var zero T
	*src = zero
	return v
}

func (Trivial[T]) Assign(dst *T, src T) error {
	*dst = src
	return nil
}

func (Trivial[T]) Destroy(dst *T) {
	var zero T
	*dst = zero
}
