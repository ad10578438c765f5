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

// Package testutil provides instrumented lifecycle policies for tests
// exercising the container's rollback paths.
package testutil

import (
	"github.com/matrixorigin/movec/pkg/common/moerr"
)

// CountingOps is a lifecycle.Ops implementation that counts every
// successful element operation and can be armed to fail a specific
// construction attempt.  FailCopyAt / FailMakeAt / FailAssignAt fail
// the n-th attempt (1-based) of the respective operation; zero
// disarms.
type CountingOps[T any] struct {
	Makes    int
	Copies   int
	Moves    int
	Assigns  int
	Destroys int

	FailCopyAt   int
	FailMakeAt   int
	FailAssignAt int

	makeAttempts   int
	copyAttempts   int
	assignAttempts int
}

func (c *CountingOps[T]) Make() (T, error) {
	c.makeAttempts++
	var zero T
	if c.FailMakeAt > 0 && c.makeAttempts == c.FailMakeAt {
		return zero, moerr.NewInternalError("injected make failure at %d", c.makeAttempts)
	}
	c.Makes++
	return zero, nil
}

func (c *CountingOps[T]) Copy(src T) (T, error) {
	c.copyAttempts++
	if c.FailCopyAt > 0 && c.copyAttempts == c.FailCopyAt {
		var zero T
		return zero, moerr.NewInternalError("injected copy failure at %d", c.copyAttempts)
	}
	c.Copies++
	return src, nil
}

func (c *CountingOps[T]) Move(src *T) T {
	c.Moves++
	v := *src
	var zero T
	*src = zero
	return v
}

func (c *CountingOps[T]) Assign(dst *T, src T) error {
	c.assignAttempts++
	if c.FailAssignAt > 0 && c.assignAttempts == c.FailAssignAt {
		return moerr.NewInternalError("injected assign failure at %d", c.assignAttempts)
	}
	c.Assigns++
	*dst = src
	return nil
}

func (c *CountingOps[T]) Destroy(dst *T) {
	c.Destroys++
	var zero T
	*dst = zero
}

// Live reports successful constructions minus destructions, the
// number of elements the ops believes are currently alive.
func (c *CountingOps[T]) Live() int {
	return c.Makes + c.Copies + c.Moves - c.Destroys
}

// ResetCounters clears all counters but keeps the armed failures.
func (c *CountingOps[T]) ResetCounters() {
	c.Makes, c.Copies, c.Moves, c.Assigns, c.Destroys = 0, 0, 0, 0, 0
	c.makeAttempts, c.copyAttempts, c.assignAttempts = 0, 0, 0
}
