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

// Package lifecycle separates slot storage from element liveness.  A
// slot handed out by the pool is raw until one of the construct
// primitives writes a value through an Ops policy; Destroy returns it
// to the raw state.  The batch primitives undo their own partial work:
// if the k-th construction fails, the k-1 elements already built are
// destroyed in reverse order and the batch reports the element's error
// with every destination slot back in the raw state.
package lifecycle

// Ops describes the element semantics of a type: how a value is
// default-built, copied, moved, assigned over and torn down.  Copy,
// Make and Assign may fail; Move and Destroy never do.
type Ops[T any] interface {
	// Make default-constructs a fresh value.
	Make() (T, error)
	// Copy builds an independent duplicate of src.
	Copy(src T) (T, error)
	// Move returns src's value, leaving *src reset and still valid.
	Move(src *T) T
	// Assign overwrites the live element at dst with a copy of src.
	Assign(dst *T, src T) error
	// Destroy tears down the live element at dst, making the slot raw.
	Destroy(dst *T)
}

// ConstructAt copy-constructs val into a raw slot.  On failure the
// slot is still raw.
func ConstructAt[T any](ops Ops[T], slot *T, val T) error {
	v, err := ops.Copy(val)
	if err != nil {
		return err
	}
	*slot = v
	return nil
}

// MakeAt default-constructs into a raw slot.
func MakeAt[T any](ops Ops[T], slot *T) error {
	v, err := ops.Make()
	if err != nil {
		return err
	}
	*slot = v
	return nil
}

// DestroyAt tears down the live element at slot.
func DestroyAt[T any](ops Ops[T], slot *T) {
	ops.Destroy(slot)
}

// DestroyRange destroys every live element of slots in forward order.
func DestroyRange[T any](ops Ops[T], slots []T) {
	for i := range slots {
		ops.Destroy(&slots[i])
	}
}

// CopyConstructRange copy-constructs src into the raw slots of dst.
// len(dst) must equal len(src).
func CopyConstructRange[T any](ops Ops[T], dst, src []T) error {
	for i := range src {
		v, err := ops.Copy(src[i])
		if err != nil {
			unwind(ops, dst[:i])
			return err
		}
		dst[i] = v
	}
	return nil
}

// FillConstructRange copy-constructs val into every raw slot of dst.
func FillConstructRange[T any](ops Ops[T], dst []T, val T) error {
	for i := range dst {
		v, err := ops.Copy(val)
		if err != nil {
			unwind(ops, dst[:i])
			return err
		}
		dst[i] = v
	}
	return nil
}

// MakeRange default-constructs every raw slot of dst.
func MakeRange[T any](ops Ops[T], dst []T) error {
	for i := range dst {
		v, err := ops.Make()
		if err != nil {
			unwind(ops, dst[:i])
			return err
		}
		dst[i] = v
	}
	return nil
}

// MoveConstructRange moves src into the raw slots of dst, leaving the
// source elements reset.  Never fails.
func MoveConstructRange[T any](ops Ops[T], dst, src []T) {
	for i := range src {
		dst[i] = ops.Move(&src[i])
	}
}

// AssignRangeForward assigns src over the live elements of dst from
// the first pair on.  Safe when dst precedes src in an overlapping
// shift-left.
func AssignRangeForward[T any](ops Ops[T], dst, src []T) error {
	for i := range src {
		if err := ops.Assign(&dst[i], src[i]); err != nil {
			return err
		}
	}
	return nil
}

// AssignRangeBackward assigns src over the live elements of dst
// starting from the last pair.  Mandatory when dst follows src in an
// overlapping shift-right, otherwise the forward walk would read
// slots it already overwrote.
func AssignRangeBackward[T any](ops Ops[T], dst, src []T) error {
	for i := len(src) - 1; i >= 0; i-- {
		if err := ops.Assign(&dst[i], src[i]); err != nil {
			return err
		}
	}
	return nil
}

// unwind destroys a successfully constructed prefix in reverse order.
func unwind[T any](ops Ops[T], built []T) {
	for i := len(built) - 1; i >= 0; i-- {
		ops.Destroy(&built[i])
	}
}
