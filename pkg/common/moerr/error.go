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

// Package moerr defines the error codes used by the container packages.
// Errors are identified by a numeric code so that callers and tests can
// match on the class of failure without parsing messages.
package moerr

import (
	"fmt"
)

const (
	// Ok is not an error.
	Ok uint16 = 0

	// Group 1: internal errors
	ErrStart    uint16 = 20100
	ErrInternal uint16 = 20101
	ErrOOM      uint16 = 20103

	// Group 2: bounds and arguments
	ErrOutOfRange uint16 = 20201
	ErrInvalidArg uint16 = 20203

	// Group 4: unexpected state
	ErrEmptyVector uint16 = 20404
	ErrEmptyRange  uint16 = 20408
	ErrStaleCursor uint16 = 20409

	// Group End: max value of error code
	ErrEnd uint16 = 65535
)

type moErrorMsgItem struct {
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]moErrorMsgItem{
	ErrInternal:    {"internal error: %s"},
	ErrOOM:         {"out of memory: pool %s used %d requested %d limit %d"},
	ErrOutOfRange:  {"index %d out of range [0, %d)"},
	ErrInvalidArg:  {"invalid argument %s, bad value %v"},
	ErrEmptyVector: {"empty vector"},
	ErrEmptyRange:  {"empty range of %s"},
	ErrStaleCursor: {"stale cursor: generation %d, current %d"},
	ErrEnd:         {"internal error: end of errcode code"},
}

func newError(code uint16, args ...any) *Error {
	var err *Error
	item, has := errorMsgRefer[code]
	if !has {
		panic(fmt.Errorf("not exist error code: %d", code))
	}
	if len(args) == 0 {
		err = &Error{
			code:    code,
			message: item.errorMsgOrFormat,
		}
	} else {
		err = &Error{
			code:    code,
			message: fmt.Sprintf(item.errorMsgOrFormat, args...),
		}
	}
	return err
}

// Error carries a numeric code and a formatted message.  An optional
// detail string can be attached for extra context.
type Error struct {
	code    uint16
	message string
	detail  string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Detail() string {
	return e.detail
}

func (e *Error) Display() string {
	if len(e.detail) == 0 {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.message, e.detail)
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) WithDetail(detail string) *Error {
	e.detail = detail
	return e
}

// Is implements errors.Is matching on the error code.
func (e *Error) Is(err error) bool {
	me, ok := err.(*Error)
	if !ok {
		return false
	}
	return me.code == e.code
}

// IsMoErrCode reports whether err is a moerr with the given code.
func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}
	me, ok := e.(*Error)
	if !ok {
		// This is not a moerr
		return false
	}
	return me.code == rc
}

func NewInternalError(msg string, args ...any) *Error {
	return newError(ErrInternal, fmt.Sprintf(msg, args...))
}

// NewOOM returns the allocation failure error.  It is raised by the
// pool before any element has been touched by the failed operation.
func NewOOM(pool string, used, requested, limit int64) *Error {
	return newError(ErrOOM, pool, used, requested, limit)
}

// NewOutOfRange reports an index outside the live range [0, size).
func NewOutOfRange(index, size int) *Error {
	return newError(ErrOutOfRange, index, size)
}

func NewInvalidArg(arg string, val any) *Error {
	return newError(ErrInvalidArg, arg, val)
}

func NewEmptyVector() *Error {
	return newError(ErrEmptyVector)
}

func NewEmptyRange(what string) *Error {
	return newError(ErrEmptyRange, what)
}

// NewStaleCursor reports a cursor whose captured generation no longer
// matches the vector, that is, the storage it addressed is gone.
func NewStaleCursor(got, curr uint64) *Error {
	return newError(ErrStaleCursor, got, curr)
}
