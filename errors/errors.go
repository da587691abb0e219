// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package errors defines the error type of the strmem tools. An error
// carries a Kind naming its failure class (invalid arguments, unknown
// primitives or implementations, unsupported platforms, verification
// failures, timed out runs), a message, and optionally the error that
// caused it. Errors chain: wrapping an *Error moves its kind to the
// outer error, so the kind of a chain is read from its head.
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Kind is the failure class of an error.
type Kind int

const (
	// Other is an unclassified error.
	Other Kind = iota
	// Canceled is a canceled context.
	Canceled
	// Timeout is an expired deadline.
	Timeout
	// NotExist is a missing resource, such as an unknown primitive or
	// implementation, or a missing result file.
	NotExist
	// NotSupported is an operation this platform cannot perform.
	NotSupported
	// Integrity is a verification failure: a primitive's result
	// disagreed with its oracle.
	Integrity
	// Unavailable is a resource that cannot be obtained now.
	Unavailable
	// Invalid is an invalid argument.
	Invalid
)

var kindText = [...]string{
	Other:        "unknown error",
	Canceled:     "operation was canceled",
	Timeout:      "operation timed out",
	NotExist:     "resource does not exist",
	NotSupported: "operation not supported",
	Integrity:    "integrity error",
	Unavailable:  "resource unavailable",
	Invalid:      "invalid argument",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindText) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindText[k]
}

// Error is a classified error.
type Error struct {
	Kind    Kind
	Message string
	// Err is the cause of the error, if any.
	Err error
}

// E builds an error from its arguments, interpreted by type:
//
//   - Kind sets the kind.
//   - string is appended to the message, space separated.
//   - *Error is copied and becomes the cause.
//   - error becomes the cause.
//
// Without a Kind, the kind is taken from the cause: the kind of an
// *Error, or for other errors NotExist for fs.ErrNotExist, Canceled
// for context.Canceled, and Timeout for context.DeadlineExceeded or an
// error with a true Timeout method. E with a single *Error returns a
// copy of it. An argument of any other type yields an Invalid error
// describing it.
func E(args ...interface{}) error {
	if len(args) == 0 {
		panic("errors.E: no arguments")
	}
	e := new(Error)
	var msg []string
	for _, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case string:
			msg = append(msg, arg)
		case *Error:
			cp := *arg
			if len(args) == 1 {
				return &cp
			}
			e.Err = &cp
		case error:
			e.Err = arg
		default:
			return &Error{Kind: Invalid, Message: fmt.Sprintf("errors.E: unknown argument %T(%v)", arg, arg)}
		}
	}
	e.Message = strings.Join(msg, " ")
	if cause, ok := e.Err.(*Error); ok {
		if e.Kind == Other || e.Kind == cause.Kind {
			e.Kind, cause.Kind = cause.Kind, Other
		}
	} else if e.Err != nil && e.Kind == Other {
		e.Kind = kindOf(e.Err)
	}
	return e
}

func kindOf(err error) Kind {
	var timeout interface{ Timeout() bool }
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotExist
	case errors.Is(err, context.Canceled):
		return Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case errors.As(err, &timeout) && timeout.Timeout():
		return Timeout
	}
	return Other
}

// Recover returns err as an *Error, wrapping it if it is not one.
func Recover(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return E(err).(*Error)
}

// Error formats the chain as "message: kind: cause". A cause that is
// itself an *Error starts on a new, indented line.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var parts []string
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Kind != Other {
		parts = append(parts, e.Kind.String())
	}
	s := strings.Join(parts, ": ")
	if e.Err == nil {
		return s
	}
	sep := ": "
	if _, ok := e.Err.(*Error); ok {
		sep = ":\n\t"
	}
	if s == "" {
		return e.Err.Error()
	}
	return s + sep + e.Err.Error()
}

// Unwrap returns the cause of e, for the standard library's errors.Is
// and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is tells whether err has the given kind. Errors of kind Other take
// the kind of the first classified *Error in their chain.
func Is(kind Kind, err error) bool {
	for e := Recover(err); e != nil; {
		if e.Kind != Other {
			return e.Kind == kind
		}
		next, ok := e.Err.(*Error)
		if !ok {
			break
		}
		e = next
	}
	return false
}

// Match tells whether the nonzero fields of template match err, along
// the whole chain. Causes that are not *Error compare by message. It is
// meant for tests.
func Match(template, err error) bool {
	t, e := Recover(template), Recover(err)
	if t.Kind != Other && t.Kind != e.Kind {
		return false
	}
	if t.Message != "" && t.Message != e.Message {
		return false
	}
	switch {
	case t.Err == nil:
		return true
	case e.Err == nil:
		return false
	}
	if _, ok := t.Err.(*Error); ok {
		return Match(t.Err, e.Err)
	}
	return t.Err.Error() == e.Err.Error()
}

// New returns an error with the text msg, as the standard library's
// errors.New.
func New(msg string) error {
	return errors.New(msg)
}
