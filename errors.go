// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instaseis

import "github.com/cpmech/gosl/io"

// ErrorKind classifies the failures the public API can return, per §7
type ErrorKind int

const (
	NotFound ErrorKind = iota
	BadDatabaseLayout
	UnsupportedVersion
	UnsupportedDump
	UnsupportedMode
	ElementNotFound
	InvalidArgument
	IoError
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case BadDatabaseLayout:
		return "BadDatabaseLayout"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case UnsupportedDump:
		return "UnsupportedDump"
	case UnsupportedMode:
		return "UnsupportedMode"
	case ElementNotFound:
		return "ElementNotFound"
	case InvalidArgument:
		return "InvalidArgument"
	case IoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Error is the typed error returned by every public operation in this
// package. Wrap with errors.As/errors.Is-compatible fields so callers can
// branch on Kind without string matching.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return io.Sf("instaseis: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return io.Sf("instaseis: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: io.Sf(format, args...)}
}

func wrapErr(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: io.Sf(format, args...), Err: err}
}
