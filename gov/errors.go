// Copyright 2026 Clawbots Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gov defines the shared error taxonomy for the governance core.
// Every request-path failure carries a Code and a message suitable for
// direct display to a bot operator.
package gov

import (
	"errors"
	"fmt"
)

type Code int

const (
	CodeUnknown Code = iota
	CodeUnauthenticated
	CodeForbidden
	CodeNotFound
	CodeConflict
	CodeInvalidArgument
	CodeInternal
)

// String returns the canonical name for the code
func (c Code) String() string {
	switch c {
	case CodeUnauthenticated:
		return "unauthenticated"
	case CodeForbidden:
		return "forbidden"
	case CodeNotFound:
		return "not_found"
	case CodeConflict:
		return "conflict"
	case CodeInvalidArgument:
		return "invalid_argument"
	case CodeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a coded error with an operator-facing message
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a coded error with a display message
func NewError(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a coded error with a formatted display message
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapInternal wraps a storage or infrastructure error as Internal while
// keeping the cause available for logging. The display message stays
// generic on purpose: internal details are for logs, not bot operators.
func WrapInternal(err error) *Error {
	return &Error{
		Code:    CodeInternal,
		Message: "internal error, please retry",
		cause:   err,
	}
}

// CodeOf extracts the code from an error chain. Unrecognized errors are
// treated as Internal.
func CodeOf(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Code
	}
	return CodeInternal
}

// MessageOf extracts the display message from an error chain
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return "internal error, please retry"
}
