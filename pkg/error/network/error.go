/*
Copyright 2019 The Fission Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package network

import (
	"errors"
	"net"
	"syscall"
)

type (
	Error struct {
		err net.Error
	}
)

// Adapter returns an Error if err is, or wraps, a network error;
// otherwise, nil will be returned.
func Adapter(err error) *Error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if !errors.As(err, &netErr) {
		return nil
	}

	return &Error{err: netErr}
}

func (e Error) Error() string {
	return e.err.Error()
}

func (e Error) Unwrap() error {
	return e.err
}

// IsDialError returns true if its a network dial error
func (e Error) IsDialError() bool {
	var opErr *net.OpError
	return errors.As(e.err, &opErr) && opErr.Op == "dial"
}

// IsConnRefusedError returns true if an error is a "connection refused" error
func (e Error) IsConnRefusedError() bool {
	return errors.Is(e.err, syscall.ECONNREFUSED)
}

// IsTimeoutError returns true if its a network timeout error
func (e Error) IsTimeoutError() bool {
	return e.err.Timeout() || errors.Is(e.err, syscall.ETIMEDOUT)
}

// Reason is a short human readable cause, empty when nothing specific is known.
func (e Error) Reason() string {
	switch {
	case e.IsConnRefusedError():
		return "connection refused"
	case e.IsTimeoutError():
		return "timed out"
	case e.IsDialError():
		return "dial failed"
	}
	return ""
}
