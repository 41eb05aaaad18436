/*
Copyright 2016 The Fission Authors.

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

package error

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type (
	// Error is the typed error surfaced by the function and its probe.
	Error struct {
		Code    errorCode `json:"code"`
		Message string    `json:"message"`
	}

	errorCode int
)

func (err Error) Error() string {
	return fmt.Sprintf("%v - %v", err.Description(), err.Message)
}

func MakeError(code int, msg string) Error {
	return Error{Code: errorCode(code), Message: msg}
}

// MakeErrorFromHTTP returns nil for a 200 response. Otherwise it consumes and
// closes the body and returns an Error carrying it.
func MakeErrorFromHTTP(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var errCode int
	switch resp.StatusCode {
	case http.StatusBadRequest:
		errCode = ErrorInvalidArgument
	case http.StatusNotFound:
		errCode = ErrorNotFound
	case http.StatusMethodNotAllowed:
		errCode = ErrorMethodNotAllowed
	case http.StatusRequestTimeout:
		errCode = ErrorRequestTimeout
	case http.StatusTooManyRequests:
		errCode = ErrorTooManyRequests
	case http.StatusServiceUnavailable:
		errCode = ErrorUnavailable
	default:
		errCode = ErrorInternal
	}

	msg := resp.Status
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err == nil && len(body) > 0 {
		msg = strings.TrimSpace(string(body))
	}

	return MakeError(errCode, msg)
}

func (err Error) HTTPStatus() int {
	var code int
	switch err.Code {
	case ErrorInvalidArgument:
		code = http.StatusBadRequest
	case ErrorNotFound:
		code = http.StatusNotFound
	case ErrorMethodNotAllowed:
		code = http.StatusMethodNotAllowed
	case ErrorRequestTimeout:
		code = http.StatusRequestTimeout
	case ErrorTooManyRequests:
		code = http.StatusTooManyRequests
	case ErrorUnavailable:
		code = http.StatusServiceUnavailable
	default:
		code = http.StatusInternalServerError
	}
	return code
}

func (err Error) Description() string {
	idx := int(err.Code)
	if idx < 0 || idx > len(errorDescriptions)-1 {
		return ""
	}
	return errorDescriptions[idx]
}

// GetHTTPError maps err to a status code and message. Wrapped Errors are found
// with errors.As; anything else is a 500.
func GetHTTPError(err error) (int, string) {
	var fe Error
	if errors.As(err, &fe) {
		return fe.HTTPStatus(), fe.Message
	}
	return http.StatusInternalServerError, err.Error()
}

func hasCode(err error, code int) bool {
	var fe Error
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Code == errorCode(code)
}

func IsNotFound(err error) bool {
	return hasCode(err, ErrorNotFound)
}

func IsInvalidArgument(err error) bool {
	return hasCode(err, ErrorInvalidArgument)
}

const (
	ErrorInternal = iota

	ErrorNotFound
	ErrorInvalidArgument
	ErrorMethodNotAllowed
	ErrorRequestTimeout
	ErrorTooManyRequests
	ErrorUnavailable
)

// must match order and len of the above const
var errorDescriptions = []string{
	"Internal error",
	"Resource not found",
	"Invalid argument",
	"Method not allowed",
	"Request timeout",
	"Too many requests",
	"Service unavailable",
}
