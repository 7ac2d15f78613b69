package rest

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes executor failures.
type ErrorCode string

const (
	// ErrCodeMissingPathParameter indicates a URL template placeholder had no
	// value. This is a schema/placeholder mismatch and should be unreachable
	// in a correct resource declaration.
	ErrCodeMissingPathParameter ErrorCode = "MISSING_PATH_PARAMETER"

	// ErrCodeRequestFailed indicates a transport failure or a non-2xx status.
	ErrCodeRequestFailed ErrorCode = "REQUEST_FAILED"

	// ErrCodeDecodeFailed indicates the response body did not match the
	// declared response type.
	ErrCodeDecodeFailed ErrorCode = "DECODE_FAILED"

	// ErrCodeInvalidRequest indicates the query or body failed validation
	// before anything was sent.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
)

// maxBodyInError bounds how much of a response body is echoed in Error().
const maxBodyInError = 200

// MissingPathParameterError reports a {placeholder} with no matching value.
type MissingPathParameterError struct {
	Template string
	Name     string
}

func (e *MissingPathParameterError) Error() string {
	return fmt.Sprintf("%s: no value for {%s} in %q", e.Code(), e.Name, e.Template)
}

// Code returns ErrCodeMissingPathParameter.
func (e *MissingPathParameterError) Code() ErrorCode { return ErrCodeMissingPathParameter }

// RequestError reports a transport failure (Err set, StatusCode usually 0)
// or an API-reported failure (non-2xx StatusCode, raw Body kept).
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %s: %v", e.Code(), e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s %s returned %d: %s", e.Code(), e.Method, e.URL, e.StatusCode, truncate(e.Body))
}

func (e *RequestError) Unwrap() error { return e.Err }

// Code returns ErrCodeRequestFailed.
func (e *RequestError) Code() ErrorCode { return ErrCodeRequestFailed }

// DecodeError reports a response body that could not be decoded into the
// declared response type.
type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code(), e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Code returns ErrCodeDecodeFailed.
func (e *DecodeError) Code() ErrorCode { return ErrCodeDecodeFailed }

// InvalidRequestError reports query or body validation failures.
type InvalidRequestError struct {
	Err error
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code(), e.Err)
}

func (e *InvalidRequestError) Unwrap() error { return e.Err }

// Code returns ErrCodeInvalidRequest.
func (e *InvalidRequestError) Code() ErrorCode { return ErrCodeInvalidRequest }

// Code extracts the ErrorCode from an executor error.
// Returns "" if err is not (and does not wrap) an executor error.
func Code(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

// IsMissingPathParameter returns true if err is a MissingPathParameterError.
// Uses errors.As to handle wrapped errors.
func IsMissingPathParameter(err error) bool {
	var e *MissingPathParameterError
	return errors.As(err, &e)
}

// IsRequestError returns true if err is a RequestError.
// Uses errors.As to handle wrapped errors.
func IsRequestError(err error) bool {
	var e *RequestError
	return errors.As(err, &e)
}

// IsDecodeError returns true if err is a DecodeError.
// Uses errors.As to handle wrapped errors.
func IsDecodeError(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

// StatusCode returns the HTTP status carried by a RequestError, or 0.
func StatusCode(err error) int {
	var e *RequestError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func truncate(body []byte) string {
	if len(body) > maxBodyInError {
		return string(body[:maxBodyInError]) + "..."
	}
	return string(body)
}
