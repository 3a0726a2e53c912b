package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Parse error codes the SDK gives names to. Other codes are passed through as-is.
const (
	CodeObjectNotFound      = 101
	CodeUsernameMissing     = 200
	CodePasswordMissing     = 201
	CodeUsernameTaken       = 202
	CodeEmailTaken          = 203
	CodeEmailMissing        = 204
	CodeEmailNotFound       = 205
	CodeInvalidSessionToken = 209
)

// APIError is returned for every non-2xx response. Body always holds the raw
// response so no upstream detail is lost.
type APIError struct {
	Status  int
	Code    int
	Message string
	Body    []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != 0 {
		return fmt.Sprintf("sdk: http %d: parse error %d: %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("sdk: http %d: %s", e.Status, msg)
}

// TransportError wraps failures from the HTTP client itself (connection, TLS,
// timeout, cancellation, truncated body).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sdk: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a 2xx response whose body is not a JSON object.
type DecodeError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("sdk: decode response (http %d): %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeAPIError(resp *http.Response, data []byte) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Body: data}
	if len(strings.TrimSpace(string(data))) == 0 {
		apiErr.Message = resp.Status
		return apiErr
	}
	var payload struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		apiErr.Message = strings.TrimSpace(string(data))
		return apiErr
	}
	apiErr.Code = payload.Code
	apiErr.Message = payload.Error
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}
	return apiErr
}

// IsAPIError reports whether err carries an upstream error response.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsNotFound reports whether the service said the object does not exist.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == CodeObjectNotFound || (apiErr.Code == 0 && apiErr.Status == http.StatusNotFound)
}

// IsInvalidSession reports whether the session token was rejected.
func IsInvalidSession(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeInvalidSessionToken
}

// IsTransportError reports whether err came from the HTTP transport rather than the service.
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
