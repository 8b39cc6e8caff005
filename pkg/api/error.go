package api

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

// genericMessage is the fallback when the server's error body is absent
// or malformed.
const genericMessage = "something went wrong, please try again"

// Error represents a failed API call: a transport-level failure, a
// non-2xx status, or a 200 whose envelope carries success=false. The
// client treats all three identically.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
	}
	return e.Message
}

// envelope is the fixed response frame every endpoint replies with:
// {success: bool, message?: string, <payload key>: T}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ParseError extracts a human-readable error from a failed response,
// falling back to a generic message when the body is not the expected
// envelope.
func ParseError(resp *resty.Response) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err == nil && env.Message != "" {
		return &Error{StatusCode: resp.StatusCode(), Message: env.Message}
	}
	return &Error{StatusCode: resp.StatusCode(), Message: genericMessage}
}

// CheckResponse normalizes transport and HTTP-level failures into *Error
func CheckResponse(resp *resty.Response, err error) error {
	if err != nil {
		return &Error{Message: err.Error()}
	}
	if !resp.IsSuccess() {
		return ParseError(resp)
	}
	return nil
}

// decode unmarshals a successful HTTP response into target and enforces
// the envelope's success flag: success=false is an error even on a 200.
func decode(resp *resty.Response, target interface{}) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return &Error{StatusCode: resp.StatusCode(), Message: genericMessage}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = genericMessage
		}
		return &Error{StatusCode: resp.StatusCode(), Message: msg}
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), target); err != nil {
		return &Error{StatusCode: resp.StatusCode(), Message: genericMessage}
	}
	return nil
}

// IsUnauthorized checks if error is due to missing/invalid authentication
func IsUnauthorized(err error) bool {
	if apiErr, ok := err.(*Error); ok {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsForbidden checks if error is due to insufficient permissions
func IsForbidden(err error) bool {
	if apiErr, ok := err.(*Error); ok {
		return apiErr.StatusCode == 403
	}
	return false
}

// IsNotFound checks if error is due to resource not found
func IsNotFound(err error) bool {
	if apiErr, ok := err.(*Error); ok {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsServerError checks if error is due to server error (5xx)
func IsServerError(err error) bool {
	if apiErr, ok := err.(*Error); ok {
		return apiErr.StatusCode >= 500
	}
	return false
}
