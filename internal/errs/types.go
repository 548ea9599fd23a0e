// Package errs defines the error shape returned to API clients.
//
// Handlers and the store layer return *HTTPError (directly or through
// sqlerr.HandleError) and the global error handler serializes it, so
// every failure reaches the client as the same JSON object.
package errs

import "strings"

// FieldError is a field-level validation error, e.g.
//
//	{ "field": "id", "error": "must be at least 1" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type for API responses. Override tells the
// error handler the message is safe to show to end users as-is.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
