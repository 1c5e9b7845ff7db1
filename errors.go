package issues

import (
	"net/http"

	"github.com/jmgilman/go/errors"
)

// Argument error codes. They are returned before any request is made.
const (
	// ErrCodeArgumentNull indicates a required reference argument was nil.
	ErrCodeArgumentNull errors.ErrorCode = "ARGUMENT_NULL"

	// ErrCodeArgumentEmpty indicates a required string argument was empty or
	// only whitespace.
	ErrCodeArgumentEmpty errors.ErrorCode = "ARGUMENT_EMPTY"
)

// IsArgumentNull reports whether err was caused by a nil argument.
func IsArgumentNull(err error) bool {
	return errors.GetCode(err) == ErrCodeArgumentNull
}

// IsArgumentEmpty reports whether err was caused by a blank string argument.
func IsArgumentEmpty(err error) bool {
	return errors.GetCode(err) == ErrCodeArgumentEmpty
}

// WrapHTTPError classifies err by the status of the API response that caused
// it. Both providers use it, so a 404 is CodeNotFound whichever backend ran.
func WrapHTTPError(err error, statusCode int, message string) error {
	if err == nil {
		return nil
	}

	var code errors.ErrorCode
	switch statusCode {
	case http.StatusNotFound, http.StatusGone:
		code = errors.CodeNotFound
	case http.StatusUnauthorized:
		code = errors.CodeUnauthorized
	case http.StatusForbidden:
		code = errors.CodeForbidden
	case http.StatusConflict:
		code = errors.CodeConflict
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		code = errors.CodeInvalidInput
	case http.StatusTooManyRequests:
		code = errors.CodeRateLimit
	default:
		if statusCode >= 500 {
			code = errors.CodeNetwork
		} else {
			code = errors.CodeInternal
		}
	}

	wrapped := errors.Wrap(err, code, message)
	return errors.WithContext(wrapped, "status", statusCode)
}

func newArgumentNullError(name string) error {
	return errors.WithContext(errors.Newf(ErrCodeArgumentNull, "%s cannot be nil", name), "argument", name)
}

func newArgumentEmptyError(name string) error {
	return errors.WithContext(errors.Newf(ErrCodeArgumentEmpty, "%s cannot be empty", name), "argument", name)
}

func newInvalidInputError(field, reason string) error {
	return errors.WithContextMap(errors.Newf(errors.CodeInvalidInput, "invalid %s: %s", field, reason),
		map[string]interface{}{"field": field, "reason": reason})
}
