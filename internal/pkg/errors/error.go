package errors

import (
	"errors"
	"fmt"
)

// AppError carries a business code (see codes.go) plus the cause.
type AppError struct {
	Code    int
	Message string // from the code table
	Err     error
	Details string
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	case e.Details != "":
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	default:
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the business code to an HTTP status.
func (e *AppError) HTTPStatus() int {
	return GetHTTPStatus(e.Code)
}

// New creates an AppError with no cause.
func New(code int, details ...string) *AppError {
	return &AppError{Code: code, Message: GetMessage(code), Details: first(details)}
}

// Wrap attaches code to err. An AppError already in the chain keeps its code;
// non-empty details are applied to a copy so the original is not mutated.
func Wrap(err error, code int, details ...string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if d := first(details); d != "" {
			cp := *appErr
			cp.Details = d
			return &cp
		}
		return appErr
	}

	return &AppError{Code: code, Message: GetMessage(code), Err: err, Details: first(details)}
}

// Is reports whether err carries an AppError with code.
func Is(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// ExtractCode returns the business code, ErrInternalServer for plain errors.
func ExtractCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternalServer
}

// GetDetails returns Details, falling back to the cause's message.
func GetDetails(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Details != "" {
			return appErr.Details
		}
		if appErr.Err != nil {
			return appErr.Err.Error()
		}
		return ""
	}
	return err.Error()
}

// Rule maps a sentinel error to a business code.
type Rule struct {
	Target error
	Code   int
}

// Classify wraps err with the code of the first rule whose Target matches
// via errors.Is, or with fallback when none does.
func Classify(err error, fallback int, rules ...Rule) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			return Wrap(err, rule.Code)
		}
	}
	return Wrap(err, fallback)
}

func first(s []string) string {
	if len(s) > 0 {
		return s[0]
	}
	return ""
}
