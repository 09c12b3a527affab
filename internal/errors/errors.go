package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with code, message, and metadata
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// LogAttrs flattens the error into slog key/value pairs.
func (e *Error) LogAttrs() []any {
	attrs := make([]any, 0, 4+2*len(e.Meta))
	attrs = append(attrs, "code", string(e.Code), "message", e.Message)
	for k, v := range e.Meta {
		attrs = append(attrs, k, v)
	}
	if e.Cause != nil {
		attrs = append(attrs, "error", e.Cause)
	}
	return attrs
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error, preserving its code if it's an Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Code:    existingErr.Code,
			Message: message,
			Cause:   err,
			Meta:    existingErr.Meta,
		}
	}

	return &Error{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	meta := make(map[string]any)
	var existingErr *Error
	if errors.As(err, &existingErr) {
		for k, v := range existingErr.Meta {
			meta[k] = v
		}
	}

	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
		Meta:    meta,
	}
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a not found error with formatted message
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates an invalid argument error with formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internalf creates an internal error with formatted message
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Unavailablef creates an unavailable error with formatted message
func Unavailablef(format string, args ...any) *Error {
	return Newf(CodeUnavailable, format, args...)
}

// UnknownSchoolCode reports an unrecognized school letter on a spell bundle.
func UnknownSchoolCode(spellKey, code string) *Error {
	return Newf(CodeUnknownSchoolCode, "unknown school code %q", code).
		WithMeta("spell", spellKey)
}

// UnknownDescriptorSyntax reports descriptor text that did not parse.
func UnknownDescriptorSyntax(text string) *Error {
	return Newf(CodeUnknownDescriptorSyntax, "unrecognized descriptor %q", text)
}

// MissingReferencedEntity reports a key absent from the catalog.
func MissingReferencedEntity(spellKey, entityKey string) *Error {
	return Newf(CodeMissingReferencedEntity, "%s not found in catalog", entityKey).
		WithMeta("spell", spellKey).
		WithMeta("entity", entityKey)
}

// AmbiguousSpecificOverwrite reports a discarded competing specific descriptor.
func AmbiguousSpecificOverwrite(spellKey, entityKey string) *Error {
	return New(CodeAmbiguousSpecificOverwrite, "competing specific descriptor discarded").
		WithMeta("spell", spellKey).
		WithMeta("entity", entityKey)
}

// InvalidSpellLevel reports a level string outside "0".."9".
func InvalidSpellLevel(spellKey, level string) *Error {
	return Newf(CodeInvalidSpellLevel, "invalid spell level %q", level).
		WithMeta("spell", spellKey)
}

// InvalidCatalogRecord reports a corpus record the catalog refused.
func InvalidCatalogRecord(key string, cause error) *Error {
	return WrapWithCode(cause, CodeInvalidCatalogRecord, "catalog record skipped").
		WithMeta("record", key)
}
