package api

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable, machine-readable category of an Error. Callers of
// the tool surface receive it verbatim in structured error results.
type ErrorKind string

const (
	// KindConfigLoad marks malformed settings detected at startup.
	KindConfigLoad ErrorKind = "config_load_error"
	// KindRegistration marks a naming collision or malformed tool group.
	KindRegistration ErrorKind = "registration_error"
	// KindToolNotFound marks an invocation of a name that was never registered.
	KindToolNotFound ErrorKind = "tool_not_found"
	// KindAuthenticationConfig marks a credential-requiring call made without a credential.
	KindAuthenticationConfig ErrorKind = "authentication_config_error"
	// KindRemoteTimeout marks an outbound call that exceeded the configured timeout.
	KindRemoteTimeout ErrorKind = "remote_timeout_error"
	// KindRemoteUnavailable marks a failed or non-successful outbound call.
	KindRemoteUnavailable ErrorKind = "remote_unavailable_error"
	// KindInvalidArgument marks missing or ill-typed tool parameters.
	KindInvalidArgument ErrorKind = "invalid_argument"
	// KindInternal is used for any error that does not carry a kind.
	KindInternal ErrorKind = "internal_error"
)

// Error is the typed error used across the tool surface.
//
// Message is safe to show to callers. Err holds the underlying cause for
// logging and errors.Is/As, and is never rendered into tool results.
type Error struct {
	Kind    ErrorKind
	Message string

	// StatusCode is the remote HTTP status, when one was received.
	StatusCode int
	// Detail is a short, single-line excerpt of the remote response body.
	Detail string

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. This lets callers
// write errors.Is(err, &api.Error{Kind: api.KindRemoteTimeout}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind around cause.
func Wrap(kind ErrorKind, cause error, messageFmt string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(messageFmt, args...), Err: cause}
}

// NewAuthenticationConfigError reports that a credential is required but not configured.
func NewAuthenticationConfigError(message string) *Error {
	return NewError(KindAuthenticationConfig, message)
}

// NewToolNotFoundError reports an unknown tool identifier.
func NewToolNotFoundError(identifier string) *Error {
	return NewError(KindToolNotFound, fmt.Sprintf("tool %s not found", identifier))
}

// NewInvalidArgumentError reports a bad tool parameter.
func NewInvalidArgumentError(messageFmt string, args ...interface{}) *Error {
	return NewError(KindInvalidArgument, fmt.Sprintf(messageFmt, args...))
}

// NewRemoteTimeoutError reports an outbound call that ran out of time.
func NewRemoteTimeoutError(target string, cause error) *Error {
	return &Error{
		Kind:    KindRemoteTimeout,
		Message: fmt.Sprintf("request to %s timed out", target),
		Err:     cause,
	}
}

// NewRemoteUnavailableError reports an outbound call that failed. statusCode
// is zero when no response was received.
func NewRemoteUnavailableError(target string, statusCode int, detail string, cause error) *Error {
	msg := fmt.Sprintf("request to %s failed", target)
	if statusCode != 0 {
		msg = fmt.Sprintf("request to %s failed with status %d", target, statusCode)
	}
	return &Error{
		Kind:       KindRemoteUnavailable,
		Message:    msg,
		StatusCode: statusCode,
		Detail:     detail,
		Err:        cause,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}

// IsKind checks whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// IsNotFound checks whether err reports an unknown tool.
func IsNotFound(err error) bool {
	return IsKind(err, KindToolNotFound)
}
