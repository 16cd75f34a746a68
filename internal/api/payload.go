package api

import "errors"

// internalErrorMessage replaces the message of errors that carry no kind, so
// that nothing about the process's internal state reaches callers.
const internalErrorMessage = "internal error while handling the tool invocation"

// ErrorPayload is the structured error body returned to tool callers.
type ErrorPayload struct {
	Kind       ErrorKind `json:"kind" yaml:"kind"`
	Message    string    `json:"message" yaml:"message"`
	StatusCode int       `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Detail     string    `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// ErrorEnvelope wraps ErrorPayload under an "error" key.
type ErrorEnvelope struct {
	Error ErrorPayload `json:"error" yaml:"error"`
}

// PayloadFor converts err into the payload callers see. Errors without a kind
// are reported as KindInternal with a fixed message.
func PayloadFor(err error) ErrorPayload {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return ErrorPayload{Kind: KindInternal, Message: internalErrorMessage}
	}
	msg := apiErr.Message
	if apiErr.Kind == KindInternal && msg == "" {
		msg = internalErrorMessage
	}
	return ErrorPayload{
		Kind:       apiErr.Kind,
		Message:    msg,
		StatusCode: apiErr.StatusCode,
		Detail:     apiErr.Detail,
	}
}
