package registry

import (
	"errors"
	"fmt"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
)

// RegistrationError reports a group that could not be registered, either
// because it is malformed or because one of its identifiers is taken.
type RegistrationError struct {
	Namespace string
	// Identifier is the colliding or offending identifier, when there is one.
	Identifier string
	Reason     string
	// Collision is true when Identifier is already registered or reserved.
	Collision bool
	Err       error
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	switch {
	case e.Collision:
		return fmt.Sprintf("registration of namespace %q failed: identifier %q %s", e.Namespace, e.Identifier, e.Reason)
	case e.Identifier != "":
		return fmt.Sprintf("registration of namespace %q failed: tool %q: %s", e.Namespace, e.Identifier, e.Reason)
	default:
		return fmt.Sprintf("registration of namespace %q failed: %s", e.Namespace, e.Reason)
	}
}

// Unwrap returns the underlying cause.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Is matches *api.Error targets of kind registration_error.
func (e *RegistrationError) Is(target error) bool {
	t, ok := target.(*api.Error)
	return ok && t.Kind == api.KindRegistration && t.Message == ""
}

// IsRegistrationError checks whether err wraps a *RegistrationError.
func IsRegistrationError(err error) bool {
	var regErr *RegistrationError
	return errors.As(err, &regErr)
}
