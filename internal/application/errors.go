package application

import "errors"

// Failure kinds surfaced by the services. Handlers map these to HTTP
// statuses; anything else is treated as an internal error.
var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserExists             = errors.New("user already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrNotFound               = errors.New("not found")
	ErrSearchUnavailable      = errors.New("search is not configured")
)

// ValidationError reports caller-supplied input that failed a service-level
// check (beyond what request binding already validated).
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
