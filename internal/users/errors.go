package users

import "fmt"

// UserNotFoundError is returned when no account exists for a username.
type UserNotFoundError struct {
	Username string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("no user found with username %q", e.Username)
}

// BadSignInError is returned when a password does not match the stored hash.
type BadSignInError struct {
	Username string
}

func (e *BadSignInError) Error() string {
	return fmt.Sprintf("incorrect password for %q", e.Username)
}
