// Package routes provides the Parse REST route constants used by the SDK
// so that paths are defined in one place.
package routes

const (
	// Users creates a user (POST).
	Users = "/users"

	// UsersList lists users (GET). The trailing slash is what the service expects.
	UsersList = "/users/"

	// UsersByID reads, updates or deletes one user.
	UsersByID = "/users/{id}"

	// UsersMe returns the user owning the supplied session token.
	UsersMe = "/users/me"

	// Login exchanges username and password for a session.
	Login = "/login"

	// Logout revokes the supplied session token.
	Logout = "/logout"

	// VerificationEmailRequest re-sends the email verification message.
	VerificationEmailRequest = "/verificationEmailRequest"

	// RequestPasswordReset sends a password reset email.
	RequestPasswordReset = "/requestPasswordReset"
)
