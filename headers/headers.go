// Package headers defines HTTP header constants used by the Parse REST API.
// This is the single source of truth for header names used in SDK requests.
package headers

const (
	// ContentType is set to application/json on every request.
	ContentType = "Content-Type"

	// RevocableSession asks the server to issue revocable session tokens ("1").
	RevocableSession = "X-Parse-Revocable-Session"

	// ApplicationID scopes every request to one backend application.
	ApplicationID = "X-Parse-Application-Id"

	// MasterKey grants elevated, application-wide access.
	MasterKey = "X-Parse-Master-Key" //nolint:gosec // This is a header name, not a credential

	// SessionToken carries the per-user session for authenticated calls.
	// It is attached to a single request and never stored on the client.
	SessionToken = "X-Parse-Session-Token" //nolint:gosec // This is a header name, not a credential

	// RequestID is used by the server for idempotent request handling.
	RequestID = "X-Parse-Request-Id"
)
