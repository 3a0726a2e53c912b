// Package sdk provides a Go client for the user endpoints of a Parse REST backend
// (signup, login, email verification, password reset, and user CRUD).
package sdk

import (
	"net/http"
	"strings"

	"github.com/parseusers/parseusers/sdk/go/headers"
)

// authStrategy adds credentials to the headers of a single outgoing request.
type authStrategy interface {
	Apply(h http.Header)
}

type authChain []authStrategy

func (c authChain) Apply(h http.Header) {
	for _, s := range c {
		if s == nil {
			continue
		}
		s.Apply(h)
	}
}

// appAuth carries the application-scoped credentials. They are fixed for the
// lifetime of a Client.
type appAuth struct {
	applicationID string
	masterKey     string
}

func (a appAuth) Apply(h http.Header) {
	if a.applicationID != "" {
		h.Set(headers.ApplicationID, a.applicationID)
	}
	if a.masterKey != "" {
		h.Set(headers.MasterKey, a.masterKey)
	}
}

// sessionAuth attaches a user session token to one request only.
type sessionAuth struct {
	token string
}

func (s sessionAuth) Apply(h http.Header) {
	if s.token == "" {
		return
	}
	h.Set(headers.SessionToken, s.token)
}

func newSessionAuth(token string) sessionAuth {
	return sessionAuth{token: strings.TrimSpace(token)}
}
