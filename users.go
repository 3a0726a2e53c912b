package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/parseusers/parseusers/sdk/go/routes"
)

// UsersAPI is the user surface implemented by *UsersClient and *MockUsersClient.
type UsersAPI interface {
	Signup(ctx context.Context, data map[string]any) (Object, error)
	Login(ctx context.Context, username, password string) (Object, error)
	Logout(ctx context.Context, sessionToken string) (Object, error)
	VerifyEmail(ctx context.Context, email string) (Object, error)
	ResetPassword(ctx context.Context, email string) (Object, error)
	GetUser(ctx context.Context, userID string) (Object, error)
	GetCurrentUser(ctx context.Context, sessionToken string) (Object, error)
	UpdateUser(ctx context.Context, userID, sessionToken string, data map[string]any) (Object, error)
	GetUsers(ctx context.Context, opts ...ListOptions) (Object, error)
	DeleteUser(ctx context.Context, userID, sessionToken string) (Object, error)
}

var (
	_ UsersAPI = (*UsersClient)(nil)
	_ UsersAPI = (*MockUsersClient)(nil)
)

// LoginRequest mirrors POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

// ListOptions maps to the query parameters accepted by GET /users/.
// The zero value sends no parameters.
type ListOptions struct {
	// Where is JSON-encoded into the "where" constraint.
	Where map[string]any
	// Order is a comma separated list of keys, "-" prefix for descending.
	Order string
	Limit int
	Skip  int
	// Count asks the service to include the total in "count".
	Count bool
	// Keys restricts the returned fields.
	Keys []string
}

func (o ListOptions) values() (url.Values, error) {
	values := url.Values{}
	if len(o.Where) > 0 {
		encoded, err := json.Marshal(o.Where)
		if err != nil {
			return nil, fmt.Errorf("sdk: encode where: %w", err)
		}
		values.Set("where", string(encoded))
	}
	if o.Order != "" {
		values.Set("order", o.Order)
	}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Skip > 0 {
		values.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Count {
		values.Set("count", "1")
	}
	if len(o.Keys) > 0 {
		values.Set("keys", strings.Join(o.Keys, ","))
	}
	return values, nil
}

// UsersClient wraps the user endpoints. Every method issues its own request with
// its own headers; session tokens are never shared between calls.
type UsersClient struct {
	client *Client
}

func (u *UsersClient) ready() error {
	if u == nil || u.client == nil {
		return errors.New("sdk: users client not initialized")
	}
	return nil
}

// Signup registers a new user. data is sent verbatim; Parse requires at least
// username and password but any extra fields are stored on the user.
func (u *UsersClient) Signup(ctx context.Context, data map[string]any) (Object, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	return u.client.do(ctx, http.MethodPost, routes.Users, routes.Users, data)
}

// Login exchanges a username and password for the user object, which includes
// the session token.
func (u *UsersClient) Login(ctx context.Context, username, password string) (Object, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}
	req := LoginRequest{Username: username, Password: password}
	return u.client.do(ctx, http.MethodPost, routes.Login, routes.Login, req)
}

// Logout revokes the session token.
func (u *UsersClient) Logout(ctx context.Context, sessionToken string) (Object, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}
	auth, err := requireSession(sessionToken)
	if err != nil {
		return nil, err
	}
	return u.client.do(ctx, http.MethodPost, routes.Logout, routes.Logout, map[string]any{}, auth)
}

// VerifyEmail asks the service to re-send the verification email.
func (u *UsersClient) VerifyEmail(ctx context.Context, email string) (Object, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("sdk: email required")
	}
	return u.client.do(ctx, http.MethodPost, routes.VerificationEmailRequest, routes.VerificationEmailRequest, emailRequest{Email: email})
}

// ResetPassword starts the password reset flow for the account tied to email.
func (u *UsersClient) ResetPassword(ctx context.Context, email string) (Object, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("sdk: email required")
	}
	return u.client.do(ctx, http.MethodPost, routes.RequestPasswordReset, routes.RequestPasswordReset, emailRequest{Email: email})
}

// GetUser returns the user with the given objectId.
func (u *UsersClient) GetUser(ctx context.Context, userID string) (Object, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}
	path, err := userPath(userID)
	if err != nil {
		return nil, err
	}
	return u.client.do(ctx, http.MethodGet, routes.UsersByID, path, nil)
}

// GetCurrentUser returns the user that owns sessionToken.
func (u *UsersClient) GetCurrentUser(ctx context.Context, sessionToken string) (Object, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}
	auth, err := requireSession(sessionToken)
	if err != nil {
		return nil, err
	}
	return u.client.do(ctx, http.MethodGet, routes.UsersMe, routes.UsersMe, nil, auth)
}

// UpdateUser writes data to the user and then re-reads it with GetUser, returning
// the re-read object. The two calls are not atomic: a concurrent writer can change
// the user in between.
func (u *UsersClient) UpdateUser(ctx context.Context, userID, sessionToken string, data map[string]any) (Object, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}
	path, err := userPath(userID)
	if err != nil {
		return nil, err
	}
	auth, err := requireSession(sessionToken)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, err := u.client.do(ctx, http.MethodPut, routes.UsersByID, path, data, auth); err != nil {
		return nil, err
	}
	updated, err := u.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("sdk: re-fetch updated user %s: %w", userID, err)
	}
	return updated, nil
}

// GetUsers lists users. At most one ListOptions is used.
func (u *UsersClient) GetUsers(ctx context.Context, opts ...ListOptions) (Object, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}
	path := routes.UsersList
	if len(opts) > 0 {
		values, err := opts[0].values()
		if err != nil {
			return nil, err
		}
		if len(values) > 0 {
			path += "?" + values.Encode()
		}
	}
	return u.client.do(ctx, http.MethodGet, routes.UsersList, path, nil)
}

// DeleteUser removes the user. The session must belong to that user unless the
// client was configured with the master key.
func (u *UsersClient) DeleteUser(ctx context.Context, userID, sessionToken string) (Object, error) {
	if err := u.ready(); err != nil {
		return nil, err
	}
	path, err := userPath(userID)
	if err != nil {
		return nil, err
	}
	auth, err := requireSession(sessionToken)
	if err != nil {
		return nil, err
	}
	return u.client.do(ctx, http.MethodDelete, routes.UsersByID, path, nil, auth)
}

func userPath(userID string) (string, error) {
	id := strings.TrimSpace(userID)
	if id == "" {
		return "", errors.New("sdk: user id required")
	}
	return strings.Replace(routes.UsersByID, "{id}", url.PathEscape(id), 1), nil
}

func requireSession(token string) (sessionAuth, error) {
	auth := newSessionAuth(token)
	if auth.token == "" {
		return sessionAuth{}, errors.New("sdk: session token required")
	}
	return auth, nil
}
