package sdk

import (
	"context"
	"sync"
)

// MockClient provides an in-memory client for unit tests without hitting the API.
type MockClient struct {
	Users *MockUsersClient
}

// MockClientError is returned when a mock client is used without configuration.
type MockClientError struct {
	Reason string
}

func (e MockClientError) Error() string { return "mock client: " + e.Reason }

// MockCall records one invocation of a MockUsersClient method.
type MockCall struct {
	Op           string
	UserID       string
	SessionToken string
	Username     string
	Email        string
	Data         map[string]any
	Options      *ListOptions
}

type mockResult struct {
	obj Object
	err error
}

// MockUsersClient implements UsersAPI using preconfigured responses. Responses
// are consumed in order regardless of which method is called.
type MockUsersClient struct {
	mu    sync.Mutex
	queue []mockResult
	calls []MockCall
}

// NewMockClient creates an empty mock client.
func NewMockClient() *MockClient {
	return &MockClient{Users: &MockUsersClient{}}
}

// WithResponse enqueues an object for the next call.
func (c *MockClient) WithResponse(obj Object) *MockClient {
	c.Users.enqueue(obj, nil)
	return c
}

// WithError enqueues an error for the next call.
func (c *MockClient) WithError(err error) *MockClient {
	c.Users.enqueue(nil, err)
	return c
}

// Calls returns a copy of the calls recorded so far.
func (c *MockUsersClient) Calls() []MockCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]MockCall(nil), c.calls...)
}

func (c *MockUsersClient) enqueue(obj Object, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = append(c.queue, mockResult{obj: copyObject(obj), err: err})
}

func (c *MockUsersClient) next(call MockCall) (Object, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
	if len(c.queue) == 0 {
		return nil, MockClientError{Reason: "no responses configured for " + call.Op}
	}
	res := c.queue[0]
	c.queue = c.queue[1:]
	if res.err != nil {
		return nil, res.err
	}
	return copyObject(res.obj), nil
}

func copyObject(obj Object) Object {
	if obj == nil {
		return nil
	}
	out := make(Object, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	return out
}

// Signup returns the next queued response.
func (c *MockUsersClient) Signup(_ context.Context, data map[string]any) (Object, error) {
	return c.next(MockCall{Op: "Signup", Data: data})
}

// Login returns the next queued response.
func (c *MockUsersClient) Login(_ context.Context, username, _ string) (Object, error) {
	return c.next(MockCall{Op: "Login", Username: username})
}

// Logout returns the next queued response.
func (c *MockUsersClient) Logout(_ context.Context, sessionToken string) (Object, error) {
	return c.next(MockCall{Op: "Logout", SessionToken: sessionToken})
}

// VerifyEmail returns the next queued response.
func (c *MockUsersClient) VerifyEmail(_ context.Context, email string) (Object, error) {
	return c.next(MockCall{Op: "VerifyEmail", Email: email})
}

// ResetPassword returns the next queued response.
func (c *MockUsersClient) ResetPassword(_ context.Context, email string) (Object, error) {
	return c.next(MockCall{Op: "ResetPassword", Email: email})
}

// GetUser returns the next queued response.
func (c *MockUsersClient) GetUser(_ context.Context, userID string) (Object, error) {
	return c.next(MockCall{Op: "GetUser", UserID: userID})
}

// GetCurrentUser returns the next queued response.
func (c *MockUsersClient) GetCurrentUser(_ context.Context, sessionToken string) (Object, error) {
	return c.next(MockCall{Op: "GetCurrentUser", SessionToken: sessionToken})
}

// UpdateUser returns the next queued response as the re-fetched user.
func (c *MockUsersClient) UpdateUser(_ context.Context, userID, sessionToken string, data map[string]any) (Object, error) {
	return c.next(MockCall{Op: "UpdateUser", UserID: userID, SessionToken: sessionToken, Data: data})
}

// GetUsers returns the next queued response.
func (c *MockUsersClient) GetUsers(_ context.Context, opts ...ListOptions) (Object, error) {
	call := MockCall{Op: "GetUsers"}
	if len(opts) > 0 {
		o := opts[0]
		call.Options = &o
	}
	return c.next(call)
}

// DeleteUser returns the next queued response.
func (c *MockUsersClient) DeleteUser(_ context.Context, userID, sessionToken string) (Object, error) {
	return c.next(MockCall{Op: "DeleteUser", UserID: userID, SessionToken: sessionToken})
}
