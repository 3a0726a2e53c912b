package sdk

// Version is the published SDK version.
// 0.3.0: Add Logout and ListOptions for GetUsers.
// 0.2.0: Breaking - Session tokens are passed per call; the client no longer keeps a
// mutable header set. Non-2xx responses are returned as *APIError instead of a decoded body.
const Version = "0.3.0"
