package common

// RequestIDHeaderName is the HTTP header echoing the per-request ID assigned
// by the server's logging middleware.
const RequestIDHeaderName = "X-Request-ID"
