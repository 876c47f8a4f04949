package gateway

import "errors"

// ErrUnauthorized reports an invalid or expired token. Callers treat it
// as a session-wide event: the whole client transitions to the
// unauthenticated state, it is never surfaced as a per-action message.
var ErrUnauthorized = errors.New("gateway: unauthorized")

// RemoteError is a failure the service reported itself: a response with
// success=false, such as bad credentials, a duplicate account, or a
// rejected habit. Message carries the service's own wording when present.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return "gateway: request failed"
	}
	return e.Message
}

// Reason extracts the single human-readable message for a failed call:
// the service's wording when it supplied one, the fallback otherwise.
func Reason(err error, fallback string) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return fallback
}
