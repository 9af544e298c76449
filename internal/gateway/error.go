package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request. Classification happens exactly once,
// in the gateway; callers branch on the kind, presentation code shows the
// normalized user message.
type Kind string

const (
	// KindTimeout means the transport signalled a timeout. The production
	// backend sleeps when idle and can take the better part of a minute to
	// wake, so this gets its own "try again shortly" message.
	KindTimeout Kind = "timeout"

	// KindHTTPStatus means a response arrived with a non-2xx status.
	KindHTTPStatus Kind = "http_status"

	// KindNoResponse means the request was sent but nothing came back
	// (connectivity loss, DNS failure, refused connection).
	KindNoResponse Kind = "no_response"

	// KindOther covers everything else (malformed request, body encode
	// failure and the like).
	KindOther Kind = "other"
)

// Error is the gateway's classified failure. It keeps the original cause
// (via Unwrap) so calling code can still branch on it, while UserMessage
// carries the normalized, presentable text.
type Error struct {
	Kind        Kind
	Status      int    // HTTP status code, when Kind == KindHTTPStatus
	Path        string // request path
	UserMessage string
	Body        []byte // response body prefix, when a response was received
	Err         error  // original cause, may be nil for pure status errors
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway: %s %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("gateway: %s %s: %s", e.Kind, e.Path, e.UserMessage)
}

func (e *Error) Unwrap() error { return e.Err }

// IsStatus reports whether err is a gateway status error with the given code.
func IsStatus(err error, code int) bool {
	var ge *Error
	if !errors.As(err, &ge) {
		return false
	}
	return ge.Kind == KindHTTPStatus && ge.Status == code
}

// UserMessage extracts the normalized user-facing message from an error.
// Non-gateway errors fall back to their plain Error() text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ge *Error
	if errors.As(err, &ge) && ge.UserMessage != "" {
		return ge.UserMessage
	}
	return err.Error()
}
