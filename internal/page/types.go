package page

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrNoChatContainer = errors.New("page has no .chat-container element")
	ErrMissingIdentity = errors.New("chat container has no data-user-email")
)

// DOM contract
const (
	ContainerSelector = ".chat-container"
	IdentityAttr      = "data-user-email"
)

// HTTPError represents a failed page request.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("page request failed %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the error should trigger a retry.
func (e *HTTPError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// Page is what the client learns from the chat page.
type Page struct {
	URL      string // Page that was fetched
	Identity string // data-user-email of the chat container
	Endpoint string // WebSocket URL of the chat endpoint
}
