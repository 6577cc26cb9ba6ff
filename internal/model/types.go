package model

import (
	"errors"
	"time"
)

// Errors
var (
	ErrMalformedFrame = errors.New("malformed frame")
)

// -----------------------------------------------------------------------------
// Wire Types
// -----------------------------------------------------------------------------

// Inbound is a frame received from the chat endpoint.
// A frame carrying Error replaces a chat message and is never rendered.
type Inbound struct {
	UserEmail string `json:"user_email" validate:"required_without=Error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"` // Set on history replayed at connect
	Error     string `json:"error,omitempty"`
}

// Outbound is a frame sent to the chat endpoint.
type Outbound struct {
	Message string `json:"message"`
}

// -----------------------------------------------------------------------------
// Display Types
// -----------------------------------------------------------------------------

// Direction classifies a message relative to the current user.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// OwnHeader is shown instead of the sender identity on the user's own messages.
const OwnHeader = "You"

// ChatMessage is a classified message ready to be rendered.
type ChatMessage struct {
	Direction Direction
	Header    string    // "You" or the sender identity
	Sender    string    // Sender identity as received
	Body      string    // Message text, unescaped
	SentAt    time.Time // Zero unless the frame carried a timestamp
}

// IsError reports whether the frame signals a server-side failure.
func (in Inbound) IsError() bool {
	return in.Error != ""
}
