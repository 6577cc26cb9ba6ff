package ui

import "github.com/socialconnect/chat-client/internal/model"

// Tone is the colour class of a status label.
type Tone int

const (
	ToneOK    Tone = iota // green
	ToneWarn              // orange
	ToneError             // red
)

// String returns the CSS colour name used by the page.
func (t Tone) String() string {
	switch t {
	case ToneOK:
		return "green"
	case ToneWarn:
		return "orange"
	case ToneError:
		return "red"
	default:
		return "unknown"
	}
}

// Status is the text shown in the connection status element.
type Status struct {
	Text string
	Tone Tone
}

// Container is the chat root element carrying the current user's identity.
type Container interface {
	UserIdentity() string
}

// Input is the message input field.
type Input interface {
	Value() string
	Clear()
}

// StatusDisplay is the connection status element.
type StatusDisplay interface {
	ShowStatus(Status)
}

// MessageList is the element messages are appended to.
type MessageList interface {
	AppendMessage(model.ChatMessage)
	ScrollToEnd()
}

// View bundles the page elements. All methods are called from a single goroutine.
type View struct {
	Container Container
	Input     Input
	Status    StatusDisplay
	Messages  MessageList
}

// Identity is a fixed Container.
type Identity string

// UserIdentity returns the identity.
func (i Identity) UserIdentity() string { return string(i) }
