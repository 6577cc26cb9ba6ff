package connection

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Errors
var (
	ErrNotConnected      = errors.New("not connected")
	ErrStaleConnection   = errors.New("connection stale (no ping)")
	ErrAlreadyClosed     = errors.New("already closed")
	ErrAlreadyStarted    = errors.New("already started")
	ErrStopped           = errors.New("manager stopped")
	ErrUnsupportedScheme = errors.New("unsupported page scheme")
)

// Close codes used when the transport gives none.
const (
	CloseNormal   = 1000
	CloseAbnormal = 1006
)

// CloseError reports that the peer closed the connection.
type CloseError struct {
	Code int
	Text string
}

func (e *CloseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("connection closed (%d)", e.Code)
	}
	return fmt.Sprintf("connection closed (%d): %s", e.Code, e.Text)
}

// TimestampedMessage wraps raw message data with receive timestamp.
type TimestampedMessage struct {
	Data       []byte    // Raw message bytes from WebSocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// ClientConfig configures a WebSocket client.
type ClientConfig struct {
	URL              string        // WebSocket URL (e.g., wss://chat.example.com/ws/chat/)
	Header           http.Header   // Extra handshake headers (e.g., Cookie)
	HandshakeTimeout time.Duration // Max time for the opening handshake
	PingInterval     time.Duration // How often to ping the server
	PingTimeout      time.Duration // Max time without ping/pong before considering connection stale
	WriteTimeout     time.Duration // Write deadline for sends
	BufferSize       int           // Message channel buffer size
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		HandshakeTimeout: 10 * time.Second,
		PingInterval:     30 * time.Second,
		PingTimeout:      60 * time.Second,
		WriteTimeout:     5 * time.Second,
		BufferSize:       256,
	}
}

// ManagerConfig configures the Connection Manager.
type ManagerConfig struct {
	Client            ClientConfig  // Used for every connection instance
	MaxAttempts       int           // Reconnects allowed without an intervening open
	Backoff           Backoff       // Delay before reconnect attempt n (1-based)
	StatusRevertDelay time.Duration // How long "not connected" stays before reverting
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Client:            DefaultClientConfig(),
		MaxAttempts:       5,
		Backoff:           DefaultBackoff(),
		StatusRevertDelay: 3 * time.Second,
	}
}

// State is the lifecycle state of the managed connection.
type State int

const (
	StateAbsent State = iota
	StateConnecting
	StateOpen
	StateClosed
	StateFailed // Retries exhausted; terminal
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventKind identifies an event handled by the dispatch loop.
type EventKind int

const (
	EventOpened EventKind = iota + 1
	EventMessage
	EventClosed
	EventErrored

	eventConnect
	eventSubmit
	eventRevertStatus
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventMessage:
		return "message"
	case EventClosed:
		return "closed"
	case EventErrored:
		return "errored"
	case eventConnect:
		return "connect"
	case eventSubmit:
		return "submit"
	case eventRevertStatus:
		return "revert_status"
	default:
		return "unknown"
	}
}

// Event is one unit of work for the dispatch loop.
type Event struct {
	Kind EventKind
	Conn uuid.UUID // Connection instance the event belongs to (transport events only)
	Data []byte    // EventMessage payload
	Code int       // EventClosed close code
	Err  error     // EventErrored cause
	At   time.Time

	token uint64        // eventRevertStatus generation
	done  chan struct{} // closed once the event is handled
}

func (e Event) ack() {
	if e.done != nil {
		close(e.done)
	}
}

// ManagerStats provides statistics about the connection manager.
type ManagerStats struct {
	State    State
	Attempts int       // Current reconnect counter
	ConnID   uuid.UUID // Current connection instance (zero when none)
	Connects int64     // Connection instances created
	Rendered int64     // Messages appended to the list
	Dropped  int64     // Frames dropped as malformed or server errors
	Sent     int64     // Frames sent
}
