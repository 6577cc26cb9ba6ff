package connection

import (
	"fmt"
	"math"
	"time"

	"github.com/socialconnect/chat-client/internal/ui"
)

// Status labels shown by the manager.
var (
	StatusConnected       = ui.Status{Text: "Connected", Tone: ui.ToneOK}
	StatusDisconnected    = ui.Status{Text: "Disconnected", Tone: ui.ToneError}
	StatusConnectionError = ui.Status{Text: "Connection error", Tone: ui.ToneError}
	StatusFailed          = ui.Status{Text: "Connection failed. Please refresh the page.", Tone: ui.ToneError}
	StatusNotConnected    = ui.Status{Text: "Not connected. Message not sent.", Tone: ui.ToneError}
	StatusInternalError   = ui.Status{Text: "An error occurred. Please try again.", Tone: ui.ToneError}
)

// ReconnectingStatus is shown while a reconnect is pending.
func ReconnectingStatus(delay time.Duration) ui.Status {
	secs := int(math.Round(delay.Seconds()))
	return ui.Status{Text: fmt.Sprintf("Reconnecting in %ds...", secs), Tone: ui.ToneWarn}
}
