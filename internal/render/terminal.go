package render

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gookit/color"

	"github.com/socialconnect/chat-client/internal/model"
)

// ansiAny matches CSI sequences (colours, cursor movement, erase) and OSC sequences.
var ansiAny = regexp.MustCompile(`\x1b\[[\x20-\x3f]*[\x40-\x7e]|\x1b\][^\x07\x1b]*(\x07|\x1b\\)?`)

var (
	ownStyle    = color.New(color.FgCyan, color.OpBold)
	senderStyle = color.New(color.FgMagenta, color.OpBold)
	timeStyle   = color.New(color.FgGray)
)

// Sanitize strips escape sequences and control characters from untrusted text.
// Newlines become spaces so one message stays on one line.
func Sanitize(s string) string {
	s = ansiAny.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}

// Line renders one message for a terminal: "[15:04] You: hi".
func Line(msg model.ChatMessage, timeFormat string, colored bool) string {
	var b strings.Builder

	if !msg.SentAt.IsZero() && timeFormat != "" {
		ts := "[" + msg.SentAt.Local().Format(timeFormat) + "] "
		if colored {
			ts = timeStyle.Render(ts)
		}
		b.WriteString(ts)
	}

	header := Sanitize(msg.Header) + ":"
	if colored {
		if msg.Direction == model.DirectionSent {
			header = ownStyle.Render(header)
		} else {
			header = senderStyle.Render(header)
		}
	}
	b.WriteString(header)
	b.WriteByte(' ')
	b.WriteString(Sanitize(msg.Body))

	return b.String()
}
