package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/gookit/color"

	"github.com/socialconnect/chat-client/internal/model"
	"github.com/socialconnect/chat-client/internal/render"
)

var toneStyles = map[Tone]color.Style{
	ToneOK:    color.New(color.FgGreen),
	ToneWarn:  color.New(color.FgYellow),
	ToneError: color.New(color.FgRed, color.OpBold),
}

// Terminal renders the chat to a writer. Lines typed by the user are placed in
// its input with SetValue before the manager is asked to submit them.
type Terminal struct {
	mu         sync.Mutex
	out        io.Writer
	colored    bool
	timeFormat string

	value  string
	status Status
}

// NewTerminal creates a terminal view writing to out.
func NewTerminal(out io.Writer, colored bool, timeFormat string) *Terminal {
	return &Terminal{
		out:        out,
		colored:    colored,
		timeFormat: timeFormat,
	}
}

// SetValue replaces the input contents.
func (t *Terminal) SetValue(v string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = v
}

// Value returns the input contents.
func (t *Terminal) Value() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Clear empties the input.
func (t *Terminal) Clear() {
	t.SetValue("")
}

// ShowStatus prints the status when it changes.
func (t *Terminal) ShowStatus(s Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s == t.status {
		return
	}
	t.status = s

	line := "* " + s.Text
	if t.colored {
		line = toneStyles[s.Tone].Render(line)
	}
	fmt.Fprintln(t.out, line)
}

// CurrentStatus returns the last status shown.
func (t *Terminal) CurrentStatus() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// AppendMessage prints one message line.
func (t *Terminal) AppendMessage(msg model.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, render.Line(msg, t.timeFormat, t.colored))
}

// ScrollToEnd is a no-op; the terminal always follows its output.
func (t *Terminal) ScrollToEnd() {}
