//go:build js && wasm

package dom

import (
	"fmt"
	"syscall/js"

	"github.com/socialconnect/chat-client/internal/model"
	"github.com/socialconnect/chat-client/internal/render"
	"github.com/socialconnect/chat-client/internal/ui"
)

// Element ids of the chat page.
const (
	InputID    = "chat-message-input"
	SubmitID   = "chat-message-submit"
	StatusID   = "connection-status"
	MessagesID = "chat-messages"
)

// View is the chat page. Its methods must be called from one goroutine.
type View struct {
	container js.Value
	input     js.Value
	submit    js.Value
	status    js.Value
	messages  js.Value

	timeFormat string
	funcs      []js.Func
}

// Attach looks up the chat elements in doc.
func Attach(doc js.Value, timeFormat string) (*View, error) {
	v := &View{timeFormat: timeFormat}

	v.container = doc.Call("querySelector", ".chat-container")
	if v.container.IsNull() {
		return nil, fmt.Errorf("page has no .chat-container element")
	}

	lookups := []struct {
		id  string
		dst *js.Value
	}{
		{InputID, &v.input},
		{SubmitID, &v.submit},
		{StatusID, &v.status},
		{MessagesID, &v.messages},
	}
	for _, l := range lookups {
		el := doc.Call("getElementById", l.id)
		if el.IsNull() {
			return nil, fmt.Errorf("page has no #%s element", l.id)
		}
		*l.dst = el
	}

	return v, nil
}

// UIView returns v as the bundle the connection manager consumes.
func (v *View) UIView() ui.View {
	return ui.View{Container: v, Input: v, Status: v, Messages: v}
}

// UserIdentity returns the container's data-user-email.
func (v *View) UserIdentity() string {
	attr := v.container.Call("getAttribute", "data-user-email")
	if attr.IsNull() {
		return ""
	}
	return attr.String()
}

func (v *View) Value() string { return v.input.Get("value").String() }
func (v *View) Clear()        { v.input.Set("value", "") }

// ShowStatus sets the status text and colour.
func (v *View) ShowStatus(s ui.Status) {
	v.status.Set("textContent", s.Text)
	v.status.Get("style").Set("color", s.Tone.String())
}

// AppendMessage inserts escaped markup for msg at the end of the list.
func (v *View) AppendMessage(msg model.ChatMessage) {
	markup, err := render.HTML(msg, v.timeFormat)
	if err != nil {
		panic(fmt.Sprintf("render message: %v", err))
	}
	v.messages.Call("insertAdjacentHTML", "beforeend", markup)
}

func (v *View) ScrollToEnd() {
	v.messages.Set("scrollTop", v.messages.Get("scrollHeight"))
}

// OnSubmit calls fn when the send button is clicked or Enter is pressed
// without Shift. fn runs on the browser event loop and must not block.
func (v *View) OnSubmit(fn func()) {
	click := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	keydown := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		if ev.Get("key").String() == "Enter" && !ev.Get("shiftKey").Bool() {
			ev.Call("preventDefault")
			fn()
		}
		return nil
	})

	v.submit.Call("addEventListener", "click", click)
	v.input.Call("addEventListener", "keydown", keydown)
	v.funcs = append(v.funcs, click, keydown)
}

// Release removes the submit listeners.
func (v *View) Release() {
	for _, f := range v.funcs {
		f.Release()
	}
	v.funcs = nil
}
