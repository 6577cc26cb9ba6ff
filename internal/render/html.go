package render

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/socialconnect/chat-client/internal/model"
)

// CSS classes of the message list contract.
const (
	ClassMessage = "message"
	ClassHeader  = "message-header"
	ClassText    = "message-text"
	ClassTime    = "message-time"
)

// Node builds the element tree for one message:
//
//	<div class="message sent"><div class="message-header">You</div><div class="message-text">hi</div></div>
func Node(msg model.ChatMessage, timeFormat string) *html.Node {
	root := element(ClassMessage + " " + string(msg.Direction))
	root.AppendChild(textElement(ClassHeader, msg.Header))
	root.AppendChild(textElement(ClassText, msg.Body))
	if !msg.SentAt.IsZero() && timeFormat != "" {
		root.AppendChild(textElement(ClassTime, msg.SentAt.Local().Format(timeFormat)))
	}
	return root
}

// HTML renders one message as escaped markup.
func HTML(msg model.ChatMessage, timeFormat string) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, Node(msg, timeFormat)); err != nil {
		return "", fmt.Errorf("render message: %w", err)
	}
	return buf.String(), nil
}

func element(class string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     atom.Div.String(),
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
}

func textElement(class, text string) *html.Node {
	n := element(class)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
