package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// Timestamp layouts accepted on replayed history, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// DecodeInbound parses a raw frame. Invalid JSON and frames without a sender
// are reported as ErrMalformedFrame. Error frames decode successfully.
func DecodeInbound(data []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if err := validate.Struct(in); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return in, nil
}

// EncodeOutbound serializes a user message.
func EncodeOutbound(text string) ([]byte, error) {
	return json.Marshal(Outbound{Message: text})
}

// Classify turns a chat frame into a display message for the given identity.
func Classify(in Inbound, identity string) ChatMessage {
	own := in.UserEmail == identity
	return ChatMessage{
		Direction: lo.Ternary(own, DirectionSent, DirectionReceived),
		Header:    lo.Ternary(own, OwnHeader, in.UserEmail),
		Sender:    in.UserEmail,
		Body:      in.Message,
		SentAt:    parseTimestamp(in.Timestamp),
	}
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
