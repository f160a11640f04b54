package dispatch

import (
	"fmt"
	"strings"
)

// Channel is the outbound medium for a payment request.
type Channel int

const (
	// ChannelSMS sends one message per selected recipient.
	ChannelSMS Channel = iota + 1
	// ChannelChatApp opens a chat application once with the message and
	// then opens the UPI payment link.
	ChannelChatApp
)

func (c Channel) String() string {
	switch c {
	case ChannelSMS:
		return "sms"
	case ChannelChatApp:
		return "chat_app"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// ParseChannel accepts "sms", "chat_app", and "whatsapp" as an alias for chat_app.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sms":
		return ChannelSMS, nil
	case "chat_app", "chatapp", "whatsapp":
		return ChannelChatApp, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, s)
	}
}

// State is where a dispatch session currently is.
//
//	Idle -> SelectionPending -> Validated -> Dispatching -> Completed
//
// Toggling a recipient from Validated or Completed returns to SelectionPending.
type State int

const (
	StateIdle State = iota
	StateSelectionPending
	StateValidated
	StateDispatching
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelectionPending:
		return "selection_pending"
	case StateValidated:
		return "validated"
	case StateDispatching:
		return "dispatching"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
