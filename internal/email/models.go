package email

import (
	"time"
)

// NotifyEventType identifies what kind of notification to send
type NotifyEventType string

const (
	// NotifyTypeWaitlistJoined tells the breeder someone joined the waitlist
	NotifyTypeWaitlistJoined NotifyEventType = "waitlist_joined"
	// NotifyTypeWaitlistUpdate tells a customer their waitlist entry changed
	NotifyTypeWaitlistUpdate NotifyEventType = "waitlist_update"
	// NotifyTypePuppyAvailable announces a new available puppy
	NotifyTypePuppyAvailable NotifyEventType = "puppy_available"
)

// NotifyEvent is the message published to the notify-events topic.
type NotifyEvent struct {
	// MessageID is a UUID v4 used for deduplication
	MessageID string `json:"message_id"`

	// EventType specifies what kind of notification to send
	EventType NotifyEventType `json:"event_type"`

	// Timestamp when the event was created
	Timestamp time.Time `json:"timestamp"`

	// Recipient is the email address to send to
	Recipient string `json:"recipient"`

	// Data contains type-specific fields:
	// waitlist_joined:  {"name": "...", "phone": "...", "preferences": "..."}
	// waitlist_update:  {"name": "...", "status": "...", "position": 3}
	// puppy_available:  {"puppyName": "...", "color": "...", "gender": "..."}
	Data map[string]interface{} `json:"data"`
}

// NotifyMetadata is stored in Redis for deduplication
type NotifyMetadata struct {
	SentAt    time.Time       `json:"sent_at"`
	Recipient string          `json:"recipient"`
	EventType NotifyEventType `json:"event_type"`
}
