package email

import (
	"strings"
	"testing"
)

func TestComposeWaitlistJoined(t *testing.T) {
	event := NotifyEvent{
		EventType: NotifyTypeWaitlistJoined,
		Recipient: "april@example.com",
		Data: map[string]interface{}{
			"name":        "Jane Doe",
			"email":       "jane@example.com",
			"phone":       "555-0100",
			"preferences": "fawn female",
		},
	}

	subject, body, err := composeNotification(event)
	if err != nil {
		t.Fatalf("composeNotification failed: %v", err)
	}
	if subject == "" {
		t.Error("Expected a subject")
	}
	for _, want := range []string{"Jane Doe", "jane@example.com", "555-0100", "fawn female"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q, got:\n%s", want, body)
		}
	}
}

func TestComposePuppyAvailable(t *testing.T) {
	event := NotifyEvent{
		EventType: NotifyTypePuppyAvailable,
		Recipient: "jane@example.com",
		Data: map[string]interface{}{
			"puppyName": "Peanut",
			"color":     "apricot",
			"gender":    "male",
		},
	}

	_, body, err := composeNotification(event)
	if err != nil {
		t.Fatalf("composeNotification failed: %v", err)
	}
	for _, want := range []string{"Peanut", "apricot", "male"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
}

func TestComposeUnknownTypeFails(t *testing.T) {
	event := NotifyEvent{EventType: "carrier_pigeon"}

	if _, _, err := composeNotification(event); err == nil {
		t.Error("Expected an error for an unknown notification type")
	}
}

func TestLogSenderNeverFails(t *testing.T) {
	sender := NewSender(&Config{Mode: "log"})

	err := sender.SendNotifyEvent(NotifyEvent{
		EventType: NotifyTypeWaitlistJoined,
		Recipient: "april@example.com",
	})
	if err != nil {
		t.Errorf("Expected log sender to succeed, got %v", err)
	}
}
