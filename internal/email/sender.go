// Package email delivers notification emails for the site.
// It supports both development mode (log-only) and production mode (SMTP).
package email

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strconv"
)

// Sender defines the interface for sending notification emails
type Sender interface {
	SendNotifyEvent(event NotifyEvent) error
}

// Config holds email configuration
type Config struct {
	Mode     string // "log" or "smtp"
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

// NewConfig creates a new email configuration from environment variables
func NewConfig() *Config {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	return &Config{
		Mode:     getEnvOrDefault("EMAIL_MODE", "log"),
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		User:     os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     getEnvOrDefault("SMTP_FROM", "noreply@aprilslilpugs.com"),
		FromName: getEnvOrDefault("SMTP_FROM_NAME", "April's Lil Pugs"),
	}
}

// NewSender creates a new email sender based on configuration
func NewSender(cfg *Config) Sender {
	if cfg.Mode == "smtp" {
		return &smtpSender{config: cfg}
	}
	return &logSender{}
}

// logSender logs emails to console (development mode)
type logSender struct{}

func (s *logSender) SendNotifyEvent(event NotifyEvent) error {
	log.Printf("[DEV] Notification for %s: type=%s, data=%v", event.Recipient, event.EventType, event.Data)
	return nil
}

// smtpSender sends emails via SMTP (production mode)
type smtpSender struct {
	config *Config
}

func (s *smtpSender) SendNotifyEvent(event NotifyEvent) error {
	subject, body, err := composeNotification(event)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From)
	message += fmt.Sprintf("To: %s\r\n", event.Recipient)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "MIME-Version: 1.0\r\n"
	message += "Content-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n"
	message += body

	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	if err := smtp.SendMail(addr, auth, s.config.From, []string{event.Recipient}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Notification (%s) sent to %s via SMTP", event.EventType, event.Recipient)
	return nil
}

func composeNotification(event NotifyEvent) (subject, body string, err error) {
	str := func(key string) string {
		v, _ := event.Data[key].(string)
		return v
	}

	switch event.EventType {
	case NotifyTypeWaitlistJoined:
		subject = "New waitlist entry"
		body = fmt.Sprintf(
			"A new family joined the waitlist.\n\nName: %s\nEmail: %s\nPhone: %s\nLooking for: %s\n",
			str("name"), str("email"), str("phone"), str("preferences"))

	case NotifyTypeWaitlistUpdate:
		subject = "Your waitlist update from April's Lil Pugs"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour waitlist entry was updated.\nStatus: %s\n\nThank you for your patience!\n",
			str("name"), str("status"))

	case NotifyTypePuppyAvailable:
		subject = "A new puppy is available!"
		body = fmt.Sprintf(
			"Good news! %s, a %s %s pug, is now available.\nVisit the site to learn more.\n",
			str("puppyName"), str("color"), str("gender"))

	default:
		return "", "", fmt.Errorf("unsupported notification type: %s", event.EventType)
	}
	return subject, body, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
