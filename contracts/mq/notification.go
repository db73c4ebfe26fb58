package mq

import "time"

// NotificationRequestedPayload asks the WhatsApp dispatcher to deliver one message.
type NotificationRequestedPayload struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	RuleID         string    `json:"rule_id"`
	EmailID        string    `json:"email_id"`
	Channel        string    `json:"channel"` // whatsapp
	Recipient      string    `json:"recipient"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
	TraceID        string    `json:"trace_id,omitempty"`
}
