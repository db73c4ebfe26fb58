package mq

import "time"

// EmailReceivedPayload is published by the mail ingester for every new message.
type EmailReceivedPayload struct {
	EmailID    string    `json:"email_id"`
	UserID     string    `json:"user_id"`
	MessageID  string    `json:"message_id"`
	ThreadID   string    `json:"thread_id"`
	Sender     string    `json:"sender"`
	Subject    string    `json:"subject"`
	Snippet    string    `json:"snippet"`
	Body       string    `json:"body,omitempty"`
	Labels     []string  `json:"labels"`
	Read       bool      `json:"read"`
	ReceivedAt time.Time `json:"received_at"`
	TraceID    string    `json:"trace_id,omitempty"`
}
