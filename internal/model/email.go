package model

import "time"

type EmailMessage struct {
	ID        string    `json:"id"`
	MessageID string    `json:"messageId"`
	ThreadID  string    `json:"threadId"`
	Sender    string    `json:"sender"`
	Subject   string    `json:"subject"`
	Snippet   string    `json:"snippet"`
	Body      string    `json:"body,omitempty"` // full content, when the ingester has it
	Received  time.Time `json:"received"`
	Read      bool      `json:"read"`
	Labels    []string  `json:"labels"`
}

// Content is the text "content" conditions match against: the body when present, else the snippet.
func (e *EmailMessage) Content() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Snippet
}
