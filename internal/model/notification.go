package model

import "time"

const (
	NotificationStatusQueued = "queued"
)

// Notification is one rendered message queued for delivery.
// ActionIdx is the position of the firing action in the rule's action list.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	RuleID    string    `json:"ruleId"`
	EmailID   string    `json:"emailId"`
	ActionIdx int       `json:"actionIdx"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
