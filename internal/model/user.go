package model

import "time"

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	GmailConnected bool      `json:"gmailConnected"`
	WhatsAppNumber *string   `json:"whatsappNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// HasWhatsApp reports whether the user can receive WhatsApp notifications
func (u *User) HasWhatsApp() bool {
	return u.WhatsAppNumber != nil && *u.WhatsAppNumber != ""
}
