// Package constants holds the identifiers, limits and user-facing messages shared by every binary.
package constants

// App identity
const (
	AppName        = "NotifyMe"
	AppVersion     = "1.0.0"
	AppDescription = "Intelligent email monitoring system with WhatsApp notifications"
)

// Limits
const (
	MaxRulesPerUser    = 10
	MaxEmailFetchLimit = 100
)

// API endpoint roots
const (
	EndpointHealth        = "/health"
	EndpointAuth          = "/auth"
	EndpointUsers         = "/users"
	EndpointEmails        = "/emails"
	EndpointRules         = "/rules"
	EndpointNotifications = "/notifications"
)

// APIPrefix is mounted in front of every endpoint root.
const APIPrefix = "/api"

// Gmail OAuth scopes requested by the ingester
var GmailScopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.modify",
}

// WhatsApp Business API
const (
	WhatsAppBaseURL  = "https://graph.facebook.com/v18.0"
	WhatsAppMessages = "/messages"
	WhatsAppWebhooks = "/webhooks"
)

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// IsKnownEnvironment reports whether env is one of the supported environments
func IsKnownEnvironment(env string) bool {
	switch env {
	case EnvDevelopment, EnvProduction, EnvTest:
		return true
	}
	return false
}

// Error messages returned to API clients
const (
	ErrMsgUnauthorized          = "Unauthorized access"
	ErrMsgInvalidEmail          = "Invalid email format"
	ErrMsgInvalidPhone          = "Invalid phone number format"
	ErrMsgUserNotFound          = "User not found"
	ErrMsgEmailNotFound         = "Email not found"
	ErrMsgRuleNotFound          = "Rule not found"
	ErrMsgGmailNotConnected     = "Gmail account not connected"
	ErrMsgWhatsAppNotConfigured = "WhatsApp not configured"
	ErrMsgInternalServer        = "Internal server error"
)

// Success messages returned to API clients
const (
	MsgUserCreated      = "User created successfully"
	MsgUserUpdated      = "User updated successfully"
	MsgRuleCreated      = "Rule created successfully"
	MsgRuleUpdated      = "Rule updated successfully"
	MsgRuleDeleted      = "Rule deleted successfully"
	MsgNotificationSent = "Notification sent successfully"
)
