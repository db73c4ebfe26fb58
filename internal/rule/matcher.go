// Package rule decides which notification rules fire for an email and renders their messages.
package rule

import (
	"strings"

	"github.com/Jayarmananan1994/notifyme/internal/model"
)

// FieldValue reads the email field a condition targets. Unknown fields read as "".
func FieldValue(field model.ConditionField, email *model.EmailMessage) string {
	switch field {
	case model.FieldSender:
		return email.Sender
	case model.FieldSubject:
		return email.Subject
	case model.FieldContent:
		return email.Content()
	default:
		return ""
	}
}

// EvaluateCondition applies the condition's operator to the raw field value.
// Comparisons are exact and case-sensitive. Unknown operators never match.
func EvaluateCondition(c model.RuleCondition, email *model.EmailMessage) bool {
	if !c.Field.Valid() {
		return false
	}

	got := FieldValue(c.Field, email)
	want := c.Value

	switch c.Operator {
	case model.OpContains:
		return strings.Contains(got, want)
	case model.OpEquals:
		return got == want
	case model.OpStartsWith:
		return strings.HasPrefix(got, want)
	case model.OpEndsWith:
		return strings.HasSuffix(got, want)
	default:
		return false
	}
}

// Matches is true when every condition holds. A rule without conditions matches nothing.
func Matches(r *model.NotificationRule, email *model.EmailMessage) bool {
	if len(r.Conditions) == 0 {
		return false
	}
	for _, c := range r.Conditions {
		if !EvaluateCondition(c, email) {
			return false
		}
	}
	return true
}
