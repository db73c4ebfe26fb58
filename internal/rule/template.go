package rule

import (
	"regexp"
	"strings"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z]+)\s*\}\}`)

// Placeholders lists the names Render understands.
var Placeholders = []string{"sender", "subject", "content", "snippet", "rule", "received"}

// Render substitutes {{name}} placeholders. Whitespace inside the braces is allowed and
// names are case-sensitive; anything unrecognised is left as written.
func Render(template string, email *model.EmailMessage, r *model.NotificationRule) string {
	if !strings.Contains(template, "{{") {
		return template
	}

	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		if v, ok := lookup(name, email, r); ok {
			return v
		}
		return m
	})
}

func lookup(name string, email *model.EmailMessage, r *model.NotificationRule) (string, bool) {
	switch name {
	case "sender":
		return email.Sender, true
	case "subject":
		return email.Subject, true
	case "content":
		return email.Content(), true
	case "snippet":
		return email.Snippet, true
	case "rule":
		return r.Name, true
	case "received":
		return util.FormatDate(email.Received), true
	}
	return "", false
}

// UnknownPlaceholders returns the placeholder names in template that Render would leave untouched.
func UnknownPlaceholders(template string) []string {
	var unknown []string
	for _, m := range placeholder.FindAllStringSubmatch(template, -1) {
		if _, ok := lookup(m[1], &model.EmailMessage{}, &model.NotificationRule{}); !ok {
			unknown = append(unknown, m[1])
		}
	}
	return unknown
}
