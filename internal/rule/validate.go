package rule

import (
	"fmt"
	"strings"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

// ValidationError collects every problem found in a rule.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid rule: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Sanitize trims and strips angle brackets from the user-supplied text of r in place.
func Sanitize(r *model.NotificationRule) {
	r.Name = strings.TrimSpace(util.SanitizeString(r.Name))
	for i := range r.Conditions {
		r.Conditions[i].Value = util.SanitizeString(r.Conditions[i].Value)
	}
	for i := range r.Actions {
		r.Actions[i].Template = util.SanitizeString(r.Actions[i].Template)
	}
}

// Validate returns a *ValidationError listing every problem, or nil.
func Validate(r *model.NotificationRule) error {
	verr := &ValidationError{}

	if strings.TrimSpace(util.SanitizeString(r.Name)) == "" {
		verr.add("name is required")
	}

	if len(r.Conditions) == 0 {
		verr.add("at least one condition is required")
	}
	for i, c := range r.Conditions {
		if !c.Field.Valid() {
			verr.add("conditions[%d]: unknown field %q", i, c.Field)
		}
		if !c.Operator.Valid() {
			verr.add("conditions[%d]: unknown operator %q", i, c.Operator)
		}
		if c.Value == "" {
			verr.add("conditions[%d]: value is required", i)
		}
	}

	if len(r.Actions) == 0 {
		verr.add("at least one action is required")
	}
	for i, a := range r.Actions {
		if !a.Type.Valid() {
			verr.add("actions[%d]: unknown type %q", i, a.Type)
		}
		if strings.TrimSpace(a.Template) == "" {
			verr.add("actions[%d]: template is required", i)
		}
	}

	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}
