package rule

import (
	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/pkg/metrics"
)

// RenderedAction is an enabled action with its template filled in.
// Index is the action's position in the rule's full action list.
type RenderedAction struct {
	Index   int              `json:"index"`
	Type    model.ActionType `json:"type"`
	Message string           `json:"message"`
}

// Match is one rule that fired for an email.
type Match struct {
	RuleID   string           `json:"ruleId"`
	RuleName string           `json:"ruleName"`
	Actions  []RenderedAction `json:"actions"`
}

type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Evaluate returns a Match, in rule order, for each enabled rule the email satisfies.
// A matching rule whose actions are all disabled still produces a Match with no actions.
func (e *Engine) Evaluate(rules []*model.NotificationRule, email *model.EmailMessage) []Match {
	var matches []Match

	for _, r := range rules {
		if !r.Enabled {
			metrics.IncrementRuleEvaluation("skipped")
			continue
		}
		if !Matches(r, email) {
			metrics.IncrementRuleEvaluation("unmatched")
			continue
		}
		metrics.IncrementRuleEvaluation("matched")

		m := Match{RuleID: r.ID, RuleName: r.Name}
		for i, a := range r.Actions {
			if !a.Enabled {
				continue
			}
			m.Actions = append(m.Actions, RenderedAction{
				Index:   i,
				Type:    a.Type,
				Message: Render(a.Template, email, r),
			})
		}

		e.logger.Debug("Rule matched",
			zap.String("rule_id", r.ID),
			zap.String("email_id", email.ID),
			zap.Int("actions", len(m.Actions)),
		)
		matches = append(matches, m)
	}

	return matches
}
