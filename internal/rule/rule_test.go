package rule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
)

func testEmail() *model.EmailMessage {
	return &model.EmailMessage{
		ID:       "email-1",
		Sender:   "Billing <billing@bank.example>",
		Subject:  "Your Statement is Ready",
		Snippet:  "Your monthly statement for March",
		Received: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func cond(field model.ConditionField, op model.ConditionOperator, value string) model.RuleCondition {
	return model.RuleCondition{Field: field, Operator: op, Value: value}
}

func TestEvaluateCondition(t *testing.T) {
	email := testEmail()

	tests := []struct {
		name string
		c    model.RuleCondition
		want bool
	}{
		{"contains", cond(model.FieldSender, model.OpContains, "bank.example"), true},
		{"contains is case sensitive", cond(model.FieldSender, model.OpContains, "BANK.EXAMPLE"), false},
		{"contains miss", cond(model.FieldSender, model.OpContains, "shop"), false},
		{"equals", cond(model.FieldSubject, model.OpEquals, "Your Statement is Ready"), true},
		{"equals is case sensitive", cond(model.FieldSubject, model.OpEquals, "your statement is ready"), false},
		{"equals requires whole value", cond(model.FieldSubject, model.OpEquals, "Statement"), false},
		{"startsWith", cond(model.FieldSubject, model.OpStartsWith, "Your"), true},
		{"startsWith is case sensitive", cond(model.FieldSubject, model.OpStartsWith, "your"), false},
		{"endsWith", cond(model.FieldSubject, model.OpEndsWith, "Ready"), true},
		{"endsWith is case sensitive", cond(model.FieldSubject, model.OpEndsWith, "READY"), false},
		{"endsWith miss", cond(model.FieldSubject, model.OpEndsWith, "Your"), false},
		{"content falls back to snippet", cond(model.FieldContent, model.OpContains, "March"), true},
		{"unknown field", cond("cc", model.OpContains, "x"), false},
		{"unknown operator", cond(model.FieldSubject, "matches", "your"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.c, email))
		})
	}
}

func TestEvaluateCondition_ContentPrefersBody(t *testing.T) {
	email := testEmail()
	email.Body = "Full body text with an invoice attached"

	assert.True(t, EvaluateCondition(cond(model.FieldContent, model.OpContains, "invoice"), email))
	assert.False(t, EvaluateCondition(cond(model.FieldContent, model.OpContains, "March"), email))
}

func TestMatches_IsConjunction(t *testing.T) {
	email := testEmail()

	r := &model.NotificationRule{Conditions: []model.RuleCondition{
		cond(model.FieldSender, model.OpContains, "bank"),
		cond(model.FieldSubject, model.OpContains, "Statement"),
	}}
	assert.True(t, Matches(r, email))

	r.Conditions = append(r.Conditions, cond(model.FieldSubject, model.OpContains, "overdue"))
	assert.False(t, Matches(r, email))
}

func TestMatches_NoConditionsNeverMatches(t *testing.T) {
	assert.False(t, Matches(&model.NotificationRule{}, testEmail()))
}

func TestRender(t *testing.T) {
	email := testEmail()
	r := &model.NotificationRule{Name: "Bank"}

	got := Render("New mail from {{sender}}: {{ subject }}", email, r)
	assert.Equal(t, "New mail from Billing <billing@bank.example>: Your Statement is Ready", got)

	assert.Equal(t, "[Bank] Your monthly statement for March", Render("[{{rule}}] {{content}}", email, r))
	assert.Equal(t, "at 2024-03-01T09:30:00.000Z", Render("at {{received}}", email, r))
	assert.Equal(t, "{{unknown}} and {{ Sender }}", Render("{{unknown}} and {{ Sender }}", email, r))
	assert.Equal(t, "no placeholders", Render("no placeholders", email, r))
	assert.Equal(t, "{{sender", Render("{{sender", email, r))
}

func TestUnknownPlaceholders(t *testing.T) {
	assert.Empty(t, UnknownPlaceholders("{{sender}} {{snippet}}"))
	assert.Equal(t, []string{"foo", "bar"}, UnknownPlaceholders("{{foo}} {{sender}} {{ bar }}"))
}

func validRule() *model.NotificationRule {
	return &model.NotificationRule{
		Name:       "Bank alerts",
		Conditions: []model.RuleCondition{cond(model.FieldSender, model.OpContains, "bank")},
		Actions:    []model.RuleAction{{Type: model.ActionWhatsApp, Template: "{{subject}}", Enabled: true}},
		Enabled:    true,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(validRule()))

	err := Validate(&model.NotificationRule{
		Name:       "<>",
		Conditions: []model.RuleCondition{{Field: "cc", Operator: "near", Value: ""}},
		Actions:    []model.RuleAction{{Type: "sms", Template: " "}},
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"name is required",
		`conditions[0]: unknown field "cc"`,
		`conditions[0]: unknown operator "near"`,
		"conditions[0]: value is required",
		`actions[0]: unknown type "sms"`,
		"actions[0]: template is required",
	}, verr.Problems)
	assert.Contains(t, err.Error(), "invalid rule: name is required")
}

func TestValidate_RequiresConditionsAndActions(t *testing.T) {
	err := Validate(&model.NotificationRule{Name: "empty"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"at least one condition is required", "at least one action is required"}, verr.Problems)
}

func TestSanitize(t *testing.T) {
	r := validRule()
	r.Name = "  <b>Bank</b> "
	r.Conditions[0].Value = "<bank>"
	r.Actions[0].Template = "<i>{{subject}}</i>"

	Sanitize(r)

	assert.Equal(t, "bBank/b", r.Name)
	assert.Equal(t, "bank", r.Conditions[0].Value)
	assert.Equal(t, "i{{subject}}/i", r.Actions[0].Template)
}

func TestEngine_Evaluate(t *testing.T) {
	email := testEmail()

	matching := validRule()
	matching.ID = "r1"

	disabledRule := validRule()
	disabledRule.ID = "r2"
	disabledRule.Enabled = false

	other := validRule()
	other.ID = "r3"
	other.Conditions = []model.RuleCondition{cond(model.FieldSubject, model.OpContains, "shipping")}

	mixedActions := validRule()
	mixedActions.ID = "r4"
	mixedActions.Actions = []model.RuleAction{
		{Type: model.ActionWhatsApp, Template: "off {{subject}}", Enabled: false},
		{Type: model.ActionWhatsApp, Template: "on {{rule}}", Enabled: true},
	}

	matches := NewEngine(zap.NewNop()).Evaluate(
		[]*model.NotificationRule{matching, disabledRule, other, mixedActions}, email,
	)

	require.Len(t, matches, 2)
	assert.Equal(t, "r1", matches[0].RuleID)
	assert.Equal(t, []RenderedAction{{Index: 0, Type: model.ActionWhatsApp, Message: "Your Statement is Ready"}}, matches[0].Actions)
	assert.Equal(t, "r4", matches[1].RuleID)
	assert.Equal(t, []RenderedAction{{Index: 1, Type: model.ActionWhatsApp, Message: "on Bank alerts"}}, matches[1].Actions)
}

func TestEngine_EvaluateNoRules(t *testing.T) {
	assert.Empty(t, NewEngine(zap.NewNop()).Evaluate(nil, testEmail()))
}
