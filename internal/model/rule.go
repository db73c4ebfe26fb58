package model

import "time"

type ConditionField string

const (
	FieldSender  ConditionField = "sender"
	FieldSubject ConditionField = "subject"
	FieldContent ConditionField = "content"
)

func (f ConditionField) Valid() bool {
	switch f {
	case FieldSender, FieldSubject, FieldContent:
		return true
	}
	return false
}

type ConditionOperator string

const (
	OpContains   ConditionOperator = "contains"
	OpEquals     ConditionOperator = "equals"
	OpStartsWith ConditionOperator = "startsWith"
	OpEndsWith   ConditionOperator = "endsWith"
)

func (o ConditionOperator) Valid() bool {
	switch o {
	case OpContains, OpEquals, OpStartsWith, OpEndsWith:
		return true
	}
	return false
}

type ActionType string

const (
	ActionWhatsApp ActionType = "whatsapp"
)

func (a ActionType) Valid() bool {
	return a == ActionWhatsApp
}

type RuleCondition struct {
	Field    ConditionField    `json:"field" yaml:"field"`
	Operator ConditionOperator `json:"operator" yaml:"operator"`
	Value    string            `json:"value" yaml:"value"`
}

type RuleAction struct {
	Type     ActionType `json:"type" yaml:"type"`
	Template string     `json:"template" yaml:"template"`
	Enabled  bool       `json:"enabled" yaml:"enabled"`
}

// NotificationRule fires its actions when every condition holds for an email.
type NotificationRule struct {
	ID         string          `json:"id" yaml:"id"`
	UserID     string          `json:"userId" yaml:"userId"`
	Name       string          `json:"name" yaml:"name"`
	Conditions []RuleCondition `json:"conditions" yaml:"conditions"`
	Actions    []RuleAction    `json:"actions" yaml:"actions"`
	Enabled    bool            `json:"enabled" yaml:"enabled"`
	CreatedAt  time.Time       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt" yaml:"updatedAt"`
}
