package service

import (
	"errors"
	"fmt"

	"github.com/Jayarmananan1994/notifyme/pkg/constants"
)

// Error text doubles as the client-facing message.
var (
	ErrRuleNotFound       = errors.New(constants.ErrMsgRuleNotFound)
	ErrUserNotFound       = errors.New(constants.ErrMsgUserNotFound)
	ErrInvalidEmail       = errors.New(constants.ErrMsgInvalidEmail)
	ErrInvalidPhone       = errors.New(constants.ErrMsgInvalidPhone)
	ErrUserExists         = errors.New("User already exists")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrRuleLimitReached   = fmt.Errorf("Maximum of %d rules per user reached", constants.MaxRulesPerUser)
	ErrWhatsAppNotEnabled = errors.New(constants.ErrMsgWhatsAppNotConfigured)
)
