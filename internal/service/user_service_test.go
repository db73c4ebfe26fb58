package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
)

func strPtr(s string) *string { return &s }

func TestUserService_Create(t *testing.T) {
	store := newMemUserStore()
	svc := NewUserService(store, zap.NewNop())
	ctx := context.Background()

	u, err := svc.Create(ctx, "user-1", ProfileInput{
		Email:          strPtr(" alice@example.com "),
		WhatsAppNumber: strPtr("+1 (555) 123-4567"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	require.NotNil(t, u.WhatsAppNumber)
	assert.True(t, u.HasWhatsApp())

	_, err = svc.Create(ctx, "user-1", ProfileInput{Email: strPtr("other@example.com")})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Create(ctx, "user-2", ProfileInput{Email: strPtr("alice@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserService_CreateValidation(t *testing.T) {
	svc := NewUserService(newMemUserStore(), zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name string
		in   ProfileInput
		want error
	}{
		{"missing email", ProfileInput{}, ErrInvalidEmail},
		{"malformed email", ProfileInput{Email: strPtr("not-an-email")}, ErrInvalidEmail},
		{"short phone", ProfileInput{Email: strPtr("a@example.com"), WhatsAppNumber: strPtr("12345")}, ErrInvalidPhone},
		{"letters in phone", ProfileInput{Email: strPtr("a@example.com"), WhatsAppNumber: strPtr("call-me-maybe")}, ErrInvalidPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "user-x", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserService_UpdateClearsNumber(t *testing.T) {
	number := "+15551234567"
	store := newMemUserStore(&model.User{ID: "user-1", Email: "a@example.com", WhatsAppNumber: &number})
	svc := NewUserService(store, zap.NewNop())
	ctx := context.Background()

	u, err := svc.Update(ctx, "user-1", ProfileInput{WhatsAppNumber: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, u.WhatsAppNumber)
	assert.Equal(t, "a@example.com", u.Email)

	stored, err := svc.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, stored.HasWhatsApp())
}

func TestUserService_UpdateErrors(t *testing.T) {
	store := newMemUserStore(
		&model.User{ID: "user-1", Email: "a@example.com"},
		&model.User{ID: "user-2", Email: "b@example.com"},
	)
	svc := NewUserService(store, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Update(ctx, "missing", ProfileInput{})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Update(ctx, "user-1", ProfileInput{Email: strPtr("b@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Update(ctx, "user-1", ProfileInput{WhatsAppNumber: strPtr("abc")})
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
