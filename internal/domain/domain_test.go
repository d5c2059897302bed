package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", ErrNotFound("server", "9"), "NOT_FOUND", 404},
		{"validation", ErrValidation("id is required"), "VALIDATION_ERROR", 400},
		{"unauthorized", ErrUnauthorized("invalid credentials"), "UNAUTHORIZED", 401},
		{"insufficient balance", ErrInsufficientBalance(40, 10), "INSUFFICIENT_BALANCE", 400},
		{"side effect failed", ErrSideEffectFailed("failed to start server", nil), "SIDE_EFFECT_FAILED", 500},
		{"internal", ErrInternal("oops", nil), "INTERNAL_ERROR", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.Status)
		})
	}

	t.Run("message formats", func(t *testing.T) {
		assert.Equal(t, "server 9 not found", ErrNotFound("server", "9").Message)
		assert.Equal(t, "insufficient balance: need 40, have 10", ErrInsufficientBalance(40, 10).Message)
	})

	t.Run("unwrap exposes the cause", func(t *testing.T) {
		cause := errors.New("timeout")
		err := ErrSideEffectFailed("failed to stop server", cause)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "SIDE_EFFECT_FAILED")
		assert.Contains(t, err.Error(), "timeout")
	})
}

func TestUserPurchaseSets(t *testing.T) {
	u := User{
		PurchasedAddons: map[string]struct{}{},
		PurchasedThemes: map[string]struct{}{},
	}

	assert.False(t, u.HasAddon("addon1"))
	u.PurchasedAddons["addon1"] = struct{}{}
	u.PurchasedAddons["addon1"] = struct{}{}
	assert.True(t, u.HasAddon("addon1"))
	require.Equal(t, []string{"addon1"}, u.AddonIDs(), "set semantics: marked exactly once")

	u.PurchasedThemes["theme2"] = struct{}{}
	u.PurchasedThemes["theme1"] = struct{}{}
	assert.Equal(t, []string{"theme1", "theme2"}, u.ThemeIDs(), "ids are sorted")
	assert.True(t, u.HasTheme("theme1"))
	assert.False(t, u.HasTheme("theme9"))
}
