package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_InvalidCost(t *testing.T) {
	for _, cost := range []string{"9", "15", "abc"} {
		t.Run(cost, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", cost)
			_, err := NewPasswordConfig()
			assert.Error(t, err)
		})
	}
}

func TestHashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10, Pepper: "pepper"}

	hash, err := cfg.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, cfg.VerifyPassword("secret123", hash))
	assert.False(t, cfg.VerifyPassword("secret124", hash))

	noPepper := &PasswordConfig{BcryptCost: 10}
	assert.False(t, noPepper.VerifyPassword("secret123", hash), "pepper is part of the hash input")
}

func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		password string
		want     error
	}{
		{password: "abc12345"},
		{password: "Passw0rd!"},
		{password: "a1@$!%*?&"},
		{password: "abc1234", want: ErrPasswordTooShort},
		{password: "abcdefgh", want: ErrPasswordNoDigit},
		{password: "12345678", want: ErrPasswordNoLetter},
		{password: "abc 12345", want: ErrPasswordBadCharset},
		{password: "abc12345#", want: ErrPasswordBadCharset},
		{password: "pässword1", want: ErrPasswordBadCharset},
		{password: strings.Repeat("a1", 36)},
		{password: strings.Repeat("a1", 36) + "a", want: ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := CheckPasswordPolicy(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHashPassword_TooLongWithPepper(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10, Pepper: "pepper"}
	pw := strings.Repeat("a1", 34) // 68 bytes, 74 with the pepper

	require.NoError(t, CheckPasswordPolicy(pw))
	assert.ErrorIs(t, cfg.CheckLength(pw), ErrPasswordTooLong)

	_, err := cfg.HashPassword(pw)
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	hash, err := cfg.HashPassword(pw[:66])
	require.NoError(t, err)
	assert.True(t, cfg.VerifyPassword(pw[:66], hash))
}
