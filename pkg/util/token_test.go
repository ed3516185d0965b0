package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-token-testing"

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name      string
		sessionID int64
		email     string
		userName  string
		expiry    time.Duration
	}{
		{
			name:      "Demo session",
			sessionID: 1,
			email:     "demo@example.com",
			userName:  "Demo User",
			expiry:    24 * time.Hour,
		},
		{
			name:      "Registered session",
			sessionID: 1700000000000,
			email:     "a@b.com",
			userName:  "A",
			expiry:    time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.sessionID, tt.email, tt.userName, testSecret, tt.expiry)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := ValidateToken(token, testSecret)
			require.NoError(t, err)
			assert.Equal(t, tt.sessionID, claims.SessionID)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.userName, claims.Name)
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "demo@example.com", "Demo User", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(1, "demo@example.com", "Demo User", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
