package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	s := New("test_secret_key_32_characters_min", time.Hour)

	token, err := s.GenerateToken("user-1", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := New("secret-one-32-characters-long-xx", time.Hour).GenerateToken("user-1", "teacher")
	require.NoError(t, err)

	_, err = New("secret-two-32-characters-long-xx", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	s := New("test_secret_key_32_characters_min", -time.Minute)

	token, err := s.GenerateToken("user-1", "teacher")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	s := New("test_secret_key_32_characters_min", time.Hour)

	_, err := s.ValidateToken("not-a-token")
	assert.Error(t, err)
}
