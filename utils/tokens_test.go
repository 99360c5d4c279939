package utils

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestGenerateSessionToken(t *testing.T) {
	token := GenerateSessionToken()
	assert.Len(t, token, SESSION_TOKEN_LENGTH)
	assert.NotEqual(t, token, GenerateSessionToken())
}

func TestGenerateRateLimitToken(t *testing.T) {
	token := GenerateRateLimitToken()
	assert.Len(t, token, RATE_LIMIT_TOKEN_LENGTH)
	assert.True(t, IsValidRateLimitToken(token))
}

func TestIsValidRateLimitToken(t *testing.T) {
	assert.True(t, IsValidRateLimitToken(strings.Repeat("a", 32)))
	assert.True(t, IsValidRateLimitToken(strings.Repeat("A7", 16)))
	assert.False(t, IsValidRateLimitToken(""))
	assert.False(t, IsValidRateLimitToken(strings.Repeat("a", 31)))
	assert.False(t, IsValidRateLimitToken(strings.Repeat("a", 33)))
	assert.False(t, IsValidRateLimitToken(strings.Repeat("a", 31)+"!"))
	assert.False(t, IsValidRateLimitToken(strings.Repeat("a", 30)+" a"))
}

func TestSessionCookieSeconds(t *testing.T) {
	assert.Equal(t, 6*60*60, SessionCookieSeconds(false))
	assert.Equal(t, 7*24*60*60, SessionCookieSeconds(true))
}
