package utils

import (
	"github.com/google/uuid"
	"github.com/xlzd/gotp"
	"regexp"
)

var rateLimitTokenFormat = regexp.MustCompile("^[0-9A-Za-z]{32}$")

// GenerateSessionToken returns a fresh 36-character session id.
func GenerateSessionToken() string {
	return uuid.NewString()
}

// GenerateRateLimitToken returns a fresh 32-character alphanumeric token.
func GenerateRateLimitToken() string {
	return gotp.RandomSecret(RATE_LIMIT_TOKEN_LENGTH)
}

// IsValidRateLimitToken reports whether a client-presented rate limit
// token has the expected shape. Anything else is treated as absent.
func IsValidRateLimitToken(token string) bool {
	return rateLimitTokenFormat.MatchString(token)
}
