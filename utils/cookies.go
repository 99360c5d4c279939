package utils

import (
	"net/http"
)

func SessionCookieSeconds(keepSignedIn bool) int {
	if keepSignedIn {
		return KEEP_SIGNED_IN_SESSION_HOURS * 60 * 60
	}
	return DEFAULT_SESSION_HOURS * 60 * 60
}

func SetSessionCookie(w http.ResponseWriter, token string, maxAgeSeconds int) {
	http.SetCookie(w, &http.Cookie{
		Name: SESSION_COOKIE_NAME,
		Value: token,
		Path: "/",
		MaxAge: maxAgeSeconds,
		HttpOnly: true,
		Secure: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	SetSessionCookie(w, "", -1)
}

func SetRateLimitCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name: RATE_LIMIT_COOKIE_NAME,
		Value: token,
		Path: "/",
		MaxAge: RATE_LIMIT_COOKIE_SECONDS,
		HttpOnly: true,
		Secure: true,
		SameSite: http.SameSiteStrictMode,
	})
}
