package middlewares

import (
	"github.com/wishlistapp/apiv1/dbhelper"
	"github.com/wishlistapp/apiv1/utils"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
)

type rateLimitResponse struct {
	Message string `json:"message"`
}

// RateLimit is the first middleware on every API route. It tracks request
// volume per client through an opaque cookie token, rejects over-limit
// clients with 429, and records repeat offenders by IP. The count check
// and the increment are separate statements: two racing requests can both
// slip under the limit, an accepted soft bound that keeps the hot path to
// two cheap queries. Storage failures fail open.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := rateLimitToken(r)
		if !ok {
			seedClient(w, utils.GenerateRateLimitToken())
			next.ServeHTTP(w, r)
			return
		}
		tracker, found, err := dbhelper.GetRateTracker(token)
		if err != nil {
			log.Println("rate tracker lookup failed:", err)
			next.ServeHTTP(w, r)
			return
		}
		if !found {
			// stale cookie, re-seed under the same token
			seedClient(w, token)
			next.ServeHTTP(w, r)
			return
		}
		if tracker.RequestsCount >= utils.REQUESTS_PER_WINDOW {
			if err := dbhelper.IncrementRateTracker(token); err != nil {
				log.Println("rate tracker increment failed:", err)
			}
			if err := dbhelper.RecordAbusiveClient(ClientIP(r)); err != nil {
				log.Println("abuse record failed:", err)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(rateLimitResponse{Message: utils.RATE_LIMIT_MESSAGE})
			return
		}
		if err := dbhelper.IncrementRateTracker(token); err != nil {
			log.Println("rate tracker increment failed:", err)
		}
		next.ServeHTTP(w, r)
	})
}

func rateLimitToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(utils.RATE_LIMIT_COOKIE_NAME)
	if err != nil || !utils.IsValidRateLimitToken(cookie.Value) {
		return "", false
	}
	return cookie.Value, true
}

func seedClient(w http.ResponseWriter, token string) {
	if err := dbhelper.SeedRateTracker(token); err != nil {
		log.Println("rate tracker seed failed:", err)
		return
	}
	utils.SetRateLimitCookie(w, token)
}

// ClientIP prefers the first forwarded hop so the limiter still sees real
// clients behind a proxy.
func ClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
