package middlewares

import (
	"github.com/wishlistapp/apiv1/dbhelper"
	"github.com/wishlistapp/apiv1/models"
	"github.com/wishlistapp/apiv1/utils"
	"context"
	"log"
	"net/http"
)

type contextKey string

const sessionContextKey contextKey = "authSession"

// IsSessionAuthorized admits only requests carrying a live session cookie.
// The session is placed on the request context for the wrapped handler.
func IsSessionAuthorized(f http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(utils.SESSION_COOKIE_NAME)
		if err != nil {
			http.Error(w, utils.NOT_SIGNED_IN_ERROR, http.StatusUnauthorized)
			return
		}
		session, found, err := dbhelper.GetSession(cookie.Value)
		if err != nil {
			log.Println(err)
			http.Error(w, utils.GENERIC_SERVER_ERROR, http.StatusInternalServerError)
			return
		}
		if !found {
			http.Error(w, utils.NOT_SIGNED_IN_ERROR, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		f(w, r.WithContext(ctx))
	}
}

// SessionFromContext returns the session stored by IsSessionAuthorized.
func SessionFromContext(ctx context.Context) (models.AuthSession, bool) {
	session, ok := ctx.Value(sessionContextKey).(models.AuthSession)
	return session, ok
}
