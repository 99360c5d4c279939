package middlewares

import (
	"github.com/wishlistapp/apiv1/dbhelper"
	"github.com/wishlistapp/apiv1/utils"
	"fmt"
	"net/http"
	"runtime/debug"
)

// RecoverErrors turns handler panics into a generic 500 and records the
// failure in the error log table for later inspection.
func RecoverErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				dbhelper.LogUnexpectedError(
					r.Method,
					r.URL.Path,
					fmt.Sprintf("%v", rec),
					string(debug.Stack()),
				)
				http.Error(w, utils.GENERIC_SERVER_ERROR, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
