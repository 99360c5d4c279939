package routes

import (
	"github.com/wishlistapp/apiv1/middlewares"
	"github.com/gorilla/mux"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func CreateRoutes(r *mux.Router) {
	validate = validator.New()
	api := r.PathPrefix("/api").Subrouter()
	// the rate limiter runs before anything else on API routes
	api.Use(middlewares.RateLimit)
	api.Use(middlewares.RecoverErrors)
	s := api.PathPrefix("/auth").Subrouter()
	AuthRouter(s)
}
