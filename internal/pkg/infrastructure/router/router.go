package router

import (
	"net/http"

	"github.com/diwise/eventity/pkg/eventity/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
	"github.com/rs/cors"
)

type Option func(*cors.Options)

// WithAllowedOrigins restricts cross origin requests to origins. Every origin
// is allowed when none are given.
func WithAllowedOrigins(origins ...string) Option {
	return func(o *cors.Options) {
		if len(origins) > 0 {
			o.AllowedOrigins = origins
		}
	}
}

func New(serviceName string, options ...Option) *chi.Mux {
	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
		// browsers may only read the error kind if it is exposed
		ExposedHeaders:   []string{errors.ErrorTypeHeader},
		AllowCredentials: true,
	}

	for _, option := range options {
		option(&corsOptions)
	}

	r.Use(cors.New(corsOptions).Handler)
	r.Use(middleware.Recoverer)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))

	return r
}
