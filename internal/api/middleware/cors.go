package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS creates the CORS middleware for the configured frontend origins.
// The API is read-mostly JSON plus two admin PUTs, carries no cookies or
// auth headers, so the policy stays narrow.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
}
