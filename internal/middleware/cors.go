package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows any origin. The mobile client carries no origin-bound
// credentials: identity lives in request payloads, not cookies.
func CORS() gin.HandlerFunc {
	cfg := cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
	}
	return cors.New(cfg)
}
