package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "auth_backend/internal/feature/auth/transport/handler"
	"auth_backend/internal/platform/http/handler"
	"auth_backend/internal/platform/http/middleware"
	jwtmw "auth_backend/internal/platform/jwt"
)

// Options toggles optional router behaviour.
type Options struct {
	// CORS enables cors.Default() (any origin, simple methods).
	CORS bool
	// HealthChecks run on every /healthz GET and HEAD.
	HealthChecks []handler.Check
}

func NewRouter(authHandler *authhandler.AuthHandler, tokens jwtmw.TokenValidator, opts Options) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	if opts.CORS {
		r.Use(cors.Default())
	}

	// 認証不要
	health := handler.Health(opts.HealthChecks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(tokens))
	{
		auth.GET("/profile", authHandler.Profile)
	}

	return r
}
