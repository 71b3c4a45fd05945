// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/transport/http/dto"
	"auth_backend/internal/feature/auth/usecase"
	jwtmw "auth_backend/internal/platform/jwt"
)

const (
	msgRequired        = "userName and userPassword are required"
	msgPasswordTooLong = "userPassword must not exceed 72 bytes"
	msgInternal        = "internal server error"
)

// AuthUsecase defines the use cases behind the auth endpoints.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register stores a new user with a freshly salted password hash.
	Register(ctx context.Context, username, password string) (uint, error)
	// Login authenticates the user and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles the HTTP requests of the auth feature.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /register.
//   - 400 when a field is missing, empty, or the password is too long
//   - 409 when the username is taken
//   - 201 on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: msgRequired})
		return
	}

	id, err := h.auth.Register(c.Request.Context(), req.UserName, req.UserPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPasswordTooLong):
			slog.WarnContext(c.Request.Context(), "register rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: msgPasswordTooLong})
		case errors.Is(err, usecase.ErrInvalidInput):
			slog.WarnContext(c.Request.Context(), "register rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: msgRequired})
		case errors.Is(err, usecase.ErrDuplicateUsername):
			slog.WarnContext(c.Request.Context(), "register conflict", "username", req.UserName, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: usecase.ErrDuplicateUsername.Error()})
		default:
			slog.ErrorContext(c.Request.Context(), "register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: msgInternal})
		}
		return
	}

	slog.InfoContext(c.Request.Context(), "user registered", "user_id", id, "username", req.UserName, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.MessageRes{Message: "registered"})
}

// Login handles POST /login.
// Unknown usernames and wrong passwords get the same 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: msgRequired})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.UserName, req.UserPassword)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.WarnContext(c.Request.Context(), "login failed", "username", req.UserName, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: usecase.ErrInvalidCredentials.Error()})
			return
		}
		slog.ErrorContext(c.Request.Context(), "login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: msgInternal})
		return
	}

	slog.InfoContext(c.Request.Context(), "user login successful", "username", req.UserName, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.TokenRes{AccessToken: token})
}

// Profile handles GET /profile behind jwtmw.AuthRequired and greets the caller.
func (h *AuthHandler) Profile(c *gin.Context) {
	identity, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "Hello, " + identity.Username})
}
