package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	errs "usersvc/internal/errors"
	"usersvc/internal/httpx"
	"usersvc/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request. The username field carries the
// email, matching the OAuth2 password form.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse represents an issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login godoc
// @Summary Authenticate and obtain a bearer token
// @Tags auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} httpx.Envelope{data=TokenResponse}
// @Failure 401 {object} httpx.Envelope
// @Failure 422 {object} httpx.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewHTTPError(http.StatusUnprocessableEntity, "Validation error", "VALIDATION_ERROR")
	}
	if err := c.Validate(&req); err != nil {
		return errs.NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "VALIDATION_ERROR")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return httpx.JSON(c, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
