package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"usersvc/internal/auth"
	errs "usersvc/internal/errors"
	"usersvc/internal/httpx"
	"usersvc/internal/model"
	"usersvc/internal/service"
)

// UserHandler bundles HTTP handlers for user CRUD.
type UserHandler struct {
	svc     service.UserService
	authSvc service.AuthService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, authSvc service.AuthService) *UserHandler {
	return &UserHandler{svc: svc, authSvc: authSvc}
}

// CreateUserRequest represents a registration request.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest represents a partial update. Absent fields are untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// UserResponse is the public shape of a user. The password hash never leaves
// the service.
type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

// CreateUser godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "Registration data"
// @Success 201 {object} httpx.Envelope{data=UserResponse}
// @Failure 400 {object} httpx.Envelope
// @Failure 422 {object} httpx.Envelope
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewHTTPError(http.StatusUnprocessableEntity, "Validation error", "VALIDATION_ERROR")
	}
	if err := c.Validate(&req); err != nil {
		return errs.NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "VALIDATION_ERROR")
	}

	user, err := h.svc.CreateUser(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return httpx.JSON(c, http.StatusCreated, newUserResponse(user))
}

// Me godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httpx.Envelope{data=UserResponse}
// @Failure 401 {object} httpx.Envelope
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return errs.ErrInvalidToken
	}
	user, err := h.authSvc.CurrentUser(c.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return httpx.JSON(c, http.StatusOK, newUserResponse(user))
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} httpx.Envelope{data=UserResponse}
// @Failure 404 {object} httpx.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return httpx.JSON(c, http.StatusOK, newUserResponse(user))
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size"
// @Success 200 {object} httpx.Envelope{data=[]UserResponse}
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	users, err := h.svc.ListUsers(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return httpx.JSON(c, http.StatusOK, out)
}

// UpdateUser godoc
// @Summary Update user fields
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} httpx.Envelope{data=UserResponse}
// @Failure 400 {object} httpx.Envelope
// @Failure 404 {object} httpx.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return errs.NewHTTPError(http.StatusUnprocessableEntity, "Validation error", "VALIDATION_ERROR")
	}
	if err := c.Validate(&req); err != nil {
		return errs.NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "VALIDATION_ERROR")
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, service.UserPatch{
		Email:    req.Email,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}
	return httpx.JSON(c, http.StatusOK, newUserResponse(user))
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} httpx.Envelope
// @Failure 404 {object} httpx.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	deleted, err := h.svc.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.ErrUserNotFound
	}
	return httpx.JSON(c, http.StatusOK, map[string]bool{"deleted": true})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.NewHTTPError(http.StatusUnprocessableEntity, "invalid user id", "VALIDATION_ERROR")
	}
	return uint(id), nil
}
