package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/todolist/internal/domain"
	"github.com/locvowork/todolist/internal/logger"
	"github.com/locvowork/todolist/internal/service"
	"github.com/locvowork/todolist/internal/service/serviceutils"
	"github.com/locvowork/todolist/internal/session"
)

type AuthHandler struct {
	users    service.UserService
	sessions *session.Manager
}

func NewAuthHandler(users service.UserService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

type credentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterHandler handles POST /register
func (h *AuthHandler) RegisterHandler(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Invalid request body.")
	}

	user, err := h.users.Register(c.Request().Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrPasswordTooLong):
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Password must be at most 72 bytes.")
	case errors.Is(err, domain.ErrConflict):
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Username already taken.")
	case errors.Is(err, domain.ErrInvalidInput):
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Username and password are required.")
	case err != nil:
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error registering user.", err)
	}

	if _, err := h.sessions.Start(c, user.ID); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error registering user.", err)
	}

	return c.JSON(http.StatusCreated, serviceutils.AuthResponse{
		Message:  "User created successfully!",
		UserID:   user.ID,
		Username: user.Username,
	})
}

// LoginHandler handles POST /login
func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Invalid request body.")
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrUnauthorized) {
		return serviceutils.ResponseMessage(c, http.StatusUnauthorized, "Invalid credentials.")
	}
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error logging in.", err)
	}

	if _, err := h.sessions.Start(c, user.ID); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error logging in.", err)
	}

	return c.JSON(http.StatusOK, serviceutils.AuthResponse{
		Message:  "Login successful.",
		UserID:   user.ID,
		Username: user.Username,
	})
}

// LogoutHandler handles POST /logout
func (h *AuthHandler) LogoutHandler(c echo.Context) error {
	if err := h.sessions.Destroy(c); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Could not log out, please try again.", err)
	}
	return serviceutils.ResponseMessage(c, http.StatusOK, "Logout successful.")
}

// StatusHandler handles GET /api/session/status. It always answers 200; a
// session whose user cannot be loaded counts as logged out.
func (h *AuthHandler) StatusHandler(c echo.Context) error {
	userID := session.UserID(c)
	if userID == "" {
		return c.JSON(http.StatusOK, serviceutils.StatusResponse{LoggedIn: false})
	}

	ctx := c.Request().Context()
	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.ErrorLog(ctx, "failed to load session user: %v", err)
		}
		return c.JSON(http.StatusOK, serviceutils.StatusResponse{LoggedIn: false})
	}

	return c.JSON(http.StatusOK, serviceutils.StatusResponse{LoggedIn: true, Username: user.Username})
}
