package serviceutils

import (
	"github.com/labstack/echo/v4"
	"github.com/locvowork/todolist/internal/logger"
)

// MessageResponse is the body of every non-list reply.
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthResponse answers a successful register or login.
type AuthResponse struct {
	Message  string `json:"message"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// StatusResponse answers GET /api/session/status.
type StatusResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username,omitempty"`
}

func ResponseMessage(c echo.Context, code int, msg string) error {
	return c.JSON(code, MessageResponse{Message: msg})
}

// ResponseError logs err and replies with msg only; backend details never
// reach the client.
func ResponseError(c echo.Context, code int, msg string, err error) error {
	if err != nil {
		logger.ErrorLog(c.Request().Context(), "%s %s: %s: %v", c.Request().Method, c.Path(), msg, err)
	}
	return c.JSON(code, MessageResponse{Message: msg})
}
