package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/todolist/internal/handler"
	"github.com/locvowork/todolist/internal/repository/memstore"
	"github.com/locvowork/todolist/internal/service"
	"github.com/locvowork/todolist/internal/session"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	e        *echo.Echo
	store    *memstore.Store
	users    service.UserService
	tasks    service.TaskService
	sessions *session.Manager
	auth     *handler.AuthHandler
	task     *handler.TaskHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	sessions, err := session.NewManager(store.Sessions(), session.Options{Secret: "test-secret"})
	require.NoError(t, err)

	users := service.NewUserService(store.Users(), bcrypt.MinCost)
	tasks := service.NewTaskService(store.Tasks(), func() time.Time {
		return time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	})
	return &fixture{
		e:        echo.New(),
		store:    store,
		users:    users,
		tasks:    tasks,
		sessions: sessions,
		auth:     handler.NewAuthHandler(users, sessions),
		task:     handler.NewTaskHandler(tasks, ""),
	}
}

// context builds an echo context for a JSON request.
func (f *fixture) context(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return f.e.NewContext(req, rec), rec
}

// authedContext is like context but the request carries the cookie of a live
// session for userID, already resolved by the session middleware.
func (f *fixture) authedContext(t *testing.T, userID, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	login, loginRec := f.context(http.MethodPost, "/login", "")
	_, err := f.sessions.Start(login, userID)
	require.NoError(t, err)
	cookie := sessionCookie(loginRec)
	require.NotNil(t, cookie)

	c, rec := f.context(method, target, body)
	c.Request().AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	require.NoError(t, f.sessions.Middleware()(func(echo.Context) error { return nil })(c))
	return c, rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "connect.sid" {
			return c
		}
	}
	return nil
}
