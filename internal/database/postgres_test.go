package database

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "todo", Password: "pw", DBName: "todo", SSLMode: "disable"}
	assert.Equal(t, "postgres://todo:pw@db:5432/todo?sslmode=disable", cfg.DSN())
}

func TestConfigDSNSpecialCharacters(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "todo user", Password: "p w'd@x=1", DBName: "todo", SSLMode: "require"}

	u, err := url.Parse(cfg.DSN())
	require.NoError(t, err)
	assert.Equal(t, "todo user", u.User.Username())
	pw, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p w'd@x=1", pw)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/todo", u.Path)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}

func TestConfigDSNWithoutPort(t *testing.T) {
	cfg := Config{Host: "db", User: "todo", Password: "pw", DBName: "todo"}
	assert.Equal(t, "postgres://todo:pw@db/todo", cfg.DSN())
}
