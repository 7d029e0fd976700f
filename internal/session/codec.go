package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var errInvalidCookie = errors.New("invalid session cookie")

// codec signs session ids so a client cannot forge or guess one. The cookie
// only ever carries the id; the user id stays in the store.
type codec struct {
	secret []byte
}

func (c codec) encode(id string, issued, expires time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Id:        id,
		IssuedAt:  issued.Unix(),
		ExpiresAt: expires.Unix(),
	})
	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return s, nil
}

func (c codec) decode(value string) (string, error) {
	var claims jwt.StandardClaims
	token, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid || claims.Id == "" {
		return "", errInvalidCookie
	}
	return claims.Id, nil
}
