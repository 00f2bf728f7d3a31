package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sumafit/medstore/internal/ident"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carried by a bearer token. Role is included for parity with the
// wire format but authorization always re-reads it from the users row.
type Claims struct {
	UserID ident.ID
	Role   string
}

// Sign issues an HS256 token for the account, valid for ttl.
func Sign(userID ident.ID, role string, ttl time.Duration, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Verify checks signature and expiry. Any failure maps to ErrInvalidToken so
// callers can degrade to anonymous without inspecting the cause.
func Verify(raw string, secret []byte) (*Claims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"]
	if !ok {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	return &Claims{
		UserID: ident.Normalize(sub),
		Role:   role,
	}, nil
}
