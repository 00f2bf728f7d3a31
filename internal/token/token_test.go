package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sumafit/medstore/internal/ident"
)

var secret = []byte("test_secret")

func TestSignAndVerify(t *testing.T) {
	raw, err := Sign(ident.ID("42"), "admin", time.Hour, secret)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := Verify(raw, secret)
	require.NoError(t, err)
	require.Equal(t, ident.ID("42"), claims.UserID)
	require.Equal(t, "admin", claims.Role)
}

func TestVerifyWrongSecret(t *testing.T) {
	raw, err := Sign(ident.ID("42"), "user", time.Hour, secret)
	require.NoError(t, err)

	_, err = Verify(raw, []byte("other_secret"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	raw, err := Sign(ident.ID("42"), "user", -time.Minute, secret)
	require.NoError(t, err)

	_, err = Verify(raw, secret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := Verify("not.a.token", secret)
	require.ErrorIs(t, err, ErrInvalidToken)
}
