package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityTokenRoundTrip(t *testing.T) {
	tok, err := NewIdentityToken("s3cret", 42, 5)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), tok.Exp, 5*time.Second)

	id, err := ParseIdentityToken("s3cret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestParseIdentityTokenRejects(t *testing.T) {
	good, err := NewIdentityToken("s3cret", 42, 5)
	require.NoError(t, err)

	_, err = ParseIdentityToken("other", good.Token)
	assert.Error(t, err, "wrong secret")

	expired, err := NewIdentityToken("s3cret", 42, -1)
	require.NoError(t, err)
	_, err = ParseIdentityToken("s3cret", expired.Token)
	assert.Error(t, err, "expired")

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = ParseIdentityToken("s3cret", foreign)
	assert.Error(t, err, "issuer")

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = ParseIdentityToken("s3cret", badSubject)
	assert.Error(t, err, "subject")
}
