// Package utils holds the identity token helpers shared by the gateway,
// which signs them, and the server, which verifies them.
package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is written to and required in every identity token.
const Issuer = "shareit-gateway"

// IdentityToken is a signed JWT naming the caller together with its
// expiry.
type IdentityToken struct {
	Token string
	Exp   time.Time
}

// NewIdentityToken signs an HS256 token whose subject is userID and
// which expires after ttlMin minutes.
func NewIdentityToken(secret string, userID int64, ttlMin int) (IdentityToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return IdentityToken{}, err
	}
	return IdentityToken{Token: signed, Exp: exp}, nil
}

// ParseIdentityToken verifies raw and returns the user id in its
// subject.  Only HMAC-signed, unexpired tokens from Issuer are accepted.
func ParseIdentityToken(secret, raw string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("token subject is not a user id")
	}
	return id, nil
}
