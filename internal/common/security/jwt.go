package security

import (
	"errors"
	"time"

	"portfolio_pro/internal/domain/model"
	"portfolio_pro/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints and verifies the bearer tokens used by the API. The
// signing secret, issuer, and audience come from Config at construction;
// there is no package-level state.
type TokenIssuer struct {
	auth     *jwtauth.JWTAuth
	issuer   string
	audience string
	exp      time.Duration
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		auth:     jwtauth.New("HS512", cfg.JWTKey, nil),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		exp:      cfg.JWTExp,
	}
}

// JWTAuth exposes the underlying verifier for the router middleware.
func (t *TokenIssuer) JWTAuth() *jwtauth.JWTAuth {
	return t.auth
}

// Issue creates a signed token carrying the user's identity claims.
func (t *TokenIssuer) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iss":   t.issuer,
		"aud":   t.audience,
		"exp":   now.Add(t.exp).Unix(),
		"iat":   now.Unix(),
	}
	_, tokenString, err := t.auth.Encode(claims)
	return tokenString, err
}

// ValidateClaims checks the issuer and audience of already-verified claims.
// Signature and expiry are enforced earlier by jwtauth.Verifier.
func (t *TokenIssuer) ValidateClaims(claims jwt.MapClaims) error {
	iss, _ := claims["iss"].(string)
	if iss != t.issuer {
		return errors.New("token issuer mismatch")
	}
	if !audienceMatches(claims["aud"], t.audience) {
		return errors.New("token audience mismatch")
	}
	return nil
}

// audienceMatches handles both the string and []string shapes the aud claim
// takes after a parse round-trip.
func audienceMatches(aud interface{}, want string) bool {
	switch v := aud.(type) {
	case string:
		return v == want
	case []string:
		for _, a := range v {
			if a == want {
				return true
			}
		}
	case []interface{}:
		for _, a := range v {
			if s, ok := a.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

// Helper functions to extract claims, used in middleware and services
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["sub"].(string)
	if !ok || id == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}

func GetUserEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}
