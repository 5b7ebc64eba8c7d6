package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenService validates the bearer tokens used on authenticated storefront
// and admin routes. Tokens are issued by the identity collaborator, never by
// the storefront, so the contract is validation-only.
type TokenService interface {
	// ValidateToken checks the validity of a token string against a secret.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)
}
