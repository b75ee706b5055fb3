package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/teamroster/employee-directory/internal/core/domain"
)

// JWTIssuer signs HS256 bearer tokens for authenticated identities.
type JWTIssuer struct {
	secret   string
	tokenTTL time.Duration
}

func NewJWTIssuer(secret string, tokenTTL time.Duration) *JWTIssuer {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &JWTIssuer{secret: secret, tokenTTL: tokenTTL}
}

func (i *JWTIssuer) Issue(identity *domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"email": identity.Email,
		"name":  identity.Name,
		"exp":   time.Now().Add(i.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.secret))
}
