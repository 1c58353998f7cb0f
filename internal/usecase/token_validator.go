package usecase

import (
	"gigboard-notify/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Principal is the caller a bearer token resolves to.
type Principal struct {
	UserID   uuid.UUID
	Producer bool
}

// TokenValidator resolves a bearer token to the current caller.
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Principal, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Principal{}, err
	}
	return Principal{UserID: claims.UserID, Producer: claims.Producer}, nil
}
