package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "gigboard-notify"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the current user id. Authentication itself happens
// upstream; this service only trusts tokens signed with the shared secret.
// Producer tokens may add notifications for users other than UserID.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Producer bool      `json:"producer,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
}

func NewService(secretKey string, tokenDuration time.Duration) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

func (s *Service) GenerateToken(userID uuid.UUID) (string, error) {
	return s.GenerateTokenWithTTL(userID, s.tokenDuration)
}

// GenerateTokenWithTTL issues a token that expires after ttl instead of the
// configured duration.
func (s *Service) GenerateTokenWithTTL(userID uuid.UUID, ttl time.Duration) (string, error) {
	return s.sign(userID, ttl, false)
}

// GenerateProducerToken issues a token carrying the producer claim. A ttl of
// zero uses the configured duration.
func (s *Service) GenerateProducerToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.tokenDuration
	}
	return s.sign(userID, ttl, true)
}

func (s *Service) sign(userID uuid.UUID, ttl time.Duration, producer bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Producer: producer,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
