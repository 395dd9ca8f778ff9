package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server/middleware"
)

// Claims carries the caller's user ID. Subscription status is not embedded
// in the token; it is looked up on every render so upgrades apply at once.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// GetUserID implements middleware.UserIDGetter.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

// JWTService issues and validates bearer tokens. Only HS256 tokens carrying
// an expiry, a user ID and the configured issuer are accepted.
type JWTService struct {
	config *config.JWTConfig
	parser *jwt.Parser
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given configuration.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	s := &JWTService{config: cfg, now: time.Now}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	s.parser = jwt.NewParser(opts...)
	return s
}

// AsTokenValidator adapts the service to the middleware package.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return validatorFunc(func(token string) (middleware.UserIDGetter, error) {
		claims, err := s.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return claims, nil
	})
}

type validatorFunc func(string) (middleware.UserIDGetter, error)

func (f validatorFunc) ValidateToken(token string) (middleware.UserIDGetter, error) {
	return f(token)
}

// GenerateToken signs a token for userID that expires after the configured
// number of hours.
func (s *JWTService) GenerateToken(userID uuid.UUID) (string, error) {
	issued := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Duration(s.config.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// tokenErrors names the parser failures callers see, most specific first.
var tokenErrors = []struct {
	err  error
	name string
}{
	{jwt.ErrTokenSignatureInvalid, "invalid token signature"},
	{jwt.ErrTokenExpired, "token expired"},
	{jwt.ErrTokenMalformed, "malformed token"},
	{jwt.ErrTokenInvalidIssuer, "unexpected token issuer"},
}

// ValidateToken parses tokenString and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}

	claims := &Claims{}
	if _, err := s.parser.ParseWithClaims(tokenString, claims, s.signingKey); err != nil {
		for _, te := range tokenErrors {
			if errors.Is(err, te.err) {
				return nil, fmt.Errorf("%s: %w", te.name, err)
			}
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.UserID == uuid.Nil {
		return nil, errors.New("token has no user id")
	}
	return claims, nil
}

func (s *JWTService) signingKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(s.config.Secret), nil
}
