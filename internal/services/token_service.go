package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

type tokenServiceImpl struct {
	logger        zerolog.Logger
	jwtIssuer     string
	jwtSigningKey []byte
	jwtTokenTTL   time.Duration
	now           func() time.Time
}

func NewTokenService(
	logger zerolog.Logger,
	jwtIssuer string,
	jwtSigningKey []byte,
	jwtTokenTTL time.Duration,
) TokenService {
	return &tokenServiceImpl{
		logger:        logger,
		jwtIssuer:     jwtIssuer,
		jwtSigningKey: jwtSigningKey,
		jwtTokenTTL:   jwtTokenTTL,
		now:           time.Now,
	}
}

func (s *tokenServiceImpl) Issue(user *models.User) (*IssuedToken, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(s.jwtTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        tokenUUID.String(),
		Issuer:    s.jwtIssuer,
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(s.jwtSigningKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("token_id", tokenUUID.String()).
		Time("expires_at", expiresAt).
		Msg("issued token")

	return &IssuedToken{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *tokenServiceImpl) Parse(token string) (string, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSigningKey, nil
		},
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		// Expiry is reported as an ordinary invalid token; only the log
		// tells them apart.
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Warn().Msg("token is expired")
		} else {
			s.logger.Warn().
				Err(err).
				Msg("failed to parse token")
		}
		return "", ErrInvalidToken
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		s.logger.Warn().
			Str("subject", claims.Subject).
			Msg("token subject is not a user id")
		return "", ErrInvalidToken
	}
	return userID.String(), nil
}
