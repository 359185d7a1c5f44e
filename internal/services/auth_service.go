package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

const bearerScheme = "Bearer"

type authServiceImpl struct {
	logger zerolog.Logger
	users  storage.UserStorage
	tokens TokenService
	params *argon2id.Params
}

func NewAuthService(
	logger zerolog.Logger,
	users storage.UserStorage,
	tokens TokenService,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		users:  users,
		tokens: tokens,
		params: argon2id.DefaultParams,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	_, err := s.users.FindUserByEmail(ctx, params.Email)
	if err == nil {
		s.logger.Error().
			Str("email", params.Email).
			Msg("user with this email already exists")
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.logger.Error().
			Err(err).
			Str("email", params.Email).
			Msg("failed to select user by email")
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	now := time.Now()
	user := &models.User{
		Name:      params.Name,
		Email:     params.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, s.params)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.Password = passwordHash

	err = s.users.InsertUser(ctx, user)
	if err != nil {
		// A concurrent registration can pass the lookup above.
		if errors.Is(err, storage.ErrAlreadyExists) {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user with this email already exists")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("registered user")
	return user.WithoutPassword(), nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	user, err := s.users.FindUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Str("email", params.Email).
				Msg("user not found")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", params.Email).
			Msg("failed to select user by email")
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user")

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Error().Msg("passwords do not match")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")
	return &LoginResult{
		User:           user.WithoutPassword(),
		AccessToken:    token.Token,
		TokenExpiresAt: token.ExpiresAt,
	}, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, authorization string) (*models.User, error) {
	scheme, token, found := strings.Cut(authorization, " ")
	if !found || scheme != bearerScheme || token == "" {
		s.logger.Debug().Msg("no bearer token in authorization header")
		return nil, ErrNoToken
	}

	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn().
				Str("user_id", userID).
				Msg("token user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select user by id")
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}
	return user.WithoutPassword(), nil
}
