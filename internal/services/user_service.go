package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/identity"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/store"
)

const usersPartition = "users"

type userServiceImpl struct {
	logger   zerolog.Logger
	provider identity.Provider
	store    store.Store
}

func NewUserService(
	logger zerolog.Logger,
	provider identity.Provider,
	store store.Store,
) UserService {
	return &userServiceImpl{
		logger:   logger,
		provider: provider,
		store:    store,
	}
}

func (s *userServiceImpl) SignUp(ctx context.Context, params SignUpParams) (string, error) {
	email := strings.TrimSpace(params.Email)
	fullName := strings.TrimSpace(params.FullName)

	account, err := s.provider.CreateAccount(ctx, email, params.Password, fullName)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return "", ErrEmailAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to create account")
		return "", err
	}

	user := models.User{
		UID:       account.UID,
		Email:     email,
		FullName:  fullName,
		CreatedAt: time.Now().UTC(),
	}

	doc, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to marshal user: %w", err)
	}

	err = s.store.Put(ctx, usersPartition, user.UID, doc)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("uid", user.UID).
			Msg("failed to put user record")
		return "", err
	}

	s.logger.Info().
		Str("uid", user.UID).
		Str("email", user.Email).
		Msg("signed up user")
	return user.UID, nil
}

func (s *userServiceImpl) LogIn(ctx context.Context, email, password string) (string, error) {
	token, err := s.provider.PasswordGrant(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return "", ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Msg("password grant failed")
		return "", err
	}

	s.logger.Info().Msg("logged in user")
	return token, nil
}

func (s *userServiceImpl) Profile(ctx context.Context, uid string) (*Profile, error) {
	// Reads the provider, not the stored user record, so it reflects
	// provider-side state even where the two have drifted.
	account, err := s.provider.AccountByUID(ctx, uid)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("uid", uid).
			Msg("failed to fetch account")
		return nil, err
	}

	return &Profile{
		UID:         account.UID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		CreatedAt:   account.CreatedAt,
	}, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, uid, fullName string) error {
	doc, err := s.store.Get(ctx, usersPartition, uid)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("uid", uid).
			Msg("failed to get user record")
		return err
	}

	user := new(models.User)
	if err := json.Unmarshal(doc, user); err != nil {
		return fmt.Errorf("failed to unmarshal user: %w", err)
	}

	user.FullName = strings.TrimSpace(fullName)

	doc, err = json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	err = s.store.Update(ctx, usersPartition, uid, doc)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("uid", uid).
			Msg("failed to update user record")
		return err
	}

	s.logger.Info().
		Str("uid", uid).
		Msg("updated user profile")
	return nil
}
