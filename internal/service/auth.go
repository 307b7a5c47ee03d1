package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/shop_catalog/internal/apperr"
	"github.com/Skotchmaster/shop_catalog/internal/events"
	"github.com/Skotchmaster/shop_catalog/internal/logging"
	"github.com/Skotchmaster/shop_catalog/internal/models"
	"github.com/Skotchmaster/shop_catalog/internal/storage"
)

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, digest string) (bool, error)
}

type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

type AuthService struct {
	Users  UserStore
	Hasher PasswordHasher
	Tokens TokenIssuer
	Events events.Publisher
}

type Session struct {
	Token string
	User  *models.User
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := s.ensureFree(ctx, username, email); err != nil {
		return nil, err
	}

	digest, err := s.Hasher.Hash(ctx, password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	u := &models.User{Username: username, Email: email, PasswordHash: digest}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// lost a race with a concurrent registration
			if ferr := s.ensureFree(ctx, username, ""); ferr != nil {
				return nil, ferr
			}
			return nil, apperr.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: %w", apperr.ErrStore, err)
	}

	ev := events.New("user_registered", map[string]any{"id": u.ID, "username": u.Username})
	if s.Events != nil {
		if err := s.Events.Publish(ctx, events.TopicUsers, strconv.FormatUint(uint64(u.ID), 10), ev); err != nil {
			l.Warn("event_publish_failed", "event", ev.Type, "error", err)
		}
	}
	return u, nil
}

// ensureFree checks username then email; an empty value is skipped.
func (s *AuthService) ensureFree(ctx context.Context, username, email string) error {
	if username != "" {
		_, err := s.Users.FindByUsername(ctx, username)
		switch {
		case err == nil:
			return apperr.ErrDuplicateUsername
		case !errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("%w: %w", apperr.ErrStore, err)
		}
	}
	if email != "" {
		_, err := s.Users.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return apperr.ErrDuplicateEmail
		case !errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("%w: %w", apperr.ErrStore, err)
		}
	}
	return nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.ErrWrongCredentials
		}
		return nil, fmt.Errorf("%w: %w", apperr.ErrStore, err)
	}

	ok, err := s.Hasher.Verify(ctx, password, u.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrWrongCredentials
	}
	return s.session(u)
}

// Persistent re-issues a token for the user a valid token was issued to.
func (s *AuthService) Persistent(ctx context.Context, userID uint) (*Session, error) {
	u, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.ErrInvalidToken
		}
		return nil, fmt.Errorf("%w: %w", apperr.ErrStore, err)
	}
	return s.session(u)
}

func (s *AuthService) session(u *models.User) (*Session, error) {
	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}
