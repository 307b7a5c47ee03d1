package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Skotchmaster/shop_catalog/internal/events"
	"github.com/Skotchmaster/shop_catalog/internal/models"
)

type UserStore struct{ mock.Mock }

func (m *UserStore) user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.user(m.Called(ctx, username))
}

func (m *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *UserStore) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

type PasswordHasher struct{ mock.Mock }

func (m *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	args := m.Called(ctx, password, digest)
	return args.Bool(0), args.Error(1)
}

type TokenIssuer struct{ mock.Mock }

func (m *TokenIssuer) Issue(userID uint) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

type Publisher struct{ mock.Mock }

func (m *Publisher) Publish(ctx context.Context, topic, key string, ev events.Event) error {
	return m.Called(ctx, topic, key, ev).Error(0)
}

func (m *Publisher) Close() error { return m.Called().Error(0) }
