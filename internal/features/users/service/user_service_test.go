package service

import (
	"context"
	"testing"

	"storefront-api/internal/core/auth"
	"storefront-api/internal/features/users/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of ports.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

const testSecret = "test-secret"

func TestRegister(t *testing.T) {
	t.Run("LowercasesAndHashes", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, testSecret)

		repo.On("UsernameExists", mock.Anything, "newadmin").Return(false, nil).Once()
		repo.On("EmailExists", mock.Anything, "admin@example.com").Return(false, nil).Once()

		var created domain.User
		repo.On("Create", mock.Anything, mock.AnythingOfType("domain.User")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(domain.User)
			}).Return(nil).Once()

		err := svc.Register(context.Background(), "NewAdmin", "Admin@Example.com", "hunter22", "Admin")
		require.NoError(t, err)

		assert.Equal(t, "newadmin", created.Username)
		assert.Equal(t, "admin@example.com", created.Email)
		assert.Equal(t, "admin", created.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter22")))
		repo.AssertExpectations(t)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, testSecret)

		repo.On("UsernameExists", mock.Anything, "newadmin").Return(true, nil).Once()

		err := svc.Register(context.Background(), "NewAdmin", "admin@example.com", "hunter22", "admin")
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, testSecret)

		repo.On("UsernameExists", mock.Anything, "newadmin").Return(false, nil).Once()
		repo.On("EmailExists", mock.Anything, "admin@example.com").Return(true, nil).Once()

		err := svc.Register(context.Background(), "NewAdmin", "admin@example.com", "hunter22", "admin")
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &domain.User{
		ID:           "u-1",
		Username:     "admin",
		Email:        "admin@example.com",
		Role:         "admin",
		PasswordHash: string(hash),
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, testSecret)

		repo.On("GetByUsername", mock.Anything, "admin").Return(storedUser, nil).Once()

		user, token, err := svc.Login(context.Background(), "Admin", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)

		claims, err := auth.VerifyAccessToken(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, testSecret)

		repo.On("GetByUsername", mock.Anything, "admin").Return(storedUser, nil).Once()

		_, _, err := svc.Login(context.Background(), "admin", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, testSecret)

		repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil).Once()

		_, _, err := svc.Login(context.Background(), "ghost", "hunter22")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
