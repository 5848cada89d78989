package service

import (
	"context"
	"testing"
	"time"

	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/leandrawisnu/noteshare/internal/store"
	"github.com/leandrawisnu/noteshare/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(userRepo *mockUserRepository) *authService {
	return &authService{
		userRepository: userRepo,
		tokenSignKey:   "test-sign-key",
		tokenIssuer:    "noteshare-test",
		tokenDuration:  time.Hour,
		logger:         logger.Nop(),
	}
}

func TestRegisterUser_EmptyCredentialsRejected(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.RegisterUser(context.Background(), models.User{Email: "john@example.com"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.User{Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_HashesPassword(t *testing.T) {
	var persisted models.User
	userRepo := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			persisted = user
			user.UserID = 1
			return user, nil
		},
	}
	svc := newTestAuthService(userRepo)

	registered, err := svc.RegisterUser(context.Background(), models.User{
		Email:    "john@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)

	assert.Empty(t, persisted.Password, "plaintext password must not reach the repository")
	require.NotEmpty(t, persisted.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte("secret")))
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepository{
		createFn: func(context.Context, models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(userRepo)

	_, err := svc.RegisterUser(context.Background(), models.User{Email: "john@example.com", Password: "secret"})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo := &mockUserRepository{
		findFn: func(context.Context, string) (models.User, error) {
			return models.User{UserID: 42, Email: "john@example.com", PasswordHash: string(hash)}, nil
		},
	}
	svc := newTestAuthService(userRepo)

	user, err := svc.Login(context.Background(), models.User{Email: "john@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo := &mockUserRepository{
		findFn: func(context.Context, string) (models.User, error) {
			return models.User{UserID: 42, PasswordHash: string(hash)}, nil
		},
	}
	svc := newTestAuthService(userRepo)

	_, err = svc.Login(context.Background(), models.User{Email: "john@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownUser(t *testing.T) {
	userRepo := &mockUserRepository{
		findFn: func(context.Context, string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestAuthService(userRepo)

	_, err := svc.Login(context.Background(), models.User{Email: "ghost@example.com", Password: "secret"})
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestCreateToken_ParseToken_RoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	token, err := svc.CreateToken(context.Background(), models.User{UserID: 42, Email: "john@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestParseToken_InvalidToken(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
