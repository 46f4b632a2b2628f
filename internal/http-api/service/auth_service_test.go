package service

import (
	"context"
	"testing"
	"time"

	"ratehub/internal/config"
	"ratehub/internal/http-api/apperrors"
	"ratehub/internal/http-api/models"
	codeauth "ratehub/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newTestAuthService(userRepo *MockUserRepository, sender *MockSender) AuthService {
	cfg := &config.Config{
		JWTSecret: "test-secret-test-secret-test-secret",
		JWTExpiry: time.Hour,
	}
	return NewAuthService(userRepo, sender, cfg)
}

func TestRegister_NewUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	authService := newTestAuthService(mockUserRepo, mockSender)

	mockUserRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "alice@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	mockUserRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	mockSender.On("SendConfirmationCode", mock.Anything, "alice@example.com", mock.AnythingOfType("string")).
		Return(nil)

	user, err := authService.Register(context.Background(), "alice", "alice@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.False(t, user.IsActive)
	assert.NotNil(t, user.ConfirmationCode)
	mockUserRepo.AssertExpectations(t)
	mockSender.AssertExpectations(t)
}

func TestRegister_SamePairIsIdempotent(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	authService := newTestAuthService(mockUserRepo, mockSender)

	existing := &models.User{ID: "user-id", Username: "alice", Email: "alice@example.com"}
	mockUserRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "alice@example.com").
		Return(existing, nil)
	mockUserRepo.On("Save", mock.Anything, existing).Return(nil)
	mockSender.On("SendConfirmationCode", mock.Anything, "alice@example.com", mock.AnythingOfType("string")).
		Return(nil)

	user, err := authService.Register(context.Background(), "alice", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "user-id", user.ID)
	assert.NotNil(t, user.ConfirmationCode)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockUserRepo.AssertExpectations(t)
	mockSender.AssertExpectations(t)
}

func TestRegister_PartialCollision(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	authService := newTestAuthService(mockUserRepo, mockSender)

	// same username, different email: no exact-pair match, Create loses
	// against the unique index
	mockUserRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "other@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(gorm.ErrDuplicatedKey)

	user, err := authService.Register(context.Background(), "alice", "other@example.com")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockSender.AssertNotCalled(t, "SendConfirmationCode", mock.Anything, mock.Anything, mock.Anything)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_ReservedUsername(t *testing.T) {
	authService := newTestAuthService(new(MockUserRepository), new(MockSender))

	user, err := authService.Register(context.Background(), "me", "me@example.com")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRegister_BadUsernameCharacters(t *testing.T) {
	authService := newTestAuthService(new(MockUserRepository), new(MockSender))

	user, err := authService.Register(context.Background(), "bad name!", "a@example.com")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRegister_InvalidEmail(t *testing.T) {
	authService := newTestAuthService(new(MockUserRepository), new(MockSender))

	user, err := authService.Register(context.Background(), "alice", "not-an-email")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRegister_SenderFailureFailsRequest(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockSender := new(MockSender)
	authService := newTestAuthService(mockUserRepo, mockSender)

	mockUserRepo.On("FindByUsernameAndEmail", mock.Anything, "alice", "alice@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	mockUserRepo.On("Save", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	mockSender.On("SendConfirmationCode", mock.Anything, "alice@example.com", mock.AnythingOfType("string")).
		Return(assert.AnError)

	user, err := authService.Register(context.Background(), "alice", "alice@example.com")

	assert.Nil(t, user)
	assert.Error(t, err)
	mockSender.AssertExpectations(t)
}

func TestExchangeCodeForToken_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	hash, err := codeauth.HashConfirmationCode("GOODCODE")
	assert.NoError(t, err)

	user := &models.User{
		ID:               "user-id",
		Username:         "alice",
		Role:             models.RoleUser,
		ConfirmationCode: &hash,
	}
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	mockUserRepo.On("Save", mock.Anything, user).Return(nil)

	token, err := authService.ExchangeCodeForToken(context.Background(), "alice", "GOODCODE")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, user.IsActive)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-id", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestExchangeCodeForToken_CodeReusable(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	hash, _ := codeauth.HashConfirmationCode("GOODCODE")
	user := &models.User{ID: "user-id", Username: "alice", ConfirmationCode: &hash}
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	mockUserRepo.On("Save", mock.Anything, user).Return(nil)

	first, err := authService.ExchangeCodeForToken(context.Background(), "alice", "GOODCODE")
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := authService.ExchangeCodeForToken(context.Background(), "alice", "GOODCODE")
	assert.NoError(t, err)
	assert.NotEmpty(t, second)
}

func TestExchangeCodeForToken_WrongCode(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	hash, _ := codeauth.HashConfirmationCode("GOODCODE")
	user := &models.User{ID: "user-id", Username: "alice", ConfirmationCode: &hash}
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

	token, err := authService.ExchangeCodeForToken(context.Background(), "alice", "WRONGONE")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.False(t, user.IsActive)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExchangeCodeForToken_NoCodeIssued(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	user := &models.User{ID: "user-id", Username: "alice"}
	mockUserRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

	token, err := authService.ExchangeCodeForToken(context.Background(), "alice", "ANYCODE1")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestExchangeCodeForToken_UserNotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := newTestAuthService(mockUserRepo, new(MockSender))

	mockUserRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	token, err := authService.ExchangeCodeForToken(context.Background(), "ghost", "ANYCODE1")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestValidateToken_Garbage(t *testing.T) {
	authService := newTestAuthService(new(MockUserRepository), new(MockSender))

	claims, err := authService.ValidateToken("not.a.token")

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		valid    bool
	}{
		{"alice", true},
		{"a.b+c@d-e_f", true},
		{"me", false},
		{"", false},
		{"spaced name", false},
		{"Кириллица", false},
	}

	for _, tt := range tests {
		err := ValidateUsername(tt.username)
		if tt.valid {
			assert.NoError(t, err, tt.username)
		} else {
			assert.Error(t, err, tt.username)
		}
	}
}
