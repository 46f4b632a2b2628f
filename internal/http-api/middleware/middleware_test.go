package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ratehub/internal/http-api/models"
	"ratehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email string) (*models.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ExchangeCodeForToken(ctx context.Context, username, code string) (string, error) {
	args := m.Called(ctx, username, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestAuthenticate_ValidToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter()

	mockAuthService.On("ValidateToken", "good-token").Return(&service.Claims{
		UserID:   "user-id",
		Username: "alice",
		Role:     models.RoleUser,
	}, nil)

	var seen *models.User
	router.GET("/protected", Authenticate(mockAuthService), func(c *gin.Context) {
		seen = CurrentUser(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, seen)
	assert.Equal(t, "alice", seen.Username)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	router := setupRouter()
	router.GET("/protected", Authenticate(new(MockAuthService)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	router := setupRouter()
	router.GET("/protected", Authenticate(new(MockAuthService)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "not-a-bearer-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_StaffOverride(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter()

	// plain role but is_staff set: the staff flag alone grants admin
	mockAuthService.On("ValidateToken", "staff-token").Return(&service.Claims{
		UserID:   "staff-id",
		Username: "staffer",
		Role:     models.RoleUser,
		IsStaff:  true,
	}, nil)

	router.GET("/admin", Authenticate(mockAuthService), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer staff-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_ModeratorDenied(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupRouter()

	// moderators outrank users on content but hold no catalog privilege
	mockAuthService.On("ValidateToken", "mod-token").Return(&service.Claims{
		UserID:   "mod-id",
		Username: "mod",
		Role:     models.RoleModerator,
	}, nil)

	router.GET("/admin", Authenticate(mockAuthService), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer mod-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit_Exceeded(t *testing.T) {
	router := setupRouter()
	router.GET("/limited", RateLimit(1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/limited", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
