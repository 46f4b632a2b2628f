package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"ratehub/internal/config"
	"ratehub/internal/http-api/apperrors"
	"ratehub/internal/http-api/models"
	"ratehub/internal/http-api/repository"
	"ratehub/internal/mailer"
	codeauth "ratehub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// letters, digits and _ @ + - . only
var usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_.@+-]+$`)

// Claims carries the identity a bearer token encodes. Downstream components
// trust it as-is; no per-request user lookup happens.
type Claims struct {
	UserID   string
	Username string
	Role     string
	IsStaff  bool
}

type AuthService interface {
	// Register creates (or reuses, for the exact same username/email pair)
	// a user record, issues a fresh confirmation code and dispatches it.
	Register(ctx context.Context, username, email string) (*models.User, error)
	// ExchangeCodeForToken activates the account and issues a bearer token
	// when the presented code matches. The code is not consumed: presenting
	// it again before the next signup rotates it succeeds again. Known
	// weakness of the auth contract, kept deliberately.
	ExchangeCodeForToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	sender    mailer.Sender
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sender mailer.Sender, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		sender:    sender,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

// ValidateUsername enforces the allowed-character pattern and length. "me"
// is reserved for the /users/me route.
func ValidateUsername(username string) error {
	if username == "" || len(username) > 150 {
		return fmt.Errorf("%w: username must be 1-150 characters", apperrors.ErrValidation)
	}
	if !usernameRegexp.MatchString(username) {
		return fmt.Errorf("%w: username may only contain letters, digits and _ @ + - .", apperrors.ErrValidation)
	}
	if username == "me" {
		return fmt.Errorf("%w: username %q is reserved", apperrors.ErrValidation, username)
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" || len(email) > 254 {
		return fmt.Errorf("%w: email must be 1-254 characters", apperrors.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", apperrors.ErrValidation)
	}
	return nil
}

func (s *authService) Register(ctx context.Context, username, email string) (*models.User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	// The exact (username, email) pair is an idempotent re-registration;
	// the code below just rotates. Anything else goes through Create and
	// lets the unique indexes arbitrate collisions.
	user, err := s.userRepo.FindByUsernameAndEmail(ctx, username, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			Username: username,
			Email:    email,
			Role:     models.RoleUser,
			IsActive: false,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if repository.IsDuplicateKey(err) {
				return nil, fmt.Errorf("%w: user with this username or email already exists", apperrors.ErrConflict)
			}
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	code, err := codeauth.GenerateConfirmationCode()
	if err != nil {
		return nil, err
	}
	hash, err := codeauth.HashConfirmationCode(code)
	if err != nil {
		return nil, err
	}
	user.ConfirmationCode = &hash
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	// Delivery is delegated; a failing relay fails the request loudly
	// rather than leaving the user with no way to get a code.
	if err := s.sender.SendConfirmationCode(ctx, user.Email, code); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) ExchangeCodeForToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: user %q", apperrors.ErrNotFound, username)
	}
	if err != nil {
		return "", err
	}

	if user.ConfirmationCode == nil {
		return "", fmt.Errorf("%w: no confirmation code issued", apperrors.ErrInvalidCredentials)
	}
	if err := codeauth.VerifyConfirmationCode(*user.ConfirmationCode, code); err != nil {
		return "", fmt.Errorf("%w: confirmation code mismatch", apperrors.ErrInvalidCredentials)
	}

	user.IsActive = true
	if err := s.userRepo.Save(ctx, user); err != nil {
		return "", err
	}

	return s.generateToken(user)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"is_staff": user.IsStaff,
		"exp":      time.Now().Add(s.jwtExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAuthentication, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrAuthentication)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: malformed claims", apperrors.ErrAuthentication)
	}

	claims := &Claims{}
	if v, ok := mapClaims["user_id"].(string); ok {
		claims.UserID = v
	}
	if v, ok := mapClaims["username"].(string); ok {
		claims.Username = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = v
	}
	if v, ok := mapClaims["is_staff"].(bool); ok {
		claims.IsStaff = v
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: token carries no identity", apperrors.ErrAuthentication)
	}

	return claims, nil
}
