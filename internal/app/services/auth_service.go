package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/selim/campusfind/internal/app/models"
	"github.com/selim/campusfind/internal/app/models/dto"
	"github.com/selim/campusfind/internal/app/repositories"
	"github.com/selim/campusfind/internal/pkg/apperrors"
	pkgauth "github.com/selim/campusfind/internal/pkg/auth"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserProfile, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (*dto.UserProfile, error)
	DeleteUser(ctx context.Context, userID, actingUserID string) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo   repositories.IUserRepository
	jwtService *pkgauth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo repositories.IUserRepository, jwtService *pkgauth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validatePassword checks password strength before hashing.
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}

	return nil
}

func (s *authServiceImpl) validateRegistration(req *dto.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if !emailRegex.MatchString(req.Email) {
		return apperrors.ErrInvalidEmail
	}

	if req.Role != "" && !models.ValidRole(req.Role) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidRole, req.Role)
	}

	return validatePassword(req.Password)
}

// Register creates a new user with a bcrypt-hashed credential. The raw
// password is never stored or logged.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserProfile, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = newUserID()
	}

	hash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var phone *string
	if p := strings.TrimSpace(req.Phone); p != "" {
		phone = &p
	}

	user := &models.User{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        phone,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userId", user.UserID).Str("role", string(user.Role)).Msg("User registered")
	return dto.NewUserProfile(user), nil
}

// Login authenticates by user id, or by email when the identifier contains
// "@". Unknown user and wrong password collapse into the same failure so the
// response leaks nothing about which one was wrong.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var user *models.User
	var err error
	if strings.Contains(req.Identifier, "@") {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(req.Identifier))
	} else {
		user, err = s.userRepo.GetByID(ctx, req.Identifier)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !pkgauth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.UserID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info().Str("userId", user.UserID).Msg("User logged in")

	return &dto.LoginResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.NewUserProfile(user),
	}, nil
}

// GetProfile returns the public profile for a user id.
func (s *authServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

// DeleteUser removes an account. Admin only; the user's posts cascade away
// and matches they initiated keep their audit row with a nulled claimant.
func (s *authServiceImpl) DeleteUser(ctx context.Context, userID, actingUserID string) error {
	actor, err := s.userRepo.GetByID(ctx, actingUserID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperrors.ErrAdminRequired
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("userId", userID).Str("deletedBy", actingUserID).Msg("User deleted")
	return nil
}

// newUserID generates an identifier for callers that did not pick one.
func newUserID() string {
	return "usr_" + uuidHex(8)
}

func uuidHex(n int) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return hex[:n]
}
