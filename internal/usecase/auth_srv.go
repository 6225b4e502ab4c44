package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"moodflix/internal/data/entity"
	"moodflix/internal/data/repository"
	"moodflix/internal/dto/request"
	"moodflix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is a signed-in user plus the token that proves it.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*Session, error)
	Login(ctx context.Context, req *request.LoginRequest) (*Session, error)
	// Me returns nil, nil when the user no longer exists.
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *utils.TokenManager
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *utils.TokenManager, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*Session, error) {
	// 1. Validate input
	req.Email = normalizeEmail(req.Email)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Debug("Signup validation failed", zap.Any("errors", errs))
		msg := "Email and password are required"
		if req.Email != "" && req.Password != "" {
			msg = "Invalid signup data: " + utils.FormatValidationErrors(errs)
		}
		return nil, newValidationError(msg, errs)
	}

	// 2. Check email is free
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	// 3. Hash password
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	// 4. Create user
	var name *string
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		trimmed := strings.TrimSpace(*req.Name)
		name = &trimmed
	}

	now := utils.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: hash,
		Name:         name,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info("User signed up", zap.String("user_id", user.ID.String()))

	// 5. Sign in
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*Session, error) {
	// 1. Validate input
	req.Email = normalizeEmail(req.Email)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("Email and password are required", errs)
	}

	// 2. Find user and check password
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Info("Login rejected", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	// 3. Sign in
	return s.issue(user)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	return s.users.FindByID(ctx, userID)
}

func (s *authService) issue(user *entity.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.log.Error("Failed to sign session token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
