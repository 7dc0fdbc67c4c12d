package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"portfolio_pro/internal/common"
	"portfolio_pro/internal/common/security"
	"portfolio_pro/internal/common/validation"
	"portfolio_pro/internal/domain/model"
	"portfolio_pro/internal/domain/repository"
	"portfolio_pro/internal/platform/mailer"

	"github.com/google/uuid"
)

// AuthService owns credentials: registration, login, and the time-boxed
// reset-code flow.
type AuthService struct {
	userRepo     repository.UserRepository
	tokens       *security.TokenIssuer
	notifier     mailer.Notifier
	resetCodeTTL time.Duration
	logger       *slog.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens *security.TokenIssuer,
	notifier mailer.Notifier,
	resetCodeTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokens:       tokens,
		notifier:     notifier,
		resetCodeTTL: resetCodeTTL,
		logger:       logger,
	}
}

type RegisterRequest struct {
	Username        string   `json:"username" validate:"required,min=3,max=20"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,password"`
	FirstName       string   `json:"first_name" validate:"required,max=50"`
	LastName        string   `json:"last_name" validate:"omitempty,max=50"`
	Title           string   `json:"title"`
	Bio             string   `json:"bio"`
	YearsOfExp      int      `json:"years_of_experience" validate:"min=0"`
	ProfileImageURL string   `json:"profile_image_url" validate:"omitempty,url"`
	ResumeURL       string   `json:"resume_url" validate:"omitempty,url"`
	Tagline1        string   `json:"tagline1"`
	Tagline2        string   `json:"tagline2"`
	FrontendSkills  []string `json:"frontend_skills"`
	BackendSkills   []string `json:"backend_skills"`
	DatabaseSkills  []string `json:"database_skills"`
	InstagramLink   string   `json:"instagram_link" validate:"omitempty,url"`
	GitHubLink      string   `json:"github_link" validate:"omitempty,url"`
	LinkedInLink    string   `json:"linkedin_link" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,resetcode"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:              uuid.NewString(),
		Username:        req.Username,
		Email:           req.Email,
		HashedPassword:  hashedPassword,
		Role:            model.RoleStandard, // Default role
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Title:           req.Title,
		Bio:             req.Bio,
		YearsOfExp:      req.YearsOfExp,
		ProfileImageURL: req.ProfileImageURL,
		ResumeURL:       req.ResumeURL,
		Tagline1:        req.Tagline1,
		Tagline2:        req.Tagline2,
		FrontendSkills:  emptyIfNil(req.FrontendSkills),
		BackendSkills:   emptyIfNil(req.BackendSkills),
		DatabaseSkills:  emptyIfNil(req.DatabaseSkills),
		InstagramLink:   req.InstagramLink,
		GitHubLink:      req.GitHubLink,
		LinkedInLink:    req.LinkedInLink,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = "" // Clear before returning
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// RequestPasswordReset starts the recovery flow. When no account matches the
// email nothing happens at all: no code, no row update, no mail. The handler
// response is identical either way so callers cannot probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req ForgotPasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up account: %w", err)
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}
	expiry := time.Now().UTC().Add(s.resetCodeTTL)

	if _, err := s.userRepo.SetResetCode(ctx, user.Email, code, expiry); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	subject := "Password Reset"
	body := fmt.Sprintf("<p>Your password reset code is <strong>%s</strong>. It expires in %d minutes.</p>",
		code, int(s.resetCodeTTL.Minutes()))
	if err := s.notifier.Send(ctx, user.Email, subject, body); err != nil {
		// The code is already committed; a delivery failure must not undo it
		// or leak to the caller.
		s.logger.Warn("reset code email delivery failed", "email", user.Email, "error", err)
	}
	return nil
}

// ResetPassword redeems a code. Wrong email, wrong code, and expired code
// are indistinguishable: all come back as a plain false.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) (bool, error) {
	if err := validation.Struct(req); err != nil {
		return false, err
	}

	hashedPassword, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	ok, err := s.userRepo.ResetPassword(ctx, req.Email, req.Code, hashedPassword)
	if err != nil {
		return false, fmt.Errorf("failed to reset password: %w", err)
	}
	return ok, nil
}

// generateResetCode draws a uniform 6-digit code: 100000..999999 inclusive,
// so the leading digit is never zero.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
