package service

import (
	"context"
	"fmt"
	"log/slog"

	"portfolio_pro/internal/common"
	"portfolio_pro/internal/common/validation"
	"portfolio_pro/internal/domain/model"
	"portfolio_pro/internal/domain/repository"
	"portfolio_pro/internal/platform/storage"
)

// UserService covers profile reads and the owner-gated mutations: profile
// update, resume upload, and hard account deletion.
type UserService struct {
	userRepo repository.UserRepository
	blobs    storage.BlobStore
	logger   *slog.Logger
}

func NewUserService(userRepo repository.UserRepository, blobs storage.BlobStore, logger *slog.Logger) *UserService {
	return &UserService{userRepo: userRepo, blobs: blobs, logger: logger}
}

type UpdateProfileRequest struct {
	Username        *string   `json:"username" validate:"omitempty,min=3,max=20"`
	FirstName       *string   `json:"first_name" validate:"omitempty,max=50"`
	LastName        *string   `json:"last_name" validate:"omitempty,max=50"`
	Title           *string   `json:"title"`
	Bio             *string   `json:"bio"`
	YearsOfExp      *int      `json:"years_of_experience" validate:"omitempty,min=0"`
	ProfileImageURL *string   `json:"profile_image_url" validate:"omitempty,url"`
	Tagline1        *string   `json:"tagline1"`
	Tagline2        *string   `json:"tagline2"`
	FrontendSkills  *[]string `json:"frontend_skills"`
	BackendSkills   *[]string `json:"backend_skills"`
	DatabaseSkills  *[]string `json:"database_skills"`
	InstagramLink   *string   `json:"instagram_link" validate:"omitempty,url"`
	GitHubLink      *string   `json:"github_link" validate:"omitempty,url"`
	LinkedInLink    *string   `json:"linkedin_link" validate:"omitempty,url"`
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// ListUserCards returns the public card projection for every account.
func (s *UserService) ListUserCards(ctx context.Context) ([]model.UserCard, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]model.UserCard, 0, len(users))
	for i := range users {
		cards = append(cards, users[i].Card())
	}
	return cards, nil
}

// UpdateProfile applies a partial update; nil fields stay untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	patch := repository.ProfilePatch{
		Username:        req.Username,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Title:           req.Title,
		Bio:             req.Bio,
		YearsOfExp:      req.YearsOfExp,
		ProfileImageURL: req.ProfileImageURL,
		Tagline1:        req.Tagline1,
		Tagline2:        req.Tagline2,
		FrontendSkills:  req.FrontendSkills,
		BackendSkills:   req.BackendSkills,
		DatabaseSkills:  req.DatabaseSkills,
		InstagramLink:   req.InstagramLink,
		GitHubLink:      req.GitHubLink,
		LinkedInLink:    req.LinkedInLink,
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// UploadResume stores the file and records its public URL on the profile.
func (s *UserService) UploadResume(ctx context.Context, userID string, file FileUpload) (string, error) {
	if file.Size == 0 {
		return "", fmt.Errorf("no file uploaded: %w", common.ErrBadRequest)
	}

	url, err := s.blobs.Upload(ctx, file.Reader, file.ContentType, file.Filename)
	if err != nil {
		return "", fmt.Errorf("resume upload failed: %w", err)
	}

	if err := s.userRepo.UpdateResumeURL(ctx, userID, url); err != nil {
		return "", fmt.Errorf("failed to record resume url: %w", err)
	}
	return url, nil
}

// DeleteUser removes the account permanently. Accounts have no trash bin.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	ok, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !ok {
		return common.ErrNotFound
	}
	return nil
}
