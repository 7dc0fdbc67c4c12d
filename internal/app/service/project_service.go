package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"portfolio_pro/internal/common"
	"portfolio_pro/internal/common/validation"
	"portfolio_pro/internal/domain/model"
	"portfolio_pro/internal/domain/repository"
	"portfolio_pro/internal/platform/storage"

	"github.com/google/uuid"
)

// ProjectService drives the active -> trashed -> gone lifecycle of portfolio
// projects. Ownership is enforced inside each repository predicate, never as
// a separate read.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	blobs       storage.BlobStore
	logger      *slog.Logger
}

func NewProjectService(projectRepo repository.ProjectRepository, blobs storage.BlobStore, logger *slog.Logger) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, blobs: blobs, logger: logger}
}

type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	ProjectURL  string `json:"project_url" validate:"required,url"`
	LiveDemoURL string `json:"live_demo_url" validate:"omitempty,url"`
}

type UpdateProjectRequest struct {
	Title       string `json:"title" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	ProjectURL  string `json:"project_url" validate:"omitempty,url"`
	LiveDemoURL string `json:"live_demo_url" validate:"omitempty,url"`
}

// Create inserts a new active project. When an image accompanies the request
// the upload runs first; if it fails no row is written.
func (s *ProjectService) Create(ctx context.Context, userID string, req CreateProjectRequest, image *FileUpload) (*model.Project, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var imageURL string
	if image != nil {
		url, err := s.blobs.Upload(ctx, image.Reader, image.ContentType, image.Filename)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		imageURL = url
	}

	project := &model.Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    imageURL,
		ProjectURL:  req.ProjectURL,
		LiveDemoURL: req.LiveDemoURL,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) ListActive(ctx context.Context, userID string) ([]model.Project, error) {
	return s.projectRepo.ListActive(ctx, userID)
}

func (s *ProjectService) ListTrashed(ctx context.Context, userID string) ([]model.Project, error) {
	return s.projectRepo.ListTrashed(ctx, userID)
}

// SoftDelete moves a project to the trash. A miss — whether the project does
// not exist or belongs to someone else — is reported as not found.
func (s *ProjectService) SoftDelete(ctx context.Context, projectID, userID string) error {
	ok, err := s.projectRepo.SoftDelete(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to trash project: %w", err)
	}
	if !ok {
		return common.ErrNotFound
	}
	return nil
}

// Restore brings a trashed project back. Restoring an already-active project
// is a miss, not a no-op success.
func (s *ProjectService) Restore(ctx context.Context, projectID, userID string) error {
	ok, err := s.projectRepo.Restore(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to restore project: %w", err)
	}
	if !ok {
		return common.ErrNotFound
	}
	return nil
}

// PermanentDelete removes the row and then makes a best-effort attempt to
// delete the stored image. Once the row is gone the operation has succeeded;
// a blob failure only leaves an orphaned asset behind, which is logged.
func (s *ProjectService) PermanentDelete(ctx context.Context, projectID, userID string) error {
	deleted, imageURL, err := s.projectRepo.DeleteReturningImage(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if !deleted {
		return common.ErrNotFound
	}

	if imageURL != "" {
		if err := s.blobs.Delete(ctx, imageURL); err != nil {
			s.logger.Warn("orphaned asset: project image could not be deleted from storage",
				"project_id", projectID, "image_url", imageURL, "error", err)
		}
	}
	return nil
}

// Update applies a partial update. A new image is uploaded first and its URL
// overwrites the old one; the previous blob is left in place (known leak,
// cleaned up out of band).
func (s *ProjectService) Update(ctx context.Context, projectID, userID string, req UpdateProjectRequest, image *FileUpload) (*model.Project, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	patch := repository.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		ProjectURL:  req.ProjectURL,
		LiveDemoURL: req.LiveDemoURL,
	}

	if image != nil {
		url, err := s.blobs.Upload(ctx, image.Reader, image.ContentType, image.Filename)
		if err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		patch.ImageURL = url
	}

	project, err := s.projectRepo.UpdatePartial(ctx, projectID, userID, patch)
	if err != nil {
		return nil, err
	}
	return project, nil
}
