package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"portfolio_pro/internal/common"
	"portfolio_pro/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProjectService(repo *fakeProjectRepo, blobs *fakeBlobStore) *ProjectService {
	return NewProjectService(repo, blobs, testLogger())
}

func validCreateProjectRequest() CreateProjectRequest {
	return CreateProjectRequest{
		Title:       "Portfolio Site",
		Description: "A personal portfolio site.",
		ProjectURL:  "https://github.com/jdoe/portfolio",
	}
}

func imageUpload() *FileUpload {
	return &FileUpload{
		Reader:      strings.NewReader("png-bytes"),
		ContentType: "image/png",
		Filename:    "screenshot.png",
		Size:        9,
	}
}

func trashedProject(id, userID string) *model.Project {
	now := time.Now()
	return &model.Project{ID: id, UserID: userID, Title: "old", DeletedAt: &now}
}

func TestProjectService_Create(t *testing.T) {
	repo := newFakeProjectRepo()
	blobs := &fakeBlobStore{}
	svc := newTestProjectService(repo, blobs)

	project, err := svc.Create(context.Background(), "u1", validCreateProjectRequest(), imageUpload())
	require.NoError(t, err)

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "u1", project.UserID)
	assert.Nil(t, project.DeletedAt)
	assert.NotEmpty(t, project.ImageURL)
	assert.Len(t, blobs.uploads, 1)
}

func TestProjectService_Create_UploadFailureWritesNoRow(t *testing.T) {
	repo := newFakeProjectRepo()
	blobs := &fakeBlobStore{uploadErr: errBlobDown}
	svc := newTestProjectService(repo, blobs)

	_, err := svc.Create(context.Background(), "u1", validCreateProjectRequest(), imageUpload())
	assert.Error(t, err)
	assert.Empty(t, repo.projects)
}

func TestProjectService_Create_InvalidRequest(t *testing.T) {
	svc := newTestProjectService(newFakeProjectRepo(), &fakeBlobStore{})

	req := validCreateProjectRequest()
	req.Title = ""
	_, err := svc.Create(context.Background(), "u1", req, nil)
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestProjectService_SoftDeleteAndRestore(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newTestProjectService(repo, &fakeBlobStore{})

	project, err := svc.Create(context.Background(), "u1", validCreateProjectRequest(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(context.Background(), project.ID, "u1"))

	active, err := svc.ListActive(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, active)

	trashed, err := svc.ListTrashed(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	assert.True(t, trashed[0].Trashed())

	// Trashing twice is a miss.
	err = svc.SoftDelete(context.Background(), project.ID, "u1")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	require.NoError(t, svc.Restore(context.Background(), project.ID, "u1"))

	active, err = svc.ListActive(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	// Restoring an active project is a miss, not a no-op.
	err = svc.Restore(context.Background(), project.ID, "u1")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestProjectService_SoftDelete_ForeignProject(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newTestProjectService(repo, &fakeBlobStore{})

	project, err := svc.Create(context.Background(), "u1", validCreateProjectRequest(), nil)
	require.NoError(t, err)

	// Another user's id against an existing project: indistinguishable from
	// a missing project.
	err = svc.SoftDelete(context.Background(), project.ID, "u2")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestProjectService_PermanentDelete(t *testing.T) {
	repo := newFakeProjectRepo()
	blobs := &fakeBlobStore{}
	svc := newTestProjectService(repo, blobs)

	project, err := svc.Create(context.Background(), "u1", validCreateProjectRequest(), imageUpload())
	require.NoError(t, err)

	require.NoError(t, svc.PermanentDelete(context.Background(), project.ID, "u1"))
	assert.Empty(t, repo.projects)
	require.Len(t, blobs.deletes, 1)
	assert.Equal(t, project.ImageURL, blobs.deletes[0])
}

func TestProjectService_PermanentDelete_BlobFailureStillSucceeds(t *testing.T) {
	repo := newFakeProjectRepo()
	blobs := &fakeBlobStore{deleteErr: errBlobDown}
	svc := newTestProjectService(repo, blobs)

	project, err := svc.Create(context.Background(), "u1", validCreateProjectRequest(), imageUpload())
	require.NoError(t, err)

	// Row removal decides the outcome; the orphaned blob is only logged.
	err = svc.PermanentDelete(context.Background(), project.ID, "u1")
	assert.NoError(t, err)
	assert.Empty(t, repo.projects)
}

func TestProjectService_PermanentDelete_ForeignProject(t *testing.T) {
	repo := newFakeProjectRepo()
	blobs := &fakeBlobStore{}
	svc := newTestProjectService(repo, blobs)

	project, err := svc.Create(context.Background(), "u1", validCreateProjectRequest(), imageUpload())
	require.NoError(t, err)

	err = svc.PermanentDelete(context.Background(), project.ID, "u2")
	assert.True(t, errors.Is(err, common.ErrNotFound))
	assert.Len(t, repo.projects, 1, "row persists")
	assert.Empty(t, blobs.deletes)
}

func TestProjectService_PermanentDelete_WorksOnTrashed(t *testing.T) {
	repo := newFakeProjectRepo()
	svc := newTestProjectService(repo, &fakeBlobStore{})

	repo.add(trashedProject("p1", "u1"))

	require.NoError(t, svc.PermanentDelete(context.Background(), "p1", "u1"))
	assert.Empty(t, repo.projects)
}

func TestProjectService_Update(t *testing.T) {
	repo := newFakeProjectRepo()
	blobs := &fakeBlobStore{}
	svc := newTestProjectService(repo, blobs)

	project, err := svc.Create(context.Background(), "u1", validCreateProjectRequest(), nil)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), project.ID, "u1",
		UpdateProjectRequest{Title: "Renamed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, project.Description, updated.Description, "untouched fields survive")
}

func TestProjectService_Update_NewImageReplacesURL(t *testing.T) {
	repo := newFakeProjectRepo()
	blobs := &fakeBlobStore{}
	svc := newTestProjectService(repo, blobs)

	project, err := svc.Create(context.Background(), "u1", validCreateProjectRequest(), imageUpload())
	require.NoError(t, err)

	blobs.nextURL = "https://cdn.example.com/replacement.png"
	updated, err := svc.Update(context.Background(), project.ID, "u1",
		UpdateProjectRequest{}, imageUpload())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/replacement.png", updated.ImageURL)
	// The old blob stays; cleanup happens out of band.
	assert.Empty(t, blobs.deletes)
}
