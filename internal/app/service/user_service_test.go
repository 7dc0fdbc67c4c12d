package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"portfolio_pro/internal/common"
	"portfolio_pro/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(repo *fakeUserRepo, blobs *fakeBlobStore) *UserService {
	return NewUserService(repo, blobs, testLogger())
}

func TestUserService_GetUser_StripsHash(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{ID: "u1", Email: "jdoe@example.com", HashedPassword: "secret-hash"})
	svc := newTestUserService(repo, &fakeBlobStore{})

	user, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, user.HashedPassword)
}

func TestUserService_ListUserCards(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{ID: "u1", Username: "jdoe", FirstName: "Jane", HashedPassword: "secret-hash"})
	svc := newTestUserService(repo, &fakeBlobStore{})

	cards, err := svc.ListUserCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "jdoe", cards[0].Username)
}

func TestUserService_UpdateProfile_PartialPatch(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{ID: "u1", Username: "jdoe", FirstName: "Jane", Bio: "old bio"})
	svc := newTestUserService(repo, &fakeBlobStore{})

	newBio := "new bio"
	skills := []string{"react", "svelte"}
	user, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileRequest{
		Bio:            &newBio,
		FrontendSkills: &skills,
	})
	require.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, skills, user.FrontendSkills)
	assert.Equal(t, "Jane", user.FirstName, "nil fields stay untouched")
}

func TestUserService_UpdateProfile_Invalid(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{ID: "u1", Username: "jdoe"})
	svc := newTestUserService(repo, &fakeBlobStore{})

	short := "ab"
	_, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileRequest{Username: &short})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestUserService_UploadResume(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{ID: "u1", Username: "jdoe"})
	blobs := &fakeBlobStore{}
	svc := newTestUserService(repo, blobs)

	url, err := svc.UploadResume(context.Background(), "u1", FileUpload{
		Reader:      strings.NewReader("pdf-bytes"),
		ContentType: "application/pdf",
		Filename:    "resume.pdf",
		Size:        9,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, url)

	stored, err := repo.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, url, stored.ResumeURL)
}

func TestUserService_UploadResume_EmptyFile(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{ID: "u1"})
	svc := newTestUserService(repo, &fakeBlobStore{})

	_, err := svc.UploadResume(context.Background(), "u1", FileUpload{Size: 0})
	assert.True(t, errors.Is(err, common.ErrBadRequest))
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{ID: "u1"})
	svc := newTestUserService(repo, &fakeBlobStore{})

	require.NoError(t, svc.DeleteUser(context.Background(), "u1"))

	err := svc.DeleteUser(context.Background(), "u1")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
