package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"portfolio_pro/internal/common"
	"portfolio_pro/internal/domain/model"
	"portfolio_pro/internal/domain/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo keeps users in memory and mimics the conditional reset-code
// update the real repository performs in SQL.
type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*model.User // keyed by id
	createErr error
	findErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) add(u *model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return common.ErrConflict
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, patch repository.ProfilePatch) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.FrontendSkills != nil {
		u.FrontendSkills = *patch.FrontendSkills
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateResumeURL(ctx context.Context, id, resumeURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.ResumeURL = resumeURL
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func (f *fakeUserRepo) SetResetCode(ctx context.Context, email, code string, expiry time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			c, e := code, expiry
			u.ResetCode, u.ResetExpiry = &c, &e
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ResetPassword(ctx context.Context, email, code, hashedPassword string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email != email {
			continue
		}
		if u.ResetCode == nil || *u.ResetCode != code {
			return false, nil
		}
		if u.ResetExpiry == nil || !u.ResetExpiry.After(time.Now()) {
			return false, nil
		}
		u.HashedPassword = hashedPassword
		u.ResetCode, u.ResetExpiry = nil, nil
		return true, nil
	}
	return false, nil
}

// fakeProjectRepo keeps projects in memory with the same id+owner predicate
// semantics as the SQL implementation.
type fakeProjectRepo struct {
	mu        sync.Mutex
	projects  map[string]*model.Project
	createErr error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*model.Project{}}
}

func (f *fakeProjectRepo) add(p *model.Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[p.ID] = p
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *model.Project) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *project
	f.projects[project.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) ListActive(ctx context.Context, userID string) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Project{}
	for _, p := range f.projects {
		if p.UserID == userID && p.DeletedAt == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) ListTrashed(ctx context.Context, userID string) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Project{}
	for _, p := range f.projects {
		if p.UserID == userID && p.DeletedAt != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) SoftDelete(ctx context.Context, projectID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok || p.UserID != userID || p.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	p.DeletedAt = &now
	return true, nil
}

func (f *fakeProjectRepo) Restore(ctx context.Context, projectID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok || p.UserID != userID || p.DeletedAt == nil {
		return false, nil
	}
	p.DeletedAt = nil
	return true, nil
}

func (f *fakeProjectRepo) DeleteReturningImage(ctx context.Context, projectID, userID string) (bool, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok || p.UserID != userID {
		return false, "", nil
	}
	delete(f.projects, projectID)
	return true, p.ImageURL, nil
}

func (f *fakeProjectRepo) UpdatePartial(ctx context.Context, projectID, userID string, patch repository.ProjectPatch) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok || p.UserID != userID {
		return nil, common.ErrNotFound
	}
	if patch.Title != "" {
		p.Title = patch.Title
	}
	if patch.Description != "" {
		p.Description = patch.Description
	}
	if patch.ImageURL != "" {
		p.ImageURL = patch.ImageURL
	}
	if patch.ProjectURL != "" {
		p.ProjectURL = patch.ProjectURL
	}
	if patch.LiveDemoURL != "" {
		p.LiveDemoURL = patch.LiveDemoURL
	}
	cp := *p
	return &cp, nil
}

// fakeBlobStore records uploads and deletes, with injectable failures.
type fakeBlobStore struct {
	mu        sync.Mutex
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
	nextURL   string
}

func (f *fakeBlobStore) Upload(ctx context.Context, r io.Reader, contentType, suggestedName string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	url := f.nextURL
	if url == "" {
		url = "https://cdn.example.com/" + suggestedName
	}
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, publicURL string) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, publicURL)
	f.mu.Unlock()
	return f.deleteErr
}

// fakeNotifier records every send, with an injectable failure.
type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (f *fakeNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

var errBlobDown = errors.New("blob storage unavailable")
