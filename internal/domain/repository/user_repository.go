package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"portfolio_pro/internal/common"
	"portfolio_pro/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ProfilePatch carries a partial profile update. A nil field means
// "leave the stored value unchanged".
type ProfilePatch struct {
	Username        *string
	FirstName       *string
	LastName        *string
	Title           *string
	Bio             *string
	YearsOfExp      *int
	ProfileImageURL *string
	Tagline1        *string
	Tagline2        *string
	FrontendSkills  *[]string
	BackendSkills   *[]string
	DatabaseSkills  *[]string
	InstagramLink   *string
	GitHubLink      *string
	LinkedInLink    *string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*model.User, error)
	UpdateResumeURL(ctx context.Context, id, resumeURL string) error
	Delete(ctx context.Context, id string) (bool, error)

	// SetResetCode attaches a reset code and its expiry to the account with
	// the given email. Returns false when no row matched.
	SetResetCode(ctx context.Context, email, code string, expiry time.Time) (bool, error)

	// ResetPassword swaps in the new password hash and clears the reset
	// state in one conditional statement: the row must match email AND code
	// AND hold an unexpired reset_expiry. Returns true iff a row changed.
	ResetPassword(ctx context.Context, email, code, hashedPassword string) (bool, error)
}

const userColumns = `id, username, email, hashed_password, role,
	       COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(title, ''), COALESCE(bio, ''),
	       years_of_experience, COALESCE(profile_image_url, ''), COALESCE(resume_url, ''),
	       COALESCE(tagline1, ''), COALESCE(tagline2, ''),
	       frontend_skills::text, backend_skills::text, database_skills::text,
	       COALESCE(instagram_link, ''), COALESCE(github_link, ''), COALESCE(linkedin_link, ''),
	       reset_code, reset_expiry, created_at`

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, email, hashed_password, role,
	              first_name, last_name, title, bio, years_of_experience,
	              profile_image_url, resume_url, tagline1, tagline2,
	              frontend_skills, backend_skills, database_skills,
	              instagram_link, github_link, linkedin_link, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
	                  $15::text[], $16::text[], $17::text[], $18, $19, $20, $21)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.HashedPassword, user.Role,
		user.FirstName, user.LastName, user.Title, user.Bio, user.YearsOfExp,
		user.ProfileImageURL, user.ResumeURL, user.Tagline1, user.Tagline2,
		formatTextArray(user.FrontendSkills), formatTextArray(user.BackendSkills), formatTextArray(user.DatabaseSkills),
		user.InstagramLink, user.GitHubLink, user.LinkedInLink, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListAll: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("pgUserRepository.ListAll: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListAll: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*model.User, error) {
	// COALESCE keeps the stored value wherever the patch field is nil.
	query := `UPDATE users SET
	              username = COALESCE($2, username),
	              first_name = COALESCE($3, first_name),
	              last_name = COALESCE($4, last_name),
	              title = COALESCE($5, title),
	              bio = COALESCE($6, bio),
	              years_of_experience = COALESCE($7, years_of_experience),
	              profile_image_url = COALESCE($8, profile_image_url),
	              tagline1 = COALESCE($9, tagline1),
	              tagline2 = COALESCE($10, tagline2),
	              frontend_skills = COALESCE($11::text[], frontend_skills),
	              backend_skills = COALESCE($12::text[], backend_skills),
	              database_skills = COALESCE($13::text[], database_skills),
	              instagram_link = COALESCE($14, instagram_link),
	              github_link = COALESCE($15, github_link),
	              linkedin_link = COALESCE($16, linkedin_link)
	          WHERE id = $1
	          RETURNING ` + userColumns
	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id,
		patch.Username, patch.FirstName, patch.LastName, patch.Title, patch.Bio,
		patch.YearsOfExp, patch.ProfileImageURL, patch.Tagline1, patch.Tagline2,
		optionalTextArray(patch.FrontendSkills), optionalTextArray(patch.BackendSkills), optionalTextArray(patch.DatabaseSkills),
		patch.InstagramLink, patch.GitHubLink, patch.LinkedInLink,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("username already taken: %w", common.ErrConflict)
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateProfile: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateResumeURL(ctx context.Context, id, resumeURL string) error {
	query := `UPDATE users SET resume_url = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, resumeURL)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateResumeURL: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	return n > 0, nil
}

func (r *pgUserRepository) SetResetCode(ctx context.Context, email, code string, expiry time.Time) (bool, error) {
	query := `UPDATE users SET reset_code = $2, reset_expiry = $3 WHERE LOWER(email) = LOWER($1)`
	res, err := r.db.ExecContext(ctx, query, email, code, expiry)
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.SetResetCode: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.SetResetCode: %w", err)
	}
	return n > 0, nil
}

func (r *pgUserRepository) ResetPassword(ctx context.Context, email, code, hashedPassword string) (bool, error) {
	// Single conditional update: the database is the serialization point, so
	// two concurrent redeems of the same code cannot both match the row.
	// Expiry uses strict greater-than; a code at its exact expiry instant fails.
	query := `UPDATE users
	          SET hashed_password = $3, reset_code = NULL, reset_expiry = NULL
	          WHERE LOWER(email) = LOWER($1)
	            AND reset_code = $2
	            AND reset_expiry > NOW()`
	res, err := r.db.ExecContext(ctx, query, email, code, hashedPassword)
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.ResetPassword: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.ResetPassword: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *pgUserRepository) scanUser(row rowScanner) (*model.User, error) {
	user := &model.User{}
	var frontend, backend, database string
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.Role,
		&user.FirstName, &user.LastName, &user.Title, &user.Bio,
		&user.YearsOfExp, &user.ProfileImageURL, &user.ResumeURL,
		&user.Tagline1, &user.Tagline2,
		&frontend, &backend, &database,
		&user.InstagramLink, &user.GitHubLink, &user.LinkedInLink,
		&user.ResetCode, &user.ResetExpiry, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.FrontendSkills = parseTextArray(frontend)
	user.BackendSkills = parseTextArray(backend)
	user.DatabaseSkills = parseTextArray(database)
	return user, nil
}

// optionalTextArray maps a nil slice pointer to SQL NULL so COALESCE keeps
// the stored column value.
func optionalTextArray(elems *[]string) interface{} {
	if elems == nil {
		return nil
	}
	return formatTextArray(*elems)
}
