package model

import (
	"time"
)

const (
	// RoleStandard is the default role for registered users.
	RoleStandard = "standard"
	// RoleOwner is the singleton privileged role; it gates profile updates,
	// resume uploads, and account deletion.
	RoleOwner = "owner"
)

type User struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	HashedPassword  string     `json:"-"` // Not exposed
	Role            string     `json:"role"`
	FirstName       string     `json:"first_name,omitempty"`
	LastName        string     `json:"last_name,omitempty"`
	Title           string     `json:"title,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	YearsOfExp      int        `json:"years_of_experience"`
	ProfileImageURL string     `json:"profile_image_url,omitempty"`
	ResumeURL       string     `json:"resume_url,omitempty"`
	Tagline1        string     `json:"tagline1,omitempty"`
	Tagline2        string     `json:"tagline2,omitempty"`
	FrontendSkills  []string   `json:"frontend_skills"`
	BackendSkills   []string   `json:"backend_skills"`
	DatabaseSkills  []string   `json:"database_skills"`
	InstagramLink   string     `json:"instagram_link,omitempty"`
	GitHubLink      string     `json:"github_link,omitempty"`
	LinkedInLink    string     `json:"linkedin_link,omitempty"`
	ResetCode       *string    `json:"-"`
	ResetExpiry     *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
}

// UserCard is the public projection shown on listing pages. Credentials and
// reset state never leave the repository in this shape.
type UserCard struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	FirstName       string   `json:"first_name,omitempty"`
	LastName        string   `json:"last_name,omitempty"`
	Title           string   `json:"title,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	ProfileImageURL string   `json:"profile_image_url,omitempty"`
	FrontendSkills  []string `json:"frontend_skills"`
	BackendSkills   []string `json:"backend_skills"`
}

func (u *User) Card() UserCard {
	return UserCard{
		ID:              u.ID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Title:           u.Title,
		Bio:             u.Bio,
		ProfileImageURL: u.ProfileImageURL,
		FrontendSkills:  u.FrontendSkills,
		BackendSkills:   u.BackendSkills,
	}
}
