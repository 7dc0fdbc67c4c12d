package model

import (
	"time"
)

type Project struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url,omitempty"`
	ProjectURL  string     `json:"project_url,omitempty"`
	LiveDemoURL string     `json:"live_demo_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"` // non-nil means trashed
}

// Trashed reports whether the project currently sits in the trash bin.
func (p *Project) Trashed() bool {
	return p.DeletedAt != nil
}
