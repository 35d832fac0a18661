package domain

import (
	"context"
	"time"
)

// User roles.
const (
	RoleRecruiter = "recruiter"
	RoleApplicant = "applicant"
	RoleAdmin     = "admin"
)

type User struct {
	ID        string    `json:"id"` // Auth provider UUID
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	ResumeURL *string   `json:"resume_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]User, error)
	ListByRole(ctx context.Context, role string) ([]User, error)
	Update(ctx context.Context, user *User) error
}

// UserProfileUpdate holds the self-editable fields. Nil means "leave as is".
type UserProfileUpdate struct {
	FullName  *string `json:"full_name,omitempty"`
	Role      *string `json:"role,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
	ResumeURL *string `json:"resume_url,omitempty"`
}

type AuthUsecase interface {
	EnsureUserExists(ctx context.Context, user *User) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, upd UserProfileUpdate) (*User, error)
	ListApplicants(ctx context.Context, callerRole string) ([]User, error)
}
