package domain

import (
	"context"
	"time"
)

// QuestionSet is a generated batch of interview questions a recruiter keeps
// for a role or a specific candidate.
type QuestionSet struct {
	ID          int64     `json:"id"`
	RecruiterID string    `json:"recruiter_id"`
	Title       string    `json:"title"`
	JobTitle    string    `json:"job_title"`
	Focus       *string   `json:"focus,omitempty"` // e.g. "system design", "behavioral"
	Questions   []string  `json:"questions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type QuestionSetRepository interface {
	Create(ctx context.Context, qs *QuestionSet) error
	GetByID(ctx context.Context, id int64) (*QuestionSet, error)
	FetchByRecruiter(ctx context.Context, recruiterID string) ([]QuestionSet, error)
	Update(ctx context.Context, qs *QuestionSet) error
	Delete(ctx context.Context, id int64) error
}

type QuestionSetUsecase interface {
	// Generate drafts questions via the text-generation boundary and persists
	// the resulting set.
	Generate(ctx context.Context, recruiterID, jobTitle, focus string, count int) (*QuestionSet, error)
	GetSet(ctx context.Context, recruiterID string, id int64) (*QuestionSet, error)
	ListMySets(ctx context.Context, recruiterID string) ([]QuestionSet, error)
	UpdateSet(ctx context.Context, recruiterID string, qs *QuestionSet) error
	DeleteSet(ctx context.Context, recruiterID string, id int64) error
}
