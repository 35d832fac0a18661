package domain

import (
	"context"
	"time"
)

// Job post status constants
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type JobPost struct {
	ID             int64     `json:"id"`
	RecruiterID    string    `json:"recruiter_id"`
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description" validate:"required"`
	Location       *string   `json:"location,omitempty"`
	SalaryMin      *float64  `json:"salary_min,omitempty"`
	SalaryMax      *float64  `json:"salary_max,omitempty"`
	EmploymentType *string   `json:"employment_type,omitempty"`
	Skills         []string  `json:"skills,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type JobPostRepository interface {
	Create(ctx context.Context, job *JobPost) error
	GetByID(ctx context.Context, id int64) (*JobPost, error)
	Fetch(ctx context.Context, status string, limit, offset int) ([]JobPost, int64, error)
	FetchByRecruiter(ctx context.Context, recruiterID string, limit, offset int) ([]JobPost, int64, error)
	Update(ctx context.Context, job *JobPost) error
	Delete(ctx context.Context, id int64) error
}

type JobPostUsecase interface {
	CreateJob(ctx context.Context, recruiterID string, job *JobPost) error
	GetJob(ctx context.Context, id int64) (*JobPost, error)
	ListOpenJobs(ctx context.Context, page, pageSize int) ([]JobPost, int64, error)
	ListMyJobs(ctx context.Context, recruiterID string, page, pageSize int) ([]JobPost, int64, error)
	UpdateJob(ctx context.Context, recruiterID string, job *JobPost) error
	DeleteJob(ctx context.Context, recruiterID string, id int64) error
}
