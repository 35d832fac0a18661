package domain

import (
	"context"
	"time"
)

// Course is interview-prep / training content authored by recruiters.
type Course struct {
	ID          int64     `json:"id"`
	AuthorID    string    `json:"author_id"`
	Title       string    `json:"title" validate:"required"`
	Summary     string    `json:"summary" validate:"required"`
	ContentURL  *string   `json:"content_url,omitempty"`
	DurationMin *int      `json:"duration_min,omitempty"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetByID(ctx context.Context, id int64) (*Course, error)
	FetchPublished(ctx context.Context, limit, offset int) ([]Course, int64, error)
	FetchByAuthor(ctx context.Context, authorID string) ([]Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id int64) error
}

type CourseUsecase interface {
	CreateCourse(ctx context.Context, authorID string, course *Course) error
	GetCourse(ctx context.Context, id int64) (*Course, error)
	ListPublished(ctx context.Context, page, pageSize int) ([]Course, int64, error)
	ListMyCourses(ctx context.Context, authorID string) ([]Course, error)
	UpdateCourse(ctx context.Context, authorID string, course *Course) error
	DeleteCourse(ctx context.Context, authorID string, id int64) error
}
