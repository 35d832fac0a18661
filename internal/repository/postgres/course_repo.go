package postgres

import (
	"context"
	"time"

	"yaake-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type courseRepo struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) domain.CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *domain.Course) error {
	query := `
		INSERT INTO courses (author_id, title, summary, content_url, duration_min, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		course.AuthorID, course.Title, course.Summary, course.ContentURL,
		course.DurationMin, course.Published, course.CreatedAt, course.UpdatedAt,
	).Scan(&course.ID)
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	query := `
		SELECT id, author_id, title, summary, content_url, duration_min, published, created_at, updated_at
		FROM courses WHERE id = $1`

	var c domain.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.AuthorID, &c.Title, &c.Summary, &c.ContentURL,
		&c.DurationMin, &c.Published, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courseRepo) FetchPublished(ctx context.Context, limit, offset int) ([]domain.Course, int64, error) {
	query := `
		SELECT id, author_id, title, summary, content_url, duration_min, published, created_at, updated_at
		FROM courses
		WHERE published = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	courses, err := collectCourses(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses WHERE published = TRUE`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *courseRepo) FetchByAuthor(ctx context.Context, authorID string) ([]domain.Course, error) {
	query := `
		SELECT id, author_id, title, summary, content_url, duration_min, published, created_at, updated_at
		FROM courses
		WHERE author_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCourses(rows)
}

func (r *courseRepo) Update(ctx context.Context, course *domain.Course) error {
	query := `
		UPDATE courses
		SET title = $2, summary = $3, content_url = $4, duration_min = $5, published = $6, updated_at = $7
		WHERE id = $1`

	course.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		course.ID, course.Title, course.Summary, course.ContentURL,
		course.DurationMin, course.Published, course.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *courseRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectCourses(rows pgx.Rows) ([]domain.Course, error) {
	var courses []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(
			&c.ID, &c.AuthorID, &c.Title, &c.Summary, &c.ContentURL,
			&c.DurationMin, &c.Published, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
