package postgres

import (
	"context"
	"time"

	"yaake-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job post repository
func NewJobRepository(db *pgxpool.Pool) domain.JobPostRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.JobPost) error {
	query := `
		INSERT INTO job_posts (recruiter_id, title, description, location, salary_min, salary_max, employment_type, skills, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		job.RecruiterID, job.Title, job.Description, job.Location,
		job.SalaryMin, job.SalaryMax, job.EmploymentType, pq.Array(job.Skills),
		job.Status, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.JobPost, error) {
	query := `
		SELECT id, recruiter_id, title, description, location, salary_min, salary_max, employment_type, skills, status, created_at, updated_at
		FROM job_posts WHERE id = $1`

	var job domain.JobPost
	var skills []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.RecruiterID, &job.Title, &job.Description, &job.Location,
		&job.SalaryMin, &job.SalaryMax, &job.EmploymentType, pq.Array(&skills),
		&job.Status, &job.CreatedAt, &job.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	job.Skills = skills
	return &job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, status string, limit, offset int) ([]domain.JobPost, int64, error) {
	query := `
		SELECT id, recruiter_id, title, description, location, salary_min, salary_max, employment_type, skills, status, created_at, updated_at
		FROM job_posts
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_posts WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) FetchByRecruiter(ctx context.Context, recruiterID string, limit, offset int) ([]domain.JobPost, int64, error) {
	query := `
		SELECT id, recruiter_id, title, description, location, salary_min, salary_max, employment_type, skills, status, created_at, updated_at
		FROM job_posts
		WHERE recruiter_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, recruiterID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_posts WHERE recruiter_id = $1`, recruiterID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.JobPost) error {
	query := `
		UPDATE job_posts
		SET title = $2, description = $3, location = $4, salary_min = $5, salary_max = $6, employment_type = $7, skills = $8, status = $9, updated_at = $10
		WHERE id = $1`

	job.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location,
		job.SalaryMin, job.SalaryMax, job.EmploymentType, pq.Array(job.Skills),
		job.Status, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM job_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectJobs(rows pgx.Rows) ([]domain.JobPost, error) {
	var jobs []domain.JobPost
	for rows.Next() {
		var job domain.JobPost
		var skills []string
		if err := rows.Scan(
			&job.ID, &job.RecruiterID, &job.Title, &job.Description, &job.Location,
			&job.SalaryMin, &job.SalaryMax, &job.EmploymentType, pq.Array(&skills),
			&job.Status, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		job.Skills = skills
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
