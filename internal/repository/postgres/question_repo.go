package postgres

import (
	"context"
	"time"

	"yaake-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type questionRepo struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new question set repository
func NewQuestionRepository(db *pgxpool.Pool) domain.QuestionSetRepository {
	return &questionRepo{db: db}
}

func (r *questionRepo) Create(ctx context.Context, qs *domain.QuestionSet) error {
	query := `
		INSERT INTO question_sets (recruiter_id, title, job_title, focus, questions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	qs.CreatedAt = now
	qs.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		qs.RecruiterID, qs.Title, qs.JobTitle, qs.Focus, pq.Array(qs.Questions),
		qs.CreatedAt, qs.UpdatedAt,
	).Scan(&qs.ID)
}

func (r *questionRepo) GetByID(ctx context.Context, id int64) (*domain.QuestionSet, error) {
	query := `
		SELECT id, recruiter_id, title, job_title, focus, questions, created_at, updated_at
		FROM question_sets WHERE id = $1`

	var qs domain.QuestionSet
	var questions []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&qs.ID, &qs.RecruiterID, &qs.Title, &qs.JobTitle, &qs.Focus,
		pq.Array(&questions), &qs.CreatedAt, &qs.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	qs.Questions = questions
	return &qs, nil
}

func (r *questionRepo) FetchByRecruiter(ctx context.Context, recruiterID string) ([]domain.QuestionSet, error) {
	query := `
		SELECT id, recruiter_id, title, job_title, focus, questions, created_at, updated_at
		FROM question_sets
		WHERE recruiter_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []domain.QuestionSet
	for rows.Next() {
		var qs domain.QuestionSet
		var questions []string
		if err := rows.Scan(
			&qs.ID, &qs.RecruiterID, &qs.Title, &qs.JobTitle, &qs.Focus,
			pq.Array(&questions), &qs.CreatedAt, &qs.UpdatedAt,
		); err != nil {
			return nil, err
		}
		qs.Questions = questions
		sets = append(sets, qs)
	}
	return sets, rows.Err()
}

func (r *questionRepo) Update(ctx context.Context, qs *domain.QuestionSet) error {
	query := `
		UPDATE question_sets
		SET title = $2, job_title = $3, focus = $4, questions = $5, updated_at = $6
		WHERE id = $1`

	qs.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		qs.ID, qs.Title, qs.JobTitle, qs.Focus, pq.Array(qs.Questions), qs.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *questionRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM question_sets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
