package postgres

import (
	"context"
	"time"

	"yaake-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type outreachRepo struct {
	db *pgxpool.Pool
}

// NewOutreachRepository creates a new outreach email repository
func NewOutreachRepository(db *pgxpool.Pool) domain.OutreachRepository {
	return &outreachRepo{db: db}
}

func (r *outreachRepo) Create(ctx context.Context, email *domain.OutreachEmail) error {
	query := `
		INSERT INTO outreach_emails (recruiter_id, applicant_id, subject, body, status, sent_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	now := time.Now()
	email.CreatedAt = now
	email.UpdatedAt = now
	if email.Status == "" {
		email.Status = domain.OutreachStatusDraft
	}

	return r.db.QueryRow(ctx, query,
		email.RecruiterID, email.ApplicantID, email.Subject, email.Body,
		email.Status, email.SentAt, email.CreatedAt, email.UpdatedAt,
	).Scan(&email.ID)
}

func (r *outreachRepo) GetByID(ctx context.Context, id int64) (*domain.OutreachEmail, error) {
	query := `
		SELECT id, recruiter_id, applicant_id, subject, body, status, sent_at, created_at, updated_at
		FROM outreach_emails WHERE id = $1`

	var e domain.OutreachEmail
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.RecruiterID, &e.ApplicantID, &e.Subject, &e.Body,
		&e.Status, &e.SentAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *outreachRepo) FetchByRecruiter(ctx context.Context, recruiterID string) ([]domain.OutreachEmail, error) {
	query := `
		SELECT id, recruiter_id, applicant_id, subject, body, status, sent_at, created_at, updated_at
		FROM outreach_emails
		WHERE recruiter_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []domain.OutreachEmail
	for rows.Next() {
		var e domain.OutreachEmail
		if err := rows.Scan(
			&e.ID, &e.RecruiterID, &e.ApplicantID, &e.Subject, &e.Body,
			&e.Status, &e.SentAt, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

func (r *outreachRepo) Update(ctx context.Context, email *domain.OutreachEmail) error {
	query := `
		UPDATE outreach_emails
		SET subject = $2, body = $3, status = $4, sent_at = $5, updated_at = $6
		WHERE id = $1`

	email.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		email.ID, email.Subject, email.Body, email.Status, email.SentAt, email.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *outreachRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM outreach_emails WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
