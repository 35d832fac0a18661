package postgres

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"yaake-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const interviewColumns = `
	id, recruiter_id, applicant_ids, title, description, location, meeting_link,
	proposed_slots, confirmed_start, confirmed_end, status, responses, version,
	created_at, updated_at`

// Create inserts a new interview request at version 1
func (r *interviewRepo) Create(ctx context.Context, iv *domain.InterviewRequest) error {
	query := `
		INSERT INTO interviews (id, recruiter_id, applicant_ids, title, description, location, meeting_link,
			proposed_slots, confirmed_start, confirmed_end, status, responses, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1, $13, $14)`

	slots, err := json.Marshal(iv.ProposedSlots)
	if err != nil {
		return err
	}
	responses, err := json.Marshal(iv.Responses)
	if err != nil {
		return err
	}

	now := time.Now()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	iv.Version = 1

	confirmedStart, confirmedEnd := confirmedBounds(iv)
	_, err = r.db.Exec(ctx, query,
		iv.ID,
		iv.RecruiterID,
		pq.Array(iv.ApplicantIDs),
		iv.Title,
		iv.Description,
		iv.Location,
		iv.MeetingLink,
		slots,
		confirmedStart,
		confirmedEnd,
		iv.Status,
		responses,
		iv.CreatedAt,
		iv.UpdatedAt,
	)
	return err
}

// GetByID retrieves an interview request by ID
func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.InterviewRequest, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`

	iv, err := scanInterview(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return iv, nil
}

// GetByParticipant retrieves every request where the user is the recruiter or
// an invited applicant, newest first
func (r *interviewRepo) GetByParticipant(ctx context.Context, userID string) ([]domain.InterviewRequest, error) {
	query := `
		SELECT ` + interviewColumns + `
		FROM interviews
		WHERE recruiter_id = $1 OR $1 = ANY(applicant_ids)
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInterviews(rows)
}

// FindConfirmedOverlapping returns confirmed interviews sharing a participant
// whose confirmed slot overlaps any candidate slot. All slots are checked in
// one round trip: the candidate intervals are passed as parallel arrays and
// the half-open overlap predicate runs inside the store.
func (r *interviewRepo) FindConfirmedOverlapping(ctx context.Context, participantIDs []string, slots []domain.TimeRange, excludeID string) ([]domain.InterviewRequest, error) {
	if len(participantIDs) == 0 || len(slots) == 0 {
		return nil, nil
	}

	starts := make([]time.Time, len(slots))
	ends := make([]time.Time, len(slots))
	for i, s := range slots {
		starts[i] = s.Start
		ends[i] = s.End
	}

	query := `
		SELECT ` + interviewColumns + `
		FROM interviews i
		WHERE i.status = 'confirmed'
		  AND i.id <> $1
		  AND (i.recruiter_id = ANY($2) OR i.applicant_ids && $2)
		  AND EXISTS (
			SELECT 1
			FROM unnest($3::timestamptz[], $4::timestamptz[]) AS s(slot_start, slot_end)
			WHERE i.confirmed_start < s.slot_end AND s.slot_start < i.confirmed_end
		  )
		ORDER BY i.confirmed_start`

	rows, err := r.db.Query(ctx, query, excludeID, pq.Array(participantIDs), pq.Array(starts), pq.Array(ends))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInterviews(rows)
}

const updateVersionedQuery = `
	UPDATE interviews
	SET title = $3, description = $4, location = $5, meeting_link = $6,
		proposed_slots = $7, confirmed_start = $8, confirmed_end = $9,
		status = $10, responses = $11, version = version + 1, updated_at = $12
	WHERE id = $1 AND version = $2`

// confirmedOverlapGuard repeats the double-booking check inside the confirming
// write itself. The per-row version guard cannot see a racing confirmation on
// a different row, so the statement also requires that no other confirmed
// interview sharing a participant overlaps the slot being confirmed
// ($8/$9 are confirmed_start/confirmed_end from the SET list).
const confirmedOverlapGuard = `
	AND NOT EXISTS (
		SELECT 1 FROM interviews o
		WHERE o.status = 'confirmed'
		  AND o.id <> interviews.id
		  AND (o.recruiter_id = interviews.recruiter_id
			OR o.recruiter_id = ANY(interviews.applicant_ids)
			OR interviews.recruiter_id = ANY(o.applicant_ids)
			OR o.applicant_ids && interviews.applicant_ids)
		  AND o.confirmed_start < $9 AND $8 < o.confirmed_end
	)`

// UpdateVersioned persists the aggregate only if the stored version is still
// expectedVersion. The version bump and the write are a single conditional
// statement, which is what closes the check-then-act race in the usecase.
// Confirming writes additionally serialize against other confirmations that
// share a participant and re-run the overlap check atomically; both guard
// failures report ErrVersionConflict so the caller's retry loop re-reads and
// re-checks, at which point the competing booking is visible.
func (r *interviewRepo) UpdateVersioned(ctx context.Context, iv *domain.InterviewRequest, expectedVersion int64) error {
	slots, err := json.Marshal(iv.ProposedSlots)
	if err != nil {
		return err
	}
	responses, err := json.Marshal(iv.Responses)
	if err != nil {
		return err
	}

	now := time.Now()
	confirmedStart, confirmedEnd := confirmedBounds(iv)
	args := []interface{}{
		iv.ID,
		expectedVersion,
		iv.Title,
		iv.Description,
		iv.Location,
		iv.MeetingLink,
		slots,
		confirmedStart,
		confirmedEnd,
		iv.Status,
		responses,
		now,
	}

	var result pgconn.CommandTag
	if iv.Status == domain.InterviewStatusConfirmed && iv.ConfirmedSlot != nil {
		result, err = r.execConfirming(ctx, iv, args)
	} else {
		result, err = r.db.Exec(ctx, updateVersionedQuery, args...)
	}
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}

	iv.Version = expectedVersion + 1
	iv.UpdatedAt = now
	return nil
}

// execConfirming runs the pending->confirmed write in a transaction that first
// takes an advisory lock per participant, in sorted order to avoid deadlock.
// Two confirmations sharing a participant therefore run their overlap guards
// one after the other, never both against the same snapshot.
func (r *interviewRepo) execConfirming(ctx context.Context, iv *domain.InterviewRequest, args []interface{}) (pgconn.CommandTag, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer tx.Rollback(ctx)

	participants := iv.ParticipantIDs()
	sort.Strings(participants)
	for _, p := range participants {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, p); err != nil {
			return pgconn.CommandTag{}, err
		}
	}

	result, err := tx.Exec(ctx, updateVersionedQuery+confirmedOverlapGuard, args...)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return pgconn.CommandTag{}, err
	}
	return result, nil
}

func confirmedBounds(iv *domain.InterviewRequest) (*time.Time, *time.Time) {
	if iv.ConfirmedSlot == nil {
		return nil, nil
	}
	return &iv.ConfirmedSlot.Start, &iv.ConfirmedSlot.End
}

func scanInterview(row pgx.Row) (*domain.InterviewRequest, error) {
	var (
		iv             domain.InterviewRequest
		applicantIDs   []string
		slotsJSON      []byte
		responsesJSON  []byte
		confirmedStart *time.Time
		confirmedEnd   *time.Time
	)

	err := row.Scan(
		&iv.ID, &iv.RecruiterID, pq.Array(&applicantIDs), &iv.Title,
		&iv.Description, &iv.Location, &iv.MeetingLink,
		&slotsJSON, &confirmedStart, &confirmedEnd, &iv.Status,
		&responsesJSON, &iv.Version, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	iv.ApplicantIDs = applicantIDs
	if err := json.Unmarshal(slotsJSON, &iv.ProposedSlots); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(responsesJSON, &iv.Responses); err != nil {
		return nil, err
	}
	if confirmedStart != nil && confirmedEnd != nil {
		iv.ConfirmedSlot = &domain.TimeRange{Start: *confirmedStart, End: *confirmedEnd}
	}
	return &iv, nil
}

func collectInterviews(rows pgx.Rows) ([]domain.InterviewRequest, error) {
	var interviews []domain.InterviewRequest
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, *iv)
	}
	return interviews, rows.Err()
}
