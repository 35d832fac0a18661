package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Interview request lifecycle states.
// pending -> confirmed | rejected | cancelled
// confirmed -> cancelled | completed
// rejected, cancelled and completed are terminal. completed is only ever set
// by the recruiter after the interview took place, never by scheduling logic.
const (
	InterviewStatusPending   = "pending"
	InterviewStatusConfirmed = "confirmed"
	InterviewStatusRejected  = "rejected"
	InterviewStatusCancelled = "cancelled"
	InterviewStatusCompleted = "completed"
)

// Applicant response states.
const (
	ResponsePending         = "pending"
	ResponseAccepted        = "accepted"
	ResponseRejected        = "rejected"
	ResponseChangeRequested = "change_requested"
)

// ErrVersionConflict signals that a conditional update lost an optimistic
// concurrency race. The caller re-reads and retries the whole operation.
var ErrVersionConflict = errors.New("interview was modified concurrently")

// ApplicantResponse tracks a single applicant's answer to an interview
// request. SelectedSlot is set if and only if Status is accepted.
type ApplicantResponse struct {
	ApplicantID  string     `json:"applicant_id"`
	Status       string     `json:"status"`
	SelectedSlot *TimeRange `json:"selected_slot,omitempty"`
	Message      *string    `json:"message,omitempty"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

// InterviewRequest is the scheduling aggregate: a recruiter offers a set of
// candidate slots to one or more applicants, and exactly one accepted slot
// confirms the booking.
type InterviewRequest struct {
	ID            string              `json:"id"`
	RecruiterID   string              `json:"recruiter_id"`
	ApplicantIDs  []string            `json:"applicant_ids"`
	Title         string              `json:"title"`
	Description   *string             `json:"description,omitempty"`
	Location      *string             `json:"location,omitempty"`
	MeetingLink   *string             `json:"meeting_link,omitempty"`
	ProposedSlots []TimeRange         `json:"proposed_slots"`
	ConfirmedSlot *TimeRange          `json:"confirmed_slot,omitempty"`
	Status        string              `json:"status"`
	Responses     []ApplicantResponse `json:"responses"`
	Version       int64               `json:"-"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// IsParticipant reports whether userID is the recruiter or an invited applicant.
func (iv *InterviewRequest) IsParticipant(userID string) bool {
	if iv.RecruiterID == userID {
		return true
	}
	return iv.IsApplicant(userID)
}

// IsApplicant reports whether userID is one of the invited applicants.
func (iv *InterviewRequest) IsApplicant(userID string) bool {
	for _, id := range iv.ApplicantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ParticipantIDs returns the recruiter plus all invited applicants.
func (iv *InterviewRequest) ParticipantIDs() []string {
	ids := make([]string, 0, len(iv.ApplicantIDs)+1)
	ids = append(ids, iv.RecruiterID)
	ids = append(ids, iv.ApplicantIDs...)
	return ids
}

// ResponseFor returns the response entry for the given applicant, or nil.
func (iv *InterviewRequest) ResponseFor(applicantID string) *ApplicantResponse {
	for i := range iv.Responses {
		if iv.Responses[i].ApplicantID == applicantID {
			return &iv.Responses[i]
		}
	}
	return nil
}

// HasProposedSlot reports whether slot matches one of the proposed slots
// exactly (both endpoints).
func (iv *InterviewRequest) HasProposedSlot(slot TimeRange) bool {
	for _, s := range iv.ProposedSlots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}

// AnyResponded reports whether at least one applicant has left the pending
// state. Used to lock proposed slots against edits once responses exist.
func (iv *InterviewRequest) AnyResponded() bool {
	for _, r := range iv.Responses {
		if r.Status != ResponsePending {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further scheduling transition is possible.
func (iv *InterviewRequest) IsTerminal() bool {
	switch iv.Status {
	case InterviewStatusRejected, InterviewStatusCancelled, InterviewStatusCompleted:
		return true
	}
	return false
}

// SlotConflict pairs a candidate slot with the confirmed interviews that
// overlap it for at least one shared participant.
type SlotConflict struct {
	Slot       TimeRange          `json:"slot"`
	Interviews []InterviewRequest `json:"conflicting_interviews"`
}

// SlotConflictError carries full conflict detail back to the caller so the
// client can propose alternative times.
type SlotConflictError struct {
	Conflicts []SlotConflict
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("requested time conflicts with %d existing booking(s)", len(e.Conflicts))
}

// InterviewUpdate holds the recruiter-editable fields. Nil means "leave as is".
type InterviewUpdate struct {
	Title         *string     `json:"title,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Location      *string     `json:"location,omitempty"`
	MeetingLink   *string     `json:"meeting_link,omitempty"`
	ProposedSlots []TimeRange `json:"proposed_slots,omitempty"`
	Status        *string     `json:"status,omitempty"`
}

// InterviewRepository defines data access for interview requests.
type InterviewRepository interface {
	Create(ctx context.Context, iv *InterviewRequest) error
	GetByID(ctx context.Context, id string) (*InterviewRequest, error)
	GetByParticipant(ctx context.Context, userID string) ([]InterviewRequest, error)

	// FindConfirmedOverlapping returns every confirmed interview that shares
	// at least one of participantIDs and whose confirmed slot overlaps any of
	// the candidate slots. excludeID (may be empty) is skipped, so a request
	// can be re-checked against everyone but itself. One store round trip for
	// all slots.
	FindConfirmedOverlapping(ctx context.Context, participantIDs []string, slots []TimeRange, excludeID string) ([]InterviewRequest, error)

	// UpdateVersioned persists iv only if the stored version still equals
	// expectedVersion, bumping the version on success. A write that confirms
	// a slot must additionally verify, atomically with the write, that no
	// other confirmed interview sharing a participant overlaps the slot; the
	// per-row version cannot detect a racing confirmation on another record.
	// Returns ErrVersionConflict when either guard fails, sending the caller
	// back through its read-check-write loop.
	UpdateVersioned(ctx context.Context, iv *InterviewRequest, expectedVersion int64) error
}

// InterviewUsecase defines the scheduling operations.
type InterviewUsecase interface {
	Create(ctx context.Context, recruiterID string, iv *InterviewRequest) (*InterviewRequest, error)
	Get(ctx context.Context, userID, interviewID string) (*InterviewRequest, error)
	ListMine(ctx context.Context, userID string) ([]InterviewRequest, error)
	Respond(ctx context.Context, applicantID, interviewID, decision string, selectedSlot *TimeRange, message string) (*InterviewRequest, error)
	Update(ctx context.Context, recruiterID, interviewID string, upd InterviewUpdate) (*InterviewRequest, error)
	Cancel(ctx context.Context, recruiterID, interviewID string) (*InterviewRequest, error)
}
