package usecase

import (
	"context"
	"time"

	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"

	"github.com/google/uuid"
)

// maxCommitRetries bounds the optimistic-concurrency retry loop. Every
// mutation re-reads the request, re-applies the transition and attempts a
// version-guarded write; a lost race restarts the whole check-and-set.
const maxCommitRetries = 3

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	userRepo      domain.UserRepository
}

// NewInterviewUsecase creates the interview scheduling usecase
func NewInterviewUsecase(interviewRepo domain.InterviewRepository, userRepo domain.UserRepository) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo: interviewRepo,
		userRepo:      userRepo,
	}
}

// Create validates the offer, checks every proposed slot against the
// participants' confirmed bookings and persists a new pending request with
// one pending response per invited applicant.
func (uc *interviewUsecase) Create(ctx context.Context, recruiterID string, iv *domain.InterviewRequest) (*domain.InterviewRequest, error) {
	// 1. Validate input shape
	if iv.Title == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	if len(iv.ApplicantIDs) == 0 {
		return nil, apperror.BadRequest("At least one applicant must be invited")
	}
	if len(iv.ProposedSlots) == 0 {
		return nil, apperror.BadRequest("At least one time slot must be proposed")
	}
	for _, slot := range iv.ProposedSlots {
		if err := slot.Validate(); err != nil {
			return nil, apperror.BadRequest("Each proposed slot must start before it ends")
		}
	}
	if seen := duplicateID(iv.ApplicantIDs); seen != "" {
		return nil, apperror.BadRequest("Duplicate applicant: " + seen)
	}

	// 2. Every invited id must resolve to an applicant account
	users, err := uc.userRepo.GetByIDs(ctx, iv.ApplicantIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, id := range iv.ApplicantIDs {
		u, ok := byID[id]
		if !ok {
			return nil, apperror.BadRequest("Unknown applicant: " + id)
		}
		if u.Role != domain.RoleApplicant {
			return nil, apperror.BadRequest("User is not an applicant: " + id)
		}
	}

	// 3. No proposed slot may overlap a confirmed booking of any participant
	iv.RecruiterID = recruiterID
	conflicts, err := uc.findConflicts(ctx, iv.ParticipantIDs(), iv.ProposedSlots, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(conflicts) > 0 {
		return nil, slotConflict(conflicts)
	}

	// 4. Build the aggregate: pending, one pending response per applicant
	iv.ID = uuid.NewString()
	iv.Status = domain.InterviewStatusPending
	iv.ConfirmedSlot = nil
	iv.Responses = make([]domain.ApplicantResponse, 0, len(iv.ApplicantIDs))
	for _, id := range iv.ApplicantIDs {
		iv.Responses = append(iv.Responses, domain.ApplicantResponse{
			ApplicantID: id,
			Status:      domain.ResponsePending,
		})
	}

	if err := uc.interviewRepo.Create(ctx, iv); err != nil {
		return nil, apperror.Internal(err)
	}
	return iv, nil
}

// Get returns the request if the caller participates in it.
func (uc *interviewUsecase) Get(ctx context.Context, userID, interviewID string) (*domain.InterviewRequest, error) {
	iv, err := uc.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return nil, apperror.NotFound("Interview not found")
	}
	if !iv.IsParticipant(userID) {
		return nil, apperror.Forbidden("You are not a participant of this interview")
	}
	return iv, nil
}

// ListMine returns every request the caller participates in, as recruiter or
// as invited applicant.
func (uc *interviewUsecase) ListMine(ctx context.Context, userID string) ([]domain.InterviewRequest, error) {
	list, err := uc.interviewRepo.GetByParticipant(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return list, nil
}

// Respond records one applicant's decision. Acceptance confirms the whole
// request; rejection collapses it to rejected even with other applicants
// still pending; a change request leaves the overall status untouched.
func (uc *interviewUsecase) Respond(ctx context.Context, applicantID, interviewID, decision string, selectedSlot *domain.TimeRange, message string) (*domain.InterviewRequest, error) {
	switch decision {
	case domain.ResponseAccepted, domain.ResponseRejected, domain.ResponseChangeRequested:
	default:
		return nil, apperror.BadRequest("Decision must be accepted, rejected or change_requested")
	}

	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		iv, err := uc.interviewRepo.GetByID(ctx, interviewID)
		if err != nil {
			return nil, apperror.NotFound("Interview not found")
		}
		if !iv.IsApplicant(applicantID) {
			return nil, apperror.Forbidden("You are not invited to this interview")
		}
		if iv.Status != domain.InterviewStatusPending {
			return nil, apperror.BadRequest("Interview is no longer awaiting responses")
		}
		resp := iv.ResponseFor(applicantID)
		if resp == nil {
			// Responses are created alongside the request; a missing entry
			// means the stored aggregate is corrupt.
			return nil, apperror.Internal(domain.ErrNotFound)
		}

		now := time.Now()
		switch decision {
		case domain.ResponseAccepted:
			if selectedSlot == nil {
				return nil, apperror.BadRequest("A slot must be selected when accepting")
			}
			if !iv.HasProposedSlot(*selectedSlot) {
				return nil, apperror.UnprocessableEntity("Selected slot is not one of the proposed slots")
			}
			conflicts, err := uc.findConflicts(ctx, []string{applicantID, iv.RecruiterID}, []domain.TimeRange{*selectedSlot}, iv.ID)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			if len(conflicts) > 0 {
				return nil, slotConflict(conflicts)
			}

			slot := *selectedSlot
			resp.Status = domain.ResponseAccepted
			resp.SelectedSlot = &slot
			resp.RespondedAt = &now
			resp.Message = optional(message)
			iv.ConfirmedSlot = &slot
			iv.Status = domain.InterviewStatusConfirmed

		case domain.ResponseRejected:
			resp.Status = domain.ResponseRejected
			resp.SelectedSlot = nil
			resp.RespondedAt = &now
			resp.Message = optional(message)
			// One rejection ends the whole request, even with other
			// applicants still pending.
			iv.Status = domain.InterviewStatusRejected

		case domain.ResponseChangeRequested:
			resp.Status = domain.ResponseChangeRequested
			resp.SelectedSlot = nil
			resp.RespondedAt = &now
			resp.Message = optional(message)
		}

		err = uc.interviewRepo.UpdateVersioned(ctx, iv, iv.Version)
		if err == nil {
			return iv, nil
		}
		if err != domain.ErrVersionConflict {
			return nil, apperror.Internal(err)
		}
	}

	// Retries exhausted: another writer kept winning the version race. For an
	// acceptance this is indistinguishable from losing the slot, so it is
	// surfaced the same way.
	if decision == domain.ResponseAccepted {
		return nil, slotConflict(nil)
	}
	return nil, apperror.Conflict("Interview was modified concurrently, please retry")
}

// Update applies recruiter edits. Proposed slots can only be replaced while
// the request is pending and before any applicant has responded; stale
// accepted responses pointing at withdrawn slots must never exist.
func (uc *interviewUsecase) Update(ctx context.Context, recruiterID, interviewID string, upd domain.InterviewUpdate) (*domain.InterviewRequest, error) {
	if upd.Status != nil && !validInterviewStatus(*upd.Status) {
		return nil, apperror.BadRequest("Invalid status: " + *upd.Status)
	}
	for _, slot := range upd.ProposedSlots {
		if err := slot.Validate(); err != nil {
			return nil, apperror.BadRequest("Each proposed slot must start before it ends")
		}
	}

	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		iv, err := uc.interviewRepo.GetByID(ctx, interviewID)
		if err != nil {
			return nil, apperror.NotFound("Interview not found")
		}
		if iv.RecruiterID != recruiterID {
			return nil, apperror.Forbidden("Only the owning recruiter can update this interview")
		}

		if upd.ProposedSlots != nil {
			if iv.Status != domain.InterviewStatusPending {
				return nil, apperror.BadRequest("Slots can only be changed while the interview is pending")
			}
			if iv.AnyResponded() {
				return nil, apperror.BadRequest("Slots can no longer be changed after an applicant has responded")
			}
			iv.ProposedSlots = upd.ProposedSlots
		}
		if upd.Title != nil {
			if *upd.Title == "" {
				return nil, apperror.BadRequest("Title cannot be empty")
			}
			iv.Title = *upd.Title
		}
		if upd.Description != nil {
			iv.Description = upd.Description
		}
		if upd.Location != nil {
			iv.Location = upd.Location
		}
		if upd.MeetingLink != nil {
			iv.MeetingLink = upd.MeetingLink
		}
		if upd.Status != nil {
			iv.Status = *upd.Status
		}

		err = uc.interviewRepo.UpdateVersioned(ctx, iv, iv.Version)
		if err == nil {
			return iv, nil
		}
		if err != domain.ErrVersionConflict {
			return nil, apperror.Internal(err)
		}
	}
	return nil, apperror.Conflict("Interview was modified concurrently, please retry")
}

// Cancel marks the request cancelled regardless of prior state. Cancelling an
// already-cancelled request succeeds and changes nothing.
func (uc *interviewUsecase) Cancel(ctx context.Context, recruiterID, interviewID string) (*domain.InterviewRequest, error) {
	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		iv, err := uc.interviewRepo.GetByID(ctx, interviewID)
		if err != nil {
			return nil, apperror.NotFound("Interview not found")
		}
		if iv.RecruiterID != recruiterID {
			return nil, apperror.Forbidden("Only the owning recruiter can cancel this interview")
		}
		if iv.Status == domain.InterviewStatusCancelled {
			return iv, nil
		}

		iv.Status = domain.InterviewStatusCancelled
		err = uc.interviewRepo.UpdateVersioned(ctx, iv, iv.Version)
		if err == nil {
			return iv, nil
		}
		if err != domain.ErrVersionConflict {
			return nil, apperror.Internal(err)
		}
	}
	return nil, apperror.Conflict("Interview was modified concurrently, please retry")
}

// findConflicts fetches, in a single store round trip, every confirmed
// interview touching any participant and overlapping any candidate slot,
// then groups the hits per slot preserving input order. Slots without hits
// are omitted, so an empty result means "no conflict" - valid only at the
// instant it was computed, which is why callers commit through a
// version-guarded write.
func (uc *interviewUsecase) findConflicts(ctx context.Context, participantIDs []string, slots []domain.TimeRange, excludeID string) ([]domain.SlotConflict, error) {
	confirmed, err := uc.interviewRepo.FindConfirmedOverlapping(ctx, participantIDs, slots, excludeID)
	if err != nil {
		return nil, err
	}
	if len(confirmed) == 0 {
		return nil, nil
	}

	var out []domain.SlotConflict
	for _, slot := range slots {
		var hits []domain.InterviewRequest
		for _, other := range confirmed {
			if other.ConfirmedSlot != nil && slot.Overlaps(*other.ConfirmedSlot) {
				hits = append(hits, other)
			}
		}
		if len(hits) > 0 {
			out = append(out, domain.SlotConflict{Slot: slot, Interviews: hits})
		}
	}
	return out, nil
}

func slotConflict(conflicts []domain.SlotConflict) error {
	err := apperror.Conflict("Requested time conflicts with an existing confirmed interview")
	err.Err = &domain.SlotConflictError{Conflicts: conflicts}
	return err
}

func validInterviewStatus(status string) bool {
	switch status {
	case domain.InterviewStatusPending, domain.InterviewStatusConfirmed,
		domain.InterviewStatusRejected, domain.InterviewStatusCancelled,
		domain.InterviewStatusCompleted:
		return true
	}
	return false
}

func duplicateID(ids []string) string {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id
		}
		seen[id] = true
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
