package usecase

import (
	"context"
	"fmt"
	"time"

	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"
	"yaake-backend/pkg/logger"
)

const outreachPrompt = `Draft a short, friendly outreach email from a recruiter to a candidate about the role of %s.
Recruiter notes:
%s
Respond with the subject on the first line prefixed "Subject: ", then a blank line, then the body.`

type outreachUsecase struct {
	outreachRepo domain.OutreachRepository
	userRepo     domain.UserRepository
	generator    domain.TextGenerator
	mailer       domain.OutreachMailer
}

// NewOutreachUsecase creates the outreach email usecase
func NewOutreachUsecase(outreachRepo domain.OutreachRepository, userRepo domain.UserRepository, generator domain.TextGenerator, mailer domain.OutreachMailer) domain.OutreachUsecase {
	return &outreachUsecase{
		outreachRepo: outreachRepo,
		userRepo:     userRepo,
		generator:    generator,
		mailer:       mailer,
	}
}

// Draft generates subject and body through the AI boundary and stores the
// result as a draft for the recruiter to edit.
func (uc *outreachUsecase) Draft(ctx context.Context, recruiterID, applicantID, jobTitle, notes string) (*domain.OutreachEmail, error) {
	if jobTitle == "" {
		return nil, apperror.BadRequest("Job title is required")
	}
	applicant, err := uc.userRepo.GetByID(ctx, applicantID)
	if err != nil || applicant == nil {
		return nil, apperror.NotFound("Applicant not found")
	}
	if applicant.Role != domain.RoleApplicant {
		return nil, apperror.BadRequest("Outreach target is not an applicant")
	}

	out, err := uc.generator.Generate(ctx, recruitingSystemPrompt, fmt.Sprintf(outreachPrompt, jobTitle, notes))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	subject, body := splitDraft(out, jobTitle)

	email := &domain.OutreachEmail{
		RecruiterID: recruiterID,
		ApplicantID: applicantID,
		Subject:     subject,
		Body:        body,
		Status:      domain.OutreachStatusDraft,
	}
	if err := uc.outreachRepo.Create(ctx, email); err != nil {
		return nil, apperror.Internal(err)
	}
	return email, nil
}

func (uc *outreachUsecase) GetEmail(ctx context.Context, recruiterID string, id int64) (*domain.OutreachEmail, error) {
	email, err := uc.outreachRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Outreach email not found")
	}
	if email.RecruiterID != recruiterID {
		return nil, apperror.Forbidden("You do not own this outreach email")
	}
	return email, nil
}

func (uc *outreachUsecase) ListMyEmails(ctx context.Context, recruiterID string) ([]domain.OutreachEmail, error) {
	return uc.outreachRepo.FetchByRecruiter(ctx, recruiterID)
}

func (uc *outreachUsecase) UpdateEmail(ctx context.Context, recruiterID string, email *domain.OutreachEmail) error {
	existing, err := uc.outreachRepo.GetByID(ctx, email.ID)
	if err != nil {
		return apperror.NotFound("Outreach email not found")
	}
	if existing.RecruiterID != recruiterID {
		return apperror.Forbidden("You do not own this outreach email")
	}
	if existing.Status == domain.OutreachStatusSent {
		return apperror.BadRequest("A sent email can no longer be edited")
	}
	email.RecruiterID = existing.RecruiterID
	email.ApplicantID = existing.ApplicantID
	email.Status = existing.Status
	if err := uc.outreachRepo.Update(ctx, email); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Send delivers the email to the applicant's address. Fire-and-forget: an
// SMTP failure marks the record failed and the call still succeeds.
func (uc *outreachUsecase) Send(ctx context.Context, recruiterID string, id int64) (*domain.OutreachEmail, error) {
	email, err := uc.outreachRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Outreach email not found")
	}
	if email.RecruiterID != recruiterID {
		return nil, apperror.Forbidden("You do not own this outreach email")
	}
	if email.Status == domain.OutreachStatusSent {
		return nil, apperror.BadRequest("Email has already been sent")
	}

	applicant, err := uc.userRepo.GetByID(ctx, email.ApplicantID)
	if err != nil || applicant == nil {
		return nil, apperror.NotFound("Applicant not found")
	}

	if err := uc.mailer.SendOutreach(applicant.Email, email.Subject, email.Body); err != nil {
		logger.Log.Warn("outreach delivery failed", "email_id", email.ID, "error", err)
		email.Status = domain.OutreachStatusFailed
	} else {
		now := time.Now()
		email.Status = domain.OutreachStatusSent
		email.SentAt = &now
	}

	if err := uc.outreachRepo.Update(ctx, email); err != nil {
		return nil, apperror.Internal(err)
	}
	return email, nil
}

func (uc *outreachUsecase) DeleteEmail(ctx context.Context, recruiterID string, id int64) error {
	existing, err := uc.outreachRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Outreach email not found")
	}
	if existing.RecruiterID != recruiterID {
		return apperror.Forbidden("You do not own this outreach email")
	}
	return uc.outreachRepo.Delete(ctx, id)
}

// splitDraft parses "Subject: ..." headers out of a generated draft, falling
// back to a sensible subject when the model ignores the format.
func splitDraft(out, jobTitle string) (subject, body string) {
	subject = "Opportunity: " + jobTitle
	body = out
	if len(out) > 9 && out[:9] == "Subject: " {
		for i := 0; i < len(out); i++ {
			if out[i] == '\n' {
				subject = out[9:i]
				body = out[i+1:]
				break
			}
		}
	}
	for len(body) > 0 && (body[0] == '\n' || body[0] == '\r') {
		body = body[1:]
	}
	return subject, body
}
