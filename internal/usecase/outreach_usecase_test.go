package usecase_test

import (
	"context"
	"errors"
	"testing"

	"yaake-backend/internal/domain"
	"yaake-backend/internal/usecase"
	"yaake-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOutreachRepo struct {
	mock.Mock
}

func (m *MockOutreachRepo) Create(ctx context.Context, email *domain.OutreachEmail) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockOutreachRepo) GetByID(ctx context.Context, id int64) (*domain.OutreachEmail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OutreachEmail), args.Error(1)
}
func (m *MockOutreachRepo) FetchByRecruiter(ctx context.Context, recruiterID string) ([]domain.OutreachEmail, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutreachEmail), args.Error(1)
}
func (m *MockOutreachRepo) Update(ctx context.Context, email *domain.OutreachEmail) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockOutreachRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// stubMailer records the delivery attempt and optionally fails.
type stubMailer struct {
	err  error
	sent []string
}

func (s *stubMailer) SendOutreach(to, subject, body string) error {
	s.sent = append(s.sent, to)
	return s.err
}

func draftEmail() *domain.OutreachEmail {
	return &domain.OutreachEmail{
		ID:          7,
		RecruiterID: "recruiter-1",
		ApplicantID: "applicant-a",
		Subject:     "Opportunity: Backend Engineer",
		Body:        "Hi there",
		Status:      domain.OutreachStatusDraft,
	}
}

func TestDraftParsesSubject(t *testing.T) {
	outreachRepo := new(MockOutreachRepo)
	userRepo := new(MockUserRepo)
	gen := &stubGenerator{out: "Subject: Come build with us\n\nHi Ada,\nWe have a role for you."}

	userRepo.On("GetByID", mock.Anything, "applicant-a").
		Return(&domain.User{ID: "applicant-a", Email: "ada@example.com", Role: domain.RoleApplicant}, nil)
	outreachRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewOutreachUsecase(outreachRepo, userRepo, gen, &stubMailer{})
	email, err := uc.Draft(context.Background(), "recruiter-1", "applicant-a", "Backend Engineer", "loved the OSS work")

	assert.NoError(t, err)
	assert.Equal(t, "Come build with us", email.Subject)
	assert.Equal(t, "Hi Ada,\nWe have a role for you.", email.Body)
	assert.Equal(t, domain.OutreachStatusDraft, email.Status)
	outreachRepo.AssertExpectations(t)
}

func TestDraftRejectsNonApplicant(t *testing.T) {
	outreachRepo := new(MockOutreachRepo)
	userRepo := new(MockUserRepo)

	userRepo.On("GetByID", mock.Anything, "recruiter-2").
		Return(&domain.User{ID: "recruiter-2", Role: domain.RoleRecruiter}, nil)

	uc := usecase.NewOutreachUsecase(outreachRepo, userRepo, &stubGenerator{out: "x"}, &stubMailer{})
	_, err := uc.Draft(context.Background(), "recruiter-1", "recruiter-2", "Backend Engineer", "")

	assertAppErrorCode(t, err, 400)
	outreachRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendMarksSent(t *testing.T) {
	outreachRepo := new(MockOutreachRepo)
	userRepo := new(MockUserRepo)
	mailer := &stubMailer{}

	outreachRepo.On("GetByID", mock.Anything, int64(7)).Return(draftEmail(), nil)
	userRepo.On("GetByID", mock.Anything, "applicant-a").
		Return(&domain.User{ID: "applicant-a", Email: "ada@example.com", Role: domain.RoleApplicant}, nil)
	outreachRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewOutreachUsecase(outreachRepo, userRepo, &stubGenerator{}, mailer)
	email, err := uc.Send(context.Background(), "recruiter-1", 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.OutreachStatusSent, email.Status)
	assert.NotNil(t, email.SentAt)
	assert.Equal(t, []string{"ada@example.com"}, mailer.sent)
}

func TestSendDeliveryFailureIsRecordedNotReturned(t *testing.T) {
	logger.Init()

	outreachRepo := new(MockOutreachRepo)
	userRepo := new(MockUserRepo)
	mailer := &stubMailer{err: errors.New("smtp: connection refused")}

	outreachRepo.On("GetByID", mock.Anything, int64(7)).Return(draftEmail(), nil)
	userRepo.On("GetByID", mock.Anything, "applicant-a").
		Return(&domain.User{ID: "applicant-a", Email: "ada@example.com", Role: domain.RoleApplicant}, nil)
	outreachRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewOutreachUsecase(outreachRepo, userRepo, &stubGenerator{}, mailer)
	email, err := uc.Send(context.Background(), "recruiter-1", 7)

	assert.NoError(t, err) // fire-and-forget: the call still succeeds
	assert.Equal(t, domain.OutreachStatusFailed, email.Status)
	assert.Nil(t, email.SentAt)
}

func TestSendTwiceRejected(t *testing.T) {
	outreachRepo := new(MockOutreachRepo)
	userRepo := new(MockUserRepo)

	sent := draftEmail()
	sent.Status = domain.OutreachStatusSent
	outreachRepo.On("GetByID", mock.Anything, int64(7)).Return(sent, nil)

	uc := usecase.NewOutreachUsecase(outreachRepo, userRepo, &stubGenerator{}, &stubMailer{})
	_, err := uc.Send(context.Background(), "recruiter-1", 7)

	assertAppErrorCode(t, err, 400)
}

func TestSentEmailIsImmutable(t *testing.T) {
	outreachRepo := new(MockOutreachRepo)
	userRepo := new(MockUserRepo)

	sent := draftEmail()
	sent.Status = domain.OutreachStatusSent
	outreachRepo.On("GetByID", mock.Anything, int64(7)).Return(sent, nil)

	uc := usecase.NewOutreachUsecase(outreachRepo, userRepo, &stubGenerator{}, &stubMailer{})
	err := uc.UpdateEmail(context.Background(), "recruiter-1", &domain.OutreachEmail{ID: 7, Subject: "edit", Body: "edit"})

	assertAppErrorCode(t, err, 400)
}

func TestOutreachOwnership(t *testing.T) {
	outreachRepo := new(MockOutreachRepo)
	userRepo := new(MockUserRepo)

	outreachRepo.On("GetByID", mock.Anything, int64(7)).Return(draftEmail(), nil)

	uc := usecase.NewOutreachUsecase(outreachRepo, userRepo, &stubGenerator{}, &stubMailer{})
	_, err := uc.Send(context.Background(), "someone-else", 7)
	assertAppErrorCode(t, err, 403)

	_, err = uc.GetEmail(context.Background(), "someone-else", 7)
	assertAppErrorCode(t, err, 403)
}
