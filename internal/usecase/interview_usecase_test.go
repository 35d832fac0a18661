package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"yaake-backend/internal/domain"
	"yaake-backend/internal/usecase"
	"yaake-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, iv *domain.InterviewRequest) error {
	return m.Called(ctx, iv).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id string) (*domain.InterviewRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewRequest), args.Error(1)
}

func (m *MockInterviewRepo) GetByParticipant(ctx context.Context, userID string) ([]domain.InterviewRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewRequest), args.Error(1)
}

func (m *MockInterviewRepo) FindConfirmedOverlapping(ctx context.Context, participantIDs []string, slots []domain.TimeRange, excludeID string) ([]domain.InterviewRequest, error) {
	args := m.Called(ctx, participantIDs, slots, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewRequest), args.Error(1)
}

func (m *MockInterviewRepo) UpdateVersioned(ctx context.Context, iv *domain.InterviewRequest, expectedVersion int64) error {
	return m.Called(ctx, iv, expectedVersion).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// Fixtures

func mustSlot(t *testing.T, start, end string) domain.TimeRange {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	assert.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	assert.NoError(t, err)
	return domain.TimeRange{Start: s, End: e}
}

func pendingInterview(t *testing.T, applicantIDs ...string) *domain.InterviewRequest {
	iv := &domain.InterviewRequest{
		ID:           "iv-1",
		RecruiterID:  "recruiter-1",
		ApplicantIDs: applicantIDs,
		Title:        "Backend engineer screen",
		ProposedSlots: []domain.TimeRange{
			mustSlot(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z"),
			mustSlot(t, "2025-01-10T10:00:00Z", "2025-01-10T10:30:00Z"),
		},
		Status:  domain.InterviewStatusPending,
		Version: 1,
	}
	for _, id := range applicantIDs {
		iv.Responses = append(iv.Responses, domain.ApplicantResponse{
			ApplicantID: id,
			Status:      domain.ResponsePending,
		})
	}
	return iv
}

func applicants(ids ...string) []domain.User {
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, domain.User{ID: id, Role: domain.RoleApplicant})
	}
	return users
}

func assertAppErrorCode(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

// Tests

func TestCreateInterviewValidation(t *testing.T) {
	ctx := context.Background()
	slot := func() domain.TimeRange {
		return domain.TimeRange{Start: time.Now().Add(time.Hour), End: time.Now().Add(2 * time.Hour)}
	}

	t.Run("Should fail without applicants", func(t *testing.T) {
		uc := usecase.NewInterviewUsecase(new(MockInterviewRepo), new(MockUserRepo))
		_, err := uc.Create(ctx, "recruiter-1", &domain.InterviewRequest{
			Title:         "Screen",
			ProposedSlots: []domain.TimeRange{slot()},
		})
		assertAppErrorCode(t, err, 400)
	})

	t.Run("Should fail without slots", func(t *testing.T) {
		uc := usecase.NewInterviewUsecase(new(MockInterviewRepo), new(MockUserRepo))
		_, err := uc.Create(ctx, "recruiter-1", &domain.InterviewRequest{
			Title:        "Screen",
			ApplicantIDs: []string{"applicant-a"},
		})
		assertAppErrorCode(t, err, 400)
	})

	t.Run("Should fail without title", func(t *testing.T) {
		uc := usecase.NewInterviewUsecase(new(MockInterviewRepo), new(MockUserRepo))
		_, err := uc.Create(ctx, "recruiter-1", &domain.InterviewRequest{
			ApplicantIDs:  []string{"applicant-a"},
			ProposedSlots: []domain.TimeRange{slot()},
		})
		assertAppErrorCode(t, err, 400)
	})

	t.Run("Should fail on inverted slot", func(t *testing.T) {
		uc := usecase.NewInterviewUsecase(new(MockInterviewRepo), new(MockUserRepo))
		s := slot()
		s.Start, s.End = s.End, s.Start
		_, err := uc.Create(ctx, "recruiter-1", &domain.InterviewRequest{
			Title:         "Screen",
			ApplicantIDs:  []string{"applicant-a"},
			ProposedSlots: []domain.TimeRange{s},
		})
		assertAppErrorCode(t, err, 400)
	})

	t.Run("Should fail on unknown applicant", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByIDs", ctx, []string{"ghost"}).Return([]domain.User{}, nil)
		uc := usecase.NewInterviewUsecase(new(MockInterviewRepo), userRepo)
		_, err := uc.Create(ctx, "recruiter-1", &domain.InterviewRequest{
			Title:         "Screen",
			ApplicantIDs:  []string{"ghost"},
			ProposedSlots: []domain.TimeRange{slot()},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown applicant")
	})

	t.Run("Should fail when invitee is not an applicant", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByIDs", ctx, []string{"recruiter-2"}).
			Return([]domain.User{{ID: "recruiter-2", Role: domain.RoleRecruiter}}, nil)
		uc := usecase.NewInterviewUsecase(new(MockInterviewRepo), userRepo)
		_, err := uc.Create(ctx, "recruiter-1", &domain.InterviewRequest{
			Title:         "Screen",
			ApplicantIDs:  []string{"recruiter-2"},
			ProposedSlots: []domain.TimeRange{slot()},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not an applicant")
	})
}

func TestCreateInterviewSuccess(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	userRepo := new(MockUserRepo)

	userRepo.On("GetByIDs", ctx, []string{"applicant-a", "applicant-b"}).
		Return(applicants("applicant-a", "applicant-b"), nil)
	ivRepo.On("FindConfirmedOverlapping", ctx, mock.Anything, mock.Anything, "").
		Return([]domain.InterviewRequest{}, nil)
	ivRepo.On("Create", ctx, mock.AnythingOfType("*domain.InterviewRequest")).Return(nil)

	uc := usecase.NewInterviewUsecase(ivRepo, userRepo)
	iv, err := uc.Create(ctx, "recruiter-1", &domain.InterviewRequest{
		Title:        "Backend engineer screen",
		ApplicantIDs: []string{"applicant-a", "applicant-b"},
		ProposedSlots: []domain.TimeRange{
			mustSlot(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z"),
		},
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, iv.ID)
	assert.Equal(t, domain.InterviewStatusPending, iv.Status)
	assert.Equal(t, "recruiter-1", iv.RecruiterID)
	assert.Nil(t, iv.ConfirmedSlot)

	// Exactly one pending response per invited applicant
	assert.Len(t, iv.Responses, len(iv.ApplicantIDs))
	for i, id := range iv.ApplicantIDs {
		assert.Equal(t, id, iv.Responses[i].ApplicantID)
		assert.Equal(t, domain.ResponsePending, iv.Responses[i].Status)
	}
	ivRepo.AssertExpectations(t)
}

func TestCreateInterviewSlotConflict(t *testing.T) {
	// Recruiter already has a confirmed 09:00-09:30 interview with the same
	// applicant; proposing 09:15-09:45 must fail and list the existing booking.
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	userRepo := new(MockUserRepo)

	existingSlot := mustSlot(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z")
	existing := domain.InterviewRequest{
		ID:            "iv-existing",
		RecruiterID:   "recruiter-1",
		ApplicantIDs:  []string{"applicant-a"},
		Status:        domain.InterviewStatusConfirmed,
		ConfirmedSlot: &existingSlot,
	}

	userRepo.On("GetByIDs", ctx, []string{"applicant-a"}).Return(applicants("applicant-a"), nil)
	ivRepo.On("FindConfirmedOverlapping", ctx, mock.Anything, mock.Anything, "").
		Return([]domain.InterviewRequest{existing}, nil)

	uc := usecase.NewInterviewUsecase(ivRepo, userRepo)
	proposed := mustSlot(t, "2025-01-10T09:15:00Z", "2025-01-10T09:45:00Z")
	_, err := uc.Create(ctx, "recruiter-1", &domain.InterviewRequest{
		Title:         "Follow-up",
		ApplicantIDs:  []string{"applicant-a"},
		ProposedSlots: []domain.TimeRange{proposed},
	})

	assertAppErrorCode(t, err, 409)
	var conflictErr *domain.SlotConflictError
	assert.ErrorAs(t, err, &conflictErr)
	assert.Len(t, conflictErr.Conflicts, 1)
	assert.True(t, conflictErr.Conflicts[0].Slot.Equal(proposed))
	assert.Equal(t, "iv-existing", conflictErr.Conflicts[0].Interviews[0].ID)

	// No record may be created when the check fails
	ivRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRespondAccept(t *testing.T) {
	// Scenario: applicant accepts the first of two proposed slots; the
	// request confirms on exactly that slot.
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)

	iv := pendingInterview(t, "applicant-a")
	ivRepo.On("GetByID", ctx, "iv-1").Return(iv, nil)
	ivRepo.On("FindConfirmedOverlapping", ctx, []string{"applicant-a", "recruiter-1"}, mock.Anything, "iv-1").
		Return([]domain.InterviewRequest{}, nil)
	ivRepo.On("UpdateVersioned", ctx, mock.AnythingOfType("*domain.InterviewRequest"), int64(1)).Return(nil)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	chosen := mustSlot(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z")
	updated, err := uc.Respond(ctx, "applicant-a", "iv-1", domain.ResponseAccepted, &chosen, "")

	assert.NoError(t, err)
	assert.Equal(t, domain.InterviewStatusConfirmed, updated.Status)
	assert.NotNil(t, updated.ConfirmedSlot)
	assert.True(t, updated.ConfirmedSlot.Equal(chosen))

	resp := updated.ResponseFor("applicant-a")
	assert.Equal(t, domain.ResponseAccepted, resp.Status)
	assert.NotNil(t, resp.SelectedSlot)
	assert.True(t, resp.SelectedSlot.Equal(chosen))
	assert.NotNil(t, resp.RespondedAt)
	ivRepo.AssertExpectations(t)
}

func TestRespondInvalidSlot(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	ivRepo.On("GetByID", ctx, "iv-1").Return(pendingInterview(t, "applicant-a"), nil)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	offMenu := mustSlot(t, "2025-01-10T11:00:00Z", "2025-01-10T11:30:00Z")
	_, err := uc.Respond(ctx, "applicant-a", "iv-1", domain.ResponseAccepted, &offMenu, "")

	assertAppErrorCode(t, err, 422)
	ivRepo.AssertNotCalled(t, "UpdateVersioned", mock.Anything, mock.Anything, mock.Anything)
}

func TestRespondAcceptConflict(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)

	other := domain.InterviewRequest{ID: "iv-other", Status: domain.InterviewStatusConfirmed}
	slot := mustSlot(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z")
	other.ConfirmedSlot = &slot

	ivRepo.On("GetByID", ctx, "iv-1").Return(pendingInterview(t, "applicant-a"), nil)
	ivRepo.On("FindConfirmedOverlapping", ctx, mock.Anything, mock.Anything, "iv-1").
		Return([]domain.InterviewRequest{other}, nil)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	_, err := uc.Respond(ctx, "applicant-a", "iv-1", domain.ResponseAccepted, &slot, "")

	assertAppErrorCode(t, err, 409)
	var conflictErr *domain.SlotConflictError
	assert.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "iv-other", conflictErr.Conflicts[0].Interviews[0].ID)
	ivRepo.AssertNotCalled(t, "UpdateVersioned", mock.Anything, mock.Anything, mock.Anything)
}

func TestRespondRejectCollapsesRequest(t *testing.T) {
	// One rejection marks the whole request rejected even though the second
	// applicant has not answered yet.
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	ivRepo.On("GetByID", ctx, "iv-1").Return(pendingInterview(t, "applicant-a", "applicant-b"), nil)
	ivRepo.On("UpdateVersioned", ctx, mock.AnythingOfType("*domain.InterviewRequest"), int64(1)).Return(nil)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	updated, err := uc.Respond(ctx, "applicant-a", "iv-1", domain.ResponseRejected, nil, "no longer interested")

	assert.NoError(t, err)
	assert.Equal(t, domain.InterviewStatusRejected, updated.Status)
	assert.Equal(t, domain.ResponseRejected, updated.ResponseFor("applicant-a").Status)
	assert.Equal(t, domain.ResponsePending, updated.ResponseFor("applicant-b").Status)
	assert.Nil(t, updated.ConfirmedSlot)
}

func TestRespondChangeRequested(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	ivRepo.On("GetByID", ctx, "iv-1").Return(pendingInterview(t, "applicant-a"), nil)
	ivRepo.On("UpdateVersioned", ctx, mock.AnythingOfType("*domain.InterviewRequest"), int64(1)).Return(nil)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	updated, err := uc.Respond(ctx, "applicant-a", "iv-1", domain.ResponseChangeRequested, nil, "could we do afternoons?")

	assert.NoError(t, err)
	assert.Equal(t, domain.InterviewStatusPending, updated.Status)
	resp := updated.ResponseFor("applicant-a")
	assert.Equal(t, domain.ResponseChangeRequested, resp.Status)
	assert.Equal(t, "could we do afternoons?", *resp.Message)
}

func TestRespondAuthorization(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	ivRepo.On("GetByID", ctx, "iv-1").Return(pendingInterview(t, "applicant-a"), nil)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	slot := mustSlot(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z")
	_, err := uc.Respond(ctx, "stranger", "iv-1", domain.ResponseAccepted, &slot, "")

	assertAppErrorCode(t, err, 403)
}

func TestRespondRetriesVersionConflict(t *testing.T) {
	// First conditional write loses the race; the second attempt re-reads and
	// commits.
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	chosen := mustSlot(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z")

	first := pendingInterview(t, "applicant-a")
	second := pendingInterview(t, "applicant-a")
	second.Version = 2

	ivRepo.On("GetByID", ctx, "iv-1").Return(first, nil).Once()
	ivRepo.On("GetByID", ctx, "iv-1").Return(second, nil).Once()
	ivRepo.On("FindConfirmedOverlapping", ctx, mock.Anything, mock.Anything, "iv-1").
		Return([]domain.InterviewRequest{}, nil)
	ivRepo.On("UpdateVersioned", ctx, mock.Anything, int64(1)).Return(domain.ErrVersionConflict).Once()
	ivRepo.On("UpdateVersioned", ctx, mock.Anything, int64(2)).Return(nil).Once()

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	updated, err := uc.Respond(ctx, "applicant-a", "iv-1", domain.ResponseAccepted, &chosen, "")

	assert.NoError(t, err)
	assert.Equal(t, domain.InterviewStatusConfirmed, updated.Status)
	ivRepo.AssertExpectations(t)
}

func TestRespondRetryExhaustion(t *testing.T) {
	// Every attempt loses the optimistic race: the caller gets a conflict,
	// never a half-committed confirmation.
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	chosen := mustSlot(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z")

	// Each attempt re-reads; hand out a fresh pending copy every time since
	// the usecase mutates the loaded aggregate in place.
	for i := 0; i < 3; i++ {
		ivRepo.On("GetByID", ctx, "iv-1").Return(pendingInterview(t, "applicant-a"), nil).Once()
	}
	ivRepo.On("FindConfirmedOverlapping", ctx, mock.Anything, mock.Anything, "iv-1").
		Return([]domain.InterviewRequest{}, nil)
	ivRepo.On("UpdateVersioned", ctx, mock.Anything, mock.Anything).Return(domain.ErrVersionConflict)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	_, err := uc.Respond(ctx, "applicant-a", "iv-1", domain.ResponseAccepted, &chosen, "")

	assertAppErrorCode(t, err, 409)
	ivRepo.AssertNumberOfCalls(t, "UpdateVersioned", 3)
}

func TestRespondOnSettledInterview(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	iv := pendingInterview(t, "applicant-a")
	iv.Status = domain.InterviewStatusCancelled
	ivRepo.On("GetByID", ctx, "iv-1").Return(iv, nil)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	_, err := uc.Respond(ctx, "applicant-a", "iv-1", domain.ResponseRejected, nil, "")

	assertAppErrorCode(t, err, 400)
}

func TestCancelIdempotent(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)

	live := pendingInterview(t, "applicant-a")
	cancelled := pendingInterview(t, "applicant-a")
	cancelled.Status = domain.InterviewStatusCancelled
	cancelled.Version = 2

	ivRepo.On("GetByID", ctx, "iv-1").Return(live, nil).Once()
	ivRepo.On("UpdateVersioned", ctx, mock.Anything, int64(1)).Return(nil).Once()
	ivRepo.On("GetByID", ctx, "iv-1").Return(cancelled, nil).Once()

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))

	first, err := uc.Cancel(ctx, "recruiter-1", "iv-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.InterviewStatusCancelled, first.Status)

	second, err := uc.Cancel(ctx, "recruiter-1", "iv-1")
	assert.NoError(t, err)
	assert.Equal(t, domain.InterviewStatusCancelled, second.Status)

	// Second cancel is a no-op write-wise
	ivRepo.AssertNumberOfCalls(t, "UpdateVersioned", 1)
}

func TestCancelOwnership(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	ivRepo.On("GetByID", ctx, "iv-1").Return(pendingInterview(t, "applicant-a"), nil)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	_, err := uc.Cancel(ctx, "recruiter-2", "iv-1")

	assertAppErrorCode(t, err, 403)
}

func TestUpdateSlotsLockedAfterResponse(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)

	iv := pendingInterview(t, "applicant-a")
	iv.Responses[0].Status = domain.ResponseChangeRequested
	ivRepo.On("GetByID", ctx, "iv-1").Return(iv, nil)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	_, err := uc.Update(ctx, "recruiter-1", "iv-1", domain.InterviewUpdate{
		ProposedSlots: []domain.TimeRange{mustSlot(t, "2025-01-11T09:00:00Z", "2025-01-11T09:30:00Z")},
	})

	assertAppErrorCode(t, err, 400)
	assert.Contains(t, err.Error(), "no longer be changed")
}

func TestUpdateFields(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	ivRepo.On("GetByID", ctx, "iv-1").Return(pendingInterview(t, "applicant-a"), nil)
	ivRepo.On("UpdateVersioned", ctx, mock.Anything, int64(1)).Return(nil)

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))
	title := "Updated title"
	location := "Office 4B"
	updated, err := uc.Update(ctx, "recruiter-1", "iv-1", domain.InterviewUpdate{
		Title:    &title,
		Location: &location,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Updated title", updated.Title)
	assert.Equal(t, "Office 4B", *updated.Location)
}

func TestGetAuthorization(t *testing.T) {
	ctx := context.Background()
	ivRepo := new(MockInterviewRepo)
	ivRepo.On("GetByID", ctx, "iv-1").Return(pendingInterview(t, "applicant-a"), nil)
	ivRepo.On("GetByID", ctx, "iv-missing").Return(nil, errors.New("no rows"))

	uc := usecase.NewInterviewUsecase(ivRepo, new(MockUserRepo))

	t.Run("Participant can read", func(t *testing.T) {
		iv, err := uc.Get(ctx, "applicant-a", "iv-1")
		assert.NoError(t, err)
		assert.Equal(t, "iv-1", iv.ID)
	})

	t.Run("Stranger is rejected", func(t *testing.T) {
		_, err := uc.Get(ctx, "stranger", "iv-1")
		assertAppErrorCode(t, err, 403)
	})

	t.Run("Missing id is not found", func(t *testing.T) {
		_, err := uc.Get(ctx, "applicant-a", "iv-missing")
		assertAppErrorCode(t, err, 404)
	})
}

// memoryInterviewRepo is a small in-process store with the same conditional
// write semantics as the SQL repository: the version guard and, on confirming
// writes, the cross-record overlap guard run atomically under one lock. It
// exists to exercise interleavings the call-by-call mocks cannot express.
//
// checkQuorum/checkDone form a one-shot barrier: FindConfirmedOverlapping
// blocks until checkQuorum callers have computed their result, forcing every
// racer's pre-write conflict check to run against a store where no
// confirmation has landed yet. Later calls pass through immediately.
type memoryInterviewRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.InterviewRequest

	checkArrivals int
	checkQuorum   int
	checkDone     chan struct{}
}

func newMemoryInterviewRepo(checkQuorum int) *memoryInterviewRepo {
	return &memoryInterviewRepo{
		byID:        make(map[string]*domain.InterviewRequest),
		checkQuorum: checkQuorum,
		checkDone:   make(chan struct{}),
	}
}

func (r *memoryInterviewRepo) Create(ctx context.Context, iv *domain.InterviewRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := cloneInterview(iv)
	cp.Version = 1
	r.byID[iv.ID] = cp
	return nil
}

func (r *memoryInterviewRepo) GetByID(ctx context.Context, id string) (*domain.InterviewRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneInterview(iv), nil
}

func (r *memoryInterviewRepo) GetByParticipant(ctx context.Context, userID string) ([]domain.InterviewRequest, error) {
	return nil, nil
}

func (r *memoryInterviewRepo) FindConfirmedOverlapping(ctx context.Context, participantIDs []string, slots []domain.TimeRange, excludeID string) ([]domain.InterviewRequest, error) {
	r.mu.Lock()
	var out []domain.InterviewRequest
	for _, other := range r.byID {
		if other.ID == excludeID || other.Status != domain.InterviewStatusConfirmed || other.ConfirmedSlot == nil {
			continue
		}
		if !sharesParticipant(other, participantIDs) {
			continue
		}
		for _, slot := range slots {
			if slot.Overlaps(*other.ConfirmedSlot) {
				out = append(out, *cloneInterview(other))
				break
			}
		}
	}
	r.checkArrivals++
	release := r.checkArrivals == r.checkQuorum
	r.mu.Unlock()

	if release {
		close(r.checkDone)
	}
	<-r.checkDone
	return out, nil
}

func (r *memoryInterviewRepo) UpdateVersioned(ctx context.Context, iv *domain.InterviewRequest, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[iv.ID]
	if !ok || stored.Version != expectedVersion {
		return domain.ErrVersionConflict
	}
	if iv.Status == domain.InterviewStatusConfirmed && iv.ConfirmedSlot != nil {
		for _, other := range r.byID {
			if other.ID == iv.ID || other.Status != domain.InterviewStatusConfirmed || other.ConfirmedSlot == nil {
				continue
			}
			if sharesParticipant(other, iv.ParticipantIDs()) && iv.ConfirmedSlot.Overlaps(*other.ConfirmedSlot) {
				return domain.ErrVersionConflict
			}
		}
	}

	cp := cloneInterview(iv)
	cp.Version = expectedVersion + 1
	r.byID[iv.ID] = cp
	iv.Version = cp.Version
	return nil
}

func sharesParticipant(iv *domain.InterviewRequest, ids []string) bool {
	for _, id := range ids {
		if iv.IsParticipant(id) {
			return true
		}
	}
	return false
}

func cloneInterview(iv *domain.InterviewRequest) *domain.InterviewRequest {
	cp := *iv
	cp.ApplicantIDs = append([]string(nil), iv.ApplicantIDs...)
	cp.ProposedSlots = append([]domain.TimeRange(nil), iv.ProposedSlots...)
	cp.Responses = append([]domain.ApplicantResponse(nil), iv.Responses...)
	if iv.ConfirmedSlot != nil {
		slot := *iv.ConfirmedSlot
		cp.ConfirmedSlot = &slot
	}
	return &cp
}

func TestConcurrentAcceptsAcrossInterviews(t *testing.T) {
	// Two pending interviews share recruiter-1 but invite different
	// applicants. Both applicants accept the same 09:00-09:30 slot at once
	// and both pre-write conflict checks pass before either confirmation
	// lands. Exactly one request may confirm; the loser's retry must see the
	// winner's booking and come back as a slot conflict, never as a second
	// confirmed interview.
	repo := newMemoryInterviewRepo(2)

	slot := mustSlot(t, "2025-01-10T09:00:00Z", "2025-01-10T09:30:00Z")
	for _, seed := range []struct{ id, applicant string }{
		{"iv-1", "applicant-a"},
		{"iv-2", "applicant-b"},
	} {
		iv := pendingInterview(t, seed.applicant)
		iv.ID = seed.id
		assert.NoError(t, repo.Create(context.Background(), iv))
	}

	uc := usecase.NewInterviewUsecase(repo, new(MockUserRepo))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, racer := range []struct{ applicant, interview string }{
		{"applicant-a", "iv-1"},
		{"applicant-b", "iv-2"},
	} {
		wg.Add(1)
		go func(i int, applicantID, interviewID string) {
			defer wg.Done()
			_, errs[i] = uc.Respond(context.Background(), applicantID, interviewID, domain.ResponseAccepted, &slot, "")
		}(i, racer.applicant, racer.interview)
	}
	wg.Wait()

	confirmed := 0
	var loserErr error
	for i, id := range []string{"iv-1", "iv-2"} {
		iv, err := repo.GetByID(context.Background(), id)
		assert.NoError(t, err)
		if iv.Status == domain.InterviewStatusConfirmed {
			confirmed++
			assert.NoError(t, errs[i])
			assert.True(t, iv.ConfirmedSlot.Equal(slot))
		} else {
			assert.Equal(t, domain.InterviewStatusPending, iv.Status)
			loserErr = errs[i]
		}
	}

	assert.Equal(t, 1, confirmed, "the shared slot may be confirmed exactly once")
	assertAppErrorCode(t, loserErr, 409)
	var conflictErr *domain.SlotConflictError
	assert.ErrorAs(t, loserErr, &conflictErr)
	assert.NotEmpty(t, conflictErr.Conflicts)
}
