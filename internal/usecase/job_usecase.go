package usecase

import (
	"context"

	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo domain.JobPostRepository
}

// NewJobUsecase creates a new job post usecase
func NewJobUsecase(jobRepo domain.JobPostRepository) domain.JobPostUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

func (uc *jobUsecase) CreateJob(ctx context.Context, recruiterID string, job *domain.JobPost) error {
	if job.Title == "" || job.Description == "" {
		return apperror.BadRequest("Title and description are required")
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return apperror.BadRequest("Minimum salary cannot exceed maximum salary")
	}

	job.RecruiterID = recruiterID
	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.JobPost, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

func (uc *jobUsecase) ListOpenJobs(ctx context.Context, page, pageSize int) ([]domain.JobPost, int64, error) {
	limit, offset := pagination(page, pageSize)
	return uc.jobRepo.Fetch(ctx, domain.JobStatusOpen, limit, offset)
}

func (uc *jobUsecase) ListMyJobs(ctx context.Context, recruiterID string, page, pageSize int) ([]domain.JobPost, int64, error) {
	limit, offset := pagination(page, pageSize)
	return uc.jobRepo.FetchByRecruiter(ctx, recruiterID, limit, offset)
}

func (uc *jobUsecase) UpdateJob(ctx context.Context, recruiterID string, job *domain.JobPost) error {
	existing, err := uc.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		return apperror.NotFound("Job not found")
	}
	if existing.RecruiterID != recruiterID {
		return apperror.Forbidden("Only the owning recruiter can update this job")
	}

	job.RecruiterID = existing.RecruiterID
	if job.Status == "" {
		job.Status = existing.Status
	}
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobUsecase) DeleteJob(ctx context.Context, recruiterID string, id int64) error {
	existing, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Job not found")
	}
	if existing.RecruiterID != recruiterID {
		return apperror.Forbidden("Only the owning recruiter can delete this job")
	}
	return uc.jobRepo.Delete(ctx, id)
}

// pagination clamps page inputs the way the UI expects
func pagination(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}
