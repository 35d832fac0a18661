package usecase

import (
	"context"

	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"
)

type courseUsecase struct {
	courseRepo domain.CourseRepository
}

// NewCourseUsecase creates a new course usecase
func NewCourseUsecase(courseRepo domain.CourseRepository) domain.CourseUsecase {
	return &courseUsecase{courseRepo: courseRepo}
}

func (uc *courseUsecase) CreateCourse(ctx context.Context, authorID string, course *domain.Course) error {
	if course.Title == "" || course.Summary == "" {
		return apperror.BadRequest("Title and summary are required")
	}
	course.AuthorID = authorID
	if err := uc.courseRepo.Create(ctx, course); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *courseUsecase) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Course not found")
	}
	return course, nil
}

func (uc *courseUsecase) ListPublished(ctx context.Context, page, pageSize int) ([]domain.Course, int64, error) {
	limit, offset := pagination(page, pageSize)
	return uc.courseRepo.FetchPublished(ctx, limit, offset)
}

func (uc *courseUsecase) ListMyCourses(ctx context.Context, authorID string) ([]domain.Course, error) {
	return uc.courseRepo.FetchByAuthor(ctx, authorID)
}

func (uc *courseUsecase) UpdateCourse(ctx context.Context, authorID string, course *domain.Course) error {
	existing, err := uc.courseRepo.GetByID(ctx, course.ID)
	if err != nil {
		return apperror.NotFound("Course not found")
	}
	if existing.AuthorID != authorID {
		return apperror.Forbidden("Only the author can update this course")
	}
	course.AuthorID = existing.AuthorID
	if err := uc.courseRepo.Update(ctx, course); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *courseUsecase) DeleteCourse(ctx context.Context, authorID string, id int64) error {
	existing, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Course not found")
	}
	if existing.AuthorID != authorID {
		return apperror.Forbidden("Only the author can delete this course")
	}
	return uc.courseRepo.Delete(ctx, id)
}
