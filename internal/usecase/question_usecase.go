package usecase

import (
	"context"
	"fmt"

	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"
)

type questionUsecase struct {
	questionRepo domain.QuestionSetRepository
	assist       domain.AssistUsecase
}

// NewQuestionUsecase creates the question set usecase
func NewQuestionUsecase(questionRepo domain.QuestionSetRepository, assist domain.AssistUsecase) domain.QuestionSetUsecase {
	return &questionUsecase{questionRepo: questionRepo, assist: assist}
}

// Generate drafts a question set through the AI boundary and persists it.
func (uc *questionUsecase) Generate(ctx context.Context, recruiterID, jobTitle, focus string, count int) (*domain.QuestionSet, error) {
	questions, err := uc.assist.InterviewQuestions(ctx, jobTitle, focus, count)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, apperror.Internal(fmt.Errorf("generator returned no questions for %q", jobTitle))
	}

	qs := &domain.QuestionSet{
		RecruiterID: recruiterID,
		Title:       fmt.Sprintf("%s questions", jobTitle),
		JobTitle:    jobTitle,
		Questions:   questions,
	}
	if focus != "" {
		qs.Focus = &focus
	}
	if err := uc.questionRepo.Create(ctx, qs); err != nil {
		return nil, apperror.Internal(err)
	}
	return qs, nil
}

func (uc *questionUsecase) GetSet(ctx context.Context, recruiterID string, id int64) (*domain.QuestionSet, error) {
	qs, err := uc.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Question set not found")
	}
	if qs.RecruiterID != recruiterID {
		return nil, apperror.Forbidden("You do not own this question set")
	}
	return qs, nil
}

func (uc *questionUsecase) ListMySets(ctx context.Context, recruiterID string) ([]domain.QuestionSet, error) {
	return uc.questionRepo.FetchByRecruiter(ctx, recruiterID)
}

func (uc *questionUsecase) UpdateSet(ctx context.Context, recruiterID string, qs *domain.QuestionSet) error {
	existing, err := uc.questionRepo.GetByID(ctx, qs.ID)
	if err != nil {
		return apperror.NotFound("Question set not found")
	}
	if existing.RecruiterID != recruiterID {
		return apperror.Forbidden("You do not own this question set")
	}
	if len(qs.Questions) == 0 {
		return apperror.BadRequest("A question set cannot be empty")
	}
	qs.RecruiterID = existing.RecruiterID
	if err := uc.questionRepo.Update(ctx, qs); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *questionUsecase) DeleteSet(ctx context.Context, recruiterID string, id int64) error {
	existing, err := uc.questionRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Question set not found")
	}
	if existing.RecruiterID != recruiterID {
		return apperror.Forbidden("You do not own this question set")
	}
	return uc.questionRepo.Delete(ctx, id)
}
