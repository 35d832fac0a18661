package domain

import "context"

// TextGenerator is the boundary to the generative-AI provider. The platform
// only ever sends text and receives text; prompt construction lives in the
// usecases and provider specifics live behind this interface.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// ATSScore is the structured result of scoring a resume against a job post.
type ATSScore struct {
	Score     int      `json:"score"` // 0-100
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
	Summary   string   `json:"summary"`
}

// ResumeFields is the structured extraction of a free-text resume.
type ResumeFields struct {
	FullName   string   `json:"full_name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
}

// AssistUsecase bundles the thin pass-through AI operations.
type AssistUsecase interface {
	CoverLetter(ctx context.Context, applicantName, jobTitle, company, background string) (string, error)
	InterviewQuestions(ctx context.Context, jobTitle, focus string, count int) ([]string, error)
	ExtractResume(ctx context.Context, resumeText string) (*ResumeFields, error)
	ScoreResume(ctx context.Context, resumeText, jobDescription string) (*ATSScore, error)
}
