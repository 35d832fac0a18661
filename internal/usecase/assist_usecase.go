package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"
)

const (
	recruitingSystemPrompt = "You are an assistant for a recruiting platform. Answer with exactly what is asked for, no preamble."

	coverLetterPrompt = `Write a professional cover letter for %s applying to the role of %s at %s.
Candidate background:
%s
Return only the letter body.`

	questionsPrompt = `Generate %d interview questions for the role of %s.
Focus area: %s.
Return one question per line, no numbering.`

	extractPrompt = `Extract structured fields from the resume below.
Respond with a single JSON object with keys: full_name, email, phone, skills (array), experience (array), education (array).
Resume:
%s`

	scorePrompt = `Score how well the resume below fits the job description, 0-100.
Respond with a single JSON object with keys: score (integer), strengths (array), gaps (array), summary (string).
Job description:
%s

Resume:
%s`
)

type assistUsecase struct {
	generator domain.TextGenerator
}

// NewAssistUsecase creates the AI pass-through usecase. All four operations
// are prompt templating around a single text-in/text-out boundary.
func NewAssistUsecase(generator domain.TextGenerator) domain.AssistUsecase {
	return &assistUsecase{generator: generator}
}

func (uc *assistUsecase) CoverLetter(ctx context.Context, applicantName, jobTitle, company, background string) (string, error) {
	if applicantName == "" || jobTitle == "" {
		return "", apperror.BadRequest("Applicant name and job title are required")
	}
	if company == "" {
		company = "the company"
	}

	prompt := fmt.Sprintf(coverLetterPrompt, applicantName, jobTitle, company, background)
	out, err := uc.generator.Generate(ctx, recruitingSystemPrompt, prompt)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return strings.TrimSpace(out), nil
}

func (uc *assistUsecase) InterviewQuestions(ctx context.Context, jobTitle, focus string, count int) ([]string, error) {
	if jobTitle == "" {
		return nil, apperror.BadRequest("Job title is required")
	}
	if count < 1 {
		count = 5
	}
	if count > 25 {
		count = 25
	}
	if focus == "" {
		focus = "general"
	}

	out, err := uc.generator.Generate(ctx, recruitingSystemPrompt, fmt.Sprintf(questionsPrompt, count, jobTitle, focus))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return splitLines(out), nil
}

func (uc *assistUsecase) ExtractResume(ctx context.Context, resumeText string) (*domain.ResumeFields, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, apperror.BadRequest("Resume text is required")
	}

	out, err := uc.generator.Generate(ctx, recruitingSystemPrompt, fmt.Sprintf(extractPrompt, resumeText))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var fields domain.ResumeFields
	if err := json.Unmarshal(extractJSON(out), &fields); err != nil {
		return nil, apperror.Internal(fmt.Errorf("model returned unparseable extraction: %w", err))
	}
	return &fields, nil
}

func (uc *assistUsecase) ScoreResume(ctx context.Context, resumeText, jobDescription string) (*domain.ATSScore, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return nil, apperror.BadRequest("Resume text and job description are required")
	}

	out, err := uc.generator.Generate(ctx, recruitingSystemPrompt, fmt.Sprintf(scorePrompt, jobDescription, resumeText))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var score domain.ATSScore
	if err := json.Unmarshal(extractJSON(out), &score); err != nil {
		return nil, apperror.Internal(fmt.Errorf("model returned unparseable score: %w", err))
	}
	if score.Score < 0 {
		score.Score = 0
	}
	if score.Score > 100 {
		score.Score = 100
	}
	return &score, nil
}

// splitLines turns model output into a clean list, dropping blanks and
// leftover bullet markers.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789. ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// extractJSON strips markdown fences and surrounding prose the model may add
// around a JSON object.
func extractJSON(out string) []byte {
	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	if start == -1 || end == -1 || end < start {
		return []byte(out)
	}
	return []byte(out[start : end+1])
}
