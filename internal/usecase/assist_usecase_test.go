package usecase_test

import (
	"context"
	"errors"
	"testing"

	"yaake-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

// stubGenerator returns a canned completion and records the last prompt.
type stubGenerator struct {
	out        string
	err        error
	lastPrompt string
}

func (s *stubGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.out, s.err
}

func TestCoverLetter(t *testing.T) {
	gen := &stubGenerator{out: "  Dear hiring manager,\n...\n  "}
	uc := usecase.NewAssistUsecase(gen)

	letter, err := uc.CoverLetter(context.Background(), "Ada", "Backend Engineer", "", "5 years of Go")
	assert.NoError(t, err)
	assert.Equal(t, "Dear hiring manager,\n...", letter)
	assert.Contains(t, gen.lastPrompt, "Backend Engineer")
	assert.Contains(t, gen.lastPrompt, "the company") // empty company falls back

	_, err = uc.CoverLetter(context.Background(), "", "Backend Engineer", "", "")
	assertAppErrorCode(t, err, 400)
}

func TestInterviewQuestionsParsing(t *testing.T) {
	gen := &stubGenerator{out: "1. What is a goroutine?\n\n- Explain channels\n  How do you test?  \n"}
	uc := usecase.NewAssistUsecase(gen)

	questions, err := uc.InterviewQuestions(context.Background(), "Go Developer", "", 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"What is a goroutine?",
		"Explain channels",
		"How do you test?",
	}, questions)
}

func TestInterviewQuestionsCountClamped(t *testing.T) {
	gen := &stubGenerator{out: "q"}
	uc := usecase.NewAssistUsecase(gen)

	_, err := uc.InterviewQuestions(context.Background(), "Go Developer", "system design", 9000)
	assert.NoError(t, err)
	assert.Contains(t, gen.lastPrompt, "25") // capped

	_, err = uc.InterviewQuestions(context.Background(), "", "", 5)
	assertAppErrorCode(t, err, 400)
}

func TestExtractResumeStripsFences(t *testing.T) {
	gen := &stubGenerator{out: "```json\n{\"full_name\":\"Ada Lovelace\",\"skills\":[\"go\",\"sql\"]}\n```"}
	uc := usecase.NewAssistUsecase(gen)

	fields, err := uc.ExtractResume(context.Background(), "Ada Lovelace. Go, SQL.")
	assert.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", fields.FullName)
	assert.Equal(t, []string{"go", "sql"}, fields.Skills)
}

func TestExtractResumeUnparseable(t *testing.T) {
	gen := &stubGenerator{out: "sorry, I cannot help with that"}
	uc := usecase.NewAssistUsecase(gen)

	_, err := uc.ExtractResume(context.Background(), "some resume")
	assertAppErrorCode(t, err, 500)
}

func TestScoreResumeClampsScore(t *testing.T) {
	gen := &stubGenerator{out: `{"score":140,"strengths":["go"],"gaps":[],"summary":"strong"}`}
	uc := usecase.NewAssistUsecase(gen)

	score, err := uc.ScoreResume(context.Background(), "resume", "job description")
	assert.NoError(t, err)
	assert.Equal(t, 100, score.Score)
	assert.Equal(t, "strong", score.Summary)
}

func TestAssistGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream timeout")}
	uc := usecase.NewAssistUsecase(gen)

	_, err := uc.CoverLetter(context.Background(), "Ada", "Backend Engineer", "Acme", "")
	assertAppErrorCode(t, err, 500)
}
