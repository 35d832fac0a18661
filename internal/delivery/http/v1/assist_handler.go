package v1

import (
	"net/http"

	"yaake-backend/internal/delivery/http/response"
	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AssistHandler struct {
	assistUC domain.AssistUsecase
}

// NewAssistHandler registers the AI assist routes
func NewAssistHandler(r *gin.RouterGroup, assistUC domain.AssistUsecase) {
	handler := &AssistHandler{assistUC: assistUC}

	assist := r.Group("/assist")
	{
		assist.POST("/cover-letter", handler.CoverLetter)
		assist.POST("/interview-questions", handler.InterviewQuestions)
		assist.POST("/resume/extract", handler.ExtractResume)
		assist.POST("/resume/score", handler.ScoreResume)
	}
}

// CoverLetterRequest is the request payload for drafting a cover letter
type CoverLetterRequest struct {
	ApplicantName string `json:"applicant_name" binding:"required"`
	JobTitle      string `json:"job_title" binding:"required"`
	Company       string `json:"company"`
	Background    string `json:"background"`
}

// InterviewQuestionsRequest is the request payload for ad-hoc question generation
type InterviewQuestionsRequest struct {
	JobTitle string `json:"job_title" binding:"required"`
	Focus    string `json:"focus"`
	Count    int    `json:"count"`
}

// ResumeTextRequest carries free-text resume content
type ResumeTextRequest struct {
	ResumeText string `json:"resume_text" binding:"required"`
}

// ScoreResumeRequest is the request payload for ATS scoring
type ScoreResumeRequest struct {
	ResumeText     string `json:"resume_text" binding:"required"`
	JobDescription string `json:"job_description" binding:"required"`
}

// CoverLetter godoc
// @Summary      Draft a cover letter
// @Description  Generate a cover letter draft for a role
// @Tags         assist
// @Accept       json
// @Produce      json
// @Param        body  body      CoverLetterRequest  true  "Cover letter parameters"
// @Success      200   {object}  response.Response{data=string}
// @Failure      400   {object}  response.Response
// @Router       /assist/cover-letter [post]
// @Security     BearerAuth
func (h *AssistHandler) CoverLetter(c *gin.Context) {
	var req CoverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	letter, err := h.assistUC.CoverLetter(c, req.ApplicantName, req.JobTitle, req.Company, req.Background)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Cover letter generated", gin.H{"cover_letter": letter})
}

// InterviewQuestions godoc
// @Summary      Generate interview questions
// @Description  Generate questions without persisting them; use question-sets to keep a copy
// @Tags         assist
// @Accept       json
// @Produce      json
// @Param        body  body      InterviewQuestionsRequest  true  "Generation parameters"
// @Success      200   {object}  response.Response{data=[]string}
// @Failure      400   {object}  response.Response
// @Router       /assist/interview-questions [post]
// @Security     BearerAuth
func (h *AssistHandler) InterviewQuestions(c *gin.Context) {
	var req InterviewQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	questions, err := h.assistUC.InterviewQuestions(c, req.JobTitle, req.Focus, req.Count)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Questions generated", gin.H{"questions": questions})
}

// ExtractResume godoc
// @Summary      Extract resume fields
// @Description  Extract structured fields from free-text resume content
// @Tags         assist
// @Accept       json
// @Produce      json
// @Param        body  body      ResumeTextRequest  true  "Resume text"
// @Success      200   {object}  response.Response{data=domain.ResumeFields}
// @Failure      400   {object}  response.Response
// @Router       /assist/resume/extract [post]
// @Security     BearerAuth
func (h *AssistHandler) ExtractResume(c *gin.Context) {
	var req ResumeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	fields, err := h.assistUC.ExtractResume(c, req.ResumeText)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume extracted", fields)
}

// ScoreResume godoc
// @Summary      Score a resume against a job
// @Description  Produce a 0-100 fit score with strengths and gaps
// @Tags         assist
// @Accept       json
// @Produce      json
// @Param        body  body      ScoreResumeRequest  true  "Scoring input"
// @Success      200   {object}  response.Response{data=domain.ATSScore}
// @Failure      400   {object}  response.Response
// @Router       /assist/resume/score [post]
// @Security     BearerAuth
func (h *AssistHandler) ScoreResume(c *gin.Context) {
	var req ScoreResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	score, err := h.assistUC.ScoreResume(c, req.ResumeText, req.JobDescription)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume scored", score)
}
