package v1

import (
	"net/http"
	"strconv"

	"yaake-backend/internal/delivery/http/response"
	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionUC domain.QuestionSetUsecase
}

// NewQuestionHandler registers question set routes (Recruiter only)
func NewQuestionHandler(r *gin.RouterGroup, questionUC domain.QuestionSetUsecase) {
	handler := &QuestionHandler{questionUC: questionUC}

	sets := r.Group("/question-sets")
	sets.Use(requireRecruiter())
	{
		sets.POST("/generate", handler.GenerateSet)
		sets.GET("", handler.ListMySets)
		sets.GET("/:id", handler.GetSet)
		sets.PATCH("/:id", handler.UpdateSet)
		sets.DELETE("/:id", handler.DeleteSet)
	}
}

// requireRecruiter rejects callers without the recruiter or admin role
func requireRecruiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		if role != domain.RoleRecruiter && role != domain.RoleAdmin {
			c.Error(apperror.Forbidden("Recruiter role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GenerateSetRequest is the request payload for generating interview questions
type GenerateSetRequest struct {
	JobTitle string `json:"job_title" binding:"required"`
	Focus    string `json:"focus"`
	Count    int    `json:"count"`
}

// UpdateSetRequest is the request payload for editing a question set
type UpdateSetRequest struct {
	Title     string   `json:"title"`
	JobTitle  string   `json:"job_title"`
	Focus     *string  `json:"focus,omitempty"`
	Questions []string `json:"questions"`
}

// GenerateSet godoc
// @Summary      Generate interview questions
// @Description  Draft a question set for a role via AI and persist it (Recruiter only)
// @Tags         question-sets
// @Accept       json
// @Produce      json
// @Param        body  body      GenerateSetRequest  true  "Generation parameters"
// @Success      201   {object}  response.Response{data=domain.QuestionSet}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /question-sets/generate [post]
// @Security     BearerAuth
func (h *QuestionHandler) GenerateSet(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req GenerateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	qs, err := h.questionUC.Generate(c, userID, req.JobTitle, req.Focus, req.Count)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Question set generated", qs)
}

// ListMySets godoc
// @Summary      List my question sets
// @Tags         question-sets
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.QuestionSet}
// @Router       /question-sets [get]
// @Security     BearerAuth
func (h *QuestionHandler) ListMySets(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	sets, err := h.questionUC.ListMySets(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question sets retrieved", sets)
}

// GetSet godoc
// @Summary      Get a question set
// @Tags         question-sets
// @Produce      json
// @Param        id   path      int  true  "Question set ID"
// @Success      200  {object}  response.Response{data=domain.QuestionSet}
// @Failure      404  {object}  response.Response
// @Router       /question-sets/{id} [get]
// @Security     BearerAuth
func (h *QuestionHandler) GetSet(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid question set ID"))
		return
	}

	qs, err := h.questionUC.GetSet(c, userID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question set retrieved", qs)
}

// UpdateSet godoc
// @Summary      Update a question set
// @Description  Edit the title or curate the generated questions
// @Tags         question-sets
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Question set ID"
// @Param        body  body      UpdateSetRequest  true  "Fields to update"
// @Success      200   {object}  response.Response{data=domain.QuestionSet}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /question-sets/{id} [patch]
// @Security     BearerAuth
func (h *QuestionHandler) UpdateSet(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid question set ID"))
		return
	}

	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	qs := &domain.QuestionSet{
		ID:        id,
		Title:     req.Title,
		JobTitle:  req.JobTitle,
		Focus:     req.Focus,
		Questions: req.Questions,
	}
	if err := h.questionUC.UpdateSet(c, userID, qs); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question set updated", qs)
}

// DeleteSet godoc
// @Summary      Delete a question set
// @Tags         question-sets
// @Produce      json
// @Param        id   path      int  true  "Question set ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /question-sets/{id} [delete]
// @Security     BearerAuth
func (h *QuestionHandler) DeleteSet(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid question set ID"))
		return
	}

	if err := h.questionUC.DeleteSet(c, userID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question set deleted", nil)
}
