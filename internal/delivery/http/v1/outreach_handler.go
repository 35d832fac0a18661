package v1

import (
	"net/http"
	"strconv"

	"yaake-backend/internal/delivery/http/response"
	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OutreachHandler struct {
	outreachUC domain.OutreachUsecase
}

// NewOutreachHandler registers outreach email routes (Recruiter only)
func NewOutreachHandler(r *gin.RouterGroup, outreachUC domain.OutreachUsecase) {
	handler := &OutreachHandler{outreachUC: outreachUC}

	outreach := r.Group("/outreach")
	outreach.Use(requireRecruiter())
	{
		outreach.POST("/draft", handler.DraftEmail)
		outreach.GET("", handler.ListMyEmails)
		outreach.GET("/:id", handler.GetEmail)
		outreach.PATCH("/:id", handler.UpdateEmail)
		outreach.POST("/:id/send", handler.SendEmail)
		outreach.DELETE("/:id", handler.DeleteEmail)
	}
}

// DraftEmailRequest is the request payload for drafting an outreach email
type DraftEmailRequest struct {
	ApplicantID string `json:"applicant_id" binding:"required"`
	JobTitle    string `json:"job_title" binding:"required"`
	Notes       string `json:"notes"`
}

// UpdateEmailRequest is the request payload for editing a draft
type UpdateEmailRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// DraftEmail godoc
// @Summary      Draft an outreach email
// @Description  Generate a personalized outreach draft for an applicant via AI (Recruiter only)
// @Tags         outreach
// @Accept       json
// @Produce      json
// @Param        body  body      DraftEmailRequest  true  "Draft parameters"
// @Success      201   {object}  response.Response{data=domain.OutreachEmail}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /outreach/draft [post]
// @Security     BearerAuth
func (h *OutreachHandler) DraftEmail(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req DraftEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	email, err := h.outreachUC.Draft(c, userID, req.ApplicantID, req.JobTitle, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Draft created", email)
}

// ListMyEmails godoc
// @Summary      List my outreach emails
// @Tags         outreach
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.OutreachEmail}
// @Router       /outreach [get]
// @Security     BearerAuth
func (h *OutreachHandler) ListMyEmails(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	emails, err := h.outreachUC.ListMyEmails(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Emails retrieved", emails)
}

// GetEmail godoc
// @Summary      Get an outreach email
// @Tags         outreach
// @Produce      json
// @Param        id   path      int  true  "Email ID"
// @Success      200  {object}  response.Response{data=domain.OutreachEmail}
// @Failure      404  {object}  response.Response
// @Router       /outreach/{id} [get]
// @Security     BearerAuth
func (h *OutreachHandler) GetEmail(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid email ID"))
		return
	}

	email, err := h.outreachUC.GetEmail(c, userID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Email retrieved", email)
}

// UpdateEmail godoc
// @Summary      Edit an outreach draft
// @Description  Edit the subject or body before sending. Sent emails are immutable.
// @Tags         outreach
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Email ID"
// @Param        body  body      UpdateEmailRequest  true  "Fields to update"
// @Success      200   {object}  response.Response{data=domain.OutreachEmail}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /outreach/{id} [patch]
// @Security     BearerAuth
func (h *OutreachHandler) UpdateEmail(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid email ID"))
		return
	}

	var req UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	email := &domain.OutreachEmail{
		ID:      id,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := h.outreachUC.UpdateEmail(c, userID, email); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Email updated", email)
}

// SendEmail godoc
// @Summary      Send an outreach email
// @Description  Deliver a draft to the applicant. Delivery runs fire-and-forget; a failed send is recorded on the record.
// @Tags         outreach
// @Produce      json
// @Param        id   path      int  true  "Email ID"
// @Success      200  {object}  response.Response{data=domain.OutreachEmail}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /outreach/{id}/send [post]
// @Security     BearerAuth
func (h *OutreachHandler) SendEmail(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid email ID"))
		return
	}

	email, err := h.outreachUC.Send(c, userID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Email queued for delivery", email)
}

// DeleteEmail godoc
// @Summary      Delete an outreach email
// @Tags         outreach
// @Produce      json
// @Param        id   path      int  true  "Email ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /outreach/{id} [delete]
// @Security     BearerAuth
func (h *OutreachHandler) DeleteEmail(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid email ID"))
		return
	}

	if err := h.outreachUC.DeleteEmail(c, userID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Email deleted", nil)
}
