package v1

import (
	"net/http"

	"yaake-backend/internal/delivery/http/response"
	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

// NewInterviewHandler registers interview scheduling routes
func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := r.Group("/interviews")
	{
		interviews.POST("", handler.CreateInterview)
		interviews.GET("", handler.ListMyInterviews)
		interviews.GET("/:id", handler.GetInterview)
		interviews.PATCH("/:id", handler.UpdateInterview)
		interviews.POST("/:id/respond", handler.Respond)
		interviews.POST("/:id/cancel", handler.CancelInterview)
	}
}

// SlotPayload is a single proposed time slot
type SlotPayload struct {
	Start string `json:"start" binding:"required" example:"2025-01-10T09:00:00Z"`
	End   string `json:"end" binding:"required" example:"2025-01-10T09:30:00Z"`
}

// CreateInterviewRequest is the request payload for creating an interview request
type CreateInterviewRequest struct {
	ApplicantIDs  []string      `json:"applicant_ids" binding:"required,min=1"`
	Title         string        `json:"title" binding:"required"`
	Description   string        `json:"description"`
	Location      string        `json:"location"`
	MeetingLink   string        `json:"meeting_link"`
	ProposedSlots []SlotPayload `json:"proposed_slots" binding:"required,min=1,dive"`
}

// RespondRequest is the request payload for an applicant's decision
type RespondRequest struct {
	Decision     string       `json:"decision" binding:"required,oneof=accepted rejected change_requested"`
	SelectedSlot *SlotPayload `json:"selected_slot,omitempty"`
	Message      string       `json:"message"`
}

// UpdateInterviewRequest is the recruiter-side partial update payload
type UpdateInterviewRequest struct {
	Title         *string       `json:"title,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Location      *string       `json:"location,omitempty"`
	MeetingLink   *string       `json:"meeting_link,omitempty"`
	ProposedSlots []SlotPayload `json:"proposed_slots,omitempty"`
	Status        *string       `json:"status,omitempty"`
}

// optionalField maps an empty form value to nil so the aggregate stores
// "not provided" rather than an empty string.
func optionalField(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseSlots converts payload slots into domain time ranges, rejecting
// timestamps that do not parse as RFC3339.
func parseSlots(payload []SlotPayload) ([]domain.TimeRange, error) {
	if payload == nil {
		return nil, nil
	}
	slots := make([]domain.TimeRange, 0, len(payload))
	for _, p := range payload {
		tr, err := domain.ParseTimeRange(p.Start, p.End)
		if err != nil {
			return nil, apperror.BadRequest("Invalid slot timestamp, expected RFC3339")
		}
		slots = append(slots, tr)
	}
	return slots, nil
}

// CreateInterview godoc
// @Summary      Create an interview request
// @Description  Propose one or more time slots to a set of applicants (Recruiter only)
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        body  body      CreateInterviewRequest  true  "Interview request data"
// @Success      201   {object}  response.Response{data=domain.InterviewRequest}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	// 1. Get user from context
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	// Only recruiters can schedule interviews
	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only recruiters can create interview requests"))
		return
	}

	// 2. Bind request
	var req CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	slots, err := parseSlots(req.ProposedSlots)
	if err != nil {
		c.Error(err)
		return
	}

	// 3. Create
	iv := &domain.InterviewRequest{
		ApplicantIDs:  req.ApplicantIDs,
		Title:         req.Title,
		Description:   optionalField(req.Description),
		Location:      optionalField(req.Location),
		MeetingLink:   optionalField(req.MeetingLink),
		ProposedSlots: slots,
	}
	created, err := h.interviewUC.Create(c, userID, iv)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview request created", created)
}

// ListMyInterviews godoc
// @Summary      List my interviews
// @Description  Get every interview request where the caller is recruiter or applicant
// @Tags         interviews
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.InterviewRequest}
// @Failure      401  {object}  response.Response
// @Router       /interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListMyInterviews(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	interviews, err := h.interviewUC.ListMine(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interviews retrieved", interviews)
}

// GetInterview godoc
// @Summary      Get an interview request
// @Description  Get one interview request by ID (participants only)
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response{data=domain.InterviewRequest}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) GetInterview(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	iv, err := h.interviewUC.Get(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview retrieved", iv)
}

// UpdateInterview godoc
// @Summary      Update an interview request
// @Description  Edit details, replace proposed slots while still unanswered, or mark completed (owning recruiter only)
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Interview ID"
// @Param        body  body      UpdateInterviewRequest  true  "Fields to update"
// @Success      200   {object}  response.Response{data=domain.InterviewRequest}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /interviews/{id} [patch]
// @Security     BearerAuth
func (h *InterviewHandler) UpdateInterview(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req UpdateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	slots, err := parseSlots(req.ProposedSlots)
	if err != nil {
		c.Error(err)
		return
	}

	upd := domain.InterviewUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		MeetingLink:   req.MeetingLink,
		ProposedSlots: slots,
		Status:        req.Status,
	}
	iv, err := h.interviewUC.Update(c, userID, c.Param("id"), upd)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview updated", iv)
}

// Respond godoc
// @Summary      Respond to an interview request
// @Description  Accept a proposed slot, reject, or request different times (invited applicant only)
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Interview ID"
// @Param        body  body      RespondRequest  true  "Decision"
// @Success      200   {object}  response.Response{data=domain.InterviewRequest}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /interviews/{id}/respond [post]
// @Security     BearerAuth
func (h *InterviewHandler) Respond(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	var selected *domain.TimeRange
	if req.SelectedSlot != nil {
		tr, err := domain.ParseTimeRange(req.SelectedSlot.Start, req.SelectedSlot.End)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid slot timestamp, expected RFC3339"))
			return
		}
		selected = &tr
	}

	iv, err := h.interviewUC.Respond(c, userID, c.Param("id"), req.Decision, selected, req.Message)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Response recorded", iv)
}

// CancelInterview godoc
// @Summary      Cancel an interview request
// @Description  Cancel at any stage; cancelling an already-cancelled request is a no-op (owning recruiter only)
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response{data=domain.InterviewRequest}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id}/cancel [post]
// @Security     BearerAuth
func (h *InterviewHandler) CancelInterview(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	iv, err := h.interviewUC.Cancel(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview cancelled", iv)
}
