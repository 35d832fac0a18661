package v1

import (
	"net/http"
	"strconv"

	"yaake-backend/internal/delivery/http/response"
	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobPostUsecase
}

// NewJobHandler registers job post routes. Browsing open jobs is public;
// everything else requires auth.
func NewJobHandler(public, protected *gin.RouterGroup, jobUC domain.JobPostUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	public.GET("/jobs", handler.ListOpenJobs)
	public.GET("/jobs/:id", handler.GetJob)

	jobs := protected.Group("/jobs")
	{
		jobs.POST("", handler.CreateJob)
		jobs.GET("/mine", handler.ListMyJobs)
		jobs.PATCH("/:id", handler.UpdateJob)
		jobs.DELETE("/:id", handler.DeleteJob)
	}
}

// JobPayload is the request payload for creating or updating a job post
type JobPayload struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Location       *string  `json:"location,omitempty"`
	SalaryMin      *float64 `json:"salary_min,omitempty"`
	SalaryMax      *float64 `json:"salary_max,omitempty"`
	EmploymentType *string  `json:"employment_type,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Status         string   `json:"status,omitempty"`
}

// pageParams reads page and page_size query parameters
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}

// pagedData wraps a list with pagination metadata
func pagedData(items interface{}, total int64, page, pageSize int) gin.H {
	return gin.H{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	}
}

// ListOpenJobs godoc
// @Summary      List open jobs
// @Description  Get open job posts, newest first
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size (max 100)"
// @Success      200  {object}  response.Response{data=[]domain.JobPost}
// @Router       /jobs [get]
func (h *JobHandler) ListOpenJobs(c *gin.Context) {
	page, pageSize := pageParams(c)

	jobs, total, err := h.jobUC.ListOpenJobs(c, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", pagedData(jobs, total, page, pageSize))
}

// GetJob godoc
// @Summary      Get a job post
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobPost}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	job, err := h.jobUC.GetJob(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// CreateJob godoc
// @Summary      Create a job post
// @Description  Publish a new job post (Recruiter only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      JobPayload  true  "Job data"
// @Success      201   {object}  response.Response{data=domain.JobPost}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only recruiters can create job posts"))
		return
	}

	var req JobPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := &domain.JobPost{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		EmploymentType: req.EmploymentType,
		Skills:         req.Skills,
		Status:         req.Status,
	}
	if err := h.jobUC.CreateJob(c, userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// ListMyJobs godoc
// @Summary      List my job posts
// @Description  Get the caller's own job posts, including closed ones
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size (max 100)"
// @Success      200  {object}  response.Response{data=[]domain.JobPost}
// @Router       /jobs/mine [get]
// @Security     BearerAuth
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, pageSize := pageParams(c)

	jobs, total, err := h.jobUC.ListMyJobs(c, userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", pagedData(jobs, total, page, pageSize))
}

// UpdateJob godoc
// @Summary      Update a job post
// @Description  Update a job post's fields or status (owning recruiter only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int         true  "Job ID"
// @Param        body  body      JobPayload  true  "Job data"
// @Success      200   {object}  response.Response{data=domain.JobPost}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	var req JobPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := &domain.JobPost{
		ID:             id,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		EmploymentType: req.EmploymentType,
		Skills:         req.Skills,
		Status:         req.Status,
	}
	if err := h.jobUC.UpdateJob(c, userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job post
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	if err := h.jobUC.DeleteJob(c, userID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted", nil)
}
