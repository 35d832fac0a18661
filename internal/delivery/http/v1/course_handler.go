package v1

import (
	"net/http"
	"strconv"

	"yaake-backend/internal/delivery/http/response"
	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseUC domain.CourseUsecase
}

// NewCourseHandler registers course routes. Published courses are public;
// authoring requires auth.
func NewCourseHandler(public, protected *gin.RouterGroup, courseUC domain.CourseUsecase) {
	handler := &CourseHandler{courseUC: courseUC}

	public.GET("/courses", handler.ListPublished)
	public.GET("/courses/:id", handler.GetCourse)

	courses := protected.Group("/courses")
	{
		courses.POST("", handler.CreateCourse)
		courses.GET("/mine", handler.ListMyCourses)
		courses.PATCH("/:id", handler.UpdateCourse)
		courses.DELETE("/:id", handler.DeleteCourse)
	}
}

// CoursePayload is the request payload for creating or updating a course
type CoursePayload struct {
	Title       string  `json:"title" binding:"required"`
	Summary     string  `json:"summary" binding:"required"`
	ContentURL  *string `json:"content_url,omitempty"`
	DurationMin *int    `json:"duration_min,omitempty"`
	Published   bool    `json:"published"`
}

// ListPublished godoc
// @Summary      List published courses
// @Tags         courses
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size (max 100)"
// @Success      200  {object}  response.Response{data=[]domain.Course}
// @Router       /courses [get]
func (h *CourseHandler) ListPublished(c *gin.Context) {
	page, pageSize := pageParams(c)

	courses, total, err := h.courseUC.ListPublished(c, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Courses retrieved", pagedData(courses, total, page, pageSize))
}

// GetCourse godoc
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  response.Response{data=domain.Course}
// @Failure      404  {object}  response.Response
// @Router       /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid course ID"))
		return
	}

	course, err := h.courseUC.GetCourse(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Course retrieved", course)
}

// CreateCourse godoc
// @Summary      Create a course
// @Description  Author a new interview-prep course (Recruiter only)
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body      CoursePayload  true  "Course data"
// @Success      201   {object}  response.Response{data=domain.Course}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /courses [post]
// @Security     BearerAuth
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only recruiters can author courses"))
		return
	}

	var req CoursePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	course := &domain.Course{
		Title:       req.Title,
		Summary:     req.Summary,
		ContentURL:  req.ContentURL,
		DurationMin: req.DurationMin,
		Published:   req.Published,
	}
	if err := h.courseUC.CreateCourse(c, userID, course); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Course created", course)
}

// ListMyCourses godoc
// @Summary      List my courses
// @Description  Get the caller's own courses, including drafts
// @Tags         courses
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Course}
// @Router       /courses/mine [get]
// @Security     BearerAuth
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	courses, err := h.courseUC.ListMyCourses(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Courses retrieved", courses)
}

// UpdateCourse godoc
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Course ID"
// @Param        body  body      CoursePayload  true  "Course data"
// @Success      200   {object}  response.Response{data=domain.Course}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /courses/{id} [patch]
// @Security     BearerAuth
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid course ID"))
		return
	}

	var req CoursePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	course := &domain.Course{
		ID:          id,
		Title:       req.Title,
		Summary:     req.Summary,
		ContentURL:  req.ContentURL,
		DurationMin: req.DurationMin,
		Published:   req.Published,
	}
	if err := h.courseUC.UpdateCourse(c, userID, course); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Course updated", course)
}

// DeleteCourse godoc
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Param        id   path      int  true  "Course ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /courses/{id} [delete]
// @Security     BearerAuth
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid course ID"))
		return
	}

	if err := h.courseUC.DeleteCourse(c, userID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Course deleted", nil)
}
