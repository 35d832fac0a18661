package v1

import (
	"net/http"

	"yaake-backend/internal/delivery/http/response"
	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers auth and profile routes
func NewAuthHandler(r *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := r.Group("/auth")
	{
		auth.GET("/me", handler.GetMe)
		auth.PATCH("/me", handler.UpdateMe)
	}

	r.GET("/applicants", handler.ListApplicants)
}

// GetMe godoc
// @Summary      Get current user
// @Description  Get the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", user)
}

// UpdateMe godoc
// @Summary      Update current user
// @Description  Update the authenticated user's own profile fields
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.UserProfileUpdate  true  "Fields to update"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /auth/me [patch]
// @Security     BearerAuth
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var upd domain.UserProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.authUC.UpdateProfile(c, userID, upd)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", user)
}

// ListApplicants godoc
// @Summary      List applicants
// @Description  Get every applicant account, for composing invitations and outreach (Recruiter only)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.User}
// @Failure      403  {object}  response.Response
// @Router       /applicants [get]
// @Security     BearerAuth
func (h *AuthHandler) ListApplicants(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))

	applicants, err := h.authUC.ListApplicants(c, role)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applicants retrieved", applicants)
}
