package v1

import (
	"net/http"

	"skillmatch-backend/internal/delivery/http/response"
	"skillmatch-backend/internal/domain"
	"skillmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC      domain.ProfileUsecase
	resumeUC       domain.ResumeUsecase
	maxUploadBytes int64
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase, resumeUC domain.ResumeUsecase, uploadLimit gin.HandlerFunc, maxUploadBytes int64) {
	handler := &ProfileHandler{
		profileUC:      profileUC,
		resumeUC:       resumeUC,
		maxUploadBytes: maxUploadBytes,
	}

	profile := protected.Group("/profile")
	{
		profile.GET("/me", handler.GetMe)
		profile.PUT("", handler.Update)
		profile.POST("/parse-resume", uploadLimit, handler.ParseResume)
	}
}

// GetMe godoc
// @Summary      Get my profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile/me [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// Update godoc
// @Summary      Create or update my profile
// @Description  Omitted fields keep their stored value
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ProfileUpdate  true  "Profile fields"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// ParseResume godoc
// @Summary      Parse a résumé
// @Description  Stores the PDF and returns the extracted fields for review. Nothing is written to the profile.
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF résumé"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Failure      502   {object}  response.Response
// @Router       /profile/parse-resume [post]
// @Security     BearerAuth
func (h *ProfileHandler) ParseResume(c *gin.Context) {
	upload, err := readUpload(c, h.maxUploadBytes)
	if err != nil {
		c.Error(err)
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	review, err := h.resumeUC.ParseResume(c.Request.Context(), userID, upload)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume parsed", review)
}
