package v1

import (
	"net/http"

	"skillmatch-backend/internal/delivery/http/response"
	"skillmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC       domain.ResumeUsecase
	maxUploadBytes int64
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase, uploadLimit gin.HandlerFunc, maxUploadBytes int64) {
	handler := &ResumeHandler{
		resumeUC:       resumeUC,
		maxUploadBytes: maxUploadBytes,
	}

	resumes := protected.Group("/resumes")
	{
		resumes.POST("/upload", uploadLimit, handler.Upload)
		resumes.GET("", handler.List)
	}
}

// Upload godoc
// @Summary      Upload a résumé
// @Description  Stores the PDF without parsing it
// @Tags         resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF résumé"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /resumes/upload [post]
// @Security     BearerAuth
func (h *ResumeHandler) Upload(c *gin.Context) {
	upload, err := readUpload(c, h.maxUploadBytes)
	if err != nil {
		c.Error(err)
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	resume, err := h.resumeUC.UploadResume(c.Request.Context(), userID, upload)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Resume uploaded", resume)
}

// List godoc
// @Summary      List my résumés
// @Tags         resumes
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /resumes [get]
// @Security     BearerAuth
func (h *ResumeHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	resumes, err := h.resumeUC.ListResumes(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume list", resumes)
}
