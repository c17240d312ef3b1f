package v1

import (
	"net/http"
	"strings"
	"time"

	"skillmatch-backend/internal/delivery/http/response"
	"skillmatch-backend/internal/domain"
	"skillmatch-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PipelineHandler struct {
	pipelineUC domain.PipelineUsecase
}

func NewPipelineHandler(protected *gin.RouterGroup, pipelineUC domain.PipelineUsecase) {
	handler := &PipelineHandler{
		pipelineUC: pipelineUC,
	}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.POST("", handler.Create)
		jobs.GET("/board", handler.Board)
		jobs.GET("/:id", handler.Get)
		jobs.PATCH("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
	}
}

type CreatePipelineJobRequest struct {
	Company         string     `json:"company" binding:"required,max=200"`
	Title           string     `json:"title" binding:"required,max=200"`
	Stage           string     `json:"stage" binding:"omitempty"`
	URL             *string    `json:"url" binding:"omitempty,url,max=2048"`
	Deadline        *time.Time `json:"deadline"`
	Notes           *string    `json:"notes" binding:"omitempty,max=5000"`
	DescriptionText *string    `json:"description_text" binding:"omitempty,max=20000"`
}

type UpdatePipelineJobRequest struct {
	Company         *string    `json:"company" binding:"omitempty,max=200"`
	Title           *string    `json:"title" binding:"omitempty,max=200"`
	Stage           *string    `json:"stage"`
	URL             *string    `json:"url" binding:"omitempty,url,max=2048"`
	Deadline        *time.Time `json:"deadline"`
	Notes           *string    `json:"notes" binding:"omitempty,max=5000"`
	DescriptionText *string    `json:"description_text" binding:"omitempty,max=20000"`
}

func normalizeStage(s string) domain.Stage {
	return domain.Stage(strings.ToUpper(strings.TrimSpace(s)))
}

// Create godoc
// @Summary      Track a job
// @Description  Add a job to the caller's pipeline. Stage defaults to SAVED.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreatePipelineJobRequest  true  "Job Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *PipelineHandler) Create(c *gin.Context) {
	var req CreatePipelineJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	job := &domain.PipelineJob{
		Company:         req.Company,
		Title:           req.Title,
		Stage:           normalizeStage(req.Stage),
		URL:             req.URL,
		Deadline:        req.Deadline,
		Notes:           req.Notes,
		DescriptionText: req.DescriptionText,
	}

	if err := h.pipelineUC.CreateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// List godoc
// @Summary      List tracked jobs
// @Tags         jobs
// @Produce      json
// @Param        stage  query     string  false  "Filter by stage"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *PipelineHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobs, err := h.pipelineUC.ListJobs(c.Request.Context(), userID, c.Query("stage"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", jobs)
}

// Board godoc
// @Summary      Pipeline board
// @Description  Tracked jobs grouped into one column per stage
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs/board [get]
// @Security     BearerAuth
func (h *PipelineHandler) Board(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	board, err := h.pipelineUC.Board(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Pipeline board", board)
}

// Get godoc
// @Summary      Get tracked job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *PipelineHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	job, err := h.pipelineUC.GetJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// Update godoc
// @Summary      Update tracked job
// @Description  Partial update; omitted fields are unchanged
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string                    true  "Job ID"
// @Param        job  body      UpdatePipelineJobRequest  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [patch]
// @Security     BearerAuth
func (h *PipelineHandler) Update(c *gin.Context) {
	var req UpdatePipelineJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	patch := domain.PipelineJobPatch{
		Company:         req.Company,
		Title:           req.Title,
		URL:             req.URL,
		Deadline:        req.Deadline,
		Notes:           req.Notes,
		DescriptionText: req.DescriptionText,
	}
	if req.Stage != nil {
		stage := normalizeStage(*req.Stage)
		patch.Stage = &stage
	}

	userID := c.GetString(string(domain.KeyUserID))

	job, err := h.pipelineUC.UpdateJob(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete tracked job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *PipelineHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.pipelineUC.DeleteJob(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted", nil)
}
