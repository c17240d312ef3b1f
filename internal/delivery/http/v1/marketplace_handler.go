package v1

import (
	"net/http"

	"skillmatch-backend/internal/delivery/http/middleware"
	"skillmatch-backend/internal/delivery/http/response"
	"skillmatch-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type MarketplaceHandler struct {
	marketplaceUC domain.MarketplaceUsecase
}

func NewMarketplaceHandler(public, optional, protected *gin.RouterGroup, marketplaceUC domain.MarketplaceUsecase) {
	handler := &MarketplaceHandler{
		marketplaceUC: marketplaceUC,
	}

	optional.GET("/marketplace/jobs", handler.ListJobs)
	public.GET("/marketplace/jobs/:id", handler.GetJob)

	market := protected.Group("/marketplace")
	{
		market.POST("/jobs/:id/save", handler.SaveJob)
		market.DELETE("/jobs/:id/save", handler.UnsaveJob)
		market.GET("/saved/me", handler.ListSaved)
		market.POST("/jobs/:id/apply", handler.Apply)
		market.GET("/applications/me", handler.MyApplications)
	}
}

// marketplaceQuery keeps page and limit raw so the usecase can coerce them
func marketplaceQuery(c *gin.Context) domain.MarketplaceQuery {
	q := domain.MarketplaceQuery{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		Level:    c.Query("level"),
		Skill:    c.Query("skill"),
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
	}
	if remote, ok := c.GetQuery("remote"); ok {
		q.Remote = &remote
	}
	return q
}

// ListJobs godoc
// @Summary      Browse marketplace jobs
// @Description  Search open postings. Authenticated callers with profile skills get a match_score per job.
// @Tags         marketplace
// @Produce      json
// @Param        search    query     string  false  "Matches title, description or company name"
// @Param        location  query     string  false  "Location substring"
// @Param        remote    query     bool    false  "Remote only"
// @Param        level     query     string  false  "JUNIOR, MID or SENIOR"
// @Param        skill     query     string  false  "Required skill"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Router       /marketplace/jobs [get]
func (h *MarketplaceHandler) ListJobs(c *gin.Context) {
	page, err := h.marketplaceUC.ListJobs(c.Request.Context(), middleware.UserID(c), marketplaceQuery(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Marketplace jobs", page)
}

// GetJob godoc
// @Summary      Get marketplace job
// @Description  Get a posting with its company
// @Tags         marketplace
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /marketplace/jobs/{id} [get]
func (h *MarketplaceHandler) GetJob(c *gin.Context) {
	job, err := h.marketplaceUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// SaveJob godoc
// @Summary      Save a job
// @Description  Bookmark a posting. Saving twice returns the existing bookmark.
// @Tags         marketplace
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /marketplace/jobs/{id}/save [post]
// @Security     BearerAuth
func (h *MarketplaceHandler) SaveJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	saved, err := h.marketplaceUC.SaveJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job saved", saved)
}

// UnsaveJob godoc
// @Summary      Remove a saved job
// @Tags         marketplace
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Router       /marketplace/jobs/{id}/save [delete]
// @Security     BearerAuth
func (h *MarketplaceHandler) UnsaveJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.marketplaceUC.UnsaveJob(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job removed from saved", nil)
}

// ListSaved godoc
// @Summary      List saved jobs
// @Tags         marketplace
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /marketplace/saved/me [get]
// @Security     BearerAuth
func (h *MarketplaceHandler) ListSaved(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	saved, err := h.marketplaceUC.ListSavedJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved jobs", saved)
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Records the application and adds the job to the caller's pipeline as APPLIED
// @Tags         marketplace
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /marketplace/jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *MarketplaceHandler) Apply(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	app, err := h.marketplaceUC.ApplyToJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// MyApplications godoc
// @Summary      List my applications
// @Tags         marketplace
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /marketplace/applications/me [get]
// @Security     BearerAuth
func (h *MarketplaceHandler) MyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	apps, err := h.marketplaceUC.GetMyApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "My applications", apps)
}
