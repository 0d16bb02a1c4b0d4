package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Krushna-ai/GDVG/internal/domains/content/model"
	"github.com/Krushna-ai/GDVG/internal/domains/content/service"
	"github.com/Krushna-ai/GDVG/internal/shared/middleware"
	"github.com/Krushna-ai/GDVG/internal/shared/response"
)

type ContentHandler struct {
	service service.ServiceInterface
}

func NewContentHandler(svc service.ServiceInterface) *ContentHandler {
	return &ContentHandler{service: svc}
}

// List handles GET /api/content and GET /api/content/search.
func (h *ContentHandler) List(c *gin.Context) {
	var req model.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), req, middleware.ViewerFrom(c).Scope())
	if model.HandleContentError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp.Items, response.NewMeta(resp.Page, resp.Limit, resp.Total))
}

// Featured handles GET /api/content/featured?category=...&limit=...
func (h *ContentHandler) Featured(c *gin.Context) {
	var req model.FeaturedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	h.featured(c, req)
}

// Trending handles the legacy GET /api/trending alias.
func (h *ContentHandler) Trending(c *gin.Context) {
	var req model.FeaturedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	req.Category = string(model.FeaturedTrending)
	h.featured(c, req)
}

func (h *ContentHandler) featured(c *gin.Context, req model.FeaturedRequest) {
	items, err := h.service.Featured(c.Request.Context(), req)
	if model.HandleContentError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetBySegment handles GET /api/content/:segment. The segment may be a
// public ID, a UUID, a legacy slug with an embedded or short ID, or a title.
func (h *ContentHandler) GetBySegment(c *gin.Context) {
	resp, err := h.service.GetBySegment(c.Request.Context(), c.Param("segment"), middleware.ViewerFrom(c).Scope())
	if model.HandleContentError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *ContentHandler) Countries(c *gin.Context) {
	countries, err := h.service.Countries(c.Request.Context())
	if model.HandleContentError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, countries)
}

func (h *ContentHandler) Genres(c *gin.Context) {
	response.Success(c, http.StatusOK, model.Genres)
}

func (h *ContentHandler) ContentTypes(c *gin.Context) {
	response.Success(c, http.StatusOK, model.ContentTypes)
}

// Create handles POST /api/admin/content.
func (h *ContentHandler) Create(c *gin.Context) {
	var req model.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid JSON body")
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if model.HandleContentError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// Update handles PUT /api/admin/content/:id.
func (h *ContentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		model.HandleContentError(c, model.ErrInvalidID)
		return
	}

	var req model.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid JSON body")
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if model.HandleContentError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, resp)
}
