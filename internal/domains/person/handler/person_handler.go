package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Krushna-ai/GDVG/internal/domains/person/model"
	"github.com/Krushna-ai/GDVG/internal/domains/person/service"
	"github.com/Krushna-ai/GDVG/internal/shared/middleware"
	"github.com/Krushna-ai/GDVG/internal/shared/response"
)

type PersonHandler struct {
	service service.ServiceInterface
}

func NewPersonHandler(svc service.ServiceInterface) *PersonHandler {
	return &PersonHandler{service: svc}
}

// List handles GET /api/people.
func (h *PersonHandler) List(c *gin.Context) {
	var req model.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	resp, err := h.service.List(c.Request.Context(), req, middleware.ViewerFrom(c).Scope())
	if model.HandlePersonError(c, err) {
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, resp.Items, response.NewMeta(resp.Page, resp.Limit, resp.Total))
}

// GetBySegment handles GET /api/people/:segment.
func (h *PersonHandler) GetBySegment(c *gin.Context) {
	resp, err := h.service.GetBySegment(c.Request.Context(), c.Param("segment"), middleware.ViewerFrom(c).Scope())
	if model.HandlePersonError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, resp)
}
