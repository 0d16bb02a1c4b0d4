package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Krushna-ai/GDVG/internal/domains/admin/model"
	"github.com/Krushna-ai/GDVG/internal/domains/admin/service"
	"github.com/Krushna-ai/GDVG/internal/shared/response"
)

type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(svc service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: svc}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid JSON body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if model.HandleAdminError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Diagnostics handles GET /api/admin/diagnostics.
func (h *AdminHandler) Diagnostics(c *gin.Context) {
	d, err := h.service.Diagnostics(c.Request.Context())
	if model.HandleAdminError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, d)
}
