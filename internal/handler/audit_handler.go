package handler

import (
	"net/http"

	"laundrybill/internal/service"
	"laundrybill/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/audit-logs")
	{
		group.GET("", h.GetAuditLogs)
	}
}

// GetAuditLogs returns the change history, newest first
// @Summary      Get audit logs
// @Description  Paginated history of bill, catalog, shop and password changes
// @Tags         audit
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20, max 100)"
// @Success      200    {object}  map[string]interface{}
// @Failure      500    {object}  response.Response
// @Router       /api/audit-logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	page := pagination.Parse(c)

	logs, total, err := h.auditService.GetAuditLogs(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": total,
		"page":  page.Page,
		"limit": page.Limit,
	})
}
