package handler

import (
	"net/http"

	"laundrybill/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("/dashboard", h.GetDashboard)
		reports.GET("/financial", h.GetFinancial)
		reports.GET("/operational", h.GetOperational)
		reports.GET("/overdue", h.GetOverdue)
		reports.GET("/monthly-sales", h.GetMonthlySales)
	}
}

// GetDashboard returns today's sales, pending deliveries and the top items
// @Summary      Dashboard summary
// @Tags         reports
// @Produce      json
// @Success      200  {object}  model.DashboardSummary
// @Failure      500  {object}  response.Response
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	summary, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetFinancial returns the latest bills
// @Summary      Financial report
// @Description  The 100 most recent bills by bill date
// @Tags         reports
// @Produce      json
// @Success      200  {array}   model.Bill
// @Failure      500  {object}  response.Response
// @Router       /api/reports/financial [get]
func (h *ReportHandler) GetFinancial(c *gin.Context) {
	bills, err := h.reportService.Financial(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// GetOperational returns unpaid bills due now or earlier
// @Summary      Operational report
// @Tags         reports
// @Produce      json
// @Success      200  {array}   model.Bill
// @Failure      500  {object}  response.Response
// @Router       /api/reports/operational [get]
func (h *ReportHandler) GetOperational(c *gin.Context) {
	bills, err := h.reportService.Operational(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// GetOverdue returns unpaid bills past their return date
// @Summary      Overdue report
// @Tags         reports
// @Produce      json
// @Success      200  {array}   model.Bill
// @Failure      500  {object}  response.Response
// @Router       /api/reports/overdue [get]
func (h *ReportHandler) GetOverdue(c *gin.Context) {
	bills, err := h.reportService.Overdue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// GetMonthlySales returns sales grouped by month, newest first
// @Summary      Monthly sales
// @Tags         reports
// @Produce      json
// @Success      200  {array}   model.MonthlySales
// @Failure      500  {object}  response.Response
// @Router       /api/reports/monthly-sales [get]
func (h *ReportHandler) GetMonthlySales(c *gin.Context) {
	months, err := h.reportService.MonthlySales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, months)
}
