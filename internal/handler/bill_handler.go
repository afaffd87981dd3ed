package handler

import (
	"net/http"

	"laundrybill/internal/service"
	"laundrybill/pkg/response"

	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	billService service.BillService
}

func NewBillHandler(billService service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

func (h *BillHandler) RegisterRoutes(router *gin.RouterGroup) {
	bills := router.Group("/api/bills")
	{
		bills.POST("", h.SaveBill)
		bills.GET("/pending", h.ListPending)
		bills.GET("/:id/items", h.GetBillItems)
		bills.PUT("/:id/pay", h.MarkPaid)
		bills.DELETE("/:id", h.DeleteBill)
	}
}

// SaveBill creates a bill, or overwrites one when billId is set
// @Summary      Create or update a bill
// @Description  Totals are computed from the line items and the current shop tax rate
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SaveBillRequest  true  "Bill"
// @Success      200      {object}  map[string]string
// @Success      201      {object}  map[string]string
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/bills [post]
func (h *BillHandler) SaveBill(c *gin.Context) {
	var req service.SaveBillRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.billService.SaveBill(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	status, msg := http.StatusOK, "Bill updated successfully"
	if res.Created {
		status, msg = http.StatusCreated, "Bill saved successfully"
	}
	body := response.Message(msg)
	body["billId"] = res.BillID
	c.JSON(status, body)
}

// ListPending returns unpaid bills, newest first
// @Summary      List pending bills
// @Tags         bills
// @Produce      json
// @Success      200  {array}   model.Bill
// @Failure      500  {object}  response.Response
// @Router       /api/bills/pending [get]
func (h *BillHandler) ListPending(c *gin.Context) {
	bills, err := h.billService.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

// GetBillItems returns the stored line items of a bill
// @Summary      Get bill line items
// @Tags         bills
// @Produce      json
// @Param        id   path      string  true  "Bill ID"
// @Success      200  {array}   model.BillLineItem
// @Failure      404  {object}  response.Response
// @Router       /api/bills/{id}/items [get]
func (h *BillHandler) GetBillItems(c *gin.Context) {
	items, err := h.billService.GetLineItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// MarkPaid marks a bill as paid. Calling it again is a no-op.
// @Summary      Mark bill paid
// @Tags         bills
// @Produce      json
// @Param        id   path      string  true  "Bill ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  response.Response
// @Router       /api/bills/{id}/pay [put]
func (h *BillHandler) MarkPaid(c *gin.Context) {
	if err := h.billService.MarkPaid(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message("Bill marked as paid"))
}

// DeleteBill removes a bill and its line items
// @Summary      Delete bill
// @Tags         bills
// @Produce      json
// @Param        id   path      string  true  "Bill ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  response.Response
// @Router       /api/bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	if err := h.billService.DeleteBill(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message("Bill deleted"))
}
