package handler

import (
	"net/http"

	"laundrybill/internal/service"
	"laundrybill/pkg/response"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	itemService service.ItemService
}

func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/api/items")
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

// ListItems returns active catalog items
// @Summary      List catalog items
// @Tags         items
// @Produce      json
// @Success      200  {array}   model.LaundryItem
// @Failure      500  {object}  response.Response
// @Router       /api/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.itemService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateItem adds a catalog item
// @Summary      Add catalog item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ItemRequest  true  "Item"
// @Success      201      {object}  map[string]string
// @Failure      400      {object}  response.Response
// @Router       /api/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req service.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	body := response.Message("Item added")
	body["ItemID"] = item.ID
	c.JSON(http.StatusCreated, body)
}

// UpdateItem edits a catalog item
// @Summary      Edit catalog item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Item ID"
// @Param        payload  body      service.ItemRequest  true  "Item"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req service.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.itemService.UpdateItem(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message("Item updated"))
}

// DeleteItem hides a catalog item
// @Summary      Delete catalog item
// @Description  Soft delete; existing bills keep the item name
// @Tags         items
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  response.Response
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.itemService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message("Item deleted"))
}
