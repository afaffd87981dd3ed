package handler

import (
	"net/http"

	"laundrybill/internal/service"
	"laundrybill/pkg/response"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	shopService service.ShopService
}

func NewShopHandler(shopService service.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

func (h *ShopHandler) RegisterRoutes(router *gin.RouterGroup) {
	shop := router.Group("/api/shop")
	{
		shop.GET("", h.GetShop)
		shop.POST("", h.UpdateShop)
	}
}

// GetShop returns the shop profile
// @Summary      Get shop profile
// @Description  Returns the singleton shop profile, or an empty object when none has been saved
// @Tags         shop
// @Produce      json
// @Success      200  {object}  model.ShopProfile
// @Failure      500  {object}  response.Response
// @Router       /api/shop [get]
func (h *ShopHandler) GetShop(c *gin.Context) {
	profile, err := h.shopService.GetProfile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateShop upserts the shop profile
// @Summary      Update shop profile
// @Description  Creates or replaces the shop profile. Tax rates above 1 are read as percentages.
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UpdateShopRequest  true  "Shop profile"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/shop [post]
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	var req service.UpdateShopRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.shopService.UpdateProfile(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message("Shop profile updated"))
}
