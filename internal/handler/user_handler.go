package handler

import (
	"net/http"

	"laundrybill/internal/service"
	"laundrybill/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	// limit guards the credential endpoints; may be nil.
	limit       gin.HandlerFunc
}

// NewUserHandler sets up the routing dependencies for credential endpoints
func NewUserHandler(userService service.UserService, limit gin.HandlerFunc) *UserHandler {
	return &UserHandler{userService: userService, limit: limit}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	if h.limit != nil {
		api.POST("/login", h.limit, h.Login)
		api.POST("/change-password", h.limit, h.ChangePassword)
		return
	}
	api.POST("/login", h.Login)
	api.POST("/change-password", h.ChangePassword)
}

// Login checks a username and password
// @Summary      Login
// @Description  Verifies credentials. No session or token is issued.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials"
// @Success      200      {object}  service.LoginResponse
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /api/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ChangePassword rotates a user's password
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ChangePasswordRequest  true  "Current and new password"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Message("Password updated successfully"))
}
