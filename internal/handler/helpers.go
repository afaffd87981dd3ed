package handler

import (
	"log"
	"net/http"

	"laundrybill/internal/middleware"
	"laundrybill/pkg/apperror"
	"laundrybill/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError writes err through the error envelope. Server-side failures are
// logged with their cause; the client only sees the generic message.
func respondError(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	if appErr.Code >= http.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", middleware.RequestID(c), c.Request.Method, c.FullPath(), err)
	}
	c.JSON(appErr.Code, response.FromAppError(appErr))
}

// bindJSON decodes the body into dst, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return false
	}
	return true
}
