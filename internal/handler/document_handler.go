package handler

import (
	"net/http"
	"net/url"

	"laundrybill/internal/service"
	"laundrybill/pkg/response"

	"github.com/gin-gonic/gin"
)

// UploadsPath is where stored PDFs are served.
const UploadsPath = "/uploads"

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/upload-pdf", h.UploadPDF)
}

// UploadPDF stores a rendered invoice and messages the customer
// @Summary      Upload invoice PDF
// @Description  Accepts a base64 data URI. The WhatsApp message is sent in the background.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        payload  body      service.UploadPDFRequest  true  "PDF and bill summary"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  response.Response
// @Failure      413      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/upload-pdf [post]
func (h *DocumentHandler) UploadPDF(c *gin.Context) {
	var req service.UploadPDFRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.documentService.UploadPDF(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	body := response.Message("PDF saved successfully")
	body["url"] = publicURL(c, UploadsPath+"/"+url.PathEscape(res.FileName))
	c.JSON(http.StatusOK, body)
}

// publicURL resolves path against the scheme and host the client used.
func publicURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + path
}
