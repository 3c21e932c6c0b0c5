package handlers

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"tshirt-studio-backend/internal/models"
	"tshirt-studio-backend/internal/replicate"
)

// BackgroundRemover is satisfied by *replicate.Client.
type BackgroundRemover interface {
	RemoveBackground(ctx context.Context, imageDataURI string) (string, error)
}

type ImagesHandler struct {
	remover    BackgroundRemover
	httpClient *http.Client
}

func NewImagesHandler(remover BackgroundRemover) *ImagesHandler {
	return &ImagesHandler{
		remover: remover,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ProxyImage godoc
// @Summary     Proxy an external image
// @Description Fetches an external image and relays it with a one-hour cache header, so the design canvas can load cross-origin assets.
// @Tags        images
// @Produce     octet-stream
// @Param       url query string true "Image URL"
// @Success     200
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /proxy-image [get]
func (h *ImagesHandler) ProxyImage(c *gin.Context) {
	rawURL := c.Query("url")
	if strings.TrimSpace(rawURL) == "" {
		c.JSON(http.StatusBadRequest, models.Error("url parameter is required"))
		return
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		c.JSON(http.StatusBadRequest, models.Error("url must be an http(s) address"))
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), "GET", rawURL, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Error("url must be an http(s) address"))
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("failed to fetch image"))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusInternalServerError, models.Error("failed to fetch image"))
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("failed to fetch image"))
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, data)
}

// RemoveBackground godoc
// @Summary     Remove an image background
// @Description Delegates to the hosted background-removal model and returns the processed image as a data URI.
// @Tags        images
// @Accept      json
// @Produce     json
// @Param       body body models.RemoveBgRequest true "Image payload"
// @Success     200 {object} models.RemoveBgResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /remove-bg [post]
func (h *ImagesHandler) RemoveBackground(c *gin.Context) {
	var req models.RemoveBgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Image) == "" {
		c.JSON(http.StatusBadRequest, models.Error("image is required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), replicate.UpstreamTimeout)
	defer cancel()

	result, err := h.remover.RemoveBackground(ctx, req.Image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("background removal failed"))
		return
	}

	c.JSON(http.StatusOK, models.RemoveBgResponse{
		Status: models.StatusSuccess,
		Image:  result,
	})
}
