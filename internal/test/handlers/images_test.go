package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tshirt-studio-backend/internal/handlers"
	"tshirt-studio-backend/internal/models"
)

type stubRemover struct {
	result string
	err    error
}

func (s *stubRemover) RemoveBackground(ctx context.Context, imageDataURI string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.result, nil
}

func imagesRouter(remover *stubRemover) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewImagesHandler(remover)
	router := gin.New()
	router.GET("/api/proxy-image", handler.ProxyImage)
	router.POST("/api/remove-bg", handler.RemoveBackground)
	return router
}

func TestProxyImage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg bytes"))
	}))
	defer upstream.Close()

	router := imagesRouter(&stubRemover{})

	req, _ := http.NewRequest("GET", "/api/proxy-image?url="+upstream.URL, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg bytes", w.Body.String())
}

func TestProxyImage_MissingURL(t *testing.T) {
	router := imagesRouter(&stubRemover{})

	req, _ := http.NewRequest("GET", "/api/proxy-image", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProxyImage_BadScheme(t *testing.T) {
	router := imagesRouter(&stubRemover{})

	req, _ := http.NewRequest("GET", "/api/proxy-image?url=file:///etc/passwd", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProxyImage_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer upstream.Close()

	router := imagesRouter(&stubRemover{})

	req, _ := http.NewRequest("GET", "/api/proxy-image?url="+upstream.URL, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRemoveBackground(t *testing.T) {
	router := imagesRouter(&stubRemover{result: "data:image/png;base64,b3V0"})

	body, _ := json.Marshal(models.RemoveBgRequest{Image: "data:image/png;base64,aW4="})
	req, _ := http.NewRequest("POST", "/api/remove-bg", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.RemoveBgResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusSuccess, resp.Status)
	assert.Equal(t, "data:image/png;base64,b3V0", resp.Image)
}

func TestRemoveBackground_MissingImage(t *testing.T) {
	router := imagesRouter(&stubRemover{})

	req, _ := http.NewRequest("POST", "/api/remove-bg", bytes.NewReader([]byte(`{"image":""}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveBackground_UpstreamError(t *testing.T) {
	router := imagesRouter(&stubRemover{err: errors.New("upstream timeout")})

	body, _ := json.Marshal(models.RemoveBgRequest{Image: "data:image/png;base64,aW4="})
	req, _ := http.NewRequest("POST", "/api/remove-bg", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "background removal failed")
}
