package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tshirt-studio-backend/internal/database"
	"tshirt-studio-backend/internal/middleware"
	"tshirt-studio-backend/internal/models"
	"tshirt-studio-backend/internal/storage"
)

type StampsHandler struct {
	store    StampStore
	uploader *storage.Uploader
}

func NewStampsHandler(store StampStore, uploader *storage.Uploader) *StampsHandler {
	return &StampsHandler{
		store:    store,
		uploader: uploader,
	}
}

// Save godoc
// @Summary     Save a stamp
// @Description Stores the stamp image(s) and records the stamp with its design metadata.
// @Tags        stamps
// @Accept      json
// @Produce     json
// @Param       body body models.SaveStampRequest true "Stamp payload"
// @Success     200 {object} models.StampResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /stamps/save [post]
func (h *StampsHandler) Save(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.Error("authentication required"))
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid user id"))
		return
	}

	var req models.SaveStampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid request body"))
		return
	}

	if strings.TrimSpace(req.ImageBase64) == "" {
		c.JSON(http.StatusBadRequest, models.Error("stamp image is required"))
		return
	}

	imageURL, err := h.uploader.SaveDataURI("stamps", userID, req.ImageBase64)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, models.Error("stamp image payload is not valid base64"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.Error("failed to store stamp image"))
		return
	}

	var backImageURL string
	if strings.TrimSpace(req.BackImageBase64) != "" {
		backImageURL, err = h.uploader.SaveDataURI("stamps", userID, req.BackImageBase64)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidPayload) {
				c.JSON(http.StatusBadRequest, models.Error("back image payload is not valid base64"))
				return
			}
			c.JSON(http.StatusInternalServerError, models.Error("failed to store back image"))
			return
		}
	}

	var designData json.RawMessage
	if len(req.DesignData) > 0 {
		designData, err = json.Marshal(req.DesignData)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.Error("design data is not valid JSON"))
			return
		}
	}

	stamp, err := h.store.CreateStamp(database.CreateStampParams{
		UserID:       userID,
		ImageURL:     imageURL,
		BackImageURL: backImageURL,
		Name:         strings.TrimSpace(req.Name),
		DesignData:   designData,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("failed to save stamp"))
		return
	}

	c.JSON(http.StatusOK, models.StampResponse{
		Status: models.StatusSuccess,
		Stamp:  stampPayload(stamp),
	})
}

// List godoc
// @Summary     List stamps
// @Description Returns the session user's stamps, newest first.
// @Tags        stamps
// @Produce     json
// @Success     200 {object} models.StampListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /stamps/list [get]
func (h *StampsHandler) List(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.Error("authentication required"))
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid user id"))
		return
	}

	stamps, err := h.store.ListStamps(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("failed to list stamps"))
		return
	}

	payloads := make([]models.StampPayload, len(stamps))
	for i := range stamps {
		payloads[i] = stampPayload(&stamps[i])
	}

	c.JSON(http.StatusOK, models.StampListResponse{
		Status: models.StatusSuccess,
		Stamps: payloads,
	})
}

// Delete godoc
// @Summary     Delete a stamp
// @Description Removes the stamp row and its backing image file(s). A file already gone is tolerated.
// @Tags        stamps
// @Produce     json
// @Param       id query string true "Stamp ID (UUID)"
// @Success     200 {object} models.StatusResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /stamps/delete [delete]
func (h *StampsHandler) Delete(c *gin.Context) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.Error("authentication required"))
		return
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid user id"))
		return
	}

	stampID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid stamp id"))
		return
	}

	stamp, err := h.store.GetStamp(stampID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.Error("stamp not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.Error("failed to load stamp"))
		return
	}

	if err := h.store.DeleteStamp(stampID, userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.Error("stamp not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.Error("failed to delete stamp"))
		return
	}

	// Row is gone; a failed file removal leaves an orphan file, which is
	// acceptable, so only log it.
	if err := h.uploader.Remove(stamp.ImageURL); err != nil {
		log.Printf("failed to remove stamp image %s: %v", stamp.ImageURL, err)
	}
	if stamp.BackImageURL.Valid {
		if err := h.uploader.Remove(stamp.BackImageURL.String); err != nil {
			log.Printf("failed to remove stamp back image %s: %v", stamp.BackImageURL.String, err)
		}
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: models.StatusSuccess})
}

func stampPayload(stamp *models.Stamp) models.StampPayload {
	payload := models.StampPayload{
		ID:        stamp.ID.String(),
		ImageURL:  stamp.ImageURL,
		CreatedAt: stamp.CreatedAt,
	}
	if stamp.BackImageURL.Valid {
		payload.BackImageURL = stamp.BackImageURL.String
	}
	if stamp.Name.Valid {
		payload.Name = stamp.Name.String
	}
	if len(stamp.DesignData) > 0 {
		if err := json.Unmarshal(stamp.DesignData, &payload.DesignData); err != nil {
			log.Printf("corrupt design data column on stamp %s: %v", payload.ID, err)
		}
	}

	return payload
}
