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

type OrdersHandler struct {
	store    OrderStore
	uploader *storage.Uploader
}

func NewOrdersHandler(store OrderStore, uploader *storage.Uploader) *OrdersHandler {
	return &OrdersHandler{
		store:    store,
		uploader: uploader,
	}
}

// Save godoc
// @Summary     Create an order
// @Description Decodes the design image(s), stores them under the public uploads root, and records the order.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       body body models.SaveOrderRequest true "Order payload"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/save [post]
func (h *OrdersHandler) Save(c *gin.Context) {
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

	var req models.SaveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid request body"))
		return
	}

	if strings.TrimSpace(req.ImageBase64) == "" {
		c.JSON(http.StatusBadRequest, models.Error("design image is required"))
		return
	}
	if strings.TrimSpace(req.Color) == "" || strings.TrimSpace(req.Material) == "" {
		c.JSON(http.StatusBadRequest, models.Error("color and material are required"))
		return
	}
	if len(req.Sizes) == 0 {
		c.JSON(http.StatusBadRequest, models.Error("at least one size is required"))
		return
	}
	if req.TotalQty <= 0 {
		c.JSON(http.StatusBadRequest, models.Error("total quantity must be positive"))
		return
	}

	imageURL, err := h.uploader.SaveDataURI("orders", userID, req.ImageBase64)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, models.Error("design image payload is not valid base64"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.Error("failed to store design image"))
		return
	}

	var backImageURL string
	if strings.TrimSpace(req.BackImageBase64) != "" {
		backImageURL, err = h.uploader.SaveDataURI("orders", userID, req.BackImageBase64)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidPayload) {
				c.JSON(http.StatusBadRequest, models.Error("back image payload is not valid base64"))
				return
			}
			c.JSON(http.StatusInternalServerError, models.Error("failed to store back image"))
			return
		}
	}

	order, err := h.store.CreateOrder(database.CreateOrderParams{
		UserID:        userID,
		ImageURL:      imageURL,
		BackImageURL:  backImageURL,
		Color:         strings.TrimSpace(req.Color),
		Material:      strings.TrimSpace(req.Material),
		Sizes:         req.Sizes,
		TotalQuantity: req.TotalQty,
		Observations:  strings.TrimSpace(req.Observations),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("failed to save order"))
		return
	}

	c.JSON(http.StatusOK, models.OrderResponse{
		Status: models.StatusSuccess,
		Order:  orderPayload(order),
	})
}

// Get godoc
// @Summary     Get one order
// @Description Returns a single order. Orders owned by another user answer 403, missing orders 404.
// @Tags        orders
// @Produce     json
// @Param       id query string true "Order ID (UUID)"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/get [get]
func (h *OrdersHandler) Get(c *gin.Context) {
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

	orderID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Error("invalid order id"))
		return
	}

	order, err := h.store.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.Error("order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.Error("failed to load order"))
		return
	}

	// Owner check: the record exists, so a mismatch is 403, not 404.
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, models.Error("you do not have access to this order"))
		return
	}

	c.JSON(http.StatusOK, models.OrderResponse{
		Status: models.StatusSuccess,
		Order:  orderPayload(order),
	})
}

// List godoc
// @Summary     List orders
// @Description Returns the session user's orders, newest first.
// @Tags        orders
// @Produce     json
// @Success     200 {object} models.OrderListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/list [get]
func (h *OrdersHandler) List(c *gin.Context) {
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

	orders, err := h.store.ListOrders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.Error("failed to list orders"))
		return
	}

	payloads := make([]models.OrderPayload, len(orders))
	for i := range orders {
		payloads[i] = orderPayload(&orders[i])
	}

	c.JSON(http.StatusOK, models.OrderListResponse{
		Status: models.StatusSuccess,
		Orders: payloads,
	})
}

func orderPayload(order *models.Order) models.OrderPayload {
	var sizes []models.SizeQuantity
	if len(order.Sizes) > 0 {
		if err := json.Unmarshal(order.Sizes, &sizes); err != nil {
			log.Printf("corrupt sizes column on order %s: %v", order.ID, err)
		}
	}

	payload := models.OrderPayload{
		ID:            order.ID.String(),
		ImageURL:      order.ImageURL,
		Color:         order.Color,
		Material:      order.Material,
		Sizes:         sizes,
		TotalQuantity: order.TotalQuantity,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
	}
	if order.BackImageURL.Valid {
		payload.BackImageURL = order.BackImageURL.String
	}
	if order.Observations.Valid {
		payload.Observations = order.Observations.String
	}

	return payload
}
