package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"tshirt-studio-backend/internal/models"
)

type CreateOrderParams struct {
	UserID        uuid.UUID
	ImageURL      string
	BackImageURL  string
	Color         string
	Material      string
	Sizes         []models.SizeQuantity
	TotalQuantity int
	Observations  string
}

func (c *Client) CreateOrder(params CreateOrderParams) (*models.Order, error) {
	sizesJSON, err := json.Marshal(params.Sizes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sizes: %w", err)
	}

	backImage := sql.NullString{String: params.BackImageURL, Valid: params.BackImageURL != ""}
	observations := sql.NullString{String: params.Observations, Valid: params.Observations != ""}

	var order models.Order
	err = c.db.QueryRow(`
		INSERT INTO orders (user_id, image_url, back_image_url, color, material, sizes, total_quantity, observations, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, image_url, back_image_url, color, material, sizes, total_quantity, observations, status, created_at, updated_at
	`, params.UserID, params.ImageURL, backImage, params.Color, params.Material,
		sizesJSON, params.TotalQuantity, observations, models.OrderStatusPending).Scan(
		&order.ID, &order.UserID, &order.ImageURL, &order.BackImageURL,
		&order.Color, &order.Material, &order.Sizes, &order.TotalQuantity,
		&order.Observations, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &order, nil
}

// GetOrder looks an order up by id alone. Callers compare the returned
// owner against the session identity so that a foreign order yields 403
// rather than 404.
func (c *Client) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := c.db.QueryRow(`
		SELECT id, user_id, image_url, back_image_url, color, material, sizes, total_quantity, observations, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&order.ID, &order.UserID, &order.ImageURL, &order.BackImageURL,
		&order.Color, &order.Material, &order.Sizes, &order.TotalQuantity,
		&order.Observations, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// ListOrders returns a user's orders newest first.
func (c *Client) ListOrders(userID uuid.UUID) ([]models.Order, error) {
	rows, err := c.db.Query(`
		SELECT id, user_id, image_url, back_image_url, color, material, sizes, total_quantity, observations, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID, &order.UserID, &order.ImageURL, &order.BackImageURL,
			&order.Color, &order.Material, &order.Sizes, &order.TotalQuantity,
			&order.Observations, &order.Status, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}
