package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"tshirt-studio-backend/internal/models"
)

type CreateStampParams struct {
	UserID       uuid.UUID
	ImageURL     string
	BackImageURL string
	Name         string
	DesignData   json.RawMessage
}

func (c *Client) CreateStamp(params CreateStampParams) (*models.Stamp, error) {
	backImage := sql.NullString{String: params.BackImageURL, Valid: params.BackImageURL != ""}
	name := sql.NullString{String: params.Name, Valid: params.Name != ""}

	designData := params.DesignData
	if len(designData) == 0 {
		designData = nil
	}

	// design_data is nullable, so it goes through a plain byte slice: a
	// json.RawMessage destination cannot accept a NULL.
	var stamp models.Stamp
	var rawDesign []byte
	err := c.db.QueryRow(`
		INSERT INTO stamps (user_id, image_url, back_image_url, name, design_data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, image_url, back_image_url, name, design_data, created_at
	`, params.UserID, params.ImageURL, backImage, name, designData).Scan(
		&stamp.ID, &stamp.UserID, &stamp.ImageURL, &stamp.BackImageURL,
		&stamp.Name, &rawDesign, &stamp.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stamp: %w", err)
	}
	stamp.DesignData = rawDesign

	return &stamp, nil
}

func (c *Client) GetStamp(stampID, userID uuid.UUID) (*models.Stamp, error) {
	var stamp models.Stamp
	var rawDesign []byte
	err := c.db.QueryRow(`
		SELECT id, user_id, image_url, back_image_url, name, design_data, created_at
		FROM stamps
		WHERE id = $1 AND user_id = $2
	`, stampID, userID).Scan(
		&stamp.ID, &stamp.UserID, &stamp.ImageURL, &stamp.BackImageURL,
		&stamp.Name, &rawDesign, &stamp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stamp: %w", err)
	}
	stamp.DesignData = rawDesign

	return &stamp, nil
}

// ListStamps returns a user's stamps newest first.
func (c *Client) ListStamps(userID uuid.UUID) ([]models.Stamp, error) {
	rows, err := c.db.Query(`
		SELECT id, user_id, image_url, back_image_url, name, design_data, created_at
		FROM stamps
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stamps: %w", err)
	}
	defer rows.Close()

	var stamps []models.Stamp
	for rows.Next() {
		var stamp models.Stamp
		var rawDesign []byte
		err := rows.Scan(
			&stamp.ID, &stamp.UserID, &stamp.ImageURL, &stamp.BackImageURL,
			&stamp.Name, &rawDesign, &stamp.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stamp: %w", err)
		}
		stamp.DesignData = rawDesign
		stamps = append(stamps, stamp)
	}

	return stamps, rows.Err()
}

func (c *Client) DeleteStamp(stampID, userID uuid.UUID) error {
	result, err := c.db.Exec(`
		DELETE FROM stamps
		WHERE id = $1 AND user_id = $2
	`, stampID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete stamp: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete stamp: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
