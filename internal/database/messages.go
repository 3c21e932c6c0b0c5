package database

import (
	"fmt"

	"github.com/google/uuid"
	"tshirt-studio-backend/internal/models"
)

func (c *Client) CreateMessage(userID uuid.UUID, content string, isAdmin bool) (*models.Message, error) {
	var message models.Message
	err := c.db.QueryRow(`
		INSERT INTO messages (user_id, content, is_admin)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, content, is_admin, created_at
	`, userID, content, isAdmin).Scan(
		&message.ID, &message.UserID, &message.Content, &message.IsAdmin, &message.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return &message, nil
}

// ListMessages returns a user's chat history oldest first, the order the
// conversation view renders it in.
func (c *Client) ListMessages(userID uuid.UUID) ([]models.Message, error) {
	rows, err := c.db.Query(`
		SELECT id, user_id, content, is_admin, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var message models.Message
		err := rows.Scan(
			&message.ID, &message.UserID, &message.Content, &message.IsAdmin, &message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}
