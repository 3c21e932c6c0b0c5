package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Content   string
	IsAdmin   bool
	CreatedAt time.Time
}
