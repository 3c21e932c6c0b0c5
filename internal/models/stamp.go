package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Stamp struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	ImageURL     string
	BackImageURL sql.NullString
	Name         sql.NullString
	DesignData   json.RawMessage
	CreatedAt    time.Time
}
