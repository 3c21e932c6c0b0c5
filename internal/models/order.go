package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OrderStatusPending is the status every new order starts in. The value is
// Portuguese because the admin dashboard displays it verbatim.
const OrderStatusPending = "Pendente"

type Order struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ImageURL      string
	BackImageURL  sql.NullString
	Color         string
	Material      string
	Sizes         json.RawMessage
	TotalQuantity int
	Observations  sql.NullString
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SizeQuantity is one entry of an order's size breakdown, JSON-encoded into
// the sizes column and decoded back on read.
type SizeQuantity struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}
