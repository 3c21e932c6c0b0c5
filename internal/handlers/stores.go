package handlers

import (
	"github.com/google/uuid"
	"tshirt-studio-backend/internal/database"
	"tshirt-studio-backend/internal/models"
)

// Store interfaces are satisfied by *database.Client. Handlers depend on
// them so tests can swap in in-memory implementations.

type UserStore interface {
	CreateUser(name, email, passwordHash string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(userID uuid.UUID) (*models.User, error)
}

type OrderStore interface {
	CreateOrder(params database.CreateOrderParams) (*models.Order, error)
	GetOrder(orderID uuid.UUID) (*models.Order, error)
	ListOrders(userID uuid.UUID) ([]models.Order, error)
}

type StampStore interface {
	CreateStamp(params database.CreateStampParams) (*models.Stamp, error)
	GetStamp(stampID, userID uuid.UUID) (*models.Stamp, error)
	ListStamps(userID uuid.UUID) ([]models.Stamp, error)
	DeleteStamp(stampID, userID uuid.UUID) error
}

type MessageStore interface {
	CreateMessage(userID uuid.UUID, content string, isAdmin bool) (*models.Message, error)
	ListMessages(userID uuid.UUID) ([]models.Message, error)
}
