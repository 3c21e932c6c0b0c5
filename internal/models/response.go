package models

import "time"

// StatusSuccess and StatusError are the two values of the response envelope
// status field. Every endpoint answers with one of them.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Error builds the uniform error envelope.
func Error(message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message}
}

type StatusResponse struct {
	Status string `json:"status"`
}

type UserPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthData struct {
	User UserPayload `json:"user"`
}

type AuthResponse struct {
	Status string   `json:"status"`
	Data   AuthData `json:"data"`
}

type OrderPayload struct {
	ID            string         `json:"id"`
	ImageURL      string         `json:"imageUrl"`
	BackImageURL  string         `json:"backImageUrl,omitempty"`
	Color         string         `json:"color"`
	Material      string         `json:"material"`
	Sizes         []SizeQuantity `json:"sizes"`
	TotalQuantity int            `json:"totalQty"`
	Observations  string         `json:"observations,omitempty"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type OrderResponse struct {
	Status string       `json:"status"`
	Order  OrderPayload `json:"order"`
}

type OrderListResponse struct {
	Status string         `json:"status"`
	Orders []OrderPayload `json:"orders"`
}

type StampPayload struct {
	ID           string                 `json:"id"`
	ImageURL     string                 `json:"imageUrl"`
	BackImageURL string                 `json:"backImageUrl,omitempty"`
	Name         string                 `json:"name,omitempty"`
	DesignData   map[string]interface{} `json:"designData,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
}

type StampResponse struct {
	Status string       `json:"status"`
	Stamp  StampPayload `json:"stamp"`
}

type StampListResponse struct {
	Status string         `json:"status"`
	Stamps []StampPayload `json:"stamps"`
}

type MessagePayload struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type MessageResponse struct {
	Status  string         `json:"status"`
	Message MessagePayload `json:"message"`
}

type MessageListResponse struct {
	Status   string           `json:"status"`
	Messages []MessagePayload `json:"messages"`
}

type RemoveBgResponse struct {
	Status string `json:"status"`
	Image  string `json:"image"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
