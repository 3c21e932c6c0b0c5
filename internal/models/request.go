package models

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SaveOrderRequest struct {
	ImageBase64     string         `json:"imageBase64"`
	BackImageBase64 string         `json:"backImageBase64,omitempty"`
	Color           string         `json:"color"`
	Material        string         `json:"material"`
	Sizes           []SizeQuantity `json:"sizes"`
	TotalQty        int            `json:"totalQty"`
	Observations    string         `json:"observations,omitempty"`
}

type SaveStampRequest struct {
	ImageBase64     string                 `json:"imageBase64"`
	BackImageBase64 string                 `json:"backImageBase64,omitempty"`
	Name            string                 `json:"name,omitempty"`
	DesignData      map[string]interface{} `json:"designData,omitempty"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type RemoveBgRequest struct {
	Image string `json:"image"`
}
