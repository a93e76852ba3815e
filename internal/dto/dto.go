package dto

import "aimaster-store/internal/model"

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  model.Profile `json:"user"`
}

type ProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url"`
	FileURL     string `json:"file_url"`
}

type BannerRequest struct {
	ImageURL string `json:"image_url"`
	Title    string `json:"title"`
	Active   bool   `json:"active"`
}

type BannerActiveRequest struct {
	Active bool `json:"active"`
}

type RecordOrderRequest struct {
	ProductID  string `json:"product_id"`
	Amount     int64  `json:"amount"`
	PaymentRef string `json:"payment_reference"`
}

type PaymentSessionRequest struct {
	ProductID string `json:"product_id"`
	Amount    int64  `json:"amount"`
}

// PaymentSession is the payment function's wire contract.
type PaymentSession struct {
	SessionToken string `json:"sessionToken"`
	OrderID      string `json:"orderId"`
}

// PaymentOrderRequest is the payment function's request body.
type PaymentOrderRequest struct {
	Amount    int64  `json:"amount"`
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	UserEmail string `json:"userEmail"`
}

type SettingsRequest struct {
	AppName *string `json:"app_name,omitempty"`
	IconURL *string `json:"icon_url,omitempty"`
}
