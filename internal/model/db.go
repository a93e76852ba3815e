package model

import "time"

type Profile struct {
	ID       string `gorm:"primaryKey;size:64;not null" json:"id"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	IsAdmin  bool   `gorm:"not null;default:false" json:"is_admin"`
	FullName string `gorm:"size:255" json:"full_name,omitempty"`
}

type Product struct {
	ID          string `gorm:"primaryKey;size:64;not null" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	// minor currency units (paise)
	Price     int64     `gorm:"not null" json:"price"`
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	FileURL   string    `gorm:"size:512" json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

type Banner struct {
	ID        string    `gorm:"primaryKey;size:64;not null" json:"id"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"`
	Title     string    `gorm:"size:255" json:"title"`
	Active    bool      `gorm:"index;not null" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)

type Order struct {
	ID     string `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"user_id"`
	// FK → products.id
	ProductID string `gorm:"size:64;index;not null" json:"product_id"`
	// total charged, minor units; equals the product price at purchase time
	Amount     int64       `gorm:"not null" json:"amount"`
	Status     OrderStatus `gorm:"size:16;index;not null" json:"status"`
	PaymentRef string      `gorm:"size:128;index" json:"payment_reference,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`

	// read-time join, never written back
	Product *Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
}

// Settings is a local-only singleton row. It is deliberately never synced to
// the remote backend.
type Settings struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	AppName string `gorm:"size:255" json:"app_name"`
	IconURL string `gorm:"size:512" json:"icon_url"`

	UpdatedAt time.Time `json:"-"`
}

// ProductPatch carries a partial product update. Nil fields are left
// untouched.
type ProductPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	FileURL     *string `json:"file_url,omitempty"`
}

// Changes flattens the patch into column assignments.
func (p ProductPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	}
	if p.Price != nil {
		changes["price"] = *p.Price
	}
	if p.ImageURL != nil {
		changes["image_url"] = *p.ImageURL
	}
	if p.FileURL != nil {
		changes["file_url"] = *p.FileURL
	}
	return changes
}
