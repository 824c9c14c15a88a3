package models

import (
	"time"
)

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

type Item struct {
	ID       int    `json:"id"`
	Content  string `json:"content"`
	Store    string `json:"store"`
	Price    string `json:"price"` // free-text, no numeric validation anywhere
	Category string `json:"category"`
	Image    string `json:"image"` // stored filename under the upload dir
	UserID   int    `json:"user_id"`
}

type Order struct {
	ID            int       `json:"id"`
	ItemID        int       `json:"item_id"` // no FK constraint, may dangle
	BuyerLocation string    `json:"buyer_location"`
	BuyerPhone    string    `json:"buyer_phone"`
	BuyerEmail    string    `json:"buyer_email"`
	CreatedAt     time.Time `json:"created_at"`

	// Joined item data for the admin orders listing.
	ItemContent string `json:"item_content,omitempty"`
	ItemStore   string `json:"item_store,omitempty"`
	ItemPrice   string `json:"item_price,omitempty"`
	ItemImage   string `json:"item_image,omitempty"`
}
