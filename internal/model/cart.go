package model

import "time"

// Cart holds the items a storefront client has accumulated. One cart per
// client token; the token is minted by the API on first use.
type Cart struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	ClientToken string     `json:"client_token" gorm:"type:varchar(64);uniqueIndex;not null"`
	Items       []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CartItem is a product line inside a cart. Repeated adds of the same
// product merge into one line by incrementing Quantity.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CartID    uint      `json:"cart_id" gorm:"index"`
	ProductID uint      `json:"product_id" gorm:"index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Brand     string    `json:"brand" gorm:"type:varchar(100)"`
	Width     string    `json:"width" gorm:"type:varchar(10)"`
	Profile   string    `json:"profile" gorm:"type:varchar(10)"`
	Diameter  string    `json:"diameter" gorm:"type:varchar(10)"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity" gorm:"default:1"`
	AddedAt   time.Time `json:"added_at"`
}
