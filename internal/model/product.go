package model

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a single tire variant. Products sharing a (name, brand)
// pair form a variant group; within a group the (width, profile, diameter)
// triple is unique and identifies the variant.
type Product struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null;index:idx_variant_group"`
	Brand     string         `json:"brand" gorm:"type:varchar(100);not null;index:idx_variant_group"`
	Width     string         `json:"width" gorm:"type:varchar(10);not null"`
	Profile   string         `json:"profile" gorm:"type:varchar(10);not null"`
	Diameter  string         `json:"diameter" gorm:"type:varchar(10);not null"`
	Price     float64        `json:"price" gorm:"not null"`
	Stock     int            `json:"stock" gorm:"default:0"`
	ImageURL  string         `json:"image_url" gorm:"type:text"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// SameGroup reports whether two products belong to the same variant group
func (p *Product) SameGroup(other *Product) bool {
	return p.Name == other.Name && p.Brand == other.Brand
}

// Brand represents a tire manufacturer managed from the admin console
type Brand struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null;unique"`
	LogoURL   string         `json:"logo_url" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
