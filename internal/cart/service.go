// Package cart is the cart collaborator behind the checkout dispatcher: it
// owns cart persistence and merges repeated adds of the same product into a
// single line.
package cart

import (
	"context"
	"errors"
	"time"

	"tire-service/internal/model"
	"tire-service/internal/variant"
	"tire-service/prometheus"

	"gorm.io/gorm"
)

// ErrItemNotFound is returned when removing a product that is not in the cart
var ErrItemNotFound = errors.New("cart item not found")

// Service persists carts keyed by an opaque client token
type Service struct {
	db *gorm.DB
}

// NewService creates a cart service on the given database handle
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the cart for the client token, creating an empty one on first use
func (s *Service) Get(ctx context.Context, clientToken string) (*model.Cart, error) {
	defer prometheus.TrackDBOperation("cart_get")(time.Now())

	var c model.Cart
	err := s.db.WithContext(ctx).
		Where(model.Cart{ClientToken: clientToken}).
		Preload("Items").
		FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AddItem adds quantity units of the product to the client's cart. An
// existing line for the same product is merged by incrementing its quantity.
func (s *Service) AddItem(ctx context.Context, clientToken string, p model.Product, quantity int) error {
	defer prometheus.TrackDBOperation("cart_add_item")(time.Now())

	if quantity <= 0 {
		quantity = 1
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Cart
		if err := tx.Where(model.Cart{ClientToken: clientToken}).FirstOrCreate(&c).Error; err != nil {
			return err
		}

		var item model.CartItem
		err := tx.Where("cart_id = ? AND product_id = ?", c.ID, p.ID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = model.CartItem{
				CartID:    c.ID,
				ProductID: p.ID,
				Name:      p.Name,
				Brand:     p.Brand,
				Width:     p.Width,
				Profile:   p.Profile,
				Diameter:  p.Diameter,
				Price:     p.Price,
				Quantity:  quantity,
				AddedAt:   time.Now(),
			}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		item.Quantity += quantity
		item.Price = p.Price
		return tx.Save(&item).Error
	})
}

// RemoveItem drops the product's line from the client's cart
func (s *Service) RemoveItem(ctx context.Context, clientToken string, productID uint) error {
	defer prometheus.TrackDBOperation("cart_remove_item")(time.Now())

	var c model.Cart
	err := s.db.WithContext(ctx).Where(model.Cart{ClientToken: clientToken}).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", c.ID, productID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// ForClient binds the service to one client token, satisfying the checkout
// dispatcher's Cart interface
func (s *Service) ForClient(clientToken string) variant.Cart {
	return boundCart{svc: s, clientToken: clientToken}
}

type boundCart struct {
	svc         *Service
	clientToken string
}

func (b boundCart) Add(ctx context.Context, p model.Product) error {
	return b.svc.AddItem(ctx, b.clientToken, p, 1)
}
