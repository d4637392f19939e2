package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkhaliddev/foodrush/internal/models"
)

type Contact struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// DeliveryView is an order joined at read time with buyer and seller contact
// detail. User records are never mutated by this path.
type DeliveryView struct {
	OrderID  string  `json:"orderId"`
	FoodName string  `json:"foodName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Amount   float64 `json:"amount"`
	Buyer    Contact `json:"buyer"`
	Seller   Contact `json:"seller"`
}

// ActiveDeliveries lists every made order enriched with contact detail, for
// riders choosing a pickup.
func (s *Service) ActiveDeliveries(ctx context.Context) ([]DeliveryView, error) {
	made := []models.MadeOrder{}
	if err := s.DB.WithContext(ctx).Find(&made).Error; err != nil {
		return nil, fmt.Errorf("list made orders: %w", err)
	}

	views := make([]DeliveryView, len(made))
	for i, m := range made {
		buyer, err := s.contactFor(ctx, m.BuyerID)
		if err != nil {
			return nil, err
		}
		seller, err := s.contactFor(ctx, m.SellerID)
		if err != nil {
			return nil, err
		}
		views[i] = DeliveryView{
			OrderID:  m.ID,
			FoodName: m.FoodName,
			Quantity: m.Quantity,
			Price:    m.Price,
			Amount:   m.Amount,
			Buyer:    buyer,
			Seller:   seller,
		}
	}
	return views, nil
}

// RiderDeliveries lists the completed orders attributed to one rider,
// enriched the same way as ActiveDeliveries.
func (s *Service) RiderDeliveries(ctx context.Context, riderID string) ([]DeliveryView, error) {
	completed := []models.CompletedOrder{}
	if err := s.DB.WithContext(ctx).Where("rider_id = ?", riderID).Find(&completed).Error; err != nil {
		return nil, fmt.Errorf("list rider completed orders: %w", err)
	}

	views := make([]DeliveryView, len(completed))
	for i, c := range completed {
		buyer, err := s.contactFor(ctx, c.BuyerID)
		if err != nil {
			return nil, err
		}
		seller, err := s.contactFor(ctx, c.SellerID)
		if err != nil {
			return nil, err
		}
		views[i] = DeliveryView{
			OrderID:  c.ID,
			FoodName: c.FoodName,
			Quantity: c.Quantity,
			Price:    c.Price,
			Amount:   c.Amount,
			Buyer:    buyer,
			Seller:   seller,
		}
	}
	return views, nil
}

// contactFor resolves a user's contact fields. A missing user record is not
// an error, it yields the Unknown placeholder per field; a store failure is
// surfaced so it never masquerades as a deleted user.
func (s *Service) contactFor(ctx context.Context, userID string) (Contact, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Contact{Address: Unknown, Phone: Unknown, Email: Unknown}, nil
		}
		return Contact{}, fmt.Errorf("lookup contact: %w", err)
	}

	c := Contact{Address: user.Address, Phone: user.Phone, Email: user.Email}
	if c.Address == "" {
		c.Address = Unknown
	}
	if c.Phone == "" {
		c.Phone = Unknown
	}
	if c.Email == "" {
		c.Email = Unknown
	}
	return c, nil
}
