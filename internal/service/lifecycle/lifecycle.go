package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkhaliddev/foodrush/internal/logging"
	"github.com/mkhaliddev/foodrush/internal/models"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

// Unknown is the placeholder substituted for every contact field of a buyer
// or seller whose user record no longer exists.
const Unknown = "Unknown"

// Service moves a logical purchase through its three stores:
// orders -> made_orders -> completed_orders. Every transition creates the
// successor record before deleting the predecessor, inside one transaction,
// with the delete guarded by the predecessor id so that only one of two
// racing callers can complete it.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

type CreateOrderRequest struct {
	SellerID  string  `json:"sellerId"`
	BuyerID   string  `json:"buyerId"`
	FoodID    string  `json:"foodId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Amount    float64 `json:"amount"`
	OrderedAt string  `json:"orderedAt"`
}

func (r CreateOrderRequest) validate() error {
	switch {
	case r.SellerID == "":
		return fmt.Errorf("%w: sellerId is required", ErrValidation)
	case r.BuyerID == "":
		return fmt.Errorf("%w: buyerId is required", ErrValidation)
	case r.FoodID == "":
		return fmt.Errorf("%w: foodId is required", ErrValidation)
	case r.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case r.Quantity <= 0:
		return fmt.Errorf("%w: quantity is required", ErrValidation)
	case r.Price <= 0:
		return fmt.Errorf("%w: price is required", ErrValidation)
	case r.Amount <= 0:
		return fmt.Errorf("%w: amount is required", ErrValidation)
	case r.OrderedAt == "":
		return fmt.Errorf("%w: orderedAt is required", ErrValidation)
	}
	return nil
}

// CreateOrder validates the request before any write and persists a new
// pending order. Amount is stored as supplied, it is not recomputed from
// price and quantity.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	order := models.Order{
		SellerID:  req.SellerID,
		BuyerID:   req.BuyerID,
		FoodID:    req.FoodID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Amount:    req.Amount,
		OrderedAt: req.OrderedAt,
	}
	if err := s.DB.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// CompleteOrder is the seller fulfillment transition: the pending order
// becomes a made order awaiting rider pickup. The made order is created
// first, then the pending order is deleted; a zero-row delete means a
// concurrent caller already fulfilled it and rolls the whole transition back.
func (s *Service) CompleteOrder(ctx context.Context, orderID string) error {
	l := logging.FromContext(ctx).With("transition", "seller_fulfillment", "order_id", orderID)

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
			}
			l.Error("transition step failed", "step", "lookup_order", "error", err)
			return fmt.Errorf("lookup order: %w", err)
		}

		made := models.MadeOrder{
			SellerID: order.SellerID,
			BuyerID:  order.BuyerID,
			FoodName: order.Name,
			Quantity: order.Quantity,
			Price:    order.Price,
			Amount:   order.Amount,
		}
		if err := tx.Create(&made).Error; err != nil {
			l.Error("transition step failed", "step", "create_made_order", "error", err)
			return fmt.Errorf("create made order: %w", err)
		}

		res := tx.Delete(&models.Order{}, "id = ?", orderID)
		if res.Error != nil {
			l.Error("transition step failed", "step", "delete_order", "error", res.Error)
			return fmt.Errorf("delete order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race to a concurrent fulfillment.
			return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil
	})
}

// DeliverOrder is the rider delivery transition: the made order becomes a
// completed order carrying the rider id. riderID is stored as given, even
// when empty. Same create-before-delete ordering as CompleteOrder.
func (s *Service) DeliverOrder(ctx context.Context, orderID, riderID string) error {
	l := logging.FromContext(ctx).With("transition", "rider_delivery", "order_id", orderID)

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var made models.MadeOrder
		if err := tx.First(&made, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
			}
			l.Error("transition step failed", "step", "lookup_made_order", "error", err)
			return fmt.Errorf("lookup made order: %w", err)
		}

		completed := models.CompletedOrder{
			SellerID: made.SellerID,
			BuyerID:  made.BuyerID,
			RiderID:  riderID,
			FoodName: made.FoodName,
			Quantity: made.Quantity,
			Price:    made.Price,
			Amount:   made.Amount,
		}
		if err := tx.Create(&completed).Error; err != nil {
			l.Error("transition step failed", "step", "create_completed_order", "error", err)
			return fmt.Errorf("create completed order: %w", err)
		}

		res := tx.Delete(&models.MadeOrder{}, "id = ?", orderID)
		if res.Error != nil {
			l.Error("transition step failed", "step", "delete_made_order", "error", res.Error)
			return fmt.Errorf("delete made order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil
	})
}

// SellerOrders lists pending orders for a seller. An unknown seller is not
// an error, it simply matches nothing.
func (s *Service) SellerOrders(ctx context.Context, sellerID string) ([]models.Order, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: sellerId is required", ErrValidation)
	}

	orders := []models.Order{}
	if err := s.DB.WithContext(ctx).Where("seller_id = ?", sellerID).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list seller orders: %w", err)
	}
	return orders, nil
}

func (s *Service) SellerCompletedOrders(ctx context.Context, sellerID string) ([]models.CompletedOrder, error) {
	completed := []models.CompletedOrder{}
	if err := s.DB.WithContext(ctx).Where("seller_id = ?", sellerID).Find(&completed).Error; err != nil {
		return nil, fmt.Errorf("list seller completed orders: %w", err)
	}
	return completed, nil
}

// BuyerOrders returns the buyer's records from all three lifecycle stores as
// three independent lists.
func (s *Service) BuyerOrders(ctx context.Context, buyerID string) ([]models.Order, []models.MadeOrder, []models.CompletedOrder, error) {
	db := s.DB.WithContext(ctx)

	orders := []models.Order{}
	if err := db.Where("buyer_id = ?", buyerID).Find(&orders).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("list buyer orders: %w", err)
	}

	made := []models.MadeOrder{}
	if err := db.Where("buyer_id = ?", buyerID).Find(&made).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("list buyer made orders: %w", err)
	}

	completed := []models.CompletedOrder{}
	if err := db.Where("buyer_id = ?", buyerID).Find(&completed).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("list buyer completed orders: %w", err)
	}

	return orders, made, completed, nil
}

func (s *Service) MadeOrder(ctx context.Context, orderID string) (*models.MadeOrder, error) {
	var made models.MadeOrder
	if err := s.DB.WithContext(ctx).First(&made, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("lookup made order: %w", err)
	}
	return &made, nil
}
