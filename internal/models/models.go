package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleRider  = "rider"
)

type User struct {
	ID           string `gorm:"primaryKey"           json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null"             json:"-"`
	Address      string `gorm:"not null"             json:"address"`
	Phone        string `gorm:"not null"             json:"phone"`
	Role         string `gorm:"not null"             json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// FoodOption is one selectable variant of a food item, e.g. {"Large", 12.50}.
type FoodOption struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// OptionList keeps the seller-defined option order, stored as a JSON column.
type OptionList []FoodOption

func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	data, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (o *OptionList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("options: unsupported column type %T", value)
	}
}

type FoodItem struct {
	ID          string     `gorm:"primaryKey"     json:"id"`
	SellerID    string     `gorm:"index;not null" json:"sellerId"`
	Category    string     `gorm:"not null"       json:"category"`
	Name        string     `gorm:"not null"       json:"name"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	Options     OptionList `gorm:"type:text"      json:"options"`
}

func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Order is a buyer-initiated purchase awaiting seller action. A logical
// purchase lives in exactly one of orders, made_orders or completed_orders.
type Order struct {
	ID        string  `gorm:"primaryKey"     json:"id"`
	SellerID  string  `gorm:"index;not null" json:"sellerId"`
	BuyerID   string  `gorm:"index;not null" json:"buyerId"`
	FoodID    string  `gorm:"not null"       json:"foodId"`
	Name      string  `gorm:"not null"       json:"name"`
	Quantity  int     `gorm:"not null"       json:"quantity"`
	Price     float64 `gorm:"not null"       json:"price"`
	Amount    float64 `gorm:"not null"       json:"amount"`
	OrderedAt string  `gorm:"not null"       json:"orderedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// MadeOrder is an order the seller accepted, awaiting rider pickup.
type MadeOrder struct {
	ID       string  `gorm:"primaryKey"     json:"id"`
	SellerID string  `gorm:"index;not null" json:"sellerId"`
	BuyerID  string  `gorm:"index;not null" json:"buyerId"`
	FoodName string  `gorm:"not null"       json:"foodName"`
	Quantity int     `gorm:"not null"       json:"quantity"`
	Price    float64 `gorm:"not null"       json:"price"`
	Amount   float64 `gorm:"not null"       json:"amount"`
}

func (m *MadeOrder) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// CompletedOrder is a delivered order attributed to the rider. Terminal,
// retained indefinitely.
type CompletedOrder struct {
	ID       string  `gorm:"primaryKey"     json:"id"`
	SellerID string  `gorm:"index;not null" json:"sellerId"`
	BuyerID  string  `gorm:"index;not null" json:"buyerId"`
	RiderID  string  `gorm:"index"          json:"riderId"`
	FoodName string  `gorm:"not null"       json:"foodName"`
	Quantity int     `gorm:"not null"       json:"quantity"`
	Price    float64 `gorm:"not null"       json:"price"`
	Amount   float64 `gorm:"not null"       json:"amount"`
}

func (c *CompletedOrder) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    string `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
