package lifecycle

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkhaliddev/foodrush/internal/models"
)

func newTestService(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.MadeOrder{},
		&models.CompletedOrder{},
	))

	return NewService(db)
}

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		SellerID:  "S1",
		BuyerID:   "B1",
		FoodID:    "F1",
		Name:      "Pizza",
		Quantity:  2,
		Price:     10,
		Amount:    20,
		OrderedAt: "2024-01-01",
	}
}

func TestCreateOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, "S1", order.SellerID)
	require.Equal(t, "B1", order.BuyerID)
	require.Equal(t, "F1", order.FoodID)
	require.Equal(t, "Pizza", order.Name)
	require.Equal(t, 2, order.Quantity)
	require.Equal(t, float64(10), order.Price)
	require.Equal(t, float64(20), order.Amount)
	require.Equal(t, "2024-01-01", order.OrderedAt)

	var stored models.Order
	require.NoError(t, svc.DB.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, order.Amount, stored.Amount)
}

func TestCreateOrderValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := map[string]func(*CreateOrderRequest){
		"sellerId":  func(r *CreateOrderRequest) { r.SellerID = "" },
		"buyerId":   func(r *CreateOrderRequest) { r.BuyerID = "" },
		"foodId":    func(r *CreateOrderRequest) { r.FoodID = "" },
		"name":      func(r *CreateOrderRequest) { r.Name = "" },
		"quantity":  func(r *CreateOrderRequest) { r.Quantity = 0 },
		"price":     func(r *CreateOrderRequest) { r.Price = 0 },
		"amount":    func(r *CreateOrderRequest) { r.Amount = 0 },
		"orderedAt": func(r *CreateOrderRequest) { r.OrderedAt = "" },
	}

	for field, clear := range cases {
		req := validRequest()
		clear(&req)
		_, err := svc.CreateOrder(ctx, req)
		require.ErrorIs(t, err, ErrValidation, "field %s", field)
	}

	var count int64
	require.NoError(t, svc.DB.Model(&models.Order{}).Count(&count).Error)
	require.Zero(t, count, "validation failure must not write")
}

func TestCompleteOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.CompleteOrder(ctx, order.ID))

	var orders []models.Order
	require.NoError(t, svc.DB.Find(&orders).Error)
	require.Empty(t, orders)

	var made []models.MadeOrder
	require.NoError(t, svc.DB.Find(&made).Error)
	require.Len(t, made, 1)
	require.Equal(t, "S1", made[0].SellerID)
	require.Equal(t, "B1", made[0].BuyerID)
	require.Equal(t, "Pizza", made[0].FoodName)
	require.Equal(t, 2, made[0].Quantity)
	require.Equal(t, float64(10), made[0].Price)
	require.Equal(t, float64(20), made[0].Amount)
}

func TestCompleteOrderNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.CompleteOrder(ctx, "missing"), ErrNotFound)

	var made []models.MadeOrder
	require.NoError(t, svc.DB.Find(&made).Error)
	require.Empty(t, made, "failed transition must not write")
}

func TestCompleteOrderTwice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.CompleteOrder(ctx, order.ID))
	require.ErrorIs(t, svc.CompleteOrder(ctx, order.ID), ErrNotFound)

	var made []models.MadeOrder
	require.NoError(t, svc.DB.Find(&made).Error)
	require.Len(t, made, 1, "second transition must not duplicate")
}

func TestDeliverOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.CompleteOrder(ctx, order.ID))

	var made models.MadeOrder
	require.NoError(t, svc.DB.First(&made).Error)

	require.NoError(t, svc.DeliverOrder(ctx, made.ID, "R1"))

	var remaining []models.MadeOrder
	require.NoError(t, svc.DB.Find(&remaining).Error)
	require.Empty(t, remaining)

	var completed []models.CompletedOrder
	require.NoError(t, svc.DB.Find(&completed).Error)
	require.Len(t, completed, 1)
	require.Equal(t, "R1", completed[0].RiderID)
	require.Equal(t, "Pizza", completed[0].FoodName)
	require.Equal(t, float64(20), completed[0].Amount)

	// Double completion is a 404, not a duplicate.
	require.ErrorIs(t, svc.DeliverOrder(ctx, made.ID, "R2"), ErrNotFound)
	require.NoError(t, svc.DB.Find(&completed).Error)
	require.Len(t, completed, 1)
}

func TestDeliverOrderEmptyRiderID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.CompleteOrder(ctx, order.ID))

	var made models.MadeOrder
	require.NoError(t, svc.DB.First(&made).Error)

	// riderId is accepted as-is, absent included.
	require.NoError(t, svc.DeliverOrder(ctx, made.ID, ""))

	var completed models.CompletedOrder
	require.NoError(t, svc.DB.First(&completed).Error)
	require.Empty(t, completed.RiderID)
}

func TestSellerOrders(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SellerOrders(ctx, "")
	require.ErrorIs(t, err, ErrValidation)

	orders, err := svc.SellerOrders(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, orders)
	require.Empty(t, orders)

	_, err = svc.CreateOrder(ctx, validRequest())
	require.NoError(t, err)

	orders, err = svc.SellerOrders(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestBuyerOrders(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DB.Create(&models.Order{
		SellerID: "S1", BuyerID: "B1", FoodID: "F1", Name: "Pizza",
		Quantity: 1, Price: 5, Amount: 5, OrderedAt: "2024-01-01",
	}).Error)
	require.NoError(t, svc.DB.Create(&models.MadeOrder{
		SellerID: "S1", BuyerID: "B1", FoodName: "Burger",
		Quantity: 1, Price: 7, Amount: 7,
	}).Error)
	require.NoError(t, svc.DB.Create(&models.CompletedOrder{
		SellerID: "S1", BuyerID: "B1", RiderID: "R1", FoodName: "Wrap",
		Quantity: 1, Price: 9, Amount: 9,
	}).Error)

	orders, made, completed, err := svc.BuyerOrders(ctx, "B1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, made, 1)
	require.Len(t, completed, 1)
	require.Equal(t, "B1", orders[0].BuyerID)
	require.Equal(t, "B1", made[0].BuyerID)
	require.Equal(t, "B1", completed[0].BuyerID)

	orders, made, completed, err = svc.BuyerOrders(ctx, "B2")
	require.NoError(t, err)
	require.Empty(t, orders)
	require.Empty(t, made)
	require.Empty(t, completed)
}
