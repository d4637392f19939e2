package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkhaliddev/foodrush/internal/models"
)

func TestActiveDeliveriesEnrichment(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DB.Create(&models.User{
		ID: "B1", Email: "buyer@example.com", PasswordHash: "x",
		Address: "12 Main St", Phone: "555-0101", Role: models.RoleBuyer,
	}).Error)
	require.NoError(t, svc.DB.Create(&models.User{
		ID: "S1", Email: "seller@example.com", PasswordHash: "x",
		Address: "34 Market Rd", Phone: "555-0202", Role: models.RoleSeller,
	}).Error)
	require.NoError(t, svc.DB.Create(&models.MadeOrder{
		ID: "M1", SellerID: "S1", BuyerID: "B1", FoodName: "Pizza",
		Quantity: 2, Price: 10, Amount: 20,
	}).Error)

	views, err := svc.ActiveDeliveries(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	require.Equal(t, "M1", v.OrderID)
	require.Equal(t, "Pizza", v.FoodName)
	require.Equal(t, "12 Main St", v.Buyer.Address)
	require.Equal(t, "555-0101", v.Buyer.Phone)
	require.Equal(t, "buyer@example.com", v.Buyer.Email)
	require.Equal(t, "34 Market Rd", v.Seller.Address)
}

func TestEnrichmentUnknownUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DB.Create(&models.MadeOrder{
		ID: "M1", SellerID: "ghost-seller", BuyerID: "ghost-buyer",
		FoodName: "Pizza", Quantity: 1, Price: 5, Amount: 5,
	}).Error)

	views, err := svc.ActiveDeliveries(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)

	for _, contact := range []Contact{views[0].Buyer, views[0].Seller} {
		require.Equal(t, Unknown, contact.Address)
		require.Equal(t, Unknown, contact.Phone)
		require.Equal(t, Unknown, contact.Email)
	}
}

// A store failure during the contact join must surface as an error, never
// as an all-Unknown contact.
func TestEnrichmentStoreFailure(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DB.Create(&models.MadeOrder{
		ID: "M1", SellerID: "S1", BuyerID: "B1",
		FoodName: "Pizza", Quantity: 1, Price: 5, Amount: 5,
	}).Error)

	require.NoError(t, svc.DB.Exec("DROP TABLE users").Error)

	_, err := svc.ActiveDeliveries(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestRiderDeliveries(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DB.Create(&models.CompletedOrder{
		ID: "C1", SellerID: "S1", BuyerID: "B1", RiderID: "R1",
		FoodName: "Pizza", Quantity: 2, Price: 10, Amount: 20,
	}).Error)
	require.NoError(t, svc.DB.Create(&models.CompletedOrder{
		ID: "C2", SellerID: "S1", BuyerID: "B1", RiderID: "R2",
		FoodName: "Burger", Quantity: 1, Price: 8, Amount: 8,
	}).Error)

	views, err := svc.RiderDeliveries(ctx, "R1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "C1", views[0].OrderID)
	require.Equal(t, Unknown, views[0].Buyer.Address)

	views, err = svc.RiderDeliveries(ctx, "R3")
	require.NoError(t, err)
	require.Empty(t, views)
}
