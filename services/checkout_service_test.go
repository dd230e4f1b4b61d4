package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alessioferri/trattoria-app/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.OrderItem{}, &models.Order{}, &models.User{}))
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		FirstName: "Giulia",
		LastName:  "Bennett",
		Email:     "giulia@example.com",
		Password:  "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func newCheckoutFixture(t *testing.T, sinkURL string) (*CheckoutService, *CartService, *gorm.DB, Identity) {
	t.Helper()
	db := newTestDB(t)
	user := seedUser(t, db)

	carts := newTestCartService(newFakeCartRepo())
	checkout := NewCheckoutService(db, carts, NewNotifyService(sinkURL), "GBP")
	return checkout, carts, db, Identity{UserID: &user.ID}
}

func TestCheckoutSnapshotsCartIntoOrder(t *testing.T) {
	received := make(chan OrderConfirmation, 1)
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload OrderConfirmation
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	checkout, carts, db, ident := newCheckoutFixture(t, sink.URL)

	require.NoError(t, carts.AddItem(context.Background(), ident, "m1", "v1", 3)) // 9.99 each
	require.NoError(t, carts.AddItem(context.Background(), ident, "s1", "v1", 1)) // 4.50

	orderID, err := checkout.Checkout(context.Background(), ident)
	require.NoError(t, err)
	assert.NotZero(t, orderID)

	var order models.Order
	require.NoError(t, db.Preload("OrderItems").First(&order, orderID).Error)

	assert.Equal(t, models.OrderStatusCreated, order.Status)
	assert.Equal(t, "GBP", order.Currency)
	assert.Equal(t, 34.47, order.TotalAmount)
	require.Len(t, order.OrderItems, 2)

	byName := map[string]models.OrderItem{}
	for _, item := range order.OrderItems {
		byName[item.Name] = item
	}
	assert.Equal(t, 29.97, byName["Lasagna"].LineTotal)
	assert.Equal(t, 9.99, byName["Lasagna"].UnitPrice)
	assert.Equal(t, 3, byName["Lasagna"].Qty)
	assert.Equal(t, "Regular", byName["Lasagna"].VariantLabel)
	assert.Equal(t, 4.50, byName["Bruschetta"].LineTotal)

	select {
	case payload := <-received:
		assert.Equal(t, orderID, payload.OrderID)
		assert.Equal(t, "giulia@example.com", payload.UserEmail)
		assert.Equal(t, 34.47, payload.TotalAmount)
		assert.Len(t, payload.Items, 2)
	case <-time.After(3 * time.Second):
		t.Fatal("confirmation was never posted to the sink")
	}
}

func TestCheckoutClearsCartAfterCommit(t *testing.T) {
	checkout, carts, _, ident := newCheckoutFixture(t, "")

	require.NoError(t, carts.AddItem(context.Background(), ident, "m1", "v1", 1))

	_, err := checkout.Checkout(context.Background(), ident)
	require.NoError(t, err)

	cart, err := carts.GetCart(context.Background(), ident)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutEmptyCartFails(t *testing.T) {
	checkout, _, db, ident := newCheckoutFixture(t, "")

	_, err := checkout.Checkout(context.Background(), ident)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "a failed checkout must not write an order")
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	checkout, carts, _, _ := newCheckoutFixture(t, "")

	anon := anonIdentity("t1")
	require.NoError(t, carts.AddItem(context.Background(), anon, "m1", "v1", 1))

	_, err := checkout.Checkout(context.Background(), anon)
	assert.ErrorIs(t, err, ErrLoginRequired)
}

func TestCheckoutSurvivesSinkFailure(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer sink.Close()

	checkout, carts, db, ident := newCheckoutFixture(t, sink.URL)
	require.NoError(t, carts.AddItem(context.Background(), ident, "m1", "v1", 2))

	orderID, err := checkout.Checkout(context.Background(), ident)
	require.NoError(t, err)

	var order models.Order
	assert.NoError(t, db.First(&order, orderID).Error)

	cart, err := carts.GetCart(context.Background(), ident)
	require.NoError(t, err)
	assert.Empty(t, cart.Items, "cart is cleared even when the sink rejects the confirmation")
}

func TestBuildConfirmationMirrorsOrder(t *testing.T) {
	order := models.Order{
		ID:          42,
		Currency:    "GBP",
		TotalAmount: 12.00,
		OrderItems: []models.OrderItem{
			{Name: "Lasagna", VariantLabel: "Regular", Qty: 1, UnitPrice: 12.00, LineTotal: 12.00},
		},
	}

	payload := BuildConfirmation(order, "giulia@example.com")
	assert.Equal(t, uint(42), payload.OrderID)
	assert.Equal(t, "giulia@example.com", payload.UserEmail)
	assert.Equal(t, 12.00, payload.TotalAmount)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Lasagna", payload.Items[0].Name)
}
