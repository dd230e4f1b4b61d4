package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alessioferri/trattoria-app/models"
)

func seedOrder(t *testing.T, db *gorm.DB, userID uint, createdAt time.Time, total float64) models.Order {
	t.Helper()
	order := models.Order{
		UserID:      userID,
		Status:      models.OrderStatusCreated,
		Currency:    "GBP",
		TotalAmount: total,
		CreatedAt:   createdAt,
		OrderItems: []models.OrderItem{
			{MenuItemID: "m1", VariantID: "v1", Name: "Lasagna", VariantLabel: "Regular", UnitPrice: total, Qty: 1, LineTotal: total},
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := seedOrder(t, db, user.ID, base, 10.00)
	newer := seedOrder(t, db, user.ID, base.Add(time.Hour), 20.00)

	svc := NewAdminService(db)
	summaries, err := svc.RecentOrders(50)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, newer.ID, summaries[0].OrderID)
	assert.Equal(t, older.ID, summaries[1].OrderID)
	assert.Equal(t, "Giulia", summaries[0].UserFirstName)
	assert.Equal(t, "giulia@example.com", summaries[0].UserEmail)
	require.Len(t, summaries[0].Items, 1)
	assert.Equal(t, "Lasagna", summaries[0].Items[0].Name)
}

func TestRecentOrdersClampsLimit(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedOrder(t, db, user.ID, base, 10.00)
	seedOrder(t, db, user.ID, base.Add(time.Minute), 11.00)

	svc := NewAdminService(db)
	summaries, err := svc.RecentOrders(0)
	require.NoError(t, err)
	assert.Len(t, summaries, 1, "a limit below 1 is clamped to 1")
}

func TestOrderByID(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	created := seedOrder(t, db, user.ID, time.Now().UTC(), 15.00)

	svc := NewAdminService(db)
	order, err := svc.OrderByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, order.ID)
	assert.Equal(t, user.Email, order.User.Email)
	assert.Len(t, order.OrderItems, 1)

	_, err = svc.OrderByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	order := seedOrder(t, db, user.ID, time.Now().UTC(), 15.00)

	svc := NewAdminService(db)

	assert.ErrorIs(t, svc.UpdateStatus(order.ID, "shipped"), ErrInvalidStatus)
	assert.ErrorIs(t, svc.UpdateStatus(9999, models.OrderStatusPaid), gorm.ErrRecordNotFound)

	require.NoError(t, svc.UpdateStatus(order.ID, models.OrderStatusReady))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusReady, reloaded.Status)

	// Any allowed status may replace any other, including moving backwards.
	require.NoError(t, svc.UpdateStatus(order.ID, models.OrderStatusCreated))
}
