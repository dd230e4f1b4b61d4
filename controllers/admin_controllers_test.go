package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alessioferri/trattoria-app/middlewares"
	"github.com/alessioferri/trattoria-app/models"
	"github.com/alessioferri/trattoria-app/services"
	"github.com/alessioferri/trattoria-app/utils"
)

type adminFixture struct {
	router     *gin.Engine
	db         *gorm.DB
	adminToken string
	userToken  string
}

func newAdminFixture(t *testing.T, sinkURL string) *adminFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.OrderItem{}, &models.Order{}, &models.User{}))
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}))

	admin := models.User{FirstName: "Ada", LastName: "Admin", Email: "admin@example.com", Password: "hashed", IsAdmin: true}
	require.NoError(t, db.Create(&admin).Error)
	adminToken, err := utils.GenerateToken(admin.ID, admin.Email, true)
	require.NoError(t, err)

	user := models.User{FirstName: "Ugo", LastName: "User", Email: "user@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	userToken, err := utils.GenerateToken(user.ID, user.Email, false)
	require.NoError(t, err)

	adminCtrl := NewAdminController(services.NewAdminService(db), nil, services.NewNotifyService(sinkURL))

	r := gin.New()
	r.Use(middlewares.IdentityMiddleware())
	g := r.Group("/admin", middlewares.AdminRequired())
	g.GET("/orders", adminCtrl.GetOrders)
	g.GET("/orders/:order_id", adminCtrl.GetOrderByID)
	g.PATCH("/orders/:order_id/status", adminCtrl.UpdateOrderStatus)
	g.POST("/orders/:order_id/notify", adminCtrl.ResendConfirmation)

	return &adminFixture{router: r, db: db, adminToken: adminToken, userToken: userToken}
}

func (f *adminFixture) seedOrder(t *testing.T, userEmail string, total float64) models.Order {
	t.Helper()
	var user models.User
	require.NoError(t, f.db.Where("email = ?", userEmail).First(&user).Error)

	order := models.Order{
		UserID:      user.ID,
		Status:      models.OrderStatusCreated,
		Currency:    "GBP",
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
		OrderItems: []models.OrderItem{
			{MenuItemID: "m1", VariantID: "v1", Name: "Lasagna", VariantLabel: "Regular", UnitPrice: total, Qty: 1, LineTotal: total},
		},
	}
	require.NoError(t, f.db.Create(&order).Error)
	return order
}

func (f *adminFixture) do(t *testing.T, method, path, bearer string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAdminRoutesRejectAnonymousAndNonAdmins(t *testing.T) {
	f := newAdminFixture(t, "")

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/admin/orders", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/admin/orders", f.userToken, nil).Code)
}

func TestAdminListsOrdersWithUserDetails(t *testing.T) {
	f := newAdminFixture(t, "")
	f.seedOrder(t, "user@example.com", 12.00)

	w := f.do(t, http.MethodGet, "/admin/orders?limit=10", f.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []services.AdminOrderSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "user@example.com", resp.Data[0].UserEmail)
	assert.Equal(t, 12.00, resp.Data[0].Total)
	require.Len(t, resp.Data[0].Items, 1)
	assert.Equal(t, "Lasagna", resp.Data[0].Items[0].Name)
}

func TestAdminUpdatesOrderStatus(t *testing.T) {
	f := newAdminFixture(t, "")
	order := f.seedOrder(t, "user@example.com", 12.00)
	path := "/admin/orders/" + strconv.FormatUint(uint64(order.ID), 10) + "/status"

	assert.Equal(t, http.StatusBadRequest,
		f.do(t, http.MethodPatch, path, f.adminToken, gin.H{"status": "shipped"}).Code)
	assert.Equal(t, http.StatusNotFound,
		f.do(t, http.MethodPatch, "/admin/orders/9999/status", f.adminToken, gin.H{"status": "paid"}).Code)

	w := f.do(t, http.MethodPatch, path, f.adminToken, gin.H{"status": "ready"})
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Order
	require.NoError(t, f.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusReady, reloaded.Status)
}

func TestResendConfirmation(t *testing.T) {
	received := make(chan services.OrderConfirmation, 1)
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload services.OrderConfirmation
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	f := newAdminFixture(t, sink.URL)
	order := f.seedOrder(t, "user@example.com", 12.00)
	path := "/admin/orders/" + strconv.FormatUint(uint64(order.ID), 10) + "/notify"

	w := f.do(t, http.MethodPost, path, f.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case payload := <-received:
		assert.Equal(t, order.ID, payload.OrderID)
		assert.Equal(t, "user@example.com", payload.UserEmail)
	default:
		t.Fatal("confirmation was not delivered")
	}
}

func TestResendConfirmationSinkFailure(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer sink.Close()

	f := newAdminFixture(t, sink.URL)
	order := f.seedOrder(t, "user@example.com", 12.00)
	path := "/admin/orders/" + strconv.FormatUint(uint64(order.ID), 10) + "/notify"

	w := f.do(t, http.MethodPost, path, f.adminToken, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
