package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderControllerFixture struct {
	controller  *OrderController
	cartService service.CartService
	router      *gin.Engine
	testDB      *gorm.DB
	user        *model.User
	product     *model.Product
	shipping    *model.Shipping
}

func setupOrderControllerTest(t *testing.T) *orderControllerFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	shippingRepo := repository.NewShippingRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)

	cartService := service.NewCartService(cartRepo, productRepo, orderRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, shippingRepo, couponRepo, testDB)
	orderController := NewOrderController(orderService)

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Name:         "Buyer",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Title:   "Red Shoes",
		Slug:    "red-shoes",
		Summary: "Lightweight running shoes.",
		Photo:   "/images/products/red-shoes.jpg",
		Price:   79.99,
		Stock:   50,
	}
	testDB.Create(product)

	shipping := &model.Shipping{Type: "Standard Shipping", Price: 5.00, Status: "active"}
	testDB.Create(shipping)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return &orderControllerFixture{
		controller:  orderController,
		cartService: cartService,
		router:      router,
		testDB:      testDB,
		user:        user,
		product:     product,
		shipping:    shipping,
	}
}

func checkoutBody(f *orderControllerFixture) []byte {
	body, _ := json.Marshal(CheckoutRequest{
		FirstName:  "Test",
		Email:      "buyer@example.com",
		Phone:      "010-1234-5678",
		Address1:   "1 Main St",
		ShippingID: &f.shipping.ID,
	})
	return body
}

func TestOrderController_Checkout_Success(t *testing.T) {
	f := setupOrderControllerTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 2)
	require.NoError(t, err)

	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.Checkout(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(checkoutBody(f)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	order := response["order"].(map[string]interface{})
	assert.NotEmpty(t, order["order_number"])
	assert.InDelta(t, 164.98, order["total_amount"].(float64), 0.001)
}

func TestOrderController_Checkout_EmptyCart(t *testing.T) {
	f := setupOrderControllerTest(t)

	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.Checkout(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(checkoutBody(f)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CART_EMPTY")
}

func TestOrderController_GetOrderDetail_Success(t *testing.T) {
	f := setupOrderControllerTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)

	var orderID uint
	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.Checkout(c)
	})
	f.router.GET("/orders/:id/detail", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.GetOrderDetail(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(checkoutBody(f)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var checkoutResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkoutResp))
	orderID = uint(checkoutResp["order"].(map[string]interface{})["id"].(float64))

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d/detail", orderID), nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	detail := response["order"].(map[string]interface{})
	assert.Equal(t, "$79.99", detail["sub_total"])
	assert.Equal(t, "$5.00", detail["shipping_charge"])
	assert.Equal(t, "$84.99", detail["total_amount"])
	assert.NotContains(t, detail, "discount")

	lines := detail["lines"].([]interface{})
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "Red Shoes", line["title"])
	assert.Equal(t, "/products/red-shoes", line["product_url"])
}

func TestOrderController_GetOrderDetail_DeletedProduct(t *testing.T) {
	f := setupOrderControllerTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)

	f.router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.Checkout(c)
	})
	f.router.GET("/orders/:id/detail", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.GetOrderDetail(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(checkoutBody(f)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var checkoutResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkoutResp))
	orderID := uint(checkoutResp["order"].(map[string]interface{})["id"].(float64))

	// Delete the product after the order exists
	require.NoError(t, f.testDB.Delete(&model.Product{}, f.product.ID).Error)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d/detail", orderID), nil)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	lines := response["order"].(map[string]interface{})["lines"].([]interface{})
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})

	// Snapshot still renders; no product link for the gone product
	assert.Equal(t, "Red Shoes", line["title"])
	assert.Equal(t, "$79.99", line["price"])
	assert.NotContains(t, line, "product_url")
}

func TestOrderController_GetOrder_NotFound(t *testing.T) {
	f := setupOrderControllerTest(t)

	f.router.GET("/orders/:id", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/9999", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_NOT_FOUND")
}

func TestOrderController_GetOrder_InvalidID(t *testing.T) {
	f := setupOrderControllerTest(t)

	f.router.GET("/orders/:id", func(c *gin.Context) {
		setUserIDInContext(c, f.user.ID)
		f.controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/abc", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
