package service

import (
	"testing"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderServiceFixture struct {
	orderService OrderService
	cartService  CartService
	user         *model.User
	product      *model.Product
	shipping     *model.Shipping
	testDB       *gorm.DB
}

func setupOrderServiceTest(t *testing.T) *orderServiceFixture {
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

	cartService := NewCartService(cartRepo, productRepo, orderRepo)
	orderService := NewOrderService(orderRepo, cartRepo, shippingRepo, couponRepo, testDB)

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
		Summary: "Lightweight running shoes with a breathable mesh upper.",
		Photo:   "/images/products/red-shoes.jpg",
		Price:   79.99,
		Stock:   50,
	}
	testDB.Create(product)

	shipping := &model.Shipping{Type: "Standard Shipping", Price: 5.00, Status: "active"}
	testDB.Create(shipping)

	return &orderServiceFixture{
		orderService: orderService,
		cartService:  cartService,
		user:         user,
		product:      product,
		shipping:     shipping,
		testDB:       testDB,
	}
}

func checkoutRequest(f *orderServiceFixture) CheckoutRequest {
	return CheckoutRequest{
		FirstName:  "Test",
		LastName:   "Buyer",
		Email:      "buyer@example.com",
		Phone:      "010-1234-5678",
		Address1:   "1 Main St",
		Country:    "KR",
		PostCode:   "04524",
		ShippingID: &f.shipping.ID,
	}
}

func TestOrderService_Checkout_Success(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 2)
	require.NoError(t, err)

	order, err := f.orderService.Checkout(f.user.ID, checkoutRequest(f))
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderNumber)
	assert.InDelta(t, 159.98, order.SubTotal, 0.001)
	assert.InDelta(t, 164.98, order.TotalAmount, 0.001) // subtotal + shipping
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, model.OrderStatusNew, order.Status)
	assert.Equal(t, model.PaymentStatusUnpaid, order.PaymentStatus)

	require.Len(t, order.Carts, 1)
	assert.Equal(t, model.CartStatusOrdered, order.Carts[0].Status)

	// Cart is emptied by the status flip
	lines, _ := f.cartService.GetUserCart(f.user.ID)
	assert.Len(t, lines, 0)

	// Stock decremented
	var stocked model.Product
	f.testDB.First(&stocked, f.product.ID)
	assert.Equal(t, 48, stocked.Stock)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.orderService.Checkout(f.user.ID, checkoutRequest(f))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_Checkout_ShippingNotFound(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)

	req := checkoutRequest(f)
	missing := uint(9999)
	req.ShippingID = &missing

	_, err = f.orderService.Checkout(f.user.ID, req)
	assert.ErrorIs(t, err, ErrShippingNotFound)
}

func TestOrderService_Checkout_WithCoupon(t *testing.T) {
	f := setupOrderServiceTest(t)

	coupon := &model.Coupon{Code: "WELCOME10", Type: model.CouponTypePercent, Value: 10, Status: "active"}
	f.testDB.Create(coupon)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 2)
	require.NoError(t, err)

	req := checkoutRequest(f)
	req.CouponCode = "WELCOME10"

	order, err := f.orderService.Checkout(f.user.ID, req)
	require.NoError(t, err)

	assert.InDelta(t, 15.998, order.Coupon, 0.001)
	assert.InDelta(t, 159.98+5.00-15.998, order.TotalAmount, 0.001)
}

func TestOrderService_Checkout_InvalidCoupon(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)

	req := checkoutRequest(f)
	req.CouponCode = "NOPE"

	_, err = f.orderService.Checkout(f.user.ID, req)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestOrderService_Checkout_WithoutShipping(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)

	req := checkoutRequest(f)
	req.ShippingID = nil

	order, err := f.orderService.Checkout(f.user.ID, req)
	require.NoError(t, err)

	assert.Nil(t, order.ShippingID)
	assert.InDelta(t, 79.99, order.TotalAmount, 0.001)
	assert.Equal(t, 0.0, order.ShippingCharge())
}

func TestOrderService_ShippingDeleteSeversOrderReference(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)

	order, err := f.orderService.Checkout(f.user.ID, checkoutRequest(f))
	require.NoError(t, err)
	require.NotNil(t, order.ShippingID)

	// Shipping option removed after the order exists
	require.NoError(t, f.testDB.Delete(&model.Shipping{}, f.shipping.ID).Error)

	var severed model.Order
	require.NoError(t, f.testDB.First(&severed, order.ID).Error)
	assert.Nil(t, severed.ShippingID)

	// Totals were fixed at checkout and still include the charge paid
	assert.InDelta(t, 84.99, severed.TotalAmount, 0.001)
	assert.Equal(t, 0.0, severed.ShippingCharge())
}

func TestOrderService_Checkout_DeletedProductLineStillOrders(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 2)
	require.NoError(t, err)

	// Product disappears between add-to-cart and checkout
	require.NoError(t, f.testDB.Delete(&model.Product{}, f.product.ID).Error)

	order, err := f.orderService.Checkout(f.user.ID, checkoutRequest(f))
	require.NoError(t, err)

	require.Len(t, order.Carts, 1)
	line := order.Carts[0]
	assert.Nil(t, line.ProductID)
	assert.Equal(t, "Red Shoes", line.ProductTitle)
	assert.InDelta(t, 159.98, line.Amount, 0.001)
	assert.InDelta(t, 159.98, order.SubTotal, 0.001)
}

func TestOrderService_GetOrderByID_OwnershipMismatch(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)

	order, err := f.orderService.Checkout(f.user.ID, checkoutRequest(f))
	require.NoError(t, err)

	_, err = f.orderService.GetOrderByID(f.user.ID+1, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_GetUserOrders(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)
	_, err = f.orderService.Checkout(f.user.ID, checkoutRequest(f))
	require.NoError(t, err)

	orders, err := f.orderService.GetUserOrders(f.user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = f.orderService.GetUserOrders(f.user.ID + 1)
	require.NoError(t, err)
	assert.Len(t, orders, 0)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)
	order, err := f.orderService.Checkout(f.user.ID, checkoutRequest(f))
	require.NoError(t, err)

	require.NoError(t, f.orderService.UpdateOrderStatus(order.ID, model.OrderStatusProcess))

	updated, err := f.orderService.GetOrderByID(f.user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcess, updated.Status)

	err = f.orderService.UpdateOrderStatus(9999, model.OrderStatusProcess)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdatePaymentStatus(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)
	order, err := f.orderService.Checkout(f.user.ID, checkoutRequest(f))
	require.NoError(t, err)

	require.NoError(t, f.orderService.UpdatePaymentStatus(f.user.ID, order.ID, model.PaymentStatusPaid))

	updated, err := f.orderService.GetOrderByID(f.user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, updated.PaymentStatus)

	// Another user cannot touch the order
	err = f.orderService.UpdatePaymentStatus(f.user.ID+1, order.ID, model.PaymentStatusUnpaid)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	f := setupOrderServiceTest(t)

	_, err := f.cartService.AddToCart(f.user.ID, f.product.ID, 1)
	require.NoError(t, err)
	order, err := f.orderService.Checkout(f.user.ID, checkoutRequest(f))
	require.NoError(t, err)

	require.NoError(t, f.orderService.DeleteOrder(order.ID))

	_, err = f.orderService.GetOrderByID(f.user.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
