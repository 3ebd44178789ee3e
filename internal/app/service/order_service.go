package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidCoupon    = errors.New("invalid coupon code")
	ErrShippingNotFound = errors.New("shipping option not found")
)

// CheckoutRequest carries everything the customer submits at checkout.
type CheckoutRequest struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address1      string
	Address2      string
	Country       string
	PostCode      string
	ShippingID    *uint
	CouponCode    string
	PaymentMethod string
}

type OrderService interface {
	Checkout(userID uint, req CheckoutRequest) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	GetOrderDetail(userID, orderID uint) (*OrderDetailView, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
	UpdatePaymentStatus(userID, orderID uint, status model.PaymentStatus) error
	DeleteOrder(orderID uint) error
}

type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	shippingRepo repository.ShippingRepository
	couponRepo   repository.CouponRepository
	db           *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	shippingRepo repository.ShippingRepository,
	couponRepo repository.CouponRepository,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		shippingRepo: shippingRepo,
		couponRepo:   couponRepo,
		db:           db,
	}
}

// Checkout converts the user's in-cart lines into an order in a single
// transaction. Totals are computed from the amounts already captured on
// the lines; the lines themselves only gain an order_id and status flip.
// Snapshot and money fields are left exactly as written at add-to-cart.
func (s *orderService) Checkout(userID uint, req CheckoutRequest) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id":     userID,
		"shipping_id": req.ShippingID,
		"coupon_code": req.CouponCode,
	})

	cartLines, err := s.cartRepo.FindInCartByUser(userID)
	if err != nil {
		logger.Error("Failed to fetch cart lines for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(cartLines) == 0 {
		logger.Warn("Cannot checkout: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	var shipping *model.Shipping
	if req.ShippingID != nil {
		shipping, err = s.shippingRepo.FindByID(*req.ShippingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Checkout failed: shipping option not found", map[string]interface{}{
					"user_id":     userID,
					"shipping_id": *req.ShippingID,
				})
				return nil, ErrShippingNotFound
			}
			return nil, err
		}
	}

	var subTotal float64
	var totalQuantity int
	for _, line := range cartLines {
		subTotal += line.Amount
		totalQuantity += line.Quantity
	}

	var discount float64
	if req.CouponCode != "" {
		coupon, err := s.couponRepo.FindActiveByCode(req.CouponCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Checkout failed: invalid coupon", map[string]interface{}{
					"user_id":     userID,
					"coupon_code": req.CouponCode,
				})
				return nil, ErrInvalidCoupon
			}
			return nil, err
		}
		discount = coupon.Discount(subTotal)
	}

	var shippingPrice float64
	if shipping != nil {
		shippingPrice = shipping.Price
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentMethodCOD
	}

	order := &model.Order{
		OrderNumber:   generateOrderNumber(),
		UserID:        userID,
		SubTotal:      subTotal,
		Coupon:        discount,
		TotalAmount:   subTotal + shippingPrice - discount,
		Quantity:      totalQuantity,
		ShippingID:    req.ShippingID,
		PaymentMethod: paymentMethod,
		PaymentStatus: model.PaymentStatusUnpaid,
		Status:        model.OrderStatusNew,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address1:      req.Address1,
		Address2:      req.Address2,
		Country:       req.Country,
		PostCode:      req.PostCode,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during checkout, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	for _, line := range cartLines {
		if err := tx.Model(&model.Cart{}).Where("id = ?", line.ID).
			Updates(map[string]interface{}{
				"order_id": order.ID,
				"status":   model.CartStatusOrdered,
			}).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to attach cart line during checkout", err, map[string]interface{}{
				"user_id": userID,
				"cart_id": line.ID,
			})
			return nil, err
		}

		// A line whose product is already gone is still orderable: its
		// snapshot and captured amounts carry the record. Stock only
		// moves while the product exists.
		if line.ProductID != nil && line.Product != nil {
			if line.Product.Stock < line.Quantity {
				tx.Rollback()
				logger.Warn("Checkout failed: insufficient stock", map[string]interface{}{
					"user_id":    userID,
					"product_id": *line.ProductID,
					"requested":  line.Quantity,
					"available":  line.Product.Stock,
				})
				return nil, ErrInsufficientStock
			}
			if err := tx.Model(&model.Product{}).Where("id = ?", *line.ProductID).
				Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
				tx.Rollback()
				logger.Error("Failed to decrement stock during checkout", err, map[string]interface{}{
					"user_id":    userID,
					"product_id": *line.ProductID,
				})
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit checkout transaction", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
		"line_count":   len(cartLines),
	})

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderDetail returns the rendered order-detail view. Deleted products
// and absent shipping degrade to snapshots, placeholders and $0.00 rather
// than an error.
func (s *orderService) GetOrderDetail(userID, orderID uint) (*OrderDetailView, error) {
	order, err := s.GetOrderByID(userID, orderID)
	if err != nil {
		return nil, err
	}
	return BuildOrderDetail(order), nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id":   orderID,
		"new_status": status,
	})

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}
	return nil
}

// UpdatePaymentStatus flips an order's payment state. Ownership is checked
// first so users can only touch their own orders.
func (s *orderService) UpdatePaymentStatus(userID, orderID uint, status model.PaymentStatus) error {
	logger.Info("Updating order payment status", map[string]interface{}{
		"user_id":        userID,
		"order_id":       orderID,
		"payment_status": status,
	})

	if _, err := s.GetOrderByID(userID, orderID); err != nil {
		return err
	}

	if err := s.orderRepo.UpdatePaymentStatus(orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		logger.Error("Failed to update order payment status", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}
	return nil
}

func (s *orderService) DeleteOrder(orderID uint) error {
	logger.Info("Deleting order", map[string]interface{}{
		"order_id": orderID,
	})

	if err := s.orderRepo.Delete(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		logger.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}
	return nil
}

func generateOrderNumber() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return "ORD-" + fragment
}
