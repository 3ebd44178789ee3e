package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

type CheckoutRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Address1      string `json:"address1" binding:"required"`
	Address2      string `json:"address2"`
	Country       string `json:"country"`
	PostCode      string `json:"post_code"`
	ShippingID    *uint  `json:"shipping_id"`
	CouponCode    string `json:"coupon_code"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=cod paypal"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new process delivered cancel"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=paid unpaid"`
}

// Checkout converts the user's cart into an order
// POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid checkout details")
		return
	}

	order, err := ctrl.orderService.Checkout(userID, service.CheckoutRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address1:      req.Address1,
		Address2:      req.Address2,
		Country:       req.Country,
		PostCode:      req.PostCode,
		ShippingID:    req.ShippingID,
		CouponCode:    req.CouponCode,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Cart is empty")
		case errors.Is(err, service.ErrShippingNotFound):
			apperrors.BadRequest(c, apperrors.ShippingNotFound, "Shipping option not found")
		case errors.Is(err, service.ErrInvalidCoupon):
			apperrors.BadRequest(c, apperrors.CouponInvalid, "Invalid coupon code")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.BadRequest(c, apperrors.ProductOutOfStock, "Not enough stock available")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "checkout")
		}
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders returns the user's order history
// GET /api/v1/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to list orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one order with its lines
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to get order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// GetOrderDetail returns the rendered order detail view
// GET /api/v1/orders/:id/detail
func (ctrl *OrderController) GetOrderDetail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	detail, err := ctrl.orderService.GetOrderDetail(userID, uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to get order detail", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get order detail")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": detail,
	})
}

// UpdateOrderStatus moves an order through its lifecycle (admin)
// PUT /api/v1/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Invalid order status")
		return
	}

	if err := ctrl.orderService.UpdateOrderStatus(uint(orderID), model.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update order status")
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id": orderID,
		"status":   req.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
	})
}

// UpdatePaymentStatus marks the user's order paid or unpaid
// PUT /api/v1/orders/:id/payment
func (ctrl *OrderController) UpdatePaymentStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment status")
		return
	}

	if err := ctrl.orderService.UpdatePaymentStatus(userID, uint(orderID), model.PaymentStatus(req.PaymentStatus)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to update payment status", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update payment status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment status updated",
	})
}

// DeleteOrder soft-deletes an order (admin)
// DELETE /api/v1/orders/:id
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	if err := ctrl.orderService.DeleteOrder(uint(orderID)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": orderID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted",
	})
}
