package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns the user's current cart lines
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	carts, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to get cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get cart")
		return
	}

	var total float64
	for _, line := range carts {
		total += line.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"carts": carts,
		"count": len(carts),
		"total": total,
	})
}

// AddToCart adds a product to the user's cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart details")
		return
	}

	cart, err := ctrl.cartService.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.ValidationInvalidQuantity, "Quantity must be positive")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.ValidationInvalidPrice, "Product price is invalid")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.BadRequest(c, apperrors.ProductOutOfStock, "Not enough stock available")
		default:
			log.Error("Failed to add to cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add to cart")
		}
		return
	}

	log.Info("Product added to cart", map[string]interface{}{
		"user_id": userID,
		"cart_id": cart.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added to cart",
		"cart":    cart,
	})
}

// UpdateCartItem changes the quantity of a cart line
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	cartID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart details")
		return
	}

	if err := ctrl.cartService.UpdateQuantity(userID, uint(cartID), req.Quantity); err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
		case errors.Is(err, service.ErrInvalidQuantity):
			apperrors.BadRequest(c, apperrors.ValidationInvalidQuantity, "Quantity must be positive")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.BadRequest(c, apperrors.ProductOutOfStock, "Not enough stock available")
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"user_id": userID,
				"cart_id": cartID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update cart item")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated",
	})
}

// RemoveCartItem deletes a cart line
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	cartID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	if err := ctrl.cartService.RemoveFromCart(userID, uint(cartID)); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id": userID,
			"cart_id": cartID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed",
	})
}

// ClearCart removes every in-cart line for the user
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}
