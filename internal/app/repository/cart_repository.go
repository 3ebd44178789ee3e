package repository

import (
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cart *model.Cart) error
	FindByID(id uint) (*model.Cart, error)
	FindInCartByUser(userID uint) ([]model.Cart, error)
	FindInCartByUserAndProduct(userID, productID uint) (*model.Cart, error)
	Update(cart *model.Cart) error
	AttachToOrder(id, orderID uint) error
	Delete(id uint) error
	ClearInCartByUser(userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	logger.Debug("Creating cart line in database", map[string]interface{}{
		"user_id":    cart.UserID,
		"product_id": cart.ProductID,
		"quantity":   cart.Quantity,
		"price":      cart.Price,
		"amount":     cart.Amount,
	})

	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart line in database", err, map[string]interface{}{
			"user_id":    cart.UserID,
			"product_id": cart.ProductID,
		})
		return err
	}

	logger.Debug("Cart line created in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": cart.UserID,
	})
	return nil
}

func (r *cartRepository) FindByID(id uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Preload("Product").First(&cart, id).Error
	if err != nil {
		logger.Error("Failed to find cart line by ID in database", err, map[string]interface{}{
			"cart_id": id,
		})
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindInCartByUser(userID uint) ([]model.Cart, error) {
	var carts []model.Cart
	err := r.db.Where("user_id = ? AND status = ?", userID, model.CartStatusNew).
		Preload("Product").
		Find(&carts).Error
	if err != nil {
		logger.Error("Failed to find cart lines by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart lines found by user in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(carts),
	})
	return carts, nil
}

func (r *cartRepository) FindInCartByUserAndProduct(userID, productID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("user_id = ? AND product_id = ? AND status = ?", userID, productID, model.CartStatusNew).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Update(cart *model.Cart) error {
	logger.Debug("Updating cart line in database", map[string]interface{}{
		"cart_id":  cart.ID,
		"quantity": cart.Quantity,
		"amount":   cart.Amount,
	})

	if err := r.db.Save(cart).Error; err != nil {
		logger.Error("Failed to update cart line in database", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return err
	}
	return nil
}

// AttachToOrder links a cart line to an order and marks it ordered. Only
// order_id and status change; captured price, amount and snapshot fields
// stay exactly as written at creation.
func (r *cartRepository) AttachToOrder(id, orderID uint) error {
	logger.Debug("Attaching cart line to order in database", map[string]interface{}{
		"cart_id":  id,
		"order_id": orderID,
	})

	result := r.db.Model(&model.Cart{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"order_id": orderID,
			"status":   model.CartStatusOrdered,
		})
	if result.Error != nil {
		logger.Error("Failed to attach cart line to order in database", result.Error, map[string]interface{}{
			"cart_id":  id,
			"order_id": orderID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cartRepository) Delete(id uint) error {
	logger.Debug("Deleting cart line from database", map[string]interface{}{
		"cart_id": id,
	})

	if err := r.db.Delete(&model.Cart{}, id).Error; err != nil {
		logger.Error("Failed to delete cart line from database", err, map[string]interface{}{
			"cart_id": id,
		})
		return err
	}
	return nil
}

// ClearInCartByUser removes a user's unordered lines. Ordered lines are
// historical order detail and are never deleted here.
func (r *cartRepository) ClearInCartByUser(userID uint) error {
	logger.Debug("Clearing cart lines by user from database", map[string]interface{}{
		"user_id": userID,
	})

	err := r.db.Where("user_id = ? AND status = ?", userID, model.CartStatusNew).
		Delete(&model.Cart{}).Error
	if err != nil {
		logger.Error("Failed to clear cart lines by user from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
