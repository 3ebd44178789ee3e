package repository

import (
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) error
	UpdatePaymentStatus(id uint, status model.PaymentStatus) error
	Delete(id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// preloadOrder loads everything the order detail needs: the attached cart
// lines with their (possibly gone) products, plus the shipping option.
func (r *orderRepository) preloadOrder() *gorm.DB {
	return r.db.Preload("Carts", func(db *gorm.DB) *gorm.DB {
		return db.Preload("Product")
	}).Preload("Shipping").Preload("User")
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"user_id":      order.UserID,
		"order_number": order.OrderNumber,
		"total_amount": order.TotalAmount,
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id":      order.UserID,
			"order_number": order.OrderNumber,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.preloadOrder().First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.preloadOrder().Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Orders found by user in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (r *orderRepository) UpdateStatus(id uint, status model.OrderStatus) error {
	logger.Debug("Updating order status in database", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	result := r.db.Model(&model.Order{}).Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update order status in database", result.Error, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) UpdatePaymentStatus(id uint, status model.PaymentStatus) error {
	result := r.db.Model(&model.Order{}).Where("id = ?", id).
		Update("payment_status", status)
	if result.Error != nil {
		logger.Error("Failed to update order payment status in database", result.Error, map[string]interface{}{
			"order_id":       id,
			"payment_status": status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) Delete(id uint) error {
	logger.Debug("Deleting order from database", map[string]interface{}{
		"order_id": id,
	})

	result := r.db.Delete(&model.Order{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete order from database", result.Error, map[string]interface{}{
			"order_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
