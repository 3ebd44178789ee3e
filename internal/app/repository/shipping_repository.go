package repository

import (
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type ShippingRepository interface {
	Create(shipping *model.Shipping) error
	FindActive() ([]model.Shipping, error)
	FindByID(id uint) (*model.Shipping, error)
}

type shippingRepository struct {
	db *gorm.DB
}

func NewShippingRepository(db *gorm.DB) ShippingRepository {
	return &shippingRepository{db: db}
}

func (r *shippingRepository) Create(shipping *model.Shipping) error {
	if err := r.db.Create(shipping).Error; err != nil {
		logger.Error("Failed to create shipping option in database", err, map[string]interface{}{
			"type": shipping.Type,
		})
		return err
	}
	return nil
}

func (r *shippingRepository) FindActive() ([]model.Shipping, error) {
	var shippings []model.Shipping
	err := r.db.Where("status = ?", "active").Find(&shippings).Error
	if err != nil {
		logger.Error("Failed to list shipping options in database", err)
		return nil, err
	}
	return shippings, nil
}

func (r *shippingRepository) FindByID(id uint) (*model.Shipping, error) {
	var shipping model.Shipping
	if err := r.db.First(&shipping, id).Error; err != nil {
		return nil, err
	}
	return &shipping, nil
}
