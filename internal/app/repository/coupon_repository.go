package repository

import (
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	FindActiveByCode(code string) (*model.Coupon, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *model.Coupon) error {
	if err := r.db.Create(coupon).Error; err != nil {
		logger.Error("Failed to create coupon in database", err, map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}
	return nil
}

func (r *couponRepository) FindActiveByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.Where("code = ? AND status = ?", code, "active").First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}
