package service

import (
	"errors"

	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type CouponService interface {
	// Validate resolves an active coupon code and returns the discount it
	// would take off the given subtotal.
	Validate(code string, subTotal float64) (float64, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) Validate(code string, subTotal float64) (float64, error) {
	coupon, err := s.couponRepo.FindActiveByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Coupon validation failed: code not found", map[string]interface{}{
				"code": code,
			})
			return 0, ErrInvalidCoupon
		}
		logger.Error("Failed to look up coupon", err, map[string]interface{}{
			"code": code,
		})
		return 0, err
	}

	discount := coupon.Discount(subTotal)
	logger.Debug("Coupon validated", map[string]interface{}{
		"code":     code,
		"discount": discount,
	})
	return discount, nil
}
