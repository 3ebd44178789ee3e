package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type CouponController struct {
	couponService service.CouponService
}

func NewCouponController(couponService service.CouponService) *CouponController {
	return &CouponController{couponService: couponService}
}

type ValidateCouponRequest struct {
	Code     string  `json:"code" binding:"required"`
	SubTotal float64 `json:"sub_total" binding:"required,gt=0"`
}

// ValidateCoupon checks a coupon code against a subtotal
// POST /api/v1/coupons/validate
func (ctrl *CouponController) ValidateCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid coupon details")
		return
	}

	discount, err := ctrl.couponService.Validate(req.Code, req.SubTotal)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoupon) {
			apperrors.BadRequest(c, apperrors.CouponInvalid, "Invalid coupon code")
			return
		}
		log.Error("Failed to validate coupon", err, map[string]interface{}{
			"code": req.Code,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "validate coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":     req.Code,
		"discount": discount,
		"total":    req.SubTotal - discount,
	})
}
