package model

import "time"

type CouponType string

const (
	CouponTypeFixed   CouponType = "fixed"
	CouponTypePercent CouponType = "percent"
)

// Coupon is a discount code redeemed at checkout. The computed discount is
// copied onto the order; the coupon row itself is never referenced again.
type Coupon struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Code      string     `gorm:"uniqueIndex;not null" json:"code"`
	Type      CouponType `gorm:"type:varchar(20);default:'fixed'" json:"type"`
	Value     float64    `gorm:"not null" json:"value"`
	Status    string     `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// Discount computes the amount this coupon takes off the given subtotal.
// The result never exceeds the subtotal.
func (c *Coupon) Discount(subTotal float64) float64 {
	var discount float64
	switch c.Type {
	case CouponTypePercent:
		discount = subTotal * c.Value / 100
	default:
		discount = c.Value
	}
	if discount > subTotal {
		return subTotal
	}
	return discount
}
