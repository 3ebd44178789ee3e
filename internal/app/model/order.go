package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string   // order lifecycle code
type PaymentStatus string // payment state code

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusProcess   OrderStatus = "process"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancel    OrderStatus = "cancel"

	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"

	PaymentMethodCOD    = "cod"
	PaymentMethodPaypal = "paypal"
)

// Order groups the cart lines a user checked out. Monetary totals are
// fixed at checkout; the attached Carts keep their own captured price and
// amount, so the record stays consistent no matter what happens to the
// catalog afterwards.
type Order struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	OrderNumber string  `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	SubTotal    float64 `gorm:"not null" json:"sub_total"`
	// Coupon holds the discount amount applied at checkout, 0 when none.
	Coupon      float64 `gorm:"default:0" json:"coupon"`
	TotalAmount float64 `gorm:"not null" json:"total_amount"`
	Quantity    int     `gorm:"not null" json:"quantity"`

	ShippingID *uint     `gorm:"index" json:"shipping_id,omitempty"`
	Shipping   *Shipping `gorm:"foreignKey:ShippingID" json:"shipping,omitempty"`

	PaymentMethod string        `gorm:"type:varchar(20);default:'cod'" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'unpaid'" json:"payment_status"`
	Status        OrderStatus   `gorm:"type:varchar(20);default:'new'" json:"status"`

	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `gorm:"not null" json:"email"`
	Phone     string `gorm:"not null" json:"phone"`
	Address1  string `gorm:"not null" json:"address1"`
	Address2  string `json:"address2"`
	Country   string `json:"country"`
	PostCode  string `json:"post_code"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Carts []Cart `gorm:"foreignKey:OrderID" json:"carts,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// ShippingCharge returns the shipping price, 0.0 when no shipping relation
// is attached (pickup orders, or the shipping option was later removed).
func (o *Order) ShippingCharge() float64 {
	if o.Shipping == nil {
		return 0
	}
	return o.Shipping.Price
}
