package model

import "time"

// Shipping is a flat-rate delivery option offered at checkout.
type Shipping struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Type      string    `gorm:"not null" json:"type"`
	Price     float64   `gorm:"not null" json:"price"`
	Status    string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// SET NULL so removing a shipping option never blocks on, or cascades
	// into, the orders that used it.
	Orders []Order `gorm:"foreignKey:ShippingID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (Shipping) TableName() string {
	return "shippings"
}
