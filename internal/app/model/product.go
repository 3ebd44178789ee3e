package model

import (
	"time"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product is the live catalog record. It carries no soft-delete column on
// purpose: removing a product must delete the row so the carts table's
// ON DELETE SET NULL policy fires and severs the reference at the schema
// level. Historical line items keep displaying from their snapshots.
type Product struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Slug        string        `gorm:"uniqueIndex;not null" json:"slug"`
	Summary     string        `gorm:"type:text" json:"summary"`
	Description string        `gorm:"type:text" json:"description"`
	Photo       string        `gorm:"type:varchar(255)" json:"photo"`
	Price       float64       `gorm:"not null" json:"price"`
	Discount    float64       `gorm:"default:0" json:"discount"`
	Stock       int           `gorm:"default:0" json:"stock"`
	Status      ProductStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// The constraint lives on this side: gorm builds fk_products_carts
	// from the has-many, so the SET NULL action must be declared here.
	Carts []Cart `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice is the unit price a new line item captures: list price
// minus the flat discount, floored at zero.
func (p *Product) EffectivePrice() float64 {
	price := p.Price - p.Discount
	if price < 0 {
		return 0
	}
	return price
}

// Snapshot copies the display attributes a line item stores at creation.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		Title:   p.Title,
		Photo:   p.Photo,
		Summary: p.Summary,
	}
}

// ProductSnapshot is the point-in-time copy of a product's display fields
// written onto a cart line when it is created.
type ProductSnapshot struct {
	Title   string
	Photo   string
	Summary string
}
