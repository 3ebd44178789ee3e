package model

import (
	"time"
	"unicode/utf8"
)

type CartStatus string // line item lifecycle code

const (
	CartStatusNew     CartStatus = "new"      // still in the cart
	CartStatusOrdered CartStatus = "progress" // attached to an order
)

// Fallback values used when a snapshot field is absent and the live
// product reference no longer resolves.
const (
	TitleNotAvailable   = "Product Not Available"
	SummaryNotAvailable = "No description available"
	PlaceholderPhoto    = "/images/placeholder.png"
)

// Cart is one product-and-quantity line inside a cart or order. A single
// row serves both: order_id stays NULL while the item sits in the cart and
// is filled in at checkout. Price and amount are captured when the row is
// created and never recomputed, so later product price edits cannot change
// order history.
type Cart struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	UserID    uint  `gorm:"not null;index" json:"user_id"`
	ProductID *uint `gorm:"index" json:"product_id,omitempty"`
	OrderID   *uint `gorm:"index" json:"order_id,omitempty"`

	// Snapshot of the product's display attributes at add-to-cart time.
	// Write-once: later product edits or deletion must not touch these.
	ProductTitle   string `gorm:"type:varchar(255)" json:"product_title"`
	ProductPhoto   string `gorm:"type:varchar(255)" json:"product_photo"`
	ProductSummary string `gorm:"type:text" json:"product_summary"`

	Quantity  int        `gorm:"not null" json:"quantity"`
	Price     float64    `gorm:"not null" json:"price"`
	Amount    float64    `gorm:"not null" json:"amount"`
	Status    CartStatus `gorm:"type:varchar(20);default:'new'" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Weak reference: lookup only. The SET NULL policy declared on
	// Product.Carts keeps this row valid when the product is deleted out
	// from under it.
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Order   *Order   `gorm:"foreignKey:OrderID" json:"-"`
}

func (Cart) TableName() string {
	return "carts"
}

// DisplayTitle resolves the line's title: snapshot first, then the live
// product, then a sentinel. An empty snapshot string and a NULL column are
// treated the same; both fall through to the live product.
func (c *Cart) DisplayTitle() string {
	if c.ProductTitle != "" {
		return c.ProductTitle
	}
	if c.Product != nil {
		return c.Product.Title
	}
	return TitleNotAvailable
}

// DisplayPhoto returns the snapshot photo URL or a placeholder.
func (c *Cart) DisplayPhoto() string {
	if c.ProductPhoto != "" {
		return c.ProductPhoto
	}
	return PlaceholderPhoto
}

// DisplaySummary returns the snapshot summary bounded to limit runes, or a
// fallback string when no summary was captured.
func (c *Cart) DisplaySummary(limit int) string {
	if c.ProductSummary == "" {
		return SummaryNotAvailable
	}
	return truncate(c.ProductSummary, limit)
}

// ProductAvailable reports whether the live product reference still
// resolves. Used to decide whether a "View Product" link can be shown.
func (c *Cart) ProductAvailable() bool {
	return c.ProductID != nil && c.Product != nil
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
