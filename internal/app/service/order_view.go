package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/ikkim/storefront-backend/internal/app/model"
)

// summaryLimit bounds the product summary shown per order line.
const summaryLimit = 100

// OrderLineView is one rendered line of the order detail. Everything
// displayable comes from the line's snapshot and captured money fields;
// ProductURL is the only part that needs the live product to resolve.
type OrderLineView struct {
	Photo      string `json:"photo"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	Amount     string `json:"amount"`
	ProductURL string `json:"product_url,omitempty"`
}

// OrderDetailView is the order detail page payload.
type OrderDetailView struct {
	OrderNumber   string          `json:"order_number"`
	PlacedAt      time.Time       `json:"placed_at"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	CustomerName  string          `json:"customer_name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	Country       string          `json:"country"`
	PostCode      string          `json:"post_code"`
	Quantity      int             `json:"quantity"`
	Lines         []OrderLineView `json:"lines"`
	SubTotal      string          `json:"sub_total"`
	// ShippingCharge renders as $0.00 when the shipping relation is
	// absent rather than failing the page.
	ShippingCharge string `json:"shipping_charge"`
	// Discount is present only when a coupon was applied.
	Discount    string `json:"discount,omitempty"`
	TotalAmount string `json:"total_amount"`
}

// BuildOrderDetail assembles the order-detail view. Pure: it reads only
// what is already loaded on the order and never touches storage, so the
// fallback rules are testable in isolation.
func BuildOrderDetail(order *model.Order) *OrderDetailView {
	view := &OrderDetailView{
		OrderNumber:    order.OrderNumber,
		PlacedAt:       order.CreatedAt,
		Status:         string(order.Status),
		PaymentMethod:  order.PaymentMethod,
		PaymentStatus:  string(order.PaymentStatus),
		CustomerName:   strings.TrimSpace(order.FirstName + " " + order.LastName),
		Email:          order.Email,
		Phone:          order.Phone,
		Address:        joinAddress(order.Address1, order.Address2),
		Country:        order.Country,
		PostCode:       order.PostCode,
		Quantity:       order.Quantity,
		Lines:          make([]OrderLineView, 0, len(order.Carts)),
		SubTotal:       FormatMoney(order.SubTotal),
		ShippingCharge: FormatMoney(order.ShippingCharge()),
		TotalAmount:    FormatMoney(order.TotalAmount),
	}

	if order.Coupon > 0 {
		view.Discount = "-" + FormatMoney(order.Coupon)
	}

	for i := range order.Carts {
		line := &order.Carts[i]
		lineView := OrderLineView{
			Photo:    line.DisplayPhoto(),
			Title:    line.DisplayTitle(),
			Summary:  line.DisplaySummary(summaryLimit),
			Price:    FormatMoney(line.Price),
			Quantity: line.Quantity,
			Amount:   FormatMoney(line.Amount),
		}
		if line.ProductAvailable() {
			lineView.ProductURL = "/products/" + line.Product.Slug
		}
		view.Lines = append(view.Lines, lineView)
	}

	return view
}

// FormatMoney renders an amount as $n,nnn.nn.
func FormatMoney(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	formatted := "$" + b.String() + "." + parts[1]
	if negative {
		return "-" + formatted
	}
	return formatted
}

func joinAddress(address1, address2 string) string {
	if address2 == "" {
		return address1
	}
	return address1 + ", " + address2
}
