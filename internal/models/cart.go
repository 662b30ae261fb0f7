package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartStatus string

const (
	CartStatusOpen   CartStatus = "open"
	CartStatusClosed CartStatus = "closed"
)

type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Status    CartStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is a single line in a cart. PriceAtMoment is the unit price
// captured when the line was created and is never recomputed from the
// catalog afterwards.
type CartItem struct {
	ID            int64           `json:"id"`
	CartID        int64           `json:"cart_id"`
	ProductID     int64           `json:"product_id"`
	Quantity      int             `json:"quantity"`
	PriceAtMoment decimal.Decimal `json:"price_at_moment"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Subtotal is priceAtMoment × quantity for this line.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.PriceAtMoment.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type AddToCartRequest struct {
	UserID    int64 `json:"userId" binding:"required"`
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartView is the GET /cart payload: the cart plus its lines and totals.
type CartView struct {
	Cart      Cart            `json:"cart"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}
