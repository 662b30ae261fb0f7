package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is created once at checkout. Total is final; only Status changes
// afterwards.
type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	AddressID int64           `json:"address_id"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID             int64           `json:"id"`
	OrderID        int64           `json:"order_id"`
	ProductID      int64           `json:"product_id"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Weight         decimal.Decimal `json:"weight"`
	DownloadsCount int             `json:"downloads_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

type CheckoutRequest struct {
	UserID     int64  `json:"userId" binding:"required"`
	AddressID  int64  `json:"addressId" binding:"required"`
	CouponCode string `json:"couponCode"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// OrderView joins an order with its line items.
type OrderView struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}
