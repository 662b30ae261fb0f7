package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

type Coupon struct {
	ID            int64            `json:"id"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Type          CouponType       `json:"type"`
	Value         decimal.Decimal  `json:"value"`
	MinimumAmount *decimal.Decimal `json:"minimumAmount,omitempty"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
	UsageLimit    *int             `json:"usageLimit,omitempty"`
	UsedCount     int              `json:"usedCount"`
	IsActive      bool             `json:"isActive"`
	ValidFrom     time.Time        `json:"validFrom"`
	ValidUntil    *time.Time       `json:"validUntil,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Exhausted reports whether the usage limit has been reached. Coupons
// without a limit never exhaust.
func (c Coupon) Exhausted() bool {
	return c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit
}

// CouponUsage links a redemption to the user and order it was spent on.
type CouponUsage struct {
	ID       int64     `json:"id"`
	CouponID int64     `json:"coupon_id"`
	UserID   int64     `json:"user_id"`
	OrderID  int64     `json:"order_id,omitempty"`
	UsedAt   time.Time `json:"used_at"`
}

type ValidateCouponRequest struct {
	Code   string          `json:"code" binding:"required"`
	UserID int64           `json:"userId" binding:"required"`
	Total  decimal.Decimal `json:"total" binding:"required"`
}

type ApplyCouponRequest struct {
	UserID   int64 `json:"userId" binding:"required"`
	CouponID int64 `json:"couponId" binding:"required"`
	OrderID  int64 `json:"orderId"`
}
