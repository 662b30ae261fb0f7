package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mistica/internal/models"
	"mistica/internal/store"
)

// InvalidReason says why a coupon failed validation. The wire contract only
// exposes the valid flag, but callers and tests need to tell a bad code from
// an order that is merely too small.
type InvalidReason string

const (
	ReasonNone         InvalidReason = ""
	ReasonNotFound     InvalidReason = "not_found"
	ReasonInactive     InvalidReason = "inactive"
	ReasonNotStarted   InvalidReason = "not_started"
	ReasonExpired      InvalidReason = "expired"
	ReasonExhausted    InvalidReason = "exhausted"
	ReasonBelowMinimum InvalidReason = "below_minimum"
)

// ValidationResult is the outcome of running a code through the pipeline.
type ValidationResult struct {
	Valid    bool            `json:"valid"`
	Discount decimal.Decimal `json:"discount"`
	Coupon   *models.Coupon  `json:"coupon,omitempty"`
	Reason   InvalidReason   `json:"-"`
}

func invalid(reason InvalidReason) ValidationResult {
	return ValidationResult{Valid: false, Discount: decimal.Zero, Reason: reason}
}

var oneHundred = decimal.NewFromInt(100)

// CouponService validates coupon codes and records redemptions.
type CouponService struct {
	coupons store.CouponRepository
}

func NewCouponService(coupons store.CouponRepository) *CouponService {
	return &CouponService{coupons: coupons}
}

// Validate runs the full pipeline against an order total: code lookup
// (case-insensitive), active flag, validity window, usage limit, minimum
// amount, then discount computation.
func (s *CouponService) Validate(code string, userID int64, orderTotal decimal.Decimal, now time.Time) ValidationResult {
	coupon, ok := s.coupons.CouponByCode(strings.ToUpper(code))
	if !ok {
		return invalid(ReasonNotFound)
	}
	if !coupon.IsActive {
		return invalid(ReasonInactive)
	}
	if now.Before(coupon.ValidFrom) {
		return invalid(ReasonNotStarted)
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return invalid(ReasonExpired)
	}
	if coupon.Exhausted() {
		return invalid(ReasonExhausted)
	}
	if coupon.MinimumAmount != nil && orderTotal.LessThan(*coupon.MinimumAmount) {
		return invalid(ReasonBelowMinimum)
	}
	return ValidationResult{
		Valid:    true,
		Discount: s.discount(coupon, orderTotal),
		Coupon:   &coupon,
	}
}

func (s *CouponService) discount(coupon models.Coupon, orderTotal decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	switch coupon.Type {
	case models.CouponTypePercentage:
		d = orderTotal.Mul(coupon.Value).Div(oneHundred)
		if coupon.MaxDiscount != nil && d.GreaterThan(*coupon.MaxDiscount) {
			d = *coupon.MaxDiscount
		}
	case models.CouponTypeFixed:
		// Clamped to the order total so a large fixed coupon cannot push
		// the total negative.
		d = coupon.Value
		if d.GreaterThan(orderTotal) {
			d = orderTotal
		}
	default:
		return decimal.Zero
	}
	return d.Round(2)
}

// Apply redeems a validated coupon: the usage counter is incremented
// atomically against concurrent redemptions, and a usage record ties the
// redemption to the user and order. Apply does not re-validate.
func (s *CouponService) Apply(userID, couponID, orderID int64) error {
	coupon, err := s.coupons.Redeem(couponID)
	if err != nil {
		return err
	}
	s.coupons.RecordUsage(models.CouponUsage{
		CouponID: couponID,
		UserID:   userID,
		OrderID:  orderID,
	})
	zap.L().Info("coupon redeemed",
		zap.String("code", coupon.Code),
		zap.Int64("user_id", userID),
		zap.Int("used_count", coupon.UsedCount))
	return nil
}

// ExpireSweep deactivates active coupons whose validUntil has passed and
// returns how many it touched.
func (s *CouponService) ExpireSweep(now time.Time) int {
	expired := 0
	for _, c := range s.coupons.Coupons() {
		if !c.IsActive || c.ValidUntil == nil || now.Before(*c.ValidUntil) {
			continue
		}
		if err := s.coupons.DeactivateCoupon(c.ID); err == nil {
			expired++
		}
	}
	return expired
}
