package services

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mistica/internal/apperr"
	"mistica/internal/models"
	"mistica/internal/store"
)

func decPtrT(t *testing.T, s string) *decimal.Decimal {
	d := dec(t, s)
	return &d
}

func intPtrT(v int) *int { return &v }

// welcomeCoupon is BIENVENIDO10: 10% off orders of 50.00 or more.
func welcomeCoupon(t *testing.T, mem *store.Memory) models.Coupon {
	t.Helper()
	until := time.Now().Add(30 * 24 * time.Hour)
	return mem.CreateCoupon(models.Coupon{
		Code:          "BIENVENIDO10",
		Type:          models.CouponTypePercentage,
		Value:         dec(t, "10.00"),
		MinimumAmount: decPtrT(t, "50.00"),
		UsageLimit:    intPtrT(100),
		UsedCount:     15,
		IsActive:      true,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    &until,
	})
}

func TestValidate_UnknownCode(t *testing.T) {
	svc := NewCouponService(store.NewMemory())

	res := svc.Validate("NADA", 1, dec(t, "100.00"), time.Now())
	assert.False(t, res.Valid)
	assert.True(t, res.Discount.IsZero())
	assert.Nil(t, res.Coupon)
	assert.Equal(t, ReasonNotFound, res.Reason)
}

func TestValidate_CaseInsensitiveCode(t *testing.T) {
	mem := store.NewMemory()
	welcomeCoupon(t, mem)
	svc := NewCouponService(mem)

	res := svc.Validate("bienvenido10", 1, dec(t, "80.00"), time.Now())
	assert.True(t, res.Valid)
}

func TestValidate_MinimumAmountBoundary(t *testing.T) {
	mem := store.NewMemory()
	welcomeCoupon(t, mem)
	svc := NewCouponService(mem)

	below := svc.Validate("BIENVENIDO10", 1, dec(t, "49.99"), time.Now())
	assert.False(t, below.Valid)
	assert.Equal(t, ReasonBelowMinimum, below.Reason, "too-small order is not the same as a bad code")
	assert.True(t, below.Discount.IsZero())

	at := svc.Validate("BIENVENIDO10", 1, dec(t, "50.00"), time.Now())
	assert.True(t, at.Valid)
	assert.True(t, at.Discount.Equal(dec(t, "5.00")), "discount was %s", at.Discount)
}

func TestValidate_PercentageClampedToMaxDiscount(t *testing.T) {
	mem := store.NewMemory()
	until := time.Now().Add(60 * 24 * time.Hour)
	mem.CreateCoupon(models.Coupon{
		Code:          "VERANO25",
		Type:          models.CouponTypePercentage,
		Value:         dec(t, "25.00"),
		MinimumAmount: decPtrT(t, "100.00"),
		MaxDiscount:   decPtrT(t, "50.00"),
		UsageLimit:    intPtrT(50),
		UsedCount:     8,
		IsActive:      true,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    &until,
	})
	svc := NewCouponService(mem)

	res := svc.Validate("VERANO25", 1, dec(t, "300.00"), time.Now())
	require.True(t, res.Valid)
	assert.True(t, res.Discount.Equal(dec(t, "50.00")),
		"raw 75.00 must clamp to 50.00, got %s", res.Discount)
}

func TestValidate_FixedClampedToOrderTotal(t *testing.T) {
	mem := store.NewMemory()
	mem.CreateCoupon(models.Coupon{
		Code:      "MENOS20",
		Type:      models.CouponTypeFixed,
		Value:     dec(t, "20.00"),
		IsActive:  true,
		ValidFrom: time.Now().Add(-time.Hour),
	})
	svc := NewCouponService(mem)

	res := svc.Validate("MENOS20", 1, dec(t, "12.50"), time.Now())
	require.True(t, res.Valid)
	assert.True(t, res.Discount.Equal(dec(t, "12.50")),
		"fixed discount must not exceed the order total, got %s", res.Discount)
}

func TestValidate_InactiveCoupon(t *testing.T) {
	mem := store.NewMemory()
	mem.CreateCoupon(models.Coupon{
		Code:      "APAGADO",
		Type:      models.CouponTypeFixed,
		Value:     dec(t, "5.00"),
		IsActive:  false,
		ValidFrom: time.Now().Add(-time.Hour),
	})
	svc := NewCouponService(mem)

	res := svc.Validate("APAGADO", 1, dec(t, "100.00"), time.Now())
	assert.False(t, res.Valid)
	assert.Equal(t, ReasonInactive, res.Reason)
}

func TestValidate_Window(t *testing.T) {
	mem := store.NewMemory()
	now := time.Now()
	until := now.Add(time.Hour)
	mem.CreateCoupon(models.Coupon{
		Code:       "VENTANA",
		Type:       models.CouponTypeFixed,
		Value:      dec(t, "5.00"),
		IsActive:   true,
		ValidFrom:  now,
		ValidUntil: &until,
	})
	svc := NewCouponService(mem)
	total := dec(t, "100.00")

	early := svc.Validate("VENTANA", 1, total, now.Add(-time.Minute))
	assert.Equal(t, ReasonNotStarted, early.Reason)

	late := svc.Validate("VENTANA", 1, total, until.Add(time.Minute))
	assert.Equal(t, ReasonExpired, late.Reason)

	inside := svc.Validate("VENTANA", 1, total, now.Add(time.Minute))
	assert.True(t, inside.Valid)

	// validUntil absent means no upper bound
	mem.CreateCoupon(models.Coupon{
		Code:      "SINFIN",
		Type:      models.CouponTypeFixed,
		Value:     dec(t, "5.00"),
		IsActive:  true,
		ValidFrom: now,
	})
	farFuture := svc.Validate("SINFIN", 1, total, now.Add(10*365*24*time.Hour))
	assert.True(t, farFuture.Valid)
}

func TestValidate_ExhaustedCoupon(t *testing.T) {
	mem := store.NewMemory()
	mem.CreateCoupon(models.Coupon{
		Code:       "UNICO",
		Type:       models.CouponTypeFixed,
		Value:      dec(t, "5.00"),
		UsageLimit: intPtrT(1),
		UsedCount:  1,
		IsActive:   true,
		ValidFrom:  time.Now().Add(-time.Hour),
	})
	svc := NewCouponService(mem)

	for _, total := range []string{"10.00", "1000.00"} {
		res := svc.Validate("UNICO", 1, dec(t, total), time.Now())
		assert.False(t, res.Valid, "exhausted coupon must be invalid at total %s", total)
		assert.Equal(t, ReasonExhausted, res.Reason)
	}
}

func TestApply_IncrementsUsage(t *testing.T) {
	mem := store.NewMemory()
	coupon := welcomeCoupon(t, mem)
	svc := NewCouponService(mem)

	require.NoError(t, svc.Apply(1, coupon.ID, 99))

	updated, ok := mem.Coupon(coupon.ID)
	require.True(t, ok)
	assert.Equal(t, 16, updated.UsedCount)
}

func TestApply_UnknownCoupon(t *testing.T) {
	svc := NewCouponService(store.NewMemory())

	err := svc.Apply(1, 12345, 0)
	assert.True(t, apperr.IsNotFound(err))
}

func TestApply_ConcurrentSingleUse(t *testing.T) {
	mem := store.NewMemory()
	coupon := mem.CreateCoupon(models.Coupon{
		Code:       "UNAVEZ",
		Type:       models.CouponTypeFixed,
		Value:      dec(t, "5.00"),
		UsageLimit: intPtrT(1),
		IsActive:   true,
		ValidFrom:  time.Now().Add(-time.Hour),
	})
	svc := NewCouponService(mem)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Apply(int64(i+1), coupon.ID, 0)
		}(i)
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperr.IsConflict(err):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one redemption may win")
	assert.Equal(t, attempts-1, conflicted)

	final, _ := mem.Coupon(coupon.ID)
	assert.Equal(t, 1, final.UsedCount, "usedCount must never exceed usageLimit")
}

func TestExpireSweep(t *testing.T) {
	mem := store.NewMemory()
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	expired := mem.CreateCoupon(models.Coupon{
		Code: "VIEJO", Type: models.CouponTypeFixed, Value: dec(t, "5.00"),
		IsActive: true, ValidFrom: now.Add(-48 * time.Hour), ValidUntil: &past,
	})
	alive := mem.CreateCoupon(models.Coupon{
		Code: "VIGENTE", Type: models.CouponTypeFixed, Value: dec(t, "5.00"),
		IsActive: true, ValidFrom: now.Add(-time.Hour), ValidUntil: &future,
	})
	open := mem.CreateCoupon(models.Coupon{
		Code: "SINLIMITE", Type: models.CouponTypeFixed, Value: dec(t, "5.00"),
		IsActive: true, ValidFrom: now.Add(-time.Hour),
	})
	svc := NewCouponService(mem)

	assert.Equal(t, 1, svc.ExpireSweep(now))

	c, _ := mem.Coupon(expired.ID)
	assert.False(t, c.IsActive)
	c, _ = mem.Coupon(alive.ID)
	assert.True(t, c.IsActive)
	c, _ = mem.Coupon(open.ID)
	assert.True(t, c.IsActive)
}
