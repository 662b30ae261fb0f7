package store

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mistica/internal/apperr"
	"mistica/internal/models"
)

func TestAllocID_SharedMonotonicSequence(t *testing.T) {
	m := NewMemory()

	u := m.CreateUser(models.User{Name: "a", Email: "a@b.c"})
	p := m.CreateProduct(models.Product{Name: "vela"})
	c := m.CreateCart(u.ID)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, int64(2), p.ID)
	assert.Equal(t, int64(3), c.ID, "ids come from one sequence across tables")
}

func TestSeed_SampleData(t *testing.T) {
	m := NewMemory()
	m.Seed()

	assert.Len(t, m.Categories(), 4)
	assert.Len(t, m.Products(0, ""), 4)

	welcome, ok := m.CouponByCode("BIENVENIDO10")
	require.True(t, ok)
	assert.Equal(t, 15, welcome.UsedCount)
	require.NotNil(t, welcome.MinimumAmount)
	assert.True(t, welcome.MinimumAmount.Equal(decimal.RequireFromString("50.00")))

	summer, ok := m.CouponByCode("VERANO25")
	require.True(t, ok)
	require.NotNil(t, summer.MaxDiscount)
	assert.True(t, summer.MaxDiscount.Equal(decimal.RequireFromString("50.00")))

	_, ok = m.UserByEmail("demo@mistica.mx")
	assert.True(t, ok)
}

func TestProducts_FilterAndSearch(t *testing.T) {
	m := NewMemory()
	m.Seed()

	velas := m.Products(1, "")
	require.Len(t, velas, 1)
	assert.Equal(t, "Vela Aromática Lavanda", velas[0].Name)

	found := m.Products(0, "miel")
	require.Len(t, found, 1)
	assert.Equal(t, "Jabón Artesanal Miel", found[0].Name)

	assert.Empty(t, m.Products(0, "dragón"))
}

func TestUpsertCartItem_MergeUnderOneLock(t *testing.T) {
	m := NewMemory()
	cart := m.CreateCart(1)
	price := decimal.RequireFromString("9.99")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.UpsertCartItem(cart.ID, 5, 1, price)
		}()
	}
	wg.Wait()

	items := m.CartItems(cart.ID)
	require.Len(t, items, 1, "concurrent adds of one product must not split lines")
	assert.Equal(t, 20, items[0].Quantity)
}

func TestRedeem_StopsAtLimit(t *testing.T) {
	m := NewMemory()
	limit := 2
	coupon := m.CreateCoupon(models.Coupon{
		Code: "DOSVECES", Type: models.CouponTypeFixed,
		Value: decimal.RequireFromString("1.00"), UsageLimit: &limit,
		IsActive: true, ValidFrom: time.Now(),
	})

	_, err := m.Redeem(coupon.ID)
	require.NoError(t, err)
	_, err = m.Redeem(coupon.ID)
	require.NoError(t, err)

	_, err = m.Redeem(coupon.ID)
	assert.True(t, apperr.IsConflict(err))

	final, _ := m.Coupon(coupon.ID)
	assert.Equal(t, 2, final.UsedCount)
}

func TestOpenCart_IgnoresClosedCarts(t *testing.T) {
	m := NewMemory()
	first := m.CreateCart(1)
	require.NoError(t, m.CloseCart(first.ID))

	_, ok := m.OpenCart(1)
	assert.False(t, ok)

	second := m.CreateCart(1)
	got, ok := m.OpenCart(1)
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
}

func TestCreateOrder_CascadesItems(t *testing.T) {
	m := NewMemory()
	order := m.CreateOrder(models.Order{
		UserID: 1, AddressID: 2, Total: decimal.RequireFromString("30.00"),
		Currency: "MXN", Status: models.OrderStatusPending,
	}, []models.OrderItem{
		{ProductID: 10, Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{ProductID: 11, Quantity: 1, Price: decimal.RequireFromString("10.00")},
	})

	items := m.OrderItems(order.ID)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Equal(t, order.ID, it.OrderID)
	}

	assert.Empty(t, m.OrderItems(order.ID+100), "items never leak across orders")
}

func TestNotifications_UnreadFilterAndMarkAll(t *testing.T) {
	m := NewMemory()
	m.CreateNotification(models.Notification{UserID: 1, Type: "order", Title: "a", Message: "m"})
	m.CreateNotification(models.Notification{UserID: 1, Type: "order", Title: "b", Message: "m"})
	m.CreateNotification(models.Notification{UserID: 2, Type: "order", Title: "c", Message: "m"})

	assert.Len(t, m.Notifications(1, true), 2)

	assert.Equal(t, 2, m.MarkAllNotificationsRead(1))
	assert.Empty(t, m.Notifications(1, true))
	assert.Len(t, m.Notifications(1, false), 2)
	assert.Len(t, m.Notifications(2, true), 1, "other users' unread state untouched")
}

func TestSetHelpful_ReplacesVote(t *testing.T) {
	m := NewMemory()
	review := m.AddReview(models.Review{UserID: 1, ProductID: 2, Rating: 5})

	first := m.SetHelpful(review.ID, 7, true)
	second := m.SetHelpful(review.ID, 7, false)

	assert.Equal(t, first.ID, second.ID)
	votes := m.HelpfulVotes(review.ID)
	require.Len(t, votes, 1)
	assert.False(t, votes[0].IsHelpful)
}
