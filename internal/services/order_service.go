package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mistica/internal/apperr"
	"mistica/internal/models"
	"mistica/internal/store"
)

// OrderService assembles immutable orders from cart snapshots and drives
// the checkout workflow around them.
type OrderService struct {
	orders        store.OrderRepository
	addresses     store.AddressRepository
	cartService   *CartService
	couponService *CouponService
	notifications *NotificationService
	currency      string
}

func NewOrderService(
	orders store.OrderRepository,
	addresses store.AddressRepository,
	cartService *CartService,
	couponService *CouponService,
	notifications *NotificationService,
	currency string,
) *OrderService {
	if currency == "" {
		currency = "MXN"
	}
	return &OrderService{
		orders:        orders,
		addresses:     addresses,
		cartService:   cartService,
		couponService: couponService,
		notifications: notifications,
		currency:      currency,
	}
}

// CreateOrder turns a frozen item snapshot into a pending order. The total
// is subtotal minus discount, floored at zero. The cart and product stock
// are left alone; callers own those steps.
func (s *OrderService) CreateOrder(userID, addressID int64, items []models.CartItem, discount decimal.Decimal) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, apperr.Validation("cart is empty")
	}
	addr, ok := s.addresses.Address(addressID)
	if !ok || addr.UserID != userID {
		return models.Order{}, apperr.Validation("address %d does not belong to user %d", addressID, userID)
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal())
		orderItems = append(orderItems, models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.PriceAtMoment,
			Weight:    decimal.Zero,
		})
	}
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	order := s.orders.CreateOrder(models.Order{
		UserID:    userID,
		AddressID: addressID,
		Total:     total.Round(2),
		Currency:  s.currency,
		Status:    models.OrderStatusPending,
	}, orderItems)

	zap.L().Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.String("total", order.Total.String()))
	return order, nil
}

// Checkout runs the full flow: take the open cart's items, validate the
// optional coupon against the cart total, redeem it, assemble the order,
// close the cart, notify the user.
func (s *OrderService) Checkout(userID, addressID int64, couponCode string) (models.Order, error) {
	cart, ok := s.cartService.OpenCart(userID)
	if !ok {
		return models.Order{}, apperr.Validation("cart is empty")
	}
	items := s.cartService.Items(cart.ID)
	if len(items) == 0 {
		return models.Order{}, apperr.Validation("cart is empty")
	}
	if addr, ok := s.addresses.Address(addressID); !ok || addr.UserID != userID {
		return models.Order{}, apperr.Validation("address %d does not belong to user %d", addressID, userID)
	}
	subtotal := s.cartService.Total(cart.ID)

	// Redeem before assembling: a lost redemption race aborts the checkout
	// instead of leaving a discounted order behind. The usage record is
	// written before the order id exists, as with a standalone apply call.
	discount := decimal.Zero
	if couponCode != "" {
		res := s.couponService.Validate(couponCode, userID, subtotal, time.Now())
		if !res.Valid {
			return models.Order{}, apperr.Validation("coupon %s is not valid for this order", couponCode)
		}
		if err := s.couponService.Apply(userID, res.Coupon.ID, 0); err != nil {
			return models.Order{}, err
		}
		discount = res.Discount
	}

	order, err := s.CreateOrder(userID, addressID, items, discount)
	if err != nil {
		return models.Order{}, err
	}

	if err := s.cartService.Close(cart.ID); err != nil {
		zap.L().Warn("closing cart after checkout", zap.Int64("cart_id", cart.ID), zap.Error(err))
	}

	s.notifications.Notify(userID, "order", "Pedido recibido",
		fmt.Sprintf("Tu pedido #%d por %s %s está pendiente de pago.",
			order.ID, order.Total.StringFixed(2), order.Currency))
	return order, nil
}

func (s *OrderService) UserOrders(userID int64) []models.Order {
	return s.orders.Orders(userID)
}

func (s *OrderService) Order(id int64) (models.OrderView, error) {
	order, ok := s.orders.Order(id)
	if !ok {
		return models.OrderView{}, apperr.NotFound("order %d not found", id)
	}
	return models.OrderView{Order: order, Items: s.orders.OrderItems(id)}, nil
}

func (s *OrderService) UpdateStatus(id int64, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, apperr.Validation("unknown order status %q", status)
	}
	return s.orders.UpdateOrderStatus(id, status)
}
