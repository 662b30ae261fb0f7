package services

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mistica/internal/apperr"
	"mistica/internal/models"
	"mistica/internal/store"
)

// CartService is the cart aggregate: one open cart per user, merge-on-add
// line items, and totals computed from captured prices.
type CartService struct {
	carts store.CartRepository
}

func NewCartService(carts store.CartRepository) *CartService {
	return &CartService{carts: carts}
}

// OpenCart returns the user's open cart without creating one.
func (s *CartService) OpenCart(userID int64) (models.Cart, bool) {
	return s.carts.OpenCart(userID)
}

// GetOrCreateCart returns the user's open cart, creating one on first
// access.
func (s *CartService) GetOrCreateCart(userID int64) models.Cart {
	if cart, ok := s.carts.OpenCart(userID); ok {
		return cart
	}
	cart := s.carts.CreateCart(userID)
	zap.L().Info("cart created", zap.Int64("cart_id", cart.ID), zap.Int64("user_id", userID))
	return cart
}

// AddItem adds quantity of a product to the cart. An existing line for the
// same product grows by quantity instead of duplicating; a new line captures
// unitPrice as its priceAtMoment.
func (s *CartService) AddItem(cartID, productID int64, quantity int, unitPrice decimal.Decimal) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, apperr.Validation("quantity must be at least 1")
	}
	item := s.carts.UpsertCartItem(cartID, productID, quantity, unitPrice)
	return item, nil
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the line,
// same as RemoveItem.
func (s *CartService) UpdateQuantity(itemID int64, quantity int) (models.CartItem, bool, error) {
	if _, ok := s.carts.CartItem(itemID); !ok {
		return models.CartItem{}, false, apperr.NotFound("cart item %d not found", itemID)
	}
	if quantity <= 0 {
		s.carts.RemoveCartItem(itemID)
		return models.CartItem{}, true, nil
	}
	item, err := s.carts.SetCartItemQuantity(itemID, quantity)
	if err != nil {
		return models.CartItem{}, false, err
	}
	return item, false, nil
}

// RemoveItem deletes a line. Removing an unknown line is not an error here;
// the reported bool lets the API layer surface 404 if it wants to.
func (s *CartService) RemoveItem(itemID int64) bool {
	return s.carts.RemoveCartItem(itemID)
}

// Items returns the cart's lines.
func (s *CartService) Items(cartID int64) []models.CartItem {
	return s.carts.CartItems(cartID)
}

// Total is Σ priceAtMoment × quantity over the cart's lines, independent of
// current catalog prices.
func (s *CartService) Total(cartID int64) decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.carts.CartItems(cartID) {
		total = total.Add(it.Subtotal())
	}
	return total
}

// ItemCount is the sum of line quantities, not the number of lines.
func (s *CartService) ItemCount(cartID int64) int {
	count := 0
	for _, it := range s.carts.CartItems(cartID) {
		count += it.Quantity
	}
	return count
}

// View assembles the full cart payload for a user.
func (s *CartService) View(userID int64) models.CartView {
	cart := s.GetOrCreateCart(userID)
	return models.CartView{
		Cart:      cart,
		Items:     s.Items(cart.ID),
		Total:     s.Total(cart.ID),
		ItemCount: s.ItemCount(cart.ID),
	}
}

// Close marks the cart closed; a later access opens a fresh one.
func (s *CartService) Close(cartID int64) error {
	return s.carts.CloseCart(cartID)
}
