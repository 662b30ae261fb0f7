// Package store holds the in-memory data store backing the API. It mirrors
// the relational schema with one map per table and a shared id sequence;
// production deployments would swap these interfaces for a real database.
package store

import (
	"github.com/shopspring/decimal"

	"mistica/internal/models"
)

type UserRepository interface {
	User(id int64) (models.User, bool)
	UserByEmail(email string) (models.User, bool)
	CreateUser(u models.User) models.User
}

type CatalogRepository interface {
	Products(categoryID int64, search string) []models.Product
	Product(id int64) (models.Product, bool)
	FeaturedProducts(limit int) []models.Product
	Categories() []models.Category
	Category(id int64) (models.Category, bool)
	Galleries(productID int64) []models.ProductGallery
	SetStock(productID int64, stock int) (models.Product, error)
}

type CartRepository interface {
	OpenCart(userID int64) (models.Cart, bool)
	CreateCart(userID int64) models.Cart
	CloseCart(cartID int64) error
	CartItems(cartID int64) []models.CartItem
	CartItem(id int64) (models.CartItem, bool)
	// UpsertCartItem merges into an existing line for the same product or
	// creates a new one with the given price snapshot.
	UpsertCartItem(cartID, productID int64, quantity int, price decimal.Decimal) models.CartItem
	SetCartItemQuantity(id int64, quantity int) (models.CartItem, error)
	RemoveCartItem(id int64) bool
}

type AddressRepository interface {
	Addresses(userID int64) []models.Address
	Address(id int64) (models.Address, bool)
	CreateAddress(a models.Address) models.Address
}

type OrderRepository interface {
	Orders(userID int64) []models.Order
	Order(id int64) (models.Order, bool)
	CreateOrder(o models.Order, items []models.OrderItem) models.Order
	OrderItems(orderID int64) []models.OrderItem
	UpdateOrderStatus(id int64, status models.OrderStatus) (models.Order, error)
}

type FavoriteRepository interface {
	Favorites(userID int64) []models.Favorite
	AddFavorite(userID, productID int64) models.Favorite
	RemoveFavorite(userID, productID int64)
}

type ReviewRepository interface {
	Reviews(productID int64) []models.Review
	Review(id int64) (models.Review, bool)
	AddReview(r models.Review) models.Review
	// SetHelpful records a vote, replacing the user's previous vote on the
	// same review if there is one.
	SetHelpful(reviewID, userID int64, isHelpful bool) models.ReviewHelpful
	HelpfulVotes(reviewID int64) []models.ReviewHelpful
}

type CouponRepository interface {
	Coupons() []models.Coupon
	Coupon(id int64) (models.Coupon, bool)
	CouponByCode(code string) (models.Coupon, bool)
	// Redeem increments usedCount, failing with a conflict once the usage
	// limit is reached. The check and the increment happen under one lock.
	Redeem(couponID int64) (models.Coupon, error)
	RecordUsage(u models.CouponUsage) models.CouponUsage
	DeactivateCoupon(id int64) error
}

type NotificationRepository interface {
	Notifications(userID int64, unreadOnly bool) []models.Notification
	CreateNotification(n models.Notification) models.Notification
	MarkNotificationRead(id int64) error
	MarkAllNotificationsRead(userID int64) int
}

type ChatRepository interface {
	// ChatSessions lists sessions for a user; userID 0 lists all.
	ChatSessions(userID int64) []models.ChatSession
	ChatSession(id int64) (models.ChatSession, bool)
	CreateChatSession(s models.ChatSession) models.ChatSession
	CloseChatSession(id int64) error
	ChatMessages(sessionID int64) []models.ChatMessage
	AddChatMessage(m models.ChatMessage) (models.ChatMessage, error)
}
