package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"mistica/internal/apperr"
	"mistica/internal/models"
)

// Memory keeps every table in a map keyed by id, guarded by one RWMutex.
// Ids come from a single sequence shared across tables, matching the
// relational schema this store stands in for.
// Memory implements every repository interface.
var (
	_ UserRepository         = (*Memory)(nil)
	_ CatalogRepository      = (*Memory)(nil)
	_ CartRepository         = (*Memory)(nil)
	_ AddressRepository      = (*Memory)(nil)
	_ OrderRepository        = (*Memory)(nil)
	_ FavoriteRepository     = (*Memory)(nil)
	_ ReviewRepository       = (*Memory)(nil)
	_ CouponRepository       = (*Memory)(nil)
	_ NotificationRepository = (*Memory)(nil)
	_ ChatRepository         = (*Memory)(nil)
)

type Memory struct {
	mu sync.RWMutex

	users         map[int64]models.User
	categories    map[int64]models.Category
	products      map[int64]models.Product
	galleries     map[int64]models.ProductGallery
	carts         map[int64]models.Cart
	cartItems     map[int64]models.CartItem
	addresses     map[int64]models.Address
	orders        map[int64]models.Order
	orderItems    map[int64]models.OrderItem
	favorites     map[int64]models.Favorite
	reviews       map[int64]models.Review
	reviewVotes   map[int64]models.ReviewHelpful
	coupons       map[int64]models.Coupon
	couponUsages  map[int64]models.CouponUsage
	notifications map[int64]models.Notification
	chatSessions  map[int64]models.ChatSession
	chatMessages  map[int64]models.ChatMessage

	nextID int64
}

func NewMemory() *Memory {
	return &Memory{
		users:         make(map[int64]models.User),
		categories:    make(map[int64]models.Category),
		products:      make(map[int64]models.Product),
		galleries:     make(map[int64]models.ProductGallery),
		carts:         make(map[int64]models.Cart),
		cartItems:     make(map[int64]models.CartItem),
		addresses:     make(map[int64]models.Address),
		orders:        make(map[int64]models.Order),
		orderItems:    make(map[int64]models.OrderItem),
		favorites:     make(map[int64]models.Favorite),
		reviews:       make(map[int64]models.Review),
		reviewVotes:   make(map[int64]models.ReviewHelpful),
		coupons:       make(map[int64]models.Coupon),
		couponUsages:  make(map[int64]models.CouponUsage),
		notifications: make(map[int64]models.Notification),
		chatSessions:  make(map[int64]models.ChatSession),
		chatMessages:  make(map[int64]models.ChatMessage),
		nextID:        1,
	}
}

// allocID must be called with the write lock held.
func (m *Memory) allocID() int64 {
	id := m.nextID
	m.nextID++
	return id
}

// Users

func (m *Memory) User(id int64) (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok
}

func (m *Memory) UserByEmail(email string) (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

func (m *Memory) CreateUser(u models.User) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	u.ID = m.allocID()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = u
	return u
}

// Catalog

func (m *Memory) Products(categoryID int64, search string) []models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]models.Product, 0, len(m.products))
	needle := strings.ToLower(search)
	for _, p := range m.products {
		if categoryID != 0 && p.CategoryID != categoryID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		res = append(res, p)
	}
	sortByID(res, func(p models.Product) int64 { return p.ID })
	return res
}

func (m *Memory) Product(id int64) (models.Product, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	return p, ok
}

func (m *Memory) FeaturedProducts(limit int) []models.Product {
	all := m.Products(0, "")
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

func (m *Memory) CreateProduct(p models.Product) models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	p.ID = m.allocID()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.products[p.ID] = p
	return p
}

func (m *Memory) SetStock(productID int64, stock int) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[productID]
	if !ok {
		return models.Product{}, apperr.NotFound("product %d not found", productID)
	}
	if stock < 0 {
		return models.Product{}, apperr.Validation("stock must not be negative")
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	m.products[productID] = p
	return p, nil
}

func (m *Memory) Categories() []models.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		res = append(res, c)
	}
	sortByID(res, func(c models.Category) int64 { return c.ID })
	return res
}

func (m *Memory) Category(id int64) (models.Category, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	return c, ok
}

func (m *Memory) Galleries(productID int64) []models.ProductGallery {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.ProductGallery{}
	for _, g := range m.galleries {
		if g.ProductID == productID {
			res = append(res, g)
		}
	}
	sortByID(res, func(g models.ProductGallery) int64 { return g.ID })
	return res
}

// Cart

func (m *Memory) OpenCart(userID int64) (models.Cart, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.carts {
		if c.UserID == userID && c.Status == models.CartStatusOpen {
			return c, true
		}
	}
	return models.Cart{}, false
}

func (m *Memory) CreateCart(userID int64) models.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	c := models.Cart{
		ID:        m.allocID(),
		UserID:    userID,
		Status:    models.CartStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.carts[c.ID] = c
	return c
}

func (m *Memory) CloseCart(cartID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return apperr.NotFound("cart %d not found", cartID)
	}
	c.Status = models.CartStatusClosed
	c.UpdatedAt = time.Now()
	m.carts[cartID] = c
	return nil
}

func (m *Memory) CartItems(cartID int64) []models.CartItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.CartItem{}
	for _, it := range m.cartItems {
		if it.CartID == cartID {
			res = append(res, it)
		}
	}
	sortByID(res, func(it models.CartItem) int64 { return it.ID })
	return res
}

func (m *Memory) CartItem(id int64) (models.CartItem, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.cartItems[id]
	return it, ok
}

func (m *Memory) UpsertCartItem(cartID, productID int64, quantity int, price decimal.Decimal) models.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, it := range m.cartItems {
		if it.CartID == cartID && it.ProductID == productID {
			it.Quantity += quantity
			it.UpdatedAt = now
			m.cartItems[id] = it
			return it
		}
	}
	it := models.CartItem{
		ID:            m.allocID(),
		CartID:        cartID,
		ProductID:     productID,
		Quantity:      quantity,
		PriceAtMoment: price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.cartItems[it.ID] = it
	return it
}

func (m *Memory) SetCartItemQuantity(id int64, quantity int) (models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.cartItems[id]
	if !ok {
		return models.CartItem{}, apperr.NotFound("cart item %d not found", id)
	}
	it.Quantity = quantity
	it.UpdatedAt = time.Now()
	m.cartItems[id] = it
	return it, nil
}

func (m *Memory) RemoveCartItem(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.cartItems[id]
	delete(m.cartItems, id)
	return ok
}

// Addresses

func (m *Memory) Addresses(userID int64) []models.Address {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.Address{}
	for _, a := range m.addresses {
		if a.UserID == userID {
			res = append(res, a)
		}
	}
	sortByID(res, func(a models.Address) int64 { return a.ID })
	return res
}

func (m *Memory) Address(id int64) (models.Address, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.addresses[id]
	return a, ok
}

func (m *Memory) CreateAddress(a models.Address) models.Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	a.ID = m.allocID()
	a.CreatedAt = now
	a.UpdatedAt = now
	m.addresses[a.ID] = a
	return a
}

// Orders

func (m *Memory) Orders(userID int64) []models.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			res = append(res, o)
		}
	}
	sortByID(res, func(o models.Order) int64 { return o.ID })
	return res
}

func (m *Memory) Order(id int64) (models.Order, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	return o, ok
}

func (m *Memory) CreateOrder(o models.Order, items []models.OrderItem) models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	o.ID = m.allocID()
	o.CreatedAt = now
	o.UpdatedAt = now
	m.orders[o.ID] = o
	for _, it := range items {
		it.ID = m.allocID()
		it.OrderID = o.ID
		it.CreatedAt = now
		m.orderItems[it.ID] = it
	}
	return o
}

func (m *Memory) OrderItems(orderID int64) []models.OrderItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.OrderItem{}
	for _, it := range m.orderItems {
		if it.OrderID == orderID {
			res = append(res, it)
		}
	}
	sortByID(res, func(it models.OrderItem) int64 { return it.ID })
	return res
}

func (m *Memory) UpdateOrderStatus(id int64, status models.OrderStatus) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, apperr.NotFound("order %d not found", id)
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	m.orders[id] = o
	return o, nil
}

// Favorites

func (m *Memory) Favorites(userID int64) []models.Favorite {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.Favorite{}
	for _, f := range m.favorites {
		if f.UserID == userID {
			res = append(res, f)
		}
	}
	sortByID(res, func(f models.Favorite) int64 { return f.ID })
	return res
}

func (m *Memory) AddFavorite(userID, productID int64) models.Favorite {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.favorites {
		if f.UserID == userID && f.ProductID == productID {
			return f
		}
	}
	f := models.Favorite{
		ID:        m.allocID(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	m.favorites[f.ID] = f
	return f
}

func (m *Memory) RemoveFavorite(userID, productID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, f := range m.favorites {
		if f.UserID == userID && f.ProductID == productID {
			delete(m.favorites, id)
			return
		}
	}
}

// Reviews

func (m *Memory) Reviews(productID int64) []models.Review {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.Review{}
	for _, r := range m.reviews {
		if r.ProductID == productID {
			res = append(res, r)
		}
	}
	sortByID(res, func(r models.Review) int64 { return r.ID })
	return res
}

func (m *Memory) Review(id int64) (models.Review, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reviews[id]
	return r, ok
}

func (m *Memory) AddReview(r models.Review) models.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	r.ID = m.allocID()
	r.CreatedAt = now
	r.UpdatedAt = now
	m.reviews[r.ID] = r
	return r
}

func (m *Memory) SetHelpful(reviewID, userID int64, isHelpful bool) models.ReviewHelpful {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, v := range m.reviewVotes {
		if v.ReviewID == reviewID && v.UserID == userID {
			v.IsHelpful = isHelpful
			m.reviewVotes[id] = v
			return v
		}
	}
	v := models.ReviewHelpful{
		ID:        m.allocID(),
		ReviewID:  reviewID,
		UserID:    userID,
		IsHelpful: isHelpful,
		CreatedAt: time.Now(),
	}
	m.reviewVotes[v.ID] = v
	return v
}

func (m *Memory) HelpfulVotes(reviewID int64) []models.ReviewHelpful {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.ReviewHelpful{}
	for _, v := range m.reviewVotes {
		if v.ReviewID == reviewID {
			res = append(res, v)
		}
	}
	sortByID(res, func(v models.ReviewHelpful) int64 { return v.ID })
	return res
}

// Coupons

func (m *Memory) Coupons() []models.Coupon {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]models.Coupon, 0, len(m.coupons))
	for _, c := range m.coupons {
		res = append(res, c)
	}
	sortByID(res, func(c models.Coupon) int64 { return c.ID })
	return res
}

func (m *Memory) Coupon(id int64) (models.Coupon, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.coupons[id]
	return c, ok
}

func (m *Memory) CouponByCode(code string) (models.Coupon, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.coupons {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return models.Coupon{}, false
}

func (m *Memory) CreateCoupon(c models.Coupon) models.Coupon {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	c.ID = m.allocID()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.coupons[c.ID] = c
	return c
}

func (m *Memory) Redeem(couponID int64) (models.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[couponID]
	if !ok {
		return models.Coupon{}, apperr.NotFound("coupon %d not found", couponID)
	}
	if c.Exhausted() {
		return models.Coupon{}, apperr.Conflict("coupon %s usage limit reached", c.Code)
	}
	c.UsedCount++
	c.UpdatedAt = time.Now()
	m.coupons[couponID] = c
	return c, nil
}

func (m *Memory) RecordUsage(u models.CouponUsage) models.CouponUsage {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.allocID()
	u.UsedAt = time.Now()
	m.couponUsages[u.ID] = u
	return u
}

func (m *Memory) DeactivateCoupon(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[id]
	if !ok {
		return apperr.NotFound("coupon %d not found", id)
	}
	c.IsActive = false
	c.UpdatedAt = time.Now()
	m.coupons[id] = c
	return nil
}

// Notifications

func (m *Memory) Notifications(userID int64, unreadOnly bool) []models.Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.Notification{}
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		res = append(res, n)
	}
	sortByID(res, func(n models.Notification) int64 { return n.ID })
	return res
}

func (m *Memory) CreateNotification(n models.Notification) models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.allocID()
	n.CreatedAt = time.Now()
	n.IsRead = false
	m.notifications[n.ID] = n
	return n
}

func (m *Memory) MarkNotificationRead(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return apperr.NotFound("notification %d not found", id)
	}
	n.IsRead = true
	m.notifications[id] = n
	return nil
}

func (m *Memory) MarkAllNotificationsRead(userID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for id, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			m.notifications[id] = n
			count++
		}
	}
	return count
}

// Chat

func (m *Memory) ChatSessions(userID int64) []models.ChatSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.ChatSession{}
	for _, s := range m.chatSessions {
		if userID != 0 && s.UserID != userID {
			continue
		}
		res = append(res, s)
	}
	sortByID(res, func(s models.ChatSession) int64 { return s.ID })
	return res
}

func (m *Memory) ChatSession(id int64) (models.ChatSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.chatSessions[id]
	return s, ok
}

func (m *Memory) CreateChatSession(s models.ChatSession) models.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	s.ID = m.allocID()
	s.Status = models.ChatStatusOpen
	s.CreatedAt = now
	s.UpdatedAt = now
	m.chatSessions[s.ID] = s
	return s
}

func (m *Memory) CloseChatSession(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.chatSessions[id]
	if !ok {
		return apperr.NotFound("chat session %d not found", id)
	}
	s.Status = models.ChatStatusClosed
	s.UpdatedAt = time.Now()
	m.chatSessions[id] = s
	return nil
}

func (m *Memory) ChatMessages(sessionID int64) []models.ChatMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := []models.ChatMessage{}
	for _, msg := range m.chatMessages {
		if msg.SessionID == sessionID {
			res = append(res, msg)
		}
	}
	sortByID(res, func(msg models.ChatMessage) int64 { return msg.ID })
	return res
}

func (m *Memory) AddChatMessage(msg models.ChatMessage) (models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.chatSessions[msg.SessionID]
	if !ok {
		return models.ChatMessage{}, apperr.NotFound("chat session %d not found", msg.SessionID)
	}
	now := time.Now()
	msg.ID = m.allocID()
	msg.CreatedAt = now
	m.chatMessages[msg.ID] = msg
	s.UpdatedAt = now
	m.chatSessions[s.ID] = s
	return msg, nil
}

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
