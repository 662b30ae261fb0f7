package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mistica/internal/models"
	"mistica/internal/services"
	"mistica/internal/store"
)

func newCartRouter(mem *store.Memory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cartService := services.NewCartService(mem)
	catalogService := services.NewCatalogService(mem, mem)
	h := NewCartHandler(cartService, catalogService)
	router := gin.New()
	router.GET("/api/cart/:userId", h.GetCart)
	router.POST("/api/cart/add", h.AddToCart)
	router.PUT("/api/cart/update/:id", h.UpdateCartItem)
	router.DELETE("/api/cart/remove/:id", h.RemoveCartItem)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetCart_CreatesLazily(t *testing.T) {
	mem := store.NewMemory()
	router := newCartRouter(mem)

	w := doJSON(t, router, http.MethodGet, "/api/cart/5", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view models.CartView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, int64(5), view.Cart.UserID)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.ItemCount)
}

func TestAddToCart_CapturesCurrentPrice(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed()
	router := newCartRouter(mem)

	w := doJSON(t, router, http.MethodPost, "/api/cart/add",
		`{"userId":1,"productId":5,"quantity":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.True(t, item.PriceAtMoment.Equal(decimal.RequireFromString("15.00")),
		"price snapshot was %s", item.PriceAtMoment)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddToCart_InsufficientStock(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed()
	router := newCartRouter(mem)

	w := doJSON(t, router, http.MethodPost, "/api/cart/add",
		`{"userId":1,"productId":5,"quantity":999}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	router := newCartRouter(store.NewMemory())

	w := doJSON(t, router, http.MethodPost, "/api/cart/add",
		`{"userId":1,"productId":777,"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItem_ZeroRemoves(t *testing.T) {
	mem := store.NewMemory()
	mem.Seed()
	router := newCartRouter(mem)

	w := doJSON(t, router, http.MethodPost, "/api/cart/add",
		`{"userId":1,"productId":5,"quantity":2}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var item models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	w = doJSON(t, router, http.MethodPut, "/api/cart/update/"+jsonInt(item.ID),
		`{"quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":true`)

	w = doJSON(t, router, http.MethodGet, "/api/cart/1", "")
	var view models.CartView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Empty(t, view.Items)
}

func TestRemoveCartItem_MissingIs404(t *testing.T) {
	router := newCartRouter(store.NewMemory())

	w := doJSON(t, router, http.MethodDelete, "/api/cart/remove/321", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
