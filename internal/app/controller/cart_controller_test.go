package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejoh/storefront-backend/internal/app/service"
	"github.com/ejoh/storefront-backend/internal/events"
	"github.com/ejoh/storefront-backend/internal/kvstore"
)

func setupCartControllerTest(t *testing.T) (*gin.Engine, service.CartService) {
	store := kvstore.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	catalogService := service.NewCatalogService(0)
	require.NoError(t, catalogService.Load(context.Background()))

	cartService := service.NewCartService(store)
	require.NoError(t, cartService.Load(context.Background()))

	controller := NewCartController(cartService, catalogService, events.NewHub())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/cart", controller.GetCart)
	router.POST("/cart/items", controller.AddToCart)
	router.PUT("/cart/items/:productId", controller.UpdateQuantity)
	router.DELETE("/cart/items/:productId", controller.RemoveFromCart)
	router.POST("/cart/checkout", controller.Checkout)

	return router, cartService
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartController_GetCart_Empty(t *testing.T) {
	router, _ := setupCartControllerTest(t)

	w := performJSON(router, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(0), response["item_count"])
	assert.Equal(t, "0.00", response["total"])
	assert.Equal(t, float64(0), response["tax_cents"])
}

func TestCartController_AddToCart_Success(t *testing.T) {
	router, cartService := setupCartControllerTest(t)

	w := performJSON(router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 1,
		"quantity":   2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["item_count"])
	assert.Equal(t, float64(17998), response["total_cents"]) // 8999 * 2
	assert.Equal(t, float64(1440), response["tax_cents"])
	assert.Equal(t, float64(0), response["shipping_cents"]) // free over 100.00
	assert.Equal(t, float64(19438), response["grand_total_cents"])

	items := cartService.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartController_AddToCart_MergesSameVariant(t *testing.T) {
	router, cartService := setupCartControllerTest(t)

	body := gin.H{"product_id": 1, "quantity": 2, "color": "Black"}
	performJSON(router, http.MethodPost, "/cart/items", body)
	body["quantity"] = 3
	performJSON(router, http.MethodPost, "/cart/items", body)

	items := cartService.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartController_AddToCart_ProductNotFound(t *testing.T) {
	router, _ := setupCartControllerTest(t)

	w := performJSON(router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 999,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "RESOURCE_NOT_FOUND", response["error"])
}

func TestCartController_AddToCart_InvalidQuantity(t *testing.T) {
	router, _ := setupCartControllerTest(t)

	w := performJSON(router, http.MethodPost, "/cart/items", gin.H{
		"product_id": 1,
		"quantity":   -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CART_INVALID_QUANTITY", response["error"])
}

func TestCartController_RemoveFromCart_InvalidID(t *testing.T) {
	router, _ := setupCartControllerTest(t)

	w := performJSON(router, http.MethodDelete, "/cart/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "VALIDATION_INVALID_ID", response["error"])
}

func TestCartController_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	router, cartService := setupCartControllerTest(t)

	performJSON(router, http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 2})

	w := performJSON(router, http.MethodPut, "/cart/items/1", gin.H{"quantity": 0})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, cartService.Items())
}

func TestCartController_Checkout_MissingFields(t *testing.T) {
	router, cartService := setupCartControllerTest(t)

	performJSON(router, http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 1})

	w := performJSON(router, http.MethodPost, "/cart/checkout", gin.H{
		"email": "demo@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "VALIDATION_INVALID_INPUT", response["error"])
	fields, ok := response["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "first_name")

	// Cart survives a failed checkout
	assert.Len(t, cartService.Items(), 1)
}

func TestCartController_Checkout_Success(t *testing.T) {
	router, cartService := setupCartControllerTest(t)

	performJSON(router, http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 1})

	w := performJSON(router, http.MethodPost, "/cart/checkout", gin.H{
		"first_name":  "Demo",
		"last_name":   "User",
		"email":       "demo@example.com",
		"phone":       "555-0100",
		"address":     "1 Main St",
		"city":        "Springfield",
		"state":       "IL",
		"zip_code":    "12345",
		"card_number": "4242424242424242",
		"card_name":   "Demo User",
		"expiry_date": "12/30",
		"cvv":         "123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, cartService.Items())
}
