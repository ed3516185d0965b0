package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ejoh/storefront-backend/internal/app/model"
	"github.com/ejoh/storefront-backend/internal/app/service"
	"github.com/ejoh/storefront-backend/internal/errors"
	"github.com/ejoh/storefront-backend/internal/events"
	"github.com/ejoh/storefront-backend/internal/middleware"
)

type CartController struct {
	cartService    service.CartService
	catalogService service.CatalogService
	hub            *events.Hub
}

func NewCartController(cartService service.CartService, catalogService service.CatalogService, hub *events.Hub) *CartController {
	return &CartController{
		cartService:    cartService,
		catalogService: catalogService,
		hub:            hub,
	}
}

type AddToCartRequest struct {
	ProductID int    `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type UpdateQuantityRequest struct {
	Quantity int    `json:"quantity"`
	Color    string `json:"color"`
	Size     string `json:"size"`
}

type CheckoutRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

func (ctrl *CartController) cartSnapshot() gin.H {
	items := ctrl.cartService.Items()
	totalCents := ctrl.cartService.TotalCents()
	summary := model.SummarizeOrder(totalCents)
	return gin.H{
		"items":             items,
		"item_count":        ctrl.cartService.ItemCount(),
		"total_cents":       totalCents,
		"total":             model.FormatCents(totalCents),
		"tax_cents":         summary.TaxCents,
		"shipping_cents":    summary.ShippingCents,
		"grand_total_cents": summary.GrandTotalCents,
	}
}

// GetCart returns the cart with its derived totals.
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.cartSnapshot())
}

// AddToCart adds a product variant to the cart. Lines with the same
// product, color and size merge by summing quantities.
// POST /api/v1/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.catalogService.GetByID(req.ProductID)
	if err != nil {
		log.Warn("Product not found for cart", map[string]interface{}{
			"product_id": req.ProductID,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	if err := ctrl.cartService.AddToCart(c.Request.Context(), product, req.Quantity, req.Color, req.Size); err != nil {
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"product_id": req.ProductID,
			"quantity":   req.Quantity,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})
	ctrl.hub.Publish(events.EventCartUpdated, ctrl.cartSnapshot())

	c.JSON(http.StatusCreated, ctrl.cartSnapshot())
}

// UpdateQuantity replaces the quantity of one cart line. Zero or negative
// removes the line.
// PUT /api/v1/cart/items/:productId
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("productId")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update quantity request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.cartService.UpdateQuantity(c.Request.Context(), id, req.Quantity, req.Color, req.Size); err != nil {
		log.Error("Failed to update cart quantity", err, map[string]interface{}{
			"product_id": id,
			"quantity":   req.Quantity,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	ctrl.hub.Publish(events.EventCartUpdated, ctrl.cartSnapshot())
	c.JSON(http.StatusOK, ctrl.cartSnapshot())
}

// RemoveFromCart removes the line matching the product and variant exactly.
// Color and size come from query parameters so the key is complete.
// DELETE /api/v1/cart/items/:productId?color=&size=
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("productId")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.cartService.RemoveFromCart(c.Request.Context(), id, c.Query("color"), c.Query("size")); err != nil {
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"product_id": id,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	ctrl.hub.Publish(events.EventCartUpdated, ctrl.cartSnapshot())
	c.JSON(http.StatusOK, ctrl.cartSnapshot())
}

// ClearCart empties the cart.
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.cartService.ClearCart(c.Request.Context()); err != nil {
		log.Error("Failed to clear cart", err, nil)
		errors.RespondWithServiceError(c, err)
		return
	}

	log.Info("Cart cleared", nil)
	ctrl.hub.Publish(events.EventCartUpdated, ctrl.cartSnapshot())

	c.JSON(http.StatusOK, ctrl.cartSnapshot())
}

// Checkout validates the buyer details and empties the cart on success.
// No payment is processed.
// POST /api/v1/cart/checkout
func (ctrl *CartController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	info := model.CheckoutInfo{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		ZipCode:    req.ZipCode,
		CardNumber: req.CardNumber,
		CardName:   req.CardName,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
	}

	if err := ctrl.cartService.Checkout(c.Request.Context(), info); err != nil {
		log.Warn("Checkout failed", map[string]interface{}{
			"error": err.Error(),
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	log.Info("Checkout completed", map[string]interface{}{
		"email": req.Email,
	})
	ctrl.hub.Publish(events.EventCheckoutDone, gin.H{"email": req.Email})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
	})
}
