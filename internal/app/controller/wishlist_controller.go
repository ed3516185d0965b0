package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ejoh/storefront-backend/internal/app/service"
	"github.com/ejoh/storefront-backend/internal/errors"
	"github.com/ejoh/storefront-backend/internal/events"
	"github.com/ejoh/storefront-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
	catalogService  service.CatalogService
	hub             *events.Hub
}

func NewWishlistController(wishlistService service.WishlistService, catalogService service.CatalogService, hub *events.Hub) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
		catalogService:  catalogService,
		hub:             hub,
	}
}

type AddToWishlistRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

// GetWishlist returns the saved products in insertion order.
// GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	entries := ctrl.wishlistService.List()
	c.JSON(http.StatusOK, gin.H{
		"items": entries,
		"count": len(entries),
	})
}

// AddToWishlist saves a product. Adding a product twice is a no-op.
// POST /api/v1/wishlist
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to wishlist request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product, err := ctrl.catalogService.GetByID(req.ProductID)
	if err != nil {
		log.Warn("Product not found for wishlist", map[string]interface{}{
			"product_id": req.ProductID,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	if err := ctrl.wishlistService.Add(c.Request.Context(), product); err != nil {
		log.Error("Failed to add product to wishlist", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	ctrl.hub.Publish(events.EventWishlistUpdated, gin.H{
		"count": ctrl.wishlistService.Count(),
	})

	c.JSON(http.StatusCreated, gin.H{
		"count": ctrl.wishlistService.Count(),
	})
}

// RemoveFromWishlist removes a saved product; absent entries are a no-op.
// DELETE /api/v1/wishlist/:productId
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
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

	if err := ctrl.wishlistService.Remove(c.Request.Context(), id); err != nil {
		log.Error("Failed to remove product from wishlist", err, map[string]interface{}{
			"product_id": id,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	ctrl.hub.Publish(events.EventWishlistUpdated, gin.H{
		"count": ctrl.wishlistService.Count(),
	})

	c.JSON(http.StatusOK, gin.H{
		"count": ctrl.wishlistService.Count(),
	})
}
