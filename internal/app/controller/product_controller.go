package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ejoh/storefront-backend/internal/app/service"
	apperrors "github.com/ejoh/storefront-backend/internal/errors"
	"github.com/ejoh/storefront-backend/internal/middleware"
)

type ProductController struct {
	catalogService service.CatalogService
	reviewService  service.ReviewService
}

func NewProductController(catalogService service.CatalogService, reviewService service.ReviewService) *ProductController {
	return &ProductController{
		catalogService: catalogService,
		reviewService:  reviewService,
	}
}

// ListProducts returns the current catalog view. Query parameters update
// the view state before it is computed, so the response always reflects
// the parameters it was called with.
// GET /api/v1/products?search=&category=&sort=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if search, ok := c.GetQuery("search"); ok {
		ctrl.catalogService.SetSearchTerm(search)
	}
	if category, ok := c.GetQuery("category"); ok {
		ctrl.catalogService.SetCategory(category)
	}
	if sortKey, ok := c.GetQuery("sort"); ok {
		if err := ctrl.catalogService.SetSortKey(service.SortKey(sortKey)); err != nil {
			log.Warn("Invalid sort key", map[string]interface{}{
				"sort": sortKey,
			})
			apperrors.RespondWithServiceError(c, err)
			return
		}
	}

	if !ctrl.catalogService.Loaded() {
		if err := ctrl.catalogService.Load(c.Request.Context()); err != nil {
			log.Error("Failed to load catalog", err, nil)
			apperrors.RespondWithServiceError(c, err)
			return
		}
	}

	products := ctrl.catalogService.View()

	log.Info("Catalog view computed", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product with its live review summary.
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.catalogService.GetByID(id)
	if err != nil {
		log.Warn("Product lookup failed", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.RespondWithServiceError(c, err)
		return
	}

	reviews := ctrl.reviewService.ListForProduct(id)

	c.JSON(http.StatusOK, gin.H{
		"product":        product,
		"review_count":   len(reviews),
		"average_rating": ctrl.reviewService.AverageRating(id),
	})
}

// ListCategories returns the distinct category tags of the catalog.
// GET /api/v1/products/categories
func (ctrl *ProductController) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": ctrl.catalogService.Categories(),
	})
}
