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

type ReviewController struct {
	reviewService service.ReviewService
	hub           *events.Hub
}

func NewReviewController(reviewService service.ReviewService, hub *events.Hub) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
		hub:           hub,
	}
}

type AddReviewRequest struct {
	Author  string `json:"author" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// ListReviews returns a product's reviews in insertion order, with the
// derived average rating.
// GET /api/v1/products/:id/reviews
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return
	}

	reviews := ctrl.reviewService.ListForProduct(id)

	c.JSON(http.StatusOK, gin.H{
		"reviews":        reviews,
		"count":          len(reviews),
		"average_rating": ctrl.reviewService.AverageRating(id),
	})
}

// AddReview appends a review to the product's sequence. The product id is
// not checked against the catalog, so reviews for unknown products are
// kept rather than rejected.
// POST /api/v1/products/:id/reviews
func (ctrl *ReviewController) AddReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add review request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	review, err := ctrl.reviewService.Add(c.Request.Context(), id, req.Author, req.Rating, req.Comment)
	if err != nil {
		log.Error("Failed to add review", err, map[string]interface{}{
			"product_id": id,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	log.Info("Review added", map[string]interface{}{
		"product_id": id,
		"review_id":  review.ID,
	})
	ctrl.hub.Publish(events.EventReviewAdded, gin.H{
		"product_id":     id,
		"review":         review,
		"average_rating": ctrl.reviewService.AverageRating(id),
	})

	c.JSON(http.StatusCreated, gin.H{
		"review":         review,
		"average_rating": ctrl.reviewService.AverageRating(id),
	})
}

// DeleteReview removes one review; absent ids are a no-op.
// DELETE /api/v1/products/:id/reviews/:reviewId
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return
	}

	reviewIDStr := c.Param("reviewId")
	reviewID, err := strconv.ParseInt(reviewIDStr, 10, 64)
	if err != nil {
		log.Warn("Invalid review ID format", map[string]interface{}{
			"review_id": reviewIDStr,
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid review ID")
		return
	}

	if err := ctrl.reviewService.Delete(c.Request.Context(), id, reviewID); err != nil {
		log.Error("Failed to delete review", err, map[string]interface{}{
			"product_id": id,
			"review_id":  reviewID,
		})
		errors.RespondWithServiceError(c, err)
		return
	}

	ctrl.hub.Publish(events.EventReviewDeleted, gin.H{
		"product_id": id,
		"review_id":  reviewID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted",
	})
}
