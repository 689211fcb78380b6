package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"campus_market/internal/model"
	"campus_market/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewHandler handles review requests
type ReviewHandler struct {
	service service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	review, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRating) || errors.Is(err, service.ErrCommentTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error recording review: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record review"})
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	reviews, err := h.service.ForProduct(c.Request.Context(), productID)
	if err != nil {
		log.Printf("Error getting product reviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}
	c.JSON(http.StatusOK, emptyIfNilReviews(reviews))
}

func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	reviews, err := h.service.ByReviewer(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error getting user reviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}
	c.JSON(http.StatusOK, emptyIfNilReviews(reviews))
}

// GetReceivedReviews serves the reviews a user has received, the per-review
// detail behind the aggregate rating endpoint.
func (h *ReviewHandler) GetReceivedReviews(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	reviews, err := h.service.ByUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error getting received reviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}
	c.JSON(http.StatusOK, emptyIfNilReviews(reviews))
}

func (h *ReviewHandler) GetUserRating(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	rating, err := h.service.AverageRatingFor(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error getting user rating: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rating"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": rating})
}

// RegisterReviewRoutes registers review routes
func (h *ReviewHandler) RegisterReviewRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	reviews := rg.Group("/reviews")
	{
		reviews.GET("/product/:productId", h.GetProductReviews)
		reviews.GET("/user/:userId", h.GetUserReviews)
		reviews.GET("/received/:userId", h.GetReceivedReviews)
		reviews.GET("/rating/:userId", h.GetUserRating)
	}

	protected := rg.Group("/reviews")
	protected.Use(authMW)
	{
		protected.POST("", h.CreateReview)
	}
}

func emptyIfNilReviews(reviews []model.Review) []model.Review {
	if reviews == nil {
		return []model.Review{}
	}
	return reviews
}
