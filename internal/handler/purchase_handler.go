package handler

import (
	"errors"
	"log"
	"net/http"

	"campus_market/internal/middleware"
	"campus_market/internal/service"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles fee purchase flows. The paying party is always the
// authenticated principal, never an id supplied in the request body.
type PurchaseHandler struct {
	service service.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

// Helper to get authenticated user ID from context
func getAuthUserID(c *gin.Context) (int, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

func (h *PurchaseHandler) PurchaseContact(c *gin.Context) {
	buyerID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		ProductID int `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.service.PurchaseContact(c.Request.Context(), req.ProductID, buyerID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error purchasing contact access: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purchase contact access"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PurchaseHandler) PayListingFee(c *gin.Context) {
	sellerID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		ProductID int `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	transaction, err := h.service.PayListingFee(c.Request.Context(), req.ProductID, sellerID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error paying listing fee: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pay listing fee"})
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

// RegisterPurchaseRoutes registers purchase routes
func (h *PurchaseHandler) RegisterPurchaseRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	purchases := rg.Group("/purchases")
	purchases.Use(authMW)
	{
		purchases.POST("/contact", h.PurchaseContact)
		purchases.POST("/listing", h.PayListingFee)
	}
}
