package handler

import (
	"log"
	"net/http"
	"strconv"

	"campus_market/internal/model"
	"campus_market/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactAccessHandler handles contact access grant requests
type ContactAccessHandler struct {
	service service.AccessService
}

// NewContactAccessHandler creates a new ContactAccessHandler
func NewContactAccessHandler(s service.AccessService) *ContactAccessHandler {
	return &ContactAccessHandler{service: s}
}

func (h *ContactAccessHandler) GrantAccess(c *gin.Context) {
	var req model.CreateContactAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	access, err := h.service.GrantAccess(c.Request.Context(), req.ProductID, req.BuyerID)
	if err != nil {
		log.Printf("Error granting contact access: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant contact access"})
		return
	}
	c.JSON(http.StatusCreated, access)
}

func (h *ContactAccessHandler) CheckAccess(c *gin.Context) {
	productIDStr := c.Query("productId")
	buyerIDStr := c.Query("buyerId")
	if productIDStr == "" || buyerIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID and buyer ID are required"})
		return
	}

	productID, err := strconv.Atoi(productIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId format"})
		return
	}
	buyerID, err := strconv.Atoi(buyerIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid buyerId format"})
		return
	}

	hasAccess, err := h.service.HasAccess(c.Request.Context(), productID, buyerID)
	if err != nil {
		log.Printf("Error checking contact access: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check contact access"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasAccess": hasAccess})
}

func (h *ContactAccessHandler) GetBuyerContacts(c *gin.Context) {
	buyerID, err := strconv.Atoi(c.Param("buyerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid buyer ID"})
		return
	}

	contacts, err := h.service.ContactsForBuyer(c.Request.Context(), buyerID)
	if err != nil {
		log.Printf("Error getting buyer contacts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact access"})
		return
	}
	if contacts == nil {
		contacts = []model.ContactAccess{}
	}
	c.JSON(http.StatusOK, contacts)
}

// RegisterContactAccessRoutes registers contact access routes
func (h *ContactAccessHandler) RegisterContactAccessRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	contactAccess := rg.Group("/contact-access")
	{
		contactAccess.GET("/check", h.CheckAccess)
		contactAccess.GET("/buyer/:buyerId", h.GetBuyerContacts)
	}

	protected := rg.Group("/contact-access")
	protected.Use(authMW)
	{
		protected.POST("", h.GrantAccess)
	}
}
