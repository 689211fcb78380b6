package service

import (
	"context"
	"fmt"

	"campus_market/internal/model"

	"github.com/google/uuid"
)

// Default fees in paisa. The contact fee matches what the marketplace UI
// advertises (₹5); the listing fee is configurable per deployment.
const (
	DefaultContactFee = 500
	DefaultListingFee = 1000
)

// PaymentGateway charges a fee and returns an external payment reference.
// The real integration lives outside this repo; the mock below stands in.
type PaymentGateway interface {
	Charge(ctx context.Context, amount int64, description string) (string, error)
}

type mockPaymentGateway struct{}

// NewMockPaymentGateway returns a gateway that approves every charge
func NewMockPaymentGateway() PaymentGateway {
	return mockPaymentGateway{}
}

func (mockPaymentGateway) Charge(ctx context.Context, amount int64, description string) (string, error) {
	return "pay_" + uuid.NewString(), nil
}

// ContactPurchaseResult is what a buyer gets back from a contact purchase
type ContactPurchaseResult struct {
	HasAccess      bool                 `json:"has_access"`
	AlreadyGranted bool                 `json:"already_granted"`
	Transaction    *model.Transaction   `json:"transaction,omitempty"`
	Access         *model.ContactAccess `json:"access,omitempty"`
}

// PurchaseService sequences fee charging against the ledger and access
// control: charge, record the transaction, then grant. The whole sequence
// runs under the per-pair access lock so racing buyers cannot each pass the
// access check and each be charged. The two writes are still separate calls
// with no compensating action if the second fails.
type PurchaseService interface {
	// PurchaseContact charges the contact fee and grants contact access.
	// A buyer who already holds access is not charged again.
	PurchaseContact(ctx context.Context, productID, buyerID int) (*ContactPurchaseResult, error)
	// PayListingFee charges the seller's listing fee for a product.
	PayListingFee(ctx context.Context, productID, sellerID int) (*model.Transaction, error)
}

type purchaseService struct {
	catalog    CatalogService
	ledger     LedgerService
	access     AccessService
	gateway    PaymentGateway
	contactFee int64
	listingFee int64
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(catalog CatalogService, ledger LedgerService, access AccessService, gateway PaymentGateway, contactFee, listingFee int64) PurchaseService {
	if contactFee <= 0 {
		contactFee = DefaultContactFee
	}
	if listingFee <= 0 {
		listingFee = DefaultListingFee
	}
	return &purchaseService{
		catalog:    catalog,
		ledger:     ledger,
		access:     access,
		gateway:    gateway,
		contactFee: contactFee,
		listingFee: listingFee,
	}
}

func (s *purchaseService) PurchaseContact(ctx context.Context, productID, buyerID int) (*ContactPurchaseResult, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err // ErrProductNotFound passes through for the 404 mapping
	}

	var result *ContactPurchaseResult
	err = s.access.WithPairLock(productID, buyerID, func() error {
		has, err := s.access.HasAccess(ctx, productID, buyerID)
		if err != nil {
			return err
		}
		if has {
			result = &ContactPurchaseResult{HasAccess: true, AlreadyGranted: true}
			return nil
		}

		paymentID, err := s.gateway.Charge(ctx, s.contactFee, fmt.Sprintf("Access fee for %s", product.Title))
		if err != nil {
			return fmt.Errorf("contact fee charge failed: %w", err)
		}

		transaction, err := s.ledger.Record(ctx, model.CreateTransactionRequest{
			ProductID:       &productID,
			SellerID:        product.SellerID,
			BuyerID:         &buyerID,
			Amount:          s.contactFee,
			TransactionType: model.TransactionTypeContactFee,
			Status:          model.TransactionStatusCompleted,
			PaymentID:       &paymentID,
		})
		if err != nil {
			return fmt.Errorf("failed to record contact fee: %w", err)
		}

		access, err := s.access.GrantAccess(ctx, productID, buyerID)
		if err != nil {
			return fmt.Errorf("contact fee recorded but grant failed: %w", err)
		}

		result = &ContactPurchaseResult{
			HasAccess:   true,
			Transaction: transaction,
			Access:      access,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *purchaseService) PayListingFee(ctx context.Context, productID, sellerID int) (*model.Transaction, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	paymentID, err := s.gateway.Charge(ctx, s.listingFee, fmt.Sprintf("Listing fee for %s", product.Title))
	if err != nil {
		return nil, fmt.Errorf("listing fee charge failed: %w", err)
	}

	transaction, err := s.ledger.Record(ctx, model.CreateTransactionRequest{
		ProductID:       &productID,
		SellerID:        sellerID,
		Amount:          s.listingFee,
		TransactionType: model.TransactionTypeListingFee,
		Status:          model.TransactionStatusCompleted,
		PaymentID:       &paymentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record listing fee: %w", err)
	}
	return transaction, nil
}
