package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"campus_market/internal/model"
	"campus_market/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingGateway records how many charges went through
type countingGateway struct {
	mu      sync.Mutex
	charges []int64
	delay   time.Duration
	fail    bool
}

func (g *countingGateway) Charge(ctx context.Context, amount int64, description string) (string, error) {
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return "", errors.New("gateway declined")
	}
	g.charges = append(g.charges, amount)
	return fmt.Sprintf("pay_test_%d", len(g.charges)), nil
}

func (g *countingGateway) chargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.charges)
}

func newPurchaseFixture(t *testing.T) (PurchaseService, CatalogService, LedgerService, AccessService, *countingGateway) {
	t.Helper()
	store := repository.NewMemoryStore()
	catalog := NewCatalogService(store.Products())
	ledger := NewLedgerService(store.Transactions())
	access := NewAccessService(store.ContactAccess())
	gateway := &countingGateway{}
	purchases := NewPurchaseService(catalog, ledger, access, gateway, DefaultContactFee, DefaultListingFee)
	return purchases, catalog, ledger, access, gateway
}

func listProduct(t *testing.T, catalog CatalogService, sellerID int) *model.Product {
	t.Helper()
	product, err := catalog.CreateProduct(context.Background(), model.CreateProductRequest{
		Title:       "Physics Notes",
		Description: "Full semester notes",
		Price:       25000,
		Category:    "books",
		Condition:   "good",
		SellerID:    sellerID,
	})
	require.NoError(t, err)
	return product
}

func TestPurchaseService_PurchaseContact(t *testing.T) {
	ctx := context.Background()
	purchases, catalog, ledger, access, gateway := newPurchaseFixture(t)
	product := listProduct(t, catalog, 2)

	result, err := purchases.PurchaseContact(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, result.HasAccess)
	assert.False(t, result.AlreadyGranted)
	require.NotNil(t, result.Transaction)
	require.NotNil(t, result.Access)

	assert.Equal(t, []int64{DefaultContactFee}, gateway.charges)
	assert.Equal(t, model.TransactionTypeContactFee, result.Transaction.TransactionType)
	assert.Equal(t, model.TransactionStatusCompleted, result.Transaction.Status)
	assert.NotNil(t, result.Transaction.PaymentID)
	require.NotNil(t, result.Transaction.BuyerID)
	assert.Equal(t, 3, *result.Transaction.BuyerID)
	assert.Equal(t, 2, result.Transaction.SellerID)

	has, err := access.HasAccess(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, has)

	txs, err := ledger.GetByUser(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestPurchaseService_PurchaseContact_NoDoubleCharge(t *testing.T) {
	ctx := context.Background()
	purchases, catalog, ledger, _, gateway := newPurchaseFixture(t)
	product := listProduct(t, catalog, 2)

	first, err := purchases.PurchaseContact(ctx, product.ID, 3)
	require.NoError(t, err)
	require.False(t, first.AlreadyGranted)

	second, err := purchases.PurchaseContact(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, second.HasAccess)
	assert.True(t, second.AlreadyGranted)
	assert.Nil(t, second.Transaction)

	// Still just the one charge and one ledger entry
	assert.Len(t, gateway.charges, 1)
	txs, err := ledger.GetByUser(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestPurchaseService_ConcurrentPurchasesChargeOnce(t *testing.T) {
	ctx := context.Background()
	purchases, catalog, ledger, _, gateway := newPurchaseFixture(t)
	product := listProduct(t, catalog, 2)
	gateway.delay = 20 * time.Millisecond

	const buyers = 10
	results := make([]*ContactPurchaseResult, buyers)
	errs := make([]error, buyers)

	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = purchases.PurchaseContact(ctx, product.ID, 3)
		}(i)
	}
	wg.Wait()

	charged := 0
	for i := 0; i < buyers; i++ {
		require.NoError(t, errs[i])
		assert.True(t, results[i].HasAccess)
		if !results[i].AlreadyGranted {
			charged++
		}
	}

	// One call paid, the rest found the grant already held
	assert.Equal(t, 1, charged)
	assert.Equal(t, 1, gateway.chargeCount())

	txs, err := ledger.GetByUser(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestPurchaseService_PurchaseContact_ProductNotFound(t *testing.T) {
	purchases, _, _, _, gateway := newPurchaseFixture(t)

	_, err := purchases.PurchaseContact(context.Background(), 99, 3)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, gateway.charges)
}

func TestPurchaseService_PurchaseContact_GatewayFailure(t *testing.T) {
	ctx := context.Background()
	purchases, catalog, ledger, access, gateway := newPurchaseFixture(t)
	product := listProduct(t, catalog, 2)
	gateway.fail = true

	_, err := purchases.PurchaseContact(ctx, product.ID, 3)
	require.Error(t, err)

	// Nothing recorded and no access granted
	has, err := access.HasAccess(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.False(t, has)
	txs, err := ledger.GetByUser(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestPurchaseService_PayListingFee(t *testing.T) {
	ctx := context.Background()
	purchases, catalog, ledger, _, gateway := newPurchaseFixture(t)
	product := listProduct(t, catalog, 2)

	tx, err := purchases.PayListingFee(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, model.TransactionTypeListingFee, tx.TransactionType)
	assert.Equal(t, model.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, int64(DefaultListingFee), tx.Amount)
	assert.Equal(t, 2, tx.SellerID)
	assert.Nil(t, tx.BuyerID)
	assert.Equal(t, []int64{DefaultListingFee}, gateway.charges)

	txs, err := ledger.GetByUser(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestPurchaseService_PayListingFee_ProductNotFound(t *testing.T) {
	purchases, _, _, _, gateway := newPurchaseFixture(t)

	_, err := purchases.PayListingFee(context.Background(), 99, 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, gateway.charges)
}

func TestNewPurchaseService_DefaultsFees(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	catalog := NewCatalogService(store.Products())
	ledger := NewLedgerService(store.Transactions())
	access := NewAccessService(store.ContactAccess())
	gateway := &countingGateway{}
	purchases := NewPurchaseService(catalog, ledger, access, gateway, 0, -1)
	product := listProduct(t, catalog, 2)

	result, err := purchases.PurchaseContact(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultContactFee), result.Transaction.Amount)

	tx, err := purchases.PayListingFee(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultListingFee), tx.Amount)
}
