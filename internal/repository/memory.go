package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campus_market/internal/model"
)

// MemoryStore is an in-memory implementation of every repository interface.
// It exists for tests; the server runs against Postgres. Counters are scoped
// to the store and start at 1 per entity type.
type MemoryStore struct {
	mu sync.Mutex

	users         map[int]*model.User
	products      map[int]*model.Product
	transactions  map[int64]*model.Transaction
	contactAccess map[int]*model.ContactAccess
	reviews       map[int]*model.Review

	userID          int
	productID       int
	transactionID   int64
	contactAccessID int
	reviewID        int
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[int]*model.User),
		products:      make(map[int]*model.Product),
		transactions:  make(map[int64]*model.Transaction),
		contactAccess: make(map[int]*model.ContactAccess),
		reviews:       make(map[int]*model.Review),
	}
}

// --- UserRepository ---

func (s *MemoryStore) Create(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID++
	u.ID = s.userID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id int) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ExternalID == externalID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// --- ProductRepository ---

// Products returns a ProductRepository view of the store
func (s *MemoryStore) Products() ProductRepository { return (*memoryProducts)(s) }

// Users returns a UserRepository view of the store
func (s *MemoryStore) Users() UserRepository { return s }

// Transactions returns a TransactionRepository view of the store
func (s *MemoryStore) Transactions() TransactionRepository { return (*memoryTransactions)(s) }

// ContactAccess returns a ContactAccessRepository view of the store
func (s *MemoryStore) ContactAccess() ContactAccessRepository { return (*memoryContactAccess)(s) }

// Reviews returns a ReviewRepository view of the store
func (s *MemoryStore) Reviews() ReviewRepository { return (*memoryReviews)(s) }

type memoryProducts MemoryStore

func (s *memoryProducts) Create(ctx context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productID++
	p.ID = s.productID
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.IsSold = false
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *memoryProducts) FindByID(ctx context.Context, id int) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memoryProducts) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Product
	for _, p := range s.products {
		if p.Category == category && !p.IsSold {
			out = append(out, *p)
		}
	}
	sortProductsNewestFirst(out)
	return out, nil
}

func (s *memoryProducts) FindBySeller(ctx context.Context, sellerID int) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Product
	for _, p := range s.products {
		if p.SellerID == sellerID {
			out = append(out, *p)
		}
	}
	sortProductsNewestFirst(out)
	return out, nil
}

func (s *memoryProducts) FindRecent(ctx context.Context, limit int) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Product
	for _, p := range s.products {
		if !p.IsSold {
			out = append(out, *p)
		}
	}
	sortProductsNewestFirst(out)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryProducts) Update(ctx context.Context, p *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[p.ID]
	if !ok {
		return fmt.Errorf("product not found for update")
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *memoryProducts) MarkSold(ctx context.Context, id int) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	p.IsSold = true
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (s *memoryProducts) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}

// sortProductsNewestFirst orders by created_at descending, id descending as
// the stable tie-break for identical timestamps.
func sortProductsNewestFirst(products []model.Product) {
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID > products[j].ID
		}
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
}

// --- TransactionRepository ---

type memoryTransactions MemoryStore

func (s *memoryTransactions) Create(ctx context.Context, t *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactionID++
	t.ID = s.transactionID
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	cp := *t
	s.transactions[t.ID] = &cp
	return nil
}

func (s *memoryTransactions) FindByID(ctx context.Context, id int64) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *memoryTransactions) FindByUser(ctx context.Context, userID int) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Transaction
	for _, t := range s.transactions {
		if t.SellerID == userID || (t.BuyerID != nil && *t.BuyerID == userID) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memoryTransactions) UpdateStatus(ctx context.Context, id int64, status string) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return nil, nil
	}
	t.Status = status
	cp := *t
	return &cp, nil
}

// --- ContactAccessRepository ---

type memoryContactAccess MemoryStore

func (s *memoryContactAccess) Create(ctx context.Context, a *model.ContactAccess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Same pair already granted: hand back the existing grant
	for _, g := range s.contactAccess {
		if g.ProductID == a.ProductID && g.BuyerID == a.BuyerID {
			*a = *g
			return nil
		}
	}
	s.contactAccessID++
	a.ID = s.contactAccessID
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	cp := *a
	s.contactAccess[a.ID] = &cp
	return nil
}

func (s *memoryContactAccess) Exists(ctx context.Context, productID, buyerID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.contactAccess {
		if g.ProductID == productID && g.BuyerID == buyerID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryContactAccess) FindByBuyer(ctx context.Context, buyerID int) ([]model.ContactAccess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ContactAccess
	for _, g := range s.contactAccess {
		if g.BuyerID == buyerID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// --- ReviewRepository ---

type memoryReviews MemoryStore

func (s *memoryReviews) Create(ctx context.Context, rv *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviewID++
	rv.ID = s.reviewID
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now()
	}
	cp := *rv
	s.reviews[rv.ID] = &cp
	return nil
}

func (s *memoryReviews) FindByProduct(ctx context.Context, productID int) ([]model.Review, error) {
	return s.filter(func(rv *model.Review) bool { return rv.ProductID == productID })
}

func (s *memoryReviews) FindByReviewer(ctx context.Context, reviewerID int) ([]model.Review, error) {
	return s.filter(func(rv *model.Review) bool { return rv.ReviewerID == reviewerID })
}

func (s *memoryReviews) FindByReviewedUser(ctx context.Context, reviewedID int) ([]model.Review, error) {
	return s.filter(func(rv *model.Review) bool { return rv.ReviewedID == reviewedID })
}

func (s *memoryReviews) AverageForUser(ctx context.Context, userID int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum, count int
	for _, rv := range s.reviews {
		if rv.ReviewedID == userID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

func (s *memoryReviews) filter(keep func(*model.Review) bool) ([]model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Review
	for _, rv := range s.reviews {
		if keep(rv) {
			out = append(out, *rv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
