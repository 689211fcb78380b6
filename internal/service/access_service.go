package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campus_market/internal/model"
	"campus_market/internal/repository"
)

// AccessService gates seller contact details behind a paid, permanent grant.
// A (product, buyer) pair has no access until GrantAccess is called for it,
// after which HasAccess stays true forever; there is no revocation.
type AccessService interface {
	HasAccess(ctx context.Context, productID, buyerID int) (bool, error)
	GrantAccess(ctx context.Context, productID, buyerID int) (*model.ContactAccess, error)
	ContactsForBuyer(ctx context.Context, buyerID int) ([]model.ContactAccess, error)
	// WithPairLock runs fn while holding the lock for the (product, buyer)
	// pair. Compound check-then-grant sequences run under it so racing
	// callers cannot both observe a missing grant and both charge the buyer.
	// fn must not call WithPairLock for the same pair.
	WithPairLock(productID, buyerID int, fn func() error) error
}

type accessService struct {
	repo repository.ContactAccessRepository

	mu    sync.Mutex
	pairs map[[2]int]*sync.Mutex
}

// NewAccessService creates a new AccessService
func NewAccessService(repo repository.ContactAccessRepository) AccessService {
	return &accessService{
		repo:  repo,
		pairs: make(map[[2]int]*sync.Mutex),
	}
}

func (s *accessService) pairLock(productID, buyerID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int{productID, buyerID}
	l, ok := s.pairs[key]
	if !ok {
		l = &sync.Mutex{}
		s.pairs[key] = l
	}
	return l
}

func (s *accessService) HasAccess(ctx context.Context, productID, buyerID int) (bool, error) {
	has, err := s.repo.Exists(ctx, productID, buyerID)
	if err != nil {
		return false, fmt.Errorf("failed to check contact access: %w", err)
	}
	return has, nil
}

func (s *accessService) WithPairLock(productID, buyerID int, fn func() error) error {
	l := s.pairLock(productID, buyerID)
	l.Lock()
	defer l.Unlock()
	return fn()
}

// GrantAccess records a grant for the pair. Granting twice leaves a single
// effective grant; the second call hands back the one already held. The
// repository dedupes the pair, so a bare grant needs no pair lock.
func (s *accessService) GrantAccess(ctx context.Context, productID, buyerID int) (*model.ContactAccess, error) {
	access := &model.ContactAccess{
		ProductID: productID,
		BuyerID:   buyerID,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, access); err != nil {
		return nil, fmt.Errorf("failed to grant contact access: %w", err)
	}
	return access, nil
}

func (s *accessService) ContactsForBuyer(ctx context.Context, buyerID int) ([]model.ContactAccess, error) {
	grants, err := s.repo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact access for buyer: %w", err)
	}
	return grants, nil
}
