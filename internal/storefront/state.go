package storefront

import (
	"sync"

	"github.com/google/uuid"

	"github.com/decalcomanie/colorstore/internal/domain"
)

// State is the application state shared by reference between UI pieces
type State struct {
	mu          sync.RWMutex
	catalog     []domain.StoreItem
	lastOrderID string

	// Idempotency-Key reused while the submitted cart and form stay the same
	checkoutKey         string
	checkoutFingerprint string

	Cart *Cart
	Form *CheckoutForm
}

func NewState() *State {
	return &State{
		Cart: NewCart(),
		Form: NewCheckoutForm(),
	}
}

// ReplaceCatalog discards the previous catalog. The cart is left alone.
func (s *State) ReplaceCatalog(items []domain.StoreItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = append([]domain.StoreItem(nil), items...)
}

func (s *State) Catalog() []domain.StoreItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.StoreItem(nil), s.catalog...)
}

// CatalogItem returns the item at 1-based position n of the current catalog
func (s *State) CatalogItem(n int) (domain.StoreItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n < 1 || n > len(s.catalog) {
		return domain.StoreItem{}, false
	}
	return s.catalog[n-1], true
}

func (s *State) SetLastOrderID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastOrderID = id
}

func (s *State) LastOrderID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastOrderID
}

// CheckoutKey returns the Idempotency-Key for a checkout whose cart and form
// serialize to fingerprint. A retry of the same checkout gets the same key; a
// changed cart or form gets a new one.
func (s *State) CheckoutKey(fingerprint string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkoutKey == "" || s.checkoutFingerprint != fingerprint {
		s.checkoutKey = uuid.NewString()
		s.checkoutFingerprint = fingerprint
	}
	return s.checkoutKey
}

// ResetCheckout forgets the last order and its Idempotency-Key
func (s *State) ResetCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastOrderID = ""
	s.checkoutKey = ""
	s.checkoutFingerprint = ""
}
