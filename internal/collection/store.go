package collection

import (
	"sync"

	"tabreed-backend/internal/domain"
	"tabreed-backend/internal/kvstore"
	"tabreed-backend/pkg/logger"
)

// Listener observes the collection after each successful mutation. It
// is invoked synchronously, before the mutating call returns, so a
// caller chaining a mutation with an immediate read sees post-mutation
// state.
type Listener func(items []LineItem)

// Store binds a Collection to a persistence slot. It hydrates from the
// slot exactly once at construction; a corrupt or missing slot yields
// an empty collection. Every successful mutation persists the new
// state synchronously and then notifies listeners; rejected mutations
// do neither.
//
// Persistence is fail-open: a failed write is logged at warn level and
// the in-memory state stays authoritative for the session. Two
// processes sharing a slot are last-writer-wins; there is no live
// cross-instance sync.
type Store struct {
	mu        sync.Mutex
	key       string
	slot      kvstore.Store
	coll      *Collection
	listeners []Listener
}

// NewStore creates a store over slot key and hydrates it.
func NewStore(cfg Config, key string, slot kvstore.Store) *Store {
	s := &Store{
		key:  key,
		slot: slot,
		coll: New(cfg),
	}
	var items []LineItem
	if slot.Load(key, &items) {
		s.coll.Restore(items)
	}
	return s
}

// Subscribe registers a listener for subsequent mutations.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) Add(p domain.Product, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.coll.Add(p, qty); err != nil {
		return err
	}
	s.commit()
	return nil
}

func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coll.Remove(productID) {
		s.commit()
	}
}

func (s *Store) UpdateQuantity(productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coll.UpdateQuantity(productID, qty) {
		s.commit()
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coll.Count() == 0 {
		return
	}
	s.coll.Clear()
	s.commit()
}

func (s *Store) Quantity(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Quantity(productID)
}

func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Contains(productID)
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Count()
}

func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.TotalQuantity()
}

func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.TotalPrice()
}

// Snapshot returns the current entries. Checkout reads this together
// with TotalPrice at submit time.
func (s *Store) Snapshot() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Items()
}

// commit persists the collection and broadcasts to listeners. Caller
// must hold s.mu.
func (s *Store) commit() {
	items := s.coll.Items()
	if err := s.slot.Save(s.key, items); err != nil {
		logger.Warn().Err(err).Str("key", s.key).Msg("collection: persist failed, in-memory state kept")
	}
	for _, fn := range s.listeners {
		fn(items)
	}
}
