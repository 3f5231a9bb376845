package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/yavemu/products-shop-web/internal/pkg/cache"
)

// Store is the mutable cart. Every mutation synchronously persists the full
// item list to the KV slot; Clear erases the slot entirely, which is distinct
// from persisting an empty list.
type Store struct {
	mu    sync.Mutex
	items map[int]Item
	kv    cache.KV
	key   string
	ttl   time.Duration
}

// NewStore builds an empty cart persisted under key in kv. A zero ttl keeps
// the slot until it is cleared.
func NewStore(kv cache.KV, key string, ttl time.Duration) *Store {
	return &Store{
		items: make(map[int]Item),
		kv:    kv,
		key:   key,
		ttl:   ttl,
	}
}

// Add inserts the product or, if already present, replaces the stored quantity
// with the given one (last-write-wins, not additive). A quantity of zero or
// less removes the entry.
func (s *Store) Add(ctx context.Context, productID int, name string, unitPrice float64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		delete(s.items, productID)
	} else {
		s.items[productID] = Item{
			ProductID: productID,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  quantity,
		}
	}
	return s.persistLocked(ctx)
}

// Remove deletes the entry if present. Removing an absent product is a no-op
// apart from re-persisting the unchanged list.
func (s *Store) Remove(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, productID)
	return s.persistLocked(ctx)
}

// Clear empties the cart and erases the persisted slot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[int]Item)
	return s.kv.Delete(ctx, s.key)
}

// Load rehydrates the cart from the persisted slot. An absent slot means an
// empty cart. A corrupt slot resets the cart to empty and logs a diagnostic;
// the parse failure is never surfaced to the caller.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			s.items = make(map[int]Item)
			return nil
		}
		return err
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.ErrorContext(ctx, "cart slot is corrupt, resetting to empty cart",
			"key", s.key, "error", err)
		s.items = make(map[int]Item)
		return nil
	}

	s.items = make(map[int]Item, len(items))
	for _, item := range items {
		s.items[item.ProductID] = item
	}
	return nil
}

// Items returns the cart lines ordered by product ID.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// Summarize computes the derived cart statistics.
func (s *Store) Summarize() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{Lines: len(s.items)}
	for _, item := range s.items {
		summary.Units += item.Quantity
		summary.Total += item.Subtotal()
	}
	return summary
}

func (s *Store) itemsLocked() []Item {
	items := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items
}

func (s *Store) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.itemsLocked())
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, string(payload), s.ttl)
}
