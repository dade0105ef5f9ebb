package service

import (
	"context"
	"sync"
	"time"

	"github.com/munihub/civic-portal/internal/model"
	"github.com/munihub/civic-portal/internal/repository"
)

// memStore is an in-memory stand-in for the repository layer.  WithTx
// serializes callers and restores a snapshot on error, mimicking the
// rollback the real database gives the services.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	items      map[uint64]*model.ContentItem
	regs       map[uint64]*model.Registration
	intents    map[intentKey]bool
	nextItemID uint64
	nextRegID  uint64

	// hasActiveHook overrides HasActive to simulate a stale fast-path
	// read racing another writer.
	hasActiveHook func(itemID, userID uint64) (bool, error)
	// statusUpdateErr makes UpdateStatus fail mid-transaction.
	statusUpdateErr error
}

type intentKey struct {
	eventID uint64
	userID  uint64
}

func newMemStore() *memStore {
	return &memStore{
		items:   make(map[uint64]*model.ContentItem),
		regs:    make(map[uint64]*model.Registration),
		intents: make(map[intentKey]bool),
	}
}

func (s *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	items, regs := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(items, regs)
		return err
	}
	return nil
}

func (s *memStore) snapshot() (map[uint64]*model.ContentItem, map[uint64]*model.Registration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make(map[uint64]*model.ContentItem, len(s.items))
	for id, it := range s.items {
		cp := *it
		items[id] = &cp
	}
	regs := make(map[uint64]*model.Registration, len(s.regs))
	for id, r := range s.regs {
		cp := *r
		regs[id] = &cp
	}
	return items, regs
}

func (s *memStore) restore(items map[uint64]*model.ContentItem, regs map[uint64]*model.Registration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.regs = regs
}

// addItem seeds an item and returns its id.
func (s *memStore) addItem(item model.ContentItem) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextItemID++
	item.ID = s.nextItemID
	s.items[item.ID] = &item
	return item.ID
}

func (s *memStore) item(id uint64) model.ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.items[id]
}

func (s *memStore) registration(id uint64) model.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.regs[id]
}

// ItemReader / ContentItems / LifecycleItems / HighlightItems / IntentItems

func (s *memStore) GetByID(ctx context.Context, id uint64) (*model.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (s *memStore) GetForUpdate(ctx context.Context, id uint64) (*model.ContentItem, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) GetBySlug(ctx context.Context, slug string) (*model.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Slug == slug {
			cp := *it
			return &cp, nil
		}
	}
	return nil, repository.ErrItemNotFound
}

func (s *memStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) Create(ctx context.Context, item *model.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextItemID++
	item.ID = s.nextItemID
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *memStore) ListPublished(ctx context.Context, page, limit int) ([]model.ContentItem, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ContentItem
	for id := uint64(1); id <= s.nextItemID; id++ {
		if it, ok := s.items[id]; ok && it.Status == model.StatusPublished {
			out = append(out, *it)
		}
	}
	total := len(out)
	if limit < 1 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(out) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (s *memStore) UpdateStatus(ctx context.Context, id uint64, status string, clearHighlight bool) error {
	if s.statusUpdateErr != nil {
		return s.statusUpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return repository.ErrItemNotFound
	}
	it.Status = status
	if clearHighlight {
		it.IsHighlighted = false
	}
	return nil
}

func (s *memStore) UpdateTotalSlots(ctx context.Context, id uint64, totalSlots *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return repository.ErrItemNotFound
	}
	it.TotalSlots = totalSlots
	return nil
}

func (s *memStore) ClearHighlights(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Kind == model.KindProgram {
			it.IsHighlighted = false
		}
	}
	return nil
}

func (s *memStore) SetHighlight(ctx context.Context, id uint64, highlighted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return repository.ErrItemNotFound
	}
	it.IsHighlighted = highlighted
	return nil
}

// RegistrationStore / CapacityCounter / CascadeStore

func (s *memStore) Insert(ctx context.Context, reg *model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.regs {
		if r.ItemID == reg.ItemID && r.UserID == reg.UserID && r.Status == model.RegistrationConfirmed {
			return repository.ErrDuplicateActive
		}
	}
	s.nextRegID++
	reg.ID = s.nextRegID
	reg.Status = model.RegistrationConfirmed
	reg.CreatedAt = time.Now().UTC()
	cp := *reg
	s.regs[reg.ID] = &cp
	return nil
}

func (s *memStore) HasActive(ctx context.Context, itemID, userID uint64) (bool, error) {
	if s.hasActiveHook != nil {
		return s.hasActiveHook(itemID, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.regs {
		if r.ItemID == itemID && r.UserID == userID && r.Status == model.RegistrationConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) GetForUser(ctx context.Context, id, userID uint64) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.regs[id]
	if !ok || r.UserID != userID {
		return nil, repository.ErrRegistrationNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *memStore) ListByUser(ctx context.Context, userID uint64, page, limit int) ([]model.Registration, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Registration
	for id := s.nextRegID; id >= 1; id-- {
		if r, ok := s.regs[id]; ok && r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, len(out), nil
}

func (s *memStore) Cancel(ctx context.Context, id uint64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.regs[id]
	if !ok || r.Status != model.RegistrationConfirmed {
		return repository.ErrRegistrationNotFound
	}
	r.Status = model.RegistrationCancelled
	t := at.UTC()
	r.CancelledAt = &t
	return nil
}

func (s *memStore) CancelAllForItem(ctx context.Context, itemID uint64, at time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	t := at.UTC()
	for _, r := range s.regs {
		if r.ItemID == itemID && r.Status == model.RegistrationConfirmed {
			r.Status = model.RegistrationCancelled
			r.CancelledAt = &t
			n++
		}
	}
	return n, nil
}

func (s *memStore) CountConfirmed(ctx context.Context, itemID uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.regs {
		if r.ItemID == itemID && r.Status == model.RegistrationConfirmed {
			n++
		}
	}
	return n, nil
}

// IntentStore

func (s *memStore) Upsert(ctx context.Context, eventID, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := intentKey{eventID, userID}
	if s.intents[k] {
		return false, nil
	}
	s.intents[k] = true
	return true, nil
}

func (s *memStore) Delete(ctx context.Context, eventID, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := intentKey{eventID, userID}
	if !s.intents[k] {
		return false, nil
	}
	delete(s.intents, k)
	return true, nil
}

func (s *memStore) Exists(ctx context.Context, eventID, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intents[intentKey{eventID, userID}], nil
}

func (s *memStore) Count(ctx context.Context, eventID uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.intents {
		if k.eventID == eventID {
			n++
		}
	}
	return n, nil
}

func intPtr(n int) *int { return &n }
