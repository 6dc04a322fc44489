package phrase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is a thread-safe in-memory PhraseRepository. It backs the
// server when no external store is wired in and doubles as the test double.
type MemoryRepository struct {
	mu      sync.RWMutex
	items   map[uuid.UUID]*Phrase
	ordered []uuid.UUID // insertion order, for stable listing
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]*Phrase)}
}

func (r *MemoryRepository) Create(_ context.Context, p *Phrase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("phrase %s already exists", p.ID)
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.items[p.ID] = p
	r.ordered = append(r.ordered, p.ID)
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Phrase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("phrase %s not found", id)
	}
	return p, nil
}

func (r *MemoryRepository) GetByShortcut(_ context.Context, shortcut string) (*Phrase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.ordered {
		if p := r.items[id]; p != nil && p.Shortcut == shortcut {
			return p, nil
		}
	}
	return nil, fmt.Errorf("phrase with shortcut %q not found", shortcut)
}

func (r *MemoryRepository) Update(_ context.Context, p *Phrase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[p.ID]
	if !ok {
		return fmt.Errorf("phrase %s not found", p.ID)
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	r.items[p.ID] = p
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("phrase %s not found", id)
	}
	delete(r.items, id)
	for i, oid := range r.ordered {
		if oid == id {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) List(_ context.Context, limit, offset int) ([]*Phrase, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.snapshot()
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *MemoryRepository) All(_ context.Context) ([]*Phrase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

// snapshot returns phrases in insertion order. Callers hold at least a read
// lock.
func (r *MemoryRepository) snapshot() []*Phrase {
	out := make([]*Phrase, 0, len(r.items))
	for _, id := range r.ordered {
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
