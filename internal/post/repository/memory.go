package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/openpress/post-service/internal/post"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repository used by unit tests and as the
// runtime fallback when no MongoDB URI is configured. It hands out copies
// so callers can never mutate the stored records.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*post.Post
	seq   map[primitive.ObjectID]int64
	next  int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		store: make(map[primitive.ObjectID]*post.Post),
		seq:   make(map[primitive.ObjectID]int64),
	}
}

func (m *MemoryRepo) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	stored := clone(p)
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.Tags == nil {
		stored.Tags = []string{}
	}
	m.store[stored.ID] = stored
	m.next++
	m.seq[stored.ID] = m.next
	return clone(stored), nil
}

func (m *MemoryRepo) FindPage(ctx context.Context, limit, offset int64) ([]*post.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*post.Post, 0, len(m.store))
	for _, p := range m.store {
		all = append(all, p)
	}
	// most-recent-first, insertion order breaking createdAt ties
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return m.seq[all[i].ID] > m.seq[all[j].ID]
	})
	out := []*post.Post{}
	for i := offset; i < int64(len(all)) && int64(len(out)) < limit; i++ {
		out = append(out, clone(all[i]))
	}
	return out, nil
}

func (m *MemoryRepo) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.store)), nil
}

func (m *MemoryRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*post.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	return clone(p), nil
}

func (m *MemoryRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, patch post.UpdatePayload) (*post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Body != nil {
		p.Body = *patch.Body
	}
	if patch.Tags != nil {
		p.Tags = append([]string(nil), *patch.Tags...)
	}
	p.UpdatedAt = time.Now().UTC()
	return clone(p), nil
}

func (m *MemoryRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// nonexistent id deletes are a no-op success
	delete(m.store, id)
	delete(m.seq, id)
	return nil
}

func clone(p *post.Post) *post.Post {
	c := *p
	c.Tags = append([]string(nil), p.Tags...)
	if p.Tags != nil && c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}
