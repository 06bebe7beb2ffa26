package cart

import (
	"context"
	"sync"

	"tienda_back_end/internal/models"
)

// MemoryStore implementa Store y Feed en memoria, con un mutex por el
// contrato de atomicidad. Se usa en los tests de los handlers y en
// desarrollo sin Redis.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]string
	subs  map[string][]chan struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string]string),
		subs:  make(map[string][]chan struct{}),
	}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.carts[userID]
	if !ok {
		return []models.CartItem{}, nil
	}
	return decodeItems(userID, data), nil
}

func (s *MemoryStore) Update(ctx context.Context, userID string, fn func([]models.CartItem) []models.CartItem) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []models.CartItem{}
	if data, ok := s.carts[userID]; ok {
		items = decodeItems(userID, data)
	}
	items = fn(items)

	payload, err := encodeItems(items)
	if err != nil {
		return nil, err
	}
	s.carts[userID] = payload
	s.notify(userID)
	return items, nil
}

func (s *MemoryStore) Exists(ctx context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.carts[userID]
	return ok, nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[userID]; !ok {
		return ErrNotFound
	}
	delete(s.carts, userID)
	s.notify(userID)
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, userID string) (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	s.subs[userID] = append(s.subs[userID], ch)

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subs[userID]
		for i, sub := range subs {
			if sub == ch {
				s.subs[userID] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// notify se llama con el lock tomado; la señal nunca bloquea.
func (s *MemoryStore) notify(userID string) {
	for _, ch := range s.subs[userID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Seed deja un payload crudo en el store, corrupto o no. Solo para tests.
func (s *MemoryStore) Seed(userID, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = raw
}
