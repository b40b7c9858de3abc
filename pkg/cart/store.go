package cart

import (
	"context"
	"sync"

	"ghorerbazar.top/organic/storefront/pkg/models"
)

// Store is the persistence capability the aggregate writes through. The
// snapshot is the full line list; there is no partial update.
type Store interface {
	SaveCart(ctx context.Context, sessionID string, lines []models.CartLine) error
	LoadCart(ctx context.Context, sessionID string) ([]models.CartLine, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// MemoryStore keeps snapshots in a map. Used in tests and when the server
// runs without Redis configured.
type MemoryStore struct {
	mu     sync.Mutex
	carts  map[string][]models.CartLine
	orders map[string]*models.OrderConfirmation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:  make(map[string][]models.CartLine),
		orders: make(map[string]*models.OrderConfirmation),
	}
}

func (m *MemoryStore) SaveCart(ctx context.Context, sessionID string, lines []models.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]models.CartLine, len(lines))
	copy(snapshot, lines)
	m.carts[sessionID] = snapshot
	return nil
}

func (m *MemoryStore) LoadCart(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines, ok := m.carts[sessionID]
	if !ok {
		return nil, nil
	}
	snapshot := make([]models.CartLine, len(lines))
	copy(snapshot, lines)
	return snapshot, nil
}

func (m *MemoryStore) ClearCart(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}

func (m *MemoryStore) SaveLastOrder(ctx context.Context, sessionID string, order *models.OrderConfirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[sessionID] = order
	return nil
}

func (m *MemoryStore) LoadLastOrder(ctx context.Context, sessionID string) (*models.OrderConfirmation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[sessionID], nil
}
