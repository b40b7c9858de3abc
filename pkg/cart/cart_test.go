package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghorerbazar.top/organic/storefront/pkg/models"
)

func testProduct(id int, name string, price float64) *models.Product {
	return &models.Product{ID: id, Name: name, Price: models.Taka(price), Stock: 50, Available: true}
}

func TestAddMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, NewMemoryStore(), "s1")

	honey := testProduct(1, "মধু", 300)
	c.Add(ctx, honey, 2)
	c.Add(ctx, honey, 3)

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 5, c.Lines()[0].Quantity)
	assert.Equal(t, 300.0, c.Lines()[0].Price)
}

func TestAddRefreshesUnitPrice(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, NewMemoryStore(), "s1")

	c.Add(ctx, testProduct(1, "ঘি", 900), 1)
	// price changed upstream before the second add
	c.Add(ctx, testProduct(1, "ঘি", 850), 1)

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 2, c.Lines()[0].Quantity)
	assert.Equal(t, 850.0, c.Lines()[0].Price)
	assert.Equal(t, 1700.0, c.Subtotal())
}

func TestAddIgnoresInvalidProduct(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, NewMemoryStore(), "s1")

	c.Add(ctx, nil, 1)
	c.Add(ctx, &models.Product{Name: "no id"}, 1)

	assert.True(t, c.IsEmpty())
}

func TestAddFallbacks(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, NewMemoryStore(), "s1")

	c.Add(ctx, &models.Product{ID: 9}, 0)

	require.Len(t, c.Lines(), 1)
	line := c.Lines()[0]
	assert.Equal(t, "Unknown Product", line.Name)
	assert.Equal(t, models.PlaceholderImage, line.Image)
	assert.Equal(t, 1, line.Quantity, "quantity clamps to 1")
	assert.Equal(t, 0.0, line.Price)
}

func TestNoDuplicateProductIDs(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, NewMemoryStore(), "s1")

	for i := 0; i < 10; i++ {
		c.Add(ctx, testProduct(i%3+1, "পণ্য", 100), 1)
	}

	seen := map[int]bool{}
	for _, line := range c.Lines() {
		assert.False(t, seen[line.ProductID], "duplicate line for product %d", line.ProductID)
		seen[line.ProductID] = true
		assert.GreaterOrEqual(t, line.Quantity, 1)
	}
	assert.Len(t, c.Lines(), 3)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, NewMemoryStore(), "s1")

	c.Add(ctx, testProduct(1, "ডাল", 140), 1)
	c.Add(ctx, testProduct(2, "চাল", 80), 2)

	c.Remove(ctx, 1)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 2, c.Lines()[0].ProductID)

	// absent id is a no-op
	c.Remove(ctx, 99)
	assert.Len(t, c.Lines(), 1)
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, NewMemoryStore(), "s1")

	c.Add(ctx, testProduct(1, "আটা", 55), 4)
	c.UpdateQuantity(ctx, 1, 0)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	c.UpdateQuantity(ctx, 1, -5)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	c.UpdateQuantity(ctx, 1, 7)
	assert.Equal(t, 7, c.Lines()[0].Quantity)
}

func TestDerivedTotals(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, NewMemoryStore(), "s1")

	c.Add(ctx, testProduct(1, "মধু", 300), 1)
	c.Add(ctx, testProduct(2, "তেল", 99.5), 2)

	assert.Equal(t, 3, c.ItemCount())
	assert.Equal(t, 499.0, c.Subtotal())
	assert.Equal(t, 60.0, c.DeliveryCharge(models.DhakaCity))
	assert.Equal(t, 120.0, c.DeliveryCharge("রংপুর"))
	assert.Equal(t, 559.0, c.GrandTotal(models.DhakaCity))

	c.UpdateQuantity(ctx, 2, 3)
	assert.Equal(t, 598.5, c.Subtotal())
	assert.Equal(t, 0.0, c.DeliveryCharge(models.DhakaCity))
	assert.Equal(t, 598.5, c.GrandTotal("রংপুর"))
}

func TestPersistenceAcrossLoads(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := Load(ctx, store, "s1")
	first.Add(ctx, testProduct(1, "মধু", 300), 2)

	second := Load(ctx, store, "s1")
	require.Len(t, second.Lines(), 1)
	assert.Equal(t, 2, second.Lines()[0].Quantity)

	// other sessions see nothing
	other := Load(ctx, store, "s2")
	assert.True(t, other.IsEmpty())
}

func TestClearRemovesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c := Load(ctx, store, "s1")
	c.Add(ctx, testProduct(1, "মধু", 300), 2)
	c.Clear(ctx)

	assert.True(t, c.IsEmpty())
	lines, err := store.LoadCart(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, lines)
}

type failingStore struct{}

func (failingStore) SaveCart(ctx context.Context, sessionID string, lines []models.CartLine) error {
	return errors.New("redis down")
}

func (failingStore) LoadCart(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	return nil, errors.New("corrupt snapshot")
}

func (failingStore) ClearCart(ctx context.Context, sessionID string) error {
	return errors.New("redis down")
}

func TestStoreFailureIsNeverFatal(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, failingStore{}, "s1")

	assert.True(t, c.IsEmpty(), "load failure means an empty cart")

	// mutations still work in memory even when persistence fails
	c.Add(ctx, testProduct(1, "মধু", 300), 1)
	assert.Equal(t, 1, c.ItemCount())
	c.Clear(ctx)
	assert.True(t, c.IsEmpty())
}

func TestView(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, NewMemoryStore(), "s1")

	empty := c.View(models.DhakaCity)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)

	c.Add(ctx, testProduct(1, "মধু", 600), 1)
	view := c.View("বরিশাল")
	assert.Equal(t, 600.0, view.Subtotal)
	assert.Equal(t, 0.0, view.DeliveryCharge)
	assert.True(t, view.FreeDelivery)
	assert.Equal(t, 600.0, view.Total)
}
