// Package cart holds the shopping cart aggregate: the line items a session
// has picked, their derived totals, and the write-through persistence that
// keeps the cart across page reloads.
package cart

import (
	"context"
	"log"

	"ghorerbazar.top/organic/storefront/pkg/models"
)

// Cart is the per-session aggregate. No two lines ever share a product id;
// adding an existing product merges into its line instead.
type Cart struct {
	sessionID string
	store     Store
	lines     []models.CartLine
}

// Load restores a session's cart from the store. A load failure or a corrupt
// snapshot is never fatal: the customer just starts with an empty cart.
func Load(ctx context.Context, store Store, sessionID string) *Cart {
	c := &Cart{sessionID: sessionID, store: store}
	lines, err := store.LoadCart(ctx, sessionID)
	if err != nil {
		log.Printf("Warning: failed to load cart for session %s: %v", sessionID, err)
		return c
	}
	c.lines = lines
	return c
}

// Add puts a product in the cart. Invalid products are ignored (logged).
// If the product is already in the cart its quantity grows by the given
// amount and its unit price is refreshed from the product's current price.
func (c *Cart) Add(ctx context.Context, product *models.Product, quantity int) {
	if product == nil || product.ID == 0 {
		log.Printf("Warning: ignoring add to cart with invalid product data")
		return
	}

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += quantity
			c.lines[i].Price = float64(product.EffectivePrice())
			c.persist(ctx)
			return
		}
	}

	name := product.Name
	if name == "" {
		name = "Unknown Product"
	}
	if quantity < 1 {
		quantity = 1
	}
	c.lines = append(c.lines, models.CartLine{
		ProductID: product.ID,
		Name:      name,
		Price:     float64(product.EffectivePrice()),
		Image:     product.DisplayImage(""),
		Quantity:  quantity,
		Product:   product,
	})
	c.persist(ctx)
}

// Remove drops the line for a product id; absent ids are a no-op.
func (c *Cart) Remove(ctx context.Context, productID int) {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(c.lines) {
		return
	}
	c.lines = kept
	c.persist(ctx)
}

// UpdateQuantity sets a line's quantity, clamped to at least 1.
func (c *Cart) UpdateQuantity(ctx context.Context, productID, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			c.persist(ctx)
			return
		}
	}
}

// Clear empties the cart and removes the persisted snapshot.
func (c *Cart) Clear(ctx context.Context) {
	c.lines = nil
	if err := c.store.ClearCart(ctx, c.sessionID); err != nil {
		log.Printf("Warning: failed to clear cart for session %s: %v", c.sessionID, err)
	}
}

func (c *Cart) persist(ctx context.Context) {
	if err := c.store.SaveCart(ctx, c.sessionID, c.lines); err != nil {
		log.Printf("Warning: failed to save cart for session %s: %v", c.sessionID, err)
	}
}

func (c *Cart) Lines() []models.CartLine {
	return c.lines
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

func (c *Cart) DeliveryCharge(city string) float64 {
	return models.DeliveryChargeFor(c.Subtotal(), city)
}

func (c *Cart) GrandTotal(city string) float64 {
	return c.Subtotal() + c.DeliveryCharge(city)
}

// View assembles the render model for the cart page with totals computed
// for the given city.
func (c *Cart) View(city string) models.CartView {
	subtotal := c.Subtotal()
	charge := models.DeliveryChargeFor(subtotal, city)
	items := c.lines
	if items == nil {
		items = []models.CartLine{}
	}
	return models.CartView{
		Items:          items,
		ItemCount:      c.ItemCount(),
		Subtotal:       subtotal,
		DeliveryCharge: charge,
		Total:          subtotal + charge,
		FreeDelivery:   subtotal >= models.FreeDeliveryThreshold,
	}
}
