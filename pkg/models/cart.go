package models

// Cart line items, persisted as a JSON snapshot per browser session.

type CartLine struct {
	ProductID int      `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Image     string   `json:"image"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

func (l *CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

type AddToCartRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity"`
}

type UpdateCartLineRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartView is what the cart page renders: the lines plus the derived totals
// for the city the customer has picked so far.
type CartView struct {
	Items          []CartLine `json:"items"`
	ItemCount      int        `json:"item_count"`
	Subtotal       float64    `json:"subtotal"`
	DeliveryCharge float64    `json:"delivery_charge"`
	Total          float64    `json:"total"`
	FreeDelivery   bool       `json:"free_delivery"`
}
