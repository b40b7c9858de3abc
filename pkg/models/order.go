package models

// Delivery pricing. Orders at or above the threshold ship free; below it the
// charge depends on whether delivery is inside Dhaka.
const (
	FreeDeliveryThreshold = 500.0
	DhakaCity             = "ঢাকা"
	DhakaDeliveryCharge   = 60.0
	OutsideDeliveryCharge = 120.0
)

// Payment methods accepted at checkout.
const (
	PaymentCOD    = "cod"
	PaymentBkash  = "bkash"
	PaymentRocket = "rocket"
	PaymentNagad  = "nagad"
)

// MerchantNumber receives manual mobile-money transfers.
const MerchantNumber = "017XXXXXXXX"

// DeliveryChargeFor is the delivery charge as a pure function of subtotal
// and destination city.
func DeliveryChargeFor(subtotal float64, city string) float64 {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	if city == DhakaCity {
		return DhakaDeliveryCharge
	}
	return OutsideDeliveryCharge
}

func IsOnlinePayment(method string) bool {
	switch method {
	case PaymentBkash, PaymentRocket, PaymentNagad:
		return true
	}
	return false
}

// PaymentMethodLabel is the human-readable name shown on receipts.
func PaymentMethodLabel(method string) string {
	switch method {
	case PaymentCOD:
		return "ক্যাশ অন ডেলিভারি"
	case PaymentBkash:
		return "bKash"
	case PaymentRocket:
		return "Rocket"
	case PaymentNagad:
		return "Nagad"
	}
	return method
}

// CustomerInfo is the checkout contact/delivery form.
type CustomerInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PaymentMethod string `json:"payment_method"`
}

type OrderItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderRequest is the payload POSTed to the catalog API's order endpoint.
type OrderRequest struct {
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Address        string      `json:"address"`
	City           string      `json:"city"`
	PaymentMethod  string      `json:"payment_method"`
	Status         string      `json:"status"`
	DeliveryCharge float64     `json:"delivery_charge"`
	Subtotal       float64     `json:"subtotal"`
	TotalPrice     float64     `json:"total_price"`
	OrderItems     []OrderItem `json:"order_items"`
}

// Order is the server-side purchase record the API returns. Only id, totals
// and status are read back by the storefront.
type Order struct {
	ID             int         `json:"id"`
	Name           string      `json:"name,omitempty"`
	Status         string      `json:"status,omitempty"`
	DeliveryCharge Taka        `json:"delivery_charge,omitempty"`
	Subtotal       Taka        `json:"subtotal,omitempty"`
	TotalPrice     Taka        `json:"total_price"`
	OrderItems     []OrderItem `json:"order_items,omitempty"`
	Created        string      `json:"created,omitempty"`
}

type PaymentRequest struct {
	OrderID       int     `json:"order_id"`
	TransactionID string  `json:"transaction_id"`
	PaymentMethod string  `json:"payment_method"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
}

type Payment struct {
	ID            int    `json:"id"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// OrderConfirmation is the snapshot written to the persisted store once an
// order is confirmed, so the receipt stays printable after the cart is gone.
type OrderConfirmation struct {
	ID             int        `json:"id"`
	OrderNumber    string     `json:"order_number"`
	Total          float64    `json:"total"`
	DeliveryCharge float64    `json:"delivery_charge"`
	Customer       string     `json:"customer"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	PaymentMethod  string     `json:"payment_method"`
	TransactionID  string     `json:"transaction_id,omitempty"`
	Date           string     `json:"date"`
	Items          []CartLine `json:"items"`
}

// PaymentInstructions tell the customer how to send the manual mobile
// transfer for an order awaiting payment.
type PaymentInstructions struct {
	OrderID        int     `json:"order_id"`
	PaymentMethod  string  `json:"payment_method"`
	MerchantNumber string  `json:"merchant_number"`
	Amount         float64 `json:"amount"`
	Reference      string  `json:"reference"`
}
