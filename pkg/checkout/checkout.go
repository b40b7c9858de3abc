// Package checkout drives a session from cart review to a confirmed order.
// The screens the old boolean flags toggled are one explicit state machine:
//
//	Browsing -> CustomerForm -> Confirmed            (cash on delivery)
//	Browsing -> CustomerForm -> AwaitingPayment -> Confirmed
//
// Cancel returns to Browsing from CustomerForm or AwaitingPayment.
// Confirmed is terminal.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ghorerbazar.top/organic/storefront/pkg/cart"
	"ghorerbazar.top/organic/storefront/pkg/models"
)

type State string

const (
	StateBrowsing        State = "browsing"
	StateCustomerForm    State = "customer_form"
	StateAwaitingPayment State = "awaiting_payment"
	StateConfirmed       State = "confirmed"
)

var (
	ErrEmptyCart            = errors.New("কার্ট খালি! কিছু পণ্য যোগ করুন।")
	ErrMissingTransactionID = errors.New("ট্রাঞ্জাকশন ID দিন")
	ErrInvalidTransition    = errors.New("invalid checkout transition")
)

// ValidationFailedError aggregates every form problem so the customer sees
// the full list at once.
type ValidationFailedError struct {
	Messages []string
}

func (e *ValidationFailedError) Error() string {
	return "ত্রুটি: " + strings.Join(e.Messages, "; ")
}

// OrderAPI is the slice of the catalog client the workflow submits through.
type OrderAPI interface {
	CreateOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int, status string) error
	CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.Payment, error)
}

// ConfirmationStore persists the receipt snapshot once an order confirms.
type ConfirmationStore interface {
	SaveLastOrder(ctx context.Context, sessionID string, order *models.OrderConfirmation) error
}

// Session is one customer's checkout in progress. Methods take the cart
// aggregate by reference; a remote failure always leaves the state where
// it was so the customer can retry.
type Session struct {
	sessionID string
	state     State
	api       OrderAPI
	store     ConfirmationStore

	customer     models.CustomerInfo
	order        *models.Order
	confirmation *models.OrderConfirmation
}

func NewSession(sessionID string, api OrderAPI, store ConfirmationStore) *Session {
	return &Session{
		sessionID: sessionID,
		state:     StateBrowsing,
		api:       api,
		store:     store,
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Customer() models.CustomerInfo {
	return s.customer
}

func (s *Session) Order() *models.Order {
	return s.order
}

func (s *Session) Confirmation() *models.OrderConfirmation {
	return s.confirmation
}

// Begin moves to the customer form. An empty cart blocks checkout entirely.
func (s *Session) Begin(c *cart.Cart) error {
	if s.state != StateBrowsing {
		return fmt.Errorf("%w: cannot begin checkout from %s", ErrInvalidTransition, s.state)
	}
	if c.IsEmpty() {
		return ErrEmptyCart
	}
	s.state = StateCustomerForm
	return nil
}

// SubmitCustomerInfo validates the form, creates the order on the remote
// API, and either confirms (cash on delivery) or moves to AwaitingPayment.
func (s *Session) SubmitCustomerInfo(ctx context.Context, c *cart.Cart, info models.CustomerInfo) error {
	if s.state != StateCustomerForm {
		return fmt.Errorf("%w: cannot submit customer info from %s", ErrInvalidTransition, s.state)
	}
	if c.IsEmpty() {
		return ErrEmptyCart
	}
	if messages := ValidateCustomerInfo(info); len(messages) > 0 {
		return &ValidationFailedError{Messages: messages}
	}

	email := info.Email
	if email == "" {
		email = "no-email@example.com"
	}

	subtotal := c.Subtotal()
	charge := c.DeliveryCharge(info.City)
	items := make([]models.OrderItem, 0, len(c.Lines()))
	for _, line := range c.Lines() {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	order, err := s.api.CreateOrder(ctx, &models.OrderRequest{
		Name:           info.Name,
		Email:          email,
		Phone:          info.Phone,
		Address:        fmt.Sprintf("%s, %s", info.Address, info.City),
		City:           info.City,
		PaymentMethod:  info.PaymentMethod,
		Status:         "pending",
		DeliveryCharge: charge,
		Subtotal:       subtotal,
		TotalPrice:     subtotal + charge,
		OrderItems:     items,
	})
	if err != nil {
		return err
	}

	s.customer = info
	s.order = order

	if info.PaymentMethod == models.PaymentCOD {
		s.confirm(ctx, c, "")
		return nil
	}
	s.state = StateAwaitingPayment
	return nil
}

// PaymentInstructions describe the manual mobile transfer for the pending
// order: the merchant number, the exact amount, and the reference string.
func (s *Session) PaymentInstructions() (*models.PaymentInstructions, error) {
	if s.state != StateAwaitingPayment || s.order == nil {
		return nil, fmt.Errorf("%w: no order awaiting payment", ErrInvalidTransition)
	}
	return &models.PaymentInstructions{
		OrderID:        s.order.ID,
		PaymentMethod:  s.customer.PaymentMethod,
		MerchantNumber: models.MerchantNumber,
		Amount:         float64(s.order.TotalPrice),
		Reference:      fmt.Sprintf("ORD%d", s.order.ID),
	}, nil
}

// ConfirmPayment records the transaction id the customer typed in, marks
// the order processing, and confirms. The id is never verified here; that
// is the API's responsibility.
func (s *Session) ConfirmPayment(ctx context.Context, c *cart.Cart, transactionID, method string) error {
	if s.state != StateAwaitingPayment || s.order == nil {
		return fmt.Errorf("%w: cannot confirm payment from %s", ErrInvalidTransition, s.state)
	}
	transactionID = strings.ToUpper(strings.TrimSpace(transactionID))
	if transactionID == "" {
		return ErrMissingTransactionID
	}
	if method == "" {
		method = s.customer.PaymentMethod
	}

	_, err := s.api.CreatePayment(ctx, &models.PaymentRequest{
		OrderID:       s.order.ID,
		TransactionID: transactionID,
		PaymentMethod: method,
		Amount:        float64(s.order.TotalPrice),
		Status:        "completed",
	})
	if err != nil {
		return err
	}

	if err := s.api.UpdateOrderStatus(ctx, s.order.ID, "processing"); err != nil {
		// The payment record exists but the order is still pending; the
		// customer can retry, the API reconciles the duplicate.
		return err
	}

	s.confirm(ctx, c, transactionID)
	return nil
}

// Cancel discards the in-progress form and order reference and returns to
// Browsing. A confirmed order cannot be cancelled here.
func (s *Session) Cancel() error {
	if s.state == StateConfirmed {
		return fmt.Errorf("%w: order already confirmed", ErrInvalidTransition)
	}
	s.state = StateBrowsing
	s.customer = models.CustomerInfo{}
	s.order = nil
	return nil
}

func (s *Session) confirm(ctx context.Context, c *cart.Cart, transactionID string) {
	snapshot := &models.OrderConfirmation{
		ID:             s.order.ID,
		OrderNumber:    fmt.Sprintf("ORD-%d", s.order.ID),
		Total:          float64(s.order.TotalPrice),
		DeliveryCharge: float64(s.order.DeliveryCharge),
		Customer:       s.customer.Name,
		Phone:          s.customer.Phone,
		Address:        fmt.Sprintf("%s, %s", s.customer.Address, s.customer.City),
		PaymentMethod:  s.customer.PaymentMethod,
		TransactionID:  transactionID,
		Date:           time.Now().Format("2006-01-02 15:04:05"),
		Items:          c.Lines(),
	}

	if err := s.store.SaveLastOrder(ctx, s.sessionID, snapshot); err != nil {
		log.Printf("Warning: failed to save order confirmation for session %s: %v", s.sessionID, err)
	}

	c.Clear(ctx)
	s.confirmation = snapshot
	s.state = StateConfirmed
}
