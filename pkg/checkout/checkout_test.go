package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghorerbazar.top/organic/storefront/pkg/cart"
	"ghorerbazar.top/organic/storefront/pkg/models"
)

// fakeAPI records order and payment submissions and can be told to fail.
type fakeAPI struct {
	nextOrderID   int
	orders        []*models.OrderRequest
	payments      []*models.PaymentRequest
	statusUpdates map[int]string

	failCreateOrder   error
	failCreatePayment error
	failUpdateStatus  error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextOrderID: 100, statusUpdates: map[int]string{}}
}

func (f *fakeAPI) CreateOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	if f.failCreateOrder != nil {
		return nil, f.failCreateOrder
	}
	f.nextOrderID++
	f.orders = append(f.orders, req)
	return &models.Order{
		ID:             f.nextOrderID,
		Status:         req.Status,
		DeliveryCharge: models.Taka(req.DeliveryCharge),
		Subtotal:       models.Taka(req.Subtotal),
		TotalPrice:     models.Taka(req.TotalPrice),
	}, nil
}

func (f *fakeAPI) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	if f.failUpdateStatus != nil {
		return f.failUpdateStatus
	}
	f.statusUpdates[orderID] = status
	return nil
}

func (f *fakeAPI) CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.Payment, error) {
	if f.failCreatePayment != nil {
		return nil, f.failCreatePayment
	}
	f.payments = append(f.payments, req)
	return &models.Payment{ID: 1, TransactionID: req.TransactionID, Status: req.Status}, nil
}

func filledCart(t *testing.T, store cart.Store) *cart.Cart {
	t.Helper()
	ctx := context.Background()
	c := cart.Load(ctx, store, "s1")
	c.Add(ctx, &models.Product{ID: 1, Name: "মধু", Price: 300}, 1)
	c.Add(ctx, &models.Product{ID: 2, Name: "ঘি", Price: 99.5, Stock: 10}, 2)
	return c
}

func goodInfo() models.CustomerInfo {
	return models.CustomerInfo{
		Name:          "রহিম উদ্দিন",
		Phone:         "01712345678",
		Address:       "বাড়ি ১২, রোড ৫",
		City:          models.DhakaCity,
		PaymentMethod: models.PaymentCOD,
	}
}

func TestBeginBlockedOnEmptyCart(t *testing.T) {
	store := cart.NewMemoryStore()
	session := NewSession("s1", newFakeAPI(), store)
	empty := cart.Load(context.Background(), store, "s1")

	err := session.Begin(empty)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateBrowsing, session.State())
}

func TestValidationAggregatesAllMessages(t *testing.T) {
	store := cart.NewMemoryStore()
	session := NewSession("s1", newFakeAPI(), store)
	c := filledCart(t, store)
	require.NoError(t, session.Begin(c))

	err := session.SubmitCustomerInfo(context.Background(), c, models.CustomerInfo{
		Phone:         "123",
		PaymentMethod: models.PaymentCOD,
	})

	var validation *ValidationFailedError
	require.ErrorAs(t, err, &validation)
	assert.Len(t, validation.Messages, 3, "name, phone and address problems all reported at once")
	assert.Equal(t, StateCustomerForm, session.State(), "validation failure does not move the workflow")
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"01712345678", true},
		{"+8801712345678", true},
		{"8801912345678", true},
		{"01312345678", true},
		{"0171234567", false},  // 10 digits
		{"02712345678", false}, // second digit 2
		{"01012345678", false},
		{"017123456789", false}, // 12 digits
		{"", false},
		{"phone", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidPhone(tt.phone), "phone %q", tt.phone)
	}
}

func TestCashOnDeliveryConfirmsImmediately(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	api := newFakeAPI()
	session := NewSession("s1", api, store)
	c := filledCart(t, store)

	require.NoError(t, session.Begin(c))
	require.NoError(t, session.SubmitCustomerInfo(ctx, c, goodInfo()))

	assert.Equal(t, StateConfirmed, session.State())
	assert.True(t, c.IsEmpty(), "cart cleared after confirmation")

	lines, err := store.LoadCart(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, lines, "persisted cart snapshot removed")

	confirmation, err := store.LoadLastOrder(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, confirmation)
	assert.Equal(t, 499.0, confirmation.Total-confirmation.DeliveryCharge)
	assert.Equal(t, 60.0, confirmation.DeliveryCharge)
	assert.Equal(t, "ORD-101", confirmation.OrderNumber)
	assert.Empty(t, confirmation.TransactionID)
	assert.Len(t, confirmation.Items, 2)

	// the submitted order carried the computed totals
	require.Len(t, api.orders, 1)
	order := api.orders[0]
	assert.Equal(t, 499.0, order.Subtotal)
	assert.Equal(t, 60.0, order.DeliveryCharge)
	assert.Equal(t, 559.0, order.TotalPrice)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "বাড়ি ১২, রোড ৫, ঢাকা", order.Address)
	assert.Equal(t, "no-email@example.com", order.Email, "blank email gets the default")
}

func TestOnlinePaymentFlow(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	api := newFakeAPI()
	session := NewSession("s1", api, store)
	c := filledCart(t, store)

	info := goodInfo()
	info.PaymentMethod = models.PaymentBkash

	require.NoError(t, session.Begin(c))
	require.NoError(t, session.SubmitCustomerInfo(ctx, c, info))
	assert.Equal(t, StateAwaitingPayment, session.State())
	assert.False(t, c.IsEmpty(), "cart stays until payment confirms")

	instructions, err := session.PaymentInstructions()
	require.NoError(t, err)
	assert.Equal(t, models.MerchantNumber, instructions.MerchantNumber)
	assert.Equal(t, 559.0, instructions.Amount)
	assert.Equal(t, "ORD101", instructions.Reference)

	require.NoError(t, session.ConfirmPayment(ctx, c, " txn9h2k7f ", ""))
	assert.Equal(t, StateConfirmed, session.State())
	assert.True(t, c.IsEmpty())

	require.Len(t, api.payments, 1)
	payment := api.payments[0]
	assert.Equal(t, "TXN9H2K7F", payment.TransactionID, "transaction id trimmed and uppercased")
	assert.Equal(t, models.PaymentBkash, payment.PaymentMethod)
	assert.Equal(t, 559.0, payment.Amount)
	assert.Equal(t, "completed", payment.Status)

	assert.Equal(t, "processing", api.statusUpdates[101])

	confirmation := session.Confirmation()
	require.NotNil(t, confirmation)
	assert.Equal(t, "TXN9H2K7F", confirmation.TransactionID)
}

func TestConfirmPaymentRequiresTransactionID(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	session := NewSession("s1", newFakeAPI(), store)
	c := filledCart(t, store)

	info := goodInfo()
	info.PaymentMethod = models.PaymentNagad
	require.NoError(t, session.Begin(c))
	require.NoError(t, session.SubmitCustomerInfo(ctx, c, info))

	err := session.ConfirmPayment(ctx, c, "   ", "")
	assert.ErrorIs(t, err, ErrMissingTransactionID)
	assert.Equal(t, StateAwaitingPayment, session.State())
}

func TestRemoteFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	api := newFakeAPI()
	api.failCreateOrder = errors.New("catalog API unreachable")
	session := NewSession("s1", api, store)
	c := filledCart(t, store)

	require.NoError(t, session.Begin(c))
	err := session.SubmitCustomerInfo(ctx, c, goodInfo())
	require.Error(t, err)
	assert.Equal(t, StateCustomerForm, session.State())
	assert.False(t, c.IsEmpty(), "cart untouched on failure")

	// retry after the API recovers
	api.failCreateOrder = nil
	require.NoError(t, session.SubmitCustomerInfo(ctx, c, goodInfo()))
	assert.Equal(t, StateConfirmed, session.State())
}

func TestPaymentFailureKeepsOrderPending(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	api := newFakeAPI()
	session := NewSession("s1", api, store)
	c := filledCart(t, store)

	info := goodInfo()
	info.PaymentMethod = models.PaymentRocket
	require.NoError(t, session.Begin(c))
	require.NoError(t, session.SubmitCustomerInfo(ctx, c, info))

	api.failCreatePayment = errors.New("catalog API timed out")
	err := session.ConfirmPayment(ctx, c, "TXN123", "")
	require.Error(t, err)
	assert.Equal(t, StateAwaitingPayment, session.State())
	assert.False(t, c.IsEmpty())

	api.failCreatePayment = nil
	require.NoError(t, session.ConfirmPayment(ctx, c, "TXN123", ""))
	assert.Equal(t, StateConfirmed, session.State())
}

func TestCancelReturnsToBrowsing(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	session := NewSession("s1", newFakeAPI(), store)
	c := filledCart(t, store)

	require.NoError(t, session.Begin(c))
	require.NoError(t, session.Cancel())
	assert.Equal(t, StateBrowsing, session.State())
	assert.False(t, c.IsEmpty(), "cancel keeps the cart")

	// cancel from awaiting payment discards the order reference
	info := goodInfo()
	info.PaymentMethod = models.PaymentBkash
	require.NoError(t, session.Begin(c))
	require.NoError(t, session.SubmitCustomerInfo(ctx, c, info))
	require.NoError(t, session.Cancel())
	assert.Equal(t, StateBrowsing, session.State())
	assert.Nil(t, session.Order())
	assert.Equal(t, models.CustomerInfo{}, session.Customer())
}

func TestConfirmedIsTerminal(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	session := NewSession("s1", newFakeAPI(), store)
	c := filledCart(t, store)

	require.NoError(t, session.Begin(c))
	require.NoError(t, session.SubmitCustomerInfo(ctx, c, goodInfo()))
	require.Equal(t, StateConfirmed, session.State())

	assert.ErrorIs(t, session.Begin(c), ErrInvalidTransition)
	assert.ErrorIs(t, session.Cancel(), ErrInvalidTransition)
	assert.ErrorIs(t, session.SubmitCustomerInfo(ctx, c, goodInfo()), ErrInvalidTransition)
	assert.ErrorIs(t, session.ConfirmPayment(ctx, c, "TXN1", ""), ErrInvalidTransition)
}

func TestManagerSessions(t *testing.T) {
	manager := NewManager(newFakeAPI(), cart.NewMemoryStore())

	first := manager.Session("a")
	assert.Same(t, first, manager.Session("a"))
	assert.NotSame(t, first, manager.Session("b"))

	manager.Drop("a")
	assert.NotSame(t, first, manager.Session("a"))
}
