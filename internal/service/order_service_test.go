package service

import (
	"context"
	"testing"
	"time"

	"anandam/internal/lifecycle"
	"anandam/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testDefaults() model.PaymentSettings {
	return model.PaymentSettings{
		CODEnabled:            true,
		CODFee:                150,
		PrepaidDiscount:       5,
		ShippingCharge:        99,
		FreeShippingThreshold: 5000,
	}
}

type orderServiceMocks struct {
	orderRepo    *MockOrderRepository
	productRepo  *MockProductRepository
	couponRepo   *MockCouponRepository
	settingsRepo *MockSettingsRepository
	audit        *MockAuditService
}

func newOrderService(t *testing.T) (OrderService, orderServiceMocks) {
	t.Helper()
	m := orderServiceMocks{
		orderRepo:    new(MockOrderRepository),
		productRepo:  new(MockProductRepository),
		couponRepo:   new(MockCouponRepository),
		settingsRepo: new(MockSettingsRepository),
		audit:        new(MockAuditService),
	}
	svc := NewOrderService(m.orderRepo, m.productRepo, m.couponRepo, m.settingsRepo, m.audit, testDefaults(), zerolog.Nop())
	return svc, m
}

func checkoutRequest() *model.CheckoutRequest {
	return &model.CheckoutRequest{
		UserID:        "u1",
		UserName:      "Ananya",
		PaymentMethod: model.PaymentPrePaid,
		Items: []model.CartItem{
			{ProductID: "1", Quantity: 1, SelectedSize: "M"},
		},
		ShippingAddress: model.Address{Street: "12 MG Road", City: "Pune", State: "MH", Zip: "411001", Country: "India"},
	}
}

func TestOrderService_Checkout_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)
	mockTx := new(MockTx)

	products := []model.Product{{ID: "1", Name: "Royal Silk Zardosi Lehanga", Price: 10000, Stock: 5}}

	m.settingsRepo.On("Get", ctx).Return(nil, nil)
	m.productRepo.On("GetByIDs", ctx, []string{"1"}).Return(products, nil)
	m.orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	m.productRepo.On("DecrementStock", ctx, mockTx, "1", 1).Return(nil)
	m.orderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	order, err := svc.Checkout(ctx, checkoutRequest())

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, 10000.0, order.Subtotal)
	// Above the free shipping threshold with 5% prepaid off.
	assert.Equal(t, 0.0, order.ShippingCost)
	assert.Equal(t, 500.0, order.Discount)
	assert.Equal(t, 9500.0, order.Total)
	assert.Equal(t, model.PaymentPaid, order.PaymentStatus)
	require.Len(t, order.Timeline, 1)
	assert.Equal(t, "Order placed", order.Timeline[0].Note)
	// The line price comes from the catalogue, not the client.
	assert.Equal(t, 10000.0, order.Items[0].UnitPrice)

	m.orderRepo.AssertExpectations(t)
	m.productRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_Checkout_CODPricing(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)
	mockTx := new(MockTx)

	products := []model.Product{{ID: "2", Name: "Linen Dress", Price: 3000, Stock: 25}}

	req := checkoutRequest()
	req.PaymentMethod = model.PaymentCOD
	req.Items = []model.CartItem{{ProductID: "2", Quantity: 1}}

	m.settingsRepo.On("Get", ctx).Return(nil, nil)
	m.productRepo.On("GetByIDs", ctx, []string{"2"}).Return(products, nil)
	m.orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	m.productRepo.On("DecrementStock", ctx, mockTx, "2", 1).Return(nil)
	m.orderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	order, err := svc.Checkout(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, 99.0, order.ShippingCost)
	assert.Equal(t, 150.0, order.CODFee)
	assert.Equal(t, 3249.0, order.Total)
	assert.Equal(t, model.PaymentPending, order.PaymentStatus)
}

func TestOrderService_Checkout_CODDisabled(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)

	stored := testDefaults()
	stored.CODEnabled = false
	m.settingsRepo.On("Get", ctx).Return(&stored, nil)

	req := checkoutRequest()
	req.PaymentMethod = model.PaymentCOD

	_, err := svc.Checkout(ctx, req)

	assert.ErrorIs(t, err, model.ErrCODDisabled)
	m.orderRepo.AssertNotCalled(t, "BeginTx")
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrderService(t)

	req := checkoutRequest()
	req.Items = nil

	_, err := svc.Checkout(ctx, req)

	assert.ErrorIs(t, err, model.ErrEmptyCart)
}

func TestOrderService_Checkout_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrderService(t)

	req := checkoutRequest()
	req.Items[0].Quantity = 0

	_, err := svc.Checkout(ctx, req)

	assert.ErrorIs(t, err, model.ErrInvalidQuantity)
}

func TestOrderService_Checkout_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)

	m.settingsRepo.On("Get", ctx).Return(nil, nil)
	m.productRepo.On("GetByIDs", ctx, []string{"1"}).Return([]model.Product{}, nil)

	_, err := svc.Checkout(ctx, checkoutRequest())

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestOrderService_Checkout_InsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)
	mockTx := new(MockTx)

	products := []model.Product{{ID: "1", Name: "Lehanga", Price: 10000, Stock: 0}}

	m.settingsRepo.On("Get", ctx).Return(nil, nil)
	m.productRepo.On("GetByIDs", ctx, []string{"1"}).Return(products, nil)
	m.orderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	m.productRepo.On("DecrementStock", ctx, mockTx, "1", 1).Return(model.ErrInsufficientStock)
	mockTx.On("Rollback", ctx).Return(nil)

	_, err := svc.Checkout(ctx, checkoutRequest())

	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.True(t, mockTx.rolledBack)
	m.orderRepo.AssertNotCalled(t, "Create")
}

func TestOrderService_Checkout_ExpiredCouponRejected(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)

	yesterday := time.Now().Add(-24 * time.Hour)
	coupon := &model.Coupon{Code: "OLD10", DiscountType: model.DiscountPercentage, Value: 10, IsActive: true, ExpiryDate: &yesterday}
	products := []model.Product{{ID: "1", Name: "Lehanga", Price: 10000, Stock: 5}}

	code := "OLD10"
	req := checkoutRequest()
	req.CouponCode = &code

	m.settingsRepo.On("Get", ctx).Return(nil, nil)
	m.productRepo.On("GetByIDs", ctx, []string{"1"}).Return(products, nil)
	m.couponRepo.On("GetByCode", ctx, "OLD10").Return(coupon, nil)

	_, err := svc.Checkout(ctx, req)

	assert.ErrorIs(t, err, model.ErrCouponExpired)
	m.orderRepo.AssertNotCalled(t, "BeginTx")
}

func deliveredOrder(id uuid.UUID) *model.Order {
	return &model.Order{
		ID:            id,
		UserID:        "u1",
		Status:        model.StatusShipped,
		PaymentMethod: model.PaymentCOD,
		PaymentStatus: model.PaymentPending,
		Items:         []model.CartItem{{ProductID: "1", Quantity: 2}},
		Timeline: []model.TimelineEntry{
			{Status: model.StatusPending, Timestamp: time.Now().Add(-48 * time.Hour)},
		},
	}
}

func TestOrderService_Transition_DeliverySettlesCOD(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)
	id := uuid.New()

	m.orderRepo.On("GetByID", ctx, id).Return(deliveredOrder(id), nil)
	m.orderRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*model.Order"), model.StatusShipped).Return(true, nil)
	m.audit.On("Record", ctx, "order.status_change", "a1", "Admin", mock.Anything).Return(nil)

	order, err := svc.Transition(ctx, id, model.TransitionRequest{Status: "Delivered"}, lifecycle.ActorAdmin, "a1", "Admin")

	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, order.Status)
	assert.Equal(t, model.PaymentPaid, order.PaymentStatus)
	m.orderRepo.AssertExpectations(t)
	m.audit.AssertExpectations(t)
}

func TestOrderService_Transition_UnknownStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrderService(t)

	_, err := svc.Transition(ctx, uuid.New(), model.TransitionRequest{Status: "Teleported"}, lifecycle.ActorAdmin, "a1", "Admin")

	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}

func TestOrderService_Transition_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)
	id := uuid.New()

	m.orderRepo.On("GetByID", ctx, id).Return(nil, nil)

	_, err := svc.Transition(ctx, id, model.TransitionRequest{Status: "Confirmed"}, lifecycle.ActorAdmin, "a1", "Admin")

	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_Transition_CustomerCannotTouchOthersOrder(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)
	id := uuid.New()

	order := deliveredOrder(id)
	order.Status = model.StatusPending
	m.orderRepo.On("GetByID", ctx, id).Return(order, nil)

	_, err := svc.Transition(ctx, id, model.TransitionRequest{Status: "Cancelled"}, lifecycle.ActorCustomer, "someone-else", "Mallory")

	assert.ErrorIs(t, err, model.ErrActorNotAllowed)
	m.orderRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestOrderService_Transition_ConcurrentWriterWins(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)
	id := uuid.New()

	order := deliveredOrder(id)
	order.Status = model.StatusPending
	m.orderRepo.On("GetByID", ctx, id).Return(order, nil)
	m.orderRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*model.Order"), model.StatusPending).Return(false, nil)

	_, err := svc.Transition(ctx, id, model.TransitionRequest{Status: "Confirmed"}, lifecycle.ActorAdmin, "a1", "Admin")

	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestOrderService_Transition_RepeatedTargetIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)
	id := uuid.New()

	order := deliveredOrder(id)
	order.Status = model.StatusConfirmed
	m.orderRepo.On("GetByID", ctx, id).Return(order, nil)

	result, err := svc.Transition(ctx, id, model.TransitionRequest{Status: "Confirmed"}, lifecycle.ActorAdmin, "a1", "Admin")

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, result.Status)
	m.orderRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestOrderService_Transition_CancellationRestocks(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)
	id := uuid.New()

	order := deliveredOrder(id)
	order.Status = model.StatusConfirmed
	m.orderRepo.On("GetByID", ctx, id).Return(order, nil)
	m.orderRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*model.Order"), model.StatusConfirmed).Return(true, nil)
	m.productRepo.On("AdjustStock", ctx, "1", 2).Return(nil)
	m.audit.On("Record", ctx, "order.status_change", "a1", "Admin", mock.Anything).Return(nil)

	result, err := svc.Transition(ctx, id, model.TransitionRequest{Status: "Cancelled", Reason: "Out of fabric"}, lifecycle.ActorAdmin, "a1", "Admin")

	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, result.Status)
	assert.Equal(t, "Out of fabric", result.CancellationReason)
	m.productRepo.AssertExpectations(t)
}

func TestOrderService_Transition_RefundFlaggedForPaidCancellation(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)
	id := uuid.New()

	order := deliveredOrder(id)
	order.Status = model.StatusConfirmed
	order.PaymentMethod = model.PaymentPrePaid
	order.PaymentStatus = model.PaymentPaid
	m.orderRepo.On("GetByID", ctx, id).Return(order, nil)
	m.orderRepo.On("UpdateStatus", ctx, mock.AnythingOfType("*model.Order"), model.StatusConfirmed).Return(true, nil)
	m.productRepo.On("AdjustStock", ctx, "1", 2).Return(nil)
	m.audit.On("Record", ctx, "order.status_change", "a1", "Admin", mock.MatchedBy(func(meta map[string]any) bool {
		flagged, ok := meta["refundDue"].(bool)
		return ok && flagged
	})).Return(nil)

	_, err := svc.Transition(ctx, id, model.TransitionRequest{Status: "Cancelled"}, lifecycle.ActorAdmin, "a1", "Admin")

	require.NoError(t, err)
	m.audit.AssertExpectations(t)
}

func TestOrderService_Quote_UsesStoredSettings(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)

	stored := testDefaults()
	stored.ShippingCharge = 49
	m.settingsRepo.On("Get", ctx).Return(&stored, nil)

	quote, err := svc.Quote(ctx, 3000, model.PaymentPrePaid, nil)

	require.NoError(t, err)
	assert.Equal(t, 49.0, quote.ShippingCost)
}

func TestOrderService_Quote_UnknownCoupon(t *testing.T) {
	ctx := context.Background()
	svc, m := newOrderService(t)

	m.settingsRepo.On("Get", ctx).Return(nil, nil)
	code := "NOPE"
	m.couponRepo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

	_, err := svc.Quote(ctx, 3000, model.PaymentPrePaid, &code)

	assert.ErrorIs(t, err, model.ErrCouponNotFound)
}
