package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
)

func lehengaItem() *entity.Item {
	return &entity.Item{
		ID:        "7",
		Title:     "Ivory Bridal Lehenga",
		Brand:     "Sabyasachi",
		Type:      entity.ModeBoth,
		SalePrice: entity.Float(25000),
		RentPrice: entity.Float(1250),
		Deposit:   entity.Float(6250),
		SellerID:  "u1",
		Status:    entity.ItemStatusLive,
	}
}

var homeAddress = entity.DeliveryAddress{Street: "12 Linking Road", City: "Mumbai", Zip: "400050"}

func TestOpenSnapshotsAmount(t *testing.T) {
	flow := NewCheckoutFlow(nil, nil, nil)
	item := lehengaItem()

	intent, err := flow.Open(item, entity.KindBuy)
	require.NoError(t, err)
	assert.Equal(t, 25000.0, intent.Amount)
	assert.Equal(t, entity.PaymentCard, intent.PaymentMethod)
	assert.Equal(t, entity.IntentOpen, intent.State)
	assert.Equal(t, entity.DeliveryAddress{}, intent.Delivery)
	assert.True(t, flow.Visible())

	// a later listing edit must not reach the open intent
	item.SalePrice = entity.Float(30000)
	item.Title = "Renamed"
	assert.Equal(t, 25000.0, flow.Intent().Amount)
	assert.Equal(t, "Ivory Bridal Lehenga", flow.Intent().Item.Title)

	require.NoError(t, flow.SetDelivery(homeAddress))
	confirmation, err := flow.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25000.0, confirmation.Amount)
}

func TestOpenRentUsesRentPriceAndDeposit(t *testing.T) {
	flow := NewCheckoutFlow(nil, nil, nil)

	intent, err := flow.Open(lehengaItem(), entity.KindRent)
	require.NoError(t, err)
	assert.Equal(t, 1250.0, intent.Amount)
	assert.Equal(t, 6250.0, intent.Deposit)
}

func TestOpenRefusesKindNotOffered(t *testing.T) {
	flow := NewCheckoutFlow(nil, nil, nil)
	item := lehengaItem()
	item.Type = entity.ModeRent

	_, err := flow.Open(item, entity.KindBuy)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeValidation))
	assert.False(t, flow.Visible())

	item.Type = entity.ModeSale
	item.SalePrice = nil
	_, err = flow.Open(item, entity.KindBuy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestConfirmValidatesDeliveryAndPayment(t *testing.T) {
	flow := NewCheckoutFlow(nil, nil, nil)
	_, err := flow.Open(lehengaItem(), entity.KindBuy)
	require.NoError(t, err)

	require.NoError(t, flow.SetDelivery(entity.DeliveryAddress{Street: "12 Linking Road"}))
	require.NoError(t, flow.SetPaymentMethod("cheque"))

	_, err = flow.Confirm(context.Background())
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errors.CodeValidation, appErr.Code)

	var fields []string
	for _, p := range appErr.Problems {
		fields = append(fields, p.Field)
	}
	assert.ElementsMatch(t, []string{"delivery.city", "delivery.zip", "payment_method"}, fields)
	assert.True(t, flow.Visible())
	assert.Equal(t, entity.IntentOpen, flow.Intent().State)
}

func TestConfirmIsTerminal(t *testing.T) {
	transport := &fakeTransport{}
	chat := NewChatUseCase(transport)
	flow := NewCheckoutFlow(nil, nil, chat)

	_, err := flow.Open(lehengaItem(), entity.KindRent)
	require.NoError(t, err)
	thread := chat.Seed(context.Background(), entity.ChatSeedContext{ItemID: "7", Title: "Ivory Bridal Lehenga", Price: 1250, SellerID: "u1", TransactionType: entity.KindRent})
	flow.AttachThread(thread)
	require.NoError(t, flow.SetDelivery(homeAddress))
	require.NoError(t, flow.SetPaymentMethod(entity.PaymentUPI))

	confirmation, err := flow.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentUPI, confirmation.PaymentMethod)
	assert.Equal(t, homeAddress, confirmation.Delivery)
	assert.Nil(t, confirmation.Order)
	assert.False(t, flow.Visible())

	intent := flow.Intent()
	assert.Equal(t, entity.IntentSubmitted, intent.State)
	assert.NotNil(t, intent.SubmittedAt)

	require.Len(t, thread.Messages, 2)
	assert.Equal(t, "Order Confirmed! I've placed an order for Ivory Bridal Lehenga.", thread.Messages[1].Text)

	err = flow.SetDelivery(entity.DeliveryAddress{Street: "elsewhere", City: "Pune", Zip: "411001"})
	assert.True(t, errors.Is(err, errors.CodeConflict))
	_, err = flow.Confirm(context.Background())
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestConfirmRecordsOrderThroughSeam(t *testing.T) {
	api := newFakeAPI()
	recorder := &fakeRecorder{}
	flow := NewCheckoutFlow(loggedInSessions(api), recorder, nil)

	_, err := flow.Open(lehengaItem(), entity.KindBuy)
	require.NoError(t, err)
	require.NoError(t, flow.SetDelivery(homeAddress))

	confirmation, err := flow.Confirm(context.Background())
	require.NoError(t, err)
	require.NotNil(t, confirmation.Order)
	assert.Equal(t, entity.OrderShipped, confirmation.Order.Status)
	assert.Equal(t, []string{"seller-token"}, recorder.tokens)
	assert.Equal(t, entity.IntentOpen, recorder.intents[0].State)
}

func TestConfirmRecorderFailureKeepsIntentOpen(t *testing.T) {
	api := newFakeAPI()
	recorder := &fakeRecorder{err: networkErr()}
	flow := NewCheckoutFlow(loggedInSessions(api), recorder, nil)

	_, err := flow.Open(lehengaItem(), entity.KindBuy)
	require.NoError(t, err)
	require.NoError(t, flow.SetDelivery(homeAddress))

	_, err = flow.Confirm(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNetwork))
	assert.True(t, flow.Visible())
	assert.Equal(t, entity.IntentOpen, flow.Intent().State)
}

func TestCancelDiscardsIntent(t *testing.T) {
	flow := NewCheckoutFlow(nil, nil, nil)
	_, err := flow.Open(lehengaItem(), entity.KindBuy)
	require.NoError(t, err)

	flow.Cancel()
	assert.False(t, flow.Visible())
	assert.Nil(t, flow.Intent())

	err = flow.SetPaymentMethod(entity.PaymentCOD)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
