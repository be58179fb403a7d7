package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
)

// Confirmation is the success view rendered from a submitted intent.
type Confirmation struct {
	Title         string
	Kind          entity.TransactionKind
	Amount        float64
	Deposit       float64
	PaymentMethod entity.PaymentMethod
	Delivery      entity.DeliveryAddress
	// Order is set only when a recorder is wired.
	Order *entity.Order
}

// CheckoutFlow drives the buyer's checkout dialog for one item at a time.
type CheckoutFlow struct {
	sessions *SessionManager
	recorder OrderRecorder
	chat     *ChatUseCase
	now      func() time.Time

	mu      sync.Mutex
	intent  *entity.OrderIntent
	thread  *entity.ChatThread
	visible bool
}

// NewCheckoutFlow wires the flow. recorder and chat may be nil: confirmation then stays
// on the client.
func NewCheckoutFlow(sessions *SessionManager, recorder OrderRecorder, chat *ChatUseCase) *CheckoutFlow {
	return &CheckoutFlow{
		sessions: sessions,
		recorder: recorder,
		chat:     chat,
		now:      time.Now,
	}
}

// Open snapshots the item's price for kind and shows the dialog. Later edits to the listing
// do not reach the intent.
func (f *CheckoutFlow) Open(item *entity.Item, kind entity.TransactionKind) (*entity.OrderIntent, error) {
	if item == nil {
		return nil, errors.BadRequest("Item is required", nil)
	}

	var amount, deposit *float64
	switch kind {
	case entity.KindBuy:
		if !item.Type.OffersSale() {
			return nil, errors.Validation(errors.FieldProblem{Field: "kind", Reason: "item is not for sale"})
		}
		amount = item.SalePrice
	case entity.KindRent:
		if !item.Type.OffersRent() {
			return nil, errors.Validation(errors.FieldProblem{Field: "kind", Reason: "item is not for rent"})
		}
		amount, deposit = item.RentPrice, item.Deposit
	default:
		return nil, errors.Validation(errors.FieldProblem{Field: "kind", Reason: "must be one of: buy rent"})
	}
	if amount == nil {
		return nil, errors.Validation(errors.FieldProblem{Field: "amount", Reason: "item has no price for " + string(kind)})
	}

	intent := &entity.OrderIntent{
		Item:          entity.ItemRef{ID: item.ID, Title: item.Title, SellerID: item.SellerID},
		Kind:          kind,
		Amount:        *amount,
		PaymentMethod: entity.PaymentCard,
		State:         entity.IntentOpen,
		OpenedAt:      f.now(),
	}
	if deposit != nil {
		intent.Deposit = *deposit
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.intent = intent
	f.thread = nil
	f.visible = true
	return f.snapshot(), nil
}

// AttachThread links the chat thread that receives the confirmation line.
func (f *CheckoutFlow) AttachThread(thread *entity.ChatThread) {
	f.mu.Lock()
	f.thread = thread
	f.mu.Unlock()
}

func (f *CheckoutFlow) SetDelivery(address entity.DeliveryAddress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.requireOpen(); err != nil {
		return err
	}
	f.intent.Delivery = entity.DeliveryAddress{
		Street: strings.TrimSpace(address.Street),
		City:   strings.TrimSpace(address.City),
		Zip:    strings.TrimSpace(address.Zip),
	}
	return nil
}

func (f *CheckoutFlow) SetPaymentMethod(method entity.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.requireOpen(); err != nil {
		return err
	}
	f.intent.PaymentMethod = method
	return nil
}

// Confirm submits the intent. With a recorder wired the order is recorded first and a
// failure leaves the intent open for another attempt.
func (f *CheckoutFlow) Confirm(ctx context.Context) (*Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.requireOpen(); err != nil {
		return nil, err
	}
	if problems := fieldProblems(f.intent); len(problems) > 0 {
		return nil, errors.Validation(problems...)
	}

	var order *entity.Order
	if f.recorder != nil {
		session, err := f.sessions.Resolve(ctx)
		if err != nil {
			logger.Trace("confirm order", err)
			return nil, err
		}
		order, err = f.recorder.RecordOrder(ctx, session.Token, f.snapshot())
		if err != nil {
			logger.Trace("confirm order", err)
			return nil, err
		}
	}

	submittedAt := f.now()
	f.intent.State = entity.IntentSubmitted
	f.intent.SubmittedAt = &submittedAt
	f.visible = false
	logger.Info("Order placed for item %s (%s)", f.intent.Item.ID, f.intent.Kind)

	if f.chat != nil && f.thread != nil {
		if _, err := f.chat.Send(ctx, f.thread, "Order Confirmed! I've placed an order for "+f.intent.Item.Title+"."); err != nil {
			logger.Error("Failed to append order confirmation to chat: %v", err)
		}
	}

	return &Confirmation{
		Title:         f.intent.Item.Title,
		Kind:          f.intent.Kind,
		Amount:        f.intent.Amount,
		Deposit:       f.intent.Deposit,
		PaymentMethod: f.intent.PaymentMethod,
		Delivery:      f.intent.Delivery,
		Order:         order,
	}, nil
}

// Cancel discards the open intent and hides the dialog.
func (f *CheckoutFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.intent != nil && f.intent.State == entity.IntentOpen {
		f.intent.State = entity.IntentCancelled
	}
	f.intent = nil
	f.visible = false
}

func (f *CheckoutFlow) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

// Intent returns a copy of the current intent, or nil.
func (f *CheckoutFlow) Intent() *entity.OrderIntent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot()
}

func (f *CheckoutFlow) requireOpen() error {
	if f.intent == nil {
		return errors.BadRequest("No checkout in progress", nil)
	}
	if f.intent.State != entity.IntentOpen {
		return errors.Conflict("Order already placed")
	}
	return nil
}

func (f *CheckoutFlow) snapshot() *entity.OrderIntent {
	if f.intent == nil {
		return nil
	}
	intent := *f.intent
	return &intent
}
