package entity

import "time"

type TransactionKind string

const (
	KindBuy  TransactionKind = "buy"
	KindRent TransactionKind = "rent"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
)

type IntentState string

const (
	IntentOpen      IntentState = "open"
	IntentSubmitted IntentState = "submitted"
	IntentCancelled IntentState = "cancelled"
)

type DeliveryAddress struct {
	Street string `json:"street" firestore:"street" validate:"required"`
	City   string `json:"city" firestore:"city" validate:"required"`
	Zip    string `json:"zip" firestore:"zip" validate:"required"`
}

type ItemRef struct {
	ID       ItemID `json:"id"`
	Title    string `json:"title"`
	SellerID string `json:"seller_id"`
}

// OrderIntent is the buyer's checkout snapshot. Amount and Deposit are copied when the
// dialog opens and never follow later listing edits.
type OrderIntent struct {
	Item          ItemRef         `json:"item"`
	Kind          TransactionKind `json:"kind" validate:"oneof=buy rent"`
	Amount        float64         `json:"amount"`
	Deposit       float64         `json:"deposit,omitempty"`
	Delivery      DeliveryAddress `json:"delivery"`
	PaymentMethod PaymentMethod   `json:"payment_method" validate:"required,oneof=card upi cod"`
	State         IntentState     `json:"state"`
	OpenedAt      time.Time       `json:"opened_at"`
	SubmittedAt   *time.Time      `json:"submitted_at,omitempty"`
}

type OrderStatus string

const (
	OrderActiveRental OrderStatus = "active_rental"
	OrderShipped      OrderStatus = "shipped"
	OrderDelivered    OrderStatus = "delivered"
	OrderDispute      OrderStatus = "dispute"
	OrderClosed       OrderStatus = "closed"
)

// Order is the record kept by the marketplace once a buyer confirms. EscrowAmount is a label:
// nothing holds or releases funds.
type Order struct {
	ID            string          `json:"id" firestore:"id"`
	ItemID        ItemID          `json:"item_id" firestore:"itemId"`
	BuyerID       string          `json:"buyer_id" firestore:"buyerId"`
	SellerID      string          `json:"seller_id" firestore:"sellerId"`
	Type          TransactionKind `json:"type" firestore:"type"`
	Status        OrderStatus     `json:"status" firestore:"status"`
	EscrowAmount  float64         `json:"escrow_amount" firestore:"escrowAmount"`
	DepositLocked *float64        `json:"deposit_locked,omitempty" firestore:"depositLocked,omitempty"`
	Delivery      DeliveryAddress `json:"delivery" firestore:"delivery"`
	PaymentMethod PaymentMethod   `json:"payment_method" firestore:"paymentMethod"`
	CreatedAt     time.Time       `json:"created_at" firestore:"createdAt"`
}
