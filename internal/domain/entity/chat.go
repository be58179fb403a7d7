package entity

import "time"

// ChatSeedContext travels from a listing or checkout view into a chat view.
type ChatSeedContext struct {
	ItemID          ItemID          `json:"item_id"`
	Title           string          `json:"title"`
	Price           float64         `json:"price"`
	SellerID        string          `json:"seller_id"`
	TransactionType TransactionKind `json:"transaction_type"`
}

type MessageSide string

const (
	SideMe    MessageSide = "me"
	SideOther MessageSide = "other"
)

type ChatMessage struct {
	ID          string      `json:"id"`
	ThreadID    string      `json:"thread_id"`
	SenderID    string      `json:"sender_id,omitempty"`
	RecipientID string      `json:"recipient_id,omitempty"`
	Side        MessageSide `json:"-"`
	Text        string      `json:"text"`
	SentAt      time.Time   `json:"sent_at"`
}

type ChatThread struct {
	ID           string          `json:"id"`
	Counterparty string          `json:"counterparty"`
	Context      ChatSeedContext `json:"context"`
	Messages     []ChatMessage   `json:"messages"`
}
