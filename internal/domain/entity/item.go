package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

type ListingMode string

const (
	ModeSale ListingMode = "sale"
	ModeRent ListingMode = "rent"
	ModeBoth ListingMode = "both"
)

func (m ListingMode) Valid() bool {
	return m == ModeSale || m == ModeRent || m == ModeBoth
}

func (m ListingMode) OffersSale() bool {
	return m == ModeSale || m == ModeBoth
}

func (m ListingMode) OffersRent() bool {
	return m == ModeRent || m == ModeBoth
}

type ItemStatus string

const (
	ItemStatusLive           ItemStatus = "live"
	ItemStatusProcessing     ItemStatus = "processing"
	ItemStatusRented         ItemStatus = "rented"
	ItemStatusAwaitingPickup ItemStatus = "awaiting_pickup"
)

// ItemID accepts both numeric and string ids on the wire.
type ItemID string

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*id = ItemID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ItemID(n.String())
	return nil
}

func (id ItemID) String() string {
	return string(id)
}

// Item is a listing record as the marketplace stores it. Category, size and condition
// stay free-form here: seeded and legacy records carry values outside the wizard enums.
type Item struct {
	ID          ItemID      `json:"id" firestore:"id"`
	Title       string      `json:"title" firestore:"title"`
	Category    string      `json:"category" firestore:"category"`
	Brand       string      `json:"brand" firestore:"brand"`
	Size        string      `json:"size" firestore:"size"`
	Condition   string      `json:"condition" firestore:"condition"`
	Type        ListingMode `json:"type" firestore:"type"`
	SalePrice   *float64    `json:"sale_price,omitempty" firestore:"salePrice,omitempty"`
	RentPrice   *float64    `json:"rent_price,omitempty" firestore:"rentPrice,omitempty"`
	Deposit     *float64    `json:"deposit,omitempty" firestore:"deposit,omitempty"`
	Image       string      `json:"image" firestore:"image"`
	Status      ItemStatus  `json:"status" firestore:"status"`
	Verified    bool        `json:"verified" firestore:"verified"`
	SellerID    string      `json:"seller_id" firestore:"sellerId"`
	Description string      `json:"description,omitempty" firestore:"description"`
	CreatedAt   time.Time   `json:"created_at,omitempty" firestore:"createdAt"`
}

// ItemPayload is the create-item request body.
type ItemPayload struct {
	Title       string      `json:"title" validate:"required"`
	Brand       string      `json:"brand" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	Size        string      `json:"size" validate:"required"`
	Condition   string      `json:"condition" validate:"required"`
	Type        ListingMode `json:"type" validate:"required,oneof=sale rent both"`
	SalePrice   *float64    `json:"sale_price" validate:"omitempty,gte=0"`
	RentPrice   *float64    `json:"rent_price" validate:"omitempty,gte=0"`
	Deposit     *float64    `json:"deposit" validate:"omitempty,gte=0"`
	Image       string      `json:"image" validate:"required"`
	Status      ItemStatus  `json:"status"`
	Verified    bool        `json:"verified"`
	Description string      `json:"description"`
}

// ItemQuery narrows GET /items on the server side.
type ItemQuery struct {
	SellerID string
	Category string
	Type     string
	Size     string
	Search   string
	Page     int
	Limit    int
}

// Float returns a pointer to v, for optional price fields.
func Float(v float64) *float64 {
	return &v
}
