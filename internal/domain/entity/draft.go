package entity

import "math"

type Category string

const (
	CategoryDress       Category = "dress"
	CategoryLehenga     Category = "lehenga"
	CategorySaree       Category = "saree"
	CategoryGown        Category = "gown"
	CategorySuit        Category = "suit"
	CategoryAccessories Category = "accessories"
)

var Categories = []Category{
	CategoryDress, CategoryLehenga, CategorySaree, CategoryGown, CategorySuit, CategoryAccessories,
}

type Size string

var Sizes = []Size{"XS", "S", "M", "L", "XL", "XXL", "Custom"}

type Condition string

var Conditions = []Condition{"New", "Like New", "Excellent", "Good", "Fair"}

type ImageSlot string

const (
	ImageFront ImageSlot = "front"
	ImageBack  ImageSlot = "back"
	ImageSide  ImageSlot = "side"
)

// RequiredImageSlots must all be filled before a draft is submitted.
var RequiredImageSlots = []ImageSlot{ImageFront, ImageBack, ImageSide}

type DraftImage struct {
	Filename string
	Data     []byte
}

// ListingDraft is the seller's in-progress listing. It lives only as long as one wizard session.
type ListingDraft struct {
	Title       string    `yaml:"title"`
	Brand       string    `yaml:"brand"`
	Description string    `yaml:"description"`
	Category    Category  `yaml:"category"`
	Size        Size      `yaml:"size"`
	Condition   Condition `yaml:"condition"`

	Mode          ListingMode `yaml:"mode"`
	SalePrice     *float64    `yaml:"sale_price"`
	RentPrice     *float64    `yaml:"rent_price"`
	DepositAmount *float64    `yaml:"deposit"`

	Images map[ImageSlot]*DraftImage `yaml:"-"`
}

func NewListingDraft() *ListingDraft {
	return &ListingDraft{
		Mode:   ModeBoth,
		Images: make(map[ImageSlot]*DraftImage),
	}
}

// MissingImages lists required slots without an image, in slot order.
func (d *ListingDraft) MissingImages() []ImageSlot {
	var missing []ImageSlot
	for _, slot := range RequiredImageSlots {
		if img, ok := d.Images[slot]; !ok || img == nil || len(img.Data) == 0 {
			missing = append(missing, slot)
		}
	}
	return missing
}

// SuggestedPricing is advisory only. It is never stored on the draft.
type SuggestedPricing struct {
	Rent    float64
	Deposit float64
}

// SuggestPricing derives the daily rent and security deposit hints from a sale price.
func SuggestPricing(salePrice *float64) SuggestedPricing {
	if salePrice == nil || !(*salePrice > 0) || math.IsInf(*salePrice, 1) {
		return SuggestedPricing{}
	}
	return SuggestedPricing{
		Rent:    math.Round(*salePrice * 0.05),
		Deposit: math.Round(*salePrice * 0.25),
	}
}

func (d *ListingDraft) SuggestedPricing() SuggestedPricing {
	return SuggestPricing(d.SalePrice)
}
