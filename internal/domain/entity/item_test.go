package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemIDAcceptsNumbersAndStrings(t *testing.T) {
	var numeric Item
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "title": "Silk Saree"}`), &numeric))
	assert.Equal(t, ItemID("42"), numeric.ID)

	var text Item
	require.NoError(t, json.Unmarshal([]byte(`{"id": "b7c1", "title": "Gown"}`), &text))
	assert.Equal(t, ItemID("b7c1"), text.ID)
}

func TestSuggestPricing(t *testing.T) {
	assert.Equal(t, SuggestedPricing{}, SuggestPricing(nil))
	assert.Equal(t, SuggestedPricing{}, SuggestPricing(Float(0)))
	assert.Equal(t, SuggestedPricing{Rent: 1250, Deposit: 6250}, SuggestPricing(Float(25000)))
	// 0.05 * 30 = 1.5 rounds up, 0.25 * 30 = 7.5 rounds up
	assert.Equal(t, SuggestedPricing{Rent: 2, Deposit: 8}, SuggestPricing(Float(30)))
	assert.Equal(t, SuggestedPricing{Rent: 1, Deposit: 3}, SuggestPricing(Float(11)))
}

func TestMissingImages(t *testing.T) {
	d := NewListingDraft()
	assert.Equal(t, []ImageSlot{ImageFront, ImageBack, ImageSide}, d.MissingImages())

	d.Images[ImageBack] = &DraftImage{Filename: "back.jpg", Data: []byte{0xff}}
	d.Images[ImageSide] = &DraftImage{Filename: "side.jpg"}
	assert.Equal(t, []ImageSlot{ImageFront, ImageSide}, d.MissingImages())
}

func TestListingModeOffers(t *testing.T) {
	assert.True(t, ModeBoth.OffersSale())
	assert.True(t, ModeBoth.OffersRent())
	assert.False(t, ModeRent.OffersSale())
	assert.False(t, ListingMode("lease").Valid())
}
