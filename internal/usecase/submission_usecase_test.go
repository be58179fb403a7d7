package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
)

type pipelineFixture struct {
	api       *fakeAPI
	navigator *recordingNavigator
	observer  *recordingObserver
	pipeline  *SubmissionPipeline
	delays    []time.Duration
}

func newPipelineFixture(sessions func(MarketplaceAPI) *SessionManager) *pipelineFixture {
	fx := &pipelineFixture{
		api:       newFakeAPI(),
		navigator: &recordingNavigator{},
		observer:  &recordingObserver{},
	}
	fx.pipeline = NewSubmissionPipeline(fx.api, sessions(fx.api), fx.observer, fx.navigator, 2*time.Second)
	fx.pipeline.afterFunc = func(d time.Duration, f func()) *time.Timer {
		fx.delays = append(fx.delays, d)
		f()
		return nil
	}
	return fx
}

func TestSubmitBothModeEndToEnd(t *testing.T) {
	fx := newPipelineFixture(loggedInSessions)
	draft := completeDraft()
	draft.RentPrice = entity.Float(draft.SuggestedPricing().Rent)
	draft.DepositAmount = entity.Float(draft.SuggestedPricing().Deposit)

	result, err := fx.pipeline.Submit(context.Background(), draft)
	require.NoError(t, err)

	require.Len(t, fx.api.uploads, 1)
	assert.Equal(t, "front.jpg", fx.api.uploads[0].Filename)

	require.Len(t, fx.api.created, 1)
	payload := fx.api.created[0]
	assert.Equal(t, entity.ModeBoth, payload.Type)
	assert.Equal(t, 25000.0, *payload.SalePrice)
	assert.Equal(t, 1250.0, *payload.RentPrice)
	assert.Equal(t, 6250.0, *payload.Deposit)
	assert.Equal(t, entity.ItemStatusProcessing, payload.Status)
	assert.False(t, payload.Verified)
	assert.Equal(t, "http://localhost:8001/uploads/front.jpg", payload.Image)
	assert.Equal(t, []string{"seller-token"}, fx.api.tokens)

	assert.Equal(t, entity.ItemStatusProcessing, result.Item.Status)
	assert.Equal(t, entity.SessionFromRestored, result.Session)
	assert.Len(t, fx.observer.items, 1)
	assert.Equal(t, []time.Duration{2 * time.Second}, fx.delays)
	assert.Equal(t, []string{"seller-1"}, fx.navigator.sellers)
}

func TestSubmitMissingImageMakesNoNetworkCall(t *testing.T) {
	fx := newPipelineFixture(loggedInSessions)
	draft := completeDraft()
	delete(draft.Images, entity.ImageBack)

	_, err := fx.pipeline.Submit(context.Background(), draft)
	require.Error(t, err)

	assert.True(t, errors.Is(err, errors.CodeValidation))
	assert.False(t, errors.Is(err, errors.CodeSubmissionFailed))
	assert.Contains(t, err.Error(), "images.back")
	assert.Zero(t, fx.api.callCount())
	assert.Empty(t, fx.observer.items)
}

func TestSubmitNonFinitePriceMakesNoNetworkCall(t *testing.T) {
	fx := newPipelineFixture(loggedInSessions)
	draft := completeDraft()
	draft.Mode = entity.ModeSale
	draft.SalePrice = entity.Float(math.Inf(1))

	_, err := fx.pipeline.Submit(context.Background(), draft)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeValidation))
	assert.Contains(t, err.Error(), "sale_price")
	assert.Zero(t, fx.api.callCount())
}

func TestSubmitEnforcesModePrices(t *testing.T) {
	cases := []struct {
		name    string
		mode    entity.ListingMode
		sale    *float64
		rent    *float64
		deposit *float64
		fields  []string
	}{
		{name: "sale needs sale price", mode: entity.ModeSale, rent: entity.Float(100), fields: []string{"sale_price"}},
		{name: "sale ignores rent fields", mode: entity.ModeSale, sale: entity.Float(8000)},
		{name: "rent needs rent and deposit", mode: entity.ModeRent, sale: entity.Float(5000), fields: []string{"rent_price", "deposit"}},
		{name: "rent with both prices", mode: entity.ModeRent, rent: entity.Float(400), deposit: entity.Float(2000)},
		{name: "both needs all three", mode: entity.ModeBoth, sale: entity.Float(5000), deposit: entity.Float(0), fields: []string{"rent_price"}},
		{name: "negative price", mode: entity.ModeSale, sale: entity.Float(-1), fields: []string{"sale_price"}},
		{name: "unknown mode", mode: "swap", sale: entity.Float(1), fields: []string{"mode"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newPipelineFixture(loggedInSessions)
			draft := completeDraft()
			draft.Mode, draft.SalePrice, draft.RentPrice, draft.DepositAmount = tc.mode, tc.sale, tc.rent, tc.deposit

			_, err := fx.pipeline.Submit(context.Background(), draft)
			if len(tc.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var appErr *errors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, errors.CodeValidation, appErr.Code)
			var fields []string
			for _, p := range appErr.Problems {
				fields = append(fields, p.Field)
			}
			assert.Equal(t, tc.fields, fields)
			assert.Zero(t, fx.api.callCount())
		})
	}
}

func TestSubmitFailureIsSingleSignal(t *testing.T) {
	fx := newPipelineFixture(loggedInSessions)
	fx.api.uploadErr = networkErr()

	_, err := fx.pipeline.Submit(context.Background(), completeDraft())
	require.Error(t, err)

	assert.True(t, errors.Is(err, errors.CodeSubmissionFailed))
	assert.True(t, errors.Is(err, errors.CodeNetwork))
	assert.Equal(t, "Upload failed. Please retry.", errors.UserMessage(err))
	assert.Empty(t, fx.api.created)
	assert.Empty(t, fx.navigator.sellers)
}

func TestResubmitAfterCreateFailureRepeatsUploadAndCreate(t *testing.T) {
	fx := newPipelineFixture(loggedInSessions)
	fx.api.createErr = errors.ServerRejected(500, "Internal Server Error")
	draft := completeDraft()

	_, err := fx.pipeline.Submit(context.Background(), draft)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeServerRejected))
	assert.Len(t, draft.Images, 3)
	assert.Equal(t, 25000.0, *draft.SalePrice)

	fx.api.createErr = nil
	_, err = fx.pipeline.Submit(context.Background(), draft)
	require.NoError(t, err)

	assert.Len(t, fx.api.uploads, 2)
	assert.Len(t, fx.api.created, 2)
	assert.Len(t, fx.observer.items, 1)
}

func TestSubmitWithoutSessionInProductionFails(t *testing.T) {
	fx := newPipelineFixture(func(api MarketplaceAPI) *SessionManager {
		return NewSessionManager(api, &memoryTokenStore{}, nil)
	})

	_, err := fx.pipeline.Submit(context.Background(), completeDraft())
	require.Error(t, err)

	assert.True(t, errors.Is(err, errors.CodeSubmissionFailed))
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
	assert.Len(t, fx.api.uploads, 1)
	assert.Empty(t, fx.api.created)
}

func TestSubmitWithDevSeedStrategy(t *testing.T) {
	store := &memoryTokenStore{}
	fx := newPipelineFixture(func(api MarketplaceAPI) *SessionManager {
		return NewSessionManager(api, store, NewDevSeedStrategy(api, "alex@example.com", "password123"))
	})

	result, err := fx.pipeline.Submit(context.Background(), completeDraft())
	require.NoError(t, err)

	assert.Equal(t, []string{"alex@example.com"}, fx.api.logins)
	assert.Equal(t, []string{"token-alex@example.com"}, fx.api.tokens)
	assert.Equal(t, entity.SessionFromDevSeed, result.Session)
	assert.Nil(t, store.session)
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	fx := newPipelineFixture(loggedInSessions)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fx.pipeline.Submit(ctx, completeDraft())
	require.NoError(t, err)
	assert.Len(t, fx.api.created, 1)
}

func TestSubmitFromWizardRequiresHandover(t *testing.T) {
	fx := newPipelineFixture(loggedInSessions)
	w := NewListingWizardFrom(completeDraft())

	_, err := fx.pipeline.SubmitFromWizard(context.Background(), w)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeValidation))

	require.True(t, w.Advance().Passed)
	require.True(t, w.Advance().Passed)
	w.AcceptHandover()

	_, err = fx.pipeline.SubmitFromWizard(context.Background(), w)
	require.NoError(t, err)
	assert.Len(t, fx.api.created, 1)
}
