package usecase

import (
	"context"
	"fmt"
	"time"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
)

// SubmissionResult is what the confirmation view renders after a listing is created.
type SubmissionResult struct {
	Item     *entity.Item
	ImageURL string
	Session  entity.SessionSource
}

// SubmissionPipeline turns a completed draft into an item on the marketplace:
// precondition check, image upload, auth resolution, item creation, completion.
// Steps run strictly in order and nothing is retried.
type SubmissionPipeline struct {
	api           MarketplaceAPI
	sessions      *SessionManager
	observer      SubmissionObserver
	navigator     Navigator
	redirectDelay time.Duration
	afterFunc     func(d time.Duration, f func()) *time.Timer
}

func NewSubmissionPipeline(
	api MarketplaceAPI,
	sessions *SessionManager,
	observer SubmissionObserver,
	navigator Navigator,
	redirectDelay time.Duration,
) *SubmissionPipeline {
	return &SubmissionPipeline{
		api:           api,
		sessions:      sessions,
		observer:      observer,
		navigator:     navigator,
		redirectDelay: redirectDelay,
		afterFunc:     time.AfterFunc,
	}
}

// ValidateDraft is the precondition step. It never touches the network.
func ValidateDraft(draft *entity.ListingDraft) error {
	missing := draft.MissingImages()
	if len(missing) > 0 {
		problems := make([]errors.FieldProblem, len(missing))
		for i, slot := range missing {
			problems[i] = errors.FieldProblem{Field: "images." + string(slot), Reason: "is required"}
		}
		return errors.Validation(problems...)
	}
	if problems := PricingProblems(draft); len(problems) > 0 {
		return errors.Validation(problems...)
	}
	return nil
}

// SubmitFromWizard additionally requires the wizard to have reached and confirmed handover.
func (p *SubmissionPipeline) SubmitFromWizard(ctx context.Context, w *ListingWizard) (*SubmissionResult, error) {
	if problems := w.ReadyToSubmit(); len(problems) > 0 {
		return nil, errors.Validation(problems...)
	}
	return p.Submit(ctx, w.Draft())
}

// Submit runs the pipeline. Validation failures come back as VALIDATION_ERROR; every later
// failure comes back as one SUBMISSION_FAILED error wrapping the classified cause.
// The draft is never modified, so the caller may retry it as is. A retry repeats the upload
// and the item creation; nothing dedupes them.
func (p *SubmissionPipeline) Submit(ctx context.Context, draft *entity.ListingDraft) (*SubmissionResult, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	// Once started the sequence runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	result, err := p.run(ctx, draft)
	if err != nil {
		logger.Trace("submit listing", err)
		return nil, errors.SubmissionFailed(err)
	}

	logger.Info("Listing %s submitted for review", result.Item.ID)
	if p.observer != nil {
		p.observer.ListingSubmitted(result.Item)
	}
	if p.navigator != nil {
		sellerID := result.Item.SellerID
		p.afterFunc(p.redirectDelay, func() {
			p.navigator.ShowListingOverview(sellerID)
		})
	}
	return result, nil
}

func (p *SubmissionPipeline) run(ctx context.Context, draft *entity.ListingDraft) (*SubmissionResult, error) {
	imageURL, err := p.api.UploadImage(ctx, draft.Images[entity.ImageFront])
	if err != nil {
		return nil, fmt.Errorf("upload front image: %w", err)
	}
	logger.Debug("Front image uploaded to %s", imageURL)

	session, err := p.sessions.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	item, err := p.api.CreateItem(ctx, session.Token, BuildItemPayload(draft, imageURL))
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	return &SubmissionResult{Item: item, ImageURL: imageURL, Session: session.Source}, nil
}

// BuildItemPayload assembles the create-item body. New listings always start unverified
// and in processing until the fulfilment centre inspects them.
func BuildItemPayload(draft *entity.ListingDraft, imageURL string) entity.ItemPayload {
	return entity.ItemPayload{
		Title:       draft.Title,
		Brand:       draft.Brand,
		Category:    string(draft.Category),
		Size:        string(draft.Size),
		Condition:   string(draft.Condition),
		Type:        draft.Mode,
		SalePrice:   draft.SalePrice,
		RentPrice:   draft.RentPrice,
		Deposit:     draft.DepositAmount,
		Image:       imageURL,
		Status:      entity.ItemStatusProcessing,
		Verified:    false,
		Description: draft.Description,
	}
}
