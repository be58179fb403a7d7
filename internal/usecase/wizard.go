package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
)

type WizardStep int

const (
	StepDetails WizardStep = iota + 1
	StepPricing
	StepHandover
)

func (s WizardStep) String() string {
	switch s {
	case StepDetails:
		return "Details"
	case StepPricing:
		return "Pricing"
	case StepHandover:
		return "Handover"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// StepResult is the outcome of a gated step transition.
type StepResult struct {
	Passed   bool
	From     WizardStep
	To       WizardStep
	Problems []errors.FieldProblem
}

// ListingWizard holds one seller's draft across the Details, Pricing and Handover steps.
// Fields mutate freely; validation happens only at step gates and at submit.
type ListingWizard struct {
	draft            *entity.ListingDraft
	step             WizardStep
	handoverAccepted bool
}

func NewListingWizard() *ListingWizard {
	return &ListingWizard{
		draft: entity.NewListingDraft(),
		step:  StepDetails,
	}
}

// NewListingWizardFrom resumes a wizard on an existing draft, for drafts loaded from a file.
func NewListingWizardFrom(draft *entity.ListingDraft) *ListingWizard {
	if draft.Images == nil {
		draft.Images = make(map[entity.ImageSlot]*entity.DraftImage)
	}
	if draft.Mode == "" {
		draft.Mode = entity.ModeBoth
	}
	return &ListingWizard{draft: draft, step: StepDetails}
}

func (w *ListingWizard) Draft() *entity.ListingDraft {
	return w.draft
}

func (w *ListingWizard) Step() WizardStep {
	return w.step
}

func (w *ListingWizard) HandoverAccepted() bool {
	return w.handoverAccepted
}

// SetField assigns a form value by field name. Empty price input clears the price.
func (w *ListingWizard) SetField(name, value string) error {
	d := w.draft
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "title":
		d.Title = value
	case "brand":
		d.Brand = value
	case "description":
		d.Description = value
	case "category":
		d.Category = entity.Category(value)
	case "size":
		d.Size = entity.Size(value)
	case "condition":
		d.Condition = entity.Condition(value)
	case "mode", "type", "listing_type":
		d.Mode = entity.ListingMode(value)
	case "sale_price", "saleprice":
		return setPrice(&d.SalePrice, name, value)
	case "rent_price", "rentprice":
		return setPrice(&d.RentPrice, name, value)
	case "deposit", "deposit_amount":
		return setPrice(&d.DepositAmount, name, value)
	default:
		return errors.BadRequest(fmt.Sprintf("unknown listing field %q", name), nil)
	}
	return nil
}

func setPrice(target **float64, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		*target = nil
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return errors.BadRequest(fmt.Sprintf("%s must be a number", name), err)
	}
	if !isFinite(f) {
		return errors.BadRequest(fmt.Sprintf("%s must be a number", name), nil)
	}
	*target = &f
	return nil
}

func (w *ListingWizard) SetImage(slot entity.ImageSlot, image *entity.DraftImage) {
	w.draft.Images[slot] = image
}

// SuggestedPricing is recomputed from the current sale price on every call.
func (w *ListingWizard) SuggestedPricing() entity.SuggestedPricing {
	return w.draft.SuggestedPricing()
}

// Advance moves one step forward only if the current step's gate passes.
func (w *ListingWizard) Advance() StepResult {
	from := w.step
	var problems []errors.FieldProblem
	switch w.step {
	case StepDetails:
		problems = DetailProblems(w.draft)
	case StepPricing:
		problems = PricingProblems(w.draft)
	case StepHandover:
		return StepResult{Passed: true, From: from, To: from}
	}
	if len(problems) > 0 {
		return StepResult{Passed: false, From: from, To: from, Problems: problems}
	}
	w.step++
	return StepResult{Passed: true, From: from, To: w.step}
}

// Retreat moves one step back without validation, never below Details.
func (w *ListingWizard) Retreat() WizardStep {
	if w.step > StepDetails {
		w.step--
	}
	return w.step
}

// AcceptHandover records the authenticity and courier handover confirmation.
func (w *ListingWizard) AcceptHandover() {
	w.handoverAccepted = true
}

// ReadyToSubmit reports the problems that would block submission from the wizard,
// without touching the network.
func (w *ListingWizard) ReadyToSubmit() []errors.FieldProblem {
	var problems []errors.FieldProblem
	if w.step != StepHandover {
		problems = append(problems, errors.FieldProblem{Field: "step", Reason: "must reach " + StepHandover.String()})
	}
	if !w.handoverAccepted {
		problems = append(problems, errors.FieldProblem{Field: "handover", Reason: "must be confirmed"})
	}
	return problems
}

type draftDetails struct {
	Title     string `json:"title" validate:"required"`
	Brand     string `json:"brand" validate:"required"`
	Category  string `json:"category" validate:"required,oneof=dress lehenga saree gown suit accessories"`
	Size      string `json:"size" validate:"required,oneof=XS S M L XL XXL Custom"`
	Condition string `json:"condition" validate:"required,oneof=New 'Like New' Excellent Good Fair"`
}

// DetailProblems is the Details step gate.
func DetailProblems(d *entity.ListingDraft) []errors.FieldProblem {
	return fieldProblems(draftDetails{
		Title:     strings.TrimSpace(d.Title),
		Brand:     strings.TrimSpace(d.Brand),
		Category:  string(d.Category),
		Size:      string(d.Size),
		Condition: string(d.Condition),
	})
}

// PricingProblems is the Pricing step gate and the mode/price rule checked again at submit:
// sale needs a sale price, rent needs rent and deposit, both needs all three.
func PricingProblems(d *entity.ListingDraft) []errors.FieldProblem {
	if !d.Mode.Valid() {
		return []errors.FieldProblem{{Field: "mode", Reason: "must be one of: sale rent both"}}
	}

	var problems []errors.FieldProblem
	check := func(field string, price *float64, mandatory bool) {
		switch {
		case price == nil && mandatory:
			problems = append(problems, required(field))
		case price != nil && !isFinite(*price):
			problems = append(problems, errors.FieldProblem{Field: field, Reason: "must be a number"})
		case price != nil && *price < 0:
			problems = append(problems, errors.FieldProblem{Field: field, Reason: "must not be negative"})
		}
	}
	check("sale_price", d.SalePrice, d.Mode.OffersSale())
	check("rent_price", d.RentPrice, d.Mode.OffersRent())
	check("deposit", d.DepositAmount, d.Mode.OffersRent())
	return problems
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func required(field string) errors.FieldProblem {
	return errors.FieldProblem{Field: field, Reason: "is required"}
}
