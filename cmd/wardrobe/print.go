package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/usecase"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/money"
)

func price(p *float64) string {
	if p == nil {
		return "-"
	}
	return money.FormatINR(*p)
}

// signedInLine mentions the expiry only when the token carries one.
func signedInLine(sess *entity.Session) string {
	if sess.ExpiresAt.IsZero() {
		return "Signed in as " + sess.Subject
	}
	return fmt.Sprintf("Signed in as %s until %s", sess.Subject, sess.ExpiresAt.Local().Format(time.RFC1123))
}

func printItems(w io.Writer, items []*entity.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tBRAND\tSIZE\tTYPE\tBUY\tRENT\tSTATUS")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Title, item.Brand, item.Size, item.Type,
			price(item.SalePrice), price(item.RentPrice), item.Status)
	}
	tw.Flush()
}

func printItem(w io.Writer, item *entity.Item) {
	fmt.Fprintf(w, "%s by %s\n", item.Title, item.Brand)
	fmt.Fprintf(w, "  id %s, %s, size %s, condition %s\n", item.ID, item.Category, item.Size, item.Condition)
	if item.Type.OffersSale() {
		fmt.Fprintf(w, "  buy   %s\n", price(item.SalePrice))
	}
	if item.Type.OffersRent() {
		fmt.Fprintf(w, "  rent  %s (deposit %s)\n", price(item.RentPrice), price(item.Deposit))
	}
	verified := "pending verification"
	if item.Verified {
		verified = "verified"
	}
	fmt.Fprintf(w, "  %s, %s, seller %s\n", item.Status, verified, item.SellerID)
	if item.Description != "" {
		fmt.Fprintf(w, "\n%s\n", item.Description)
	}
}

func printOverview(w io.Writer, overview *usecase.ListingOverview) {
	fmt.Fprintf(w, "Current listings (%d)\n", len(overview.Current))
	printItems(w, overview.Current)
	fmt.Fprintf(w, "\nPast listings (%d)\n", len(overview.Past))
	printItems(w, overview.Past)
}

func printConfirmation(w io.Writer, c *usecase.Confirmation) {
	verb := "Purchase"
	if c.Kind == entity.KindRent {
		verb = "Rental"
	}
	fmt.Fprintf(w, "%s confirmed: %s\n", verb, c.Title)
	fmt.Fprintf(w, "  amount   %s\n", money.FormatINR(c.Amount))
	if c.Deposit > 0 {
		fmt.Fprintf(w, "  deposit  %s\n", money.FormatINR(c.Deposit))
	}
	fmt.Fprintf(w, "  payment  %s\n", c.PaymentMethod)
	fmt.Fprintf(w, "  deliver  %s, %s %s\n", c.Delivery.Street, c.Delivery.City, c.Delivery.Zip)
	if c.Order != nil {
		fmt.Fprintf(w, "  order    %s (%s)\n", c.Order.ID, c.Order.Status)
	}
}

// describeError renders an error as the one user line plus any field problems.
func describeError(err error) string {
	var b strings.Builder
	b.WriteString(errors.UserMessage(err))
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		for _, p := range appErr.Problems {
			b.WriteString("\n  - ")
			b.WriteString(p.String())
		}
	}
	return b.String()
}
