// Package ledger renders reconciled statement groups as plain-text
// double-entry records.
package ledger

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/guideline-converter/internal/models"
)

// Renderer turns reconciled groups into dated double-entry blocks. Root is
// the account the statement belongs to, e.g. "Assets:Guideline:401k"; the
// cash leg goes to Root:Cash and each ticker leg to Root:TICKER.
type Renderer struct {
	Root     string
	Currency string

	// FeeAccount receives fee amounts. Fee groups are skipped when empty.
	FeeAccount string
}

// Entry is one dated transaction with balanced legs.
type Entry struct {
	Date      time.Time
	Narration string
	Legs      []Leg
}

// Leg is a single account movement. Cost carries the currency cost basis
// for ticker legs; it is nil on cash legs.
type Leg struct {
	Account string
	Amount  decimal.Decimal
	Unit    string
	Cost    *decimal.Decimal
}

// Entries builds one entry per posting of every group, dated with the
// owning event's month/day and the statement year.
func (r *Renderer) Entries(info *models.StatementInfo) ([]Entry, error) {
	var entries []Entry
	for _, group := range info.Groups {
		date, err := time.Parse("01/02/2006", group.Event.Date+"/"+info.Year)
		if err != nil {
			return nil, fmt.Errorf("bad event date %q: %w", group.Event.Date, err)
		}

		for _, post := range group.Postings {
			switch group.Event.Kind {
			case models.EventPayroll, models.EventDividend:
				entries = append(entries, r.purchaseEntry(date, group.Event.Kind, post))
			case models.EventFee:
				if r.FeeAccount == "" {
					continue
				}
				entries = append(entries, r.feeEntry(date, post))
			}
		}
	}
	return entries, nil
}

// purchaseEntry books a share purchase: cash out, ticker in at cost. A
// dividend reinvestment is the same movement with a different narration.
func (r *Renderer) purchaseEntry(date time.Time, kind models.EventKind, post models.Posting) Entry {
	amount := decimal.NewFromFloat(post.Amount)
	qty := decimal.NewFromFloat(post.Qty)

	verb := "Buy"
	if kind == models.EventDividend {
		verb = "Reinvest"
	}

	return Entry{
		Date:      date,
		Narration: fmt.Sprintf("%s %s %s", verb, qty.String(), post.Ticker),
		Legs: []Leg{
			{Account: r.Root + ":Cash", Amount: amount.Neg(), Unit: r.Currency},
			{Account: r.Root + ":" + post.Ticker, Amount: qty, Unit: post.Ticker, Cost: &amount},
		},
	}
}

func (r *Renderer) feeEntry(date time.Time, post models.Posting) Entry {
	amount := decimal.NewFromFloat(post.Amount).Abs()
	return Entry{
		Date:      date,
		Narration: fmt.Sprintf("Account fee %s", post.Ticker),
		Legs: []Leg{
			{Account: r.Root + ":Cash", Amount: amount.Neg(), Unit: r.Currency},
			{Account: r.FeeAccount, Amount: amount, Unit: r.Currency},
		},
	}
}

// Render writes entries in ledger text form, oldest first as given.
func (r *Renderer) Render(w io.Writer, entries []Entry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s * %q\n", e.Date.Format("2006-01-02"), e.Narration); err != nil {
			return err
		}
		for _, leg := range e.Legs {
			line := fmt.Sprintf("  %-40s %12s %s", leg.Account, formatAmount(leg.Amount), leg.Unit)
			if leg.Cost != nil {
				line += fmt.Sprintf(" {%s %s}", leg.Cost.StringFixed(2), r.Currency)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatAmount keeps share quantities at their natural precision but pads
// currency-looking values to two decimals.
func formatAmount(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}
