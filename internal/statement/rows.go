package statement

import (
	"strconv"

	"github.com/ledgerline/guideline-converter/internal/models"
)

// Tabulate projects the matched events and postings into ordered rows for
// row-based transaction pipelines. Unlike Reconcile it validates nothing:
// every posting that falls in an event's window becomes a row, with the
// window's lower bound inclusive and the unit price derived from amount
// and quantity. FEE windows route the posting amount into the fee column.
func Tabulate(events []models.AggregateEvent, postings []models.Posting, year string) []models.Row {
	var rows []models.Row
	numLines := 0
	if n := len(postings); n > 0 {
		numLines = postings[n-1].Line + 1
	}
	if n := len(events); n > 0 && events[n-1].Line+1 > numLines {
		numLines = events[n-1].Line + 1
	}

	for i, ev := range events {
		end := numLines
		if i < len(events)-1 {
			end = events[i+1].Line
		}
		date := ev.Date + "/" + year

		for _, post := range postings {
			if post.Line < ev.Line || post.Line >= end {
				continue
			}
			row := models.Row{
				Action:   rowAction(post.Kind),
				Date:     date,
				Symbol:   post.Ticker,
				Quantity: formatQty(post.Qty),
				Price:    formatPrice(post.Amount, post.Qty),
			}
			if ev.Kind == models.EventFee {
				row.Fees = formatQty(post.Amount)
			} else {
				row.Amount = formatQty(post.Amount)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func rowAction(kind models.PostingKind) string {
	switch kind {
	case models.PostingBuy:
		return "Buy"
	case models.PostingSell:
		return "Sell"
	case models.PostingReinvest:
		return "Reinvest Dividend"
	}
	return string(kind)
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPrice(amount, qty float64) string {
	if qty == 0 {
		return ""
	}
	return strconv.FormatFloat(amount/qty, 'f', -1, 64)
}
