package statement

import (
	"math"

	"github.com/ledgerline/guideline-converter/internal/models"
)

// Reconcile partitions postings into the line windows defined by
// consecutive aggregate events, sums each window and validates the sum
// against the event's stated total.
//
// A window is the half-open line range [event.Line, nextEvent.Line); the
// last window closes one past the highest matched line. The lower bound is
// exclusive when collecting postings: aggregate headers and posting lines
// never share a line in this grammar family.
//
// Windows containing a SELL posting are dropped whole — sell-driven fee
// and exchange flows are not handled — and exchange windows are matched
// but never reconciled or emitted. Both show up in the returned Stats, as
// do postings that fall outside every window.
//
// A reconciliation mismatch is fatal for the whole statement: a partial
// result would silently misstate money, and a mismatch means the grammar
// no longer fits the statement layout.
func Reconcile(events []models.AggregateEvent, postings []models.Posting, p *Profile) ([]models.ReconciledGroup, models.Stats, error) {
	stats := models.Stats{Events: len(events), Postings: len(postings)}

	if len(events) == 0 {
		stats.OrphanPostings = len(postings)
		return nil, stats, nil
	}

	maxLineEnd := events[len(events)-1].Line + 1
	if n := len(postings); n > 0 && postings[n-1].Line+1 > maxLineEnd {
		maxLineEnd = postings[n-1].Line + 1
	}

	claimed := make([]bool, len(postings))
	var groups []models.ReconciledGroup
	tol := p.tolerance()

	for i, ev := range events {
		end := maxLineEnd
		if i < len(events)-1 {
			end = events[i+1].Line
		}

		var window []models.Posting
		hasSell := false
		for j, post := range postings {
			if ev.Line < post.Line && post.Line < end {
				claimed[j] = true
				window = append(window, post)
				if post.Kind == models.PostingSell {
					hasSell = true
				}
			}
		}

		if hasSell {
			stats.SellGroups++
			continue
		}
		if ev.Kind == models.EventExchange {
			stats.ExchangeGroups++
			continue
		}

		expected := ev.Amount
		if ev.Kind == models.EventFee {
			expected = -ev.Amount
		}

		running := 0.0
		for _, post := range window {
			running += post.Amount
		}

		if math.Abs(running-expected) > tol {
			return nil, stats, &ReconciliationError{
				Kind:      ev.Kind,
				LineBegin: ev.Line,
				LineEnd:   end,
				Expected:  expected,
				Actual:    running,
			}
		}

		groups = append(groups, models.ReconciledGroup{
			Event:    ev,
			Postings: window,
			Total:    running,
		})
	}

	for _, c := range claimed {
		if !c {
			stats.OrphanPostings++
		}
	}

	return groups, stats, nil
}
