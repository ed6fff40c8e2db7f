// Package statement turns noisy text extracted from a Guideline
// retirement-account PDF statement into reconciled transaction groups.
//
// The statement body alternates between aggregate lines — dated, totaled
// payroll/fee/exchange/dividend summaries — and the undated per-ticker
// buy/sell/reinvest postings that belong to them. Postings carry no date,
// so each one is attributed to the aggregate event whose line window
// contains it, and every window's posting amounts are checked against the
// event's stated total before anything is emitted.
package statement

import "github.com/ledgerline/guideline-converter/internal/models"

// Process runs the full pipeline on one statement's raw text: normalize,
// match, reconcile, tabulate. A reconciliation mismatch or an ambiguous
// account aborts the statement with no partial output.
func Process(raw string, p *Profile) (*models.StatementInfo, error) {
	cleaned, err := Normalize(raw, p)
	if err != nil {
		return nil, err
	}

	events, postings := Match(cleaned, p)

	groups, stats, err := Reconcile(events, postings, p)
	if err != nil {
		return nil, err
	}

	return &models.StatementInfo{
		Account: cleaned.Account,
		Year:    cleaned.Year,
		Groups:  groups,
		Rows:    Tabulate(events, postings, cleaned.Year),
		Stats:   stats,
	}, nil
}
