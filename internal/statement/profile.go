package statement

import (
	"regexp"
	"strings"

	"github.com/ledgerline/guideline-converter/internal/models"
)

// EventGrammar ties an aggregate transaction kind to its line pattern.
// Aggregate lines carry a month/day date, a kind keyword and a trailing
// dollar amount at end of line.
type EventGrammar struct {
	Kind    models.EventKind
	Pattern *regexp.Regexp
}

// PostingGrammar ties a posting kind to its line pattern. Posting lines
// have no date of their own: an action keyword, a ticker, a quantity and a
// trailing dollar amount.
type PostingGrammar struct {
	Kind    models.PostingKind
	Pattern *regexp.Regexp
}

// Profile carries everything specific to one statement family: how to
// recognize the statement, how to clean it, and the grammars for its
// transaction lines. A new statement layout revision means a new profile
// (usually just extra grammar rows), not new code paths.
type Profile struct {
	// IdentityMarker is a phrase present in every statement of this family.
	IdentityMarker string

	// AccountPattern matches the embedded account identifier line.
	AccountPattern *regexp.Regexp

	// YearPattern extracts the statement year from the header, combined
	// with the month/day dates on aggregate lines.
	YearPattern *regexp.Regexp

	// BeginMarker is the column-header line that opens the transaction
	// body. Everything before its first occurrence is discarded.
	BeginMarker string

	// Boilerplate matches noise lines inside the transaction body.
	Boilerplate *regexp.Regexp

	// MaxLineLen marks lines of this length or more for deletion.
	MaxLineLen int

	Events   []EventGrammar
	Postings []PostingGrammar

	// Tolerance is the absolute reconciliation tolerance in dollars.
	Tolerance float64

	// AccountNumbers restricts extraction to these accounts. Empty means
	// accept whatever identifier the statement carries.
	AccountNumbers []string

	// Year overrides the year found in the statement header.
	Year string
}

// Compiled once at init; referenced by every Guideline profile.
var (
	guidelineAccountPattern = regexp.MustCompile(`(?m)^(?P<account>[A-Z0-9]+-[A-Z0-9]+)$`)
	guidelineYearPattern    = regexp.MustCompile(`(?m)^Quarterly Statement Q\d (?P<year>\d+)`)
	guidelineBoilerplate    = regexp.MustCompile(`\b(ACTION|guideline\.com|Investment Income)\b`)

	guidelineEventGrammars = []EventGrammar{
		{models.EventPayroll, regexp.MustCompile(`(?m)^(?P<date>\d\d/\d\d) Buy Payroll(?:.*?)\$(?P<amount>[\d.,]+)$`)},
		{models.EventFee, regexp.MustCompile(`(?m)^(?P<date>\d\d/\d\d) Sell Account(?:.*?)\$(?P<amount>[\d.,]+)$`)},
		{models.EventExchange, regexp.MustCompile(`(?m)^(?P<date>\d\d/\d\d) Exchange Rebalance(?:.*?)\$(?P<amount>[\d.,]+)$`)},
		{models.EventDividend, regexp.MustCompile(`(?m)^(?P<date>\d\d/\d\d) Reinvest Dividend(?:.*?)\$(?P<amount>[\d.,]+)$`)},
	}

	guidelinePostingGrammars = []PostingGrammar{
		{models.PostingBuy, regexp.MustCompile(`(?m)^Buy (?P<ticker>[A-Z]+)\s(?P<qty>\d+.\d+)(?:.*?)\$(?P<amount>[\d.,]+)$`)},
		{models.PostingSell, regexp.MustCompile(`(?m)^Sell (?P<ticker>[A-Z]+)\s(?P<qty>\d+.\d+)(?:.*?)\$(?P<amount>[\d.,]+)$`)},
		{models.PostingReinvest, regexp.MustCompile(`(?m)^Reinvest (?P<ticker>[A-Z]+)\s(?P<qty>\d+.\d+)(?:.*?)\$(?P<amount>[\d.,]+)$`)},
	}
)

// DefaultTolerance is the absolute dollar tolerance used when a profile
// does not set its own.
const DefaultTolerance = 0.01

// Guideline returns the profile for Guideline retirement-account quarterly
// statement exports.
func Guideline() *Profile {
	return &Profile{
		IdentityMarker: "Administrator: Guideline",
		AccountPattern: guidelineAccountPattern,
		YearPattern:    guidelineYearPattern,
		BeginMarker:    "DATE ACTION SOURCE PRE-TAX ROTH EMPLOYER TOTAL",
		Boilerplate:    guidelineBoilerplate,
		MaxLineLen:     70,
		Events:         guidelineEventGrammars,
		Postings:       guidelinePostingGrammars,
		Tolerance:      DefaultTolerance,
	}
}

// Identify reports whether the text looks like a statement of this family.
func (p *Profile) Identify(text string) bool {
	return p.IdentityMarker != "" && strings.Contains(text, p.IdentityMarker)
}

func (p *Profile) tolerance() float64 {
	if p.Tolerance > 0 {
		return p.Tolerance
	}
	return DefaultTolerance
}
