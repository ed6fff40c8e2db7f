package statement

import (
	"regexp"
	"sort"

	"github.com/ledgerline/guideline-converter/internal/models"
)

// Match scans the cleaned text with every grammar in the profile and
// returns the aggregate events and postings it finds, each sorted by
// ascending line number. Grammars are scanned in table order, and the sort
// is stable, so two grammars matching the same line (which the grammar
// family does not produce) would keep discovery order.
//
// A statement with zero aggregate matches is not an error here; the
// aggregator decides what an empty result means.
func Match(c *Cleaned, p *Profile) ([]models.AggregateEvent, []models.Posting) {
	var events []models.AggregateEvent
	for _, g := range p.Events {
		for _, loc := range g.Pattern.FindAllStringSubmatchIndex(c.Text, -1) {
			fields := namedGroups(g.Pattern, c.Text, loc)
			events = append(events, models.AggregateEvent{
				Line:   lineFor(c.Lines, loc[2]),
				Kind:   g.Kind,
				Date:   fields["date"],
				Amount: parseAmount(fields["amount"]),
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Line < events[j].Line })

	var postings []models.Posting
	for _, g := range p.Postings {
		for _, loc := range g.Pattern.FindAllStringSubmatchIndex(c.Text, -1) {
			fields := namedGroups(g.Pattern, c.Text, loc)
			postings = append(postings, models.Posting{
				Line:   lineFor(c.Lines, loc[2]),
				Kind:   g.Kind,
				Ticker: fields["ticker"],
				Qty:    parseAmount(fields["qty"]),
				Amount: parseAmount(fields["amount"]),
			})
		}
	}
	sort.SliceStable(postings, func(i, j int) bool { return postings[i].Line < postings[j].Line })

	return events, postings
}

// lineFor resolves a character offset in the cleaned text to its 0-based
// line number: the first line index entry strictly greater than the
// offset. The index is strictly increasing, so a binary search gives the
// same answer as a linear scan.
func lineFor(lines []int, offset int) int {
	return sort.Search(len(lines), func(i int) bool { return lines[i] > offset })
}

// namedGroups extracts the named capture groups of one match.
func namedGroups(re *regexp.Regexp, text string, loc []int) map[string]string {
	fields := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name == "" || i >= len(loc)/2 {
			continue
		}
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			continue
		}
		fields[name] = text[start:end]
	}
	return fields
}
