package statement

import (
	"fmt"
	"strings"
)

// Cleaned is the output of normalization: the statement's transaction body
// with noise lines removed, plus the line index over it.
type Cleaned struct {
	// Text is the cleaned transaction body.
	Text string

	// Lines holds one entry per line of Text: the offset one past each
	// line's terminator, strictly increasing. A match at character offset
	// c lies on the first line whose entry exceeds c.
	Lines []int

	// Year from the statement header (or the profile override).
	Year string

	// Account is the identifier embedded in the statement.
	Account string
}

// Normalize cleans raw extracted statement text and indexes its lines.
// It is a pure function of the text and profile.
//
// The passes run in a fixed order: drop near-empty lines, read the year
// and account identifier from the full document, cut everything before the
// transaction-begin marker, then delete overlong, boilerplate, blank and
// sub-3-character lines from the body.
func Normalize(raw string, p *Profile) (*Cleaned, error) {
	pre := dropNearEmptyLines(raw)

	year := p.Year
	if year == "" {
		m := p.YearPattern.FindStringSubmatch(pre)
		if m == nil {
			return nil, fmt.Errorf("no statement year header: %w", ErrFormatMismatch)
		}
		year = strings.TrimSpace(m[1])
	}

	account, err := findAccount(pre, p)
	if err != nil {
		return nil, err
	}

	idx := strings.Index(pre, p.BeginMarker)
	if idx < 0 {
		return nil, fmt.Errorf("transaction table header not found: %w", ErrFormatMismatch)
	}
	body := pre[idx+len(p.BeginMarker):]

	text := cleanBody(body, p)

	return &Cleaned{
		Text:    text,
		Lines:   buildLineIndex(text),
		Year:    year,
		Account: account,
	}, nil
}

// findAccount locates the statement's embedded account identifier. More
// than one distinct identifier makes the statement unattributable; an
// identifier outside the configured account numbers means the statement
// belongs to someone else.
func findAccount(text string, p *Profile) (string, error) {
	var accounts []string
	for _, m := range p.AccountPattern.FindAllStringSubmatch(text, -1) {
		acct := strings.TrimSpace(m[1])
		if !contains(accounts, acct) {
			accounts = append(accounts, acct)
		}
	}
	if len(accounts) == 0 {
		return "", fmt.Errorf("no account identifier: %w", ErrFormatMismatch)
	}
	if len(accounts) > 1 {
		return "", fmt.Errorf("found %d identifiers: %w", len(accounts), ErrAmbiguousAccount)
	}
	if len(p.AccountNumbers) > 0 && !contains(p.AccountNumbers, accounts[0]) {
		return "", fmt.Errorf("account %s is not a configured account: %w", accounts[0], ErrFormatMismatch)
	}
	return accounts[0], nil
}

// dropNearEmptyLines removes lines with one or zero visible characters.
// PDF text extraction leaves many stray single-glyph lines from table
// borders and column markers.
func dropNearEmptyLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if len(line) <= 1 || strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// cleanBody deletes noise lines from the transaction body. Running it on
// its own output changes nothing.
func cleanBody(body string, p *Profile) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		if len(line) >= p.MaxLineLen {
			continue
		}
		if p.Boilerplate != nil && p.Boilerplate.MatchString(line) {
			continue
		}
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) <= 2 {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// buildLineIndex records, for every line, the offset one past its
// terminator. The final line is indexed as if terminated so matches on it
// still resolve.
func buildLineIndex(text string) []int {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	idx := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		offset += len(line) + 1
		idx[i] = offset
	}
	return idx
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
