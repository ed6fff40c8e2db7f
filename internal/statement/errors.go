package statement

import (
	"errors"
	"fmt"

	"github.com/ledgerline/guideline-converter/internal/models"
)

var (
	// ErrFormatMismatch means the text is not a statement of this family:
	// no account identifier, no transaction-begin marker, or an account
	// that is not one of the configured account numbers. Callers treat it
	// as a negative identification, not a processing failure.
	ErrFormatMismatch = errors.New("statement format not recognized")

	// ErrAmbiguousAccount means more than one distinct account identifier
	// was found. Fatal: the statement cannot be attributed to an account.
	ErrAmbiguousAccount = errors.New("multiple account identifiers in statement")
)

// ReconciliationError reports a group whose posting amounts do not sum to
// the aggregate event's stated total within tolerance. It carries enough
// context to diagnose a grammar mismatch against a new statement layout.
type ReconciliationError struct {
	Kind      models.EventKind
	LineBegin int
	LineEnd   int
	Expected  float64
	Actual    float64
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s group at lines %d-%d does not reconcile: postings sum to %.2f, statement says %.2f",
		e.Kind, e.LineBegin, e.LineEnd, e.Actual, e.Expected)
}
