package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/guideline-converter/internal/models"
)

func TestProcess(t *testing.T) {
	t.Parallel()

	info, err := Process(sampleStatement, Guideline())
	require.NoError(t, err)

	assert.Equal(t, "3GHQ2-A83JF", info.Account)
	assert.Equal(t, "2022", info.Year)

	require.Len(t, info.Groups, 2)

	payroll := info.Groups[0]
	assert.Equal(t, models.EventPayroll, payroll.Event.Kind)
	assert.Equal(t, "01/15", payroll.Event.Date)
	assert.Equal(t, 1000.00, payroll.Total)
	require.Len(t, payroll.Postings, 2)
	assert.Equal(t, models.PostingBuy, payroll.Postings[0].Kind)
	assert.Equal(t, models.PostingBuy, payroll.Postings[1].Kind)

	dividend := info.Groups[1]
	assert.Equal(t, models.EventDividend, dividend.Event.Kind)
	assert.Equal(t, 25.50, dividend.Total)

	assert.Len(t, info.Rows, 3)
	assert.Equal(t, 2, info.Stats.Events)
	assert.Equal(t, 3, info.Stats.Postings)
}

func TestProcessReconciliationFailure(t *testing.T) {
	t.Parallel()

	broken := strings.Replace(sampleStatement, "$400.00", "$399.00", 1)
	info, err := Process(broken, Guideline())

	var rerr *ReconciliationError
	require.ErrorAs(t, err, &rerr)
	assert.Nil(t, info)
	assert.Equal(t, models.EventPayroll, rerr.Kind)
	assert.InDelta(t, 999.00, rerr.Actual, 1e-9)
	assert.Equal(t, 1000.00, rerr.Expected)
}

func TestProcessSellWindowEmitsNothing(t *testing.T) {
	t.Parallel()

	withSell := strings.Replace(sampleStatement,
		"Buy XYZ 2.0 Share Purchase $400.00",
		"Sell XYZ 2.0 Share Sale $400.00", 1)

	info, err := Process(withSell, Guideline())
	require.NoError(t, err)

	// The payroll window is suppressed, the dividend window survives.
	require.Len(t, info.Groups, 1)
	assert.Equal(t, models.EventDividend, info.Groups[0].Event.Kind)
	assert.Equal(t, 1, info.Stats.SellGroups)
}

func TestIdentify(t *testing.T) {
	t.Parallel()

	p := Guideline()
	assert.True(t, p.Identify(sampleStatement))
	assert.False(t, p.Identify("HSBC UK Bank plc\nYour Statement"))
}

func TestReconciliationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ReconciliationError{
		Kind:      models.EventPayroll,
		LineBegin: 4,
		LineEnd:   9,
		Expected:  1000.00,
		Actual:    999.00,
	}
	msg := err.Error()
	assert.Contains(t, msg, "PAYROLL")
	assert.Contains(t, msg, "4-9")
	assert.Contains(t, msg, "999.00")
	assert.Contains(t, msg, "1000.00")
}
