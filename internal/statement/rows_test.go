package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/guideline-converter/internal/models"
)

func TestTabulate(t *testing.T) {
	t.Parallel()

	events := []models.AggregateEvent{
		payrollEvent(0, 1000.00),
		{Line: 3, Kind: models.EventDividend, Date: "02/28", Amount: 25.50},
	}
	postings := []models.Posting{
		buy(1, "ABC", 5.0, 600.00),
		buy(2, "XYZ", 2.0, 400.00),
		{Line: 4, Kind: models.PostingReinvest, Ticker: "ABC", Qty: 0.2, Amount: 25.50},
	}

	rows := Tabulate(events, postings, "2022")
	require.Len(t, rows, 3)

	assert.Equal(t, models.Row{
		Action:   "Buy",
		Date:     "01/15/2022",
		Symbol:   "ABC",
		Quantity: "5",
		Price:    "120",
		Amount:   "600",
	}, rows[0])

	assert.Equal(t, "XYZ", rows[1].Symbol)
	assert.Equal(t, "200", rows[1].Price)

	assert.Equal(t, models.Row{
		Action:   "Reinvest Dividend",
		Date:     "02/28/2022",
		Symbol:   "ABC",
		Quantity: "0.2",
		Price:    "127.5",
		Amount:   "25.5",
	}, rows[2])
}

func TestTabulateFeeColumn(t *testing.T) {
	t.Parallel()

	events := []models.AggregateEvent{
		{Line: 0, Kind: models.EventFee, Date: "03/31", Amount: 12.00},
	}
	postings := []models.Posting{
		{Line: 1, Kind: models.PostingSell, Ticker: "ABC", Qty: 0.5, Amount: 12.00},
	}

	rows := Tabulate(events, postings, "2022")
	require.Len(t, rows, 1)
	assert.Equal(t, "Sell", rows[0].Action)
	assert.Equal(t, "12", rows[0].Fees)
	assert.Empty(t, rows[0].Amount)
}

func TestTabulateNoEvents(t *testing.T) {
	t.Parallel()

	rows := Tabulate(nil, []models.Posting{buy(0, "ABC", 1.0, 1.00)}, "2022")
	assert.Empty(t, rows)
}
