package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ledgerline/guideline-converter/internal/models"
)

func testStatement() *models.StatementInfo {
	return &models.StatementInfo{
		Account: "3GHQ2-A83JF",
		Year:    "2022",
		Rows: []models.Row{
			{Action: "Buy", Date: "01/15/2022", Symbol: "ABC", Quantity: "5", Price: "120", Amount: "600"},
			{Action: "Sell", Date: "03/31/2022", Symbol: "XYZ", Quantity: "0.5", Price: "24", Fees: "12"},
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, testStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	// Check metadata headers
	if !strings.Contains(output, "# Account,3GHQ2-A83JF") {
		t.Error("expected account metadata header")
	}
	if !strings.Contains(output, "# Statement Year,2022") {
		t.Error("expected statement year metadata")
	}

	// Check column headers
	if !strings.Contains(output, "Action,Date,Description,Symbol,Quantity,Price,Amount,Fees & Comm") {
		t.Error("expected column headers")
	}

	// Check row data
	if !strings.Contains(output, "Buy,01/15/2022,,ABC,5,120,600,") {
		t.Error("expected buy row")
	}
	if !strings.Contains(output, "Sell,03/31/2022,,XYZ,0.5,24,,12") {
		t.Error("expected fee row with amount in fee column")
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 2 metadata lines + 1 header + 2 rows = 5
	if len(lines) != 5 {
		t.Errorf("expected 5 lines, got %d", len(lines))
	}
}

func TestCSVWriter_WriteNoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	if err := w.Write(&buf, testStatement()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()

	if strings.Contains(output, "# Account") {
		t.Error("should not have metadata when header=false")
	}
	if !strings.Contains(output, "Action,Date,Description") {
		t.Error("expected column headers even without metadata")
	}
}
