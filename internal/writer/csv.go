package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ledgerline/guideline-converter/internal/models"
)

// CSVWriter writes the tabular projection of a statement to CSV.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement rows to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, info *models.StatementInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, info)
}

// Write writes the statement rows in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, info *models.StatementInfo) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	// Metadata as comment rows
	if w.IncludeHeader {
		if info.Account != "" {
			writer.Write([]string{"# Account", info.Account})
		}
		if info.Year != "" {
			writer.Write([]string{"# Statement Year", info.Year})
		}
	}

	header := []string{"Action", "Date", "Description", "Symbol", "Quantity", "Price", "Amount", "Fees & Comm"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range info.Rows {
		record := []string{
			row.Action,
			row.Date,
			row.Description,
			row.Symbol,
			row.Quantity,
			row.Price,
			row.Amount,
			row.Fees,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
