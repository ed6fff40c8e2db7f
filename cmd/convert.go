package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerline/guideline-converter/internal/config"
	"github.com/ledgerline/guideline-converter/internal/extractor"
	"github.com/ledgerline/guideline-converter/internal/ledger"
	"github.com/ledgerline/guideline-converter/internal/statement"
	"github.com/ledgerline/guideline-converter/internal/writer"
)

var (
	outputFlag    string
	ledgerFlag    bool
	yearFlag      string
	accountFlag   []string
	headerFlag    bool
	toleranceFlag float64
)

var convertCmd = &cobra.Command{
	Use:   "convert <statement.pdf|statement.txt> [more files ...]",
	Short: "Extract and reconcile one or more statement files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if yearFlag != "" {
			cfg.Year = yearFlag
		}
		if len(accountFlag) > 0 {
			cfg.AccountNumbers = accountFlag
		}
		if toleranceFlag > 0 {
			cfg.Tolerance = toleranceFlag
		}

		for _, inputPath := range args {
			if err := convertFile(inputPath, cfg); err != nil {
				return fmt.Errorf("processing %s: %w", inputPath, err)
			}
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&outputFlag, "output", "", "output CSV path (defaults to input filename with .csv extension)")
	convertCmd.Flags().BoolVar(&ledgerFlag, "ledger", false, "also write double-entry ledger text next to the CSV")
	convertCmd.Flags().StringVar(&yearFlag, "year", "", "override the statement year")
	convertCmd.Flags().StringSliceVar(&accountFlag, "account", nil, "accept only these account identifiers")
	convertCmd.Flags().BoolVar(&headerFlag, "header", true, "include account metadata rows in the CSV")
	convertCmd.Flags().Float64Var(&toleranceFlag, "tolerance", 0, "absolute reconciliation tolerance in dollars")
	rootCmd.AddCommand(convertCmd)
}

func convertFile(inputPath string, cfg *config.Config) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	ext := strings.ToLower(filepath.Ext(inputPath))
	if ext != ".pdf" && ext != ".txt" {
		return fmt.Errorf("expected a .pdf or .txt statement, got %q", ext)
	}

	fmt.Printf("Processing: %s\n", inputPath)

	text, err := extractor.ExtractStatement(inputPath)
	if err != nil {
		return fmt.Errorf("text extraction failed: %w", err)
	}

	profile := statement.Guideline()
	profile.AccountNumbers = cfg.AccountNumbers
	profile.Tolerance = cfg.Tolerance
	profile.Year = cfg.Year

	if !profile.Identify(text) {
		return fmt.Errorf("not a Guideline statement")
	}

	info, err := statement.Process(text, profile)
	if err != nil {
		if errors.Is(err, statement.ErrFormatMismatch) {
			return fmt.Errorf("statement not recognized: %w", err)
		}
		return err
	}

	fmt.Printf("  Account: %s  Year: %s\n", info.Account, info.Year)
	fmt.Printf("  Found %d aggregate event(s), %d posting(s), emitted %d reconciled group(s)\n",
		info.Stats.Events, info.Stats.Postings, len(info.Groups))
	if info.Stats.SellGroups > 0 {
		fmt.Printf("  Skipped %d window(s) containing sell postings\n", info.Stats.SellGroups)
	}
	if info.Stats.ExchangeGroups > 0 {
		fmt.Printf("  Skipped %d exchange window(s)\n", info.Stats.ExchangeGroups)
	}
	if info.Stats.OrphanPostings > 0 {
		fmt.Printf("  Warning: %d posting(s) fell outside every event window\n", info.Stats.OrphanPostings)
	}

	outPath := outputFlag
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
	}

	w := &writer.CSVWriter{IncludeHeader: headerFlag}
	if err := w.WriteToFile(outPath, info); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}
	fmt.Printf("  Output: %s\n", outPath)

	if ledgerFlag {
		renderer := &ledger.Renderer{
			Root:       cfg.Ledger.Root,
			Currency:   cfg.Currency,
			FeeAccount: cfg.Ledger.FeeAccount,
		}
		entries, err := renderer.Entries(info)
		if err != nil {
			return fmt.Errorf("ledger rendering failed: %w", err)
		}

		ledgerPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".ledger"
		f, err := os.Create(ledgerPath)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", ledgerPath, err)
		}
		defer f.Close()
		if err := renderer.Render(f, entries); err != nil {
			return fmt.Errorf("ledger write failed: %w", err)
		}
		fmt.Printf("  Ledger: %s (%d entries)\n", ledgerPath, len(entries))
	}

	fmt.Println("  Done.")
	return nil
}
