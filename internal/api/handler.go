package api

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ledgerline/guideline-converter/internal/config"
	"github.com/ledgerline/guideline-converter/internal/extractor"
	"github.com/ledgerline/guideline-converter/internal/ledger"
	"github.com/ledgerline/guideline-converter/internal/models"
	"github.com/ledgerline/guideline-converter/internal/statement"
	"github.com/ledgerline/guideline-converter/internal/writer"
)

const version = "1.0.0"

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success bool                     `json:"success"`
	Error   string                   `json:"error,omitempty"`
	Account string                   `json:"account,omitempty"`
	Year    string                   `json:"year,omitempty"`
	Groups  []models.ReconciledGroup `json:"groups"`
	Rows    []models.Row             `json:"rows"`
	Stats   models.Stats             `json:"stats"`
	CSV     string                   `json:"csv,omitempty"`
	Ledger  string                   `json:"ledger,omitempty"`
	Count   int                      `json:"count"`
	Version string                   `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Config *config.Config
}

// Register sets up the API routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	app.Post("/api/convert", h.Convert)
}

// Health reports service liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// Convert accepts a multipart upload (form field "file", a .pdf or .txt
// statement export) and returns the reconciled groups, the tabular rows
// and the rendered CSV and ledger text.
func (h *Handler) Convert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" && ext != ".txt" {
		return writeError(c, fiber.StatusBadRequest, "Only PDF and plain-text statement exports are supported.")
	}

	tmpFile, err := os.CreateTemp("", "statement-*"+ext)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	text, err := extractor.ExtractStatement(tmpPath)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Text extraction failed: %v", err))
	}

	cfg := h.Config
	if cfg == nil {
		cfg = config.Default()
	}

	profile := statement.Guideline()
	profile.AccountNumbers = cfg.AccountNumbers
	profile.Tolerance = cfg.Tolerance
	if y := c.FormValue("year"); y != "" {
		profile.Year = y
	} else {
		profile.Year = cfg.Year
	}

	if !profile.Identify(text) {
		return writeError(c, fiber.StatusUnprocessableEntity, "Not a Guideline statement.")
	}

	info, err := statement.Process(text, profile)
	if err != nil {
		var rerr *statement.ReconciliationError
		switch {
		case errors.As(err, &rerr):
			return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Reconciliation failed: %v", rerr))
		case errors.Is(err, statement.ErrAmbiguousAccount),
			errors.Is(err, statement.ErrFormatMismatch):
			return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	includeHeader := c.FormValue("header") != "false"
	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{IncludeHeader: includeHeader}
	if err := csvWriter.Write(&csvBuf, info); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	renderer := &ledger.Renderer{
		Root:       cfg.Ledger.Root,
		Currency:   cfg.Currency,
		FeeAccount: cfg.Ledger.FeeAccount,
	}
	var ledgerBuf bytes.Buffer
	entries, err := renderer.Entries(info)
	if err == nil {
		err = renderer.Render(&ledgerBuf, entries)
	}
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("Ledger rendering failed: %v", err))
	}

	// nil slices marshal to JSON null, not []
	groups := info.Groups
	if groups == nil {
		groups = []models.ReconciledGroup{}
	}
	rows := info.Rows
	if rows == nil {
		rows = []models.Row{}
	}

	return c.JSON(ConvertResponse{
		Success: true,
		Account: info.Account,
		Year:    info.Year,
		Groups:  groups,
		Rows:    rows,
		Stats:   info.Stats,
		CSV:     csvBuf.String(),
		Ledger:  ledgerBuf.String(),
		Count:   len(groups),
		Version: version,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
		Groups:  []models.ReconciledGroup{},
		Rows:    []models.Row{},
	})
}
