// Package extractor turns a statement file into line-oriented plain text.
// The segmentation engine only ever sees the text this package produces.
package extractor

import (
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractStatement reads a statement file and returns its text. Plain-text
// exports (.txt) are read as-is; PDFs go through structured extraction with
// a pdftotext fallback. Garbage output is never returned: every method's
// result is checked for readability before being accepted.
func ExtractStatement(filePath string) (string, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".txt") {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read text statement: %w", err)
		}
		return string(data), nil
	}

	text, libErr := extractWithLibrary(filePath)
	if libErr == nil && isReadableText(text) {
		return text, nil
	}

	text, popplerErr := extractWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(text) {
		return text, nil
	}

	if libErr != nil {
		return "", fmt.Errorf("PDF text extraction failed: %v; the file may be image-based or use custom font encodings", libErr)
	}
	return "", fmt.Errorf("no readable text could be extracted from %s", filepath.Base(filePath))
}

// extractWithLibrary uses the ledongthuc/pdf library, preferring row-based
// extraction and falling back to coordinate-based row reconstruction.
func extractWithLibrary(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return "", openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	text = extractByRow(r, numPages)
	if isReadableText(text) {
		return text, nil
	}

	text = extractByContent(r, numPages)
	return text, nil
}

// extractByRow joins the words of each text row, page after page.
func extractByRow(r *pdf.Reader, numPages int) string {
	var lines []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// extractByContent reconstructs rows from raw text objects: group by Y
// coordinate, order by X within a row, top of page first.
func extractByContent(r *pdf.Reader, numPages int) string {
	var lines []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type textItem struct {
			x float64
			s string
		}
		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		// PDF Y runs bottom-to-top.
		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

			var parts []string
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					parts = append(parts, " ")
				}
				parts = append(parts, item.s)
				prevX = item.x
			}
			line := strings.TrimSpace(strings.Join(parts, ""))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// extractWithPdftotext shells out to poppler-utils as a last resort.
func extractWithPdftotext(filePath string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %v", err)
	}
	out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %v", err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("pdftotext produced no output")
	}
	return text, nil
}

// commonWords appear in virtually every retirement-account statement. If
// the extracted text contains none of them, it is likely garbage from an
// identity-encoded font.
var commonWords = []string{
	"statement", "account", "balance", "contribution", "payroll",
	"dividend", "reinvest", "buy", "sell", "exchange", "total",
	"quarterly", "administrator", "guideline", "plan", "date",
}

func containsCommonWords(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of basic readable ASCII characters to all
// characters. Strict ASCII on purpose: unicode.IsLetter matches the
// accented garbage that identity-encoded fonts produce.
func textQuality(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(`.,-/:;()'"$%&@#!?+=*|`, r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// isReadableText requires enough text, mostly-ASCII content and at least
// one recognizable statement word.
func isReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	return containsCommonWords(text)
}
