package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

const sampleStatement = `Administrator: Guideline
Quarterly Statement Q4 2022
3GHQ2-A83JF
DATE ACTION SOURCE PRE-TAX ROTH EMPLOYER TOTAL
01/15 Buy Payroll Contribution $1,000.00
Buy ABC 5.0 Share Purchase $600.00
Buy XYZ 2.0 Share Purchase $400.00
`

func setupTestApp() *fiber.App {
	app := fiber.New()
	h := &Handler{}
	h.Register(app)
	return app
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}
	if result["engine"] != "fiber" {
		t.Errorf("expected engine=fiber, got %q", result["engine"])
	}
}

func TestConvertEndpointRequiresFile(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("POST", "/api/convert", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode == fiber.StatusOK {
		t.Error("expected non-200 for missing file")
	}
}

func TestConvertEndpointRejectsUnknownExtension(t *testing.T) {
	app := setupTestApp()

	body, contentType := multipartBody(t, "statement.docx", "irrelevant")
	req := httptest.NewRequest("POST", "/api/convert", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestConvertEndpointTextStatement(t *testing.T) {
	app := setupTestApp()

	body, contentType := multipartBody(t, "statement.txt", sampleStatement)
	req := httptest.NewRequest("POST", "/api/convert", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, raw)
	}

	var result ConvertResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Account != "3GHQ2-A83JF" {
		t.Errorf("expected account, got %q", result.Account)
	}
	if result.Count != 1 {
		t.Errorf("expected 1 group, got %d", result.Count)
	}
	if len(result.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.CSV == "" {
		t.Error("expected CSV output")
	}
	if result.Ledger == "" {
		t.Error("expected ledger output")
	}
}

func TestConvertEndpointRejectsForeignStatement(t *testing.T) {
	app := setupTestApp()

	body, contentType := multipartBody(t, "statement.txt",
		"HSBC UK Bank plc\nYour Statement\nstatement account balance and more text to pass readability checks here")
	req := httptest.NewRequest("POST", "/api/convert", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", resp.StatusCode)
	}
}
