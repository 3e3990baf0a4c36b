package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ledgerlens-org/ledgerlens/config"
)

// ============================================================================
// HTTP API TESTS
// ============================================================================
// Tests cover:
//   1. Health probe
//   2. CSV upload — parse, roles, analysis, filter modes
//   3. Text analyze — paste flow without a file
//   4. View endpoint — filter + paginate a posted snapshot
//   5. Error envelopes — missing file, empty text, bad JSON
// ============================================================================

const fixtureCSV = `Vendor Name,Document Total,Date,Payment Terms
Acme,"$1,200.00",2024-03-05,Paid
Globex,800,13/02/2024,Pending
Acme,500,2024-11-20,Unpaid
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestUploadCSV(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "purchases.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(fixtureCSV)); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := do(t, s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp analysisResponse
	decode(t, w, &resp)

	if resp.AnalysisID == "" {
		t.Errorf("analysisId missing")
	}
	if len(resp.Rows) != 3 || len(resp.Columns) != 4 {
		t.Errorf("got %d rows, %d columns, want 3 and 4", len(resp.Rows), len(resp.Columns))
	}
	if resp.Roles["vendor"] != "Vendor Name" || resp.Roles["amount"] != "Document Total" {
		t.Errorf("roles not detected: %v", resp.Roles)
	}
	if resp.Analysis.TotalRecords != 3 {
		t.Errorf("totalRecords = %d, want 3", resp.Analysis.TotalRecords)
	}
	if resp.Analysis.TotalSales != 2500 {
		t.Errorf("totalSales = %v, want 2500", resp.Analysis.TotalSales)
	}
	if resp.FilterModes["Vendor Name"] != "substring" {
		t.Errorf("vendor column should be substring-filterable, got %q", resp.FilterModes["Vendor Name"])
	}
	if resp.FilterModes["Payment Terms"] != "exact" {
		t.Errorf("low-cardinality column should be exact, got %q", resp.FilterModes["Payment Terms"])
	}
}

func TestUploadWithoutFile(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	w := do(t, s, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["error"] == "" {
		t.Errorf("error envelope missing: %s", w.Body.String())
	}
}

func TestAnalyzeText(t *testing.T) {
	s := newTestServer(t)

	payload, _ := json.Marshal(map[string]string{"csv": fixtureCSV})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := do(t, s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp analysisResponse
	decode(t, w, &resp)
	if resp.Analysis.TotalRecords != 3 {
		t.Errorf("totalRecords = %d, want 3", resp.Analysis.TotalRecords)
	}
}

func TestAnalyzeTextEmpty(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-text", strings.NewReader(`{"csv":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := do(t, s, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestViewEndpoint(t *testing.T) {
	s := newTestServer(t)

	payload := `{
		"columns": ["Vendor", "Status"],
		"rows": [
			{"Vendor": "Acme", "Status": "Paid"},
			{"Vendor": "Globex", "Status": "Pending"},
			{"Vendor": "Acme", "Status": "Pending"}
		],
		"view": {"exact": {"Vendor": "Acme"}, "sortKey": "Status", "sortDir": "asc", "page": 1, "pageSize": 1}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/view", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := do(t, s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Rows       []map[string]any `json:"rows"`
		TotalCount int              `json:"totalCount"`
	}
	decode(t, w, &resp)
	if resp.TotalCount != 2 {
		t.Errorf("totalCount = %d, want 2", resp.TotalCount)
	}
	if len(resp.Rows) != 1 || resp.Rows[0]["Status"] != "Paid" {
		t.Errorf("page = %v, want the Paid row first", resp.Rows)
	}
}

func TestViewEndpointBadJSON(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/view", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := do(t, s, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
