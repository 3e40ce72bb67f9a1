package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"ChartReview/internal/domain/models"
	internalrepo "ChartReview/internal/repository"
	"ChartReview/internal/usecase"
)

type stubStore struct {
	series  map[string]models.BarSeries
	symbols []string
}

func (s *stubStore) LoadRange(_ context.Context, symbol string, start, end time.Time) models.BarSeries {
	return s.series[symbol]
}

func (s *stubStore) ListSymbols() []string { return s.symbols }

func testHandler(t *testing.T, trades []models.TradeRecord) (*ChartHandler, *echo.Echo) {
	t.Helper()
	store := &stubStore{
		series: map[string]models.BarSeries{
			"AAPL": {{
				Timestamp: time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC),
				Open:      100, High: 101, Low: 99, Close: 100.5,
				Volume: 1000,
			}},
		},
		symbols: []string{"AAPL"},
	}
	bars := usecase.NewBarsUseCase(store, nil, nil, nil)
	quotes := usecase.NewQuotesUseCase(store, nil, nil)
	review := usecase.NewReviewUseCase(trades, bars, nil)
	state := internalrepo.NewFileStateStore(t.TempDir())

	h := NewChartHandler(bars, quotes, review, state, t.TempDir(), nil)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func request(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBarsEndpoint(t *testing.T) {
	_, e := testHandler(t, nil)
	rec := request(e, http.MethodGet, "/api/bars?symbol=AAPL&start=2024-01-16&end=2024-01-16", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var bars []models.WireBar
	if err := json.Unmarshal(rec.Body.Bytes(), &bars); err != nil {
		t.Fatal(err)
	}
	if len(bars) != 1 || bars[0].Close != 100.5 {
		t.Fatalf("got %+v", bars)
	}
}

func TestBarsMissingParams(t *testing.T) {
	_, e := testHandler(t, nil)
	rec := request(e, http.MethodGet, "/api/bars?symbol=AAPL", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] == "" {
		t.Fatalf("expected flat error object, got %s", rec.Body.String())
	}
}

func TestBarsEmptyRangeIsArray(t *testing.T) {
	_, e := testHandler(t, nil)
	rec := request(e, http.MethodGet, "/api/bars?symbol=NOPE&start=2024-01-16&end=2024-01-16", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}

func TestSymbolsEndpoint(t *testing.T) {
	_, e := testHandler(t, nil)
	rec := request(e, http.MethodGet, "/api/symbols", "")
	var symbols []string
	if err := json.Unmarshal(rec.Body.Bytes(), &symbols); err != nil {
		t.Fatal(err)
	}
	if len(symbols) != 1 || symbols[0] != "AAPL" {
		t.Fatalf("got %v", symbols)
	}
}

func TestUnknownAPIRouteIsEmptyObject(t *testing.T) {
	_, e := testHandler(t, nil)
	rec := request(e, http.MethodGet, "/api/definitely/not/a/route", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "{}" {
		t.Fatalf("expected {}, got %s", got)
	}
}

func TestRedirectPrefersTrades(t *testing.T) {
	_, e := testHandler(t, []models.TradeRecord{{TradeID: "T1", Symbol: "AAPL", Date: "2024-01-16"}})
	rec := request(e, http.MethodGet, "/", "")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/trades" {
		t.Fatalf("status %d location %q", rec.Code, rec.Header().Get("Location"))
	}

	_, e = testHandler(t, nil)
	rec = request(e, http.MethodGet, "/", "")
	if rec.Header().Get("Location") != "/market" {
		t.Fatalf("location %q", rec.Header().Get("Location"))
	}
}

func TestTradesEndpoints(t *testing.T) {
	trades := []models.TradeRecord{
		{TradeID: "T1", Symbol: "AAPL", Date: "2024-01-16", NetPnL: 100},
		{TradeID: "T2", Symbol: "AAPL", Date: "2024-01-17", NetPnL: -20},
	}
	_, e := testHandler(t, trades)

	rec := request(e, http.MethodGet, "/api/trades", "")
	var got []models.TradeRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].TradeID != "T1" {
		t.Fatalf("got %+v", got)
	}

	rec = request(e, http.MethodGet, "/api/trades/summary", "")
	var summary models.TradeSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.TotalTrades != 2 || summary.Winners != 1 {
		t.Fatalf("summary %+v", summary)
	}

	rec = request(e, http.MethodGet, "/api/trades/bars/2024-01-16", "")
	var bars []models.WireBar
	if err := json.Unmarshal(rec.Body.Bytes(), &bars); err != nil {
		t.Fatal(err)
	}
	if len(bars) != 1 {
		t.Fatalf("bars %+v", bars)
	}
}

func TestStateRoundtrip(t *testing.T) {
	_, e := testHandler(t, nil)

	rec := request(e, http.MethodPost, "/api/state", `{"key":"watchlist","value":["AAPL"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status %d: %s", rec.Code, rec.Body.String())
	}

	rec = request(e, http.MethodGet, "/api/state?key=watchlist", "")
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["key"] != "watchlist" {
		t.Fatalf("got %v", body)
	}
	list, _ := body["value"].([]interface{})
	if len(list) != 1 || list[0] != "AAPL" {
		t.Fatalf("value %v", body["value"])
	}

	rec = request(e, http.MethodPost, "/api/state/delete", `{"key":"watchlist"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status %d", rec.Code)
	}

	rec = request(e, http.MethodGet, "/api/state?key=watchlist", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["value"] != nil {
		t.Fatalf("deleted key should load as null, got %v", body["value"])
	}
}

func TestStateSaveMissingKey(t *testing.T) {
	_, e := testHandler(t, nil)
	rec := request(e, http.MethodPost, "/api/state", `{"value":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestMarketPageSplicesTemplateParts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "market.html"), []byte("<script>{{LIB_JS}}</script><style>{{SHARED_CSS}}</style>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lightweight-charts.js"), []byte("var chart=1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	bars := usecase.NewBarsUseCase(&stubStore{}, nil, nil, nil)
	quotes := usecase.NewQuotesUseCase(&stubStore{}, nil, nil)
	h := NewChartHandler(bars, quotes, nil, internalrepo.NewFileStateStore(t.TempDir()), dir, nil)
	e := echo.New()
	h.RegisterRoutes(e)

	rec := request(e, http.MethodGet, "/market", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "var chart=1;") {
		t.Fatalf("library not spliced: %s", body)
	}
	if strings.Contains(body, "{{SHARED_CSS}}") {
		t.Fatalf("missing parts must substitute as empty: %s", body)
	}
}
