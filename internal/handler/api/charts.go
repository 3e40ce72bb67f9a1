// Package api exposes the chart server's HTTP surface. API responses are
// raw JSON shapes (arrays and plain objects, no envelope) because the
// charting UI consumes them directly.
package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"ChartReview/internal/domain/models"
	"ChartReview/internal/domain/repository"
	"ChartReview/internal/usecase"
	xhttp "ChartReview/pkg/http"
	xlogger "ChartReview/pkg/logger"
	xutil "ChartReview/pkg/util"
)

// ChartHandler serves pages and the JSON API for the chart viewer and the
// trade review UI.
type ChartHandler struct {
	bars      *usecase.BarsUseCase
	quotes    *usecase.QuotesUseCase
	review    *usecase.ReviewUseCase
	state     repository.StateStore
	templates string
	logger    *xlogger.Logger
}

// NewChartHandler builds the handler. review may serve an empty trade log;
// templates is the directory holding the HTML shells.
func NewChartHandler(
	bars *usecase.BarsUseCase,
	quotes *usecase.QuotesUseCase,
	review *usecase.ReviewUseCase,
	state repository.StateStore,
	templates string,
	logger *xlogger.Logger,
) *ChartHandler {
	return &ChartHandler{
		bars:      bars,
		quotes:    quotes,
		review:    review,
		state:     state,
		templates: templates,
		logger:    logger,
	}
}

// RegisterRoutes wires all chart server routes.
func (h *ChartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Redirect)
	e.GET("/index.html", h.Redirect)
	e.GET("/market", h.MarketPage)
	e.GET("/trades", h.TradesPage)

	e.GET("/api/symbols", h.Symbols)
	e.GET("/api/bars", h.Bars)
	e.GET("/api/quotes", h.Quotes)
	e.GET("/api/quotes/live", h.LiveQuotes)

	e.GET("/api/trades", h.Trades)
	e.GET("/api/trades/summary", h.TradesSummary)
	e.GET("/api/trades/bars/:date", h.TradeBars)

	e.GET("/api/state", h.StateLoad)
	e.GET("/api/state/all", h.StateLoadAll)
	e.POST("/api/state", h.StateSave)
	e.POST("/api/state/delete", h.StateDelete)

	// Unknown API routes answer an empty object instead of 404 so UI
	// feature probes stay quiet.
	e.Any("/api/*", h.UnknownAPI)
}

// Redirect sends the root to the trade review when trades are loaded,
// otherwise to the market viewer.
func (h *ChartHandler) Redirect(c echo.Context) error {
	target := "/market"
	if h.review != nil && len(h.review.Trades()) > 0 {
		target = "/trades"
	}
	return c.Redirect(http.StatusFound, target)
}

// MarketPage serves the asset chart viewer shell.
func (h *ChartHandler) MarketPage(c echo.Context) error {
	html, err := h.loadTemplate("market.html")
	if err != nil {
		return xhttp.NotFoundError("market template not found").WithError(err)
	}
	return c.HTML(http.StatusOK, html)
}

// TradesPage serves the trade review shell with the trade log, summary, and
// memoized per-date bars inlined for server-backed mode.
func (h *ChartHandler) TradesPage(c echo.Context) error {
	html, err := h.loadTemplate("trades.html")
	if err != nil {
		return xhttp.NotFoundError("trades template not found").WithError(err)
	}
	if h.review != nil {
		html = injectJSON(html, "__TRADES_INLINE__", h.review.Trades())
		html = injectJSON(html, "__SUMMARY_INLINE__", h.review.Summary())
	}
	return c.HTML(http.StatusOK, html)
}

// Symbols answers the cached symbol list as a plain array.
func (h *ChartHandler) Symbols(c echo.Context) error {
	symbols := h.bars.Symbols()
	if symbols == nil {
		symbols = []string{}
	}
	return xhttp.JSON(c, symbols)
}

// Bars answers OHLCV bars for one symbol and date range.
func (h *ChartHandler) Bars(c echo.Context) error {
	req := new(models.BarsRequest)
	if verrs := xhttp.ReadAndValidateRequest(c, req); verrs != nil {
		return xhttp.ValidationErrorResponse(c, verrs)
	}

	start, err := xutil.ParseDate(req.Start)
	if err != nil {
		return xhttp.BadRequestResponse(c, "invalid start date")
	}
	end, err := xutil.ParseDate(req.End)
	if err != nil {
		return xhttp.BadRequestResponse(c, "invalid end date")
	}

	tf := repository.NormalizeTimeframe(req.Timeframe)
	bars := h.bars.Fetch(c.Request().Context(), req.Symbol, start, end, tf)
	return xhttp.JSON(c, bars)
}

// Quotes answers cache-derived quotes keyed by symbol. An empty symbols
// parameter means every cached symbol.
func (h *ChartHandler) Quotes(c echo.Context) error {
	return xhttp.JSON(c, h.quotes.Quotes(c.Request().Context(), h.requestedSymbols(c)))
}

// LiveQuotes answers provider quotes keyed by symbol.
func (h *ChartHandler) LiveQuotes(c echo.Context) error {
	return xhttp.JSON(c, h.quotes.LiveQuotes(c.Request().Context(), h.requestedSymbols(c)))
}

func (h *ChartHandler) requestedSymbols(c echo.Context) []string {
	raw := c.QueryParam("symbols")
	if strings.TrimSpace(raw) == "" {
		return h.bars.Symbols()
	}
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, strings.ToUpper(s))
		}
	}
	return symbols
}

// Trades answers the loaded trade log.
func (h *ChartHandler) Trades(c echo.Context) error {
	if h.review == nil {
		return xhttp.JSON(c, []models.TradeRecord{})
	}
	return xhttp.JSON(c, h.review.Trades())
}

// TradesSummary answers aggregate stats over the trade log.
func (h *ChartHandler) TradesSummary(c echo.Context) error {
	if h.review == nil {
		return xhttp.JSON(c, map[string]interface{}{})
	}
	return xhttp.JSON(c, h.review.Summary())
}

// TradeBars answers review-resolution bars for one trade date.
func (h *ChartHandler) TradeBars(c echo.Context) error {
	if h.review == nil {
		return xhttp.JSON(c, []models.WireBar{})
	}
	return xhttp.JSON(c, h.review.BarsForDate(c.Request().Context(), c.Param("date")))
}

// StateLoad answers one UI state key.
func (h *ChartHandler) StateLoad(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		return xhttp.BadRequestResponse(c, "Missing key")
	}
	value, _ := h.state.Load(key)
	return xhttp.JSON(c, map[string]interface{}{"key": key, "value": value})
}

// StateLoadAll answers every stored UI state key.
func (h *ChartHandler) StateLoadAll(c echo.Context) error {
	return xhttp.JSON(c, h.state.LoadAll())
}

// StateSave persists one UI state key.
func (h *ChartHandler) StateSave(c echo.Context) error {
	req := new(models.StateSaveRequest)
	if verrs := xhttp.ReadAndValidateRequest(c, req); verrs != nil {
		return xhttp.ValidationErrorResponse(c, verrs)
	}
	if err := h.state.Save(req.Key, req.Value); err != nil {
		if h.logger != nil {
			h.logger.Error("state save failed", xlogger.String("key", req.Key), xlogger.Error(err))
		}
		return c.JSON(http.StatusInternalServerError, map[string]bool{"ok": false})
	}
	return xhttp.JSON(c, map[string]bool{"ok": true})
}

// StateDelete removes one UI state key.
func (h *ChartHandler) StateDelete(c echo.Context) error {
	req := new(models.StateDeleteRequest)
	if verrs := xhttp.ReadAndValidateRequest(c, req); verrs != nil {
		return xhttp.ValidationErrorResponse(c, verrs)
	}
	if err := h.state.Delete(req.Key); err != nil {
		return xhttp.JSON(c, map[string]bool{"ok": false})
	}
	return xhttp.JSON(c, map[string]bool{"ok": true})
}

// UnknownAPI answers unmatched API paths with an empty object.
func (h *ChartHandler) UnknownAPI(c echo.Context) error {
	return xhttp.JSON(c, map[string]interface{}{})
}

// templateParts maps placeholder names to the shared files spliced into
// each page shell.
var templateParts = map[string]string{
	"{{LIB_JS}}":               "lightweight-charts.js",
	"{{SHARED_CSS}}":           "_shared.css",
	"{{SHARED_INDICATORS_JS}}": "_indicators.js",
	"{{DRAWING_CSS}}":          "_drawing.css",
	"{{DRAWING_JS}}":           "_drawing.js",
}

// loadTemplate reads a page shell and splices in the shared vendored
// library, CSS, and scripts. Missing parts substitute as empty so a bare
// templates directory still renders.
func (h *ChartHandler) loadTemplate(name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(h.templates, name))
	if err != nil {
		return "", err
	}
	html := string(b)
	for placeholder, file := range templateParts {
		part, err := os.ReadFile(filepath.Join(h.templates, file))
		if err != nil {
			html = strings.ReplaceAll(html, placeholder, "")
			continue
		}
		html = strings.ReplaceAll(html, placeholder, string(part))
	}
	return html, nil
}

// injectJSON replaces a "var NAME = null;" marker with serialized data.
func injectJSON(html, marker string, data interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return html
	}
	return strings.Replace(html,
		"var "+marker+" = null;",
		"var "+marker+" = "+string(b)+";",
		1)
}
