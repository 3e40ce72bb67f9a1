package models

// BarsRequest binds /api/bars query parameters.
type BarsRequest struct {
	Symbol    string `query:"symbol" validate:"required"`
	Start     string `query:"start" validate:"required,datetime=2006-01-02"`
	End       string `query:"end" validate:"required,datetime=2006-01-02"`
	Timeframe string `query:"timeframe" default:"1min"`
}

// QuotesRequest binds /api/quotes and /api/quotes/live query parameters.
// Symbols is a comma-separated list; empty means every cached symbol.
type QuotesRequest struct {
	Symbols string `query:"symbols"`
}

// StateSaveRequest binds the POST /api/state body.
type StateSaveRequest struct {
	Key   string      `json:"key" validate:"required"`
	Value interface{} `json:"value"`
}

// StateDeleteRequest binds the POST /api/state/delete body.
type StateDeleteRequest struct {
	Key string `json:"key" validate:"required"`
}
