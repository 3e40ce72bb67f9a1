package models

import (
	"math"
	"time"
)

// Bar is one OHLCV sample. Timestamp is canonical tz-naive exchange-local
// time, carried in a UTC-located time.Time by convention (see internal/session).
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// BarSeries is a time-ordered sequence of bars for one symbol. It is built
// fresh per request and discarded after the response is serialized.
type BarSeries []Bar

// Last returns the most recent bar, or false for an empty series.
func (s BarSeries) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// WireBar is the exact JSON shape the charting UI consumes.
type WireBar struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// EncodeWire converts a series to the UI wire format.
//
// Time is the bar's local wall-clock fields counted as if they were UTC
// (no zone conversion). The chart widget renders UTC, so mislabeling local
// time as UTC makes it display local hours. The UI depends on this exact
// transform; do not "fix" it. Since naive timestamps are UTC-located by
// convention, Unix() already yields that count.
func EncodeWire(s BarSeries) []WireBar {
	bars := make([]WireBar, 0, len(s))
	for _, b := range s {
		bars = append(bars, WireBar{
			Time:   b.Timestamp.Unix(),
			Open:   round4(b.Open),
			High:   round4(b.High),
			Low:    round4(b.Low),
			Close:  round4(b.Close),
			Volume: b.Volume,
		})
	}
	return bars
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// Round2 rounds to cents. Used for price-like quote fields and percentages.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quote is a derived last-price snapshot. Never persisted.
type Quote struct {
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"changePct"`
	PrevClose float64 `json:"prevClose"`
	Volume    int64   `json:"volume"`
	Source    string  `json:"source"`
}

// Quote sources.
const (
	QuoteSourceCache = "cache"
	QuoteSourceLive  = "live"
)
