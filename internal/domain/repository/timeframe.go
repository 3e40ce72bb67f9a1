package repository

import (
	"regexp"
	"strconv"
	"time"
)

// Timeframe is a requested aggregation granularity.
type Timeframe string

// Canonical timeframes supported without the pattern fallback.
const (
	TF1Min  Timeframe = "1min"
	TF2Min  Timeframe = "2min"
	TF3Min  Timeframe = "3min"
	TF5Min  Timeframe = "5min"
	TF10Min Timeframe = "10min"
	TF15Min Timeframe = "15min"
	TF30Min Timeframe = "30min"
	TF1Hour Timeframe = "1hour"
	TF2Hour Timeframe = "2hour"
	TF4Hour Timeframe = "4hour"
	TF1Day  Timeframe = "1day"
)

var bucketByTimeframe = map[Timeframe]time.Duration{
	TF1Min:  time.Minute,
	TF2Min:  2 * time.Minute,
	TF3Min:  3 * time.Minute,
	TF5Min:  5 * time.Minute,
	TF10Min: 10 * time.Minute,
	TF15Min: 15 * time.Minute,
	TF30Min: 30 * time.Minute,
	TF1Hour: time.Hour,
	TF2Hour: 2 * time.Hour,
	TF4Hour: 4 * time.Hour,
	TF1Day:  24 * time.Hour,
}

// Free-form fallback for multiples outside the canonical set, e.g. "65min".
var timeframePattern = regexp.MustCompile(`^(\d+)(min|hour|day)$`)

// Bucket returns the aggregation bucket width for tf. The canonical set is
// resolved by lookup; anything else goes through the "<N>(min|hour|day)"
// pattern. Returns false for strings matching neither.
func (tf Timeframe) Bucket() (time.Duration, bool) {
	if d, ok := bucketByTimeframe[tf]; ok {
		return d, true
	}
	m := timeframePattern.FindStringSubmatch(string(tf))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	switch m[2] {
	case "min":
		return time.Duration(n) * time.Minute, true
	case "hour":
		return time.Duration(n) * time.Hour, true
	default:
		return time.Duration(n) * 24 * time.Hour, true
	}
}

// IsValid reports whether tf resolves to a bucket width.
func IsValid(tf Timeframe) bool {
	_, ok := tf.Bucket()
	return ok
}

// DefaultTimeframe returns the default timeframe.
func DefaultTimeframe() Timeframe { return TF1Min }

// NormalizeTimeframe converts a raw string to a valid timeframe (or default).
func NormalizeTimeframe(s string) Timeframe {
	if s == "" {
		return DefaultTimeframe()
	}
	tf := Timeframe(s)
	if IsValid(tf) {
		return tf
	}
	return DefaultTimeframe()
}
