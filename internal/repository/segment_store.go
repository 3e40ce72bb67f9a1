package repository

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"ChartReview/internal/calendar"
	"ChartReview/internal/domain/models"
	domainrepo "ChartReview/internal/domain/repository"
	"ChartReview/internal/session"
	xlogger "ChartReview/pkg/logger"
)

const (
	dateLayout       = "2006-01-02"
	segmentPrefix    = "1min_"
	segmentExtension = ".parquet"
)

// segmentRow matches the column layout of cache segment files.
type segmentRow struct {
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"`
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    int64   `parquet:"volume"`
}

// SegmentStore reads 1-minute bar segments from a directory-per-symbol cache.
// Layout: <root>/<SYMBOL>/1min_<start>_<end>.parquet, where the filename
// dates declare the segment's covered interval.
type SegmentStore struct {
	root    string
	logger  *xlogger.Logger
	metrics domainrepo.Metrics
}

// NewSegmentStore creates a store rooted at dir. An empty root is valid and
// behaves as an always-empty cache. metrics may be nil.
func NewSegmentStore(root string, logger *xlogger.Logger, metrics domainrepo.Metrics) *SegmentStore {
	return &SegmentStore{root: root, logger: logger, metrics: metrics}
}

// LoadRange loads cached bars for [start, end] (calendar dates, closed
// range). Segments qualify by interval overlap with the request, are
// normalized per segment, then concatenated, sorted, deduplicated, trimmed,
// and passed through the session and trading-day filters.
//
// A missing symbol directory or empty selection returns an empty series;
// unreadable or misnamed segment files are skipped.
func (s *SegmentStore) LoadRange(ctx context.Context, symbol string, start, end time.Time) models.BarSeries {
	if s.root == "" {
		return nil
	}
	dir := filepath.Join(s.root, strings.ToUpper(symbol))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	startStr := start.Format(dateLayout)
	endStr := end.Format(dateLayout)

	var series models.BarSeries
	segmentsRead := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			return nil
		}
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, segmentPrefix) || !strings.HasSuffix(name, segmentExtension) {
			continue
		}
		parts := strings.Split(strings.TrimSuffix(name, segmentExtension), "_")
		if len(parts) < 3 {
			continue
		}
		fileStart, fileEnd := parts[1], parts[2]
		// Overlap test, not containment. ISO dates compare lexically.
		if fileEnd < startStr || fileStart > endStr {
			continue
		}
		rows, err := parquet.ReadFile[segmentRow](filepath.Join(dir, name))
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("skipping unreadable segment",
					xlogger.String("symbol", symbol),
					xlogger.String("file", name),
					xlogger.Error(err),
				)
			}
			continue
		}
		segmentsRead++
		// Normalize per segment, before merging: segments may have been
		// written under different source zones over time.
		for _, r := range rows {
			series = append(series, models.Bar{
				Timestamp: session.NormalizeNaive(time.UnixMilli(r.Timestamp).UTC()),
				Open:      r.Open,
				High:      r.High,
				Low:       r.Low,
				Close:     r.Close,
				Volume:    r.Volume,
			})
		}
	}
	if s.metrics != nil && segmentsRead > 0 {
		s.metrics.RecordSegmentsRead(segmentsRead)
	}
	if len(series) == 0 {
		return nil
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})
	series = dedupe(series)
	series = trim(series, start, end)
	series = session.FilterSession(series)
	return calendar.FilterTradingDays(series)
}

// ListSymbols returns the sorted symbols that have at least one cached
// segment under the root.
func (s *SegmentStore) ListSymbols() []string {
	if s.root == "" {
		return nil
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	var symbols []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(s.root, e.Name(), segmentPrefix+"*"+segmentExtension))
		if err == nil && len(matches) > 0 {
			symbols = append(symbols, e.Name())
		}
	}
	sort.Strings(symbols)
	return symbols
}

// dedupe drops rows sharing an exact timestamp, keeping the first.
// Input must be sorted.
func dedupe(s models.BarSeries) models.BarSeries {
	out := s[:0]
	for i, b := range s {
		if i > 0 && b.Timestamp.Equal(out[len(out)-1].Timestamp) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// trim keeps rows inside [start 00:00:00, end 23:59:59]. Segment rows may
// slightly exceed the interval the filename declares.
func trim(s models.BarSeries, start, end time.Time) models.BarSeries {
	lo := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	hi := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.UTC)
	out := s[:0]
	for _, b := range s {
		if b.Timestamp.Before(lo) || b.Timestamp.After(hi) {
			continue
		}
		out = append(out, b)
	}
	return out
}
