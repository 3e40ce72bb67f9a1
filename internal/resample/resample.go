// Package resample aggregates 1-minute bars into coarser timeframes.
package resample

import (
	"ChartReview/internal/domain/models"
	"ChartReview/internal/domain/repository"
)

// Aggregate resamples a 1-minute series into tf buckets. Buckets are aligned
// to calendar boundaries, left-closed and left-labeled:
//
//	open   = first open in bucket
//	high   = max high
//	low    = min low
//	close  = last close
//	volume = sum of volumes
//
// Buckets with no contributing rows are dropped, so output length depends on
// the data, not the calendar. "1min" is a passthrough. An unparseable
// timeframe yields an empty series.
func Aggregate(s models.BarSeries, tf repository.Timeframe) models.BarSeries {
	if tf == repository.TF1Min {
		return s
	}
	width, ok := tf.Bucket()
	if !ok {
		return nil
	}
	if len(s) == 0 {
		return nil
	}

	out := make(models.BarSeries, 0, len(s))
	var cur models.Bar
	var open bool
	for _, b := range s {
		label := b.Timestamp.Truncate(width)
		if !open || !label.Equal(cur.Timestamp) {
			if open {
				out = append(out, cur)
			}
			cur = models.Bar{
				Timestamp: label,
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
				Volume:    b.Volume,
			}
			open = true
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	if open {
		out = append(out, cur)
	}
	return out
}
