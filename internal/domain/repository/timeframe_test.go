package repository

import (
	"testing"
	"time"
)

func TestBucketCanonical(t *testing.T) {
	cases := []struct {
		tf   Timeframe
		want time.Duration
	}{
		{TF1Min, time.Minute},
		{TF5Min, 5 * time.Minute},
		{TF30Min, 30 * time.Minute},
		{TF1Hour, time.Hour},
		{TF4Hour, 4 * time.Hour},
		{TF1Day, 24 * time.Hour},
	}
	for _, c := range cases {
		got, ok := c.tf.Bucket()
		if !ok || got != c.want {
			t.Errorf("Bucket(%s) = %v, %v; want %v", c.tf, got, ok, c.want)
		}
	}
}

func TestBucketPatternFallback(t *testing.T) {
	got, ok := Timeframe("65min").Bucket()
	if !ok || got != 65*time.Minute {
		t.Fatalf("65min: got %v, %v", got, ok)
	}
	got, ok = Timeframe("3hour").Bucket()
	if !ok || got != 3*time.Hour {
		t.Fatalf("3hour: got %v, %v", got, ok)
	}
	got, ok = Timeframe("2day").Bucket()
	if !ok || got != 48*time.Hour {
		t.Fatalf("2day: got %v, %v", got, ok)
	}
}

func TestBucketInvalid(t *testing.T) {
	for _, s := range []string{"", "fast", "min5", "0x5min", "5weeks"} {
		if _, ok := Timeframe(s).Bucket(); ok {
			t.Errorf("Bucket(%q) should not resolve", s)
		}
	}
}

func TestNormalizeTimeframe(t *testing.T) {
	if got := NormalizeTimeframe(""); got != TF1Min {
		t.Fatalf("empty: got %s", got)
	}
	if got := NormalizeTimeframe("15min"); got != TF15Min {
		t.Fatalf("15min: got %s", got)
	}
	if got := NormalizeTimeframe("nonsense"); got != TF1Min {
		t.Fatalf("nonsense: got %s", got)
	}
}
