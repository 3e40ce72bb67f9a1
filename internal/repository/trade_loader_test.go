package repository

import (
	"os"
	"path/filepath"
	"testing"
)

const tradesCSV = `trade_id,symbol,direction,date,signal_time,fill_time,exit_time,entry_price,exit_price,quantity,stop_price,gross_pnl,net_pnl,commissions,pnl_pct,r_multiple,mae,mfe,exit_reason
T1,AAPL,LONG,2024-01-16,09:31:00,09:31:05,10:15:00,185.50,187.25,100,184.00,175.00,173.00,2.00,0.94,1.17,-0.35,1.95,target
T2,MSFT,SHORT,2024-01-17,10:02:00,10:02:03,10:44:00,390.00,392.10,50,391.50,-105.00,-107.00,2.00,-0.54,-1.40,-2.10,0.40,stop
`

const tradesJSON = `[
  {"trade_id":"T1","symbol":"AAPL","direction":"LONG","date":"2024-01-16",
   "entry_price":185.5,"exit_price":187.25,"quantity":100,"stop_price":184.0,
   "gross_pnl":175.0,"net_pnl":173.0,"commissions":2.0,"pnl_pct":0.94,
   "r_multiple":1.17,"mae":-0.35,"mfe":1.95,"exit_reason":"target"}
]`

func TestLoadTradesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	if err := os.WriteFile(path, []byte(tradesCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	trades, err := LoadTrades(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 2 {
		t.Fatalf("got %d trades", len(trades))
	}
	if trades[0].Symbol != "AAPL" || trades[0].NetPnL != 173.0 {
		t.Fatalf("first trade wrong: %+v", trades[0])
	}
	if trades[1].Direction != "SHORT" || !trades[0].IsWinner() || trades[1].IsWinner() {
		t.Fatalf("second trade wrong: %+v", trades[1])
	}
}

func TestLoadTradesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.json")
	if err := os.WriteFile(path, []byte(tradesJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	trades, err := LoadTrades(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 1 || trades[0].TradeID != "T1" || trades[0].RMultiple != 1.17 {
		t.Fatalf("got %+v", trades)
	}
}

func TestLoadTradesUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.xlsx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTrades(path); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestLoadTradesMissingFile(t *testing.T) {
	if _, err := LoadTrades(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
