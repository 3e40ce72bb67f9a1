package models

// TradeRecord is a portable trade-execution record for the review UI.
// Timestamps are ISO 8601 strings so the interchange format stays free of
// timezone concerns; prices are float64 since this is a charting tool.
type TradeRecord struct {
	TradeID   string `json:"trade_id" csv:"trade_id"`
	Symbol    string `json:"symbol" csv:"symbol"`
	Direction string `json:"direction" csv:"direction"` // LONG or SHORT
	Date      string `json:"date" csv:"date"`           // YYYY-MM-DD

	SignalTime string `json:"signal_time,omitempty" csv:"signal_time"`
	FillTime   string `json:"fill_time,omitempty" csv:"fill_time"`
	ExitTime   string `json:"exit_time,omitempty" csv:"exit_time"`

	EntryPrice float64 `json:"entry_price" csv:"entry_price"`
	ExitPrice  float64 `json:"exit_price" csv:"exit_price"`
	Quantity   int     `json:"quantity" csv:"quantity"`
	StopPrice  float64 `json:"stop_price" csv:"stop_price"`

	GrossPnL    float64 `json:"gross_pnl" csv:"gross_pnl"`
	NetPnL      float64 `json:"net_pnl" csv:"net_pnl"`
	Commissions float64 `json:"commissions" csv:"commissions"`
	PnLPct      float64 `json:"pnl_pct" csv:"pnl_pct"`
	RMultiple   float64 `json:"r_multiple" csv:"r_multiple"`

	MAE float64 `json:"mae" csv:"mae"`
	MFE float64 `json:"mfe" csv:"mfe"`

	ExitReason string `json:"exit_reason,omitempty" csv:"exit_reason"`
}

// IsWinner reports whether the trade closed with positive net P&L.
func (t *TradeRecord) IsWinner() bool { return t.NetPnL > 0 }

// TradeSummary aggregates a trade list for the review header panel.
type TradeSummary struct {
	TotalTrades int     `json:"total_trades"`
	Winners     int     `json:"winners"`
	Losers      int     `json:"losers"`
	WinRate     float64 `json:"win_rate"`
	GrossPnL    float64 `json:"gross_pnl"`
	NetPnL      float64 `json:"net_pnl"`
	Commissions float64 `json:"commissions"`
	AvgWin      float64 `json:"avg_win"`
	AvgLoss     float64 `json:"avg_loss"`
}

// Summarize computes summary stats over a trade list.
func Summarize(trades []TradeRecord) TradeSummary {
	s := TradeSummary{TotalTrades: len(trades)}
	var winSum, lossSum float64
	for i := range trades {
		t := &trades[i]
		s.GrossPnL += t.GrossPnL
		s.NetPnL += t.NetPnL
		s.Commissions += t.Commissions
		if t.IsWinner() {
			s.Winners++
			winSum += t.NetPnL
		} else {
			s.Losers++
			lossSum += t.NetPnL
		}
	}
	if s.TotalTrades > 0 {
		s.WinRate = Round2(float64(s.Winners) / float64(s.TotalTrades) * 100)
	}
	if s.Winners > 0 {
		s.AvgWin = Round2(winSum / float64(s.Winners))
	}
	if s.Losers > 0 {
		s.AvgLoss = Round2(lossSum / float64(s.Losers))
	}
	s.GrossPnL = Round2(s.GrossPnL)
	s.NetPnL = Round2(s.NetPnL)
	s.Commissions = Round2(s.Commissions)
	return s
}
