package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"ChartReview/internal/domain/models"
)

// LoadTrades reads trade records from a CSV or JSON interchange file,
// dispatching on the extension.
func LoadTrades(path string) ([]models.TradeRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trades file: %w", err)
	}

	var trades []models.TradeRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		if err := gocsv.UnmarshalBytes(b, &trades); err != nil {
			return nil, fmt.Errorf("parse trades csv: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &trades); err != nil {
			return nil, fmt.Errorf("parse trades json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported trades format %q", filepath.Ext(path))
	}
	return trades, nil
}
