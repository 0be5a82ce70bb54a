package data

import (
	"encoding/json"
	"fmt"
	"os"

	"battery-arbitrage/internal/model"
)

func parsePriceJSON(raw []byte) ([]model.PricePoint, error) {
	var points []model.PricePoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return points, nil
}

// WritePriceJSON stores points in the format ReadPriceFile reads back.
func WritePriceJSON(path string, points []model.PricePoint) error {
	raw, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
