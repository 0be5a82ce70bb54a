package data

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"battery-arbitrage/internal/model"
)

// TimestampLayout is the day-first timestamp format of the exchange CSV exports.
const TimestampLayout = "02.01.2006 15:04"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadPriceFile loads one price file. ".json" files hold an array of
// {timestamp, price} objects; anything else is read as a ';' separated CSV.
// Points are returned in loc, sorted by timestamp.
func ReadPriceFile(path string, loc *time.Location) ([]model.PricePoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}

	var points []model.PricePoint
	if strings.EqualFold(filepath.Ext(path), ".json") {
		points, err = parsePriceJSON(raw)
		// Stored offsets differ across a DST change; the day grouping needs one zone.
		for i := range points {
			points[i].Timestamp = points[i].Timestamp.In(loc)
		}
	} else {
		points, err = ParsePriceCSV(decodeText(raw), loc)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	sortPoints(points)
	return points, nil
}

// decodeText returns raw as UTF-8. Exports are frequently Windows-1252, so
// anything that is not valid UTF-8 is decoded as that. The decoder maps every
// byte, which makes it a superset of ISO-8859-1 for the printable range.
func decodeText(raw []byte) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw)
	}
	out, _ := charmap.Windows1252.NewDecoder().Bytes(raw)
	return string(out)
}

// ParsePriceCSV parses a ';' separated export with a header row. Files with
// fewer than three columns yield no points. Rows with an unparsable
// timestamp or price are dropped.
func ParsePriceCSV(text string, loc *time.Location) ([]model.PricePoint, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 || len(records[0]) < 3 {
		return nil, nil
	}

	dateCol, priceCol := detectColumns(records[0])
	out := make([]model.PricePoint, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= dateCol || len(rec) <= priceCol {
			continue
		}
		ts, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(rec[dateCol]), loc)
		if err != nil {
			continue
		}
		price, err := parsePrice(rec[priceCol])
		if err != nil {
			continue
		}
		out = append(out, model.PricePoint{Timestamp: ts, Price: price})
	}
	return out, nil
}

// detectColumns picks the last header that looks like a date and the last
// that looks like a price. Without both, columns 1 and 2 are used.
func detectColumns(header []string) (dateCol, priceCol int) {
	dateCol, priceCol = -1, -1
	for i, h := range header {
		name := strings.TrimSpace(h)
		lower := strings.ToLower(name)
		if strings.Contains(name, "Kuup") || strings.Contains(lower, "aeg") || strings.Contains(lower, "date") {
			dateCol = i
		}
		if strings.Contains(name, "NPS") || strings.Contains(lower, "hind") || strings.Contains(lower, "price") {
			priceCol = i
		}
	}
	if dateCol < 0 || priceCol < 0 {
		return 1, 2
	}
	return dateCol, priceCol
}

// parsePrice accepts a decimal comma ("12,34") as well as a decimal point.
func parsePrice(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func sortPoints(points []model.PricePoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
}
