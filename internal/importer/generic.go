package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GenericParser reads a headed CSV with date, description and amount
// columns in any order, plus an optional category column. Dates are
// YYYY-MM-DD.
type GenericParser struct{}

const genericDateFormat = "2006-01-02"

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads the CSV, locating columns by header name.
func (p *GenericParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range []string{"date", "description", "amount"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing %q column", name)
		}
	}
	catCol, hasCat := cols["category"]

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		date, err := time.ParseInLocation(genericDateFormat, rec[cols["date"]], time.Local)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", line, rec[cols["date"]], err)
		}
		amount, err := decimal.NewFromString(rec[cols["amount"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", line, rec[cols["amount"]], err)
		}
		row := Row{
			Date:        date,
			Description: strings.TrimSpace(rec[cols["description"]]),
			Amount:      amount,
		}
		row.Reference = reference("generic", date, row.Description)
		if hasCat {
			row.CategoryID = strings.TrimSpace(rec[catCol])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
