package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletkit/walletkit/internal/id"
	"github.com/walletkit/walletkit/internal/model"
)

const dateFormat = "2006-01-02"

func parseAmount(flag, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("--%s: invalid amount %q", flag, s)
	}
	return d, nil
}

func parseDate(flag, s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateFormat, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: expected YYYY-MM-DD, got %q", flag, s)
	}
	return t, nil
}

func parseOptionalDate(flag, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(flag, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// endOfDay returns the last instant of t's calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
}

func parseCurrency(flag, s string) (model.Currency, error) {
	if s == "" {
		return "", nil
	}
	c, ok := model.ParseCurrency(s)
	if !ok {
		return "", fmt.Errorf("--%s: unsupported currency %q", flag, s)
	}
	return c, nil
}

// money renders an amount, masked when the wallet hides balances.
func money(d decimal.Decimal, hide bool) string {
	if hide {
		return "****"
	}
	return d.StringFixed(2)
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateFormat)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// resolveID accepts a full id, in any letter case, or a unique prefix of one.
func resolveID[T any](kind, ref string, items []T, idOf func(T) string) (string, error) {
	if full, err := id.Parse(ref); err == nil {
		ref = full
	}
	var match string
	for _, it := range items {
		full := idOf(it)
		if full == ref {
			return full, nil
		}
		if strings.HasPrefix(full, ref) {
			if match != "" {
				return "", fmt.Errorf("%s id %q is ambiguous", kind, ref)
			}
			match = full
		}
	}
	if match == "" {
		return "", fmt.Errorf("no %s with id %q", kind, ref)
	}
	return match, nil
}

func shortID(s string) string { return id.Short(s) }
