package cleaning

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var currencyJunk = regexp.MustCompile(`[^\d,\-]`)

// dateLayouts are tried in order. Day-first forms come first because
// both bookkeeping systems emit Brazilian dates; ISO forms cover
// re-exported files.
var dateLayouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"02/01/06",
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseCurrency parses an amount in the source locale ("." thousands,
// "," decimal). Every rune other than digits, comma and minus is
// stripped before the comma becomes the decimal point, so "R$ 1.234,56"
// and "1.234,56" both yield 1234.56.
func ParseCurrency(raw string) (decimal.Decimal, error) {
	s := currencyJunk.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}

// ParseAmount is ParseCurrency with the coercion the staging tables
// use for monetary columns: blank or unparseable values become zero.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	v, err := ParseCurrency(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ParseDate accepts the day-first and year-first layouts above and
// returns nil when the value is blank or unparseable. Dates never fail
// an import; an unreadable date simply stays NULL.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}
