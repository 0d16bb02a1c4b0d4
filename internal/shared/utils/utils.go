package utils

import (
	"github.com/shopspring/decimal"
)

// ParseFloatToDecimal converts an optional JSON number into a decimal
// rounded to one place, the precision ratings are stored with.
func ParseFloatToDecimal(number *float64) *decimal.Decimal {
	if number == nil {
		return nil
	}
	d := decimal.NewFromFloat(*number).Round(1)
	return &d
}

// MaxPage bounds list pagination so (page-1)*limit stays well inside
// the range Postgres accepts for OFFSET.
const MaxPage = 10000

// NormalizePage clamps page and limit to sane values.
func NormalizePage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
