package budget

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ff-agent/server/internal/agent/model"
)

var numberRe = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseCeiling extracts a USD ceiling from a free-form budget value such as
// "under $60", "$47.50" or "60". The first decimal number substring wins; no
// unit validation is performed, so a bare "3" parses as $3. Returns ok=false
// when the value is empty or holds no number.
func ParseCeiling(value string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return 0, false
	}
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// PriceAmount parses the leading numeric amount of a product price string
// like "47.00 USD".
func PriceAmount(price string) (float64, bool) {
	fields := strings.Fields(price)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Partition splits products into within-budget and over-budget lists,
// preserving input order within each. Without a ceiling every product is
// within budget. A product whose price cannot be parsed is kept in the
// within list rather than dropped.
func Partition(products []model.Product, ceiling float64, hasCeiling bool) (within, over []model.Product) {
	within = make([]model.Product, 0, len(products))
	over = make([]model.Product, 0)
	if !hasCeiling {
		within = append(within, products...)
		return within, over
	}
	for _, p := range products {
		amt, ok := PriceAmount(p.Price)
		switch {
		case !ok:
			within = append(within, p)
		case amt <= ceiling:
			within = append(within, p)
		default:
			over = append(over, p)
		}
	}
	return within, over
}
