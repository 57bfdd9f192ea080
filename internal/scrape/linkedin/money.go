package linkedin

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"linkscout-engine/internal/domain"
)

var (
	nonNumericRe = regexp.MustCompile(`[^-0-9.,]`)
	separatorRe  = regexp.MustCompile(`[.,]`)
)

// parseSalary turns a card's salary text ("$1,234.50 - $2,000") into a
// Compensation. Nil when the text doesn't yield two numeric values.
func parseSalary(text string) *domain.Compensation {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	parts := strings.SplitN(text, "-", 2)
	if len(parts) != 2 {
		return nil
	}
	min, okMin := parseCurrencyValue(parts[0])
	max, okMax := parseCurrencyValue(parts[1])
	if !okMin || !okMax {
		return nil
	}
	if min > max {
		min, max = max, min
	}

	currency := string([]rune(text)[0])
	if currency == "$" {
		currency = "USD"
	}

	return &domain.Compensation{
		MinAmount: min,
		MaxAmount: max,
		Currency:  currency,
	}
}

// parseCurrencyValue parses one noisy currency token. Everything but digits,
// signs, and separators is dropped; separators before the last three
// characters are treated as thousands grouping, and the last three decide
// whether the remaining one is a decimal point or comma.
func parseCurrencyValue(s string) (float64, bool) {
	s = nonNumericRe.ReplaceAllString(s, "")
	if len(s) > 3 {
		s = separatorRe.ReplaceAllString(s[:len(s)-3], "") + s[len(s)-3:]
	}

	tail := s
	if len(s) > 3 {
		tail = s[len(s)-3:]
	}
	if strings.Contains(tail, ",") && !strings.Contains(tail, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return math.Round(v*100) / 100, true
}
