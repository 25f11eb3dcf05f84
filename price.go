package currency

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("price has no known currency and amount")

// codeSymbols pairs the currencies a price may be written in with their sign.
var codeSymbols = []struct {
	code   string
	symbol string
}{
	{"usd", "$"},
	{"eur", "€"},
	{"gbp", "£"},
	{"cny", "元"},
	{"jpy", "¥"},
	{"try", "₺"},
}

// The currency may lead or trail the amount, with at most one space between.
var priceRegex = regexp.MustCompile(
	`(?i)(usd|eur|gbp|cny|jpy|try|€|\$|£|元|块|¥|₺)\s?(\d[\d.,]*)|(\d[\d.,]*)\s?(usd|eur|gbp|cny|jpy|try|€|\$|£|元|块|¥|₺)`,
)

// SymbolOf returns the sign of a supported currency code.
func SymbolOf(code string) (string, bool) {
	code = NormalizeSymbol(code)

	for _, c := range codeSymbols {
		if c.code == code {
			return c.symbol, true
		}
	}

	return "", false
}

// CodeOf returns the lowercase code for a currency sign or code.
// 块 is the colloquial yuan.
func CodeOf(symbol string) (string, bool) {
	symbol = NormalizeSymbol(symbol)

	if symbol == "块" {
		return "cny", true
	}

	for _, c := range codeSymbols {
		if c.symbol == symbol || c.code == symbol {
			return c.code, true
		}
	}

	return "", false
}

// ParsePrice finds the first price in s, such as "$1,234", "1.234,50 €",
// "元500" or "12 GBP", and returns its lowercase currency code and amount.
func ParsePrice(s string) (string, decimal.Decimal, error) {
	groups := priceRegex.FindStringSubmatch(s)

	if groups == nil {
		return "", decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}

	sign, digits := groups[1], groups[2]

	if sign == "" {
		sign, digits = groups[4], groups[3]
	}

	code, ok := CodeOf(sign)

	if !ok {
		return "", decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}

	amount, err := parseAmount(digits)

	if err != nil {
		return "", decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidPrice, s, err)
	}

	return code, amount, nil
}

// parseAmount reads both "1,234.50" and "1.234,50". With a single kind of
// separator, one followed by exactly three digits groups thousands.
func parseAmount(digits string) (decimal.Decimal, error) {
	digits = strings.TrimRight(digits, ".,")
	lastDot := strings.LastIndex(digits, ".")
	lastComma := strings.LastIndex(digits, ",")

	var decimalSep string

	switch {
	case lastDot >= 0 && lastComma >= 0:
		decimalSep = "."

		if lastComma > lastDot {
			decimalSep = ","
		}
	case lastDot >= 0:
		decimalSep = decimalSeparator(digits, ".", lastDot)
	case lastComma >= 0:
		decimalSep = decimalSeparator(digits, ",", lastComma)
	}

	var b strings.Builder

	for i, r := range digits {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case string(r) == decimalSep && (i == lastDot || i == lastComma):
			b.WriteByte('.')
		}
	}

	return decimal.NewFromString(b.String())
}

func decimalSeparator(digits, sep string, last int) string {
	if strings.Count(digits, sep) > 1 || len(digits)-last-1 == 3 {
		return ""
	}

	return sep
}
