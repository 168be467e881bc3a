// Package core holds the domain types shared by the interpretation
// pipeline, the router and the record store gateways.
//
// This file contains parsing and formatting of monetary amounts. Amounts
// travel through the system as int64 cents to avoid floating-point drift;
// they are converted back to a human representation only at the reply and
// chart boundaries.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmountToCents converts the numeric literal captured by the message
// extractor to cents. It accepts both dot (23.50) and comma (23,50) as the
// fractional separator with up to two fractional digits.
//
// Unlike a form input, chat text gets no plausibility check: zero and
// absurdly large amounts are accepted as written.
func ParseAmountToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return 0, ErrInvalidAmount
		}
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
		}
	}
	return iv*100 + fracCents, nil
}

// FormatReais renders cents the way the chat replies expect: no grouping,
// dot as the separator, trailing fraction zeros dropped. 5000 -> "50",
// 2350 -> "23.5", 2555 -> "25.55".
func FormatReais(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	rem := cents % 100

	s := strconv.FormatInt(whole, 10)
	switch {
	case rem == 0:
		// integer amount, no fraction
	case rem%10 == 0:
		s += "." + strconv.FormatInt(rem/10, 10)
	default:
		frac := strconv.FormatInt(rem, 10)
		if rem < 10 {
			frac = "0" + frac
		}
		s += "." + frac
	}
	if neg {
		return "-" + s
	}
	return s
}

// Reais returns the amount as a float64 for chart rendering only; all
// arithmetic stays in cents.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}
