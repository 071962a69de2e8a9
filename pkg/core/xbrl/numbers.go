package xbrl

import (
	"math"
	"strconv"
	"strings"
)

// ParseSignedNumber converts strings like "394,328", "(10,000)" or "$12.5"
// into a float. Returns nil if the text is not a number.
//
// Magnitude words ("million", "in thousands") are deliberately NOT interpreted
// here; scaling comes from the XBRL decimals attribute and unitRef instead.
func ParseSignedNumber(text string) *float64 {
	t := strings.TrimSpace(text)
	if t == "" || t == "-" || t == "—" {
		return nil
	}

	// Parentheses mean negative in financial notation
	isNegative := strings.HasPrefix(t, "(") && strings.HasSuffix(t, ")")
	t = strings.Trim(t, "()")

	for _, sym := range []string{"$", "€", "£"} {
		t = strings.ReplaceAll(t, sym, "")
	}
	t = strings.ReplaceAll(t, ",", "")
	t = strings.TrimSpace(t)

	val, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return nil
	}
	if isNegative {
		val = -val
	}
	return &val
}

// DecimalScale converts an XBRL decimals attribute into a multiplier.
//
//	decimals = -6  -> value reported in millions   -> ×10^6
//	decimals =  2  -> value reported in hundredths -> ÷10^2
//	absent / "INF" / malformed -> ×1 (value kept as written)
func DecimalScale(attr string) float64 {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return 1
	}
	d, err := strconv.Atoi(attr)
	if err != nil {
		return 1
	}
	switch {
	case d < 0:
		return math.Pow(10, float64(-d))
	case d > 0:
		return 1 / math.Pow(10, float64(d))
	}
	return 1
}
