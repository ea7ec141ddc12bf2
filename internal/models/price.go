package models

import (
	"fmt"
	"strings"
)

// Price bucket thresholds in rupees.
const (
	crore = 10_000_000
	lakh  = 100_000
)

// FormatPrice renders a price in rupees using the Indian crore/lakh
// buckets, with up to two decimal places and the unit spelled out.
// This is the long form used on detail views:
//
//	12500000 -> "₹1.25 Crore"
//	750000   -> "₹7.5 Lakh"
//	50000    -> "₹50,000"
//
// The function is total over non-negative prices and must be the only
// formatting rule used anywhere a price is shown, so that the same record
// never displays two different prices.
func FormatPrice(price int64) string {
	switch {
	case price >= crore:
		return "₹" + trimDecimals(scaleTrunc2(price, crore)) + " Crore"
	case price >= lakh:
		return "₹" + trimDecimals(scaleTrunc2(price, lakh)) + " Lakh"
	default:
		return "₹" + groupThousands(price)
	}
}

// FormatPriceShort renders a price in the compact one-decimal form used
// on listing cards: "₹1.2Cr", "₹7.5L", "₹50,000".
func FormatPriceShort(price int64) string {
	switch {
	case price >= crore:
		return "₹" + scaleTrunc1(price, crore) + "Cr"
	case price >= lakh:
		return "₹" + scaleTrunc1(price, lakh) + "L"
	default:
		return "₹" + groupThousands(price)
	}
}

// scaleTrunc2 renders price/unit truncated to two decimal places. The
// quotient must never round across a bucket boundary: 9999999 in lakhs
// is "99.99", not "100".
func scaleTrunc2(price, unit int64) string {
	return fmt.Sprintf("%d.%02d", price/unit, price%unit*100/unit)
}

// scaleTrunc1 is scaleTrunc2 at one decimal place.
func scaleTrunc1(price, unit int64) string {
	return fmt.Sprintf("%d.%d", price/unit, price%unit*10/unit)
}

// trimDecimals drops trailing zeros from a fixed-point rendering, and the
// decimal point itself when nothing remains after it ("7.50" -> "7.5",
// "2.00" -> "2").
func trimDecimals(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// groupThousands renders a non-negative integer with comma grouping.
// Prices below one lakh never exceed five digits, so plain western
// grouping and Indian grouping agree here.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
