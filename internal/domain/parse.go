package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric form input is parsed leniently: a value that cannot be parsed is
// replaced by a safe default instead of being reported to the user.

// ParseKilometres parses a whole, non-negative number of kilometres.
// ok is false when s is blank or malformed.
func ParseKilometres(s string) (n int64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseAmount parses a monetary amount. Both dot (12.50) and comma (12,50)
// decimal separators are accepted. Blank, malformed and negative input
// yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ResolveDistance applies the distance priority rules to the raw form values:
//
//  1. a non-blank explicit distance is used verbatim (malformed or negative -> 0);
//  2. otherwise, when both odometer readings are present, end-start if end > start, else 0;
//  3. otherwise 0.
//
// The parsed odometer readings are returned for storage on every path; a
// reading that is blank or malformed comes back nil.
func ResolveDistance(explicit, startOdometer, endOdometer string) (km int64, start, end *int64) {
	if v, ok := ParseKilometres(startOdometer); ok {
		start = &v
	}
	if v, ok := ParseKilometres(endOdometer); ok {
		end = &v
	}

	switch {
	case strings.TrimSpace(explicit) != "":
		if v, ok := ParseKilometres(explicit); ok && v >= 0 {
			km = v
		}
	case start != nil && end != nil:
		if *end > *start {
			km = *end - *start
		}
	}
	return km, start, end
}
