package extractor

import (
	"errors"
	"strconv"
	"strings"
)

// zeroDate is the bureau sentinel for "no date".
const zeroDate = "00000000"

// formatDate converts a bureau YYYYMMDD date to a DD/MM/YYYY display string.
// The all-zero sentinel, wrong-length values, and non-numeric values all
// yield nil rather than an error; absent dates are normal in these reports.
func formatDate(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == zeroDate || len(raw) != 8 {
		return nil
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return nil
		}
	}
	formatted := raw[6:8] + "/" + raw[4:6] + "/" + raw[0:4]
	return &formatted
}

// maskAccountNumber produces the display form of an account number,
// preserving only the last four characters. The mask shape depends on the
// original length, not a fixed output width:
//
//	<= 4   returned unchanged
//	5-8    X-padded to the original length
//	9-12   "XXXX-" prefix
//	> 12   "XXXX-XXXX-" prefix
//
// The unmasked number is discarded after this call.
func maskAccountNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	last4 := number[len(number)-4:]
	switch {
	case len(number) > 12:
		return "XXXX-XXXX-" + last4
	case len(number) > 8:
		return "XXXX-" + last4
	default:
		return strings.Repeat("X", len(number)-4) + last4
	}
}

// parseAmount parses a bureau monetary field. Empty means zero; commas are
// tolerated. A non-empty value that still fails to parse is reported so the
// caller can drop the record it belongs to.
func parseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("invalid amount " + strconv.Quote(raw))
	}
	return value, nil
}

// amountOrZero is parseAmount for contexts where a malformed value degrades
// to zero instead of failing (the summary block).
func amountOrZero(raw string) float64 {
	value, err := parseAmount(raw)
	if err != nil {
		return 0
	}
	return value
}

// intOrZero parses an integer field, defaulting to zero on absence or
// malformed input.
func intOrZero(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
