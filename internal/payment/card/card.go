// Package card classifies payment card numbers into issuer networks and
// formats, clamps, and validates the fields of a card payment form.
package card

import (
	"fmt"
	"regexp"
	"strings"
)

// Network is the issuing scheme of a payment card, inferred from its
// leading digits.
type Network string

const (
	Visa       Network = "visa"
	Mastercard Network = "mastercard"
	Amex       Network = "amex"
	Discover   Network = "discover"
	Verve      Network = "verve"
	Unknown    Network = "unknown"
)

// Info holds per-network entry rules.
type Info struct {
	Label     string
	MaxDigits int // raw digits, no separators
	CVVLength int
}

var networkInfo = map[Network]Info{
	Visa:       {Label: "Visa", MaxDigits: 16, CVVLength: 3},
	Mastercard: {Label: "Mastercard", MaxDigits: 16, CVVLength: 3},
	Amex:       {Label: "Amex", MaxDigits: 15, CVVLength: 4},
	Discover:   {Label: "Discover", MaxDigits: 16, CVVLength: 3},
	Verve:      {Label: "Verve", MaxDigits: 19, CVVLength: 3},
	Unknown:    {Label: "Card", MaxDigits: 16, CVVLength: 3},
}

// InfoFor returns the entry rules for the given network.
func InfoFor(n Network) Info {
	return networkInfo[n]
}

// Issuer prefix ranges. Verve shares leading digits with Discover (65xx)
// and Mastercard (50xx), so its longer prefixes must be tested first;
// the order of checks in Detect matters.
var (
	vervePrefix      = regexp.MustCompile(`^(5061|6500|6220|504834|507865|506099|507860|650[0-9])`)
	visaPrefix       = regexp.MustCompile(`^4`)
	mastercardPrefix = regexp.MustCompile(`^(5[1-5]|2(2[2-9][1-9]|[3-6]\d{2}|7[01]\d|720))`)
	amexPrefix       = regexp.MustCompile(`^3[47]`)
	discoverPrefix   = regexp.MustCompile(`^(6(011|22(1(2[6-9]|[3-9]\d)|[2-8]\d{2}|9([01]\d|2[0-5]))|4[4-9]\d|5\d{2})|65)`)

	digitsOnly = regexp.MustCompile(`^\d+$`)
	namePattern = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	expiryShape = regexp.MustCompile(`^\d{2}/\d{2}$`)
	nonDigit    = regexp.MustCompile(`\D`)
)

// Detect classifies a card number (spaces allowed) into a Network.
func Detect(num string) Network {
	n := strings.ReplaceAll(num, " ", "")
	switch {
	case vervePrefix.MatchString(n):
		return Verve
	case visaPrefix.MatchString(n):
		return Visa
	case mastercardPrefix.MatchString(n):
		return Mastercard
	case amexPrefix.MatchString(n):
		return Amex
	case discoverPrefix.MatchString(n):
		return Discover
	default:
		return Unknown
	}
}

// Format renders raw digits as a display string: Amex groups 4-6-5, every
// other network groups in runs of 4, separated by single spaces.
func Format(raw string, n Network) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if digits == "" {
		return ""
	}

	var groups []string
	if n == Amex {
		for _, bounds := range [][2]int{{0, 4}, {4, 10}, {10, 15}} {
			if bounds[0] >= len(digits) {
				break
			}
			end := min(bounds[1], len(digits))
			groups = append(groups, digits[bounds[0]:end])
		}
	} else {
		for i := 0; i < len(digits); i += 4 {
			groups = append(groups, digits[i:min(i+4, len(digits))])
		}
	}
	return strings.Join(groups, " ")
}

// NormalizeNumber is the per-keystroke input pipeline: strip non-digits,
// detect the network, clamp to the detected network's max length, then
// reformat. The network can change mid-entry as leading digits disambiguate,
// and the clamp and grouping adapt with it.
func NormalizeNumber(raw string) (formatted string, n Network) {
	digits := nonDigit.ReplaceAllString(raw, "")
	n = Detect(digits)
	max := InfoFor(n).MaxDigits
	if len(digits) > max {
		digits = digits[:max]
	}
	return Format(digits, n), n
}

// NormalizeExpiry formats expiry input as MM/YY while typing: digits are
// clamped to 4, the month is clamped into 01-12, and the separator is
// inserted once a year digit arrives.
func NormalizeExpiry(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) <= 2 {
		return digits
	}

	mm := digits[:2]
	if mm > "12" {
		mm = "12"
	}
	if mm == "00" {
		mm = "01"
	}
	return mm + "/" + digits[2:]
}

// NormalizeCvv strips non-digits and clamps to the network's CVV length.
func NormalizeCvv(raw string, n Network) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if max := InfoFor(n).CVVLength; len(digits) > max {
		digits = digits[:max]
	}
	return digits
}

// ValidateName checks the cardholder name: letters, spaces, hyphens, and
// apostrophes only, at least 2 characters. Returns "" when valid.
func ValidateName(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Cardholder name is required"
	}
	if !namePattern.MatchString(v) {
		return "Name must contain only letters"
	}
	if len(strings.TrimSpace(v)) < 2 {
		return "Name is too short"
	}
	return ""
}

// ValidateNumber checks a (possibly formatted) card number against the
// detected network's exact length requirement. Returns "" when valid.
func ValidateNumber(raw string, n Network) string {
	digits := strings.ReplaceAll(raw, " ", "")
	info := InfoFor(n)
	if digits == "" {
		return "Card number is required"
	}
	if !digitsOnly.MatchString(digits) {
		return "Card number must contain only digits"
	}
	if len(digits) < info.MaxDigits {
		return fmt.Sprintf("%s card number must be %d digits", info.Label, info.MaxDigits)
	}
	return ""
}

// ValidateExpiry checks the MM/YY shape and month range. There is no
// past-date rejection so any test card date is accepted. Returns "" when
// valid.
func ValidateExpiry(v string) string {
	if v == "" {
		return "Expiry date is required"
	}
	if !expiryShape.MatchString(v) {
		return "Use MM/YY format"
	}
	mm := v[:2]
	if mm < "01" || mm > "12" {
		return "Invalid month (01-12)"
	}
	return ""
}

// ValidateCvv checks the CVV against the detected network's exact length.
// Returns "" when valid.
func ValidateCvv(v string, n Network) string {
	info := InfoFor(n)
	if v == "" {
		return "CVV is required"
	}
	if !digitsOnly.MatchString(v) {
		return "CVV must be digits only"
	}
	if len(v) < info.CVVLength {
		return fmt.Sprintf("CVV must be %d digits for %s", info.CVVLength, info.Label)
	}
	return ""
}
