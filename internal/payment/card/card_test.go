package card

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		number string
		want   Network
	}{
		{"4111111111111111", Visa},
		{"4", Visa},
		{"5100000000000000", Mastercard},
		{"5555555555554444", Mastercard},
		{"2221000000000000", Mastercard},
		{"2720990000000000", Mastercard},
		{"370000000000002", Amex},
		{"340000000000009", Amex},
		{"6011000000000004", Discover},
		{"6445000000000000", Discover},
		{"5061000000000000", Verve},
		{"506099000000000000", Verve},
		{"6500000000000000", Verve}, // verve wins over discover's 65 prefix
		{"6220000000000000", Verve},
		{"9999999999999999", Unknown},
		{"", Unknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Detect(tc.number), "number %q", tc.number)
	}
}

func TestDetect_IgnoresSpaces(t *testing.T) {
	assert.Equal(t, Visa, Detect("4111 1111 1111 1111"))
}

func TestInfoFor(t *testing.T) {
	amex := InfoFor(Amex)
	assert.Equal(t, 15, amex.MaxDigits)
	assert.Equal(t, 4, amex.CVVLength)

	verve := InfoFor(Verve)
	assert.Equal(t, 19, verve.MaxDigits)
	assert.Equal(t, 3, verve.CVVLength)

	assert.Equal(t, 16, InfoFor(Visa).MaxDigits)
	assert.Equal(t, 3, InfoFor(Unknown).CVVLength)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "4111 1111 1111 1111", Format("4111111111111111", Visa))
	assert.Equal(t, "3700 000000 00002", Format("370000000000002", Amex))
	assert.Equal(t, "4111 11", Format("411111", Visa))
	assert.Equal(t, "3700 00", Format("370000", Amex))
	assert.Equal(t, "", Format("", Visa))
	assert.Equal(t, "4111", Format("4x1-1 1", Visa), "non-digits stripped before grouping")
}

func TestNormalizeNumber_ClampsToDetectedNetwork(t *testing.T) {
	// Amex caps at 15 digits even when more are typed.
	formatted, n := NormalizeNumber("37000000000000299")
	assert.Equal(t, Amex, n)
	assert.Equal(t, "3700 000000 00002", formatted)

	// Verve allows up to 19.
	formatted, n = NormalizeNumber("5061000000000000999")
	assert.Equal(t, Verve, n)
	assert.Equal(t, "5061 0000 0000 0009 99", formatted)

	// The network re-resolves as leading digits change.
	_, n = NormalizeNumber("6")
	assert.Equal(t, Unknown, n)
	_, n = NormalizeNumber("65")
	assert.Equal(t, Discover, n)
	_, n = NormalizeNumber("6500")
	assert.Equal(t, Verve, n)
}

func TestNormalizeExpiry(t *testing.T) {
	assert.Equal(t, "0", NormalizeExpiry("0"))
	assert.Equal(t, "01", NormalizeExpiry("01"))
	assert.Equal(t, "01/2", NormalizeExpiry("012"))
	assert.Equal(t, "01/26", NormalizeExpiry("0126"))
	assert.Equal(t, "01/26", NormalizeExpiry("01269"))
	assert.Equal(t, "12/25", NormalizeExpiry("1325"), "month clamps to 12")
	assert.Equal(t, "01/25", NormalizeExpiry("0025"), "zero month clamps to 01")
}

func TestNormalizeCvv(t *testing.T) {
	assert.Equal(t, "123", NormalizeCvv("123456", Visa))
	assert.Equal(t, "1234", NormalizeCvv("123456", Amex))
	assert.Equal(t, "12", NormalizeCvv("1a2b", Visa))
}

func TestValidateNumber(t *testing.T) {
	assert.Empty(t, ValidateNumber("4111 1111 1111 1111", Visa))
	assert.Empty(t, ValidateNumber("370000000000002", Amex))
	assert.Equal(t, "Card number is required", ValidateNumber("", Visa))
	assert.Equal(t, "Visa card number must be 16 digits", ValidateNumber("4111", Visa))
	assert.Equal(t, "Amex card number must be 15 digits", ValidateNumber("37000000", Amex))
	assert.Equal(t, "Card number must contain only digits", ValidateNumber("4111abcd11111111", Visa))
}

func TestValidateExpiry(t *testing.T) {
	assert.Empty(t, ValidateExpiry("01/26"))
	// Deliberately no past-date rejection: any year is accepted.
	assert.Empty(t, ValidateExpiry("01/20"))
	assert.Equal(t, "Expiry date is required", ValidateExpiry(""))
	assert.Equal(t, "Use MM/YY format", ValidateExpiry("1/26"))
	assert.Equal(t, "Use MM/YY format", ValidateExpiry("0126"))
	assert.Equal(t, "Invalid month (01-12)", ValidateExpiry("13/25"))
	assert.Equal(t, "Invalid month (01-12)", ValidateExpiry("00/25"))
}

func TestValidateCvv(t *testing.T) {
	assert.Empty(t, ValidateCvv("123", Visa))
	assert.Empty(t, ValidateCvv("1234", Amex))
	assert.Equal(t, "CVV is required", ValidateCvv("", Visa))
	assert.Equal(t, "CVV must be digits only", ValidateCvv("12x", Visa))
	assert.Equal(t, "CVV must be 4 digits for Amex", ValidateCvv("123", Amex))
}

func TestValidateName(t *testing.T) {
	assert.Empty(t, ValidateName("Amina Yusuf"))
	assert.Empty(t, ValidateName("O'Neil-Smith"))
	assert.Equal(t, "Cardholder name is required", ValidateName("   "))
	assert.Equal(t, "Name must contain only letters", ValidateName("Amina2"))
	assert.Equal(t, "Name is too short", ValidateName("A"))
}

func TestForm_Validate(t *testing.T) {
	valid := Form{
		Name:   "Amina Yusuf",
		Number: "4111 1111 1111 1111",
		Expiry: "01/26",
		CVV:    "123",
	}
	assert.True(t, valid.Validate().Valid())
	assert.Equal(t, Visa, valid.Network())

	// Amex-specific lengths flow through the derived network.
	amex := Form{
		Name:   "Amina Yusuf",
		Number: "3700 000000 00002",
		Expiry: "01/26",
		CVV:    "123",
	}
	e := amex.Validate()
	assert.Equal(t, Amex, amex.Network())
	assert.Equal(t, "CVV must be 4 digits for Amex", e["cvv"])

	wrongLen := valid
	wrongLen.Number = "4111 1111"
	e = wrongLen.Validate()
	assert.True(t, strings.Contains(e["number"], "16 digits"))
}
