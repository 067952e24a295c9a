package card

import "github.com/agrochain/smarthub/internal/forms"

// Form is the ephemeral card payment form. The network is derived from the
// number on demand, never stored.
type Form struct {
	Name   string `json:"name"`
	Number string `json:"number"` // formatted display string
	Expiry string `json:"expiry"` // MM/YY
	CVV    string `json:"cvv"`
}

// Network returns the issuer network detected from the form's number.
func (f Form) Network() Network {
	return Detect(f.Number)
}

// Validate runs all four field validators against the detected network.
func (f Form) Validate() forms.Errors {
	n := f.Network()
	e := forms.Errors{}
	if msg := ValidateName(f.Name); msg != "" {
		e["name"] = msg
	}
	if msg := ValidateNumber(f.Number, n); msg != "" {
		e["number"] = msg
	}
	if msg := ValidateExpiry(f.Expiry); msg != "" {
		e["expiry"] = msg
	}
	if msg := ValidateCvv(f.CVV, n); msg != "" {
		e["cvv"] = msg
	}
	return e
}
