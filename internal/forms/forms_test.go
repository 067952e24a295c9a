package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogin_Valid(t *testing.T) {
	f := Login{
		FullName:        "Amina Yusuf",
		Email:           "amina@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	assert.True(t, f.Validate().Valid())
}

func TestLogin_FieldErrors(t *testing.T) {
	e := Login{}.Validate()
	assert.Equal(t, "Full name is required", e["fullName"])
	assert.Equal(t, "Email is required", e["email"])
	assert.Equal(t, "Password is required", e["password"])
	assert.Equal(t, "Please confirm your password", e["confirmPassword"])
}

func TestLogin_ShortPassword(t *testing.T) {
	e := Login{
		FullName:        "Amina",
		Email:           "amina@example.com",
		Password:        "abc",
		ConfirmPassword: "abc",
	}.Validate()
	assert.Equal(t, "Password must be at least 6 characters", e["password"])
}

func TestLogin_EmailShape(t *testing.T) {
	for _, bad := range []string{"plain", "a@b", "a b@c.com", "@x.com"} {
		e := Login{FullName: "A", Email: bad, Password: "secret1", ConfirmPassword: "secret1"}.Validate()
		assert.Equal(t, "Invalid email address", e["email"], "email %q", bad)
	}

	e := Login{FullName: "A", Email: "a@b.co", Password: "secret1", ConfirmPassword: "secret1"}.Validate()
	assert.Empty(t, e["email"])
}

func TestLogin_Deterministic(t *testing.T) {
	f := Login{Email: "nope"}
	assert.Equal(t, f.Validate(), f.Validate())
}

func TestBuyerSignup_PasswordPolicy(t *testing.T) {
	base := BuyerSignup{FullName: "Amina Yusuf", Email: "amina@example.com"}

	cases := []struct {
		password string
		ok       bool
	}{
		{"Passw0rd", true},   // upper, lower, digit, 8 chars
		{"Secure-Pass", true},
		{"short1A", false},   // 7 chars
		{"alllower1", false}, // no uppercase
		{"ALLUPPER1", false}, // no lowercase
		{"NoDigits", false},  // no digit or symbol
	}
	for _, tc := range cases {
		f := base
		f.Password = tc.password
		f.ConfirmPassword = tc.password
		e := f.Validate()
		if tc.ok {
			assert.Empty(t, e["password"], "password %q", tc.password)
		} else {
			assert.Equal(t, "Password doesn't meet all requirements", e["password"], "password %q", tc.password)
		}
	}
}

func TestBuyerSignup_ConfirmMismatch(t *testing.T) {
	e := BuyerSignup{
		FullName:        "Amina Yusuf",
		Email:           "amina@example.com",
		Password:        "Passw0rd",
		ConfirmPassword: "Passw0rd!",
	}.Validate()
	assert.Equal(t, "Passwords do not match", e["confirmPassword"])
}

func TestBuyerSignup_NameTooShort(t *testing.T) {
	e := BuyerSignup{FullName: " A ", Email: "a@b.co", Password: "Passw0rd", ConfirmPassword: "Passw0rd"}.Validate()
	assert.Equal(t, "Name is too short", e["fullName"])
}

func TestFarmerSignup_Phone(t *testing.T) {
	base := FarmerSignup{
		FullName:        "Kwame Mensah",
		FarmName:        "Gold Coast Cacao",
		State:           "Ashanti",
		Email:           "kwame@example.com",
		Password:        "Passw0rd",
		ConfirmPassword: "Passw0rd",
	}

	cases := []struct {
		phone string
		ok    bool
	}{
		{"+234 801 2345", true},
		{"(0801) 234-5678", true},
		{"12345", false},      // too short
		{"080123456789012345", false}, // too long
		{"0801x2345", false},  // letter
	}
	for _, tc := range cases {
		f := base
		f.Phone = tc.phone
		e := f.Validate()
		if tc.ok {
			assert.Empty(t, e["phone"], "phone %q", tc.phone)
		} else {
			assert.Equal(t, "Invalid phone number", e["phone"], "phone %q", tc.phone)
		}
	}
}

func TestFarmerSignup_RequiredFields(t *testing.T) {
	e := FarmerSignup{}.Validate()
	assert.Equal(t, "Farm name is required", e["farmName"])
	assert.Equal(t, "State is required", e["state"])
	assert.Equal(t, "Phone number is required", e["phone"])
}

func TestContact(t *testing.T) {
	e := Contact{FullName: "  ", Email: "x", Message: ""}.Validate()
	assert.Equal(t, "Full name is required", e["fullName"])
	assert.Equal(t, "Invalid email address", e["email"])
	assert.Equal(t, "Message is required", e["message"])

	ok := Contact{FullName: "Amina", Email: "a@b.co", Message: "Hello"}.Validate()
	assert.True(t, ok.Valid())
}
