// Package forms holds the pure validators behind the login, signup, and
// contact forms. Each validator maps a form record to an Errors set; an
// empty set means the form is valid. Validators are stateless and
// deterministic; touched-state gating is the caller's concern.
package forms

import (
	"regexp"
	"strings"
)

// Errors maps a field name to its validation message. Valid fields are
// absent from the map.
type Errors map[string]string

// Valid reports whether no field failed validation.
func (e Errors) Valid() bool { return len(e) == 0 }

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\s\-()]{7,15}$`)

	pwUpper  = regexp.MustCompile(`[A-Z]`)
	pwLower  = regexp.MustCompile(`[a-z]`)
	pwSymbol = regexp.MustCompile(`[0-9!@#$%^&*()_+\-=]`)
)

// PasswordRule is one requirement of the signup password policy, exposed
// individually so the UI can render a live checklist.
type PasswordRule struct {
	Label string
	Test  func(string) bool
}

// PasswordRules is the full signup password policy. A signup password must
// satisfy every rule.
var PasswordRules = []PasswordRule{
	{Label: "At least 8 characters", Test: func(p string) bool { return len(p) >= 8 }},
	{Label: "One uppercase letter", Test: pwUpper.MatchString},
	{Label: "One lowercase letter", Test: pwLower.MatchString},
	{Label: "One number or symbol", Test: pwSymbol.MatchString},
}

func passwordMeetsRules(p string) bool {
	for _, r := range PasswordRules {
		if !r.Test(p) {
			return false
		}
	}
	return true
}

// Login is the sign-in form.
type Login struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks the login form. The login variant only requires a minimum
// password length, not the full signup policy.
func (f Login) Validate() Errors {
	e := Errors{}
	if strings.TrimSpace(f.FullName) == "" {
		e["fullName"] = "Full name is required"
	}
	validateEmail(e, f.Email)
	if f.Password == "" {
		e["password"] = "Password is required"
	} else if len(f.Password) < 6 {
		e["password"] = "Password must be at least 6 characters"
	}
	validateConfirm(e, f.Password, f.ConfirmPassword)
	return e
}

// BuyerSignup is the buyer registration form.
type BuyerSignup struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks the buyer signup form against the full password policy.
func (f BuyerSignup) Validate() Errors {
	e := Errors{}
	validateFullName(e, f.FullName)
	validateEmail(e, f.Email)
	validateSignupPassword(e, f.Password)
	validateConfirm(e, f.Password, f.ConfirmPassword)
	return e
}

// FarmerSignup is the farmer registration form, which additionally captures
// the farm itself and a reachable phone number.
type FarmerSignup struct {
	FullName        string `json:"fullName"`
	FarmName        string `json:"farmName"`
	State           string `json:"state"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks the farmer signup form.
func (f FarmerSignup) Validate() Errors {
	e := Errors{}
	validateFullName(e, f.FullName)
	if strings.TrimSpace(f.FarmName) == "" {
		e["farmName"] = "Farm name is required"
	}
	if strings.TrimSpace(f.State) == "" {
		e["state"] = "State is required"
	}
	if strings.TrimSpace(f.Phone) == "" {
		e["phone"] = "Phone number is required"
	} else if !phonePattern.MatchString(f.Phone) {
		e["phone"] = "Invalid phone number"
	}
	validateEmail(e, f.Email)
	validateSignupPassword(e, f.Password)
	validateConfirm(e, f.Password, f.ConfirmPassword)
	return e
}

// Contact is the public contact form.
type Contact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// Validate checks the contact form.
func (f Contact) Validate() Errors {
	e := Errors{}
	if strings.TrimSpace(f.FullName) == "" {
		e["fullName"] = "Full name is required"
	}
	validateEmail(e, f.Email)
	if strings.TrimSpace(f.Message) == "" {
		e["message"] = "Message is required"
	}
	return e
}

func validateFullName(e Errors, name string) {
	if strings.TrimSpace(name) == "" {
		e["fullName"] = "Full name is required"
	} else if len(strings.TrimSpace(name)) < 2 {
		e["fullName"] = "Name is too short"
	}
}

func validateEmail(e Errors, email string) {
	if strings.TrimSpace(email) == "" {
		e["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		e["email"] = "Invalid email address"
	}
}

func validateSignupPassword(e Errors, password string) {
	if password == "" {
		e["password"] = "Password is required"
	} else if !passwordMeetsRules(password) {
		e["password"] = "Password doesn't meet all requirements"
	}
}

func validateConfirm(e Errors, password, confirm string) {
	if confirm == "" {
		e["confirmPassword"] = "Please confirm your password"
	} else if password != confirm {
		e["confirmPassword"] = "Passwords do not match"
	}
}
