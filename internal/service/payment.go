package service

import (
	"strings"
	"unicode"

	"github.com/iliyamo/cricket-ticket-booking/internal/model"
)

const (
	cardDigits     = 16
	expiryDigits   = 4
	minPhoneLength = 10
)

// digitsOnly drops every non-digit rune.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatCardNumber keeps the first 16 digits of v and groups them in
// blocks of four separated by spaces.  Input with fewer than four digits
// is returned as bare digits.
func FormatCardNumber(v string) string {
	d := digitsOnly(v)
	if len(d) < 4 {
		return d
	}
	if len(d) > cardDigits {
		d = d[:cardDigits]
	}
	parts := make([]string, 0, 4)
	for i := 0; i < len(d); i += 4 {
		end := min(i+4, len(d))
		parts = append(parts, d[i:end])
	}
	return strings.Join(parts, " ")
}

// FormatExpiry inserts "/" after the month digits, keeping at most four
// digits ("1225" -> "12/25").
func FormatExpiry(v string) string {
	d := digitsOnly(v)
	if len(d) > expiryDigits {
		d = d[:expiryDigits]
	}
	if len(d) < 2 {
		return d
	}
	return d[:2] + "/" + d[2:]
}

// SanitizeCVV keeps at most four digits.
func SanitizeCVV(v string) string {
	d := digitsOnly(v)
	if len(d) > 4 {
		d = d[:4]
	}
	return d
}

func validExpiry(s string) bool {
	return len(s) == 5 && s[2] == '/' && allDigits(s[:2]) && allDigits(s[3:])
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ValidateForm checks the form for the given channel and returns one
// FieldError per failing field.  It never modifies the form.
func ValidateForm(channel model.PaymentChannel, f model.PaymentForm) []FieldError {
	var errs []FieldError
	add := func(field, msg string) { errs = append(errs, FieldError{Field: field, Message: msg}) }

	if !channel.Valid() {
		add("paymentMethod", "payment method must be card or upi")
		return errs
	}
	switch channel {
	case model.ChannelCard:
		if n := stripSpaces(f.CardNumber); len(n) != cardDigits || !allDigits(n) {
			add("cardNumber", "card number must have 16 digits")
		}
		if !validExpiry(f.ExpiryDate) {
			add("expiryDate", "expiry must be MM/YY")
		}
		if l := len(f.CVV); l < 3 || l > 4 || !allDigits(f.CVV) {
			add("cvv", "cvv must be 3 or 4 digits")
		}
		if strings.TrimSpace(f.CardholderName) == "" {
			add("cardholderName", "cardholder name is required")
		}
	case model.ChannelUPI:
		if !strings.Contains(f.UPIID, "@") {
			add("upiId", "upi id must contain @")
		}
	}
	if !strings.Contains(f.Email, "@") {
		add("email", "email must contain @")
	}
	if len(f.Phone) < minPhoneLength {
		add("phone", "phone must be at least 10 characters")
	}
	return errs
}

// IsFormValid reports whether the form passes every check for channel.
func IsFormValid(channel model.PaymentChannel, f model.PaymentForm) bool {
	return len(ValidateForm(channel, f)) == 0
}
