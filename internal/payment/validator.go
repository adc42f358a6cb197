// Package payment validates payment details at the format level only.
// Nothing here calls a gateway or touches persistence; every function is
// pure and returns a pass/fail verdict with a reason string suitable for
// the API response.
package payment

import (
	"regexp"
	"strconv"
	"time"
)

// bdPhonePattern matches a Bangladesh mobile number: exactly 11 digits,
// starting 01, third digit 3-9.
var bdPhonePattern = regexp.MustCompile(`^01[3-9]\d{8}$`)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ValidBDPhone reports whether phone is a well-formed Bangladesh mobile
// number.
func ValidBDPhone(phone string) bool {
	return bdPhonePattern.MatchString(phone)
}

// ValidPIN reports whether pin is exactly four numeric characters.
func ValidPIN(pin string) bool {
	return len(pin) == 4 && digitsOnly.MatchString(pin)
}

// LuhnCheck reports whether a numeric card number passes the Luhn
// checksum: doubling every second digit from the right, summing the
// digit-sums, and requiring the total to be divisible by ten. The input
// must already be digits only.
func LuhnCheck(cardNumber string) bool {
	sum := 0
	double := false
	for i := len(cardNumber) - 1; i >= 0; i-- {
		d := int(cardNumber[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidateCard checks a card number, expiry and PIN. The expiry year is
// the card's two-digit year; it is compared against the last two digits
// of the current year with no century anchor, which is the historical
// behavior of this check and is kept as-is. Returns ok plus a reason
// string ("Valid" on success).
func ValidateCard(cardNumber, expiryMonth, expiryYear, pin string, now time.Time) (bool, string) {
	if len(cardNumber) != 16 || !digitsOnly.MatchString(cardNumber) {
		return false, "Invalid card number format"
	}
	if !LuhnCheck(cardNumber) {
		return false, "Invalid card number"
	}
	expMonth, errM := strconv.Atoi(expiryMonth)
	expYear, errY := strconv.Atoi(expiryYear)
	if errM != nil || errY != nil {
		return false, "Invalid expiry date"
	}
	curYear := now.Year() % 100
	curMonth := int(now.Month())
	if expYear < curYear || (expYear == curYear && expMonth < curMonth) {
		return false, "Card has expired"
	}
	if !ValidPIN(pin) {
		return false, "Invalid PIN"
	}
	return true, "Valid"
}
