package payment

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestValidBDPhone(t *testing.T) {
    valid := []string{"01712345678", "01312345678", "01998765432"}
    for _, phone := range valid {
        assert.True(t, ValidBDPhone(phone), "expected %s to be valid", phone)
    }
    invalid := []string{
        "02712345678",  // wrong prefix
        "01212345678",  // third digit below 3
        "0171234567",   // too short
        "017123456789", // too long
        "0171234567a",  // non-digit
        "",
        "+8801712345678", // country code not accepted
    }
    for _, phone := range invalid {
        assert.False(t, ValidBDPhone(phone), "expected %s to be invalid", phone)
    }
}

func TestValidPIN(t *testing.T) {
    assert.True(t, ValidPIN("0000"))
    assert.True(t, ValidPIN("1234"))
    assert.False(t, ValidPIN("123"))
    assert.False(t, ValidPIN("12345"))
    assert.False(t, ValidPIN("12a4"))
    assert.False(t, ValidPIN(""))
}

func TestLuhnCheck(t *testing.T) {
    assert.True(t, LuhnCheck("4532015112830366"))
    assert.True(t, LuhnCheck("79927398713"))
    assert.False(t, LuhnCheck("4532015112830367"))
    assert.False(t, LuhnCheck("79927398710"))
}

func TestValidateCard(t *testing.T) {
    now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

    ok, reason := ValidateCard("4532015112830366", "12", "27", "1234", now)
    assert.True(t, ok)
    assert.Equal(t, "Valid", reason)

    ok, reason = ValidateCard("453201511283036", "12", "27", "1234", now)
    assert.False(t, ok)
    assert.Equal(t, "Invalid card number format", reason)

    ok, reason = ValidateCard("4532015112830367", "12", "27", "1234", now)
    assert.False(t, ok)
    assert.Equal(t, "Invalid card number", reason)

    ok, reason = ValidateCard("4532015112830366", "ab", "27", "1234", now)
    assert.False(t, ok)
    assert.Equal(t, "Invalid expiry date", reason)

    // previous month of the current two-digit year
    ok, reason = ValidateCard("4532015112830366", "5", "25", "1234", now)
    assert.False(t, ok)
    assert.Equal(t, "Card has expired", reason)

    // current month of the current year is still accepted
    ok, _ = ValidateCard("4532015112830366", "6", "25", "1234", now)
    assert.True(t, ok)

    // two-digit years are compared without a century anchor, so "99"
    // reads as far in the future relative to year 25
    ok, _ = ValidateCard("4532015112830366", "1", "99", "1234", now)
    assert.True(t, ok)

    ok, reason = ValidateCard("4532015112830366", "12", "27", "12", now)
    assert.False(t, ok)
    assert.Equal(t, "Invalid PIN", reason)
}
