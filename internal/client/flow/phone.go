package flow

import "github.com/dmitrijs2005/authflow/internal/common"

// NormalizePhone reduces a phone number to "+" and its digits, or "" when it
// has none.
func NormalizePhone(s string) string {
	d := common.DigitsOnly(s)
	if d == "" {
		return ""
	}
	return "+" + d
}

// FormatPhoneNumber joins a dial prefix such as "+57" and a subscriber
// number typed with any separators into "+573001234567".
func FormatPhoneNumber(dialPrefix, number string) (string, error) {
	p := common.DigitsOnly(dialPrefix)
	n := common.DigitsOnly(number)
	if p == "" || n == "" {
		return "", ErrInvalidPhone
	}
	return "+" + p + n, nil
}
