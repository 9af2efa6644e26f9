// Package cardcheck identifies the network of a card number typed by a
// shopper and reports whether the number is well formed.
//
// Every function here is pure and safe for concurrent use. None of them
// return errors: malformed input simply yields an invalid Result.
package cardcheck

import "strings"

// Result is the outcome of Validate.
type Result struct {
	IsValid bool  `json:"is_valid"`
	Brand   Brand `json:"brand"`
}

// Normalize strips every character that is not an ASCII digit.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return -1
		}
		return r
	}, raw)
}

// IdentifyBrand returns the brand of the first rule whose pattern matches the
// whole digit string, or Unknown.
func IdentifyBrand(digits string) Brand {
	if digits == "" {
		return Unknown
	}
	for _, r := range rules {
		if r.Pattern.MatchString(digits) {
			return r.Brand
		}
	}
	return Unknown
}

// CheckLength reports whether len(digits) is accepted for b. Unknown accepts
// no length.
func CheckLength(b Brand, digits string) bool {
	r, ok := ruleFor(b)
	if !ok {
		return false
	}
	return r.Accepts(len(digits))
}

// LuhnChecksum runs the mod-10 check over digits. Empty or non-digit input fails.
func LuhnChecksum(digits string) bool {
	if digits == "" || !IsDigits(digits) {
		return false
	}
	sum, dbl := 0, false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return sum%10 == 0
}

// Validate classifies raw and reports whether it is a well-formed number of
// that brand. The checksum only runs once the length is known to be right.
func Validate(raw string) Result {
	digits := Normalize(raw)
	if digits == "" {
		return Result{Brand: Unknown}
	}
	brand := IdentifyBrand(digits)
	valid := CheckLength(brand, digits) && LuhnChecksum(digits)
	return Result{IsValid: valid, Brand: brand}
}

// IsDigits reports whether s consists of ASCII digits only.
func IsDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
