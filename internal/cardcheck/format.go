package cardcheck

import "strings"

// Format groups the digits of raw the way its brand prints them on the card
// face, e.g. "3782 822463 10005". Digits past the brand's grouping end up
// in a trailing group.
func Format(raw string) string {
	digits := Normalize(raw)
	if digits == "" {
		return ""
	}
	r, _ := ruleFor(IdentifyBrand(digits))

	var sb strings.Builder
	sb.Grow(len(digits) + len(r.Groups))
	rest := digits
	for _, g := range r.Groups {
		if rest == "" {
			break
		}
		if g > len(rest) {
			g = len(rest)
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(rest[:g])
		rest = rest[g:]
	}
	if rest != "" {
		sb.WriteByte(' ')
		sb.WriteString(rest)
	}
	return sb.String()
}

// LastN returns the last n bytes of s, or s itself when it is shorter.
func LastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// MaskPAN keeps the first six and last four digits and masks the rest.
// Short inputs keep at most the last four.
func MaskPAN(raw string) string {
	digits := Normalize(raw)
	n := len(digits)
	if n == 0 {
		return ""
	}
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	if n < 10 {
		return strings.Repeat("*", n-4) + digits[n-4:]
	}
	return digits[:6] + strings.Repeat("*", n-10) + digits[n-4:]
}

// CheckSecurityCode reports whether code has the size b expects. With an
// unknown brand both 3 and 4 digits pass.
func CheckSecurityCode(b Brand, code string) bool {
	code = strings.TrimSpace(code)
	if code == "" || !IsDigits(code) {
		return false
	}
	r, ok := ruleFor(b)
	if !ok {
		return len(code) == 3 || len(code) == 4
	}
	return len(code) == r.CodeSize
}
