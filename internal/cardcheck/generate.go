package cardcheck

import (
	"crypto/rand"
	"fmt"
	"strings"
)

var ErrInvalidLength = fmt.Errorf("length not accepted for brand")

// samplePrefixes are inside each brand's range and outside every earlier one.
var samplePrefixes = map[Brand]string{
	Visa:       "4",
	Mastercard: "51",
	Amex:       "37",
	Discover:   "6011",
	Diners:     "36",
	JCB:        "3528",
	UnionPay:   "620",
	Maestro:    "5018",
}

// GenerateNumber returns a random Luhn-valid number of brand b with the given
// length. It exists for test fixtures and the gen command; the numbers are
// not issued by anyone.
func GenerateNumber(b Brand, length int) (string, error) {
	r, ok := ruleFor(b)
	if !ok {
		return "", fmt.Errorf("generate %s: %w", b, ErrUnknownBrand)
	}
	if !r.Accepts(length) {
		return "", fmt.Errorf("generate %s with %d digits: %w", b, length, ErrInvalidLength)
	}
	return generateWithPrefix(samplePrefixes[b], length)
}

func generateWithPrefix(prefix string, length int) (string, error) {
	if !IsDigits(prefix) {
		return "", fmt.Errorf("prefix must be numeric")
	}
	fill := length - 1 - len(prefix)
	if fill < 0 {
		return "", fmt.Errorf("prefix %s too long for %d digits", prefix, length)
	}
	body, err := randomDigits(fill)
	if err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	body = prefix + body
	return body + string(luhnCheckDigit(body)), nil
}

// randomDigits draws count uniform digits. Bytes >= 250 are rejected so the
// mod 10 carries no bias.
func randomDigits(count int) (string, error) {
	if count <= 0 {
		return "", nil
	}
	const threshold = 250
	var sb strings.Builder
	sb.Grow(count)
	buf := make([]byte, 32)
	for sb.Len() < count {
		n, err := rand.Read(buf)
		if err != nil {
			return "", err
		}
		for i := 0; i < n && sb.Len() < count; i++ {
			if buf[i] < threshold {
				sb.WriteByte('0' + buf[i]%10)
			}
		}
	}
	return sb.String(), nil
}

// luhnCheckDigit computes the digit that makes body+digit pass LuhnChecksum.
func luhnCheckDigit(body string) byte {
	sum, dbl := 0, true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return '0' + byte((10-sum%10)%10)
}
