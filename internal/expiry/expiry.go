package expiry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// cardFace is "MMYY", or "MM/YY" with optional spaces around the slash.
var cardFace = regexp.MustCompile(`^(\d{2})(?: */ *)?(\d{2})$`)

// ParseCardFace accepts the date as printed on the card, "MM/YY" or "MMYY",
// and returns it as YYMM.
func ParseCardFace(in string) (string, error) {
	m := cardFace.FindStringSubmatch(strings.TrimSpace(in))
	if m == nil {
		return "", fmt.Errorf("expiry must be MM/YY or MMYY")
	}
	mm, _ := strconv.Atoi(m[1])
	if mm < 1 || mm > 12 {
		return "", fmt.Errorf("expiry month must be 01..12")
	}
	return m[2] + m[1], nil
}

// ValidateYYMM checks that yymm is four digits with a month in 01..12.
func ValidateYYMM(yymm string) error {
	if len(yymm) != 4 {
		return fmt.Errorf("expiry must be YYMM (4 digits)")
	}
	for i := 0; i < 4; i++ {
		if yymm[i] < '0' || yymm[i] > '9' {
			return fmt.Errorf("expiry must be digits: YYMM")
		}
	}
	mm := int(yymm[2]-'0')*10 + int(yymm[3]-'0')
	if mm < 1 || mm > 12 {
		return fmt.Errorf("expiry month must be 01..12")
	}
	return nil
}

// EndOfMonth returns the last instant of the YYMM month in loc (UTC if nil).
// Years are taken as 20YY.
func EndOfMonth(yymm string, loc *time.Location) (time.Time, error) {
	if err := ValidateYYMM(yymm); err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	yy, _ := strconv.Atoi(yymm[:2])
	mm, _ := strconv.Atoi(yymm[2:])
	firstNext := time.Date(2000+yy, time.Month(mm), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	return firstNext.Add(-time.Nanosecond), nil
}

// IsExpired reports whether at is after the end of the YYMM month. A card is
// good through the last day of its expiry month.
func IsExpired(yymm string, at time.Time, loc *time.Location) (bool, error) {
	end, err := EndOfMonth(yymm, loc)
	if err != nil {
		return false, err
	}
	return at.In(end.Location()).After(end), nil
}

// Check parses a card-face date and reports whether it has expired at at,
// with month boundaries taken in loc.
func Check(face string, at time.Time, loc *time.Location) (yymm string, expired bool, err error) {
	yymm, err = ParseCardFace(face)
	if err != nil {
		return "", false, err
	}
	expired, err = IsExpired(yymm, at, loc)
	if err != nil {
		return "", false, err
	}
	return yymm, expired, nil
}
