package cardcheck

import (
	"fmt"
	"regexp"
	"strings"
)

// Brand identifies a card network.
type Brand string

const (
	Visa       Brand = "VISA"
	Mastercard Brand = "MASTERCARD"
	Amex       Brand = "AMEX"
	Discover   Brand = "DISCOVER"
	Diners     Brand = "DINERS"
	JCB        Brand = "JCB"
	UnionPay   Brand = "UNIONPAY"
	Maestro    Brand = "MAESTRO"
	Unknown    Brand = "UNKNOWN"
)

var ErrUnknownBrand = fmt.Errorf("unknown card brand")

// BrandRule describes how a brand is recognised and displayed.
type BrandRule struct {
	Brand   Brand
	Pattern *regexp.Regexp
	// Lengths lists the accepted total digit counts in ascending order.
	Lengths []int
	// Groups is the digit grouping used for display, e.g. 4-6-5 for AMEX.
	Groups   []int
	CodeName string
	CodeSize int
}

// Accepts reports whether n is one of the rule's accepted lengths.
func (r BrandRule) Accepts(n int) bool {
	for _, l := range r.Lengths {
		if l == n {
			return true
		}
	}
	return false
}

var defaultGroups = []int{4, 4, 4, 4, 3}

// rules are evaluated top to bottom and the first match wins. The Discover
// co-branded range 622126-622925 also matches UNIONPAY and MAESTRO, so the
// order here is load-bearing.
var rules = []BrandRule{
	{
		Brand:    Visa,
		Pattern:  regexp.MustCompile(`^4\d*$`),
		Lengths:  []int{13, 16, 19},
		Groups:   defaultGroups,
		CodeName: "CVV",
		CodeSize: 3,
	},
	{
		Brand:    Mastercard,
		Pattern:  regexp.MustCompile(`^(?:5[1-5]|222[1-9]|22[3-9]\d|2[3-6]\d{2}|27[01]\d|2720)\d*$`),
		Lengths:  []int{16},
		Groups:   []int{4, 4, 4, 4},
		CodeName: "CVC",
		CodeSize: 3,
	},
	{
		Brand:    Amex,
		Pattern:  regexp.MustCompile(`^3[47]\d*$`),
		Lengths:  []int{15},
		Groups:   []int{4, 6, 5},
		CodeName: "CID",
		CodeSize: 4,
	},
	{
		Brand:    Discover,
		Pattern:  regexp.MustCompile(`^(?:6011|64[4-9]|65|622(?:12[6-9]|1[3-9]\d|[2-8]\d{2}|9[01]\d|92[0-5]))\d*$`),
		Lengths:  []int{16, 17, 18, 19},
		Groups:   defaultGroups,
		CodeName: "CID",
		CodeSize: 3,
	},
	{
		Brand:    Diners,
		Pattern:  regexp.MustCompile(`^3(?:0[0-59]|[689])\d*$`),
		Lengths:  []int{14, 16, 19},
		Groups:   []int{4, 6, 4},
		CodeName: "CVV",
		CodeSize: 3,
	},
	{
		Brand:    JCB,
		Pattern:  regexp.MustCompile(`^35(?:2[89]|[3-8]\d)\d*$`),
		Lengths:  []int{16, 17, 18, 19},
		Groups:   defaultGroups,
		CodeName: "CVV",
		CodeSize: 3,
	},
	{
		Brand:    UnionPay,
		Pattern:  regexp.MustCompile(`^62\d*$`),
		Lengths:  []int{14, 15, 16, 17, 18, 19},
		Groups:   defaultGroups,
		CodeName: "CVN",
		CodeSize: 3,
	},
	{
		Brand:    Maestro,
		Pattern:  regexp.MustCompile(`^(?:5[06-9]|6\d)\d*$`),
		Lengths:  []int{12, 13, 14, 15, 16, 17, 18, 19},
		Groups:   defaultGroups,
		CodeName: "CVC",
		CodeSize: 3,
	},
}

// unknownRule has no pattern and no accepted lengths.
var unknownRule = BrandRule{
	Brand:    Unknown,
	Groups:   defaultGroups,
	CodeName: "CVV",
}

// Rules returns a copy of the brand table in evaluation order.
func Rules() []BrandRule {
	out := make([]BrandRule, len(rules))
	for i, r := range rules {
		out[i] = r.clone()
	}
	return out
}

// RuleFor returns a copy of the rule of b. UNKNOWN yields the empty-length
// rule and false.
func RuleFor(b Brand) (BrandRule, bool) {
	r, ok := ruleFor(b)
	return r.clone(), ok
}

// ruleFor shares the table's slices; callers must not modify them.
func ruleFor(b Brand) (BrandRule, bool) {
	for _, r := range rules {
		if r.Brand == b {
			return r, true
		}
	}
	return unknownRule, false
}

func (r BrandRule) clone() BrandRule {
	r.Lengths = append([]int(nil), r.Lengths...)
	r.Groups = append([]int(nil), r.Groups...)
	return r
}

// ParseBrand maps a case-insensitive brand name to a Brand.
func ParseBrand(s string) (Brand, error) {
	name := Brand(strings.ToUpper(strings.TrimSpace(s)))
	if name == Unknown {
		return Unknown, nil
	}
	for _, r := range rules {
		if r.Brand == name {
			return r.Brand, nil
		}
	}
	return Unknown, fmt.Errorf("%q: %w", s, ErrUnknownBrand)
}
