package cardcheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRules_Order(t *testing.T) {
	var got []Brand
	for _, r := range Rules() {
		got = append(got, r.Brand)
	}
	require.Equal(t, []Brand{Visa, Mastercard, Amex, Discover, Diners, JCB, UnionPay, Maestro}, got)
}

func TestRules_ReturnsCopy(t *testing.T) {
	rs := Rules()
	rs[0].Lengths[0] = 99
	rs[0].Brand = Unknown
	require.Equal(t, Visa, Rules()[0].Brand)
	require.True(t, CheckLength(Visa, "4111111111111"))
}

func TestRuleFor(t *testing.T) {
	r, ok := RuleFor(Amex)
	require.True(t, ok)
	require.Equal(t, []int{15}, r.Lengths)
	require.Equal(t, 4, r.CodeSize)

	r, ok = RuleFor(Unknown)
	require.False(t, ok)
	require.Empty(t, r.Lengths)
}

func TestRuleFor_ReturnsCopy(t *testing.T) {
	r, ok := RuleFor(Visa)
	require.True(t, ok)
	r.Lengths[0] = 99
	r.Groups[0] = 1

	require.True(t, CheckLength(Visa, "4111111111111"))
	require.Equal(t, "4111 1111 1111 1111", Format("4111111111111111"))
	again, _ := RuleFor(Visa)
	require.Equal(t, 13, again.Lengths[0])
}

func TestParseBrand(t *testing.T) {
	b, err := ParseBrand(" visa ")
	require.NoError(t, err)
	require.Equal(t, Visa, b)

	b, err = ParseBrand("UnionPay")
	require.NoError(t, err)
	require.Equal(t, UnionPay, b)

	b, err = ParseBrand("unknown")
	require.NoError(t, err)
	require.Equal(t, Unknown, b)

	_, err = ParseBrand("elo")
	require.True(t, errors.Is(err, ErrUnknownBrand))
}

func TestSamplePrefixes_MatchTheirBrand(t *testing.T) {
	for _, r := range Rules() {
		p, ok := samplePrefixes[r.Brand]
		require.True(t, ok, r.Brand)
		require.Equal(t, r.Brand, IdentifyBrand(p+"000"), p)
	}
}

func TestGenerateNumber(t *testing.T) {
	n, err := GenerateNumber(Amex, 15)
	require.NoError(t, err)
	require.Len(t, n, 15)
	require.Equal(t, Result{IsValid: true, Brand: Amex}, Validate(n))

	_, err = GenerateNumber(Amex, 16)
	require.ErrorIs(t, err, ErrInvalidLength)

	_, err = GenerateNumber(Unknown, 16)
	require.ErrorIs(t, err, ErrUnknownBrand)
}

func TestRandomDigits(t *testing.T) {
	s, err := randomDigits(0)
	require.NoError(t, err)
	require.Empty(t, s)

	s, err = randomDigits(200)
	require.NoError(t, err)
	require.Len(t, s, 200)
	require.True(t, IsDigits(s))
}
