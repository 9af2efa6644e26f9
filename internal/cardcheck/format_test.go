package cardcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	cases := []struct{ in, out string }{
		{"", ""},
		{"4532015112830366", "4532 0151 1283 0366"},
		{"4532-0151-1283-0366", "4532 0151 1283 0366"},
		{"378282246310005", "3782 822463 10005"},
		{"30569309025904", "3056 930902 5904"},
		{"4532015", "4532 015"},
		{"4111111111111111111", "4111 1111 1111 1111 111"},
		{"5555555555554444123", "5555 5555 5555 4444 123"},
		{"1234567890", "1234 5678 90"},
	}
	for _, c := range cases {
		require.Equal(t, c.out, Format(c.in), "Format(%q)", c.in)
	}
}

func TestMaskPAN(t *testing.T) {
	cases := []struct{ in, out string }{
		{"", ""},
		{"123", "***"},
		{"1234", "****"},
		{"123456789", "*****6789"},
		{"4532 0151 1283 0366", "453201******0366"},
		{"378282246310005", "378282*****0005"},
	}
	for _, c := range cases {
		if got := MaskPAN(c.in); got != c.out {
			t.Fatalf("MaskPAN(%q) = %q want %q", c.in, got, c.out)
		}
	}
}

func TestLastN(t *testing.T) {
	require.Equal(t, "0366", LastN("4532015112830366", 4))
	require.Equal(t, "12", LastN("12", 4))
}

func TestCheckSecurityCode(t *testing.T) {
	require.True(t, CheckSecurityCode(Visa, "123"))
	require.False(t, CheckSecurityCode(Visa, "1234"))
	require.True(t, CheckSecurityCode(Amex, "1234"))
	require.False(t, CheckSecurityCode(Amex, "123"))
	require.True(t, CheckSecurityCode(Unknown, "123"))
	require.True(t, CheckSecurityCode(Unknown, "1234"))
	require.False(t, CheckSecurityCode(Unknown, "12"))
	require.False(t, CheckSecurityCode(Visa, "12a"))
	require.False(t, CheckSecurityCode(Visa, ""))
	require.True(t, CheckSecurityCode(Visa, " 123 "))
}

func TestFingerprint(t *testing.T) {
	key := []byte("test-key")
	a := Fingerprint("4532015112830366", key)
	require.Len(t, a, 16)
	require.Equal(t, a, Fingerprint("4532 0151 1283 0366", key))
	require.NotEqual(t, a, Fingerprint("4532015112830366", []byte("other-key")))
	require.NotEqual(t, a, Fingerprint("4532015112830367", key))
}
