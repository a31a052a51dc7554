package barcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		payload string
		want    byte
	}{
		{"400638133393", '1'}, // real-world EAN-13 4006381333931
		{"012345678901", '2'},
		{"012345678910", '4'},
		{"000000000000", '0'},
		{"012345678912", '8'},
	}

	for _, tt := range tests {
		got, err := CheckDigit(tt.payload)
		require.NoError(t, err, "payload %s", tt.payload)
		assert.Equal(t, string(tt.want), string(got), "payload %s", tt.payload)
	}
}

func TestCheckDigitRejectsBadPayload(t *testing.T) {
	for _, payload := range []string{"", "12345", "12345678901a", "1234567890123"} {
		_, err := CheckDigit(payload)
		assert.Error(t, err, "payload %q", payload)
	}
}

func TestRepairRules(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Barcode
		ok   bool
	}{
		{"too short", "0123456789", "", false},
		{"empty", "", "", false},
		{"eleven digits gets placeholder and checksum", "01234567891", "0123456789104", true},
		{"twelve digits gets checksum appended", "012345678901", "0123456789012", true},
		{"valid thirteen digits unchanged", "4006381333931", "4006381333931", true},
		{"wrong check digit substituted", "4006381333939", "4006381333931", true},
		{"noise stripped before repair", " 4006-381 333931 ", "4006381333931", true},
		{"extra digits beyond thirteen ignored", "40063813339315555", "4006381333931", true},
		{"all non-digit", "abc-def", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Repair(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepairIdempotent(t *testing.T) {
	for _, raw := range []string{"4006381333931", "0123456789012", "01234567891", "012345678905"} {
		first, ok := Repair(raw)
		require.True(t, ok)

		second, ok := Repair(first.String())
		require.True(t, ok)
		assert.Equal(t, first, second, "repairing %s twice changed the code", raw)
	}
}

func TestRepairedCodesRevalidate(t *testing.T) {
	// Any 12-digit payload plus its computed check digit must pass Valid.
	payloads := []string{
		"000000000000",
		"999999999999",
		"123456789012",
		"400638133393",
	}
	for i := 0; i < 50; i++ {
		payloads = append(payloads, fmt.Sprintf("%012d", i*987654321))
	}

	for _, payload := range payloads {
		code, ok := Repair(payload)
		require.True(t, ok, "payload %s", payload)
		assert.True(t, code.Valid(), "repaired code %s does not revalidate", code)
	}
}

func TestBarcodeEquality(t *testing.T) {
	a, _ := Repair("4006381333939") // wrong check digit, repaired
	b, _ := Repair("4006381333931") // already valid

	assert.Equal(t, a, b)

	// Usable directly as a map key.
	seen := map[Barcode]int{a: 1}
	assert.Equal(t, 1, seen[b])
}

func TestParse(t *testing.T) {
	code, err := Parse("4006381333931")
	require.NoError(t, err)
	assert.Equal(t, Barcode("4006381333931"), code)

	_, err = Parse("123")
	assert.Error(t, err)
}

func TestCheckDigitAccessor(t *testing.T) {
	code, _ := Repair("400638133393")
	assert.Equal(t, byte('1'), code.CheckDigit())
}
