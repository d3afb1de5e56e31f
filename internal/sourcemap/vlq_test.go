package sourcemap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/HugoDaniel/minijs/internal/test"
)

// ----------------------------------------------------------------------------
// VLQ Encoding
// ----------------------------------------------------------------------------

func TestEncodeVLQ(t *testing.T) {
	tests := []struct {
		value    int
		expected string
	}{
		{0, "A"},
		{1, "C"},
		{-1, "D"},
		{2, "E"},
		{15, "e"},
		{-15, "f"},
		{16, "gB"},
		{-16, "hB"},
		{31, "+B"},
		{-31, "/B"},
		{32, "gC"},
		{100, "oG"},
		{-100, "pG"},
		{1000, "w+B"},
		{-1000, "x+B"},
		{123456789, "qxmvrH"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.value), func(t *testing.T) {
			test.AssertEqual(t, EncodeVLQ(tt.value), tt.expected)
		})
	}
}

func TestDecodeVLQ(t *testing.T) {
	for _, v := range []int{0, 1, -1, 15, 16, -16, 31, 32, 511, 512, -4096, 1 << 20, -(1 << 30)} {
		encoded := EncodeVLQ(v)
		decoded, n, err := DecodeVLQ(encoded + "C")
		if err != nil {
			t.Fatalf("DecodeVLQ(%q): %v", encoded, err)
		}
		test.AssertEqual(t, decoded, v)
		test.AssertEqual(t, n, len(encoded))
	}
}

func TestDecodeVLQInvalid(t *testing.T) {
	for _, input := range []string{"", "g", "gg", "!", "\xc3"} {
		t.Run(input, func(t *testing.T) {
			_, _, err := DecodeVLQ(input)
			if !errors.Is(err, ErrInvalidVLQ) {
				t.Errorf("expected ErrInvalidVLQ, got %v", err)
			}
		})
	}
}

func TestDecodeSegment(t *testing.T) {
	values, err := decodeSegment("AAgBC")
	if err != nil {
		t.Fatalf("decodeSegment: %v", err)
	}
	test.AssertDeepEqual(t, "values", values, []int{0, 0, 16, 1})

	if _, err := decodeSegment("AA"); !errors.Is(err, ErrInvalidVLQ) {
		t.Errorf("expected a field count error, got %v", err)
	}
}
