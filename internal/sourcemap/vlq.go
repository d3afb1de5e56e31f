// Package sourcemap builds Source Map v3 documents for printed JavaScript.
//
// The printer reports, for each statement and expression it writes, the
// generated line and column together with the byte offset of the node in the
// original source. The Generator turns those into the base64 VLQ "mappings"
// string of the Source Map Revision 3 format.
package sourcemap

import (
	"errors"
	"fmt"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	vlqShift        = 5
	vlqMask         = 1<<vlqShift - 1
	vlqContinuation = 1 << vlqShift
)

// ErrInvalidVLQ is returned for malformed or truncated VLQ data.
var ErrInvalidVLQ = errors.New("invalid VLQ")

var base64Digits = func() (digits [256]int8) {
	for i := range digits {
		digits[i] = -1
	}
	for i := 0; i < len(base64Alphabet); i++ {
		digits[base64Alphabet[i]] = int8(i)
	}
	return digits
}()

// appendVLQ appends the base64 VLQ encoding of value to buf. The sign is
// kept in the lowest bit.
func appendVLQ(buf []byte, value int) []byte {
	var v uint64
	if value < 0 {
		v = uint64(-value)<<1 | 1
	} else {
		v = uint64(value) << 1
	}
	for {
		digit := v & vlqMask
		v >>= vlqShift
		if v != 0 {
			digit |= vlqContinuation
		}
		buf = append(buf, base64Alphabet[digit])
		if v == 0 {
			return buf
		}
	}
}

// EncodeVLQ returns the base64 VLQ encoding of value.
func EncodeVLQ(value int) string {
	return string(appendVLQ(nil, value))
}

// DecodeVLQ decodes one value from the front of s and returns it with the
// number of bytes read.
func DecodeVLQ(s string) (value, n int, err error) {
	var v uint64
	var shift uint
	for n < len(s) {
		digit := base64Digits[s[n]]
		n++
		if digit < 0 || shift > 60 {
			return 0, 0, ErrInvalidVLQ
		}
		v |= uint64(digit&vlqMask) << shift
		shift += vlqShift
		if digit&vlqContinuation == 0 {
			if v&1 != 0 {
				return -int(v >> 1), n, nil
			}
			return int(v >> 1), n, nil
		}
	}
	return 0, 0, ErrInvalidVLQ
}

// decodeSegment decodes every value of one comma-separated segment.
func decodeSegment(segment string) ([]int, error) {
	values := make([]int, 0, 5)
	for segment != "" {
		v, n, err := DecodeVLQ(segment)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		segment = segment[n:]
	}
	switch len(values) {
	case 1, 4, 5:
		return values, nil
	}
	return nil, fmt.Errorf("%w: segment with %d fields", ErrInvalidVLQ, len(values))
}
