package model

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
)

// Bytes is a byte slice that is written to JSON as an array of integers
// ([12, 250, ...]) instead of encoding/json's default base64 string.
// Wallet files produced by the desktop app use this form.
// Unmarshal accepts both the integer array and a base64 string.
type Bytes []byte

// MarshalJSON encodes b as a JSON array of integers in [0, 255].
func (b Bytes) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	buf := make([]byte, 0, len(b)*4+2)
	buf = append(buf, '[')
	for i, v := range b {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, uint64(v), 10)
	}
	buf = append(buf, ']')
	return buf, nil
}

// UnmarshalJSON decodes either an integer array or a base64 string.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty byte field", ErrFormat)
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrFormat, err)
		}
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("%w: invalid base64 byte field: %v", ErrFormat, err)
		}
		*b = decoded
		return nil
	case '[':
		var ints []int
		if err := json.Unmarshal(data, &ints); err != nil {
			return fmt.Errorf("%w: %v", ErrFormat, err)
		}
		out := make([]byte, len(ints))
		for i, v := range ints {
			if v < 0 || v > 255 {
				return fmt.Errorf("%w: byte value %d out of range at index %d", ErrFormat, v, i)
			}
			out[i] = byte(v)
		}
		*b = out
		return nil
	case 'n':
		if string(data) == "null" {
			*b = nil
			return nil
		}
	}

	return fmt.Errorf("%w: byte field must be an array or base64 string", ErrFormat)
}
