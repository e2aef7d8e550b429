package filters

import (
	"bytes"
	"fmt"
)

// ASCIIHexDecode decodes hexadecimal-encoded data. Whitespace between
// digits is ignored, > ends the data, and an odd final digit behaves as
// if followed by 0.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	var hi byte
	havePending := false

	for _, c := range data {
		if isWhitespace(c) {
			continue
		}
		if c == '>' {
			break
		}

		v, err := hexDigit(c)
		if err != nil {
			return nil, err
		}
		if havePending {
			out.WriteByte(hi<<4 | v)
			havePending = false
		} else {
			hi = v
			havePending = true
		}
	}

	if havePending {
		out.WriteByte(hi << 4)
	}
	return out.Bytes(), nil
}

// ASCII85Decode decodes base-85 data: five characters in '!'..'u' encode
// four bytes, z abbreviates four zero bytes, and ~> ends the data. A final
// group of n characters yields n-1 bytes.
func ASCII85Decode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	var group [5]byte
	groupLen := 0

	flush := func(digits int) {
		// Pad with 'u' (84): the highest digit keeps truncated groups
		// decodable.
		for i := digits; i < 5; i++ {
			group[i] = 84
		}
		value := uint32(0)
		for _, d := range group[:] {
			value = value*85 + uint32(d)
		}
		for j := 0; j < digits-1; j++ {
			out.WriteByte(byte(value >> (24 - j*8)))
		}
	}

	for i := 0; i < len(data); i++ {
		c := data[i]
		if isWhitespace(c) {
			continue
		}
		if c == '~' && i+1 < len(data) && data[i+1] == '>' {
			break
		}
		if c == 'z' && groupLen == 0 {
			out.Write([]byte{0, 0, 0, 0})
			continue
		}
		if c < '!' || c > 'u' {
			return nil, fmt.Errorf("invalid ASCII85 character %q", c)
		}

		group[groupLen] = c - '!'
		groupLen++
		if groupLen == 5 {
			flush(5)
			groupLen = 0
		}
	}

	if groupLen > 0 {
		flush(groupLen)
	}
	return out.Bytes(), nil
}

// hexDigit converts one hexadecimal character to its value.
func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit %q", c)
	}
}

// isWhitespace reports whether c is PDF whitespace.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}
