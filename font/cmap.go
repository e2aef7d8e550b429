package font

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/yosephbernandus/pdf-parser/core"
)

// CMap maps character codes to Unicode strings, as parsed from a
// ToUnicode CMap stream.
type CMap struct {
	// Single code mappings from bfchar sections and bfrange array form.
	chars map[uint32]string

	// Incrementing ranges from bfrange sections, evaluated lazily.
	ranges []cmapRange
}

// cmapRange maps codes lo..hi to the scalar values dst..dst+(hi-lo).
type cmapRange struct {
	lo, hi uint32
	dst    uint32
}

// NewCMap returns an empty CMap.
func NewCMap() *CMap {
	return &CMap{chars: make(map[uint32]string)}
}

// Len returns the number of mapping entries (codes plus ranges).
func (cm *CMap) Len() int {
	if cm == nil {
		return 0
	}
	return len(cm.chars) + len(cm.ranges)
}

// Lookup returns the Unicode string for a character code. ok is false
// when the CMap has no mapping for the code.
func (cm *CMap) Lookup(code uint32) (string, bool) {
	if cm == nil {
		return "", false
	}
	if s, ok := cm.chars[code]; ok {
		return s, true
	}
	for _, r := range cm.ranges {
		if code < r.lo || code > r.hi {
			continue
		}
		v := rune(r.dst + (code - r.lo))
		if v > unicode.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
			return "", false
		}
		return string(v), true
	}
	return "", false
}

// ParseToUnicodeCMap parses a ToUnicode CMap from a decoded stream.
func ParseToUnicodeCMap(stream *core.Stream) (*CMap, error) {
	if stream == nil {
		return nil, fmt.Errorf("font: ToUnicode stream is nil")
	}
	data, err := stream.Decoded()
	if err != nil {
		return nil, fmt.Errorf("font: decode ToUnicode stream: %w", err)
	}
	return parseCMapData(data), nil
}

// parseCMapData extracts bfchar and bfrange mappings. Malformed entries
// are skipped, never fatal.
func parseCMapData(data []byte) *CMap {
	cmap := NewCMap()
	content := string(data)

	forEachSection(content, "beginbfchar", "endbfchar", cmap.parseBfCharSection)
	forEachSection(content, "beginbfrange", "endbfrange", cmap.parseBfRangeSection)

	return cmap
}

// forEachSection invokes fn on the content of every begin..end block.
func forEachSection(content, begin, end string, fn func(section string)) {
	start := 0
	for {
		beginIdx := strings.Index(content[start:], begin)
		if beginIdx == -1 {
			return
		}
		beginIdx += start + len(begin)

		endIdx := strings.Index(content[beginIdx:], end)
		if endIdx == -1 {
			return
		}
		endIdx += beginIdx

		fn(content[beginIdx:endIdx])
		start = endIdx + len(end)
	}
}

// parseBfCharSection parses pairs of hex strings: <srcCode> <dstUnicode>.
func (cm *CMap) parseBfCharSection(section string) {
	sc := cmapScanner{s: section}
	for {
		src, ok := sc.next()
		if !ok {
			return
		}
		if src.kind != tokHex {
			continue
		}
		dst, ok := sc.next()
		if !ok {
			return
		}
		if dst.kind != tokHex {
			slog.Debug("skipping bfchar entry without destination", slog.String("src", src.hex))
			continue
		}
		code, err := parseHexCode(src.hex)
		if err != nil {
			slog.Debug("skipping bfchar entry", slog.String("src", src.hex))
			continue
		}
		s, err := hexToUnicode(dst.hex)
		if err != nil {
			slog.Debug("skipping bfchar entry", slog.String("dst", dst.hex))
			continue
		}
		cm.chars[code] = s
	}
}

// parseBfRangeSection parses triples <lo> <hi> <dst>, where dst is either
// a hex string (incrementing range) or an array of per-code hex strings.
func (cm *CMap) parseBfRangeSection(section string) {
	sc := cmapScanner{s: section}
	for {
		lo, ok := sc.next()
		if !ok {
			return
		}
		if lo.kind != tokHex {
			continue
		}
		hi, ok := sc.next()
		if !ok {
			return
		}
		if hi.kind != tokHex {
			slog.Debug("skipping bfrange entry without end code", slog.String("lo", lo.hex))
			continue
		}

		loCode, err1 := parseHexCode(lo.hex)
		hiCode, err2 := parseHexCode(hi.hex)
		if err1 != nil || err2 != nil || loCode > hiCode {
			slog.Debug("skipping bfrange entry", slog.String("lo", lo.hex), slog.String("hi", hi.hex))
			continue
		}

		dst, ok := sc.next()
		if !ok {
			return
		}
		switch dst.kind {
		case tokHex:
			base, err := parseHexCode(dst.hex)
			if err != nil {
				slog.Debug("skipping bfrange entry", slog.String("dst", dst.hex))
				continue
			}
			cm.ranges = append(cm.ranges, cmapRange{lo: loCode, hi: hiCode, dst: base})
		case tokArrayOpen:
			cm.parseBfRangeArray(&sc, loCode, hiCode)
		default:
			slog.Debug("skipping bfrange entry with unexpected destination")
		}
	}
}

// parseBfRangeArray maps codes lo.. to the hex strings inside [ .. ].
func (cm *CMap) parseBfRangeArray(sc *cmapScanner, lo, hi uint32) {
	code := lo
	for {
		tok, ok := sc.next()
		if !ok || tok.kind == tokArrayClose {
			return
		}
		if tok.kind != tokHex {
			continue
		}
		s, err := hexToUnicode(tok.hex)
		if err == nil && code <= hi {
			cm.chars[code] = s
		}
		code++
	}
}

// Token scanning over CMap section text.

const (
	tokHex = iota
	tokArrayOpen
	tokArrayClose
)

type cmapToken struct {
	kind int
	hex  string
}

type cmapScanner struct {
	s   string
	pos int
}

// next returns the next hex string or bracket, skipping everything else.
func (sc *cmapScanner) next() (cmapToken, bool) {
	for sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case '[':
			sc.pos++
			return cmapToken{kind: tokArrayOpen}, true
		case ']':
			sc.pos++
			return cmapToken{kind: tokArrayClose}, true
		case '<':
			sc.pos++
			var sb strings.Builder
			for sc.pos < len(sc.s) {
				c := sc.s[sc.pos]
				sc.pos++
				if c == '>' {
					return cmapToken{kind: tokHex, hex: sb.String()}, true
				}
				if isHexDigit(c) {
					sb.WriteByte(c)
				}
			}
			return cmapToken{}, false
		default:
			sc.pos++
		}
	}
	return cmapToken{}, false
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// parseHexCode parses a source code hex string to uint32.
func parseHexCode(hexStr string) (uint32, error) {
	if hexStr == "" {
		return 0, fmt.Errorf("empty hex code")
	}
	v, err := strconv.ParseUint(hexStr, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// hexToUnicode converts a destination hex string to a Unicode string.
// Two or more bytes are UTF-16BE, with or without a byte order mark.
func hexToUnicode(hexStr string) (string, error) {
	if len(hexStr)%2 != 0 {
		hexStr = "0" + hexStr
	}
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return "", err
	}
	switch {
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return DecodeUTF16BE(data[2:]), nil
	case len(data) >= 2:
		return DecodeUTF16BE(data), nil
	case len(data) == 1:
		return string(rune(data[0])), nil
	default:
		return "", fmt.Errorf("empty unicode value")
	}
}
