package font

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/yosephbernandus/pdf-parser/core"
)

// ErrUnsupportedFont marks a font whose character codes cannot be mapped
// to Unicode, such as a composite font with a predefined CMap and no
// ToUnicode stream. Callers fall back to a default decoding.
var ErrUnsupportedFont = errors.New("pdf: unsupported font")

// Resolver follows indirect references while a font dictionary is being
// loaded.
type Resolver interface {
	Resolve(obj core.Object) (core.Object, error)
}

// Font decodes show-operator strings for one font resource and carries
// enough metrics to advance the text position past them.
type Font struct {
	Name     string
	BaseFont string
	Subtype  string

	encoding  Encoding
	toUnicode *CMap

	// twoByte marks composite fonts with an Identity code space, where
	// character codes are two bytes wide.
	twoByte  bool
	vertical bool

	descendant *CIDFont

	firstChar  int
	codeWidths []float64
	stdWidths  map[rune]float64
}

// New builds a Font from a font dictionary. Simple fonts (Type1,
// TrueType, Type3) always succeed, degrading to WinAnsiEncoding when the
// dictionary gives nothing better. Composite Type0 fonts need a usable
// ToUnicode CMap and fail with ErrUnsupportedFont otherwise.
func New(dict core.Dict, res Resolver) (*Font, error) {
	if dict == nil {
		return nil, fmt.Errorf("font: dictionary is nil")
	}

	f := &Font{}
	if name, ok := dict.GetName("Name"); ok {
		f.Name = string(name)
	}
	if baseFont, ok := dict.GetName("BaseFont"); ok {
		f.BaseFont = string(baseFont)
	}
	if subtype, ok := dict.GetName("Subtype"); ok {
		f.Subtype = string(subtype)
	}

	if f.Subtype == "Type0" {
		if err := f.loadType0(dict, res); err != nil {
			return nil, err
		}
		return f, nil
	}

	f.loadSimple(dict, res)
	return f, nil
}

// loadSimple configures a single-byte font. Nothing here is fatal: a bare
// dictionary decodes through WinAnsiEncoding with approximated widths.
func (f *Font) loadSimple(dict core.Dict, res Resolver) {
	f.toUnicode = loadToUnicode(dict, res)
	f.encoding = loadEncoding(dict, res)
	f.loadWidths(dict, res)
	f.stdWidths = standardWidthTable(f.BaseFont)
}

// loadToUnicode parses the /ToUnicode CMap when present and non-empty.
func loadToUnicode(dict core.Dict, res Resolver) *CMap {
	stream, ok := resolved(res, dict.Get("ToUnicode")).(*core.Stream)
	if !ok {
		return nil
	}
	cmap, err := ParseToUnicodeCMap(stream)
	if err != nil || cmap.Len() == 0 {
		return nil
	}
	return cmap
}

// loadEncoding resolves /Encoding to a byte decoder. An encoding
// dictionary may replace individual codes of its base encoding through a
// /Differences array; everything else defaults to WinAnsiEncoding.
func loadEncoding(dict core.Dict, res Resolver) Encoding {
	switch enc := resolved(res, dict.Get("Encoding")).(type) {
	case core.Name:
		return GetEncoding(string(enc))
	case core.Dict:
		base := WinAnsiEncoding
		if name, ok := enc.GetName("BaseEncoding"); ok {
			base = GetEncoding(string(name))
		}
		diffs := parseDifferences(resolved(res, enc.Get("Differences")))
		if len(diffs) == 0 {
			return base
		}
		return NewCustomEncodingFromGlyphs(base, diffs)
	default:
		return WinAnsiEncoding
	}
}

// parseDifferences reads a /Differences array: an integer selects the
// next code, each following name maps that code and increments it.
func parseDifferences(obj core.Object) map[byte]string {
	arr, ok := obj.(core.Array)
	if !ok {
		return nil
	}
	diffs := make(map[byte]string)
	code := 0
	for _, item := range arr {
		switch v := item.(type) {
		case core.Int:
			code = int(v)
		case core.Real:
			code = int(v)
		case core.Name:
			if code >= 0 && code <= 255 {
				diffs[byte(code)] = string(v)
			}
			code++
		default:
			slog.Debug("skipping differences entry", slog.Any("entry", item))
		}
	}
	return diffs
}

// loadWidths reads the /FirstChar and /Widths metrics when present.
func (f *Font) loadWidths(dict core.Dict, res Resolver) {
	arr, ok := resolved(res, dict.Get("Widths")).(core.Array)
	if !ok {
		return
	}
	if first, ok := resolved(res, dict.Get("FirstChar")).(core.Int); ok {
		f.firstChar = int(first)
	}
	f.codeWidths = make([]float64, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		f.codeWidths[i], _ = arr.GetNumber(i)
	}
}

// Decode maps a show-operator string to Unicode text.
//
// Composite fonts consume two bytes per code and look each code up in the
// ToUnicode CMap; unmapped codes become the replacement character. Simple
// fonts consume one byte per code, preferring the ToUnicode CMap and
// falling back to the font's encoding. The result is NFC-normalized.
func (f *Font) Decode(data []byte) string {
	var sb strings.Builder

	if f.twoByte {
		for i := 0; i+1 < len(data); i += 2 {
			code := uint32(data[i])<<8 | uint32(data[i+1])
			if s, ok := f.toUnicode.Lookup(code); ok {
				sb.WriteString(s)
			} else {
				sb.WriteRune(utf8.RuneError)
			}
		}
		if len(data)%2 != 0 {
			sb.WriteRune(rune(data[len(data)-1]))
		}
		return NormalizeUnicode(sb.String())
	}

	// Strings with a byte order mark are already UTF-16.
	if f.toUnicode == nil && len(data) >= 2 {
		if data[0] == 0xFE && data[1] == 0xFF {
			return NormalizeUnicode(DecodeUTF16BE(data[2:]))
		}
		if data[0] == 0xFF && data[1] == 0xFE {
			return NormalizeUnicode(DecodeUTF16LE(data[2:]))
		}
	}

	enc := f.encoding
	if enc == nil {
		enc = WinAnsiEncoding
	}
	for _, b := range data {
		if s, ok := f.toUnicode.Lookup(uint32(b)); ok {
			sb.WriteString(s)
			continue
		}
		sb.WriteRune(enc.Decode(b))
	}
	return NormalizeUnicode(sb.String())
}

// Advance returns the horizontal displacement, in text space units, that
// showing data at the given font size produces.
//
// Composite fonts consult the descendant font's width table per CID.
// Simple fonts use /Widths, then the standard 14 tables, then a default
// of half an em per byte, which is also the approximation used when a
// font carries no metrics at all.
func (f *Font) Advance(data []byte, fontSize float64) float64 {
	if f.twoByte {
		total := 0.0
		for i := 0; i+1 < len(data); i += 2 {
			cid := int(uint32(data[i])<<8 | uint32(data[i+1]))
			total += f.cidWidth(cid)
		}
		if len(data)%2 != 0 {
			total += 500
		}
		return total / 1000 * fontSize
	}

	if len(f.codeWidths) == 0 && f.stdWidths == nil {
		return float64(len(data)) * fontSize * 0.5
	}

	total := 0.0
	for _, b := range data {
		total += f.codeWidth(b)
	}
	return total / 1000 * fontSize
}

func (f *Font) codeWidth(b byte) float64 {
	idx := int(b) - f.firstChar
	if idx >= 0 && idx < len(f.codeWidths) {
		return f.codeWidths[idx]
	}
	if f.stdWidths != nil {
		enc := f.encoding
		if enc == nil {
			enc = WinAnsiEncoding
		}
		if w, ok := f.stdWidths[enc.Decode(b)]; ok {
			return w
		}
	}
	return 500
}

func (f *Font) cidWidth(cid int) float64 {
	if f.descendant != nil {
		return f.descendant.WidthForCID(cid)
	}
	return 1000
}

// IsStandardFont reports whether BaseFont names one of the standard 14
// base fonts.
func (f *Font) IsStandardFont() bool {
	return standardWidthTable(f.BaseFont) != nil
}

// IsVertical reports whether the font selects vertical writing mode
// (Identity-V composite fonts).
func (f *Font) IsVertical() bool {
	return f.vertical
}

// resolved follows an indirect reference when a resolver is available.
// Resolution failures degrade to Null so loading continues with defaults.
func resolved(res Resolver, obj core.Object) core.Object {
	if obj == nil || res == nil {
		return obj
	}
	out, err := res.Resolve(obj)
	if err != nil {
		return core.Null{}
	}
	return out
}
