package font

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Encoding maps single-byte character codes to Unicode.
type Encoding interface {
	// Name returns the PDF name of the encoding.
	Name() string

	// Decode maps one character code to a rune. Codes with no mapping
	// decode to utf8.RuneError.
	Decode(b byte) rune

	// DecodeString decodes a byte sequence one code at a time.
	DecodeString(data []byte) string
}

// tableEncoding is a 256-entry code to rune table.
type tableEncoding struct {
	name  string
	table [256]rune
}

func (e *tableEncoding) Name() string { return e.name }

func (e *tableEncoding) Decode(b byte) rune { return e.table[b] }

func (e *tableEncoding) DecodeString(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(e.table[b])
	}
	return sb.String()
}

// charmapTable builds a decode table from an x/text character map.
// Codes the map leaves undefined come back as utf8.RuneError.
func charmapTable(cm *charmap.Charmap) [256]rune {
	var t [256]rune
	for i := 0; i < 256; i++ {
		t[i] = cm.DecodeByte(byte(i))
	}
	return t
}

// latin1Table is the identity mapping into the Latin-1 range, used as the
// base layer for the hand-built PDF encodings below.
func latin1Table() [256]rune {
	var t [256]rune
	for i := 0; i < 256; i++ {
		t[i] = rune(i)
	}
	return t
}

// WinAnsiEncoding is Windows code page 1252, the default encoding for
// simple fonts that declare none.
var WinAnsiEncoding Encoding = &tableEncoding{
	name:  "WinAnsiEncoding",
	table: charmapTable(charmap.Windows1252),
}

// MacRomanEncoding is the classic Mac OS Roman encoding.
var MacRomanEncoding Encoding = &tableEncoding{
	name:  "MacRomanEncoding",
	table: charmapTable(charmap.Macintosh),
}

// PDFDocEncoding is the encoding used for text strings outside content
// streams (document metadata, outline titles).
var PDFDocEncoding Encoding = &tableEncoding{
	name:  "PDFDocEncoding",
	table: pdfDocTable(),
}

// StandardEncodingTable is Adobe StandardEncoding, the default base for
// Type1 fonts with a Differences-only encoding dictionary.
var StandardEncodingTable Encoding = &tableEncoding{
	name:  "StandardEncoding",
	table: standardTable(),
}

func pdfDocTable() [256]rune {
	t := latin1Table()
	diffs := map[byte]rune{
		0x18: '˘', // breve
		0x19: 'ˇ', // caron
		0x1A: 'ˆ', // circumflex
		0x1B: '˙', // dotaccent
		0x1C: '˝', // hungarumlaut
		0x1D: '˛', // ogonek
		0x1E: '˚', // ring
		0x1F: '˜', // tilde
		0x7F: utf8.RuneError,
		0x80: '•', // bullet
		0x81: '†', // dagger
		0x82: '‡', // daggerdbl
		0x83: '…', // ellipsis
		0x84: '—', // emdash
		0x85: '–', // endash
		0x86: 'ƒ', // florin
		0x87: '⁄', // fraction
		0x88: '‹', // guilsinglleft
		0x89: '›', // guilsinglright
		0x8A: '−', // minus
		0x8B: '‰', // perthousand
		0x8C: '„', // quotedblbase
		0x8D: '“', // quotedblleft
		0x8E: '”', // quotedblright
		0x8F: '‘', // quoteleft
		0x90: '’', // quoteright
		0x91: '‚', // quotesinglbase
		0x92: '™', // trademark
		0x93: 'ﬁ', // fi
		0x94: 'ﬂ', // fl
		0x95: 'Ł', // Lslash
		0x96: 'Œ', // OE
		0x97: 'Š', // Scaron
		0x98: 'Ÿ', // Ydieresis
		0x99: 'Ž', // Zcaron
		0x9A: 'ı', // dotlessi
		0x9B: 'ł', // lslash
		0x9C: 'œ', // oe
		0x9D: 'š', // scaron
		0x9E: 'ž', // zcaron
		0x9F: utf8.RuneError,
		0xA0: '€', // Euro
		0xAD: utf8.RuneError,
	}
	for b, r := range diffs {
		t[b] = r
	}
	return t
}

func standardTable() [256]rune {
	var t [256]rune
	for i := 0; i < 256; i++ {
		t[i] = utf8.RuneError
	}
	for i := 0x20; i <= 0x7E; i++ {
		t[i] = rune(i)
	}
	// StandardEncoding places typographic quotes at the ASCII
	// apostrophe and grave positions.
	diffs := map[byte]rune{
		0x27: '’', // quoteright
		0x60: '‘', // quoteleft
		0xA1: '¡', // exclamdown
		0xA2: '¢', // cent
		0xA3: '£', // sterling
		0xA4: '⁄', // fraction
		0xA5: '¥', // yen
		0xA6: 'ƒ', // florin
		0xA7: '§', // section
		0xA8: '¤', // currency
		0xA9: '\'',     // quotesingle
		0xAA: '“', // quotedblleft
		0xAB: '«', // guillemotleft
		0xAC: '‹', // guilsinglleft
		0xAD: '›', // guilsinglright
		0xAE: 'ﬁ', // fi
		0xAF: 'ﬂ', // fl
		0xB1: '–', // endash
		0xB2: '†', // dagger
		0xB3: '‡', // daggerdbl
		0xB4: '·', // periodcentered
		0xB6: '¶', // paragraph
		0xB7: '•', // bullet
		0xB8: '‚', // quotesinglbase
		0xB9: '„', // quotedblbase
		0xBA: '”', // quotedblright
		0xBB: '»', // guillemotright
		0xBC: '…', // ellipsis
		0xBD: '‰', // perthousand
		0xBF: '¿', // questiondown
		0xC1: '`',      // grave
		0xC2: '´', // acute
		0xC3: 'ˆ', // circumflex
		0xC4: '˜', // tilde
		0xC5: '¯', // macron
		0xC6: '˘', // breve
		0xC7: '˙', // dotaccent
		0xC8: '¨', // dieresis
		0xCA: '˚', // ring
		0xCB: '¸', // cedilla
		0xCD: '˝', // hungarumlaut
		0xCE: '˛', // ogonek
		0xCF: 'ˇ', // caron
		0xD0: '—', // emdash
		0xE1: 'Æ', // AE
		0xE3: 'ª', // ordfeminine
		0xE8: 'Ł', // Lslash
		0xE9: 'Ø', // Oslash
		0xEA: 'Œ', // OE
		0xEB: 'º', // ordmasculine
		0xF1: 'æ', // ae
		0xF5: 'ı', // dotlessi
		0xF8: 'ł', // lslash
		0xF9: 'ø', // oslash
		0xFA: 'œ', // oe
		0xFB: 'ß', // germandbls
	}
	for b, r := range diffs {
		t[b] = r
	}
	return t
}

// GetEncoding returns the named base encoding. Unknown names fall back
// to WinAnsiEncoding.
func GetEncoding(name string) Encoding {
	switch name {
	case "WinAnsiEncoding":
		return WinAnsiEncoding
	case "MacRomanEncoding":
		return MacRomanEncoding
	case "PDFDocEncoding":
		return PDFDocEncoding
	case "StandardEncoding":
		return StandardEncodingTable
	default:
		return WinAnsiEncoding
	}
}

// DecodeWithEncoding decodes data using the named base encoding.
func DecodeWithEncoding(data []byte, encodingName string) string {
	return GetEncoding(encodingName).DecodeString(data)
}

// customEncoding overlays per-code replacements on a base encoding,
// as produced by an /Encoding dictionary's /Differences array.
type customEncoding struct {
	base  Encoding
	diffs map[byte]rune
}

func (e *customEncoding) Name() string { return e.base.Name() + "+custom" }

func (e *customEncoding) Decode(b byte) rune {
	if r, ok := e.diffs[b]; ok {
		return r
	}
	return e.base.Decode(b)
}

func (e *customEncoding) DecodeString(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(e.Decode(b))
	}
	return sb.String()
}

// NewCustomEncoding builds an encoding that overrides individual codes
// of base with explicit runes.
func NewCustomEncoding(base Encoding, differences map[byte]rune) Encoding {
	diffs := make(map[byte]rune, len(differences))
	for b, r := range differences {
		diffs[b] = r
	}
	return &customEncoding{base: base, diffs: diffs}
}

// NewCustomEncodingFromGlyphs builds an encoding that overrides codes of
// base by glyph name. Names not in the glyph table keep the base mapping.
func NewCustomEncodingFromGlyphs(base Encoding, differences map[byte]string) Encoding {
	diffs := make(map[byte]rune, len(differences))
	for b, name := range differences {
		if r, ok := glyphNameToUnicode[name]; ok {
			diffs[b] = r
		}
	}
	return &customEncoding{base: base, diffs: diffs}
}

// NormalizeUnicode normalizes decoded text to NFC so that composed and
// decomposed spellings of the same character compare equal.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// DecodeUTF16BE decodes big-endian UTF-16 without a byte order mark.
// Unpaired surrogates become the replacement character; a trailing odd
// byte is dropped.
func DecodeUTF16BE(data []byte) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
	}
	return string(utf16.Decode(units))
}

// DecodeUTF16LE decodes little-endian UTF-16 without a byte order mark.
func DecodeUTF16LE(data []byte) string {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
	}
	return string(utf16.Decode(units))
}

// IsValidUTF8 reports whether s is well-formed UTF-8.
func IsValidUTF8(s string) bool {
	return utf8.ValidString(s)
}

// glyphNameToUnicode maps Adobe glyph names to runes. This covers the
// names that turn up in /Differences arrays of text-bearing documents:
// ASCII, Latin-1 letters, typographic punctuation and common symbols.
// Letters and digits are filled in by init.
var glyphNameToUnicode = map[string]rune{
	// ASCII punctuation
	"space":        ' ',
	"exclam":       '!',
	"quotedbl":     '"',
	"numbersign":   '#',
	"dollar":       '$',
	"percent":      '%',
	"ampersand":    '&',
	"quotesingle":  '\'',
	"parenleft":    '(',
	"parenright":   ')',
	"asterisk":     '*',
	"plus":         '+',
	"comma":        ',',
	"hyphen":       '-',
	"period":       '.',
	"slash":        '/',
	"colon":        ':',
	"semicolon":    ';',
	"less":         '<',
	"equal":        '=',
	"greater":      '>',
	"question":     '?',
	"at":           '@',
	"bracketleft":  '[',
	"backslash":    '\\',
	"bracketright": ']',
	"asciicircum":  '^',
	"underscore":   '_',
	"grave":        '`',
	"braceleft":    '{',
	"bar":          '|',
	"braceright":   '}',
	"asciitilde":   '~',

	// Typographic punctuation
	"quoteleft":      '‘',
	"quoteright":     '’',
	"quotedblleft":   '“',
	"quotedblright":  '”',
	"quotesinglbase": '‚',
	"quotedblbase":   '„',
	"endash":         '–',
	"emdash":         '—',
	"bullet":         '•',
	"dagger":         '†',
	"daggerdbl":      '‡',
	"ellipsis":       '…',
	"perthousand":    '‰',
	"fraction":       '⁄',
	"guilsinglleft":  '‹',
	"guilsinglright": '›',
	"guillemotleft":  '«',
	"guillemotright": '»',
	"exclamdown":     '¡',
	"questiondown":   '¿',
	"periodcentered": '·',
	"minus":          '−',

	// Symbols and currency
	"Euro":        '€',
	"cent":        '¢',
	"sterling":    '£',
	"yen":         '¥',
	"currency":    '¤',
	"florin":      'ƒ',
	"trademark":   '™',
	"copyright":   '©',
	"registered":  '®',
	"degree":      '°',
	"plusminus":   '±',
	"paragraph":   '¶',
	"section":     '§',
	"brokenbar":   '¦',
	"logicalnot":  '¬',
	"ordfeminine": 'ª',
	"ordmasculine": 'º',
	"onequarter":    '¼',
	"onehalf":       '½',
	"threequarters": '¾',
	"onesuperior":   '¹',
	"twosuperior":   '²',
	"threesuperior": '³',
	"multiply":      '×',
	"divide":        '÷',
	"mu":            'µ',

	// Diacritic marks
	"dieresis":     '¨',
	"acute":        '´',
	"cedilla":      '¸',
	"macron":       '¯',
	"circumflex":   'ˆ',
	"tilde":        '˜',
	"caron":        'ˇ',
	"breve":        '˘',
	"dotaccent":    '˙',
	"ring":         '˚',
	"ogonek":       '˛',
	"hungarumlaut": '˝',

	// Latin-1 letters
	"Agrave":      'À',
	"Aacute":      'Á',
	"Acircumflex": 'Â',
	"Atilde":      'Ã',
	"Adieresis":   'Ä',
	"Aring":       'Å',
	"AE":          'Æ',
	"Ccedilla":    'Ç',
	"Egrave":      'È',
	"Eacute":      'É',
	"Ecircumflex": 'Ê',
	"Edieresis":   'Ë',
	"Igrave":      'Ì',
	"Iacute":      'Í',
	"Icircumflex": 'Î',
	"Idieresis":   'Ï',
	"Eth":         'Ð',
	"Ntilde":      'Ñ',
	"Ograve":      'Ò',
	"Oacute":      'Ó',
	"Ocircumflex": 'Ô',
	"Otilde":      'Õ',
	"Odieresis":   'Ö',
	"Oslash":      'Ø',
	"Ugrave":      'Ù',
	"Uacute":      'Ú',
	"Ucircumflex": 'Û',
	"Udieresis":   'Ü',
	"Yacute":      'Ý',
	"Thorn":       'Þ',
	"germandbls":  'ß',
	"agrave":      'à',
	"aacute":      'á',
	"acircumflex": 'â',
	"atilde":      'ã',
	"adieresis":   'ä',
	"aring":       'å',
	"ae":          'æ',
	"ccedilla":    'ç',
	"egrave":      'è',
	"eacute":      'é',
	"ecircumflex": 'ê',
	"edieresis":   'ë',
	"igrave":      'ì',
	"iacute":      'í',
	"icircumflex": 'î',
	"idieresis":   'ï',
	"eth":         'ð',
	"ntilde":      'ñ',
	"ograve":      'ò',
	"oacute":      'ó',
	"ocircumflex": 'ô',
	"otilde":      'õ',
	"odieresis":   'ö',
	"oslash":      'ø',
	"ugrave":      'ù',
	"uacute":      'ú',
	"ucircumflex": 'û',
	"udieresis":   'ü',
	"yacute":      'ý',
	"thorn":       'þ',
	"ydieresis":   'ÿ',

	// Latin Extended and ligatures
	"Lslash":    'Ł',
	"lslash":    'ł',
	"OE":        'Œ',
	"oe":        'œ',
	"Scaron":    'Š',
	"scaron":    'š',
	"Ydieresis": 'Ÿ',
	"Zcaron":    'Ž',
	"zcaron":    'ž',
	"dotlessi":  'ı',
	"fi":        'ﬁ',
	"fl":        'ﬂ',
}

func init() {
	for r := 'A'; r <= 'Z'; r++ {
		glyphNameToUnicode[string(r)] = r
	}
	for r := 'a'; r <= 'z'; r++ {
		glyphNameToUnicode[string(r)] = r
	}
	digits := []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	for i, name := range digits {
		glyphNameToUnicode[name] = rune('0' + i)
	}
}
