// Package font resolves PDF font dictionaries into text decoders.
//
// A [Font] is built from the font dictionary referenced by a page's
// resource dictionary and answers the two questions text extraction
// asks: what Unicode text does a show-operator string carry, and how far
// does showing it move the text position.
//
// # Font Creation
//
//	f, err := font.New(fontDict, resolver)
//
// Simple fonts (Type1, TrueType, Type3) always load; missing information
// degrades to WinAnsiEncoding and approximated metrics. Composite Type0
// fonts require a ToUnicode CMap and otherwise fail with
// [ErrUnsupportedFont].
//
// # Decoding
//
//	text := f.Decode(raw)
//
// Decoding priority for simple fonts: the ToUnicode CMap, then the
// encoding from /Encoding (a name, or a dictionary with /BaseEncoding
// and /Differences), then WinAnsiEncoding. Composite fonts consume
// two-byte codes through their ToUnicode CMap; unmapped codes become
// U+FFFD. All output is NFC-normalized.
//
// # Metrics
//
//	dx := f.Advance(raw, fontSize)
//
// Widths come from /Widths with /FirstChar, from built-in tables for the
// standard 14 base fonts, or from the descendant CIDFont's W array; a
// font with no metrics advances half an em per byte.
//
// # Encodings
//
// The package also exports the base encoding tables (WinAnsiEncoding,
// MacRomanEncoding, PDFDocEncoding, StandardEncodingTable) and helpers
// for building custom encodings from /Differences glyph names.
package font
