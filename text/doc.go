// Package text executes the text operators of PDF content streams.
//
// This package turns parsed content stream operations into positioned
// text spans, tracking the graphics state stack, the text and line
// matrices, and per-font decoding along the way.
//
// # Interpretation
//
// The [Interpreter] type walks content stream operations and emits one
// [model.TextSpan] per show operation:
//
//	in := text.NewInterpreter(fonts)
//	spans, err := in.Run(contentData)
//
// Fonts are keyed by resource name as referenced by Tf operands. Show
// strings for resources without a registered font decode through
// WinAnsiEncoding with approximated widths.
//
// # Positioning
//
// A span's position is the text origin at the moment of its show
// operation, mapped through the CTM into device space. The pen then
// advances by the glyph-run width plus character and word spacing, so
// consecutive shows on one line land at increasing x. TJ arrays apply
// their numeric elements as kerning adjustments of -n/1000 of the font
// size.
//
// # Damage Tolerance
//
// Operators outside the text subset are ignored, operations with
// missing or mistyped operands are skipped, and an unbalanced Q leaves
// the state untouched. Interpretation never fails on malformed input.
package text
