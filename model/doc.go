// Package model provides the intermediate representation for extracted
// document content.
//
// This package defines the user-facing data structures that the extraction
// pipeline produces: every parsing, clustering, and classification stage
// ultimately emits these types, and the renderers consume nothing else.
//
// # Text Spans
//
// A [TextSpan] is one positioned run of text from a content stream, in PDF
// user-space coordinates (origin bottom-left, Y growing upward). Spans are
// the raw material for table extraction and layout classification.
//
// # Tables
//
// A [Table] is rectangular: each row holds exactly NumColumns cells, with
// empty strings standing in for cells the page left blank.
//
// # Layout Elements
//
// Classified page content implements the [Element] interface, discriminated
// by Type(). The concrete types are:
//
//   - [Heading] - a heading line with level 1-3
//   - [Paragraph] - body lines merged into one block
//   - [TableBlock] - a detected table
//
// Elements arrive in reading order (top of the page first).
//
// # Geometry
//
// [Point] and [Matrix] are the geometric primitives the content stream
// interpreter positions spans with. Matrix follows the PDF convention:
// six coefficients, points transformed as row vectors.
package model
