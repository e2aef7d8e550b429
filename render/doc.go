// Package render turns extracted content into output strings.
//
// Every function here is a pure transform over the model types: tables
// render to CSV, TSV, or aligned text; classified layout elements
// render to plain text or Markdown; raw spans render to a positioned
// diagnostic dump. Nothing in this package touches the PDF itself.
//
// # Output conventions
//
// Table renderers emit rows joined with newlines and no trailing
// newline. Element renderers separate blocks with blank lines and end
// non-empty output with exactly one trailing newline.
//
// CSV quoting follows RFC 4180: cells containing commas, quotes, or
// line breaks are wrapped in double quotes with embedded quotes
// doubled. TSV has no quoting mechanism, so embedded tabs are replaced
// with spaces. Markdown pipe characters are escaped as \|.
package render
