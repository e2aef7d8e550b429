// Package reader ties the lower layers together into a document reader:
// it parses the cross-reference chain, resolves indirect objects on
// demand, walks the page tree, and runs the content-stream interpreter
// over a page to produce positioned text spans.
//
// # Opening documents
//
// Use [Open] for a file on disk or [Parse] for bytes already in memory:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	count, err := r.PageCount()
//
// # Object resolution
//
// The Reader loads objects lazily through the merged cross-reference
// table and caches them by object number:
//
//   - GetObject(objNum) - load an object by number
//   - Resolve(obj) - follow a chain of indirect references
//
// Resolution is forgiving. A reference to a missing or free object
// degrades to [core.Null] and records a [Warning] instead of failing the
// document, so one dangling pointer does not lose the rest of a page.
//
// # Text extraction
//
//   - ExtractPageSpans(i) - positioned spans in content stream order
//   - ExtractPageText(i) - spans assembled into plain text lines
//
// Fonts referenced by a page load once and are cached by object number.
// A font that cannot be loaded is skipped with a warning; its text
// decodes through WinAnsiEncoding instead of being dropped.
package reader
