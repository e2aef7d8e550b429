// Package pages provides PDF page tree traversal and page access.
//
// This package handles the hierarchical page tree structure in PDFs,
// flattening it into the document-order list of leaf pages.
//
// # Page Tree
//
// PDF documents organize pages in a tree of /Pages nodes with /Page
// leaves. The [PageTree] type walks this hierarchy depth-first:
//
//	tree := pages.NewPageTree(pagesDict, resolver)
//	count, _ := tree.Count()
//	page, _ := tree.GetPage(0)  // 0-indexed
//
// The walk is guarded against cycles and runaway nesting, both of which
// occur in corrupt files. Nodes without a /Type entry are accepted as
// leaves when they carry /Contents or /MediaBox, matching how malformed
// real-world files are usually meant.
//
// # Inheritable Attributes
//
// MediaBox, Resources, and Rotate may be set on any ancestor /Pages node
// instead of the page itself. The walk carries these values down, so a
// [Page] always answers with the nearest definition on its path from the
// root.
//
// # Page Access
//
// The [Page] type represents a single PDF page with:
//
//   - MediaBox - page dimensions
//   - Rotation - page rotation (0, 90, 180, 270)
//   - Resources - fonts and other named resources
//   - ContentData - decoded content stream bytes
//
// ContentData concatenates a /Contents array in order, separating the
// parts with newlines.
//
// # Object Resolution
//
// The [ObjectResolver] interface abstracts object lookup:
//
//	type ObjectResolver interface {
//	    Resolve(obj core.Object) (core.Object, error)
//	}
//
// This allows the page tree to resolve indirect references without
// depending on the full reader implementation.
package pages
