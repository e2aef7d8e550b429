package pages

import (
	"fmt"

	"github.com/yosephbernandus/pdf-parser/core"
)

// maxTreeDepth bounds page tree nesting so a malformed Kids structure
// cannot recurse without end.
const maxTreeDepth = 50

// ObjectResolver is the reference resolution the page tree needs.
type ObjectResolver interface {
	Resolve(obj core.Object) (core.Object, error)
}

// Catalog represents the PDF document catalog (root of document structure)
type Catalog struct {
	dict     core.Dict
	resolver ObjectResolver
}

// NewCatalog creates a catalog from the dictionary the trailer's /Root
// points at.
func NewCatalog(dict core.Dict, resolver ObjectResolver) *Catalog {
	return &Catalog{
		dict:     dict,
		resolver: resolver,
	}
}

// Pages returns the page tree root dictionary.
func (c *Catalog) Pages() (core.Dict, error) {
	pagesRef := c.dict.Get("Pages")
	if pagesRef == nil {
		return nil, fmt.Errorf("catalog missing /Pages entry")
	}

	pagesObj, err := c.resolver.Resolve(pagesRef)
	if err != nil {
		return nil, fmt.Errorf("resolve /Pages: %w", err)
	}

	pagesDict, ok := pagesObj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("/Pages is %s, not a dictionary", pagesObj.Type())
	}
	return pagesDict, nil
}

// Version returns the catalog /Version entry if present.
func (c *Catalog) Version() string {
	if name, ok := c.dict.GetName("Version"); ok {
		return string(name)
	}
	return ""
}

// inherited carries the attribute values gathered on the path from the
// tree root down to a leaf. A node's own value shadows its ancestors'.
type inherited struct {
	mediaBox  core.Object
	resources core.Object
	rotate    core.Object
}

// PageTree flattens the document's page tree into its leaf pages.
type PageTree struct {
	root     core.Dict
	resolver ObjectResolver
	pages    []*Page // memoized depth-first leaf order
}

// NewPageTree creates a page tree rooted at the given Pages dictionary.
func NewPageTree(root core.Dict, resolver ObjectResolver) *PageTree {
	return &PageTree{
		root:     root,
		resolver: resolver,
	}
}

// Pages returns all leaf pages in document order.
func (t *PageTree) Pages() ([]*Page, error) {
	if t.pages == nil {
		if err := t.loadPages(); err != nil {
			return nil, err
		}
	}
	return t.pages, nil
}

// Count returns the number of leaf pages found by walking the tree. The
// declared /Count entry is not trusted.
func (t *PageTree) Count() (int, error) {
	pages, err := t.Pages()
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// GetPage returns the page at the given index (0-based).
func (t *PageTree) GetPage(index int) (*Page, error) {
	pages, err := t.Pages()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(pages))
	}
	return pages[index], nil
}

func (t *PageTree) loadPages() error {
	t.pages = make([]*Page, 0)
	if err := t.walk(t.root, inherited{}, make(map[int]bool), 0); err != nil {
		t.pages = nil
		return fmt.Errorf("page tree: %w", err)
	}
	return nil
}

// walk visits a tree node depth-first, carrying inheritable attributes
// down and appending each leaf to the flattened list. visiting holds the
// object numbers on the current path, so a Kids entry that loops back to
// an ancestor is caught.
func (t *PageTree) walk(node core.Dict, inh inherited, visiting map[int]bool, depth int) error {
	if depth > maxTreeDepth {
		return fmt.Errorf("nested deeper than %d levels", maxTreeDepth)
	}

	if v := node.Get("MediaBox"); v != nil {
		inh.mediaBox = v
	}
	if v := node.Get("Resources"); v != nil {
		inh.resources = v
	}
	if v := node.Get("Rotate"); v != nil {
		inh.rotate = v
	}

	typeName, _ := node.GetName("Type")
	switch typeName {
	case "Pages":
		kidsObj := node.Get("Kids")
		if kidsObj == nil {
			return fmt.Errorf("Pages node missing /Kids entry")
		}
		kidsResolved, err := t.resolver.Resolve(kidsObj)
		if err != nil {
			return fmt.Errorf("resolve /Kids: %w", err)
		}
		kids, ok := kidsResolved.(core.Array)
		if !ok {
			return fmt.Errorf("/Kids is %s, not an array", kidsResolved.Type())
		}

		for i, kidObj := range kids {
			if ref, isRef := kidObj.(core.IndirectRef); isRef {
				if visiting[ref.Number] {
					return fmt.Errorf("cycle at object %d", ref.Number)
				}
				visiting[ref.Number] = true
			}

			kidResolved, err := t.resolver.Resolve(kidObj)
			if err != nil {
				return fmt.Errorf("resolve kid %d: %w", i, err)
			}
			kidDict, ok := kidResolved.(core.Dict)
			if !ok {
				return fmt.Errorf("kid %d is %s, not a dictionary", i, kidResolved.Type())
			}

			if err := t.walk(kidDict, inh, visiting, depth+1); err != nil {
				return err
			}

			if ref, isRef := kidObj.(core.IndirectRef); isRef {
				delete(visiting, ref.Number)
			}
		}
		return nil

	case "Page":
		t.pages = append(t.pages, newPage(node, inh, t.resolver))
		return nil

	default:
		// Real-world files sometimes omit /Type. A node that carries
		// page-like entries is taken as a leaf; anything else is skipped.
		if node.Has("Contents") || node.Has("MediaBox") {
			t.pages = append(t.pages, newPage(node, inh, t.resolver))
		}
		return nil
	}
}

// Page represents a single PDF page with its inherited attributes.
type Page struct {
	dict     core.Dict
	inh      inherited
	resolver ObjectResolver
}

func newPage(dict core.Dict, inh inherited, resolver ObjectResolver) *Page {
	return &Page{
		dict:     dict,
		inh:      inh,
		resolver: resolver,
	}
}

// Type returns the page dictionary's /Type entry, empty when absent.
func (p *Page) Type() string {
	typeName, _ := p.dict.GetName("Type")
	return string(typeName)
}

// MediaBox returns the page media box [x1 y1 x2 y2], own or inherited.
func (p *Page) MediaBox() ([]float64, error) {
	if p.inh.mediaBox == nil {
		return nil, fmt.Errorf("page has no /MediaBox, own or inherited")
	}

	resolved, err := p.resolver.Resolve(p.inh.mediaBox)
	if err != nil {
		return nil, fmt.Errorf("resolve /MediaBox: %w", err)
	}
	arr, ok := resolved.(core.Array)
	if !ok {
		return nil, fmt.Errorf("/MediaBox is %s, not an array", resolved.Type())
	}
	if arr.Len() != 4 {
		return nil, fmt.Errorf("/MediaBox has %d elements, want 4", arr.Len())
	}

	box := make([]float64, 4)
	for i := range box {
		n, ok := arr.GetNumber(i)
		if !ok {
			return nil, fmt.Errorf("/MediaBox element %d is not a number", i)
		}
		box[i] = n
	}
	return box, nil
}

// Resources returns the page resources dictionary, own or inherited.
// A page without resources returns nil; text extraction still proceeds
// with default font handling.
func (p *Page) Resources() (core.Dict, error) {
	if p.inh.resources == nil {
		return nil, nil
	}

	resolved, err := p.resolver.Resolve(p.inh.resources)
	if err != nil {
		return nil, fmt.Errorf("resolve /Resources: %w", err)
	}
	dict, ok := resolved.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("/Resources is %s, not a dictionary", resolved.Type())
	}
	return dict, nil
}

// Rotate returns the page rotation in degrees, own or inherited, 0 when
// absent or unreadable.
func (p *Page) Rotate() int {
	if p.inh.rotate == nil {
		return 0
	}
	resolved, err := p.resolver.Resolve(p.inh.rotate)
	if err != nil {
		return 0
	}
	if rotate, ok := resolved.(core.Int); ok {
		return int(rotate)
	}
	return 0
}

// Width returns the page width from the media box.
func (p *Page) Width() (float64, error) {
	box, err := p.MediaBox()
	if err != nil {
		return 0, err
	}
	return box[2] - box[0], nil
}

// Height returns the page height from the media box.
func (p *Page) Height() (float64, error) {
	box, err := p.MediaBox()
	if err != nil {
		return 0, err
	}
	return box[3] - box[1], nil
}

// ContentData returns the page's decoded content stream bytes. A
// /Contents array is concatenated in order with a newline appended after
// each part, so an operator cannot fuse with the start of the next part.
// A page without contents returns nil.
func (p *Page) ContentData() ([]byte, error) {
	contentsObj := p.dict.Get("Contents")
	if contentsObj == nil {
		return nil, nil
	}

	resolved, err := p.resolver.Resolve(contentsObj)
	if err != nil {
		return nil, fmt.Errorf("resolve /Contents: %w", err)
	}

	switch v := resolved.(type) {
	case *core.Stream:
		data, err := v.Decoded()
		if err != nil {
			return nil, fmt.Errorf("decode content stream: %w", err)
		}
		return data, nil

	case core.Array:
		var buf []byte
		for i, elem := range v {
			elemResolved, err := p.resolver.Resolve(elem)
			if err != nil {
				return nil, fmt.Errorf("resolve content stream %d: %w", i, err)
			}
			stream, ok := elemResolved.(*core.Stream)
			if !ok {
				return nil, fmt.Errorf("content stream %d is %s, not a stream", i, elemResolved.Type())
			}
			data, err := stream.Decoded()
			if err != nil {
				return nil, fmt.Errorf("decode content stream %d: %w", i, err)
			}
			buf = append(buf, data...)
			buf = append(buf, '\n')
		}
		return buf, nil

	default:
		return nil, fmt.Errorf("/Contents is %s, not a stream or array", resolved.Type())
	}
}
