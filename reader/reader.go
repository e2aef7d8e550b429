package reader

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/yosephbernandus/pdf-parser/core"
	"github.com/yosephbernandus/pdf-parser/font"
	"github.com/yosephbernandus/pdf-parser/model"
	"github.com/yosephbernandus/pdf-parser/pages"
	"github.com/yosephbernandus/pdf-parser/resolver"
	"github.com/yosephbernandus/pdf-parser/text"
)

// ErrPageOutOfRange is returned when a page index falls outside the
// document's page range.
var ErrPageOutOfRange = errors.New("pdf: page out of range")

// lineTolerance is the vertical distance in points within which spans
// are treated as sharing a text line.
const lineTolerance = 3.0

// Warning describes a non-fatal issue encountered while reading a
// document. Processing continues past the condition it records.
type Warning struct {
	Page    int // 1-based page number, 0 when not tied to a page
	Message string
}

// PDFVersion represents a PDF version
type PDFVersion struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Reader reads a PDF document held in memory. It resolves objects
// lazily through the cross-reference table and caches what it loads.
// The cache has no locking; a Reader is not safe for concurrent use.
type Reader struct {
	data    []byte
	version PDFVersion

	xref    *core.XRefTable
	trailer core.Dict

	objCache map[int]core.Object
	// loading holds object numbers currently being parsed, so an object
	// whose stream /Length refers back to itself cannot recurse.
	loading map[int]bool

	res  *resolver.ObjectResolver
	tree *pages.PageTree

	// fontCache is keyed by font object number, so a font shared across
	// pages loads once and a broken one warns once.
	fontCache map[int]*font.Font

	warnings []Warning
}

// Ensure Reader satisfies the resolution interfaces it is passed as.
var (
	_ pages.ObjectResolver   = (*Reader)(nil)
	_ core.ReferenceResolver = (*Reader)(nil)
)

var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)`)

// Parse reads a PDF document from data. It verifies the %PDF- header,
// loads the cross-reference chain and the trailer, and checks that a
// document catalog is present. The page tree is not walked until pages
// are asked for.
func Parse(data []byte) (*Reader, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("pdf: data does not start with %%PDF- header")
	}

	r := &Reader{
		data:      data,
		objCache:  make(map[int]core.Object),
		loading:   make(map[int]bool),
		fontCache: make(map[int]*font.Font),
	}
	r.res = resolver.NewResolver(r)
	r.parseVersion()

	xrefParser := core.NewXRefParser(data)
	tables, err := xrefParser.ParseAllXRefs()
	if err != nil {
		return nil, fmt.Errorf("pdf: load cross-reference data: %w", err)
	}
	r.xref = core.MergeXRefTables(tables...)
	r.trailer = r.xref.Trailer

	if r.trailer.Get("Root") == nil {
		return nil, fmt.Errorf("pdf: trailer missing /Root entry")
	}

	return r, nil
}

// Open reads the file at path and parses it as a PDF document.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdf: open %s: %w", path, err)
	}
	return Parse(data)
}

// parseVersion extracts the version digits following the %PDF- prefix.
// A malformed version is recorded as a warning, not a failure.
func (r *Reader) parseVersion() {
	rest := r.data[5:]
	if end := bytes.IndexAny(rest, "\r\n"); end >= 0 {
		rest = rest[:end]
	}

	matches := versionRe.FindSubmatch(rest)
	if matches == nil {
		r.warnf(0, "unreadable version in header %q", string(r.data[:min(len(r.data), 16)]))
		return
	}

	fmt.Sscanf(string(matches[1]), "%d", &r.version.Major)
	fmt.Sscanf(string(matches[2]), "%d", &r.version.Minor)
}

// Version returns the PDF version from the file header.
func (r *Reader) Version() PDFVersion {
	return r.version
}

// Trailer returns the merged trailer dictionary.
func (r *Reader) Trailer() core.Dict {
	return r.trailer
}

// Warnings returns the non-fatal issues recorded so far, in the order
// they were encountered.
func (r *Reader) Warnings() []Warning {
	return r.warnings
}

func (r *Reader) warnf(page int, format string, args ...any) {
	r.warnings = append(r.warnings, Warning{
		Page:    page,
		Message: fmt.Sprintf(format, args...),
	})
}

// GetObject loads an object by its number, using the cache when the
// object has been loaded before.
func (r *Reader) GetObject(objNum int) (core.Object, error) {
	if obj, ok := r.objCache[objNum]; ok {
		return obj, nil
	}
	if r.loading[objNum] {
		return nil, fmt.Errorf("object %d needed while loading itself: %w", objNum, resolver.ErrCircularReference)
	}

	entry, ok := r.xref.Get(objNum)
	if !ok {
		return nil, fmt.Errorf("object %d not in cross-reference table: %w", objNum, core.ErrObjectNotFound)
	}
	if !entry.InUse {
		return nil, fmt.Errorf("object %d is marked free: %w", objNum, core.ErrObjectNotFound)
	}
	if entry.Offset < 0 || entry.Offset >= int64(len(r.data)) {
		return nil, fmt.Errorf("object %d offset %d outside file: %w", objNum, entry.Offset, core.ErrObjectNotFound)
	}

	r.loading[objNum] = true
	defer delete(r.loading, objNum)

	parser := core.NewParser(r.data)
	parser.SetReferenceResolver(r)
	parser.Seek(entry.Offset)

	indObj, err := parser.ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("parse object %d at offset %d: %w", objNum, entry.Offset, err)
	}
	if indObj.Ref.Number != objNum {
		return nil, fmt.Errorf("offset %d holds object %d, expected %d: %w",
			entry.Offset, indObj.Ref.Number, objNum, core.ErrObjectNotFound)
	}

	r.objCache[objNum] = indObj.Object
	return indObj.Object, nil
}

// ResolveReference resolves a single indirect reference. The generation
// number is not checked; the newest revision of the object wins.
func (r *Reader) ResolveReference(ref core.IndirectRef) (core.Object, error) {
	return r.GetObject(ref.Number)
}

// Resolve follows obj through any chain of indirect references. Broken
// references degrade to Null with a recorded warning, so one dangling
// pointer does not fail the document.
func (r *Reader) Resolve(obj core.Object) (core.Object, error) {
	resolved, err := r.res.Resolve(obj)
	if err != nil {
		if errors.Is(err, core.ErrObjectNotFound) ||
			errors.Is(err, resolver.ErrCircularReference) ||
			errors.Is(err, resolver.ErrDepthExceeded) {
			r.warnf(0, "reference degraded to null: %v", err)
			return core.Null{}, nil
		}
		return nil, err
	}
	return resolved, nil
}

// GetCatalog returns the document catalog (root object)
func (r *Reader) GetCatalog() (core.Dict, error) {
	obj, err := r.Resolve(r.trailer.Get("Root"))
	if err != nil {
		return nil, fmt.Errorf("resolve catalog: %w", err)
	}

	catalog, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("catalog is %s, not a dictionary", obj.Type())
	}
	return catalog, nil
}

// GetInfo returns the document info dictionary, or nil when the
// document has none.
func (r *Reader) GetInfo() (core.Dict, error) {
	infoObj := r.trailer.Get("Info")
	if infoObj == nil {
		return nil, nil
	}

	obj, err := r.Resolve(infoObj)
	if err != nil {
		return nil, fmt.Errorf("resolve info: %w", err)
	}

	info, ok := obj.(core.Dict)
	if !ok {
		return nil, nil
	}
	return info, nil
}

// NumObjects returns the object count the trailer declares.
func (r *Reader) NumObjects() int {
	if size, ok := r.trailer.GetInt("Size"); ok {
		return int(size)
	}
	return 0
}

// CacheSize returns the number of cached objects.
func (r *Reader) CacheSize() int {
	return len(r.objCache)
}

// ClearCache drops all cached objects and fonts. Useful for freeing
// memory between pages of a large document.
func (r *Reader) ClearCache() {
	r.objCache = make(map[int]core.Object)
	r.fontCache = make(map[int]*font.Font)
}

// ensureTree loads the page tree on first use.
func (r *Reader) ensureTree() error {
	if r.tree != nil {
		return nil
	}

	catalogDict, err := r.GetCatalog()
	if err != nil {
		return err
	}

	catalog := pages.NewCatalog(catalogDict, r)
	pagesDict, err := catalog.Pages()
	if err != nil {
		return err
	}

	r.tree = pages.NewPageTree(pagesDict, r)
	return nil
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() (int, error) {
	if err := r.ensureTree(); err != nil {
		return 0, err
	}
	return r.tree.Count()
}

// Page returns the page at the given index (0-based).
func (r *Reader) Page(index int) (*pages.Page, error) {
	if err := r.ensureTree(); err != nil {
		return nil, err
	}

	count, err := r.tree.Count()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= count {
		return nil, fmt.Errorf("page %d of %d: %w", index, count, ErrPageOutOfRange)
	}

	return r.tree.GetPage(index)
}

// ExtractPageSpans interprets the page's content streams and returns
// the positioned text spans, in content stream order.
func (r *Reader) ExtractPageSpans(pageIndex int) ([]model.TextSpan, error) {
	page, err := r.Page(pageIndex)
	if err != nil {
		return nil, err
	}

	content, err := page.ContentData()
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", pageIndex+1, err)
	}
	if len(content) == 0 {
		return nil, nil
	}

	in := text.NewInterpreter(r.pageFonts(page, pageIndex))
	spans, err := in.Run(content)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", pageIndex+1, err)
	}
	return spans, nil
}

// ExtractPageText assembles the page's spans into plain text: lines in
// top-to-bottom order, spans within a line left to right joined with
// spaces, lines joined with newlines.
func (r *Reader) ExtractPageText(pageIndex int) (string, error) {
	spans, err := r.ExtractPageSpans(pageIndex)
	if err != nil {
		return "", err
	}
	return assembleLines(spans), nil
}

// assembleLines orders spans into reading order. PDF y grows upward, so
// lines sort by descending y; a span within lineTolerance of the line's
// first span stays on that line.
func assembleLines(spans []model.TextSpan) string {
	if len(spans) == 0 {
		return ""
	}

	sorted := make([]model.TextSpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var sb strings.Builder
	lineY := sorted[0].Y
	sb.WriteString(sorted[0].Text)

	for _, span := range sorted[1:] {
		if math.Abs(span.Y-lineY) <= lineTolerance {
			sb.WriteString(" ")
		} else {
			sb.WriteString("\n")
			lineY = span.Y
		}
		sb.WriteString(span.Text)
	}

	return sb.String()
}

// pageFonts loads the page's font resources. Fonts that cannot be
// loaded are recorded as warnings and skipped; the interpreter falls
// back to WinAnsiEncoding for their text.
func (r *Reader) pageFonts(page *pages.Page, pageIndex int) map[string]*font.Font {
	fonts := make(map[string]*font.Font)

	resources, err := page.Resources()
	if err != nil {
		r.warnf(pageIndex+1, "resources unavailable: %v", err)
		return fonts
	}
	if resources == nil {
		return fonts
	}

	fontDictObj := resources.Get("Font")
	if fontDictObj == nil {
		return fonts
	}
	resolvedFonts, err := r.Resolve(fontDictObj)
	if err != nil {
		r.warnf(pageIndex+1, "font resources unavailable: %v", err)
		return fonts
	}
	fontDict, ok := resolvedFonts.(core.Dict)
	if !ok {
		if _, isNull := resolvedFonts.(core.Null); !isNull {
			r.warnf(pageIndex+1, "font resources are %s, not a dictionary", resolvedFonts.Type())
		}
		return fonts
	}

	for _, name := range fontDict.Keys() {
		obj := fontDict.Get(name)

		ref, isRef := obj.(core.IndirectRef)
		if isRef {
			if f, cached := r.fontCache[ref.Number]; cached {
				if f != nil {
					fonts[name] = f
				}
				continue
			}
		}

		f, err := r.loadFont(obj)
		if isRef {
			r.fontCache[ref.Number] = f
		}
		if err != nil {
			r.warnf(pageIndex+1, "font %s unusable, text falls back to WinAnsi: %v", name, err)
			continue
		}
		fonts[name] = f
	}

	return fonts
}

func (r *Reader) loadFont(obj core.Object) (*font.Font, error) {
	resolved, err := r.Resolve(obj)
	if err != nil {
		return nil, err
	}
	dict, ok := resolved.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("font object is %s, not a dictionary", resolved.Type())
	}
	return font.New(dict, r)
}
