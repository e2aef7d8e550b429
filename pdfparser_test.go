package pdfparser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yosephbernandus/pdf-parser/model"
	"github.com/yosephbernandus/pdf-parser/reader"
	"github.com/yosephbernandus/pdf-parser/tables"
)

// docBuilder assembles a synthetic PDF body, recording each object's byte
// offset so the cross-reference table comes out correct.
type docBuilder struct {
	buf     bytes.Buffer
	offsets map[int]int
	maxObj  int
}

func newDocBuilder(version string) *docBuilder {
	b := &docBuilder{offsets: make(map[int]int)}
	fmt.Fprintf(&b.buf, "%%PDF-%s\n", version)
	return b
}

func (b *docBuilder) object(num int, body string) {
	b.offsets[num] = b.buf.Len()
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nendobj\n", num, body)
	if num > b.maxObj {
		b.maxObj = num
	}
}

func (b *docBuilder) stream(num int, data string) {
	b.offsets[num] = b.buf.Len()
	fmt.Fprintf(&b.buf, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", num, len(data), data)
	if num > b.maxObj {
		b.maxObj = num
	}
}

func (b *docBuilder) finish(trailer string) []byte {
	xrefOffset := b.buf.Len()
	fmt.Fprintf(&b.buf, "xref\n0 %d\n", b.maxObj+1)
	b.buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= b.maxObj; num++ {
		fmt.Fprintf(&b.buf, "%010d 00000 n \n", b.offsets[num])
	}
	fmt.Fprintf(&b.buf, "trailer\n%s\nstartxref\n%d\n%%%%EOF\n", trailer, xrefOffset)
	return b.buf.Bytes()
}

// buildDoc produces a document with one page per content stream, all
// sharing Helvetica as /F1.
func buildDoc(t *testing.T, pageContents ...string) []byte {
	t.Helper()

	b := newDocBuilder("1.4")
	n := len(pageContents)
	fontNum := 3 + 2*n

	kids := make([]string, n)
	for i := range pageContents {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	b.object(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.object(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	for i, content := range pageContents {
		pageNum := 3 + 2*i
		b.object(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontNum, pageNum+1))
		b.stream(pageNum+1, content)
	}
	b.object(fontNum, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	return b.finish(fmt.Sprintf("<< /Size %d /Root 1 0 R >>", fontNum+1))
}

// reportPage is a page with a large heading over two body lines.
const reportPage = `BT /F1 24 Tf 72 720 Td (Annual Report) Tj ET
BT /F1 12 Tf 72 690 Td (Revenue grew steadily.) Tj ET
BT /F1 12 Tf 72 675 Td (Costs were flat.) Tj ET`

// tablePage is a page holding a two-column table.
const tablePage = `BT /F1 12 Tf 72 700 Td (Name) Tj ET
BT /F1 12 Tf 200 700 Td (Age) Tj ET
BT /F1 12 Tf 72 680 Td (Alice) Tj ET
BT /F1 12 Tf 200 680 Td (30) Tj ET`

func TestText(t *testing.T) {
	text, warnings, err := FromBytes(buildDoc(t, reportPage)).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	want := "Annual Report\n\nRevenue grew steadily. Costs were flat.\n"
	if text != want {
		t.Errorf("Text() = %q, want %q", text, want)
	}
}

func TestMarkdown(t *testing.T) {
	md, _, err := FromBytes(buildDoc(t, reportPage)).Markdown()
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}

	want := "# Annual Report\n\nRevenue grew steadily. Costs were flat.\n"
	if md != want {
		t.Errorf("Markdown() = %q, want %q", md, want)
	}
}

func TestCSV(t *testing.T) {
	csv, _, err := FromBytes(buildDoc(t, tablePage)).CSV()
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	if want := "Name,Age\nAlice,30"; csv != want {
		t.Errorf("CSV() = %q, want %q", csv, want)
	}
}

func TestCSV_QuotesCommaCells(t *testing.T) {
	page := `BT /F1 12 Tf 72 700 Td (Name) Tj ET
BT /F1 12 Tf 200 700 Td (City) Tj ET
BT /F1 12 Tf 72 680 Td (Smith, John) Tj ET
BT /F1 12 Tf 200 680 Td (Boston) Tj ET`

	csv, _, err := FromBytes(buildDoc(t, page)).CSV()
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	if want := "Name,City\n\"Smith, John\",Boston"; csv != want {
		t.Errorf("CSV() = %q, want %q", csv, want)
	}
}

func TestTSV(t *testing.T) {
	tsv, _, err := FromBytes(buildDoc(t, tablePage)).TSV()
	if err != nil {
		t.Fatalf("TSV() error = %v", err)
	}

	if want := "Name\tAge\nAlice\t30"; tsv != want {
		t.Errorf("TSV() = %q, want %q", tsv, want)
	}
}

func TestRaw(t *testing.T) {
	raw, _, err := FromBytes(buildDoc(t, "BT /F1 12 Tf 100 700 Td (Hello World) Tj ET")).Raw()
	if err != nil {
		t.Fatalf("Raw() error = %v", err)
	}

	if want := "[100.0, 700.0] (12pt): Hello World\n"; raw != want {
		t.Errorf("Raw() = %q, want %q", raw, want)
	}
}

func TestSpans(t *testing.T) {
	spans, _, err := FromBytes(buildDoc(t, "BT /F1 12 Tf 100 700 Td (Hello World) Tj ET")).Spans()
	if err != nil {
		t.Fatalf("Spans() error = %v", err)
	}

	want := []model.TextSpan{
		{Text: "Hello World", X: 100, Y: 700, FontSize: 12, FontName: "F1"},
	}
	if diff := cmp.Diff(want, spans); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestPageCount(t *testing.T) {
	count, err := FromBytes(buildDoc(t, "BT ET", "BT ET", "BT ET")).PageCount()
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if count != 3 {
		t.Errorf("PageCount() = %d, want 3", count)
	}
}

func twoPageDoc(t *testing.T) []byte {
	t.Helper()
	return buildDoc(t,
		"BT /F1 12 Tf 72 700 Td (Page one) Tj ET",
		"BT /F1 12 Tf 72 700 Td (Page two) Tj ET")
}

func TestPages_Selection(t *testing.T) {
	doc := twoPageDoc(t)

	text, _, err := FromBytes(doc).Pages(2).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := "Page two\n"; text != want {
		t.Errorf("Pages(2).Text() = %q, want %q", text, want)
	}

	// Selections process in document order regardless of call order, and
	// duplicates collapse.
	text, _, err = FromBytes(doc).Pages(2, 1, 2).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := "Page one\n\nPage two\n"; text != want {
		t.Errorf("Pages(2, 1, 2).Text() = %q, want %q", text, want)
	}
}

func TestPages_OutOfRange(t *testing.T) {
	_, _, err := FromBytes(twoPageDoc(t)).Pages(5).Text()
	if !errors.Is(err, reader.ErrPageOutOfRange) {
		t.Errorf("Pages(5).Text() error = %v, want ErrPageOutOfRange", err)
	}
}

func TestPageRange(t *testing.T) {
	doc := buildDoc(t,
		"BT /F1 12 Tf 72 700 Td (One) Tj ET",
		"BT /F1 12 Tf 72 700 Td (Two) Tj ET",
		"BT /F1 12 Tf 72 700 Td (Three) Tj ET")

	text, _, err := FromBytes(doc).PageRange(2, 3).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := "Two\n\nThree\n"; text != want {
		t.Errorf("PageRange(2, 3).Text() = %q, want %q", text, want)
	}
}

func TestConfigure_ReturnsNewInstance(t *testing.T) {
	base := FromBytes(twoPageDoc(t))
	configured := base.Pages(2)

	if len(base.options.pages) != 0 {
		t.Errorf("base selection = %v after configuring a branch, want none", base.options.pages)
	}
	if diff := cmp.Diff([]int{2}, configured.options.pages); diff != "" {
		t.Errorf("configured selection mismatch (-want +got):\n%s", diff)
	}

	// The unconfigured base still extracts every page.
	text, _, err := base.Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := "Page one\n\nPage two\n"; text != want {
		t.Errorf("base.Text() = %q, want %q", text, want)
	}
}

func TestWithTableConfig_ReachesLayoutTables(t *testing.T) {
	cfg := tables.DefaultConfig()
	cfg.ColumnTolerance = 6

	e := FromBytes(nil).WithTableConfig(cfg)
	if e.options.tables.ColumnTolerance != 6 {
		t.Errorf("tables.ColumnTolerance = %v, want 6", e.options.tables.ColumnTolerance)
	}
	if e.options.layout.Tables.ColumnTolerance != 6 {
		t.Errorf("layout.Tables.ColumnTolerance = %v, want 6", e.options.layout.Tables.ColumnTolerance)
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, buildDoc(t, reportPage), 0o644); err != nil {
		t.Fatal(err)
	}

	text, _, err := Open(path).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if !strings.HasPrefix(text, "Annual Report\n") {
		t.Errorf("Text() = %q, want the report heading first", text)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, _, err := Open(filepath.Join(t.TempDir(), "absent.pdf")).Text()
	if err == nil {
		t.Error("Text() on a missing file succeeded, want error")
	}
}

func TestFromBytes_NotPDF(t *testing.T) {
	_, _, err := FromBytes([]byte("not a pdf")).Text()
	if err == nil {
		t.Error("Text() on non-PDF bytes succeeded, want error")
	}
}

func TestFromReader(t *testing.T) {
	r, err := reader.Parse(twoPageDoc(t))
	if err != nil {
		t.Fatalf("reader.Parse() error = %v", err)
	}

	count, err := FromReader(r).PageCount()
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if count != 2 {
		t.Errorf("PageCount() = %d, want 2", count)
	}
}

func TestFromReader_Nil(t *testing.T) {
	_, _, err := FromReader(nil).Text()
	if !errors.Is(err, errNilReader) {
		t.Errorf("FromReader(nil).Text() error = %v, want errNilReader", err)
	}
}

func TestText_EmptyDocument(t *testing.T) {
	text, warnings, err := FromBytes(buildDoc(t)).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if text != "" {
		t.Errorf("Text() = %q, want empty", text)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestText_SurfacesWarnings(t *testing.T) {
	// /F1 references an object missing from the file, so the font loader
	// falls back and records a warning.
	b := newDocBuilder("1.4")
	b.object(1, "<< /Type /Catalog /Pages 2 0 R >>")
	b.object(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.object(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 9 0 R >> >> /Contents 4 0 R >>")
	b.stream(4, "BT /F1 12 Tf 72 700 Td (Still here) Tj ET")
	doc := b.finish("<< /Size 5 /Root 1 0 R >>")

	text, warnings, err := FromBytes(doc).Text()
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if want := "Still here\n"; text != want {
		t.Errorf("Text() = %q, want %q", text, want)
	}
	if len(warnings) == 0 {
		t.Error("Text() returned no warnings, want at least one for the broken font")
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must(42, nil) = %d, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must() with an error did not panic")
		}
	}()
	Must(0, errors.New("boom"))
}

func TestMustText(t *testing.T) {
	if got := MustText("ok", []Warning{{Message: "ignored"}}, nil); got != "ok" {
		t.Errorf("MustText() = %q, want %q", got, "ok")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustText() with an error did not panic")
		}
	}()
	MustText("", nil, errors.New("boom"))
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}

	warnings := []Warning{
		{Page: 0, Message: "unreadable version in header"},
		{Page: 3, Message: "font F2 unusable"},
	}
	want := "unreadable version in header\npage 3: font F2 unusable"
	if got := FormatWarnings(warnings); got != want {
		t.Errorf("FormatWarnings() = %q, want %q", got, want)
	}
}

func TestToText_JoinsPagesWithBlankLine(t *testing.T) {
	doc := buildDoc(t,
		`BT /F1 24 Tf 72 720 Td (Title One) Tj ET
BT /F1 12 Tf 72 690 Td (Alpha body text.) Tj ET`,
		`BT /F1 24 Tf 72 720 Td (Title Two) Tj ET
BT /F1 12 Tf 72 690 Td (Beta body text.) Tj ET`)

	text, err := ToText(doc)
	if err != nil {
		t.Fatalf("ToText() error = %v", err)
	}

	want := "Title One\n\nAlpha body text.\n\nTitle Two\n\nBeta body text.\n"
	if text != want {
		t.Errorf("ToText() = %q, want %q", text, want)
	}
}

func TestToMarkdown(t *testing.T) {
	md, err := ToMarkdown(buildDoc(t, reportPage))
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}

	want := "# Annual Report\n\nRevenue grew steadily. Costs were flat.\n"
	if md != want {
		t.Errorf("ToMarkdown() = %q, want %q", md, want)
	}
}

func TestToCSV_MultiPage(t *testing.T) {
	page2 := `BT /F1 12 Tf 72 700 Td (Bob) Tj ET
BT /F1 12 Tf 200 700 Td (25) Tj ET`

	csv, err := ToCSV(buildDoc(t, tablePage, page2))
	if err != nil {
		t.Fatalf("ToCSV() error = %v", err)
	}

	want := "Name,Age\nAlice,30\nBob,25"
	if csv != want {
		t.Errorf("ToCSV() = %q, want %q", csv, want)
	}
}

func TestToText_NotPDF(t *testing.T) {
	if _, err := ToText([]byte("nope")); err == nil {
		t.Error("ToText() on non-PDF data succeeded, want error")
	}
}
