package core

import (
	"bytes"
	"fmt"
	"strconv"
)

// maxPrevChain bounds the /Prev chain walk so a malformed file cannot
// send the parser through an endless chain of revisions.
const maxPrevChain = 100

// XRefEntry is a single cross-reference table entry.
type XRefEntry struct {
	Offset     int64 // byte offset for in-use objects, next free object number for free ones
	Generation int
	InUse      bool
}

// XRefTable maps object numbers to their file offsets, plus the trailer
// dictionary that accompanied the table.
type XRefTable struct {
	Entries map[int]*XRefEntry
	Trailer Dict
}

// NewXRefTable creates an empty XRef table.
func NewXRefTable() *XRefTable {
	return &XRefTable{
		Entries: make(map[int]*XRefEntry),
		Trailer: make(Dict),
	}
}

// Get retrieves an entry by object number.
func (x *XRefTable) Get(objNum int) (*XRefEntry, bool) {
	entry, ok := x.Entries[objNum]
	return entry, ok
}

// Set adds or updates an entry.
func (x *XRefTable) Set(objNum int, entry *XRefEntry) {
	x.Entries[objNum] = entry
}

// Size returns the number of entries in the table.
func (x *XRefTable) Size() int {
	return len(x.Entries)
}

// XRefParser parses classic cross-reference tables from a PDF buffer.
type XRefParser struct {
	data []byte
}

// NewXRefParser creates an XRef parser over data.
func NewXRefParser(data []byte) *XRefParser {
	return &XRefParser{data: data}
}

// FindStartXRef locates the offset recorded in the file's startxref
// footer. The footer lives in the last kilobyte:
//
//	startxref
//	<offset>
//	%%EOF
func (x *XRefParser) FindStartXRef() (int64, error) {
	tailStart := int64(len(x.data)) - 1024
	if tailStart < 0 {
		tailStart = 0
	}

	idx := bytes.LastIndex(x.data[tailStart:], []byte("startxref"))
	if idx == -1 {
		return 0, xrefErrorf("startxref not found")
	}

	lexer := NewLexer(x.data)
	lexer.Seek(tailStart + int64(idx) + int64(len("startxref")))
	token, err := lexer.NextToken()
	if err != nil {
		return 0, xrefErrorf("unreadable startxref offset: %v", err)
	}
	if token.Type != TokenInteger {
		return 0, xrefErrorf("startxref not followed by an offset")
	}
	offset, err := strconv.ParseInt(string(token.Value), 10, 64)
	if err != nil {
		return 0, xrefErrorf("invalid startxref offset %q", token.Value)
	}
	return offset, nil
}

// ParseXRef parses the cross-reference section at the given byte offset:
// the xref keyword, one or more subsections of 20-byte entries, and the
// trailer dictionary. A cross-reference stream at the offset (an indirect
// object instead of the xref keyword) reports ErrUnsupportedFeature.
func (x *XRefParser) ParseXRef(offset int64) (*XRefTable, error) {
	if offset < 0 || offset >= int64(len(x.data)) {
		return nil, xrefErrorf("offset %d outside file (size %d)", offset, len(x.data))
	}

	lexer := NewLexer(x.data)
	lexer.Seek(offset)

	token, err := lexer.NextToken()
	if err != nil {
		return nil, xrefErrorf("at offset %d: %v", offset, err)
	}
	if token.Type == TokenInteger {
		// "N G obj" instead of the keyword: a PDF 1.5 cross-reference
		// stream.
		return nil, fmt.Errorf("pdf: cross-reference streams: %w", ErrUnsupportedFeature)
	}
	if token.Type != TokenKeyword || string(token.Value) != "xref" {
		return nil, xrefErrorf("expected 'xref' keyword at offset %d", offset)
	}

	table := NewXRefTable()

	for {
		token, err = lexer.NextToken()
		if err != nil {
			return nil, xrefErrorf("in section at offset %d: %v", offset, err)
		}

		if token.Type == TokenKeyword && string(token.Value) == "trailer" {
			trailer, err := x.parseTrailer(lexer.Pos())
			if err != nil {
				return nil, err
			}
			table.Trailer = trailer
			return table, nil
		}

		if token.Type != TokenInteger {
			return nil, xrefErrorf("expected subsection header or trailer, got %q", token.Value)
		}
		firstObjNum, err := strconv.Atoi(string(token.Value))
		if err != nil {
			return nil, xrefErrorf("invalid first object number %q", token.Value)
		}

		token, err = lexer.NextToken()
		if err != nil || token.Type != TokenInteger {
			return nil, xrefErrorf("subsection %d missing entry count", firstObjNum)
		}
		count, err := strconv.Atoi(string(token.Value))
		if err != nil {
			return nil, xrefErrorf("invalid entry count %q", token.Value)
		}

		for i := 0; i < count; i++ {
			entry, err := x.parseEntry(lexer)
			if err != nil {
				return nil, xrefErrorf("entry %d of subsection %d: %v", i, firstObjNum, err)
			}
			table.Set(firstObjNum+i, entry)
		}
	}
}

// parseEntry reads one "nnnnnnnnnn ggggg n" entry. The lexer strips the
// zero padding along with the whitespace, so each entry is two integer
// tokens and a flag keyword.
func (x *XRefParser) parseEntry(lexer *Lexer) (*XRefEntry, error) {
	offTok, err := lexer.NextToken()
	if err != nil || offTok.Type != TokenInteger {
		return nil, fmt.Errorf("expected offset field")
	}
	offset, err := strconv.ParseInt(string(offTok.Value), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid offset %q", offTok.Value)
	}

	genTok, err := lexer.NextToken()
	if err != nil || genTok.Type != TokenInteger {
		return nil, fmt.Errorf("expected generation field")
	}
	generation, err := strconv.Atoi(string(genTok.Value))
	if err != nil {
		return nil, fmt.Errorf("invalid generation %q", genTok.Value)
	}

	flagTok, err := lexer.NextToken()
	if err != nil || flagTok.Type != TokenKeyword {
		return nil, fmt.Errorf("expected in-use flag")
	}

	var inUse bool
	switch string(flagTok.Value) {
	case "n":
		inUse = true
	case "f":
		inUse = false
	default:
		return nil, fmt.Errorf("invalid in-use flag %q", flagTok.Value)
	}

	return &XRefEntry{Offset: offset, Generation: generation, InUse: inUse}, nil
}

// parseTrailer parses the dictionary that follows the trailer keyword.
func (x *XRefParser) parseTrailer(pos int64) (Dict, error) {
	parser := NewParser(x.data)
	parser.Seek(pos)

	obj, err := parser.ParseObject()
	if err != nil {
		return nil, xrefErrorf("trailer dictionary: %v", err)
	}
	dict, ok := obj.(Dict)
	if !ok {
		return nil, xrefErrorf("trailer is not a dictionary, got %s", obj.Type())
	}
	return dict, nil
}

// ParseAllXRefs parses the newest cross-reference section and every
// revision reachable through /Prev, returned oldest first. Offsets are
// tracked so a /Prev cycle terminates instead of looping.
func (x *XRefParser) ParseAllXRefs() ([]*XRefTable, error) {
	offset, err := x.FindStartXRef()
	if err != nil {
		return nil, err
	}

	var tables []*XRefTable
	visited := make(map[int64]bool)

	for {
		if visited[offset] {
			return nil, xrefErrorf("/Prev chain revisits offset %d", offset)
		}
		if len(tables) >= maxPrevChain {
			return nil, xrefErrorf("/Prev chain exceeds %d revisions", maxPrevChain)
		}
		visited[offset] = true

		table, err := x.ParseXRef(offset)
		if err != nil {
			return nil, err
		}
		// Oldest first, so later merging lets newer revisions win.
		tables = append([]*XRefTable{table}, tables...)

		prev := table.Trailer.Get("Prev")
		if prev == nil {
			return tables, nil
		}
		prevInt, ok := prev.(Int)
		if !ok {
			return nil, xrefErrorf("/Prev has type %s", prev.Type())
		}
		offset = int64(prevInt)
	}
}

// MergeXRefTables combines revisions given oldest first into a single
// table. Later revisions override both entries and trailer keys, so the
// newest definition of an object and the newest /Root and /Size win while
// keys absent from newer trailers fall through to older ones.
func MergeXRefTables(tables ...*XRefTable) *XRefTable {
	merged := NewXRefTable()
	for _, table := range tables {
		for objNum, entry := range table.Entries {
			merged.Set(objNum, entry)
		}
		for key, value := range table.Trailer {
			merged.Trailer[key] = value
		}
	}
	return merged
}
