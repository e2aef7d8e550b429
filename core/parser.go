package core

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// ReferenceResolver resolves indirect references during parsing. The parser
// needs it in one place only: a stream whose /Length is itself an indirect
// reference.
type ReferenceResolver interface {
	ResolveReference(ref IndirectRef) (Object, error)
}

// Parser builds PDF objects from a token stream. It keeps a two-token
// lookahead so "N G R" indirect references can be recognized without
// backtracking, and it can be repositioned with Seek to parse objects at
// xref-recorded offsets.
type Parser struct {
	lexer        *Lexer
	currentToken *Token
	peekToken    *Token
	resolver     ReferenceResolver
}

// NewParser creates a parser over data and primes the lookahead.
func NewParser(data []byte) *Parser {
	p := &Parser{lexer: NewLexer(data)}
	p.nextToken()
	p.nextToken()
	return p
}

// SetReferenceResolver installs the resolver used for indirect stream
// lengths. Without one the parser falls back to scanning for the
// endstream marker.
func (p *Parser) SetReferenceResolver(resolver ReferenceResolver) {
	p.resolver = resolver
}

// Seek repositions the parser and re-primes the lookahead.
func (p *Parser) Seek(pos int64) {
	p.lexer.Seek(pos)
	p.currentToken = nil
	p.peekToken = nil
	p.nextToken()
	p.nextToken()
}

// Pos returns the byte position of the current token, or the lexer cursor
// when no token is loaded.
func (p *Parser) Pos() int64 {
	if p.currentToken != nil {
		return p.currentToken.Pos
	}
	return p.lexer.Pos()
}

// nextToken shifts the lookahead window. When the current token becomes the
// "stream" keyword the lexer stops: what follows is binary stream data that
// must not be tokenized. parseStream takes over from there.
func (p *Parser) nextToken() error {
	p.currentToken = p.peekToken

	if p.currentToken != nil &&
		p.currentToken.Type == TokenKeyword &&
		string(p.currentToken.Value) == "stream" {
		p.peekToken = nil
		return nil
	}

	token, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.peekToken = token
	return nil
}

// ParseObject parses one PDF object rooted at the current token: null,
// boolean, number, string, name, array, dictionary, or indirect reference.
// It returns io.EOF at end of input.
func (p *Parser) ParseObject() (Object, error) {
	if p.currentToken == nil {
		return nil, parseErrorf(p.lexer.Pos(), "unexpected end of input")
	}

	switch p.currentToken.Type {
	case TokenEOF:
		return nil, io.EOF

	case TokenKeyword:
		keyword := string(p.currentToken.Value)
		switch keyword {
		case "null":
			p.nextToken()
			return Null{}, nil
		case "true":
			p.nextToken()
			return Bool(true), nil
		case "false":
			p.nextToken()
			return Bool(false), nil
		default:
			return nil, parseErrorf(p.currentToken.Pos, "unexpected keyword %q", keyword)
		}

	case TokenInteger:
		return p.parseNumber()

	case TokenReal:
		val, err := strconv.ParseFloat(string(p.currentToken.Value), 64)
		if err != nil {
			return nil, parseErrorf(p.currentToken.Pos, "invalid real number %q", p.currentToken.Value)
		}
		p.nextToken()
		return Real(val), nil

	case TokenString, TokenHexString:
		// The lexer already processed escapes and decoded hex digits.
		val := String(p.currentToken.Value)
		p.nextToken()
		return val, nil

	case TokenName:
		val := Name(p.currentToken.Value)
		p.nextToken()
		return val, nil

	case TokenArrayStart:
		return p.parseArray()

	case TokenDictStart:
		return p.parseDict()

	default:
		return nil, parseErrorf(p.currentToken.Pos, "unexpected token %v", p.currentToken.Type)
	}
}

// parseNumber resolves the "integer or indirect reference" ambiguity by
// lookahead: "N G R" is a reference, anything else leaves N as a plain
// integer with the window positioned on the token after it.
func (p *Parser) parseNumber() (Object, error) {
	first, err := strconv.ParseInt(string(p.currentToken.Value), 10, 64)
	if err != nil {
		return nil, parseErrorf(p.currentToken.Pos, "invalid integer %q", p.currentToken.Value)
	}

	if p.peekToken != nil && p.peekToken.Type == TokenInteger {
		second, err := strconv.ParseInt(string(p.peekToken.Value), 10, 64)
		if err == nil {
			p.nextToken() // window now on the second integer
			if p.peekToken != nil && p.peekToken.Type == TokenIndirectRef {
				p.nextToken() // onto R
				p.nextToken() // past R
				return IndirectRef{Number: int(first), Generation: int(second)}, nil
			}
			// Not a reference. The second integer stays current and will
			// be parsed on the next call.
			return Int(first), nil
		}
	}

	p.nextToken()
	return Int(first), nil
}

func (p *Parser) parseArray() (Object, error) {
	start := p.currentToken.Pos
	p.nextToken() // past '['

	arr := Array{}
	for {
		if p.currentToken == nil || p.currentToken.Type == TokenEOF {
			return nil, parseErrorf(start, "unterminated array")
		}
		if p.currentToken.Type == TokenArrayEnd {
			p.nextToken()
			return arr, nil
		}

		obj, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("array element %d: %w", len(arr), err)
		}
		arr = append(arr, obj)
	}
}

func (p *Parser) parseDict() (Object, error) {
	start := p.currentToken.Pos
	p.nextToken() // past '<<'

	dict := make(Dict)
	for {
		if p.currentToken == nil || p.currentToken.Type == TokenEOF {
			return nil, parseErrorf(start, "unterminated dictionary")
		}
		if p.currentToken.Type == TokenDictEnd {
			p.nextToken()
			return dict, nil
		}

		if p.currentToken.Type != TokenName {
			return nil, parseErrorf(p.currentToken.Pos,
				"dictionary key must be a name, got %v", p.currentToken.Type)
		}
		key := string(p.currentToken.Value)
		p.nextToken()

		value, err := p.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("dictionary value for /%s: %w", key, err)
		}
		dict[key] = value
	}
}

// ParseIndirectObject parses "N G obj <object> endobj", with the object
// optionally being a dictionary followed by a stream body.
func (p *Parser) ParseIndirectObject() (*IndirectObject, error) {
	if p.currentToken == nil || p.currentToken.Type != TokenInteger {
		return nil, parseErrorf(p.Pos(), "expected object number")
	}
	num, err := strconv.ParseInt(string(p.currentToken.Value), 10, 64)
	if err != nil {
		return nil, parseErrorf(p.currentToken.Pos, "invalid object number %q", p.currentToken.Value)
	}
	p.nextToken()

	if p.currentToken == nil || p.currentToken.Type != TokenInteger {
		return nil, parseErrorf(p.Pos(), "expected generation number")
	}
	gen, err := strconv.ParseInt(string(p.currentToken.Value), 10, 64)
	if err != nil {
		return nil, parseErrorf(p.currentToken.Pos, "invalid generation number %q", p.currentToken.Value)
	}
	p.nextToken()

	if !p.currentKeywordIs("obj") {
		return nil, parseErrorf(p.Pos(), "expected 'obj' keyword")
	}
	p.nextToken()

	obj, err := p.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("indirect object %d %d: %w", num, gen, err)
	}

	if p.currentKeywordIs("stream") {
		dict, ok := obj.(Dict)
		if !ok {
			return nil, parseErrorf(p.currentToken.Pos, "stream keyword not preceded by a dictionary")
		}
		stream, err := p.parseStream(dict)
		if err != nil {
			return nil, fmt.Errorf("stream object %d %d: %w", num, gen, err)
		}
		obj = stream
	}

	if !p.currentKeywordIs("endobj") {
		return nil, parseErrorf(p.Pos(), "expected 'endobj' keyword")
	}
	p.nextToken()

	return &IndirectObject{
		Ref:    IndirectRef{Number: int(num), Generation: int(gen)},
		Object: obj,
	}, nil
}

func (p *Parser) currentKeywordIs(kw string) bool {
	return p.currentToken != nil &&
		p.currentToken.Type == TokenKeyword &&
		string(p.currentToken.Value) == kw
}

// parseStream reads the stream body after the "stream" keyword. The body
// length comes from the dictionary's /Length; when /Length is an indirect
// reference it is resolved if a resolver is installed, otherwise (and on
// any resolution failure) the body is recovered by scanning forward for
// the endstream marker. The returned Stream aliases the input buffer, it
// does not copy the body.
func (p *Parser) parseStream(dict Dict) (*Stream, error) {
	p.lexer.SkipStreamEOL()
	start := p.lexer.Pos()

	length := -1
	switch v := dict.Get("Length").(type) {
	case Int:
		length = int(v)
	case IndirectRef:
		if p.resolver != nil {
			if resolved, err := p.resolver.ResolveReference(v); err == nil {
				if n, ok := resolved.(Int); ok {
					length = int(n)
				}
			}
		}
	case nil:
		// Missing /Length: recovered by the endstream scan below.
	default:
		return nil, parseErrorf(start, "stream /Length has type %s", v.Type())
	}

	data := p.lexer.Data()
	var body []byte
	if length >= 0 {
		end := start + int64(length)
		if end > int64(len(data)) {
			return nil, parseErrorf(start, "stream data extends past end of input")
		}
		body = data[start:end]

		// Reload the window and require the closing keyword.
		p.Seek(end)
		if !p.currentKeywordIs("endstream") {
			return nil, parseErrorf(end, "expected 'endstream' after %d stream bytes", length)
		}
	} else {
		// Unresolvable /Length: find the endstream marker instead.
		idx := bytes.Index(data[start:], []byte("endstream"))
		if idx < 0 {
			return nil, parseErrorf(start, "missing 'endstream' marker")
		}
		body = trimStreamEOL(data[start : start+int64(idx)])
		p.Seek(start + int64(idx))
		if !p.currentKeywordIs("endstream") {
			return nil, parseErrorf(start+int64(idx), "malformed 'endstream' marker")
		}
	}
	p.nextToken() // past endstream

	return &Stream{Dict: dict, Data: body}, nil
}

// trimStreamEOL removes the single end-of-line sequence that separates
// stream data from the endstream keyword.
func trimStreamEOL(data []byte) []byte {
	if n := len(data); n > 0 && data[n-1] == '\n' {
		data = data[:n-1]
	}
	if n := len(data); n > 0 && data[n-1] == '\r' {
		data = data[:n-1]
	}
	return data
}
