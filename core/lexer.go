package core

import "bytes"

// TokenType classifies a lexical token.
type TokenType int

const (
	TokenEOF         TokenType = iota
	TokenKeyword               // true, false, null, obj, endobj, stream, endstream, xref, trailer, startxref
	TokenInteger               // 123
	TokenReal                  // 3.14
	TokenString                // (hello), escapes already processed
	TokenHexString             // <48656C6C6F>, already decoded to raw bytes
	TokenName                  // /Type, # escapes already processed
	TokenArrayStart            // [
	TokenArrayEnd              // ]
	TokenDictStart             // <<
	TokenDictEnd               // >>
	TokenIndirectRef           // R
)

// Token is one lexical token with its byte position in the input.
type Token struct {
	Type  TokenType
	Value []byte
	Pos   int64
}

// Lexer tokenizes PDF syntax over an in-memory buffer. It never copies the
// buffer; tokens carry positions into it, and the cursor can be repositioned
// with Seek so the same lexer serves xref offsets anywhere in the file.
type Lexer struct {
	data []byte
	pos  int64
}

// NewLexer creates a lexer over data.
func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data}
}

// Pos returns the current cursor position.
func (l *Lexer) Pos() int64 { return l.pos }

// Seek repositions the cursor.
func (l *Lexer) Seek(pos int64) { l.pos = pos }

// Data returns the underlying buffer. The parser slices stream bodies out
// of it directly.
func (l *Lexer) Data() []byte { return l.data }

// NextToken returns the next token, skipping whitespace and comments.
// At end of input it returns a TokenEOF token, not an error.
func (l *Lexer) NextToken() (*Token, error) {
	l.skipWhitespace()

	if l.pos >= int64(len(l.data)) {
		return &Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	b := l.data[l.pos]
	switch {
	case b == '[':
		l.pos++
		return &Token{Type: TokenArrayStart, Value: l.data[l.pos-1 : l.pos], Pos: l.pos - 1}, nil
	case b == ']':
		l.pos++
		return &Token{Type: TokenArrayEnd, Value: l.data[l.pos-1 : l.pos], Pos: l.pos - 1}, nil
	case b == '<':
		if l.peekAt(1) == '<' {
			l.pos += 2
			return &Token{Type: TokenDictStart, Pos: l.pos - 2}, nil
		}
		return l.readHexString()
	case b == '>':
		if l.peekAt(1) == '>' {
			l.pos += 2
			return &Token{Type: TokenDictEnd, Pos: l.pos - 2}, nil
		}
		return nil, lexErrorf(l.pos, "unexpected '>'")
	case b == '(':
		return l.readString()
	case b == '/':
		return l.readName()
	case isDigit(b) || b == '-' || b == '+' || b == '.':
		return l.readNumber()
	case isAlpha(b):
		return l.readKeyword()
	}
	return nil, lexErrorf(l.pos, "unexpected byte 0x%02X", b)
}

// SkipStreamEOL consumes the end-of-line marker that separates the "stream"
// keyword from the stream body: CRLF or a lone LF.
func (l *Lexer) SkipStreamEOL() {
	if l.peekAt(0) == '\r' {
		l.pos++
	}
	if l.peekAt(0) == '\n' {
		l.pos++
	}
}

// peekAt returns the byte at cursor+offset, or 0 past the end. NUL doubles
// as whitespace in PDF, so 0 is always safe to treat as "nothing useful".
func (l *Lexer) peekAt(offset int64) byte {
	i := l.pos + offset
	if i >= int64(len(l.data)) {
		return 0
	}
	return l.data[i]
}

// skipWhitespace skips PDF whitespace and %-comments (which run to end of
// line). Comments are lexically equivalent to whitespace.
func (l *Lexer) skipWhitespace() {
	for l.pos < int64(len(l.data)) {
		b := l.data[l.pos]
		switch {
		case isWhitespace(b):
			l.pos++
		case b == '%':
			l.pos++
			for l.pos < int64(len(l.data)) {
				c := l.data[l.pos]
				l.pos++
				if c == '\r' || c == '\n' {
					break
				}
			}
		default:
			return
		}
	}
}

// readString reads a literal string. The opening parenthesis is at the
// cursor. Nested balanced parentheses are part of the string; escape
// sequences are processed here so the token value holds the final bytes.
func (l *Lexer) readString() (*Token, error) {
	start := l.pos
	l.pos++ // opening '('

	var buf bytes.Buffer
	depth := 1
	for depth > 0 {
		if l.pos >= int64(len(l.data)) {
			return nil, lexErrorf(start, "unterminated string")
		}
		b := l.data[l.pos]
		l.pos++

		switch b {
		case '(':
			depth++
			buf.WriteByte(b)
		case ')':
			depth--
			if depth > 0 {
				buf.WriteByte(b)
			}
		case '\\':
			if l.pos >= int64(len(l.data)) {
				return nil, lexErrorf(start, "unterminated string escape")
			}
			esc := l.data[l.pos]
			l.pos++
			switch esc {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '(', ')', '\\':
				buf.WriteByte(esc)
			case '\r':
				// Line continuation. A CR may be followed by LF.
				if l.peekAt(0) == '\n' {
					l.pos++
				}
			case '\n':
				// Line continuation.
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := esc - '0'
				for i := 0; i < 2 && isOctalDigit(l.peekAt(0)); i++ {
					val = val*8 + (l.data[l.pos] - '0')
					l.pos++
				}
				buf.WriteByte(val)
			default:
				// Unknown escape keeps the escaped character.
				buf.WriteByte(esc)
			}
		default:
			buf.WriteByte(b)
		}
	}

	return &Token{Type: TokenString, Value: buf.Bytes(), Pos: start}, nil
}

// readHexString reads a hex string. The opening '<' is at the cursor.
// Whitespace between digits is ignored; an odd digit count is padded with a
// trailing zero. The token value holds the decoded bytes.
func (l *Lexer) readHexString() (*Token, error) {
	start := l.pos
	l.pos++ // opening '<'

	var digits []byte
	for {
		if l.pos >= int64(len(l.data)) {
			return nil, lexErrorf(start, "unterminated hex string")
		}
		b := l.data[l.pos]
		l.pos++

		if b == '>' {
			break
		}
		if isWhitespace(b) {
			continue
		}
		if !isHexDigit(b) {
			return nil, lexErrorf(l.pos-1, "invalid hex digit %q", b)
		}
		digits = append(digits, b)
	}

	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	decoded := make([]byte, len(digits)/2)
	for i := 0; i < len(decoded); i++ {
		decoded[i] = hexValue(digits[2*i])<<4 | hexValue(digits[2*i+1])
	}

	return &Token{Type: TokenHexString, Value: decoded, Pos: start}, nil
}

// readName reads a name. The leading '/' is at the cursor and is not part
// of the value. '#' introduces a two-digit hex escape.
func (l *Lexer) readName() (*Token, error) {
	start := l.pos
	l.pos++ // leading '/'

	var buf bytes.Buffer
	for l.pos < int64(len(l.data)) {
		b := l.data[l.pos]
		if isWhitespace(b) || isDelimiter(b) {
			break
		}
		l.pos++

		if b == '#' {
			h1 := l.peekAt(0)
			h2 := l.peekAt(1)
			if !isHexDigit(h1) || !isHexDigit(h2) {
				return nil, lexErrorf(l.pos-1, "invalid hex escape in name")
			}
			l.pos += 2
			buf.WriteByte(hexValue(h1)<<4 | hexValue(h2))
		} else {
			buf.WriteByte(b)
		}
	}

	return &Token{Type: TokenName, Value: buf.Bytes(), Pos: start}, nil
}

// readNumber reads an integer or real. A sign is accepted only in the
// leading position; a second '.' ends the token.
func (l *Lexer) readNumber() (*Token, error) {
	start := l.pos
	hasDecimal := false

	if b := l.peekAt(0); b == '-' || b == '+' {
		l.pos++
	}
	for l.pos < int64(len(l.data)) {
		b := l.data[l.pos]
		if b == '.' && !hasDecimal {
			hasDecimal = true
			l.pos++
			continue
		}
		if !isDigit(b) {
			break
		}
		l.pos++
	}

	value := l.data[start:l.pos]
	if len(value) == 0 || (len(value) == 1 && !isDigit(value[0])) {
		return nil, lexErrorf(start, "malformed number %q", value)
	}

	typ := TokenInteger
	if hasDecimal {
		typ = TokenReal
	}
	return &Token{Type: typ, Value: value, Pos: start}, nil
}

// readKeyword reads a bare keyword such as obj, endobj, stream, trailer.
// A lone "R" is the indirect-reference marker and gets its own token type
// for the parser's lookahead.
func (l *Lexer) readKeyword() (*Token, error) {
	start := l.pos
	for l.pos < int64(len(l.data)) {
		b := l.data[l.pos]
		if !isAlpha(b) && !isDigit(b) && b != '*' && b != '\'' && b != '"' {
			break
		}
		l.pos++
	}

	value := l.data[start:l.pos]
	if len(value) == 1 && value[0] == 'R' {
		return &Token{Type: TokenIndirectRef, Value: value, Pos: start}, nil
	}
	return &Token{Type: TokenKeyword, Value: value, Pos: start}, nil
}

// PDF whitespace: space, tab, LF, CR, FF, NUL.
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' ||
		b == '{' || b == '}' || b == '/' || b == '%'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hexValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}
