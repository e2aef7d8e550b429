package contentstream

import (
	"strings"
	"testing"

	"github.com/yosephbernandus/pdf-parser/core"
)

// TestParseSimpleOperator tests parsing a simple operator with no operands
func TestParseSimpleOperator(t *testing.T) {
	input := []byte("q")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}

	if ops[0].Operator != "q" {
		t.Errorf("expected operator 'q', got %q", ops[0].Operator)
	}

	if len(ops[0].Operands) != 0 {
		t.Errorf("expected 0 operands, got %d", len(ops[0].Operands))
	}
}

// TestParseOperatorWithInteger tests an operator with integer operand
func TestParseOperatorWithInteger(t *testing.T) {
	input := []byte("100 Tz")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}

	if ops[0].Operator != "Tz" {
		t.Errorf("expected operator 'Tz', got %q", ops[0].Operator)
	}

	if len(ops[0].Operands) != 1 {
		t.Fatalf("expected 1 operand, got %d", len(ops[0].Operands))
	}

	val, ok := ops[0].Operands[0].(core.Int)
	if !ok {
		t.Fatalf("expected Int operand, got %T", ops[0].Operands[0])
	}

	if val != 100 {
		t.Errorf("expected value 100, got %d", val)
	}
}

// TestParseOperatorWithReal tests an operator with real number operand
func TestParseOperatorWithReal(t *testing.T) {
	input := []byte("1.5 w")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}

	if ops[0].Operator != "w" {
		t.Errorf("expected operator 'w', got %q", ops[0].Operator)
	}

	val, ok := ops[0].Operands[0].(core.Real)
	if !ok {
		t.Fatalf("expected Real operand, got %T", ops[0].Operands[0])
	}

	if val != 1.5 {
		t.Errorf("expected value 1.5, got %f", val)
	}
}

// TestParseOperatorWithString tests an operator with string operand
func TestParseOperatorWithString(t *testing.T) {
	input := []byte("(Hello World) Tj")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}

	if ops[0].Operator != "Tj" {
		t.Errorf("expected operator 'Tj', got %q", ops[0].Operator)
	}

	val, ok := ops[0].Operands[0].(core.String)
	if !ok {
		t.Fatalf("expected String operand, got %T", ops[0].Operands[0])
	}

	if string(val) != "Hello World" {
		t.Errorf("expected 'Hello World', got %q", val)
	}
}

// TestParseOperatorWithName tests an operator with name operand
func TestParseOperatorWithName(t *testing.T) {
	input := []byte("/F1 12 Tf")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}

	if ops[0].Operator != "Tf" {
		t.Errorf("expected operator 'Tf', got %q", ops[0].Operator)
	}

	if len(ops[0].Operands) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(ops[0].Operands))
	}

	name, ok := ops[0].Operands[0].(core.Name)
	if !ok {
		t.Fatalf("expected Name operand, got %T", ops[0].Operands[0])
	}

	if string(name) != "F1" {
		t.Errorf("expected 'F1', got %q", name)
	}

	size, ok := ops[0].Operands[1].(core.Int)
	if !ok {
		t.Fatalf("expected Int operand, got %T", ops[0].Operands[1])
	}

	if size != 12 {
		t.Errorf("expected 12, got %d", size)
	}
}

// TestParseTextMatrix tests text matrix operator
func TestParseTextMatrix(t *testing.T) {
	input := []byte("1 0 0 1 100 200 Tm")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}

	if ops[0].Operator != "Tm" {
		t.Errorf("expected operator 'Tm', got %q", ops[0].Operator)
	}

	if len(ops[0].Operands) != 6 {
		t.Fatalf("expected 6 operands, got %d", len(ops[0].Operands))
	}
}

// TestParseTextBlock tests a complete text block
func TestParseTextBlock(t *testing.T) {
	input := []byte(`BT
/F1 12 Tf
100 200 Td
(Hello) Tj
ET`)
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 5 {
		t.Fatalf("expected 5 operations, got %d", len(ops))
	}

	// Check operators
	expectedOps := []string{"BT", "Tf", "Td", "Tj", "ET"}
	for i, expected := range expectedOps {
		if ops[i].Operator != expected {
			t.Errorf("operation %d: expected %q, got %q", i, expected, ops[i].Operator)
		}
	}
}

// TestParseArray tests parsing an array operand
func TestParseArray(t *testing.T) {
	input := []byte("[(Hello) -250 (World)] TJ")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}

	if ops[0].Operator != "TJ" {
		t.Errorf("expected operator 'TJ', got %q", ops[0].Operator)
	}

	arr, ok := ops[0].Operands[0].(core.Array)
	if !ok {
		t.Fatalf("expected Array operand, got %T", ops[0].Operands[0])
	}

	if len(arr) != 3 {
		t.Fatalf("expected 3 array elements, got %d", len(arr))
	}

	// Check array elements
	str1, ok := arr[0].(core.String)
	if !ok || string(str1) != "Hello" {
		t.Errorf("expected 'Hello', got %v", arr[0])
	}

	num, ok := arr[1].(core.Int)
	if !ok || num != -250 {
		t.Errorf("expected -250, got %v", arr[1])
	}

	str2, ok := arr[2].(core.String)
	if !ok || string(str2) != "World" {
		t.Errorf("expected 'World', got %v", arr[2])
	}
}

// TestParseGraphicsState tests graphics state operators
func TestParseGraphicsState(t *testing.T) {
	input := []byte(`q
1 0 0 1 50 50 cm
Q`)
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(ops))
	}

	if ops[0].Operator != "q" || len(ops[0].Operands) != 0 {
		t.Errorf("expected 'q' with 0 operands")
	}

	if ops[1].Operator != "cm" || len(ops[1].Operands) != 6 {
		t.Errorf("expected 'cm' with 6 operands")
	}

	if ops[2].Operator != "Q" || len(ops[2].Operands) != 0 {
		t.Errorf("expected 'Q' with 0 operands")
	}
}

// TestParseQuoteOperators tests the ' and " show operators, which do not
// start with a letter.
func TestParseQuoteOperators(t *testing.T) {
	input := []byte(`(next line) '
2 3 (spaced) "`)
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}

	if ops[0].Operator != "'" {
		t.Errorf("expected operator %q, got %q", "'", ops[0].Operator)
	}
	if len(ops[0].Operands) != 1 {
		t.Errorf("expected 1 operand for ', got %d", len(ops[0].Operands))
	}

	if ops[1].Operator != `"` {
		t.Errorf("expected operator %q, got %q", `"`, ops[1].Operator)
	}
	if len(ops[1].Operands) != 3 {
		t.Errorf("expected 3 operands for \", got %d", len(ops[1].Operands))
	}
}

// TestParseStarOperators tests operators containing an asterisk.
func TestParseStarOperators(t *testing.T) {
	input := []byte("T* W* f*")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expectedOps := []string{"T*", "W*", "f*"}
	if len(ops) != len(expectedOps) {
		t.Fatalf("expected %d operations, got %d", len(expectedOps), len(ops))
	}
	for i, expected := range expectedOps {
		if ops[i].Operator != expected {
			t.Errorf("operation %d: expected %q, got %q", i, expected, ops[i].Operator)
		}
	}
}

// TestParsePathConstruction tests path construction operators
func TestParsePathConstruction(t *testing.T) {
	input := []byte(`10 20 m
100 20 l
100 100 l
10 100 l
s`)
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 5 {
		t.Fatalf("expected 5 operations, got %d", len(ops))
	}

	// Check move to
	if ops[0].Operator != "m" {
		t.Errorf("expected 'm', got %q", ops[0].Operator)
	}
	if len(ops[0].Operands) != 2 {
		t.Errorf("expected 2 operands for 'm', got %d", len(ops[0].Operands))
	}

	// Check line to
	if ops[1].Operator != "l" {
		t.Errorf("expected 'l', got %q", ops[1].Operator)
	}

	// Check stroke
	if ops[4].Operator != "s" {
		t.Errorf("expected 's', got %q", ops[4].Operator)
	}
}

// TestParseHexString tests hex string parsing
func TestParseHexString(t *testing.T) {
	input := []byte("<48656C6C6F> Tj")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	str, ok := ops[0].Operands[0].(core.String)
	if !ok {
		t.Fatalf("expected String, got %T", ops[0].Operands[0])
	}

	if string(str) != "Hello" {
		t.Errorf("expected 'Hello', got %q", str)
	}
}

// TestParseEscapedString tests string with escape sequences
func TestParseEscapedString(t *testing.T) {
	input := []byte(`(Hello\nWorld\t!) Tj`)
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	str, ok := ops[0].Operands[0].(core.String)
	if !ok {
		t.Fatalf("expected String, got %T", ops[0].Operands[0])
	}

	expected := "Hello\nWorld\t!"
	if string(str) != expected {
		t.Errorf("expected %q, got %q", expected, str)
	}
}

// TestParseNestedParentheses tests string with nested parentheses
func TestParseNestedParentheses(t *testing.T) {
	input := []byte(`(Text (with (nested) parens)) Tj`)
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	str, ok := ops[0].Operands[0].(core.String)
	if !ok {
		t.Fatalf("expected String, got %T", ops[0].Operands[0])
	}

	expected := "Text (with (nested) parens)"
	if string(str) != expected {
		t.Errorf("expected %q, got %q", expected, str)
	}
}

// TestParseNegativeNumbers tests negative numbers
func TestParseNegativeNumbers(t *testing.T) {
	input := []byte("-10 -20.5 Td")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops[0].Operands) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(ops[0].Operands))
	}

	val1, ok := ops[0].Operands[0].(core.Int)
	if !ok || val1 != -10 {
		t.Errorf("expected -10, got %v", ops[0].Operands[0])
	}

	val2, ok := ops[0].Operands[1].(core.Real)
	if !ok || val2 != -20.5 {
		t.Errorf("expected -20.5, got %v", ops[0].Operands[1])
	}
}

// TestParseMultipleOperations tests multiple operations in sequence
func TestParseMultipleOperations(t *testing.T) {
	input := []byte(`q
1 w
1 0 0 RG
10 10 m
100 100 l
S
Q`)
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 7 {
		t.Fatalf("expected 7 operations, got %d", len(ops))
	}
}

// TestParseEmptyInput tests empty input
func TestParseEmptyInput(t *testing.T) {
	input := []byte("")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 0 {
		t.Errorf("expected 0 operations for empty input, got %d", len(ops))
	}
}

// TestParseWhitespaceOnly tests input with only whitespace
func TestParseWhitespaceOnly(t *testing.T) {
	input := []byte("   \n\t\r  ")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 0 {
		t.Errorf("expected 0 operations for whitespace-only input, got %d", len(ops))
	}
}

// TestParseNameWithSpecialChars tests names with # escapes
func TestParseNameWithSpecialChars(t *testing.T) {
	input := []byte("/Name#20With#20Spaces Tj")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	name, ok := ops[0].Operands[0].(core.Name)
	if !ok {
		t.Fatalf("expected Name, got %T", ops[0].Operands[0])
	}

	expected := "Name With Spaces"
	if string(name) != expected {
		t.Errorf("expected %q, got %q", expected, name)
	}
}

// TestParseRealWorld tests a more realistic content stream
func TestParseRealWorld(t *testing.T) {
	input := []byte(`BT
/F1 12 Tf
1 0 0 1 72 720 Tm
0 Tc
0 Tw
(The quick brown fox) Tj
0 -14 Td
(jumps over the lazy dog.) Tj
ET`)

	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 9 {
		t.Fatalf("expected 9 operations, got %d", len(ops))
	}

	// Verify operation sequence
	expectedOps := []string{"BT", "Tf", "Tm", "Tc", "Tw", "Tj", "Td", "Tj", "ET"}
	for i, expected := range expectedOps {
		if ops[i].Operator != expected {
			t.Errorf("operation %d: expected %q, got %q", i, expected, ops[i].Operator)
		}
	}
}

// TestParseDict tests dictionary parsing in content streams
func TestParseDict(t *testing.T) {
	input := []byte("<</Name /Value /Number 42>> gs")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}

	dict, ok := ops[0].Operands[0].(core.Dict)
	if !ok {
		t.Fatalf("expected Dict operand, got %T", ops[0].Operands[0])
	}

	if len(dict) != 2 {
		t.Errorf("expected 2 entries in dict, got %d", len(dict))
	}
}

// TestParseDictEmpty tests empty dictionary parsing
func TestParseDictEmpty(t *testing.T) {
	input := []byte("<<>> gs")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	dict, ok := ops[0].Operands[0].(core.Dict)
	if !ok {
		t.Fatalf("expected Dict operand, got %T", ops[0].Operands[0])
	}

	if len(dict) != 0 {
		t.Errorf("expected empty dict, got %d entries", len(dict))
	}
}

// TestParseHexStringEvenLength tests hex string with an even digit count
func TestParseHexStringEvenLength(t *testing.T) {
	input := []byte("<48656C6C6F00> Tj") // "Hello" + null byte
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	str, ok := ops[0].Operands[0].(core.String)
	if !ok {
		t.Fatalf("expected String, got %T", ops[0].Operands[0])
	}

	if !strings.HasPrefix(string(str), "Hello") {
		t.Errorf("expected prefix 'Hello', got %q", str)
	}
}

// TestParseHexStringOddLength tests that an odd digit count is padded
// with a trailing zero
func TestParseHexStringOddLength(t *testing.T) {
	input := []byte("<48656C6C6F2> Tj") // "Hello" + 0x20
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	str, ok := ops[0].Operands[0].(core.String)
	if !ok {
		t.Fatalf("expected String, got %T", ops[0].Operands[0])
	}

	if string(str) != "Hello " {
		t.Errorf("expected %q, got %q", "Hello ", str)
	}
}

// TestParseHexStringWithWhitespace tests hex string with embedded whitespace
func TestParseHexStringWithWhitespace(t *testing.T) {
	input := []byte("<48 65 6C 6C 6F> Tj")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	str, ok := ops[0].Operands[0].(core.String)
	if !ok {
		t.Fatalf("expected String, got %T", ops[0].Operands[0])
	}

	if string(str) != "Hello" {
		t.Errorf("expected 'Hello', got %q", str)
	}
}

// TestParseHexStringLowercase tests hex string with lowercase hex digits
func TestParseHexStringLowercase(t *testing.T) {
	input := []byte("<48656c6c6f> Tj") // "Hello" with lowercase hex
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	str, ok := ops[0].Operands[0].(core.String)
	if !ok {
		t.Fatalf("expected String, got %T", ops[0].Operands[0])
	}

	if string(str) != "Hello" {
		t.Errorf("expected 'Hello', got %q", str)
	}
}

// TestParseStringWithOctalEscape tests string with octal escape sequences
func TestParseStringWithOctalEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple string",
			input:    "(ABC) Tj",
			expected: "ABC",
		},
		{
			name:     "single digit octal",
			input:    "(\\0) Tj",
			expected: "\x00",
		},
		{
			name:     "two digit octal",
			input:    "(\\77) Tj",
			expected: "?", // 077 octal = 63 = '?'
		},
		{
			name:     "three digit octal for accented e",
			input:    "(R\\351gulier) Tj",
			expected: "R\xe9gulier", // 351 octal = 233 = 0xE9 (Latin-1 'é')
		},
		{
			name:     "three digit octal for registered trademark",
			input:    "(TYLENOL\\256) Tj",
			expected: "TYLENOL\xae", // 256 octal = 174 = 0xAE (Latin-1 '®')
		},
		{
			name:     "multiple octal escapes",
			input:    "(ac\\351taminoph\\350ne) Tj",
			expected: "ac\xe9taminoph\xe8ne", // 351=é, 350=è (Latin-1)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser([]byte(tt.input))
			ops, err := parser.Parse()
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			str, ok := ops[0].Operands[0].(core.String)
			if !ok {
				t.Fatalf("expected String, got %T", ops[0].Operands[0])
			}

			if string(str) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, str)
			}
		})
	}
}

// TestParseStringWithBackslashEscapes tests various escape sequences
func TestParseStringWithBackslashEscapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"backslash-n", `(\n)`, "\n"},
		{"backslash-r", `(\r)`, "\r"},
		{"backslash-t", `(\t)`, "\t"},
		{"backslash-b", `(\b)`, "\b"},
		{"backslash-f", `(\f)`, "\f"},
		{"backslash-paren-open", `(\()`, "("},
		{"backslash-paren-close", `(\))`, ")"},
		{"backslash-backslash", `(\\)`, "\\"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []byte(tt.input + " Tj")
			parser := NewParser(input)

			ops, err := parser.Parse()
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			str, ok := ops[0].Operands[0].(core.String)
			if !ok {
				t.Fatalf("expected String, got %T", ops[0].Operands[0])
			}

			if string(str) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, str)
			}
		})
	}
}

// TestParseStringWithLineBreakContinuation tests line continuation in strings
func TestParseStringWithLineBreakContinuation(t *testing.T) {
	// Backslash followed by newline is a line continuation (PDF spec 7.3.4.2)
	// The newline should be ignored, resulting in concatenated text
	input := []byte("(Hello\\\nWorld) Tj")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	str, ok := ops[0].Operands[0].(core.String)
	if !ok {
		t.Fatalf("expected String, got %T", ops[0].Operands[0])
	}

	// Per PDF spec, backslash-newline is line continuation (no character output)
	if string(str) != "HelloWorld" {
		t.Errorf("expected 'HelloWorld', got %q", str)
	}
}

// TestParseKeywordsAsOperators tests that bare keywords at the top level
// read as operators, since nothing distinguishes them from one.
func TestParseKeywordsAsOperators(t *testing.T) {
	for _, keyword := range []string{"true", "false", "null"} {
		t.Run(keyword, func(t *testing.T) {
			parser := NewParser([]byte(keyword))
			ops, err := parser.Parse()
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(ops) != 1 || ops[0].Operator != keyword {
				t.Errorf("expected operator %q, got %v", keyword, ops)
			}
		})
	}
}

// TestParseKeywordsInArray tests boolean and null operands inside arrays.
func TestParseKeywordsInArray(t *testing.T) {
	input := []byte("[true false null] xyz")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 1 {
		t.Fatalf("expected 1 operation, got %d", len(ops))
	}

	arr, ok := ops[0].Operands[0].(core.Array)
	if !ok {
		t.Fatalf("expected Array, got %T", ops[0].Operands[0])
	}
	if len(arr) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr))
	}

	if b, ok := arr[0].(core.Bool); !ok || !bool(b) {
		t.Errorf("expected true, got %v", arr[0])
	}
	if b, ok := arr[1].(core.Bool); !ok || bool(b) {
		t.Errorf("expected false, got %v", arr[1])
	}
	if _, ok := arr[2].(core.Null); !ok {
		t.Errorf("expected null, got %v", arr[2])
	}
}

// TestParseNumberLeadingDecimal tests numbers starting with decimal point
func TestParseNumberLeadingDecimal(t *testing.T) {
	input := []byte(".5 w")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	val, ok := ops[0].Operands[0].(core.Real)
	if !ok {
		t.Fatalf("expected Real, got %T", ops[0].Operands[0])
	}

	if val != 0.5 {
		t.Errorf("expected 0.5, got %f", val)
	}
}

// TestParseNumberNegativeDecimal tests negative numbers with leading decimal
func TestParseNumberNegativeDecimal(t *testing.T) {
	input := []byte("-.5 w")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	val, ok := ops[0].Operands[0].(core.Real)
	if !ok {
		t.Fatalf("expected Real, got %T", ops[0].Operands[0])
	}

	if val != -0.5 {
		t.Errorf("expected -0.5, got %f", val)
	}
}

// TestParseArrayNested tests nested array parsing
func TestParseArrayNested(t *testing.T) {
	input := []byte("[[1 2] [3 4]] Do")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	arr, ok := ops[0].Operands[0].(core.Array)
	if !ok {
		t.Fatalf("expected Array, got %T", ops[0].Operands[0])
	}

	if len(arr) != 2 {
		t.Fatalf("expected 2 elements in outer array, got %d", len(arr))
	}

	inner1, ok := arr[0].(core.Array)
	if !ok {
		t.Fatalf("expected inner Array, got %T", arr[0])
	}

	if len(inner1) != 2 {
		t.Errorf("expected 2 elements in inner array, got %d", len(inner1))
	}
}

// TestParseArrayWithNames tests array containing names
func TestParseArrayWithNames(t *testing.T) {
	input := []byte("[/DeviceRGB /DeviceCMYK] cs")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	arr, ok := ops[0].Operands[0].(core.Array)
	if !ok {
		t.Fatalf("expected Array, got %T", ops[0].Operands[0])
	}

	if len(arr) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(arr))
	}

	name1, ok := arr[0].(core.Name)
	if !ok || string(name1) != "DeviceRGB" {
		t.Errorf("expected /DeviceRGB, got %v", arr[0])
	}

	name2, ok := arr[1].(core.Name)
	if !ok || string(name2) != "DeviceCMYK" {
		t.Errorf("expected /DeviceCMYK, got %v", arr[1])
	}
}

// TestParseLongOperatorNames tests longer operator names
func TestParseLongOperatorNames(t *testing.T) {
	tests := []struct {
		input    string
		operator string
	}{
		{"BT", "BT"},
		{"ET", "ET"},
		{"BMC", "BMC"},
		{"EMC", "EMC"},
		{"BDC", "BDC"},
		{"DP", "DP"},
		{"MP", "MP"},
		{"sh", "sh"},
		{"CS", "CS"},
		{"SCN", "SCN"},
		{"scn", "scn"},
	}

	for _, tt := range tests {
		t.Run(tt.operator, func(t *testing.T) {
			parser := NewParser([]byte(tt.input))
			ops, err := parser.Parse()
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if len(ops) != 1 {
				t.Fatalf("expected 1 operation, got %d", len(ops))
			}

			if ops[0].Operator != tt.operator {
				t.Errorf("expected operator %q, got %q", tt.operator, ops[0].Operator)
			}
		})
	}
}

// TestParseInlineImage tests inline image parsing (BI/ID/EI)
func TestParseInlineImage(t *testing.T) {
	input := []byte(`BI
/W 100
/H 50
/CS /G
/BPC 8
ID
EI`)
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expectedOps := []string{"BI", "ID", "EI"}
	if len(ops) != len(expectedOps) {
		t.Fatalf("expected %d operations, got %d", len(expectedOps), len(ops))
	}
	for i, expected := range expectedOps {
		if ops[i].Operator != expected {
			t.Errorf("operation %d: expected %q, got %q", i, expected, ops[i].Operator)
		}
	}
}

// TestParseInlineImageBinaryData tests that raw image bytes between ID
// and EI are skipped, even when they contain delimiter characters.
func TestParseInlineImageBinaryData(t *testing.T) {
	var input []byte
	input = append(input, []byte("BI /W 2 /H 2 ID ")...)
	input = append(input, 0xFF, 0x00, '(', 0x80, '<')
	input = append(input, []byte(" EI\n(after) Tj")...)

	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expectedOps := []string{"BI", "ID", "EI", "Tj"}
	if len(ops) != len(expectedOps) {
		t.Fatalf("expected %d operations, got %d: %v", len(expectedOps), len(ops), ops)
	}
	for i, expected := range expectedOps {
		if ops[i].Operator != expected {
			t.Errorf("operation %d: expected %q, got %q", i, expected, ops[i].Operator)
		}
	}

	str, ok := ops[3].Operands[0].(core.String)
	if !ok || string(str) != "after" {
		t.Errorf("expected (after) operand, got %v", ops[3].Operands)
	}
}

// TestParseWithComments tests parsing with PDF comments
func TestParseWithComments(t *testing.T) {
	input := []byte(`BT % begin text
/F1 12 Tf
(Hello) Tj % show the text
ET`)
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 4 {
		t.Fatalf("expected 4 operations, got %d", len(ops))
	}

	expectedOps := []string{"BT", "Tf", "Tj", "ET"}
	for i, expected := range expectedOps {
		if ops[i].Operator != expected {
			t.Errorf("operation %d: expected %q, got %q", i, expected, ops[i].Operator)
		}
	}
}

// TestParseMalformedRecovery tests that damaged tokens are dropped
// without losing the surrounding operations.
func TestParseMalformedRecovery(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		operators []string
	}{
		{
			name:      "stray closing bracket",
			input:     "] (Hello) Tj",
			operators: []string{"Tj"},
		},
		{
			name:      "stray closing angle",
			input:     "> 1 0 0 1 0 0 cm",
			operators: []string{"cm"},
		},
		{
			name:      "bad hex string dropped",
			input:     "<48@@> Tj (ok) Tj",
			operators: []string{"Tj", "Tj"},
		},
		{
			name:      "lone sign dropped",
			input:     "- 5 0 Td",
			operators: []string{"Td"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser([]byte(tt.input))
			ops, err := parser.Parse()
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if len(ops) != len(tt.operators) {
				t.Fatalf("expected %d operations, got %d: %v", len(tt.operators), len(ops), ops)
			}
			for i, expected := range tt.operators {
				if ops[i].Operator != expected {
					t.Errorf("operation %d: expected %q, got %q", i, expected, ops[i].Operator)
				}
			}
		})
	}
}

// TestParseUnclosedString tests that an unterminated string consumes the
// rest of the stream without producing an operation.
func TestParseUnclosedString(t *testing.T) {
	input := []byte("(never closed Tj")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 0 {
		t.Errorf("expected 0 operations, got %d", len(ops))
	}
}

// TestParseColorOperators tests color-related operators
func TestParseColorOperators(t *testing.T) {
	input := []byte(`0.5 0.5 0.5 rg
1 0 0 RG
0.5 g
1 G`)
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ops) != 4 {
		t.Fatalf("expected 4 operations, got %d", len(ops))
	}

	// Check rg (non-stroking RGB)
	if ops[0].Operator != "rg" || len(ops[0].Operands) != 3 {
		t.Error("expected rg with 3 operands")
	}

	// Check RG (stroking RGB)
	if ops[1].Operator != "RG" || len(ops[1].Operands) != 3 {
		t.Error("expected RG with 3 operands")
	}

	// Check g (non-stroking gray)
	if ops[2].Operator != "g" || len(ops[2].Operands) != 1 {
		t.Error("expected g with 1 operand")
	}

	// Check G (stroking gray)
	if ops[3].Operator != "G" || len(ops[3].Operands) != 1 {
		t.Error("expected G with 1 operand")
	}
}

// TestHexValue tests the hexValue helper function
func TestHexValue(t *testing.T) {
	tests := []struct {
		input    byte
		expected byte
	}{
		{'0', 0},
		{'5', 5},
		{'9', 9},
		{'a', 10},
		{'f', 15},
		{'A', 10},
		{'F', 15},
	}

	for _, tt := range tests {
		result := hexValue(tt.input)
		if result != tt.expected {
			t.Errorf("hexValue(%q) = %d, want %d", tt.input, result, tt.expected)
		}
	}
}

// TestIsDelimiter tests delimiter detection
func TestIsDelimiter(t *testing.T) {
	delimiters := []byte{'(', ')', '<', '>', '[', ']', '{', '}', '/', '%'}
	nonDelimiters := []byte{'a', 'z', '0', '9', ' ', '\n'}

	for _, d := range delimiters {
		if !isDelimiter(d) {
			t.Errorf("isDelimiter(%q) = false, want true", d)
		}
	}

	for _, nd := range nonDelimiters {
		if isDelimiter(nd) {
			t.Errorf("isDelimiter(%q) = true, want false", nd)
		}
	}
}

// TestIsHexDigit tests hex digit detection
func TestIsHexDigit(t *testing.T) {
	hexDigits := []byte{'0', '5', '9', 'a', 'f', 'A', 'F'}
	nonHexDigits := []byte{'g', 'z', 'G', 'Z', ' ', '\n'}

	for _, h := range hexDigits {
		if !isHexDigit(h) {
			t.Errorf("isHexDigit(%q) = false, want true", h)
		}
	}

	for _, nh := range nonHexDigits {
		if isHexDigit(nh) {
			t.Errorf("isHexDigit(%q) = true, want false", nh)
		}
	}
}

// TestIsWhitespace tests whitespace detection
func TestIsWhitespace(t *testing.T) {
	whitespace := []byte{' ', '\t', '\r', '\n', '\f', 0}
	nonWhitespace := []byte{'a', '0', '/', '('}

	for _, w := range whitespace {
		if !isWhitespace(w) {
			t.Errorf("isWhitespace(%d) = false, want true", w)
		}
	}

	for _, nw := range nonWhitespace {
		if isWhitespace(nw) {
			t.Errorf("isWhitespace(%q) = true, want false", nw)
		}
	}
}

// TestIsLetter tests letter detection
func TestIsLetter(t *testing.T) {
	letters := []byte{'a', 'z', 'A', 'Z', 'm', 'M'}
	nonLetters := []byte{'0', '9', ' ', '/', '('}

	for _, l := range letters {
		if !isLetter(l) {
			t.Errorf("isLetter(%q) = false, want true", l)
		}
	}

	for _, nl := range nonLetters {
		if isLetter(nl) {
			t.Errorf("isLetter(%q) = true, want false", nl)
		}
	}
}

// TestParseNameWithMultipleHexEscapes tests names with multiple hex escapes
func TestParseNameWithMultipleHexEscapes(t *testing.T) {
	// #41 = 'A', #42 = 'B'
	input := []byte("/#41#42 Do")
	parser := NewParser(input)

	ops, err := parser.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	name, ok := ops[0].Operands[0].(core.Name)
	if !ok {
		t.Fatalf("expected Name, got %T", ops[0].Operands[0])
	}

	if string(name) != "AB" {
		t.Errorf("expected 'AB', got %q", name)
	}
}

// Benchmark tests
func BenchmarkParseSimple(b *testing.B) {
	input := []byte("BT /F1 12 Tf (Hello) Tj ET")
	for i := 0; i < b.N; i++ {
		parser := NewParser(input)
		_, _ = parser.Parse()
	}
}

func BenchmarkParseComplex(b *testing.B) {
	input := []byte(`BT
/F1 12 Tf
1 0 0 1 72 720 Tm
0 Tc
0 Tw
(The quick brown fox) Tj
0 -14 Td
(jumps over the lazy dog.) Tj
ET`)
	for i := 0; i < b.N; i++ {
		parser := NewParser(input)
		_, _ = parser.Parse()
	}
}
