package text

import (
	"fmt"
	"strings"

	"github.com/yosephbernandus/pdf-parser/contentstream"
	"github.com/yosephbernandus/pdf-parser/core"
	"github.com/yosephbernandus/pdf-parser/font"
	"github.com/yosephbernandus/pdf-parser/graphicsstate"
	"github.com/yosephbernandus/pdf-parser/model"
)

// Interpreter executes the text operators of a content stream and
// collects one positioned span per show operation.
type Interpreter struct {
	gs    *graphicsstate.GraphicsState
	fonts map[string]*font.Font

	spans []model.TextSpan
}

// NewInterpreter creates an interpreter using the given font resources,
// keyed by resource name as it appears in Tf operands.
func NewInterpreter(fonts map[string]*font.Font) *Interpreter {
	if fonts == nil {
		fonts = make(map[string]*font.Font)
	}
	return &Interpreter{
		gs:    graphicsstate.NewGraphicsState(),
		fonts: fonts,
	}
}

// Run parses raw content stream data and executes it.
func (in *Interpreter) Run(data []byte) ([]model.TextSpan, error) {
	parser := contentstream.NewParser(data)
	operations, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse content stream: %w", err)
	}

	return in.Execute(operations), nil
}

// Execute runs parsed operations and returns the collected spans.
// Operators outside the text subset are ignored, and operations with
// malformed operands are skipped.
func (in *Interpreter) Execute(operations []contentstream.Operation) []model.TextSpan {
	in.spans = make([]model.TextSpan, 0)

	for _, op := range operations {
		in.processOperation(op)
	}

	return in.spans
}

// processOperation processes a single content stream operation
func (in *Interpreter) processOperation(op contentstream.Operation) {
	switch op.Operator {
	// Graphics state
	case "q":
		in.gs.Save()
	case "Q":
		in.gs.Restore()
	case "cm":
		if m, ok := operandsToMatrix(op.Operands); ok {
			in.gs.Transform(m)
		}

	// Text object and state
	case "BT":
		in.gs.BeginText()
	case "ET":
		in.gs.EndText()
	case "Tf":
		// Damaged streams sometimes leave junk under the operands, so
		// the name and size are taken from the top of the stack.
		if len(op.Operands) >= 2 {
			name, nameOK := op.Operands[len(op.Operands)-2].(core.Name)
			size, sizeOK := toFloat(op.Operands[len(op.Operands)-1])
			if nameOK && sizeOK {
				in.gs.SetFont(string(name), size)
			}
		}
	case "Tc":
		if v, ok := lastFloat(op.Operands); ok {
			in.gs.SetCharSpacing(v)
		}
	case "Tw":
		if v, ok := lastFloat(op.Operands); ok {
			in.gs.SetWordSpacing(v)
		}
	case "TL":
		if v, ok := lastFloat(op.Operands); ok {
			in.gs.SetLeading(v)
		}

	// Text positioning
	case "Td":
		if tx, ty, ok := lastTwoFloats(op.Operands); ok {
			in.gs.TranslateText(tx, ty)
		}
	case "TD":
		if tx, ty, ok := lastTwoFloats(op.Operands); ok {
			in.gs.TranslateTextSetLeading(tx, ty)
		}
	case "Tm":
		if m, ok := operandsToMatrix(op.Operands); ok {
			in.gs.SetTextMatrix(m)
		}
	case "T*":
		in.gs.NextLine()

	// Text showing
	case "Tj":
		if s, ok := lastString(op.Operands); ok {
			in.showText(s)
		}
	case "TJ":
		if len(op.Operands) >= 1 {
			if arr, ok := op.Operands[len(op.Operands)-1].(core.Array); ok {
				in.showTextArray(arr)
			}
		}
	case "'":
		// Move to next line and show text
		in.gs.NextLine()
		if s, ok := lastString(op.Operands); ok {
			in.showText(s)
		}
	case "\"":
		// Set word/char spacing, move to next line, show text
		if len(op.Operands) >= 3 {
			n := len(op.Operands)
			if ws, ok := toFloat(op.Operands[n-3]); ok {
				in.gs.SetWordSpacing(ws)
			}
			if cs, ok := toFloat(op.Operands[n-2]); ok {
				in.gs.SetCharSpacing(cs)
			}
			in.gs.NextLine()
			if s, ok := op.Operands[n-1].(core.String); ok {
				in.showText([]byte(s))
			}
		}
	}
}

// showText emits a span for one show operation and advances the text
// matrix. The span position is the text origin before the advance,
// mapped through the CTM into device space.
func (in *Interpreter) showText(data []byte) {
	if len(data) == 0 {
		return
	}

	fontName := in.gs.GetFontName()
	f := in.fonts[fontName]
	fontSize := in.gs.GetEffectiveFontSize()

	var decoded string
	if f != nil {
		decoded = f.Decode(data)
	} else {
		decoded = font.WinAnsiEncoding.DecodeString(data)
	}

	if trimmed := strings.TrimSpace(decoded); trimmed != "" {
		x, y := in.gs.GetTextPosition()
		in.spans = append(in.spans, model.TextSpan{
			Text:     trimmed,
			X:        x,
			Y:        y,
			FontSize: fontSize,
			FontName: fontName,
		})
	}

	// Whitespace-only shows still move the pen.
	in.gs.Advance(in.advanceWidth(f, data, decoded, fontSize))
}

// advanceWidth computes the horizontal advance of one show operation,
// including character and word spacing.
func (in *Interpreter) advanceWidth(f *font.Font, data []byte, decoded string, fontSize float64) float64 {
	var width float64
	if f != nil {
		width = f.Advance(data, fontSize)
	} else {
		width = float64(len(data)) * fontSize * 0.5
	}

	charSpacing := in.gs.Text.CharSpacing
	wordSpacing := in.gs.Text.WordSpacing
	if charSpacing != 0 || wordSpacing != 0 {
		for _, r := range decoded {
			width += charSpacing
			if r == ' ' {
				width += wordSpacing
			}
		}
	}

	return width
}

// showTextArray processes a TJ array: strings show text, numbers adjust
// the position by -n/1000 of the font size.
func (in *Interpreter) showTextArray(arr core.Array) {
	fontSize := in.gs.GetEffectiveFontSize()

	for _, item := range arr {
		switch v := item.(type) {
		case core.String:
			in.showText([]byte(v))
		case core.Int:
			in.gs.Advance(-float64(v) / 1000.0 * fontSize)
		case core.Real:
			in.gs.Advance(-float64(v) / 1000.0 * fontSize)
		}
	}
}

// Spans returns the spans collected by the last Execute call.
func (in *Interpreter) Spans() []model.TextSpan {
	return in.spans
}

// Helper functions

func toFloat(obj core.Object) (float64, bool) {
	switch v := obj.(type) {
	case core.Int:
		return float64(v), true
	case core.Real:
		return float64(v), true
	default:
		return 0, false
	}
}

func lastFloat(operands []core.Object) (float64, bool) {
	if len(operands) == 0 {
		return 0, false
	}
	return toFloat(operands[len(operands)-1])
}

func lastTwoFloats(operands []core.Object) (float64, float64, bool) {
	if len(operands) < 2 {
		return 0, 0, false
	}
	x, okX := toFloat(operands[len(operands)-2])
	y, okY := toFloat(operands[len(operands)-1])
	return x, y, okX && okY
}

func lastString(operands []core.Object) ([]byte, bool) {
	if len(operands) == 0 {
		return nil, false
	}
	s, ok := operands[len(operands)-1].(core.String)
	return []byte(s), ok
}

func operandsToMatrix(operands []core.Object) (model.Matrix, bool) {
	if len(operands) != 6 {
		return model.Identity(), false
	}

	var m model.Matrix
	for i, op := range operands {
		v, ok := toFloat(op)
		if !ok {
			return model.Identity(), false
		}
		m[i] = v
	}

	return m, true
}
