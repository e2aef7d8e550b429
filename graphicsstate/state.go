package graphicsstate

import (
	"github.com/yosephbernandus/pdf-parser/model"
)

// GraphicsState represents the PDF graphics state as far as text
// extraction needs it: the current transformation matrix plus the text
// state, with a save/restore stack for the q and Q operators.
type GraphicsState struct {
	// Current Transformation Matrix
	CTM model.Matrix

	// Text state
	Text TextState

	// Graphics state stack (for q/Q operators)
	stack []*GraphicsState
}

// TextState represents text-specific state
type TextState struct {
	// Font and size
	FontName string
	FontSize float64

	// Character and word spacing
	CharSpacing float64
	WordSpacing float64

	// Leading (line spacing)
	Leading float64

	// Text matrices
	TextMatrix     model.Matrix
	TextLineMatrix model.Matrix
}

// NewGraphicsState creates a new graphics state with default values
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM: model.Identity(),
		Text: TextState{
			FontSize:       12.0,
			TextMatrix:     model.Identity(),
			TextLineMatrix: model.Identity(),
		},
	}
}

// Clone creates a copy of the graphics state without its stack
func (gs *GraphicsState) Clone() *GraphicsState {
	return &GraphicsState{
		CTM:  gs.CTM,
		Text: gs.Text,
	}
}

// Save pushes the current graphics state onto the stack (q operator)
func (gs *GraphicsState) Save() {
	gs.stack = append(gs.stack, gs.Clone())
}

// Restore pops a graphics state from the stack (Q operator). An unbalanced
// Q with nothing saved leaves the state unchanged; damaged streams produce
// these and they must not end the page.
func (gs *GraphicsState) Restore() {
	if len(gs.stack) == 0 {
		return
	}

	saved := gs.stack[len(gs.stack)-1]
	gs.stack = gs.stack[:len(gs.stack)-1]

	gs.CTM = saved.CTM
	gs.Text = saved.Text
}

// Transform concatenates a matrix onto the CTM (cm operator). The new
// matrix applies before the existing CTM, per the PDF composition rule.
func (gs *GraphicsState) Transform(m model.Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// SetFont sets the current font (Tf operator)
func (gs *GraphicsState) SetFont(name string, size float64) {
	gs.Text.FontName = name
	gs.Text.FontSize = size
}

// SetCharSpacing sets character spacing (Tc operator)
func (gs *GraphicsState) SetCharSpacing(spacing float64) {
	gs.Text.CharSpacing = spacing
}

// SetWordSpacing sets word spacing (Tw operator)
func (gs *GraphicsState) SetWordSpacing(spacing float64) {
	gs.Text.WordSpacing = spacing
}

// SetLeading sets text leading (TL operator)
func (gs *GraphicsState) SetLeading(leading float64) {
	gs.Text.Leading = leading
}

// BeginText resets both text matrices to identity (BT operator)
func (gs *GraphicsState) BeginText() {
	gs.Text.TextMatrix = model.Identity()
	gs.Text.TextLineMatrix = model.Identity()
}

// EndText ends a text object (ET operator). The text matrices keep their
// values until the next BT.
func (gs *GraphicsState) EndText() {
}

// SetTextMatrix sets the text matrix and line matrix (Tm operator)
func (gs *GraphicsState) SetTextMatrix(m model.Matrix) {
	gs.Text.TextMatrix = m
	gs.Text.TextLineMatrix = m
}

// TranslateText moves the line matrix by (tx, ty) and copies it to the
// text matrix (Td operator). The translation components accumulate
// directly; scale and rotation stay as the last Tm set them.
func (gs *GraphicsState) TranslateText(tx, ty float64) {
	gs.Text.TextLineMatrix[4] += tx
	gs.Text.TextLineMatrix[5] += ty
	gs.Text.TextMatrix = gs.Text.TextLineMatrix
}

// TranslateTextSetLeading translates text and sets leading (TD operator)
func (gs *GraphicsState) TranslateTextSetLeading(tx, ty float64) {
	gs.SetLeading(-ty)
	gs.TranslateText(tx, ty)
}

// NextLine moves to the next line (T* operator)
func (gs *GraphicsState) NextLine() {
	gs.TranslateText(0, -gs.Text.Leading)
}

// Advance moves the text position horizontally by dx without touching the
// line matrix. Show operators and TJ adjustments use it.
func (gs *GraphicsState) Advance(dx float64) {
	gs.Text.TextMatrix[4] += dx
}

// GetTextPosition returns the current text position in device space
func (gs *GraphicsState) GetTextPosition() (x, y float64) {
	tm := gs.Text.TextMatrix
	p := gs.CTM.Transform(model.Point{X: tm[4], Y: tm[5]})
	return p.X, p.Y
}

// GetTextMatrix returns the current text matrix
func (gs *GraphicsState) GetTextMatrix() model.Matrix {
	return gs.Text.TextMatrix
}

// GetFontSize returns the current font size
func (gs *GraphicsState) GetFontSize() float64 {
	return gs.Text.FontSize
}

// GetEffectiveFontSize returns the font size scaled by the text matrix.
// Writers commonly select size 1 with Tf and carry the real size in Tm.
func (gs *GraphicsState) GetEffectiveFontSize() float64 {
	verticalScale := abs(gs.Text.TextMatrix[3])
	horizontalScale := abs(gs.Text.TextMatrix[0])

	scale := verticalScale
	if horizontalScale > verticalScale {
		scale = horizontalScale
	}

	return gs.Text.FontSize * scale
}

// GetFontName returns the current font name
func (gs *GraphicsState) GetFontName() string {
	return gs.Text.FontName
}

// abs returns the absolute value
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
