// Package graphicsstate provides PDF graphics state management.
//
// The PDF graphics state controls how content is positioned on the
// page, including the transformation matrix and the text state. This
// package implements the state stack used during content stream
// processing.
//
// # Graphics State
//
// The main type is GraphicsState, which tracks:
//   - CTM (Current Transformation Matrix) for coordinate transformations
//   - Text state (font, size, spacing, matrices)
//
// Example usage:
//
//	gs := graphicsstate.NewGraphicsState()
//	gs.Save()              // Push state (q operator)
//	gs.Transform(matrix)   // Modify CTM (cm operator)
//	gs.SetFont("F1", 12)   // Set font (Tf operator)
//	gs.Restore()           // Pop state (Q operator)
//
// Restore on an empty stack is a no-op, so damaged streams with
// unbalanced Q operators do not abort processing.
//
// # Text State
//
// Text positioning uses a separate TextState structure that tracks:
//   - Font name and size (Tf operator)
//   - Character and word spacing (Tc, Tw operators)
//   - Leading for line spacing (TL operator)
//   - Text and text line matrices (Tm, Td operators)
//
// GetTextPosition maps the current text origin through the CTM into
// device space, and GetEffectiveFontSize folds the text matrix scale
// into the nominal font size, so text written with a size-1 font and
// the real size carried in Tm still reports its visual size.
package graphicsstate
