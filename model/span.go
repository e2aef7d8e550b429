package model

import "fmt"

// TextSpan is one positioned run of text produced by a single show-text
// operator. Coordinates are PDF user space: X grows rightward, Y grows
// upward from the page's bottom-left corner.
type TextSpan struct {
	Text     string
	X, Y     float64
	FontSize float64
	FontName string
}

func (s TextSpan) String() string {
	return fmt.Sprintf("[%.1f, %.1f] (%gpt): %s", s.X, s.Y, s.FontSize, s.Text)
}
