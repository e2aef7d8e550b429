package model

// ElementType represents the kind of a layout element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeHeading
	ElementTypeParagraph
	ElementTypeTable
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeHeading:
		return "Heading"
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Element is a classified piece of page content in reading order.
type Element interface {
	Type() ElementType
}

// Heading is a heading line with its level (1 is largest).
type Heading struct {
	Level int
	Text  string
}

func (h Heading) Type() ElementType { return ElementTypeHeading }

// Paragraph is a run of body text lines joined into one block.
type Paragraph struct {
	Text string
}

func (p Paragraph) Type() ElementType { return ElementTypeParagraph }

// TableBlock wraps a detected table as a layout element.
type TableBlock struct {
	Table Table
}

func (tb TableBlock) Type() ElementType { return ElementTypeTable }
