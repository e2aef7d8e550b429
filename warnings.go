package pdfparser

import (
	"fmt"
	"strings"

	"github.com/yosephbernandus/pdf-parser/reader"
)

// Warning describes a non-fatal issue encountered during extraction:
// a dangling reference degraded to null, an unusable font, an
// unreadable header version. Extraction continues past every warning;
// the output may simply be less complete than the document intended.
type Warning = reader.Warning

// FormatWarnings renders warnings one per line for logging.
//
// Example:
//
//	text, warnings, err := pdfparser.Open("document.pdf").Text()
//	if len(warnings) > 0 {
//	    log.Println(pdfparser.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}

	lines := make([]string, len(warnings))
	for i, w := range warnings {
		if w.Page > 0 {
			lines[i] = fmt.Sprintf("page %d: %s", w.Page, w.Message)
		} else {
			lines[i] = w.Message
		}
	}
	return strings.Join(lines, "\n")
}
