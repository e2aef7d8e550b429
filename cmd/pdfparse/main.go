// Command pdfparse extracts text, tables, and structure from PDF files.
//
// Usage:
//
//	pdfparse [--csv|--tsv|--text|--txt|--md|--raw] [--page N] [-o FILE] input.pdf
//
// The output format comes from a format flag, or failing that from the
// -o file's extension, or failing that layout-aware plain text.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	pdfparser "github.com/yosephbernandus/pdf-parser"
	"github.com/yosephbernandus/pdf-parser/format"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pdfparse: ")

	var (
		csvFlag  = flag.Bool("csv", false, "output as CSV, one table per page")
		tsvFlag  = flag.Bool("tsv", false, "output as TSV, one table per page")
		textFlag = flag.Bool("text", false, "output as layout-aware plain text")
		txtFlag  = flag.Bool("txt", false, "alias for --text")
		mdFlag   = flag.Bool("md", false, "output as Markdown")
		rawFlag  = flag.Bool("raw", false, "output positioned spans, one per line")
		page     = flag.Int("page", 0, "extract a single page, 1-indexed (0 means all pages)")
		output   = flag.String("o", "", "write to `file` instead of stdout; its extension picks the format")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	outFormat, err := pickFormat(*csvFlag, *tsvFlag, *textFlag || *txtFlag, *mdFlag, *rawFlag, *output)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(flag.Arg(0), outFormat, *page, *output); err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: pdfparse [--csv|--tsv|--text|--txt|--md|--raw] [--page N] [-o FILE] input.pdf\n")
	flag.PrintDefaults()
}

// pickFormat resolves the output format: an explicit flag wins, then the
// output file's extension, then plain text.
func pickFormat(csv, tsv, text, md, raw bool, output string) (format.Format, error) {
	chosen := format.Unknown
	count := 0
	for _, ff := range []struct {
		set bool
		f   format.Format
	}{
		{csv, format.CSV},
		{tsv, format.TSV},
		{text, format.Text},
		{md, format.Markdown},
		{raw, format.Raw},
	} {
		if ff.set {
			chosen = ff.f
			count++
		}
	}

	if count > 1 {
		return format.Unknown, fmt.Errorf("choose at most one format flag")
	}
	if count == 1 {
		return chosen, nil
	}
	if output != "" {
		if f := format.Detect(output); f != format.Unknown {
			return f, nil
		}
	}
	return format.Text, nil
}

func run(input string, f format.Format, page int, output string) error {
	ext := pdfparser.Open(input)
	if page > 0 {
		ext = ext.Pages(page)
	}

	var (
		out      string
		warnings []pdfparser.Warning
		err      error
	)
	switch f {
	case format.CSV:
		out, warnings, err = ext.CSV()
	case format.TSV:
		out, warnings, err = ext.TSV()
	case format.Markdown:
		out, warnings, err = ext.Markdown()
	case format.Raw:
		out, warnings, err = ext.Raw()
	default:
		out, warnings, err = ext.Text()
	}
	if err != nil {
		return err
	}

	if len(warnings) > 0 {
		log.Print(pdfparser.FormatWarnings(warnings))
	}

	// Table renders carry no trailing newline; files and terminals want one.
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	if output == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}
