package main

import (
	"testing"

	"github.com/yosephbernandus/pdf-parser/format"
)

func TestPickFormat(t *testing.T) {
	tests := []struct {
		name                    string
		csv, tsv, text, md, raw bool
		output                  string
		want                    format.Format
		wantErr                 bool
	}{
		{name: "default is text", want: format.Text},
		{name: "explicit csv", csv: true, want: format.CSV},
		{name: "explicit tsv", tsv: true, want: format.TSV},
		{name: "explicit markdown", md: true, want: format.Markdown},
		{name: "explicit raw", raw: true, want: format.Raw},
		{name: "inferred from output extension", output: "report.csv", want: format.CSV},
		{name: "inferred markdown", output: "notes.md", want: format.Markdown},
		{name: "flag beats extension", md: true, output: "report.csv", want: format.Markdown},
		{name: "unknown extension falls back to text", output: "dump.bin", want: format.Text},
		{name: "conflicting flags", csv: true, md: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickFormat(tt.csv, tt.tsv, tt.text, tt.md, tt.raw, tt.output)
			if (err != nil) != tt.wantErr {
				t.Fatalf("pickFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want {
				t.Errorf("pickFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}
