package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes CCITT Group 3/4 fax data, the bi-level encoding
// scanned documents use.
//
// Recognized parameters:
//   - K: coding scheme (negative selects Group 4, otherwise Group 3)
//   - Columns: row width in pixels (default 1728)
//   - Rows: image height (0 means detect from the data)
//   - BlackIs1: inverted bit sense
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	columns := intParam(params, "Columns", 1728)
	rows := intParam(params, "Rows", 0)

	subFormat := ccitt.Group3
	if intParam(params, "K", 0) < 0 {
		subFormat = ccitt.Group4
	}
	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}

	opts := &ccitt.Options{Invert: boolParam(params, "BlackIs1", false)}
	reader := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, subFormat, columns, rows, opts)
	return io.ReadAll(reader)
}
