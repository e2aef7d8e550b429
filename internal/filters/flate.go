package filters

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Params carries decode parameters from a stream's /DecodeParms
// dictionary, translated to Go primitives (int, float64, bool, string).
type Params map[string]interface{}

// FlateDecode decompresses zlib/deflate data, then reverses the predictor
// transform when /Predictor names one. Predictor 1 is the identity, 2 is
// TIFF horizontal differencing, and 10 through 15 select the PNG filter
// family with the algorithm recorded per row.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}

	predictor := intParam(params, "Predictor", 1)
	switch {
	case predictor == 1:
		return decompressed, nil
	case predictor == 2:
		return undoTIFFPredictor(decompressed, params)
	case predictor >= 10 && predictor <= 15:
		return undoPNGPredictor(decompressed, params)
	default:
		return nil, fmt.Errorf("unsupported predictor %d", predictor)
	}
}

// undoTIFFPredictor reverses TIFF Predictor 2, which differences each
// sample against the one to its left.
func undoTIFFPredictor(data []byte, params Params) ([]byte, error) {
	columns := intParam(params, "Columns", 1)
	colors := intParam(params, "Colors", 1)
	if bpc := intParam(params, "BitsPerComponent", 8); bpc != 8 {
		return nil, fmt.Errorf("TIFF predictor needs 8 bits per component, got %d", bpc)
	}

	rowSize := columns * colors
	if rowSize <= 0 || len(data)%rowSize != 0 {
		return nil, fmt.Errorf("predictor row size %d does not divide %d data bytes", rowSize, len(data))
	}

	out := make([]byte, len(data))
	for rowStart := 0; rowStart < len(data); rowStart += rowSize {
		for i := 0; i < rowSize; i++ {
			b := data[rowStart+i]
			if i >= colors {
				b += out[rowStart+i-colors]
			}
			out[rowStart+i] = b
		}
	}
	return out, nil
}

// undoPNGPredictor reverses the PNG row filters. Every encoded row is one
// filter-type byte followed by the filtered samples; reconstruction works
// against the previous decoded row.
func undoPNGPredictor(data []byte, params Params) ([]byte, error) {
	columns := intParam(params, "Columns", 1)
	colors := intParam(params, "Colors", 1)
	if bpc := intParam(params, "BitsPerComponent", 8); bpc != 8 {
		return nil, fmt.Errorf("PNG predictor needs 8 bits per component, got %d", bpc)
	}

	rowSize := columns * colors
	if rowSize <= 0 || len(data)%(rowSize+1) != 0 {
		return nil, fmt.Errorf("predictor row size %d does not divide %d data bytes", rowSize+1, len(data))
	}

	numRows := len(data) / (rowSize + 1)
	out := make([]byte, 0, numRows*rowSize)
	prev := make([]byte, rowSize)
	cur := make([]byte, rowSize)

	for row := 0; row < numRows; row++ {
		filterType := data[row*(rowSize+1)]
		encoded := data[row*(rowSize+1)+1 : (row+1)*(rowSize+1)]

		for i := 0; i < rowSize; i++ {
			var left, up, upLeft byte
			if i >= colors {
				left = cur[i-colors]
				upLeft = prev[i-colors]
			}
			up = prev[i]

			var predicted byte
			switch filterType {
			case 0: // None
			case 1: // Sub
				predicted = left
			case 2: // Up
				predicted = up
			case 3: // Average
				predicted = byte((int(left) + int(up)) / 2)
			case 4: // Paeth
				predicted = paeth(left, up, upLeft)
			default:
				return nil, fmt.Errorf("row %d: unknown PNG filter type %d", row, filterType)
			}
			cur[i] = encoded[i] + predicted
		}

		out = append(out, cur...)
		prev, cur = cur, prev
	}
	return out, nil
}

// paeth picks whichever of left, up, and upper-left is closest to the
// linear estimate left+up-upLeft, as defined by the PNG specification.
func paeth(left, up, upLeft byte) byte {
	p := int(left) + int(up) - int(upLeft)
	pa := abs(p - int(left))
	pb := abs(p - int(up))
	pc := abs(p - int(upLeft))

	if pa <= pb && pa <= pc {
		return left
	}
	if pb <= pc {
		return up
	}
	return upLeft
}

// intParam reads an integer-valued parameter, tolerating the numeric
// types a /DecodeParms dictionary can carry.
func intParam(params Params, key string, defaultValue int) int {
	if params == nil {
		return defaultValue
	}
	switch v := params[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultValue
	}
}

func boolParam(params Params, key string, defaultValue bool) bool {
	if params == nil {
		return defaultValue
	}
	if v, ok := params[key].(bool); ok {
		return v
	}
	return defaultValue
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
