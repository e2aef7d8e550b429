// Package filters implements the stream decoding filters needed for text
// extraction: FlateDecode (with TIFF and PNG predictors), ASCIIHexDecode,
// ASCII85Decode, and CCITTFaxDecode.
//
// Filters operate on raw bytes and a Params map carrying the entries of
// the stream's /DecodeParms dictionary translated to Go primitives:
//
//	params := filters.Params{
//	    "Predictor": 12,
//	    "Columns":   100,
//	    "Colors":    3,
//	}
//	decoded, err := filters.FlateDecode(data, params)
//
// Keeping the package free of the object model lets the filters be tested
// and reused without constructing PDF dictionaries.
package filters
