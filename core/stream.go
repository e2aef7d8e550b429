package core

import (
	"fmt"

	"github.com/yosephbernandus/pdf-parser/internal/filters"
)

// DecodeStream decodes stream data according to the /Filter entry of its
// dictionary: nothing, a single filter name, or a chain applied left to
// right with /DecodeParms carried alongside. Filters outside the supported
// set report ErrUnsupportedFilter naming the filter.
func DecodeStream(dict Dict, data []byte) ([]byte, error) {
	filterObj := dict.Get("Filter")
	if filterObj == nil {
		return data, nil
	}

	paramsObj := dict.Get("DecodeParms")

	if filterName, ok := filterObj.(Name); ok {
		return decodeWithFilter(data, string(filterName), paramsObjToDict(paramsObj))
	}

	if filterArray, ok := filterObj.(Array); ok {
		for i, filter := range filterArray {
			filterName, ok := filter.(Name)
			if !ok {
				return nil, parseErrorf(0, "filter %d is not a name, got %s", i, filter.Type())
			}

			// DecodeParms may be a parallel array or one dict shared by
			// the whole chain.
			var params Dict
			if paramsArray, ok := paramsObj.(Array); ok {
				if i < len(paramsArray) {
					params = paramsObjToDict(paramsArray[i])
				}
			} else {
				params = paramsObjToDict(paramsObj)
			}

			var err error
			data, err = decodeWithFilter(data, string(filterName), params)
			if err != nil {
				return nil, fmt.Errorf("filter %d (%s): %w", i, filterName, err)
			}
		}
		return data, nil
	}

	return nil, parseErrorf(0, "invalid /Filter type %s", filterObj.Type())
}

// decodeWithFilter applies a single filter by its PDF name or
// abbreviation.
func decodeWithFilter(data []byte, filterName string, params Dict) ([]byte, error) {
	switch filterName {
	case "FlateDecode", "Fl":
		return filters.FlateDecode(data, dictToParams(params))

	case "ASCIIHexDecode", "AHx":
		return filters.ASCIIHexDecode(data)

	case "ASCII85Decode", "A85":
		return filters.ASCII85Decode(data)

	case "CCITTFaxDecode", "CCF":
		return filters.CCITTFaxDecode(data, dictToParams(params))

	default:
		return nil, fmt.Errorf("pdf: filter %s: %w", filterName, ErrUnsupportedFilter)
	}
}

// paramsObjToDict normalizes a /DecodeParms value, treating null like an
// absent entry.
func paramsObjToDict(obj Object) Dict {
	if dict, ok := obj.(Dict); ok {
		return dict
	}
	return nil
}

// dictToParams converts a parameter dictionary to filters.Params,
// translating PDF objects to Go primitives so the filter package stays
// free of the object model.
func dictToParams(dict Dict) filters.Params {
	if dict == nil {
		return nil
	}

	params := make(filters.Params)
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case String:
			params[k] = string(obj)
		case Name:
			params[k] = string(obj)
		default:
			params[k] = v
		}
	}
	return params
}
