package font

import (
	"fmt"
	"log/slog"

	"github.com/yosephbernandus/pdf-parser/core"
)

// CIDFont is the descendant of a Type0 font. Only what text extraction
// needs is kept: the font's identity and its width model.
type CIDFont struct {
	BaseFont string
	Subtype  string

	// DW is the default glyph width; W overrides it per CID range.
	DW float64
	W  []WidthRange
}

// WidthRange assigns widths to a run of CIDs, either one shared width
// for the whole run or one width per CID.
type WidthRange struct {
	StartCID int
	EndCID   int
	Width    float64
	Widths   []float64
}

// loadType0 configures a composite font. Without a ToUnicode CMap the
// character codes cannot reach Unicode, so the font is rejected with
// ErrUnsupportedFont and callers fall back to default decoding.
func (f *Font) loadType0(dict core.Dict, res Resolver) error {
	encoding := "Identity-H"
	if name, ok := dict.GetName("Encoding"); ok {
		encoding = string(name)
	}
	f.twoByte = true
	f.vertical = encoding == "Identity-V"

	f.toUnicode = loadToUnicode(dict, res)
	if f.toUnicode == nil {
		return fmt.Errorf("%w: Type0 font %q has no ToUnicode CMap", ErrUnsupportedFont, f.BaseFont)
	}

	cid, err := loadDescendantFont(dict, res)
	if err != nil {
		// Widths fall back to the default; decoding is unaffected.
		slog.Debug("no usable descendant font", slog.String("font", f.BaseFont), slog.Any("err", err))
		return nil
	}
	f.descendant = cid
	return nil
}

// loadDescendantFont reads the first entry of /DescendantFonts.
func loadDescendantFont(dict core.Dict, res Resolver) (*CIDFont, error) {
	arr, ok := resolved(res, dict.Get("DescendantFonts")).(core.Array)
	if !ok || arr.Len() == 0 {
		return nil, fmt.Errorf("font: missing DescendantFonts")
	}
	desc, ok := resolved(res, arr.Get(0)).(core.Dict)
	if !ok {
		return nil, fmt.Errorf("font: descendant font is not a dictionary")
	}
	return newCIDFont(desc, res)
}

// newCIDFont reads the identity and width model of a CIDFont dictionary.
func newCIDFont(dict core.Dict, res Resolver) (*CIDFont, error) {
	cid := &CIDFont{DW: 1000}
	if baseFont, ok := dict.GetName("BaseFont"); ok {
		cid.BaseFont = string(baseFont)
	}
	if subtype, ok := dict.GetName("Subtype"); ok {
		cid.Subtype = string(subtype)
	}
	if cid.Subtype != "CIDFontType0" && cid.Subtype != "CIDFontType2" {
		return nil, fmt.Errorf("font: not a CIDFont: %q", cid.Subtype)
	}
	if dw, ok := dict.GetNumber("DW"); ok {
		cid.DW = dw
	}
	cid.parseWidthArray(resolved(res, dict.Get("W")), res)
	return cid, nil
}

// parseWidthArray reads the W array. Entries take one of two forms:
// "start [w1 w2 ... wn]" or "start end w".
func (cid *CIDFont) parseWidthArray(obj core.Object, res Resolver) {
	arr, ok := obj.(core.Array)
	if !ok {
		return
	}
	for i := 0; i < arr.Len(); {
		start, ok := arr.GetNumber(i)
		if !ok {
			return
		}
		i++
		if i >= arr.Len() {
			return
		}

		if widths, ok := resolved(res, arr.Get(i)).(core.Array); ok {
			ws := make([]float64, widths.Len())
			for j := 0; j < widths.Len(); j++ {
				ws[j], _ = widths.GetNumber(j)
			}
			cid.W = append(cid.W, WidthRange{
				StartCID: int(start),
				EndCID:   int(start) + len(ws) - 1,
				Widths:   ws,
			})
			i++
			continue
		}

		end, ok := arr.GetNumber(i)
		if !ok {
			return
		}
		i++
		if i >= arr.Len() {
			return
		}
		w, _ := arr.GetNumber(i)
		i++
		cid.W = append(cid.W, WidthRange{StartCID: int(start), EndCID: int(end), Width: w})
	}
}

// WidthForCID returns the glyph width for a CID, in 1000ths of an em.
func (cid *CIDFont) WidthForCID(cidValue int) float64 {
	for _, wr := range cid.W {
		if cidValue < wr.StartCID || cidValue > wr.EndCID {
			continue
		}
		if wr.Widths != nil {
			if idx := cidValue - wr.StartCID; idx < len(wr.Widths) {
				return wr.Widths[idx]
			}
			continue
		}
		return wr.Width
	}
	return cid.DW
}
