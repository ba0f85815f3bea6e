// Package fonts parses TrueType faces and measures text with their advance widths.
package fonts

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrEmpty is returned by Parse for zero-length font data.
var ErrEmpty = errors.New("fonts: empty font data")

// Face is a parsed font. It is immutable and safe for concurrent use.
type Face struct {
	name string
	data []byte
	font *sfnt.Font
	upem fixed.Int26_6
}

// Parse validates data as a TrueType/OpenType font and returns a Face for it.
// The bytes are retained, not copied; callers must not modify them afterwards.
func Parse(name string, data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parsing %s: %w", name, err)
	}
	upem := f.UnitsPerEm()
	if upem <= 0 {
		return nil, fmt.Errorf("fonts: %s: invalid units per em %d", name, upem)
	}
	// Probe the space glyph so fonts without a usable cmap fail here rather than mid-render.
	var buf sfnt.Buffer
	if _, err := f.GlyphIndex(&buf, ' '); err != nil {
		return nil, fmt.Errorf("fonts: %s: reading cmap: %w", name, err)
	}
	return &Face{name: name, data: data, font: f, upem: fixed.Int26_6(upem) << 6}, nil
}

// Name returns the name the face was parsed under.
func (f *Face) Name() string { return f.name }

// Data returns the raw font file.
func (f *Face) Data() []byte { return f.data }

// Width returns the advance width of s at size points. Runes missing from the
// font are measured with the .notdef glyph, which is what gets drawn for them.
func (f *Face) Width(s string, size float64) (float64, error) {
	var (
		buf   sfnt.Buffer
		total fixed.Int26_6
	)
	for _, r := range s {
		gi, err := f.font.GlyphIndex(&buf, r)
		if err != nil {
			return 0, fmt.Errorf("fonts: %s: glyph index for %q: %w", f.name, r, err)
		}
		// ppem equal to units-per-em makes advances come back in font units.
		adv, err := f.font.GlyphAdvance(&buf, gi, f.upem, font.HintingNone)
		if err != nil {
			return 0, fmt.Errorf("fonts: %s: advance for %q: %w", f.name, r, err)
		}
		total += adv
	}
	return float64(total) / float64(f.upem) * size, nil
}
