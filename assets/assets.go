// Package assets loads the immutable reference data every render reads: the
// font faces, the brand logo and the invoice layout table.
//
// A Bundle is built once at process start and shared read-only by all
// renders. Each asset comes from its configured primary path, then its
// fallback path, and finally from the copy embedded in the binary when no
// path is configured at all.
package assets

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/lvillar/docstamp"
	"github.com/lvillar/docstamp/canvas"
	"github.com/lvillar/docstamp/config"
	"github.com/lvillar/docstamp/doctpl"
	"github.com/lvillar/docstamp/fonts"
	"github.com/lvillar/docstamp/textwrap"
)

// LogoName is the image name the logo is registered under.
const LogoName = "logo"

var (
	//go:embed files/logo.png
	embeddedLogo []byte

	//go:embed files/invoice-v1.json
	embeddedTemplate []byte
)

// Logo is a decoded-and-verified raster image.
type Logo struct {
	Type string // "png" or "jpg"
	Data []byte
	W, H int
}

// Bundle is the immutable asset set. Its methods are safe for concurrent use;
// callers must not modify anything they return.
type Bundle struct {
	faces        map[string]*fonts.Face
	logo         Logo
	template     *doctpl.Template
	templateData []byte
}

// Default returns the bundle built from embedded assets only.
func Default() (*Bundle, error) {
	return Load(config.Assets{})
}

// Load builds a bundle from cfg. A configured asset that cannot be read or
// parsed fails with a *docstamp.AssetLoadError.
func Load(cfg config.Assets) (*Bundle, error) {
	b := &Bundle{faces: make(map[string]*fonts.Face, 3)}

	for _, f := range []struct {
		role     string
		path     config.Path
		embedded []byte
	}{
		{canvas.Slab, cfg.Slab, fonts.Regular()},
		{canvas.SlabBold, cfg.SlabBold, fonts.Bold()},
		{canvas.Mono, cfg.Mono, fonts.Mono()},
	} {
		asset := f.role + " font"
		data, path, err := read(f.path, f.embedded)
		if err != nil {
			return nil, &docstamp.AssetLoadError{Asset: asset, Path: path, Err: err}
		}
		face, err := fonts.Parse(f.role, data)
		if err != nil {
			return nil, &docstamp.AssetLoadError{Asset: asset, Path: path, Err: err}
		}
		if err := checkEmbeddable(f.role, data); err != nil {
			return nil, &docstamp.AssetLoadError{Asset: asset, Path: path, Err: err}
		}
		b.faces[f.role] = face
	}

	data, path, err := read(cfg.Logo, embeddedLogo)
	if err != nil {
		return nil, &docstamp.AssetLoadError{Asset: "logo", Path: path, Err: err}
	}
	if b.logo, err = decodeLogo(data); err != nil {
		return nil, &docstamp.AssetLoadError{Asset: "logo", Path: path, Err: err}
	}

	data, path, err = read(cfg.Template, embeddedTemplate)
	if err != nil {
		return nil, &docstamp.AssetLoadError{Asset: "invoice template", Path: path, Err: err}
	}
	if b.template, err = doctpl.Parse(data); err != nil {
		return nil, &docstamp.AssetLoadError{Asset: "invoice template", Path: path, Err: err}
	}
	for _, name := range b.template.Images() {
		if name != LogoName {
			err := fmt.Errorf("template references unknown image %q", name)
			return nil, &docstamp.AssetLoadError{Asset: "invoice template", Path: path, Err: err}
		}
	}
	b.templateData = data

	return b, nil
}

// read returns the first readable candidate of p, or embedded when p is
// empty. On failure path names the primary candidate.
func read(p config.Path, embedded []byte) (data []byte, path string, err error) {
	if p.IsZero() {
		return embedded, "", nil
	}
	var errs []error
	for _, c := range p.Candidates() {
		data, err := os.ReadFile(c)
		if err == nil {
			return data, c, nil
		}
		errs = append(errs, err)
	}
	return nil, p.Candidates()[0], errors.Join(errs...)
}

// decodeLogo checks that data is an image the PDF backend can embed.
func decodeLogo(data []byte) (Logo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Logo{}, err
	}
	typ := format
	if format == "jpeg" {
		typ = "jpg"
	}
	if typ != "png" && typ != "jpg" {
		return Logo{}, fmt.Errorf("unsupported image format %q", format)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.RegisterImageOptionsReader(LogoName, gofpdf.ImageOptions{ImageType: typ}, bytes.NewReader(data))
	if pdf.Err() {
		return Logo{}, pdf.Error()
	}
	return Logo{Type: typ, Data: data, W: cfg.Width, H: cfg.Height}, nil
}

// checkEmbeddable registers data on a scratch document the way the PDF
// backend will at render time. sfnt accepts CFF outlines and collections,
// gofpdf only plain TrueType.
func checkEmbeddable(role string, data []byte) (err error) {
	if len(data) < 4 {
		return errors.New("font file is truncated")
	}
	switch tag := binary.BigEndian.Uint32(data); tag {
	case 0x00010000, 0x74727565: // version 1.0, "true"
	case 0x4f54544f: // "OTTO"
		return errors.New("fonts with PostScript (CFF) outlines cannot be embedded; use a TrueType font")
	case 0x74746366: // "ttcf"
		return errors.New("font collections cannot be embedded; extract a single TrueType font")
	default:
		return fmt.Errorf("not a TrueType font (sfnt version %#08x)", tag)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("font cannot be embedded: %v", r)
		}
	}()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddUTF8FontFromBytes(role, "", bytes.Clone(data))
	pdf.SetFont(role, "", 10)
	if pdf.Err() {
		return fmt.Errorf("font cannot be embedded: %w", pdf.Error())
	}
	return nil
}

// Face returns the face registered for a font role.
func (b *Bundle) Face(role string) (*fonts.Face, bool) {
	f, ok := b.faces[role]
	return f, ok
}

// Faces returns font metrics keyed by role.
func (b *Bundle) Faces() map[string]textwrap.Measurer {
	out := make(map[string]textwrap.Measurer, len(b.faces))
	for role, f := range b.faces {
		out[role] = f
	}
	return out
}

// Logo returns the brand logo.
func (b *Bundle) Logo() Logo { return b.logo }

// Template returns the invoice layout table.
func (b *Bundle) Template() *doctpl.Template { return b.template }

// TemplateJSON returns the layout table as loaded.
func (b *Bundle) TemplateJSON() []byte { return b.templateData }

// Resources returns the font programs and images for serialization.
func (b *Bundle) Resources() canvas.Resources {
	res := canvas.Resources{
		Fonts:  make(map[string][]byte, len(b.faces)),
		Images: map[string]canvas.Image{LogoName: {Data: b.logo.Data, Type: b.logo.Type}},
	}
	for role, f := range b.faces {
		res.Fonts[role] = f.Data()
	}
	return res
}
