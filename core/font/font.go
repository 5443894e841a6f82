/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc. An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size.
The name is reminiscent of the wooden boxes of typesetters in the era
of metal type. An example is "Helvetica regular 11pt".

Please note that Go (Golang) does use the terms "font" and "face"
differently, actually more or less in an opposite manner.

Fonts are never parsed by hand here. All access to font binaries goes
through the sfnt package, which handles the full Unicode range: glyph
lookup works for code points above U+FFFF as well (Linear B, emoji,
and friends).
*/
package font

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/SimonSapin/victor/core/license"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ScalableFont is a single font variant, backed by an SFNT container
// (TrueType or OpenType).
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, or "internal" for embedded fonts
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
	SPDX     string     // license identifier of the font binary, if known
}

// TypeCase is a scalable font prepared at a fixed size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	font               font.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
}

func NullTypeCase() *TypeCase {
	return &TypeCase{
		font: nil,
		size: 10,
	}
}

// LoadOpenTypeFont reads a font binary from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err == nil {
		f.Filepath = fontfile
	}
	return f, err
}

// ParseOpenTypeFont interprets a font binary in memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// GlyphID maps a code point to a glyph index of this font. The mapping
// covers the whole of Unicode, not just the Basic Multilingual Plane.
// Code points without a glyph map to 0 (".notdef").
func (sf *ScalableFont) GlyphID(r rune) sfnt.GlyphIndex {
	var buf sfnt.Buffer
	gid, err := sf.SFNT.GlyphIndex(&buf, r)
	if err != nil {
		T().Errorf("glyph lookup in %s failed: %v", sf.Fontname, err)
		return 0
	}
	return gid
}

// SupportsCodepoint checks whether the font has a glyph for a code point.
func (sf *ScalableFont) SupportsCodepoint(r rune) bool {
	return sf.GlyphID(r) != 0
}

// UnitsPerEm returns the design-unit resolution of the font.
func (sf *ScalableFont) UnitsPerEm() int {
	return int(sf.SFNT.UnitsPerEm())
}

// PrepareCase readies a font for use at a given size (in points).
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	typecase := &TypeCase{}
	typecase.scalableFontParent = sf
	if fontsize < 5.0 || fontsize > 500.0 {
		T().Errorf("font size must be 5pt < size < 500pt, is %g (set to 10pt)", fontsize)
		fontsize = 10.0
	}
	options := &opentype.FaceOptions{
		Size: fontsize,
		DPI:  72,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err == nil {
		typecase.font = f
		typecase.size = fontsize
	}
	return typecase, err
}

func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// --- Fallback fonts --------------------------------------------------------

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(loadFallbackFamily)
	return fallbackFamily[fallbackRegular]
}

// FallbackVariant returns an embedded fallback font matching a style and
// weight. It is always present.
func FallbackVariant(style xfont.Style, weight xfont.Weight) *ScalableFont {
	fallbackFontLoading.Do(loadFallbackFamily)
	italic := style == xfont.StyleItalic || style == xfont.StyleOblique
	bold := weight >= xfont.WeightSemiBold
	switch {
	case italic && bold:
		return fallbackFamily[fallbackBoldItalic]
	case italic:
		return fallbackFamily[fallbackItalic]
	case bold:
		return fallbackFamily[fallbackBold]
	}
	return fallbackFamily[fallbackRegular]
}

var fallbackFontLoading sync.Once

const (
	fallbackRegular = iota
	fallbackBold
	fallbackItalic
	fallbackBoldItalic
)

// fallbackFamily holds the variants of an embedded typeface, used if
// everything else fails. Currently we use the Go fonts.
var fallbackFamily [4]*ScalableFont

func loadFallbackFamily() {
	variants := []struct {
		slot int
		name string
		ttf  []byte
	}{
		{fallbackRegular, "Go Regular", goregular.TTF},
		{fallbackBold, "Go Bold", gobold.TTF},
		{fallbackItalic, "Go Italic", goitalic.TTF},
		{fallbackBoldItalic, "Go Bold Italic", gobolditalic.TTF},
	}
	for _, v := range variants {
		f := &ScalableFont{
			Fontname: v.name,
			Filepath: "internal",
			Binary:   v.ttf,
			SPDX:     "BSD-3-Clause",
		}
		var err error
		f.SFNT, err = sfnt.Parse(f.Binary)
		if err != nil {
			panic("cannot load default font") // this cannot happen
		}
		fallbackFamily[v.slot] = f
		license.GlobalRegistry().Register(license.Asset{
			Name:   v.name,
			Kind:   "font",
			SPDX:   f.SPDX,
			Notice: "Copyright (c) 2016 Bigelow & Holmes Inc.",
		})
	}
}

// --- Font Registry ---------------------------------------------------------

// Registry collects fonts and typecases, indexed by normalized name.
// It additionally keeps a prefix index of family names, so that clients
// may look up registered variants by typeface.
type Registry struct {
	sync.Mutex
	fonts     map[string]*ScalableFont
	typecases map[string]*TypeCase
	families  *trie.Trie // normalized names, with *ScalableFont as meta
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry returns a font registry shared by the whole process.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

func NewRegistry() *Registry {
	fr := &Registry{
		fonts:     make(map[string]*ScalableFont),
		typecases: make(map[string]*TypeCase),
		families:  trie.New(),
	}
	return fr
}

// StoreFont makes a font known to the registry. If the font carries
// license metadata, the font is also recorded with the global license
// registry.
func (fr *Registry) StoreFont(f *ScalableFont) {
	if f == nil {
		T().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	fname := NormalizeFontname(f.Fontname)
	T().Debugf("registry stores font %s as %s", f.Fontname, fname)
	fr.fonts[fname] = f
	fr.families.Add(fname, f)
	if f.SPDX != "" {
		license.GlobalRegistry().Register(license.Asset{
			Name: f.Fontname,
			Kind: "font",
			SPDX: f.SPDX,
		})
	}
}

// FindVariants returns all registered fonts whose normalized name starts
// with a given typeface name.
func (fr *Registry) FindVariants(family string) []*ScalableFont {
	fr.Lock()
	defer fr.Unlock()
	prefix := NormalizeFontname(family)
	var fonts []*ScalableFont
	for _, key := range fr.families.PrefixSearch(prefix) {
		if node, ok := fr.families.Find(key); ok {
			fonts = append(fonts, node.Meta().(*ScalableFont))
		}
	}
	return fonts
}

// TypeCase returns a typecase for a registered font at a size, preparing
// and caching it on first use. If no font matches, a fallback typecase is
// returned together with an error.
func (fr *Registry) TypeCase(name string, size float64) (*TypeCase, error) {
	T().Debugf("registry searches for font %s at %.2f", name, size)
	fname := NormalizeFontname(name)
	tname := NormalizeTypeCaseName(name, size)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		T().Debugf("registry found font %s", tname)
		return t, nil
	}
	if f, ok := fr.fonts[fname]; ok {
		t, err := f.PrepareCase(size)
		T().Infof("font registry has font %s, caches at %.2f", fname, size)
		t.scalableFontParent = f
		fr.typecases[tname] = t
		return t, err
	}
	T().Infof("registry does not contain font %s", name)
	err := errors.New("font " + name + " not found in registry")
	fname = NormalizeFontname("fallback")
	tname = NormalizeTypeCaseName("fallback", size)
	if t, ok := fr.typecases[tname]; ok {
		return t, err
	}
	f := FallbackFont()
	t, _ := f.PrepareCase(size)
	T().Infof("font registry caches fallback font %s at %.2f", fname, size)
	fr.fonts[fname] = f
	fr.typecases[tname] = t
	return t, err
}

func (fr *Registry) DebugList() {
	T().Debugf("--- registered fonts ---")
	for k, v := range fr.fonts {
		T().Debugf("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		T().Debugf("typecase [%s] = %v", k, v.scalableFontParent.Fontname)
	}
	T().Debugf("------------------------")
}

// NormalizeFontname produces a canonical registry key for a font name.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}

func NormalizeTypeCaseName(fname string, size float64) string {
	fname = NormalizeFontname(fname)
	fname = fmt.Sprintf("%s-%.2f", fname, size)
	return fname
}

// ---------------------------------------------------------------------------

// MatchStyle checks whether a font variant name denotes a given style.
func MatchStyle(variantName string, style xfont.Style) bool {
	switch style {
	case xfont.StyleNormal:
		switch variantName {
		case "regular", "100", "200", "300", "400", "500":
			return true
		}
		return false
	case xfont.StyleItalic, xfont.StyleOblique:
		switch variantName {
		case "italic", "100italic", "200italic", "300italic", "400italic", "500italic":
			return true
		}
		return false
	}
	return false
}

// MatchWeight checks whether a font variant name denotes a given weight.
func MatchWeight(variantName string, weight xfont.Weight) bool {
	/* from https://pkg.go.dev/golang.org/x/image/font
	WeightThin       Weight = -3 // CSS font-weight value 100.
	WeightExtraLight Weight = -2 // CSS font-weight value 200.
	WeightLight      Weight = -1 // CSS font-weight value 300.
	WeightNormal     Weight = +0 // CSS font-weight value 400.
	WeightMedium     Weight = +1 // CSS font-weight value 500.
	WeightSemiBold   Weight = +2 // CSS font-weight value 600.
	WeightBold       Weight = +3 // CSS font-weight value 700.
	WeightExtraBold  Weight = +4 // CSS font-weight value 800.
	WeightBlack      Weight = +5 // CSS font-weight value 900.
	*/
	if strconv.Itoa((int(weight)+4)*100) == variantName {
		return true
	}
	switch variantName {
	case "regular", "100", "200", "300", "400", "500":
		switch weight {
		case xfont.WeightThin, xfont.WeightExtraLight, xfont.WeightLight, xfont.WeightNormal, xfont.WeightMedium:
			return true
		}
		return false
	case "bold", "extrabold", "600", "700", "800", "900":
		switch weight {
		case xfont.WeightSemiBold, xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightBlack:
			return true
		}
		return false
	}
	return false
}

// GuessStyleAndWeight derives style and weight from a font's name, using
// the common naming conventions ("MyFont-BoldItalic" and friends).
func GuessStyleAndWeight(fontname string) (xfont.Style, xfont.Weight) {
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	name := strings.ToLower(fontname)
	if strings.Contains(name, "italic") || strings.Contains(name, "oblique") {
		style = xfont.StyleItalic
	}
	switch {
	case strings.Contains(name, "thin"):
		weight = xfont.WeightThin
	case strings.Contains(name, "extralight"):
		weight = xfont.WeightExtraLight
	case strings.Contains(name, "light"):
		weight = xfont.WeightLight
	case strings.Contains(name, "medium"):
		weight = xfont.WeightMedium
	case strings.Contains(name, "semibold"):
		weight = xfont.WeightSemiBold
	case strings.Contains(name, "extrabold"):
		weight = xfont.WeightExtraBold
	case strings.Contains(name, "black"), strings.Contains(name, "heavy"):
		weight = xfont.WeightBlack
	case strings.Contains(name, "bold"):
		weight = xfont.WeightBold
	}
	return style, weight
}
