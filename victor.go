/*
Package victor renders HTML documents with CSS styling into display lists.

A client loads an HTML document, optionally adds author stylesheets and
custom fonts, and lays the document out against a viewport or page size.
The result is a display list of solid rectangles and positioned glyph runs,
ready for a graphics or print backend.

	doc, err := victor.LoadString(myHTML)
	if err != nil { … }
	rendered, err := doc.Layout(dimen.DINA4)

Fonts named by stylesheets are resolved against the global font registry,
installed system fonts, and finally an embedded fallback typeface. Custom
fonts can be supplied through AddFont, and @font-face declarations of the
document are honored by LoadFontFaces. License metadata of every font that
ends up in a rendered document is tracked in the license registry.
*/
package victor

import (
	"io"

	"github.com/npillmayer/schuko/tracing"

	"github.com/SimonSapin/victor/core"
	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/core/font"
	"github.com/SimonSapin/victor/core/locate/resources"
	"github.com/SimonSapin/victor/engine/display"
	"github.com/SimonSapin/victor/engine/dom"
	"github.com/SimonSapin/victor/engine/frame/boxtree"
	"github.com/SimonSapin/victor/engine/frame/layout"
	"github.com/SimonSapin/victor/engine/glyphing"
)

// tracer traces with key 'victor.core'.
func tracer() tracing.Trace {
	return tracing.Select("victor.core")
}

// Document is a styled HTML document, ready for layout.
type Document struct {
	dom    *dom.Document
	shaper glyphing.Shaper // nil selects the layout default
}

// Load parses an HTML document and computes styles for it. Stylesheets
// apply in cascade order: the user-agent stylesheet, <style> elements of
// the document, then the given author stylesheets.
func Load(r io.Reader, authorStylesheets ...string) (*Document, error) {
	domdoc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	if err = domdoc.Style(authorStylesheets...); err != nil {
		return nil, err
	}
	return &Document{dom: domdoc}, nil
}

// LoadString parses an HTML document from a string. See Load.
func LoadString(input string, authorStylesheets ...string) (*Document, error) {
	domdoc, err := dom.ParseString(input)
	if err != nil {
		return nil, err
	}
	if err = domdoc.Style(authorStylesheets...); err != nil {
		return nil, err
	}
	return &Document{dom: domdoc}, nil
}

// DOM returns the document's styled DOM.
func (doc *Document) DOM() *dom.Document {
	return doc.dom
}

// SetShaper selects the text shaper used during layout. Clients wanting
// full complex-script support will set the HarfBuzz shaper here; the
// default is a naive per-codepoint cmap shaper.
func (doc *Document) SetShaper(shaper glyphing.Shaper) {
	doc.shaper = shaper
}

// AddFont registers an in-memory font binary under a family name, making
// it available to stylesheets of this and every other document. spdx is
// the license identifier of the font binary and may be empty if unknown;
// if given, the font is recorded with the license registry.
//
// Fonts added here take precedence over system fonts and the embedded
// fallback typeface during font resolution.
func (doc *Document) AddFont(name string, fontBinary []byte, spdx string) error {
	f, err := font.ParseOpenTypeFont(fontBinary)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot interpret font binary for %q", name)
	}
	f.Fontname = name
	f.SPDX = spdx
	font.GlobalRegistry().StoreFont(f)
	tracer().Infof("added font %q (%d bytes)", name, len(fontBinary))
	return nil
}

// AddFontFile registers a font from a font file. An empty name keeps the
// family name recorded in the font itself. See AddFont.
func (doc *Document) AddFontFile(name string, path string, spdx string) error {
	f, err := font.LoadOpenTypeFont(path)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot load font file %q", path)
	}
	if name != "" {
		f.Fontname = name
	}
	f.SPDX = spdx
	font.GlobalRegistry().StoreFont(f)
	return nil
}

// LoadFontFaces resolves the @font-face declarations of the document's
// stylesheets, loading local or remote font resources into the global
// registry. Declarations which cannot be resolved are skipped with a
// trace message; the last failure is returned after all declarations
// have been tried.
func (doc *Document) LoadFontFaces() error {
	decls := doc.dom.FontFaces()
	if len(decls) == 0 {
		return nil
	}
	promises := make([]resources.TypeCasePromise, len(decls))
	for i, decl := range decls {
		promises[i] = resources.ResolveFontFace(decl, 10.0)
	}
	var err error
	for i, promise := range promises {
		if _, e := promise.TypeCase(); e != nil {
			tracer().Errorf("@font-face %q not resolved: %v", decls[i].Family, e)
			err = e
		}
	}
	return err
}

// Layout lays the document out against a viewport, producing a display
// list document with a single page of the viewport's size.
func (doc *Document) Layout(viewport dimen.Point) (*display.Document, error) {
	boxes, err := boxtree.BuildBoxTree(doc.dom.Root())
	if err != nil {
		return nil, err
	}
	ctx := layout.NewContext(viewport)
	if doc.shaper != nil {
		ctx.Shaper = doc.shaper
	}
	frag, err := layout.Layout(boxes, ctx)
	if err != nil {
		return nil, err
	}
	return display.Build(frag, viewport), nil
}

// LayoutA4 lays the document out against a DIN A4 page.
func (doc *Document) LayoutA4() (*display.Document, error) {
	return doc.Layout(dimen.DINA4)
}
