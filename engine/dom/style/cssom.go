package style

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/gorilla/css/scanner"
	xfont "golang.org/x/image/font"
	"golang.org/x/net/html"

	"github.com/SimonSapin/victor/core"
	"github.com/SimonSapin/victor/core/font"
	"github.com/SimonSapin/victor/core/font/fontface"
)

// Origin denotes where a stylesheet comes from. Origins participate in
// the cascade: author rules override user-agent rules, except for
// !important declarations, where the order flips.
type Origin int

const (
	UserAgent Origin = iota
	Author
)

// Declaration is a single property declaration, attributed to its origin
// for cascading.
type Declaration struct {
	Key       string
	Value     Property
	Important bool
	origin    Origin
}

// matchableRule is a style rule with a compiled selector.
type matchableRule struct {
	selector     cascadia.Sel
	specificity  cascadia.Specificity
	declarations []Declaration
	origin       Origin
	serial       int // source order, breaks specificity ties
}

// CSSOM collects all stylesheets that apply to a document.
type CSSOM struct {
	rules     *arraylist.List // of *matchableRule
	fontFaces []*fontface.Declaration
	serial    int
}

// NewCSSOM creates an empty stylesheet collection.
func NewCSSOM() *CSSOM {
	return &CSSOM{rules: arraylist.New()}
}

// AddStylesheet parses CSS source text and adds its rules. Rules with
// unparsable selectors and declarations for unsupported properties are
// dropped with a trace message. @font-face rules are collected separately
// (see FontFaces).
func (cssom *CSSOM) AddStylesheet(source string, origin Origin) error {
	sheet, err := parser.Parse(source)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot parse stylesheet")
	}
	for _, rule := range sheet.Rules {
		cssom.addRule(rule, origin)
	}
	return nil
}

func (cssom *CSSOM) addRule(rule *css.Rule, origin Origin) {
	if rule.Kind == css.AtRule {
		if rule.Name == "@font-face" {
			cssom.addFontFace(rule)
		} else {
			tracer().Infof("ignoring unsupported at-rule %s", rule.Name)
		}
		return
	}
	decls := supportedDeclarations(rule.Declarations, origin)
	if len(decls) == 0 {
		return
	}
	for _, sel := range rule.Selectors {
		compiled, err := cascadia.Parse(sel)
		if err != nil {
			tracer().Infof("dropping rule with unparsable selector %q", sel)
			continue
		}
		cssom.serial++
		cssom.rules.Add(&matchableRule{
			selector:     compiled,
			specificity:  compiled.Specificity(),
			declarations: decls,
			origin:       origin,
			serial:       cssom.serial,
		})
	}
}

// supportedDeclarations expands shorthands and drops what the engine does
// not support.
func supportedDeclarations(decls []*css.Declaration, origin Origin) []Declaration {
	var out []Declaration
	for _, d := range decls {
		key := strings.ToLower(strings.TrimSpace(d.Property))
		for k, v := range ExpandShorthand(key, Property(strings.TrimSpace(d.Value))) {
			if !IsSupportedProperty(k) {
				tracer().Debugf("dropping unsupported property %s", k)
				continue
			}
			out = append(out, Declaration{
				Key:       k,
				Value:     v,
				Important: d.Important,
				origin:    origin,
			})
		}
	}
	return out
}

func (cssom *CSSOM) addFontFace(rule *css.Rule) {
	decl := &fontface.Declaration{
		Style:  xfont.StyleNormal,
		Weight: xfont.WeightNormal,
	}
	for _, d := range rule.Declarations {
		value := strings.TrimSpace(d.Value)
		switch strings.ToLower(strings.TrimSpace(d.Property)) {
		case "font-family":
			decl.Family = strings.Trim(value, `"'`)
		case "src":
			decl.Src = fontface.ParseSrc(value)
		case "font-style":
			decl.Style, _ = font.GuessStyleAndWeight(value)
		case "font-weight":
			if font.MatchWeight(value, xfont.WeightBold) {
				decl.Weight = xfont.WeightBold
			}
		case "unicode-range":
			ranges, err := fontface.ParseUnicodeRange(value)
			if err != nil {
				tracer().Infof("dropping %v", err)
				continue
			}
			decl.Ranges = ranges
		}
	}
	if decl.Family == "" || len(decl.Src) == 0 {
		tracer().Infof("ignoring @font-face rule without family or src")
		return
	}
	cssom.fontFaces = append(cssom.fontFaces, decl)
}

// FontFaces returns the @font-face declarations of all added stylesheets.
func (cssom *CSSOM) FontFaces() []*fontface.Declaration {
	return cssom.fontFaces
}

// byCascadeOrder orders rules by origin, then specificity, then source
// order. Later entries win when applied sequentially.
func byCascadeOrder(a, b interface{}) int {
	ra, rb := a.(*matchableRule), b.(*matchableRule)
	if ra.origin != rb.origin {
		return int(ra.origin) - int(rb.origin)
	}
	if ra.specificity != rb.specificity {
		if ra.specificity.Less(rb.specificity) {
			return -1
		}
		return 1
	}
	return ra.serial - rb.serial
}

// MatchingDeclarations collects the declarations applying to an HTML
// element, in cascade order: user-agent rules first, then author rules,
// within each origin by ascending specificity and source order, and
// !important declarations last (author !important before user-agent
// !important). Applying them in sequence yields the cascaded value.
func (cssom *CSSOM) MatchingDeclarations(n *html.Node) []Declaration {
	matching := arraylist.New()
	it := cssom.rules.Iterator()
	for it.Next() {
		rule := it.Value().(*matchableRule)
		if rule.selector.Match(n) {
			matching.Add(rule)
		}
	}
	matching.Sort(byCascadeOrder)
	var normal, important []Declaration
	mit := matching.Iterator()
	for mit.Next() {
		for _, d := range mit.Value().(*matchableRule).declarations {
			if d.Important {
				important = append(important, d)
			} else {
				normal = append(normal, d)
			}
		}
	}
	normal = append(normal, inlineStyleDeclarations(n)...)
	// important declarations flip origin precedence
	for _, origin := range []Origin{Author, UserAgent} {
		for _, d := range important {
			if d.origin == origin {
				normal = append(normal, d)
			}
		}
	}
	return normal
}

// inlineStyleDeclarations parses the style attribute of an element. Inline
// declarations rank above any selector-matched normal declaration.
func inlineStyleDeclarations(n *html.Node) []Declaration {
	for _, attr := range n.Attr {
		if attr.Key != "style" {
			continue
		}
		return supportedDeclarations(scanDeclarations(attr.Val), Author)
	}
	return nil
}

// scanDeclarations tokenizes a style attribute's value. The attribute
// grammar is a plain declaration list, no selectors or blocks involved,
// so a token scan suffices.
func scanDeclarations(attrVal string) []*css.Declaration {
	s := scanner.New(attrVal)
	var decls []*css.Declaration
	var prop, value strings.Builder
	inValue := false
	flush := func() {
		p := strings.TrimSpace(prop.String())
		v := strings.TrimSpace(value.String())
		prop.Reset()
		value.Reset()
		inValue = false
		if p == "" || v == "" {
			return
		}
		d := &css.Declaration{Property: p, Value: v}
		if bang := strings.LastIndex(v, "!"); bang >= 0 {
			if strings.EqualFold(strings.TrimSpace(v[bang+1:]), "important") {
				d.Important = true
				d.Value = strings.TrimSpace(v[:bang])
			}
		}
		decls = append(decls, d)
	}
	for {
		tok := s.Next()
		if tok.Type == scanner.TokenEOF || tok.Type == scanner.TokenError {
			break
		}
		switch {
		case tok.Type == scanner.TokenChar && tok.Value == ":" && !inValue:
			inValue = true
		case tok.Type == scanner.TokenChar && tok.Value == ";":
			flush()
		case inValue:
			value.WriteString(tok.Value)
		case tok.Type != scanner.TokenS:
			prop.WriteString(tok.Value)
		}
	}
	flush()
	return decls
}
