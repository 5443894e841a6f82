package style

import (
	"golang.org/x/net/html"
)

// UAStylesheet is the built-in user-agent stylesheet. It covers the
// handful of HTML defaults the layout engine depends on.
const UAStylesheet = `
html, body, div, p, blockquote, pre, address,
h1, h2, h3, h4, h5, h6,
ul, ol, li, dl, dt, dd,
article, aside, figure, figcaption, footer, header, main, nav, section,
table, form, fieldset, hr { display: block }
head, style, script, title, meta, link, base { display: none }
body { margin: 8px }
p, blockquote, ul, ol, dl, pre { margin-top: 16px; margin-bottom: 16px }
h1 { font-size: 32px; margin-top: 21px; margin-bottom: 21px; font-weight: bold }
h2 { font-size: 24px; margin-top: 19px; margin-bottom: 19px; font-weight: bold }
h3 { font-size: 19px; margin-top: 18px; margin-bottom: 18px; font-weight: bold }
blockquote { margin-left: 40px; margin-right: 40px }
ul, ol { padding-left: 40px }
pre, code, kbd, samp { font-family: monospace }
i, em, cite, var { font-style: italic }
b, strong { font-weight: bold }
a { color: blue }
`

// ComputeStyles determines the computed style of an element from the
// cascade and the parent element's computed styles. parent may be nil for
// the root element.
//
// Order of business per property: cascaded declaration if any, else
// inherited value for inherited properties, else the initial value.
// CSS-wide keywords (inherit / initial / unset) are resolved here.
func ComputeStyles(cssom *CSSOM, n *html.Node, parent *PropertyMap) *PropertyMap {
	pmap := NewPropertyMap()
	for key, def := range properties {
		if def.inherited && parent.Property(key) != NullStyle {
			pmap.Add(key, parent.Property(key))
		} else {
			pmap.Add(key, def.initial)
		}
	}
	for _, d := range cssom.MatchingDeclarations(n) {
		pmap.Add(d.Key, cascadedValue(d.Key, d.Value, parent))
	}
	return pmap
}

// cascadedValue resolves CSS-wide keywords to concrete values.
func cascadedValue(key string, value Property, parent *PropertyMap) Property {
	switch value {
	case "initial":
		return InitialValue(key)
	case "inherit":
		if v := parent.Property(key); v != NullStyle {
			return v
		}
		return InitialValue(key)
	case "unset":
		if IsInheritedProperty(key) {
			if v := parent.Property(key); v != NullStyle {
				return v
			}
		}
		return InitialValue(key)
	}
	return value
}

// --- Display fixup ---------------------------------------------------------

// Blockify turns an inline display into its block-level counterpart. The
// root element and out-of-flow elements (absolutely positioned or floated)
// are always block-level, whatever their declared display.
func Blockify(display Property) Property {
	switch display {
	case "inline", "inline-block":
		return "block"
	case "none", "contents":
		return display
	}
	return display
}

// FixDisplay applies display fixup to a computed style: the root element
// and elements taken out of flow get a blockified display value.
func FixDisplay(pmap *PropertyMap, isRoot bool) {
	display := pmap.Property("display")
	if display == "none" {
		return
	}
	outOfFlow := pmap.Property("position") == "absolute" ||
		pmap.Property("position") == "fixed" ||
		pmap.Property("float") != "none"
	if isRoot || outOfFlow {
		fixed := Blockify(display)
		if isRoot && fixed == "contents" {
			// display:contents on the root computes to block
			fixed = "block"
		}
		if fixed != display {
			tracer().Debugf("display fixup: %s becomes %s", display, fixed)
			pmap.Add("display", fixed)
		}
	}
}
