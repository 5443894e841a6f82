package style

import (
	"strings"
)

// Property is a raw CSS property value, a string.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial is true if the property value is the CSS-wide keyword "initial".
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherited is true if the property value is the CSS-wide keyword "inherit".
func (p Property) IsInherited() bool {
	return p == "inherit"
}

// IsEmpty is true for an unset property.
func (p Property) IsEmpty() bool {
	return p == NullStyle
}

// --- PropertyMap -----------------------------------------------------------

// PropertyMap holds the computed style properties of an element.
type PropertyMap struct {
	m map[string]Property
}

// NewPropertyMap creates an empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{m: make(map[string]Property)}
}

// Property returns the value for a property key, or NullStyle.
func (pmap *PropertyMap) Property(key string) Property {
	if pmap == nil || pmap.m == nil {
		return NullStyle
	}
	return pmap.m[key]
}

// Add sets the value for a property key. Unknown keys are dropped by the
// cascade before this ever gets called, so Add does not validate.
func (pmap *PropertyMap) Add(key string, p Property) {
	if pmap == nil {
		return
	}
	if pmap.m == nil {
		pmap.m = make(map[string]Property)
	}
	pmap.m[key] = p
}

// Size returns the number of properties in the map.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.m)
}

// Styler is anything that carries computed styles. The styled tree nodes
// of package dom implement it.
type Styler interface {
	Styles() *PropertyMap
}

// --- Property inventory ----------------------------------------------------

// propertyDef describes a supported longhand property.
type propertyDef struct {
	initial   Property
	inherited bool
}

// properties is the inventory of supported longhand properties together
// with their initial values and inheritance behavior.
var properties = map[string]propertyDef{
	"display":             {initial: "inline"},
	"position":            {initial: "static"},
	"float":               {initial: "none"},
	"width":               {initial: "auto"},
	"height":              {initial: "auto"},
	"top":                 {initial: "auto"},
	"right":               {initial: "auto"},
	"bottom":              {initial: "auto"},
	"left":                {initial: "auto"},
	"margin-top":          {initial: "0"},
	"margin-right":        {initial: "0"},
	"margin-bottom":       {initial: "0"},
	"margin-left":         {initial: "0"},
	"padding-top":         {initial: "0"},
	"padding-right":       {initial: "0"},
	"padding-bottom":      {initial: "0"},
	"padding-left":        {initial: "0"},
	"border-top-width":    {initial: "medium"},
	"border-right-width":  {initial: "medium"},
	"border-bottom-width": {initial: "medium"},
	"border-left-width":   {initial: "medium"},
	"border-top-style":    {initial: "none"},
	"border-right-style":  {initial: "none"},
	"border-bottom-style": {initial: "none"},
	"border-left-style":   {initial: "none"},
	"border-top-color":    {initial: "currentcolor"},
	"border-right-color":  {initial: "currentcolor"},
	"border-bottom-color": {initial: "currentcolor"},
	"border-left-color":   {initial: "currentcolor"},
	"background-color":    {initial: "transparent"},
	"color":               {initial: "black", inherited: true},
	"font-family":         {initial: "fallback", inherited: true},
	"font-size":           {initial: "16px", inherited: true},
	"font-style":          {initial: "normal", inherited: true},
	"font-weight":         {initial: "normal", inherited: true},
	"writing-mode":        {initial: "horizontal-tb", inherited: true},
	"direction":           {initial: "ltr", inherited: true},
}

// IsSupportedProperty is true for longhand properties this engine computes.
func IsSupportedProperty(key string) bool {
	_, ok := properties[key]
	return ok
}

// IsInheritedProperty is true for properties that inherit by default.
func IsInheritedProperty(key string) bool {
	def, ok := properties[key]
	return ok && def.inherited
}

// InitialValue returns the initial value for a longhand property.
func InitialValue(key string) Property {
	if def, ok := properties[key]; ok {
		return def.initial
	}
	return NullStyle
}

// --- Shorthand expansion ---------------------------------------------------

var edges = [4]string{"top", "right", "bottom", "left"}

// ExpandShorthand expands a CSS shorthand declaration into its longhand
// parts. Non-shorthand declarations are returned unchanged as a single
// entry. Unparsable shorthands expand to nothing.
func ExpandShorthand(key string, value Property) map[string]Property {
	out := make(map[string]Property)
	switch key {
	case "margin", "padding":
		for edge, v := range expandFourSides(value) {
			out[key+"-"+edge] = v
		}
	case "border-width", "border-style", "border-color":
		part := strings.TrimPrefix(key, "border-")
		for edge, v := range expandFourSides(value) {
			out["border-"+edge+"-"+part] = v
		}
	case "border-top", "border-right", "border-bottom", "border-left":
		expandBorderSide(key, value, out)
	case "border":
		for _, edge := range edges {
			expandBorderSide("border-"+edge, value, out)
		}
	case "inset":
		for edge, v := range expandFourSides(value) {
			out[edge] = v
		}
	default:
		out[key] = value
	}
	return out
}

// expandFourSides applies the 1-to-4 value syntax of margin and friends.
func expandFourSides(value Property) map[string]Property {
	fields := strings.Fields(string(value))
	out := make(map[string]Property)
	switch len(fields) {
	case 1:
		for _, edge := range edges {
			out[edge] = Property(fields[0])
		}
	case 2:
		out["top"], out["bottom"] = Property(fields[0]), Property(fields[0])
		out["right"], out["left"] = Property(fields[1]), Property(fields[1])
	case 3:
		out["top"] = Property(fields[0])
		out["right"], out["left"] = Property(fields[1]), Property(fields[1])
		out["bottom"] = Property(fields[2])
	case 4:
		for i, edge := range edges {
			out[edge] = Property(fields[i])
		}
	default:
		tracer().Infof("cannot expand shorthand value %q", value)
	}
	return out
}

// expandBorderSide splits "border-top: 1px solid red" style shorthands.
// Value order is free, values are classified by what they parse as.
func expandBorderSide(key string, value Property, out map[string]Property) {
	for _, field := range strings.Fields(string(value)) {
		p := Property(field)
		switch {
		case isBorderStyleKeyword(field):
			out[key+"-style"] = p
		case isBorderWidth(field):
			out[key+"-width"] = p
		default:
			out[key+"-color"] = p
		}
	}
}

func isBorderStyleKeyword(s string) bool {
	switch s {
	case "none", "hidden", "solid", "dotted", "dashed", "double",
		"groove", "ridge", "inset", "outset":
		return true
	}
	return false
}

func isBorderWidth(s string) bool {
	switch s {
	case "thin", "medium", "thick":
		return true
	}
	c := s[0]
	return c >= '0' && c <= '9'
}
