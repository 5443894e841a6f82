/*
Package css provides option types for CSS properties.

Computed properties are strings. Before layout can calculate with them,
they get converted into typed options: a width of "auto" and a width of
"25%" both become a DimenT, which layout then pattern-matches on. This
follows the option-type style of package core/option.
*/
package css

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/npillmayer/schuko/tracing"

	"github.com/SimonSapin/victor/core/dimen"
	"github.com/SimonSapin/victor/core/option"
	"github.com/SimonSapin/victor/core/percent"
	"github.com/SimonSapin/victor/engine/dom/style"
)

// tracer traces to tracing key 'victor.style'.
func tracer() tracing.Trace {
	return tracing.Select("victor.style")
}

// PropertyType is a helper type for special values of properties, e.g.:
//
//	auto
//	initial
//	inherit
type PropertyType int

// Auto, Inherit and Initial are constant values for options-matching.
// Use with
//
//	option.Of{
//	     css.Auto: …   // will match a CSS property option-type with value "auto"
//	}
const (
	Auto       PropertyType = 1 // for option matching
	Inherit    PropertyType = 2 // for option matching
	Initial    PropertyType = 3 // for option matching
	FontScaled PropertyType = 4 // for option matching: dimension is font-dependent
	ViewScaled PropertyType = 5 // for option matching: dimension is viewport-dependent
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004

	dimenEM      uint32 = 0x0100
	dimenEX      uint32 = 0x0200
	dimenCH      uint32 = 0x0300
	dimenREM     uint32 = 0x0400
	dimenVW      uint32 = 0x0500
	dimenVH      uint32 = 0x0600
	dimenVMIN    uint32 = 0x0700
	dimenVMAX    uint32 = 0x0800
	dimenPRCNT   uint32 = 0x0900
	relativeMask uint32 = 0x0f00
)

// ErrUnfixedRelativeDimen flags a dimension that still depends on context
// (font size, viewport or containing block) at a point where a fixed value
// is required.
var ErrUnfixedRelativeDimen = errors.New("relative dimension not fixed")

// --- DimenT-----------------------------------------------------------------

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d     dimen.Dimen
	flags uint32
}

// SomeDimen creates an optional dimen with an initial value of x.
func SomeDimen(x dimen.Dimen) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Dimen creates an optional dimen without an initial value.
func Dimen() DimenT {
	return DimenT{d: 0, flags: dimenNone}
}

// AutoDimen creates an optional dimen with value "auto".
func AutoDimen() DimenT {
	return DimenT{flags: dimenAuto}
}

// Percentage creates an optional dimen from a percentage.
func Percentage(p percent.Percent) DimenT {
	return DimenT{d: dimen.Dimen(p), flags: dimenPRCNT}
}

// Match is part of interface option.Type.
func (o DimenT) Match(choices interface{}) (value interface{}, err error) {
	return option.Match(o, choices)
}

// Equals is part of interface option.Type.
func (o DimenT) Equals(other interface{}) bool {
	switch i := other.(type) {
	case DimenT:
		return o.d == i.d && o.flags == i.flags
	case dimen.Dimen:
		return o.Unwrap() == i
	case int32:
		return o.Unwrap() == dimen.Dimen(i)
	case int:
		return o.Unwrap() == dimen.Dimen(i)
	case PropertyType:
		switch i {
		case Auto:
			return o.flags&0x000f == dimenAuto
		case Initial:
			return o.flags&0x000f == dimenInitial
		case Inherit:
			return o.flags&0x000f == dimenInherit
		case FontScaled:
			switch o.flags & relativeMask {
			case dimenEM, dimenEX, dimenREM, dimenCH:
				return true
			}
			return false
		case ViewScaled:
			switch o.flags & relativeMask {
			case dimenVW, dimenVH, dimenVMIN, dimenVMAX:
				return true
			}
			return false
		}
	case string:
		switch i {
		case "%":
			return o.flags&relativeMask == dimenPRCNT
		}
	}
	return false
}

// Unwrap returns the underlying dimension of o.
func (o DimenT) Unwrap() dimen.Dimen {
	return o.d
}

// IsNone returns true if o is unset.
func (o DimenT) IsNone() bool {
	return o.flags == dimenNone
}

// IsAuto returns true if o has value "auto".
func (o DimenT) IsAuto() bool {
	return o.flags&0x000f == dimenAuto
}

// IsRelative returns true if o represents a valid relative dimension
// (`%`, `em`, etc.).
func (o DimenT) IsRelative() bool {
	return o.flags&relativeMask > 0
}

// IsAbsolute returns true if o represents a valid absolute dimension.
func (o DimenT) IsAbsolute() bool {
	return o.flags == dimenAbsolute
}

// IsPercent returns true if o is a percentage dimension.
func (o DimenT) IsPercent() bool {
	return o.flags&relativeMask == dimenPRCNT
}

func (o DimenT) String() string {
	if o.IsNone() {
		return "DimenT.None"
	}
	switch o.flags & 0x000f {
	case dimenAuto:
		return "auto"
	case dimenInitial:
		return "initial"
	case dimenInherit:
		return "inherit"
	}
	if o.IsRelative() {
		if unit, ok := relUnitMap[o.flags&relativeMask]; ok {
			return fmt.Sprintf("%d%s", o.d, unit)
		}
	}
	return fmt.Sprintf("%dsp", o.d)
}

var relUnitMap map[uint32]string = map[uint32]string{
	dimenEM:    "em",
	dimenEX:    "ex",
	dimenCH:    "ch",
	dimenREM:   "rem",
	dimenVW:    "vw",
	dimenVH:    "vh",
	dimenVMIN:  "vmin",
	dimenVMAX:  "vmax",
	dimenPRCNT: "%",
}

var relUnitStringMap map[string]uint32 = map[string]uint32{
	"em":   dimenEM,
	"ex":   dimenEX,
	"ch":   dimenCH,
	"rem":  dimenREM,
	"vw":   dimenVW,
	"vh":   dimenVH,
	"vmin": dimenVMIN,
	"vmax": dimenVMAX,
	"%":    dimenPRCNT,
}

// GetLocalProperty reads a property value from a property map.
func GetLocalProperty(pmap *style.PropertyMap, key string) style.Property {
	return pmap.Property(key)
}

// DimenOption returns an optional dimension type from a property string.
// It will never return an error, even with illegal input, but instead will
// then return an unset dimension.
func DimenOption(p style.Property) DimenT {
	switch p {
	case style.NullStyle:
		return Dimen()
	case "auto":
		return DimenT{flags: dimenAuto}
	case "initial":
		return DimenT{flags: dimenInitial}
	case "inherit":
		return DimenT{flags: dimenInherit}
	case "thin":
		return SomeDimen(dimen.FromPx(1))
	case "medium":
		return SomeDimen(dimen.FromPx(3))
	case "thick":
		return SomeDimen(dimen.FromPx(5))
	}
	d, err := ParseDimen(string(p))
	if err != nil {
		return Dimen()
	}
	return d
}

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+)(%|[a-zA-Z]{1,4})?$`)

// ParseDimen parses a string to return an optional dimension. Syntax is
// CSS Unit. Valid dimensions are
//
//	15px
//	80%
//	-33rem
func ParseDimen(s string) (DimenT, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return Dimen(), errors.New("format error parsing dimension")
	}
	scale := dimen.SP
	dim := DimenT{flags: dimenAbsolute}
	if len(d) > 2 && d[2] != "" {
		switch d[2] {
		case "pt", "PT":
			scale = dimen.PT
		case "mm", "MM":
			scale = dimen.MM
		case "bp", "px", "BP", "PX":
			scale = dimen.BP
		case "cm", "CM":
			scale = dimen.CM
		case "in", "IN":
			scale = dimen.IN
		case "sp", "SP":
			scale = dimen.SP
		default:
			if unit, ok := relUnitStringMap[d[2]]; ok {
				dim.flags = unit
			} else {
				return Dimen(), errors.New("format error parsing dimension")
			}
		}
	}
	n, err := strconv.Atoi(d[1])
	if err != nil { // this cannot happen
		return Dimen(), errors.New("format error parsing dimension")
	}
	dim.d = dimen.Dimen(n) * scale
	return dim, nil
}

// MaxDimen returns the greater of two dimensions.
func MaxDimen(d1, d2 DimenT) DimenT {
	max, _ := d1.Match(option.Maybe{
		option.None: d2,
		option.Some: option.Safe(d2.Match(option.Maybe{
			option.None: d1,
			option.Some: dimen.Max(d1.Unwrap(), d2.Unwrap()),
		})),
	})
	if d, ok := max.(dimen.Dimen); ok {
		return SomeDimen(d)
	}
	return max.(DimenT)
}

// MinDimen returns the lesser of two dimensions.
func MinDimen(d1, d2 DimenT) DimenT {
	min, _ := d1.Match(option.Maybe{
		option.None: d2,
		option.Some: option.Safe(d2.Match(option.Maybe{
			option.None: d1,
			option.Some: dimen.Min(d1.Unwrap(), d2.Unwrap()),
		})),
	})
	if d, ok := min.(dimen.Dimen); ok {
		return SomeDimen(d)
	}
	return min.(DimenT)
}

// --- Fixing relative dimensions --------------------------------------------

// ScaleFromFont resolves font-dependent units (em, ex, rem, ch) against a
// font size. Other dimensions pass through unchanged.
func (o DimenT) ScaleFromFont(fontsize dimen.Dimen) DimenT {
	switch o.flags & relativeMask {
	case dimenEM, dimenREM:
		return SomeDimen(o.d * fontsize)
	case dimenEX, dimenCH:
		// without font metrics at hand, ex and ch count as half an em
		return SomeDimen(o.d * fontsize / 2)
	}
	return o
}

// ScaleFromViewport resolves viewport-dependent units (vw, vh, vmin, vmax)
// against a viewport size. Other dimensions pass through unchanged.
func (o DimenT) ScaleFromViewport(w, h dimen.Dimen) DimenT {
	switch o.flags & relativeMask {
	case dimenVW:
		return SomeDimen(o.d * (w / 100))
	case dimenVH:
		return SomeDimen(o.d * (h / 100))
	case dimenVMIN:
		return SomeDimen(o.d * (dimen.Min(w, h) / 100))
	case dimenVMAX:
		return SomeDimen(o.d * (dimen.Max(w, h) / 100))
	}
	return o
}

// ScaleFromPercentBase resolves a percentage dimension against a base
// length, usually the containing block's inline size. Other dimensions
// pass through unchanged.
func (o DimenT) ScaleFromPercentBase(base dimen.Dimen) DimenT {
	if o.IsPercent() {
		// not going through percent.Percent here: CSS allows values
		// beyond 100%
		return SomeDimen(dimen.Dimen(int64(o.d) * int64(base) / 100))
	}
	return o
}

// FixedValue returns the dimension as a fixed length. Auto and unset
// dimensions count as 0. Dimensions still depending on context return
// ErrUnfixedRelativeDimen.
func (o DimenT) FixedValue() (dimen.Dimen, error) {
	if o.IsRelative() {
		tracer().Debugf("dimension %v still context-dependent", o)
		return 0, ErrUnfixedRelativeDimen
	}
	if o.IsAbsolute() {
		return o.d, nil
	}
	return 0, nil
}

// --- PositionT -------------------------------------------------------------

// Position is an enum type for the CSS position property.
type Position uint16

// Enum values for type Position
const (
	PositionUnknown  Position = iota
	PositionStatic            // CSS static (default)
	PositionRelative          // CSS relative
	PositionAbsolute          // CSS absolute
	PositionFixed             // CSS fixed
	PositionSticky            // CSS sticky, currently mapped to relative
)

// PositionT is an option type for CSS positions.
type PositionT struct {
	p       Position
	Offsets []DimenT // top, right, bottom, left
}

// SomePosition creates an optional position with an initial value of x.
func SomePosition(x Position) PositionT {
	return PositionT{p: x}
}

// Match is part of interface option.Type.
func (o PositionT) Match(choices interface{}) (value interface{}, err error) {
	return option.Match(o, choices)
}

// Equals is part of interface option.Type.
func (o PositionT) Equals(other interface{}) bool {
	switch p := other.(type) {
	case Position:
		return o.Unwrap() == p
	case string:
		if pp, ok := positionStringMap[p]; ok {
			return o.p == pp
		}
	}
	return false
}

// Unwrap returns the underlying position of o.
func (o PositionT) Unwrap() Position {
	return o.p
}

// IsNone returns true if o is unset.
func (o PositionT) IsNone() bool {
	return o.p == PositionUnknown
}

// IsOutOfFlow is true for positions that take a box out of normal flow.
func (o PositionT) IsOutOfFlow() bool {
	return o.p == PositionAbsolute || o.p == PositionFixed
}

func (o PositionT) String() string {
	if o.IsNone() {
		return "PositionT.None"
	}
	if p, ok := positionMap[o.p]; ok {
		return p
	}
	return "PositionT.None"
}

var positionMap map[Position]string = map[Position]string{
	PositionStatic:   "static",
	PositionRelative: "relative",
	PositionAbsolute: "absolute",
	PositionFixed:    "fixed",
	PositionSticky:   "sticky",
}

var positionStringMap map[string]Position = map[string]Position{
	"static":   PositionStatic,
	"relative": PositionRelative,
	"absolute": PositionAbsolute,
	"fixed":    PositionFixed,
	"sticky":   PositionSticky,
}

// ParsePosition parses a string and returns an option-type for positions.
// It will never return an error, but rather an unset position in case of
// illegal input.
func ParsePosition(s string) PositionT {
	if p, ok := positionStringMap[s]; ok {
		return SomePosition(p)
	}
	return PositionT{}
}

// PositionOption returns an optional position type from an element's
// styles. Properties `top`, `right`, `bottom` and `left` will be made
// accessible as option types, if appropriate.
//
// Will never return an error, even with illegal input, but instead will
// then return an unset position.
func PositionOption(styler style.Styler) PositionT {
	pos := GetLocalProperty(styler.Styles(), "position")
	if pos == style.NullStyle {
		return PositionT{}
	}
	p := ParsePosition(string(pos))
	if !p.IsNone() && p.Unwrap() != PositionStatic {
		p.Offsets = make([]DimenT, 4)
		p.Offsets[0] = DimenOption(GetLocalProperty(styler.Styles(), "top"))
		p.Offsets[1] = DimenOption(GetLocalProperty(styler.Styles(), "right"))
		p.Offsets[2] = DimenOption(GetLocalProperty(styler.Styles(), "bottom"))
		p.Offsets[3] = DimenOption(GetLocalProperty(styler.Styles(), "left"))
	}
	return p
}
