package style

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/SimonSapin/victor/core/percent"
)

// Transparent is fully transparent black.
var Transparent = color.RGBA{0, 0, 0, 0}

// named CSS colors, the basic set
var namedColors = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"maroon":  {0x80, 0x00, 0x00, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"purple":  {0x80, 0x00, 0x80, 0xff},
	"fuchsia": {0xff, 0x00, 0xff, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"lime":    {0x00, 0xff, 0x00, 0xff},
	"olive":   {0x80, 0x80, 0x00, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"navy":    {0x00, 0x00, 0x80, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"teal":    {0x00, 0x80, 0x80, 0xff},
	"aqua":    {0x00, 0xff, 0xff, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
}

// Color interprets a property value as a CSS color. Supported are named
// colors, #rgb / #rrggbb / #rrggbbaa hex notation, and rgb()/rgba()
// function notation with numeric or percentage components. "transparent"
// yields a fully transparent color; anything unintelligible yields black.
func (p Property) Color() color.RGBA {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	if s == "transparent" {
		return Transparent
	}
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := hexColor(s[1:]); ok {
			return c
		}
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		if c, ok := rgbColor(s); ok {
			return c
		}
	}
	tracer().Infof("cannot interpret %q as a color, using black", p)
	return namedColors["black"]
}

func hexColor(hexpart string) (color.RGBA, bool) {
	var digits [4]uint8
	digits[3] = 0xff
	switch len(hexpart) {
	case 3, 4:
		for i := 0; i < len(hexpart); i++ {
			n, err := strconv.ParseUint(hexpart[i:i+1], 16, 8)
			if err != nil {
				return Transparent, false
			}
			digits[i] = uint8(n)*16 + uint8(n)
		}
	case 6, 8:
		for i := 0; i*2 < len(hexpart); i++ {
			n, err := strconv.ParseUint(hexpart[i*2:i*2+2], 16, 8)
			if err != nil {
				return Transparent, false
			}
			digits[i] = uint8(n)
		}
	default:
		return Transparent, false
	}
	return color.RGBA{digits[0], digits[1], digits[2], digits[3]}, true
}

func rgbColor(s string) (color.RGBA, bool) {
	open := strings.Index(s, "(")
	close := strings.Index(s, ")")
	if open < 0 || close < open {
		return Transparent, false
	}
	fields := strings.Split(s[open+1:close], ",")
	if len(fields) < 3 || len(fields) > 4 {
		return Transparent, false
	}
	var comps [4]uint8
	comps[3] = 0xff
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if i == 3 { // alpha is a float 0…1
			a, err := strconv.ParseFloat(f, 64)
			if err != nil || a < 0 || a > 1 {
				return Transparent, false
			}
			comps[3] = uint8(a*255 + 0.5)
			continue
		}
		if strings.HasSuffix(f, "%") {
			p, err := percent.FromString(f)
			if err != nil {
				return Transparent, false
			}
			comps[i] = uint8(p.Of(255))
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > 255 {
			return Transparent, false
		}
		comps[i] = uint8(n)
	}
	return color.RGBA{comps[0], comps[1], comps[2], comps[3]}, true
}
