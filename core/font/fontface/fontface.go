// Package fontface models CSS @font-face declarations.
//
// An @font-face rule connects a CSS font family name to a font resource,
// optionally restricted to a style, a weight range and a set of Unicode
// code points. The unicode-range descriptor covers the whole of Unicode;
// ranges above U+FFFF are as valid as BMP ranges.
package fontface

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"

	"github.com/SimonSapin/victor/core"
)

func tracer() tracing.Trace {
	return tracing.Select("victor.fonts")
}

// MaxCodepoint is the highest valid Unicode code point.
const MaxCodepoint rune = 0x10FFFF

// CodepointRange is an inclusive range of Unicode code points.
type CodepointRange struct {
	Lo, Hi rune
}

// Contains checks whether a code point falls into the range.
func (cr CodepointRange) Contains(r rune) bool {
	return r >= cr.Lo && r <= cr.Hi
}

// RangeSet is a list of code point ranges, as given by a unicode-range
// descriptor. An empty set means "no restriction".
type RangeSet []CodepointRange

// Contains checks whether a code point is covered by the set. The empty
// set covers everything.
func (rs RangeSet) Contains(r rune) bool {
	if len(rs) == 0 {
		return true
	}
	for _, cr := range rs {
		if cr.Contains(r) {
			return true
		}
	}
	return false
}

// Declaration is a parsed @font-face rule.
type Declaration struct {
	Family string     // font family name the rule declares
	Src    []Source   // resource locations, in order of preference
	Style  xfont.Style
	Weight xfont.Weight
	Ranges RangeSet // unicode-range restriction, possibly empty
}

// Source is one entry of an @font-face src descriptor.
type Source struct {
	URL    string // location of the font resource
	Local  string // local font name, for src:local(…)
	Format string // format hint, e.g. "truetype"
}

// Covers checks whether this declaration may be used to render a code
// point, per its unicode-range descriptor.
func (d *Declaration) Covers(r rune) bool {
	return d.Ranges.Contains(r)
}

// ParseUnicodeRange parses the value of a unicode-range descriptor, i.e.
// a comma-separated list of range tokens:
//
//	U+26               a single code point
//	U+0-7F             an interval
//	U+4??              a wildcard range (U+400-4FF)
//	U+1F300-1F5FF      intervals above the BMP work alike
func ParseUnicodeRange(value string) (RangeSet, error) {
	var set RangeSet
	for _, tok := range strings.Split(value, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		cr, err := parseRangeToken(tok)
		if err != nil {
			return nil, err
		}
		set = append(set, cr)
	}
	return set, nil
}

func parseRangeToken(tok string) (CodepointRange, error) {
	t := strings.ToUpper(tok)
	if !strings.HasPrefix(t, "U+") {
		return CodepointRange{}, rangeError(tok)
	}
	t = t[2:]
	var lo, hi rune
	switch {
	case strings.Contains(t, "-"):
		parts := strings.SplitN(t, "-", 2)
		l, err1 := strconv.ParseUint(parts[0], 16, 32)
		h, err2 := strconv.ParseUint(parts[1], 16, 32)
		if err1 != nil || err2 != nil {
			return CodepointRange{}, rangeError(tok)
		}
		lo, hi = rune(l), rune(h)
	case strings.Contains(t, "?"):
		qm := strings.Count(t, "?")
		base := strings.TrimSuffix(t, strings.Repeat("?", qm))
		if strings.Contains(base, "?") { // only trailing wildcards are legal
			return CodepointRange{}, rangeError(tok)
		}
		var b uint64
		if base != "" {
			var err error
			b, err = strconv.ParseUint(base, 16, 32)
			if err != nil {
				return CodepointRange{}, rangeError(tok)
			}
		}
		lo = rune(b << (4 * qm))
		hi = lo | rune(1<<(4*qm)-1)
	default:
		c, err := strconv.ParseUint(t, 16, 32)
		if err != nil {
			return CodepointRange{}, rangeError(tok)
		}
		lo, hi = rune(c), rune(c)
	}
	if lo > hi || hi > MaxCodepoint {
		return CodepointRange{}, rangeError(tok)
	}
	return CodepointRange{Lo: lo, Hi: hi}, nil
}

func rangeError(tok string) error {
	tracer().Infof("illegal unicode-range token %q", tok)
	return core.Error(core.EINVALID, "illegal unicode-range token '%s'", tok)
}

// ParseSrc parses the value of a src descriptor, i.e. a comma-separated
// list of url(…) and local(…) entries, optionally with format(…) hints.
func ParseSrc(value string) []Source {
	var sources []Source
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		var src Source
		switch {
		case strings.HasPrefix(entry, "local("):
			src.Local = unquote(argument(entry, "local"))
		case strings.HasPrefix(entry, "url("):
			rest := entry
			src.URL = unquote(argument(rest, "url"))
			if fpos := strings.Index(rest, "format("); fpos >= 0 {
				src.Format = unquote(argument(rest[fpos:], "format"))
			}
		default:
			tracer().Infof("ignoring unintelligible src entry %q", entry)
			continue
		}
		sources = append(sources, src)
	}
	return sources
}

// argument extracts the argument of "fn(arg)…" for a given function name.
func argument(s string, fn string) string {
	s = s[len(fn)+1:]
	if close := strings.Index(s, ")"); close >= 0 {
		return strings.TrimSpace(s[:close])
	}
	return strings.TrimSpace(s)
}

func unquote(s string) string {
	s = strings.Trim(s, `"'`)
	return s
}
