package frame

import (
	"bytes"

	"github.com/SimonSapin/victor/engine/dom/style"
)

// DisplayMode is a type for CSS property "display".
type DisplayMode uint16

// Flags for box context and display mode (outer and inner).
const (
	NoMode       DisplayMode = iota   // unset or error condition
	DisplayNone  DisplayMode = 0x0001 // CSS outer display = none
	FlowMode     DisplayMode = 0x0002 // CSS inner display = flow
	BlockMode    DisplayMode = 0x0004 // CSS block context (inner or outer)
	InlineMode   DisplayMode = 0x0008 // CSS inline context
	ListItemMode DisplayMode = 0x0010 // CSS list-item display
	FlowRoot     DisplayMode = 0x0020 // CSS flow-root display property
	ContentsMode DisplayMode = 0x0040 // CSS contents display mode
)

var allDisplayModes = []DisplayMode{
	DisplayNone, FlowMode, BlockMode, InlineMode, ListItemMode, FlowRoot, ContentsMode,
}

var displayModeNames = map[DisplayMode]string{
	NoMode:       "NoMode",
	DisplayNone:  "DisplayNone",
	FlowMode:     "FlowMode",
	BlockMode:    "BlockMode",
	InlineMode:   "InlineMode",
	ListItemMode: "ListItemMode",
	FlowRoot:     "FlowRoot",
	ContentsMode: "ContentsMode",
}

func (disp DisplayMode) String() string {
	if name, ok := displayModeNames[disp]; ok {
		return name
	}
	return disp.FullString()
}

// Set sets a given atomic mode within this display mode.
func (disp *DisplayMode) Set(d DisplayMode) {
	*disp = (*disp) | d
}

// Contains checks if a display mode contains a given atomic mode.
// Returns false for d = NoMode.
func (disp DisplayMode) Contains(d DisplayMode) bool {
	return d != NoMode && (disp&d > 0)
}

// Overlaps returns true if a given display mode shares at least one atomic
// mode flag with disp (excluding NoMode).
func (disp DisplayMode) Overlaps(d DisplayMode) bool {
	for _, m := range allDisplayModes {
		if disp.Contains(m) && d.Contains(m) {
			return true
		}
	}
	return false
}

// FullString returns all atomic modes set in a display mode.
func (disp DisplayMode) FullString() string {
	var b bytes.Buffer
	first := true
	for _, m := range allDisplayModes {
		if disp.Contains(m) {
			if !first {
				b.WriteString(" ")
			}
			first = false
			b.WriteString(displayModeNames[m])
		}
	}
	return b.String()
}

// ParseDisplay converts a computed display property into a display mode.
func ParseDisplay(p style.Property) DisplayMode {
	switch p {
	case "none":
		return DisplayNone
	case "block":
		return BlockMode | FlowMode
	case "inline":
		return InlineMode | FlowMode
	case "inline-block":
		return InlineMode | FlowRoot
	case "list-item":
		return BlockMode | FlowMode | ListItemMode
	case "flow-root":
		return BlockMode | FlowRoot
	case "contents":
		return ContentsMode
	}
	tracer().Infof("unsupported display mode %q treated as inline", p)
	return InlineMode | FlowMode
}
