// Package blend composites source pixels onto background pixels, weighted by
// a per-pixel amount.
//
// Every blender works in canonical vector space (see package pixel), so one
// implementation serves all pixel encodings. A blend is the combination of a
// ColorMode, which mixes the color channels, and an AlphaMode, the
// Porter-Duff operator that decides where source and background show.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when parsing an unrecognized mode name.
var ErrUnknownMode = errors.New("blend: unknown mode")

// ColorMode selects how source and background colors mix where both are
// present.
type ColorMode uint8

const (
	Normal    ColorMode = iota // B = S
	Multiply                   // B = S*D
	Add                        // B = min(1, S+D)
	Subtract                   // B = max(0, D-S)
	Screen                     // B = S+D-S*D
	Darken                     // B = min(S, D)
	Lighten                    // B = max(S, D)
	Overlay                    // HardLight with S and D swapped
	HardLight                  // Multiply or Screen depending on S

	colorModeCount
)

var colorModeNames = [colorModeCount]string{
	Normal:    "normal",
	Multiply:  "multiply",
	Add:       "add",
	Subtract:  "subtract",
	Screen:    "screen",
	Darken:    "darken",
	Lighten:   "lighten",
	Overlay:   "overlay",
	HardLight: "hardlight",
}

// String returns the lower-case mode name.
func (m ColorMode) String() string {
	if m >= colorModeCount {
		return fmt.Sprintf("ColorMode(%d)", m)
	}
	return colorModeNames[m]
}

// Valid reports whether m is a known mode.
func (m ColorMode) Valid() bool {
	return m < colorModeCount
}

// ParseColorMode parses a name as returned by ColorMode.String.
func ParseColorMode(s string) (ColorMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range colorModeNames {
		if name == s {
			return ColorMode(m), nil
		}
	}
	return Normal, fmt.Errorf("%w: color mode %q", ErrUnknownMode, s)
}

// AlphaMode is a Porter-Duff compositing operator.
type AlphaMode uint8

const (
	SrcOver  AlphaMode = iota // S over D [default]
	Src                       // S replaces D
	SrcAtop                   // S where D is, D elsewhere
	SrcIn                     // S where D is
	SrcOut                    // S where D is not
	Dest                      // D kept
	DestAtop                  // D where S is, S elsewhere
	DestOver                  // D over S
	DestIn                    // D where S is
	DestOut                   // D where S is not
	Clear                     // transparent
	Xor                       // S where D is not, D where S is not

	alphaModeCount
)

var alphaModeNames = [alphaModeCount]string{
	SrcOver:  "srcover",
	Src:      "src",
	SrcAtop:  "srcatop",
	SrcIn:    "srcin",
	SrcOut:   "srcout",
	Dest:     "dest",
	DestAtop: "destatop",
	DestOver: "destover",
	DestIn:   "destin",
	DestOut:  "destout",
	Clear:    "clear",
	Xor:      "xor",
}

// String returns the lower-case operator name.
func (m AlphaMode) String() string {
	if m >= alphaModeCount {
		return fmt.Sprintf("AlphaMode(%d)", m)
	}
	return alphaModeNames[m]
}

// Valid reports whether m is a known operator.
func (m AlphaMode) Valid() bool {
	return m < alphaModeCount
}

// ParseAlphaMode parses a name as returned by AlphaMode.String.
func ParseAlphaMode(s string) (AlphaMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range alphaModeNames {
		if name == s {
			return AlphaMode(m), nil
		}
	}
	return SrcOver, fmt.Errorf("%w: alpha mode %q", ErrUnknownMode, s)
}
