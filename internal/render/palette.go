package render

import (
	"image/color"
	"strconv"
)

// Palette is the colour scheme of a figure.
type Palette struct {
	Name       string
	Background string
	Foreground string
	Grid       string
	Series     []string
	// Dark selects the dark go-echarts theme.
	Dark bool
}

var (
	PaletteMocha = Palette{
		Name:       "mocha",
		Background: "#1e1e2e",
		Foreground: "#cdd6f4",
		Grid:       "#45475a",
		Series:     []string{"#89b4fa", "#f38ba8", "#a6e3a1", "#fab387", "#cba6f7", "#94e2d5", "#f9e2af", "#eba0ac", "#74c7ec", "#b4befe"},
		Dark:       true,
	}

	PaletteLatte = Palette{
		Name:       "latte",
		Background: "#eff1f5",
		Foreground: "#4c4f69",
		Grid:       "#ccd0da",
		Series:     []string{"#1e66f5", "#d20f39", "#40a02b", "#fe640b", "#8839ef", "#179299", "#df8e1d", "#e64553", "#209fb5", "#7287fd"},
	}

	PaletteOcean = Palette{
		Name:       "ocean",
		Background: "#001a33",
		Foreground: "#e0f0ff",
		Grid:       "#4488aa",
		Series:     []string{"#0077be", "#00a8cc", "#ffd700", "#00ff88", "#ffcc00", "#ff4444"},
		Dark:       true,
	}

	PaletteMinimal = Palette{
		Name:       "minimal",
		Background: "#ffffff",
		Foreground: "#000000",
		Grid:       "#cccccc",
		Series:     []string{"#0088ff", "#ff0000", "#00aa00", "#ffaa00", "#888888"},
	}

	Palettes = []Palette{
		PaletteMocha,
		PaletteLatte,
		PaletteOcean,
		PaletteMinimal,
	}
)

// GetPalette returns a palette by name, mocha when unknown.
func GetPalette(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return PaletteMocha
}

func PaletteNames() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}

// Hex returns the i-th series colour, cycling.
func (p Palette) Hex(i int) string {
	if len(p.Series) == 0 {
		return p.Foreground
	}
	return p.Series[i%len(p.Series)]
}

// Color returns the i-th series colour, cycling.
func (p Palette) Color(i int) color.Color {
	return ParseHex(p.Hex(i))
}

// RobotHex prefers the colour the simulator assigned to a robot.
func (p Palette) RobotHex(assigned string, i int) string {
	if _, ok := parseHex(assigned); ok {
		return assigned
	}
	return p.Hex(i)
}

// ParseHex parses #rrggbb, returning opaque white when malformed.
func ParseHex(hex string) color.RGBA {
	c, ok := parseHex(hex)
	if !ok {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}

func parseHex(hex string) (color.RGBA, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}
