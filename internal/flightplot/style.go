package flightplot

import (
	"fmt"
	"image/color"

	"github.com/banshee-data/flightplot/internal/config"
)

// Style holds the presentation settings shared by both backends.
type Style struct {
	PanelWidth  int // px for HTML, pt for images
	PanelHeight int
	Theme       string
	LineColor   string // #rrggbb
	// Static projection view, in degrees.
	Azimuth   float64
	Elevation float64
	// AssetsHost prefixes the chart script URLs of HTML output.
	AssetsHost string
}

// StyleFromConfig reads the figure settings out of cfg.
func StyleFromConfig(cfg *config.RenderConfig) Style {
	return Style{
		PanelWidth:  cfg.GetPanelWidth(),
		PanelHeight: cfg.GetPanelHeight(),
		Theme:       cfg.GetTheme(),
		LineColor:   cfg.GetLineColor(),
		Azimuth:     cfg.GetViewAzimuth(),
		Elevation:   cfg.GetViewElevation(),
		AssetsHost:  cfg.GetAssetsHost(),
	}
}

// DefaultStyle returns the style of an empty configuration.
func DefaultStyle() Style {
	return StyleFromConfig(config.EmptyRenderConfig())
}

// parseHexColor converts "#rrggbb" to an opaque colour.
func parseHexColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
