package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported headless output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// DefaultAssetsHost is where chart scripts are fetched from when neither the
// binary nor assets_dir provides them.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// ExampleConfigPath is the checked-in example render configuration.
const ExampleConfigPath = "config/render.example.yaml"

const maxConfigFileSize = 1 * 1024 * 1024 // 1MB

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RenderConfig controls how the flight figure is drawn and displayed.
// Every field is optional; the Get* methods supply defaults for nil fields,
// so partial files are safe.
type RenderConfig struct {
	// Viewer params
	Listen      *string `json:"listen,omitempty" yaml:"listen,omitempty"`
	OpenBrowser *bool   `json:"open_browser,omitempty" yaml:"open_browser,omitempty"`
	CloseGrace  *string `json:"close_grace,omitempty" yaml:"close_grace,omitempty"` // duration string like "2s"
	AssetsDir   *string `json:"assets_dir,omitempty" yaml:"assets_dir,omitempty"`   // local chart scripts, served by the viewer

	// Output params
	Headless *bool   `json:"headless,omitempty" yaml:"headless,omitempty"`
	Format   *string `json:"format,omitempty" yaml:"format,omitempty"`

	// Figure params
	PanelWidth    *int     `json:"panel_width,omitempty" yaml:"panel_width,omitempty"`
	PanelHeight   *int     `json:"panel_height,omitempty" yaml:"panel_height,omitempty"`
	Theme         *string  `json:"theme,omitempty" yaml:"theme,omitempty"`
	LineColor     *string  `json:"line_color,omitempty" yaml:"line_color,omitempty"`
	ViewAzimuth   *float64 `json:"view_azimuth,omitempty" yaml:"view_azimuth,omitempty"`
	ViewElevation *float64 `json:"view_elevation,omitempty" yaml:"view_elevation,omitempty"`
	AssetsHost    *string  `json:"assets_host,omitempty" yaml:"assets_host,omitempty"` // script URL prefix for pages not served locally
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyRenderConfig returns a RenderConfig with all fields set to nil.
func EmptyRenderConfig() *RenderConfig {
	return &RenderConfig{}
}

// DefaultRenderConfig returns a RenderConfig with every field populated.
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		Listen:        ptrString("127.0.0.1:0"),
		OpenBrowser:   ptrBool(true),
		CloseGrace:    ptrString("2s"),
		AssetsDir:     ptrString(""),
		Headless:      ptrBool(false),
		Format:        ptrString(FormatHTML),
		PanelWidth:    ptrInt(500),
		PanelHeight:   ptrInt(500),
		Theme:         ptrString("white"),
		LineColor:     ptrString("#4169e1"),
		ViewAzimuth:   ptrFloat64(-60),
		ViewElevation: ptrFloat64(30),
		AssetsHost:    ptrString(DefaultAssetsHost),
	}
}

// LoadRenderConfig loads a RenderConfig from a JSON or YAML file, chosen by
// extension. The file must be under 1MB.
func LoadRenderConfig(path string) (*RenderConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRenderConfig()
	if ext == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", strings.TrimPrefix(ext, "."), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RenderConfig) Validate() error {
	if c.Listen != nil && *c.Listen == "" {
		return fmt.Errorf("listen must not be empty")
	}

	if c.Format != nil {
		switch *c.Format {
		case FormatHTML, FormatSVG, FormatPNG:
		default:
			return fmt.Errorf("format must be one of html, svg, png, got %q", *c.Format)
		}
	}

	if c.PanelWidth != nil && (*c.PanelWidth < 100 || *c.PanelWidth > 4000) {
		return fmt.Errorf("panel_width must be between 100 and 4000, got %d", *c.PanelWidth)
	}
	if c.PanelHeight != nil && (*c.PanelHeight < 100 || *c.PanelHeight > 4000) {
		return fmt.Errorf("panel_height must be between 100 and 4000, got %d", *c.PanelHeight)
	}

	if c.Theme != nil && *c.Theme == "" {
		return fmt.Errorf("theme must not be empty")
	}
	if c.LineColor != nil && !hexColor.MatchString(*c.LineColor) {
		return fmt.Errorf("line_color must be #rrggbb, got %q", *c.LineColor)
	}

	if c.ViewAzimuth != nil && (*c.ViewAzimuth < -360 || *c.ViewAzimuth > 360) {
		return fmt.Errorf("view_azimuth must be between -360 and 360, got %f", *c.ViewAzimuth)
	}
	if c.ViewElevation != nil && (*c.ViewElevation < -90 || *c.ViewElevation > 90) {
		return fmt.Errorf("view_elevation must be between -90 and 90, got %f", *c.ViewElevation)
	}

	if c.AssetsHost != nil && !strings.HasSuffix(*c.AssetsHost, "/") {
		return fmt.Errorf("assets_host must end with '/', got %q", *c.AssetsHost)
	}

	if c.CloseGrace != nil && *c.CloseGrace != "" {
		d, err := time.ParseDuration(*c.CloseGrace)
		if err != nil {
			return fmt.Errorf("invalid close_grace '%s': %w", *c.CloseGrace, err)
		}
		if d < 0 {
			return fmt.Errorf("close_grace must be non-negative, got %s", d)
		}
	}

	return nil
}

// GetListen returns the listen value or the default.
func (c *RenderConfig) GetListen() string {
	if c.Listen == nil {
		return "127.0.0.1:0" // ephemeral loopback port
	}
	return *c.Listen
}

// GetOpenBrowser returns the open_browser value or the default.
func (c *RenderConfig) GetOpenBrowser() bool {
	if c.OpenBrowser == nil {
		return true
	}
	return *c.OpenBrowser
}

// GetCloseGrace parses and returns the CloseGrace as a time.Duration.
func (c *RenderConfig) GetCloseGrace() time.Duration {
	if c.CloseGrace == nil || *c.CloseGrace == "" {
		return 2 * time.Second // default
	}
	d, err := time.ParseDuration(*c.CloseGrace)
	if err != nil {
		return 2 * time.Second // default on parse error
	}
	return d
}

// GetHeadless returns the headless value or the default.
func (c *RenderConfig) GetHeadless() bool {
	if c.Headless == nil {
		return false
	}
	return *c.Headless
}

// GetFormat returns the format value or the default.
func (c *RenderConfig) GetFormat() string {
	if c.Format == nil {
		return FormatHTML
	}
	return *c.Format
}

// GetPanelWidth returns the panel_width value or the default.
func (c *RenderConfig) GetPanelWidth() int {
	if c.PanelWidth == nil {
		return 500
	}
	return *c.PanelWidth
}

// GetPanelHeight returns the panel_height value or the default.
func (c *RenderConfig) GetPanelHeight() int {
	if c.PanelHeight == nil {
		return 500
	}
	return *c.PanelHeight
}

// GetTheme returns the theme value or the default.
func (c *RenderConfig) GetTheme() string {
	if c.Theme == nil {
		return "white"
	}
	return *c.Theme
}

// GetLineColor returns the line_color value or the default.
func (c *RenderConfig) GetLineColor() string {
	if c.LineColor == nil {
		return "#4169e1" // royal blue
	}
	return *c.LineColor
}

// GetViewAzimuth returns the view_azimuth value or the default.
func (c *RenderConfig) GetViewAzimuth() float64 {
	if c.ViewAzimuth == nil {
		return -60
	}
	return *c.ViewAzimuth
}

// GetViewElevation returns the view_elevation value or the default.
func (c *RenderConfig) GetViewElevation() float64 {
	if c.ViewElevation == nil {
		return 30
	}
	return *c.ViewElevation
}

// GetAssetsDir returns the assets_dir value, empty when unset.
func (c *RenderConfig) GetAssetsDir() string {
	if c.AssetsDir == nil {
		return ""
	}
	return *c.AssetsDir
}

// GetAssetsHost returns the assets_host value or the default.
func (c *RenderConfig) GetAssetsHost() string {
	if c.AssetsHost == nil {
		return DefaultAssetsHost
	}
	return *c.AssetsHost
}
