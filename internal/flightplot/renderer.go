package flightplot

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/banshee-data/flightplot/internal/config"
	"github.com/banshee-data/flightplot/internal/flightdata"
	"github.com/banshee-data/flightplot/internal/fsutil"
	"github.com/banshee-data/flightplot/internal/monitoring"
	"github.com/banshee-data/flightplot/internal/viewer"
)

// ServeFunc displays a rendered page and blocks until it is dismissed.
type ServeFunc func(ctx context.Context, page []byte, opts viewer.Options) error

// Renderer loads telemetry files and displays them as three-panel figures.
// It keeps no state between Render calls.
type Renderer struct {
	cfg   *config.RenderConfig
	fsys  fsutil.FileSystem
	out   io.Writer
	serve ServeFunc
	ready func(url string)

	assetsDir func(dir string) fs.FS
	bundled   func() (fs.FS, bool)
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithFileSystem sets where telemetry files are read from.
func WithFileSystem(fsys fsutil.FileSystem) Option {
	return func(r *Renderer) { r.fsys = fsys }
}

// WithOutput sets the writer headless figures are written to.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) { r.out = w }
}

// WithServe replaces the interactive display surface.
func WithServe(serve ServeFunc) Option {
	return func(r *Renderer) { r.serve = serve }
}

// WithReadyHook is called with the viewer URL once the page is being served.
func WithReadyHook(fn func(url string)) Option {
	return func(r *Renderer) { r.ready = fn }
}

// NewRenderer creates a Renderer. A nil cfg uses every default.
func NewRenderer(cfg *config.RenderConfig, opts ...Option) *Renderer {
	if cfg == nil {
		cfg = config.EmptyRenderConfig()
	}
	r := &Renderer{
		cfg:   cfg,
		fsys:  fsutil.OSFileSystem{},
		out:   os.Stdout,
		serve: viewer.Serve,

		assetsDir: os.DirFS,
		bundled:   viewer.BundledAssets,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render loads the telemetry file at path and displays its figure. The whole
// table is loaded before any panel is built, so a missing file or column
// never produces a partial figure. In headless mode the figure is written to
// the output writer and Render returns at once; otherwise it blocks until the
// viewer is closed or ctx is done.
func (r *Renderer) Render(ctx context.Context, path string) error {
	t, err := flightdata.Load(r.fsys, path)
	if err != nil {
		return err
	}

	fig := BuildFigure(t)
	st := StyleFromConfig(r.cfg)

	if r.cfg.GetHeadless() {
		format := r.cfg.GetFormat()
		monitoring.Logf("writing %s figure for %s", format, path)
		return Write(r.out, fig, st, format)
	}

	assets, err := r.chartAssets()
	if err != nil {
		return err
	}
	if assets != nil {
		st.AssetsHost = viewer.AssetsPath
	} else {
		monitoring.Logf("chart scripts not available locally, page loads them from %s", st.AssetsHost)
	}

	page, err := RenderHTML(fig, st)
	if err != nil {
		return err
	}
	return r.serve(ctx, page, viewer.Options{
		Listen:      r.cfg.GetListen(),
		OpenBrowser: r.cfg.GetOpenBrowser(),
		CloseGrace:  r.cfg.GetCloseGrace(),
		Assets:      assets,
		OnReady: func(url string) {
			monitoring.Logf("showing %s at %s", path, url)
			if r.ready != nil {
				r.ready(url)
			}
		},
	})
}

// chartAssets picks the scripts the viewer serves: assets_dir when set,
// otherwise the bundle compiled into the binary. It returns nil when neither
// is available.
func (r *Renderer) chartAssets() (fs.FS, error) {
	if dir := r.cfg.GetAssetsDir(); dir != "" {
		fsys := r.assetsDir(dir)
		if err := viewer.CheckAssets(fsys); err != nil {
			return nil, fmt.Errorf("assets_dir %s: %w", dir, err)
		}
		return fsys, nil
	}
	if fsys, ok := r.bundled(); ok {
		return fsys, nil
	}
	return nil, nil
}

// Write renders fig to w in one of the supported output formats.
func Write(w io.Writer, fig Figure, st Style, format string) error {
	switch format {
	case config.FormatHTML:
		return WriteHTML(w, fig, st)
	case config.FormatSVG, config.FormatPNG:
		return WriteImage(w, fig, st, format)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
