// Command flightplot shows a flight telemetry CSV as three side-by-side 3D
// line plots: position, velocity and acceleration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/banshee-data/flightplot/internal/config"
	"github.com/banshee-data/flightplot/internal/flightplot"
	"github.com/banshee-data/flightplot/internal/monitoring"
	"github.com/banshee-data/flightplot/internal/version"
)

// cliFlags are the command-line overrides applied on top of the config file.
type cliFlags struct {
	configPath string
	listen     string
	noBrowser  bool
	headless   bool
	format     string
	assetsDir  string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var f cliFlags

	cmd := &cobra.Command{
		Use:           "flightplot [flags] <telemetry.csv>",
		Short:         "Plot flight position, velocity and acceleration in 3D",
		Args:          cobra.ExactArgs(1),
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			monitoring.Enable(cmd.ErrOrStderr(), f.verbose)

			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			r := flightplot.NewRenderer(cfg,
				flightplot.WithOutput(cmd.OutOrStdout()),
				flightplot.WithReadyHook(func(url string) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Viewing %s at %s (close the page or press Ctrl+C to exit)\n", args[0], url)
				}),
			)
			return r.Render(ctx, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "render config file (.json/.yaml)")
	flags.StringVar(&f.listen, "listen", "", "viewer listen address")
	flags.BoolVar(&f.noBrowser, "no-browser", false, "do not launch the system browser")
	flags.BoolVar(&f.headless, "headless", false, "write the figure to stdout instead of serving it")
	flags.StringVarP(&f.format, "format", "f", "", "headless output format: html, svg, png")
	flags.StringVar(&f.assetsDir, "assets-dir", "", "directory of echarts scripts to serve instead of the bundled ones")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "log progress")

	return cmd
}

// resolveConfig loads the config file, if any, and applies explicitly set
// flags over it.
func resolveConfig(cmd *cobra.Command, f cliFlags) (*config.RenderConfig, error) {
	cfg := config.EmptyRenderConfig()
	if f.configPath != "" {
		var err error
		cfg, err = config.LoadRenderConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		monitoring.Logf("loaded render config from %s", f.configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("listen") {
		cfg.Listen = &f.listen
	}
	if flags.Changed("no-browser") {
		open := !f.noBrowser
		cfg.OpenBrowser = &open
	}
	if flags.Changed("headless") {
		cfg.Headless = &f.headless
	}
	if flags.Changed("format") {
		cfg.Format = &f.format
	}
	if flags.Changed("assets-dir") {
		cfg.AssetsDir = &f.assetsDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "flightplot: %v\n", err)
		os.Exit(1)
	}
}
