package viewer

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/banshee-data/flightplot/internal/httputil"
)

//go:generate curl -fsSL -o assets/echarts.min.js https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js
//go:generate curl -fsSL -o assets/echarts@4.min.js https://go-echarts.github.io/go-echarts-assets/assets/echarts@4.min.js
//go:generate curl -fsSL -o assets/echarts-gl.min.js https://go-echarts.github.io/go-echarts-assets/assets/echarts-gl.min.js

//go:embed assets
var bundled embed.FS

// AssetsPath is the URL prefix chart scripts are served under.
const AssetsPath = "/assets/"

// AssetFiles are the scripts a Line3D page loads.
var AssetFiles = []string{"echarts.min.js", "echarts@4.min.js", "echarts-gl.min.js"}

// CheckAssets reports the first entry of AssetFiles missing from fsys.
func CheckAssets(fsys fs.FS) error {
	for _, name := range AssetFiles {
		info, err := fs.Stat(fsys, name)
		if err != nil {
			return fmt.Errorf("chart script %s: %w", name, err)
		}
		if info.IsDir() {
			return fmt.Errorf("chart script %s is a directory", name)
		}
	}
	return nil
}

// BundledAssets returns the chart scripts compiled into the binary. ok is
// false when the build did not include them.
func BundledAssets() (fsys fs.FS, ok bool) {
	sub, err := fs.Sub(bundled, "assets")
	if err != nil {
		return nil, false
	}
	if err := CheckAssets(sub); err != nil {
		return nil, false
	}
	return sub, true
}

// assetHandler serves fsys below AssetsPath. Only GET and HEAD are allowed.
func assetHandler(fsys fs.FS) http.Handler {
	files := http.StripPrefix(AssetsPath, http.FileServer(http.FS(fsys)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			httputil.MethodNotAllowed(w)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	})
}
