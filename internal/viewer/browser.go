package viewer

import (
	"fmt"
	"os/exec"
	"runtime"
)

// launch opens url in the desktop browser. Replaced in tests.
var launch = openBrowser

func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return exec.Command(cmd, args...).Start()
}
