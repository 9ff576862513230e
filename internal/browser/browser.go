// Package browser opens URLs in the user's default web browser, with a
// fallback for headless environments where no browser can be launched.
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	pkgbrowser "github.com/pkg/browser"
)

// IsAvailable reports whether the current environment can launch a browser.
// On Linux this requires a display session and the xdg-open helper; macOS and
// Windows always have a system opener.
func IsAvailable() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	default:
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return false
		}
		_, err := exec.LookPath("xdg-open")
		return err == nil
	}
}

// OpenURL opens the given URL in the default browser. If the primary opener
// fails, a platform-specific command is tried before giving up.
func OpenURL(url string) error {
	if err := pkgbrowser.OpenURL(url); err == nil {
		return nil
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux, freebsd, etc.
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
