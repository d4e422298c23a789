package shared

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

var goos = func() string { return runtime.GOOS }

// OpenBrowser launches the user's browser at the given URL, used to hand the
// authorization flow off to Spotify. The BROWSER environment variable
// overrides platform detection.
func OpenBrowser(url string) error {
	if browser := os.Getenv("BROWSER"); browser != "" {
		return launch(exec.Command(browser, url))
	}

	switch goos() {
	case "darwin":
		return launch(exec.Command("open", url))
	case "linux":
		return launch(exec.Command("xdg-open", url))
	case "windows":
		return launch(exec.Command("cmd", "/c", "start", url))
	default:
		return fmt.Errorf("no browser launcher for platform %s", goos())
	}
}

func launch(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
