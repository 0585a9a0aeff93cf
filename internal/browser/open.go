// Package browser launches the system browser, used to view medical
// documents stored as links.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open points the user's default browser at url. The command is started
// and not waited on.
func Open(url string) error {
	if url == "" {
		return fmt.Errorf("open browser: empty url")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "linux":
		return exec.Command("xdg-open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
