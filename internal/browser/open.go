// Package browser opens URLs with the host's external-link capability.
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Open launches url in the user's browser. $BROWSER wins when set; otherwise
// the platform opener is used. The command is detached; the HUD never waits
// on the browser.
func Open(url string) error {
	var cmd *exec.Cmd
	if b := os.Getenv("BROWSER"); b != "" {
		cmd = exec.Command(b, url)
	} else {
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	// Reap in the background to avoid zombies.
	go cmd.Wait()
	return nil
}
