package tui

import (
	"os/exec"
	"runtime"
)

// openBrowser opens a URL with the platform's default browser. Errors
// are ignored; the status line already tells the user what happened.
func openBrowser(url string) {
	switch runtime.GOOS {
	case "darwin":
		exec.Command("open", url).Start()
	case "windows":
		exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		exec.Command("xdg-open", url).Start()
	}
}
