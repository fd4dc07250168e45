package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var osName = func() string { return runtime.GOOS }

// OpenBrowser launches the system browser at url so the operator can approve
// the authorization request. Callers print the URL before invoking this, so
// login still works by hand when no opener exists.
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch host := osName(); host {
	case "darwin":
		name = "open"
	case "linux":
		name = "xdg-open"
	case "windows":
		name, args = "cmd", []string{"/c", "start"}
	default:
		return fmt.Errorf("no known browser opener for %s", host)
	}

	if err := exec.Command(name, append(args, url)...).Start(); err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	return nil
}
