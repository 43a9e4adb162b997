package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

const playlistWebURL = "https://open.spotify.com/playlist/"

var getRuntime = func() string { return runtime.GOOS }

// PlaylistURL returns the public web URL for a playlist ID.
func PlaylistURL(id string) string {
	return playlistWebURL + id
}

// OpenBrowser opens the default system browser to the specified URL.
//
// Supports macOS, Linux, and Windows platforms.
func OpenBrowser(url string) error {
	cmd, err := browserCommand(getRuntime(), url)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}

func browserCommand(rt, url string) (*exec.Cmd, error) {
	switch rt {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", rt)
	}
}
