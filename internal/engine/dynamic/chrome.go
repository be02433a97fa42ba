package dynamic

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

// chromeEnv overrides every other lookup when it points at an executable.
const chromeEnv = "CHROME_PATH"

// ResolveChrome returns configured when it is executable, otherwise the
// result of FindChrome.
func ResolveChrome(configured string) string {
	if configured != "" {
		if isExecutable(configured) {
			return configured
		}
		log.Warn().Str("path", configured).Msg("Configured browser is not executable, searching")
	}
	return FindChrome()
}

// FindChrome locates a Chrome or Chromium binary. An empty result leaves the
// choice to chromedp.
func FindChrome() string {
	if path := os.Getenv(chromeEnv); path != "" {
		if isExecutable(path) {
			log.Debug().Str("path", path).Msg("Chrome found via " + chromeEnv)
			return path
		}
		log.Warn().Str("path", path).Msg(chromeEnv + " set but not executable")
	}

	for _, path := range candidates() {
		if isExecutable(path) {
			log.Debug().Str("path", path).Str("os", runtime.GOOS).Msg("Chrome found at standard location")
			return path
		}
	}

	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser", "chrome", "msedge"} {
		if path, err := exec.LookPath(name); err == nil {
			log.Debug().Str("path", path).Msg("Chrome found in PATH")
			return path
		}
	}

	return ""
}

func candidates() []string {
	home := os.Getenv("HOME")

	switch runtime.GOOS {
	case "darwin":
		paths := []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		}
		if home != "" {
			paths = append(paths, filepath.Join(home, "Applications/Google Chrome.app/Contents/MacOS/Google Chrome"))
		}
		return paths

	case "windows":
		var paths []string
		for _, base := range []string{os.Getenv("ProgramFiles"), os.Getenv("ProgramFiles(x86)"), os.Getenv("LocalAppData")} {
			if base == "" {
				continue
			}
			paths = append(paths,
				filepath.Join(base, "Google", "Chrome", "Application", "chrome.exe"),
				filepath.Join(base, "Chromium", "Application", "chrome.exe"),
				filepath.Join(base, "Microsoft", "Edge", "Application", "msedge.exe"),
			)
		}
		return paths

	default:
		paths := []string{
			"/usr/bin/google-chrome-stable",
			"/usr/bin/google-chrome",
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
			"/snap/bin/chromium",
		}
		if home != "" {
			paths = append(paths,
				filepath.Join(home, ".local/share/flatpak/exports/bin/com.google.Chrome"),
				filepath.Join(home, ".local/share/flatpak/exports/bin/org.chromium.Chromium"),
			)
		}
		return paths
	}
}

// isExecutable checks if a file exists and is executable
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0111 != 0
}
