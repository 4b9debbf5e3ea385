// Package catalog declares the cleanup units for macOS and Linux, grouped
// into the five fixed pipeline phases. Everything here is data; the skip,
// confirmation, and dry-run logic lives in the engine.
package catalog

import (
	"os"
	"path/filepath"

	"github.com/lakshaymaurya-felt/demole/internal/action"
	"github.com/lakshaymaurya-felt/demole/internal/core"
	"github.com/lakshaymaurya-felt/demole/internal/engine"
)

// ─── Base directories ────────────────────────────────────────────────────────

// xdgCache returns $XDG_CACHE_HOME or ~/.cache.
func xdgCache(home string) string {
	if d := os.Getenv("XDG_CACHE_HOME"); d != "" {
		return d
	}
	return filepath.Join(home, ".cache")
}

// xdgConfig returns $XDG_CONFIG_HOME or ~/.config.
func xdgConfig(home string) string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d
	}
	return filepath.Join(home, ".config")
}

// xdgData returns $XDG_DATA_HOME or ~/.local/share.
func xdgData(home string) string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d
	}
	return filepath.Join(home, ".local", "share")
}

// ─── Request constructors ────────────────────────────────────────────────────

// removeContents empties a directory, keeping the directory itself. The
// target doubles as its own path guard.
func removeContents(path string) action.Request {
	return action.Request{Kind: action.RemoveContents, Path: path, RequiresPath: path}
}

// removePath deletes the target (glob patterns allowed).
func removePath(path string) action.Request {
	return action.Request{Kind: action.RemovePath, Path: path, RequiresPath: path}
}

// tool invokes an external executable.
func tool(name string, args ...string) action.Request {
	return action.Request{Kind: action.RunTool, Tool: name, Args: args}
}

// sudoTool invokes an external executable with privilege escalation.
func sudoTool(name string, args ...string) action.Request {
	req := tool(name, args...)
	req.RequiresSudo = true
	return req
}

// sudoEmpty empties a root-owned directory without deleting it. find(1) is
// used because sudo does not expand globs.
func sudoEmpty(dir string, extra ...string) action.Request {
	args := append([]string{dir, "-mindepth", "1"}, extra...)
	args = append(args, "-delete")
	req := sudoTool("find", args...)
	req.RequiresPath = dir
	return req
}

// ─── Catalogue ───────────────────────────────────────────────────────────────

// Phases returns the full unit catalogue for the given host, in the fixed
// execution order: System Cleanup, Applications & Browsers, Development
// Environments, System Optimization, Analysis & Reporting.
func Phases(host *core.HostProfile) []engine.Phase {
	home := host.Home
	caches := filepath.Join(home, "Library", "Caches")
	logs := filepath.Join(home, "Library", "Logs")
	appSupport := filepath.Join(home, "Library", "Application Support")
	cache := xdgCache(home)
	config := xdgConfig(home)
	data := xdgData(home)

	return []engine.Phase{
		{
			Name: "System Cleanup",
			Units: []engine.Unit{
				{
					Name:        "User caches",
					Scope:       engine.DarwinOnly,
					MeasurePath: caches,
					Actions:     []action.Request{removeContents(caches)},
				},
				{
					Name:        "User caches",
					Scope:       engine.LinuxOnly,
					MeasurePath: cache,
					Actions:     []action.Request{removeContents(cache)},
				},
				{
					Name:        "User logs",
					Scope:       engine.DarwinOnly,
					MeasurePath: logs,
					Actions:     []action.Request{removeContents(logs)},
				},
				{
					Name:    "Trash",
					Scope:   engine.DarwinOnly,
					Confirm: true,
					Prompt:  "Empty the Trash?",
					Actions: []action.Request{removeContents(filepath.Join(home, ".Trash"))},
				},
				{
					Name:    "Trash",
					Scope:   engine.LinuxOnly,
					Confirm: true,
					Prompt:  "Empty the Trash?",
					Actions: []action.Request{
						removeContents(filepath.Join(data, "Trash", "files")),
						removeContents(filepath.Join(data, "Trash", "info")),
					},
				},
				{
					Name:  "Diagnostic reports",
					Scope: engine.DarwinOnly,
					Actions: []action.Request{
						removeContents(filepath.Join(logs, "DiagnosticReports")),
						sudoEmpty("/Library/Logs/DiagnosticReports"),
					},
				},
				{
					Name:    "Crash reports",
					Scope:   engine.LinuxOnly,
					Actions: []action.Request{sudoEmpty("/var/crash")},
				},
				{
					Name:         "System journal",
					Scope:        engine.LinuxOnly,
					RequiresTool: "journalctl",
					Actions:      []action.Request{sudoTool("journalctl", "--vacuum-time=7d")},
				},
				{
					Name:  "Stale system temp files",
					Scope: engine.DarwinOnly,
					Actions: []action.Request{
						sudoEmpty("/private/var/tmp", "-mtime", "+7"),
					},
				},
				{
					Name:  "Stale system temp files",
					Scope: engine.LinuxOnly,
					Actions: []action.Request{
						sudoEmpty("/var/tmp", "-mtime", "+7"),
					},
				},
			},
		},

		{
			Name: "Applications & Browsers",
			Units: []engine.Unit{
				{
					Name:  "Chrome cache",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removeContents(filepath.Join(caches, "Google", "Chrome")),
						removeContents(filepath.Join(cache, "google-chrome")),
					},
				},
				{
					Name:  "Chromium cache",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removeContents(filepath.Join(caches, "Chromium")),
						removeContents(filepath.Join(cache, "chromium")),
					},
				},
				{
					Name:  "Brave cache",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removeContents(filepath.Join(caches, "BraveSoftware")),
						removeContents(filepath.Join(cache, "BraveSoftware")),
					},
				},
				{
					Name:  "Edge cache",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removeContents(filepath.Join(caches, "Microsoft Edge")),
						removeContents(filepath.Join(cache, "microsoft-edge")),
					},
				},
				{
					Name:  "Firefox cache",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removePath(filepath.Join(caches, "Firefox", "Profiles", "*", "cache2")),
						removePath(filepath.Join(cache, "mozilla", "firefox", "*", "cache2")),
					},
				},
				{
					Name:    "Safari cache",
					Scope:   engine.DarwinOnly,
					Actions: []action.Request{removeContents(filepath.Join(caches, "com.apple.Safari"))},
				},
				{
					Name:  "Slack cache",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removeContents(filepath.Join(appSupport, "Slack", "Cache")),
						removeContents(filepath.Join(appSupport, "Slack", "Service Worker", "CacheStorage")),
						removeContents(filepath.Join(config, "Slack", "Cache")),
					},
				},
				{
					Name:  "Discord cache",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removeContents(filepath.Join(appSupport, "discord", "Cache")),
						removeContents(filepath.Join(appSupport, "discord", "Code Cache")),
						removeContents(filepath.Join(config, "discord", "Cache")),
					},
				},
				{
					Name:  "Spotify cache",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removeContents(filepath.Join(caches, "com.spotify.client", "Data")),
						removeContents(filepath.Join(cache, "spotify")),
					},
				},
				{
					Name:  "VS Code caches",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removeContents(filepath.Join(appSupport, "Code", "Cache")),
						removeContents(filepath.Join(appSupport, "Code", "CachedData")),
						removeContents(filepath.Join(appSupport, "Code", "CachedExtensionVSIXs")),
						removeContents(filepath.Join(appSupport, "Code", "logs")),
						removeContents(filepath.Join(config, "Code", "Cache")),
						removeContents(filepath.Join(config, "Code", "CachedData")),
					},
				},
				{
					Name:        "Xcode derived data",
					Scope:       engine.DarwinOnly,
					MeasurePath: filepath.Join(home, "Library", "Developer", "Xcode", "DerivedData"),
					Actions: []action.Request{
						removeContents(filepath.Join(home, "Library", "Developer", "Xcode", "DerivedData")),
						removeContents(filepath.Join(home, "Library", "Developer", "Xcode", "Archives")),
					},
				},
				{
					Name:         "Unavailable simulators",
					Scope:        engine.DarwinOnly,
					Confirm:      true,
					Prompt:       "Delete unavailable iOS simulators?",
					RequiresTool: "xcrun",
					Actions:      []action.Request{tool("xcrun", "simctl", "delete", "unavailable")},
				},
			},
		},

		{
			Name: "Development Environments",
			Units: []engine.Unit{
				{
					Name:         "Homebrew",
					Scope:        engine.AllPlatforms,
					RequiresTool: "brew",
					MeasurePath:  filepath.Join(caches, "Homebrew"),
					Actions: []action.Request{
						tool("brew", "cleanup", "--prune=all"),
						removeContents(filepath.Join(caches, "Homebrew")),
						removeContents(filepath.Join(cache, "Homebrew")),
					},
				},
				{
					Name:         "npm cache",
					Scope:        engine.AllPlatforms,
					RequiresTool: "npm",
					Actions:      []action.Request{tool("npm", "cache", "clean", "--force")},
				},
				{
					Name:         "yarn cache",
					Scope:        engine.AllPlatforms,
					RequiresTool: "yarn",
					Actions:      []action.Request{tool("yarn", "cache", "clean")},
				},
				{
					Name:         "pnpm store",
					Scope:        engine.AllPlatforms,
					RequiresTool: "pnpm",
					Actions:      []action.Request{tool("pnpm", "store", "prune")},
				},
				{
					Name:  "pip cache",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removeContents(filepath.Join(caches, "pip")),
						removeContents(filepath.Join(cache, "pip")),
					},
				},
				{
					Name:  "Go build cache",
					Scope: engine.AllPlatforms,
					Actions: []action.Request{
						removeContents(filepath.Join(caches, "go-build")),
						removeContents(filepath.Join(cache, "go-build")),
					},
				},
				{
					Name:        "Cargo registry cache",
					Scope:       engine.AllPlatforms,
					MeasurePath: filepath.Join(home, ".cargo", "registry", "cache"),
					Actions:     []action.Request{removeContents(filepath.Join(home, ".cargo", "registry", "cache"))},
				},
				{
					Name:    "Gradle caches",
					Scope:   engine.AllPlatforms,
					Confirm: true,
					Prompt:  "Clean Gradle caches? (next build re-downloads dependencies)",
					Actions: []action.Request{removeContents(filepath.Join(home, ".gradle", "caches"))},
				},
				{
					Name:    "CocoaPods cache",
					Scope:   engine.DarwinOnly,
					Actions: []action.Request{removeContents(filepath.Join(caches, "CocoaPods"))},
				},
				{
					Name:         "Docker",
					Scope:        engine.AllPlatforms,
					Confirm:      true,
					Prompt:       "Prune unused Docker data?",
					RequiresTool: "docker",
					Actions:      []action.Request{tool("docker", "system", "prune", "-f")},
				},
				{
					Name:         "APT package cache",
					Scope:        engine.LinuxOnly,
					RequiresTool: "apt-get",
					Actions: []action.Request{
						sudoTool("apt-get", "clean"),
						sudoTool("apt-get", "autoclean"),
					},
				},
				{
					Name:         "DNF package cache",
					Scope:        engine.LinuxOnly,
					RequiresTool: "dnf",
					Actions:      []action.Request{sudoTool("dnf", "clean", "all")},
				},
				{
					Name:         "Pacman package cache",
					Scope:        engine.LinuxOnly,
					RequiresTool: "pacman",
					Actions:      []action.Request{sudoTool("pacman", "-Sc", "--noconfirm")},
				},
			},
		},

		{
			Name: "System Optimization",
			Units: []engine.Unit{
				{
					Name:    "DNS cache",
					Scope:   engine.DarwinOnly,
					Confirm: true,
					Prompt:  "Flush the DNS cache?",
					Actions: []action.Request{
						sudoTool("dscacheutil", "-flushcache"),
						sudoTool("killall", "-HUP", "mDNSResponder"),
					},
				},
				{
					Name:         "Quick Look cache",
					Scope:        engine.DarwinOnly,
					RequiresTool: "qlmanage",
					Actions:      []action.Request{tool("qlmanage", "-r", "cache")},
				},
				{
					Name:         "Font cache",
					Scope:        engine.LinuxOnly,
					RequiresTool: "fc-cache",
					Actions:      []action.Request{tool("fc-cache", "-f")},
				},
				{
					Name:         "SSD TRIM",
					Scope:        engine.LinuxOnly,
					Confirm:      true,
					Prompt:       "Run fstrim on all mounted filesystems?",
					RequiresTool: "fstrim",
					Actions:      []action.Request{sudoTool("fstrim", "-av")},
				},
				{
					Name:         "Maintenance scripts",
					Scope:        engine.DarwinOnly,
					Confirm:      true,
					Prompt:       "Run periodic maintenance scripts?",
					RequiresTool: "periodic",
					Actions:      []action.Request{sudoTool("periodic", "daily", "weekly", "monthly")},
				},
			},
		},

		{
			Name: "Analysis & Reporting",
			Units: []engine.Unit{
				{
					Name:  "Cache footprint",
					Scope: engine.AllPlatforms,
					ReportPaths: []string{
						caches,
						logs,
						cache,
						filepath.Join(home, ".cargo", "registry"),
						filepath.Join(home, ".gradle", "caches"),
						filepath.Join(home, "go", "pkg", "mod", "cache"),
						filepath.Join(home, "Library", "Developer", "Xcode", "DerivedData"),
					},
				},
			},
		},
	}
}
