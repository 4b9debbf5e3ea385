package core

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// Platform identifies the operating systems the unit catalogue dispatches on.
type Platform int

const (
	PlatformDarwin Platform = iota
	PlatformLinux
	PlatformOther
)

func (p Platform) String() string {
	switch p {
	case PlatformDarwin:
		return "macOS"
	case PlatformLinux:
		return "Linux"
	default:
		return "unsupported OS"
	}
}

// HostProfile describes the machine a run executes on. Derived once at
// startup and never mutated afterwards.
type HostProfile struct {
	Platform Platform
	IsRoot   bool
	Home     string
	Version  string
}

// DetectHost builds the HostProfile for the current machine.
func DetectHost() *HostProfile {
	p := PlatformOther
	switch runtime.GOOS {
	case "darwin":
		p = PlatformDarwin
	case "linux":
		p = PlatformLinux
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "/"
	}

	return &HostProfile{
		Platform: p,
		IsRoot:   os.Geteuid() == 0,
		Home:     home,
		Version:  hostVersion(),
	}
}

// hostVersion returns a human-readable OS description for the session log
// header. Examples: "darwin 14.5 (kernel 23.5.0)", "ubuntu 24.04 (kernel 6.8.0-31-generic)".
func hostVersion() string {
	info, err := host.Info()
	if err != nil {
		return runtime.GOOS
	}
	return fmt.Sprintf("%s %s (kernel %s)", info.Platform, info.PlatformVersion, info.KernelVersion)
}
