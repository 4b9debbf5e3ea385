package action

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// PathExists reports whether path names at least one existing file or
// directory. Glob patterns are resolved; a pattern with zero matches counts
// as absent.
func PathExists(path string) bool {
	if strings.ContainsAny(path, "*?[") {
		matches, err := filepath.Glob(path)
		return err == nil && len(matches) > 0
	}
	_, err := os.Lstat(path)
	return err == nil
}

// ToolAvailable reports whether an executable is resolvable on PATH.
func ToolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// SudoAvailable reports whether a privilege-escalation tool is present.
func SudoAvailable() bool {
	return ToolAvailable("sudo")
}
