package action

import (
	"path/filepath"
	"strings"
)

// Kind is the closed set of operations an action can perform. Representing
// actions structurally (instead of opaque command strings) lets the executor
// apply path and privilege policy without pattern-matching text.
type Kind int

const (
	// RemovePath deletes the target path itself.
	RemovePath Kind = iota

	// RemoveContents deletes everything inside the target directory while
	// keeping the directory.
	RemoveContents

	// RunTool invokes an external executable.
	RunTool
)

// Request describes one action. Requests are ephemeral: constructed per
// invocation, never stored.
type Request struct {
	Kind Kind

	// Path is the deletion target for the remove kinds. Glob patterns are
	// allowed (browser profile directories use them).
	Path string

	// Tool and Args describe the external invocation for RunTool.
	Tool string
	Args []string

	// RequiresPath skips the action when the given path does not exist.
	// Re-checked by the executor as defense in depth.
	RequiresPath string

	// RequiresSudo marks the action as needing privilege escalation.
	RequiresSudo bool
}

// Describe renders the shell-equivalent form of the request, used verbatim
// in dry-run and verbose log records.
func (r Request) Describe() string {
	switch r.Kind {
	case RemovePath:
		return "rm -rf " + r.Path
	case RemoveContents:
		return "rm -rf " + filepath.Join(r.Path, "*")
	default:
		s := strings.Join(append([]string{r.Tool}, r.Args...), " ")
		if r.RequiresSudo {
			s = "sudo " + s
		}
		return s
	}
}
