package core

import "github.com/lakshaymaurya-felt/demole/internal/logging"

// RunConfig holds the flags that shape a single cleanup run.
// Immutable after argument parsing.
type RunConfig struct {
	// DryRun logs every action verbatim instead of executing it.
	DryRun bool

	// AutoConfirm answers yes to every confirmation prompt.
	AutoConfirm bool

	// Verbose traces every action and skip reason.
	Verbose bool
}

// RunContext bundles the per-run collaborators. It is constructed once at
// startup and passed by pointer into every component; there are no ambient
// globals.
type RunContext struct {
	Config *RunConfig
	Host   *HostProfile
	Log    *logging.Logger
}
