package engine

import (
	"github.com/lakshaymaurya-felt/demole/internal/action"
	"github.com/lakshaymaurya-felt/demole/internal/core"
)

// Scope restricts a unit to the platforms it applies to.
type Scope int

const (
	AllPlatforms Scope = iota
	DarwinOnly
	LinuxOnly
)

// Matches reports whether the scope admits the given platform. An
// unsupported platform matches nothing, including AllPlatforms.
func (s Scope) Matches(p core.Platform) bool {
	switch s {
	case DarwinOnly:
		return p == core.PlatformDarwin
	case LinuxOnly:
		return p == core.PlatformLinux
	default:
		return p == core.PlatformDarwin || p == core.PlatformLinux
	}
}

// Unit is a named, platform-scoped, possibly confirmation-gated bundle of
// actions. Units are pure data interpreted by the Runner; none of the skip
// logic lives in the unit itself.
type Unit struct {
	Name  string
	Scope Scope

	// Confirm gates the unit behind the confirmation gate; Prompt overrides
	// the default question.
	Confirm bool
	Prompt  string

	// RequiresTool skips the whole unit when the named executable is not on
	// PATH (e.g. "docker").
	RequiresTool string

	// Actions run in declared order through the executor.
	Actions []action.Request

	// MeasurePath, when set, is sampled before and after the actions; a
	// positive delta is logged as freed space. Best-effort telemetry only.
	MeasurePath string

	// ReportPaths are measured and logged without any action; used by the
	// reporting phase.
	ReportPaths []string
}

// State is the terminal state of one unit within a run. There is no
// unit-level failure state: partial completion is still Completed.
type State int

const (
	StatePlatformSkipped State = iota
	StateUserDeclined
	StateCompleted
)

// Phase is a fixed ordered group of units.
type Phase struct {
	Name  string
	Units []Unit
}
