package installer

import (
	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/target"
)

// Status is the result of one install.
type Status string

const (
	StatusInstalled Status = "installed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome reports one Install call.
type Outcome struct {
	Kind   component.Kind
	ID     string
	Target target.Target
	Status Status
	// Dest is the placed path or the shared file merged into.
	Dest string
	// Servers lists the MCP server names merged, for MCP presets.
	Servers []string
	Err     error
}

// Fatal reports whether the outcome should fail the run.
func (o Outcome) Fatal() bool {
	return component.IsFatal(o.Err)
}

func outcome(kind component.Kind, id string, t target.Target, dest string, err error) Outcome {
	o := Outcome{Kind: kind, ID: id, Target: t, Dest: dest, Err: err}
	switch {
	case err == nil:
		o.Status = StatusInstalled
	case component.IsFatal(err):
		o.Status = StatusFailed
	default:
		o.Status = StatusSkipped
	}
	return o
}
