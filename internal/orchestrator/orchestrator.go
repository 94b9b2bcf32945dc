// Package orchestrator runs a whole installation: for each target it takes a
// backup, then installs the selection kind by kind in a fixed order so hook
// and MCP merges see earlier writes from the same run.
package orchestrator

import (
	"errors"
	"fmt"

	"github.com/always-further/claude-extensions/internal/backup"
	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/installer"
	"github.com/always-further/claude-extensions/internal/target"
	"go.uber.org/zap"
)

// ErrBackupFailed marks a target whose installs were not attempted because
// its backup failed.
var ErrBackupFailed = errors.New("backup failed")

// Observer receives progress events. Implementations must not block.
type Observer interface {
	TargetStarted(t target.Target)
	BackupDone(t target.Target, snap *backup.Snapshot, err error)
	Installed(o installer.Outcome)
}

// Options tune a run.
type Options struct {
	// NoBackup skips the pre-install snapshot.
	NoBackup bool
	// ContinueOnBackupError installs even when the snapshot fails.
	ContinueOnBackupError bool
}

// TargetReport is the result for one target.
type TargetReport struct {
	Target    target.Target
	Snapshot  *backup.Snapshot
	BackupErr error
	Outcomes  []installer.Outcome
}

// OK reports whether the target finished without fatal errors.
func (r TargetReport) OK() bool {
	if r.BackupErr != nil {
		return false
	}
	for _, o := range r.Outcomes {
		if o.Fatal() {
			return false
		}
	}
	return true
}

// Report is the result of a run.
type Report struct {
	Targets []TargetReport
}

// OK reports whether every target finished without fatal errors.
func (r Report) OK() bool {
	for _, t := range r.Targets {
		if !t.OK() {
			return false
		}
	}
	return true
}

// Counts tallies outcomes across all targets.
func (r Report) Counts() map[installer.Status]int {
	counts := map[installer.Status]int{}
	for _, t := range r.Targets {
		for _, o := range t.Outcomes {
			counts[o.Status]++
		}
	}
	return counts
}

// Orchestrator ties a backup manager and an installer together.
type Orchestrator struct {
	backups   *backup.Manager
	installer *installer.Installer
	observer  Observer
	opts      Options
	log       *zap.Logger
}

// New returns an Orchestrator. observer may be nil.
func New(backups *backup.Manager, in *installer.Installer, observer Observer, opts Options, log *zap.Logger) *Orchestrator {
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{backups: backups, installer: in, observer: observer, opts: opts, log: log}
}

// Run installs sel into each target in turn. Targets are independent: a
// failure in one does not stop the next.
func (o *Orchestrator) Run(sel component.Selection, targets []target.Target) Report {
	var report Report
	for _, t := range targets {
		report.Targets = append(report.Targets, o.runTarget(sel, t))
	}
	return report
}

func (o *Orchestrator) runTarget(sel component.Selection, t target.Target) TargetReport {
	tr := TargetReport{Target: t}
	o.observer.TargetStarted(t)
	log := o.log.With(zap.String("target", t.Root))

	if !o.opts.NoBackup {
		snap, err := o.backups.Create(t)
		o.observer.BackupDone(t, snap, err)
		tr.Snapshot = snap
		if err != nil {
			if !o.opts.ContinueOnBackupError {
				tr.BackupErr = fmt.Errorf("%w: %s: %w", ErrBackupFailed, t, err)
				log.Warn("backup failed, skipping target", zap.Error(err))
				return tr
			}
			log.Warn("backup failed, continuing", zap.Error(err))
		}
	}

	for _, kind := range component.AllKinds {
		if !t.Accepts(kind) {
			if n := len(sel.IDs(kind)); n > 0 {
				log.Debug("ignoring selection for target", zap.Stringer("kind", kind), zap.Int("count", n))
			}
			continue
		}
		for _, id := range sel.IDs(kind) {
			out := o.installer.Install(kind, id, t)
			tr.Outcomes = append(tr.Outcomes, out)
			o.observer.Installed(out)
		}
	}
	return tr
}

type nopObserver struct{}

func (nopObserver) TargetStarted(target.Target)                       {}
func (nopObserver) BackupDone(target.Target, *backup.Snapshot, error) {}
func (nopObserver) Installed(installer.Outcome)                       {}
