package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/fsutil"
	"github.com/always-further/claude-extensions/internal/placement"
	"github.com/always-further/claude-extensions/internal/sharedconfig"
	"github.com/always-further/claude-extensions/internal/target"
	"github.com/always-further/claude-extensions/internal/validate"
	"go.uber.org/zap"
)

// Installer installs components from an extensions repository.
type Installer struct {
	repo     string
	strategy placement.Strategy
	log      *zap.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(in *Installer) { in.log = log }
}

// New returns an Installer reading components from repoRoot and placing
// file-based components with strategy.
func New(repoRoot string, strategy placement.Strategy, opts ...Option) *Installer {
	in := &Installer{repo: repoRoot, strategy: strategy, log: zap.NewNop()}
	for _, o := range opts {
		o(in)
	}
	return in
}

// Strategy returns the placement strategy in use.
func (in *Installer) Strategy() placement.Strategy { return in.strategy }

// Source returns the repository path a component is read from.
func (in *Installer) Source(kind component.Kind, id string, flavor target.Flavor) string {
	switch kind {
	case component.KindSkill:
		return filepath.Join(in.repo, kind.Dir(), id)
	case component.KindAgent, component.KindCommand:
		return filepath.Join(in.repo, kind.Dir(), id+".md")
	case component.KindHook:
		return filepath.Join(in.repo, kind.Dir(), id, target.SettingsFile)
	case component.KindMCP:
		return filepath.Join(in.repo, kind.Dir(), flavor.MCPFlavor(), id+".json")
	}
	return ""
}

// Install installs one component into t. Errors are reported in the
// outcome; a missing source is ErrNotFound and leaves t untouched.
func (in *Installer) Install(kind component.Kind, id string, t target.Target) Outcome {
	log := in.log.With(zap.Stringer("kind", kind), zap.String("id", id), zap.String("target", t.Root))

	if err := checkID(id); err != nil {
		return outcome(kind, id, t, "", err)
	}
	if !t.Accepts(kind) {
		err := fmt.Errorf("%w: %s components cannot be installed into %s targets",
			component.ErrInvalidSelection, kind, t.Flavor)
		return outcome(kind, id, t, "", err)
	}

	var o Outcome
	switch kind {
	case component.KindSkill, component.KindAgent, component.KindCommand:
		o = in.place(kind, id, t)
	case component.KindHook:
		o = in.mergeHook(id, t)
	case component.KindMCP:
		o = in.mergeMCP(id, t)
	default:
		o = outcome(kind, id, t, "", fmt.Errorf("%w: unknown kind %s", component.ErrInvalidSelection, kind))
	}

	if o.Err != nil {
		log.Debug("install did not complete", zap.String("status", string(o.Status)), zap.Error(o.Err))
	} else {
		log.Debug("installed", zap.String("dest", o.Dest))
	}
	return o
}

// checkID rejects ids that would escape their kind directory.
func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: invalid component id %q", component.ErrInvalidSelection, id)
	}
	return nil
}

func (in *Installer) source(kind component.Kind, id string, t target.Target) (string, error) {
	src := in.Source(kind, id, t.Flavor)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s %q (no %s)", component.ErrNotFound, kind, id, src)
		}
		return "", component.IOError("reading", src, err)
	}
	return src, nil
}

// place installs a skill, agent, or command with the placement strategy,
// replacing whatever is already at the destination.
func (in *Installer) place(kind component.Kind, id string, t target.Target) Outcome {
	src, err := in.source(kind, id, t)
	if err != nil {
		return outcome(kind, id, t, "", err)
	}
	dst := t.ComponentPath(kind, id)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return outcome(kind, id, t, dst, component.IOError("creating", filepath.Dir(dst), err))
	}
	if err := fsutil.RemovePath(dst); err != nil {
		return outcome(kind, id, t, dst, component.IOError("removing", dst, err))
	}
	if err := in.strategy.Place(src, dst); err != nil {
		return outcome(kind, id, t, dst, component.IOError(string(in.strategy.Mode()), dst, err))
	}
	return outcome(kind, id, t, dst, nil)
}

// mergeHook appends the hook fragment's handlers to the target settings.
func (in *Installer) mergeHook(id string, t target.Target) Outcome {
	kind := component.KindHook
	src, err := in.source(kind, id, t)
	if err != nil {
		return outcome(kind, id, t, "", err)
	}
	dst := t.SettingsPath()

	fragment, err := sharedconfig.Load(src)
	if err != nil {
		return outcome(kind, id, t, dst, err)
	}
	settings, err := sharedconfig.Load(dst)
	if err != nil {
		return outcome(kind, id, t, dst, err)
	}
	if err := sharedconfig.MergeHooks(settings, fragment, dst); err != nil {
		return outcome(kind, id, t, dst, err)
	}
	if err := sharedconfig.Save(dst, settings); err != nil {
		return outcome(kind, id, t, dst, err)
	}
	return outcome(kind, id, t, dst, nil)
}

// mergeMCP validates the preset and writes its servers into the target's
// MCP registry, replacing servers with the same name.
func (in *Installer) mergeMCP(id string, t target.Target) Outcome {
	kind := component.KindMCP
	src, err := in.source(kind, id, t)
	if err != nil {
		return outcome(kind, id, t, "", err)
	}
	dst := t.MCPPath()

	fragment, err := sharedconfig.Load(src)
	if err != nil {
		return outcome(kind, id, t, dst, err)
	}
	if issues := validate.PresetDocument(src, fragment); len(issues) > 0 {
		msgs := make([]string, len(issues))
		for i, issue := range issues {
			msgs[i] = issue.Message
		}
		err := fmt.Errorf("%w: %s: %s", component.ErrMalformedConfig, src, strings.Join(msgs, "; "))
		return outcome(kind, id, t, dst, err)
	}

	registry, err := sharedconfig.Load(dst)
	if err != nil {
		return outcome(kind, id, t, dst, err)
	}
	servers, err := sharedconfig.MergeServers(registry, fragment, dst)
	if err != nil {
		return outcome(kind, id, t, dst, err)
	}
	if err := sharedconfig.Save(dst, registry); err != nil {
		return outcome(kind, id, t, dst, err)
	}

	o := outcome(kind, id, t, dst, nil)
	o.Servers = servers
	return o
}
