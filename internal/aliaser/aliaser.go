package aliaser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aliasync/aliasync/internal/alias"
	"github.com/aliasync/aliasync/internal/branding"
	"github.com/aliasync/aliasync/internal/config"
	"github.com/aliasync/aliasync/internal/generator"
	"github.com/aliasync/aliasync/internal/logger"
	"github.com/aliasync/aliasync/internal/project"
	"github.com/aliasync/aliasync/internal/scanner"
)

// Options configures an Aliaser.
type Options struct {
	RootDir  string
	Settings config.Settings
	Log      *logger.Logger
	// Lister overrides directory enumeration during scans.
	Lister scanner.Lister
	// Now is the clock used for helper file timestamps.
	Now func() time.Time
}

// Aliaser runs sync cycles for one project. Cycles are serialized.
type Aliaser struct {
	root     string
	settings config.Settings
	log      *logger.Logger
	lister   scanner.Lister
	now      func() time.Time
	patcher  *generator.Patcher

	cycle sync.Mutex

	phaseMu sync.RWMutex
	phase   Phase
}

func New(opts Options) *Aliaser {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	settings := opts.Settings
	if settings.SrcDir == "" {
		settings.SrcDir = scanner.DefaultSrcDir
	}
	if settings.HelperFile == "" {
		settings.HelperFile = branding.HelperFile()
	}
	return &Aliaser{
		root:     opts.RootDir,
		settings: settings,
		log:      log,
		lister:   opts.Lister,
		now:      now,
		patcher:  generator.NewPatcher(log),
	}
}

// Phase returns the current cycle phase.
func (a *Aliaser) Phase() Phase {
	a.phaseMu.RLock()
	defer a.phaseMu.RUnlock()
	return a.phase
}

func (a *Aliaser) setPhase(p Phase) {
	a.phaseMu.Lock()
	prev := a.phase
	a.phase = p
	a.phaseMu.Unlock()
	a.log.Debug("phase %s -> %s", prev, p)
}

// Scan derives the alias list from the source tree.
func (a *Aliaser) Scan(ctx context.Context) ([]alias.Entry, error) {
	return scanner.ScanForAliases(ctx, scanner.Options{
		RootDir:         a.root,
		SrcDir:          a.settings.SrcDir,
		Prefix:          a.settings.Prefix,
		ExcludeDirs:     a.settings.ExcludeDirs,
		MinDepth:        a.settings.MinDepth,
		MaxDepth:        a.settings.MaxDepth,
		WildcardSubdirs: a.settings.WildcardSubdirs,
		Lister:          a.lister,
	})
}

// Sync runs a non-forced cycle.
func (a *Aliaser) Sync(ctx context.Context) *alias.Outcome {
	return a.Initialize(ctx, false)
}

// Initialize runs one full cycle. With force, an invalid alias set is
// recorded as a warning and patching continues.
func (a *Aliaser) Initialize(ctx context.Context, force bool) *alias.Outcome {
	a.cycle.Lock()
	defer a.cycle.Unlock()

	aliases, warnings, failure := a.prepare(ctx, force)
	if failure != nil {
		a.setPhase(Failed)
		return failure
	}

	out := &alias.Outcome{Success: true, Aliases: aliases, Warnings: warnings}
	gens := a.applicable(ctx)
	succeeded := 0
	for _, g := range gens {
		res := a.patcher.Apply(ctx, g, a.root, aliases)
		out.Errors = append(out.Errors, res.Errors...)
		out.Warnings = append(out.Warnings, res.Warnings...)
		out.FilesModified = append(out.FilesModified, res.FilesModified...)
		if res.Success {
			succeeded++
			a.log.Info("%s", res.Message)
		}
	}

	if succeeded == len(gens) {
		out.Message = fmt.Sprintf("Successfully synchronized %d aliases across all configuration files", len(aliases))
		a.setPhase(Done)
		return out
	}
	out.Success = false
	out.Message = fmt.Sprintf("Updated %d/%d configuration files", succeeded, len(gens))
	a.setPhase(Failed)
	return out
}

// prepare runs the validating and scanning phases plus alias validation. A
// non-nil Outcome means the cycle stops there.
func (a *Aliaser) prepare(ctx context.Context, force bool) ([]alias.Entry, []string, *alias.Outcome) {
	a.setPhase(Validating)
	structure := project.ValidateStructure(a.root, a.settings.SrcDir)
	for _, w := range structure.Warnings {
		a.log.Warn("%s", w)
	}
	for _, s := range structure.Suggestions {
		a.log.Info("%s", s)
	}
	if !structure.IsValid {
		out := alias.Failed("Project structure validation failed", structure.Errors...)
		out.Warnings = structure.Warnings
		return nil, nil, out
	}

	a.setPhase(Scanning)
	aliases, err := a.Scan(ctx)
	if err != nil {
		return nil, nil, alias.Failed("Failed to scan for aliases", err.Error())
	}
	if len(aliases) == 0 {
		return nil, nil, alias.Failed("No directories found to create aliases for")
	}
	a.log.Debug("found %d aliases", len(aliases))

	a.setPhase(Patching)
	warnings := append([]string{}, structure.Warnings...)
	check := alias.Validate(aliases)
	warnings = append(warnings, check.Warnings...)
	for _, w := range check.Warnings {
		a.log.Warn("%s", w)
	}
	if !check.IsValid {
		if !force {
			out := alias.Failed("Alias validation failed", check.Errors...)
			out.Aliases = aliases
			out.Warnings = warnings
			return nil, nil, out
		}
		msg := "Alias validation failed, continuing because of --force: " + strings.Join(check.Errors, "; ")
		a.log.Warn("%s", msg)
		warnings = append(warnings, msg)
	}
	return aliases, warnings, nil
}

// generators returns the registry configured for this project.
func (a *Aliaser) generators() []generator.Generator {
	return generator.Registry(generator.Options{NeedsBaseURL: project.NeedsBaseURL(a.root)})
}

// applicable returns the generators a cycle runs: mandatory ones, those whose
// file exists, and those listed in the tools setting.
func (a *Aliaser) applicable(ctx context.Context) []generator.Generator {
	requested := make(map[generator.ToolName]bool, len(a.settings.Tools))
	for _, t := range a.settings.Tools {
		if tool, ok := generator.ParseToolName(t); ok {
			requested[tool] = true
		} else {
			a.log.Warn("Unknown tool in config: %s", t)
		}
	}

	var gens []generator.Generator
	for _, g := range a.generators() {
		if g.Mandatory() || requested[g.Tool()] {
			gens = append(gens, g)
			continue
		}
		target, err := a.patcher.Locate(ctx, g, a.root)
		if err != nil {
			a.log.Warn("Locating %s config: %v", g.Tool(), err)
			continue
		}
		if target.Exists {
			gens = append(gens, g)
		}
	}
	return gens
}

// DryRun validates and scans like a sync cycle and reports which files would
// be written. Nothing is written.
func (a *Aliaser) DryRun(ctx context.Context) (*alias.Outcome, []generator.Target) {
	a.cycle.Lock()
	defer a.cycle.Unlock()

	aliases, warnings, failure := a.prepare(ctx, false)
	if failure != nil {
		a.setPhase(Failed)
		return failure, nil
	}

	var targets []generator.Target
	for _, g := range a.applicable(ctx) {
		target, err := a.patcher.Locate(ctx, g, a.root)
		if err != nil {
			a.log.Warn("Locating %s config: %v", g.Tool(), err)
			continue
		}
		targets = append(targets, target)
	}
	a.setPhase(Done)

	return &alias.Outcome{
		Success:  true,
		Message:  fmt.Sprintf("Dry run: %d aliases would be written to %d files", len(aliases), len(targets)),
		Aliases:  aliases,
		Warnings: warnings,
	}, targets
}

// HelperPath returns where GenerateHelperFile writes.
func (a *Aliaser) HelperPath() string {
	return filepath.Join(a.root, a.settings.SrcDir, a.settings.HelperFile)
}

// GenerateHelperFile writes the TypeScript alias helper module into the
// source directory.
func (a *Aliaser) GenerateHelperFile(ctx context.Context) *alias.Outcome {
	a.cycle.Lock()
	defer a.cycle.Unlock()

	aliases, err := a.Scan(ctx)
	if err != nil {
		return alias.Failed("Failed to generate helper file", err.Error())
	}

	path := a.HelperPath()
	if err := a.patcher.Write(ctx, path, generator.RenderHelper(aliases, a.now())); err != nil {
		return alias.Failed("Failed to generate helper file", err.Error())
	}

	return &alias.Outcome{
		Success:       true,
		Message:       fmt.Sprintf("Generated alias helper file: %s", path),
		Aliases:       aliases,
		FilesModified: []string{path},
	}
}
