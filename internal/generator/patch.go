package generator

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aliasync/aliasync/internal/alias"
	"github.com/aliasync/aliasync/internal/logger"
	"github.com/aliasync/aliasync/internal/schema"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Action says what applying a generator does to its file.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Target describes the file a generator would write.
type Target struct {
	Tool   ToolName `json:"tool" yaml:"tool"`
	Path   string   `json:"path" yaml:"path"`
	Exists bool     `json:"exists" yaml:"exists"`
	Action Action   `json:"action" yaml:"action"`
}

// Drift states reported by Status.
const (
	StateUpToDate     = "up-to-date"
	StateStale        = "stale"
	StateNotGenerated = "not-generated"
)

// StatusResult compares a config file's alias block with a fresh scan.
type StatusResult struct {
	Tool    ToolName `json:"tool" yaml:"tool"`
	Path    string   `json:"path" yaml:"path"`
	State   string   `json:"state" yaml:"state"`
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
	Extra   []string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Patcher runs the locate, create-or-update, write protocol for generators.
type Patcher struct {
	fs     afs.Service
	log    *logger.Logger
	checks map[ToolName]func([]byte) error
}

// NewPatcher returns a Patcher that validates tsconfig output against the
// embedded schema.
func NewPatcher(log *logger.Logger) *Patcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Patcher{
		fs:  afs.New(),
		log: log,
		checks: map[ToolName]func([]byte) error{
			TSConfig: checkTSConfig,
		},
	}
}

// Locate returns the first existing candidate file under root, or the first
// candidate name when none exists.
func (p *Patcher) Locate(ctx context.Context, gen Generator, root string) (Target, error) {
	names := gen.Candidates()
	if len(names) == 0 {
		return Target{}, fmt.Errorf("no candidate files for %s", gen.Tool())
	}
	for _, name := range names {
		path := filepath.Join(root, name)
		ok, err := p.fs.Exists(ctx, path)
		if err != nil {
			return Target{}, fmt.Errorf("checking %s: %w", path, err)
		}
		if ok {
			return Target{Tool: gen.Tool(), Path: path, Exists: true, Action: ActionUpdate}, nil
		}
	}
	return Target{Tool: gen.Tool(), Path: filepath.Join(root, names[0]), Action: ActionCreate}, nil
}

// Apply writes aliases into gen's config file under root. Failures are
// reported in the returned Outcome; Apply never stops on them.
func (p *Patcher) Apply(ctx context.Context, gen Generator, root string, aliases []alias.Entry) *alias.Outcome {
	target, err := p.Locate(ctx, gen, root)
	if err != nil {
		return p.failed(&Error{Tool: gen.Tool(), Path: root, Err: err})
	}
	name := filepath.Base(target.Path)

	var (
		content  string
		original []byte
		warnings []string
	)
	if target.Exists {
		original, err = p.fs.DownloadWithURL(ctx, target.Path)
		if err != nil {
			return p.failed(&Error{Tool: gen.Tool(), Path: target.Path, Err: fmt.Errorf("reading: %w", err)})
		}
		content, warnings, err = gen.Update(string(original), aliases)
		if err != nil {
			return p.failed(&Error{Tool: gen.Tool(), Path: target.Path, Err: err})
		}
	} else {
		content = gen.Create(aliases)
	}

	if check, ok := p.checks[gen.Tool()]; ok {
		if err := check([]byte(content)); err != nil {
			return p.failed(&Error{Tool: gen.Tool(), Path: target.Path, Err: err})
		}
	}

	for _, w := range warnings {
		p.log.Warn("%s: %s", name, w)
	}

	out := &alias.Outcome{Success: true, Aliases: aliases, Warnings: prefixed(name, warnings)}
	if target.Exists && bytes.Equal(original, []byte(content)) {
		out.Message = fmt.Sprintf("%s already up to date", name)
		p.log.Debug("%s unchanged, skipping write", target.Path)
		return out
	}

	if err := p.fs.Upload(ctx, target.Path, file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return p.failed(&Error{Tool: gen.Tool(), Path: target.Path, Err: fmt.Errorf("writing: %w", err)})
	}

	verb := "Updated"
	if !target.Exists {
		verb = "Created"
	}
	out.Message = fmt.Sprintf("%s %s with %d aliases", verb, name, len(aliases))
	out.FilesModified = []string{target.Path}
	p.log.Debug("%s", out.Message)
	return out
}

// Status reads gen's config file back and compares its aliases with aliases.
// Names are compared without wildcard suffixes.
func (p *Patcher) Status(ctx context.Context, gen Generator, root string, aliases []alias.Entry) (*StatusResult, error) {
	target, err := p.Locate(ctx, gen, root)
	if err != nil {
		return nil, err
	}
	result := &StatusResult{Tool: gen.Tool(), Path: target.Path, State: StateNotGenerated}
	if !target.Exists {
		return result, nil
	}

	data, err := p.fs.DownloadWithURL(ctx, target.Path)
	if err != nil {
		return nil, &Error{Tool: gen.Tool(), Path: target.Path, Err: fmt.Errorf("reading: %w", err)}
	}
	found, ok := gen.ReadBack(string(data))
	if !ok {
		return result, nil
	}

	want := make(map[string]bool, len(aliases))
	for _, a := range aliases {
		want[a.Name()] = true
	}
	have := make(map[string]bool, len(found))
	for _, name := range found {
		have[alias.TrimWildcard(name)] = true
	}
	for name := range want {
		if !have[name] {
			result.Missing = append(result.Missing, name)
		}
	}
	for name := range have {
		if !want[name] {
			result.Extra = append(result.Extra, name)
		}
	}
	sort.Strings(result.Missing)
	sort.Strings(result.Extra)

	result.State = StateUpToDate
	if len(result.Missing) > 0 || len(result.Extra) > 0 {
		result.State = StateStale
	}
	return result, nil
}

// Write stores content at path, replacing any existing file.
func (p *Patcher) Write(ctx context.Context, path, content string) error {
	if err := p.fs.Upload(ctx, path, file.DefaultFileOsMode, strings.NewReader(content)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (p *Patcher) failed(err *Error) *alias.Outcome {
	p.log.Error("%v", err)
	return alias.Failed(fmt.Sprintf("Failed to update %s configuration", err.Tool), err.Error())
}

func checkTSConfig(content []byte) error {
	result, err := schema.ValidateTSConfig(content)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if !result.Valid {
		issues := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			issues[i] = issue.String()
		}
		return fmt.Errorf("%w: %s", ErrSchema, strings.Join(issues, "; "))
	}
	return nil
}

func prefixed(name string, warnings []string) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = name + ": " + w
	}
	return out
}
