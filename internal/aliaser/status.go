package aliaser

import (
	"context"
	"path/filepath"

	"github.com/aliasync/aliasync/internal/alias"
	"github.com/aliasync/aliasync/internal/generator"
	"github.com/aliasync/aliasync/internal/project"
)

// ProjectInfo is an advisory snapshot of the project.
type ProjectInfo struct {
	RootDir        string               `json:"rootDir" yaml:"rootDir"`
	SrcDir         string               `json:"srcDir" yaml:"srcDir"`
	PackageManager string               `json:"packageManager" yaml:"packageManager"`
	TypeScript     string               `json:"typescript,omitempty" yaml:"typescript,omitempty"`
	ConfigFiles    []project.ConfigFile `json:"configFiles" yaml:"configFiles"`
	Aliases        []alias.Entry        `json:"aliases" yaml:"aliases"`
}

// Info collects project facts. Aliases are empty when the source directory
// cannot be scanned.
func (a *Aliaser) Info(ctx context.Context) *ProjectInfo {
	info := &ProjectInfo{
		RootDir:        a.root,
		SrcDir:         a.settings.SrcDir,
		PackageManager: project.PackageManager(a.root),
		ConfigFiles:    project.FindConfigFiles(a.root),
	}
	if v, ok := project.TypeScriptVersion(a.root); ok {
		info.TypeScript = v.String()
	}
	if aliases, err := a.Scan(ctx); err == nil {
		info.Aliases = aliases
	} else {
		a.log.Debug("scan for info: %v", err)
	}
	return info
}

// Status compares every tool's alias block with a fresh scan.
func (a *Aliaser) Status(ctx context.Context) ([]generator.StatusResult, error) {
	aliases, err := a.Scan(ctx)
	if err != nil {
		return nil, err
	}

	var results []generator.StatusResult
	for _, g := range a.generators() {
		res, err := a.patcher.Status(ctx, g, a.root, aliases)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// FileCheck is the validation result for one discovered config file.
type FileCheck struct {
	Tool   string                  `json:"tool" yaml:"tool"`
	Path   string                  `json:"path" yaml:"path"`
	Result *alias.ValidationResult `json:"result" yaml:"result"`
}

// Report collects every check the validate command runs.
type Report struct {
	Structure *alias.ValidationResult `json:"structure" yaml:"structure"`
	Aliases   *alias.ValidationResult `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Files     []FileCheck             `json:"files,omitempty" yaml:"files,omitempty"`
}

// Valid reports whether every check passed.
func (r *Report) Valid() bool {
	if !r.Structure.IsValid {
		return false
	}
	if r.Aliases != nil && !r.Aliases.IsValid {
		return false
	}
	for _, f := range r.Files {
		if !f.Result.IsValid {
			return false
		}
	}
	return true
}

// Validate checks the project layout, the scanned alias set, and every
// discovered config file without writing anything.
func (a *Aliaser) Validate(ctx context.Context) *Report {
	report := &Report{Structure: project.ValidateStructure(a.root, a.settings.SrcDir)}
	if report.Structure.IsValid {
		if aliases, err := a.Scan(ctx); err == nil {
			report.Aliases = alias.Validate(aliases)
		} else {
			report.Structure.AddError(err.Error())
		}
	}
	for _, cf := range project.FindConfigFiles(a.root) {
		report.Files = append(report.Files, FileCheck{
			Tool:   cf.Tool,
			Path:   filepath.Clean(cf.Path),
			Result: project.ValidateConfigFile(cf.Path),
		})
	}
	return report
}
