package generator

import (
	"slices"

	"github.com/aliasync/aliasync/internal/alias"
	"github.com/aliasync/aliasync/internal/project"
)

// ToolName identifies a supported build tool.
type ToolName string

const (
	TSConfig ToolName = "tsconfig"
	Vite     ToolName = "vite"
	Webpack  ToolName = "webpack"
	Jest     ToolName = "jest"
)

// AllTools returns all supported tool names in patch order.
func AllTools() []ToolName {
	return []ToolName{TSConfig, Vite, Webpack, Jest}
}

// ParseToolName converts a string to a ToolName, returning false if invalid.
func ParseToolName(s string) (ToolName, bool) {
	if tool := ToolName(s); slices.Contains(AllTools(), tool) {
		return tool, true
	}
	return "", false
}

// Generator describes how one tool stores its aliases.
type Generator interface {
	Tool() ToolName
	// Candidates lists file names in lookup order. The first is used when
	// the file has to be created.
	Candidates() []string
	// Mandatory generators run even when their file does not exist yet.
	Mandatory() bool
	// Create renders a complete minimal config.
	Create(aliases []alias.Entry) string
	// Update rewrites the alias block of content and returns the new text
	// plus any warnings.
	Update(content string, aliases []alias.Entry) (string, []string, error)
	// ReadBack returns the alias names found in content's alias block. The
	// second result is false when there is no block.
	ReadBack(content string) ([]string, bool)
}

// Options carries project facts generators need.
type Options struct {
	// NeedsBaseURL adds compilerOptions.baseUrl when tsconfig lacks it.
	NeedsBaseURL bool
}

// Registry returns one generator per tool, in AllTools order.
func Registry(opts Options) []Generator {
	return []Generator{
		&tsconfigGenerator{needsBaseURL: opts.NeedsBaseURL},
		&viteGenerator{},
		&webpackGenerator{},
		&jestGenerator{},
	}
}

func candidates(tool ToolName) []string {
	return project.CandidateNames(string(tool))
}
