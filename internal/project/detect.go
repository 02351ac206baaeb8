package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Package manager tags.
const (
	NPM  = "npm"
	Yarn = "yarn"
	PNPM = "pnpm"
)

// PathsWithoutBaseURL is the first TypeScript release that resolves
// compilerOptions.paths without a baseUrl.
var PathsWithoutBaseURL = semver.MustParse("4.1.0")

// PackageManager guesses the package manager from the lockfile in root.
func PackageManager(root string) string {
	switch {
	case isFile(filepath.Join(root, "pnpm-lock.yaml")):
		return PNPM
	case isFile(filepath.Join(root, "yarn.lock")):
		return Yarn
	default:
		return NPM
	}
}

type packageJSON struct {
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func readPackageJSON(path string) (*packageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// TypeScriptVersion returns the TypeScript version used by the project: the
// installed node_modules copy if present, else the lower bound of the range
// declared in package.json. The second result is false when neither is known.
func TypeScriptVersion(root string) (*semver.Version, bool) {
	if pkg, err := readPackageJSON(filepath.Join(root, "node_modules", "typescript", "package.json")); err == nil {
		if v, err := semver.NewVersion(pkg.Version); err == nil {
			return v, true
		}
	}

	pkg, err := readPackageJSON(filepath.Join(root, "package.json"))
	if err != nil {
		return nil, false
	}
	declared := pkg.DevDependencies["typescript"]
	if declared == "" {
		declared = pkg.Dependencies["typescript"]
	}
	if declared == "" {
		return nil, false
	}
	v, err := semver.NewVersion(strings.TrimLeft(declared, "^~>=v "))
	if err != nil {
		return nil, false
	}
	return v, true
}

// NeedsBaseURL reports whether the project's TypeScript requires
// compilerOptions.baseUrl for paths to resolve. Unknown versions are treated
// as modern.
func NeedsBaseURL(root string) bool {
	v, ok := TypeScriptVersion(root)
	return ok && v.LessThan(PathsWithoutBaseURL)
}
