package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aliasync/aliasync/internal/alias"
	"github.com/bmatcuk/doublestar/v4"
)

// ErrSourceNotFound is returned when the source directory does not exist.
var ErrSourceNotFound = errors.New("source directory not found")

// DefaultExcludeDirs are the directory names skipped when none are configured.
var DefaultExcludeDirs = []string{
	"node_modules", ".git", "dist", "build", "coverage", ".next", "__tests__", "__mocks__",
}

const (
	DefaultSrcDir = "src"
	DefaultPrefix = "@"
)

// Options controls alias derivation.
type Options struct {
	RootDir string
	SrcDir  string
	Prefix  string
	// ExcludeDirs are doublestar patterns matched against each path segment.
	ExcludeDirs []string
	// MinDepth and MaxDepth bound subdirectory depth; 0 means unbounded.
	// Depth 1 is a direct child of the source root.
	MinDepth int
	MaxDepth int
	// WildcardSubdirs gives every subdirectory alias a "/*" suffix.
	WildcardSubdirs bool
	// Lister overrides directory enumeration. Defaults to GlobLister.
	Lister Lister
}

func (o *Options) applyDefaults() {
	if o.SrcDir == "" {
		o.SrcDir = DefaultSrcDir
	}
	o.SrcDir = path.Clean(filepath.ToSlash(o.SrcDir))
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.ExcludeDirs == nil {
		o.ExcludeDirs = DefaultExcludeDirs
	}
	if o.Lister == nil {
		o.Lister = GlobLister{}
	}
}

// ScanForAliases derives the alias list for opts.RootDir/opts.SrcDir. The
// root entry comes first, followed by one entry per directory in lister
// order. A missing source directory is the only error condition.
func ScanForAliases(ctx context.Context, opts Options) ([]alias.Entry, error) {
	opts.applyDefaults()

	src := filepath.Join(opts.RootDir, opts.SrcDir)
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
	}

	dirs, err := opts.Lister.ListDirs(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("listing directories in %s: %w", src, err)
	}

	entries := []alias.Entry{{
		Alias: opts.Prefix + alias.Wildcard,
		Path:  "./" + opts.SrcDir + alias.Wildcard,
	}}

	for _, rel := range dirs {
		rel = filepath.ToSlash(rel)
		if !opts.keep(rel) {
			continue
		}
		e := alias.Entry{
			Alias:        opts.Prefix + rel,
			Path:         "./" + opts.SrcDir + "/" + rel,
			RelativePath: rel,
		}
		if opts.WildcardSubdirs {
			e.Alias += alias.Wildcard
			e.Path += alias.Wildcard
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (o *Options) keep(rel string) bool {
	segments := strings.Split(rel, "/")
	depth := len(segments)
	if o.MinDepth > 0 && depth < o.MinDepth {
		return false
	}
	if o.MaxDepth > 0 && depth > o.MaxDepth {
		return false
	}
	for _, seg := range segments {
		if hidden(seg) || o.excluded(seg) {
			return false
		}
	}
	return true
}

func (o *Options) excluded(segment string) bool {
	for _, pattern := range o.ExcludeDirs {
		if ok, _ := doublestar.Match(pattern, segment); ok {
			return true
		}
	}
	return false
}
