package scanner

import (
	"context"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Lister enumerates directories below a source root. Paths are slash
// separated and relative to the root; the root itself is not listed.
type Lister interface {
	ListDirs(ctx context.Context, root string) ([]string, error)
}

// GlobLister lists directories with a doublestar walk over os.DirFS.
type GlobLister struct{}

// ListDirs returns every directory below root in depth-first pre-order with
// siblings in byte order. Hidden directories and their contents are skipped,
// and symlinks are not followed.
func (GlobLister) ListDirs(ctx context.Context, root string) ([]string, error) {
	var dirs []string
	err := doublestar.GlobWalk(os.DirFS(root), "**", func(path string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == "." || !d.IsDir() {
			return nil
		}
		if hidden(d.Name()) {
			return fs.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	}, doublestar.WithNoFollow())
	if err != nil {
		return nil, err
	}
	SortPreOrder(dirs)
	return dirs, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// SortPreOrder sorts slash-separated paths segment by segment, which places
// every directory directly before its descendants.
func SortPreOrder(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return lessSegments(paths[i], paths[j])
	})
}

func lessSegments(a, b string) bool {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	for k := 0; k < len(as) && k < len(bs); k++ {
		if as[k] != bs[k] {
			return as[k] < bs[k]
		}
	}
	return len(as) < len(bs)
}
