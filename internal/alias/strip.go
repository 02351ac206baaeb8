package alias

import "strings"

const (
	// Wildcard marks an alias or path as a prefix match.
	Wildcard = "/*"
	// CaptureSuffix is the regular-expression tail used by module mappers.
	CaptureSuffix = "/(.*)$"
	dotSlash      = "./"
)

// TrimWildcard strips a trailing "/*".
func TrimWildcard(s string) string {
	return strings.TrimSuffix(s, Wildcard)
}

// TrimCapture strips a trailing "/(.*)$" from a module mapper key.
func TrimCapture(s string) string {
	return strings.TrimSuffix(s, CaptureSuffix)
}

// TrimDotSlash strips a leading "./".
func TrimDotSlash(s string) string {
	return strings.TrimPrefix(s, dotSlash)
}

// Target returns the root-relative directory a path points at, without the
// leading "./" and without the wildcard suffix: "./src/*" becomes "src".
func Target(path string) string {
	return TrimDotSlash(TrimWildcard(path))
}
