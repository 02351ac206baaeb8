package generator

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsEscaper   = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	backslashed = regexp.MustCompile(`\\(.)`)
	pathImport  = regexp.MustCompile(`(?m)(?:^\s*import\s+(?:\*\s+as\s+)?path\s+from\s+['"](?:node:)?path['"]|\brequire\(\s*['"](?:node:)?path['"]\s*\))`)
)

// jsString renders s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	return "'" + jsEscaper.Replace(s) + "'"
}

// jsonString renders s as a JSON string literal without HTML escaping.
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// unescape drops backslash escapes from a quoted literal's contents.
func unescape(s string) string {
	return backslashed.ReplaceAllString(s, "$1")
}

// importsPath reports whether a JS/TS config imports or requires node's path
// module as `path`.
func importsPath(content string) bool {
	return scanCode(content).has(pathImport)
}

// resolveCall renders path.resolve(__dirname, '<target>').
func resolveCall(target string) string {
	return "path.resolve(__dirname, " + jsString(target) + ")"
}

const missingPathImport = "config does not import 'path'; add: import path from 'path'"
