package generator

import (
	"regexp"
	"strings"

	"github.com/aliasync/aliasync/internal/alias"
)

var (
	jestMapperKey = regexp.MustCompile(`["']?moduleNameMapper["']?\s*:\s*\{`)
	jestAnchors   = []anchor{
		{re: regexp.MustCompile(`module\.exports\s*=\s*\{`)},
		{re: regexp.MustCompile(`export\s+default\s+\{`)},
		{re: regexp.MustCompile(`(?:const|let|var)\s+[\w$]+(?:\s*:\s*[\w$.<>]+)?\s*=\s*\{`)},
	}
	jsQuotedKey = regexp.MustCompile(`(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")\s*:`)
)

type jestGenerator struct{}

func (g *jestGenerator) Tool() ToolName       { return Jest }
func (g *jestGenerator) Candidates() []string { return candidates(Jest) }
func (g *jestGenerator) Mandatory() bool      { return false }

func (g *jestGenerator) Create(aliases []alias.Entry) string {
	return "module.exports = {\n" +
		"  preset: 'ts-jest',\n" +
		"  testEnvironment: 'node',\n" +
		"  " + mapper(aliases, false)("  ", "  ") + "\n" +
		"};\n"
}

func (g *jestGenerator) Update(content string, aliases []alias.Entry) (string, []string, error) {
	spec := blockSpec{key: jestMapperKey, anchors: jestAnchors, render: mapper(aliases, false)}
	if isJSONDocument(content) {
		spec.anchors = []anchor{{re: leadingBrace}}
		spec.render = mapper(aliases, true)
	}
	out, err := spec.apply(content)
	return out, nil, err
}

func (g *jestGenerator) ReadBack(content string) ([]string, bool) {
	body, ok := blockSpec{key: jestMapperKey}.body(content)
	if !ok {
		return nil, false
	}
	return collectKeys(jsQuotedKey, body, func(key string) string {
		key = strings.TrimPrefix(unescape(key), "^")
		return unescape(alias.TrimCapture(key))
	}), true
}

// MapperKey returns the module mapper pattern for an alias.
func MapperKey(e alias.Entry) string {
	return "^" + regexp.QuoteMeta(e.Name()) + alias.CaptureSuffix
}

// MapperValue returns the module mapper replacement for an alias.
func MapperValue(e alias.Entry) string {
	return "<rootDir>/" + alias.Target(e.Path) + "/$1"
}

func mapper(aliases []alias.Entry, asJSON bool) renderFunc {
	key, quote := "moduleNameMapper", jsString
	if asJSON {
		key, quote = `"moduleNameMapper"`, jsonString
	}
	items := make([]string, len(aliases))
	for i, a := range aliases {
		items[i] = quote(MapperKey(a)) + ": " + quote(MapperValue(a))
	}
	return func(indent, unit string) string {
		return renderList(key, "{", "}", items, indent, unit)
	}
}

// isJSONDocument reports whether content is a bare JSON object.
func isJSONDocument(content string) bool {
	return leadingBrace.MatchString(scanCode(content).text)
}
