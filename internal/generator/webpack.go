package generator

import (
	"regexp"

	"github.com/aliasync/aliasync/internal/alias"
)

var (
	webpackAliasKey = regexp.MustCompile(`\balias\s*:\s*\{`)
	webpackAnchors  = []anchor{
		{re: regexp.MustCompile(`\bresolve\s*:\s*\{`)},
		{re: regexp.MustCompile(`module\.exports\s*=\s*\{`), parents: []string{"resolve"}},
		{re: regexp.MustCompile(`export\s+default\s+\{`), parents: []string{"resolve"}},
		{re: regexp.MustCompile(`(?:const|let|var)\s+[\w$]+(?:\s*:\s*[\w$.<>]+)?\s*=\s*\{`), parents: []string{"resolve"}},
	}
	jsObjectKey = regexp.MustCompile(`(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)"|([A-Za-z_$][\w$]*))\s*:`)
)

type webpackGenerator struct{}

func (g *webpackGenerator) Tool() ToolName       { return Webpack }
func (g *webpackGenerator) Candidates() []string { return candidates(Webpack) }
func (g *webpackGenerator) Mandatory() bool      { return false }

func (g *webpackGenerator) Create(aliases []alias.Entry) string {
	return "const path = require('path');\n" +
		"\n" +
		"module.exports = {\n" +
		"  resolve: {\n" +
		"    " + webpackAliases(aliases)("    ", "  ") + "\n" +
		"  }\n" +
		"};\n"
}

func (g *webpackGenerator) Update(content string, aliases []alias.Entry) (string, []string, error) {
	spec := blockSpec{key: webpackAliasKey, anchors: webpackAnchors, render: webpackAliases(aliases)}
	out, err := spec.apply(content)
	if err != nil {
		return "", nil, err
	}
	var warnings []string
	if !importsPath(out) {
		warnings = append(warnings, missingPathImport)
	}
	return out, warnings, nil
}

func (g *webpackGenerator) ReadBack(content string) ([]string, bool) {
	body, ok := blockSpec{key: webpackAliasKey}.body(content)
	if !ok {
		return nil, false
	}
	return collectKeys(jsObjectKey, body, unescape), true
}

func webpackAliases(aliases []alias.Entry) renderFunc {
	items := make([]string, len(aliases))
	for i, a := range aliases {
		items[i] = jsString(a.Name()) + ": " + resolveCall(alias.Target(a.Path))
	}
	return func(indent, unit string) string {
		return renderList("alias", "{", "}", items, indent, unit)
	}
}
