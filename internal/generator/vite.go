package generator

import (
	"regexp"

	"github.com/aliasync/aliasync/internal/alias"
)

var (
	// Object-form alias maps are replaced by the array form.
	viteAliasKey = regexp.MustCompile(`\balias\s*:\s*[\[{]`)
	viteAnchors  = []anchor{
		{re: regexp.MustCompile(`\bresolve\s*:\s*\{`)},
		{re: regexp.MustCompile(`defineConfig\(\s*\{`), parents: []string{"resolve"}},
		{re: regexp.MustCompile(`export\s+default\s+\{`), parents: []string{"resolve"}},
	}
	viteFind = regexp.MustCompile(`\bfind\s*:\s*(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)")`)
)

type viteGenerator struct{}

func (g *viteGenerator) Tool() ToolName       { return Vite }
func (g *viteGenerator) Candidates() []string { return candidates(Vite) }
func (g *viteGenerator) Mandatory() bool      { return false }

func (g *viteGenerator) Create(aliases []alias.Entry) string {
	return "import { defineConfig } from 'vite'\n" +
		"import path from 'path'\n" +
		"\n" +
		"export default defineConfig({\n" +
		"  resolve: {\n" +
		"    " + viteAliases(aliases)("    ", "  ") + "\n" +
		"  }\n" +
		"})\n"
}

func (g *viteGenerator) Update(content string, aliases []alias.Entry) (string, []string, error) {
	spec := blockSpec{key: viteAliasKey, anchors: viteAnchors, render: viteAliases(aliases)}
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

func (g *viteGenerator) ReadBack(content string) ([]string, bool) {
	body, ok := blockSpec{key: viteAliasKey}.body(content)
	if !ok {
		return nil, false
	}
	return collectKeys(viteFind, body, unescape), true
}

func viteAliases(aliases []alias.Entry) renderFunc {
	items := make([]string, len(aliases))
	for i, a := range aliases {
		items[i] = "{ find: " + jsString(a.Name()) + ", replacement: " + resolveCall(alias.Target(a.Path)) + " }"
	}
	return func(indent, unit string) string {
		return renderList("alias", "[", "]", items, indent, unit)
	}
}
