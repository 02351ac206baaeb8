package generator

import (
	"regexp"

	"github.com/aliasync/aliasync/internal/alias"
)

var (
	tsPathsKey    = regexp.MustCompile(`"paths"\s*:\s*\{`)
	tsCompilerKey = regexp.MustCompile(`"compilerOptions"\s*:\s*\{`)
	tsBaseURL     = regexp.MustCompile(`"baseUrl"\s*:`)
	jsonKey       = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"\s*:`)
)

type tsconfigGenerator struct {
	needsBaseURL bool
}

func (g *tsconfigGenerator) Tool() ToolName       { return TSConfig }
func (g *tsconfigGenerator) Candidates() []string { return candidates(TSConfig) }
func (g *tsconfigGenerator) Mandatory() bool      { return true }

func (g *tsconfigGenerator) Create(aliases []alias.Entry) string {
	return "{\n" +
		`  "compilerOptions": {` + "\n" +
		`    "baseUrl": ".",` + "\n" +
		"    " + g.paths(aliases)("    ", "  ") + "\n" +
		"  }\n" +
		"}\n"
}

func (g *tsconfigGenerator) Update(content string, aliases []alias.Entry) (string, []string, error) {
	render := g.paths(aliases)
	if g.needsBaseURL && !scanCode(content).has(tsBaseURL) {
		paths := render
		render = func(indent, unit string) string {
			return `"baseUrl": ".",` + "\n" + indent + paths(indent, unit)
		}
	}

	spec := blockSpec{
		key: tsPathsKey,
		anchors: []anchor{
			{re: tsCompilerKey},
			{re: leadingBrace, parents: []string{`"compilerOptions"`}},
		},
		render: render,
	}
	out, err := spec.apply(content)
	return out, nil, err
}

func (g *tsconfigGenerator) ReadBack(content string) ([]string, bool) {
	body, ok := blockSpec{key: tsPathsKey}.body(content)
	if !ok {
		return nil, false
	}
	return collectKeys(jsonKey, body, unescape), true
}

func (g *tsconfigGenerator) paths(aliases []alias.Entry) renderFunc {
	items := make([]string, len(aliases))
	for i, a := range aliases {
		items[i] = jsonString(a.Alias) + ": [" + jsonString(a.Path) + "]"
	}
	return func(indent, unit string) string {
		return renderList(`"paths"`, "{", "}", items, indent, unit)
	}
}
