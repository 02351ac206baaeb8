package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestValidateStructure(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		result := ValidateStructure(filepath.Join(t.TempDir(), "nope"), "src")
		assert.False(t, result.IsValid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "Root directory does not exist")
	})

	t.Run("missing src", func(t *testing.T) {
		root := t.TempDir()
		result := ValidateStructure(root, "src")
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Errors[0], "Source directory does not exist")
	})

	t.Run("bare src dir warns and suggests", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0755))

		result := ValidateStructure(root, "src")
		assert.True(t, result.IsValid)
		assert.Len(t, result.Warnings, 1)
		assert.Len(t, result.Suggestions, 1)
	})

	t.Run("complete project", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0755))
		writeFile(t, filepath.Join(root, "package.json"), "{}")
		writeFile(t, filepath.Join(root, "tsconfig.json"), "{}")

		result := ValidateStructure(root, "src")
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Warnings)
		assert.Empty(t, result.Suggestions)
	})
}

func TestPackageManager(t *testing.T) {
	tests := []struct {
		name     string
		lockfile string
		want     string
	}{
		{"none", "", NPM},
		{"npm", "package-lock.json", NPM},
		{"yarn", "yarn.lock", Yarn},
		{"pnpm", "pnpm-lock.yaml", PNPM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.lockfile != "" {
				writeFile(t, filepath.Join(root, tt.lockfile), "")
			}
			assert.Equal(t, tt.want, PackageManager(root))
		})
	}
}

func TestTypeScriptVersion(t *testing.T) {
	t.Run("installed copy wins", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{"devDependencies":{"typescript":"^5.4.0"}}`)
		writeFile(t, filepath.Join(root, "node_modules", "typescript", "package.json"), `{"version":"4.0.8"}`)

		v, ok := TypeScriptVersion(root)
		require.True(t, ok)
		assert.Equal(t, "4.0.8", v.String())
		assert.True(t, NeedsBaseURL(root))
	})

	t.Run("declared range", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{"devDependencies":{"typescript":"~5.2.2"}}`)

		v, ok := TypeScriptVersion(root)
		require.True(t, ok)
		assert.Equal(t, "5.2.2", v.String())
		assert.False(t, NeedsBaseURL(root))
	})

	t.Run("unknown", func(t *testing.T) {
		root := t.TempDir()
		_, ok := TypeScriptVersion(root)
		assert.False(t, ok)
		assert.False(t, NeedsBaseURL(root))
	})
}

func TestFindConfigFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tsconfig.json"), `{ "compilerOptions": {} }`)
	writeFile(t, filepath.Join(root, "vite.config.ts"), "export default {}")
	writeFile(t, filepath.Join(root, "jest.config.js"), "module.exports = {}")
	writeFile(t, filepath.Join(root, "jest.config.json"), "{}")
	writeFile(t, filepath.Join(root, "rollup.config.mjs"), "export default {}")

	files := FindConfigFiles(root)
	require.Len(t, files, 4)

	tools := map[string]ConfigFile{}
	for _, f := range files {
		tools[f.Tool] = f
	}
	assert.Equal(t, filepath.Join(root, "jest.config.js"), tools["jest"].Path)
	assert.Equal(t, filepath.Join(root, "vite.config.ts"), tools["vite"].Path)
	assert.True(t, tools["tsconfig"].Valid)
	assert.Contains(t, tools, "rollup")
	assert.NotContains(t, tools, "webpack")
}

func TestValidateConfigFile(t *testing.T) {
	root := t.TempDir()

	missing := ValidateConfigFile(filepath.Join(root, "tsconfig.json"))
	assert.False(t, missing.IsValid)

	broken := filepath.Join(root, "tsconfig.json")
	writeFile(t, broken, `{ "compilerOptions": `)
	assert.False(t, ValidateConfigFile(broken).IsValid)

	commented := filepath.Join(root, "tsconfig.base.json")
	writeFile(t, commented, "{\n  // strict mode\n  \"compilerOptions\": { \"strict\": true, },\n}\n")
	assert.True(t, ValidateConfigFile(commented).IsValid)

	js := filepath.Join(root, "vite.config.js")
	writeFile(t, js, "not json at all")
	assert.True(t, ValidateConfigFile(js).IsValid)
}

func TestStandardizeJSONC(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]any
	}{
		{
			name: "line and block comments",
			in:   "{\n  // comment\n  \"a\": 1, /* inline */ \"b\": 2\n}",
			want: map[string]any{"a": float64(1), "b": float64(2)},
		},
		{
			name: "comment markers inside strings survive",
			in:   `{"url": "http://example.com/*x*/", "q": "say \"//\""}`,
			want: map[string]any{"url": "http://example.com/*x*/", "q": `say "//"`},
		},
		{
			name: "trailing commas",
			in:   `{"paths": {"@/*": ["./src/*",],},}`,
			want: map[string]any{"paths": map[string]any{"@/*": []any{"./src/*"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []byte(tt.in)
			std, err := StandardizeJSONC(in)
			require.NoError(t, err)
			assert.Equal(t, tt.in, string(in))

			var got map[string]any
			require.NoError(t, json.Unmarshal(std, &got))
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := StandardizeJSONC([]byte(`{"a": 1} trailing`))
	assert.Error(t, err)
}
