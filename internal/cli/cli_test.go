package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aliasync/aliasync/internal/alias"
	"github.com/aliasync/aliasync/internal/config"
	"github.com/aliasync/aliasync/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestVersionCommand(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	out, _, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, _, err = execute(t, "", "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, map[string]string{"version": "1.2.3", "commit": "abc123", "date": "2026-01-01"}, info)

	out, _, err = execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "aliasync version 1.2.3 (commit: abc123, built: 2026-01-01)\n", out)
}

func TestInitCommand(t *testing.T) {
	root := setupProject(t, "components", "components/ui", "utils", "hooks")

	out, _, err := execute(t, "", "--root", root, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully synchronized 5 aliases")

	tsconfig := readFile(t, filepath.Join(root, "tsconfig.json"))
	for _, a := range []string{`"@/*"`, `"@components"`, `"@components/ui"`, `"@utils"`, `"@hooks"`} {
		assert.Contains(t, tsconfig, a)
	}
	assertFileNotExists(t, filepath.Join(root, "src", "aliases.ts"))
}

func TestInitCommand_Helper(t *testing.T) {
	root := setupProject(t, "utils")

	out, _, err := execute(t, "", "--root", root, "init", "--helper")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated alias helper file")

	helper := readFile(t, filepath.Join(root, "src", "aliases.ts"))
	assert.Contains(t, helper, `'@utils': './src/utils'`)
}

func TestRootCommand_NoActionInitializes(t *testing.T) {
	root := setupProject(t, "utils")

	out, _, err := execute(t, "", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "No action specified. Running initialization...")
	assertFileExists(t, filepath.Join(root, "tsconfig.json"))
	assertFileNotExists(t, filepath.Join(root, "src", "aliases.ts"))
}

func TestRootCommand_InitFlagGeneratesHelper(t *testing.T) {
	root := setupProject(t, "utils")

	_, _, err := execute(t, "", "--root", root, "--init")
	require.NoError(t, err)
	assertFileExists(t, filepath.Join(root, "tsconfig.json"))
	assertFileExists(t, filepath.Join(root, "src", "aliases.ts"))
}

func TestRootCommand_ActionsAreExclusive(t *testing.T) {
	root := setupProject(t)

	_, _, err := execute(t, "", "--root", root, "--sync", "--dry-run")
	require.Error(t, err)
	assertFileNotExists(t, filepath.Join(root, "tsconfig.json"))
}

func TestSyncCommand_MissingSourceFails(t *testing.T) {
	root := t.TempDir()
	t.Setenv("NO_COLOR", "1")

	_, stderr, err := execute(t, "", "--root", root, "sync")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, stderr, "Project structure validation failed")
	assert.Contains(t, stderr, "Source directory does not exist")
	assertFileNotExists(t, filepath.Join(root, "tsconfig.json"))
}

func TestSyncCommand_SrcDirFlag(t *testing.T) {
	root := setupProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app", "pages"), 0o755))

	_, _, err := execute(t, "", "--root", root, "--src-dir", "app", "--prefix", "~", "sync")
	require.NoError(t, err)

	tsconfig := readFile(t, filepath.Join(root, "tsconfig.json"))
	assert.Contains(t, tsconfig, `"~/*"`)
	assert.Contains(t, tsconfig, `"./app/pages"`)
}

func TestScanCommand_Formats(t *testing.T) {
	root := setupProject(t, "components", "utils")

	out, _, err := execute(t, "", "--root", root, "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "Detected 3 aliases:")
	assert.Contains(t, out, "@components")
	assert.Contains(t, out, "./src/utils")

	out, _, err = execute(t, "", "--root", root, "scan", "--format", "json")
	require.NoError(t, err)
	var fromJSON []alias.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &fromJSON))
	require.Len(t, fromJSON, 3)
	assert.Equal(t, alias.Entry{Alias: "@/*", Path: "./src/*"}, fromJSON[0])

	out, _, err = execute(t, "", "--root", root, "scan", "--format", "yaml")
	require.NoError(t, err)
	var fromYAML []alias.Entry
	require.NoError(t, yaml.Unmarshal([]byte(out), &fromYAML))
	assert.Equal(t, fromJSON, fromYAML)

	_, _, err = execute(t, "", "--root", root, "scan", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)

	assertFileNotExists(t, filepath.Join(root, "tsconfig.json"))
}

func TestScanCommand_MissingSource(t *testing.T) {
	root := t.TempDir()

	_, _, err := execute(t, "", "--root", root, "scan")
	require.ErrorIs(t, err, scanner.ErrSourceNotFound)
}

func TestDryRunCommand_WritesNothing(t *testing.T) {
	root := setupProject(t, "utils")

	out, _, err := execute(t, "", "--root", root, "dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "@utils → ./src/utils")
	assert.Contains(t, out, "create")
	assert.Contains(t, out, "tsconfig.json")
	assert.Contains(t, out, "Dry run: 2 aliases would be written to 1 files")
	assertFileNotExists(t, filepath.Join(root, "tsconfig.json"))
}

func TestStatusCommand(t *testing.T) {
	root := setupProject(t, "utils")

	_, _, err := execute(t, "", "--root", root, "init")
	require.NoError(t, err)

	out, _, err := execute(t, "", "--root", root, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "up-to-date")
	assert.Contains(t, out, "not-generated")

	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "hooks"), 0o755))

	out, _, err = execute(t, "", "--root", root, "status")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "stale")
	assert.Contains(t, out, "missing: @hooks")
}

func TestInfoCommand(t *testing.T) {
	root := setupProject(t, "components", "utils")
	writeFile(t, filepath.Join(root, "yarn.lock"), "")
	writeFile(t, filepath.Join(root, "vite.config.ts"), "export default {}\n")

	out, _, err := execute(t, "", "--root", root, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Package Manager: yarn")
	assert.Contains(t, out, "Aliases: 3")
	assert.Contains(t, out, "vite.config.ts (vite)")

	out, _, err = execute(t, "", "--root", root, "info", "--format", "json")
	require.NoError(t, err)
	var info struct {
		PackageManager string        `json:"packageManager"`
		Aliases        []alias.Entry `json:"aliases"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "yarn", info.PackageManager)
	assert.Len(t, info.Aliases, 3)
}

func TestValidateCommand(t *testing.T) {
	root := setupProject(t, "utils")

	out, _, err := execute(t, "", "--root", root, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Project structure is valid")
	assert.Contains(t, out, "Aliases are valid")

	writeFile(t, config.FilePath(root), "min_depth: -1\n")
	out, _, err = execute(t, "", "--root", root, "validate")
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "Config file does not match its schema")
}

func TestValidateCommand_MissingSource(t *testing.T) {
	root := t.TempDir()

	out, _, err := execute(t, "", "--root", root, "validate", "--format", "json")
	require.ErrorIs(t, err, errFailed)

	var report struct {
		Structure alias.ValidationResult `json:"structure"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Structure.IsValid)
}

func TestConfigCommands(t *testing.T) {
	root := setupProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app", "lib"), 0o755))

	out, _, err := execute(t, "", "--root", root, "config", "set", "src_dir", "app")
	require.NoError(t, err)
	assert.Equal(t, "Set src_dir = app\n", out)
	assertFileExists(t, config.FilePath(root))

	out, _, err = execute(t, "", "--root", root, "config", "get", "src_dir")
	require.NoError(t, err)
	assert.Equal(t, "app\n", out)

	out, _, err = execute(t, "", "--root", root, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "src_dir: app")
	assert.Contains(t, out, "prefix: '@'")

	out, _, err = execute(t, "", "--root", root, "scan", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"@lib"`)

	// An explicit flag wins over the config file.
	out, _, err = execute(t, "", "--root", root, "--src-dir", "src", "config", "get", "src_dir")
	require.NoError(t, err)
	assert.Equal(t, "src\n", out)
}

func TestConfigCommands_Errors(t *testing.T) {
	root := setupProject(t)

	_, _, err := execute(t, "", "--root", root, "config", "get", "nope")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, _, err = execute(t, "", "--root", root, "config", "set", "max_depth", "deep")
	require.Error(t, err)
	assertFileNotExists(t, config.FilePath(root))
}

func TestWatchCommand_SingleCycle(t *testing.T) {
	root := setupProject(t, "utils")

	_, _, err := execute(t, "", "--root", root, "watch", "--ignore-initial=false", "--persistent=false")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(root, "tsconfig.json")), `"@utils"`)
}

func TestWatchCommand_MissingSource(t *testing.T) {
	root := t.TempDir()

	_, _, err := execute(t, "", "--root", root, "watch", "--persistent=false")
	require.ErrorIs(t, err, scanner.ErrSourceNotFound)
}

func TestInteractive(t *testing.T) {
	root := setupProject(t, "utils")

	out, _, err := execute(t, "6\n", "--root", root, "--interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "What would you like to do?")
	assert.Contains(t, out, "  1) Initialize aliases")
	assert.Contains(t, out, "Project Information:")

	_, _, err = execute(t, "2\n", "--root", root, "--interactive")
	require.NoError(t, err)
	assertFileExists(t, filepath.Join(root, "tsconfig.json"))

	_, _, err = execute(t, "9\n", "--root", root, "--interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid selection")
}

func TestSelectFromList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"first", "1\n", 0, false},
		{"last without newline", "3", 2, false},
		{"padded", "  2 \n", 1, false},
		{"zero", "0\n", 0, true},
		{"too large", "4\n", 0, true},
		{"not a number", "abc\n", 0, true},
		{"empty input", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w bytes.Buffer
			got, err := selectFromList(bufio.NewReader(strings.NewReader(tt.input)), &w, "Pick:", []string{"a", "b", "c"})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "\nPick:\n  1) a\n  2) b\n  3) c\nEnter number [1-3]: ", w.String())
		})
	}
}

func TestPrintError(t *testing.T) {
	err := fmt.Errorf("scanning for aliases: %w", fmt.Errorf("%w: /tmp/src", scanner.ErrSourceNotFound))

	var w bytes.Buffer
	printError(&w, err, false)
	assert.Equal(t, "Error: "+err.Error()+"\n", w.String())

	w.Reset()
	printError(&w, err, true)
	lines := strings.Split(strings.TrimSpace(w.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  caused by: "+scanner.ErrSourceNotFound.Error(), lines[2])
	assert.True(t, errors.Is(err, scanner.ErrSourceNotFound))
}

func TestConfigHelpListsEnvVars(t *testing.T) {
	help := configHelp()
	assert.Contains(t, help, ".aliasync.yaml")
	for _, key := range config.Keys() {
		assert.Contains(t, help, "ALIASYNC_"+strings.ToUpper(key))
	}
}
