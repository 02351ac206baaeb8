package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aliasync/aliasync/internal/alias"
)

// ToolFiles lists the config file names a tool is known by, in lookup order.
type ToolFiles struct {
	Tool  string
	Names []string
}

// KnownConfigs is the discovery table. Rollup is reported but never patched.
var KnownConfigs = []ToolFiles{
	{Tool: "tsconfig", Names: []string{"tsconfig.json"}},
	{Tool: "vite", Names: []string{"vite.config.js", "vite.config.ts", "vite.config.mjs", "vite.config.mts"}},
	{Tool: "webpack", Names: []string{"webpack.config.js", "webpack.config.ts", "webpack.config.cjs"}},
	{Tool: "jest", Names: []string{"jest.config.js", "jest.config.ts", "jest.config.cjs", "jest.config.json"}},
	{Tool: "rollup", Names: []string{"rollup.config.js", "rollup.config.mjs", "rollup.config.ts"}},
}

// CandidateNames returns the file names registered for tool.
func CandidateNames(tool string) []string {
	for _, tf := range KnownConfigs {
		if tf.Tool == tool {
			return tf.Names
		}
	}
	return nil
}

// ConfigFile describes one discovered build-tool config file.
type ConfigFile struct {
	Tool   string `json:"tool" yaml:"tool"`
	Path   string `json:"path" yaml:"path"`
	Exists bool   `json:"exists" yaml:"exists"`
	Valid  bool   `json:"valid" yaml:"valid"`
}

// FindConfigFiles returns the first existing file for every known tool.
func FindConfigFiles(root string) []ConfigFile {
	var found []ConfigFile
	for _, tf := range KnownConfigs {
		for _, name := range tf.Names {
			path := filepath.Join(root, name)
			if !isFile(path) {
				continue
			}
			found = append(found, ConfigFile{
				Tool:   tf.Tool,
				Path:   path,
				Exists: true,
				Valid:  ValidateConfigFile(path).IsValid,
			})
			break
		}
	}
	return found
}

// ValidateConfigFile checks that path exists and is writable, and that a
// tsconfig file parses as JSON with comments.
func ValidateConfigFile(path string) *alias.ValidationResult {
	result := alias.NewValidationResult()

	if !isFile(path) {
		result.AddError(fmt.Sprintf("Configuration file does not exist: %s", path))
		return result
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		result.AddError(fmt.Sprintf("Configuration file is not writable: %s", path))
	} else {
		f.Close()
	}

	base := filepath.Base(path)
	if strings.HasPrefix(base, "tsconfig") && strings.HasSuffix(base, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			result.AddError(fmt.Sprintf("Reading %s: %v", path, err))
			return result
		}
		var doc map[string]any
		std, err := StandardizeJSONC(data)
		if err == nil {
			err = json.Unmarshal(std, &doc)
		}
		if err != nil {
			result.AddError(fmt.Sprintf("Invalid JSON in tsconfig.json: %v", err))
		}
	}

	return result
}
