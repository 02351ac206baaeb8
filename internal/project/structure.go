package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aliasync/aliasync/internal/alias"
)

// ValidateStructure checks that root and root/srcDir are directories. A
// missing package.json is a warning and a missing tsconfig.json a suggestion;
// neither invalidates the result.
func ValidateStructure(root, srcDir string) *alias.ValidationResult {
	result := alias.NewValidationResult()

	if !isDir(root) {
		result.AddError(fmt.Sprintf("Root directory does not exist: %s", root))
		return result
	}

	src := filepath.Join(root, srcDir)
	if !isDir(src) {
		result.AddError(fmt.Sprintf("Source directory does not exist: %s", src))
	}

	if !isFile(filepath.Join(root, "package.json")) {
		result.Warnings = append(result.Warnings,
			"No package.json found. This might not be a Node.js project.")
	}
	if !isFile(filepath.Join(root, "tsconfig.json")) {
		result.Suggestions = append(result.Suggestions,
			"No tsconfig.json found. One will be created.")
	}

	return result
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
