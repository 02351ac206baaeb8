package alias

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxRecommended is the alias count above which Validate warns.
const MaxRecommended = 20

var validName = regexp.MustCompile(`^[@~#a-zA-Z_$][@a-zA-Z0-9_$/-]*$`)

// Validate checks an alias set for duplicate names, invalid characters, and
// paths mapped by more than one alias. Duplicates and invalid names are
// errors; path collisions are warnings.
func Validate(entries []Entry) *ValidationResult {
	result := NewValidationResult()

	if duplicates := Duplicates(entries); len(duplicates) > 0 {
		result.AddError(fmt.Sprintf("Duplicate aliases found: %s", strings.Join(duplicates, ", ")))
	}

	byPath := make(map[string]string, len(entries))
	for _, e := range entries {
		if existing, ok := byPath[e.Path]; ok && existing != e.Alias {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Path %s is mapped to multiple aliases: %s, %s", e.Path, existing, e.Alias))
		}
		byPath[e.Path] = e.Alias
	}

	for _, e := range entries {
		if !validName.MatchString(e.Name()) {
			result.AddError(fmt.Sprintf("Invalid alias name: %s", e.Alias))
		}
	}

	if len(entries) == 0 {
		result.Suggestions = append(result.Suggestions,
			"No aliases found. Consider organizing your code into subdirectories.")
	}
	if len(entries) > MaxRecommended {
		result.Warnings = append(result.Warnings,
			"Large number of aliases detected. Consider consolidating similar directories.")
	}

	return result
}

// Duplicates returns the alias names that occur more than once, in order of
// their second occurrence.
func Duplicates(entries []Entry) []string {
	seen := make(map[string]int, len(entries))
	var dups []string
	for _, e := range entries {
		seen[e.Alias]++
		if seen[e.Alias] == 2 {
			dups = append(dups, e.Alias)
		}
	}
	return dups
}
