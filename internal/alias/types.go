package alias

// Entry is one import alias derived from a source directory.
type Entry struct {
	Alias        string `json:"alias" yaml:"alias"`
	Path         string `json:"path" yaml:"path"`
	RelativePath string `json:"relativePath" yaml:"relativePath"`
}

// IsRoot reports whether the entry maps the source root itself.
func (e Entry) IsRoot() bool {
	return e.RelativePath == ""
}

// Name returns the alias without its wildcard suffix.
func (e Entry) Name() string {
	return TrimWildcard(e.Alias)
}

// ValidationResult is the outcome of a structural or alias-set check.
type ValidationResult struct {
	IsValid     bool     `json:"isValid" yaml:"isValid"`
	Errors      []string `json:"errors" yaml:"errors"`
	Warnings    []string `json:"warnings" yaml:"warnings"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// NewValidationResult returns a valid, empty result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{IsValid: true}
}

// AddError records an error and marks the result invalid.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

// Outcome is the uniform result of a generator or orchestrator operation.
type Outcome struct {
	Success       bool     `json:"success" yaml:"success"`
	Message       string   `json:"message" yaml:"message"`
	Aliases       []Entry  `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Errors        []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	FilesModified []string `json:"filesModified,omitempty" yaml:"filesModified,omitempty"`
}

// Failed builds an unsuccessful outcome carrying the given error strings.
func Failed(message string, errs ...string) *Outcome {
	return &Outcome{Success: false, Message: message, Errors: errs}
}
