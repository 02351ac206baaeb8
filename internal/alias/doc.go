// Package alias defines the alias model shared by the scanner, the config
// generators, and the orchestrator: the Entry produced by a scan, the
// ValidationResult and Outcome value types, and the small set of string edits
// (wildcard, capture group, and relative-path stripping) every generator uses
// to translate an Entry into its tool's mapping syntax.
package alias
