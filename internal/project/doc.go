// Package project inspects a JavaScript/TypeScript project on disk: it checks
// that the root and source directories exist, sniffs the package manager from
// lockfiles, discovers build-tool config files, and reads the installed
// TypeScript version.
package project
