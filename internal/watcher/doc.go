// Package watcher reports directories appearing and disappearing below a
// source root, and provides the single-slot Debouncer that turns bursts of
// those events into serialized sync cycles.
package watcher
