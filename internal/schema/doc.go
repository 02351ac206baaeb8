// Package schema validates documents against embedded JSON schemas: the
// alias-relevant part of tsconfig.json after a patch, and the per-project
// .aliasync.yaml config file.
package schema
