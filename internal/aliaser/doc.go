// Package aliaser orchestrates a sync cycle: validate the project layout,
// scan the source tree for aliases, validate the alias set, and patch every
// applicable build-tool config. It also provides the dry-run, helper file,
// status, info, and watch operations built on the same pieces.
package aliaser
