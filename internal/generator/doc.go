// Package generator rewrites the alias sections of build-tool config files.
//
// Each supported tool (tsconfig, Vite, webpack, Jest) is a Generator
// descriptor: it knows its candidate file names, how to render a fresh
// config, and how to rewrite the alias block of an existing one. The Patcher
// runs the shared protocol around a descriptor: locate the file, create or
// update it, skip the write when nothing changed, and report an Outcome.
// Patching is textual; everything outside the alias block is left byte for
// byte as it was.
package generator
