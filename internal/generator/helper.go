package generator

import (
	"strings"
	"time"

	"github.com/aliasync/aliasync/internal/alias"
	"github.com/aliasync/aliasync/internal/branding"
)

// RenderHelper renders a TypeScript module exposing the alias table as the
// ALIASES constant plus lookup helpers. Wildcards are stripped from aliases
// and paths.
func RenderHelper(aliases []alias.Entry, now time.Time) string {
	items := make([]string, len(aliases))
	for i, a := range aliases {
		items[i] = "  " + jsString(a.Name()) + ": " + jsString(alias.TrimWildcard(a.Path))
	}

	var b strings.Builder
	b.WriteString("// Auto-generated alias helper file\n")
	b.WriteString("// This file is automatically updated by " + branding.CLIName() + "\n")
	b.WriteString("// Last updated: " + now.UTC().Format(time.RFC3339) + "\n")
	b.WriteString("\n")
	b.WriteString("export const ALIASES = {\n")
	b.WriteString(strings.Join(items, ",\n"))
	if len(items) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("} as const;\n")
	b.WriteString(`
export type AliasKey = keyof typeof ALIASES;

// Helper function to get alias path
export function getAliasPath(key: AliasKey): string {
  return ALIASES[key];
}

// Helper function to resolve alias
export function resolveAlias(key: AliasKey, subPath = ''): string {
  const basePath = ALIASES[key];
  return subPath ? ` + "`${basePath}/${subPath}`" + ` : basePath;
}
`)
	return b.String()
}
