// Package scanner derives import aliases from the directory layout below a
// project's source root. The root always yields the wildcard alias
// ({prefix}/*); every subdirectory yields an alias encoding its full relative
// path, so same-named directories at different depths never collide.
package scanner
