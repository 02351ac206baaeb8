package generator

import (
	"regexp"
	"strings"
)

// leadingBrace matches the opening brace of a JSON document. It runs on
// comment-free text.
var leadingBrace = regexp.MustCompile(`^\s*\{`)

// renderFunc renders an alias block starting at its key. indent is the
// indentation of the key's line; unit is one indentation step.
type renderFunc func(indent, unit string) string

// anchor is an insertion point: re must match up to and including an opening
// brace. parents are keys the block is wrapped in, outermost first.
type anchor struct {
	re      *regexp.Regexp
	parents []string
}

// blockSpec locates and rewrites one alias block.
type blockSpec struct {
	// key matches the block key up to and including its opening delimiter.
	key     *regexp.Regexp
	anchors []anchor
	render  renderFunc
}

// apply replaces the existing block in content, or inserts one at the first
// anchor that matches.
func (s blockSpec) apply(content string) (string, error) {
	unit := detectIndentUnit(content)
	c := scanCode(content)

	if start, _, end, ok := c.findBlock(s.key); ok {
		indent := lineIndent(content, start)
		return content[:start] + s.render(indent, unit) + content[end:], nil
	}

	for _, a := range s.anchors {
		loc := c.find(a.re)
		if loc == nil {
			continue
		}
		return insertAt(content, loc[1], a.parents, s.render, unit), nil
	}

	return "", ErrUnexpectedShape
}

// body returns the text between the block's delimiters with comments blanked.
func (s blockSpec) body(content string) (string, bool) {
	c := scanCode(content)
	_, open, end, ok := c.findBlock(s.key)
	if !ok {
		return "", false
	}
	return c.text[open+1 : end-1], true
}

// code is a config file with its comments blanked out. Offsets line up with
// the original text.
type code struct {
	text string
	// inString marks bytes inside string literals, quotes excluded.
	inString []bool
}

func scanCode(content string) code {
	text := []byte(content)
	inString := make([]bool, len(content))
	for i := 0; i < len(content); {
		next, literal := skipLiteral(content, i)
		if next == i {
			i++
			continue
		}
		if next < 0 {
			if literal {
				// Stray quote, as in a regex literal.
				i++
				continue
			}
			next = len(content)
		}
		if literal {
			for j := i + 1; j < next-1; j++ {
				inString[j] = true
			}
		} else {
			for j := i; j < next; j++ {
				if text[j] != '\n' {
					text[j] = ' '
				}
			}
		}
		i = next
	}
	return code{text: string(text), inString: inString}
}

// find returns the first match of re that starts and ends outside comments
// and string literals.
func (c code) find(re *regexp.Regexp) []int {
	for _, loc := range re.FindAllStringIndex(c.text, -1) {
		if loc[1] > loc[0] && !c.inString[loc[0]] && !c.inString[loc[1]-1] {
			return loc
		}
	}
	return nil
}

// has reports whether re matches outside comments and string literals.
func (c code) has(re *regexp.Regexp) bool {
	return c.find(re) != nil
}

// findBlock returns the start of the key, the index of the opening
// delimiter, and the index just past the matching closing delimiter.
func (c code) findBlock(key *regexp.Regexp) (start, open, end int, ok bool) {
	loc := c.find(key)
	if loc == nil {
		return 0, 0, 0, false
	}
	open = loc[1] - 1
	end, ok = matchClose(c.text, open)
	return loc[0], open, end, ok
}

// matchClose scans from an opening delimiter to its partner, skipping string
// literals and comments.
func matchClose(s string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		if next, _ := skipLiteral(s, i); next != i {
			if next < 0 {
				return 0, false
			}
			i = next - 1
			continue
		}
		switch s[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// skipLiteral returns the index just past the string literal or comment that
// starts at i, and whether it was a string. It returns i when neither starts
// there and -1 when one is left open. A line comment stops before its newline.
func skipLiteral(s string, i int) (int, bool) {
	switch s[i] {
	case '"', '\'', '`':
		if j := skipString(s, i); j >= 0 {
			return j + 1, true
		}
		return -1, true
	case '/':
		if i+1 >= len(s) {
			return i, false
		}
		switch s[i+1] {
		case '/':
			if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
				return i + nl, false
			}
			return len(s), false
		case '*':
			if k := strings.Index(s[i+2:], "*/"); k >= 0 {
				return i + k + 4, false
			}
			return -1, false
		}
	}
	return i, false
}

// skipString returns the index of the quote closing the literal opened at i.
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j
		case '\n':
			if quote != '`' {
				return -1
			}
		}
	}
	return -1
}

// insertAt inserts a new block just inside the object opened right before p.
func insertAt(content string, p int, parents []string, render renderFunc, unit string) string {
	anchorIndent := lineIndent(content, p-1)

	q := p
	for q < len(content) && isSpace(content[q]) {
		q++
	}
	empty := q < len(content) && content[q] == '}'

	childIndent := anchorIndent + unit
	if !empty {
		if nl := strings.LastIndexByte(content[p:q], '\n'); nl >= 0 {
			childIndent = strings.TrimRight(content[p+nl+1:q], "\r")
		}
	}

	block := wrap(parents, render, childIndent, unit)
	if empty {
		return content[:p] + "\n" + childIndent + block + "\n" + anchorIndent + content[q:]
	}
	return content[:p] + "\n" + childIndent + block + "," + content[p:]
}

func wrap(parents []string, render renderFunc, indent, unit string) string {
	if len(parents) == 0 {
		return render(indent, unit)
	}
	inner := indent + unit
	return parents[0] + ": {\n" + inner + wrap(parents[1:], render, inner, unit) + "\n" + indent + "}"
}

// lineIndent returns the leading whitespace of the line containing pos.
func lineIndent(content string, pos int) string {
	if pos < 0 {
		pos = 0
	}
	start := strings.LastIndexByte(content[:pos], '\n') + 1
	end := start
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return content[start:end]
}

// detectIndentUnit returns the file's indentation step: a tab if indented
// lines start with one, else the smallest space indent seen. Defaults to two
// spaces.
func detectIndentUnit(content string) string {
	smallest := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || trimmed == "\r" || strings.HasPrefix(trimmed, "*") {
			continue
		}
		ws := line[:len(line)-len(trimmed)]
		if ws == "" {
			continue
		}
		if ws[0] == '\t' {
			return "\t"
		}
		if n := len(ws) - len(strings.TrimLeft(ws, " ")); n > 0 && (smallest == 0 || n < smallest) {
			smallest = n
		}
	}
	if smallest == 0 {
		return "  "
	}
	return strings.Repeat(" ", smallest)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// renderList renders `key: {` (or `[`) followed by one line per item and the
// closing delimiter at indent.
func renderList(key, open, close string, items []string, indent, unit string) string {
	if len(items) == 0 {
		return key + ": " + open + close
	}
	var b strings.Builder
	b.WriteString(key + ": " + open + "\n")
	for i, item := range items {
		b.WriteString(indent + unit + item)
		if i < len(items)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + close)
	return b.String()
}

// collectKeys returns the first non-empty submatch of every match of re in s.
func collectKeys(re *regexp.Regexp, s string, unquote func(string) string) []string {
	var keys []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		for _, g := range m[1:] {
			if g != "" {
				keys = append(keys, unquote(g))
				break
			}
		}
	}
	return keys
}
