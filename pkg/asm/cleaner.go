package asm

import "strings"

// ----------------------------------------------------------------------------
// Source Cleaner

// Takes the raw lines of an Asm source file and reduces them to "Cleaned Lines":
// non-empty, comment-free, whitespace-stripped strings, each either an A-Instruction
// ('@<designator>'), a label declaration ('(<label>)') or a C-Instruction
// ('[dest=]comp[;jump]'). Blank lines and pure-comment lines are dropped entirely.
//
// Ported from the original Python assembler's '__read_source' (strip a trailing
// '//...' comment, trim surrounding whitespace, skip the line if nothing's left),
// re-expressed here as a standalone, parser-independent function so it can run
// ahead of (and be tested independently from) the goparsec-based instruction parser.
func Clean(lines []string) []string {
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cleaned = append(cleaned, line)
	}

	return cleaned
}

// CleanSource splits a raw source blob into lines and runs Clean over them; a thin
// convenience wrapper so callers holding a whole file's content don't have to split
// it themselves.
func CleanSource(source string) []string {
	return Clean(strings.Split(source, "\n"))
}
